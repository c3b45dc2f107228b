package proto

import (
	"errors"
	"strconv"
)

var (
	// ErrNotConnected is returned for any operation attempted before
	// Connect or after Close.
	ErrNotConnected = errors.New("client is not connected")

	// ErrNonceMismatch is returned when a response echoes a nonce that
	// differs from the one sent with the request.
	ErrNonceMismatch = errors.New("response nonce does not match request nonce")

	// ErrDecodeHeader is returned when a frame header could not be split
	// into opcode and length.
	ErrDecodeHeader = errors.New("failed to decode frame header")

	// ErrInvalidUTF8 is returned when a payload is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("payload is not valid utf-8")

	// ErrJSONParse is returned when a payload is not valid JSON.
	ErrJSONParse = errors.New("payload is not valid json")

	// ErrMalformedClose is returned when a close frame does not carry a
	// well-typed code and message pair.
	ErrMalformedClose = errors.New("malformed close frame")

	// ErrRead, ErrWrite and ErrFlush tag I/O failures on the underlying
	// channel. The OS error is attached via wrapping.
	ErrRead  = errors.New("ipc read failed")
	ErrWrite = errors.New("ipc write failed")
	ErrFlush = errors.New("ipc flush failed")
)

// CommandError is an error that Discord returned, either as an ERROR
// event or as the body of a close frame. The channel stays usable after
// an ERROR event; a close frame is fatal.
type CommandError struct {
	Code    uint32 `json:"code"`
	Message string `json:"message"`
}

func (e *CommandError) Error() string {
	return "discord code " + strconv.FormatUint(uint64(e.Code), 10) + ": " + e.Message
}
