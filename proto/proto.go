// Package proto implements the Discord RPC wire protocol: frame codec,
// handshake, and synchronous command calls over a local byte channel.
package proto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/presenced/discord-ipc-go/transport"
)

// Session manages the lifecycle of one connection to the Discord RPC
// endpoint. Every outbound frame is immediately followed by exactly one
// read of the paired response; the transport is half-duplex from the
// caller's point of view. A Session is not safe for concurrent use.
type Session struct {
	clientID string
	handler  Handler
	logger   *slog.Logger

	dial     func() (transport.Conn, error)
	newNonce func() string

	conn transport.Conn
}

// Options ...
type Options struct {
	ClientID string
	Handler  Handler
	Logger   *slog.Logger

	// Dial overrides endpoint discovery. Used in tests.
	Dial func() (transport.Conn, error)
	// NonceSource overrides request nonce generation. Used in tests.
	NonceSource func() string
}

func (o *Options) setDefaults() {
	if o.Handler == nil {
		o.Handler = newNoopHandler()
	}

	if o.Logger == nil {
		o.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if o.Dial == nil {
		o.Dial = transport.Dial
	}

	if o.NonceSource == nil {
		o.NonceSource = uuid.NewString
	}
}

// NewSession returns a new disconnected Session.
func NewSession(opts Options) *Session {
	opts.setDefaults()

	return &Session{
		clientID: opts.ClientID,
		handler:  opts.Handler,
		logger:   opts.Logger,
		dial:     opts.Dial,
		newNonce: opts.NonceSource,
	}
}

// ErrAlreadyConnected is returned by Connect on a connected Session.
var ErrAlreadyConnected = errors.New("already connected")

// Connect opens the channel and performs the opening handshake. On a
// handshake rejection the channel is closed and the Session stays
// disconnected.
func (s *Session) Connect() error {
	if s.conn != nil {
		return ErrAlreadyConnected
	}

	conn, err := s.dial()
	if err != nil {
		return err
	}

	s.conn = conn

	if err = s.handshake(); err != nil {
		_ = conn.Close()
		s.conn = nil

		return fmt.Errorf("failed to handshake: %w", err)
	}

	s.logger.Debug("connected to discord ipc", "client_id", s.clientID)

	return nil
}

// Reconnect closes any active connection and connects again.
func (s *Session) Reconnect() error {
	if err := s.Close(); err != nil {
		return err
	}

	return s.Connect()
}

// Close sends a close frame best-effort, flushes, and releases the
// channel. It is a no-op on a disconnected Session.
func (s *Session) Close() error {
	if s.conn == nil {
		return nil
	}

	_ = s.writeFrame(OpcodeClose, []byte("{}"))
	_ = s.conn.Flush()
	_ = s.conn.Close()

	s.conn = nil
	s.logger.Debug("disconnected from discord ipc")

	return nil
}

// Call issues one command and returns the data portion of its response.
// The channel remains usable after a CommandError caused by an ERROR
// event; after any I/O error the caller must Close before further use.
func (s *Session) Call(command string, args any) (json.RawMessage, error) {
	if s.conn == nil {
		return nil, ErrNotConnected
	}

	nonce := s.newNonce()

	packet, err := json.Marshal(commandPacket{
		Command: command,
		Args:    args,
		Nonce:   nonce,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal command: %w", err)
	}

	if err = s.writeFrame(OpcodeFrame, packet); err != nil {
		return nil, err
	}

	op, payload, err := s.readFrame()
	if err != nil {
		return nil, err
	}

	if op == OpcodeClose {
		return nil, closeError(payload)
	}

	frame, err := decodeFrame(payload)
	if err != nil {
		return nil, err
	}

	if frame.Event == EventTypeError {
		return nil, eventError(frame.Data)
	}

	if frame.Event != "" {
		s.handler.OnEvent(frame.Event, frame.Data)
	}

	if frame.Nonce != nonce {
		return nil, ErrNonceMismatch
	}

	return frame.Data, nil
}

// Connected probes the connection with a ping frame and reports whether
// the endpoint answered with a pong.
func (s *Session) Connected() bool {
	if s.conn == nil {
		return false
	}

	packet, err := json.Marshal(handshakePacket{
		Version:  rpcVersion,
		ClientID: s.clientID,
	})
	if err != nil {
		return false
	}

	if err = s.writeFrame(OpcodePing, packet); err != nil {
		return false
	}

	op, _, err := s.readFrame()
	if err != nil {
		return false
	}

	return op == OpcodePong
}

func (s *Session) handshake() error {
	packet, err := json.Marshal(handshakePacket{
		Version:  rpcVersion,
		ClientID: s.clientID,
	})
	if err != nil {
		return err
	}

	if err = s.writeFrame(OpcodeHandshake, packet); err != nil {
		return err
	}

	op, payload, err := s.readFrame()
	if err != nil {
		return err
	}

	if op == OpcodeClose {
		return closeError(payload)
	}

	frame, err := decodeFrame(payload)
	if err != nil {
		return err
	}

	// An error event during the handshake is as fatal as a close frame.
	if frame.Event == EventTypeError {
		return eventError(frame.Data)
	}

	if frame.Event != "" {
		s.handler.OnEvent(frame.Event, frame.Data)
	}

	return nil
}

func (s *Session) writeFrame(op Opcode, payload []byte) error {
	buf := make([]byte, 0, headerSize+len(payload))
	buf = append(buf, packHeader(op, uint32(len(payload)))...)
	buf = append(buf, payload...)

	if err := s.conn.Write(buf); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}

	s.logger.Debug("frame written", "opcode", op.String(), "length", len(payload))

	return nil
}

func (s *Session) readFrame() (Opcode, []byte, error) {
	header := make([]byte, headerSize)
	if err := s.conn.Read(header); err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	opcode, length, err := unpackHeader(header)
	if err != nil {
		return 0, nil, err
	}

	payload := make([]byte, length)
	if err = s.conn.Read(payload); err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrRead, err)
	}

	op := OpcodeFromWire(opcode)
	s.logger.Debug("frame read", "opcode", op.String(), "length", length)

	return op, payload, nil
}

func decodeFrame(payload []byte) (*framePacket, error) {
	if !utf8.Valid(payload) {
		return nil, ErrInvalidUTF8
	}

	var frame framePacket
	if err := json.Unmarshal(payload, &frame); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrJSONParse, err)
	}

	return &frame, nil
}

// closeError maps the body of a close frame to a CommandError, or to
// ErrMalformedClose when code and message are absent or mistyped.
func closeError(payload []byte) error {
	var body closePacket
	if err := json.Unmarshal(payload, &body); err != nil || body.Code == nil || body.Message == nil {
		return ErrMalformedClose
	}

	return &CommandError{Code: *body.Code, Message: *body.Message}
}

// eventError maps the data of an ERROR event to a CommandError.
func eventError(data json.RawMessage) error {
	var body closePacket
	if err := json.Unmarshal(data, &body); err != nil || body.Code == nil || body.Message == nil {
		return ErrMalformedClose
	}

	return &CommandError{Code: *body.Code, Message: *body.Message}
}
