package proto

import (
	"encoding/json"
)

const rpcVersion = 1

// Opcode tags every frame on the wire.
type Opcode uint32

const (
	// OpcodeHandshake opens the connection.
	OpcodeHandshake Opcode = iota
	// OpcodeFrame carries a command or its response.
	OpcodeFrame
	// OpcodeClose terminates the connection.
	OpcodeClose
	// OpcodePing probes liveness.
	OpcodePing
	// OpcodePong answers a ping.
	OpcodePong
)

// OpcodeFromWire converts a wire value to an Opcode. Anything outside the
// defined set is treated as Close.
func OpcodeFromWire(v uint32) Opcode {
	op := Opcode(v)

	switch op {
	case OpcodeHandshake, OpcodeFrame, OpcodeClose, OpcodePing, OpcodePong:
		return op
	default:
		return OpcodeClose
	}
}

func (o Opcode) String() string {
	switch o {
	case OpcodeHandshake:
		return "handshake"
	case OpcodeFrame:
		return "frame"
	case OpcodeClose:
		return "close"
	case OpcodePing:
		return "ping"
	case OpcodePong:
		return "pong"
	default:
		return "unknown"
	}
}

// EventType defines event types (https://discord.com/developers/docs/topics/rpc#commands-and-events).
type EventType string

const (
	// EventTypeReady is dispatched after a successful handshake.
	EventTypeReady EventType = "READY"
	// EventTypeError marks a failed command.
	EventTypeError EventType = "ERROR"
)

type handshakePacket struct {
	Version  int    `json:"v"`
	ClientID string `json:"client_id"`
}

type commandPacket struct {
	Command string `json:"cmd"`
	Args    any    `json:"args"`
	Nonce   string `json:"nonce"`
}

type framePacket struct {
	Command string          `json:"cmd"`
	Data    json.RawMessage `json:"data"`
	Event   EventType       `json:"evt"`
	Nonce   string          `json:"nonce"`
}

type closePacket struct {
	Code    *uint32 `json:"code"`
	Message *string `json:"message"`
}
