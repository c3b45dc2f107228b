package proto

import (
	"encoding/binary"
)

// headerSize is the fixed length of the frame header: opcode and payload
// length, both little-endian uint32.
const headerSize = 8

func packHeader(op Opcode, length uint32) []byte {
	header := make([]byte, headerSize)

	binary.LittleEndian.PutUint32(header[0:4], uint32(op))
	binary.LittleEndian.PutUint32(header[4:8], length)

	return header
}

func unpackHeader(header []byte) (opcode uint32, length uint32, err error) {
	if len(header) != headerSize {
		return 0, 0, ErrDecodeHeader
	}

	opcode = binary.LittleEndian.Uint32(header[0:4])
	length = binary.LittleEndian.Uint32(header[4:8])

	return opcode, length, nil
}
