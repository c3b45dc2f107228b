package proto

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeaderRoundTrip(t *testing.T) {
	opcodes := []Opcode{OpcodeHandshake, OpcodeFrame, OpcodeClose, OpcodePing, OpcodePong}
	lengths := []uint32{0, 1, 8, 1024, math.MaxUint32}

	for _, op := range opcodes {
		for _, length := range lengths {
			header := packHeader(op, length)
			require.Len(t, header, headerSize)

			gotOp, gotLen, err := unpackHeader(header)
			require.NoError(t, err)
			assert.Equal(t, uint32(op), gotOp)
			assert.Equal(t, length, gotLen)
		}
	}
}

func TestHeaderLittleEndian(t *testing.T) {
	header := packHeader(OpcodeFrame, 0x0102)

	assert.Equal(t, []byte{0x01, 0x00, 0x00, 0x00, 0x02, 0x01, 0x00, 0x00}, header)
}

func TestUnpackHeaderWrongSize(t *testing.T) {
	for _, size := range []int{0, 7, 9} {
		_, _, err := unpackHeader(make([]byte, size))
		assert.ErrorIs(t, err, ErrDecodeHeader)
	}
}

func TestOpcodeFromWire(t *testing.T) {
	for v := uint32(0); v <= 4; v++ {
		assert.Equal(t, Opcode(v), OpcodeFromWire(v))
	}

	// Unknown wire values are coerced to Close.
	assert.Equal(t, OpcodeClose, OpcodeFromWire(7))
	assert.Equal(t, OpcodeClose, OpcodeFromWire(math.MaxUint32))
}
