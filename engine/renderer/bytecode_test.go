package renderer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompactBytecodeRoundTrip(t *testing.T) {
	spirvMagic := []uint32{0x07230203, 1, 0, 12, 0, 2, 0x00020011, 1, 0x0003000e, 0, 1, 2}

	encoded := EncodeCompactBytecode(spirvMagic)
	decoded, err := DecodeCompactBytecode(encoded)
	require.NoError(t, err)
	require.Equal(t, spirvMagic, decoded)
}

func TestCompactBytecodeEmpty(t *testing.T) {
	decoded, err := DecodeCompactBytecode(EncodeCompactBytecode(nil))
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestCompactBytecodeRejectsBadMagic(t *testing.T) {
	_, err := DecodeCompactBytecode([]byte{0, 0, 0, 0, 0, 0, 0, 0})
	require.Error(t, err)
}

func TestCompactBytecodeRejectsTruncated(t *testing.T) {
	_, err := DecodeCompactBytecode([]byte{1, 2, 3})
	require.Error(t, err)
}
