package vulkan

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSliceUint32FromBytesLittleEndian(t *testing.T) {
	bytes := []byte{0x03, 0x02, 0x23, 0x07, 0x01, 0x00, 0x00, 0x00}
	words := sliceUint32FromBytes(bytes)
	require.Equal(t, []uint32{0x07230203, 1}, words)
}

func TestSliceUint32FromBytesEmpty(t *testing.T) {
	require.Empty(t, sliceUint32FromBytes(nil))
}
