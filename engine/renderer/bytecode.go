package renderer

import (
	"encoding/binary"
	"fmt"
)

// EncodeCompactBytecode and DecodeCompactBytecode implement the compact,
// SMOL-V-like SPIR-V encoding: a small header
// carrying the decoded word count, followed by each SPIR-V word
// delta-encoded against its predecessor and written as a zigzag varint.
// SPIR-V instruction streams are mostly small, slowly-varying integers
// (opcodes, type/result ids that increment a handful at a time), so
// delta+zigzag+varint compresses well while staying trivial to decode
// back to the exact original words
// is byte-identical to the SPIR-V originally encoded").
const compactBytecodeMagic = 0x534d4f4c // "SMOL"

// EncodeCompactBytecode compresses a SPIR-V word stream into the compact
// wire format consumed by DecodeCompactBytecode.
func EncodeCompactBytecode(words []uint32) []byte {
	header := make([]byte, 8)
	binary.LittleEndian.PutUint32(header[0:4], compactBytecodeMagic)
	binary.LittleEndian.PutUint32(header[4:8], uint32(len(words)))

	out := make([]byte, 0, len(header)+len(words)*2)
	out = append(out, header...)

	var prev uint32
	var buf [10]byte
	for _, w := range words {
		delta := int64(w) - int64(prev)
		zz := uint64((delta << 1) ^ (delta >> 63))
		n := putUvarint(buf[:], zz)
		out = append(out, buf[:n]...)
		prev = w
	}
	return out
}

// DecodeCompactBytecode reverses EncodeCompactBytecode, returning the
// original SPIR-V word stream.
func DecodeCompactBytecode(compact []byte) ([]uint32, error) {
	if len(compact) < 8 {
		return nil, fmt.Errorf("bytecode: header truncated (%d bytes)", len(compact))
	}
	magic := binary.LittleEndian.Uint32(compact[0:4])
	if magic != compactBytecodeMagic {
		return nil, fmt.Errorf("bytecode: bad magic %08x", magic)
	}
	count := binary.LittleEndian.Uint32(compact[4:8])

	words := make([]uint32, 0, count)
	body := compact[8:]
	var prev uint32
	for i := uint32(0); i < count; i++ {
		zz, n := uvarint(body)
		if n <= 0 {
			return nil, fmt.Errorf("bytecode: truncated varint stream at word %d of %d", i, count)
		}
		body = body[n:]
		delta := int64(zz>>1) ^ -int64(zz&1)
		word := uint32(int64(prev) + delta)
		words = append(words, word)
		prev = word
	}
	return words, nil
}

func putUvarint(buf []byte, x uint64) int {
	i := 0
	for x >= 0x80 {
		buf[i] = byte(x) | 0x80
		x >>= 7
		i++
	}
	buf[i] = byte(x)
	return i + 1
}

func uvarint(buf []byte) (uint64, int) {
	var x uint64
	var s uint
	for i, b := range buf {
		if i == 10 {
			return 0, -(i + 1)
		}
		if b < 0x80 {
			if i == 9 && b > 1 {
				return 0, -(i + 1)
			}
			return x | uint64(b)<<s, i + 1
		}
		x |= uint64(b&0x7f) << s
		s += 7
	}
	return 0, 0
}
