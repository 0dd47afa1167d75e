package classfile

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// hasher feeds length-prefixed fields into xxhash so that adjacent strings
// cannot collide by shifting bytes between them.
type hasher struct {
	d   *xxhash.Digest
	buf [8]byte
}

func newHasher(tag ConstantTag) *hasher {
	h := &hasher{d: xxhash.New()}
	h.buf[0] = byte(tag)
	h.d.Write(h.buf[:1])
	return h
}

func (h *hasher) u64(v uint64) *hasher {
	binary.LittleEndian.PutUint64(h.buf[:], v)
	h.d.Write(h.buf[:])
	return h
}

func (h *hasher) str(s string) *hasher {
	h.u64(uint64(len(s)))
	h.d.WriteString(s)
	return h
}

func (h *hasher) sum() uint64 { return h.d.Sum64() }
