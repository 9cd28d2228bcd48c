package bptree

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Checksum returns an xxhash64 digest of the stored key/value pairs in key
// order. Two trees holding the same pairs have the same checksum whatever
// their shape or order.
func (t *Tree) Checksum() uint64 {
	h := xxhash.New()
	var buf [16]byte
	for n := t.firstLeaf(); n != nil; n = t.node(n.Right) {
		for i, key := range n.Keys {
			binary.LittleEndian.PutUint64(buf[:8], uint64(key))
			binary.LittleEndian.PutUint64(buf[8:], uint64(n.Values[i]))
			_, _ = h.Write(buf[:])
		}
	}
	return h.Sum64()
}
