package retained

import (
	"strconv"

	"github.com/zeebo/xxh3"
)

// NodeID identifies a view across frames. It is a hash of a caller-chosen
// label, so the same label at the same logical position yields the same id
// every frame. Collisions are not detected; labels must be unique within a tree.
type NodeID uint64

// ID hashes a label into a root-level identity.
func ID(label string) NodeID {
	return NodeID(xxh3.HashString(label))
}

// IDBytes hashes a byte label into a root-level identity.
func IDBytes(label []byte) NodeID {
	return NodeID(xxh3.Hash(label))
}

// ChildID hashes a label salted with its parent's identity, so the same label
// under different parents produces different ids.
func ChildID(parent NodeID, label string) NodeID {
	return NodeID(xxh3.HashStringSeed(label, uint64(parent)))
}

// IndexedID derives the identity of the index-th repeated child of parent,
// e.g. list cells.
func IndexedID(parent NodeID, index int) NodeID {
	var buf [20]byte
	return NodeID(xxh3.HashSeed(strconv.AppendInt(buf[:0], int64(index), 10), uint64(parent)))
}

// Child is shorthand for ChildID(id, label).
func (id NodeID) Child(label string) NodeID {
	return ChildID(id, label)
}

// Index is shorthand for IndexedID(id, i).
func (id NodeID) Index(i int) NodeID {
	return IndexedID(id, i)
}

func (id NodeID) String() string {
	return "#" + strconv.FormatUint(uint64(id), 16)
}
