package bptree

import (
	"github.com/cockroachdb/errors"

	"github.com/alexhholmes/bptree/internal/base"
)

//goland:noinspection GoUnusedGlobalVariable
var (
	ErrKeyNotFound  = errors.New("key not found")
	ErrInvalidOrder = errors.New("order must be at least 4")
	ErrInvariant    = errors.New("tree invariant violated")

	// ErrEmptyTree is returned by Remove on a tree that holds no keys. It
	// wraps ErrKeyNotFound.
	ErrEmptyTree = errors.Wrap(ErrKeyNotFound, "remove from an empty tree")

	ErrInvalidNode = base.ErrInvalidNode
)
