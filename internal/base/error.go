package base

import "github.com/cockroachdb/errors"

var (
	ErrInvalidNode = errors.New("invalid node handle")
)
