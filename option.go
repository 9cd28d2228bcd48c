package bptree

// DefaultOrder is the branching factor used when WithOrder is not given.
const DefaultOrder = 4

// MinOrder is the smallest supported branching factor. Below it an internal
// node may be left with a single child, and the leftmost node of a level would
// no longer be guaranteed to share a parent with its right sibling.
const MinOrder = 4

// Options configures tree behavior.
type Options struct {
	order  int    // Maximum number of children of an internal node.
	logger Logger // Receives structural events and diagnostics.
}

// DefaultOptions returns the reference configuration: order 4 and a
// discarding logger.
//
//goland:noinspection GoUnusedExportedFunction
func DefaultOptions() Options {
	return Options{
		order:  DefaultOrder,
		logger: DiscardLogger{},
	}
}

// Option configures tree options using the functional options pattern.
type Option func(*Options)

// WithOrder sets the branching factor. Leaves hold at most order-1 entries
// and internal nodes at most order children; every non-root node keeps at
// least order/2 entries (leaves) or children (internal nodes).
//
//goland:noinspection GoUnusedExportedFunction
func WithOrder(order int) Option {
	return func(opts *Options) {
		opts.order = order
	}
}

// WithLogger routes diagnostics to l. Splits, merges, borrows and root
// changes are logged at debug level, removal from an empty tree at warn level
// and broken invariants at error level. A nil logger discards everything.
//
//goland:noinspection GoUnusedExportedFunction
func WithLogger(l Logger) Option {
	return func(opts *Options) {
		if l == nil {
			l = DiscardLogger{}
		}
		opts.logger = l
	}
}
