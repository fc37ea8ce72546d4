package vecbuf

// Growth selects the capacity policy applied when a vec must grow.
type Growth int

const (
	// GrowthDoubling starts from max(current capacity, 1) and doubles
	// until the request fits. Amortized O(1) per append, at the cost of
	// up to 2x slack memory. This is the default.
	GrowthDoubling Growth = iota

	// GrowthExact allocates exactly the requested capacity. Minimal
	// memory, but every growth step pays a reallocation and copy.
	GrowthExact
)

// next returns the capacity to allocate for a vec currently at current
// capacity that needs room for at least request elements.
func (g Growth) next(current, request int) int {
	if g == GrowthExact {
		return request
	}
	c := current
	if c == 0 {
		c = 1
	}
	for c < request {
		c *= 2
	}
	return c
}

// FailFunc is invoked when the allocator cannot satisfy a growth request.
// There is no recovery path at this layer: if the hook returns normally,
// the engine panics with the same message. The default hook panics.
type FailFunc func(msg string)

type config struct {
	alloc  Allocator
	growth Growth
	onFail FailFunc
	logger *Logger
}

// Option configures a vec at construction time.
type Option func(*config)

// WithAllocator sets the allocator backing the vec. Passing nil keeps
// DefaultAllocator.
func WithAllocator(a Allocator) Option {
	return func(c *config) {
		c.alloc = a
	}
}

// WithGrowth sets the capacity growth policy.
func WithGrowth(g Growth) Option {
	return func(c *config) {
		c.growth = g
	}
}

// WithFailHook sets the hook invoked on allocation failure.
func WithFailHook(fn FailFunc) Option {
	return func(c *config) {
		c.onFail = fn
	}
}

// WithLogger enables debug logging of growth, trim and free events.
// A nil logger (the default) keeps the vec silent.
func WithLogger(l *Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}
