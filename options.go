package arbor

type options struct {
	logger          *Logger
	initialCapacity int
}

func defaultOptions() options {
	return options{
		logger:          NoopLogger(),
		initialCapacity: 0,
	}
}

// Option configures arena construction.
type Option func(*options)

// WithLogger configures structured logging for arena operations.
//
// If nil is passed, logging stays disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithInitialCapacity pre-sizes the node table for an expected node count.
// Purely a hint; the arena grows past it as needed.
func WithInitialCapacity(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.initialCapacity = n
		}
	}
}
