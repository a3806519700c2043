package catalog

const (
	// DefaultCacheBytes is the default size of the decoded set cache.
	DefaultCacheBytes = 32 << 20
	// DefaultPrefix is prepended to every set name to form its blob name.
	DefaultPrefix = "sets/"
	// DefaultConcurrency bounds concurrent loads in Union and Intersect.
	DefaultConcurrency = 8
)

type options struct {
	logger           *Logger
	metricsCollector MetricsCollector
	cacheBytes       int64
	prefix           string
	concurrency      int
}

func defaultOptions() options {
	return options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
		cacheBytes:       DefaultCacheBytes,
		prefix:           DefaultPrefix,
		concurrency:      DefaultConcurrency,
	}
}

// Option configures a Catalog.
type Option func(*options)

// WithLogger sets the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector sets the metrics collector.
// If nil is passed, NoopMetricsCollector is used.
func WithMetricsCollector(m MetricsCollector) Option {
	return func(o *options) {
		if m == nil {
			m = NoopMetricsCollector{}
		}
		o.metricsCollector = m
	}
}

// WithCacheBytes sets the capacity of the decoded set cache.
// Zero disables caching.
func WithCacheBytes(n int64) Option {
	return func(o *options) {
		o.cacheBytes = max(n, 0)
	}
}

// WithPrefix sets the prefix of blob names.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithConcurrency bounds the number of concurrent loads in Union and
// Intersect. Values below one fall back to DefaultConcurrency.
func WithConcurrency(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = DefaultConcurrency
		}
		o.concurrency = n
	}
}
