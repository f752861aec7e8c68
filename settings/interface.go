package settings

import "time"

type MatcherSettings struct {
	// MaxInputs bounds the raw candidate list and the matched set.
	MaxInputs int
	// MaxRuneTypes bounds the number of distinct rune ids tracked in totals.
	MaxRuneTypes        int
	MaxSigningInputs    int
	MaxModifiedAccounts int
	StrictOrder         bool
	DetailedErrors      bool
	MetricsEnabled      bool
}

type ResolverSettings struct {
	CacheTTL  time.Duration
	CacheSize int
	// RetryCount is the number of attempts for a failed lookup, 1 disables retries.
	RetryCount   int
	RetryBackoff time.Duration
	// Concurrency bounds the lookups a match runs at once.
	Concurrency int
}

type TracingSettings struct {
	Enabled bool
	// CollectorEndpoint is the host:port of an OTLP HTTP collector.
	CollectorEndpoint string
	SampleRate        float64
}

type Settings struct {
	ServiceName string
	Version     string
	LogLevel    string
	Matcher     MatcherSettings
	Resolver    ResolverSettings
	Tracing     TracingSettings
}
