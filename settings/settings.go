package settings

import (
	"time"

	"github.com/bsv-blockchain/utxomatch/errors"
)

func NewSettings() *Settings {
	return &Settings{
		ServiceName: getString("SERVICE_NAME", "utxomatch"),
		Version:     getString("VERSION", "dev"),
		LogLevel:    getString("logLevel", "INFO"),
		Matcher: MatcherSettings{
			MaxInputs:           getInt("utxomatch_maxInputs", 64),
			MaxRuneTypes:        getInt("utxomatch_maxRuneTypes", 10),
			MaxSigningInputs:    getInt("utxomatch_maxSigningInputs", 64),
			MaxModifiedAccounts: getInt("utxomatch_maxModifiedAccounts", 32),
			StrictOrder:         getBool("utxomatch_strictOrder", false),
			DetailedErrors:      getBool("utxomatch_detailedErrors", false),
			MetricsEnabled:      getBool("utxomatch_metricsEnabled", true),
		},
		Resolver: ResolverSettings{
			CacheTTL:     getDuration("utxomatch_resolverCacheTTL", 30*time.Second),
			CacheSize:    getInt("utxomatch_resolverCacheSize", 10000),
			RetryCount:   getInt("utxomatch_resolverRetryCount", 3),
			RetryBackoff: getDuration("utxomatch_resolverRetryBackoff", 10*time.Millisecond),
			Concurrency:  getInt("utxomatch_resolverConcurrency", 16),
		},
		Tracing: TracingSettings{
			Enabled:           getBool("tracing_enabled", false),
			CollectorEndpoint: getString("tracing_collectorEndpoint", "localhost:4318"),
			SampleRate:        getFloat64("tracing_sampleRate", 0.01),
		},
	}
}

// Validate rejects settings the matcher cannot size its collections from.
func (s *Settings) Validate() error {
	if s.Matcher.MaxInputs <= 0 {
		return errors.NewConfigurationError("utxomatch_maxInputs must be positive, got %d", s.Matcher.MaxInputs)
	}

	if s.Matcher.MaxRuneTypes <= 0 {
		return errors.NewConfigurationError("utxomatch_maxRuneTypes must be positive, got %d", s.Matcher.MaxRuneTypes)
	}

	if s.Matcher.MaxSigningInputs <= 0 {
		return errors.NewConfigurationError("utxomatch_maxSigningInputs must be positive, got %d", s.Matcher.MaxSigningInputs)
	}

	if s.Matcher.MaxModifiedAccounts <= 0 {
		return errors.NewConfigurationError("utxomatch_maxModifiedAccounts must be positive, got %d", s.Matcher.MaxModifiedAccounts)
	}

	if s.Resolver.CacheSize < 0 {
		return errors.NewConfigurationError("utxomatch_resolverCacheSize must not be negative, got %d", s.Resolver.CacheSize)
	}

	if s.Resolver.RetryCount <= 0 {
		return errors.NewConfigurationError("utxomatch_resolverRetryCount must be positive, got %d", s.Resolver.RetryCount)
	}

	if s.Resolver.Concurrency <= 0 {
		return errors.NewConfigurationError("utxomatch_resolverConcurrency must be positive, got %d", s.Resolver.Concurrency)
	}

	if s.Tracing.SampleRate < 0 || s.Tracing.SampleRate > 1 {
		return errors.NewConfigurationError("tracing_sampleRate must be within [0, 1], got %v", s.Tracing.SampleRate)
	}

	return nil
}
