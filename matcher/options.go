package matcher

import (
	"github.com/bsv-blockchain/utxomatch/model"
	"github.com/bsv-blockchain/utxomatch/settings"
)

// AnchorResolver supplies the identity a declared resource is bound to.
type AnchorResolver interface {
	AnchorIdentity(resource string) (model.UtxoMeta, bool)
}

// StaticAnchors is an AnchorResolver over a fixed map.
type StaticAnchors map[string]model.UtxoMeta

func (s StaticAnchors) AnchorIdentity(resource string) (model.UtxoMeta, bool) {
	m, ok := s[resource]
	return m, ok
}

type Options struct {
	strictOrder    bool
	detailedErrors bool
	metricsEnabled bool
	anchors        AnchorResolver
}

// Option is a function that sets some option on the Options struct
type Option func(*Options)

// NewDefaultOptions takes the defaults from the matcher settings.
func NewDefaultOptions(tSettings *settings.Settings) *Options {
	return &Options{
		strictOrder:    tSettings.Matcher.StrictOrder,
		detailedErrors: tSettings.Matcher.DetailedErrors,
		metricsEnabled: tSettings.Matcher.MetricsEnabled,
		anchors:        StaticAnchors(nil),
	}
}

func ProcessOptions(tSettings *settings.Settings, opts ...Option) *Options {
	options := NewDefaultOptions(tSettings)
	for _, o := range opts {
		o(options)
	}

	return options
}

// WithStrictOrder requires candidates to appear in declaration order.
func WithStrictOrder(strict bool) Option {
	return func(o *Options) {
		o.strictOrder = strict
	}
}

// WithDetailedErrors reports which predicate component rejected a candidate
// instead of a generic missing-UTXO error.
func WithDetailedErrors(detailed bool) Option {
	return func(o *Options) {
		o.detailedErrors = detailed
	}
}

func WithMetrics(enabled bool) Option {
	return func(o *Options) {
		o.metricsEnabled = enabled
	}
}

// WithAnchors sets where anchored slots look up resource identities.
func WithAnchors(anchors AnchorResolver) Option {
	return func(o *Options) {
		if anchors == nil {
			anchors = StaticAnchors(nil)
		}

		o.anchors = anchors
	}
}
