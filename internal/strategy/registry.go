package strategy

import (
	"sort"
	"strings"

	"github.com/rxtech-lab/argo-signals/internal/types"
	"github.com/rxtech-lab/argo-signals/pkg/errors"
)

// Constructor builds a strategy from its configuration.
type Constructor func(config types.StrategyConfig) (Strategy, error)

// Registry resolves strategy names to constructors.
type Registry interface {
	// ListStrategies returns every registered name in sorted order
	ListStrategies() []Name
	// Has reports whether name resolves to a strategy
	Has(name string) bool
	// Create builds the named strategy, failing with ErrCodeUnknownStrategy
	// for an unknown name and ErrCodeInvalidConfiguration for a bad config
	Create(name string, config types.StrategyConfig) (Strategy, error)
}

// RegistryV1 is the closed set of built-in strategies. It is immutable and
// safe for concurrent use.
type RegistryV1 struct {
	constructors map[Name]Constructor
}

// NewRegistry returns a registry holding the eight built-in strategies.
func NewRegistry() Registry {
	return &RegistryV1{
		constructors: map[Name]Constructor{
			NameMomentum:      adapt(NewMomentum),
			NameMeanReversion: adapt(NewMeanReversion),
			NameArbitrage:     adapt(NewArbitrage),
			NameGrid:          adapt(NewGrid),
			NameDCA:           adapt(NewDCA),
			NameBreakout:      adapt(NewBreakout),
			NameScalping:      adapt(NewScalping),
			NameSwing:         adapt(NewSwing),
		},
	}
}

// adapt keeps a failed constructor from returning a typed nil inside a
// non-nil interface.
func adapt[T Strategy](build func(types.StrategyConfig) (T, error)) Constructor {
	return func(config types.StrategyConfig) (Strategy, error) {
		s, err := build(config)
		if err != nil {
			return nil, err
		}

		return s, nil
	}
}

// ListStrategies implements Registry.
func (r *RegistryV1) ListStrategies() []Name {
	names := make([]Name, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}

	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })

	return names
}

// Has implements Registry.
func (r *RegistryV1) Has(name string) bool {
	_, ok := r.constructors[normalize(name)]

	return ok
}

// Create implements Registry.
func (r *RegistryV1) Create(name string, config types.StrategyConfig) (Strategy, error) {
	constructor, ok := r.constructors[normalize(name)]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeUnknownStrategy, "unknown strategy %q", name)
	}

	s, err := constructor(config)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "Create: invalid config for strategy %s", normalize(name))
	}

	return s, nil
}

func normalize(name string) Name {
	return Name(strings.ToLower(strings.TrimSpace(name)))
}
