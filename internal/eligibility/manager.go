package eligibility

import (
	"maps"
	"slices"
	"sync"

	"freight/internal/eligibility/strategy"
)

// registry keeps strategies in registration order. Registering a name twice replaces the
// earlier strategy in place.
type registry struct {
	order []strategy.Strategy
	index map[string]int
}

func newRegistry() *registry {
	return &registry{index: make(map[string]int)}
}

func (r *registry) register(s strategy.Strategy) {
	if i, ok := r.index[s.Name()]; ok {
		r.order[i] = s
		return
	}

	r.index[s.Name()] = len(r.order)
	r.order = append(r.order, s)
}

func (r *registry) get(name string) (strategy.Strategy, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}

	return r.order[i], true
}

// Manager holds the primary and secondary strategy registries and aggregates their scores.
// It is safe for concurrent use.
type Manager struct {
	mu        sync.RWMutex
	primary   *registry
	secondary *registry
}

// NewManager creates a manager pre-populated with the built-in strategies parameterised by t.
func NewManager(t strategy.Thresholds) *Manager {
	m := &Manager{primary: newRegistry(), secondary: newRegistry()}
	for _, s := range strategy.Primary(t) {
		m.primary.register(s)
	}
	for _, s := range strategy.Secondary(t) {
		m.secondary.register(s)
	}

	return m
}

// RegisterPrimaryStrategy adds s to the primary registry, replacing a strategy of the same name.
func (m *Manager) RegisterPrimaryStrategy(s strategy.Strategy) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.primary.register(s)
}

// RegisterSecondaryStrategy adds s to the secondary registry, replacing a strategy of the same name.
func (m *Manager) RegisterSecondaryStrategy(s strategy.Strategy) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.secondary.register(s)
}

// CalculatePrimaryScore returns the weighted average of the primary strategies named in weights.
func (m *Manager) CalculatePrimaryScore(sc *strategy.ScoringContext, weights map[string]float64) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return weightedScore(m.primary, sc, weights)
}

// CalculateSecondaryScore returns the weighted average of the secondary strategies named in weights.
func (m *Manager) CalculateSecondaryScore(sc *strategy.ScoringContext, weights map[string]float64) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return weightedScore(m.secondary, sc, weights)
}

// CalculatePrimaryScores returns the raw score of every primary strategy by name.
func (m *Manager) CalculatePrimaryScores(sc *strategy.ScoringContext) map[string]float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return rawScores(m.primary, sc)
}

// CalculateSecondaryScores returns the raw score of every secondary strategy by name.
func (m *Manager) CalculateSecondaryScores(sc *strategy.ScoringContext) map[string]float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return rawScores(m.secondary, sc)
}

// CollectReasons gathers strategy reasons for level, primary strategies first:
//   - Minimal: none
//   - PositiveOnly: PositiveReasons of every strategy that has them
//   - Full: Reasons of every strategy that has them
func (m *Manager) CollectReasons(sc *strategy.ScoringContext, level ExplainabilityLevel) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	reasons := make([]string, 0)
	for _, r := range []*registry{m.primary, m.secondary} {
		for _, s := range r.order {
			switch level {
			case PositiveOnly:
				if e, ok := s.(strategy.PositiveExplainer); ok {
					reasons = append(reasons, e.PositiveReasons(sc)...)
				}
			case Full:
				if e, ok := s.(strategy.Explainer); ok {
					reasons = append(reasons, e.Reasons(sc)...)
				}
			}
		}
	}

	return reasons
}

// weightedScore skips weight names without a registered strategy. It returns 0 when no
// weight matched.
func weightedScore(r *registry, sc *strategy.ScoringContext, weights map[string]float64) float64 {
	var total, totalWeight float64
	for _, name := range slices.Sorted(maps.Keys(weights)) {
		s, ok := r.get(name)
		if !ok {
			continue
		}
		total += s.Calculate(sc) * weights[name]
		totalWeight += weights[name]
	}

	if totalWeight == 0 {
		return 0
	}

	return total / totalWeight
}

func rawScores(r *registry, sc *strategy.ScoringContext) map[string]float64 {
	scores := make(map[string]float64, len(r.order))
	for _, s := range r.order {
		scores[s.Name()] = s.Calculate(sc)
	}

	return scores
}
