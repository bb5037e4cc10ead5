// Package rule evaluates carrier-declared business rules against a shipment.
package rule

import (
	"fmt"
	"log/slog"
	"sync"

	"freight/internal/carrier"
	"freight/internal/eligibility/strategy"
	"freight/internal/utils"

	"github.com/google/cel-go/cel"
)

// Result is the outcome of one rule. Reasons is empty when the rule passed; otherwise it
// starts with "Rule violation: <name>" followed by one line per failed predicate.
type Result struct {
	Passed  bool     `json:"passed"`
	Reasons []string `json:"reasons"`
}

// Engine evaluates eligibility rules. Compiled `when` conditions are cached by expression,
// and the engine is safe for concurrent use.
type Engine struct {
	env *cel.Env

	mu       sync.RWMutex
	programs map[string]cel.Program
}

// NewEngine creates an engine with the standard condition environment.
func NewEngine() (*Engine, error) {
	env, err := NewConditionEnv()
	if err != nil {
		return nil, fmt.Errorf("error creating condition environment: %w", err)
	}

	return &Engine{env: env, programs: make(map[string]cel.Program)}, nil
}

// Prepare compiles every `when` condition declared by carriers so that a broken
// expression is reported up-front rather than per shipment.
func (e *Engine) Prepare(carriers []carrier.Carrier) error {
	for _, c := range carriers {
		for i, r := range c.EligibilityRules {
			if r.When == "" {
				continue
			}
			if _, err := e.program(r.When); err != nil {
				return fmt.Errorf("carrier %s: eligibility_rules[%d].when: %w", c.ID, i, err)
			}
		}
	}

	return nil
}

// EvaluateRule checks every predicate present on r: weight range, volume range, origin
// and destination country, and the `when` condition. A rule without predicates passes.
//
// For a range only one bound is reported: the minimum is checked first.
func (e *Engine) EvaluateRule(r carrier.EligibilityRule, sc *strategy.ScoringContext) Result {
	conditions := make([]bool, 0, 5)
	reasons := make([]string, 0, 2)

	if r.Weight != nil {
		total := sc.Metrics.TotalWeight
		switch {
		case r.Weight.Min != nil && total < *r.Weight.Min:
			conditions = append(conditions, false)
			reasons = append(reasons, fmt.Sprintf("Weight %skg below minimum %skg", utils.FormatNumber(total), utils.FormatNumber(*r.Weight.Min)))
		case r.Weight.Max != nil && total > *r.Weight.Max:
			conditions = append(conditions, false)
			reasons = append(reasons, fmt.Sprintf("Weight %skg exceeds maximum %skg", utils.FormatNumber(total), utils.FormatNumber(*r.Weight.Max)))
		default:
			conditions = append(conditions, true)
		}
	}

	if r.Volume != nil {
		total := sc.Metrics.TotalVolume
		switch {
		case r.Volume.Min != nil && total < *r.Volume.Min:
			conditions = append(conditions, false)
			reasons = append(reasons, fmt.Sprintf("Volume %s below minimum %s", utils.FormatNumber(total), utils.FormatNumber(*r.Volume.Min)))
		case r.Volume.Max != nil && total > *r.Volume.Max:
			conditions = append(conditions, false)
			reasons = append(reasons, fmt.Sprintf("Volume %s exceeds maximum %s", utils.FormatNumber(total), utils.FormatNumber(*r.Volume.Max)))
		default:
			conditions = append(conditions, true)
		}
	}

	if r.OriginAddress != nil {
		actual := sc.Shipment.OriginAddress.Country
		matches := actual == r.OriginAddress.Country
		conditions = append(conditions, matches)
		if !matches {
			reasons = append(reasons, fmt.Sprintf("Origin country %s doesn't match required %s", actual, r.OriginAddress.Country))
		}
	}

	if r.DestinationAddress != nil {
		actual := sc.Shipment.DestinationAddress.Country
		matches := actual == r.DestinationAddress.Country
		conditions = append(conditions, matches)
		if !matches {
			reasons = append(reasons, fmt.Sprintf("Destination country %s doesn't match required %s", actual, r.DestinationAddress.Country))
		}
	}

	if r.When != "" {
		passed, reason := e.condition(r, sc)
		conditions = append(conditions, passed)
		if !passed {
			reasons = append(reasons, reason)
		}
	}

	for _, passed := range conditions {
		if !passed {
			return Result{
				Passed:  false,
				Reasons: append([]string{"Rule violation: " + r.Name}, reasons...),
			}
		}
	}

	return Result{Passed: true, Reasons: []string{}}
}

// EvaluateAll evaluates every declared rule of c, in order. Hard-constraint rules are not
// filtered out.
func (e *Engine) EvaluateAll(c carrier.Carrier, sc *strategy.ScoringContext) []Result {
	results := make([]Result, 0, len(c.EligibilityRules))
	for _, r := range c.EligibilityRules {
		results = append(results, e.EvaluateRule(r, sc))
	}

	return results
}

func (e *Engine) condition(r carrier.EligibilityRule, sc *strategy.ScoringContext) (bool, string) {
	program, err := e.program(r.When)
	if err != nil {
		slog.Warn("rule condition compile", "rule", r.Name, "when", r.When, "error", err)
		return false, fmt.Sprintf("Condition %s is invalid: %v", r.When, err)
	}

	passed, err := eval(program, sc)
	if err != nil {
		slog.Warn("rule condition eval", "rule", r.Name, "when", r.When, "error", err)
		return false, fmt.Sprintf("Condition %s could not be evaluated: %v", r.When, err)
	}

	return passed, "Condition not satisfied: " + r.When
}

func (e *Engine) program(expr string) (cel.Program, error) {
	e.mu.RLock()
	program, ok := e.programs[expr]
	e.mu.RUnlock()
	if ok {
		return program, nil
	}

	program, err := compile(e.env, expr)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.programs[expr] = program
	e.mu.Unlock()

	return program, nil
}
