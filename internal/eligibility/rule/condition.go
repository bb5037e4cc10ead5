package rule

import (
	"errors"
	"fmt"

	"freight/internal/eligibility/strategy"

	"github.com/google/cel-go/cel"
)

// NewConditionEnv declares the variables a rule's `when` expression may refer to:
//
//	totalWeight, totalVolume           double  shipment aggregates (kg, cm³)
//	packageCount                       int     number of packages
//	origin, destination                string  country codes
//	maxLength, maxWidth, maxHeight     double  largest package dimensions (cm)
func NewConditionEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("totalWeight", cel.DoubleType),
		cel.Variable("totalVolume", cel.DoubleType),
		cel.Variable("packageCount", cel.IntType),
		cel.Variable("origin", cel.StringType),
		cel.Variable("destination", cel.StringType),
		cel.Variable("maxLength", cel.DoubleType),
		cel.Variable("maxWidth", cel.DoubleType),
		cel.Variable("maxHeight", cel.DoubleType),
	)
}

// compile parses and type-checks expr into a program that must yield a bool.
func compile(env *cel.Env, expr string) (cel.Program, error) {
	ast, iss := env.Parse(expr)
	if iss.Err() != nil {
		return nil, iss.Err()
	}

	checked, iss := env.Check(ast)
	if iss.Err() != nil {
		return nil, iss.Err()
	}

	if !checked.OutputType().IsExactType(cel.BoolType) {
		return nil, fmt.Errorf("condition must be boolean, got %s", checked.OutputType())
	}

	return env.Program(checked)
}

// activation exposes the scoring context under the names declared by NewConditionEnv.
func activation(sc *strategy.ScoringContext) map[string]any {
	return map[string]any{
		"totalWeight":  sc.Metrics.TotalWeight,
		"totalVolume":  sc.Metrics.TotalVolume,
		"packageCount": int64(len(sc.Shipment.Packages)),
		"origin":       sc.Shipment.OriginAddress.Country,
		"destination":  sc.Shipment.DestinationAddress.Country,
		"maxLength":    sc.Metrics.MaxDimensions.Length,
		"maxWidth":     sc.Metrics.MaxDimensions.Width,
		"maxHeight":    sc.Metrics.MaxDimensions.Height,
	}
}

// eval runs a compiled condition.
func eval(program cel.Program, sc *strategy.ScoringContext) (bool, error) {
	result, _, err := program.Eval(activation(sc))
	if err != nil {
		return false, err
	}

	passed, ok := result.Value().(bool)
	if !ok {
		return false, errors.New("condition did not yield a boolean")
	}

	return passed, nil
}
