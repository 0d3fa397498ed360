package lig

import (
	"context"
	"log/slog"
	"math/big"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/ardnew/ligature/ligature"
)

// Predefined errors (sentinel values).
var (
	ErrFilterCompile  = ligature.NewError("filter compilation failed")
	ErrFilterEvaluate = ligature.NewError("filter evaluation failed")
)

// Filter returns the statements for which the expr-lang predicate
// expression is true. The expression sees the variables entity, attribute,
// value, kind and context, as produced by [StatementToMap], except that an
// integer outside the int64 range is presented as its nearest float64 so
// that it remains comparable.
//
// An empty expression keeps every statement.
func Filter(
	ctx context.Context,
	statements []ligature.Statement,
	expression string,
	opts ...Option,
) ([]ligature.Statement, error) {
	cfg := makeConfig(opts...)

	expression = strings.TrimSpace(expression)
	if expression == "" {
		return statements, nil
	}

	program, err := expr.Compile(expression, expr.Env(filterEnv{}), expr.AsBool())
	if err != nil {
		return nil, ErrFilterCompile.Wrap(err).
			With(slog.String("source", expression))
	}

	kept := make([]ligature.Statement, 0, len(statements))

	for _, s := range statements {
		result, err := vm.Run(program, makeFilterEnv(s))
		if err != nil {
			return nil, ErrFilterEvaluate.Wrap(err).
				With(
					slog.String("source", expression),
					slog.String("statement", s.String()),
				)
		}

		if ok, _ := result.(bool); ok {
			kept = append(kept, s)
		}
	}

	cfg.logger.TraceContext(ctx, "filter statements",
		slog.String("source", expression),
		slog.Int("input_count", len(statements)),
		slog.Int("kept_count", len(kept)))

	return kept, nil
}

// filterEnv is the variable set visible to filter expressions. Value is
// declared as any so that expr accepts numeric and string operators on it
// and checks the operands at run time.
type filterEnv struct {
	Entity    string `expr:"entity"`
	Attribute string `expr:"attribute"`
	Value     any    `expr:"value"`
	Kind      string `expr:"kind"`
	Context   string `expr:"context"`
}

func makeFilterEnv(s ligature.Statement) filterEnv {
	env := filterEnv{
		Entity:    s.Entity.Identifier().Name(),
		Attribute: s.Attribute.Identifier().Name(),
		Context:   s.Context.Identifier().Name(),
	}

	if s.Value != nil {
		env.Kind = s.Value.Kind().String()
		env.Value = ToNative(s.Value)
	}

	if n, ok := env.Value.(*big.Int); ok {
		env.Value, _ = new(big.Float).SetInt(n).Float64()
	}

	return env
}
