package wander

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/ardnew/ligature/ligature"
)

// Run parses source and evaluates it with [Script.Evaluate].
func Run(ctx context.Context, source string, opts ...Option) (Value, error) {
	script, err := Parse(ctx, source, opts...)
	if err != nil {
		return nil, err
	}

	return script.Evaluate(ctx, opts...)
}

// Evaluate evaluates the script in a new top-level frame and returns the
// value of its last expression, or [Nothing] if it has none.
func (s *Script) Evaluate(ctx context.Context, opts ...Option) (Value, error) {
	return s.EvaluateIn(ctx, NewEnvironment(), opts...)
}

// EvaluateIn evaluates the script directly in env, so that its let
// statements remain bound in env afterward. A nil env is a new empty one.
func (s *Script) EvaluateIn(
	ctx context.Context,
	env *Environment,
	opts ...Option,
) (Value, error) {
	if env == nil {
		env = NewEnvironment()
	}

	ev := &evaluator{ctx: ctx, cfg: makeConfig(opts...)}

	result, err := ev.evalBody(s.Elements, env)
	if err != nil {
		ev.cfg.logger.TraceContext(ctx, "evaluation failed",
			slog.Any("error", err))

		return nil, err
	}

	ev.cfg.logger.TraceContext(ctx, "evaluation complete",
		slog.String("type", result.TypeName()),
		slog.Int("max_call_depth", ev.peak))

	return result, nil
}

// Evaluate evaluates a single element in env. A [*LetStatement] binds its
// name in env and yields [Nothing]. A nil env is a new empty one.
func Evaluate(
	ctx context.Context,
	el Element,
	env *Environment,
	opts ...Option,
) (Value, error) {
	if env == nil {
		env = NewEnvironment()
	}

	ev := &evaluator{ctx: ctx, cfg: makeConfig(opts...)}

	return ev.eval(el, env)
}

// evaluator carries the state of one top-level evaluation.
type evaluator struct {
	ctx   context.Context
	cfg   config
	depth int
	peak  int
}

// evalBody evaluates elements in order in env and returns the value of the
// last expression.
func (ev *evaluator) evalBody(elements []Element, env *Environment) (Value, error) {
	result := Nothing

	for _, el := range elements {
		v, err := ev.eval(el, env)
		if err != nil {
			return nil, err
		}

		if _, isLet := el.(*LetStatement); !isLet {
			result = v
		}
	}

	return result, nil
}

func (ev *evaluator) eval(el Element, env *Environment) (Value, error) {
	switch n := el.(type) {
	case *LetStatement:
		v, err := ev.eval(n.Expression, env)
		if err != nil {
			return nil, err
		}

		env.Bind(n.Name, v)

		return Nothing, nil

	case *ValueExpression:
		return n.Value, nil

	case *ReferenceExpression:
		if v, ok := env.Lookup(n.Name); ok {
			return v, nil
		}

		if b, ok := LookupBuiltin(n.Name.Name()); ok {
			return b, nil
		}

		return nil, ErrUnboundName.WithPosition(n.Pos).
			With(slog.String("name", n.Name.Name()))

	case *Scope:
		return ev.evalBody(n.Elements, env.NewEnclosed())

	case *FunctionDefinition:
		return &Closure{Definition: n, env: env}, nil

	case *FunctionCall:
		return ev.call(n, env)

	default:
		return nil, ErrCall.With(slog.String("error", "unknown syntax node"))
	}
}

// call resolves the call target against the built-in registry and then the
// environment, evaluates the arguments left to right in env, and applies
// the target.
func (ev *evaluator) call(n *FunctionCall, env *Environment) (Value, error) {
	var target Value

	if b, ok := LookupBuiltin(n.Name.Name()); ok {
		target = b
	} else if v, ok := env.Lookup(n.Name); ok {
		target = v
	} else {
		return nil, ErrUnboundName.WithPosition(n.Pos).
			With(slog.String("name", n.Name.Name()))
	}

	var arity int

	switch fn := target.(type) {
	case *Builtin:
		arity = fn.Arity()

	case *Closure:
		arity = fn.Arity()

	default:
		return nil, ErrCall.WithPosition(n.Pos).
			With(
				slog.String("error", "value is not a function"),
				slog.String("name", n.Name.Name()),
				slog.String("type", target.TypeName()),
			)
	}

	if len(n.Arguments) != arity {
		return nil, ErrCall.WithPosition(n.Pos).
			With(
				slog.String("error", "wrong number of arguments"),
				slog.String("name", n.Name.Name()),
				slog.String("expected", strconv.Itoa(arity)),
				slog.String("found", strconv.Itoa(len(n.Arguments))),
			)
	}

	args := make([]Value, len(n.Arguments))

	for i, arg := range n.Arguments {
		v, err := ev.eval(arg, env)
		if err != nil {
			return nil, err
		}

		args[i] = v
	}

	switch fn := target.(type) {
	case *Builtin:
		v, err := fn.fn(args)
		if err != nil {
			return nil, withPosition(err, n)
		}

		return v, nil

	default:
		return ev.apply(n, fn.(*Closure), args)
	}
}

// apply runs a closure body in a new frame chained onto the closure's
// captured environment.
func (ev *evaluator) apply(n *FunctionCall, c *Closure, args []Value) (Value, error) {
	ev.depth++
	defer func() { ev.depth-- }()

	ev.peak = max(ev.peak, ev.depth)

	if ev.cfg.maxDepth > 0 && ev.depth > ev.cfg.maxDepth {
		return nil, ErrCall.WithPosition(n.Pos).
			Wrap(ErrCallDepth).
			With(
				slog.String("name", n.Name.Name()),
				slog.Int("max_depth", ev.cfg.maxDepth),
			)
	}

	frame := c.env.NewEnclosed()
	for i, param := range c.Definition.Parameters {
		frame.Bind(param, args[i])
	}

	ev.cfg.logger.TraceContext(ev.ctx, "call",
		slog.String("name", n.Name.Name()),
		slog.Int("depth", ev.depth))

	return ev.evalBody(c.Definition.Body, frame)
}

// withPosition locates a built-in's error at the call site.
func withPosition(err error, n *FunctionCall) error {
	var le *ligature.Error
	if errors.As(err, &le) {
		return le.WithPosition(n.Pos)
	}

	return err
}
