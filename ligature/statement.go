package ligature

import "log/slog"

// Statement is a single fact: an entity related to a value through an
// attribute, recorded within a context entity.
type Statement struct {
	Entity    Entity
	Attribute Attribute
	Value     Value
	Context   Entity
}

// NewStatement returns a Statement after checking that every field is set.
func NewStatement(
	entity Entity,
	attribute Attribute,
	value Value,
	context Entity,
) (Statement, error) {
	switch {
	case entity.id.IsZero():
		return Statement{}, ErrFormat.With(slog.String("missing", "entity"))

	case attribute.id.IsZero():
		return Statement{}, ErrFormat.With(slog.String("missing", "attribute"))

	case value == nil:
		return Statement{}, ErrFormat.With(slog.String("missing", "value"))

	case context.id.IsZero():
		return Statement{}, ErrFormat.With(slog.String("missing", "context"))
	}

	return Statement{
		Entity:    entity,
		Attribute: attribute,
		Value:     value,
		Context:   context,
	}, nil
}

// String renders the statement in the text format, e.g.
// "<e> @<a> 3.03 <ctx>".
func (s Statement) String() string {
	v := "<nil>"
	if s.Value != nil {
		v = s.Value.String()
	}

	return s.Entity.String() + " " +
		s.Attribute.String() + " " +
		v + " " +
		s.Context.String()
}

// Equal reports whether s and o hold equal fields.
func (s Statement) Equal(o Statement) bool {
	return s.Entity == o.Entity &&
		s.Attribute == o.Attribute &&
		s.Context == o.Context &&
		Equal(s.Value, o.Value)
}
