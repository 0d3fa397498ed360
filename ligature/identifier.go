package ligature

import (
	"log/slog"
	"regexp"
)

// IdentifierPattern is the pattern every identifier must match in full.
const IdentifierPattern = `[A-Za-z_][A-Za-z0-9_]*`

var identifierRegexp = regexp.MustCompile(`^` + IdentifierPattern + `$`)

// Identifier is a validated name shared by entities, attributes, and Wander
// bindings. The zero value is not a valid identifier.
type Identifier struct {
	name string
}

// NewIdentifier validates name and returns it as an Identifier.
// It returns [ErrFormat] if name does not match [IdentifierPattern].
func NewIdentifier(name string) (Identifier, error) {
	if !IsIdentifier(name) {
		return Identifier{}, ErrFormat.
			With(slog.String("kind", "identifier"), slog.String("input", name))
	}

	return Identifier{name: name}, nil
}

// IsIdentifier reports whether s is a valid identifier.
func IsIdentifier(s string) bool {
	return identifierRegexp.MatchString(s)
}

// Name returns the identifier text.
func (id Identifier) Name() string { return id.name }

// String implements fmt.Stringer.
func (id Identifier) String() string { return id.name }

// IsZero reports whether id is the zero Identifier.
func (id Identifier) IsZero() bool { return id.name == "" }

// Entity names a node in the data graph.
type Entity struct {
	id Identifier
}

// NewEntity returns the Entity named by name.
func NewEntity(name string) (Entity, error) {
	id, err := NewIdentifier(name)
	if err != nil {
		return Entity{}, err
	}

	return Entity{id: id}, nil
}

// EntityOf returns the Entity named by an already validated identifier.
func EntityOf(id Identifier) Entity { return Entity{id: id} }

// Identifier returns the entity's identifier.
func (e Entity) Identifier() Identifier { return e.id }

// String renders the entity literal, e.g. "<name>".
func (e Entity) String() string { return "<" + e.id.name + ">" }

func (Entity) value() {}

// Attribute names a relation between an entity and a value.
// It is not interchangeable with [Entity].
type Attribute struct {
	id Identifier
}

// NewAttribute returns the Attribute named by name.
func NewAttribute(name string) (Attribute, error) {
	id, err := NewIdentifier(name)
	if err != nil {
		return Attribute{}, err
	}

	return Attribute{id: id}, nil
}

// AttributeOf returns the Attribute named by an already validated identifier.
func AttributeOf(id Identifier) Attribute { return Attribute{id: id} }

// Identifier returns the attribute's identifier.
func (a Attribute) Identifier() Identifier { return a.id }

// String renders the attribute literal, e.g. "@<name>".
func (a Attribute) String() string { return "@<" + a.id.name + ">" }
