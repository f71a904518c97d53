package audit

import (
	"errors"
	"fmt"
)

var (
	ErrUnboundGuard = errors.New("field guard is not bound to a class")
	ErrGuardBound   = errors.New("field guard is already bound")
)

// FieldGuard validates and stores one declared field of a class. A single
// guard serves every object of its class, so it only holds configuration;
// values live in each object's storage under FieldKey.
type FieldGuard struct {
	rules    Rules
	owner    *Class
	name     string
	fieldKey string
}

// NewTextGuard creates a guard for a bounded-length string field
func NewTextGuard(rules TextRules) *FieldGuard {
	return &FieldGuard{rules: rules}
}

// NewNumberGuard creates a guard for a bounded numeric field
func NewNumberGuard(rules NumberRules) *FieldGuard {
	return &FieldGuard{rules: rules}
}

// NewCountGuard creates a guard for a bounded non-negative integer field
func NewCountGuard(rules CountRules) *FieldGuard {
	return &FieldGuard{rules: rules}
}

// bind attaches the guard to its owning class under the declared field name.
func (g *FieldGuard) bind(owner *Class, name string) error {
	if g.owner != nil {
		return fmt.Errorf("%w: %s.%s", ErrGuardBound, g.owner.name, g.name)
	}
	g.owner = owner
	g.name = name
	g.fieldKey = "_" + name
	return nil
}

func (g *FieldGuard) Name() string     { return g.name }
func (g *FieldGuard) FieldKey() string { return g.fieldKey }
func (g *FieldGuard) Rules() Rules     { return g.rules }
func (g *FieldGuard) Kind() Kind       { return g.rules.Kind() }

// Validate checks value against the guard's rules. It never logs or stores.
func (g *FieldGuard) Validate(value any) error {
	return g.rules.check(g.name, value)
}

// Write validates value, appends one "changed attribute" line to the class
// log and then stores value on obj. Nothing is logged or stored when
// validation fails; nothing is stored when the log append fails.
func (g *FieldGuard) Write(obj Object, value any) error {
	if g.owner == nil {
		return ErrUnboundGuard
	}
	className := obj.ClassName()
	objName := ObjectName(obj)

	if err := g.Validate(value); err != nil {
		return err
	}

	line := fmt.Sprintf("Object '%s' of class %s changed attribute '%s' to '%s'",
		objName, className, g.name, FormatValue(value))
	if err := g.owner.sink.AppendLine(className, line); err != nil {
		return fmt.Errorf("append %s change: %w", g.name, err)
	}

	obj.Store(g.fieldKey, value)
	return nil
}

// Read returns the value stored on obj. Called with a nil obj it returns
// the guard itself, which lets callers introspect a class's fields.
func (g *FieldGuard) Read(obj Object) any {
	if obj == nil {
		return g
	}
	value, _ := obj.Load(g.fieldKey)
	return value
}

// ReadAs returns the value stored on obj for g converted to T. The boolean
// is false when nothing was stored or the stored value is not a T.
func ReadAs[T any](g *FieldGuard, obj Object) (T, bool) {
	var zero T
	if obj == nil {
		return zero, false
	}
	value, ok := obj.Load(g.fieldKey)
	if !ok {
		return zero, false
	}
	typed, ok := value.(T)
	return typed, ok
}
