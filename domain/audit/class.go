package audit

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyClassName = errors.New("class name is required")
	ErrNilSink        = errors.New("audit sink is required")
	ErrDuplicateField = errors.New("field declared twice")
)

// Field declares a guarded field under its name.
type Field struct {
	Name  string
	Guard *FieldGuard
}

// Declare pairs a field name with its guard for Define.
func Declare(name string, guard *FieldGuard) Field {
	return Field{Name: name, Guard: guard}
}

// Class is a defined auditable type: its name, its log sink, the guards bound
// to its fields in declaration order and the auditor for its methods.
type Class struct {
	name    string
	sink    Sink
	fields  []*FieldGuard
	byName  map[string]*FieldGuard
	auditor *CallAuditor
}

// Define binds every declared guard to the new class. Each guard receives
// its field key here, before any object can read or write through it.
func Define(name string, sink Sink, fields ...Field) (*Class, error) {
	if name == "" {
		return nil, ErrEmptyClassName
	}
	if sink == nil {
		return nil, ErrNilSink
	}

	class := &Class{
		name:    name,
		sink:    sink,
		byName:  make(map[string]*FieldGuard, len(fields)),
		auditor: NewCallAuditor(sink),
	}
	for _, f := range fields {
		if f.Name == "" || f.Guard == nil {
			return nil, fmt.Errorf("class %s: field needs a name and a guard", name)
		}
		if _, exists := class.byName[f.Name]; exists {
			return nil, fmt.Errorf("class %s: %w: %s", name, ErrDuplicateField, f.Name)
		}
		if err := f.Guard.bind(class, f.Name); err != nil {
			return nil, fmt.Errorf("class %s: field %s: %w", name, f.Name, err)
		}
		class.byName[f.Name] = f.Guard
		class.fields = append(class.fields, f.Guard)
	}
	return class, nil
}

// MustDefine is like Define but panics on error. It suits package-level
// class definitions whose declarations are fixed at compile time.
func MustDefine(name string, sink Sink, fields ...Field) *Class {
	class, err := Define(name, sink, fields...)
	if err != nil {
		panic(err)
	}
	return class
}

func (c *Class) Name() string          { return c.name }
func (c *Class) Sink() Sink            { return c.sink }
func (c *Class) Auditor() *CallAuditor { return c.auditor }

// Field returns the guard bound under name
func (c *Class) Field(name string) (*FieldGuard, bool) {
	g, ok := c.byName[name]
	return g, ok
}

// Fields returns the guards in declaration order
func (c *Class) Fields() []*FieldGuard {
	out := make([]*FieldGuard, len(c.fields))
	copy(out, c.fields)
	return out
}

// NewRecord creates the storage for one object and records its display name
// first, so every later audit line can name the object.
func (c *Class) NewRecord(objName string) *Record {
	rec := NewRecord(c.name)
	rec.SetObjectName(objName)
	return rec
}

// LogInitialized appends the "was initialized" block listing every stored
// attribute of rec in definition order.
func (c *Class) LogInitialized(rec *Record) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Object '%s' of class %s was initialized with attributes:", ObjectName(rec), rec.ClassName())
	for _, attr := range rec.Attributes() {
		fmt.Fprintf(&b, "\n%s: %s", attr.Key, FormatValue(attr.Value))
	}
	if err := c.sink.AppendLine(rec.ClassName(), b.String()); err != nil {
		return fmt.Errorf("append initialization: %w", err)
	}
	return nil
}
