package audit

const (
	// ObjectNameKey is the attribute key holding an object's display name.
	ObjectNameKey = "_obj_name"

	// UnknownObject is logged when an object has no display name yet.
	UnknownObject = "Unknown Object"
)

// Object is the storage side of a guarded value. FieldGuards never keep
// values themselves; they read and write them through an Object.
type Object interface {
	ClassName() string
	Load(key string) (any, bool)
	Store(key string, value any)
}

// Attribute is one stored key/value pair of a Record.
type Attribute struct {
	Key   string
	Value any
}

// Record is the per-object attribute storage. Attributes keep the order in
// which they were first stored.
type Record struct {
	className string
	index     map[string]int
	attrs     []Attribute
}

// NewRecord creates empty storage for an object of the named class
func NewRecord(className string) *Record {
	return &Record{
		className: className,
		index:     make(map[string]int),
	}
}

func (r *Record) ClassName() string {
	return r.className
}

func (r *Record) Load(key string) (any, bool) {
	i, ok := r.index[key]
	if !ok {
		return nil, false
	}
	return r.attrs[i].Value, true
}

func (r *Record) Store(key string, value any) {
	if i, ok := r.index[key]; ok {
		r.attrs[i].Value = value
		return
	}
	r.index[key] = len(r.attrs)
	r.attrs = append(r.attrs, Attribute{Key: key, Value: value})
}

// SetObjectName stores the display name used in audit lines
func (r *Record) SetObjectName(name string) {
	r.Store(ObjectNameKey, name)
}

// Attributes returns a copy of every stored attribute in definition order
func (r *Record) Attributes() []Attribute {
	out := make([]Attribute, len(r.attrs))
	copy(out, r.attrs)
	return out
}

// ObjectName resolves the display name of obj, falling back to UnknownObject.
func ObjectName(obj Object) string {
	if v, ok := obj.Load(ObjectNameKey); ok {
		if name, isString := v.(string); isString {
			return name
		}
		return FormatValue(v)
	}
	return UnknownObject
}
