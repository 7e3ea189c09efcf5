package domain

// Value is the in-memory form of a decoded JSON document. The set of
// implementations is closed: Null, Bool, Number, String, Array and Object.
type Value interface {
	kind() string
}

type Null struct{}

type Bool bool

type Number float64

type String string

type Array []Value

// Object keeps members in document order. Validation results are ordered,
// so member order must survive decoding.
type Object []Member

type Member struct {
	Name  string
	Value Value
}

func (Null) kind() string   { return "null" }
func (Bool) kind() string   { return "boolean" }
func (Number) kind() string { return "number" }
func (String) kind() string { return "string" }
func (Array) kind() string  { return "array" }
func (Object) kind() string { return "object" }

func (o Object) Get(name string) (Value, bool) {
	for _, m := range o {
		if m.Name == name {
			return m.Value, true
		}
	}
	return nil, false
}

func (o Object) Has(name string) bool {
	_, ok := o.Get(name)
	return ok
}

func IsNull(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Null)
	return ok
}
