package domain

import "fmt"

// Form is the structural kind of a schema node. RFC 8927 restricts valid
// schemas to eight mutually exclusive keyword combinations.
type Form int

const (
	FormEmpty Form = iota
	FormRef
	FormType
	FormEnum
	FormElements
	FormProperties
	FormValues
	FormDiscriminator
)

func (f Form) String() string {
	switch f {
	case FormRef:
		return "ref"
	case FormType:
		return "type"
	case FormEnum:
		return "enum"
	case FormElements:
		return "elements"
	case FormProperties:
		return "properties"
	case FormValues:
		return "values"
	case FormDiscriminator:
		return "discriminator"
	default:
		return "empty"
	}
}

// Type is a primitive type tag used by the type form.
type Type string

const (
	TypeBoolean   Type = "boolean"
	TypeInt8      Type = "int8"
	TypeUint8     Type = "uint8"
	TypeInt16     Type = "int16"
	TypeUint16    Type = "uint16"
	TypeInt32     Type = "int32"
	TypeUint32    Type = "uint32"
	TypeFloat32   Type = "float32"
	TypeFloat64   Type = "float64"
	TypeString    Type = "string"
	TypeTimestamp Type = "timestamp"
)

func ParseType(value string) (Type, error) {
	t := Type(value)
	if !t.IsValid() {
		return "", fmt.Errorf("%w: unknown type %q", ErrInvalidSchema, value)
	}
	return t, nil
}

func (t Type) IsValid() bool {
	switch t {
	case TypeBoolean, TypeInt8, TypeUint8, TypeInt16, TypeUint16,
		TypeInt32, TypeUint32, TypeFloat32, TypeFloat64, TypeString,
		TypeTimestamp:
		return true
	default:
		return false
	}
}

// Form reports which form the node uses. Meaningful once the schema has
// passed construction or CheckWellFormed.
func (s Schema) Form() Form {
	switch {
	case s.Ref != nil:
		return FormRef
	case s.Type != "":
		return FormType
	case s.Enum != nil:
		return FormEnum
	case s.Elements != nil:
		return FormElements
	case s.Properties != nil || s.OptionalProperties != nil:
		return FormProperties
	case s.Values != nil:
		return FormValues
	case s.Mapping != nil:
		return FormDiscriminator
	default:
		return FormEmpty
	}
}
