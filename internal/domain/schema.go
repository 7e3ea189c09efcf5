package domain

import "fmt"

// Schema is one JSON Type Definition node. Exactly one form's fields are
// populated; Definitions appears only on the document root and is shared,
// read-only, by every ref lookup. Nodes are never mutated after
// construction, so a root may serve concurrent validations.
type Schema struct {
	Metadata Value
	Nullable bool

	Definitions SchemaMap

	Ref                  *string
	Type                 Type
	Enum                 []string
	Elements             *Schema
	Properties           SchemaMap
	OptionalProperties   SchemaMap
	AdditionalProperties bool
	Values               *Schema
	Discriminator        string
	Mapping              SchemaMap
}

// SchemaMap is a name-to-schema mapping that keeps declaration order.
type SchemaMap []NamedSchema

type NamedSchema struct {
	Name   string
	Schema Schema
}

func (m SchemaMap) Get(name string) (Schema, bool) {
	for _, entry := range m {
		if entry.Name == name {
			return entry.Schema, true
		}
	}
	return Schema{}, false
}

func (m SchemaMap) Has(name string) bool {
	_, ok := m.Get(name)
	return ok
}

// Signature positions, one per form-selecting keyword.
const (
	sigRef = iota
	sigType
	sigEnum
	sigElements
	sigProperties
	sigOptionalProperties
	sigAdditionalProperties
	sigValues
	sigDiscriminator
	sigMapping
)

type formSignature [10]bool

// The keyword combinations RFC 8927 permits. nullable, metadata and
// definitions combine freely and are not part of the signature.
var validFormSignatures = []formSignature{
	{}, // empty
	{sigRef: true},
	{sigType: true},
	{sigEnum: true},
	{sigElements: true},
	{sigProperties: true},
	{sigOptionalProperties: true},
	{sigProperties: true, sigOptionalProperties: true},
	{sigProperties: true, sigAdditionalProperties: true},
	{sigOptionalProperties: true, sigAdditionalProperties: true},
	{sigProperties: true, sigOptionalProperties: true, sigAdditionalProperties: true},
	{sigValues: true},
	{sigDiscriminator: true, sigMapping: true},
}

func (sig formSignature) valid() bool {
	for _, allowed := range validFormSignatures {
		if sig == allowed {
			return true
		}
	}
	return false
}

// SchemaFromValue builds a Schema from a decoded JSON document. It rejects
// unknown keywords, ill-typed keyword values and keyword combinations that
// match no form. Member order of properties, optionalProperties, mapping
// and definitions is preserved.
func SchemaFromValue(v Value) (Schema, error) {
	return schemaFromValue(v, true)
}

func schemaFromValue(v Value, root bool) (Schema, error) {
	obj, ok := v.(Object)
	if !ok {
		return Schema{}, fmt.Errorf("%w: schema must be an object", ErrInvalidSchema)
	}

	var s Schema
	var sig formSignature

	for _, kw := range obj {
		switch kw.Name {
		case "metadata":
			s.Metadata = kw.Value
		case "nullable":
			b, ok := kw.Value.(Bool)
			if !ok {
				return Schema{}, fmt.Errorf("%w: nullable must be a boolean", ErrInvalidSchema)
			}
			s.Nullable = bool(b)
		case "definitions":
			if !root {
				return Schema{}, fmt.Errorf("%w: definitions allowed only at the root", ErrInvalidSchema)
			}
			defs, err := subSchemaMap(kw.Value, "definitions")
			if err != nil {
				return Schema{}, err
			}
			s.Definitions = defs
		case "ref":
			str, ok := kw.Value.(String)
			if !ok {
				return Schema{}, fmt.Errorf("%w: ref must be a string", ErrInvalidSchema)
			}
			ref := string(str)
			s.Ref = &ref
			sig[sigRef] = true
		case "type":
			str, ok := kw.Value.(String)
			if !ok {
				return Schema{}, fmt.Errorf("%w: type must be a string", ErrInvalidSchema)
			}
			t, err := ParseType(string(str))
			if err != nil {
				return Schema{}, err
			}
			s.Type = t
			sig[sigType] = true
		case "enum":
			values, err := enumValues(kw.Value)
			if err != nil {
				return Schema{}, err
			}
			s.Enum = values
			sig[sigEnum] = true
		case "elements":
			sub, err := schemaFromValue(kw.Value, false)
			if err != nil {
				return Schema{}, err
			}
			s.Elements = &sub
			sig[sigElements] = true
		case "properties":
			props, err := subSchemaMap(kw.Value, "properties")
			if err != nil {
				return Schema{}, err
			}
			s.Properties = props
			sig[sigProperties] = true
		case "optionalProperties":
			props, err := subSchemaMap(kw.Value, "optionalProperties")
			if err != nil {
				return Schema{}, err
			}
			s.OptionalProperties = props
			sig[sigOptionalProperties] = true
		case "additionalProperties":
			b, ok := kw.Value.(Bool)
			if !ok {
				return Schema{}, fmt.Errorf("%w: additionalProperties must be a boolean", ErrInvalidSchema)
			}
			s.AdditionalProperties = bool(b)
			sig[sigAdditionalProperties] = true
		case "values":
			sub, err := schemaFromValue(kw.Value, false)
			if err != nil {
				return Schema{}, err
			}
			s.Values = &sub
			sig[sigValues] = true
		case "discriminator":
			str, ok := kw.Value.(String)
			if !ok {
				return Schema{}, fmt.Errorf("%w: discriminator must be a string", ErrInvalidSchema)
			}
			s.Discriminator = string(str)
			sig[sigDiscriminator] = true
		case "mapping":
			mapping, err := subSchemaMap(kw.Value, "mapping")
			if err != nil {
				return Schema{}, err
			}
			s.Mapping = mapping
			sig[sigMapping] = true
		default:
			return Schema{}, fmt.Errorf("%w: unknown keyword %q", ErrInvalidSchema, kw.Name)
		}
	}

	if !sig.valid() {
		return Schema{}, fmt.Errorf("%w: invalid combination of keywords", ErrInvalidSchema)
	}
	return s, nil
}

func subSchemaMap(v Value, keyword string) (SchemaMap, error) {
	obj, ok := v.(Object)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be an object", ErrInvalidSchema, keyword)
	}
	entries := SchemaMap{}
	for _, member := range obj {
		sub, err := schemaFromValue(member.Value, false)
		if err != nil {
			return nil, err
		}
		entries = append(entries, NamedSchema{Name: member.Name, Schema: sub})
	}
	return entries, nil
}

func enumValues(v Value) ([]string, error) {
	arr, ok := v.(Array)
	if !ok {
		return nil, fmt.Errorf("%w: enum must be an array", ErrInvalidSchema)
	}
	if len(arr) == 0 {
		return nil, fmt.Errorf("%w: enum must not be empty", ErrInvalidSchema)
	}
	seen := make(map[string]struct{}, len(arr))
	values := make([]string, 0, len(arr))
	for _, elem := range arr {
		str, ok := elem.(String)
		if !ok {
			return nil, fmt.Errorf("%w: enum values must be strings", ErrInvalidSchema)
		}
		if _, dup := seen[string(str)]; dup {
			return nil, fmt.Errorf("%w: enum contains duplicate %q", ErrInvalidSchema, string(str))
		}
		seen[string(str)] = struct{}{}
		values = append(values, string(str))
	}
	return values, nil
}
