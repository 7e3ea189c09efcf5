package validate

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/osvaldoandrade/typedef/internal/domain"
)

// Service walks a schema and an instance in lockstep, accumulating
// mismatches in traversal order. The service itself is stateless; every
// call gets its own accumulator, so one Service may serve concurrent
// validations against a shared schema.
type Service struct {
	timestamps TimestampChecker
}

func NewService(timestamps TimestampChecker) *Service {
	return &Service{timestamps: timestamps}
}

// Validate returns the ordered mismatches between instance and root. An
// empty result means the instance is valid. When opts.MaxErrors is hit the
// walk stops early and exactly that many mismatches come back; when a ref
// chain exceeds opts.MaxDepth the call fails with ErrMaxDepthExceeded and
// no partial result.
func (s *Service) Validate(ctx context.Context, root domain.Schema, instance domain.Value, opts Options) ([]Mismatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	st := newState(root, s.timestamps, opts)
	if err := st.validate(root, instance, nil); err != nil {
		if errors.Is(err, errTooManyMismatches) {
			return st.mismatches, nil
		}
		return nil, err
	}
	return st.mismatches, nil
}

func (st *state) validate(schema domain.Schema, instance domain.Value, parentTag *string) error {
	if schema.Nullable && domain.IsNull(instance) {
		return nil
	}

	switch schema.Form() {
	case domain.FormEmpty:
		return nil
	case domain.FormRef:
		return st.validateRef(schema, instance)
	case domain.FormType:
		return st.validateType(schema, instance)
	case domain.FormEnum:
		return st.validateEnum(schema, instance)
	case domain.FormElements:
		return st.validateElements(schema, instance)
	case domain.FormProperties:
		return st.validateProperties(schema, instance, parentTag)
	case domain.FormValues:
		return st.validateValues(schema, instance)
	default:
		return st.validateDiscriminator(schema, instance)
	}
}

func (st *state) validateRef(schema domain.Schema, instance domain.Value) error {
	if len(st.schemaTokens) == st.opts.MaxDepth {
		return ErrMaxDepthExceeded
	}
	def, ok := st.root.Definitions.Get(*schema.Ref)
	if !ok {
		return fmt.Errorf("%w: ref to unknown definition %q", domain.ErrInvalidSchema, *schema.Ref)
	}

	st.pushSchemaFrame("definitions", *schema.Ref)
	err := st.validate(def, instance, nil)
	st.popSchemaFrame()
	return err
}

func (st *state) validateType(schema domain.Schema, instance domain.Value) error {
	st.pushSchemaToken("type")
	defer st.popSchemaToken()

	var ok bool
	switch schema.Type {
	case domain.TypeBoolean:
		_, ok = instance.(domain.Bool)
	case domain.TypeFloat32, domain.TypeFloat64:
		_, ok = instance.(domain.Number)
	case domain.TypeInt8:
		ok = intInRange(instance, -128, 127)
	case domain.TypeUint8:
		ok = intInRange(instance, 0, 255)
	case domain.TypeInt16:
		ok = intInRange(instance, -32768, 32767)
	case domain.TypeUint16:
		ok = intInRange(instance, 0, 65535)
	case domain.TypeInt32:
		ok = intInRange(instance, math.MinInt32, math.MaxInt32)
	case domain.TypeUint32:
		ok = intInRange(instance, 0, math.MaxUint32)
	case domain.TypeString:
		_, ok = instance.(domain.String)
	case domain.TypeTimestamp:
		str, isString := instance.(domain.String)
		ok = isString && st.timestamps.Valid(string(str))
	}

	if !ok {
		return st.pushMismatch()
	}
	return nil
}

func intInRange(instance domain.Value, min, max float64) bool {
	num, ok := instance.(domain.Number)
	if !ok {
		return false
	}
	n := float64(num)
	return n == math.Trunc(n) && n >= min && n <= max
}

func (st *state) validateEnum(schema domain.Schema, instance domain.Value) error {
	st.pushSchemaToken("enum")
	defer st.popSchemaToken()

	str, ok := instance.(domain.String)
	if !ok || !slices.Contains(schema.Enum, string(str)) {
		return st.pushMismatch()
	}
	return nil
}

func (st *state) validateElements(schema domain.Schema, instance domain.Value) error {
	st.pushSchemaToken("elements")
	defer st.popSchemaToken()

	arr, ok := instance.(domain.Array)
	if !ok {
		return st.pushMismatch()
	}
	for i, elem := range arr {
		st.pushInstanceToken(strconv.Itoa(i))
		err := st.validate(*schema.Elements, elem, nil)
		st.popInstanceToken()
		if err != nil {
			return err
		}
	}
	return nil
}

func (st *state) validateProperties(schema domain.Schema, instance domain.Value, parentTag *string) error {
	obj, isObject := instance.(domain.Object)
	if !isObject {
		if schema.Properties != nil {
			st.pushSchemaToken("properties")
		} else {
			st.pushSchemaToken("optionalProperties")
		}
		err := st.pushMismatch()
		st.popSchemaToken()
		return err
	}

	st.pushSchemaToken("properties")
	for _, prop := range schema.Properties {
		st.pushSchemaToken(prop.Name)
		if member, ok := obj.Get(prop.Name); ok {
			st.pushInstanceToken(prop.Name)
			err := st.validate(prop.Schema, member, nil)
			st.popInstanceToken()
			if err != nil {
				return err
			}
		} else if err := st.pushMismatch(); err != nil {
			// Missing member: instance path stays at the parent.
			return err
		}
		st.popSchemaToken()
	}
	st.popSchemaToken()

	st.pushSchemaToken("optionalProperties")
	for _, prop := range schema.OptionalProperties {
		st.pushSchemaToken(prop.Name)
		if member, ok := obj.Get(prop.Name); ok {
			st.pushInstanceToken(prop.Name)
			err := st.validate(prop.Schema, member, nil)
			st.popInstanceToken()
			if err != nil {
				return err
			}
		}
		st.popSchemaToken()
	}
	st.popSchemaToken()

	if !schema.AdditionalProperties {
		for _, member := range obj {
			if schema.Properties.Has(member.Name) || schema.OptionalProperties.Has(member.Name) {
				continue
			}
			if parentTag != nil && member.Name == *parentTag {
				continue
			}
			st.pushSchemaToken("additionalProperties")
			st.pushInstanceToken(member.Name)
			err := st.pushMismatch()
			st.popInstanceToken()
			st.popSchemaToken()
			if err != nil {
				return err
			}
		}
	}
	return nil
}

func (st *state) validateValues(schema domain.Schema, instance domain.Value) error {
	st.pushSchemaToken("values")
	defer st.popSchemaToken()

	obj, ok := instance.(domain.Object)
	if !ok {
		return st.pushMismatch()
	}
	for _, member := range obj {
		st.pushInstanceToken(member.Name)
		err := st.validate(*schema.Values, member.Value, nil)
		st.popInstanceToken()
		if err != nil {
			return err
		}
	}
	return nil
}

func (st *state) validateDiscriminator(schema domain.Schema, instance domain.Value) error {
	obj, isObject := instance.(domain.Object)
	if !isObject {
		st.pushSchemaToken("discriminator")
		err := st.pushMismatch()
		st.popSchemaToken()
		return err
	}

	tag, present := obj.Get(schema.Discriminator)
	if !present {
		st.pushSchemaToken("discriminator")
		err := st.pushMismatch()
		st.popSchemaToken()
		return err
	}

	tagValue, isString := tag.(domain.String)
	if !isString {
		return st.tagMismatch(schema.Discriminator)
	}

	variant, known := schema.Mapping.Get(string(tagValue))
	if !known {
		return st.tagMismatch(schema.Discriminator)
	}

	st.pushSchemaToken("mapping")
	st.pushSchemaToken(string(tagValue))
	err := st.validate(variant, instance, &schema.Discriminator)
	st.popSchemaToken()
	st.popSchemaToken()
	return err
}

// tagMismatch reports a tag that is present but unusable (wrong kind or
// unknown value). The tag member itself is the rejected location.
func (st *state) tagMismatch(tagName string) error {
	st.pushSchemaToken("discriminator")
	st.pushSchemaToken(tagName)
	st.pushInstanceToken(tagName)
	err := st.pushMismatch()
	st.popInstanceToken()
	st.popSchemaToken()
	st.popSchemaToken()
	return err
}
