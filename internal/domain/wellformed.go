package domain

import "fmt"

// CheckWellFormed verifies the semantic rules construction cannot see in a
// single node: every ref resolves against the root definitions, and every
// discriminator mapping variant is a non-nullable properties-form schema
// that leaves the tag property alone. The traversal is structural only
// (refs are not followed), so it always terminates; a definitions graph
// with cycles is well-formed as long as every name resolves.
func (s Schema) CheckWellFormed() error {
	return s.checkNode(s, true)
}

func (s Schema) checkNode(root Schema, isRoot bool) error {
	if !isRoot && s.Definitions != nil {
		return fmt.Errorf("%w: definitions allowed only at the root", ErrInvalidSchema)
	}
	for _, def := range s.Definitions {
		if err := def.Schema.checkNode(root, false); err != nil {
			return err
		}
	}

	if s.Ref != nil {
		if len(root.Definitions) == 0 {
			return fmt.Errorf("%w: ref %q but no definitions", ErrInvalidSchema, *s.Ref)
		}
		if !root.Definitions.Has(*s.Ref) {
			return fmt.Errorf("%w: ref to unknown definition %q", ErrInvalidSchema, *s.Ref)
		}
	}

	if s.Elements != nil {
		if err := s.Elements.checkNode(root, false); err != nil {
			return err
		}
	}

	for _, prop := range s.Properties {
		if err := prop.Schema.checkNode(root, false); err != nil {
			return err
		}
		if s.OptionalProperties.Has(prop.Name) {
			return fmt.Errorf("%w: property %q is both required and optional", ErrInvalidSchema, prop.Name)
		}
	}
	for _, prop := range s.OptionalProperties {
		if err := prop.Schema.checkNode(root, false); err != nil {
			return err
		}
	}

	if s.Values != nil {
		if err := s.Values.checkNode(root, false); err != nil {
			return err
		}
	}

	for _, variant := range s.Mapping {
		if err := variant.Schema.checkNode(root, false); err != nil {
			return err
		}
		if variant.Schema.Nullable {
			return fmt.Errorf("%w: mapping variant %q must not be nullable", ErrInvalidSchema, variant.Name)
		}
		if variant.Schema.Form() != FormProperties {
			return fmt.Errorf("%w: mapping variant %q must use the properties form", ErrInvalidSchema, variant.Name)
		}
		if variant.Schema.Properties.Has(s.Discriminator) || variant.Schema.OptionalProperties.Has(s.Discriminator) {
			return fmt.Errorf("%w: mapping variant %q redefines discriminator %q", ErrInvalidSchema, variant.Name, s.Discriminator)
		}
	}

	return nil
}
