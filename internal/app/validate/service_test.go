package validate

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/osvaldoandrade/typedef/internal/domain"
)

type fakeTimestamps struct {
	valid bool
}

func (f fakeTimestamps) Valid(value string) bool {
	return f.valid
}

func refTo(name string) *string {
	return &name
}

func runValidate(t *testing.T, schema domain.Schema, instance domain.Value, opts Options) []Mismatch {
	t.Helper()
	service := NewService(fakeTimestamps{valid: true})
	got, err := service.Validate(context.Background(), schema, instance, opts)
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	return got
}

func wantMismatches(t *testing.T, got, want []Mismatch) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("mismatch lists differ\n got: %#v\nwant: %#v", got, want)
	}
}

func TestEmptyFormAcceptsAnything(t *testing.T) {
	instances := []domain.Value{
		domain.Null{},
		domain.Bool(true),
		domain.Number(3.5),
		domain.String("x"),
		domain.Array{domain.Number(1)},
		domain.Object{{Name: "a", Value: domain.Null{}}},
	}
	for _, instance := range instances {
		if got := runValidate(t, domain.Schema{}, instance, Options{}); len(got) != 0 {
			t.Fatalf("empty form rejected %#v: %#v", instance, got)
		}
	}
}

func TestNullableShortCircuitsEveryForm(t *testing.T) {
	schemas := []domain.Schema{
		{Nullable: true},
		{Nullable: true, Type: domain.TypeString},
		{Nullable: true, Enum: []string{"a"}},
		{Nullable: true, Elements: &domain.Schema{Type: domain.TypeString}},
		{Nullable: true, Properties: domain.SchemaMap{{Name: "a", Schema: domain.Schema{Type: domain.TypeString}}}},
		{Nullable: true, Values: &domain.Schema{Type: domain.TypeString}},
		{Nullable: true, Discriminator: "kind", Mapping: domain.SchemaMap{}},
		{Nullable: true, Definitions: domain.SchemaMap{{Name: "loop", Schema: domain.Schema{Ref: refTo("loop")}}}, Ref: refTo("loop")},
	}
	for i, schema := range schemas {
		if got := runValidate(t, schema, domain.Null{}, Options{MaxDepth: 4}); len(got) != 0 {
			t.Fatalf("schema %d rejected null: %#v", i, got)
		}
	}
}

func TestTypeMismatchLocation(t *testing.T) {
	got := runValidate(t, domain.Schema{Type: domain.TypeString}, domain.Null{}, Options{})
	wantMismatches(t, got, []Mismatch{{InstancePath: nil, SchemaPath: []string{"type"}}})
}

func TestTypeChecks(t *testing.T) {
	tests := []struct {
		name     string
		tag      domain.Type
		instance domain.Value
		ok       bool
	}{
		{name: "boolean ok", tag: domain.TypeBoolean, instance: domain.Bool(false), ok: true},
		{name: "boolean vs number", tag: domain.TypeBoolean, instance: domain.Number(0), ok: false},
		{name: "string ok", tag: domain.TypeString, instance: domain.String(""), ok: true},
		{name: "string vs bool", tag: domain.TypeString, instance: domain.Bool(true), ok: false},
		{name: "float64 fractional", tag: domain.TypeFloat64, instance: domain.Number(1.5), ok: true},
		{name: "float32 integral", tag: domain.TypeFloat32, instance: domain.Number(7), ok: true},
		{name: "float64 vs string", tag: domain.TypeFloat64, instance: domain.String("1.5"), ok: false},
		{name: "int8 low bound", tag: domain.TypeInt8, instance: domain.Number(-128), ok: true},
		{name: "int8 below", tag: domain.TypeInt8, instance: domain.Number(-129), ok: false},
		{name: "int8 fractional", tag: domain.TypeInt8, instance: domain.Number(1.5), ok: false},
		{name: "uint8 high bound", tag: domain.TypeUint8, instance: domain.Number(255), ok: true},
		{name: "uint8 above", tag: domain.TypeUint8, instance: domain.Number(256), ok: false},
		{name: "uint8 negative", tag: domain.TypeUint8, instance: domain.Number(-1), ok: false},
		{name: "int16 bounds", tag: domain.TypeInt16, instance: domain.Number(32767), ok: true},
		{name: "uint16 above", tag: domain.TypeUint16, instance: domain.Number(65536), ok: false},
		{name: "int32 low bound", tag: domain.TypeInt32, instance: domain.Number(-2147483648), ok: true},
		{name: "int32 above", tag: domain.TypeInt32, instance: domain.Number(2147483648), ok: false},
		{name: "uint32 high bound", tag: domain.TypeUint32, instance: domain.Number(4294967295), ok: true},
		{name: "uint32 above", tag: domain.TypeUint32, instance: domain.Number(4294967296), ok: false},
		{name: "int vs string", tag: domain.TypeInt32, instance: domain.String("1"), ok: false},
	}

	for _, tt := range tests {
		got := runValidate(t, domain.Schema{Type: tt.tag}, tt.instance, Options{})
		if tt.ok && len(got) != 0 {
			t.Fatalf("%s: unexpected mismatches %#v", tt.name, got)
		}
		if !tt.ok && len(got) != 1 {
			t.Fatalf("%s: expected one mismatch, got %#v", tt.name, got)
		}
	}
}

func TestTimestampUsesPort(t *testing.T) {
	schema := domain.Schema{Type: domain.TypeTimestamp}

	service := NewService(fakeTimestamps{valid: false})
	got, err := service.Validate(context.Background(), schema, domain.String("whenever"), Options{})
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	wantMismatches(t, got, []Mismatch{{InstancePath: nil, SchemaPath: []string{"type"}}})

	if got := runValidate(t, schema, domain.String("2025-08-23T10:30:00Z"), Options{}); len(got) != 0 {
		t.Fatalf("accepting checker should pass: %#v", got)
	}
	if got := runValidate(t, schema, domain.Number(0), Options{}); len(got) != 1 {
		t.Fatalf("non-string must fail before the checker runs: %#v", got)
	}
}

func TestEnumMembership(t *testing.T) {
	schema := domain.Schema{Enum: []string{"red", "green"}}

	if got := runValidate(t, schema, domain.String("green"), Options{}); len(got) != 0 {
		t.Fatalf("expected member to pass: %#v", got)
	}

	got := runValidate(t, schema, domain.String("blue"), Options{})
	wantMismatches(t, got, []Mismatch{{InstancePath: nil, SchemaPath: []string{"enum"}}})

	got = runValidate(t, schema, domain.Number(1), Options{})
	wantMismatches(t, got, []Mismatch{{InstancePath: nil, SchemaPath: []string{"enum"}}})
}

func TestElements(t *testing.T) {
	schema := domain.Schema{Elements: &domain.Schema{Type: domain.TypeString}}

	got := runValidate(t, schema, domain.String("not an array"), Options{})
	wantMismatches(t, got, []Mismatch{{InstancePath: nil, SchemaPath: []string{"elements"}}})

	got = runValidate(t, schema, domain.Array{domain.Number(1), domain.String("ok"), domain.Null{}}, Options{})
	wantMismatches(t, got, []Mismatch{
		{InstancePath: []string{"0"}, SchemaPath: []string{"elements", "type"}},
		{InstancePath: []string{"2"}, SchemaPath: []string{"elements", "type"}},
	})
}

func personSchema() domain.Schema {
	return domain.Schema{
		Properties: domain.SchemaMap{
			{Name: "name", Schema: domain.Schema{Type: domain.TypeString}},
			{Name: "age", Schema: domain.Schema{Type: domain.TypeUint32}},
			{Name: "phones", Schema: domain.Schema{Elements: &domain.Schema{Type: domain.TypeString}}},
		},
	}
}

func personInstance() domain.Value {
	return domain.Object{
		{Name: "age", Value: domain.String("43")},
		{Name: "phones", Value: domain.Array{domain.String("+44 1234567"), domain.Number(1)}},
	}
}

func personMismatches() []Mismatch {
	return []Mismatch{
		{InstancePath: nil, SchemaPath: []string{"properties", "name"}},
		{InstancePath: []string{"age"}, SchemaPath: []string{"properties", "age", "type"}},
		{InstancePath: []string{"phones", "1"}, SchemaPath: []string{"properties", "phones", "elements", "type"}},
	}
}

func TestPropertiesScenario(t *testing.T) {
	got := runValidate(t, personSchema(), personInstance(), Options{})
	wantMismatches(t, got, personMismatches())
}

func TestMaxErrorsReturnsPrefix(t *testing.T) {
	full := personMismatches()
	for k := 1; k <= len(full); k++ {
		got := runValidate(t, personSchema(), personInstance(), Options{MaxErrors: k})
		wantMismatches(t, got, full[:k])
	}

	// Zero means unlimited.
	got := runValidate(t, personSchema(), personInstance(), Options{MaxErrors: 0})
	wantMismatches(t, got, full)
}

func TestPropertiesOnNonObject(t *testing.T) {
	required := domain.Schema{Properties: domain.SchemaMap{{Name: "a", Schema: domain.Schema{}}}}
	got := runValidate(t, required, domain.Number(1), Options{})
	wantMismatches(t, got, []Mismatch{{InstancePath: nil, SchemaPath: []string{"properties"}}})

	optional := domain.Schema{OptionalProperties: domain.SchemaMap{{Name: "a", Schema: domain.Schema{}}}}
	got = runValidate(t, optional, domain.Number(1), Options{})
	wantMismatches(t, got, []Mismatch{{InstancePath: nil, SchemaPath: []string{"optionalProperties"}}})
}

func TestOptionalProperties(t *testing.T) {
	schema := domain.Schema{
		OptionalProperties: domain.SchemaMap{{Name: "nick", Schema: domain.Schema{Type: domain.TypeString}}},
	}

	if got := runValidate(t, schema, domain.Object{}, Options{}); len(got) != 0 {
		t.Fatalf("absent optional member must pass: %#v", got)
	}

	got := runValidate(t, schema, domain.Object{{Name: "nick", Value: domain.Number(1)}}, Options{})
	wantMismatches(t, got, []Mismatch{
		{InstancePath: []string{"nick"}, SchemaPath: []string{"optionalProperties", "nick", "type"}},
	})
}

func TestAdditionalProperties(t *testing.T) {
	schema := domain.Schema{
		Properties: domain.SchemaMap{{Name: "a", Schema: domain.Schema{Type: domain.TypeString}}},
	}
	instance := domain.Object{
		{Name: "a", Value: domain.String("ok")},
		{Name: "extra", Value: domain.Number(1)},
	}

	got := runValidate(t, schema, instance, Options{})
	wantMismatches(t, got, []Mismatch{
		{InstancePath: []string{"extra"}, SchemaPath: []string{"additionalProperties"}},
	})

	schema.AdditionalProperties = true
	if got := runValidate(t, schema, instance, Options{}); len(got) != 0 {
		t.Fatalf("additionalProperties=true must allow extras: %#v", got)
	}
}

func TestValues(t *testing.T) {
	schema := domain.Schema{Values: &domain.Schema{Type: domain.TypeUint8}}

	got := runValidate(t, schema, domain.Array{}, Options{})
	wantMismatches(t, got, []Mismatch{{InstancePath: nil, SchemaPath: []string{"values"}}})

	instance := domain.Object{
		{Name: "first", Value: domain.Number(12)},
		{Name: "second", Value: domain.Number(300)},
		{Name: "third", Value: domain.String("no")},
	}
	got = runValidate(t, schema, instance, Options{})
	wantMismatches(t, got, []Mismatch{
		{InstancePath: []string{"second"}, SchemaPath: []string{"values", "type"}},
		{InstancePath: []string{"third"}, SchemaPath: []string{"values", "type"}},
	})
}

func shapeSchema() domain.Schema {
	return domain.Schema{
		Discriminator: "type",
		Mapping: domain.SchemaMap{
			{Name: "a", Schema: domain.Schema{Properties: domain.SchemaMap{{Name: "v", Schema: domain.Schema{Type: domain.TypeString}}}}},
			{Name: "b", Schema: domain.Schema{Properties: domain.SchemaMap{{Name: "v", Schema: domain.Schema{Type: domain.TypeFloat64}}}}},
		},
	}
}

func TestDiscriminatorOnNonObject(t *testing.T) {
	got := runValidate(t, shapeSchema(), domain.String("a"), Options{})
	wantMismatches(t, got, []Mismatch{{InstancePath: nil, SchemaPath: []string{"discriminator"}}})
}

func TestDiscriminatorMissingTag(t *testing.T) {
	got := runValidate(t, shapeSchema(), domain.Object{{Name: "v", Value: domain.String("x")}}, Options{})
	wantMismatches(t, got, []Mismatch{{InstancePath: nil, SchemaPath: []string{"discriminator"}}})
}

func TestDiscriminatorTagNotString(t *testing.T) {
	got := runValidate(t, shapeSchema(), domain.Object{{Name: "type", Value: domain.Number(1)}}, Options{})
	wantMismatches(t, got, []Mismatch{
		{InstancePath: []string{"type"}, SchemaPath: []string{"discriminator", "type"}},
	})
}

func TestDiscriminatorUnknownTagValue(t *testing.T) {
	got := runValidate(t, shapeSchema(), domain.Object{{Name: "type", Value: domain.String("c")}}, Options{})
	wantMismatches(t, got, []Mismatch{
		{InstancePath: []string{"type"}, SchemaPath: []string{"discriminator", "type"}},
	})
}

func TestDiscriminatorMatchedVariant(t *testing.T) {
	instance := domain.Object{
		{Name: "type", Value: domain.String("a")},
		{Name: "v", Value: domain.Number(1)},
	}
	got := runValidate(t, shapeSchema(), instance, Options{})
	wantMismatches(t, got, []Mismatch{
		{InstancePath: []string{"v"}, SchemaPath: []string{"mapping", "a", "properties", "v", "type"}},
	})

	// The consumed tag is neither re-validated nor an additional property.
	valid := domain.Object{
		{Name: "type", Value: domain.String("a")},
		{Name: "v", Value: domain.String("ok")},
	}
	if got := runValidate(t, shapeSchema(), valid, Options{}); len(got) != 0 {
		t.Fatalf("matching variant must pass: %#v", got)
	}
}

func TestDiscriminatorVariantExtraKey(t *testing.T) {
	instance := domain.Object{
		{Name: "type", Value: domain.String("b")},
		{Name: "v", Value: domain.Number(1)},
		{Name: "extra", Value: domain.Null{}},
	}
	got := runValidate(t, shapeSchema(), instance, Options{})
	wantMismatches(t, got, []Mismatch{
		{InstancePath: []string{"extra"}, SchemaPath: []string{"mapping", "b", "additionalProperties"}},
	})
}

func TestRefSchemaPathStartsAtDefinition(t *testing.T) {
	schema := domain.Schema{
		Definitions: domain.SchemaMap{{Name: "node", Schema: domain.Schema{Type: domain.TypeString}}},
		Ref:         refTo("node"),
	}
	got := runValidate(t, schema, domain.Number(1), Options{})
	wantMismatches(t, got, []Mismatch{
		{InstancePath: nil, SchemaPath: []string{"definitions", "node", "type"}},
	})
}

func TestRefInsideProperties(t *testing.T) {
	schema := domain.Schema{
		Definitions: domain.SchemaMap{{Name: "id", Schema: domain.Schema{Type: domain.TypeString}}},
		Properties: domain.SchemaMap{
			{Name: "owner", Schema: domain.Schema{Ref: refTo("id")}},
		},
	}
	instance := domain.Object{{Name: "owner", Value: domain.Number(7)}}
	got := runValidate(t, schema, instance, Options{})
	wantMismatches(t, got, []Mismatch{
		{InstancePath: []string{"owner"}, SchemaPath: []string{"definitions", "id", "type"}},
	})
}

func TestRefCycleHitsMaxDepth(t *testing.T) {
	schema := domain.Schema{
		Definitions: domain.SchemaMap{{Name: "loop", Schema: domain.Schema{Ref: refTo("loop")}}},
		Ref:         refTo("loop"),
	}

	service := NewService(fakeTimestamps{valid: true})
	for _, depth := range []int{1, 2, 32} {
		_, err := service.Validate(context.Background(), schema, domain.Null{}, Options{MaxDepth: depth})
		if !errors.Is(err, ErrMaxDepthExceeded) {
			t.Fatalf("depth %d: expected ErrMaxDepthExceeded, got %v", depth, err)
		}
	}
}

func TestRefCycleNotEnteredIsHarmless(t *testing.T) {
	schema := domain.Schema{
		Definitions: domain.SchemaMap{
			{Name: "a", Schema: domain.Schema{Ref: refTo("b")}},
			{Name: "b", Schema: domain.Schema{Ref: refTo("a")}},
		},
		Type: domain.TypeString,
	}
	if got := runValidate(t, schema, domain.String("fine"), Options{MaxDepth: 4}); len(got) != 0 {
		t.Fatalf("unentered cycle must not matter: %#v", got)
	}
}

func TestMaxDepthCountsOnlyRefHops(t *testing.T) {
	// Structural nesting far deeper than MaxDepth, no refs involved.
	schema := domain.Schema{
		Elements: &domain.Schema{
			Elements: &domain.Schema{
				Elements: &domain.Schema{Type: domain.TypeString},
			},
		},
	}
	instance := domain.Array{domain.Array{domain.Array{domain.String("deep")}}}
	if got := runValidate(t, schema, instance, Options{MaxDepth: 1}); len(got) != 0 {
		t.Fatalf("structural nesting must not count: %#v", got)
	}

	// A two-hop ref chain fits in depth 3 but not depth 2.
	chain := domain.Schema{
		Definitions: domain.SchemaMap{
			{Name: "a", Schema: domain.Schema{Ref: refTo("b")}},
			{Name: "b", Schema: domain.Schema{Type: domain.TypeString}},
		},
		Ref: refTo("a"),
	}
	service := NewService(fakeTimestamps{valid: true})
	if _, err := service.Validate(context.Background(), chain, domain.String("x"), Options{MaxDepth: 2}); !errors.Is(err, ErrMaxDepthExceeded) {
		t.Fatalf("expected ErrMaxDepthExceeded at depth 2, got %v", err)
	}
	got, err := service.Validate(context.Background(), chain, domain.String("x"), Options{MaxDepth: 3})
	if err != nil || len(got) != 0 {
		t.Fatalf("depth 3 should fit the chain, got %v %#v", err, got)
	}
}

func TestValidateIsDeterministic(t *testing.T) {
	first := runValidate(t, personSchema(), personInstance(), Options{})
	second := runValidate(t, personSchema(), personInstance(), Options{})
	wantMismatches(t, second, first)
}

func TestValidateHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	service := NewService(fakeTimestamps{valid: true})
	if _, err := service.Validate(ctx, domain.Schema{}, domain.Null{}, Options{}); err == nil {
		t.Fatalf("expected context error")
	}
}
