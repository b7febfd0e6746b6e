package inputschema_test

import (
	"context"
	"testing"

	inputschema "github.com/simstack/inputschema"
)

// probeSchemaYAML exercises every leaf constraint kind through one module.
const probeSchemaYAML = `
$input_defs:
  base:
    type: object
    required: [module]
    properties:
      module: {type: string}
probe:
  $ref: "#/$input_defs/base"
  if: {properties: {module: {const: probe}}}
  then:
    properties:
      label: {type: string}
      count: {type: non_negative_integer}
      scale: {type: positive_float}
      level: {type: integer}
      amount: {type: number}
      mode: {type: string, enum: [fast, slow]}
`

func probe(extra map[string]any) map[string]any {
	m := map[string]any{"module": "probe"}
	for k, v := range extra {
		m[k] = v
	}
	return m
}

func TestConstraint_TypeMismatches(t *testing.T) {
	s := mustSchema(t, probeSchemaYAML)
	ctx := context.Background()

	cases := []struct {
		name  string
		field string
		value any
	}{
		{"string gets number", "label", 3},
		{"number gets string", "amount", "much"},
		{"integer gets fraction", "level", 2.5},
		{"integer gets string", "count", "many"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rep := s.Validate(ctx, probe(map[string]any{tc.field: tc.value}))
			if len(issuesWith(rep, inputschema.CodeInvalidType, "/"+tc.field)) != 1 {
				t.Fatalf("expected invalid_type at /%s, got: %v", tc.field, rep.Issues())
			}
		})
	}
}

func TestConstraint_NonNegativeInteger(t *testing.T) {
	s := mustSchema(t, probeSchemaYAML)
	ctx := context.Background()

	if rep := s.Validate(ctx, probe(map[string]any{"count": 0})); !rep.OK() {
		t.Fatalf("expected 0 to pass, got: %v", rep.Issues())
	}
	// 4.0 is integral; JSON does not distinguish it from 4
	if rep := s.Validate(ctx, probe(map[string]any{"count": 4.0})); !rep.OK() {
		t.Fatalf("expected integral float to pass, got: %v", rep.Issues())
	}
	rep := s.Validate(ctx, probe(map[string]any{"count": -1}))
	if len(issuesWith(rep, inputschema.CodeInvalidType, "/count")) != 1 {
		t.Fatalf("expected invalid_type at /count for -1, got: %v", rep.Issues())
	}
}

func TestConstraint_PositiveFloat(t *testing.T) {
	s := mustSchema(t, probeSchemaYAML)
	ctx := context.Background()

	if rep := s.Validate(ctx, probe(map[string]any{"scale": 0.5})); !rep.OK() {
		t.Fatalf("expected 0.5 to pass, got: %v", rep.Issues())
	}
	for _, bad := range []any{0, -0.5, "x"} {
		rep := s.Validate(ctx, probe(map[string]any{"scale": bad}))
		if len(issuesWith(rep, inputschema.CodeInvalidType, "/scale")) != 1 {
			t.Fatalf("expected invalid_type at /scale for %v, got: %v", bad, rep.Issues())
		}
	}
}

func TestConstraint_EnumMembership(t *testing.T) {
	s := mustSchema(t, probeSchemaYAML)
	ctx := context.Background()

	if rep := s.Validate(ctx, probe(map[string]any{"mode": "fast"})); !rep.OK() {
		t.Fatalf("expected fast to pass, got: %v", rep.Issues())
	}
	rep := s.Validate(ctx, probe(map[string]any{"mode": "medium"}))
	got := issuesWith(rep, inputschema.CodeInvalidEnum, "/mode")
	if len(got) != 1 {
		t.Fatalf("expected invalid_enum at /mode, got: %v", rep.Issues())
	}
	if got[0].Hint == "" {
		t.Fatalf("expected the hint to name the allowed set")
	}
}

// Numbers decoded from JSON arrive as json.Number and must satisfy both
// integer and float constraints.
func TestConstraint_JSONNumbers(t *testing.T) {
	s := mustSchema(t, probeSchemaYAML)
	doc, err := inputschema.DocumentFromJSON([]byte(`{"module":"probe","count":7,"scale":0.25,"level":-3,"amount":1e3}`))
	if err != nil {
		t.Fatalf("decoding: %v", err)
	}
	if rep := s.Validate(context.Background(), doc); !rep.OK() {
		t.Fatalf("expected valid instance, got: %v", rep.Issues())
	}
}

// Null values count as absent: they never satisfy required and are never type
// checked.
func TestConstraint_NullIsAbsent(t *testing.T) {
	s := mustSchema(t, probeSchemaYAML)
	ctx := context.Background()

	rep := s.Validate(ctx, probe(map[string]any{"label": nil}))
	if !rep.OK() {
		t.Fatalf("expected null optional field to be ignored, got: %v", rep.Issues())
	}
	rep = s.Validate(ctx, map[string]any{"module": nil})
	if len(issuesWith(rep, inputschema.CodeRequired, "/module")) != 1 {
		t.Fatalf("expected required at /module for null, got: %v", rep.Issues())
	}
}
