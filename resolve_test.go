package inputschema_test

import (
	"reflect"
	"testing"

	inputschema "github.com/simstack/inputschema"
)

func compileErr(t *testing.T, src string) *inputschema.SchemaError {
	t.Helper()
	_, err := inputschema.Compile(mustDocYAML(t, src))
	if err == nil {
		t.Fatalf("expected a schema error")
	}
	se, ok := inputschema.AsSchemaError(err)
	if !ok {
		t.Fatalf("expected *SchemaError, got %T: %v", err, err)
	}
	return se
}

func TestResolve_CyclicReferenceRejected(t *testing.T) {
	const src = `
$input_defs:
  a: {$ref: "#/$input_defs/b"}
  b: {$ref: "#/$input_defs/a"}
probe:
  $ref: "#/$input_defs/a"
  if: {properties: {module: {const: probe}}}
  then: {}
`
	se := compileErr(t, src)
	if se.Code != inputschema.CodeCyclicRef {
		t.Fatalf("expected cyclic_ref, got %q: %v", se.Code, se)
	}
}

// Cycles must be caught through any depth of indirection, not only A<->B.
func TestResolve_CyclicReferenceDeepChain(t *testing.T) {
	const src = `
$input_defs:
  a: {$ref: "#/$input_defs/b"}
  b: {$ref: "#/$input_defs/c"}
  c: {$ref: "#/$input_defs/a"}
probe:
  $ref: "#/$input_defs/a"
  if: {properties: {module: {const: probe}}}
  then: {}
`
	se := compileErr(t, src)
	if se.Code != inputschema.CodeCyclicRef {
		t.Fatalf("expected cyclic_ref, got %q: %v", se.Code, se)
	}
}

func TestResolve_UnresolvedReference(t *testing.T) {
	const src = `
probe:
  $ref: "#/$input_defs/nope"
  if: {properties: {module: {const: probe}}}
  then: {}
`
	se := compileErr(t, src)
	if se.Code != inputschema.CodeUnresolvedRef {
		t.Fatalf("expected unresolved_ref, got %q: %v", se.Code, se)
	}
}

func TestResolve_NonLocalReference(t *testing.T) {
	const src = `
probe:
  $ref: "https://example.com/defs#base"
  if: {properties: {module: {const: probe}}}
  then: {}
`
	se := compileErr(t, src)
	if se.Code != inputschema.CodeUnresolvedRef {
		t.Fatalf("expected unresolved_ref, got %q: %v", se.Code, se)
	}
}

// Nested references resolve transitively: a wrapper pointing at an alias of
// the base still ends up with the base's constraints.
func TestResolve_TransitiveReference(t *testing.T) {
	const src = `
$input_defs:
  alias: {$ref: "#/$input_defs/base"}
  base:
    type: object
    required: [module, node_set]
    properties:
      module: {type: string}
      node_set: {type: string}
probe:
  $ref: "#/$input_defs/alias"
  if: {properties: {module: {const: probe}}}
  then: {}
`
	s := mustSchema(t, src)
	frag, ok := s.Module("probe")
	if !ok {
		t.Fatalf("probe module not registered")
	}
	want := []string{"module", "node_set"}
	if !reflect.DeepEqual(frag.Required, want) {
		t.Fatalf("expected %v, got %v", want, frag.Required)
	}
}

// Keys authored on the wrapper itself win over the referenced definition.
func TestResolve_WrapperKeysOverrideReference(t *testing.T) {
	const src = `
$input_defs:
  base:
    type: object
    required: [module, node_set]
    properties:
      module: {type: string}
      node_set: {type: string}
probe:
  $ref: "#/$input_defs/base"
  required: [module]
  if: {properties: {module: {const: probe}}}
  then: {}
`
	s := mustSchema(t, src)
	frag, _ := s.Module("probe")
	if !reflect.DeepEqual(frag.Required, []string{"module"}) {
		t.Fatalf("expected wrapper-authored required to win, got %v", frag.Required)
	}
}
