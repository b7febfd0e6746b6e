package inputschema_test

import (
	"context"
	"testing"

	inputschema "github.com/simstack/inputschema"
)

func TestReport_EmptyIsOK(t *testing.T) {
	s := mustSchema(t, stanzaSchemaYAML)
	rep := s.Validate(context.Background(), stanza("noise", "current_clamp", map[string]any{"mean": 0.1}))
	if !rep.OK() || rep.Len() != 0 {
		t.Fatalf("expected empty report, got: %v", rep.Issues())
	}
	if rep.Err() != nil {
		t.Fatalf("expected nil error from empty report")
	}
}

func TestReport_ErrCarriesIssues(t *testing.T) {
	s := mustSchema(t, stanzaSchemaYAML)
	m := stanza("pulse", "current_clamp", nil)
	delete(m, "duration")
	rep := s.Validate(context.Background(), m)
	if rep.OK() {
		t.Fatalf("expected violations")
	}
	ii, ok := inputschema.AsIssues(rep.Err())
	if !ok {
		t.Fatalf("expected Err to unwrap into Issues, got %v", rep.Err())
	}
	if len(ii) != rep.Len() {
		t.Fatalf("Err lost issues: %d vs %d", len(ii), rep.Len())
	}
}

func TestReport_AtFiltersByExactPath(t *testing.T) {
	s := mustSchema(t, stanzaSchemaYAML)
	m := stanza("pulse", "current_clamp", nil) // amp_start, width, frequency all missing
	rep := s.Validate(context.Background(), m)
	if got := rep.At("/width"); len(got) != 1 || got[0].Code != inputschema.CodeRequired {
		t.Fatalf("expected one required issue at /width, got: %v", got)
	}
	if got := rep.At("/nonexistent"); len(got) != 0 {
		t.Fatalf("expected nothing at unknown path, got: %v", got)
	}
}
