package inputschema

import (
	"context"
	"fmt"
	"strings"

	"github.com/simstack/inputschema/i18n"
)

// Schema is a compiled, immutable validation schema. It holds the shared base
// fragment plus one flattened wrapper per module, keyed by the discriminator
// value each wrapper matches on. A Schema may be shared freely across
// concurrent Validate calls; nothing mutates it after Compile returns.
type Schema struct {
	base          *Fragment
	modules       map[string]*Fragment
	names         []string // sorted module names
	discriminator string   // field the wrappers dispatch on, "module" in practice
}

// Modules returns the known module names in sorted order.
func (s *Schema) Modules() []string {
	return append([]string(nil), s.names...)
}

// Module returns the compiled wrapper fragment for one module name.
func (s *Schema) Module(name string) (*Fragment, bool) {
	f, ok := s.modules[name]
	return f, ok
}

// Validate walks one instance document against the schema and returns every
// violation found in a single pass; it never stops at the first error, so a
// misconfigured experiment file can be fixed in one edit-revalidate cycle.
// An empty report is the sole success condition.
func (s *Schema) Validate(ctx context.Context, doc any) *Report {
	rep := &Report{}
	m, ok := doc.(map[string]any)
	if !ok {
		rep.add(typeIssue("/", "expected object, got %s", describeValue(doc)))
		return rep
	}

	frag := s.selectFragment(m, rep)
	if frag == nil {
		return rep
	}
	eff := applyConditional(frag, m)
	rep.add(evalFragment(eff, m, "/")...)
	rep.add(evalGroups(eff.Groups, m, "/")...)
	return rep
}

// selectFragment picks the module-specific wrapper for the instance, falling
// back to the base fragment when the discriminator is missing or unknown so
// the remaining base violations still surface in the same pass.
func (s *Schema) selectFragment(m map[string]any, rep *Report) *Fragment {
	tag, _ := m[s.discriminator].(string)
	if tag != "" {
		if frag, ok := s.modules[tag]; ok {
			return frag
		}
		rep.add(Issue{
			Path:    "/" + s.discriminator,
			Code:    CodeInvalidEnum,
			Message: i18n.T(CodeInvalidEnum, nil),
			Hint:    fmt.Sprintf("unknown module %q, known: %s", tag, strings.Join(s.names, ", ")),
			Params:  map[string]any{"allowed": s.names, "got": tag},
		})
	}
	return s.base
}

// Is reports whether doc conforms to the schema.
func Is(ctx context.Context, s *Schema, doc any) bool {
	return s.Validate(ctx, doc).OK()
}
