package inputschema

import "sort"

// Compile builds an immutable Schema from a generic schema document tree, the
// kind of value produced by DocumentFromJSON or DocumentFromYAML.
//
// The document is expected to hold a mapping of reusable definitions under
// "$input_defs" plus one wrapper per stimulation module. Each wrapper
// references the shared base via $ref and adds an if/then clause keyed on the
// instance's "module" field; wrappers are registered under the const value of
// that clause, not under their document key. The definition named "base", when
// present, doubles as the fallback fragment evaluated for instances whose
// module is missing or unknown.
//
// All $refs are resolved here, once, into flattened owned fragments; schema
// authoring mistakes (unresolved or cyclic $ref, if clause without a module
// const, empty or overlapping exclusive groups, two wrappers claiming the same
// module) surface as *SchemaError and no Schema is returned.
func Compile(doc any) (*Schema, error) {
	root, ok := doc.(map[string]any)
	if !ok {
		return nil, schemaErrf("/", CodeParseError, "schema document must be an object, got %T", doc)
	}
	r := newResolver(root)
	s := &Schema{modules: make(map[string]*Fragment)}

	if defs, ok := root[defsKey].(map[string]any); ok {
		if rawBase, ok := defs[baseDefName].(map[string]any); ok {
			flat, err := r.flatten(rawBase, "/"+defsKey+"/"+baseDefName)
			if err != nil {
				return nil, err
			}
			base, err := compileFragment(flat, "/"+defsKey+"/"+baseDefName)
			if err != nil {
				return nil, err
			}
			s.base = base
		}
	}

	names := make([]string, 0, len(root))
	for k := range root {
		if k != defsKey {
			names = append(names, k)
		}
	}
	sort.Strings(names)

	for _, name := range names {
		at := "/" + escapePointerToken(name)
		raw, ok := root[name].(map[string]any)
		if !ok {
			return nil, schemaErrf(at, CodeParseError, "module wrapper must be an object, got %T", root[name])
		}
		flat, err := r.flatten(raw, at)
		if err != nil {
			return nil, err
		}
		frag, err := compileFragment(flat, at)
		if err != nil {
			return nil, err
		}
		if frag.Cond == nil {
			return nil, schemaErrf(joinPointer(at, "if"), CodeDiscriminatorMissing, "module wrapper %q has no if clause with a discriminator const", name)
		}
		if s.discriminator == "" {
			s.discriminator = frag.Cond.Field
		} else if frag.Cond.Field != s.discriminator {
			return nil, schemaErrf(joinPointer(at, "if"), CodeDiscriminatorMissing, "wrapper %q dispatches on %q while earlier wrappers dispatch on %q", name, frag.Cond.Field, s.discriminator)
		}
		tag := frag.Cond.Value
		if _, dup := s.modules[tag]; dup {
			return nil, schemaErrf(at, CodeDuplicateModule, "module %q is declared by more than one wrapper", tag)
		}
		s.modules[tag] = frag
		s.names = append(s.names, tag)
	}
	sort.Strings(s.names)
	if s.discriminator == "" {
		s.discriminator = "module"
	}
	return s, nil
}

const (
	defsKey     = "$input_defs"
	baseDefName = "base"
)

// compileFragment turns one flattened schema node into an immutable Fragment.
// The at argument is the node's pointer within the schema document.
func compileFragment(m map[string]any, at string) (*Fragment, error) {
	f := &Fragment{}

	switch t, _ := m["type"].(string); t {
	case "", "object":
		f.Kind = KindObject
	case "string":
		f.Kind = KindString
	case "number":
		f.Kind = KindNumber
	case "integer":
		f.Kind = KindInteger
	case "non_negative_integer":
		f.Kind = KindInteger
		f.Refine = RefineNonNegative
	case "positive_float":
		f.Kind = KindNumber
		f.Refine = RefinePositive
	default:
		return nil, schemaErrf(joinPointer(at, "type"), CodeParseError, "unknown type %q", m["type"])
	}

	if raw, ok := m["enum"]; ok {
		vals, ok := raw.([]any)
		if !ok || len(vals) == 0 {
			return nil, schemaErrf(joinPointer(at, "enum"), CodeParseError, "enum must be a non-empty array")
		}
		f.Enum = append(f.Enum, vals...)
	}
	if c, ok := m["const"]; ok {
		f.Enum = []any{c}
	}
	// A bare const/enum leaf gets its kind from its values.
	if _, hasType := m["type"]; !hasType && len(f.Enum) > 0 {
		f.Kind = kindOfScalar(f.Enum[0])
	}

	if raw, ok := m["properties"]; ok {
		pm, ok := raw.(map[string]any)
		if !ok {
			return nil, schemaErrf(joinPointer(at, "properties"), CodeParseError, "properties must be an object")
		}
		f.Properties = make(map[string]*Fragment, len(pm))
		for k, pv := range pm {
			sub, ok := pv.(map[string]any)
			if !ok {
				return nil, schemaErrf(joinPointer(joinPointer(at, "properties"), k), CodeParseError, "property schema must be an object, got %T", pv)
			}
			child, err := compileFragment(sub, joinPointer(joinPointer(at, "properties"), k))
			if err != nil {
				return nil, err
			}
			f.Properties[k] = child
		}
	}

	req, err := stringList(m["required"], joinPointer(at, "required"))
	if err != nil {
		return nil, err
	}
	sort.Strings(req)
	f.Required = req

	if rawIf, ok := m["if"]; ok {
		cond, err := compileConditional(rawIf, m["then"], at)
		if err != nil {
			return nil, err
		}
		f.Cond = cond
		f.Kind = KindConditional
	}

	groups, err := compileGroups(m, at)
	if err != nil {
		return nil, err
	}
	f.Groups = groups
	return f, nil
}

// compileConditional extracts the discriminator field and expected const from
// an if clause of the form {properties: {module: {const: pulse}}} and compiles
// the then branch it guards.
func compileConditional(rawIf, rawThen any, at string) (*Conditional, error) {
	ifm, ok := rawIf.(map[string]any)
	if !ok {
		return nil, schemaErrf(joinPointer(at, "if"), CodeParseError, "if clause must be an object")
	}
	props, _ := ifm["properties"].(map[string]any)
	if len(props) != 1 {
		return nil, schemaErrf(joinPointer(at, "if"), CodeDiscriminatorMissing, "if clause must constrain exactly one discriminator field, found %d", len(props))
	}
	var field, value string
	for k, v := range props {
		pm, _ := v.(map[string]any)
		c, _ := pm["const"].(string)
		if c == "" {
			return nil, schemaErrf(joinPointer(joinPointer(at, "if"), k), CodeDiscriminatorMissing, "discriminator %q has no const value", k)
		}
		field, value = k, c
	}
	thenm, ok := rawThen.(map[string]any)
	if !ok {
		return nil, schemaErrf(joinPointer(at, "then"), CodeParseError, "if clause without a then branch")
	}
	branch, err := compileFragment(thenm, joinPointer(at, "then"))
	if err != nil {
		return nil, err
	}
	return &Conditional{Field: field, Value: value, Branch: branch}, nil
}

// compileGroups reads oneOf alternatives and their optional custom message
// (messages.oneOf). Alternatives must be non-empty and pairwise disjoint in
// field names; overlap is a schema-authoring error, not a policy the engine
// guesses a resolution for.
func compileGroups(m map[string]any, at string) ([]ExclusiveGroup, error) {
	raw, ok := m["oneOf"]
	if !ok {
		return nil, nil
	}
	alts, ok := raw.([]any)
	if !ok {
		return nil, schemaErrf(joinPointer(at, "oneOf"), CodeParseError, "oneOf must be an array")
	}
	if len(alts) == 0 {
		return nil, schemaErrf(joinPointer(at, "oneOf"), CodeEmptyGroup, "oneOf has zero alternatives")
	}
	g := ExclusiveGroup{Alternatives: make([][]string, 0, len(alts))}
	seen := make(map[string]int)
	for i, rawAlt := range alts {
		am, ok := rawAlt.(map[string]any)
		if !ok {
			return nil, schemaErrf(joinPointer(at, "oneOf"), CodeParseError, "oneOf alternative %d must be an object", i)
		}
		fields, err := stringList(am["required"], joinPointer(at, "oneOf"))
		if err != nil {
			return nil, err
		}
		if len(fields) == 0 {
			return nil, schemaErrf(joinPointer(at, "oneOf"), CodeEmptyGroup, "oneOf alternative %d requires no fields", i)
		}
		sort.Strings(fields)
		for _, fname := range fields {
			if prev, dup := seen[fname]; dup {
				return nil, schemaErrf(joinPointer(at, "oneOf"), CodeOverlappingGroup, "field %q appears in alternatives %d and %d", fname, prev, i)
			}
			seen[fname] = i
		}
		g.Alternatives = append(g.Alternatives, fields)
	}
	if msgs, ok := m["messages"].(map[string]any); ok {
		if s, ok := msgs["oneOf"].(string); ok {
			g.Message = s
		}
	}
	return []ExclusiveGroup{g}, nil
}

func kindOfScalar(v any) Kind {
	if _, ok := numericValue(v); ok {
		return KindNumber
	}
	return KindString
}

func stringList(raw any, at string) ([]string, error) {
	if raw == nil {
		return nil, nil
	}
	vals, ok := raw.([]any)
	if !ok {
		return nil, schemaErrf(at, CodeParseError, "expected an array of field names, got %T", raw)
	}
	out := make([]string, 0, len(vals))
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			return nil, schemaErrf(at, CodeParseError, "field name must be a string, got %T", v)
		}
		out = append(out, s)
	}
	return out, nil
}
