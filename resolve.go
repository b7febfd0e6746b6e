package inputschema

import "strings"

// resolver expands $ref pointers inside a schema document. It operates on the
// raw document tree, before fragments are compiled, and never mutates the
// caller's tree: every expansion happens on a deep copy. A resolution stack
// catches $ref chains that point back to an ancestor at any indirection depth,
// and successful resolutions are memoized per resolver so a shared definition
// is expanded at most once per compile.
type resolver struct {
	root  map[string]any
	memo  map[string]map[string]any
	stack []string
}

func newResolver(root map[string]any) *resolver {
	return &resolver{root: root, memo: make(map[string]map[string]any)}
}

// flatten returns a copy of node with every $ref expanded: on the node itself,
// under its properties, and under its then branch. The at argument is the
// node's pointer within the schema document, used for error reporting only.
func (r *resolver) flatten(node map[string]any, at string) (map[string]any, error) {
	out := deepCopyMap(node)
	if err := r.expand(out, at); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *resolver) expand(node map[string]any, at string) error {
	if raw, ok := node["$ref"]; ok {
		ref, ok := raw.(string)
		if !ok {
			return schemaErrf(at, CodeUnresolvedRef, "$ref must be a string, got %T", raw)
		}
		target, err := r.resolve(ref, at)
		if err != nil {
			return err
		}
		delete(node, "$ref")
		// Shallow merge: keys authored on the referencing node win.
		for k, v := range target {
			if _, exists := node[k]; !exists {
				node[k] = v
			}
		}
	}
	if pm, ok := node["properties"].(map[string]any); ok {
		base := joinPointer(at, "properties")
		for k, raw := range pm {
			if sch, ok := raw.(map[string]any); ok {
				if err := r.expand(sch, joinPointer(base, k)); err != nil {
					return err
				}
			}
		}
	}
	if then, ok := node["then"].(map[string]any); ok {
		if err := r.expand(then, joinPointer(at, "then")); err != nil {
			return err
		}
	}
	return nil
}

// resolve walks a "#/"-rooted pointer through the schema document and returns
// a fully expanded copy of the target fragment.
func (r *resolver) resolve(ref, at string) (map[string]any, error) {
	if m, ok := r.memo[ref]; ok {
		return m, nil
	}
	for _, seen := range r.stack {
		if seen == ref {
			chain := strings.Join(append(append([]string{}, r.stack...), ref), " -> ")
			return nil, schemaErrf(at, CodeCyclicRef, "$ref %q closes a reference cycle: %s", ref, chain)
		}
	}
	if !strings.HasPrefix(ref, "#/") {
		return nil, schemaErrf(at, CodeUnresolvedRef, "$ref %q is not a local pointer", ref)
	}
	var cur any = r.root
	for _, seg := range strings.Split(strings.TrimPrefix(ref, "#/"), "/") {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, schemaErrf(at, CodeUnresolvedRef, "$ref %q: segment %q does not address an object", ref, seg)
		}
		cur, ok = m[unescapePointerToken(seg)]
		if !ok {
			return nil, schemaErrf(at, CodeUnresolvedRef, "$ref %q: no such member %q", ref, seg)
		}
	}
	target, ok := cur.(map[string]any)
	if !ok {
		return nil, schemaErrf(at, CodeUnresolvedRef, "$ref %q does not point at an object", ref)
	}
	r.stack = append(r.stack, ref)
	out, err := r.flatten(target, ref)
	r.stack = r.stack[:len(r.stack)-1]
	if err != nil {
		return nil, err
	}
	r.memo[ref] = out
	return out, nil
}

func deepCopyMap(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return deepCopyMap(t)
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = deepCopyValue(t[i])
		}
		return arr
	default:
		return v
	}
}
