package inputschema

import "sort"

// applyConditional returns the effective fragment for a node. When the node's
// value at the discriminator field equals the expected const, the branch is
// merged into the base; a non-matching discriminator means the conditional is
// simply inapplicable and the base is returned untouched. Fragments are
// immutable, so the merge always builds a fresh fragment.
func applyConditional(f *Fragment, node map[string]any) *Fragment {
	if f.Cond == nil {
		return f
	}
	got, ok := node[f.Cond.Field].(string)
	if !ok || got != f.Cond.Value {
		return f
	}
	return mergeFragments(f, f.Cond.Branch)
}

// mergeFragments applies additive conditional semantics: base required plus
// branch required, base properties overridden per key by branch properties,
// exclusive groups concatenated.
func mergeFragments(base, branch *Fragment) *Fragment {
	out := &Fragment{
		Kind:   KindObject,
		Enum:   base.Enum,
		Refine: base.Refine,
	}

	reqSet := make(map[string]struct{}, len(base.Required)+len(branch.Required))
	for _, k := range base.Required {
		reqSet[k] = struct{}{}
	}
	for _, k := range branch.Required {
		reqSet[k] = struct{}{}
	}
	out.Required = make([]string, 0, len(reqSet))
	for k := range reqSet {
		out.Required = append(out.Required, k)
	}
	sort.Strings(out.Required)

	if len(base.Properties) > 0 || len(branch.Properties) > 0 {
		out.Properties = make(map[string]*Fragment, len(base.Properties)+len(branch.Properties))
		for k, v := range base.Properties {
			out.Properties[k] = v
		}
		for k, v := range branch.Properties {
			out.Properties[k] = v
		}
	}

	if len(base.Groups) > 0 || len(branch.Groups) > 0 {
		out.Groups = make([]ExclusiveGroup, 0, len(base.Groups)+len(branch.Groups))
		out.Groups = append(out.Groups, base.Groups...)
		out.Groups = append(out.Groups, branch.Groups...)
	}
	return out
}
