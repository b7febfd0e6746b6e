package inputschema

import "strings"

// evalGroups checks every exclusive-OR field-presence group against a node.
// A group is satisfied when exactly one of its alternatives has all fields
// present with non-null values; zero or more than one satisfied alternative
// yields a single issue carrying the group's authored message verbatim, or a
// generated description of the alternatives when none was authored.
func evalGroups(groups []ExclusiveGroup, node map[string]any, path string) Issues {
	var iss Issues
	for _, g := range groups {
		n := g.satisfiedCount(node)
		if n == 1 {
			continue
		}
		msg := g.Message
		if msg == "" {
			msg = g.describe()
		}
		iss = AppendIssues(iss, Issue{
			Path:    normalizePointer(path),
			Code:    CodeExclusiveGroup,
			Message: msg,
			Params:  map[string]any{"satisfied": n},
		})
	}
	return iss
}

func (g ExclusiveGroup) satisfiedCount(node map[string]any) int {
	n := 0
	for _, alt := range g.Alternatives {
		ok := true
		for _, field := range alt {
			if v, present := node[field]; !present || v == nil {
				ok = false
				break
			}
		}
		if ok {
			n++
		}
	}
	return n
}

func (g ExclusiveGroup) describe() string {
	parts := make([]string, len(g.Alternatives))
	for i, alt := range g.Alternatives {
		if len(alt) == 1 {
			parts[i] = "'" + alt[0] + "'"
			continue
		}
		parts[i] = "'" + strings.Join(alt, "' with '") + "'"
	}
	return "exactly one of " + strings.Join(parts, " or ") + " is required"
}
