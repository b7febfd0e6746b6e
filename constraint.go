package inputschema

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/simstack/inputschema/i18n"
)

// evalFragment checks a resolved fragment against a single document node and
// returns every violation found. It is purely functional over its inputs.
//
// A null value is treated the same as an absent key throughout: it satisfies
// neither a required entry nor an exclusive-group alternative, and no type
// check runs against it.
func evalFragment(f *Fragment, node any, path string) Issues {
	switch f.Kind {
	case KindObject, KindConditional:
		return evalObject(f, node, path)
	case KindString:
		s, ok := node.(string)
		if !ok {
			return Issues{typeIssue(path, "expected string, got %s", describeValue(node))}
		}
		return evalEnum(f, s, path)
	case KindInteger:
		i, ok := integerValue(node)
		if !ok {
			return Issues{typeIssue(path, "expected integer, got %s", describeValue(node))}
		}
		if f.Refine == RefineNonNegative && i < 0 {
			return Issues{typeIssue(path, "expected a non-negative integer, got %d", i)}
		}
		return evalEnum(f, node, path)
	case KindNumber:
		fv, ok := numericValue(node)
		if !ok {
			return Issues{typeIssue(path, "expected number, got %s", describeValue(node))}
		}
		if f.Refine == RefinePositive && !(fv > 0) {
			return Issues{typeIssue(path, "expected a positive float, got %v", node)}
		}
		return evalEnum(f, node, path)
	default:
		// KindReference never survives compilation.
		return Issues{{Path: path, Code: CodeParseError, Message: i18n.T(CodeParseError, nil), Hint: "unresolved fragment kind " + f.Kind.String()}}
	}
}

func evalObject(f *Fragment, node any, path string) Issues {
	m, ok := node.(map[string]any)
	if !ok {
		return Issues{typeIssue(path, "expected object, got %s", describeValue(node))}
	}
	var iss Issues
	for _, k := range f.Required {
		if v, present := m[k]; !present || v == nil {
			iss = AppendIssues(iss, Issue{
				Path:    joinPointer(path, k),
				Code:    CodeRequired,
				Message: i18n.T(CodeRequired, nil),
				Hint:    "required property missing",
			})
		}
	}
	// known properties in key-sorted order for deterministic reports
	keys := make([]string, 0, len(f.Properties))
	for k := range f.Properties {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		val, present := m[k]
		if !present || val == nil {
			continue
		}
		iss = AppendIssues(iss, evalFragment(f.Properties[k], val, joinPointer(path, k))...)
	}
	// Unknown keys are accepted: simulation configs routinely carry fields this
	// schema does not describe, and the shape never restricts additionalProperties.
	return iss
}

func evalEnum(f *Fragment, got any, path string) Issues {
	if len(f.Enum) == 0 {
		return nil
	}
	for _, allowed := range f.Enum {
		if scalarEqual(allowed, got) {
			return nil
		}
	}
	names := make([]string, len(f.Enum))
	for i, v := range f.Enum {
		names[i] = fmt.Sprintf("%v", v)
	}
	return Issues{{
		Path:    path,
		Code:    CodeInvalidEnum,
		Message: i18n.T(CodeInvalidEnum, nil),
		Hint:    fmt.Sprintf("got %v, allowed: %s", got, strings.Join(names, ", ")),
		Params:  map[string]any{"allowed": f.Enum, "got": got},
	}}
}

func typeIssue(path, format string, a ...any) Issue {
	return Issue{
		Path:    path,
		Code:    CodeInvalidType,
		Message: i18n.T(CodeInvalidType, nil),
		Hint:    fmt.Sprintf(format, a...),
	}
}

// ---- scalar coercion ----

// numericValue reads any numeric representation a decoded document may hold:
// json.Number from the JSON source, float64/int/int64/uint64 from YAML.
func numericValue(v any) (float64, bool) {
	switch t := v.(type) {
	case json.Number:
		f, err := t.Float64()
		return f, err == nil
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint64:
		return float64(t), true
	default:
		return 0, false
	}
}

// integerValue accepts integers and integral floats (JSON does not distinguish
// 4 from 4.0).
func integerValue(v any) (int64, bool) {
	switch t := v.(type) {
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return i, true
		}
		f, err := t.Float64()
		if err != nil || f != float64(int64(f)) {
			return 0, false
		}
		return int64(f), true
	case float64:
		if t != float64(int64(t)) {
			return 0, false
		}
		return int64(t), true
	case int:
		return int64(t), true
	case int64:
		return t, true
	case uint64:
		return int64(t), true
	default:
		return 0, false
	}
}

// scalarEqual compares an enum member from the schema against an instance
// value, bridging the numeric representations of the two decoders.
func scalarEqual(allowed, got any) bool {
	if as, ok := allowed.(string); ok {
		gs, ok := got.(string)
		return ok && as == gs
	}
	if ab, ok := allowed.(bool); ok {
		gb, ok := got.(bool)
		return ok && ab == gb
	}
	af, aok := numericValue(allowed)
	gf, gok := numericValue(got)
	return aok && gok && af == gf
}

func describeValue(v any) string {
	switch v.(type) {
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, float32, int, int64, uint64:
		return "number"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", v)
	}
}
