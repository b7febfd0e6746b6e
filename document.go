package inputschema

import (
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	eng "github.com/simstack/inputschema/internal/engine"
	jsonsrc "github.com/simstack/inputschema/source/json"
)

// Severity expresses how strictly a decoding concern is treated.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// ParseOpt bundles document decoding options. Duplicate keys in an experiment
// file are a misconfiguration signal of their own, so the decoder can surface
// them instead of silently keeping the last value.
type ParseOpt struct {
	OnDuplicateKey Severity
	MaxDepth       int
}

// DocumentFromJSON decodes a JSON document into the generic tree consumed by
// Compile and Schema.Validate. Under Warn, duplicate keys are reported as
// Issues alongside the still-usable document; under Error the first duplicate
// aborts decoding.
func DocumentFromJSON(b []byte, opts ...ParseOpt) (any, error) {
	return decodeDocument(jsonsrc.NewBytes(b), opts)
}

// DocumentFromJSONReader decodes a JSON document from a reader.
func DocumentFromJSONReader(r io.Reader, opts ...ParseOpt) (any, error) {
	return decodeDocument(jsonsrc.NewReader(r), opts)
}

// DocumentFromYAML decodes a YAML document, normalizing map[any]any keys into
// the JSON-like map[string]any shape the engine consumes. yaml.v3 rejects
// duplicate mapping keys on its own.
func DocumentFromYAML(b []byte) (any, error) {
	var node any
	if err := yaml.Unmarshal(b, &node); err != nil {
		return nil, AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err})
	}
	return normalizeYAML(node), nil
}

func decodeDocument(src eng.TokenSource, opts []ParseOpt) (any, error) {
	var opt ParseOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	var collected Issues
	var sink func(eng.SimpleIssue)
	if opt.OnDuplicateKey == Warn {
		sink = func(si eng.SimpleIssue) {
			collected = AppendIssues(collected, Issue{Path: si.Path, Code: si.Code, Message: si.Message})
		}
	}
	enforced := eng.WrapWithEnforcement(src, eng.EnforceOptions{
		OnDuplicate: toEngineDup(opt.OnDuplicateKey),
		MaxDepth:    opt.MaxDepth,
		IssueSink:   sink,
	})
	doc, err := eng.DecodeDocument(enforced)
	if err != nil {
		return nil, toIssues(err)
	}
	if len(collected) > 0 {
		return doc, collected
	}
	return doc, nil
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Warn:
		return eng.DupWarn
	case Error:
		return eng.DupError
	default:
		return eng.DupIgnore
	}
}

func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{Code: ie.Code, Path: ie.Path, Message: ie.Message})
	}
	return AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: err.Error(), Cause: err})
}

func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = normalizeYAML(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			ks, ok := k.(string)
			if !ok {
				continue
			}
			out[ks] = normalizeYAML(vv)
		}
		return out
	case []any:
		arr := make([]any, len(t))
		for i := range t {
			arr[i] = normalizeYAML(t[i])
		}
		return arr
	default:
		return v
	}
}
