package inputschema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType    = "invalid_type"
	CodeRequired       = "required"
	CodeInvalidEnum    = "invalid_enum"
	CodeExclusiveGroup = "exclusive_group"
	CodeDuplicateKey   = "duplicate_key"
	CodeParseError     = "parse_error"
	// Schema-definition codes (carried by SchemaError, never by a Report)
	CodeUnresolvedRef        = "unresolved_ref"
	CodeCyclicRef            = "cyclic_ref"
	CodeDiscriminatorMissing = "discriminator_missing"
	CodeEmptyGroup           = "empty_group"
	CodeOverlappingGroup     = "overlapping_group"
	CodeDuplicateModule      = "duplicate_module"
)

// Issue represents a single validation entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /amp_var).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, allowed values, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"allowed":[...], "got":"spikes"})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of validation errors that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. invalid_type at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// SchemaError reports a defect in the schema document itself: an unresolved or
// cyclic $ref, an if clause without a discriminator const, an exclusive group
// with zero alternatives, and similar authoring mistakes. It aborts compilation
// and is never accumulated into a Report; instances cannot be validated against
// a schema that produced one.
type SchemaError struct {
	Path    string // Pointer into the schema document, not the instance.
	Code    string
	Message string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema: %s at %s: %s", e.Code, e.Path, e.Message)
}

// AsSchemaError extracts a *SchemaError from an error chain.
func AsSchemaError(err error) (*SchemaError, bool) {
	var se *SchemaError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func schemaErrf(path, code, format string, a ...any) *SchemaError {
	return &SchemaError{Path: path, Code: code, Message: fmt.Sprintf(format, a...)}
}
