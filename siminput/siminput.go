// Package siminput ships the simulation-input schema used to configure
// neural-circuit stimulation and recording experiments, compiled once and
// shared across callers.
package siminput

import (
	"context"
	_ "embed"
	"sync"

	"github.com/simstack/inputschema"
)

//go:embed schema.yaml
var schemaYAML []byte

var compiled = sync.OnceValues(func() (*inputschema.Schema, error) {
	doc, err := inputschema.DocumentFromYAML(schemaYAML)
	if err != nil {
		return nil, err
	}
	return inputschema.Compile(doc)
})

// Schema returns the compiled simulation-input schema. The result is shared;
// it is immutable and safe for concurrent use.
func Schema() (*inputschema.Schema, error) { return compiled() }

// Validate checks one simulation-input stanza against the embedded schema.
func Validate(ctx context.Context, doc any) (*inputschema.Report, error) {
	s, err := compiled()
	if err != nil {
		return nil, err
	}
	return s.Validate(ctx, doc), nil
}

// Modules lists the stimulation modules the embedded schema knows about.
func Modules() ([]string, error) {
	s, err := compiled()
	if err != nil {
		return nil, err
	}
	return s.Modules(), nil
}
