package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/simstack/inputschema"
	"github.com/simstack/inputschema/i18n"
	"github.com/simstack/inputschema/siminput"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "validate":
		validateCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "inputschema CLI\n\nUsage:\n  inputschema validate [-schema FILE] [-lang en|ja] CONFIG_FILE\n\nValidates a simulation-input stanza against the embedded schema, or against\nthe schema given with -schema. Prints nothing and exits 0 when valid; prints\none line per violation and exits 1 otherwise.")
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var schemaPath string
	var lang string
	fs.StringVar(&schemaPath, "schema", "", "schema file (YAML or JSON); embedded simulation-input schema when omitted")
	fs.StringVar(&lang, "lang", "", "message language (en/ja)")
	_ = fs.Parse(args)
	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(2)
	}
	if lang != "" {
		i18n.SetLanguage(lang)
	}

	s, err := loadSchema(schemaPath)
	if err != nil {
		fatalf("loading schema: %v", err)
	}
	doc, err := loadDocument(fs.Arg(0))
	if err != nil {
		fatalf("loading config: %v", err)
	}

	rep := s.Validate(context.Background(), doc)
	if rep.OK() {
		return
	}
	for _, it := range rep.Issues() {
		msg := it.Message
		if it.Hint != "" {
			msg += " (" + it.Hint + ")"
		}
		fmt.Printf("%s at %s: %s\n", it.Code, it.Path, msg)
	}
	os.Exit(1)
}

func loadSchema(path string) (*inputschema.Schema, error) {
	if path == "" {
		return siminput.Schema()
	}
	doc, err := loadDocument(path)
	if err != nil {
		return nil, err
	}
	return inputschema.Compile(doc)
}

func loadDocument(path string) (any, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return inputschema.DocumentFromYAML(b)
	default:
		return inputschema.DocumentFromJSON(b, inputschema.ParseOpt{OnDuplicateKey: inputschema.Error})
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(2)
}
