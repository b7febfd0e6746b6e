// Package inputschema validates simulation-input stanzas against conditional
// schemas of the shape used by neural-circuit simulation configs: a shared
// base fragment referenced by pointer from per-module wrappers, each adding
// an if/then clause keyed on the stanza's "module" field, optionally with
// exclusive-OR field groups carrying custom diagnostic messages.
//
// A schema document is compiled once with Compile into an immutable Schema;
// Validate then walks an instance document and collects every violation into
// a Report with JSON-Pointer paths. Compiled schemas are safe for concurrent
// use. Defects in the schema document itself (unresolved or cyclic $ref,
// malformed if clauses, empty exclusive groups) surface from Compile as
// *SchemaError and are kept strictly apart from instance validation issues.
package inputschema
