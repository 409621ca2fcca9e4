// Package schema validates trade payloads against versioned JSON schemas.
//
// All schemas are embedded and compiled once when the registry is built. A
// compiled validator holds no per-call state and is safe for concurrent use.
package schema

import (
	"embed"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/xeipuuv/gojsonschema"

	"fes/internal/document"
)

//go:embed schemas/*.json
var schemaFS embed.FS

var schemaFiles = map[document.Kind]string{
	document.KindCatchCertificate:    "schemas/catch_certificate.json",
	document.KindProcessingStatement: "schemas/processing_statement.json",
	document.KindStorageDocument:     "schemas/storage_document.json",
}

// Result is the outcome of one validation.
type Result struct {
	Valid  bool
	Errors []string
}

// Validator is a compiled schema for one (kind, version).
type Validator struct {
	kind    document.Kind
	version int
	schema  *gojsonschema.Schema
}

func (v *Validator) Kind() document.Kind { return v.kind }

// Version is the integer "version" declared at the top of the schema file.
func (v *Validator) Version() int { return v.version }

// Validate checks a payload. It never returns an error: encoding failures are
// reported as an invalid result.
func (v *Validator) Validate(payload any) Result {
	raw, err := json.Marshal(payload)
	if err != nil {
		return Result{Errors: []string{fmt.Sprintf("encode payload: %v", err)}}
	}
	res, err := v.schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return Result{Errors: []string{fmt.Sprintf("validate payload: %v", err)}}
	}
	if res.Valid() {
		return Result{Valid: true}
	}
	errs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		errs = append(errs, e.String())
	}
	sort.Strings(errs)
	return Result{Errors: errs}
}

type key struct {
	kind    document.Kind
	version int
}

// Registry indexes compiled validators by kind and version.
type Registry struct {
	validators map[key]*Validator
	latest     map[document.Kind]*Validator
}

// NewRegistry compiles every embedded schema.
func NewRegistry() (*Registry, error) {
	r := &Registry{
		validators: make(map[key]*Validator),
		latest:     make(map[document.Kind]*Validator),
	}
	for kind, path := range schemaFiles {
		raw, err := schemaFS.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read schema %s: %w", path, err)
		}
		v, err := compile(kind, raw)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", path, err)
		}
		r.register(v)
	}
	return r, nil
}

func compile(kind document.Kind, raw []byte) (*Validator, error) {
	var meta struct {
		Version *int `json:"version"`
	}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, err
	}
	if meta.Version == nil {
		return nil, fmt.Errorf("schema for %s has no version", kind)
	}
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, err
	}
	return &Validator{kind: kind, version: *meta.Version, schema: compiled}, nil
}

func (r *Registry) register(v *Validator) {
	r.validators[key{v.kind, v.version}] = v
	if cur, ok := r.latest[v.kind]; !ok || v.version > cur.version {
		r.latest[v.kind] = v
	}
}

// Latest returns the highest schema version registered for kind.
func (r *Registry) Latest(kind document.Kind) (*Validator, error) {
	v, ok := r.latest[kind]
	if !ok {
		return nil, fmt.Errorf("no schema registered for %s", kind)
	}
	return v, nil
}

// Get returns the validator for an exact kind and version. It serves checks
// against the SchemaVersion a published envelope carries; dispatch uses Latest.
func (r *Registry) Get(kind document.Kind, version int) (*Validator, error) {
	v, ok := r.validators[key{kind, version}]
	if !ok {
		return nil, fmt.Errorf("no schema registered for %s version %d", kind, version)
	}
	return v, nil
}
