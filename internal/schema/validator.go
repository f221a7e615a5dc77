// Package schema validates grading-scheme documents against embedded CUE
// schemas before they are decoded into Go types.
package schema

import (
	"embed"
	"fmt"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

//go:embed schemas/*.cue
var schemaFS embed.FS

// Validator holds the compiled CUE schemas.
type Validator struct {
	ctx     *cue.Context
	schemas map[string]cue.Value
}

// NewValidator compiles every embedded .cue file. Files that fail to
// compile are skipped; an error is returned only when nothing loaded.
func NewValidator() (*Validator, error) {
	v := &Validator{
		ctx:     cuecontext.New(),
		schemas: make(map[string]cue.Value),
	}

	entries, err := schemaFS.ReadDir("schemas")
	if err != nil {
		return nil, fmt.Errorf("reading embedded schemas: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".cue" {
			continue
		}
		content, err := schemaFS.ReadFile(filepath.Join("schemas", entry.Name()))
		if err != nil {
			continue
		}
		inst := v.ctx.CompileBytes(content, cue.Filename(entry.Name()))
		if inst.Err() != nil {
			continue
		}
		name := entry.Name()[:len(entry.Name())-len(".cue")]
		v.schemas[name] = inst
	}

	if len(v.schemas) == 0 {
		return nil, fmt.Errorf("no CUE schemas loaded")
	}
	return v, nil
}

// ValidateScheme checks a raw grading-scheme document against the #Scheme
// definition. Closed definitions make unknown fields an error, which is
// what catches misspelled keys that a plain YAML decode would drop.
func (v *Validator) ValidateScheme(data map[string]any) error {
	schema, ok := v.schemas["scheme"]
	if !ok {
		return nil
	}

	def := schema.LookupPath(cue.ParsePath("#Scheme"))
	if !def.Exists() {
		return nil
	}

	dataValue := v.ctx.Encode(data)
	if err := dataValue.Err(); err != nil {
		return fmt.Errorf("encoding scheme document: %w", err)
	}

	unified := def.Unify(dataValue)
	if err := unified.Err(); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}

// ValidateScheme is the package-level convenience used by scheme loading.
// When the embedded schemas cannot be compiled the structural check is
// skipped; the semantic validation in the grade package still runs.
func ValidateScheme(data map[string]any) error {
	v, err := NewValidator()
	if err != nil {
		return nil
	}
	return v.ValidateScheme(data)
}
