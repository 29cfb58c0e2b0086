package export

import (
	"bytes"
	"embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed schema/*.schema.json
var schemaFS embed.FS

const (
	setCentricSchemaID = "trainlog:set-centric.schema.json"
	commonDefsSchemaID = "trainlog:common-definitions.schema.json"
)

var (
	compileOnce      sync.Once
	setCentricSchema *jsonschema.Schema
	compileErr       error
)

func compiled() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		c := jsonschema.NewCompiler()
		for id, path := range map[string]string{
			setCentricSchemaID: "schema/set-centric.schema.json",
			commonDefsSchemaID: "schema/common-definitions.schema.json",
		} {
			raw, err := schemaFS.ReadFile(path)
			if err != nil {
				compileErr = fmt.Errorf("reading embedded schema %s: %w", path, err)
				return
			}
			doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
			if err != nil {
				compileErr = fmt.Errorf("decoding embedded schema %s: %w", path, err)
				return
			}
			if err := c.AddResource(id, doc); err != nil {
				compileErr = fmt.Errorf("registering schema %s: %w", id, err)
				return
			}
		}
		setCentricSchema, compileErr = c.Compile(setCentricSchemaID)
	})
	return setCentricSchema, compileErr
}

// ValidateSetCentric checks a serialized set-centric document against the
// embedded JSON schema.
func ValidateSetCentric(data []byte) error {
	schema, err := compiled()
	if err != nil {
		return err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("decoding document: %w", err)
	}
	if err := schema.Validate(inst); err != nil {
		return fmt.Errorf("schema validation: %w", err)
	}
	return nil
}
