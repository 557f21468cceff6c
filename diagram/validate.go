package diagram

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/awantoch/kwanixflow/constants"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed diagram.schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString(constants.DiagramSchemaID, schemaJSON)
	})
	return schema, schemaErr
}

// Validate runs JSON-Schema validation against the embedded diagram schema and
// rejects duplicate node ids.
func Validate(doc *Document) error {
	jsonBytes, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	var generic any
	if err := json.Unmarshal(jsonBytes, &generic); err != nil {
		return err
	}
	if err := sch.Validate(generic); err != nil {
		return err
	}
	seen := make(map[string]bool, len(doc.Nodes))
	for _, n := range doc.Nodes {
		if seen[n.ID] {
			return fmt.Errorf("duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
	}
	return nil
}
