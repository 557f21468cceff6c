package diagram

import (
	"encoding/json"

	jsonnet "github.com/google/go-jsonnet"
)

// EvaluateJsonnet evaluates a Jsonnet file and decodes the resulting JSON.
// Diagrams with many similar nodes can be generated with comprehensions.
func EvaluateJsonnet(path string) (*Document, error) {
	vm := jsonnet.MakeVM()
	out, err := vm.EvaluateFile(path)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
