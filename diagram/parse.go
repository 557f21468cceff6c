package diagram

import (
	"encoding/json"

	"github.com/kaptinlin/jsonrepair"
	"gopkg.in/yaml.v3"
)

// ParseYAML unmarshals a YAML document.
func ParseYAML(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ParseJSON unmarshals a JSON document. Hand-edited JSON with trailing commas,
// single quotes or unquoted keys is repaired once before giving up.
func ParseJSON(data []byte) (*Document, error) {
	var doc Document
	err := json.Unmarshal(data, &doc)
	if err == nil {
		return &doc, nil
	}
	repaired, repairErr := jsonrepair.JSONRepair(string(data))
	if repairErr != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(repaired), &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
