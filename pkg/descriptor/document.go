package descriptor

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// document gives uniform access to the top-level keys of a parsed descriptor
type document interface {
	has(key string) bool
	decode(key string, out interface{}) error
}

type jsonDocument map[string]json.RawMessage

func newJSONDocument(data []byte) (document, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		return nil, fmt.Errorf("descriptor must be an object")
	}
	return jsonDocument(fields), nil
}

func (d jsonDocument) has(key string) bool {
	_, ok := d[key]
	return ok
}

func (d jsonDocument) decode(key string, out interface{}) error {
	return json.Unmarshal(d[key], out)
}

type yamlDocument map[string]*yaml.Node

func newYAMLDocument(data []byte) (document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	node := &root
	if node.Kind == yaml.DocumentNode && len(node.Content) > 0 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("descriptor must be a mapping")
	}

	fields := make(yamlDocument, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		fields[node.Content[i].Value] = node.Content[i+1]
	}
	return fields, nil
}

func (d yamlDocument) has(key string) bool {
	_, ok := d[key]
	return ok
}

func (d yamlDocument) decode(key string, out interface{}) error {
	return d[key].Decode(out)
}
