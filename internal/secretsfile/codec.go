package secretsfile

import (
	"fmt"
	"os"
	"strings"

	sserrors "github.com/stackmill/secretsync/internal/errors"
	"gopkg.in/yaml.v3"
)

// Decode parses secrets file content into a Document. The decoded root must
// be a mapping; a scalar, sequence or null root is a fatal format error.
func Decode(content []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(content, &root); err != nil {
		return nil, sserrors.FormatError{
			Message:    fmt.Sprintf("invalid YAML: %v", err),
			Suggestion: "Check for indentation errors, missing quotes, or invalid characters",
		}
	}

	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, sserrors.FormatError{
			Message:    "secrets file is empty or not a YAML document",
			Suggestion: "The top level of the secrets file must be a mapping of name to value",
		}
	}

	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, sserrors.FormatError{
			Message:    fmt.Sprintf("top-level value must be a mapping, got %s", nodeKindName(mapping)),
			Suggestion: "The top level of the secrets file must be a mapping of name to value",
		}
	}

	doc := NewDocument()
	for i := 0; i < len(mapping.Content); i += 2 {
		keyNode := mapping.Content[i]
		valueNode := mapping.Content[i+1]

		var value interface{}
		if err := valueNode.Decode(&value); err != nil {
			return nil, sserrors.FormatError{
				Message:    fmt.Sprintf("invalid value for '%s': %v", keyNode.Value, err),
				Suggestion: "Values may be scalars or nested mappings and sequences of scalars",
			}
		}
		doc.Set(keyNode.Value, value)
	}

	return doc, nil
}

// Encode serializes a document back to YAML in the document's key order
func Encode(doc *Document) ([]byte, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, name := range doc.Names() {
		value, _ := doc.Get(name)

		keyNode := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: name}
		valueNode := &yaml.Node{}
		if err := valueNode.Encode(value); err != nil {
			return nil, fmt.Errorf("failed to encode value for '%s': %w", name, err)
		}
		mapping.Content = append(mapping.Content, keyNode, valueNode)
	}

	return yaml.Marshal(mapping)
}

// Load reads and decodes a secrets file from disk
func Load(path string) (*Document, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Decode(content)
	if err != nil {
		if fe, ok := err.(sserrors.FormatError); ok {
			fe.Path = path
			return nil, fe
		}
		return nil, err
	}
	return doc, nil
}

// EncodeValue serializes a single value to the textual encoding stored in the
// remote parameter. Strings are written as-is; everything else goes through
// the YAML encoder.
func EncodeValue(value interface{}) (string, error) {
	if s, ok := value.(string); ok {
		return s, nil
	}
	out, err := yaml.Marshal(value)
	if err != nil {
		return "", fmt.Errorf("failed to serialize value: %w", err)
	}
	return strings.TrimSuffix(string(out), "\n"), nil
}

// DecodeValue re-hydrates a remote parameter's textual value into a native
// structure using the same decoder as the secrets file.
func DecodeValue(raw string) (interface{}, error) {
	var value interface{}
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return nil, fmt.Errorf("failed to decode remote value: %w", err)
	}
	return value, nil
}

func nodeKindName(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		if n.Tag == "!!null" {
			return "null"
		}
		return "a scalar"
	case yaml.SequenceNode:
		return "a sequence"
	case yaml.MappingNode:
		return "a mapping"
	default:
		return "an unknown node"
	}
}
