package schema

import (
	"bytes"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/teranos/rpctypegen/errors"
)

// Decode parses an annotation document. The format is chosen by the file
// extension of name: .yaml/.yml are YAML, everything else is JSON.
func Decode(name string, data []byte) (Value, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return DecodeYAML(data)
	default:
		return DecodeJSON(data)
	}
}

// IsAnnotationFile reports whether name has an extension Decode understands.
func IsAnnotationFile(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".yaml", ".yml":
		return true
	}
	return false
}

// MethodName returns the RPC method name for an annotation file path: its
// base name without extension.
func MethodName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// DecodeJSON parses a JSON annotation document.
func DecodeJSON(data []byte) (Value, error) {
	if !utf8.Valid(data) {
		return nil, errors.New("annotation is not valid UTF-8")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrap(err, "invalid JSON")
	}
	// A document is exactly one value
	var extra interface{}
	if err := dec.Decode(&extra); err != io.EOF {
		if err == nil {
			err = errors.New("unexpected value after document")
		}
		return nil, errors.Wrap(err, "invalid JSON: trailing data")
	}

	return fromJSON(raw)
}

func fromJSON(raw interface{}) (Value, error) {
	switch v := raw.(type) {
	case string:
		return Label(v), nil
	case []interface{}:
		arr := make(Array, 0, len(v))
		for _, e := range v {
			ev, err := fromJSON(e)
			if err != nil {
				return nil, err
			}
			arr = append(arr, ev)
		}
		return arr, nil
	case map[string]interface{}:
		members := make([]Member, 0, len(v))
		for name, e := range v {
			ev, err := fromJSON(e)
			if err != nil {
				return nil, err
			}
			members = append(members, Member{Name: name, Value: ev})
		}
		return NewObject(members), nil
	case json.Number:
		return Scalar{Type: ScalarNumber, Raw: v.String()}, nil
	case float64:
		return Scalar{Type: ScalarNumber, Raw: strconv.FormatFloat(v, 'g', -1, 64)}, nil
	case bool:
		return Scalar{Type: ScalarBool, Raw: strconv.FormatBool(v)}, nil
	case nil:
		return Scalar{Type: ScalarNull, Raw: "null"}, nil
	default:
		return nil, errors.Newf("unsupported JSON value %T", raw)
	}
}

// DecodeYAML parses a YAML annotation document. Plain scalars follow the
// YAML 1.2 core schema, so `bool` stays a label but `true` is a boolean.
func DecodeYAML(data []byte) (Value, error) {
	if !utf8.Valid(data) {
		return nil, errors.New("annotation is not valid UTF-8")
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "invalid YAML")
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, errors.New("invalid YAML: empty document")
	}
	return fromYAML(doc.Content[0])
}

func fromYAML(node *yaml.Node) (Value, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return fromYAML(node.Alias)
	case yaml.SequenceNode:
		arr := make(Array, 0, len(node.Content))
		for _, e := range node.Content {
			ev, err := fromYAML(e)
			if err != nil {
				return nil, err
			}
			arr = append(arr, ev)
		}
		return arr, nil
	case yaml.MappingNode:
		members := make([]Member, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i]
			if key.Kind != yaml.ScalarNode {
				return nil, errors.Newf("line %d: mapping keys must be scalars", key.Line)
			}
			ev, err := fromYAML(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			members = append(members, Member{Name: key.Value, Value: ev})
		}
		return NewObject(members), nil
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!str":
			return Label(node.Value), nil
		case "!!int", "!!float":
			return Scalar{Type: ScalarNumber, Raw: node.Value}, nil
		case "!!bool":
			return Scalar{Type: ScalarBool, Raw: node.Value}, nil
		case "!!null":
			return Scalar{Type: ScalarNull, Raw: "null"}, nil
		default:
			return nil, errors.Newf("line %d: unsupported YAML tag %s", node.Line, node.ShortTag())
		}
	default:
		return nil, errors.Newf("line %d: unsupported YAML node", node.Line)
	}
}
