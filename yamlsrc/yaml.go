// Package yamlsrc converts YAML documents into wirejson values, so YAML
// fixtures and config documents can feed the same decoder contracts as JSON.
// Mapping order is preserved via yaml.Node.
package yamlsrc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	wirejson "github.com/wirejson/wirejson"
)

// ParseBytes converts the first YAML document in data into a Value.
func ParseBytes(data []byte) (wirejson.Value, error) {
	docs, err := parseAll(data, true)
	if err != nil {
		return wirejson.Value{}, err
	}
	if len(docs) == 0 {
		return wirejson.Value{}, wirejson.Issues{wirejson.Issue{
			Code:    wirejson.CodeParseError,
			Message: "empty YAML input",
		}}
	}
	return docs[0], nil
}

// ParseAll converts every document in a multi-document YAML stream.
func ParseAll(data []byte) ([]wirejson.Value, error) {
	return parseAll(data, false)
}

func parseAll(data []byte, firstOnly bool) ([]wirejson.Value, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var out []wirejson.Value
	for {
		var node yaml.Node
		if err := dec.Decode(&node); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, wirejson.Issues{wirejson.Issue{
				Code:    wirejson.CodeParseError,
				Message: err.Error(),
				Cause:   err,
			}}
		}
		v, err := convert(&node, "")
		if err != nil {
			return nil, err
		}
		out = append(out, v)
		if firstOnly {
			break
		}
	}
	return out, nil
}

func convert(n *yaml.Node, path string) (wirejson.Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return wirejson.Null(), nil
		}
		return convert(n.Content[0], path)
	case yaml.AliasNode:
		return convert(n.Alias, path)
	case yaml.ScalarNode:
		return convertScalar(n, path)
	case yaml.SequenceNode:
		items := make([]wirejson.Value, 0, len(n.Content))
		for i, c := range n.Content {
			v, err := convert(c, path+"/"+strconv.Itoa(i))
			if err != nil {
				return wirejson.Value{}, err
			}
			items = append(items, v)
		}
		return wirejson.Array(items...), nil
	case yaml.MappingNode:
		members := make([]wirejson.Member, 0, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			kn, vn := n.Content[i], n.Content[i+1]
			if kn.Kind != yaml.ScalarNode {
				return wirejson.Value{}, wirejson.Issues{wirejson.Issue{
					Path:    path,
					Code:    wirejson.CodeParseError,
					Message: fmt.Sprintf("non-scalar mapping key at line %d", kn.Line),
				}}
			}
			key := kn.Value
			for _, m := range members {
				if m.Key == key {
					return wirejson.Value{}, wirejson.Issues{wirejson.Issue{
						Path:    path + "/" + key,
						Code:    wirejson.CodeDuplicateKey,
						Message: "duplicate mapping key",
						Params:  map[string]any{"key": key},
					}}
				}
			}
			v, err := convert(vn, path+"/"+key)
			if err != nil {
				return wirejson.Value{}, err
			}
			members = append(members, wirejson.Field(key, v))
		}
		return wirejson.Object(members...), nil
	default:
		return wirejson.Value{}, wirejson.Issues{wirejson.Issue{
			Path:    path,
			Code:    wirejson.CodeParseError,
			Message: fmt.Sprintf("unsupported YAML node kind %d", n.Kind),
		}}
	}
}

func convertScalar(n *yaml.Node, path string) (wirejson.Value, error) {
	switch n.Tag {
	case "!!null":
		return wirejson.Null(), nil
	case "!!bool":
		b, err := strconv.ParseBool(n.Value)
		if err != nil {
			return wirejson.Value{}, wirejson.Issues{wirejson.Issue{
				Path:    path,
				Code:    wirejson.CodeParseError,
				Message: "invalid YAML bool: " + n.Value,
				Cause:   err,
			}}
		}
		return wirejson.Bool(b), nil
	case "!!int", "!!float":
		// Keep the scalar literal when it is already valid JSON number syntax;
		// otherwise re-render through Go parsing (hex ints, ".5", leading +).
		if jsonNumberLiteral(n.Value) {
			return wirejson.Number(json.Number(n.Value)), nil
		}
		if i, err := strconv.ParseInt(n.Value, 0, 64); err == nil {
			return wirejson.Int(i), nil
		}
		if f, err := strconv.ParseFloat(n.Value, 64); err == nil {
			return wirejson.Float(f), nil
		}
		return wirejson.Value{}, wirejson.Issues{wirejson.Issue{
			Path:    path,
			Code:    wirejson.CodeParseError,
			Message: "invalid YAML number: " + n.Value,
		}}
	default:
		return wirejson.String(n.Value), nil
	}
}

// jsonNumberLiteral reports whether s already satisfies the RFC 8259 number
// grammar, so it can pass through to JSON output unchanged.
func jsonNumberLiteral(s string) bool {
	if s == "" {
		return false
	}
	i := 0
	if s[i] == '-' {
		i++
	}
	if i >= len(s) || s[i] < '0' || s[i] > '9' {
		return false
	}
	if s[i] == '0' && i+1 < len(s) && s[i+1] >= '0' && s[i+1] <= '9' {
		return false
	}
	// ParseFloat is more lenient than JSON (underscores, hex floats).
	if strings.ContainsAny(s, "_xXpP") {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
