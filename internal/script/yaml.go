package script

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/roach88/platymap/internal/ir"
)

func parseYAML(data []byte) ([]ir.Entry, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, ir.DocumentError(ir.KindParseFailure, err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return nil, ir.DocumentError(ir.KindParseFailure, errors.New("empty document"))
	}

	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.SequenceNode {
		return nil, ir.DocumentError(ir.KindInvalidFormat, nil)
	}
	entries := make([]ir.Entry, 0, len(root.Content))
	for i, n := range root.Content {
		v, err := fromYAML(n)
		if err != nil {
			return nil, ir.DocumentError(ir.KindParseFailure, err)
		}
		obj, ok := v.(ir.IRObject)
		if !ok {
			return nil, ir.EntryError(ir.KindInvalidFormat, i, "", "")
		}
		entries = append(entries, entryFromObject(obj))
	}
	return entries, nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func fromYAML(n *yaml.Node) (ir.IRValue, error) {
	n = resolveAlias(n)
	switch n.Kind {
	case yaml.ScalarNode:
		return yamlScalar(n), nil
	case yaml.SequenceNode:
		arr := make(ir.IRArray, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := fromYAML(c)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.MappingNode:
		obj := make(ir.IRObject, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := resolveAlias(n.Content[i])
			if key.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping key must be a scalar", key.Line)
			}
			if _, dup := obj[key.Value]; dup {
				return nil, fmt.Errorf("line %d: duplicate key %q", key.Line, key.Value)
			}
			v, err := fromYAML(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj[key.Value] = v
		}
		return obj, nil
	}
	return nil, fmt.Errorf("line %d: unsupported node", n.Line)
}

func yamlScalar(n *yaml.Node) ir.IRValue {
	switch n.ShortTag() {
	case "!!null":
		return ir.IRNull{}
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err == nil {
			return ir.IRBool(b)
		}
	case "!!int":
		var i int64
		if err := n.Decode(&i); err == nil {
			return ir.IRInt(i)
		}
		var f float64
		if err := n.Decode(&f); err == nil {
			return ir.IRFloat(f)
		}
	case "!!float":
		var f float64
		if err := n.Decode(&f); err == nil {
			return ir.IRFloat(f)
		}
	}
	return ir.IRString(n.Value)
}

// marshalYAML writes a block sequence of mappings with args in flow style.
func marshalYAML(s ir.Script) ([]byte, error) {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, rec := range s {
		m := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		if rec.Wait != 0 {
			m.Content = append(m.Content, yamlKey("wait"), yamlInt(rec.Wait))
		}
		m.Content = append(m.Content, yamlKey("action"), yamlString(rec.Action))
		if len(rec.Args) > 0 {
			args := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Style: yaml.FlowStyle}
			for _, arg := range rec.Args {
				args.Content = append(args.Content, yamlKey(arg.Name), yamlInt(arg.Value))
			}
			m.Content = append(m.Content, yamlKey("args"), args)
		}
		seq.Content = append(seq.Content, m)
	}
	if len(s) == 0 {
		seq.Style = yaml.FlowStyle
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(seq); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func yamlKey(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

// yamlString tags the value explicitly so names like "null" or "true"
// survive a round trip as strings.
func yamlString(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func yamlInt(v int32) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(int64(v), 10)}
}
