package splrecognizer

import (
	"fmt"

	"github.com/Johnny9802/sigma-spl-bridge/internal/sigmarule"
	"gopkg.in/yaml.v3"
)

// buildDocNode assembles the reconstructed rule as a yaml.Node tree rather
// than marshaling a map, so key order (title, status, level, logsource,
// detection, fields) is deterministic the way a hand-authored Sigma rule
// reads, instead of whatever order Go's map iteration happens to produce.
func buildDocNode(meta RuleMeta, ls sigmarule.LogSource, names []string, groups []sigmarule.Group, cond string, fields []string) *yaml.Node {
	root := mappingNode()

	addPair(root, "title", scalarNode(meta.Title))
	addPair(root, "status", scalarNode(meta.Status))
	addPair(root, "level", scalarNode(meta.Level))
	addPair(root, "logsource", logsourceNode(ls))
	addPair(root, "detection", detectionNode(names, groups, cond))
	if len(fields) > 0 {
		addPair(root, "fields", stringSeqNode(fields))
	}
	return root
}

func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func scalarNode(v string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
}

func nullNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
}

func valueNode(v interface{}) *yaml.Node {
	n := &yaml.Node{}
	if v == nil {
		return nullNode()
	}
	if err := n.Encode(v); err != nil {
		return scalarNode(fmt.Sprintf("%v", v))
	}
	return n
}

func addPair(m *yaml.Node, key string, val *yaml.Node) {
	m.Content = append(m.Content, scalarNode(key), val)
}

func stringSeqNode(items []string) *yaml.Node {
	seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
	for _, it := range items {
		seq.Content = append(seq.Content, scalarNode(it))
	}
	return seq
}

func logsourceNode(ls sigmarule.LogSource) *yaml.Node {
	m := mappingNode()
	if ls.Product != "" {
		addPair(m, "product", scalarNode(ls.Product))
	}
	if ls.Category != "" {
		addPair(m, "category", scalarNode(ls.Category))
	}
	if ls.Service != "" {
		addPair(m, "service", scalarNode(ls.Service))
	}
	if ls.Definition != "" {
		addPair(m, "definition", scalarNode(ls.Definition))
	}
	return m
}

func detectionNode(names []string, groups []sigmarule.Group, cond string) *yaml.Node {
	m := mappingNode()
	for i, name := range names {
		addPair(m, name, groupNode(groups[i]))
	}
	addPair(m, "condition", scalarNode(cond))
	return m
}

// groupNode renders one AND-group as a single YAML mapping, field|mod:
// value for a scalar entry, field|mod: [v1, v2, ...] for a multi-value one.
func groupNode(g sigmarule.Group) *yaml.Node {
	m := mappingNode()
	for _, e := range g.Entries {
		key := e.Field
		for _, mod := range e.Modifiers {
			key += "|" + mod
		}
		if len(e.Values) == 1 {
			addPair(m, key, valueNode(e.Values[0]))
			continue
		}
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, v := range e.Values {
			seq.Content = append(seq.Content, valueNode(v))
		}
		addPair(m, key, seq)
	}
	return m
}
