package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// MarshalYAML encodes the document as YAML, keys in document order.
func MarshalYAML(d *Document) ([]byte, error) {
	return yaml.Marshal(d.Node())
}

// MarshalJSON encodes the document as indented JSON, keys in document order.
func MarshalJSON(d *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeNodeJSON(&buf, d.Node()); err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("openapi: indenting json: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}

// MarshalJSON implements json.Marshaler.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeNodeJSON(&buf, d.Node()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// MarshalYAML implements yaml.Marshaler.
func (d *Document) MarshalYAML() (any, error) {
	return d.Node(), nil
}

// Node builds the ordered YAML node tree for the document.
func (d *Document) Node() *yaml.Node {
	m := newMapping()
	m.str("openapi", d.OpenAPI)

	info := newMapping()
	info.str("title", d.Info.Title)
	info.str("description", d.Info.Description)
	info.str("version", d.Info.Version)
	m.node("info", info.done())

	paths := newMapping()
	for p, item := range d.Paths.All() {
		paths.node(p, item.node())
	}
	// paths is a required member, so an empty document still writes it.
	m.set("paths", paths.Node)

	if d.Components.Schemas.Len() > 0 {
		schemas := newMapping()
		for name, s := range d.Components.Schemas.All() {
			schemas.set(name, s.node())
		}
		comps := newMapping()
		comps.node("schemas", schemas.done())
		m.node("components", comps.done())
	}
	return m.Node
}

func (p *PathItem) node() *yaml.Node {
	m := newMapping()
	for method, op := range p.Operations().All() {
		m.node(method, op.node())
	}
	return m.done()
}

func (o *Operation) node() *yaml.Node {
	m := newMapping()
	m.str("summary", o.Summary)
	m.str("operationId", o.OperationID)
	if len(o.Parameters) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, p := range o.Parameters {
			seq.Content = append(seq.Content, p.node())
		}
		m.set("parameters", seq)
	}
	if o.RequestBody != nil {
		rb := newMapping()
		rb.node("content", contentNode(o.RequestBody.Content))
		rb.boolean("required", o.RequestBody.Required)
		m.node("requestBody", rb.done())
	}
	responses := newMapping()
	for code, r := range o.Responses.All() {
		responses.set(code, r.node())
	}
	m.node("responses", responses.done())
	return m.Node
}

func (p *Parameter) node() *yaml.Node {
	m := newMapping()
	m.str("name", p.Name)
	m.str("in", p.In)
	m.boolean("required", p.Required)
	m.node("schema", p.Schema.node())
	return m.Node
}

func (r *Response) node() *yaml.Node {
	m := newMapping()
	// description is required on a response even when blank.
	m.set("description", scalarNode("!!str", r.Description))
	m.node("content", contentNode(r.Content))
	return m.Node
}

func contentNode(c *OrderedMap[*MediaType]) *yaml.Node {
	if c.Len() == 0 {
		return nil
	}
	m := newMapping()
	for ct, mt := range c.All() {
		mm := newMapping()
		mm.node("schema", mt.Schema.node())
		m.set(ct, mm.Node)
	}
	return m.Node
}

func (s *Schema) node() *yaml.Node {
	if s == nil {
		return nil
	}
	m := newMapping()
	if s.IsRef() {
		m.str("$ref", s.Ref)
		return m.Node
	}
	m.str("type", s.Type)
	m.str("format", s.Format)
	m.str("description", s.Description)
	m.float("minimum", s.Minimum)
	m.float("maximum", s.Maximum)
	m.integer("minLength", s.MinLength)
	m.integer("maxLength", s.MaxLength)
	m.str("pattern", s.Pattern)
	m.node("items", s.Items.node())
	m.integer("minItems", s.MinItems)
	m.integer("maxItems", s.MaxItems)
	if s.Properties.Len() > 0 {
		props := newMapping()
		for name, p := range s.Properties.All() {
			props.set(name, p.node())
		}
		m.set("properties", props.Node)
	}
	m.node("additionalProperties", s.AdditionalProperties.node())
	if len(s.Required) > 0 {
		seq := &yaml.Node{Kind: yaml.SequenceNode}
		for _, r := range s.Required {
			seq.Content = append(seq.Content, scalarNode("!!str", r))
		}
		m.set("required", seq)
	}
	return m.Node
}

// mapping accumulates a MappingNode, skipping empty values.
type mapping struct {
	*yaml.Node
}

func newMapping() mapping {
	return mapping{&yaml.Node{Kind: yaml.MappingNode}}
}

func (m mapping) set(key string, v *yaml.Node) {
	m.Content = append(m.Content, scalarNode("!!str", key), v)
}

func (m mapping) node(key string, v *yaml.Node) {
	if v == nil || (v.Kind == yaml.MappingNode && len(v.Content) == 0) {
		return
	}
	m.set(key, v)
}

func (m mapping) str(key, v string) {
	if v != "" {
		m.set(key, scalarNode("!!str", v))
	}
}

func (m mapping) boolean(key string, v bool) {
	if v {
		m.set(key, scalarNode("!!bool", "true"))
	}
}

func (m mapping) integer(key string, v *int) {
	if v != nil {
		m.set(key, scalarNode("!!int", strconv.Itoa(*v)))
	}
}

func (m mapping) float(key string, v *float64) {
	if v == nil {
		return
	}
	s := strconv.FormatFloat(*v, 'f', -1, 64)
	tag := "!!float"
	if !strings.Contains(s, ".") {
		tag = "!!int"
	}
	m.set(key, scalarNode(tag, s))
}

// done returns the node, or nil when it has no entries.
func (m mapping) done() *yaml.Node {
	if len(m.Content) == 0 {
		return nil
	}
	return m.Node
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

// writeNodeJSON writes a node tree built by this package as compact JSON.
func writeNodeJSON(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.Kind {
	case yaml.MappingNode:
		buf.WriteByte('{')
		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeJSONString(buf, n.Content[i].Value); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeNodeJSON(buf, n.Content[i+1]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')
		for i, c := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeNodeJSON(buf, c); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case yaml.ScalarNode:
		if n.Tag == "!!str" {
			return writeJSONString(buf, n.Value)
		}
		buf.WriteString(n.Value)
	default:
		return fmt.Errorf("openapi: unexpected node kind %v", n.Kind)
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	b, err := json.Marshal(s)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
