package preset

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Plugins is an insertion-ordered mapping from plugin id to its options.
// The zero value is an empty mapping ready to use.
type Plugins struct {
	ids  []string
	opts map[string]Options
}

// NewPlugins builds a mapping from entries in order.
func NewPlugins(entries ...Entry) Plugins {
	var p Plugins
	for _, e := range entries {
		p.Set(e.ID, e.Options)
	}
	return p
}

// Entry is one id/options pair.
type Entry struct {
	ID      string
	Options Options
}

// Set stores options for id. An existing id keeps its position and has its
// options replaced.
func (p *Plugins) Set(id string, opts Options) {
	if p.opts == nil {
		p.opts = make(map[string]Options)
	}
	if opts == nil {
		opts = Options{}
	}
	if _, ok := p.opts[id]; !ok {
		p.ids = append(p.ids, id)
	}
	p.opts[id] = opts
}

// Insert places id at index, shifting later entries. If id is already present
// its options are replaced and it is moved to index.
func (p *Plugins) Insert(index int, id string, opts Options) {
	p.Delete(id)
	if index < 0 {
		index = 0
	}
	if index > len(p.ids) {
		index = len(p.ids)
	}
	if p.opts == nil {
		p.opts = make(map[string]Options)
	}
	if opts == nil {
		opts = Options{}
	}
	p.ids = append(p.ids, "")
	copy(p.ids[index+1:], p.ids[index:])
	p.ids[index] = id
	p.opts[id] = opts
}

// Get returns the options stored for id. The returned map is live: mutating
// it mutates the mapping.
func (p Plugins) Get(id string) (Options, bool) {
	opts, ok := p.opts[id]
	return opts, ok
}

// Has reports whether id is present.
func (p Plugins) Has(id string) bool {
	_, ok := p.opts[id]
	return ok
}

// Delete removes id. Missing ids are ignored.
func (p *Plugins) Delete(id string) {
	if _, ok := p.opts[id]; !ok {
		return
	}
	delete(p.opts, id)
	for i, existing := range p.ids {
		if existing == id {
			p.ids = append(p.ids[:i], p.ids[i+1:]...)
			break
		}
	}
}

// IDs returns the plugin ids in insertion order.
func (p Plugins) IDs() []string {
	out := make([]string, len(p.ids))
	copy(out, p.ids)
	return out
}

// Len returns the number of plugins.
func (p Plugins) Len() int { return len(p.ids) }

// Entries returns the id/options pairs in order. Options are live.
func (p Plugins) Entries() []Entry {
	out := make([]Entry, 0, len(p.ids))
	for _, id := range p.ids {
		out = append(out, Entry{ID: id, Options: p.opts[id]})
	}
	return out
}

// Clone deep-copies the mapping and every options map.
func (p Plugins) Clone() Plugins {
	var out Plugins
	for _, id := range p.ids {
		out.Set(id, p.opts[id].Clone())
	}
	return out
}

// MarshalYAML emits a mapping node so key order survives a round trip.
func (p Plugins) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	for _, id := range p.ids {
		var value yaml.Node
		if err := value.Encode(map[string]any(p.opts[id])); err != nil {
			return nil, fmt.Errorf("encoding options for %s: %w", id, err)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: id},
			&value,
		)
	}
	return node, nil
}

// UnmarshalYAML reads a mapping node in document order.
func (p *Plugins) UnmarshalYAML(node *yaml.Node) error {
	*p = Plugins{}
	if node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: plugins must be a mapping", node.Line)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		opts := Options{}
		if !(value.Kind == yaml.ScalarNode && value.ShortTag() == "!!null") {
			if err := value.Decode(&opts); err != nil {
				return fmt.Errorf("line %d: options for %s: %w", value.Line, key.Value, err)
			}
		}
		p.Set(key.Value, opts)
	}
	return nil
}

// MarshalJSON emits an object with keys in insertion order.
func (p Plugins) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, id := range p.ids {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(id)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(map[string]any(p.opts[id].Clone()))
		if err != nil {
			return nil, fmt.Errorf("encoding options for %s: %w", id, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads an object in document order.
func (p *Plugins) UnmarshalJSON(data []byte) error {
	*p = Plugins{}
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("plugins must be an object")
	}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		id, _ := tok.(string)
		var opts Options
		if err := dec.Decode(&opts); err != nil {
			return fmt.Errorf("options for %s: %w", id, err)
		}
		p.Set(id, opts)
	}
	_, err = dec.Token()
	return err
}
