package checklist

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

type item struct {
	name string
	done bool
}

// Checklist is an insertion-ordered mapping from a checklist-item name to a
// completion flag. Names are unique within one checklist; values are strictly
// boolean. The zero value is an empty checklist ready for use.
//
// It serializes as a plain JSON object whose member order is the item order,
// and deserializes preserving the document order of the stored object.
type Checklist struct {
	items []item
}

// New builds a checklist with the given item names, all unchecked.
func New(names ...string) Checklist {
	c := Checklist{}
	for _, name := range names {
		c.Set(name, false)
	}
	return c
}

func (c Checklist) Len() int {
	return len(c.items)
}

// Names returns the item names in checklist order.
func (c Checklist) Names() []string {
	out := make([]string, len(c.items))
	for i, it := range c.items {
		out[i] = it.name
	}
	return out
}

// Get returns the flag for name and whether the item exists.
func (c Checklist) Get(name string) (bool, bool) {
	for _, it := range c.items {
		if it.name == name {
			return it.done, true
		}
	}
	return false, false
}

// Set updates name in place when present, otherwise appends it.
func (c *Checklist) Set(name string, done bool) {
	for i, it := range c.items {
		if it.name == name {
			c.items[i].done = done
			return
		}
	}
	c.items = append(c.items, item{name: name, done: done})
}

// Add inserts name unchecked. Empty or whitespace-only names are ignored.
// An existing item of the same name is silently reset to unchecked.
func (c *Checklist) Add(name string) {
	if strings.TrimSpace(name) == "" {
		return
	}
	c.Set(name, false)
}

// Rename moves oldName's flag to newName, keeping the item's position.
// It is a no-op when newName is empty/whitespace, equals oldName, or oldName
// is absent. An existing item already named newName is silently dropped.
func (c *Checklist) Rename(oldName, newName string) {
	if strings.TrimSpace(newName) == "" || newName == oldName {
		return
	}
	idx := -1
	for i, it := range c.items {
		if it.name == oldName {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	c.items[idx].name = newName
	for i, it := range c.items {
		if i != idx && it.name == newName {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
}

// Remove deletes name; no-op when absent.
func (c *Checklist) Remove(name string) {
	for i, it := range c.items {
		if it.name == name {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return
		}
	}
}

// Toggle flips name's flag; no-op when absent.
func (c *Checklist) Toggle(name string) {
	for i, it := range c.items {
		if it.name == name {
			c.items[i].done = !c.items[i].done
			return
		}
	}
}

// Clone returns an independent copy.
func (c Checklist) Clone() Checklist {
	out := Checklist{items: make([]item, len(c.items))}
	copy(out.items, c.items)
	return out
}

// Equal reports whether both checklists hold the same items in the same order.
func (c Checklist) Equal(other Checklist) bool {
	if len(c.items) != len(other.items) {
		return false
	}
	for i, it := range c.items {
		if other.items[i] != it {
			return false
		}
	}
	return true
}

func (c Checklist) MarshalJSON() ([]byte, error) {
	buf := bytes.Buffer{}
	buf.WriteByte('{')
	for i, it := range c.items {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(it.name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		if it.done {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (c *Checklist) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("decode checklist: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("decode checklist: expected object, got %v", tok)
	}
	loaded := Checklist{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("decode checklist key: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("decode checklist: non-string key %v", keyTok)
		}
		var done bool
		if err := dec.Decode(&done); err != nil {
			return fmt.Errorf("decode checklist: value for %q is not a boolean: %w", name, err)
		}
		loaded.Set(name, done)
	}
	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("decode checklist: %w", err)
	}
	c.items = loaded.items
	return nil
}
