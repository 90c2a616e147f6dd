package nav

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrStop can be returned from a WalkFunc to end the walk early without error.
var ErrStop = errors.New("stop walk")

// Tree is an ordered menu.
type Tree struct {
	entries []Entry
}

// NewTree creates a Tree from top-level entries in display order.
func NewTree(entries []Entry) Tree {
	if entries == nil {
		entries = []Entry{}
	}
	copied := make([]Entry, len(entries))
	copy(copied, entries)
	return Tree{entries: copied}
}

// Entries returns the top-level entries.
func (t Tree) Entries() []Entry {
	result := make([]Entry, len(t.entries))
	copy(result, t.entries)
	return result
}

// Len returns the number of top-level entries.
func (t Tree) Len() int { return len(t.entries) }

// Empty reports whether the tree has no entries.
func (t Tree) Empty() bool { return len(t.entries) == 0 }

// WalkFunc is called for every entry with its label path (including its own label).
type WalkFunc func(path []string, e Entry) error

// Walk visits every entry depth-first in display order.
// Returning ErrStop ends the walk and Walk returns nil.
func (t Tree) Walk(fn WalkFunc) error {
	err := walk(t.entries, nil, fn)
	if errors.Is(err, ErrStop) {
		return nil
	}
	return err
}

func walk(entries []Entry, prefix []string, fn WalkFunc) error {
	for _, e := range entries {
		path := make([]string, len(prefix)+1)
		copy(path, prefix)
		path[len(prefix)] = e.label
		if err := fn(path, e); err != nil {
			return err
		}
		if e.group {
			if err := walk(e.items, path, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

// Ref locates a link within a tree.
type Ref struct {
	Path []string
	Link Link
}

// Label returns the entry's own label.
func (r Ref) Label() string {
	if len(r.Path) == 0 {
		return ""
	}
	return r.Path[len(r.Path)-1]
}

// Links returns every non-empty link in display order, including group links.
func (t Tree) Links() []Ref {
	var refs []Ref
	_ = t.Walk(func(path []string, e Entry) error {
		if strings.TrimSpace(e.link) == "" {
			return nil
		}
		refs = append(refs, Ref{Path: path, Link: ParseLink(e.link)})
		return nil
	})
	return refs
}

// Find resolves an entry by its label path, e.g. Find("Documentation", "Usage").
func (t Tree) Find(path ...string) (Entry, bool) {
	if len(path) == 0 {
		return Entry{}, false
	}
	entries := t.entries
	for i, label := range path {
		found := false
		for _, e := range entries {
			if e.label != label {
				continue
			}
			if i == len(path)-1 {
				return e, true
			}
			entries = e.items
			found = true
			break
		}
		if !found {
			return Entry{}, false
		}
	}
	return Entry{}, false
}

// FindByLink returns the label path of the first entry whose link resolves to page.
func (t Tree) FindByLink(page string) ([]string, bool) {
	want := CanonicalPage(page)
	var result []string
	_ = t.Walk(func(path []string, e Entry) error {
		l := ParseLink(e.link)
		if l.IsInternal() && l.Page() == want {
			result = path
			return ErrStop
		}
		return nil
	})
	return result, result != nil
}

// JSON serializes the tree in the vitepress item shape.
func (t Tree) JSON() (string, error) {
	data, err := json.Marshal(itemsToJSON(t.entries))
	if err != nil {
		return "", fmt.Errorf("marshal tree: %w", err)
	}
	return string(data), nil
}

// MarshalJSON implements json.Marshaler.
func (t Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(itemsToJSON(t.entries))
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Tree) UnmarshalJSON(data []byte) error {
	parsed, err := ParseTree(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTree deserializes a tree from its JSON form.
func ParseTree(content string) (Tree, error) {
	var data []itemJSON
	if err := json.Unmarshal([]byte(content), &data); err != nil {
		return Tree{}, fmt.Errorf("unmarshal tree: %w", err)
	}
	return NewTree(itemsFromJSON(data)), nil
}

type itemJSON struct {
	Text      string      `json:"text"`
	Link      string      `json:"link,omitempty"`
	Collapsed bool        `json:"collapsed,omitempty"`
	Items     *[]itemJSON `json:"items,omitempty"`
}

func itemsToJSON(entries []Entry) []itemJSON {
	result := make([]itemJSON, len(entries))
	for i, e := range entries {
		result[i] = itemJSON{
			Text:      e.label,
			Link:      e.link,
			Collapsed: e.collapsed,
		}
		if e.group {
			items := itemsToJSON(e.items)
			result[i].Items = &items
		}
	}
	return result
}

func itemsFromJSON(data []itemJSON) []Entry {
	result := make([]Entry, len(data))
	for i, d := range data {
		if d.Items != nil {
			result[i] = NewGroup(d.Text, itemsFromJSON(*d.Items)).
				WithLink(d.Link).
				WithCollapsed(d.Collapsed)
			continue
		}
		result[i] = NewLink(d.Text, d.Link)
	}
	return result
}
