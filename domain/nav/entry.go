// Package nav models documentation navigation menus.
//
// A menu is a Tree of Entries. An Entry is either a link (a label pointing
// at a page) or a group (a label holding an ordered sequence of further
// entries). Order within a group is display order. Trees are built once
// and never mutated; accessors return copies.
package nav

// Entry is a single menu item.
type Entry struct {
	label     string
	link      string
	group     bool
	collapsed bool
	items     []Entry
}

// NewLink creates a leaf entry pointing at link.
func NewLink(label, link string) Entry {
	return Entry{
		label: label,
		link:  link,
	}
}

// NewGroup creates a group entry holding items in display order.
func NewGroup(label string, items []Entry) Entry {
	if items == nil {
		items = []Entry{}
	}
	copied := make([]Entry, len(items))
	copy(copied, items)
	return Entry{
		label: label,
		group: true,
		items: copied,
	}
}

// WithLink returns a copy of the entry with its own link set.
// Groups may carry a link to an overview page.
func (e Entry) WithLink(link string) Entry {
	e.link = link
	return e
}

// WithCollapsed returns a copy with the collapsed flag set.
func (e Entry) WithCollapsed(collapsed bool) Entry {
	e.collapsed = collapsed
	return e
}

// Label returns the display text.
func (e Entry) Label() string { return e.label }

// Link returns the raw link target, possibly empty for groups.
func (e Entry) Link() string { return e.link }

// ParsedLink returns the classified link target.
func (e Entry) ParsedLink() Link { return ParseLink(e.link) }

// IsGroup reports whether the entry holds child entries.
func (e Entry) IsGroup() bool { return e.group }

// Collapsed reports whether a group renders collapsed by default.
func (e Entry) Collapsed() bool { return e.collapsed }

// Items returns the child entries in display order.
func (e Entry) Items() []Entry {
	result := make([]Entry, len(e.items))
	copy(result, e.items)
	return result
}

// Len returns the number of direct children.
func (e Entry) Len() int { return len(e.items) }
