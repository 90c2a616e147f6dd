package nav

import "strings"

// ChangeKind classifies a difference between two trees.
type ChangeKind string

// ChangeKind values.
const (
	ChangeAdded    ChangeKind = "added"
	ChangeRemoved  ChangeKind = "removed"
	ChangeRelinked ChangeKind = "relinked"
	ChangeMoved    ChangeKind = "moved"
)

// Change is a single difference between two trees, keyed by label path.
type Change struct {
	Kind    ChangeKind
	Path    []string
	OldLink string
	NewLink string
}

// String renders the change on one line.
func (c Change) String() string {
	path := strings.Join(c.Path, " > ")
	switch c.Kind {
	case ChangeAdded:
		return "+ " + path + " " + c.NewLink
	case ChangeRemoved:
		return "- " + path + " " + c.OldLink
	case ChangeRelinked:
		return "~ " + path + " " + c.OldLink + " -> " + c.NewLink
	default:
		return "^ " + path
	}
}

type flatEntry struct {
	path   []string
	key    string
	parent string
	link   string
}

// Diff compares two trees. Entries are matched by label path. Added,
// relinked and moved entries are listed in the display order of to,
// followed by removed entries in the display order of from. An entry is
// moved when its rank among the siblings present in both trees changes.
func Diff(from, to Tree) []Change {
	a := flatten(from)
	b := flatten(to)

	aByKey := make(map[string]flatEntry, len(a))
	for _, e := range a {
		if _, dup := aByKey[e.key]; !dup {
			aByKey[e.key] = e
		}
	}
	bByKey := make(map[string]flatEntry, len(b))
	for _, e := range b {
		if _, dup := bByKey[e.key]; !dup {
			bByKey[e.key] = e
		}
	}

	rankA := commonRanks(a, bByKey)
	rankB := commonRanks(b, aByKey)

	changes := []Change{}
	seen := make(map[string]bool, len(b))
	for _, e := range b {
		if seen[e.key] {
			continue
		}
		seen[e.key] = true

		old, ok := aByKey[e.key]
		if !ok {
			changes = append(changes, Change{Kind: ChangeAdded, Path: e.path, NewLink: e.link})
			continue
		}
		if old.link != e.link {
			changes = append(changes, Change{Kind: ChangeRelinked, Path: e.path, OldLink: old.link, NewLink: e.link})
		}
		if rankA[e.key] != rankB[e.key] {
			changes = append(changes, Change{Kind: ChangeMoved, Path: e.path, OldLink: old.link, NewLink: e.link})
		}
	}

	removed := make(map[string]bool)
	for _, e := range a {
		if _, ok := bByKey[e.key]; ok || removed[e.key] {
			continue
		}
		removed[e.key] = true
		changes = append(changes, Change{Kind: ChangeRemoved, Path: e.path, OldLink: e.link})
	}

	return changes
}

func flatten(t Tree) []flatEntry {
	var result []flatEntry
	_ = t.Walk(func(path []string, e Entry) error {
		result = append(result, flatEntry{
			path:   path,
			key:    pathKey(path),
			parent: pathKey(path[:len(path)-1]),
			link:   e.link,
		})
		return nil
	})
	return result
}

// commonRanks numbers each entry among its siblings that also exist in other.
func commonRanks(entries []flatEntry, other map[string]flatEntry) map[string]int {
	ranks := make(map[string]int, len(entries))
	next := make(map[string]int)
	for _, e := range entries {
		if _, ok := other[e.key]; !ok {
			continue
		}
		if _, dup := ranks[e.key]; dup {
			continue
		}
		ranks[e.key] = next[e.parent]
		next[e.parent]++
	}
	return ranks
}

func pathKey(path []string) string {
	return strings.Join(path, "\x1f")
}
