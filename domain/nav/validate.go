package nav

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/helixml/docnav/domain/check"
)

// Validate reports structural problems in display order:
// empty labels, duplicate sibling labels, empty groups, leaves without a
// link and malformed links. It does not check that pages exist.
func (t Tree) Validate() []check.Problem {
	problems := []check.Problem{}
	validateEntries(t.entries, nil, &problems)
	return problems
}

func validateEntries(entries []Entry, prefix []string, problems *[]check.Problem) {
	seen := make(map[string]int, len(entries))

	for _, e := range entries {
		path := append(append([]string{}, prefix...), e.label)
		label := strings.TrimSpace(e.label)

		if label == "" {
			*problems = append(*problems, check.NewProblem(check.KindEmptyLabel, path, e.link, "entry has no label"))
		} else {
			seen[label]++
			if n := seen[label]; n > 1 {
				*problems = append(*problems, check.NewProblem(check.KindDuplicateLabel, path, e.link,
					fmt.Sprintf("label %q appears %d times in the same group", label, n)))
			}
		}

		switch {
		case e.group && len(e.items) == 0:
			*problems = append(*problems, check.NewProblem(check.KindEmptyGroup, path, e.link, "group has no items"))
		case !e.group && strings.TrimSpace(e.link) == "":
			*problems = append(*problems, check.NewProblem(check.KindMissingLink, path, "", "entry has no link"))
		}

		if e.link != "" {
			if msg := malformed(e.link); msg != "" {
				*problems = append(*problems, check.NewProblem(check.KindMalformedLink, path, e.link, msg))
			}
		}

		if e.group {
			validateEntries(e.items, path, problems)
		}
	}
}

// malformed returns why a menu link is unusable, or "" when it is fine.
func malformed(link string) string {
	if strings.IndexFunc(link, unicode.IsSpace) >= 0 {
		return "link contains whitespace"
	}
	switch ParseLink(link).Kind() {
	case LinkRelative:
		return "menu links must be absolute (start with \"/\") or external"
	case LinkAnchor:
		return "anchor-only links have no page to point at in a menu"
	}
	return ""
}
