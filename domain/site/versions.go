package site

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode"

	goversion "github.com/hashicorp/go-version"
)

var (
	// ErrUnknownVersion indicates no site exists for the requested version.
	ErrUnknownVersion = errors.New("unknown version")

	// ErrDuplicateVersion indicates two sites share a version name.
	ErrDuplicateVersion = errors.New("duplicate version")
)

// Versions is an ordered set of sites keyed by version name, oldest first.
type Versions struct {
	sites []Site
}

// NewVersions creates a Versions set ordered by CompareVersions.
func NewVersions(sites []Site) (Versions, error) {
	seen := make(map[string]bool, len(sites))
	sorted := make([]Site, 0, len(sites))
	for _, s := range sites {
		if seen[s.version] {
			return Versions{}, fmt.Errorf("%w: %s", ErrDuplicateVersion, s.version)
		}
		seen[s.version] = true
		sorted = append(sorted, s)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return CompareVersions(sorted[i].version, sorted[j].version) < 0
	})
	return Versions{sites: sorted}, nil
}

// Sites returns every site, oldest first.
func (v Versions) Sites() []Site {
	result := make([]Site, len(v.sites))
	copy(result, v.sites)
	return result
}

// Names returns every version name, oldest first.
func (v Versions) Names() []string {
	names := make([]string, len(v.sites))
	for i, s := range v.sites {
		names[i] = s.version
	}
	return names
}

// Len returns the number of versions.
func (v Versions) Len() int { return len(v.sites) }

// Get returns the site for version.
func (v Versions) Get(version string) (Site, error) {
	for _, s := range v.sites {
		if s.version == version {
			return s, nil
		}
	}
	return Site{}, fmt.Errorf("%w: %s", ErrUnknownVersion, version)
}

// Latest returns the newest site.
func (v Versions) Latest() (Site, bool) {
	if len(v.sites) == 0 {
		return Site{}, false
	}
	return v.sites[len(v.sites)-1], true
}

// Select returns the sites for the named versions, in set order.
// An empty selection returns every site.
func (v Versions) Select(names ...string) ([]Site, error) {
	if len(names) == 0 {
		return v.Sites(), nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		if _, err := v.Get(n); err != nil {
			return nil, err
		}
		want[n] = true
	}
	var result []Site
	for _, s := range v.sites {
		if want[s.version] {
			result = append(result, s)
		}
	}
	return result, nil
}

// CompareVersions orders version names. Names that parse as versions
// ("v0.9", "1.2.0-rc1") compare semantically and sort before names that
// do not ("next"), which fall back to natural order where digit runs
// compare numerically.
func CompareVersions(a, b string) int {
	va, errA := goversion.NewVersion(a)
	vb, errB := goversion.NewVersion(b)
	switch {
	case errA == nil && errB == nil:
		return va.Compare(vb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	}
	return compareNatural(a, b)
}

func compareNatural(a, b string) int {
	ta, tb := tokenize(a), tokenize(b)
	for i := 0; i < len(ta) && i < len(tb); i++ {
		if c := compareToken(ta[i], tb[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(ta) < len(tb):
		return -1
	case len(ta) > len(tb):
		return 1
	}
	return 0
}

func tokenize(s string) []string {
	var tokens []string
	var cur strings.Builder
	digit := false
	for i, r := range strings.TrimPrefix(strings.ToLower(s), "v") {
		d := unicode.IsDigit(r)
		if i > 0 && d != digit {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
		digit = d
		cur.WriteRune(r)
	}
	if cur.Len() > 0 {
		tokens = append(tokens, cur.String())
	}
	return tokens
}

func compareToken(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
		return 0
	}
	return strings.Compare(a, b)
}
