// Package check holds the results of validating documentation navigation.
package check

import (
	"fmt"
	"strings"
)

// Kind classifies a Problem.
type Kind string

// Kind values.
const (
	KindDanglingLink        Kind = "dangling_link"
	KindDuplicateLabel      Kind = "duplicate_label"
	KindEmptyLabel          Kind = "empty_label"
	KindEmptyGroup          Kind = "empty_group"
	KindMissingLink         Kind = "missing_link"
	KindMalformedLink       Kind = "malformed_link"
	KindUnreachableExternal Kind = "unreachable_external"
	KindInvalidSite         Kind = "invalid_site"
	KindDanglingContentLink Kind = "dangling_content_link"
)

// Kinds returns every Kind in reporting order.
func Kinds() []Kind {
	return []Kind{
		KindDanglingLink,
		KindDuplicateLabel,
		KindEmptyLabel,
		KindEmptyGroup,
		KindMissingLink,
		KindMalformedLink,
		KindUnreachableExternal,
		KindInvalidSite,
		KindDanglingContentLink,
	}
}

// Source identifies which part of a site a Problem was found in.
type Source string

// Source values.
const (
	SourceNav     Source = "nav"
	SourceSidebar Source = "sidebar"
	SourceSocial  Source = "social"
	SourceSite    Source = "site"
	SourcePage    Source = "page"
)

// PathSeparator joins label paths for display.
const PathSeparator = " > "

// Problem is a single finding produced by validation.
type Problem struct {
	kind    Kind
	version string
	source  Source
	path    []string
	link    string
	message string
}

// NewProblem creates a Problem located at the given label path.
func NewProblem(kind Kind, path []string, link, message string) Problem {
	p := make([]string, len(path))
	copy(p, path)
	return Problem{
		kind:    kind,
		path:    p,
		link:    link,
		message: message,
	}
}

// Kind returns the problem classification.
func (p Problem) Kind() Kind { return p.kind }

// Version returns the site version the problem belongs to, if any.
func (p Problem) Version() string { return p.version }

// Source returns the part of the site the problem was found in.
func (p Problem) Source() Source { return p.source }

// Path returns the label path of the offending entry.
func (p Problem) Path() []string {
	result := make([]string, len(p.path))
	copy(result, p.path)
	return result
}

// Link returns the offending link, if any.
func (p Problem) Link() string { return p.link }

// Message returns the human readable description.
func (p Problem) Message() string { return p.message }

// WithVersion returns a copy tagged with the given version.
func (p Problem) WithVersion(version string) Problem {
	p.version = version
	return p
}

// WithSource returns a copy tagged with the given source.
func (p Problem) WithSource(source Source) Problem {
	p.source = source
	return p
}

// Location describes where the problem is, e.g. "v0.6 sidebar Documentation > Usage".
func (p Problem) Location() string {
	parts := make([]string, 0, 3)
	if p.version != "" {
		parts = append(parts, p.version)
	}
	if p.source != "" {
		parts = append(parts, string(p.source))
	}
	if len(p.path) > 0 {
		parts = append(parts, strings.Join(p.path, PathSeparator))
	}
	return strings.Join(parts, " ")
}

// Error renders the problem on one line.
func (p Problem) Error() string {
	var b strings.Builder
	if loc := p.Location(); loc != "" {
		b.WriteString(loc)
		b.WriteString(": ")
	}
	b.WriteString(string(p.kind))
	if p.link != "" {
		fmt.Fprintf(&b, " %s", p.link)
	}
	if p.message != "" {
		b.WriteString(": ")
		b.WriteString(p.message)
	}
	return b.String()
}
