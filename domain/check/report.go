package check

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Report is the outcome of one check run.
type Report struct {
	id           string
	versions     []string
	startedAt    time.Time
	finishedAt   time.Time
	linksChecked int
	pagesIndexed int
	problems     []Problem
}

// NewReport creates a Report.
func NewReport(
	id string,
	versions []string,
	startedAt, finishedAt time.Time,
	linksChecked, pagesIndexed int,
	problems []Problem,
) Report {
	v := make([]string, len(versions))
	copy(v, versions)
	if problems == nil {
		problems = []Problem{}
	}
	p := make([]Problem, len(problems))
	copy(p, problems)
	return Report{
		id:           id,
		versions:     v,
		startedAt:    startedAt,
		finishedAt:   finishedAt,
		linksChecked: linksChecked,
		pagesIndexed: pagesIndexed,
		problems:     p,
	}
}

// ID returns the run identifier.
func (r Report) ID() string { return r.id }

// Versions returns the site versions that were checked.
func (r Report) Versions() []string {
	result := make([]string, len(r.versions))
	copy(result, r.versions)
	return result
}

// StartedAt returns when the run began.
func (r Report) StartedAt() time.Time { return r.startedAt }

// FinishedAt returns when the run ended.
func (r Report) FinishedAt() time.Time { return r.finishedAt }

// Duration returns how long the run took.
func (r Report) Duration() time.Duration { return r.finishedAt.Sub(r.startedAt) }

// LinksChecked returns the number of links that were resolved.
func (r Report) LinksChecked() int { return r.linksChecked }

// PagesIndexed returns the number of pages in the catalog.
func (r Report) PagesIndexed() int { return r.pagesIndexed }

// Problems returns every finding in reporting order.
func (r Report) Problems() []Problem {
	result := make([]Problem, len(r.problems))
	copy(result, r.problems)
	return result
}

// OK reports whether the run found no problems.
func (r Report) OK() bool { return len(r.problems) == 0 }

// CountByKind tallies problems per kind.
func (r Report) CountByKind() map[Kind]int {
	counts := make(map[Kind]int)
	for _, p := range r.problems {
		counts[p.kind]++
	}
	return counts
}

// Err returns a *ValidationError when the run found problems, nil otherwise.
func (r Report) Err() error {
	if r.OK() {
		return nil
	}
	return NewValidationError(r.problems)
}

// ValidationError aggregates the problems of a failed check.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	problems []Problem
}

// NewValidationError creates a ValidationError.
func NewValidationError(problems []Problem) *ValidationError {
	p := make([]Problem, len(problems))
	copy(p, problems)
	return &ValidationError{problems: p}
}

// Problems returns the aggregated problems.
func (e *ValidationError) Problems() []Problem {
	result := make([]Problem, len(e.problems))
	copy(result, e.problems)
	return result
}

func (e *ValidationError) Error() string {
	switch len(e.problems) {
	case 0:
		return ErrValidation.Error()
	case 1:
		return fmt.Sprintf("%s: %s", ErrValidation, e.problems[0].Error())
	}
	lines := make([]string, len(e.problems))
	for i, p := range e.problems {
		lines[i] = "  " + p.Error()
	}
	return fmt.Sprintf("%s: %d problems\n%s", ErrValidation, len(e.problems), strings.Join(lines, "\n"))
}

// Unwrap allows errors.Is(err, ErrValidation).
func (e *ValidationError) Unwrap() error { return ErrValidation }

// ReportStore persists check reports.
type ReportStore interface {
	Save(ctx context.Context, report Report) (Report, error)
	Latest(ctx context.Context) (Report, error)
	Get(ctx context.Context, id string) (Report, error)
	List(ctx context.Context, limit int) ([]Report, error)
	Prune(ctx context.Context, keep int) (int64, error)
}
