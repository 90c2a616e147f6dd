package persistence

import "github.com/helixml/docnav/domain/check"

// ReportMapper maps between check.Report and CheckRunModel.
type ReportMapper struct{}

// ToDomain converts a CheckRunModel to a check.Report.
func (m ReportMapper) ToDomain(e CheckRunModel) check.Report {
	problems := make([]check.Problem, len(e.Problems))
	for i, p := range e.Problems {
		problems[i] = ProblemMapper{}.ToDomain(p)
	}
	return check.NewReport(
		e.ID,
		e.Versions,
		e.StartedAt,
		e.FinishedAt,
		e.LinksChecked,
		e.PagesIndexed,
		problems,
	)
}

// ToModel converts a check.Report to a CheckRunModel, including its problems.
func (m ReportMapper) ToModel(r check.Report) CheckRunModel {
	problems := r.Problems()
	models := make([]ProblemModel, len(problems))
	for i, p := range problems {
		models[i] = ProblemMapper{}.ToModel(p)
		models[i].RunID = r.ID()
		models[i].Position = i
	}
	return CheckRunModel{
		ID:           r.ID(),
		Versions:     r.Versions(),
		StartedAt:    r.StartedAt(),
		FinishedAt:   r.FinishedAt(),
		LinksChecked: r.LinksChecked(),
		PagesIndexed: r.PagesIndexed(),
		OK:           r.OK(),
		Problems:     models,
	}
}

// ProblemMapper maps between check.Problem and ProblemModel.
type ProblemMapper struct{}

// ToDomain converts a ProblemModel to a check.Problem.
func (m ProblemMapper) ToDomain(e ProblemModel) check.Problem {
	return check.NewProblem(check.Kind(e.Kind), e.Path, e.Link, e.Message).
		WithVersion(e.Version).
		WithSource(check.Source(e.Source))
}

// ToModel converts a check.Problem to a ProblemModel. RunID and Position are
// set by the owning report.
func (m ProblemMapper) ToModel(p check.Problem) ProblemModel {
	return ProblemModel{
		Kind:    string(p.Kind()),
		Version: p.Version(),
		Source:  string(p.Source()),
		Path:    p.Path(),
		Link:    p.Link(),
		Message: p.Message(),
	}
}
