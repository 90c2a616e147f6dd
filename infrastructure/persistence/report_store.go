package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/helixml/docnav/domain/check"
	"github.com/helixml/docnav/domain/repository"
	"github.com/helixml/docnav/internal/database"
	"gorm.io/gorm"
)

// ReportStore implements check.ReportStore using GORM.
type ReportStore struct {
	db       database.Database
	runs     database.Repository[check.Report, CheckRunModel]
	problems database.Repository[check.Problem, ProblemModel]
}

// NewReportStore creates a new ReportStore.
func NewReportStore(db database.Database) ReportStore {
	return ReportStore{
		db:       db,
		runs:     database.NewRepository[check.Report, CheckRunModel](db, ReportMapper{}, "check run"),
		problems: database.NewRepository[check.Problem, ProblemModel](db, ProblemMapper{}, "check problem"),
	}
}

func newestFirst() []repository.Option {
	return []repository.Option{
		repository.WithOrderDesc("started_at"),
		repository.WithOrderDesc("id"),
		repository.WithPreload("Problems", "position ASC"),
	}
}

// Save stores a report and its problems. A report without an ID is given one.
func (s ReportStore) Save(ctx context.Context, report check.Report) (check.Report, error) {
	if report.ID() == "" {
		report = check.NewReport(
			uuid.NewString(),
			report.Versions(),
			report.StartedAt(),
			report.FinishedAt(),
			report.LinksChecked(),
			report.PagesIndexed(),
			report.Problems(),
		)
	}
	err := database.WithTransaction(ctx, s.db, func(tx *gorm.DB) error {
		return s.runs.Create(ctx, tx, report)
	})
	if err != nil {
		return check.Report{}, fmt.Errorf("save report: %w", err)
	}
	return report, nil
}

// Latest returns the most recently started report.
func (s ReportStore) Latest(ctx context.Context) (check.Report, error) {
	report, err := s.runs.FindOne(ctx, newestFirst()...)
	if err != nil {
		return check.Report{}, notFound(err, "no reports")
	}
	return report, nil
}

// Get returns the report with the given ID.
func (s ReportStore) Get(ctx context.Context, id string) (check.Report, error) {
	opts := append([]repository.Option{repository.WithCondition("id", id)}, newestFirst()...)
	report, err := s.runs.FindOne(ctx, opts...)
	if err != nil {
		return check.Report{}, notFound(err, "report "+id)
	}
	return report, nil
}

// List returns up to limit reports, newest first. A limit of zero returns all.
func (s ReportStore) List(ctx context.Context, limit int) ([]check.Report, error) {
	opts := newestFirst()
	if limit > 0 {
		opts = append(opts, repository.WithLimit(limit))
	}
	return s.runs.Find(ctx, opts...)
}

// Prune deletes all but the newest keep reports and returns how many were
// deleted. A keep of zero or less deletes nothing.
func (s ReportStore) Prune(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}
	return database.WithTransactionResult(ctx, s.db, func(tx *gorm.DB) (int64, error) {
		var ids []string
		err := tx.Model(&CheckRunModel{}).
			Order("started_at DESC").
			Order("id DESC").
			Pluck("id", &ids).Error
		if err != nil {
			return 0, fmt.Errorf("select reports: %w", err)
		}
		if len(ids) <= keep {
			return 0, nil
		}
		ids = ids[keep:]
		if _, err := s.problems.DeleteBy(ctx, tx, repository.WithConditionIn("run_id", ids)); err != nil {
			return 0, err
		}
		return s.runs.DeleteBy(ctx, tx, repository.WithConditionIn("id", ids))
	})
}

func notFound(err error, what string) error {
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %s", check.ErrNotFound, what)
	}
	return err
}
