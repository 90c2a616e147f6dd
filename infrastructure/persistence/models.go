// Package persistence stores check reports with GORM.
package persistence

import (
	"time"

	"github.com/helixml/docnav/internal/database"
)

// CheckRunModel represents one check run in the database.
type CheckRunModel struct {
	ID           string         `gorm:"column:id;primaryKey;size:36"`
	Versions     []string       `gorm:"column:versions;type:text;serializer:json"`
	StartedAt    time.Time      `gorm:"column:started_at;index"`
	FinishedAt   time.Time      `gorm:"column:finished_at"`
	LinksChecked int            `gorm:"column:links_checked;default:0"`
	PagesIndexed int            `gorm:"column:pages_indexed;default:0"`
	OK           bool           `gorm:"column:ok;index"`
	Problems     []ProblemModel `gorm:"foreignKey:RunID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name.
func (CheckRunModel) TableName() string {
	return "check_runs"
}

// ProblemModel represents one problem found by a check run. Paths are JSON
// arrays so labels may contain any character, including the empty label.
type ProblemModel struct {
	ID       int64    `gorm:"primaryKey;autoIncrement"`
	RunID    string   `gorm:"column:run_id;index;size:36"`
	Position int      `gorm:"column:position"`
	Kind     string   `gorm:"column:kind;index;size:64"`
	Version  string   `gorm:"column:version;size:255"`
	Source   string   `gorm:"column:source;size:32"`
	Path     []string `gorm:"column:path;type:text;serializer:json"`
	Link     string   `gorm:"column:link;size:2048"`
	Message  string   `gorm:"column:message;type:text"`
}

// TableName returns the table name.
func (ProblemModel) TableName() string {
	return "check_problems"
}

// AutoMigrate creates or updates the report tables.
func AutoMigrate(db database.Database) error {
	return db.AutoMigrate(&CheckRunModel{}, &ProblemModel{})
}
