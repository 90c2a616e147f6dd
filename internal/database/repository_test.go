package database

import (
	"context"
	"errors"
	"testing"

	"github.com/helixml/docnav/domain/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type noteModel struct {
	ID    int64  `gorm:"primaryKey"`
	Name  string `gorm:"not null"`
	Tag   string
	Lines []lineModel `gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE"`
}

func (noteModel) TableName() string { return "notes" }

type lineModel struct {
	ID       int64 `gorm:"primaryKey"`
	NoteID   int64 `gorm:"index"`
	Position int
	Text     string
}

func (lineModel) TableName() string { return "note_lines" }

type note struct {
	name  string
	tag   string
	lines []string
}

type noteMapper struct{}

func (noteMapper) ToDomain(e noteModel) note {
	lines := make([]string, len(e.Lines))
	for i, l := range e.Lines {
		lines[i] = l.Text
	}
	return note{name: e.Name, tag: e.Tag, lines: lines}
}

func (noteMapper) ToModel(d note) noteModel {
	lines := make([]lineModel, len(d.lines))
	// Insert in reverse so ordering must come from the preload, not rowid.
	for i := range d.lines {
		j := len(d.lines) - 1 - i
		lines[i] = lineModel{Position: j, Text: d.lines[j]}
	}
	return noteModel{Name: d.name, Tag: d.tag, Lines: lines}
}

func newNoteRepo(t *testing.T) (Database, Repository[note, noteModel]) {
	t.Helper()
	db := openTestDB(t)
	require.NoError(t, db.AutoMigrate(&noteModel{}, &lineModel{}))
	return db, NewRepository[note, noteModel](db, noteMapper{}, "note")
}

func TestRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	_, repo := newNoteRepo(t)

	require.NoError(t, repo.Create(ctx, nil, note{name: "a", tag: "x", lines: []string{"one", "two", "three"}}))
	require.NoError(t, repo.Create(ctx, nil, note{name: "b", tag: "y"}))
	require.NoError(t, repo.Create(ctx, nil, note{name: "c", tag: "x"}))

	found, err := repo.Find(ctx,
		repository.WithCondition("tag", "x"),
		repository.WithOrderDesc("id"),
		repository.WithPreload("Lines", "position"),
	)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "c", found[0].name)
	assert.Equal(t, "a", found[1].name)
	assert.Equal(t, []string{"one", "two", "three"}, found[1].lines)

	limited, err := repo.Find(ctx, repository.WithOrderAsc("id"), repository.WithLimit(1))
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, "a", limited[0].name)
}

func TestRepository_FindOneNotFound(t *testing.T) {
	ctx := context.Background()
	_, repo := newNoteRepo(t)

	_, err := repo.FindOne(ctx, repository.WithCondition("name", "missing"))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestRepository_CountAndDelete(t *testing.T) {
	ctx := context.Background()
	db, repo := newNoteRepo(t)

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Create(ctx, nil, note{name: name}))
	}

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	var deleted int64
	err = WithTransaction(ctx, db, func(tx *gorm.DB) error {
		var err error
		deleted, err = repo.DeleteBy(ctx, tx, repository.WithConditionIn("name", []string{"a", "b"}))
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}
