package store

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/uhudbuilders/sitecms/internal/models"
)

// UpsertResult counts rows written and rows left alone because their key
// already existed.
type UpsertResult struct {
	Inserted int
	Skipped  int
}

// Add folds another result into r.
func (r *UpsertResult) Add(o UpsertResult) {
	r.Inserted += o.Inserted
	r.Skipped += o.Skipped
}

var keepExisting = clause.OnConflict{
	Columns:   []clause.Column{{Name: "id"}},
	DoNothing: true,
}

func insertIgnore(tx *gorm.DB, value any, n int) (UpsertResult, error) {
	res := tx.Clauses(keepExisting).Create(value)
	if res.Error != nil {
		return UpsertResult{}, res.Error
	}
	inserted := int(res.RowsAffected)
	return UpsertResult{Inserted: inserted, Skipped: n - inserted}, nil
}

// UpsertProject inserts a project and its units keyed by their existing ids.
// Rows whose id is already present are left untouched, so running the same
// import twice writes nothing the second time. Unit ids must be deterministic
// for that to hold.
func (s *Store) UpsertProject(ctx context.Context, p models.Project) (project UpsertResult, units UpsertResult, err error) {
	normalizeProject(&p)
	for i := range p.Units {
		p.Units[i].ProjectID = p.ID
		p.Units[i].Position = i
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		project, err = insertIgnore(tx.Omit(clause.Associations), &p, 1)
		if err != nil {
			return fmt.Errorf("failed to upsert project %s: %w", p.ID, err)
		}
		if len(p.Units) == 0 {
			return nil
		}
		units, err = insertIgnore(tx, &p.Units, len(p.Units))
		if err != nil {
			return fmt.Errorf("failed to upsert units of project %s: %w", p.ID, err)
		}
		return nil
	})
	return project, units, err
}

// UpsertGalleryItem inserts a gallery item unless its id exists.
func (s *Store) UpsertGalleryItem(ctx context.Context, item models.GalleryItem) (UpsertResult, error) {
	res, err := insertIgnore(s.db.WithContext(ctx), &item, 1)
	if err != nil {
		return res, fmt.Errorf("failed to upsert gallery item %s: %w", item.ID, err)
	}
	return res, nil
}

// UpsertMessage inserts a contact message unless its id exists.
func (s *Store) UpsertMessage(ctx context.Context, msg models.ContactMessage) (UpsertResult, error) {
	res, err := insertIgnore(s.db.WithContext(ctx), &msg, 1)
	if err != nil {
		return res, fmt.Errorf("failed to upsert message %s: %w", msg.ID, err)
	}
	return res, nil
}
