package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/uhudbuilders/sitecms/internal/models"
)

// Direction is the way a project moves in the public listing.
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// ProjectInput is a create or update request. On update, nil fields keep
// their stored value. Units, when non-nil, replaces the whole unit list.
type ProjectInput struct {
	Title             *string               `json:"title"`
	Location          *string               `json:"location"`
	Price             *string               `json:"price"`
	Description       *string               `json:"description"`
	Status            *models.ProjectStatus `json:"status"`
	ImageURL          *string               `json:"imageUrl"`
	LogoURL           *string               `json:"logoUrl"`
	BuildingAmenities *models.StringList    `json:"buildingAmenities"`
	Order             *int64                `json:"order"`
	Units             *[]UnitInput          `json:"units"`
}

// UnitInput is one unit in a project write. ID is only honoured when it
// already belongs to the project being updated.
type UnitInput struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Size           string            `json:"size"`
	Bedrooms       int               `json:"bedrooms"`
	Bathrooms      int               `json:"bathrooms"`
	Balconies      int               `json:"balconies"`
	Features       models.StringList `json:"features"`
	FloorPlanImage *string           `json:"floorPlanImage"`
}

func (in ProjectInput) apply(p *models.Project) {
	if in.Title != nil {
		p.Title = strings.TrimSpace(*in.Title)
	}
	if in.Location != nil {
		p.Location = strings.TrimSpace(*in.Location)
	}
	if in.Price != nil {
		p.Price = optional(*in.Price)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Status != nil {
		p.Status = models.ProjectStatus(strings.TrimSpace(string(*in.Status)))
	}
	if in.ImageURL != nil {
		p.ImageURL = strings.TrimSpace(*in.ImageURL)
	}
	if in.LogoURL != nil {
		p.LogoURL = optional(*in.LogoURL)
	}
	if in.BuildingAmenities != nil {
		p.BuildingAmenities = append(models.StringList{}, (*in.BuildingAmenities)...)
	}
	if p.BuildingAmenities == nil {
		p.BuildingAmenities = models.StringList{}
	}
}

// buildUnits turns the submitted list into rows owned by projectID. owned
// holds the unit ids the project already has.
func (s *Store) buildUnits(projectID string, in []UnitInput, owned map[string]bool) []models.Unit {
	units := make([]models.Unit, 0, len(in))
	seen := make(map[string]bool, len(in))
	for i, u := range in {
		id := u.ID
		if id == "" || !owned[id] || seen[id] {
			id = s.newID()
		}
		seen[id] = true
		features := append(models.StringList{}, u.Features...)
		units = append(units, models.Unit{
			ID:             id,
			ProjectID:      projectID,
			Name:           strings.TrimSpace(u.Name),
			Size:           strings.TrimSpace(u.Size),
			Bedrooms:       u.Bedrooms,
			Bathrooms:      u.Bathrooms,
			Balconies:      u.Balconies,
			Features:       features,
			FloorPlanImage: optional(derefString(u.FloorPlanImage)),
			Position:       i,
		})
	}
	return units
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func orderedUnits(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC").Order("id ASC")
}

func normalizeProject(p *models.Project) {
	if p.Units == nil {
		p.Units = []models.Unit{}
	}
	if p.BuildingAmenities == nil {
		p.BuildingAmenities = models.StringList{}
	}
	for i := range p.Units {
		if p.Units[i].Features == nil {
			p.Units[i].Features = models.StringList{}
		}
	}
}

// ListProjects returns every project with its units, lowest order first.
// Equal orders fall back to id so the listing is stable.
func (s *Store) ListProjects(ctx context.Context) ([]models.Project, error) {
	return listProjects(s.db.WithContext(ctx))
}

func listProjects(db *gorm.DB) ([]models.Project, error) {
	projects := make([]models.Project, 0)
	err := db.Preload("Units", orderedUnits).
		Order("sort_order ASC").
		Order("id ASC").
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	if projects == nil {
		projects = []models.Project{}
	}
	for i := range projects {
		normalizeProject(&projects[i])
	}
	return projects, nil
}

// GetProject returns a single project with its units.
func (s *Store) GetProject(ctx context.Context, id string) (*models.Project, error) {
	return getProject(s.db.WithContext(ctx), id)
}

func getProject(db *gorm.DB, id string) (*models.Project, error) {
	var p models.Project
	err := db.Preload("Units", orderedUnits).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project %s: %w", id, err)
	}
	normalizeProject(&p)
	return &p, nil
}

// ListUnits returns the units owned by a project in display order.
func (s *Store) ListUnits(ctx context.Context, projectID string) ([]models.Unit, error) {
	units := make([]models.Unit, 0)
	err := orderedUnits(s.db.WithContext(ctx)).Where("project_id = ?", projectID).Find(&units).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list units: %w", err)
	}
	return units, nil
}

func nextOrder(tx *gorm.DB) (int64, error) {
	var max int64
	row := tx.Model(&models.Project{}).Select("COALESCE(MAX(sort_order), 0)").Row()
	if err := row.Scan(&max); err != nil {
		return 0, fmt.Errorf("failed to read project order: %w", err)
	}
	return max + 1, nil
}

// CreateProject stores a new project and its units. The project is placed
// after every existing one.
func (s *Store) CreateProject(ctx context.Context, in ProjectInput) (*models.Project, error) {
	p := models.Project{ID: s.newID()}
	in.apply(&p)

	var units []models.Unit
	if in.Units != nil {
		units = s.buildUnits(p.ID, *in.Units, nil)
	}
	p.Units = units
	if err := validateStruct(&p); err != nil {
		return nil, err
	}

	var created *models.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		order, err := nextOrder(tx)
		if err != nil {
			return err
		}
		p.Order = order

		if err := tx.Omit(clause.Associations).Create(&p).Error; err != nil {
			return fmt.Errorf("failed to create project: %w", err)
		}
		if len(units) > 0 {
			if err := tx.Create(&units).Error; err != nil {
				return fmt.Errorf("failed to create units: %w", err)
			}
		}
		created, err = getProject(tx, p.ID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateProject applies in to an existing project. When in.Units is set the
// stored units are deleted and the submitted list inserted in their place.
func (s *Store) UpdateProject(ctx context.Context, id string, in ProjectInput) (*models.Project, error) {
	var updated *models.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p models.Project
		err := tx.Where("id = ?", id).First(&p).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get project %s: %w", id, err)
		}

		in.apply(&p)
		if in.Order != nil {
			p.Order = *in.Order
		}

		var units []models.Unit
		if in.Units != nil {
			var ids []string
			if err := tx.Model(&models.Unit{}).Where("project_id = ?", id).Pluck("id", &ids).Error; err != nil {
				return fmt.Errorf("failed to read units: %w", err)
			}
			owned := make(map[string]bool, len(ids))
			for _, uid := range ids {
				owned[uid] = true
			}
			units = s.buildUnits(id, *in.Units, owned)
		}
		p.Units = units
		if err := validateStruct(&p); err != nil {
			return err
		}

		p.UpdatedAt = s.now()
		if err := tx.Omit(clause.Associations).Save(&p).Error; err != nil {
			return fmt.Errorf("failed to update project: %w", err)
		}

		if in.Units != nil {
			if err := tx.Where("project_id = ?", id).Delete(&models.Unit{}).Error; err != nil {
				return fmt.Errorf("failed to delete units: %w", err)
			}
			if len(units) > 0 {
				if err := tx.Create(&units).Error; err != nil {
					return fmt.Errorf("failed to create units: %w", err)
				}
			}
		}

		updated, err = getProject(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteProject removes a project and every unit it owns.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&models.Unit{}).Error; err != nil {
			return fmt.Errorf("failed to delete units: %w", err)
		}
		res := tx.Where("id = ?", id).Delete(&models.Project{})
		if res.Error != nil {
			return fmt.Errorf("failed to delete project: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// ReorderProject swaps the order of a project with its neighbour in the given
// direction. Moving the first project up or the last one down changes
// nothing. When the two orders are equal the listing is renumbered first so
// the swap is visible. The full listing is returned.
func (s *Store) ReorderProject(ctx context.Context, id string, dir Direction) ([]models.Project, error) {
	if dir != DirectionUp && dir != DirectionDown {
		return nil, invalid("direction must be one of up, down")
	}

	var listing []models.Project
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []models.Project
		err := tx.Select("id", "sort_order").Order("sort_order ASC").Order("id ASC").Find(&rows).Error
		if err != nil {
			return fmt.Errorf("failed to read project order: %w", err)
		}

		idx := -1
		for i := range rows {
			if rows[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return ErrNotFound
		}

		neighbour := idx + 1
		if dir == DirectionUp {
			neighbour = idx - 1
		}
		if neighbour >= 0 && neighbour < len(rows) {
			if rows[idx].Order == rows[neighbour].Order {
				for i := range rows {
					if rows[i].Order == int64(i) {
						continue
					}
					rows[i].Order = int64(i)
					if err := setOrder(tx, rows[i].ID, rows[i].Order); err != nil {
						return err
					}
				}
			}
			a, b := rows[idx], rows[neighbour]
			if err := setOrder(tx, a.ID, b.Order); err != nil {
				return err
			}
			if err := setOrder(tx, b.ID, a.Order); err != nil {
				return err
			}
		}

		listing, err = listProjects(tx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return listing, nil
}

func setOrder(tx *gorm.DB, id string, order int64) error {
	err := tx.Model(&models.Project{}).Where("id = ?", id).UpdateColumn("sort_order", order).Error
	if err != nil {
		return fmt.Errorf("failed to reorder project %s: %w", id, err)
	}
	return nil
}
