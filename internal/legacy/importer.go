package legacy

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/uhudbuilders/sitecms/internal/models"
	"github.com/uhudbuilders/sitecms/internal/store"
)

// Defaults applied to fields the legacy store left empty.
const (
	DefaultTitle        = "Untitled"
	DefaultStatus       = models.StatusOngoing
	DefaultMessageName  = "Unknown"
	DefaultMessageEmail = "no-email"
	DefaultUnitName     = "Unit"
)

const maxIDLength = 36

// idNamespace roots every id derived during import, so the same export
// always maps to the same rows.
var idNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://uhudbuilders.com/sitecms/legacy"))

// Target is where imported rows are written. *store.Store satisfies it.
type Target interface {
	UpsertProject(ctx context.Context, p models.Project) (store.UpsertResult, store.UpsertResult, error)
	UpsertGalleryItem(ctx context.Context, item models.GalleryItem) (store.UpsertResult, error)
	UpsertMessage(ctx context.Context, msg models.ContactMessage) (store.UpsertResult, error)
	PutSettings(ctx context.Context, doc models.SettingsDocument) (models.SettingsDocument, error)
}

// Tally counts the documents seen in one collection and what became of them.
type Tally struct {
	Found int
	store.UpsertResult
}

// Report summarises an import run.
type Report struct {
	DryRun   bool
	Projects Tally
	Units    Tally
	Gallery  Tally
	Messages Tally
	Settings bool
}

// Importer copies an Export into a Target. Rows whose id already exists are
// skipped, so an import can be re-run safely.
type Importer struct {
	target Target
	dryRun bool
	log    zerolog.Logger
	now    func() time.Time
}

// Option configures an Importer.
type Option func(*Importer)

// WithDryRun converts every document but writes nothing.
func WithDryRun(dryRun bool) Option {
	return func(im *Importer) { im.dryRun = dryRun }
}

// WithLogger sets the logger used for per-document progress.
func WithLogger(log zerolog.Logger) Option {
	return func(im *Importer) { im.log = log }
}

// NewImporter returns an Importer writing to target.
func NewImporter(target Target, opts ...Option) *Importer {
	im := &Importer{
		target: target,
		log:    zerolog.Nop(),
		now:    func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Run imports every collection of exp. It stops at the first write error;
// rows already written stay written.
func (im *Importer) Run(ctx context.Context, exp *Export) (*Report, error) {
	report := &Report{DryRun: im.dryRun}

	for i, doc := range exp.Projects {
		p := im.project(i, doc)
		report.Projects.Found++
		report.Units.Found += len(p.Units)
		if im.dryRun {
			continue
		}
		projectRes, unitRes, err := im.target.UpsertProject(ctx, p)
		if err != nil {
			return report, err
		}
		report.Projects.Add(projectRes)
		report.Units.Add(unitRes)
		im.log.Debug().Str("id", p.ID).Str("title", p.Title).Int("inserted", projectRes.Inserted).Msg("project imported")
	}

	for _, doc := range exp.Gallery {
		item := im.galleryItem(doc)
		report.Gallery.Found++
		if im.dryRun {
			continue
		}
		res, err := im.target.UpsertGalleryItem(ctx, item)
		if err != nil {
			return report, err
		}
		report.Gallery.Add(res)
	}

	for _, doc := range exp.Messages {
		msg := im.message(doc)
		report.Messages.Found++
		if im.dryRun {
			continue
		}
		res, err := im.target.UpsertMessage(ctx, msg)
		if err != nil {
			return report, err
		}
		report.Messages.Add(res)
	}

	if exp.Settings != nil {
		settings := settingsDocument(exp.Settings)
		if !im.dryRun {
			if _, err := im.target.PutSettings(ctx, settings); err != nil {
				return report, fmt.Errorf("failed to import settings: %w", err)
			}
		}
		report.Settings = true
	}

	im.log.Info().
		Bool("dry_run", report.DryRun).
		Int("projects", report.Projects.Inserted).
		Int("units", report.Units.Inserted).
		Int("gallery", report.Gallery.Inserted).
		Int("messages", report.Messages.Inserted).
		Bool("settings", report.Settings).
		Msg("legacy import finished")
	return report, nil
}

// importID keeps a legacy id that fits the schema and derives a stable UUID
// from anything else. fallback names the document when it has no id at all.
func importID(kind, legacyID, fallback string) string {
	if legacyID != "" && len(legacyID) <= maxIDLength {
		return legacyID
	}
	name := legacyID
	if name == "" {
		name = kind + "/" + fallback
	}
	return uuid.NewSHA1(idNamespace, []byte(name)).String()
}

// UnitID is the id given to the index-th unit of an imported project.
func UnitID(projectID string, index int) string {
	return uuid.NewSHA1(idNamespace, []byte(projectID+"/unit/"+strconv.Itoa(index))).String()
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// project converts the index-th project of the export. Projects without an id
// are told apart by their position as well as their title.
func (im *Importer) project(index int, doc Document) models.Project {
	title := doc.StringOr("title", DefaultTitle)
	status := models.ProjectStatus(doc.String("status"))
	if !status.Valid() {
		status = DefaultStatus
	}

	p := models.Project{
		ID:                importID("project", doc.ID(), strconv.Itoa(index)+"/"+title),
		Title:             title,
		Location:          doc.String("location"),
		Price:             optionalString(doc.String("price")),
		Description:       doc.String("description"),
		Status:            status,
		ImageURL:          doc.String("imageUrl"),
		LogoURL:           optionalString(doc.String("logoUrl")),
		BuildingAmenities: doc.Strings("buildingAmenities"),
		Order:             doc.Int("order"),
	}
	if ts, ok := doc.Time("createdAt"); ok {
		p.CreatedAt = ts
	}
	if ts, ok := doc.Time("updatedAt"); ok {
		p.UpdatedAt = ts
	}

	units := doc.Docs("units")
	p.Units = make([]models.Unit, 0, len(units))
	for i, u := range units {
		p.Units = append(p.Units, models.Unit{
			ID:             UnitID(p.ID, i),
			ProjectID:      p.ID,
			Name:           u.StringOr("name", DefaultUnitName),
			Size:           u.String("size"),
			Bedrooms:       u.Count("bedrooms"),
			Bathrooms:      u.Count("bathrooms"),
			Balconies:      u.Count("balconies"),
			Features:       u.Strings("features"),
			FloorPlanImage: optionalString(u.String("floorPlanImage")),
			Position:       i,
		})
	}
	return p
}

func (im *Importer) galleryItem(doc Document) models.GalleryItem {
	url := doc.String("url")
	item := models.GalleryItem{
		ID:       importID("gallery", doc.ID(), url),
		URL:      url,
		Caption:  doc.String("caption"),
		Category: doc.StringOr("category", models.DefaultGalleryCategory),
	}
	if ts, ok := doc.Time("createdAt"); ok {
		item.CreatedAt = ts
	} else {
		item.CreatedAt = im.now()
	}
	return item
}

func (im *Importer) message(doc Document) models.ContactMessage {
	date, hasDate := doc.Time("date")
	msg := models.ContactMessage{
		Name:    doc.StringOr("name", DefaultMessageName),
		Email:   doc.StringOr("email", DefaultMessageEmail),
		Phone:   doc.String("phone"),
		Message: doc.String("message"),
		Date:    date,
		Read:    doc.Bool("read"),
	}
	fallback := msg.Email + "/" + msg.Message
	if hasDate {
		fallback += "/" + date.Format(time.RFC3339Nano)
	} else {
		msg.Date = im.now()
	}
	msg.ID = importID("message", doc.ID(), fallback)
	return msg
}

// settingsDocument unwraps a global document that nests its content under
// a "settings" key.
func settingsDocument(global Document) models.SettingsDocument {
	if nested := global.Doc("settings"); nested != nil {
		return models.SettingsDocument(nested)
	}
	out := make(models.SettingsDocument, len(global))
	for k, v := range global {
		if k == "id" || k == "_id" {
			continue
		}
		out[k] = v
	}
	return out
}
