package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// SettingsID is the fixed primary key of the site settings singleton.
const SettingsID = 1

// SettingsDocument is an arbitrary JSON object of site-wide configuration.
// The server stores it as-is; its shape belongs to the client.
type SettingsDocument map[string]any

// Value encodes the document as JSON text.
func (d SettingsDocument) Value() (driver.Value, error) {
	if d == nil {
		return "{}", nil
	}
	b, err := json.Marshal(map[string]any(d))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan never fails, see ParseSettingsDocument.
func (d *SettingsDocument) Scan(src any) error {
	*d = ParseSettingsDocument(src)
	return nil
}

// ParseSettingsDocument decodes a persisted settings blob. Anything that is not
// a JSON object, including a string holding one, degrades to an empty document
// after at most one level of unwrapping.
func ParseSettingsDocument(raw any) SettingsDocument {
	var data []byte
	switch v := raw.(type) {
	case nil:
		return SettingsDocument{}
	case map[string]any:
		return SettingsDocument(v)
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return SettingsDocument{}
	}
	return parseSettingsJSON(data, true)
}

func parseSettingsJSON(data []byte, unwrap bool) SettingsDocument {
	var decoded any
	if err := json.Unmarshal(data, &decoded); err != nil {
		return SettingsDocument{}
	}
	switch v := decoded.(type) {
	case map[string]any:
		return SettingsDocument(v)
	case string:
		if unwrap {
			return parseSettingsJSON([]byte(v), false)
		}
	}
	return SettingsDocument{}
}

// SiteSettings is the singleton row holding the settings document.
type SiteSettings struct {
	ID        uint             `gorm:"primaryKey;autoIncrement:false"`
	Settings  SettingsDocument `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (SiteSettings) TableName() string {
	return "site_settings"
}
