package legacy

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Export is a parsed dump of the legacy document store. Each collection may
// be written either as a list of documents or as an object keyed by
// document id.
type Export struct {
	Projects []Document
	Gallery  []Document
	Messages []Document
	// Settings is the global settings document, nil when the export has none.
	Settings Document
}

var collectionAliases = map[string][]string{
	"projects": {"projects"},
	"gallery":  {"gallery_items", "gallery", "galleryItems"},
	"messages": {"messages"},
	"settings": {"site_settings", "settings", "siteSettings"},
}

// ReadFile parses the export at path. JSON exports are read as YAML.
func ReadFile(path string) (*Export, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open export: %w", err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses an export from r.
func Read(r io.Reader) (*Export, error) {
	var raw map[string]any
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return &Export{}, nil
		}
		return nil, fmt.Errorf("failed to parse export: %w", err)
	}
	root := Document(raw)

	exp := &Export{
		Projects: collection(root, collectionAliases["projects"]),
		Gallery:  collection(root, collectionAliases["gallery"]),
		Messages: collection(root, collectionAliases["messages"]),
	}
	for _, name := range collectionAliases["settings"] {
		if global := root.Doc(name).Doc("global"); global != nil {
			exp.Settings = global
			break
		}
	}
	return exp, nil
}

func collection(root Document, names []string) []Document {
	for _, name := range names {
		v, ok := root[name]
		if !ok {
			continue
		}
		if list := root.Docs(name); list != nil {
			return list
		}
		keyed := asDocument(v)
		if keyed == nil {
			return nil
		}
		ids := make([]string, 0, len(keyed))
		for id := range keyed {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		out := make([]Document, 0, len(ids))
		for _, id := range ids {
			doc := keyed.Doc(id)
			if doc == nil {
				continue
			}
			if doc.ID() == "" {
				doc["id"] = id
			}
			out = append(out, doc)
		}
		return out
	}
	return nil
}
