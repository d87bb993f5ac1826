// Package upload writes files posted by the admin panel to local disk and
// returns the public URL they are served from.
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FieldName is the multipart field that carries the file.
const FieldName = "file"

// DefaultMaxBytes is the upload size limit when none is configured.
const DefaultMaxBytes int64 = 10 << 20

// DefaultAllowedTypes are the image types accepted when none are configured.
var DefaultAllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp", "image/svg+xml"}

var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrTooLarge        = errors.New("file too large")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Config describes where uploads go and what is accepted.
type Config struct {
	Dir      string
	MaxBytes int64
	// AllowedTypes lists accepted media types; empty accepts anything.
	AllowedTypes []string
	// URLPrefix is the public path the directory is served under.
	URLPrefix string
}

// Result describes a stored upload.
type Result struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}

// Relay stores uploaded files.
type Relay struct {
	dir      string
	maxBytes int64
	allowed  map[string]bool
	prefix   string
	now      func() time.Time
	suffix   func() string
}

func NewRelay(cfg Config) (*Relay, error) {
	if cfg.Dir == "" {
		return nil, errors.New("upload directory is required")
	}
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	if cfg.MaxBytes <= 0 {
		cfg.MaxBytes = DefaultMaxBytes
	}
	if cfg.URLPrefix == "" {
		cfg.URLPrefix = "/uploads"
	}
	allowed := make(map[string]bool, len(cfg.AllowedTypes))
	for _, t := range cfg.AllowedTypes {
		if t = strings.ToLower(strings.TrimSpace(t)); t != "" {
			allowed[t] = true
		}
	}
	return &Relay{
		dir:      cfg.Dir,
		maxBytes: cfg.MaxBytes,
		allowed:  allowed,
		prefix:   strings.TrimRight(cfg.URLPrefix, "/"),
		now:      time.Now,
		suffix:   func() string { return fmt.Sprintf("%09d", rand.Intn(1_000_000_000)) },
	}, nil
}

// MaxBytes is the largest accepted file.
func (rl *Relay) MaxBytes() int64 {
	return rl.maxBytes
}

// Save reads the file field of a multipart request and writes it to disk
// under a generated name.
func (rl *Relay) Save(w http.ResponseWriter, r *http.Request) (*Result, error) {
	// Leave room for the multipart envelope around the file.
	r.Body = http.MaxBytesReader(w, r.Body, rl.maxBytes+1<<20)
	mr, err := r.MultipartReader()
	if err != nil {
		return nil, ErrNoFile
	}
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return nil, ErrNoFile
		}
		if err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				return nil, ErrTooLarge
			}
			return nil, ErrNoFile
		}
		if part.FormName() != FieldName || part.FileName() == "" {
			_ = part.Close()
			continue
		}
		defer part.Close()
		return rl.store(part)
	}
}

func (rl *Relay) store(part *multipart.Part) (*Result, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(part, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, tooLargeOr(err)
	}
	head = head[:n]
	if n == 0 {
		return nil, ErrNoFile
	}

	contentType := detectType(head, part.Header.Get("Content-Type"))
	if len(rl.allowed) > 0 && !rl.allowed[contentType] {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, contentType)
	}

	name := fmt.Sprintf("file-%d-%s%s", rl.now().UnixMilli(), rl.suffix(), cleanExt(part.FileName()))
	path := filepath.Join(rl.dir, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create upload: %w", err)
	}

	size, err := io.Copy(f, io.LimitReader(io.MultiReader(bytes.NewReader(head), part), rl.maxBytes+1))
	closeErr := f.Close()
	if err == nil {
		err = closeErr
	}
	if err == nil && size > rl.maxBytes {
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, tooLargeOr(err)
	}

	return &Result{
		URL:         rl.prefix + "/" + name,
		Filename:    name,
		Size:        size,
		ContentType: contentType,
	}, nil
}

func tooLargeOr(err error) error {
	var maxErr *http.MaxBytesError
	if errors.Is(err, ErrTooLarge) || errors.As(err, &maxErr) {
		return ErrTooLarge
	}
	return fmt.Errorf("failed to write upload: %w", err)
}

// detectType sniffs the content. SVG sniffs as XML or text, so the declared
// type is trusted for it when the content looks like an SVG document.
func detectType(head []byte, declared string) string {
	sniffed, _, _ := mime.ParseMediaType(http.DetectContentType(head))
	declared, _, _ = mime.ParseMediaType(declared)
	if declared == "image/svg+xml" && (sniffed == "text/xml" || sniffed == "text/plain") &&
		bytes.Contains(bytes.ToLower(head), []byte("<svg")) {
		return declared
	}
	return sniffed
}

func cleanExt(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if len(ext) < 2 || len(ext) > 10 {
		return ""
	}
	for _, c := range ext[1:] {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') {
			return ""
		}
	}
	return ext
}
