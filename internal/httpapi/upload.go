package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/uhudbuilders/sitecms/internal/httpapi/middleware"
	"github.com/uhudbuilders/sitecms/internal/upload"
)

type uploadResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

func (a *API) Upload(w http.ResponseWriter, r *http.Request) {
	res, err := a.uploads.Save(w, r)
	switch {
	case err == nil:
		middleware.RecordUpload("stored")
		a.log.Info().Str("filename", res.Filename).Int64("size", res.Size).Str("type", res.ContentType).Msg("file uploaded")
		writeJSON(w, http.StatusOK, uploadResponse{Success: true, URL: res.URL, Filename: res.Filename})
	case errors.Is(err, upload.ErrNoFile):
		middleware.RecordUpload("no_file")
		writeErr(w, http.StatusBadRequest, ErrCodeNoFile, "No file uploaded")
	case errors.Is(err, upload.ErrTooLarge):
		middleware.RecordUpload("too_large")
		writeErr(w, http.StatusRequestEntityTooLarge, ErrCodeFileTooLarge,
			fmt.Sprintf("File exceeds the %d byte limit", a.uploads.MaxBytes()))
	case errors.Is(err, upload.ErrUnsupportedType):
		middleware.RecordUpload("unsupported_type")
		writeErr(w, http.StatusUnsupportedMediaType, ErrCodeUnsupportedType, err.Error())
	default:
		middleware.RecordUpload("error")
		a.log.Error().Err(err).Msg("upload failed")
		writeErr(w, http.StatusInternalServerError, ErrCodeInternal, "Upload failed")
	}
}
