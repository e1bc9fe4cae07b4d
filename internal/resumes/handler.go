package resumes

import (
	"errors"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"career-coach/internal/extract"
	"career-coach/internal/shared/server/respond"
	"career-coach/internal/shared/telemetry"
	"career-coach/internal/shared/util"
)

const (
	maxUploadBytes = 5 << 20
	formField      = "file"
)

var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".docx": {},
	".txt":  {},
	".md":   {},
}

// Handler turns uploaded resume files into plain text that can prefill a profile.
type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

// RegisterRoutes attaches the resume import route to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/resumes/extract", h.extractText)
}

type extractResponse struct {
	FileName  string `json:"file_name"`
	MimeType  string `json:"mime_type"`
	Text      string `json:"text"`
	CharCount int    `json:"char_count"`
}

func (h *Handler) extractText(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes+1024)
	fileHeader, err := c.FormFile(formField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "validation_error", "file exceeds 5MB", []respond.FieldIssue{{Field: formField, Issue: "max_size"}})
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "multipart field \"file\" is required", []respond.FieldIssue{{Field: formField, Issue: "required"}})
		return
	}
	if fileHeader.Size > maxUploadBytes {
		respond.Error(c, http.StatusRequestEntityTooLarge, "validation_error", "file exceeds 5MB", []respond.FieldIssue{{Field: formField, Issue: "max_size"}})
		return
	}
	fileName, err := util.SanitizeFileName(fileHeader.Filename)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid file name", []respond.FieldIssue{{Field: formField, Issue: "file_name"}})
		return
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if _, ok := allowedExtensions[ext]; !ok {
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_media_type", "only PDF, DOCX and text files are supported", []respond.FieldIssue{{Field: formField, Issue: "type"}})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read upload", nil)
		return
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "could not read upload", nil)
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")
	text, err := extract.TextFromBytes(c.Request.Context(), data, mimeType, fileName)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupportedType):
			respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_media_type", "only PDF, DOCX and text files are supported", nil)
		case errors.Is(err, extract.ErrNoText):
			respond.Error(c, http.StatusUnprocessableEntity, "no_text", "no text could be extracted from the file", nil)
		default:
			telemetry.Warn("resume.extract_failed", map[string]any{
				"file_name": fileName,
				"mime_type": mimeType,
				"error":     err.Error(),
			})
			respond.Error(c, http.StatusUnprocessableEntity, "extract_failed", "the file could not be parsed", nil)
		}
		return
	}

	respond.OK(c, extractResponse{
		FileName:  fileName,
		MimeType:  mimeType,
		Text:      text,
		CharCount: len([]rune(text)),
	})
}
