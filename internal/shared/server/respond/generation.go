package respond

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-coach/internal/llm"
)

// GenerationError reports a failed pipeline run. Gateway failures become 502;
// mapping violations and storage errors become 500.
func GenerationError(c *gin.Context, err error, message string) {
	if errors.Is(err, llm.ErrGenerationFailure) {
		Error(c, http.StatusBadGateway, "generation_failed", "the language model could not produce a response", []FieldIssue{
			{Field: "llm", Issue: string(llm.KindOf(err))},
		})
		return
	}
	Error(c, http.StatusInternalServerError, "internal_error", message, nil)
}
