package interviews

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-coach/internal/profiles"
	"career-coach/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the interviews service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches interview session routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/interview-sessions", h.createSession)
	rg.GET("/interview-sessions/:id", h.getSession)
}

type createSessionRequest struct {
	ProfileID           string `json:"profile_id" binding:"required,uuid"`
	TargetCompanyType   string `json:"target_company_type" binding:"omitempty,oneof=startup midsize large foreign"`
	TargetPositionLevel string `json:"target_position_level" binding:"omitempty,oneof=junior mid senior lead"`
}

func (h *Handler) createSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, err)
		return
	}
	respond.SetProfileID(c, req.ProfileID)

	session, err := h.Svc.Create(c.Request.Context(), CreateInput{
		ProfileID:           req.ProfileID,
		TargetCompanyType:   req.TargetCompanyType,
		TargetPositionLevel: req.TargetPositionLevel,
	})
	if err != nil {
		switch {
		case errors.Is(err, profiles.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		case errors.Is(err, profiles.ErrAnalysisRequired):
			respond.Error(c, http.StatusConflict, "analysis_required", "profile analysis is required before generating interview questions", nil)
		default:
			respond.GenerationError(c, err, "failed to create interview session")
		}
		return
	}
	respond.Created(c, session)
}

func (h *Handler) getSession(c *gin.Context) {
	session, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "interview session not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load interview session", nil)
		return
	}
	respond.SetProfileID(c, session.ProfileID)
	respond.OK(c, session)
}
