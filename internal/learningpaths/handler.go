package learningpaths

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-coach/internal/profiles"
	"career-coach/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the learning paths service.
type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches learning path routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/learning-paths", h.createPath)
	rg.GET("/learning-paths/:id", h.getPath)
}

type createPathRequest struct {
	ProfileID               string `json:"profile_id" binding:"required,uuid"`
	TargetGoal              string `json:"target_goal" binding:"omitempty,oneof=skill_enhancement career_change promotion interview_prep freelance_prep"`
	PreferredDurationMonths int    `json:"preferred_duration_months" binding:"omitempty,min=1,max=24"`
}

func (h *Handler) createPath(c *gin.Context) {
	var req createPathRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, err)
		return
	}
	respond.SetProfileID(c, req.ProfileID)

	path, err := h.Svc.Create(c.Request.Context(), CreateInput{
		ProfileID:      req.ProfileID,
		TargetGoal:     req.TargetGoal,
		DurationMonths: req.PreferredDurationMonths,
	})
	if err != nil {
		switch {
		case errors.Is(err, profiles.ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
		case errors.Is(err, profiles.ErrAnalysisRequired):
			respond.Error(c, http.StatusConflict, "analysis_required", "profile analysis is required before generating a learning path", nil)
		default:
			respond.GenerationError(c, err, "failed to create learning path")
		}
		return
	}
	respond.Created(c, path)
}

func (h *Handler) getPath(c *gin.Context) {
	path, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "learning path not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load learning path", nil)
		return
	}
	respond.SetProfileID(c, path.ProfileID)
	respond.OK(c, path)
}
