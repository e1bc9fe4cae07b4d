package profiles

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-coach/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the profiles service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches profile routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/profiles", h.createProfile)
	rg.GET("/profiles/:id", h.getProfile)
	rg.GET("/profiles/:id/insights", h.getInsights)
	rg.POST("/profiles/:id/feedback", h.addFeedback)
}

type createProfileRequest struct {
	CareerSummary   string `json:"career_summary" binding:"required,notblank,min=10,max=500"`
	JobRole         string `json:"job_role" binding:"required,notblank,min=5,max=100"`
	TechnicalSkills string `json:"technical_skills" binding:"required,min=5,max=300,skills"`
	ExperienceYears *int   `json:"experience_years" binding:"required,min=0,max=50"`
}

type feedbackRequest struct {
	FeedbackType string `json:"feedback_type" binding:"required,oneof=interview_quality learning_path_relevance overall_satisfaction"`
	Rating       int    `json:"rating" binding:"required,min=1,max=5"`
	Comment      string `json:"comment" binding:"max=2000"`
}

func (h *Handler) createProfile(c *gin.Context) {
	var req createProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, err)
		return
	}

	profile, err := h.Svc.Create(c.Request.Context(), CreateInput{
		CareerSummary:   req.CareerSummary,
		JobRole:         req.JobRole,
		TechnicalSkills: req.TechnicalSkills,
		ExperienceYears: *req.ExperienceYears,
	})
	if err != nil {
		respond.GenerationError(c, err, "failed to create profile")
		return
	}
	respond.SetProfileID(c, profile.ID)
	respond.Created(c, profile)
}

func (h *Handler) getProfile(c *gin.Context) {
	profileID := c.Param("id")
	respond.SetProfileID(c, profileID)
	profile, err := h.Svc.Get(c.Request.Context(), profileID)
	if err != nil {
		h.lookupError(c, err, "failed to load profile")
		return
	}
	respond.OK(c, profile)
}

func (h *Handler) getInsights(c *gin.Context) {
	profileID := c.Param("id")
	respond.SetProfileID(c, profileID)
	insights, err := h.Svc.Insights(c.Request.Context(), profileID)
	if err != nil {
		h.lookupError(c, err, "failed to load insights")
		return
	}
	respond.OK(c, insights)
}

func (h *Handler) addFeedback(c *gin.Context) {
	profileID := c.Param("id")
	respond.SetProfileID(c, profileID)
	var req feedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, err)
		return
	}
	feedback, err := h.Svc.AddFeedback(c.Request.Context(), profileID, FeedbackInput{
		FeedbackType: req.FeedbackType,
		Rating:       req.Rating,
		Comment:      req.Comment,
	})
	if err != nil {
		h.lookupError(c, err, "failed to store feedback")
		return
	}
	respond.Created(c, feedback)
}

func (h *Handler) lookupError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "profile not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", message, nil)
	}
}
