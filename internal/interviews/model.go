package interviews

import (
	"time"

	"career-coach/internal/coach"
)

// Company types accepted for a session.
const (
	CompanyStartup = "startup"
	CompanyMidsize = "midsize"
	CompanyLarge   = "large"
	CompanyForeign = "foreign"
)

// Position levels accepted for a session.
const (
	LevelJunior = "junior"
	LevelMid    = "mid"
	LevelSenior = "senior"
	LevelLead   = "lead"
)

// Session is a generated set of interview questions for one profile.
type Session struct {
	ID                  string                    `json:"id"`
	ProfileID           string                    `json:"profile_id"`
	TargetCompanyType   string                    `json:"target_company_type"`
	TargetPositionLevel string                    `json:"target_position_level"`
	Questions           []coach.InterviewQuestion `json:"questions"`
	GenerationMetadata  coach.Metadata            `json:"generation_metadata"`
	CreatedAt           time.Time                 `json:"created_at"`
}
