package coach

import (
	_ "embed"
	"strconv"
	"strings"
)

var (
	//go:embed prompts/analysis.txt
	analysisTemplate string
	//go:embed prompts/questions.txt
	questionsTemplate string
	//go:embed prompts/roadmap.txt
	roadmapTemplate string
)

var companyStyles = map[string]string{
	"startup": "fast growth, varied roles and strong problem solving",
	"midsize": "a balance of stability and growth with structured processes",
	"large":   "deep specialisation, systematic work and collaboration",
	"foreign": "a global mindset, communication and diversity",
}

var goalDescriptions = map[string]string{
	"skill_enhancement": "deepen and broaden current technical skills",
	"career_change":     "move into a new field",
	"promotion":         "get promoted and grow in the current role",
	"interview_prep":    "prepare for interviews and land a job",
	"freelance_prep":    "prepare for freelancing or starting a company",
}

// CompanyStyle returns the interview style for a company type.
func CompanyStyle(companyType string) string {
	if style, ok := companyStyles[companyType]; ok {
		return style
	}
	return "a general company"
}

// GoalDescription returns the roadmap goal text; unknown goals are used verbatim.
func GoalDescription(goal string) string {
	if desc, ok := goalDescriptions[goal]; ok {
		return desc
	}
	return goal
}

// TotalWeeks converts a roadmap duration to weeks.
func TotalWeeks(durationMonths int) int {
	if durationMonths < 1 {
		durationMonths = 1
	}
	return durationMonths * 4
}

// PhaseWeeks splits a roadmap into the suggested three phases.
func PhaseWeeks(durationMonths int) (int, int, int) {
	total := TotalWeeks(durationMonths)
	first := total / 3
	second := total / 2
	return first, second, total - first - second
}

func BuildAnalysisPrompt(req AnalysisRequest) string {
	replacer := strings.NewReplacer(
		"{{CAREER_SUMMARY}}", req.CareerSummary,
		"{{JOB_ROLE}}", req.JobRole,
		"{{TECHNICAL_SKILLS}}", req.TechnicalSkills,
		"{{EXPERIENCE_YEARS}}", strconv.Itoa(req.ExperienceYears),
	)
	return replacer.Replace(analysisTemplate)
}

func BuildQuestionsPrompt(req QuestionsRequest) string {
	replacer := strings.NewReplacer(
		"{{COMPANY_STYLE}}", CompanyStyle(req.CompanyType),
		"{{COMPANY_TYPE}}", req.CompanyType,
		"{{POSITION_LEVEL}}", req.PositionLevel,
		"{{CAREER_LEVEL}}", req.Analysis.CareerLevel,
		"{{STRENGTH_AREAS}}", strings.Join(req.Analysis.StrengthAreas, ", "),
		"{{IMPROVEMENT_AREAS}}", strings.Join(req.Analysis.ImprovementAreas, ", "),
		"{{PERSONALITY_TRAITS}}", strings.Join(req.Analysis.PersonalityTraits, ", "),
		"{{CAREER_SUMMARY}}", req.CareerSummary,
		"{{TECHNICAL_SKILLS}}", req.TechnicalSkills,
	)
	return replacer.Replace(questionsTemplate)
}

func BuildRoadmapPrompt(req RoadmapRequest) string {
	first, second, third := PhaseWeeks(req.DurationMonths)
	replacer := strings.NewReplacer(
		"{{CAREER_LEVEL}}", req.Analysis.CareerLevel,
		"{{STRENGTH_AREAS}}", strings.Join(req.Analysis.StrengthAreas, ", "),
		"{{IMPROVEMENT_AREAS}}", strings.Join(req.Analysis.ImprovementAreas, ", "),
		"{{GROWTH_TRAJECTORY}}", req.Analysis.GrowthTrajectory,
		"{{CAREER_SUMMARY}}", req.CareerSummary,
		"{{TECHNICAL_SKILLS}}", req.TechnicalSkills,
		"{{GOAL_DESCRIPTION}}", GoalDescription(req.TargetGoal),
		"{{DURATION_MONTHS}}", strconv.Itoa(req.DurationMonths),
		"{{TOTAL_WEEKS}}", strconv.Itoa(TotalWeeks(req.DurationMonths)),
		"{{PHASE1_WEEKS}}", strconv.Itoa(first),
		"{{PHASE2_WEEKS}}", strconv.Itoa(second),
		"{{PHASE3_WEEKS}}", strconv.Itoa(third),
	)
	return replacer.Replace(roadmapTemplate)
}
