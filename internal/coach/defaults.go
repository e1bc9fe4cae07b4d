package coach

import (
	"fmt"
	"strings"
)

// DefaultAnalysis is substituted when an analysis completion cannot be parsed.
func DefaultAnalysis() CareerAnalysis {
	return CareerAnalysis{
		CareerLevel:           "analysis pending",
		StrengthAreas:         []string{"technical skills", "hands-on experience"},
		ImprovementAreas:      []string{"further analysis needed"},
		CareerPattern:         "Analysis in progress.",
		MarketCompetitiveness: 5,
		PersonalityTraits:     []string{"analysis pending"},
		GrowthTrajectory:      "Further analysis needed.",
	}
}

// DefaultQuestion pads short question sets and fills the default set.
func DefaultQuestion() InterviewQuestion {
	return InterviewQuestion{
		Question:                "Walk me through your most significant project.",
		Category:                "experience",
		DifficultyLevel:         "basic",
		SuggestedAnswerApproach: "Focus on concrete results and what you learned.",
	}
}

func DefaultQuestions() []InterviewQuestion {
	out := make([]InterviewQuestion, QuestionsPerSession)
	for i := range out {
		out[i] = DefaultQuestion()
	}
	return out
}

// DefaultRoadmap returns two placeholder phases whose weeks add up to the
// requested duration.
func DefaultRoadmap(durationMonths int, technicalSkills, careerLevel string) []LearningStep {
	total := TotalWeeks(durationMonths)
	first := total / 2
	if first < 1 {
		first = 1
	}
	second := total - first
	if second < 1 {
		second = 1
	}

	skills := strings.TrimSpace(technicalSkills)
	if skills == "" {
		skills = "your current stack"
	}
	level := strings.TrimSpace(careerLevel)
	if level == "" {
		level = "current"
	}

	return []LearningStep{
		{
			Phase:         "Phase 1: Strengthen current skills",
			DurationWeeks: first,
			Objectives: []string{
				"Deepen the existing technical stack",
				"Gain hands-on project experience",
				"Focus on code quality",
			},
			Resources: []string{
				"Online course platforms",
				"Official documentation and tutorials",
				"Well-known open source projects",
			},
			Milestones: []string{
				"Finish one personal project published on GitHub",
				"Write two technical blog posts",
				"Update portfolio and resume",
			},
			Projects: []string{
				fmt.Sprintf("Web application built with %s", skills),
				"Personal portfolio site",
				"Project built around an open source library",
			},
			PersonalAdvice: fmt.Sprintf("To grow from the %s level, balance study and practice: read the %s documentation on weekdays and build on weekends. Start the personal project in week two, add features step by step and document progress in the README.", level, skills),
		},
		{
			Phase:         "Phase 2: Broaden capabilities",
			DurationWeeks: second,
			Objectives: []string{
				"Learn an adjacent technology",
				"Work on a team project",
				"Improve communication skills",
			},
			Resources: []string{
				"Developer communities and meetups",
				"Online mentoring programs",
				"Technical conferences",
			},
			Milestones: []string{
				"Contribute to an open source or team project",
				"Give a technical talk",
				"Grow a professional network",
			},
			Projects: []string{
				"Team collaboration project",
				"Open source contribution",
				"Study group project",
			},
			PersonalAdvice: "Collaboration and networking are the focus of this phase. Pair new courses with practice, write up what you learn after each meetup, and start open source work with documentation fixes or small bugs.",
		},
	}
}
