package coach

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrMapping matches every *MappingError via errors.Is.
var ErrMapping = errors.New("mapping contract violation")

// MappingError reports a parsed value that does not satisfy the typed result.
// Parsed values come from the shape contract or a default, so this is a bug.
type MappingError struct {
	Shape Shape
	Field string
	Err   error
}

func (e *MappingError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("map %s: field %s: %v", e.Shape, e.Field, e.Err)
	}
	return fmt.Sprintf("map %s: %v", e.Shape, e.Err)
}

func (e *MappingError) Unwrap() error { return e.Err }

func (e *MappingError) Is(target error) bool { return target == ErrMapping }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var analysisKeys = []string{
	"career_level",
	"strength_areas",
	"improvement_areas",
	"career_pattern",
	"market_competitiveness",
	"personality_traits",
	"growth_trajectory",
}

var questionKeys = []string{"question", "category", "difficulty_level", "suggested_answer_approach"}

var stepKeys = []string{"phase", "duration_weeks", "objectives", "resources", "milestones"}

// MapAnalysis builds a CareerAnalysis. market_competitiveness outside 1-10 is rejected.
func MapAnalysis(p Parsed) (CareerAnalysis, error) {
	var out CareerAnalysis
	obj, ok := p.Value.(map[string]any)
	if !ok {
		return out, &MappingError{Shape: ShapeAnalysis, Err: fmt.Errorf("expected object, got %T", p.Value)}
	}
	if err := requireKeys(ShapeAnalysis, obj, analysisKeys); err != nil {
		return out, err
	}
	if err := remarshal(obj, &out); err != nil {
		return out, &MappingError{Shape: ShapeAnalysis, Err: err}
	}
	if err := check(ShapeAnalysis, out); err != nil {
		return CareerAnalysis{}, err
	}
	return out, nil
}

// MapQuestions builds exactly QuestionsPerSession questions, truncating or
// padding with DefaultQuestion.
func MapQuestions(p Parsed) ([]InterviewQuestion, error) {
	items, ok := p.Value.([]any)
	if !ok {
		return nil, &MappingError{Shape: ShapeQuestions, Err: fmt.Errorf("expected array, got %T", p.Value)}
	}
	if len(items) > QuestionsPerSession {
		items = items[:QuestionsPerSession]
	}

	out := make([]InterviewQuestion, 0, QuestionsPerSession)
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, &MappingError{Shape: ShapeQuestions, Field: fmt.Sprintf("[%d]", i), Err: fmt.Errorf("expected object, got %T", item)}
		}
		if err := requireKeys(ShapeQuestions, obj, questionKeys); err != nil {
			return nil, err
		}
		var q InterviewQuestion
		if err := remarshal(obj, &q); err != nil {
			return nil, &MappingError{Shape: ShapeQuestions, Field: fmt.Sprintf("[%d]", i), Err: err}
		}
		q.DifficultyLevel = NormalizeDifficulty(q.DifficultyLevel)
		if err := check(ShapeQuestions, q); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	for len(out) < QuestionsPerSession {
		out = append(out, DefaultQuestion())
	}
	return out, nil
}

// MapRoadmap builds the roadmap steps as produced; there is no count constraint.
func MapRoadmap(p Parsed) ([]LearningStep, error) {
	items, ok := p.Value.([]any)
	if !ok {
		return nil, &MappingError{Shape: ShapeRoadmap, Err: fmt.Errorf("expected array, got %T", p.Value)}
	}
	if len(items) == 0 {
		return nil, &MappingError{Shape: ShapeRoadmap, Err: errors.New("roadmap has no steps")}
	}

	out := make([]LearningStep, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, &MappingError{Shape: ShapeRoadmap, Field: fmt.Sprintf("[%d]", i), Err: fmt.Errorf("expected object, got %T", item)}
		}
		if err := requireKeys(ShapeRoadmap, obj, stepKeys); err != nil {
			return nil, err
		}
		fields := make(map[string]any, len(obj))
		for k, v := range obj {
			fields[k] = v
		}
		if resources, ok := obj["resources"].([]any); ok {
			flat := make([]any, 0, len(resources))
			for _, r := range resources {
				flat = append(flat, flattenResource(r))
			}
			fields["resources"] = flat
		}
		var step LearningStep
		if err := remarshal(fields, &step); err != nil {
			return nil, &MappingError{Shape: ShapeRoadmap, Field: fmt.Sprintf("[%d]", i), Err: err}
		}
		if err := check(ShapeRoadmap, step); err != nil {
			return nil, err
		}
		out = append(out, step)
	}
	return out, nil
}

// NormalizeDifficulty maps free-form difficulty labels onto basic,
// intermediate or advanced. Unrecognised labels become intermediate.
func NormalizeDifficulty(level string) string {
	l := strings.ToLower(strings.TrimSpace(level))
	switch {
	case strings.Contains(l, "adv"), strings.Contains(l, "hard"), strings.Contains(l, "expert"), strings.Contains(l, "고급"):
		return "advanced"
	case strings.Contains(l, "inter"), strings.Contains(l, "medium"), strings.Contains(l, "mid"), strings.Contains(l, "중급"):
		return "intermediate"
	case strings.Contains(l, "basic"), strings.Contains(l, "easy"), strings.Contains(l, "begin"), strings.Contains(l, "기본"), strings.Contains(l, "초급"):
		return "basic"
	default:
		return "intermediate"
	}
}

var resourceKeyOrder = []string{"title", "name", "type", "description", "url", "link"}

// flattenResource turns {"title":"Go Tour","url":"..."} into "Go Tour - ...".
func flattenResource(r any) any {
	obj, ok := r.(map[string]any)
	if !ok {
		return r
	}
	seen := make(map[string]bool, len(obj))
	parts := make([]string, 0, len(obj))
	add := func(key string) {
		if seen[key] {
			return
		}
		seen[key] = true
		if s := strings.TrimSpace(fmt.Sprint(obj[key])); s != "" {
			parts = append(parts, s)
		}
	}
	for _, key := range resourceKeyOrder {
		if _, ok := obj[key]; ok {
			add(key)
		}
	}
	rest := make([]string, 0, len(obj))
	for key := range obj {
		if !seen[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		add(key)
	}
	return strings.Join(parts, " - ")
}

func requireKeys(shape Shape, obj map[string]any, keys []string) error {
	for _, key := range keys {
		v, ok := obj[key]
		if !ok || v == nil {
			return &MappingError{Shape: shape, Field: key, Err: errors.New("missing required key")}
		}
	}
	return nil
}

func remarshal(in any, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func check(shape Shape, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &MappingError{Shape: shape, Field: fe.Field(), Err: fmt.Errorf("failed %q rule (value %v)", fe.Tag(), fe.Value())}
	}
	return &MappingError{Shape: shape, Err: err}
}

// DecodeAnalysis reconstructs a persisted analysis_result blob through the
// same contract that produced it.
func DecodeAnalysis(blob []byte) (CareerAnalysis, error) {
	var generic any
	if err := json.Unmarshal(blob, &generic); err != nil {
		return CareerAnalysis{}, &MappingError{Shape: ShapeAnalysis, Err: err}
	}
	return MapAnalysis(Parsed{Shape: ShapeAnalysis, Value: generic, Stage: StageDirect})
}
