package coach

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	"career-coach/internal/shared/telemetry"
)

// Stage records which recovery attempt produced a Parsed value.
type Stage string

const (
	StageDirect   Stage = "direct"
	StageRepaired Stage = "repaired"
	StageDefault  Stage = "default"
)

// Parsed is the untyped result of the parse stage: a decoded JSON value that
// satisfies the shape contract, or the shape's default.
type Parsed struct {
	Shape Shape
	Value any
	Stage Stage
}

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	schemasOnce sync.Once
	schemas     map[Shape]*gojsonschema.Schema
	schemasErr  error
)

func shapeSchema(shape Shape) (*gojsonschema.Schema, error) {
	schemasOnce.Do(func() {
		schemas = make(map[Shape]*gojsonschema.Schema, 3)
		for _, s := range []Shape{ShapeAnalysis, ShapeQuestions, ShapeRoadmap} {
			raw, err := schemaFS.ReadFile("schemas/" + string(s) + ".json")
			if err != nil {
				schemasErr = fmt.Errorf("read %s schema: %w", s, err)
				return
			}
			compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
			if err != nil {
				schemasErr = fmt.Errorf("compile %s schema: %w", s, err)
				return
			}
			schemas[s] = compiled
		}
	})
	if schemasErr != nil {
		return nil, schemasErr
	}
	schema, ok := schemas[shape]
	if !ok {
		return nil, fmt.Errorf("unknown shape %q", shape)
	}
	return schema, nil
}

// Recover decodes a normalized payload. Attempts, in order: direct decode,
// brace-balancing repair (object shapes only), then fallback. It never fails.
func Recover(payload string, shape Shape, fallback any) Parsed {
	value, err := decodeCandidate(payload, shape)
	if err == nil {
		return Parsed{Shape: shape, Value: value, Stage: StageDirect}
	}
	logAttempt(shape, StageDirect, payload, err)

	if !shape.isArray() {
		repaired, ok := repairBraces(payload)
		if ok {
			value, err = decodeCandidate(repaired, shape)
			if err == nil {
				return Parsed{Shape: shape, Value: value, Stage: StageRepaired}
			}
			logAttempt(shape, StageRepaired, repaired, err)
		}
	}

	generic, err := toGeneric(fallback)
	if err != nil {
		telemetry.Error("coach.default_encode_failed", map[string]any{
			"shape": string(shape),
			"error": err.Error(),
		})
	}
	return Parsed{Shape: shape, Value: generic, Stage: StageDefault}
}

var errWrongKind = errors.New("decoded JSON has the wrong kind for shape")

func decodeCandidate(payload string, shape Shape) (any, error) {
	var value any
	if err := json.Unmarshal([]byte(payload), &value); err != nil {
		return nil, err
	}

	if shape.isArray() {
		value = unwrapEnvelope(value)
		if _, ok := value.([]any); !ok {
			return nil, errWrongKind
		}
	} else if _, ok := value.(map[string]any); !ok {
		return nil, errWrongKind
	}

	if err := checkShape(value, shape); err != nil {
		return nil, err
	}
	return value, nil
}

// unwrapEnvelope accepts {"questions":[...]} style wrappers around arrays.
func unwrapEnvelope(value any) any {
	obj, ok := value.(map[string]any)
	if !ok || len(obj) != 1 {
		return value
	}
	for _, inner := range obj {
		if arr, ok := inner.([]any); ok {
			return arr
		}
	}
	return value
}

// ShapeError lists the contract violations of a decoded value.
type ShapeError struct {
	Shape  Shape
	Errors []string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("%s shape: %s", e.Shape, strings.Join(e.Errors, "; "))
}

func checkShape(value any, shape Shape) error {
	schema, err := shapeSchema(shape)
	if err != nil {
		return err
	}
	result, err := schema.Validate(gojsonschema.NewGoLoader(value))
	if err != nil {
		return err
	}
	if result.Valid() {
		return nil
	}
	shapeErr := &ShapeError{Shape: shape}
	for _, desc := range result.Errors() {
		shapeErr.Errors = append(shapeErr.Errors, desc.String())
	}
	return shapeErr
}

// repairBraces takes the text from the first '{' and appends one '}' for every
// brace left open. Braces inside JSON strings are ignored.
func repairBraces(payload string) (string, bool) {
	start := strings.Index(payload, "{")
	if start < 0 {
		return "", false
	}
	candidate := strings.TrimSpace(payload[start:])

	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(candidate); i++ {
		c := candidate[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			if depth > 0 {
				depth--
			}
		}
	}
	if inString {
		candidate += `"`
	}
	return candidate + strings.Repeat("}", depth), true
}

func toGeneric(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func logAttempt(shape Shape, stage Stage, content string, err error) {
	telemetry.Warn("coach.parse_attempt_failed", map[string]any{
		"shape":   string(shape),
		"attempt": string(stage),
		"error":   telemetry.Truncate(err.Error(), 300),
		"content": telemetry.Truncate(content, 500),
	})
}
