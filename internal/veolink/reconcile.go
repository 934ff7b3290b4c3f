package veolink

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

// ErrEmptyReply signals that the backend returned no usable text at all.
var ErrEmptyReply = fmt.Errorf("veolink: empty reply from model")

// MalformedReplyError reports a reply that carried no extractable JSON
// payload, or a payload that failed to parse. The reply is rejected whole;
// partial acceptance is never attempted.
type MalformedReplyError struct {
	Err error
}

func (e *MalformedReplyError) Error() string {
	if e == nil || e.Err == nil {
		return "malformed reply from model"
	}
	return "malformed reply from model: " + e.Err.Error()
}

func (e *MalformedReplyError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// SchemaViolationError reports a reply that parsed as JSON but violates the
// required strategy structure. Path names the first offending field.
type SchemaViolationError struct {
	Path   string
	Reason string
}

func (e *SchemaViolationError) Error() string {
	if e == nil {
		return "reply violates strategy schema"
	}
	return fmt.Sprintf("reply violates strategy schema at %s: %s", e.Path, e.Reason)
}

// ReconcileStrategies extracts, parses, and validates a full-generation
// reply. The backend routinely wraps its JSON in prose or code fences, so
// the candidate payload is the span between the first '{' and the last '}'.
// The schema sent with the request is a hint to the backend, never a
// parser: every reply is validated here explicitly. Content is returned
// verbatim — segments are not reordered and index values are not
// reconciled against their positions.
func ReconcileStrategies(raw string) (*PromptResponse, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, ErrEmptyReply
	}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < start {
		return nil, &MalformedReplyError{Err: fmt.Errorf("no JSON object span in reply")}
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return nil, &MalformedReplyError{Err: err}
	}

	root, ok := parsed.(map[string]any)
	if !ok {
		return nil, &MalformedReplyError{Err: fmt.Errorf("top-level JSON value is not an object")}
	}

	rawStrategies, ok := root["strategies"].([]any)
	if !ok {
		return nil, &SchemaViolationError{Path: "strategies", Reason: "missing or not an array"}
	}
	if len(rawStrategies) == 0 {
		return nil, &SchemaViolationError{Path: "strategies", Reason: "empty array"}
	}

	out := &PromptResponse{Strategies: make([]GeneratedStrategy, 0, len(rawStrategies))}
	for i, rs := range rawStrategies {
		obj, ok := rs.(map[string]any)
		if !ok {
			return nil, &SchemaViolationError{Path: fmt.Sprintf("strategies[%d]", i), Reason: "not an object"}
		}
		strategy, err := validateStrategy(obj, fmt.Sprintf("strategies[%d]", i))
		if err != nil {
			return nil, err
		}
		out.Strategies = append(out.Strategies, strategy)
	}

	return out, nil
}

func validateStrategy(obj map[string]any, path string) (GeneratedStrategy, error) {
	title, ok := obj["title"].(string)
	if !ok || strings.TrimSpace(title) == "" {
		return GeneratedStrategy{}, &SchemaViolationError{Path: path + ".title", Reason: "missing, empty, or not a string"}
	}
	rawSegments, ok := obj["segments"].([]any)
	if !ok || len(rawSegments) == 0 {
		return GeneratedStrategy{}, &SchemaViolationError{Path: path + ".segments", Reason: "missing or empty"}
	}

	strategy := GeneratedStrategy{
		Title:          title,
		MarketingAngle: optionalString(obj, "marketing_angle"),
		TotalDuration:  optionalString(obj, "total_duration"),
		TikTokCaption:  optionalString(obj, "tiktok_caption"),
		TikTokHashtags: optionalStrings(obj, "tiktok_hashtags"),
		Segments:       make([]PromptSegment, 0, len(rawSegments)),
	}

	for j, rs := range rawSegments {
		segObj, ok := rs.(map[string]any)
		if !ok {
			return GeneratedStrategy{}, &SchemaViolationError{Path: fmt.Sprintf("%s.segments[%d]", path, j), Reason: "not an object"}
		}
		segment, err := validateSegment(segObj, fmt.Sprintf("%s.segments[%d]", path, j))
		if err != nil {
			return GeneratedStrategy{}, err
		}
		strategy.Segments = append(strategy.Segments, segment)
	}

	return strategy, nil
}

func validateSegment(obj map[string]any, path string) (PromptSegment, error) {
	idx, ok := integerField(obj, "index")
	if !ok {
		return PromptSegment{}, &SchemaViolationError{Path: path + ".index", Reason: "missing or not an integer"}
	}
	fullPrompt, ok := obj["full_prompt"].(string)
	if !ok || strings.TrimSpace(fullPrompt) == "" {
		return PromptSegment{}, &SchemaViolationError{Path: path + ".full_prompt", Reason: "missing, empty, or not a string"}
	}
	return PromptSegment{
		Index:           idx,
		DurationGuide:   optionalString(obj, "duration_guide"),
		FullPrompt:      fullPrompt,
		DialogueSnippet: optionalString(obj, "dialogue_snippet"),
	}, nil
}

// optionalString fills absent optional fields with "" rather than failing.
func optionalString(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

// optionalStrings fills absent optional arrays with an empty slice, never nil.
func optionalStrings(obj map[string]any, key string) []string {
	raw, _ := obj[key].([]any)
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// integerField accepts JSON numbers with an integral value. encoding/json
// decodes all numbers as float64.
func integerField(obj map[string]any, key string) (int, bool) {
	f, ok := obj[key].(float64)
	if !ok {
		return 0, false
	}
	if f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// ReconcileText normalizes an unstructured reply. An empty or blank reply
// yields the fallback; it never fails, because its call sites are advisory.
func ReconcileText(raw, fallback string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
