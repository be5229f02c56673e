package planner

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError is returned when a completion cannot be turned into a plan.
// Callers treat it as a signal to fall back, never as a user-facing error.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse plan response: %s", e.Reason)
}

// wirePlan is the shape requested from the provider. Field aliases cover
// the naming variants models actually produce.
type wirePlan struct {
	Phases []wirePhase `json:"phases"`
}

type wirePhase struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Milestones  []wireMilestone `json:"milestones"`
}

type wireMilestone struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Tasks       []wireTask `json:"tasks"`
}

type wireTask struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	EstimatedTime string `json:"estimatedTime"`
	EstimatedAlt  string `json:"estimated_time"` // alternative name
	Duration      string `json:"duration"`       // alternative name
}

func (t wireTask) estimate() string {
	if t.EstimatedTime != "" {
		return t.EstimatedTime
	}
	if t.EstimatedAlt != "" {
		return t.EstimatedAlt
	}
	return t.Duration
}

var quoteReplacer = strings.NewReplacer(
	"“", `"`, "”", `"`,
	"‘", "'", "’", "'",
)

// NormalizeCompletion repairs the common ways a completion wraps its JSON:
// smart quotes, fenced code blocks, and surrounding prose. The result is
// the outermost {...} span, or the empty string when none exists.
func NormalizeCompletion(raw string) string {
	s := quoteReplacer.Replace(raw)

	// Strip a fenced code block if the JSON is inside one.
	if idx := strings.Index(s, "```"); idx >= 0 {
		rest := s[idx+3:]
		// Drop an optional language tag on the fence line.
		if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
			rest = rest[nl+1:]
		}
		if end := strings.Index(rest, "```"); end >= 0 {
			s = rest[:end]
		} else {
			s = rest
		}
	}

	start := strings.IndexByte(s, '{')
	end := strings.LastIndexByte(s, '}')
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}

// parseWirePlan normalizes and decodes a raw completion, requiring at
// least one phase. A nested {"plan": {...}} wrapper is tolerated.
func parseWirePlan(raw string) (*wirePlan, error) {
	jsonStr := NormalizeCompletion(raw)
	if jsonStr == "" {
		return nil, &ParseError{Reason: "no JSON object found in completion"}
	}

	var wp wirePlan
	if err := json.Unmarshal([]byte(jsonStr), &wp); err != nil {
		return nil, &ParseError{Reason: err.Error()}
	}

	if len(wp.Phases) == 0 {
		var wrapped struct {
			Plan wirePlan `json:"plan"`
		}
		if err := json.Unmarshal([]byte(jsonStr), &wrapped); err == nil && len(wrapped.Plan.Phases) > 0 {
			wp = wrapped.Plan
		}
	}

	if len(wp.Phases) == 0 {
		return nil, &ParseError{Reason: "plan contains no phases"}
	}
	for i, ph := range wp.Phases {
		if len(ph.Milestones) == 0 {
			return nil, &ParseError{Reason: fmt.Sprintf("phase %d contains no milestones", i)}
		}
		for j, ms := range ph.Milestones {
			if len(ms.Tasks) == 0 {
				return nil, &ParseError{Reason: fmt.Sprintf("milestone %d.%d contains no tasks", i, j)}
			}
		}
	}
	return &wp, nil
}
