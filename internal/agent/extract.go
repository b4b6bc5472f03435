package agent

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNoJSON   = errors.New("no JSON object in decomposer output")
	ErrReported = errors.New("decomposer reported failure")
)

// ExtractJSON returns the first balanced {...} span in out. Braces inside
// JSON strings are ignored. Unbalanced openings in leading diagnostic text
// are skipped.
func ExtractJSON(out []byte) ([]byte, error) {
	for start := 0; start < len(out); start++ {
		if out[start] != '{' {
			continue
		}
		if end, ok := matchBrace(out, start); ok {
			return out[start : end+1], nil
		}
	}
	return nil, ErrNoJSON
}

func matchBrace(out []byte, start int) (int, bool) {
	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(out); i++ {
		c := out[i]
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
			depth--
			if depth == 0 {
				return i, true
			}
		}
	}
	return 0, false
}

// decodePlan parses decomposer output into a Plan. A parsed result with
// success=false is a failure.
func decodePlan(out []byte) (*Plan, error) {
	span, err := ExtractJSON(out)
	if err != nil {
		return nil, err
	}

	var plan Plan
	if err := json.Unmarshal(span, &plan); err != nil {
		return nil, fmt.Errorf("invalid decomposer JSON: %w", err)
	}
	if !plan.Success {
		if plan.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrReported, plan.Error)
		}
		return nil, ErrReported
	}

	return &plan, nil
}
