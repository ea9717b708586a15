package genai

import (
	"encoding/json"
	"strings"

	"github.com/adaptivelearn/levelbook/internal/apperr"
)

// DecodeJSON decodes a raw model response into v. Model backends routinely
// wrap JSON output in a markdown code fence; the fence is stripped before the
// decode is attempted. A failed decode returns a MalformedResponseError
// carrying the cleaned text.
//
// Every generation call must decode through this one routine. Per-call-site
// stripping drifts apart and breaks one operation at a time.
func DecodeJSON(raw string, v any) error {
	cleaned := stripFence(strings.TrimSpace(raw))

	if err := json.Unmarshal([]byte(cleaned), v); err != nil {
		return apperr.NewMalformedResponse(cleaned, err)
	}
	return nil
}

func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	// The opening fence may carry a language tag, e.g. ```json.
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		return strings.TrimSpace(s)
	}

	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
