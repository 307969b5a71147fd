// Package extract recovers JSON payloads from language model output.
//
// Models wrap JSON in markdown fences, prepend prose, or append trailing
// commentary. Object tries progressively looser strategies until one of
// them yields a well-formed JSON object.
package extract

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/9mit/Youtube-Intelligence/internal/apperr"
)

var (
	fencedJSON = regexp.MustCompile("```json\\s*(\\{[\\s\\S]*?\\})\\s*```")
	fencedAny  = regexp.MustCompile("```\\s*(\\{[\\s\\S]*?\\})\\s*```")
)

// Object extracts a JSON object from raw model text. Strategies run in
// order: the whole text as-is, a ```json fence, an unlabeled fence, and
// finally the substring between the first "{" and the last "}". The
// first candidate that parses as a JSON object wins.
func Object(text string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, apperr.New(apperr.KindParse, "model returned an empty response")
	}

	if raw, ok := asObject(trimmed); ok {
		return raw, nil
	}

	for _, re := range []*regexp.Regexp{fencedJSON, fencedAny} {
		if m := re.FindStringSubmatch(trimmed); m != nil {
			if raw, ok := asObject(m[1]); ok {
				return raw, nil
			}
		}
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start != -1 && end > start {
		if raw, ok := asObject(trimmed[start : end+1]); ok {
			return raw, nil
		}
	}

	return nil, apperr.New(apperr.KindParse, "failed to parse model response as JSON")
}

// asObject reports whether s is a complete JSON object, rejecting other
// valid JSON values such as arrays, strings, and null.
func asObject(s string) (json.RawMessage, bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "{") {
		return nil, false
	}
	if !json.Valid([]byte(s)) {
		return nil, false
	}
	return json.RawMessage(s), true
}
