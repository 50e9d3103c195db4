// Package normalizer recovers structured results from free-text model replies
// and synthesizes deterministic fallback data when recovery is impossible.
package normalizer

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"
)

// ErrMalformedResponse is returned when no usable payload can be recovered from a reply.
var ErrMalformedResponse = errors.New("malformed model response")

var (
	// fencedJSON matches the interior of the first ``` or ```json block.
	fencedJSON = regexp.MustCompile("```(?:json)?\\s*(\\{[\\s\\S]*?\\}|\\[[\\s\\S]*?\\])\\s*```")
	// bareJSON matches the first {...} or [...] span, up to the first closing bracket.
	bareJSON = regexp.MustCompile(`(\{[\s\S]*?\}|\[[\s\S]*?\])`)
)

// ExtractJSON locates a JSON payload in raw model output.
//
// The lookup order is fenced block, then bare span, extended with one step in
// front: a reply that is valid JSON as a whole is returned unchanged, which is
// what the JSON response MIME type produces and which the bare search would
// truncate. Otherwise the first fenced block is used, then the first bare
// {...} or [...] span. The bare search is non-greedy and stops at the first
// closing bracket, so nested payloads surrounded by prose are truncated and
// fail to parse.
func ExtractJSON(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	if json.Valid([]byte(trimmed)) && (trimmed[0] == '{' || trimmed[0] == '[') {
		return trimmed, true
	}
	if m := fencedJSON.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}
	if m := bareJSON.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}
	return "", false
}
