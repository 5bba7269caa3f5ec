package enrichment

import (
	"encoding/json"
	"strings"
)

// StripJSONFence removes a surrounding markdown code fence from model
// output. The model is asked for raw JSON but replies are tolerated in
// any of these forms:
//
//	{"a":1}              (no fence)
//	```json\n{"a":1}\n``` (fenced with language tag)
//	```\n{"a":1}\n```     (bare fence)
//	```json\n{"a":1}      (opening fence only, truncated reply)
func StripJSONFence(raw string) string {
	text := strings.TrimSpace(raw)

	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
	} else if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	return strings.TrimSpace(text)
}

// DecodeJSON strips any fence and unmarshals the remainder into v. No
// schema validation happens beyond parseability; callers must tolerate
// missing optional keys.
func DecodeJSON(raw string, v any) error {
	return json.Unmarshal([]byte(StripJSONFence(raw)), v)
}
