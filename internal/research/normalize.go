package research

import (
	"encoding/json"
	"strings"
)

// Normalize turns a model answer into a list of items. A JSON array yields
// one item per element (strings as-is, other values JSON-encoded); any other
// answer yields its non-empty lines. Items are trimmed and empty items dropped.
func Normalize(text string) []string {
	body := stripFence(text)

	var list []json.RawMessage
	if strings.HasPrefix(body, "[") && json.Unmarshal([]byte(body), &list) == nil {
		out := make([]string, 0, len(list))
		for _, raw := range list {
			if item := itemString(raw); item != "" {
				out = append(out, item)
			}
		}
		return out
	}

	out := []string{}
	for _, line := range strings.Split(body, "\n") {
		if s := strings.TrimSpace(line); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func itemString(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	switch v := strings.TrimSpace(string(raw)); v {
	case "null", "false", "0", "[]", "{}":
		return ""
	default:
		return v
	}
}

// stripFence removes a surrounding markdown code fence such as ```json ... ```.
func stripFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	if i := strings.Index(s, "\n"); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
