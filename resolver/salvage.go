package resolver

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

var fencePattern = regexp.MustCompile("```[a-zA-Z]*")

// sanitize drops invalid UTF-8 sequences and surrogate code points. Models
// occasionally emit broken escapes that poison the JSON decoder.
func sanitize(s string) string {
	if utf8.ValidString(s) && !strings.ContainsFunc(s, isSurrogate) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if r == utf8.RuneError || isSurrogate(r) {
			return -1
		}
		return r
	}, s)
}

func isSurrogate(r rune) bool { return unicode.Is(unicode.Cs, r) }

// stripFences removes Markdown code-fence delimiters, with or without a
// language tag, wherever they appear.
func stripFences(s string) string {
	return fencePattern.ReplaceAllString(s, "")
}

// firstJSONObject scans for the first balanced {...} block, honoring string
// literals and escapes so braces inside values do not confuse the scan.
func firstJSONObject(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
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
				return s[start : i+1], true
			}
		}
	}
	return "", false
}

// flattenThinking rewrites a map-valued "thinking" field into "key: value"
// lines. Models sometimes return their rationale as a nested object instead
// of the declared string; keys are sorted so the result is deterministic.
func flattenThinking(obj map[string]any) {
	nested, ok := obj["thinking"].(map[string]any)
	if !ok {
		return
	}
	keys := make([]string, 0, len(nested))
	for k := range nested {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, fmt.Sprintf("%s: %s", k, renderThinkingValue(nested[k])))
	}
	obj["thinking"] = strings.Join(lines, "\n")
}

// renderThinkingValue keeps scalars plain and renders nested maps and slices
// as JSON rather than Go literal syntax.
func renderThinkingValue(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case map[string]any, []any:
		if data, err := json.Marshal(v); err == nil {
			return string(data)
		}
	}
	return fmt.Sprintf("%v", v)
}

// Salvage extracts a JSON object from free-form model output. It tolerates
// code fences, explanatory prose around the JSON, and a rationale field
// returned as a nested mapping. Returns the normalized JSON bytes or a
// ParseError identifying where extraction gave up.
func Salvage(raw string) (json.RawMessage, error) {
	text := strings.TrimSpace(stripFences(sanitize(raw)))

	var obj map[string]any
	if err := json.Unmarshal([]byte(text), &obj); err != nil {
		block, ok := firstJSONObject(text)
		if !ok {
			return nil, &ParseError{Stage: "scan", Err: fmt.Errorf("no balanced JSON object found")}
		}
		if err := json.Unmarshal([]byte(block), &obj); err != nil {
			return nil, &ParseError{Stage: "scan", Err: err}
		}
	}

	flattenThinking(obj)

	out, err := json.Marshal(obj)
	if err != nil {
		return nil, &ParseError{Stage: "strict", Err: err}
	}
	return out, nil
}
