package coach

import "strings"

const fence = "```"

// Normalize isolates the JSON payload in a model completion. It never fails;
// when nothing JSON-like is found the trimmed text is returned and parsing
// falls back later. Normalize(Normalize(x)) == Normalize(x).
func Normalize(raw string, shape Shape) string {
	text := raw
	for {
		next := normalizeOnce(text, shape)
		if next == text {
			return text
		}
		text = next
	}
}

// normalizeOnce only ever removes characters, so Normalize reaches a fixed point.
func normalizeOnce(text string, shape Shape) string {
	text = strings.TrimSpace(text)

	if strings.HasPrefix(text, fence) {
		text = stripLanguageTag(text[len(fence):])
	}
	text = stripClosingFence(text)
	text = strings.TrimSpace(text)

	if shape.isArray() {
		start := strings.Index(text, "[")
		end := strings.LastIndex(text, "]")
		if start >= 0 && end > start {
			text = text[start : end+1]
		}
	}
	return text
}

// stripClosingFence cuts at the last fence when nothing JSON-closing follows
// it. Fences inside string values always have a closing bracket after them.
func stripClosingFence(text string) string {
	idx := strings.LastIndex(text, fence)
	if idx < 0 || strings.ContainsAny(text[idx+len(fence):], "}]") {
		return text
	}
	return text[:idx]
}

// stripLanguageTag drops a "json" style tag on the opening fence line.
func stripLanguageTag(text string) string {
	idx := strings.IndexByte(text, '\n')
	if idx < 0 {
		return text
	}
	tag := strings.TrimSpace(text[:idx])
	for _, r := range tag {
		if !isTagRune(r) {
			return text
		}
	}
	return text[idx+1:]
}

func isTagRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '-' || r == '_' || r == '+' || r == '.':
		return true
	}
	return false
}
