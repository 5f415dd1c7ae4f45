package pipeline

import "strings"

// StripCodeFence removes surrounding Markdown code-fence markup from raw
// model output. Generation services often wrap a stylesheet in ```css ... ```
// even when asked not to; the fence is transport noise, not content.
func StripCodeFence(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	lines := strings.Split(text, "\n")
	if len(lines) == 1 {
		// A lone fence line such as "```css" carries no content.
		return ""
	}
	lines = lines[1:]
	if strings.TrimSpace(lines[len(lines)-1]) == "```" {
		lines = lines[:len(lines)-1]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
