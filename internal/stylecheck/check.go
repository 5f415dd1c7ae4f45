package stylecheck

import (
	"fmt"
	"strings"
)

// Check scans generated stylesheet text for structural anomalies and returns
// one finding per anomaly, in scan order. An empty slice means the text is
// structurally clean. Findings are advisory; callers decide whether to warn
// or reject.
//
// The scan keeps an integer brace depth. A depth that goes negative records
// an unmatched-closing-brace finding and resets to zero so the rest of the
// scan stays meaningful. A positive residual depth after the scan records a
// missing-braces finding with the exact count. Emptiness of the trimmed input
// is checked independently of the brace scan.
func Check(stylesheet string) []string {
	var findings []string

	depth := 0
	for offset, ch := range stylesheet {
		switch ch {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				findings = append(findings, fmt.Sprintf("unmatched closing brace at offset %d", offset))
				depth = 0
			}
		}
	}
	if depth > 0 {
		plural := ""
		if depth > 1 {
			plural = "s"
		}
		findings = append(findings, fmt.Sprintf("missing %d closing brace%s", depth, plural))
	}

	if strings.TrimSpace(stylesheet) == "" {
		findings = append(findings, "empty output")
	}

	return findings
}
