// Package parse extracts structured rows from tab-delimited LLM output.
// The parser is best-effort: models re-emit headers, wrap answers in code
// fences, and pad with blank lines, so anything that does not look like a
// data line is dropped rather than reported.
package parse

import "strings"

// Row is one parsed line of model output.
type Row struct {
	Text        string
	Label       string
	Explanation string
}

// Table parses a raw response block into rows. A line survives when, after
// fence stripping and trimming, it is non-empty, does not start with the
// literal header token "text", and splits on tab into at least 3 fields.
func Table(raw string) []Row {
	cleaned := stripFences(raw)

	var rows []Row
	for _, line := range strings.Split(strings.TrimSpace(cleaned), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "text") {
			// Re-emitted header.
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 3 {
			continue
		}
		rows = append(rows, Row{
			Text:        strings.TrimSpace(fields[0]),
			Label:       strings.TrimSpace(fields[1]),
			Explanation: strings.TrimSpace(fields[2]),
		})
	}
	return rows
}

// stripFences removes an optional leading and trailing markdown code fence.
// The leading fence may carry a language tag (```tsv).
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = s[idx+1:]
		} else {
			return ""
		}
	}
	s = strings.TrimSpace(s)
	if strings.HasSuffix(s, "```") {
		s = strings.TrimSuffix(s, "```")
	}
	return strings.TrimSpace(s)
}
