package analysis

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/bobmcallan/marketlens/internal/models"
)

// placeholderNarrative substitutes for an empty markdown remainder after
// JSON extraction.
const placeholderNarrative = "The analysis completed but produced no narrative content."

var (
	fencedBlockPattern   = regexp.MustCompile("(?s)```(?:json)?[ \\t]*\\n?(.*?)```")
	trailingCommaPattern = regexp.MustCompile(`,(\s*[}\]])`)
	verdictPattern       = regexp.MustCompile(`\[\[\[\s*(.*?)\s*\]\]\]`)
	embeddedMessage      = regexp.MustCompile(`"message"\s*:\s*"([^"]*)"`)
)

// extraction is the result of locating a JSON candidate in raw response
// text. Found/not-found is explicit — no exceptions drive control flow.
type extraction struct {
	candidate string // the JSON candidate text
	remainder string // raw text with the candidate removed
	found     bool
}

// extractJSONCandidate locates the structured payload in raw model output.
// Stage 1: the first fenced code block (optionally tagged json) — its inner
// text is the candidate and the whole block, delimiters included, is
// removed from the text. Stage 2 fallback: the span from the first '{' to
// the last '}' when both exist in order.
func extractJSONCandidate(raw string) extraction {
	if loc := fencedBlockPattern.FindStringSubmatchIndex(raw); loc != nil {
		candidate := raw[loc[2]:loc[3]]
		remainder := raw[:loc[0]] + raw[loc[1]:]
		return extraction{candidate: candidate, remainder: remainder, found: true}
	}

	first := strings.Index(raw, "{")
	last := strings.LastIndex(raw, "}")
	if first >= 0 && last > first {
		candidate := raw[first : last+1]
		remainder := raw[:first] + raw[last+1:]
		return extraction{candidate: candidate, remainder: remainder, found: true}
	}

	return extraction{remainder: raw}
}

// stripTrailingCommas removes commas that immediately precede a closing
// brace or bracket, a common malformed-JSON pattern from the model.
func stripTrailingCommas(candidate string) string {
	return trailingCommaPattern.ReplaceAllString(candidate, "$1")
}

// extractVerdict pulls the bracketed recommendation token out of the
// narrative. Returns empty when absent or not one of the known tokens.
func extractVerdict(markdown string) models.Verdict {
	m := verdictPattern.FindStringSubmatch(markdown)
	if m == nil {
		return ""
	}
	v := models.Verdict(m[1])
	if !v.Valid() {
		return ""
	}
	return v
}

// ParseResponse turns raw model output into a partial analysis result.
// Never fails: malformed or absent JSON degrades to an absent structured
// payload, and the markdown remainder (or the untouched raw text when no
// candidate was found) is always returned. A blank remainder becomes the
// fixed placeholder sentence.
func ParseResponse(raw string, citations []models.Citation) *models.AnalysisResult {
	ext := extractJSONCandidate(raw)

	var structured *models.StructuredData
	if ext.found {
		candidate := stripTrailingCommas(ext.candidate)
		var data models.StructuredData
		if err := json.Unmarshal([]byte(candidate), &data); err == nil && !data.IsEmpty() {
			structured = &data
		}
	}

	markdown := strings.TrimSpace(ext.remainder)
	if markdown == "" {
		markdown = placeholderNarrative
	}

	return &models.AnalysisResult{
		MarkdownReport: markdown,
		StructuredData: structured,
		Citations:      citations,
		Verdict:        extractVerdict(markdown),
	}
}
