package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bobmcallan/marketlens/internal/models"
)

func TestParseResponse_FencedJSONBlock(t *testing.T) {
	raw := "```json\n{\"risk_score\": 72, \"sentiment\": \"bearish\"}\n```\n\nThe market looks stretched.\n\nValuations are elevated.\n\nCaution is warranted. [[[Hold]]]"

	result := ParseResponse(raw, nil)

	require.NotNil(t, result.StructuredData)
	require.NotNil(t, result.StructuredData.RiskScore)
	assert.Equal(t, 72.0, *result.StructuredData.RiskScore)
	assert.Equal(t, "bearish", result.StructuredData.Sentiment)

	// The fenced block, delimiters included, is removed from the narrative
	assert.NotContains(t, result.MarkdownReport, "```")
	assert.NotContains(t, result.MarkdownReport, "risk_score")
	assert.Contains(t, result.MarkdownReport, "The market looks stretched.")
	assert.Equal(t, models.VerdictHold, result.Verdict)
}

func TestParseResponse_FencedBlockWithoutJSONTag(t *testing.T) {
	raw := "```\n{\"sentiment\": \"bullish\"}\n```\nStrong momentum across the board."

	result := ParseResponse(raw, nil)

	require.NotNil(t, result.StructuredData)
	assert.Equal(t, "bullish", result.StructuredData.Sentiment)
	assert.Equal(t, "Strong momentum across the board.", result.MarkdownReport)
}

func TestParseResponse_BraceFallback(t *testing.T) {
	raw := "Here is the data {\"risk_score\": 55} and the rest of the report."

	result := ParseResponse(raw, nil)

	require.NotNil(t, result.StructuredData)
	require.NotNil(t, result.StructuredData.RiskScore)
	assert.Equal(t, 55.0, *result.StructuredData.RiskScore)
	assert.Equal(t, "Here is the data  and the rest of the report.", result.MarkdownReport)
}

func TestParseResponse_TrailingCommas(t *testing.T) {
	raw := "```json\n{\"risk_score\": 40, \"swot\": {\"strengths\": [\"cash flow\",],},}\n```\nNarrative body."

	result := ParseResponse(raw, nil)

	require.NotNil(t, result.StructuredData)
	require.NotNil(t, result.StructuredData.RiskScore)
	assert.Equal(t, 40.0, *result.StructuredData.RiskScore)
	require.NotNil(t, result.StructuredData.SWOT)
	assert.Equal(t, []string{"cash flow"}, result.StructuredData.SWOT.Strengths)
}

func TestParseResponse_NoBracesAtAll(t *testing.T) {
	raw := "A plain narrative with no structured payload whatsoever."

	result := ParseResponse(raw, nil)

	assert.Nil(t, result.StructuredData)
	assert.Equal(t, raw, result.MarkdownReport)
}

func TestParseResponse_MalformedJSONDegradesSilently(t *testing.T) {
	raw := "```json\n{not valid json at all\n```\nThe narrative survives."

	result := ParseResponse(raw, nil)

	assert.Nil(t, result.StructuredData)
	assert.Equal(t, "The narrative survives.", result.MarkdownReport)
}

func TestParseResponse_EmptyRemainderUsesPlaceholder(t *testing.T) {
	raw := "```json\n{\"risk_score\": 10}\n```\n   \n"

	result := ParseResponse(raw, nil)

	require.NotNil(t, result.StructuredData)
	assert.Equal(t, placeholderNarrative, result.MarkdownReport)
}

func TestParseResponse_EmptyInput(t *testing.T) {
	result := ParseResponse("", nil)

	assert.Nil(t, result.StructuredData)
	assert.Equal(t, placeholderNarrative, result.MarkdownReport)
}

func TestParseResponse_EmptyObjectTreatedAsAbsent(t *testing.T) {
	raw := "```json\n{}\n```\nNothing structured here."

	result := ParseResponse(raw, nil)

	assert.Nil(t, result.StructuredData)
}

func TestParseResponse_CitationsPassThrough(t *testing.T) {
	citations := []models.Citation{{URI: "https://example.com", Title: "Example"}}

	result := ParseResponse("Some narrative.", citations)

	assert.Equal(t, citations, result.Citations)
}

func TestParseResponse_FirstFencedBlockWins(t *testing.T) {
	raw := "```json\n{\"sentiment\": \"neutral\"}\n```\nBody text.\n```json\n{\"sentiment\": \"bullish\"}\n```"

	result := ParseResponse(raw, nil)

	require.NotNil(t, result.StructuredData)
	assert.Equal(t, "neutral", result.StructuredData.Sentiment)
}

func TestExtractVerdict(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     models.Verdict
	}{
		{"strong buy", "Great outlook. [[[Strong Buy]]]", models.VerdictStrongBuy},
		{"sell with whitespace", "Weak outlook. [[[ Sell ]]]", models.VerdictSell},
		{"unknown token", "Confused outlook. [[[Maybe]]]", ""},
		{"missing", "No tag here.", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractVerdict(tt.markdown))
		})
	}
}
