package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func TestExtractTextFromResponse(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{
				Parts: []*genai.Part{
					{Text: "First part. "},
					{Text: "Second part."},
				},
			},
		}},
	}

	text, err := extractTextFromResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "First part. Second part.", text)
}

func TestExtractTextFromResponse_Empty(t *testing.T) {
	_, err := extractTextFromResponse(&genai.GenerateContentResponse{})
	assert.Error(t, err)

	_, err = extractTextFromResponse(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{}}},
	})
	assert.Error(t, err)
}

func TestExtractCitations(t *testing.T) {
	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			GroundingMetadata: &genai.GroundingMetadata{
				GroundingChunks: []*genai.GroundingChunk{
					{Web: &genai.GroundingChunkWeb{URI: "https://a.example", Title: "A"}},
					{Web: &genai.GroundingChunkWeb{URI: "https://b.example", Title: "B"}},
					{Web: &genai.GroundingChunkWeb{URI: "https://a.example", Title: "A again"}},
					{Web: &genai.GroundingChunkWeb{URI: "", Title: "no uri"}},
					nil,
					{Web: nil},
				},
			},
		}},
	}

	citations := extractCitations(resp)
	require.Len(t, citations, 2, "deduplicated by URI, blanks dropped")
	assert.Equal(t, "https://a.example", citations[0].URI)
	assert.Equal(t, "A", citations[0].Title, "first occurrence wins")
	assert.Equal(t, "https://b.example", citations[1].URI)
}

func TestExtractCitations_NoGrounding(t *testing.T) {
	assert.Nil(t, extractCitations(&genai.GenerateContentResponse{}))
	assert.Nil(t, extractCitations(&genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{}},
	}))
}

func TestUpstreamError(t *testing.T) {
	inner := assert.AnError
	err := &UpstreamError{Message: "quota exceeded", Err: inner}

	assert.Equal(t, "upstream AI error: quota exceeded", err.Error())
	assert.ErrorIs(t, err, inner)
}
