package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bobmcallan/marketlens/internal/models"
)

func TestBuildPrompt_MarketMode(t *testing.T) {
	system, user := BuildPrompt(models.AnalysisRequest{
		Kind:  models.RequestKindMarket,
		Query: "CSL.AX",
	})

	assert.Equal(t, systemInstruction, system)
	assert.Contains(t, user, "CSL.AX")
	assert.Contains(t, user, "bubble risk")
}

func TestBuildPrompt_SystemInstructionIsModeInvariant(t *testing.T) {
	sysMarket, _ := BuildPrompt(models.AnalysisRequest{Kind: models.RequestKindMarket, Query: "x"})
	sysPortfolio, _ := BuildPrompt(models.AnalysisRequest{Kind: models.RequestKindPortfolio})
	sysBubbles, _ := BuildPrompt(models.AnalysisRequest{Kind: models.RequestKindBubbles})

	assert.Equal(t, sysMarket, sysPortfolio)
	assert.Equal(t, sysMarket, sysBubbles)

	// The contract the parser depends on must survive prompt edits.
	assert.Contains(t, sysMarket, "```json")
	assert.Contains(t, sysMarket, "[[[Strong Buy]]]")
	assert.Contains(t, sysMarket, "risk_score")
	assert.Contains(t, sysMarket, "top_bubble_assets")
}

func TestBuildPrompt_PortfolioSerializesHoldings(t *testing.T) {
	_, user := BuildPrompt(models.AnalysisRequest{
		Kind: models.RequestKindPortfolio,
		Holdings: []models.PortfolioItem{
			{Symbol: "BHP", Name: "BHP Group", Quantity: 10, BuyPrice: 40, CurrentPrice: 44},
			{Symbol: "WOW", Quantity: 5, BuyPrice: 30, CurrentPrice: 28},
		},
	})

	assert.Contains(t, user, "BHP Group (BHP)")
	// Nameless holdings fall back to the symbol.
	assert.Contains(t, user, "WOW (WOW)")
	// Aggregate totals: value 440+140=580, cost 400+150=550.
	assert.Contains(t, user, "Total value 580.00")
	assert.Contains(t, user, "total cost 550.00")
}

func TestBuildPrompt_BubblesMode(t *testing.T) {
	_, user := BuildPrompt(models.AnalysisRequest{Kind: models.RequestKindBubbles})

	assert.Contains(t, user, "bubble scan")
	assert.Contains(t, user, "top_bubble_assets")
}
