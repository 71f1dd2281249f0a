package analysis

import (
	"fmt"
	"strings"

	"github.com/bobmcallan/marketlens/internal/models"
)

// systemInstruction is the mode-invariant output contract sent with every
// analysis request. It fully specifies the response shape: a fenced JSON
// block first, then a three-paragraph markdown verdict closed by a
// bracketed recommendation tag.
const systemInstruction = `You are a senior financial analyst producing a structured risk assessment.

Your response MUST follow this exact structure:

1. First, a fenced JSON code block (opened with ` + "```json" + ` and closed with ` + "```" + `) containing a single object with these keys:
   - "risk_score": number 0-100 (overall investment risk)
   - "bubble_probability": number 0-100 (likelihood the asset or market is in a speculative bubble)
   - "sentiment": one of "bullish", "bearish", "neutral", "mixed"
   - "key_metrics": array of {"name", "value"} objects with the most decision-relevant figures
   - "trend_series": array of {"label", "value"} points projecting the 12-month trend
   - "swot": object with "strengths", "weaknesses", "opportunities", "threats" string arrays
   - "bubble_audit": object with "phase", "drivers" (string array), "commentary", "historic_ref"
   - "whistleblower": object with "severity" ("low", "medium" or "high") and "warnings" (string array)
   - "top_bubble_assets": array of {"symbol", "name", "bubble_probability", "note"} objects

2. Then a markdown narrative of EXACTLY three paragraphs.

3. The narrative must end with a single recommendation token wrapped in triple brackets, chosen from exactly: [[[Strong Buy]]], [[[Buy]]], [[[Hold]]], [[[Sell]]], [[[Strong Sell]]]

If live search is unavailable or fails, do NOT return an error: fabricate plausible figures and clearly label them as estimates in the narrative. Never omit the JSON block or the closing recommendation token.`

// BuildPrompt produces the system instruction and user prompt for a
// request. The system instruction is the same for every mode; only the
// user prompt varies. Pure string construction — no validation, no side
// effects.
func BuildPrompt(req models.AnalysisRequest) (system string, user string) {
	switch req.Kind {
	case models.RequestKindPortfolio:
		return systemInstruction, buildPortfolioPrompt(req.Holdings)
	case models.RequestKindBubbles:
		return systemInstruction, buildBubblesPrompt()
	default:
		return systemInstruction, buildMarketPrompt(req.Query)
	}
}

// buildMarketPrompt creates the prompt for a stock symbol, sector, or
// free-text market question.
func buildMarketPrompt(query string) string {
	var sb strings.Builder
	sb.WriteString("Analyze the following stock, sector, or market question using current market data:\n\n")
	sb.WriteString(query)
	sb.WriteString("\n\nCover valuation, momentum, bubble risk, and the key red flags an investor should know about.")
	return sb.String()
}

// buildPortfolioPrompt serializes the holdings list into an audit request.
func buildPortfolioPrompt(holdings []models.PortfolioItem) string {
	var sb strings.Builder
	sb.WriteString("Audit the following investment portfolio:\n\n")

	for i, h := range holdings {
		name := h.Name
		if name == "" {
			name = h.Symbol
		}
		sb.WriteString(fmt.Sprintf("%d. %s (%s): %.4g units, buy price %.2f, current price %.2f, P/L %.2f\n",
			i+1, name, h.Symbol, h.Quantity, h.BuyPrice, h.CurrentPrice, h.GainLoss()))
	}

	summary := models.Summarize(holdings)
	sb.WriteString(fmt.Sprintf("\nTotal value %.2f, total cost %.2f, total P/L %.2f (%.2f%%).\n",
		summary.TotalValue, summary.TotalCost, summary.GainLoss, summary.GainLossPct))

	sb.WriteString("\nAssess concentration risk, bubble exposure per holding, and overall portfolio health. The risk_score and bubble_probability must reflect the portfolio as a whole.")
	return sb.String()
}

// buildBubblesPrompt creates the global bubble scan request.
func buildBubblesPrompt() string {
	var sb strings.Builder
	sb.WriteString("Run a global bubble scan across equities, crypto, real estate, and credit markets.\n\n")
	sb.WriteString("Identify the assets and sectors showing the strongest speculative-bubble characteristics right now. ")
	sb.WriteString("Populate top_bubble_assets with the highest-risk names and reflect systemic risk in bubble_audit and whistleblower.")
	return sb.String()
}
