// Package models defines data structures for MarketLens
package models

import "time"

// RequestKind selects the analysis mode.
type RequestKind string

const (
	RequestKindMarket    RequestKind = "market"
	RequestKindPortfolio RequestKind = "portfolio"
	RequestKindBubbles   RequestKind = "bubbles"
)

// AnalysisRequest describes a single analysis to run. Constructed once,
// consumed once.
type AnalysisRequest struct {
	Kind     RequestKind     `json:"kind"`
	Query    string          `json:"query,omitempty"`
	Holdings []PortfolioItem `json:"holdings,omitempty"`
}

// Citation is a source the model reports having consulted during search
// augmentation.
type Citation struct {
	URI   string `json:"uri"`
	Title string `json:"title"`
}

// RawModelResponse is the unprocessed output of one generation call.
// Citations are deduplicated by URI with insertion order preserved.
type RawModelResponse struct {
	Text      string     `json:"text"`
	Citations []Citation `json:"citations,omitempty"`
}

// Verdict is the closing recommendation tag the narrative must end with,
// wrapped in a [[[...]]] marker.
type Verdict string

const (
	VerdictStrongBuy  Verdict = "Strong Buy"
	VerdictBuy        Verdict = "Buy"
	VerdictHold       Verdict = "Hold"
	VerdictSell       Verdict = "Sell"
	VerdictStrongSell Verdict = "Strong Sell"
)

// AllVerdicts lists the valid verdict tokens in strength order.
var AllVerdicts = []Verdict{
	VerdictStrongBuy,
	VerdictBuy,
	VerdictHold,
	VerdictSell,
	VerdictStrongSell,
}

// Valid reports whether v is one of the enumerated verdict tokens.
func (v Verdict) Valid() bool {
	for _, known := range AllVerdicts {
		if v == known {
			return true
		}
	}
	return false
}

// KeyMetric is a single labeled figure for the metrics panel.
type KeyMetric struct {
	Name  string `json:"name,omitempty"`
	Value string `json:"value,omitempty"`
}

// TrendPoint is a single point in the model's projected trend series.
type TrendPoint struct {
	Label string  `json:"label,omitempty"`
	Value float64 `json:"value,omitempty"`
}

// SWOT holds the four analysis quadrants.
type SWOT struct {
	Strengths     []string `json:"strengths,omitempty"`
	Weaknesses    []string `json:"weaknesses,omitempty"`
	Opportunities []string `json:"opportunities,omitempty"`
	Threats       []string `json:"threats,omitempty"`
}

// BubbleAudit is the bubble-cycle assessment sub-record.
type BubbleAudit struct {
	Phase       string   `json:"phase,omitempty"` // e.g. "stealth", "mania", "blow-off"
	Drivers     []string `json:"drivers,omitempty"`
	Commentary  string   `json:"commentary,omitempty"`
	HistoricRef string   `json:"historic_ref,omitempty"`
}

// Whistleblower is the warning-panel sub-record.
type Whistleblower struct {
	Severity string   `json:"severity,omitempty"` // low, medium, high
	Warnings []string `json:"warnings,omitempty"`
}

// BubbleAsset is one entry in the global bubble scan.
type BubbleAsset struct {
	Symbol            string   `json:"symbol,omitempty"`
	Name              string   `json:"name,omitempty"`
	BubbleProbability *float64 `json:"bubble_probability,omitempty"`
	Note              string   `json:"note,omitempty"`
}

// StructuredData is the optional JSON payload the model is asked to emit
// alongside its narrative. The upstream model is not guaranteed to conform
// to the requested schema — every field is optional and every consumer
// must check presence before use.
type StructuredData struct {
	RiskScore         *float64      `json:"risk_score,omitempty"`         // 0-100
	BubbleProbability *float64      `json:"bubble_probability,omitempty"` // 0-100
	Sentiment         string        `json:"sentiment,omitempty"`          // bullish, bearish, neutral, mixed
	KeyMetrics        []KeyMetric   `json:"key_metrics,omitempty"`
	TrendSeries       []TrendPoint  `json:"trend_series,omitempty"`
	SWOT              *SWOT         `json:"swot,omitempty"`
	BubbleAudit       *BubbleAudit  `json:"bubble_audit,omitempty"`
	Whistleblower     *Whistleblower `json:"whistleblower,omitempty"`
	TopBubbleAssets   []BubbleAsset `json:"top_bubble_assets,omitempty"`
}

// IsEmpty reports whether no field of the structured payload is populated.
// An empty payload is treated the same as an absent one during merges.
func (d *StructuredData) IsEmpty() bool {
	if d == nil {
		return true
	}
	return d.RiskScore == nil &&
		d.BubbleProbability == nil &&
		d.Sentiment == "" &&
		len(d.KeyMetrics) == 0 &&
		len(d.TrendSeries) == 0 &&
		d.SWOT == nil &&
		d.BubbleAudit == nil &&
		d.Whistleblower == nil &&
		len(d.TopBubbleAssets) == 0
}

// AnalysisResult is the merged, display-ready analysis record.
type AnalysisResult struct {
	MarkdownReport string          `json:"markdown_report"`
	StructuredData *StructuredData `json:"structured_data,omitempty"`
	Citations      []Citation      `json:"citations,omitempty"`
	Verdict        Verdict         `json:"verdict,omitempty"`
	IsEstimated    bool            `json:"is_estimated"`
}

// Report is a completed analysis persisted to the report history.
type Report struct {
	ID        string         `json:"id" badgerhold:"key"`
	Kind      RequestKind    `json:"kind"`
	Query     string         `json:"query,omitempty"`
	Result    AnalysisResult `json:"result"`
	CreatedAt time.Time      `json:"created_at"`
}
