// Package insights holds the read-only analysis report produced by the
// backend scoring engine after an interview completes.
package insights

// Verdict is the engine's overall call on the idea.
type Verdict string

const (
	VerdictGo    Verdict = "GO"
	VerdictMaybe Verdict = "MAYBE"
	VerdictNoGo  Verdict = "NO-GO"
)

// Dimension is one scored axis of the analysis.
type Dimension struct {
	Score     float64 `json:"score"`
	Label     string  `json:"label"`
	Reasoning string  `json:"reasoning"`
}

// Report is the full analysis for one interview. The client consumes it
// read-only; only the interview id is needed to request it.
type Report struct {
	Verdict    Verdict `json:"verdict"`
	Confidence int     `json:"confidence"`

	Problem          Dimension `json:"problem"`
	Market           Dimension `json:"market"`
	WillingnessToPay Dimension `json:"willingnessToPay"`

	PositiveSignals     []string `json:"positiveSignals"`
	RiskSignals         []string `json:"riskSignals"`
	ExecutionChallenges []string `json:"executionChallenges"`
	NextSteps           []string `json:"nextSteps"`
	Quotes              []string `json:"quotes"`
}
