package model

// Score distribution bucket labels, in ascending order. Boundaries are
// inclusive on both ends; the first matching bucket wins.
const (
	ScoreBucket0to10  = "0-10"
	ScoreBucket11to14 = "11-14"
	ScoreBucket15to17 = "15-17"
	ScoreBucket18to20 = "18-20"
)

// ExamStats is the administrative report over all initial exam results and
// the full discount ledger. TotalDiscountValue is a sum of percentages of
// used codes, not a currency amount.
type ExamStats struct {
	TotalExams         int            `json:"totalExams"`
	AverageScore       float64        `json:"averageScore"`
	ScoreDistribution  map[string]int `json:"scoreDistribution"`
	DiscountsGenerated int            `json:"discountsGenerated"`
	DiscountsUsed      int            `json:"discountsUsed"`
	TotalDiscountValue int            `json:"totalDiscountValue"`
}
