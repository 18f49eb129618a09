package service

import (
	"context"
	"math"

	"github.com/rs/zerolog"
	"github.com/sinapsiscode/cursos-exam-backend/internal/model"
	"github.com/sinapsiscode/cursos-exam-backend/internal/repository"
)

// scoreBuckets are evaluated in ascending order; both bounds are inclusive
// and the first match wins.
var scoreBuckets = []struct {
	label    string
	min, max int
}{
	{model.ScoreBucket0to10, 0, 10},
	{model.ScoreBucket11to14, 11, 14},
	{model.ScoreBucket15to17, 15, 17},
	{model.ScoreBucket18to20, 18, 20},
}

// StatsService computes administrative reports over the initial exam results
// and the discount ledger. All operations are read-only.
type StatsService struct {
	resultRepo   *repository.ResultRepository
	discountRepo *repository.DiscountRepository
	log          zerolog.Logger
}

// NewStatsService creates a new StatsService.
func NewStatsService(resultRepo *repository.ResultRepository, discountRepo *repository.DiscountRepository, log zerolog.Logger) *StatsService {
	return &StatsService{
		resultRepo:   resultRepo,
		discountRepo: discountRepo,
		log:          log.With().Str("component", "stats_service").Logger(),
	}
}

// ExamStats scans every initial exam result and the full ledger.
// TotalDiscountValue sums the percentages of used codes; it is a usage
// indicator for the admin dashboard, not a currency total.
func (s *StatsService) ExamStats(ctx context.Context) (*model.ExamStats, error) {
	results, err := s.resultRepo.All(ctx)
	if err != nil {
		return nil, err
	}

	stats := &model.ExamStats{
		TotalExams:        len(results),
		ScoreDistribution: make(map[string]int, len(scoreBuckets)),
	}
	for _, b := range scoreBuckets {
		stats.ScoreDistribution[b.label] = 0
	}

	scoreSum := 0
	for _, res := range results {
		scoreSum += res.Score
		for _, b := range scoreBuckets {
			if res.Score >= b.min && res.Score <= b.max {
				stats.ScoreDistribution[b.label]++
				break
			}
		}
		if res.DiscountCode != "" {
			stats.DiscountsGenerated++
		}
	}

	if stats.TotalExams > 0 {
		avg := float64(scoreSum) / float64(stats.TotalExams)
		stats.AverageScore = math.Round(avg*10) / 10
	}

	codes, err := s.discountRepo.All(ctx)
	if err != nil {
		return nil, err
	}
	for _, dc := range codes {
		if dc.Used {
			stats.DiscountsUsed++
			stats.TotalDiscountValue += dc.Discount
		}
	}

	return stats, nil
}
