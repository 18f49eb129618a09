package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sinapsiscode/cursos-exam-backend/internal/model"
	"github.com/sinapsiscode/cursos-exam-backend/internal/repository"
	"github.com/sinapsiscode/cursos-exam-backend/internal/store"
)

type statsFixture struct {
	stats     *StatsService
	results   *ResultService
	discounts *DiscountService
}

func newStatsFixture(t *testing.T) *statsFixture {
	t.Helper()
	mem := store.NewMemory()
	discountRepo := repository.NewDiscountRepository(mem)
	resultRepo := repository.NewResultRepository(mem)
	locks := store.NewKeyMutex()
	discounts := NewDiscountService(discountRepo, resultRepo, locks, 30*24*time.Hour, zerolog.Nop())
	results := NewResultService(resultRepo, repository.NewCourseResultRepository(mem), repository.NewDismissalRepository(mem), discounts, locks, zerolog.Nop())
	stats := NewStatsService(resultRepo, discountRepo, zerolog.Nop())
	return &statsFixture{stats: stats, results: results, discounts: discounts}
}

func TestExamStatsEmpty(t *testing.T) {
	ctx := context.Background()
	fx := newStatsFixture(t)

	stats, err := fx.stats.ExamStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalExams != 0 || stats.AverageScore != 0 {
		t.Errorf("stats = %+v", stats)
	}
	for label, n := range stats.ScoreDistribution {
		if n != 0 {
			t.Errorf("bucket %s = %d, want 0", label, n)
		}
	}
	if len(stats.ScoreDistribution) != 4 {
		t.Errorf("expected all 4 buckets present, got %d", len(stats.ScoreDistribution))
	}
}

func TestExamStatsDistributionAndAverage(t *testing.T) {
	ctx := context.Background()
	fx := newStatsFixture(t)

	for i, score := range []int{5, 12, 16, 19} {
		userID := string(rune('a' + i))
		if res := fx.results.SaveExamResult(ctx, userID, model.ExamAttempt{Score: score}); !res.Success {
			t.Fatalf("save score %d: %q", score, res.Error)
		}
	}

	stats, err := fx.stats.ExamStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalExams != 4 {
		t.Errorf("totalExams = %d", stats.TotalExams)
	}
	if stats.AverageScore != 13.0 {
		t.Errorf("averageScore = %v, want 13.0", stats.AverageScore)
	}

	want := map[string]int{
		model.ScoreBucket0to10:  1,
		model.ScoreBucket11to14: 1,
		model.ScoreBucket15to17: 1,
		model.ScoreBucket18to20: 1,
	}
	for label, n := range want {
		if stats.ScoreDistribution[label] != n {
			t.Errorf("bucket %s = %d, want %d", label, stats.ScoreDistribution[label], n)
		}
	}
}

func TestExamStatsAverageRounding(t *testing.T) {
	ctx := context.Background()
	fx := newStatsFixture(t)

	// 10+15+16 = 41 over 3 exams is 13.666..., rounded to one decimal.
	for i, score := range []int{10, 15, 16} {
		userID := string(rune('a' + i))
		if res := fx.results.SaveExamResult(ctx, userID, model.ExamAttempt{Score: score}); !res.Success {
			t.Fatalf("save: %q", res.Error)
		}
	}

	stats, err := fx.stats.ExamStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.AverageScore != 13.7 {
		t.Errorf("averageScore = %v, want 13.7", stats.AverageScore)
	}
}

func TestExamStatsDiscountCounters(t *testing.T) {
	ctx := context.Background()
	fx := newStatsFixture(t)

	withCode := fx.results.SaveExamResult(ctx, "user_1", model.ExamAttempt{Score: 16, Discount: 15})
	if !withCode.Success || withCode.DiscountCode == "" {
		t.Fatalf("save: %+v", withCode)
	}
	if res := fx.results.SaveExamResult(ctx, "user_2", model.ExamAttempt{Score: 8}); !res.Success {
		t.Fatalf("save: %q", res.Error)
	}
	other := fx.results.SaveExamResult(ctx, "user_3", model.ExamAttempt{Score: 18, Discount: 20})
	if !other.Success {
		t.Fatalf("save: %q", other.Error)
	}

	if res, _ := fx.discounts.Redeem(ctx, withCode.DiscountCode, "user_1"); !res.Valid {
		t.Fatalf("redeem: %q", res.Error)
	}

	stats, err := fx.stats.ExamStats(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.DiscountsGenerated != 2 {
		t.Errorf("discountsGenerated = %d, want 2", stats.DiscountsGenerated)
	}
	if stats.DiscountsUsed != 1 {
		t.Errorf("discountsUsed = %d, want 1", stats.DiscountsUsed)
	}
	if stats.TotalDiscountValue != 15 {
		t.Errorf("totalDiscountValue = %d, want 15", stats.TotalDiscountValue)
	}
}
