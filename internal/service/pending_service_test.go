package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sinapsiscode/cursos-exam-backend/internal/config"
	"github.com/sinapsiscode/cursos-exam-backend/internal/model"
	"github.com/sinapsiscode/cursos-exam-backend/internal/repository"
	"github.com/sinapsiscode/cursos-exam-backend/internal/store"
)

func newPendingFixture(t *testing.T, st store.DocumentStore) (*PendingService, *ResultService) {
	t.Helper()
	discountRepo := repository.NewDiscountRepository(st)
	resultRepo := repository.NewResultRepository(st)
	locks := store.NewKeyMutex()
	discounts := NewDiscountService(discountRepo, resultRepo, locks, 30*24*time.Hour, zerolog.Nop())
	results := NewResultService(resultRepo, repository.NewCourseResultRepository(st), repository.NewDismissalRepository(st), discounts, locks, zerolog.Nop())
	pending := NewPendingService(repository.NewPendingRepository(st), results, locks, zerolog.Nop())
	return pending, results
}

func TestApplyPendingResult(t *testing.T) {
	ctx := context.Background()

	t.Run("success clears the slot", func(t *testing.T) {
		svc, results := newPendingFixture(t, store.NewMemory())

		if err := svc.SavePending(ctx, "session_abc", model.ExamAttempt{Score: 16, Discount: 15}); err != nil {
			t.Fatalf("save pending: %v", err)
		}

		res, err := svc.ApplyPendingResult(ctx, "session_abc", "user_1")
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
		if res == nil || !res.Success {
			t.Fatalf("apply result = %+v", res)
		}
		if res.DiscountCode == "" {
			t.Error("expected a minted code for the relayed discount")
		}

		saved, err := results.InitialExamResult(ctx, "user_1")
		if err != nil {
			t.Fatalf("lookup: %v", err)
		}
		if saved == nil || saved.Score != 16 {
			t.Errorf("saved = %+v", saved)
		}

		again, err := svc.ApplyPendingResult(ctx, "session_abc", "user_1")
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
		if again != nil {
			t.Errorf("slot should be cleared, got %+v", again)
		}
	})

	t.Run("nothing pending", func(t *testing.T) {
		svc, _ := newPendingFixture(t, store.NewMemory())
		res, err := svc.ApplyPendingResult(ctx, "never_saved", "user_1")
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
		if res != nil {
			t.Errorf("expected nil, got %+v", res)
		}
	})

	t.Run("failed save keeps the slot", func(t *testing.T) {
		st := &failingStore{
			Memory:   store.NewMemory(),
			failKeys: map[string]bool{config.StoreKey.ExamResults(): true},
		}
		svc, _ := newPendingFixture(t, st)

		if err := svc.SavePending(ctx, "session_abc", model.ExamAttempt{Score: 10}); err != nil {
			t.Fatalf("save pending: %v", err)
		}

		res, err := svc.ApplyPendingResult(ctx, "session_abc", "user_1")
		if err != nil {
			t.Fatalf("apply: %v", err)
		}
		if res == nil || res.Success {
			t.Fatalf("expected failed save outcome, got %+v", res)
		}

		// The attempt stays claimable once storage recovers.
		held, err := svc.PendingResult(ctx, "session_abc")
		if err != nil {
			t.Fatalf("lookup: %v", err)
		}
		if held == nil || held.Score != 10 {
			t.Errorf("held = %+v", held)
		}
	})

	t.Run("overwrites previous pending attempt", func(t *testing.T) {
		svc, _ := newPendingFixture(t, store.NewMemory())

		_ = svc.SavePending(ctx, "session_abc", model.ExamAttempt{Score: 5})
		_ = svc.SavePending(ctx, "session_abc", model.ExamAttempt{Score: 12})

		held, err := svc.PendingResult(ctx, "session_abc")
		if err != nil {
			t.Fatalf("lookup: %v", err)
		}
		if held.Score != 12 {
			t.Errorf("score = %d, want latest attempt", held.Score)
		}
	})
}
