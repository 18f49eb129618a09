package service

import (
	"context"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/sinapsiscode/cursos-exam-backend/internal/model"
	"github.com/sinapsiscode/cursos-exam-backend/internal/repository"
	"github.com/sinapsiscode/cursos-exam-backend/internal/store"
)

func newDiscountFixture(t *testing.T) (*DiscountService, *repository.DiscountRepository) {
	t.Helper()
	mem := store.NewMemory()
	discountRepo := repository.NewDiscountRepository(mem)
	resultRepo := repository.NewResultRepository(mem)
	svc := NewDiscountService(discountRepo, resultRepo, store.NewKeyMutex(), 30*24*time.Hour, zerolog.Nop())
	return svc, discountRepo
}

var codeFormatRe = regexp.MustCompile(`^(EXAM|COURSE)[0-9]{1,3}[A-Z0-9]{6}$`)

func TestGenerateCodeFormat(t *testing.T) {
	ctx := context.Background()
	svc, repo := newDiscountFixture(t)

	code, err := svc.GenerateCode(ctx, "user_1", 15)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !codeFormatRe.MatchString(code) {
		t.Errorf("code %q does not match wire format", code)
	}
	if code[:6] != "EXAM15" {
		t.Errorf("expected EXAM15 prefix, got %q", code)
	}

	dc, err := repo.Get(ctx, code)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if dc == nil {
		t.Fatal("minted code not in ledger")
	}
	if dc.UserID != "user_1" || dc.Used || dc.Type != model.DiscountTypeInitialExam {
		t.Errorf("unexpected record: %+v", dc)
	}
	if !dc.ExpiresAt.After(dc.CreatedAt) {
		t.Error("expiry must be after creation")
	}
}

func TestGenerateCourseCodeFormat(t *testing.T) {
	ctx := context.Background()
	svc, repo := newDiscountFixture(t)

	code, err := svc.GenerateCourseCode(ctx, "user_1", 3, 10)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if code[:8] != "COURSE10" {
		t.Errorf("expected COURSE10 prefix, got %q", code)
	}

	dc, _ := repo.Get(ctx, code)
	if dc == nil {
		t.Fatal("minted code not in ledger")
	}
	if dc.Type != model.DiscountTypeCourseExam {
		t.Errorf("type = %q", dc.Type)
	}
	if dc.CourseID == nil || *dc.CourseID != 3 {
		t.Errorf("courseId = %v", dc.CourseID)
	}
}

func TestValidate(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown code", func(t *testing.T) {
		svc, _ := newDiscountFixture(t)
		res, err := svc.Validate(ctx, "EXAM15ZZZZZZ")
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if res.Valid {
			t.Fatal("expected invalid")
		}
		if res.Error != "Código inválido" {
			t.Errorf("error = %q", res.Error)
		}
	})

	t.Run("valid code does not consume", func(t *testing.T) {
		svc, repo := newDiscountFixture(t)
		code, _ := svc.GenerateCode(ctx, "user_1", 15)

		for i := 0; i < 3; i++ {
			res, err := svc.Validate(ctx, code)
			if err != nil {
				t.Fatalf("validate: %v", err)
			}
			if !res.Valid {
				t.Fatalf("run %d: expected valid, got %q", i, res.Error)
			}
			if res.Discount != 15 {
				t.Errorf("discount = %d", res.Discount)
			}
			if res.Type != model.DiscountTypeInitialExam {
				t.Errorf("type = %q", res.Type)
			}
		}

		dc, _ := repo.Get(ctx, code)
		if dc.Used {
			t.Error("validate must not consume the code")
		}
	})

	t.Run("expired code", func(t *testing.T) {
		svc, _ := newDiscountFixture(t)
		code, _ := svc.GenerateCode(ctx, "user_1", 15)

		svc.now = func() time.Time { return time.Now().Add(31 * 24 * time.Hour) }
		res, err := svc.Validate(ctx, code)
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if res.Valid {
			t.Fatal("expected expired code to be invalid")
		}
		if res.Error != "Código expirado" {
			t.Errorf("error = %q", res.Error)
		}
	})

	t.Run("used wins over expired", func(t *testing.T) {
		svc, repo := newDiscountFixture(t)
		code, _ := svc.GenerateCode(ctx, "user_1", 15)

		if res, _ := svc.Redeem(ctx, code, "user_1"); !res.Valid {
			t.Fatalf("redeem failed: %q", res.Error)
		}

		// Now both used and past expiry.
		svc.now = func() time.Time { return time.Now().Add(31 * 24 * time.Hour) }
		res, err := svc.Validate(ctx, code)
		if err != nil {
			t.Fatalf("validate: %v", err)
		}
		if res.Error != "Código ya utilizado" {
			t.Errorf("error = %q, want used to take precedence", res.Error)
		}

		dc, _ := repo.Get(ctx, code)
		if !dc.Used {
			t.Error("code should stay used")
		}
	})
}

func TestRedeem(t *testing.T) {
	ctx := context.Background()

	t.Run("single use", func(t *testing.T) {
		svc, repo := newDiscountFixture(t)
		code, _ := svc.GenerateCode(ctx, "user_1", 15)

		res, err := svc.Redeem(ctx, code, "user_1")
		if err != nil {
			t.Fatalf("redeem: %v", err)
		}
		if !res.Valid {
			t.Fatalf("redeem failed: %q", res.Error)
		}
		if res.Message != "Descuento del 15% aplicado exitosamente" {
			t.Errorf("message = %q", res.Message)
		}

		dc, _ := repo.Get(ctx, code)
		if !dc.Used || dc.UsedAt == nil || dc.UsedBy != "user_1" {
			t.Errorf("record not marked used: %+v", dc)
		}

		again, err := svc.Redeem(ctx, code, "user_1")
		if err != nil {
			t.Fatalf("redeem: %v", err)
		}
		if again.Valid {
			t.Fatal("second redemption must fail")
		}
		if again.Error != "Código ya utilizado" {
			t.Errorf("error = %q", again.Error)
		}
	})

	t.Run("initial exam code is owner-only", func(t *testing.T) {
		svc, repo := newDiscountFixture(t)
		code, _ := svc.GenerateCode(ctx, "user_1", 15)

		res, err := svc.Redeem(ctx, code, "user_2")
		if err != nil {
			t.Fatalf("redeem: %v", err)
		}
		if res.Valid {
			t.Fatal("non-owner redemption must fail")
		}
		if res.Error != "Este código no te pertenece" {
			t.Errorf("error = %q", res.Error)
		}

		// A failed ownership check leaves the code redeemable.
		dc, _ := repo.Get(ctx, code)
		if dc.Used {
			t.Error("code must stay unused after failed ownership check")
		}
		if after, _ := svc.Redeem(ctx, code, "user_1"); !after.Valid {
			t.Errorf("owner redemption after failed attempt: %q", after.Error)
		}
	})

	t.Run("course exam code has no owner restriction", func(t *testing.T) {
		svc, _ := newDiscountFixture(t)
		code, _ := svc.GenerateCourseCode(ctx, "user_1", 2, 10)

		res, err := svc.Redeem(ctx, code, "user_2")
		if err != nil {
			t.Fatalf("redeem: %v", err)
		}
		if !res.Valid {
			t.Fatalf("course code redemption by non-owner failed: %q", res.Error)
		}
	})

	t.Run("expired code", func(t *testing.T) {
		svc, _ := newDiscountFixture(t)
		code, _ := svc.GenerateCode(ctx, "user_1", 15)

		svc.now = func() time.Time { return time.Now().Add(31 * 24 * time.Hour) }
		res, err := svc.Redeem(ctx, code, "user_1")
		if err != nil {
			t.Fatalf("redeem: %v", err)
		}
		if res.Valid {
			t.Fatal("expired code must not redeem")
		}
		if res.Error != "Código expirado" {
			t.Errorf("error = %q", res.Error)
		}
	})
}

func TestRedeemConcurrentSingleUse(t *testing.T) {
	ctx := context.Background()
	svc, repo := newDiscountFixture(t)
	code, err := svc.GenerateCode(ctx, "user_1", 15)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	const attempts = 32
	results := make([]model.ValidationResult, attempts)
	errs := make([]error, attempts)

	var start, done sync.WaitGroup
	start.Add(1)
	done.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(i int) {
			defer done.Done()
			start.Wait()
			results[i], errs[i] = svc.Redeem(ctx, code, "user_1")
		}(i)
	}
	start.Done()
	done.Wait()

	redeemed := 0
	for i := 0; i < attempts; i++ {
		if errs[i] != nil {
			t.Fatalf("redeem %d: %v", i, errs[i])
		}
		if results[i].Valid {
			redeemed++
		} else if results[i].Error != "Código ya utilizado" {
			t.Errorf("redeem %d: error = %q", i, results[i].Error)
		}
	}
	if redeemed != 1 {
		t.Fatalf("redeemed %d times, want exactly 1", redeemed)
	}

	dc, err := repo.Get(ctx, code)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !dc.Used || dc.UsedAt == nil || dc.UsedBy != "user_1" {
		t.Errorf("record not marked used exactly once: %+v", dc)
	}
}

func TestUserDiscounts(t *testing.T) {
	ctx := context.Background()

	t.Run("no result", func(t *testing.T) {
		svc, _ := newDiscountFixture(t)
		discounts, err := svc.UserDiscounts(ctx, "user_1")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(discounts) != 0 {
			t.Errorf("expected empty list, got %d", len(discounts))
		}
	})

	t.Run("status transitions", func(t *testing.T) {
		mem := store.NewMemory()
		discountRepo := repository.NewDiscountRepository(mem)
		resultRepo := repository.NewResultRepository(mem)
		locks := store.NewKeyMutex()
		svc := NewDiscountService(discountRepo, resultRepo, locks, 30*24*time.Hour, zerolog.Nop())
		results := NewResultService(resultRepo, repository.NewCourseResultRepository(mem), repository.NewDismissalRepository(mem), svc, locks, zerolog.Nop())

		saved := results.SaveExamResult(ctx, "user_1", model.ExamAttempt{Score: 16, Discount: 15})
		if !saved.Success {
			t.Fatalf("save failed: %q", saved.Error)
		}

		discounts, err := svc.UserDiscounts(ctx, "user_1")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(discounts) != 1 {
			t.Fatalf("expected 1 discount, got %d", len(discounts))
		}
		if discounts[0].Status != model.DiscountStatusActive {
			t.Errorf("status = %q, want Activo", discounts[0].Status)
		}

		if res, _ := svc.Redeem(ctx, saved.DiscountCode, "user_1"); !res.Valid {
			t.Fatalf("redeem failed: %q", res.Error)
		}
		discounts, _ = svc.UserDiscounts(ctx, "user_1")
		if discounts[0].Status != model.DiscountStatusUsed {
			t.Errorf("status = %q, want Usado", discounts[0].Status)
		}
	})

	t.Run("expired status", func(t *testing.T) {
		mem := store.NewMemory()
		discountRepo := repository.NewDiscountRepository(mem)
		resultRepo := repository.NewResultRepository(mem)
		locks := store.NewKeyMutex()
		svc := NewDiscountService(discountRepo, resultRepo, locks, 30*24*time.Hour, zerolog.Nop())
		results := NewResultService(resultRepo, repository.NewCourseResultRepository(mem), repository.NewDismissalRepository(mem), svc, locks, zerolog.Nop())

		if saved := results.SaveExamResult(ctx, "user_1", model.ExamAttempt{Score: 16, Discount: 15}); !saved.Success {
			t.Fatalf("save failed: %q", saved.Error)
		}

		svc.now = func() time.Time { return time.Now().Add(31 * 24 * time.Hour) }
		discounts, err := svc.UserDiscounts(ctx, "user_1")
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if discounts[0].Status != model.DiscountStatusExpired {
			t.Errorf("status = %q, want Expirado", discounts[0].Status)
		}
	})
}
