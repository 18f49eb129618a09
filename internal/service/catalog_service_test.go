package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/sinapsiscode/cursos-exam-backend/internal/config"
	"github.com/sinapsiscode/cursos-exam-backend/internal/model"
	"github.com/sinapsiscode/cursos-exam-backend/internal/repository"
	"github.com/sinapsiscode/cursos-exam-backend/internal/store"
)

func newCatalogFixture(t *testing.T, mem *store.Memory) *CatalogService {
	t.Helper()
	return NewCatalogService(repository.NewExamRepository(mem), store.NewKeyMutex(), zerolog.Nop())
}

func TestEnsureSeeded(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds an empty store", func(t *testing.T) {
		mem := store.NewMemory()
		svc := newCatalogFixture(t, mem)

		if err := svc.EnsureSeeded(ctx); err != nil {
			t.Fatalf("seed: %v", err)
		}

		exams, err := svc.ListExams(ctx)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(exams) == 0 {
			t.Fatal("expected default exams after seeding")
		}

		var initial *model.ExamDefinition
		for i := range exams {
			if exams[i].Type == model.ExamTypeInitial {
				initial = &exams[i]
			}
		}
		if initial == nil {
			t.Fatal("defaults must include an initial exam")
		}
	})

	t.Run("idempotent over an emptied catalog", func(t *testing.T) {
		mem := store.NewMemory()
		svc := newCatalogFixture(t, mem)

		if err := svc.EnsureSeeded(ctx); err != nil {
			t.Fatalf("seed: %v", err)
		}
		if err := svc.ReplaceExams(ctx, []model.ExamDefinition{}); err != nil {
			t.Fatalf("replace: %v", err)
		}
		if err := svc.EnsureSeeded(ctx); err != nil {
			t.Fatalf("reseed: %v", err)
		}

		exams, _ := svc.ListExams(ctx)
		if len(exams) != 0 {
			t.Errorf("an admin-emptied catalog must stay empty, got %d exams", len(exams))
		}
	})

	t.Run("corrupt catalog surfaces the error", func(t *testing.T) {
		mem := store.NewMemory()
		_ = mem.Put(ctx, config.StoreKey.CourseExams(), json.RawMessage(`{not json`))
		svc := newCatalogFixture(t, mem)

		err := svc.EnsureSeeded(ctx)
		var ce *store.CorruptError
		if !errors.As(err, &ce) {
			t.Fatalf("expected CorruptError, got %v", err)
		}
	})
}

func TestListExamsUnseeded(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogFixture(t, store.NewMemory())

	exams, err := svc.ListExams(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if exams == nil || len(exams) != 0 {
		t.Errorf("expected empty slice, got %v", exams)
	}
}

func TestExamByCourse(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	svc := newCatalogFixture(t, mem)

	course1 := 1
	course2 := 2
	catalog := []model.ExamDefinition{
		{ID: "inactive", Title: "Inactive", Type: model.ExamTypeCourse, CourseID: &course1, IsActive: false},
		{ID: "active", Title: "Active", Type: model.ExamTypeCourse, CourseID: &course1, IsActive: true},
		{ID: "other", Title: "Other", Type: model.ExamTypeCourse, CourseID: &course2, IsActive: true},
	}
	if err := svc.ReplaceExams(ctx, catalog); err != nil {
		t.Fatalf("replace: %v", err)
	}

	exam, err := svc.ExamByCourse(ctx, 1)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if exam == nil || exam.ID != "active" {
		t.Errorf("exam = %+v, want the active course-1 exam", exam)
	}

	missing, err := svc.ExamByCourse(ctx, 99)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown course, got %+v", missing)
	}
}

func TestExamByID(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogFixture(t, store.NewMemory())

	if err := svc.EnsureSeeded(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	exams, _ := svc.ListExams(ctx)

	found, err := svc.ExamByID(ctx, exams[0].ID)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if found == nil || found.ID != exams[0].ID {
		t.Errorf("found = %+v", found)
	}

	missing, _ := svc.ExamByID(ctx, "nope")
	if missing != nil {
		t.Errorf("expected nil, got %+v", missing)
	}
}

func TestPlacementQuestions(t *testing.T) {
	ctx := context.Background()

	t.Run("prefers the active initial exam", func(t *testing.T) {
		mem := store.NewMemory()
		svc := newCatalogFixture(t, mem)
		if err := svc.EnsureSeeded(ctx); err != nil {
			t.Fatalf("seed: %v", err)
		}

		questions, err := svc.PlacementQuestions(ctx)
		if err != nil {
			t.Fatalf("questions: %v", err)
		}
		if len(questions) == 0 {
			t.Fatal("expected questions from the seeded initial exam")
		}
	})

	t.Run("falls back to the legacy document", func(t *testing.T) {
		mem := store.NewMemory()
		svc := newCatalogFixture(t, mem)

		// Catalog without an initial exam, plus a legacy question set.
		if err := svc.ReplaceExams(ctx, []model.ExamDefinition{}); err != nil {
			t.Fatalf("replace: %v", err)
		}
		legacy := map[string]interface{}{
			"schemaVersion": 1,
			"questions": []model.Question{
				{ID: "q1", Question: "¿Qué es la flotación?", Options: []string{"a", "b", "c", "d"}, Correct: 0, Area: "metalurgia"},
			},
		}
		raw, _ := json.Marshal(legacy)
		_ = mem.Put(ctx, config.StoreKey.ExamQuestions(), raw)

		questions, err := svc.PlacementQuestions(ctx)
		if err != nil {
			t.Fatalf("questions: %v", err)
		}
		if len(questions) != 1 || questions[0].Question != "¿Qué es la flotación?" {
			t.Errorf("questions = %+v", questions)
		}
	})

	t.Run("falls back to built-in defaults", func(t *testing.T) {
		mem := store.NewMemory()
		svc := newCatalogFixture(t, mem)
		if err := svc.ReplaceExams(ctx, []model.ExamDefinition{}); err != nil {
			t.Fatalf("replace: %v", err)
		}

		questions, err := svc.PlacementQuestions(ctx)
		if err != nil {
			t.Fatalf("questions: %v", err)
		}
		if len(questions) != 10 {
			t.Errorf("expected the 10 built-in questions, got %d", len(questions))
		}
	})
}

func TestReplaceExams(t *testing.T) {
	ctx := context.Background()
	svc := newCatalogFixture(t, store.NewMemory())

	course := 7
	if err := svc.ReplaceExams(ctx, []model.ExamDefinition{
		{ID: "x", Title: "X", Type: model.ExamTypeCourse, CourseID: &course, IsActive: true},
	}); err != nil {
		t.Fatalf("replace: %v", err)
	}

	exams, _ := svc.ListExams(ctx)
	if len(exams) != 1 || exams[0].ID != "x" {
		t.Errorf("exams = %+v", exams)
	}
}
