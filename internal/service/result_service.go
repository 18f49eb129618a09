package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/sinapsiscode/cursos-exam-backend/internal/config"
	"github.com/sinapsiscode/cursos-exam-backend/internal/model"
	"github.com/sinapsiscode/cursos-exam-backend/internal/repository"
	"github.com/sinapsiscode/cursos-exam-backend/internal/response"
	"github.com/sinapsiscode/cursos-exam-backend/internal/store"
)

// ResultService records exam attempts: one overwritable initial result per
// user, append-only attempts per course. Persistence failures are converted
// to value-shaped results at this boundary; callers never see two failure
// channels.
type ResultService struct {
	resultRepo       *repository.ResultRepository
	courseResultRepo *repository.CourseResultRepository
	dismissalRepo    *repository.DismissalRepository
	discounts        *DiscountService
	locks            *store.KeyMutex
	log              zerolog.Logger
	now              func() time.Time
}

// NewResultService creates a new ResultService.
func NewResultService(
	resultRepo *repository.ResultRepository,
	courseResultRepo *repository.CourseResultRepository,
	dismissalRepo *repository.DismissalRepository,
	discounts *DiscountService,
	locks *store.KeyMutex,
	log zerolog.Logger,
) *ResultService {
	return &ResultService{
		resultRepo:       resultRepo,
		courseResultRepo: courseResultRepo,
		dismissalRepo:    dismissalRepo,
		discounts:        discounts,
		locks:            locks,
		log:              log.With().Str("component", "result_service").Logger(),
		now:              time.Now,
	}
}

// SaveExamResult persists a user's initial exam result, overwriting any
// previous attempt. When the attempt earned a discount, a fresh code is
// minted; codes of earlier attempts stay in the ledger untouched.
func (s *ResultService) SaveExamResult(ctx context.Context, userID string, attempt model.ExamAttempt) model.SaveResult {
	if userID == "" {
		return model.SaveResult{Success: false, Error: response.GetMessage(response.ErrInvalidPayload)}
	}

	unlock := s.locks.Lock(config.StoreKey.ExamResults())
	defer unlock()

	now := s.now()
	result := model.ExamResult{
		ID:               fmt.Sprintf("exam_%d", now.UnixMilli()),
		UserID:           userID,
		Score:            attempt.Score,
		Discount:         attempt.Discount,
		CorrectAnswers:   attempt.CorrectAnswers,
		TotalQuestions:   attempt.TotalQuestions,
		TimeSpentSeconds: attempt.TimeSpentSeconds,
		CreatedAt:        now,
	}

	if attempt.Discount > 0 {
		code, err := s.discounts.GenerateCode(ctx, userID, attempt.Discount)
		if err != nil {
			s.log.Error().Err(err).Str("user_id", userID).Msg("Failed to mint discount code")
			return model.SaveResult{Success: false, Error: response.GetMessage(response.ErrDiscountCodeMint)}
		}
		result.DiscountCode = code
	}

	if attempt.Score >= model.BonusScoreThreshold {
		result.BonusPoints = model.BonusPointsValue
	}

	if err := s.resultRepo.Put(ctx, userID, result); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Msg("Failed to save exam result")
		return model.SaveResult{Success: false, Error: response.GetMessage(response.ErrResultSaveFailed)}
	}

	s.log.Info().
		Str("user_id", userID).
		Int("score", attempt.Score).
		Int("discount", attempt.Discount).
		Msg("Initial exam result saved")

	return model.SaveResult{
		Success:      true,
		DiscountCode: result.DiscountCode,
		BonusPoints:  result.BonusPoints,
	}
}

// ExamPromptDismissed reports whether the user closed the placement exam
// banner. Dismissal is independent of completion: the UI hides the banner
// when either is true.
func (s *ResultService) ExamPromptDismissed(ctx context.Context, userID string) (bool, error) {
	return s.dismissalRepo.IsDismissed(ctx, userID)
}

// DismissExamPrompt records that the user closed the placement exam banner.
func (s *ResultService) DismissExamPrompt(ctx context.Context, userID string) error {
	unlock := s.locks.Lock(config.StoreKey.ExamPromptDismissals())
	defer unlock()

	return s.dismissalRepo.Dismiss(ctx, userID)
}

// HasCompletedInitialExam reports whether the user has an initial result.
func (s *ResultService) HasCompletedInitialExam(ctx context.Context, userID string) (bool, error) {
	result, err := s.resultRepo.Get(ctx, userID)
	if err != nil {
		return false, err
	}
	return result != nil, nil
}

// InitialExamResult returns the user's initial exam result, or nil.
func (s *ResultService) InitialExamResult(ctx context.Context, userID string) (*model.ExamResult, error) {
	return s.resultRepo.Get(ctx, userID)
}

// SaveCourseExamResult appends one course exam attempt. The attempt id embeds
// user, course, exam and timestamp so repeated attempts stay distinct.
func (s *ResultService) SaveCourseExamResult(ctx context.Context, userID string, courseID int, attempt model.CourseExamAttempt) model.SaveResult {
	if userID == "" {
		return model.SaveResult{Success: false, Error: response.GetMessage(response.ErrInvalidPayload)}
	}

	unlock := s.locks.Lock(config.StoreKey.CourseExamResults())
	defer unlock()

	now := s.now()
	result := model.CourseExamResult{
		ID:        fmt.Sprintf("%s_%d_%s_%d", userID, courseID, attempt.ExamID, now.UnixMilli()),
		UserID:    userID,
		CourseID:  courseID,
		ExamID:    attempt.ExamID,
		Score:     attempt.Score,
		Discount:  attempt.Discount,
		CreatedAt: now,
	}

	if attempt.Discount > 0 {
		code, err := s.discounts.GenerateCourseCode(ctx, userID, courseID, attempt.Discount)
		if err != nil {
			s.log.Error().Err(err).Str("user_id", userID).Int("course_id", courseID).Msg("Failed to mint course discount code")
			return model.SaveResult{Success: false, Error: response.GetMessage(response.ErrDiscountCodeMint)}
		}
		result.DiscountCode = code
	}

	if err := s.courseResultRepo.Append(ctx, result); err != nil {
		s.log.Error().Err(err).Str("user_id", userID).Int("course_id", courseID).Msg("Failed to save course exam result")
		return model.SaveResult{Success: false, Error: response.GetMessage(response.ErrResultSaveFailed)}
	}

	s.log.Info().
		Str("user_id", userID).
		Int("course_id", courseID).
		Str("exam_id", attempt.ExamID).
		Int("score", attempt.Score).
		Msg("Course exam result saved")

	return model.SaveResult{
		Success:      true,
		DiscountCode: result.DiscountCode,
	}
}

// BestCourseExamResult returns the user's attempt with the highest discount
// for a course. Ties keep the first attempt in insertion order.
func (s *ResultService) BestCourseExamResult(ctx context.Context, userID string, courseID int) (*model.CourseExamResult, error) {
	results, err := s.courseResultRepo.ListByUserCourse(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	best := results[0]
	for _, res := range results[1:] {
		if res.Discount > best.Discount {
			best = res
		}
	}
	return &best, nil
}
