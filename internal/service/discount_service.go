package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/sinapsiscode/cursos-exam-backend/internal/config"
	"github.com/sinapsiscode/cursos-exam-backend/internal/model"
	"github.com/sinapsiscode/cursos-exam-backend/internal/repository"
	"github.com/sinapsiscode/cursos-exam-backend/internal/response"
	"github.com/sinapsiscode/cursos-exam-backend/internal/store"
)

// Domain errors
var (
	ErrCodeCollision = errors.New("could not mint a unique discount code")
)

const (
	codePrefixInitial = "EXAM"
	codePrefixCourse  = "COURSE"
	codeSuffixLen     = 6
	codeMintRetries   = 5
	codeCharset       = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// DiscountService owns the discount code ledger. It is the only component
// allowed to mutate a code's used/usedAt/usedBy fields.
type DiscountService struct {
	discountRepo *repository.DiscountRepository
	resultRepo   *repository.ResultRepository
	locks        *store.KeyMutex
	codeTTL      time.Duration
	log          zerolog.Logger
	now          func() time.Time
}

// NewDiscountService creates a new DiscountService.
func NewDiscountService(
	discountRepo *repository.DiscountRepository,
	resultRepo *repository.ResultRepository,
	locks *store.KeyMutex,
	codeTTL time.Duration,
	log zerolog.Logger,
) *DiscountService {
	return &DiscountService{
		discountRepo: discountRepo,
		resultRepo:   resultRepo,
		locks:        locks,
		codeTTL:      codeTTL,
		log:          log.With().Str("component", "discount_service").Logger(),
		now:          time.Now,
	}
}

// GenerateCode mints an initial-exam code of the form
// EXAM<discount><6 base36 uppercase chars> owned by userID.
func (s *DiscountService) GenerateCode(ctx context.Context, userID string, discount int) (string, error) {
	return s.mint(ctx, codePrefixInitial, model.DiscountCode{
		UserID:   userID,
		Discount: discount,
		Type:     model.DiscountTypeInitialExam,
	})
}

// GenerateCourseCode mints a course-exam code of the form
// COURSE<discount><6 base36 uppercase chars>.
func (s *DiscountService) GenerateCourseCode(ctx context.Context, userID string, courseID, discount int) (string, error) {
	return s.mint(ctx, codePrefixCourse, model.DiscountCode{
		UserID:   userID,
		CourseID: &courseID,
		Discount: discount,
		Type:     model.DiscountTypeCourseExam,
	})
}

// mint inserts a new ledger entry under a fresh code, retrying on the
// (unlikely) suffix collision.
func (s *DiscountService) mint(ctx context.Context, prefix string, dc model.DiscountCode) (string, error) {
	unlock := s.locks.Lock(config.StoreKey.DiscountCodes())
	defer unlock()

	for i := 0; i < codeMintRetries; i++ {
		suffix, err := randomSuffix(codeSuffixLen)
		if err != nil {
			return "", fmt.Errorf("random suffix: %w", err)
		}
		code := prefix + strconv.Itoa(dc.Discount) + suffix

		existing, err := s.discountRepo.Get(ctx, code)
		if err != nil {
			return "", err
		}
		if existing != nil {
			s.log.Warn().Str("code", code).Msg("Discount code collision, retrying")
			continue
		}

		now := s.now()
		dc.Code = code
		dc.Used = false
		dc.CreatedAt = now
		dc.ExpiresAt = now.Add(s.codeTTL)

		if err := s.discountRepo.Put(ctx, dc); err != nil {
			return "", err
		}

		s.log.Info().
			Str("code", code).
			Str("user_id", dc.UserID).
			Int("discount", dc.Discount).
			Msg("Discount code minted")
		return code, nil
	}

	return "", ErrCodeCollision
}

// Validate checks a code and reports the outcome as a value. Precedence is
// fixed: unknown code, then already used, then expired. A code that is both
// used and expired reports used.
func (s *DiscountService) Validate(ctx context.Context, code string) (model.ValidationResult, error) {
	dc, err := s.discountRepo.Get(ctx, code)
	if err != nil {
		return model.ValidationResult{}, err
	}
	if res := s.evaluate(dc); res != nil {
		return *res, nil
	}

	return model.ValidationResult{
		Valid:    true,
		Discount: dc.Discount,
		Type:     dc.Type,
	}, nil
}

// Redeem marks a code as used by userID. The whole read-validate-write cycle
// runs under the ledger key lock so two concurrent redemptions cannot both
// observe an unused code. Initial-exam codes are redeemable only by their
// owner; course-exam codes carry no ownership restriction.
func (s *DiscountService) Redeem(ctx context.Context, code, userID string) (model.ValidationResult, error) {
	unlock := s.locks.Lock(config.StoreKey.DiscountCodes())
	defer unlock()

	dc, err := s.discountRepo.Get(ctx, code)
	if err != nil {
		return model.ValidationResult{}, err
	}
	if res := s.evaluate(dc); res != nil {
		return *res, nil
	}

	if dc.Type == model.DiscountTypeInitialExam && dc.UserID != userID {
		return model.ValidationResult{
			Valid: false,
			Error: response.GetMessage(response.ErrDiscountCodeNotOwned),
		}, nil
	}

	now := s.now()
	dc.Used = true
	dc.UsedAt = &now
	dc.UsedBy = userID
	if err := s.discountRepo.Put(ctx, *dc); err != nil {
		return model.ValidationResult{}, err
	}

	s.log.Info().
		Str("code", code).
		Str("used_by", userID).
		Int("discount", dc.Discount).
		Msg("Discount code redeemed")

	return model.ValidationResult{
		Valid:    true,
		Discount: dc.Discount,
		Message:  fmt.Sprintf("Descuento del %d%% aplicado exitosamente", dc.Discount),
	}, nil
}

// UserDiscounts lists a user's discounts for display. Today the only source
// is the user's initial-exam code; the result shape is designed to absorb
// more sources without changing.
func (s *DiscountService) UserDiscounts(ctx context.Context, userID string) ([]model.DiscountDisplay, error) {
	result, err := s.resultRepo.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	discounts := []model.DiscountDisplay{}
	if result == nil || result.DiscountCode == "" {
		return discounts, nil
	}

	dc, err := s.discountRepo.Get(ctx, result.DiscountCode)
	if err != nil {
		return nil, err
	}
	if dc == nil {
		return discounts, nil
	}

	discounts = append(discounts, model.DiscountDisplay{
		Code:      dc.Code,
		Discount:  dc.Discount,
		Type:      dc.Type,
		Used:      dc.Used,
		ExpiresAt: dc.ExpiresAt,
		Status:    s.status(dc),
	})
	return discounts, nil
}

// evaluate returns the failure result for a code, or nil when the code is
// still redeemable.
func (s *DiscountService) evaluate(dc *model.DiscountCode) *model.ValidationResult {
	switch {
	case dc == nil:
		return &model.ValidationResult{Valid: false, Error: response.GetMessage(response.ErrDiscountCodeInvalid)}
	case dc.Used:
		return &model.ValidationResult{Valid: false, Error: response.GetMessage(response.ErrDiscountCodeUsed)}
	case s.now().After(dc.ExpiresAt):
		return &model.ValidationResult{Valid: false, Error: response.GetMessage(response.ErrDiscountCodeExpired)}
	}
	return nil
}

// status computes the display status at call time. Used wins over expired,
// consistent with the validation precedence.
func (s *DiscountService) status(dc *model.DiscountCode) model.DiscountStatus {
	switch {
	case dc.Used:
		return model.DiscountStatusUsed
	case s.now().After(dc.ExpiresAt):
		return model.DiscountStatusExpired
	}
	return model.DiscountStatusActive
}

// randomSuffix returns n cryptographically random base36 uppercase chars.
// Bytes at or above the largest multiple of len(codeCharset) are discarded
// so every char is equally likely.
func randomSuffix(n int) (string, error) {
	const max = byte(256 - 256%len(codeCharset))
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= max {
				continue
			}
			out = append(out, codeCharset[int(b)%len(codeCharset)])
			if len(out) == n {
				break
			}
		}
	}
	return string(out), nil
}
