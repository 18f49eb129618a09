package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/sinapsiscode/cursos-exam-backend/internal/config"
	"github.com/sinapsiscode/cursos-exam-backend/internal/model"
	"github.com/sinapsiscode/cursos-exam-backend/internal/repository"
	"github.com/sinapsiscode/cursos-exam-backend/internal/store"
)

// PendingService holds exam results of unauthenticated visitors until they
// sign in, then relays them to the ResultService.
type PendingService struct {
	pendingRepo *repository.PendingRepository
	results     *ResultService
	locks       *store.KeyMutex
	log         zerolog.Logger
}

// NewPendingService creates a new PendingService.
func NewPendingService(pendingRepo *repository.PendingRepository, results *ResultService, locks *store.KeyMutex, log zerolog.Logger) *PendingService {
	return &PendingService{
		pendingRepo: pendingRepo,
		results:     results,
		locks:       locks,
		log:         log.With().Str("component", "pending_service").Logger(),
	}
}

// SavePending stores a guest attempt keyed by the visitor's session id,
// replacing any previous pending attempt for that session.
func (s *PendingService) SavePending(ctx context.Context, sessionID string, attempt model.ExamAttempt) error {
	unlock := s.locks.Lock(config.StoreKey.PendingExamResults())
	defer unlock()

	if err := s.pendingRepo.Put(ctx, sessionID, attempt); err != nil {
		return err
	}
	s.log.Info().Str("session_id", sessionID).Int("score", attempt.Score).Msg("Pending exam result stored")
	return nil
}

// PendingResult returns the attempt held for a session, or nil.
func (s *PendingService) PendingResult(ctx context.Context, sessionID string) (*model.ExamAttempt, error) {
	return s.pendingRepo.Get(ctx, sessionID)
}

// ApplyPendingResult transfers a session's pending attempt to userID. A nil
// result means nothing was pending, as opposed to a failed save, which
// returns the save outcome with Success=false and leaves the slot intact
// for retry. The slot is cleared only after the save succeeds.
func (s *PendingService) ApplyPendingResult(ctx context.Context, sessionID, userID string) (*model.SaveResult, error) {
	unlock := s.locks.Lock(config.StoreKey.PendingExamResults())
	defer unlock()

	pending, err := s.pendingRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if pending == nil {
		return nil, nil
	}

	result := s.results.SaveExamResult(ctx, userID, *pending)
	if result.Success {
		if err := s.pendingRepo.Delete(ctx, sessionID); err != nil {
			// The result is already saved; a stale pending slot is re-applied
			// harmlessly on the next claim, which overwrites with same data.
			s.log.Warn().Err(err).Str("session_id", sessionID).Msg("Failed to clear pending slot")
		}
		s.log.Info().Str("session_id", sessionID).Str("user_id", userID).Msg("Pending exam result applied")
	}
	return &result, nil
}
