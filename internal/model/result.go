package model

import "time"

// BonusScoreThreshold is the initial-exam score at or above which the fixed
// loyalty bonus is granted.
const (
	BonusScoreThreshold = 15
	BonusPointsValue    = 5
)

// ExamResult is a user's initial placement exam result. At most one live
// value exists per user; a re-attempt overwrites the previous one.
type ExamResult struct {
	ID               string    `json:"id"`
	UserID           string    `json:"userId"`
	Score            int       `json:"score"`
	Discount         int       `json:"discount"`
	DiscountCode     string    `json:"discountCode,omitempty"`
	BonusPoints      int       `json:"bonusPoints,omitempty"`
	CorrectAnswers   int       `json:"correctAnswers,omitempty"`
	TotalQuestions   int       `json:"totalQuestions,omitempty"`
	TimeSpentSeconds int       `json:"timeSpentSeconds,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
}

// CourseExamResult is one attempt at a course exam. Attempts are append-only
// and never mutated after creation except to attach a discount code.
type CourseExamResult struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	CourseID     int       `json:"courseId"`
	ExamID       string    `json:"examId"`
	Score        int       `json:"score"`
	Discount     int       `json:"discount"`
	DiscountCode string    `json:"discountCode,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ExamAttempt is the scored payload the exam-taking UI produces when a user
// finishes an exam. Only the named fields are accepted; unknown metadata is
// not carried through into stored results.
type ExamAttempt struct {
	Score            int `json:"score"`
	Discount         int `json:"discount"`
	CorrectAnswers   int `json:"correctAnswers,omitempty"`
	TotalQuestions   int `json:"totalQuestions,omitempty"`
	TimeSpentSeconds int `json:"timeSpentSeconds,omitempty"`
}

// CourseExamAttempt is the scored payload for a course exam attempt.
type CourseExamAttempt struct {
	ExamID   string
	Score    int
	Discount int
}

// SaveResult is the value-shaped outcome of persisting an exam result.
// Infrastructure failures are reported through Error, never raised.
type SaveResult struct {
	Success      bool   `json:"success"`
	DiscountCode string `json:"discountCode,omitempty"`
	BonusPoints  int    `json:"bonusPoints,omitempty"`
	Error        string `json:"error,omitempty"`
}

// SaveExamResultRequest is the HTTP payload for saving an initial exam result.
type SaveExamResultRequest struct {
	Score            int `json:"score" binding:"min=0"`
	Discount         int `json:"discount" binding:"min=0,max=100"`
	CorrectAnswers   int `json:"correctAnswers" binding:"omitempty,min=0"`
	TotalQuestions   int `json:"totalQuestions" binding:"omitempty,min=0"`
	TimeSpentSeconds int `json:"timeSpentSeconds" binding:"omitempty,min=0"`
}

// SaveCourseExamResultRequest is the HTTP payload for saving a course exam
// attempt.
type SaveCourseExamResultRequest struct {
	ExamID   string `json:"examId" binding:"required,min=1,max=100"`
	Score    int    `json:"score" binding:"min=0"`
	Discount int    `json:"discount" binding:"min=0,max=100"`
}

// PendingResultRequest captures a guest's exam result until they authenticate.
type PendingResultRequest struct {
	SessionID        string `json:"sessionId" binding:"required,min=8,max=100"`
	Score            int    `json:"score" binding:"min=0"`
	Discount         int    `json:"discount" binding:"min=0,max=100"`
	CorrectAnswers   int    `json:"correctAnswers" binding:"omitempty,min=0"`
	TotalQuestions   int    `json:"totalQuestions" binding:"omitempty,min=0"`
	TimeSpentSeconds int    `json:"timeSpentSeconds" binding:"omitempty,min=0"`
}

// ClaimPendingResultRequest transfers a pending guest result to the
// authenticated user.
type ClaimPendingResultRequest struct {
	SessionID string `json:"sessionId" binding:"required,min=8,max=100"`
}
