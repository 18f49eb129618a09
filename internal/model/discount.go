package model

import "time"

// DiscountType identifies which exam flow minted a code.
type DiscountType string

const (
	DiscountTypeInitialExam DiscountType = "initial_exam"
	DiscountTypeCourseExam  DiscountType = "course_exam"
)

// DiscountStatus is the display status of a code, computed at read time.
type DiscountStatus string

const (
	DiscountStatusActive  DiscountStatus = "Activo"
	DiscountStatusUsed    DiscountStatus = "Usado"
	DiscountStatusExpired DiscountStatus = "Expirado"
)

// DiscountCode is one entry in the code ledger, keyed by the code string.
// Entries are never deleted; Used transitions false→true exactly once.
type DiscountCode struct {
	Code      string       `json:"code"`
	UserID    string       `json:"userId"`
	CourseID  *int         `json:"courseId,omitempty"`
	Discount  int          `json:"discount"`
	Type      DiscountType `json:"type"`
	Used      bool         `json:"used"`
	CreatedAt time.Time    `json:"createdAt"`
	ExpiresAt time.Time    `json:"expiresAt"`
	UsedAt    *time.Time   `json:"usedAt,omitempty"`
	UsedBy    string       `json:"usedBy,omitempty"`
}

// DiscountDisplay is one row of a user's discount listing.
type DiscountDisplay struct {
	Code      string         `json:"code"`
	Discount  int            `json:"discount"`
	Type      DiscountType   `json:"type"`
	Used      bool           `json:"used"`
	ExpiresAt time.Time      `json:"expiresAt"`
	Status    DiscountStatus `json:"status"`
}

// ValidationResult is the value-shaped outcome of validating or redeeming a
// discount code. Business-rule failures populate Error; they are never
// returned as Go errors.
type ValidationResult struct {
	Valid    bool         `json:"valid"`
	Discount int          `json:"discount,omitempty"`
	Type     DiscountType `json:"type,omitempty"`
	Message  string       `json:"message,omitempty"`
	Error    string       `json:"error,omitempty"`
}

// ValidateCodeRequest is the HTTP payload for code validation and redemption.
type ValidateCodeRequest struct {
	Code string `json:"code" binding:"required,discount_code"`
}
