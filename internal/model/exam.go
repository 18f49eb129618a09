package model

// ExamType distinguishes the one-time placement exam from per-course exams.
type ExamType string

const (
	ExamTypeInitial ExamType = "initial"
	ExamTypeCourse  ExamType = "course"
)

// DefaultQuestionPoints is the score value of a question that does not
// declare its own.
const DefaultQuestionPoints = 10

// Question is a single multiple-choice question with exactly four options.
// OptionImages runs parallel to Options; entries are nil when an option has
// no image.
type Question struct {
	ID            string    `json:"id"`
	Question      string    `json:"question"`
	QuestionImage string    `json:"questionImage,omitempty"`
	Options       []string  `json:"options"`
	OptionImages  []*string `json:"optionImages"`
	Correct       int       `json:"correct"`
	Area          string    `json:"area"`
	Points        int       `json:"points,omitempty"`
}

// PointValue returns the question's score value, applying the default when unset.
func (q Question) PointValue() int {
	if q.Points <= 0 {
		return DefaultQuestionPoints
	}
	return q.Points
}

// ExamDefinition describes an exam in the catalog. CourseID is nil for the
// initial placement exam.
type ExamDefinition struct {
	ID           string     `json:"id"`
	CourseID     *int       `json:"courseId"`
	Type         ExamType   `json:"type"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Duration     int        `json:"duration"`
	Attempts     int        `json:"attempts"`
	PassingScore int        `json:"passingScore"`
	IsActive     bool       `json:"isActive"`
	Questions    []Question `json:"questions"`
}

// ReplaceExamsRequest is the admin payload for replacing the exam catalog.
type ReplaceExamsRequest struct {
	Exams []ExamDefinitionRequest `json:"exams" binding:"required,min=1,dive"`
}

// ExamDefinitionRequest is a validated exam definition as submitted by the
// admin dashboard.
type ExamDefinitionRequest struct {
	ID           string            `json:"id" binding:"required,min=1,max=100"`
	CourseID     *int              `json:"courseId" binding:"omitempty,min=1"`
	Type         string            `json:"type" binding:"required,oneof=initial course"`
	Title        string            `json:"title" binding:"required,min=3,max=255"`
	Description  string            `json:"description" binding:"omitempty,max=2000"`
	Duration     int               `json:"duration" binding:"required,min=1,max=480"`
	Attempts     int               `json:"attempts" binding:"required,min=1,max=20"`
	PassingScore int               `json:"passingScore" binding:"min=0,max=100"`
	IsActive     bool              `json:"isActive"`
	Questions    []QuestionRequest `json:"questions" binding:"omitempty,dive"`
}

// QuestionRequest is a validated question as submitted by the admin dashboard.
type QuestionRequest struct {
	ID            string    `json:"id" binding:"required,min=1,max=100"`
	Question      string    `json:"question" binding:"required,min=1,max=2000"`
	QuestionImage string    `json:"questionImage" binding:"omitempty,url"`
	Options       []string  `json:"options" binding:"required,len=4,dive,required"`
	OptionImages  []*string `json:"optionImages" binding:"omitempty,len=4"`
	Correct       int       `json:"correct" binding:"min=0,max=3"`
	Area          string    `json:"area" binding:"required,min=1,max=100"`
	Points        int       `json:"points" binding:"omitempty,min=1,max=100"`
}
