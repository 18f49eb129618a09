package config

// StoreKeyStruct builds the document-store keys used by the exam subsystem.
// Each logical entity maps to exactly one key holding one JSON document.
type StoreKeyStruct struct{}

func NewStoreKeyStruct() *StoreKeyStruct {
	return &StoreKeyStruct{}
}

// ExamResults returns the key for the per-user initial exam results document.
func (r *StoreKeyStruct) ExamResults() string {
	return "exam_results"
}

// DiscountCodes returns the key for the discount code ledger document.
func (r *StoreKeyStruct) DiscountCodes() string {
	return "discount_codes"
}

// CourseExamResults returns the key for the append-only course exam results document.
func (r *StoreKeyStruct) CourseExamResults() string {
	return "course_exam_results"
}

// CourseExams returns the key for the exam catalog document.
func (r *StoreKeyStruct) CourseExams() string {
	return "course_exams"
}

// ExamQuestions returns the key for the legacy flat placement question document.
func (r *StoreKeyStruct) ExamQuestions() string {
	return "exam_questions"
}

// PendingExamResults returns the key for the transient guest results document.
func (r *StoreKeyStruct) PendingExamResults() string {
	return "pending_exam_results"
}

// ExamPromptDismissals returns the key for the per-user prompt dismissal flags.
func (r *StoreKeyStruct) ExamPromptDismissals() string {
	return "exam_prompt_dismissals"
}

var StoreKey = NewStoreKeyStruct()
