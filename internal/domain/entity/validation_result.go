package entity

// ValidationResult carries business-rule outcomes. Errors block the
// operation, warnings do not. It is never persisted.
type ValidationResult struct {
	Errors   []string
	Warnings []string
	Metadata map[string]interface{}
}

func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Errors:   []string{},
		Warnings: []string{},
		Metadata: map[string]interface{}{},
	}
}

func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

func (r *ValidationResult) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
}

func (r *ValidationResult) AddWarning(msg string) {
	r.Warnings = append(r.Warnings, msg)
}

// Merge appends other's errors and warnings. Metadata is left alone so the
// caller's own keys win.
func (r *ValidationResult) Merge(other *ValidationResult) {
	if other == nil {
		return
	}
	r.Errors = append(r.Errors, other.Errors...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}
