package errors

import (
	"errors"

	"github.com/mbcrawfo/vibefun/internal/ast"
)

// Report is the canonical structured diagnostic for vibefun.
// All error builders return *Report, which can be wrapped as ReportError.
type Report struct {
	Schema  string         `json:"schema"`        // Always "vibefun.error/v1"
	Code    string         `json:"code"`          // Error code (TC002, OVL003, ...)
	Phase   string         `json:"phase"`         // Phase: "env", "typecheck"
	Message string         `json:"message"`       // Human-readable message
	Pos     *ast.Pos       `json:"pos,omitempty"` // Source location (optional)
	Data    map[string]any `json:"data,omitempty"`
}

// Schema is the current report schema identifier
const Schema = "vibefun.error/v1"

// New creates a report with the standard schema
func New(code, phase, message string) *Report {
	return &Report{
		Schema:  Schema,
		Code:    code,
		Phase:   phase,
		Message: message,
	}
}

// At sets the report's position and returns the report
func (r *Report) At(pos ast.Pos) *Report {
	if !pos.IsZero() {
		r.Pos = &pos
	}
	return r
}

// With attaches one structured data entry and returns the report
func (r *Report) With(key string, value any) *Report {
	if r.Data == nil {
		r.Data = make(map[string]any)
	}
	r.Data[key] = value
	return r
}

// ReportError wraps a Report as an error so structured reports survive
// errors.As unwrapping
type ReportError struct {
	Rep *Report
}

// Error implements the error interface
func (e *ReportError) Error() string {
	if e.Rep == nil {
		return "unknown error"
	}
	if e.Rep.Pos != nil {
		return e.Rep.Pos.String() + ": " + e.Rep.Code + ": " + e.Rep.Message
	}
	return e.Rep.Code + ": " + e.Rep.Message
}

// AsReport attempts to extract a Report from an error chain.
// Returns the Report and true if found, nil and false otherwise.
func AsReport(err error) (*Report, bool) {
	var re *ReportError
	if errors.As(err, &re) {
		return re.Rep, true
	}
	return nil, false
}

// WrapReport wraps a Report as a ReportError
func WrapReport(r *Report) error {
	if r == nil {
		return nil
	}
	return &ReportError{Rep: r}
}
