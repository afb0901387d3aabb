package layout

import (
	"fmt"
	"strings"
)

// Severity classifies an [Issue].
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Code identifies the check that produced an [Issue].
type Code string

const (
	CodeNoActiveFields  Code = "NO_ACTIVE_FIELDS"
	CodeInvalidSize     Code = "INVALID_SIZE"
	CodeInvalidStart    Code = "INVALID_START"
	CodeEndMismatch     Code = "END_MISMATCH"
	CodeRequiredMissing Code = "REQUIRED_MISSING"
	CodeTruncated       Code = "TRUNCATED"
	CodeNotFromOne      Code = "NOT_FROM_ONE"
	CodeGap             Code = "GAP"
	CodeOverlap         Code = "OVERLAP"
	CodeSummary         Code = "SUMMARY"
)

// Issue is one finding of [Validate].
type Issue struct {
	Severity Severity `json:"severity"`
	Code     Code     `json:"code"`
	Line     int      `json:"line,omitempty"`
	Field    string   `json:"field,omitempty"`
	Message  string   `json:"message"`
}

func (i Issue) String() string { return i.Message }

// Report is the outcome of validating a layout. Issues keep the order in
// which the checks produced them.
type Report struct {
	Errors      []Issue `json:"errors"`
	Warnings    []Issue `json:"warnings"`
	Infos       []Issue `json:"infos"`
	TotalFields int     `json:"total_fields"`
	TotalSize   int     `json:"total_size"`
}

func newReport() *Report {
	return &Report{Errors: []Issue{}, Warnings: []Issue{}, Infos: []Issue{}}
}

// Valid reports whether no errors were found. Warnings do not affect validity.
func (r *Report) Valid() bool { return len(r.Errors) == 0 }

// HasWarnings reports whether any warning was found.
func (r *Report) HasWarnings() bool { return len(r.Warnings) > 0 }

// Messages returns the messages of the given severity in order.
func (r *Report) Messages(sev Severity) []string {
	var issues []Issue
	switch sev {
	case SeverityError:
		issues = r.Errors
	case SeverityWarning:
		issues = r.Warnings
	case SeverityInfo:
		issues = r.Infos
	}
	out := make([]string, len(issues))
	for i, is := range issues {
		out[i] = is.Message
	}
	return out
}

// Status returns a one-line summary suitable for a status bar.
func (r *Report) Status() string {
	switch {
	case !r.Valid():
		return fmt.Sprintf("INVALID: %d error(s), %d warning(s)", len(r.Errors), len(r.Warnings))
	case r.HasWarnings():
		return fmt.Sprintf("OK with warnings: %d warning(s) | %d fields | %d bytes", len(r.Warnings), r.TotalFields, r.TotalSize)
	default:
		return fmt.Sprintf("OK: %d fields | %d bytes", r.TotalFields, r.TotalSize)
	}
}

// Text renders the report as sectioned plain text.
func (r *Report) Text() string {
	var b strings.Builder
	section := func(title string, issues []Issue) {
		if len(issues) == 0 {
			return
		}
		fmt.Fprintf(&b, "=== %s ===\n", title)
		for _, is := range issues {
			fmt.Fprintf(&b, "  - %s\n", is.Message)
		}
		b.WriteString("\n")
	}
	section("INFO", r.Infos)
	section("WARNINGS", r.Warnings)
	section("ERRORS", r.Errors)
	fmt.Fprintf(&b, "Total: %d fields | Layout size: %d bytes", r.TotalFields, r.TotalSize)
	return b.String()
}

func (r *Report) addError(code Code, line int, field, format string, args ...any) {
	r.Errors = append(r.Errors, issue(SeverityError, code, line, field, format, args...))
}

func (r *Report) addWarning(code Code, line int, field, format string, args ...any) {
	r.Warnings = append(r.Warnings, issue(SeverityWarning, code, line, field, format, args...))
}

func (r *Report) addInfo(code Code, format string, args ...any) {
	r.Infos = append(r.Infos, issue(SeverityInfo, code, 0, "", format, args...))
}

func issue(sev Severity, code Code, line int, field, format string, args ...any) Issue {
	return Issue{
		Severity: sev,
		Code:     code,
		Line:     line,
		Field:    field,
		Message:  fmt.Sprintf(format, args...),
	}
}
