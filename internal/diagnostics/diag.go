package diagnostics

import "fmt"

type Severity string

const (
	Info Severity = "info"
	Warn Severity = "warning"
	Err  Severity = "error"
)

func (s Severity) rank() int {
	switch s {
	case Err:
		return 2
	case Warn:
		return 1
	}
	return 0
}

type Diagnostic struct {
	Severity       Severity       `json:"severity"`
	Code           string         `json:"code"`
	Summary        string         `json:"summary"`
	Location       string         `json:"location,omitempty"`
	Detail         string         `json:"detail,omitempty"`
	LikelyCauses   []string       `json:"likely_causes,omitempty"`
	SuggestedFixes []string       `json:"suggested_fixes,omitempty"`
	Evidence       map[string]any `json:"evidence,omitempty"`
}

func (d Diagnostic) String() string {
	if d.Location == "" {
		return fmt.Sprintf("%s %s: %s", d.Severity, d.Code, d.Summary)
	}
	return fmt.Sprintf("%s %s at %s: %s", d.Severity, d.Code, d.Location, d.Summary)
}

// List collects diagnostics in the order they were found.
type List []Diagnostic

func (l *List) Add(d Diagnostic) { *l = append(*l, d) }

// Worst returns the highest severity in the list, or Info when empty.
func (l List) Worst() Severity {
	worst := Info
	for _, d := range l {
		if d.Severity.rank() > worst.rank() {
			worst = d.Severity
		}
	}
	return worst
}

// Codes returns each diagnostic's code, for quick assertions and logs.
func (l List) Codes() []string {
	out := make([]string, len(l))
	for i, d := range l {
		out[i] = d.Code
	}
	return out
}
