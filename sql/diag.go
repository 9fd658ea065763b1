package sql

import "fmt"

// Phase names the compiler phase that produced a diagnostic.
type Phase int

const (
	PhaseLexical Phase = iota
	PhaseSyntactic
	PhaseSemantic
)

func (p Phase) String() string {
	switch p {
	case PhaseLexical:
		return "lexical"
	case PhaseSyntactic:
		return "syntactic"
	case PhaseSemantic:
		return "semantic"
	}
	return "unknown"
}

// Severity classifies a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is one reported finding. Diagnostics are plain data:
// the pipeline returns them to the caller and never logs or exits.
// Pos is nil when no source position applies.
type Diagnostic struct {
	Phase    Phase
	Severity Severity
	Message  string
	Pos      *Position
}

func (d Diagnostic) String() string {
	if d.Pos != nil {
		return fmt.Sprintf("%s %s at %s: %s", d.Phase, d.Severity, d.Pos, d.Message)
	}
	return fmt.Sprintf("%s %s: %s", d.Phase, d.Severity, d.Message)
}

// Errorf builds an error diagnostic for the given phase.
func Errorf(phase Phase, pos *Position, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Phase:    phase,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Pos:      pos,
	}
}
