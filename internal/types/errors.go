package types

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedRecord     = errors.New("malformed record")
	ErrUnknownRecordKind   = errors.New("unknown record kind")
	ErrPrecedenceViolation = errors.New("data element record precedes its leg schedule record")
)

// MalformedRecordError reports a line too short for its record kind.
type MalformedRecordError struct {
	Kind     RecordKind
	Width    int
	Required int
}

func (e *MalformedRecordError) Error() string {
	if e.Width == 0 {
		return fmt.Sprintf("%s: empty line", ErrMalformedRecord)
	}
	return fmt.Sprintf("%s: %s line has %d columns, need %d", ErrMalformedRecord, e.Kind, e.Width, e.Required)
}

func (e *MalformedRecordError) Unwrap() error { return ErrMalformedRecord }

// LineError ties a decode failure to its 0-based line number.
type LineError struct {
	Line int
	Kind RecordKind
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d (%s): %v", e.Line, e.Kind, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

// PrecedenceViolationError carries the identity of a data element record
// whose flight, variation or leg has not been created yet.
type PrecedenceViolationError struct {
	Carrier     string
	Flight      string
	IVI         string
	LegSequence string
	DEI         string

	// Missing names the level that was absent: "flight", "variation" or "leg".
	Missing string
}

func (e *PrecedenceViolationError) Error() string {
	return fmt.Sprintf("%s: %s missing for carrier=%s flight=%s ivi=%s leg=%s dei=%s",
		ErrPrecedenceViolation, e.Missing, e.Carrier, e.Flight, e.IVI, e.LegSequence, e.DEI)
}

func (e *PrecedenceViolationError) Unwrap() error { return ErrPrecedenceViolation }
