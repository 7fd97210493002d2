// =============================================================================
// SSIM Pretty Printer - Record Lint
// =============================================================================
//
// This module checks the token format of decoded record fields: dates, times,
// UTC variations, days of operation, station codes and the numeric keys of
// the flight hierarchy.
//
// LINT STRATEGY:
//   Every rule is a go-playground/validator tag applied with Validate.Var to a
//   single trimmed field value. SSIM specific formats are registered as
//   custom tags:
//     - ssimdate:  DDMMMYY, or the open-ended marker 00XXX00
//     - hhmm:      four digit local time, 0000-2400
//     - utcoffset: +HHMM or -HHMM
//     - days:      days of operation, digits 1-7 in ascending order
//
// SEVERITY:
//   Lint results are warnings only. They are reported and written to the
//   error log but never stop aggregation. No rule compares one record with
//   another.
//
// =============================================================================

package validation

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Nalian79/ssim-pprint/internal/types"
)

// OpenEndedDate marks a period without an end date.
const OpenEndedDate = "00XXX00"

// =============================================================================
// WARNING TYPES
// =============================================================================

// Warning describes one field whose value does not match its expected format.
type Warning struct {
	// Kind is the record kind the field belongs to.
	Kind types.RecordKind

	// Record identifies the record, e.g. "BA0100/01/01" for a leg.
	Record string

	// Field is the column name of the offending value.
	Field string

	// Value is the trimmed field value.
	Value string

	// Rule is the validator tag that failed.
	Rule string
}

// Error implements the error interface.
func (w *Warning) Error() string {
	return fmt.Sprintf("[WARNING] %s %s, Field '%s': failed '%s' (value: '%s')",
		w.Kind, w.Record, w.Field, w.Rule, w.Value)
}

// Result contains the warnings of one lint pass.
type Result struct {
	Warnings []*Warning

	// RecordsChecked and FieldsChecked count what the pass looked at.
	RecordsChecked int
	FieldsChecked  int
}

// =============================================================================
// RULES
// =============================================================================

type rule[R any] struct {
	field string
	tag   string
	value func(r R) string
}

var carrierInfoRules = []rule[types.CarrierInfoRecord]{
	{"time_mode", "required,oneof=U L", func(r types.CarrierInfoRecord) string { return r.TimeMode }},
	{"carrier_code", "required,min=2,max=3,alphanum", func(r types.CarrierInfoRecord) string { return r.CarrierCode }},
	{"validity_start", "omitempty,ssimdate", func(r types.CarrierInfoRecord) string { return r.ValidityStart }},
	{"validity_end", "omitempty,ssimdate", func(r types.CarrierInfoRecord) string { return r.ValidityEnd }},
	{"creation_date", "omitempty,ssimdate", func(r types.CarrierInfoRecord) string { return r.CreationDate }},
}

var legScheduleRules = []rule[types.LegScheduleRecord]{
	{"carrier_code", "required,min=2,max=3,alphanum", func(r types.LegScheduleRecord) string { return r.CarrierCode }},
	{"flight_number", "required,max=4,numeric", func(r types.LegScheduleRecord) string { return r.FlightNumber }},
	{"ivi", "required,numeric", func(r types.LegScheduleRecord) string { return r.IVI }},
	{"leg_sequence", "required,numeric", func(r types.LegScheduleRecord) string { return r.LegSequence }},
	{"period_start", "required,ssimdate", func(r types.LegScheduleRecord) string { return r.PeriodStart }},
	{"period_end", "required,ssimdate", func(r types.LegScheduleRecord) string { return r.PeriodEnd }},
	{"days_of_operation", "required,days", func(r types.LegScheduleRecord) string { return r.DaysOfOperation }},
	{"departure_station", "required,len=3,alpha", func(r types.LegScheduleRecord) string { return r.DepartureStation }},
	{"passenger_std", "omitempty,hhmm", func(r types.LegScheduleRecord) string { return r.PassengerSTD }},
	{"aircraft_std", "omitempty,hhmm", func(r types.LegScheduleRecord) string { return r.AircraftSTD }},
	{"departure_utc_variation", "omitempty,utcoffset", func(r types.LegScheduleRecord) string { return r.DepartureUTCVariation }},
	{"arrival_station", "required,len=3,alpha", func(r types.LegScheduleRecord) string { return r.ArrivalStation }},
	{"aircraft_sta", "omitempty,hhmm", func(r types.LegScheduleRecord) string { return r.AircraftSTA }},
	{"passenger_sta", "omitempty,hhmm", func(r types.LegScheduleRecord) string { return r.PassengerSTA }},
	{"arrival_utc_variation", "omitempty,utcoffset", func(r types.LegScheduleRecord) string { return r.ArrivalUTCVariation }},
	{"min_connection_time", "omitempty,max=2", func(r types.LegScheduleRecord) string { return r.MinConnectionTime }},
	{"record_serial_number", "omitempty,numeric", func(r types.LegScheduleRecord) string { return r.RecordSerialNumber }},
}

var legDataElementRules = []rule[types.LegDataElementRecord]{
	{"carrier_code", "required,min=2,max=3,alphanum", func(r types.LegDataElementRecord) string { return r.CarrierCode }},
	{"flight_number", "required,max=4,numeric", func(r types.LegDataElementRecord) string { return r.FlightNumber }},
	{"ivi", "required,numeric", func(r types.LegDataElementRecord) string { return r.IVI }},
	{"leg_sequence", "required,numeric", func(r types.LegDataElementRecord) string { return r.LegSequence }},
	{"dei", "required,len=3,numeric", func(r types.LegDataElementRecord) string { return r.DEI }},
	{"board_point", "omitempty,len=3,alpha", func(r types.LegDataElementRecord) string { return r.BoardPoint }},
	{"off_point", "omitempty,len=3,alpha", func(r types.LegDataElementRecord) string { return r.OffPoint }},
	{"record_serial_number", "omitempty,numeric", func(r types.LegDataElementRecord) string { return r.RecordSerialNumber }},
}

// =============================================================================
// LINTER
// =============================================================================

// Linter applies the field rules to decoded records.
type Linter struct {
	validate *validator.Validate
}

// formatTags are the SSIM token validators used by the rule tables.
var formatTags = map[string]validator.Func{
	"ssimdate":  isSSIMDate,
	"hhmm":      isHHMM,
	"utcoffset": isUTCOffset,
	"days":      isDaysOfOperation,
}

// NewLinter creates a Linter with the SSIM format tags registered. It panics
// when a tag cannot be registered.
func NewLinter() *Linter {
	v := validator.New()
	if err := registerTags(v, formatTags); err != nil {
		panic(err)
	}
	return &Linter{validate: v}
}

func registerTags(v *validator.Validate, tags map[string]validator.Func) error {
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("failed to register validation %q: %w", tag, err)
		}
	}
	return nil
}

// Lint checks every record of a parse result and returns the warnings.
//
// PARAMETERS:
//   - records: The decoded records of one file.
//
// RETURNS:
//   - A slice of Warning pointers, empty when every field is well formed.
func Lint(records *types.Records) []*Warning {
	return NewLinter().LintAll(records).Warnings
}

// LintAll checks every record of a parse result and returns a detailed result.
func (l *Linter) LintAll(records *types.Records) *Result {
	result := &Result{Warnings: make([]*Warning, 0)}

	for _, r := range records.CarrierInfo {
		result.add(checkRecord(l, r.Kind(), r.CarrierCode, r, carrierInfoRules))
	}
	for _, r := range records.LegSchedules {
		result.add(checkRecord(l, r.Kind(), legIdentity(r.CarrierCode, r.FlightNumber, r.IVI, r.LegSequence), r, legScheduleRules))
	}
	for _, r := range records.LegDataElements {
		id := legIdentity(r.CarrierCode, r.FlightNumber, r.IVI, r.LegSequence) + "/" + r.DEI
		result.add(checkRecord(l, r.Kind(), id, r, legDataElementRules))
	}

	return result
}

// LintRecord checks a single record.
func (l *Linter) LintRecord(rec types.Record) []*Warning {
	switch r := rec.(type) {
	case types.CarrierInfoRecord:
		return checkRecord(l, r.Kind(), r.CarrierCode, r, carrierInfoRules).warnings
	case types.LegScheduleRecord:
		return checkRecord(l, r.Kind(), legIdentity(r.CarrierCode, r.FlightNumber, r.IVI, r.LegSequence), r, legScheduleRules).warnings
	case types.LegDataElementRecord:
		id := legIdentity(r.CarrierCode, r.FlightNumber, r.IVI, r.LegSequence) + "/" + r.DEI
		return checkRecord(l, r.Kind(), id, r, legDataElementRules).warnings
	}
	return nil
}

// CheckField applies one validator tag to a value and returns the name of
// the failing tag, or "" when the value passes.
func (l *Linter) CheckField(value, tag string) string {
	err := l.validate.Var(value, tag)
	if err == nil {
		return ""
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return fieldErrs[0].Tag()
	}
	return tag
}

type recordCheck struct {
	warnings []*Warning
	fields   int
}

func (r *Result) add(c recordCheck) {
	r.RecordsChecked++
	r.FieldsChecked += c.fields
	r.Warnings = append(r.Warnings, c.warnings...)
}

func checkRecord[R any](l *Linter, kind types.RecordKind, id string, rec R, rules []rule[R]) recordCheck {
	var c recordCheck
	for _, ru := range rules {
		value := ru.value(rec)
		c.fields++
		if failed := l.CheckField(value, ru.tag); failed != "" {
			c.warnings = append(c.warnings, &Warning{
				Kind:   kind,
				Record: id,
				Field:  ru.field,
				Value:  value,
				Rule:   failed,
			})
		}
	}
	return c
}

func legIdentity(carrier, flight, ivi, leg string) string {
	return fmt.Sprintf("%s%s/%s/%s", carrier, flight, ivi, leg)
}

// =============================================================================
// FORMAT VALIDATORS
// =============================================================================

func isSSIMDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == OpenEndedDate {
		return true
	}
	if len(value) != 7 {
		return false
	}
	_, err := time.Parse("02Jan06", value)
	return err == nil
}

func isHHMM(fl validator.FieldLevel) bool {
	return validHHMM(fl.Field().String(), true)
}

func isUTCOffset(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if len(value) != 5 || (value[0] != '+' && value[0] != '-') {
		return false
	}
	return validHHMM(value[1:], false)
}

// validHHMM accepts four digits with minutes below 60. 2400 is only valid
// when allowMidnight is set.
func validHHMM(value string, allowMidnight bool) bool {
	if len(value) != 4 {
		return false
	}
	for i := 0; i < 4; i++ {
		if value[i] < '0' || value[i] > '9' {
			return false
		}
	}
	hour := int(value[0]-'0')*10 + int(value[1]-'0')
	minute := int(value[2]-'0')*10 + int(value[3]-'0')
	if hour == 24 {
		return allowMidnight && minute == 0
	}
	return hour < 24 && minute < 60
}

// isDaysOfOperation accepts digits 1-7, each at most once in ascending
// order, separated by blanks.
func isDaysOfOperation(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if len(value) > 7 || strings.TrimSpace(value) == "" {
		return false
	}

	last := byte('0')
	for i := 0; i < len(value); i++ {
		c := value[i]
		if c == ' ' {
			continue
		}
		if c < '1' || c > '7' || c <= last {
			return false
		}
		last = c
	}
	return true
}

// =============================================================================
// WARNING FORMATTING
// =============================================================================

// FormatWarnings formats lint warnings for display or logging.
func FormatWarnings(warnings []*Warning) string {
	if len(warnings) == 0 {
		return "No lint warnings."
	}

	var builder strings.Builder

	builder.WriteString(fmt.Sprintf("Lint completed with %d warning(s):\n\n", len(warnings)))

	for i, w := range warnings {
		builder.WriteString(fmt.Sprintf("%d. %s\n", i+1, w.Error()))
	}

	return builder.String()
}
