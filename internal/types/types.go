// =============================================================================
// SSIM Schedule Decoder - Shared Types
// =============================================================================
//
// This package contains the decoded record types shared by the parser, the
// flight aggregator, the validator and the report writers. Keeping them here
// avoids import cycles between:
//   - ssimparser
//   - flights
//   - validation
//   - converter
//
// All record fields are the trimmed contents of their fixed-width columns.
// Nothing is parsed into dates, times or booleans at this level.
//
// =============================================================================

package types

// =============================================================================
// RECORD KIND
// =============================================================================

// RecordKind identifies an SSIM record by the byte in column 0.
type RecordKind byte

const (
	// KindUnknown is any line whose column 0 is not one of the kinds below.
	KindUnknown RecordKind = 0

	// CarrierInfo is record type 2.
	CarrierInfo RecordKind = '2'

	// LegSchedule is record type 3.
	LegSchedule RecordKind = '3'

	// LegDataElement is record type 4.
	LegDataElement RecordKind = '4'
)

// String returns a readable name for the kind.
func (k RecordKind) String() string {
	switch k {
	case CarrierInfo:
		return "CarrierInfo"
	case LegSchedule:
		return "LegSchedule"
	case LegDataElement:
		return "LegDataElement"
	default:
		return "Unknown"
	}
}

// Record is implemented by the three decoded record types.
type Record interface {
	Kind() RecordKind
}

// =============================================================================
// RECORD TYPE 2 - CARRIER INFORMATION
// =============================================================================

// CarrierInfoRecord is a decoded record type 2.
type CarrierInfoRecord struct {
	// TimeMode is "L" (local) or "U" (UTC).
	TimeMode string

	// CarrierCode is the 2-3 character IATA airline designator.
	CarrierCode string

	// ValidityStart and ValidityEnd are the two 7-character date tokens
	// of the schedule validity period.
	ValidityStart string
	ValidityEnd   string

	CreationDate string

	// SellDate is empty when the file does not specify one.
	SellDate string

	SecureFlight string

	// ETicket is "ET" when flights are e-ticketable by default.
	ETicket string
}

// Kind implements Record.
func (r CarrierInfoRecord) Kind() RecordKind { return CarrierInfo }

// =============================================================================
// RECORD TYPE 3 - FLIGHT LEG
// =============================================================================

// LegScheduleRecord is a decoded record type 3.
type LegScheduleRecord struct {
	CarrierCode  string
	FlightNumber string

	// IVI is the itinerary variation identifier.
	IVI         string
	LegSequence string
	ServiceType string

	PeriodStart     string
	PeriodEnd       string
	DaysOfOperation string
	FrequencyRate   string

	DepartureStation           string
	PassengerSTD               string
	AircraftSTD                string
	DepartureUTCVariation      string
	PassengerDepartureTerminal string

	ArrivalStation           string
	AircraftSTA              string
	PassengerSTA             string
	ArrivalUTCVariation      string
	PassengerArrivalTerminal string

	AircraftType           string
	BookingDesignator      string
	BookingModifier        string
	MealService            string
	JointAirlineDesignator string
	MinConnectionTime      string
	SecureFlight           string
	IVIOverflow            string
	AircraftOwner          string
	CockpitCrew            string
	CabinCrew              string

	// OnwardAirline and OnwardFlight link through-flights.
	OnwardAirline string
	OnwardFlight  string

	Disclosure            string
	TrafficRestriction    string
	AircraftConfiguration string
	DateVariation         string
	RecordSerialNumber    string
}

// Kind implements Record.
func (r LegScheduleRecord) Kind() RecordKind { return LegSchedule }

// =============================================================================
// RECORD TYPE 4 - SEGMENT DATA
// =============================================================================

// LegDataElementRecord is a decoded record type 4. Several of these may
// address the same leg, one per DEI code.
type LegDataElementRecord struct {
	CarrierCode         string
	FlightNumber        string
	IVI                 string
	LegSequence         string
	ServiceType         string
	BoardPointIndicator string
	OffPointIndicator   string

	// DEI is the data element identifier naming what DEIData carries.
	DEI        string
	BoardPoint string
	OffPoint   string
	DEIData    string

	RecordSerialNumber string
}

// Kind implements Record.
func (r LegDataElementRecord) Kind() RecordKind { return LegDataElement }

// =============================================================================
// PARSE RESULT
// =============================================================================

// Records is the output of one parse pass. Each slice is in file order.
type Records struct {
	CarrierInfo     []CarrierInfoRecord
	LegSchedules    []LegScheduleRecord
	LegDataElements []LegDataElementRecord

	// Order lists the kind of every record added through Add, in file order.
	// It interleaves the three slices above.
	Order []RecordKind

	// LineErrors holds the per-line decode failures of a best-effort parse.
	LineErrors []*LineError

	// LinesRead counts every physical line, LinesSkipped the ones dropped
	// by the classifier (unknown kind or filtered out).
	LinesRead    int
	LinesSkipped int
}

// Add appends a decoded record to the slice of its kind and notes its
// position in Order. Records of other types are ignored.
func (r *Records) Add(rec Record) {
	switch rec := rec.(type) {
	case CarrierInfoRecord:
		r.CarrierInfo = append(r.CarrierInfo, rec)
	case LegScheduleRecord:
		r.LegSchedules = append(r.LegSchedules, rec)
	case LegDataElementRecord:
		r.LegDataElements = append(r.LegDataElements, rec)
	default:
		return
	}
	r.Order = append(r.Order, rec.Kind())
}

// Count returns the number of decoded records of all kinds.
func (r *Records) Count() int {
	return len(r.CarrierInfo) + len(r.LegSchedules) + len(r.LegDataElements)
}
