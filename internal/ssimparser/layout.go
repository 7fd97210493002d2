// =============================================================================
// SSIM Schedule Decoder - Column Layouts
// =============================================================================
//
// SSIM records are fixed-width lines of 200 columns. Every field occupies a
// fixed half-open byte range [Start, End) counted from 0. This file holds the
// column tables for the three record kinds the decoder understands:
//
//   Record 2 (carrier)  : highest offset used 190
//   Record 3 (leg)      : highest offset used 200
//   Record 4 (segment)  : highest offset used 200
//
// The same tables drive decoding (Column.Get) and re-encoding (Builder), so
// a field's offsets are only ever written down once.
//
// =============================================================================

package ssimparser

import (
	"strings"

	"github.com/Nalian79/ssim-pprint/internal/types"
)

// LineWidth is the physical width of an SSIM record.
const LineWidth = 200

// =============================================================================
// COLUMN
// =============================================================================

// Column is a named fixed-width field.
type Column struct {
	Name  string
	Start int
	End   int
}

// Width returns the number of bytes the column spans.
func (c Column) Width() int { return c.End - c.Start }

// Raw returns the untrimmed column contents. Columns running past the end of
// the line are cut short; columns starting past it are empty.
func (c Column) Raw(line string) string {
	if c.Start >= len(line) {
		return ""
	}
	end := c.End
	if end > len(line) {
		end = len(line)
	}
	return line[c.Start:end]
}

// Get returns the column contents with surrounding padding removed.
func (c Column) Get(line string) string {
	return strings.TrimSpace(c.Raw(line))
}

// Layout is the ordered column table of one record kind.
type Layout []Column

// Width returns the highest End offset in the layout, which is the minimum
// line length a record of this kind must have.
func (l Layout) Width() int {
	w := 0
	for _, c := range l {
		if c.End > w {
			w = c.End
		}
	}
	return w
}

// Lookup finds a column by name.
func (l Layout) Lookup(name string) (Column, bool) {
	for _, c := range l {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// =============================================================================
// RECORD 2 - CARRIER
// =============================================================================

var (
	colTimeMode      = Column{"time_mode", 1, 2}
	colCarrierCode   = Column{"carrier_code", 2, 5}
	colValidityStart = Column{"validity_start", 14, 21}
	colValidityEnd   = Column{"validity_end", 21, 28}
	colCreationDate  = Column{"creation_date", 28, 35}
	colSellDate      = Column{"sell_date", 64, 71}
	colCarrierSecure = Column{"secure_flight", 168, 169}
	colETicket       = Column{"eticket", 188, 190}
)

// CarrierInfoLayout is the column table of record type 2.
var CarrierInfoLayout = Layout{
	colTimeMode,
	colCarrierCode,
	colValidityStart,
	colValidityEnd,
	colCreationDate,
	colSellDate,
	colCarrierSecure,
	colETicket,
}

// =============================================================================
// RECORD 3 - FLIGHT LEG
// =============================================================================

var (
	colFlightNumber               = Column{"flight_number", 5, 9}
	colIVI                        = Column{"ivi", 9, 11}
	colLegSequence                = Column{"leg_sequence", 11, 13}
	colServiceType                = Column{"service_type", 13, 14}
	colPeriodStart                = Column{"period_start", 14, 21}
	colPeriodEnd                  = Column{"period_end", 21, 28}
	colDaysOfOperation            = Column{"days_of_operation", 28, 35}
	colFrequencyRate              = Column{"frequency_rate", 35, 36}
	colDepartureStation           = Column{"departure_station", 36, 39}
	colPassengerSTD               = Column{"passenger_std", 39, 43}
	colAircraftSTD                = Column{"aircraft_std", 43, 47}
	colDepartureUTCVariation      = Column{"departure_utc_variation", 47, 52}
	colPassengerDepartureTerminal = Column{"passenger_departure_terminal", 52, 54}
	colArrivalStation             = Column{"arrival_station", 54, 57}
	colAircraftSTA                = Column{"aircraft_sta", 57, 61}
	colPassengerSTA               = Column{"passenger_sta", 61, 65}
	colArrivalUTCVariation        = Column{"arrival_utc_variation", 65, 70}
	colPassengerArrivalTerminal   = Column{"passenger_arrival_terminal", 70, 72}
	colAircraftType               = Column{"aircraft_type", 72, 75}
	colBookingDesignator          = Column{"booking_designator", 75, 95}
	colBookingModifier            = Column{"booking_modifier", 95, 100}
	colMealService                = Column{"meal_service", 100, 110}
	colJointAirlineDesignator     = Column{"joint_airline_designator", 110, 119}
	colMinConnectionTime          = Column{"min_connection_time", 119, 120}
	colLegSecureFlight            = Column{"secure_flight", 121, 122}
	colIVIOverflow                = Column{"ivi_overflow", 127, 128}
	colAircraftOwner              = Column{"aircraft_owner", 128, 131}
	colCockpitCrew                = Column{"cockpit_crew", 131, 134}
	colCabinCrew                  = Column{"cabin_crew", 134, 137}
	colOnwardAirline              = Column{"onward_airline", 137, 139}
	colOnwardFlight               = Column{"onward_flight", 140, 143}
	colDisclosure                 = Column{"disclosure", 148, 149}
	colTrafficRestriction         = Column{"traffic_restriction", 149, 160}
	colAircraftConfiguration      = Column{"aircraft_configuration", 172, 192}
	colDateVariation              = Column{"date_variation", 192, 194}
	colRecordSerialNumber         = Column{"record_serial_number", 194, 200}
)

// LegScheduleLayout is the column table of record type 3.
var LegScheduleLayout = Layout{
	colCarrierCode,
	colFlightNumber,
	colIVI,
	colLegSequence,
	colServiceType,
	colPeriodStart,
	colPeriodEnd,
	colDaysOfOperation,
	colFrequencyRate,
	colDepartureStation,
	colPassengerSTD,
	colAircraftSTD,
	colDepartureUTCVariation,
	colPassengerDepartureTerminal,
	colArrivalStation,
	colAircraftSTA,
	colPassengerSTA,
	colArrivalUTCVariation,
	colPassengerArrivalTerminal,
	colAircraftType,
	colBookingDesignator,
	colBookingModifier,
	colMealService,
	colJointAirlineDesignator,
	colMinConnectionTime,
	colLegSecureFlight,
	colIVIOverflow,
	colAircraftOwner,
	colCockpitCrew,
	colCabinCrew,
	colOnwardAirline,
	colOnwardFlight,
	colDisclosure,
	colTrafficRestriction,
	colAircraftConfiguration,
	colDateVariation,
	colRecordSerialNumber,
}

// =============================================================================
// RECORD 4 - SEGMENT DATA
// =============================================================================

var (
	colBoardPointIndicator = Column{"board_point_indicator", 18, 29}
	colOffPointIndicator   = Column{"off_point_indicator", 29, 30}
	colDEI                 = Column{"dei", 30, 33}
	colBoardPoint          = Column{"board_point", 33, 36}
	colOffPoint            = Column{"off_point", 36, 39}

	// The payload starts directly after the board/off point pair.
	colDEIData = Column{"dei_data", 39, 194}
)

// LegDataElementLayout is the column table of record type 4.
var LegDataElementLayout = Layout{
	colCarrierCode,
	colFlightNumber,
	colIVI,
	colLegSequence,
	colServiceType,
	colBoardPointIndicator,
	colOffPointIndicator,
	colDEI,
	colBoardPoint,
	colOffPoint,
	colDEIData,
	colRecordSerialNumber,
}

// LayoutFor returns the column table of a record kind.
func LayoutFor(kind types.RecordKind) (Layout, bool) {
	switch kind {
	case types.CarrierInfo:
		return CarrierInfoLayout, true
	case types.LegSchedule:
		return LegScheduleLayout, true
	case types.LegDataElement:
		return LegDataElementLayout, true
	}
	return nil, false
}
