package ssimparser

import (
	"strings"

	"github.com/Nalian79/ssim-pprint/internal/types"
)

// Builder assembles a fixed-width SSIM line. Values are written
// left-justified into their column and cut to the column width; columns
// that are never set stay blank.
type Builder struct {
	buf []byte
}

// NewBuilder returns a blank 200-column line with the kind byte in column 0.
func NewBuilder(kind types.RecordKind) *Builder {
	buf := []byte(strings.Repeat(" ", LineWidth))
	if kind != types.KindUnknown {
		buf[0] = byte(kind)
	}
	return &Builder{buf: buf}
}

// Set writes value into the column.
func (b *Builder) Set(c Column, value string) *Builder {
	for i := c.Start; i < c.End && i < len(b.buf); i++ {
		b.buf[i] = ' '
	}
	if len(value) > c.Width() {
		value = value[:c.Width()]
	}
	copy(b.buf[c.Start:], value)
	return b
}

// SetRaw copies value into the line starting at column start, overwriting
// whatever is there. Used to carry untrimmed column bytes across.
func (b *Builder) SetRaw(start int, value string) *Builder {
	if start < len(b.buf) {
		copy(b.buf[start:], value)
	}
	return b
}

// String returns the line without a terminator.
func (b *Builder) String() string {
	return string(b.buf)
}

// Encode writes a decoded record back into a fixed-width line.
func Encode(rec types.Record) string {
	switch r := rec.(type) {
	case types.CarrierInfoRecord:
		return encodeCarrierInfo(r)
	case types.LegScheduleRecord:
		return encodeLegSchedule(r)
	case types.LegDataElementRecord:
		return encodeLegDataElement(r)
	}
	return ""
}

func encodeCarrierInfo(r types.CarrierInfoRecord) string {
	return NewBuilder(types.CarrierInfo).
		Set(colTimeMode, r.TimeMode).
		Set(colCarrierCode, r.CarrierCode).
		Set(colValidityStart, r.ValidityStart).
		Set(colValidityEnd, r.ValidityEnd).
		Set(colCreationDate, r.CreationDate).
		Set(colSellDate, r.SellDate).
		Set(colCarrierSecure, r.SecureFlight).
		Set(colETicket, r.ETicket).
		String()
}

func encodeLegSchedule(r types.LegScheduleRecord) string {
	return NewBuilder(types.LegSchedule).
		Set(colCarrierCode, r.CarrierCode).
		Set(colFlightNumber, r.FlightNumber).
		Set(colIVI, r.IVI).
		Set(colLegSequence, r.LegSequence).
		Set(colServiceType, r.ServiceType).
		Set(colPeriodStart, r.PeriodStart).
		Set(colPeriodEnd, r.PeriodEnd).
		Set(colDaysOfOperation, r.DaysOfOperation).
		Set(colFrequencyRate, r.FrequencyRate).
		Set(colDepartureStation, r.DepartureStation).
		Set(colPassengerSTD, r.PassengerSTD).
		Set(colAircraftSTD, r.AircraftSTD).
		Set(colDepartureUTCVariation, r.DepartureUTCVariation).
		Set(colPassengerDepartureTerminal, r.PassengerDepartureTerminal).
		Set(colArrivalStation, r.ArrivalStation).
		Set(colAircraftSTA, r.AircraftSTA).
		Set(colPassengerSTA, r.PassengerSTA).
		Set(colArrivalUTCVariation, r.ArrivalUTCVariation).
		Set(colPassengerArrivalTerminal, r.PassengerArrivalTerminal).
		Set(colAircraftType, r.AircraftType).
		Set(colBookingDesignator, r.BookingDesignator).
		Set(colBookingModifier, r.BookingModifier).
		Set(colMealService, r.MealService).
		Set(colJointAirlineDesignator, r.JointAirlineDesignator).
		Set(colMinConnectionTime, r.MinConnectionTime).
		Set(colLegSecureFlight, r.SecureFlight).
		Set(colIVIOverflow, r.IVIOverflow).
		Set(colAircraftOwner, r.AircraftOwner).
		Set(colCockpitCrew, r.CockpitCrew).
		Set(colCabinCrew, r.CabinCrew).
		Set(colOnwardAirline, r.OnwardAirline).
		Set(colOnwardFlight, r.OnwardFlight).
		Set(colDisclosure, r.Disclosure).
		Set(colTrafficRestriction, r.TrafficRestriction).
		Set(colAircraftConfiguration, r.AircraftConfiguration).
		Set(colDateVariation, r.DateVariation).
		Set(colRecordSerialNumber, r.RecordSerialNumber).
		String()
}

func encodeLegDataElement(r types.LegDataElementRecord) string {
	return NewBuilder(types.LegDataElement).
		Set(colCarrierCode, r.CarrierCode).
		Set(colFlightNumber, r.FlightNumber).
		Set(colIVI, r.IVI).
		Set(colLegSequence, r.LegSequence).
		Set(colServiceType, r.ServiceType).
		Set(colBoardPointIndicator, r.BoardPointIndicator).
		Set(colOffPointIndicator, r.OffPointIndicator).
		Set(colDEI, r.DEI).
		Set(colBoardPoint, r.BoardPoint).
		Set(colOffPoint, r.OffPoint).
		Set(colDEIData, r.DEIData).
		Set(colRecordSerialNumber, r.RecordSerialNumber).
		String()
}
