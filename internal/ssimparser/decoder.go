// =============================================================================
// SSIM Schedule Decoder - Field Decoder
// =============================================================================
//
// Pure functions turning one physical line into a typed record. Each field is
// cut at its fixed column range and trimmed. Values are never interpreted:
// dates stay 7-character tokens, indicators stay single characters.
//
// =============================================================================

package ssimparser

import (
	"fmt"
	"strings"

	"github.com/Nalian79/ssim-pprint/internal/types"
)

// Decode classifies the line by column 0 and decodes it.
//
// RETURNS:
//   - The decoded record (CarrierInfoRecord, LegScheduleRecord or LegDataElementRecord).
//   - *types.MalformedRecordError when the line is empty or too short for its kind.
//   - An error wrapping types.ErrUnknownRecordKind for any other kind byte.
func Decode(line string) (types.Record, error) {
	line = trimLineEnding(line)
	if line == "" {
		return nil, &types.MalformedRecordError{Kind: types.KindUnknown}
	}

	switch kind := Classify(line); kind {
	case types.CarrierInfo:
		return DecodeCarrierInfo(line)
	case types.LegSchedule:
		return DecodeLegSchedule(line)
	case types.LegDataElement:
		return DecodeLegDataElement(line)
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownRecordKind, line[0])
	}
}

// DecodeCarrierInfo decodes a record type 2 line.
func DecodeCarrierInfo(line string) (types.CarrierInfoRecord, error) {
	line = trimLineEnding(line)
	if err := requireWidth(line, types.CarrierInfo); err != nil {
		return types.CarrierInfoRecord{}, err
	}

	return types.CarrierInfoRecord{
		TimeMode:      colTimeMode.Get(line),
		CarrierCode:   colCarrierCode.Get(line),
		ValidityStart: colValidityStart.Get(line),
		ValidityEnd:   colValidityEnd.Get(line),
		CreationDate:  colCreationDate.Get(line),
		SellDate:      colSellDate.Get(line),
		SecureFlight:  colCarrierSecure.Get(line),
		ETicket:       colETicket.Get(line),
	}, nil
}

// DecodeLegSchedule decodes a record type 3 line.
func DecodeLegSchedule(line string) (types.LegScheduleRecord, error) {
	line = trimLineEnding(line)
	if err := requireWidth(line, types.LegSchedule); err != nil {
		return types.LegScheduleRecord{}, err
	}

	return types.LegScheduleRecord{
		CarrierCode:                colCarrierCode.Get(line),
		FlightNumber:               colFlightNumber.Get(line),
		IVI:                        colIVI.Get(line),
		LegSequence:                colLegSequence.Get(line),
		ServiceType:                colServiceType.Get(line),
		PeriodStart:                colPeriodStart.Get(line),
		PeriodEnd:                  colPeriodEnd.Get(line),
		DaysOfOperation:            colDaysOfOperation.Get(line),
		FrequencyRate:              colFrequencyRate.Get(line),
		DepartureStation:           colDepartureStation.Get(line),
		PassengerSTD:               colPassengerSTD.Get(line),
		AircraftSTD:                colAircraftSTD.Get(line),
		DepartureUTCVariation:      colDepartureUTCVariation.Get(line),
		PassengerDepartureTerminal: colPassengerDepartureTerminal.Get(line),
		ArrivalStation:             colArrivalStation.Get(line),
		AircraftSTA:                colAircraftSTA.Get(line),
		PassengerSTA:               colPassengerSTA.Get(line),
		ArrivalUTCVariation:        colArrivalUTCVariation.Get(line),
		PassengerArrivalTerminal:   colPassengerArrivalTerminal.Get(line),
		AircraftType:               colAircraftType.Get(line),
		BookingDesignator:          colBookingDesignator.Get(line),
		BookingModifier:            colBookingModifier.Get(line),
		MealService:                colMealService.Get(line),
		JointAirlineDesignator:     colJointAirlineDesignator.Get(line),
		MinConnectionTime:          colMinConnectionTime.Get(line),
		SecureFlight:               colLegSecureFlight.Get(line),
		IVIOverflow:                colIVIOverflow.Get(line),
		AircraftOwner:              colAircraftOwner.Get(line),
		CockpitCrew:                colCockpitCrew.Get(line),
		CabinCrew:                  colCabinCrew.Get(line),
		OnwardAirline:              colOnwardAirline.Get(line),
		OnwardFlight:               colOnwardFlight.Get(line),
		Disclosure:                 colDisclosure.Get(line),
		TrafficRestriction:         colTrafficRestriction.Get(line),
		AircraftConfiguration:      colAircraftConfiguration.Get(line),
		DateVariation:              colDateVariation.Get(line),
		RecordSerialNumber:         colRecordSerialNumber.Get(line),
	}, nil
}

// DecodeLegDataElement decodes a record type 4 line.
func DecodeLegDataElement(line string) (types.LegDataElementRecord, error) {
	line = trimLineEnding(line)
	if err := requireWidth(line, types.LegDataElement); err != nil {
		return types.LegDataElementRecord{}, err
	}

	return types.LegDataElementRecord{
		CarrierCode:         colCarrierCode.Get(line),
		FlightNumber:        colFlightNumber.Get(line),
		IVI:                 colIVI.Get(line),
		LegSequence:         colLegSequence.Get(line),
		ServiceType:         colServiceType.Get(line),
		BoardPointIndicator: colBoardPointIndicator.Get(line),
		OffPointIndicator:   colOffPointIndicator.Get(line),
		DEI:                 colDEI.Get(line),
		BoardPoint:          colBoardPoint.Get(line),
		OffPoint:            colOffPoint.Get(line),
		DEIData:             colDEIData.Get(line),
		RecordSerialNumber:  colRecordSerialNumber.Get(line),
	}, nil
}

// requireWidth fails when the line cannot hold every column of the kind's
// layout.
func requireWidth(line string, kind types.RecordKind) error {
	layout, ok := LayoutFor(kind)
	if !ok {
		return fmt.Errorf("%w: %s", types.ErrUnknownRecordKind, kind)
	}

	required := layout.Width()
	if len(line) < required {
		return &types.MalformedRecordError{
			Kind:     kind,
			Width:    len(line),
			Required: required,
		}
	}
	return nil
}

// trimLineEnding removes the line terminator left by readers that keep it.
func trimLineEnding(line string) string {
	return strings.TrimRight(line, "\r\n")
}
