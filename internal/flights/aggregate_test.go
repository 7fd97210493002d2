package flights

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nalian79/ssim-pprint/internal/types"
)

func schedule(carrier, flight, ivi, leg, from, to string) types.LegScheduleRecord {
	return types.LegScheduleRecord{
		CarrierCode:      carrier,
		FlightNumber:     flight,
		IVI:              ivi,
		LegSequence:      leg,
		PeriodStart:      "01JAN24",
		PeriodEnd:        "31MAR24",
		DaysOfOperation:  "1234567",
		DepartureStation: from,
		PassengerSTD:     "0900",
		ArrivalStation:   to,
		PassengerSTA:     "1200",
	}
}

func element(carrier, flight, ivi, leg, dei, data string) types.LegDataElementRecord {
	return types.LegDataElementRecord{
		CarrierCode:  carrier,
		FlightNumber: flight,
		IVI:          ivi,
		LegSequence:  leg,
		DEI:          dei,
		DEIData:      data,
	}
}

func baRecords() *types.Records {
	return &types.Records{
		CarrierInfo: []types.CarrierInfoRecord{
			{TimeMode: "U", CarrierCode: "BA", ValidityStart: "01JAN24", ValidityEnd: "31DEC24", ETicket: "ET"},
		},
		LegSchedules: []types.LegScheduleRecord{
			schedule("BA", "0100", "01", "01", "LHR", "JFK"),
			schedule("BA", "0100", "01", "02", "JFK", "BOS"),
		},
		LegDataElements: []types.LegDataElementRecord{
			element("BA", "0100", "01", "01", "002", "X"),
			element("BA", "0100", "01", "02", "010", "Y"),
		},
	}
}

func TestBuildFlightHierarchy(t *testing.T) {
	agg, err := Build(baRecords())
	require.NoError(t, err)

	flights := agg.Flights()
	require.Len(t, flights, 1)

	flight := flights[0]
	assert.Equal(t, "BA0100", flight.Name())
	assert.Equal(t, "U", flight.TimeMode)
	assert.Equal(t, "01JAN24", flight.ValidityStart)
	assert.Equal(t, "31DEC24", flight.ValidityEnd)
	assert.Equal(t, "ET", flight.ETicket)

	variations := flight.Variations()
	require.Len(t, variations, 1)
	assert.Equal(t, "01", variations[0].IVI)

	legs := variations[0].Legs()
	require.Len(t, legs, 2)

	origin, _ := legs[0].Attr(AttrOrigin)
	destination, _ := legs[0].Attr(AttrDestination)
	assert.Equal(t, "LHR", origin)
	assert.Equal(t, "JFK", destination)

	data, ok := legs[0].DEI("002")
	assert.True(t, ok)
	assert.Equal(t, "X", data)
	assert.Equal(t, 1, legs[0].DEICount())

	data, ok = legs[1].DEI("010")
	assert.True(t, ok)
	assert.Equal(t, "Y", data)

	assert.Equal(t, Stats{Flights: 1, Variations: 1, Legs: 2, DataElements: 2}, agg.Stats())
}

func TestApplyScheduleIsIdempotent(t *testing.T) {
	once := New()
	twice := New()

	rec := schedule("BA", "0100", "01", "01", "LHR", "JFK")
	require.NoError(t, once.Apply(rec))
	require.NoError(t, twice.Apply(rec))
	require.NoError(t, twice.Apply(rec))

	assert.Equal(t, once, twice)
}

func TestEnsureFlightIsIdempotent(t *testing.T) {
	agg := New()
	info := &types.CarrierInfoRecord{CarrierCode: "BA", TimeMode: "L"}

	first := agg.EnsureFlight(NewFlightKey("BA", "0100"), info)
	second := agg.EnsureFlight(NewFlightKey("ba", "0100"), nil)

	assert.Same(t, first, second)
	assert.Equal(t, "L", second.TimeMode)
	assert.Equal(t, 1, agg.Stats().Flights)
}

func TestScheduleSkipsEmptyValues(t *testing.T) {
	agg := New()
	rec := schedule("BA", "0100", "01", "01", "LHR", "JFK")
	rec.MinConnectionTime = ""
	rec.JointAirlineDesignator = ""
	require.NoError(t, agg.Apply(rec))

	leg := mustLeg(t, agg, "BA", "0100", "01", "01")
	_, ok := leg.Attr(AttrMCT)
	assert.False(t, ok)
	_, ok = leg.Attr(AttrCodesharePartners)
	assert.False(t, ok)

	for _, attr := range leg.Attributes() {
		assert.NotEmpty(t, attr.Value, attr.Name)
	}
}

func TestAttributesFollowDisplayOrder(t *testing.T) {
	agg := New()
	rec := schedule("BA", "0100", "01", "01", "LHR", "JFK")
	rec.AircraftType = "744"
	require.NoError(t, agg.Apply(rec))

	leg := mustLeg(t, agg, "BA", "0100", "01", "01")
	var names []string
	for _, attr := range leg.Attributes() {
		names = append(names, attr.Name)
	}

	assert.Equal(t, []string{
		AttrStart, AttrEnd, AttrDays, AttrOrigin, AttrDepartureTime,
		AttrDestination, AttrArrivalTime, AttrAircraftType,
	}, names)
}

func TestDistinctDataElementsAccumulate(t *testing.T) {
	agg := New()
	require.NoError(t, agg.Apply(schedule("BA", "0100", "01", "01", "LHR", "JFK")))

	codes := []string{"002", "010", "050", "101", "127"}
	for _, code := range codes {
		require.NoError(t, agg.Apply(element("BA", "0100", "01", "01", code, "DATA "+code)))
	}

	leg := mustLeg(t, agg, "BA", "0100", "01", "01")
	assert.Equal(t, len(codes), leg.DEICount())

	var got []string
	for _, de := range leg.DEIs() {
		got = append(got, de.Code)
	}
	assert.Equal(t, codes, got)
}

func TestDataElementOverwritesSameCode(t *testing.T) {
	agg := New()
	require.NoError(t, agg.Apply(schedule("BA", "0100", "01", "01", "LHR", "JFK")))
	require.NoError(t, agg.Apply(element("BA", "0100", "01", "01", "050", "OLD")))
	require.NoError(t, agg.Apply(element("BA", "0100", "01", "01", "010", "KEEP")))
	require.NoError(t, agg.Apply(element("BA", "0100", "01", "01", "050", "NEW")))

	leg := mustLeg(t, agg, "BA", "0100", "01", "01")
	assert.Equal(t, 2, leg.DEICount())

	data, _ := leg.DEI("050")
	assert.Equal(t, "NEW", data)
	data, _ = leg.DEI("010")
	assert.Equal(t, "KEEP", data)
}

func TestEmptyDataElementIsNotStored(t *testing.T) {
	agg := New()
	require.NoError(t, agg.Apply(schedule("BA", "0100", "01", "01", "LHR", "JFK")))
	require.NoError(t, agg.Apply(element("BA", "0100", "01", "01", "050", "")))
	require.NoError(t, agg.Apply(element("BA", "0100", "01", "01", "", "ORPHAN")))

	assert.Equal(t, 0, mustLeg(t, agg, "BA", "0100", "01", "01").DEICount())
}

func TestPrecedenceViolation(t *testing.T) {
	tests := []struct {
		name    string
		rec     types.LegDataElementRecord
		missing string
	}{
		{"unknown flight", element("BA", "0200", "01", "01", "002", "X"), "flight"},
		{"unknown variation", element("BA", "0100", "02", "01", "002", "X"), "variation"},
		{"unknown leg", element("BA", "0100", "01", "03", "002", "X"), "leg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agg := New()
			require.NoError(t, agg.Apply(schedule("BA", "0100", "01", "01", "LHR", "JFK")))
			before := agg.Stats()

			err := agg.Apply(tt.rec)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrPrecedenceViolation))

			var pv *types.PrecedenceViolationError
			require.True(t, errors.As(err, &pv))
			assert.Equal(t, tt.missing, pv.Missing)
			assert.Equal(t, "BA", pv.Carrier)
			assert.Equal(t, tt.rec.DEI, pv.DEI)

			assert.Equal(t, before, agg.Stats())
		})
	}
}

func TestBuildAbortsOnPrecedenceViolation(t *testing.T) {
	records := baRecords()
	records.LegDataElements = append(records.LegDataElements, element("BA", "0999", "01", "01", "002", "X"))

	agg, err := Build(records)
	assert.Nil(t, agg)
	assert.ErrorIs(t, err, types.ErrPrecedenceViolation)
}

func TestBuildWithoutOrderAppliesSchedulesFirst(t *testing.T) {
	records := baRecords()
	// A schedule decoded after its data element still receives it.
	records.LegSchedules = append(records.LegSchedules, schedule("BA", "0100", "02", "01", "LHR", "MIA"))
	records.LegDataElements = append([]types.LegDataElementRecord{
		element("BA", "0100", "02", "01", "101", "LATE LEG"),
	}, records.LegDataElements...)

	agg, err := Build(records)
	require.NoError(t, err)

	data, ok := mustLeg(t, agg, "BA", "0100", "02", "01").DEI("101")
	assert.True(t, ok)
	assert.Equal(t, "LATE LEG", data)
}

func TestBuildFollowsFileOrder(t *testing.T) {
	records := &types.Records{}
	records.Add(types.CarrierInfoRecord{TimeMode: "U", CarrierCode: "BA"})
	records.Add(schedule("BA", "0100", "01", "01", "LHR", "JFK"))
	records.Add(element("BA", "0100", "01", "01", "050", "X"))
	records.Add(schedule("BA", "0100", "01", "02", "JFK", "BOS"))
	records.Add(element("BA", "0100", "01", "02", "050", "Y"))

	agg, err := Build(records)
	require.NoError(t, err)
	assert.Equal(t, Stats{Flights: 1, Variations: 1, Legs: 2, DataElements: 2}, agg.Stats())
}

func TestBuildRejectsDataElementBeforeItsSchedule(t *testing.T) {
	records := &types.Records{}
	records.Add(element("BA", "0100", "01", "01", "050", "EARLY"))
	records.Add(schedule("BA", "0100", "01", "01", "LHR", "JFK"))

	agg, err := Build(records)
	assert.Nil(t, agg)
	require.ErrorIs(t, err, types.ErrPrecedenceViolation)

	var violation *types.PrecedenceViolationError
	require.ErrorAs(t, err, &violation)
	assert.Equal(t, "050", violation.DEI)
}

func TestDuplicateCarriersLastWins(t *testing.T) {
	agg := New(
		types.CarrierInfoRecord{CarrierCode: "BA", TimeMode: "U"},
		types.CarrierInfoRecord{CarrierCode: "AA", TimeMode: "U"},
		types.CarrierInfoRecord{CarrierCode: "BA", TimeMode: "L"},
	)

	info, ok := agg.Carrier("ba")
	require.True(t, ok)
	assert.Equal(t, "L", info.TimeMode)
	assert.Equal(t, []string{"BA"}, agg.DuplicateCarriers())
	assert.Len(t, agg.Carriers(), 2)

	require.NoError(t, agg.Apply(schedule("BA", "0100", "01", "01", "LHR", "JFK")))
	flight, ok := agg.Find("BA", "100")
	require.True(t, ok)
	assert.Equal(t, "L", flight.TimeMode)
}

func TestOrdering(t *testing.T) {
	agg := New()
	for _, rec := range []types.LegScheduleRecord{
		schedule("BA", "0100", "10", "02", "JFK", "BOS"),
		schedule("BA", "0100", "10", "01", "LHR", "JFK"),
		schedule("BA", "0100", "2", "01", "LHR", "JFK"),
		schedule("AA", "0999", "01", "01", "DFW", "ORD"),
		schedule("BA", "0020", "01", "01", "LHR", "CDG"),
	} {
		require.NoError(t, agg.Apply(rec))
	}

	var names []string
	for _, f := range agg.Flights() {
		names = append(names, f.Name())
	}
	assert.Equal(t, []string{"AA0999", "BA0020", "BA0100"}, names)

	flight, ok := agg.Flight(NewFlightKey("BA", "0100"))
	require.True(t, ok)

	variations := flight.Variations()
	require.Len(t, variations, 2)
	assert.Equal(t, "2", variations[0].IVI)
	assert.Equal(t, "10", variations[1].IVI)

	legs := variations[1].Legs()
	require.Len(t, legs, 2)
	assert.Equal(t, "01", legs[0].Sequence)
	assert.Equal(t, "02", legs[1].Sequence)
}

func TestFindIgnoresLeadingZeros(t *testing.T) {
	agg := New()
	require.NoError(t, agg.Apply(schedule("BA", "0100", "01", "01", "LHR", "JFK")))

	for _, number := range []string{"0100", "100", " 100 "} {
		_, ok := agg.Find("ba", number)
		assert.True(t, ok, number)
	}

	_, ok := agg.Find("BA", "10")
	assert.False(t, ok)
}

func TestScheduleAttributes(t *testing.T) {
	names := ScheduleAttributes()
	assert.Equal(t, AttrStart, names[0])
	assert.Contains(t, names, AttrCodesharePartners)
	assert.Contains(t, names, AttrOnwardFlight)
}

func mustLeg(t *testing.T, agg *Aggregate, carrier, number, ivi, seq string) *Leg {
	t.Helper()
	flight, ok := agg.Find(carrier, number)
	require.True(t, ok, "flight %s%s", carrier, number)
	variation, ok := flight.Variation(ivi)
	require.True(t, ok, "variation %s", ivi)
	leg, ok := variation.Leg(seq)
	require.True(t, ok, "leg %s", seq)
	return leg
}
