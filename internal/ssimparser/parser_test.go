package ssimparser

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nalian79/ssim-pprint/internal/types"
)

func sampleFile(lines ...string) string {
	return strings.Join(lines, "\n") + "\n"
}

func carrierLine(code string) string {
	return Encode(types.CarrierInfoRecord{TimeMode: "U", CarrierCode: code, ValidityStart: "01JAN24", ValidityEnd: "31DEC24"})
}

func scheduleLine(carrier, flight, ivi, leg, from, to string) string {
	return Encode(types.LegScheduleRecord{
		CarrierCode:      carrier,
		FlightNumber:     flight,
		IVI:              ivi,
		LegSequence:      leg,
		DepartureStation: from,
		ArrivalStation:   to,
	})
}

func segmentLine(carrier, flight, ivi, leg, dei, data string) string {
	return Encode(types.LegDataElementRecord{
		CarrierCode:  carrier,
		FlightNumber: flight,
		IVI:          ivi,
		LegSequence:  leg,
		DEI:          dei,
		DEIData:      data,
	})
}

func TestParseSortsByKindInFileOrder(t *testing.T) {
	input := sampleFile(
		"1AIRLINE STANDARD SCHEDULE DATA SET"+strings.Repeat(" ", 165),
		carrierLine("BA"),
		scheduleLine("BA", "0100", "01", "01", "LHR", "JFK"),
		segmentLine("BA", "0100", "01", "01", "002", "FIRST"),
		scheduleLine("BA", "0100", "01", "02", "JFK", "BOS"),
		segmentLine("BA", "0100", "01", "02", "010", "SECOND"),
		scheduleLine("AA", "0001", "01", "01", "DFW", "ORD"),
		strings.Repeat("0", LineWidth),
		"5 BA                                          000010",
	)

	records, err := Parse(strings.NewReader(input), Options{Filter: NewFilter("ba", "")})
	require.NoError(t, err)

	require.Len(t, records.CarrierInfo, 1)
	require.Len(t, records.LegSchedules, 2)
	require.Len(t, records.LegDataElements, 2)
	assert.Empty(t, records.LineErrors)

	assert.Equal(t, "01", records.LegSchedules[0].LegSequence)
	assert.Equal(t, "02", records.LegSchedules[1].LegSequence)
	assert.Equal(t, "FIRST", records.LegDataElements[0].DEIData)
	assert.Equal(t, "SECOND", records.LegDataElements[1].DEIData)

	assert.Equal(t, 9, records.LinesRead)
	assert.Equal(t, 4, records.LinesSkipped)
	assert.Equal(t, 5, records.Count())
	assert.Equal(t, []types.RecordKind{
		types.CarrierInfo, types.LegSchedule, types.LegDataElement, types.LegSchedule, types.LegDataElement,
	}, records.Order)
}

func TestParseWithoutFilterKeepsAllCarriers(t *testing.T) {
	input := sampleFile(
		scheduleLine("BA", "0100", "01", "01", "LHR", "JFK"),
		scheduleLine("AA", "0001", "01", "01", "DFW", "ORD"),
	)

	records, err := Parse(strings.NewReader(input), Options{})
	require.NoError(t, err)
	assert.Len(t, records.LegSchedules, 2)
}

func TestParseCollectsLineErrors(t *testing.T) {
	input := sampleFile(
		carrierLine("BA"),
		"3 BA 0100 short",
		scheduleLine("BA", "0100", "01", "01", "LHR", "JFK"),
		"",
		segmentLine("BA", "0100", "01", "01", "002", "X")[:150],
	)

	records, err := Parse(strings.NewReader(input), Options{Filter: NewFilter("BA", "")})
	require.NoError(t, err)

	assert.Len(t, records.LegSchedules, 1)
	require.Len(t, records.LineErrors, 3)

	assert.Equal(t, 1, records.LineErrors[0].Line)
	assert.Equal(t, types.LegSchedule, records.LineErrors[0].Kind)
	assert.ErrorIs(t, records.LineErrors[0], types.ErrMalformedRecord)

	assert.Equal(t, 3, records.LineErrors[1].Line)
	assert.Equal(t, types.KindUnknown, records.LineErrors[1].Kind)

	assert.Equal(t, 4, records.LineErrors[2].Line)
	assert.Equal(t, types.LegDataElement, records.LineErrors[2].Kind)
}

func TestParseFailFast(t *testing.T) {
	input := sampleFile(
		"3 BA 0100 short",
		scheduleLine("BA", "0100", "01", "01", "LHR", "JFK"),
	)

	records, err := Parse(strings.NewReader(input), Options{FailFast: true})
	require.Error(t, err)

	var lineErr *types.LineError
	require.True(t, errors.As(err, &lineErr))
	assert.Equal(t, 0, lineErr.Line)
	assert.True(t, errors.Is(err, types.ErrMalformedRecord))
	assert.Empty(t, records.LegSchedules)
}

func TestParseHandlesCRLF(t *testing.T) {
	input := scheduleLine("BA", "0100", "01", "01", "LHR", "JFK") + "\r\n" +
		segmentLine("BA", "0100", "01", "01", "002", "PAYLOAD") + "\r\n"

	records, err := Parse(strings.NewReader(input), Options{})
	require.NoError(t, err)
	require.Len(t, records.LegDataElements, 1)
	assert.Equal(t, "PAYLOAD", records.LegDataElements[0].DEIData)
	assert.Empty(t, records.LineErrors)
}

func TestStreamingParser(t *testing.T) {
	input := sampleFile(
		carrierLine("BA"),
		"9 not a record",
		scheduleLine("BA", "0100", "01", "01", "LHR", "JFK"),
	)

	parser := NewStreamingParser(strings.NewReader(input), Options{})

	require.True(t, parser.Next())
	assert.IsType(t, types.CarrierInfoRecord{}, parser.Record())
	assert.Equal(t, 0, parser.LineNumber())

	require.True(t, parser.Next())
	assert.IsType(t, types.LegScheduleRecord{}, parser.Record())
	assert.Equal(t, 2, parser.LineNumber())
	assert.Nil(t, parser.LineErr())

	assert.False(t, parser.Next())
	assert.NoError(t, parser.Err())
	assert.Equal(t, 3, parser.LinesRead())
	assert.Equal(t, 1, parser.LinesSkipped())
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schedule.ssim")
	require.NoError(t, os.WriteFile(path, []byte(sampleFile(carrierLine("BA"))), 0o644))

	records, err := ParseFile(path, Options{})
	require.NoError(t, err)
	assert.Len(t, records.CarrierInfo, 1)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.ssim"), Options{})
	assert.Error(t, err)
}
