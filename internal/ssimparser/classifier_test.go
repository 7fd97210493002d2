package ssimparser

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nalian79/ssim-pprint/internal/types"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		line string
		want types.RecordKind
	}{
		{"", types.KindUnknown},
		{"1AIRLINE STANDARD SCHEDULE DATA SET", types.KindUnknown},
		{"2LBA", types.CarrierInfo},
		{"3 BA 100", types.LegSchedule},
		{"4 BA 100", types.LegDataElement},
		{"5 BA", types.KindUnknown},
		{"00000000", types.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.line))
		})
	}
}

func TestFilterMatch(t *testing.T) {
	carrier := NewBuilder(types.CarrierInfo).Set(colCarrierCode, "BA").String()
	leg := NewBuilder(types.LegSchedule).Set(colCarrierCode, "BA").Set(colFlightNumber, "0100").String()
	otherLeg := NewBuilder(types.LegSchedule).Set(colCarrierCode, "BA").Set(colFlightNumber, "0200").String()
	threeLetter := NewBuilder(types.LegSchedule).Set(colCarrierCode, "U2X").Set(colFlightNumber, "1").String()

	tests := []struct {
		name   string
		filter Filter
		line   string
		kind   types.RecordKind
		match  bool
	}{
		{"no filter", Filter{}, leg, types.LegSchedule, true},
		{"carrier", NewFilter("BA", ""), carrier, types.CarrierInfo, true},
		{"carrier lower case", NewFilter("ba", ""), leg, types.LegSchedule, true},
		{"carrier unnormalised", Filter{Carrier: " ba"}, leg, types.LegSchedule, true},
		{"other carrier", NewFilter("AA", ""), leg, types.LegSchedule, false},
		{"carrier prefix only", NewFilter("B", ""), leg, types.LegSchedule, false},
		{"three letter carrier", NewFilter("u2x", ""), threeLetter, types.LegSchedule, true},
		{"flight", NewFilter("BA", "100"), leg, types.LegSchedule, true},
		{"flight zero padded", NewFilter("BA", "0100"), leg, types.LegSchedule, true},
		{"other flight", NewFilter("BA", "100"), otherLeg, types.LegSchedule, false},
		{"flight ignores carrier record", NewFilter("BA", "100"), carrier, types.CarrierInfo, true},
		{"unknown kind", Filter{}, "1HEADER", types.KindUnknown, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, ok := tt.filter.Match(tt.line)
			assert.Equal(t, tt.kind, kind)
			assert.Equal(t, tt.match, ok)
		})
	}
}

func TestNormalizeFlightNumber(t *testing.T) {
	assert.Equal(t, "100", types.NormalizeFlightNumber("0100"))
	assert.Equal(t, "100", types.NormalizeFlightNumber(" 100"))
	assert.Equal(t, "0", types.NormalizeFlightNumber("0000"))
	assert.Equal(t, "", types.NormalizeFlightNumber("    "))
}
