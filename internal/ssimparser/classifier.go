// =============================================================================
// SSIM Schedule Decoder - Line Classifier
// =============================================================================
//
// The classifier looks at a raw line before it is decoded:
//   1. Column 0 gives the record kind (2, 3 or 4; anything else is skipped)
//   2. Columns [2:5] give the carrier code, compared case-insensitively
//      against the requested carrier
//   3. Columns [5:9] give the flight number, compared only when a flight
//      filter is set (extract and single-flight lookups)
//
// A mismatch is a normal outcome, not an error.
//
// =============================================================================

package ssimparser

import (
	"strings"

	"github.com/Nalian79/ssim-pprint/internal/types"
)

// Classify returns the record kind of a line from its first byte.
func Classify(line string) types.RecordKind {
	if line == "" {
		return types.KindUnknown
	}
	switch kind := types.RecordKind(line[0]); kind {
	case types.CarrierInfo, types.LegSchedule, types.LegDataElement:
		return kind
	}
	return types.KindUnknown
}

// Filter selects the lines of one carrier and, optionally, one flight.
// The zero Filter accepts every line of a known kind.
type Filter struct {
	// Carrier is the 2-3 character IATA code. Case does not matter.
	Carrier string

	// Flight restricts record types 3 and 4 to one flight number.
	// Leading zeros are ignored. Record type 2 is never restricted by it.
	Flight string
}

// NewFilter normalises the carrier and flight once so Match can compare cheaply.
func NewFilter(carrier, flight string) Filter {
	return Filter{
		Carrier: strings.ToUpper(strings.TrimSpace(carrier)),
		Flight:  types.NormalizeFlightNumber(flight),
	}
}

// Match returns the line's kind and whether it passes the filter.
// Lines of unknown kind never pass.
func (f Filter) Match(line string) (types.RecordKind, bool) {
	kind := Classify(line)
	if kind == types.KindUnknown {
		return kind, false
	}

	if carrier := strings.ToUpper(strings.TrimSpace(f.Carrier)); carrier != "" {
		if strings.ToUpper(colCarrierCode.Get(line)) != carrier {
			return kind, false
		}
	}

	if f.Flight != "" && kind != types.CarrierInfo {
		want := types.NormalizeFlightNumber(f.Flight)
		if types.NormalizeFlightNumber(colFlightNumber.Get(line)) != want {
			return kind, false
		}
	}

	return kind, true
}
