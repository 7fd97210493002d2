// =============================================================================
// Flight Aggregator - Flight / Variation / Leg Hierarchy
// =============================================================================
//
// The aggregator folds decoded SSIM records into a three level hierarchy:
//
//   Flight (carrier + flight number)
//     Variation (itinerary variation identifier)
//       Leg (leg sequence number)
//         schedule attributes (record type 3)
//         data elements by DEI code (record type 4)
//
// Record type 3 creates the hierarchy; record type 4 only annotates legs that
// already exist. Every level exclusively owns the level below it.
//
// =============================================================================

package flights

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Nalian79/ssim-pprint/internal/types"
)

// Aggregate is the in-memory result of folding one file's records.
type Aggregate struct {
	carriers   map[string]types.CarrierInfoRecord
	duplicates []string
	flights    map[FlightKey]*Flight
}

// Stats summarises the size of an aggregate.
type Stats struct {
	Flights      int
	Variations   int
	Legs         int
	DataElements int
}

// New creates an empty aggregate with the given carrier-level records
// registered. When a carrier code appears more than once the last record wins.
func New(carriers ...types.CarrierInfoRecord) *Aggregate {
	a := &Aggregate{
		carriers: make(map[string]types.CarrierInfoRecord),
		flights:  make(map[FlightKey]*Flight),
	}
	for _, info := range carriers {
		a.registerCarrier(info)
	}
	return a
}

// Build folds a parse result into a new aggregate.
//
// Records carrying a complete Order are applied in that file order, so a
// data element line placed before its schedule line is a precedence
// violation. Without Order all schedules are applied first, then all data
// elements.
//
// PARAMETERS:
//   - records: Output of the record stream reader
//
// RETURNS:
//   - *Aggregate: The folded flight hierarchy
//   - error: The first precedence violation, which aborts the build
func Build(records *types.Records) (*Aggregate, error) {
	a := New(records.CarrierInfo...)

	if len(records.Order) == records.Count() && len(records.Order) > 0 {
		if err := a.applyInFileOrder(records); err != nil {
			return nil, err
		}
		return a, nil
	}

	for _, rec := range records.LegSchedules {
		if err := a.Apply(rec); err != nil {
			return nil, err
		}
	}
	for _, rec := range records.LegDataElements {
		if err := a.Apply(rec); err != nil {
			return nil, fmt.Errorf("failed to apply data element: %w", err)
		}
	}

	return a, nil
}

// applyInFileOrder walks records.Order, taking the next record of each kind.
// Carrier records are already registered by New.
func (a *Aggregate) applyInFileOrder(records *types.Records) error {
	var schedules, elements int
	for _, kind := range records.Order {
		switch kind {
		case types.LegSchedule:
			if err := a.Apply(records.LegSchedules[schedules]); err != nil {
				return err
			}
			schedules++
		case types.LegDataElement:
			if err := a.Apply(records.LegDataElements[elements]); err != nil {
				return fmt.Errorf("failed to apply data element: %w", err)
			}
			elements++
		}
	}
	return nil
}

// DuplicateCarriers returns the carrier codes that were registered more than once.
func (a *Aggregate) DuplicateCarriers() []string {
	return slices.Clone(a.duplicates)
}

// Carrier returns the registered carrier-level record for a code.
func (a *Aggregate) Carrier(code string) (types.CarrierInfoRecord, bool) {
	info, ok := a.carriers[strings.ToUpper(strings.TrimSpace(code))]
	return info, ok
}

// Carriers returns the registered carrier-level records ordered by code.
func (a *Aggregate) Carriers() []types.CarrierInfoRecord {
	codes := make([]string, 0, len(a.carriers))
	for code := range a.carriers {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	out := make([]types.CarrierInfoRecord, 0, len(codes))
	for _, code := range codes {
		out = append(out, a.carriers[code])
	}
	return out
}

func (a *Aggregate) registerCarrier(info types.CarrierInfoRecord) {
	code := strings.ToUpper(strings.TrimSpace(info.CarrierCode))
	if _, exists := a.carriers[code]; exists && !slices.Contains(a.duplicates, code) {
		a.duplicates = append(a.duplicates, code)
	}
	a.carriers[code] = info
}

// EnsureFlight returns the flight for key, creating it when absent. A new
// flight is seeded from info when info is not nil. Calling it again for an
// existing key returns the flight unchanged.
func (a *Aggregate) EnsureFlight(key FlightKey, info *types.CarrierInfoRecord) *Flight {
	if f, ok := a.flights[key]; ok {
		return f
	}

	f := &Flight{
		Key:        key,
		variations: make(map[string]*Variation),
	}
	if info != nil {
		f.TimeMode = info.TimeMode
		f.ValidityStart = info.ValidityStart
		f.ValidityEnd = info.ValidityEnd
		f.CreationDate = info.CreationDate
		f.SellDate = info.SellDate
		f.SecureFlight = info.SecureFlight
		f.ETicket = info.ETicket
	}
	a.flights[key] = f
	return f
}

// Apply folds one record into the aggregate.
func (a *Aggregate) Apply(rec types.Record) error {
	switch r := rec.(type) {
	case types.CarrierInfoRecord:
		a.registerCarrier(r)
		return nil
	case types.LegScheduleRecord:
		a.applySchedule(r)
		return nil
	case types.LegDataElementRecord:
		return a.applyDataElement(r)
	default:
		return fmt.Errorf("%w: %T", types.ErrUnknownRecordKind, rec)
	}
}

func (a *Aggregate) applySchedule(r types.LegScheduleRecord) {
	key := NewFlightKey(r.CarrierCode, r.FlightNumber)

	var info *types.CarrierInfoRecord
	if c, ok := a.carriers[key.Carrier]; ok {
		info = &c
	}

	leg := a.EnsureFlight(key, info).ensureVariation(r.IVI).ensureLeg(r.LegSequence)
	for _, attr := range scheduleAttributes {
		if v := attr.value(r); v != "" {
			leg.attrs[attr.name] = v
		}
	}
}

func (a *Aggregate) applyDataElement(r types.LegDataElementRecord) error {
	key := NewFlightKey(r.CarrierCode, r.FlightNumber)
	violation := &types.PrecedenceViolationError{
		Carrier:     key.Carrier,
		Flight:      key.Number,
		IVI:         r.IVI,
		LegSequence: r.LegSequence,
		DEI:         r.DEI,
	}

	flight, ok := a.flights[key]
	if !ok {
		violation.Missing = "flight"
		return violation
	}
	variation, ok := flight.variations[r.IVI]
	if !ok {
		violation.Missing = "variation"
		return violation
	}
	leg, ok := variation.legs[r.LegSequence]
	if !ok {
		violation.Missing = "leg"
		return violation
	}

	if r.DEI == "" || r.DEIData == "" {
		return nil
	}
	leg.deis[r.DEI] = r.DEIData
	return nil
}

// =============================================================================
// QUERIES
// =============================================================================

// Flights returns every flight ordered by carrier, then flight number.
func (a *Aggregate) Flights() []*Flight {
	out := make([]*Flight, 0, len(a.flights))
	for _, f := range a.flights {
		out = append(out, f)
	}
	slices.SortFunc(out, func(x, y *Flight) int {
		if c := strings.Compare(x.Key.Carrier, y.Key.Carrier); c != 0 {
			return c
		}
		return compareKeys(x.Key.Number, y.Key.Number)
	})
	return out
}

// Flight returns the flight stored under key.
func (a *Aggregate) Flight(key FlightKey) (*Flight, bool) {
	f, ok := a.flights[key]
	return f, ok
}

// Find looks a flight up by carrier and number, ignoring case and leading
// zeros in the number.
func (a *Aggregate) Find(carrier, number string) (*Flight, bool) {
	if f, ok := a.flights[NewFlightKey(carrier, number)]; ok {
		return f, true
	}

	carrier = strings.ToUpper(strings.TrimSpace(carrier))
	number = types.NormalizeFlightNumber(number)
	for key, f := range a.flights {
		if key.Carrier == carrier && types.NormalizeFlightNumber(key.Number) == number {
			return f, true
		}
	}
	return nil, false
}

// Stats counts flights, variations, legs and stored data elements.
func (a *Aggregate) Stats() Stats {
	var s Stats
	for _, f := range a.flights {
		s.Flights++
		for _, v := range f.variations {
			s.Variations++
			for _, l := range v.legs {
				s.Legs++
				s.DataElements += len(l.deis)
			}
		}
	}
	return s
}
