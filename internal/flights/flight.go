package flights

import (
	"slices"
	"strconv"
	"strings"
)

// FlightKey identifies a flight within the aggregate.
type FlightKey struct {
	Carrier string
	Number  string
}

// NewFlightKey normalises the carrier to upper case and trims both parts.
func NewFlightKey(carrier, number string) FlightKey {
	return FlightKey{
		Carrier: strings.ToUpper(strings.TrimSpace(carrier)),
		Number:  strings.TrimSpace(number),
	}
}

// String returns the carrier and flight number joined, e.g. "BA0100".
func (k FlightKey) String() string {
	return k.Carrier + k.Number
}

// Flight is every variation of one carrier's flight number, seeded with the
// carrier-level attributes of the file's record type 2.
type Flight struct {
	Key FlightKey

	TimeMode      string
	ValidityStart string
	ValidityEnd   string
	CreationDate  string
	SellDate      string
	SecureFlight  string
	ETicket       string

	variations map[string]*Variation
}

// Name returns the flight designator.
func (f *Flight) Name() string { return f.Key.String() }

// Variation returns the variation with the given IVI.
func (f *Flight) Variation(ivi string) (*Variation, bool) {
	v, ok := f.variations[ivi]
	return v, ok
}

// Variations returns the variations in ascending IVI order.
func (f *Flight) Variations() []*Variation {
	out := make([]*Variation, 0, len(f.variations))
	for _, v := range f.variations {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b *Variation) int { return compareKeys(a.IVI, b.IVI) })
	return out
}

func (f *Flight) ensureVariation(ivi string) *Variation {
	v, ok := f.variations[ivi]
	if !ok {
		v = &Variation{IVI: ivi, legs: make(map[string]*Leg)}
		f.variations[ivi] = v
	}
	return v
}

// Variation is one itinerary variation of a flight.
type Variation struct {
	IVI string

	legs map[string]*Leg
}

// Leg returns the leg with the given sequence number.
func (v *Variation) Leg(sequence string) (*Leg, bool) {
	l, ok := v.legs[sequence]
	return l, ok
}

// Legs returns the legs in ascending leg sequence order.
func (v *Variation) Legs() []*Leg {
	out := make([]*Leg, 0, len(v.legs))
	for _, l := range v.legs {
		out = append(out, l)
	}
	slices.SortFunc(out, func(a, b *Leg) int { return compareKeys(a.Sequence, b.Sequence) })
	return out
}

func (v *Variation) ensureLeg(sequence string) *Leg {
	l, ok := v.legs[sequence]
	if !ok {
		l = &Leg{
			Sequence: sequence,
			attrs:    make(map[string]string),
			deis:     make(map[string]string),
		}
		v.legs[sequence] = l
	}
	return l
}

// Leg holds the schedule attributes of one leg and its data elements keyed
// by DEI code. Absent keys mean "not specified"; empty values are never stored.
type Leg struct {
	Sequence string

	attrs map[string]string
	deis  map[string]string
}

// Attribute is one name/value pair of a leg.
type Attribute struct {
	Name  string
	Value string
}

// DataElement is one DEI entry of a leg.
type DataElement struct {
	Code string
	Data string
}

// Attr returns a schedule attribute.
func (l *Leg) Attr(name string) (string, bool) {
	v, ok := l.attrs[name]
	return v, ok
}

// Attributes returns the set attributes in ScheduleAttributes order.
func (l *Leg) Attributes() []Attribute {
	out := make([]Attribute, 0, len(l.attrs))
	for _, attr := range scheduleAttributes {
		if v, ok := l.attrs[attr.name]; ok {
			out = append(out, Attribute{Name: attr.name, Value: v})
		}
	}
	return out
}

// DEI returns the payload stored for a data element identifier.
func (l *Leg) DEI(code string) (string, bool) {
	v, ok := l.deis[code]
	return v, ok
}

// DEIs returns the data elements in ascending DEI code order.
func (l *Leg) DEIs() []DataElement {
	out := make([]DataElement, 0, len(l.deis))
	for code, data := range l.deis {
		out = append(out, DataElement{Code: code, Data: data})
	}
	slices.SortFunc(out, func(a, b DataElement) int { return compareKeys(a.Code, b.Code) })
	return out
}

// DEICount returns the number of distinct DEI codes stored on the leg.
func (l *Leg) DEICount() int { return len(l.deis) }

// compareKeys orders two keys numerically when both are integers and
// lexically otherwise.
func compareKeys(a, b string) int {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	if aErr == nil && bErr == nil && ai != bi {
		if ai < bi {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
