package flights

import "github.com/Nalian79/ssim-pprint/internal/types"

// Schedule attribute names written into a leg by a record type 3.
const (
	AttrStart               = "start"
	AttrEnd                 = "end"
	AttrDays                = "days"
	AttrOrigin              = "origin"
	AttrDepartureTime       = "departure_time"
	AttrDepartureTimeOffset = "departure_timeoffset"
	AttrDestination         = "destination"
	AttrArrivalTime         = "arrival_time"
	AttrArrivalTimeOffset   = "arrival_timeoffset"
	AttrMCT                 = "mct"
	AttrCodesharePartners   = "codeshare_partners"
	AttrServiceType         = "service_type"
	AttrAircraftType        = "aircraft_type"
	AttrDepartureTerminal   = "departure_terminal"
	AttrArrivalTerminal     = "arrival_terminal"
	AttrOnwardAirline       = "onward_airline"
	AttrOnwardFlight        = "onward_flight"
)

type scheduleAttribute struct {
	name  string
	value func(r types.LegScheduleRecord) string
}

// scheduleAttributes maps record type 3 fields to leg attributes. The order
// is the display order of Leg.Attributes.
var scheduleAttributes = []scheduleAttribute{
	{AttrStart, func(r types.LegScheduleRecord) string { return r.PeriodStart }},
	{AttrEnd, func(r types.LegScheduleRecord) string { return r.PeriodEnd }},
	{AttrDays, func(r types.LegScheduleRecord) string { return r.DaysOfOperation }},
	{AttrOrigin, func(r types.LegScheduleRecord) string { return r.DepartureStation }},
	{AttrDepartureTime, func(r types.LegScheduleRecord) string { return r.PassengerSTD }},
	{AttrDepartureTimeOffset, func(r types.LegScheduleRecord) string { return r.DepartureUTCVariation }},
	{AttrDestination, func(r types.LegScheduleRecord) string { return r.ArrivalStation }},
	{AttrArrivalTime, func(r types.LegScheduleRecord) string { return r.PassengerSTA }},
	{AttrArrivalTimeOffset, func(r types.LegScheduleRecord) string { return r.ArrivalUTCVariation }},
	{AttrMCT, func(r types.LegScheduleRecord) string { return r.MinConnectionTime }},
	{AttrCodesharePartners, func(r types.LegScheduleRecord) string { return r.JointAirlineDesignator }},
	{AttrServiceType, func(r types.LegScheduleRecord) string { return r.ServiceType }},
	{AttrAircraftType, func(r types.LegScheduleRecord) string { return r.AircraftType }},
	{AttrDepartureTerminal, func(r types.LegScheduleRecord) string { return r.PassengerDepartureTerminal }},
	{AttrArrivalTerminal, func(r types.LegScheduleRecord) string { return r.PassengerArrivalTerminal }},
	{AttrOnwardAirline, func(r types.LegScheduleRecord) string { return r.OnwardAirline }},
	{AttrOnwardFlight, func(r types.LegScheduleRecord) string { return r.OnwardFlight }},
}

// ScheduleAttributes returns every attribute name a leg can carry, in display order.
func ScheduleAttributes() []string {
	names := make([]string, len(scheduleAttributes))
	for i, attr := range scheduleAttributes {
		names[i] = attr.name
	}
	return names
}
