// =============================================================================
// SSIM Pretty Printer - Console Report
// =============================================================================
//
// Text rendering of carrier records and the flight hierarchy. Headings are
// coloured with fatih/color when colour output is enabled; every other line
// is plain text so the report stays readable when redirected to a file.
//
// =============================================================================

package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/Nalian79/ssim-pprint/internal/flights"
	"github.com/Nalian79/ssim-pprint/internal/types"
)

// Printer writes human readable reports.
type Printer struct {
	w io.Writer

	heading *color.Color
	label   *color.Color
	warn    *color.Color
}

// NewPrinter creates a Printer writing to w. With useColor false no escape
// sequences are written.
func NewPrinter(w io.Writer, useColor bool) *Printer {
	p := &Printer{
		w:       w,
		heading: color.New(color.FgCyan, color.Bold),
		label:   color.New(color.FgYellow),
		warn:    color.New(color.FgRed),
	}
	for _, c := range []*color.Color{p.heading, p.label, p.warn} {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// TimeModeName spells out a carrier time mode: "L" is local time, anything
// else is UTC.
func TimeModeName(mode string) string {
	if mode == "L" {
		return "Local"
	}
	return "UTC"
}

// PrintCarrier writes the carrier-level record of a file.
func (p *Printer) PrintCarrier(info types.CarrierInfoRecord) {
	p.heading.Fprintf(p.w, "Carrier %s\n", info.CarrierCode)
	p.line("Schedule time mode", TimeModeName(info.TimeMode))
	p.line("Carrier code", info.CarrierCode)
	p.line("Created on", info.CreationDate)
	if info.SellDate != "" {
		p.line("Open for sale on", info.SellDate)
	}
	p.line("Schedules start date", info.ValidityStart)
	p.line("Schedules end date", info.ValidityEnd)
	if info.ETicket == "ET" {
		fmt.Fprintln(p.w, "  Flights in this file are e-ticketable by default")
	}
	fmt.Fprintln(p.w)
}

// PrintFlight writes one flight with all variations, legs and data elements.
func (p *Printer) PrintFlight(f *flights.Flight) {
	p.heading.Fprintf(p.w, "Flight %s\n", f.Name())
	p.line("Time mode", TimeModeName(f.TimeMode))
	if f.ValidityStart != "" || f.ValidityEnd != "" {
		p.line("Validity", strings.TrimSpace(f.ValidityStart+" - "+f.ValidityEnd))
	}

	for _, v := range f.Variations() {
		p.label.Fprintf(p.w, "  Variation %s\n", v.IVI)
		for _, leg := range v.Legs() {
			p.printLeg(leg)
		}
	}
	fmt.Fprintln(p.w)
}

func (p *Printer) printLeg(leg *flights.Leg) {
	origin, _ := leg.Attr(flights.AttrOrigin)
	destination, _ := leg.Attr(flights.AttrDestination)
	departure, _ := leg.Attr(flights.AttrDepartureTime)
	arrival, _ := leg.Attr(flights.AttrArrivalTime)

	fmt.Fprintf(p.w, "    Leg %s: %s %s -> %s %s\n", leg.Sequence, origin, departure, destination, arrival)
	for _, a := range leg.Attributes() {
		fmt.Fprintf(p.w, "      %-22s %s\n", a.Name, a.Value)
	}
	for _, de := range leg.DEIs() {
		fmt.Fprintf(p.w, "      DEI %-18s %s\n", de.Code, de.Data)
	}
}

// PrintAggregate writes every carrier record, then every flight.
func (p *Printer) PrintAggregate(agg *flights.Aggregate) {
	for _, info := range agg.Carriers() {
		p.PrintCarrier(info)
	}
	for _, f := range agg.Flights() {
		p.PrintFlight(f)
	}
}

// Summary is the per-run totals shown after a report.
type Summary struct {
	File        string
	LinesRead   int
	Records     int
	Stats       flights.Stats
	LineErrors  int
	Warnings    int
	ErrorLog    string
	OutputFiles []string
}

// PrintSummary writes run totals. Error and warning counts are highlighted
// when non-zero.
func (p *Printer) PrintSummary(s Summary) {
	p.heading.Fprintln(p.w, "Summary")
	p.line("File", s.File)
	p.line("Lines read", fmt.Sprint(s.LinesRead))
	p.line("Records decoded", fmt.Sprint(s.Records))
	p.line("Flights", fmt.Sprint(s.Stats.Flights))
	p.line("Variations", fmt.Sprint(s.Stats.Variations))
	p.line("Legs", fmt.Sprint(s.Stats.Legs))
	p.line("Data elements", fmt.Sprint(s.Stats.DataElements))

	if s.LineErrors > 0 {
		p.warn.Fprintf(p.w, "  %-22s %d\n", "Line errors:", s.LineErrors)
	}
	if s.Warnings > 0 {
		p.warn.Fprintf(p.w, "  %-22s %d\n", "Lint warnings:", s.Warnings)
	}
	if s.ErrorLog != "" {
		p.line("Error log", s.ErrorLog)
	}
	for _, out := range s.OutputFiles {
		p.line("Output", out)
	}
}

func (p *Printer) line(label, value string) {
	p.label.Fprintf(p.w, "  %-22s", label+":")
	fmt.Fprintf(p.w, " %s\n", value)
}
