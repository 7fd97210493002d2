// =============================================================================
// SSIM Pretty Printer - XML Writer Module
// =============================================================================
//
// This module renders a flight aggregate as an XML document. The nesting
// follows the aggregate hierarchy:
//
//   <schedule>                                   <!-- Root element -->
//     <carrier code="BA">                        <!-- One per record type 2 -->
//       <timeMode>U</timeMode>
//       <validityStart>01JAN24</validityStart>
//     </carrier>
//     <flight name="BA0100" carrier="BA" number="0100">
//       <timeMode>U</timeMode>                   <!-- Seeded carrier fields -->
//       <variation ivi="01">
//         <leg n="01">
//           <origin>LHR</origin>                 <!-- Schedule attributes -->
//           <destination>JFK</destination>
//           <dataElement dei="002">X</dataElement>
//         </leg>
//       </variation>
//     </flight>
//   </schedule>
//
// Elements are written in query order: flights by carrier and number,
// variations by IVI, legs by sequence, data elements by DEI code. Empty
// values are omitted.
//
// =============================================================================

package xmlwriter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"slices"

	"github.com/Nalian79/ssim-pprint/internal/flights"
	"github.com/Nalian79/ssim-pprint/internal/types"
)

// =============================================================================
// XML GENERATION OPTIONS
// =============================================================================

// GenerateOptions contains options for XML generation.
type GenerateOptions struct {
	// Indent is the string used for indentation.
	// Default: "  " (two spaces)
	Indent string

	// IncludeXMLDeclaration determines whether to include the XML declaration.
	// Default: true
	IncludeXMLDeclaration bool

	// XMLVersion is the XML version for the declaration.
	// Default: "1.0"
	XMLVersion string

	// Encoding is the encoding for the XML declaration.
	// Default: "UTF-8"
	Encoding string

	// RootElement is the name of the document element.
	// Default: "schedule"
	RootElement string

	// RootAttributes are additional attributes for the root element,
	// written in key order. Example: {"runId": "..."}
	RootAttributes map[string]string
}

// DefaultGenerateOptions returns the default generation options.
func DefaultGenerateOptions() GenerateOptions {
	return GenerateOptions{
		Indent:                "  ",
		IncludeXMLDeclaration: true,
		XMLVersion:            "1.0",
		Encoding:              "UTF-8",
		RootElement:           "schedule",
		RootAttributes:        make(map[string]string),
	}
}

// =============================================================================
// XML GENERATION FUNCTIONS
// =============================================================================

// Generate creates an XML document from a flight aggregate.
//
// PARAMETERS:
//   - agg: The aggregate to render.
//
// RETURNS:
//   - The XML document as a byte slice.
//   - An error if generation fails.
func Generate(agg *flights.Aggregate) ([]byte, error) {
	return GenerateWithOptions(agg, DefaultGenerateOptions())
}

// GenerateWithOptions creates an XML document with custom options.
func GenerateWithOptions(agg *flights.Aggregate, options GenerateOptions) ([]byte, error) {
	if agg == nil {
		return nil, fmt.Errorf("no aggregate to render")
	}

	var buffer bytes.Buffer

	if options.IncludeXMLDeclaration {
		buffer.WriteString(fmt.Sprintf("<?xml version=\"%s\" encoding=\"%s\"?>\n",
			options.XMLVersion, options.Encoding))
	}

	doc := buildDocument(agg, options)

	xmlBytes, err := marshalWithIndent(doc, options.Indent)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal XML: %w", err)
	}

	buffer.Write(xmlBytes)

	return buffer.Bytes(), nil
}

// =============================================================================
// XML DOCUMENT BUILDING
// =============================================================================

// XMLElement represents a generic XML element.
type XMLElement struct {
	XMLName    xml.Name
	Attributes []xml.Attr   `xml:",attr"`
	Value      string       `xml:",chardata"`
	Children   []XMLElement `xml:",any"`
}

// buildDocument constructs the XML document structure.
func buildDocument(agg *flights.Aggregate, options GenerateOptions) XMLElement {
	root := options.RootElement
	if root == "" {
		root = "schedule"
	}
	doc := XMLElement{XMLName: xml.Name{Local: root}}

	keys := make([]string, 0, len(options.RootAttributes))
	for key := range options.RootAttributes {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	for _, key := range keys {
		doc.Attributes = append(doc.Attributes, attr(key, options.RootAttributes[key]))
	}

	for _, info := range agg.Carriers() {
		doc.Children = append(doc.Children, buildCarrierElement(info))
	}
	for _, flight := range agg.Flights() {
		doc.Children = append(doc.Children, buildFlightElement(flight))
	}

	return doc
}

// buildCarrierElement constructs the element for one record type 2.
func buildCarrierElement(info types.CarrierInfoRecord) XMLElement {
	element := XMLElement{
		XMLName:    xml.Name{Local: "carrier"},
		Attributes: []xml.Attr{attr("code", info.CarrierCode)},
	}
	element.Children = appendFields(element.Children,
		"timeMode", info.TimeMode,
		"validityStart", info.ValidityStart,
		"validityEnd", info.ValidityEnd,
		"creationDate", info.CreationDate,
		"sellDate", info.SellDate,
		"secureFlight", info.SecureFlight,
		"eTicket", info.ETicket,
	)
	return element
}

// buildFlightElement constructs a flight element with its variations.
//
// STRUCTURE:
//   <flight name="BA0100" carrier="BA" number="0100">
//     <timeMode>U</timeMode>
//     <variation ivi="01">...</variation>
//   </flight>
func buildFlightElement(flight *flights.Flight) XMLElement {
	element := XMLElement{
		XMLName: xml.Name{Local: "flight"},
		Attributes: []xml.Attr{
			attr("name", flight.Name()),
			attr("carrier", flight.Key.Carrier),
			attr("number", flight.Key.Number),
		},
	}

	element.Children = appendFields(element.Children,
		"timeMode", flight.TimeMode,
		"validityStart", flight.ValidityStart,
		"validityEnd", flight.ValidityEnd,
		"creationDate", flight.CreationDate,
		"sellDate", flight.SellDate,
		"secureFlight", flight.SecureFlight,
		"eTicket", flight.ETicket,
	)

	for _, variation := range flight.Variations() {
		v := XMLElement{
			XMLName:    xml.Name{Local: "variation"},
			Attributes: []xml.Attr{attr("ivi", variation.IVI)},
		}
		for _, leg := range variation.Legs() {
			v.Children = append(v.Children, buildLegElement(leg))
		}
		element.Children = append(element.Children, v)
	}

	return element
}

// buildLegElement constructs a leg element: schedule attributes first, then
// data elements.
func buildLegElement(leg *flights.Leg) XMLElement {
	element := XMLElement{
		XMLName:    xml.Name{Local: "leg"},
		Attributes: []xml.Attr{attr("n", leg.Sequence)},
	}

	for _, a := range leg.Attributes() {
		element.Children = append(element.Children, createSimpleElement(a.Name, a.Value))
	}
	for _, de := range leg.DEIs() {
		e := createSimpleElement("dataElement", de.Data)
		e.Attributes = []xml.Attr{attr("dei", de.Code)}
		element.Children = append(element.Children, e)
	}

	return element
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// createSimpleElement creates a simple XML element with a text value.
func createSimpleElement(name, value string) XMLElement {
	return XMLElement{
		XMLName: xml.Name{Local: name},
		Value:   value,
	}
}

// appendFields appends one simple element per non-empty name/value pair.
func appendFields(children []XMLElement, pairs ...string) []XMLElement {
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" {
			children = append(children, createSimpleElement(pairs[i], pairs[i+1]))
		}
	}
	return children
}

func attr(name, value string) xml.Attr {
	return xml.Attr{Name: xml.Name{Local: name}, Value: value}
}

// marshalWithIndent marshals the document with indentation.
func marshalWithIndent(doc XMLElement, indent string) ([]byte, error) {
	var buffer bytes.Buffer
	writeElement(&buffer, doc, indent, 0)
	return buffer.Bytes(), nil
}

// writeElement writes an XML element to the buffer with indentation.
func writeElement(buffer *bytes.Buffer, element XMLElement, indent string, level int) {
	for i := 0; i < level; i++ {
		buffer.WriteString(indent)
	}

	buffer.WriteString("<")
	buffer.WriteString(element.XMLName.Local)

	for _, a := range element.Attributes {
		buffer.WriteString(fmt.Sprintf(" %s=\"%s\"", a.Name.Local, escapeXML(a.Value)))
	}

	if len(element.Children) == 0 && element.Value == "" {
		buffer.WriteString("/>\n")
		return
	}

	buffer.WriteString(">")

	if element.Value != "" {
		buffer.WriteString(escapeXML(element.Value))
	} else {
		buffer.WriteString("\n")

		for _, child := range element.Children {
			writeElement(buffer, child, indent, level+1)
		}

		for i := 0; i < level; i++ {
			buffer.WriteString(indent)
		}
	}

	buffer.WriteString("</")
	buffer.WriteString(element.XMLName.Local)
	buffer.WriteString(">\n")
}

// escapeXML escapes special characters for XML.
func escapeXML(s string) string {
	var buffer bytes.Buffer

	for _, r := range s {
		switch r {
		case '&':
			buffer.WriteString("&amp;")
		case '<':
			buffer.WriteString("&lt;")
		case '>':
			buffer.WriteString("&gt;")
		case '"':
			buffer.WriteString("&quot;")
		case '\'':
			buffer.WriteString("&apos;")
		default:
			if !isXMLChar(r) {
				r = '\uFFFD'
			}
			buffer.WriteRune(r)
		}
	}

	return buffer.String()
}

// isXMLChar reports whether r is allowed in an XML 1.0 document.
func isXMLChar(r rune) bool {
	switch {
	case r == '\t', r == '\n', r == '\r':
		return true
	case r >= 0x20 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}
