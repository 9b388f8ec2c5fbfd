package probe

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Document round-trips probing operations as XML, keyed by operation
// kind: <centre> and <edge> elements inside <probing>. Unknown
// elements are skipped; missing fields take the documented defaults.
type Document struct {
	Ops []Operation
}

func (d Document) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name.Local = "probing"
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, op := range d.Ops {
		var err error
		switch v := op.(type) {
		case *CentreProbe:
			err = e.EncodeElement(v, xml.StartElement{Name: xml.Name{Local: "centre"}})
		case *EdgeProbe:
			err = e.EncodeElement(v, xml.StartElement{Name: xml.Name{Local: "edge"}})
		default:
			err = fmt.Errorf("unknown operation type %T", op)
		}
		if err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

func (d *Document) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "centre":
				var op CentreProbe
				if err := dec.DecodeElement(&op, &t); err != nil {
					return err
				}
				d.Ops = append(d.Ops, &op)
			case "edge":
				var op EdgeProbe
				if err := dec.DecodeElement(&op, &t); err != nil {
					return err
				}
				d.Ops = append(d.Ops, &op)
			default:
				if err := dec.Skip(); err != nil {
					return err
				}
			}
		case xml.EndElement:
			return nil
		}
	}
}

// ReadDocument decodes a probing document and validates every
// operation, so invalid parameters surface on load rather than at
// generation time.
func ReadDocument(r io.Reader) (*Document, error) {
	var d Document
	if err := xml.NewDecoder(r).Decode(&d); err != nil {
		return nil, err
	}
	for i, op := range d.Ops {
		if err := op.Validate(); err != nil {
			return nil, fmt.Errorf("operation %d (%s): %w", i+1, op.Kind(), err)
		}
	}
	return &d, nil
}

func (d Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	enc := xml.NewEncoder(cw)
	enc.Indent("", "  ")
	if err := enc.Encode(d); err != nil {
		return cw.n, err
	}
	return cw.n, nil
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// UnmarshalXML decodes over the documented defaults so fields missing
// from the element keep their default values.
func (op *CentreProbe) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	type raw CentreProbe
	r := raw{
		Params: Params{
			Title:    "Probe Centre",
			Depth:    DefaultDepth,
			Distance: DefaultDistance,
			FeedRate: DefaultFeedRate,
		},
		Direction:  Outside,
		PointCount: 2,
	}
	if err := dec.DecodeElement(&r, &start); err != nil {
		return err
	}
	*op = CentreProbe(r)
	return nil
}

// UnmarshalXML decodes over the documented defaults so fields missing
// from the element keep their default values.
func (op *EdgeProbe) UnmarshalXML(dec *xml.Decoder, start xml.StartElement) error {
	type raw EdgeProbe
	r := raw{
		Params: Params{
			Title:    "Probe Edge",
			Depth:    DefaultDepth,
			Distance: DefaultDistance,
			FeedRate: DefaultFeedRate,
		},
		Retract:   DefaultRetract,
		EdgeCount: 2,
		Edge:      Bottom,
		Corner:    BottomLeft,
	}
	if err := dec.DecodeElement(&r, &start); err != nil {
		return err
	}
	*op = EdgeProbe(r)
	return nil
}
