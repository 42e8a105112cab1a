package canvas

import (
	"fmt"
	"io"
	"text/tabwriter"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/rad/transport"
)

// Table header keys.
const (
	headerRegion = "Region"
	headerEnergy = "Energy deposit / MeV"
	headerDose   = "Dose equivalent / MeV"
)

// Supported lists the languages with translated table headers. The first
// entry is the fallback.
var Supported = []language.Tag{language.English, language.German}

var matcher = language.NewMatcher(Supported)

func init() {
	for _, m := range []struct {
		tag      language.Tag
		key, msg string
	}{
		{language.English, headerRegion, "Detector"},
		{language.English, headerEnergy, "Energy deposit / MeV"},
		{language.English, headerDose, "Dose equivalent / MeV"},
		{language.German, headerRegion, "Detektor"},
		{language.German, headerEnergy, "Energiedeposit / MeV"},
		{language.German, headerDose, "Äquivalentdosis / MeV"},
	} {
		if err := message.SetString(m.tag, m.key, m.msg); err != nil {
			panic(fmt.Sprintf("canvas: register %s %q: %v", m.tag, m.key, err))
		}
	}
}

// Printer returns a message printer for the supported language closest to
// tag.
func Printer(tag language.Tag) *message.Printer {
	_, i, _ := matcher.Match(tag)
	return message.NewPrinter(Supported[i])
}

// Table is the deposit table in display form.
type Table struct {
	Header [2]string
	Rows   [][2]string
}

// Rows formats deposit rows with localized headers and numbers. dose
// selects the dose-equivalent header.
func Rows(rows []transport.Row, tag language.Tag, dose bool) Table {
	p := Printer(tag)
	energy := headerEnergy
	if dose {
		energy = headerDose
	}
	t := Table{
		Header: [2]string{p.Sprintf(headerRegion), p.Sprintf(energy)},
		Rows:   make([][2]string, len(rows)),
	}
	for i, r := range rows {
		t.Rows[i] = [2]string{r.Region, p.Sprintf("%.3f", r.Energy)}
	}
	return t
}

// WriteTo writes the table as aligned text columns.
func (t Table) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	tw := tabwriter.NewWriter(cw, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\t%s\t\n", t.Header[0], t.Header[1])
	for _, r := range t.Rows {
		fmt.Fprintf(tw, "%s\t%s\t\n", r[0], r[1])
	}
	err := tw.Flush()
	return cw.n, err
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
