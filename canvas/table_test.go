package canvas

import (
	"bytes"
	"strings"
	"testing"

	"golang.org/x/text/language"

	"github.com/gogpu/rad/transport"
)

func TestRowsLocalized(t *testing.T) {
	rows := []transport.Row{{Region: "A (Si)", Energy: 1.5}, {Region: "D (CsI)", Energy: 0.25}}

	tests := []struct {
		name   string
		tag    language.Tag
		dose   bool
		header [2]string
		first  string
	}{
		{"english", language.English, false, [2]string{"Detector", "Energy deposit / MeV"}, "1.500"},
		{"german", language.German, false, [2]string{"Detektor", "Energiedeposit / MeV"}, "1,500"},
		{"swiss german", language.MustParse("de-CH"), false, [2]string{"Detektor", "Energiedeposit / MeV"}, ""},
		{"french falls back", language.French, false, [2]string{"Detector", "Energy deposit / MeV"}, "1.500"},
		{"dose", language.English, true, [2]string{"Detector", "Dose equivalent / MeV"}, "1.500"},
		{"german dose", language.German, true, [2]string{"Detektor", "Äquivalentdosis / MeV"}, "1,500"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tab := Rows(rows, tt.tag, tt.dose)
			if tab.Header != tt.header {
				t.Errorf("Header = %q, want %q", tab.Header, tt.header)
			}
			if len(tab.Rows) != len(rows) {
				t.Fatalf("len(Rows) = %d, want %d", len(tab.Rows), len(rows))
			}
			if tab.Rows[1][0] != "D (CsI)" {
				t.Errorf("Rows[1] region = %q, want D (CsI)", tab.Rows[1][0])
			}
			if tt.first != "" && tab.Rows[0][1] != tt.first {
				t.Errorf("Rows[0] energy = %q, want %q", tab.Rows[0][1], tt.first)
			}
		})
	}
}

func TestTableWriteTo(t *testing.T) {
	tab := Rows([]transport.Row{{Region: "Body", Energy: 12.5}, {Region: "Tumor", Energy: 0}}, language.English, false)

	var buf bytes.Buffer
	n, err := tab.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo() = %d, wrote %d bytes", n, buf.Len())
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("WriteTo() lines = %q, want header and 2 rows", lines)
	}
	if !strings.HasPrefix(lines[0], "Detector") || !strings.Contains(lines[0], "Energy deposit / MeV") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "12.500") || !strings.Contains(lines[2], "0.000") {
		t.Errorf("rows = %q", lines[1:])
	}
	// columns are aligned
	if strings.Index(lines[1], "12.500") != strings.Index(lines[0], "Energy") {
		t.Errorf("energy column not aligned:\n%s", buf.String())
	}
}

func TestTableEmpty(t *testing.T) {
	tab := Rows(nil, language.German, false)
	var buf bytes.Buffer
	if _, err := tab.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}
	if got := strings.TrimSpace(buf.String()); !strings.HasPrefix(got, "Detektor") {
		t.Errorf("WriteTo() = %q, want German header", got)
	}
}
