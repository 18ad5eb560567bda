// Package laws holds the statutory reference table that maps an act and
// offense type to the charge, penalty, and compound sections used on a case.
package laws

import (
	"encoding/json"
	"slices"
)

// Act identifies the statute a case is brought under.
type Act string

const (
	// Akta Keselamatan Sosial Pekerja 1969.
	Akta4 Act = "akta4"
	// Akta Sistem Insurans Pekerjaan 2017.
	Akta800 Act = "akta800"
	// Both statutes at once.
	Both Act = "both"
)

var acts = []Act{Akta4, Akta800, Both}

// Label returns the Malay display name of the act.
func (a Act) Label() string {
	switch a {
	case Akta4:
		return "Akta Keselamatan Sosial Pekerja 1969 (Akta 4)"
	case Akta800:
		return "Akta Sistem Insurans Pekerjaan 2017 (Akta 800)"
	case Both:
		return "Akta 4 dan Akta 800"
	}
	return string(a)
}

// UnmarshalJSON rejects unknown acts. An empty string decodes to the zero
// Act so that a marshalled zero value reads back.
func (a *Act) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw == "" {
		*a = ""
		return nil
	}
	v, err := ParseAct(raw)
	if err != nil {
		return err
	}
	*a = v
	return nil
}

// ParseAct validates s as a known act.
func ParseAct(s string) (Act, error) {
	v := Act(s)
	if !slices.Contains(acts, v) {
		return "", ErrUnknownAct
	}
	return v, nil
}

// Option is a key/label pair for populating a choice control.
type Option struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// Sections are the statutory references attached to a charge.
type Sections struct {
	Charge   string `json:"charge_section"`
	Penalty  string `json:"penalty_section"`
	Compound string `json:"compound_section"`
}

// IsZero reports whether no section is set.
func (s Sections) IsZero() bool {
	return s == Sections{}
}

type offense struct {
	key      string
	label    string
	sections Sections
}

var akta4 = []offense{
	{"failure-to-register", "Gagal mendaftar majikan dan pekerja", Sections{"Seksyen 5", "Seksyen 94", "Seksyen 95A"}},
	{"failure-to-contribute", "Gagal membayar caruman", Sections{"Seksyen 6", "Seksyen 94", "Seksyen 95A"}},
	{"late-contribution", "Lewat membayar caruman", Sections{"Seksyen 29", "Seksyen 94", "Seksyen 95A"}},
	{"deduction-not-remitted", "Potongan gaji pekerja tidak diremit", Sections{"Seksyen 92", "Seksyen 92", "Seksyen 95A"}},
	{"false-statement", "Memberi pernyataan palsu", Sections{"Seksyen 93", "Seksyen 93", "Seksyen 95A"}},
	{"obstruction-of-inspector", "Menghalang pemeriksa", Sections{"Seksyen 79", "Seksyen 94", "Seksyen 95A"}},
	{"failure-to-report-accident", "Gagal melaporkan kemalangan", Sections{"Seksyen 39", "Seksyen 94", "Seksyen 95A"}},
}

var akta800 = []offense{
	{"failure-to-register", "Gagal mendaftar majikan dan pekerja", Sections{"Seksyen 14", "Seksyen 77", "Seksyen 79"}},
	{"failure-to-contribute", "Gagal membayar caruman", Sections{"Seksyen 18", "Seksyen 77", "Seksyen 79"}},
	{"late-contribution", "Lewat membayar caruman", Sections{"Seksyen 20", "Seksyen 77", "Seksyen 79"}},
	{"deduction-not-remitted", "Potongan gaji pekerja tidak diremit", Sections{"Seksyen 19", "Seksyen 77", "Seksyen 79"}},
	{"false-statement", "Memberi pernyataan palsu", Sections{"Seksyen 73", "Seksyen 73", "Seksyen 79"}},
	{"obstruction-of-inspector", "Menghalang pemeriksa", Sections{"Seksyen 66", "Seksyen 77", "Seksyen 79"}},
}

// Acts returns every act with its display label.
func Acts() []Option {
	out := make([]Option, len(acts))
	for i, a := range acts {
		out[i] = Option{Key: string(a), Label: a.Label()}
	}
	return out
}

// Offenses returns the ordered offense options for act. For Both only
// offenses defined in both statutes are listed. Unknown acts yield an empty
// list.
func Offenses(act Act) []Option {
	out := make([]Option, 0)
	switch act {
	case Akta4, Akta800:
		for _, o := range table(act) {
			out = append(out, Option{Key: o.key, Label: o.label})
		}
	case Both:
		for _, o := range akta4 {
			if _, ok := find(akta800, o.key); ok {
				out = append(out, Option{Key: o.key, Label: o.label})
			}
		}
	}
	return out
}

// Lookup returns the sections for offense under act. The second result is
// false when the act or offense is unknown; that is never an error.
func Lookup(act Act, offenseKey string) (Sections, bool) {
	switch act {
	case Akta4, Akta800:
		o, ok := find(table(act), offenseKey)
		if !ok {
			return Sections{}, false
		}
		return o.sections, true
	case Both:
		a, ok4 := find(akta4, offenseKey)
		b, ok800 := find(akta800, offenseKey)
		if !ok4 || !ok800 {
			return Sections{}, false
		}
		return Sections{
			Charge:   join(a.sections.Charge, b.sections.Charge),
			Penalty:  join(a.sections.Penalty, b.sections.Penalty),
			Compound: join(a.sections.Compound, b.sections.Compound),
		}, true
	}
	return Sections{}, false
}

func table(act Act) []offense {
	if act == Akta800 {
		return akta800
	}
	return akta4
}

func find(list []offense, key string) (offense, bool) {
	for _, o := range list {
		if o.key == key {
			return o, true
		}
	}
	return offense{}, false
}

func join(a4, a800 string) string {
	return a4 + " Akta 4; " + a800 + " Akta 800"
}
