package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/OpenTraceLab/OpenTraceRF/pkg/smith"
)

// Request is the body sent for every operation.
type Request struct {
	Frequency float64 `json:"frequency"` // GHz
	ZReal     float64 `json:"z_real"`    // Ω
	ZImag     float64 `json:"z_imag"`    // Ω
}

// Impedance returns the request's load impedance.
func (r Request) Impedance() smith.Complex {
	return smith.C(r.ZReal, r.ZImag)
}

// Pair is a complex value encoded as a two-element JSON array [re, im].
type Pair smith.Complex

// Complex returns p as a smith.Complex.
func (p Pair) Complex() smith.Complex {
	return smith.Complex(p)
}

// MarshalJSON encodes p as [re, im].
func (p Pair) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.Re, p.Im})
}

// UnmarshalJSON decodes [re, im].
func (p *Pair) UnmarshalJSON(data []byte) error {
	var v []float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("complex pair: %w", err)
	}
	if len(v) != 2 {
		return fmt.Errorf("complex pair: want 2 elements, got %d", len(v))
	}
	p.Re, p.Im = v[0], v[1]
	return nil
}

// GammaPath is the ordered trajectory of Γ through a matching network.
type GammaPath []Pair

// Complex returns the path as smith values, preserving order.
func (g GammaPath) Complex() []smith.Complex {
	if len(g) == 0 {
		return nil
	}
	out := make([]smith.Complex, len(g))
	for i, p := range g {
		out[i] = p.Complex()
	}
	return out
}

// Component is one labelled element value of a matching network. Values are
// passed through untouched (numbers or strings).
type Component struct {
	Key   string
	Value any
}

// Components are a network's element values in the order the service sent
// them. They travel as a JSON object.
type Components []Component

// MarshalJSON encodes c as an object, keeping its order.
func (c Components) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, comp := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(comp.Key)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(comp.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object into c in document order. A null leaves c
// empty.
func (c *Components) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*c = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("components: expected object, got %v", tok)
	}
	out := Components{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("components: expected key, got %v", tok)
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return fmt.Errorf("components: %s: %w", key, err)
		}
		out = append(out, Component{Key: key, Value: v})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*c = out
	return nil
}

// Entry is a single labelled component for display.
type Entry struct {
	Key   string
	Label string
	Value string
}

// Entries returns the components in received order with labels prettified:
// "series_inductor_nH" becomes "Series Inductor NH".
func (c Components) Entries() []Entry {
	out := make([]Entry, 0, len(c))
	for _, comp := range c {
		out = append(out, Entry{Key: comp.Key, Label: Label(comp.Key), Value: fmt.Sprint(comp.Value)})
	}
	return out
}

// Label turns a snake_case key into a title-cased label.
func Label(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// MatchResult is the /match response.
type MatchResult struct {
	MatchingType string     `json:"matching_type"`
	GammaPath    GammaPath  `json:"gamma_path"`
	Components   Components `json:"components,omitempty"`
}

// SParameters is the /sparams response.
type SParameters struct {
	S11 Pair `json:"s11"`
	S12 Pair `json:"s12"`
	S21 Pair `json:"s21"`
	S22 Pair `json:"s22"`
}

// Prediction is the /predict response.
type Prediction struct {
	PredictedType string  `json:"predicted_type"`
	Confidence    float64 `json:"confidence"`
}

// SweepPoint is one frequency of a /sweep response.
type SweepPoint struct {
	Frequency float64 `json:"frequency"` // GHz
	Gamma     Pair    `json:"gamma"`
}

// Sweep is the /sweep response.
type Sweep struct {
	Points []SweepPoint `json:"points"`
}

// Gammas returns the sweep's reflection coefficients in frequency order as
// received.
func (s *Sweep) Gammas() []smith.Complex {
	if s == nil || len(s.Points) == 0 {
		return nil
	}
	out := make([]smith.Complex, len(s.Points))
	for i, p := range s.Points {
		out[i] = p.Gamma.Complex()
	}
	return out
}
