package units

// Expression is a sum of real and imaginary terms followed by an optional
// unit. Examples: "50", "25 - j10 Ω", "1+2j kΩ", "2.4GHz".
type Expression struct {
	Terms []*Term `@@+`
	Unit  string  `@Ident?`
}

// Term is a signed number that is imaginary when tagged with j, either
// before ("j10") or after ("10j") the number.
type Term struct {
	Sign  string  `@("+" | "-")?`
	PreJ  bool    `@J?`
	Value float64 `@Number`
	PostJ bool    `@J?`
}

// Imaginary reports whether the term carries a j.
func (t *Term) Imaginary() bool {
	return t.PreJ || t.PostJ
}

// Signed returns the term's value with its sign applied.
func (t *Term) Signed() float64 {
	if t.Sign == "-" {
		return -t.Value
	}
	return t.Value
}
