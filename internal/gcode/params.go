package gcode

import "sort"

// ParamSet is a letter-keyed set of numeric parameters. Equality and
// membership are keyed on the letter alone: inserting a second value under
// a letter already present is a no-op, which is the mechanism by which a
// malformed line like "G1 X95 X96" collapses to a single X. This mirrors
// the Rust source's HashSet<PosVal>, whose Hash impl hashes only the
// variant tag and whose Eq impl likewise ignores the payload.
type ParamSet struct {
	values map[byte]float64
	order  []byte
}

// newParamSet returns an empty set.
func newParamSet() ParamSet {
	return ParamSet{values: make(map[byte]float64)}
}

// add inserts a value for letter, silently dropping it if the letter is
// already present (first occurrence wins, matching HashSet::from_iter).
func (p *ParamSet) add(letter byte, value float64) {
	if _, exists := p.values[letter]; exists {
		return
	}
	if p.values == nil {
		p.values = make(map[byte]float64)
	}
	p.values[letter] = value
	p.order = append(p.order, letter)
}

// Get returns the value stored for letter, if any.
func (p ParamSet) Get(letter byte) (float64, bool) {
	v, ok := p.values[letter]
	return v, ok
}

// Has reports whether letter was present in the parsed line.
func (p ParamSet) Has(letter byte) bool {
	_, ok := p.values[letter]
	return ok
}

// Len is the number of distinct letters present.
func (p ParamSet) Len() int {
	return len(p.values)
}

// Letters returns the set's letters in first-seen order.
func (p ParamSet) Letters() []byte {
	out := make([]byte, len(p.order))
	copy(out, p.order)
	return out
}

// sortedLetters returns the set's letters in ascending byte order,
// independent of insertion order. It currently has no callers.
func (p ParamSet) sortedLetters() []byte {
	out := append([]byte(nil), p.order...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// linearLetters are the letters recognised on G0/G1/G92 lines.
const linearLetters = "ABCEFSUVWXYZ"

// arcLetters are the letters recognised on G2/G3 lines, a superset of
// linearLetters adding the arc-specific I, J, P, R.
const arcLetters = "ABCEFSUVWXYZIJPR"

func isRecognisedLetter(letter byte, set string) bool {
	for i := 0; i < len(set); i++ {
		if set[i] == letter {
			return true
		}
	}
	return false
}
