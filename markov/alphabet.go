package markov

import "fmt"

// Alphabet maps between string symbols and their zero-based indices.
// Indices follow the order in which symbols were added.
type Alphabet struct {
	ToID  map[string]int `json:"to_id"`
	ToStr []string       `json:"to_str"`
}

// NewAlphabet builds an alphabet from an ordered list of distinct symbols.
// A repeated symbol yields ErrDuplicateSymbol.
func NewAlphabet(symbols []string) (*Alphabet, error) {
	a := &Alphabet{
		ToID:  make(map[string]int, len(symbols)),
		ToStr: make([]string, 0, len(symbols)),
	}
	for i, s := range symbols {
		if prev, ok := a.ToID[s]; ok {
			return nil, fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateSymbol, s, prev, i)
		}
		a.ToID[s] = len(a.ToStr)
		a.ToStr = append(a.ToStr, s)
	}
	return a, nil
}

// Get returns the index for a symbol, or -1 if not found.
func (a *Alphabet) Get(s string) int {
	if id, ok := a.ToID[s]; ok {
		return id
	}
	return -1
}

// Size returns the number of entries.
func (a *Alphabet) Size() int {
	return len(a.ToStr)
}

// Symbols returns a copy of the symbols in index order.
func (a *Alphabet) Symbols() []string {
	return append([]string(nil), a.ToStr...)
}
