// Package cardtype detects the card network a card number, or a prefix of
// one, may belong to.
//
// The rule table is compiled in and never modified, so every function here is
// safe for concurrent use without locking. Nothing in this package validates
// the Luhn checksum or the full length of a number.
package cardtype

// Code describes the security code printed on a card of a given brand.
type Code struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// Type is the public descriptor of a card brand. Values returned by this
// package are copies; callers may modify them freely.
type Type struct {
	NiceType string `json:"niceType"`
	Type     string `json:"type"`
	Gaps     []int  `json:"gaps"`
	Lengths  []int  `json:"lengths"`
	Code     Code   `json:"code"`
	IsAmex   bool   `json:"isAmex,omitempty"`
}

func (t Type) clone() Type {
	dupe := t
	dupe.Gaps = append([]int(nil), t.Gaps...)
	dupe.Lengths = append([]int(nil), t.Lengths...)
	return dupe
}

// Classify returns the brands number may belong to, in table order.
//
// An empty number matches every brand. Once a brand's exact rule matches,
// only exact matches are returned; otherwise the brands whose prefix rule
// still allows number are returned. The result is empty, never nil, when
// nothing matches.
func Classify(number string) []Type {
	exact := make([]Type, 0, 1)
	prefix := make([]Type, 0, len(table))

	for i := range table {
		r := &table[i]
		switch {
		case number == "":
			prefix = append(prefix, r.info.clone())
		case r.exact.match(number):
			exact = append(exact, r.info.clone())
		case r.prefix.match(number):
			prefix = append(prefix, r.info.clone())
		}
	}

	if len(exact) > 0 {
		return exact
	}
	return prefix
}

// Brand returns the only brand number matches. ok is false when number is
// unknown or still ambiguous.
func Brand(number string) (Type, bool) {
	types := Classify(number)
	if len(types) != 1 {
		return Type{}, false
	}
	return types[0], true
}

// Lookup returns the descriptor of the brand identified by id.
func Lookup(id string) (Type, bool) {
	r, ok := index[id]
	if !ok {
		return Type{}, false
	}
	return r.info.clone(), true
}

// Types returns the identifiers of all supported brands in table order.
func Types() []string {
	ids := make([]string, 0, len(table))
	for i := range table {
		ids = append(ids, table[i].info.Type)
	}
	return ids
}
