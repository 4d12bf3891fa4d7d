// Package matching provides the pure similarity primitives shared by the
// screening engine and entity resolver (§4.1). No I/O, no state.
package matching

import (
	"strings"

	"github.com/banking/aml-core/internal/domain"
)

// NameSimilarity normalizes both inputs (lowercase, strip non-letters and
// non-spaces, tokenize on whitespace) and returns the token-set Jaccard
// similarity |A∩B| / |A∪B|. Exact post-normalization equality returns 1.0;
// disjoint token sets return 0.0.
func NameSimilarity(a, b string) float64 {
	na, nb := normalize(a), normalize(b)
	if na == nb {
		return 1.0
	}
	ta, tb := tokenSet(na), tokenSet(nb)
	if len(ta) == 0 || len(tb) == 0 {
		return 0.0
	}
	inter := 0
	for t := range ta {
		if tb[t] {
			inter++
		}
	}
	union := len(ta) + len(tb) - inter
	if union == 0 {
		return 0.0
	}
	return float64(inter) / float64(union)
}

func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func tokenSet(normalized string) map[string]bool {
	fields := strings.Fields(normalized)
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}

// AddressSimilarity is the mean of per-field scores over {country exact
// match, city case-insensitive match, postal code exact match, street1 via
// NameSimilarity}, averaging only fields present in both addresses (§4.1).
func AddressSimilarity(a, b domain.Address) float64 {
	var total float64
	var n int

	if a.Country != "" && b.Country != "" {
		n++
		if strings.EqualFold(a.Country, b.Country) {
			total += 1.0
		}
	}
	if a.City != "" && b.City != "" {
		n++
		if strings.EqualFold(a.City, b.City) {
			total += 1.0
		}
	}
	if a.PostalCode != "" && b.PostalCode != "" {
		n++
		if strings.EqualFold(a.PostalCode, b.PostalCode) {
			total += 1.0
		}
	}
	if a.Street1 != "" && b.Street1 != "" {
		n++
		total += NameSimilarity(a.Street1, b.Street1)
	}
	if n == 0 {
		return 0.0
	}
	return total / float64(n)
}

// IdentifierMatch reports whether two identifiers are the same type, value
// (case-insensitive), and issuing country (§4.1).
func IdentifierMatch(a, b domain.Identifier) bool {
	return a.Type == b.Type &&
		strings.EqualFold(a.Value, b.Value) &&
		strings.EqualFold(a.IssuingCountry, b.IssuingCountry)
}
