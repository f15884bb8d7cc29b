package ledger

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var priceRe = regexp.MustCompile(`[-+]?\d*\.?\d+`)

// ParsePrice lit un montant depuis une chaîne au format libre (symboles
// monétaires, séparateurs de milliers). Premier nombre décimal trouvé,
// sinon 0, jamais d'erreur.
func ParsePrice(raw string) decimal.Decimal {
	if raw == "" {
		return decimal.Zero
	}
	cleaned := strings.ReplaceAll(raw, ",", "")
	m := priceRe.FindString(cleaned)
	if m == "" {
		return decimal.Zero
	}
	m = strings.TrimPrefix(m, "+")
	d, err := decimal.NewFromString(m)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// SplitValues découpe un champ multi-valeurs (";" ou ","), normalise en
// minuscules, écarte les vides et déduplique en conservant l'ordre.
func SplitValues(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ';' || r == ','
	})
	seen := make(map[string]bool, len(parts))
	var out []string
	for _, p := range parts {
		v := strings.ToLower(strings.TrimSpace(p))
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// ParseOrderDate lit une date de commande : DD/MM/YYYY, DD-MM-YYYY ou
// YYYY-MM-DD, suffixe horaire après espace ignoré. Année sur 2 chiffres
// interprétée 20xx. Retourne false si la date est illisible.
func ParseOrderDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	if i := strings.IndexByte(raw, ' '); i >= 0 {
		raw = raw[:i]
	}
	parts := strings.Split(strings.ReplaceAll(raw, "-", "/"), "/")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	var y, m, d int
	var err [3]error
	if len(parts[0]) == 4 {
		// YYYY/MM/DD
		y, err[0] = strconv.Atoi(parts[0])
		m, err[1] = strconv.Atoi(parts[1])
		d, err[2] = strconv.Atoi(parts[2])
	} else {
		// DD/MM/YYYY
		d, err[0] = strconv.Atoi(parts[0])
		m, err[1] = strconv.Atoi(parts[1])
		y, err[2] = strconv.Atoi(parts[2])
	}
	if err[0] != nil || err[1] != nil || err[2] != nil {
		return time.Time{}, false
	}
	if y < 100 {
		y += 2000
	}
	if m < 1 || m > 12 || d < 1 || d > 31 {
		return time.Time{}, false
	}

	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	// time.Date normalise les dates invalides (30 février...) : on rejette
	// toute date qui ne retombe pas exactement sur ses composantes.
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return time.Time{}, false
	}
	return t, true
}
