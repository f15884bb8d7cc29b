package calculator

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var cadenceRe = regexp.MustCompile(`(?i)(\d+)\s*(?:months?|mos?)\b`)

// ParseCadence extrait la cadence d'abonnement (en mois) d'une note libre.
// Toutes les occurrences "N month(s)" / "N mo(s)" sont sommées ; à défaut la
// note entière est tentée comme entier nu ("1", "3"). Résultat ≤ 0 ou
// illisible → 1.
func ParseCadence(note string) int {
	note = strings.TrimSpace(note)
	if note == "" {
		return 1
	}

	total := 0
	for _, m := range cadenceRe.FindAllStringSubmatch(note, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		total += n
	}

	if total == 0 {
		// Repli : note entière comme entier nu ("1" pour les renouvellements WC)
		if n, err := strconv.Atoi(note); err == nil {
			total = n
		}
	}

	if total <= 0 {
		return 1
	}
	return total
}

// PrioritizeCategory retourne la catégorie la mieux classée de la liste selon
// l'ordre de priorité configuré. Les catégories inconnues passent après toutes
// les connues, départagées alphabétiquement. Liste vide → "".
func PrioritizeCategory(categories []string, priority []string) string {
	rank := make(map[string]int, len(priority))
	for i, c := range priority {
		rank[c] = i
	}

	// Déduplication en conservant l'ordre d'apparition
	seen := make(map[string]bool, len(categories))
	unique := make([]string, 0, len(categories))
	for _, c := range categories {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		unique = append(unique, c)
	}
	if len(unique) == 0 {
		return ""
	}

	sort.SliceStable(unique, func(i, j int) bool {
		ri, oki := rank[unique[i]]
		rj, okj := rank[unique[j]]
		if oki && okj {
			return ri < rj
		}
		if oki != okj {
			return oki // les connues avant les inconnues
		}
		return unique[i] < unique[j]
	})
	return unique[0]
}
