package calculator

import (
	"fmt"
	"time"
)

// MonthKey formate une date en clé mensuelle "YYYY-MM" (zéro-paddée).
func MonthKey(d time.Time) string {
	return fmt.Sprintf("%04d-%02d", d.Year(), int(d.Month()))
}

// MonthKeyDate retourne le premier jour (UTC) du mois désigné par une clé "YYYY-MM".
func MonthKeyDate(key string) (time.Time, error) {
	t, err := time.Parse("2006-01", key)
	if err != nil {
		return time.Time{}, fmt.Errorf("clé mensuelle invalide %q: %w", key, err)
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}

// AddMonths retourne le premier jour du mois situé n mois après celui de d.
// time.Date normalise les mois hors bornes, donc le passage d'année
// fonctionne dans les deux sens (n négatif compris).
func AddMonths(d time.Time, n int) time.Time {
	return time.Date(d.Year(), d.Month()+time.Month(n), 1, 0, 0, 0, 0, time.UTC)
}

// ClampAsOfMonth borne l'horizon d'analyse : min(dernier mois présent dans les
// données, dernier mois calendaire entièrement écoulé à la date du run).
// Évite qu'un mois courant partiel ne tire vers le bas les cohortes récentes.
func ClampAsOfMonth(maxMonth string, now time.Time) string {
	lastFull := AddMonths(now, -1)
	baseline := MonthKey(lastFull)
	if maxMonth == "" {
		return baseline
	}
	// Les clés "YYYY-MM" se comparent lexicographiquement.
	if maxMonth < baseline {
		return maxMonth
	}
	return baseline
}
