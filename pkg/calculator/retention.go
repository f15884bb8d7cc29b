package calculator

import (
	"github.com/schollz/progressbar/v3"

	"aneeq-retention/pkg/models"
)

/*
RÉTENTION → pour chaque cohorte et chaque décalage m (0..MaxOffset, borné par
l'horizon), fraction de la cohorte active au mois cohorte+m. La dimension
catégorie émet deux métriques : "any" (actif dans n'importe quelle catégorie)
et "same" (actif dans la catégorie de la cohorte). m=0 vaut toujours 100% par
construction. Cohorte vide → aucune ligne, jamais de division par zéro.
*/

// ComputeRetention émet les lignes de rétention pour les trois segments.
func ComputeRetention(profiles map[string]*CustomerProfile, act *Activity, asOf string, cfg models.Config, bar *progressbar.ProgressBar) []models.RetentionRow {
	var rows []models.RetentionRow

	for _, seg := range models.Segments {
		segProfiles := filterSegment(profiles, seg)

		// Dimension overall
		cohorts := overallCohorts(segProfiles)
		for _, month := range sortedKeys(cohorts) {
			uids := cohorts[month]
			size := len(uids)
			if size == 0 {
				continue
			}
			cohortDate, err := MonthKeyDate(month)
			if err != nil {
				continue
			}

			for offset := 0; offset <= cfg.MaxOffset; offset++ {
				target := MonthKey(AddMonths(cohortDate, offset))
				if target > asOf {
					break
				}
				retained := 0
				for _, uid := range uids {
					if act.Active(uid, target) {
						retained++
					}
				}
				rows = append(rows, models.RetentionRow{
					CohortMonth: month + "-01",
					Dimension:   "overall",
					FirstValue:  "ALL",
					M:           offset,
					Metric:      "any",
					Segment:     seg,
					CohortSize:  size,
					Retention:   float64(retained) / float64(size) * 100,
				})
			}
			if bar != nil {
				_ = bar.Add(1)
			}
		}

		// Dimension catégorie
		catCohorts := categoryCohorts(segProfiles)
		for _, month := range sortedKeys(catCohorts) {
			cohortDate, err := MonthKeyDate(month)
			if err != nil {
				continue
			}
			for _, cat := range sortedKeys(catCohorts[month]) {
				uids := catCohorts[month][cat]
				size := len(uids)
				if size == 0 {
					continue
				}

				for offset := 0; offset <= cfg.MaxOffset; offset++ {
					target := MonthKey(AddMonths(cohortDate, offset))
					if target > asOf {
						break
					}
					retainedAny := 0
					retainedSame := 0
					for _, uid := range uids {
						if act.Active(uid, target) {
							retainedAny++
						}
						if act.ActiveInCategory(uid, cat, target) {
							retainedSame++
						}
					}
					rows = append(rows,
						models.RetentionRow{
							CohortMonth: month + "-01",
							Dimension:   "category",
							FirstValue:  cat,
							M:           offset,
							Metric:      "any",
							Segment:     seg,
							CohortSize:  size,
							Retention:   float64(retainedAny) / float64(size) * 100,
						},
						models.RetentionRow{
							CohortMonth: month + "-01",
							Dimension:   "category",
							FirstValue:  cat,
							M:           offset,
							Metric:      "same",
							Segment:     seg,
							CohortSize:  size,
							Retention:   float64(retainedSame) / float64(size) * 100,
						})
				}
			}
			if bar != nil {
				_ = bar.Add(1)
			}
		}
	}
	return rows
}
