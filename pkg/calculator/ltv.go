package calculator

import (
	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"

	"aneeq-retention/pkg/models"
)

/*
LTV → même boucle cohorte × décalage que la rétention, mais on cumule un
montant par utilisateur : somme des revenus (ou marges) des membres sur les
mois 0..m, divisée par la taille de la cohorte, arrondie à 2 décimales.
Cumul de quantités positives : la série est non décroissante en m, exactement.
*/

const cohortType = "purchase"

// ComputeLTV émet les lignes LTV (mesures revenue et gm) pour les trois
// segments. Le cumul est entretenu de proche en proche au lieu de resommer
// 0..m à chaque décalage.
func ComputeLTV(profiles map[string]*CustomerProfile, revenue, margin *MoneyByMonth, asOf string, cfg models.Config, bar *progressbar.ProgressBar) []models.LTVRow {
	var rows []models.LTVRow

	measures := []struct {
		name  string
		money *MoneyByMonth
	}{
		{"revenue", revenue},
		{"gm", margin},
	}

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
			divisor := decimal.NewFromInt(int64(size))

			for _, meas := range measures {
				running := decimal.Zero
				for offset := 0; offset <= cfg.MaxOffset; offset++ {
					target := MonthKey(AddMonths(cohortDate, offset))
					if target > asOf {
						break
					}
					for _, uid := range uids {
						running = running.Add(meas.money.Month(uid, target))
					}
					rows = append(rows, models.LTVRow{
						CohortType:  cohortType,
						CohortMonth: month + "-01",
						Dimension:   "overall",
						FirstValue:  "ALL",
						M:           offset,
						Metric:      "any",
						Measure:     meas.name,
						Segment:     seg,
						CohortSize:  size,
						LTVPerUser:  running.Div(divisor).Round(2),
					})
				}
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
				divisor := decimal.NewFromInt(int64(size))

				for _, meas := range measures {
					runningAny := decimal.Zero
					runningSame := decimal.Zero
					for offset := 0; offset <= cfg.MaxOffset; offset++ {
						target := MonthKey(AddMonths(cohortDate, offset))
						if target > asOf {
							break
						}
						for _, uid := range uids {
							// "any" : tout le revenu du client, toutes catégories.
							runningAny = runningAny.Add(meas.money.Month(uid, target))
							// "same" : la seule part attribuée à la catégorie de la cohorte.
							runningSame = runningSame.Add(meas.money.CategoryMonth(uid, cat, target))
						}
						rows = append(rows,
							models.LTVRow{
								CohortType:  cohortType,
								CohortMonth: month + "-01",
								Dimension:   "category",
								FirstValue:  cat,
								M:           offset,
								Metric:      "any",
								Measure:     meas.name,
								Segment:     seg,
								CohortSize:  size,
								LTVPerUser:  runningAny.Div(divisor).Round(2),
							},
							models.LTVRow{
								CohortType:  cohortType,
								CohortMonth: month + "-01",
								Dimension:   "category",
								FirstValue:  cat,
								M:           offset,
								Metric:      "same",
								Measure:     meas.name,
								Segment:     seg,
								CohortSize:  size,
								LTVPerUser:  runningSame.Div(divisor).Round(2),
							})
					}
				}
			}
			if bar != nil {
				_ = bar.Add(1)
			}
		}
	}
	return rows
}
