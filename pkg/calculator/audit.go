package calculator

import (
	"fmt"
	"sort"

	"aneeq-retention/pkg/models"
)

/*
SPOT CHECKS → garde-fous exécutés après chaque calcul (dry-run compris) pour
remonter bruyamment une régression de logique avant que l'opérateur ne fasse
confiance aux tables : rétention à 100% en m=0, LTV non décroissante par
série. Une violation est un avertissement, pas une erreur fatale.
*/

type ltvSeriesKey struct {
	CohortMonth string
	Dimension   string
	FirstValue  string
	Metric      string
	Measure     string
	Segment     models.Segment
}

// SpotCheck retourne la liste des violations d'invariants, formatée pour log.
// Liste vide = tout est sain.
func SpotCheck(retention []models.RetentionRow, ltv []models.LTVRow) []string {
	var issues []string

	for _, r := range retention {
		if r.M == 0 && fmt.Sprintf("%.2f", r.Retention) != "100.00" {
			issues = append(issues, fmt.Sprintf(
				"retention m=0 != 100.00%% : cohort=%s dim=%s first=%s seg=%s got=%.2f%%",
				r.CohortMonth, r.Dimension, r.FirstValue, r.Segment, r.Retention))
		}
	}

	series := make(map[ltvSeriesKey][]models.LTVRow)
	for _, r := range ltv {
		k := ltvSeriesKey{r.CohortMonth, r.Dimension, r.FirstValue, r.Metric, r.Measure, r.Segment}
		series[k] = append(series[k], r)
	}
	for k, rows := range series {
		sort.Slice(rows, func(i, j int) bool { return rows[i].M < rows[j].M })
		for i := 1; i < len(rows); i++ {
			if rows[i].LTVPerUser.Cmp(rows[i-1].LTVPerUser) < 0 {
				issues = append(issues, fmt.Sprintf(
					"ltv decroissante : cohort=%s dim=%s first=%s metric=%s measure=%s seg=%s m=%d : %s < %s",
					k.CohortMonth, k.Dimension, k.FirstValue, k.Metric, k.Measure, k.Segment,
					rows[i].M, rows[i].LTVPerUser.StringFixed(2), rows[i-1].LTVPerUser.StringFixed(2)))
			}
		}
	}

	sort.Strings(issues)
	return issues
}
