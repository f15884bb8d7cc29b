package calculator

import (
	"log"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"

	"aneeq-retention/pkg/models"
)

// Results porte les deux tables calculées et les bornes de l'analyse.
type Results struct {
	MaxMonth  string // dernier mois présent dans les données
	AsOfMonth string // horizon effectif après clamp
	Retention []models.RetentionRow
	LTV       []models.LTVRow
}

// Run exécute le pipeline complet sur un ledger en mémoire : profils clients,
// projection des mois actifs, cartes de revenu/marge, puis les deux
// agrégations. Calcul pur, mono-passe ; un ledger vide produit des tables
// vides sans erreur.
func Run(orders []models.Order, cfg models.Config) (*Results, error) {
	res := &Results{}
	if len(orders) == 0 {
		return res, nil
	}
	if cfg.MaxOffset <= 0 {
		cfg.MaxOffset = 12
	}
	obs := cfg.Observation
	if obs.IsZero() {
		obs = time.Now().UTC()
	}

	maxMonth := ""
	for _, o := range orders {
		if o.MonthKey > maxMonth {
			maxMonth = o.MonthKey
		}
	}
	asOf := ClampAsOfMonth(maxMonth, obs)
	res.MaxMonth = maxMonth
	res.AsOfMonth = asOf
	if cfg.Verbose {
		log.Printf("[INFO] max month=%s | asOfMonth (clamped)=%s", maxMonth, asOf)
	}

	profiles := BuildCustomerProfiles(orders, cfg)
	activity := ProjectActiveMonths(orders, asOf, cfg)
	revenue := AccumulateMoney(orders, asOf, func(o models.Order) decimal.Decimal { return o.Price })
	margin := AccumulateMoney(orders, asOf, models.Order.GrossMargin)

	// Un tick par cohorte traitée, rétention puis LTV
	total := 0
	for _, seg := range models.Segments {
		segProfiles := filterSegment(profiles, seg)
		total += len(overallCohorts(segProfiles)) + len(categoryCohorts(segProfiles))
	}
	bar := progressbar.Default(int64(total * 2))

	res.Retention = ComputeRetention(profiles, activity, asOf, cfg, bar)
	res.LTV = ComputeLTV(profiles, revenue, margin, asOf, cfg, bar)

	if cfg.Verbose {
		log.Printf("[INFO] retention rows=%d | ltv rows=%d | clients=%d",
			len(res.Retention), len(res.LTV), len(profiles))
	}
	return res, nil
}
