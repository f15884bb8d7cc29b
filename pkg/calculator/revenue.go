package calculator

import (
	"github.com/shopspring/decimal"

	"aneeq-retention/pkg/models"
)

/*
REVENU PAR MOIS → sommes mensuelles par client, globalement et par catégorie.
Une commande multi-catégories est répartie à parts égales entre ses catégories
pour la vue par catégorie (politique métier simplificatrice assumée, même
quand les catégories n'ont rien de comparable en prix).
*/

// MoneyByMonth accumule un montant (revenu ou marge) par client et par mois.
type MoneyByMonth struct {
	overall    map[string]map[string]decimal.Decimal
	byCategory map[string]map[string]map[string]decimal.Decimal
}

// Month retourne le montant du client pour le mois donné (0 si absent).
func (m *MoneyByMonth) Month(uid, month string) decimal.Decimal {
	return m.overall[uid][month]
}

// CategoryMonth retourne la part du mois attribuée à la catégorie donnée.
func (m *MoneyByMonth) CategoryMonth(uid, cat, month string) decimal.Decimal {
	return m.byCategory[uid][cat][month]
}

// AccumulateMoney agrège value(order) par client et par mois, bornée par
// l'horizon. Les maps internes s'initialisent au premier accès, la valeur
// zéro de decimal étant un vrai zéro.
func AccumulateMoney(orders []models.Order, asOf string, value func(models.Order) decimal.Decimal) *MoneyByMonth {
	m := &MoneyByMonth{
		overall:    make(map[string]map[string]decimal.Decimal),
		byCategory: make(map[string]map[string]map[string]decimal.Decimal),
	}

	for _, o := range orders {
		if o.MonthKey > asOf {
			continue
		}
		v := value(o)

		months := m.overall[o.UID]
		if months == nil {
			months = make(map[string]decimal.Decimal)
			m.overall[o.UID] = months
		}
		months[o.MonthKey] = months[o.MonthKey].Add(v)

		if len(o.Categories) == 0 {
			continue
		}
		share := v.Div(decimal.NewFromInt(int64(len(o.Categories))))
		byCat := m.byCategory[o.UID]
		if byCat == nil {
			byCat = make(map[string]map[string]decimal.Decimal)
			m.byCategory[o.UID] = byCat
		}
		for _, cat := range o.Categories {
			catMonths := byCat[cat]
			if catMonths == nil {
				catMonths = make(map[string]decimal.Decimal)
				byCat[cat] = catMonths
			}
			catMonths[o.MonthKey] = catMonths[o.MonthKey].Add(share)
		}
	}
	return m
}
