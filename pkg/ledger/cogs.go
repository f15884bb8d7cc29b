package ledger

import (
	"github.com/shopspring/decimal"

	"aneeq-retention/pkg/config"
)

/*
Coût des marchandises (COGS). Deux régimes de coûts s'appliquent selon le mois
de la commande : la table "old" strictement avant le mois de bascule, la table
"new" à partir de celui-ci. Le coût d'une commande est la somme des coûts de
ses SKUs ; un SKU absent de la table est remplacé par le coût de repli de ses
catégories (une commande sans aucun SKU coté retombe sur ses catégories).
*/

type costTable struct {
	sku      map[string]decimal.Decimal
	category map[string]decimal.Decimal
}

func newCostTable(t config.CostTable) costTable {
	ct := costTable{
		sku:      make(map[string]decimal.Decimal, len(t.SKU)),
		category: make(map[string]decimal.Decimal, len(t.Category)),
	}
	for k, v := range t.SKU {
		ct.sku[k] = decimal.NewFromFloat(v)
	}
	for k, v := range t.Category {
		ct.category[k] = decimal.NewFromFloat(v)
	}
	return ct
}

// CostBook résout le COGS d'une commande à partir de sa clé mensuelle,
// de ses catégories et de ses SKUs.
type CostBook struct {
	cutoffMonth string
	old         costTable
	new         costTable
}

// NewCostBook construit le CostBook depuis la configuration.
func NewCostBook(cfg config.CogsConfig) *CostBook {
	return &CostBook{
		cutoffMonth: cfg.CutoffMonth,
		old:         newCostTable(cfg.Old),
		new:         newCostTable(cfg.New),
	}
}

// OrderCOGS calcule le coût des marchandises d'une commande.
// Catégorie sans coût configuré → contribution nulle.
func (b *CostBook) OrderCOGS(monthKey string, categories, skus []string) decimal.Decimal {
	table := b.new
	if b.cutoffMonth != "" && monthKey < b.cutoffMonth {
		table = b.old
	}

	total := decimal.Zero
	matched := false
	for _, s := range skus {
		if c, ok := table.sku[s]; ok {
			total = total.Add(c)
			matched = true
		}
	}
	if matched {
		return total
	}

	// Repli : somme des coûts par catégorie
	for _, cat := range categories {
		if c, ok := table.category[cat]; ok {
			total = total.Add(c)
		}
	}
	return total
}
