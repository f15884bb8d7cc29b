package calculator

import (
	"testing"

	"github.com/shopspring/decimal"

	"aneeq-retention/pkg/models"
)

// Une commande de 100 sur deux catégories apporte exactement 50 à
// chacune pour le mois de la commande.
func TestAccumulateMoney_EvenCategorySplit(t *testing.T) {
	orders := []models.Order{
		testOrder("U1", "2025-01-15", 100, []string{"pom hl", "otc sk"}, ""),
	}
	rev := AccumulateMoney(orders, "2025-12", func(o models.Order) decimal.Decimal { return o.Price })

	if got := rev.Month("U1", "2025-01"); !got.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("overall: got %s, want 100", got)
	}
	want := decimal.NewFromInt(50)
	if got := rev.CategoryMonth("U1", "pom hl", "2025-01"); !got.Equal(want) {
		t.Fatalf("pom hl share: got %s, want 50", got)
	}
	if got := rev.CategoryMonth("U1", "otc sk", "2025-01"); !got.Equal(want) {
		t.Fatalf("otc sk share: got %s, want 50", got)
	}
}

func TestAccumulateMoney_SumsSameMonth(t *testing.T) {
	orders := []models.Order{
		testOrder("U1", "2025-01-05", 100, []string{"pom hl"}, ""),
		testOrder("U1", "2025-01-25", 40, []string{"pom hl"}, ""),
	}
	rev := AccumulateMoney(orders, "2025-12", func(o models.Order) decimal.Decimal { return o.Price })
	if got := rev.Month("U1", "2025-01"); !got.Equal(decimal.NewFromInt(140)) {
		t.Fatalf("got %s, want 140", got)
	}
}

func TestAccumulateMoney_HonorsHorizon(t *testing.T) {
	orders := []models.Order{
		testOrder("U1", "2025-01-05", 100, []string{"pom hl"}, ""),
		testOrder("U1", "2025-06-05", 100, []string{"pom hl"}, ""),
	}
	rev := AccumulateMoney(orders, "2025-03", func(o models.Order) decimal.Decimal { return o.Price })
	if !rev.Month("U1", "2025-06").IsZero() {
		t.Fatal("order past the horizon must not be accumulated")
	}
}

// La marge est plafonnée à zéro par commande : jamais négative, même
// quand le coût catalogue dépasse le montant payé.
func TestAccumulateMoney_MarginFloor(t *testing.T) {
	o := testOrder("U1", "2025-01-15", 50, []string{"pom hl"}, "")
	o.COGS = decimal.NewFromInt(80)

	if gm := o.GrossMargin(); !gm.IsZero() {
		t.Fatalf("gross margin: got %s, want 0", gm)
	}

	margin := AccumulateMoney([]models.Order{o}, "2025-12", models.Order.GrossMargin)
	if got := margin.Month("U1", "2025-01"); !got.IsZero() {
		t.Fatalf("accumulated margin: got %s, want 0", got)
	}
}

func TestAccumulateMoney_NoCategoriesOnlyOverall(t *testing.T) {
	orders := []models.Order{
		testOrder("U1", "2025-01-15", 90, nil, ""),
	}
	rev := AccumulateMoney(orders, "2025-12", func(o models.Order) decimal.Decimal { return o.Price })
	if got := rev.Month("U1", "2025-01"); !got.Equal(decimal.NewFromInt(90)) {
		t.Fatalf("got %s, want 90", got)
	}
	if len(rev.byCategory["U1"]) != 0 {
		t.Fatal("no category map expected for category-less order")
	}
}
