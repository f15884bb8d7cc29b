package calculator

import (
	"testing"

	"aneeq-retention/pkg/models"
)

func TestProjectActiveMonths_SubscriptionCadence(t *testing.T) {
	cfg := testConfig("2025-06-15")
	orders := []models.Order{
		testOrder("U1", "2025-01-15", 200, []string{"pom hl"}, "3 months"),
	}

	act := ProjectActiveMonths(orders, "2025-04", cfg)
	for _, month := range []string{"2025-01", "2025-02", "2025-03"} {
		if !act.Active("U1", month) {
			t.Fatalf("expected U1 active in %s", month)
		}
		if !act.ActiveInCategory("U1", "pom hl", month) {
			t.Fatalf("expected U1 active in pom hl in %s", month)
		}
	}
	if act.Active("U1", "2025-04") {
		t.Fatal("cadence 3 must not reach april")
	}
}

func TestProjectActiveMonths_StopsAtHorizon(t *testing.T) {
	cfg := testConfig("2025-06-15")
	orders := []models.Order{
		testOrder("U1", "2025-01-15", 200, []string{"pom hl"}, "6 months"),
	}

	act := ProjectActiveMonths(orders, "2025-02", cfg)
	if !act.Active("U1", "2025-02") {
		t.Fatal("expected active within horizon")
	}
	if act.Active("U1", "2025-03") {
		t.Fatal("projection must never cross the horizon")
	}
}

func TestProjectActiveMonths_OnetimeSingleMonth(t *testing.T) {
	cfg := testConfig("2025-06-15")
	orders := []models.Order{
		testOrder("U2", "2025-01-20", 50, []string{"otc sk"}, ""),
	}

	act := ProjectActiveMonths(orders, "2025-04", cfg)
	if !act.Active("U2", "2025-01") || !act.ActiveInCategory("U2", "otc sk", "2025-01") {
		t.Fatal("one-time purchase must cover its own month")
	}
	if act.Active("U2", "2025-02") {
		t.Fatal("one-time purchase must not project forward")
	}
}

// Note de cadence vide héritée de l'autre commande d'abonnement du même
// client, la plus récente par date, qu'elle soit antérieure ou postérieure.
func TestProjectActiveMonths_CadenceInheritedFromOtherOrder(t *testing.T) {
	cfg := testConfig("2025-12-15")
	orders := []models.Order{
		testOrder("U1", "2025-01-10", 200, []string{"pom hl"}, "3 months"),
		testOrder("U1", "2025-02-05", 200, []string{"pom hl"}, ""),
	}

	act := ProjectActiveMonths(orders, "2025-11", cfg)
	// La commande de février hérite de la cadence 3 : fév, mars, avril
	if !act.Active("U1", "2025-04") {
		t.Fatal("empty note must inherit cadence 3, reaching april")
	}
	if act.Active("U1", "2025-05") {
		t.Fatal("inherited cadence is 3, not more")
	}
}

func TestProjectActiveMonths_CadenceInheritedFromFutureOrder(t *testing.T) {
	cfg := testConfig("2025-12-15")
	orders := []models.Order{
		testOrder("U1", "2025-01-10", 200, []string{"pom hl"}, ""),
		testOrder("U1", "2025-05-05", 200, []string{"pom hl"}, "3 months"),
	}

	act := ProjectActiveMonths(orders, "2025-11", cfg)
	// La commande de janvier hérite de la note d'une commande POSTÉRIEURE
	if !act.Active("U1", "2025-03") {
		t.Fatal("cadence must be inherited from a later order too")
	}
	if act.Active("U1", "2025-04") {
		t.Fatal("inherited cadence is 3: jan, feb, mar only")
	}
}

func TestProjectActiveMonths_MixedOrderNonSubCategoryOnlyMonthZero(t *testing.T) {
	cfg := testConfig("2025-12-15")
	orders := []models.Order{
		testOrder("U1", "2025-01-15", 250, []string{"pom hl", "otc sk"}, "3 months"),
	}

	act := ProjectActiveMonths(orders, "2025-11", cfg)
	if !act.ActiveInCategory("U1", "pom hl", "2025-03") {
		t.Fatal("subscription category projects over the cadence")
	}
	if !act.ActiveInCategory("U1", "otc sk", "2025-01") {
		t.Fatal("non-subscription category covers the purchase month")
	}
	if act.ActiveInCategory("U1", "otc sk", "2025-02") {
		t.Fatal("non-subscription category must not be projected")
	}
}

func TestProjectActiveMonths_NoCategoryStillCountsOverall(t *testing.T) {
	cfg := testConfig("2025-12-15")
	orders := []models.Order{
		testOrder("U1", "2025-01-15", 90, nil, ""),
	}

	act := ProjectActiveMonths(orders, "2025-11", cfg)
	if !act.Active("U1", "2025-01") {
		t.Fatal("order without categories still counts in the overall set")
	}
	if len(act.byCategory["U1"]) != 0 {
		t.Fatal("order without categories must have no category-level effect")
	}
}
