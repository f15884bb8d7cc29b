package ledger

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"aneeq-retention/pkg/models"
)

const csvHeader = "Order_id,Status Order,Order Date,Price,Category,SKUs,Notes,name_uid\n"

func TestReadCSV_DeliveredOnly(t *testing.T) {
	in := csvHeader +
		"A1,Delivered,15/01/2025,200,pom hl,oral minoxidil,1 month,U1\n" +
		"A2,Cancelled,16/01/2025,200,pom hl,oral minoxidil,1 month,U1\n" +
		"A3,refunded,17/01/2025,200,pom hl,,,U2\n"

	orders, stats, err := ReadCSV(strings.NewReader(in), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("got %d orders, want 1", len(orders))
	}
	if orders[0].ID != "A1" || orders[0].UID != "U1" || orders[0].MonthKey != "2025-01" {
		t.Fatalf("unexpected order: %+v", orders[0])
	}
	if stats.Loaded != 1 || stats.SkippedStatus != 2 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestReadCSV_SkipCounters(t *testing.T) {
	in := csvHeader +
		"A1,Delivered,pas une date,200,pom hl,,,U1\n" +
		"A2,Delivered,15/01/2025,200,pom hl,,,  \n" +
		"A3,pending,15/01/2025,200,pom hl,,,U1\n" +
		"A4,Delivered,16/01/2025,150,otc sk,,,U2\n"

	orders, stats, err := ReadCSV(strings.NewReader(in), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("got %d orders, want 1", len(orders))
	}
	if stats.SkippedDate != 1 || stats.SkippedUID != 1 || stats.SkippedStatus != 1 || stats.Loaded != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

// Un enregistrement CSV illisible (guillemet orphelin) est compté comme
// malformé, pas comme une date invalide : le diagnostic opérateur doit
// pointer le bon motif.
func TestReadCSV_MalformedRecordCounted(t *testing.T) {
	in := csvHeader +
		"A1,Delivered,15/01/2025,200,pom hl,,,U1\n" +
		"A2,Deli\"vered,16/01/2025,200,pom hl,,,U1\n" +
		"A3,Delivered,17/01/2025,150,otc sk,,,U2\n"

	orders, stats, err := ReadCSV(strings.NewReader(in), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 2 {
		t.Fatalf("got %d orders, want 2", len(orders))
	}
	if stats.SkippedMalformed != 1 {
		t.Fatalf("got %d malformed, want 1", stats.SkippedMalformed)
	}
	if stats.SkippedDate != 0 {
		t.Fatalf("got %d bad dates, want 0: %+v", stats.SkippedDate, stats)
	}
}

func TestReadCSV_SyntheticOrderID(t *testing.T) {
	in := csvHeader +
		",Delivered,15/01/2025,200,pom hl,,,U1\n"

	orders, _, err := ReadCSV(strings.NewReader(in), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 1 {
		t.Fatalf("got %d orders, want 1", len(orders))
	}
	id := orders[0].ID
	if !strings.HasPrefix(id, "2025-01:") || len(id) != len("2025-01:")+8 {
		t.Fatalf("unexpected synthetic id %q", id)
	}
}

func TestReadCSV_FieldsNormalized(t *testing.T) {
	in := csvHeader +
		"A1,Delivered,2025-01-15,AED 1,\"POM HL; OTC SK\",\"Oral Minoxidil, SHAMPOO\",tous les 2 months,U1\n"

	orders, _, err := ReadCSV(strings.NewReader(in), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	o := orders[0]
	if len(o.Categories) != 2 || o.Categories[0] != "pom hl" || o.Categories[1] != "otc sk" {
		t.Fatalf("unexpected categories %v", o.Categories)
	}
	if len(o.SKUs) != 2 || o.SKUs[0] != "oral minoxidil" || o.SKUs[1] != "shampoo" {
		t.Fatalf("unexpected skus %v", o.SKUs)
	}
	if o.Notes != "tous les 2 months" {
		t.Fatalf("unexpected notes %q", o.Notes)
	}
	if !o.Price.Equal(decimal.NewFromInt(1)) {
		t.Fatalf("unexpected price %s", o.Price)
	}
}

func TestReadCSV_CostBookApplied(t *testing.T) {
	in := csvHeader +
		"A1,Delivered,15/02/2025,200,pom hl,oral minoxidil,,U1\n" +
		"A2,Delivered,15/04/2025,200,pom hl,oral minoxidil,,U1\n"

	orders, _, err := ReadCSV(strings.NewReader(in), testCostBook())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !orders[0].COGS.Equal(decimal.NewFromInt(42)) {
		t.Fatalf("fevrier: got %s, want 42", orders[0].COGS)
	}
	if !orders[1].COGS.Equal(decimal.NewFromInt(36)) {
		t.Fatalf("avril: got %s, want 36", orders[1].COGS)
	}
}

func TestReadCSV_EmptyInput(t *testing.T) {
	orders, stats, err := ReadCSV(strings.NewReader(""), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if orders != nil || stats.Loaded != 0 {
		t.Fatalf("got %v / %+v, want empty", orders, stats)
	}

	// En-tête seul : aucune commande, aucun écart
	orders, stats, err = ReadCSV(strings.NewReader(csvHeader), nil)
	if err != nil || orders != nil || stats != (models.LoadStats{}) {
		t.Fatalf("header only: got %v %+v %v", orders, stats, err)
	}
}
