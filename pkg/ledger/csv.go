package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"aneeq-retention/pkg/calculator"
	"aneeq-retention/pkg/models"
)

/*
Chargement du ledger depuis l'export CSV allorders. Colonnes adressées par
en-tête : Order_id, Status Order, Order Date, Price, Category, SKUs, Notes,
name_uid. Les lignes malformées sont écartées et comptées, jamais fatales ;
un ledger sans aucune ligne exploitable produit des sorties vides.
*/

// rawRow porte les champs logiques d'une ligne du ledger avant validation,
// quel que soit le support (CSV ou base).
type rawRow struct {
	ID       string
	Status   string
	Date     string
	Price    string
	Category string
	SKUs     string
	Notes    string
	UID      string
}

// buildOrder applique le filtre fixe (statut delivered, date lisible, uid non
// vide) et dérive mois, montants, catégories et COGS. Retourne false quand la
// ligne est écartée, en incrémentant le compteur du motif.
func buildOrder(raw rawRow, book *CostBook, stats *models.LoadStats) (models.Order, bool) {
	status := strings.ToLower(strings.TrimSpace(raw.Status))
	if status != "delivered" {
		stats.SkippedStatus++
		return models.Order{}, false
	}

	d, ok := ParseOrderDate(raw.Date)
	if !ok {
		stats.SkippedDate++
		return models.Order{}, false
	}

	uid := strings.TrimSpace(raw.UID)
	if uid == "" {
		stats.SkippedUID++
		return models.Order{}, false
	}

	monthKey := calculator.MonthKey(d)

	id := strings.TrimSpace(raw.ID)
	if id == "" {
		// Identifiant synthétique pour les lignes sans Order_id
		id = monthKey + ":" + uuid.NewString()[:8]
	}

	o := models.Order{
		ID:         id,
		UID:        uid,
		Date:       d,
		MonthKey:   monthKey,
		Price:      ParsePrice(raw.Price),
		Categories: SplitValues(raw.Category),
		SKUs:       SplitValues(raw.SKUs),
		Notes:      raw.Notes,
	}
	if book != nil {
		o.COGS = book.OrderCOGS(monthKey, o.Categories, o.SKUs)
	} else {
		o.COGS = decimal.Zero
	}

	stats.Loaded++
	return o, true
}

// LoadCSV charge les commandes livrées depuis un fichier CSV.
func LoadCSV(path string, book *CostBook) ([]models.Order, models.LoadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, models.LoadStats{}, fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()
	return ReadCSV(f, book)
}

// ReadCSV charge les commandes depuis un flux CSV avec ligne d'en-tête.
func ReadCSV(r io.Reader, book *CostBook) ([]models.Order, models.LoadStats, error) {
	var stats models.LoadStats

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, stats, nil
	}
	if err != nil {
		return nil, stats, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	field := func(rec []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var orders []models.Order
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Enregistrement illisible (guillemet orphelin...) : écarté, compté
			stats.SkippedMalformed++
			continue
		}

		raw := rawRow{
			ID:       field(rec, "Order_id"),
			Status:   field(rec, "Status Order"),
			Date:     field(rec, "Order Date"),
			Price:    field(rec, "Price"),
			Category: field(rec, "Category"),
			SKUs:     field(rec, "SKUs"),
			Notes:    field(rec, "Notes"),
			UID:      field(rec, "name_uid"),
		}
		if o, ok := buildOrder(raw, book, &stats); ok {
			orders = append(orders, o)
		}
	}

	return orders, stats, nil
}
