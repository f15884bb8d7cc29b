package report

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"aneeq-retention/pkg/models"
)

/*
ÉCRITURE → sérialisation des deux tables de résultat. Le formatage de
présentation (pourcentage "83.33%", montants à 2 décimales) n'intervient
qu'ici, jamais dans le moteur de calcul. Les fichiers ne sont écrits
qu'après un calcul complet réussi.
*/

var retentionHeader = []string{
	"cohort_month", "dimension", "first_value", "m", "metric", "segment", "cohort_size", "retention",
}

var ltvHeader = []string{
	"cohort_type", "cohort_month", "dimension", "first_value", "m", "metric", "measure", "segment", "cohort_size", "ltv_per_user",
}

// FormatPercent formate une rétention en pourcentage à 2 décimales, "83.33%".
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.2f%%", pct)
}

func retentionRecord(r models.RetentionRow) []string {
	return []string{
		r.CohortMonth,
		r.Dimension,
		r.FirstValue,
		strconv.Itoa(r.M),
		r.Metric,
		string(r.Segment),
		strconv.Itoa(r.CohortSize),
		FormatPercent(r.Retention),
	}
}

func ltvRecord(r models.LTVRow) []string {
	return []string{
		r.CohortType,
		r.CohortMonth,
		r.Dimension,
		r.FirstValue,
		strconv.Itoa(r.M),
		r.Metric,
		r.Measure,
		string(r.Segment),
		strconv.Itoa(r.CohortSize),
		r.LTVPerUser.StringFixed(2),
	}
}

func writeCSV(path string, header []string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return err
	}
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return f.Close()
}

// WriteRetentionCSV écrit purchase_retention.csv et retourne le nombre de lignes.
func WriteRetentionCSV(rows []models.RetentionRow, path string) (int, error) {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, retentionRecord(r))
	}
	if err := writeCSV(path, retentionHeader, records); err != nil {
		return 0, err
	}
	return len(records), nil
}

// WriteLTVCSV écrit ltv_by_category_sku.csv et retourne le nombre de lignes.
func WriteLTVCSV(rows []models.LTVRow, path string) (int, error) {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, ltvRecord(r))
	}
	if err := writeCSV(path, ltvHeader, records); err != nil {
		return 0, err
	}
	return len(records), nil
}
