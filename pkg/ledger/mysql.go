package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"aneeq-retention/pkg/models"
)

/*
Source alternative du ledger : la base WooCommerce (MySQL/MariaDB) via une vue
des commandes livrées exposant les mêmes colonnes logiques que l'export CSV.
Le filtrage ligne à ligne est identique : les deux supports passent par
buildOrder.
*/

var tableNameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Open DSN mariadb:// ou mysql:// → format MySQL driver
func Open(dsn string) (*sql.DB, string, error) {
	mysqlDSN, err := toMySQLDSN(dsn)
	if err != nil {
		return nil, "", err
	}
	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		return nil, "", err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, mysqlDSN, nil
}

func toMySQLDSN(dsn string) (string, error) {
	if strings.HasPrefix(dsn, "mariadb://") || strings.HasPrefix(dsn, "mysql://") {
		u, err := url.Parse(dsn)
		if err != nil {
			return "", fmt.Errorf("parse dsn: %w", err)
		}
		user := ""
		pass := ""
		if u.User != nil {
			user = u.User.Username()
			pw, _ := u.User.Password()
			pass = pw
		}
		host := u.Host
		db := strings.TrimPrefix(u.Path, "/")
		if user == "" || host == "" || db == "" {
			return "", fmt.Errorf("dsn incomplet (user/host/db)")
		}
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&interpolateParams=true",
			user, pass, host, db), nil
	}
	return dsn, nil
}

// LoadMySQL charge les commandes depuis la table/vue donnée. Les colonnes
// textuelles passent par les mêmes parseurs que le CSV (dates, montants,
// listes) : une ligne malformée côté base est écartée, pas fatale.
func LoadMySQL(ctx context.Context, db *sql.DB, table string, book *CostBook) ([]models.Order, models.LoadStats, error) {
	var stats models.LoadStats

	if !tableNameRe.MatchString(table) {
		return nil, stats, fmt.Errorf("table invalide")
	}

	q := fmt.Sprintf(`
		SELECT order_id, order_status, order_date, price, category, skus, notes, name_uid
		FROM %s
	`, table)

	rows, err := db.QueryContext(ctx, q)
	if err != nil {
		return nil, stats, err
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var c [8]sql.NullString
		if err := rows.Scan(&c[0], &c[1], &c[2], &c[3], &c[4], &c[5], &c[6], &c[7]); err != nil {
			return nil, stats, err
		}
		raw := rawRow{
			ID:       c[0].String,
			Status:   c[1].String,
			Date:     c[2].String,
			Price:    c[3].String,
			Category: c[4].String,
			SKUs:     c[5].String,
			Notes:    c[6].String,
			UID:      c[7].String,
		}
		if o, ok := buildOrder(raw, book, &stats); ok {
			orders = append(orders, o)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, stats, err
	}

	return orders, stats, nil
}
