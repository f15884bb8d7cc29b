package models

import (
	"time"

	"github.com/shopspring/decimal"
)

/*
LOAD → types simples pour représenter le ledger de commandes chargé en mémoire.
*/

// Order représente une commande livrée telle que chargée depuis le ledger
// (export CSV allorders ou base WooCommerce). Les catégories et SKUs sont
// normalisés en minuscules, dédupliqués, dans l'ordre d'apparition.
type Order struct {
	ID         string
	UID        string // identifiant client (name_uid), obligatoire
	Date       time.Time
	MonthKey   string // "YYYY-MM", dérivé de Date au chargement
	Price      decimal.Decimal
	Categories []string
	SKUs       []string
	Notes      string          // texte libre, utilisé pour la cadence d'abonnement
	COGS       decimal.Decimal // coût des marchandises, dérivé au chargement
}

// GrossMargin retourne max(0, Price - COGS). Jamais négative.
func (o Order) GrossMargin() decimal.Decimal {
	gm := o.Price.Sub(o.COGS)
	if gm.IsNegative() {
		return decimal.Zero
	}
	return gm
}

// LoadStats compte les lignes écartées au chargement, par motif.
// Aucun motif n'est fatal : une ligne malformée est simplement ignorée.
type LoadStats struct {
	Loaded           int
	SkippedStatus    int // statut différent de "delivered"
	SkippedDate      int // date illisible
	SkippedUID       int // name_uid vide
	SkippedMalformed int // enregistrement CSV illisible (guillemets, structure)
}

/*
SEGMENTS → découpage abonnés / achat unique des cohortes.
*/

// Segment identifie le sous-ensemble de clients d'une cohorte.
type Segment string

const (
	SegmentAll         Segment = "all"
	SegmentSubscribers Segment = "subscribers"
	SegmentOnetime     Segment = "onetime"
)

// Segments est l'ordre d'émission des segments dans les tables de sortie.
var Segments = []Segment{SegmentAll, SegmentSubscribers, SegmentOnetime}

/*
COMPUTE → lignes de résultat exportées vers les tables de sortie.
*/

// RetentionRow est une ligne de la table purchase_retention.
// Retention est portée en pourcentage flottant ; le formatage "83.33%"
// n'intervient qu'à l'écriture du rapport.
type RetentionRow struct {
	CohortMonth string // premier jour du mois, "2025-01-01"
	Dimension   string // "overall" ou "category"
	FirstValue  string // "ALL" ou la catégorie de première commande
	M           int    // décalage en mois, 0..12
	Metric      string // "any" ou "same" (overall n'émet que "any")
	Segment     Segment
	CohortSize  int
	Retention   float64 // pourcentage, ex: 83.333333
}

// LTVRow est une ligne de la table ltv_by_category_sku.
type LTVRow struct {
	CohortType  string // constante "purchase"
	CohortMonth string
	Dimension   string
	FirstValue  string
	M           int
	Metric      string
	Measure     string // "revenue" ou "gm"
	Segment     Segment
	CohortSize  int
	LTVPerUser  decimal.Decimal // déjà arrondie à 2 décimales
}

/*
CONFIG → paramètres globaux passés au moteur de calcul.
*/

// Config contient les paramètres de configuration passés à la fonction de calcul.
type Config struct {
	CategoryPriority       []string  // liste ordonnée des catégories connues
	SubscriptionCategories []string  // catégories comptées comme abonnement
	MaxOffset              int       // décalage maximal en mois (12)
	Observation            time.Time // horloge murale au moment du run, borne l'horizon
	Verbose                bool      // Flag pour activer les logs détaillés.
}
