package calculator

import (
	"sort"
	"strings"

	"aneeq-retention/pkg/models"
)

/*
MOIS ACTIFS → une commande ponctuelle rend le client actif sur son seul mois
d'achat ; une commande d'abonnement le rend actif sur `cadence` mois
consécutifs à partir du mois d'achat, sans jamais dépasser l'horizon. Les
runs de plusieurs commandes se cumulent par union.
*/

// Activity porte les ensembles de mois actifs par client, globalement et
// par catégorie.
type Activity struct {
	months     map[string]map[string]bool
	byCategory map[string]map[string]map[string]bool
}

func newActivity() *Activity {
	return &Activity{
		months:     make(map[string]map[string]bool),
		byCategory: make(map[string]map[string]map[string]bool),
	}
}

func (a *Activity) add(uid, month string) {
	set := a.months[uid]
	if set == nil {
		set = make(map[string]bool)
		a.months[uid] = set
	}
	set[month] = true
}

func (a *Activity) addCategory(uid, cat, month string) {
	byCat := a.byCategory[uid]
	if byCat == nil {
		byCat = make(map[string]map[string]bool)
		a.byCategory[uid] = byCat
	}
	set := byCat[cat]
	if set == nil {
		set = make(map[string]bool)
		byCat[cat] = set
	}
	set[month] = true
}

// Active indique si le client est compté actif (toutes catégories) ce mois-là.
func (a *Activity) Active(uid, month string) bool {
	return a.months[uid][month]
}

// ActiveInCategory indique si le client est actif dans la catégorie donnée.
func (a *Activity) ActiveInCategory(uid, cat, month string) bool {
	return a.byCategory[uid][cat][month]
}

// effectiveCadence retourne la cadence d'une commande d'abonnement. Note vide
// → héritée de la commande d'abonnement la plus récente du même client qui
// porte une note, la plus récente par date qu'elle soit antérieure ou
// postérieure (comportement de référence : tri décroissant sans filtre de
// direction). À défaut, 1.
func effectiveCadence(o models.Order, candidates []models.Order) int {
	if strings.TrimSpace(o.Notes) != "" {
		return ParseCadence(o.Notes)
	}
	for _, c := range candidates {
		if c.ID == o.ID {
			continue
		}
		if strings.TrimSpace(c.Notes) != "" {
			return ParseCadence(c.Notes)
		}
	}
	return 1
}

// ProjectActiveMonths construit les ensembles de mois actifs à partir des
// commandes, bornés par l'horizon asOf.
func ProjectActiveMonths(orders []models.Order, asOf string, cfg models.Config) *Activity {
	subs := subscriptionSet(cfg.SubscriptionCategories)

	// Commandes d'abonnement par client, triées par date décroissante,
	// pour l'héritage de cadence.
	subOrders := make(map[string][]models.Order)
	for _, o := range orders {
		if hasSubscriptionCategory(o, subs) {
			subOrders[o.UID] = append(subOrders[o.UID], o)
		}
	}
	for uid := range subOrders {
		list := subOrders[uid]
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Date.After(list[j].Date)
		})
	}

	act := newActivity()
	for _, o := range orders {
		if !hasSubscriptionCategory(o, subs) {
			if o.MonthKey > asOf {
				continue
			}
			act.add(o.UID, o.MonthKey)
			for _, cat := range o.Categories {
				act.addCategory(o.UID, cat, o.MonthKey)
			}
			continue
		}

		cadence := effectiveCadence(o, subOrders[o.UID])
		for i := 0; i < cadence; i++ {
			mk := MonthKey(AddMonths(o.Date, i))
			if mk > asOf {
				break // jamais de projection au-delà de l'horizon
			}
			act.add(o.UID, mk)
			for _, cat := range o.Categories {
				if subs[cat] || i == 0 {
					// Les catégories hors abonnement d'une commande mixte ne
					// comptent que sur le mois d'achat lui-même.
					act.addCategory(o.UID, cat, mk)
				}
			}
		}
	}
	return act
}
