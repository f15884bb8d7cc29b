package calculator

import (
	"sort"

	"aneeq-retention/pkg/models"
)

/*
COHORTES → chaque client appartient à exactement une cohorte globale (mois de
première commande), une cohorte catégorie (catégorie prioritaire de son premier
mois) et un segment (abonné dès le premier mois ou non). La taille d'une
cohorte est figée à sa construction : le premier mois d'un client ne change
jamais.
*/

// CustomerProfile est la vue dérivée d'un client : le ledger ne matérialise
// pas l'entité, elle est reconstruite à chaque run depuis ses commandes.
type CustomerProfile struct {
	UID           string
	FirstMonth    string // clé mensuelle de la première commande
	FirstCategory string // catégorie prioritaire parmi les commandes du premier mois
	Subscriber    bool   // au moins une catégorie d'abonnement le premier mois
}

// InSegment indique si le client appartient au segment donné.
func (p *CustomerProfile) InSegment(seg models.Segment) bool {
	switch seg {
	case models.SegmentSubscribers:
		return p.Subscriber
	case models.SegmentOnetime:
		return !p.Subscriber
	default:
		return true
	}
}

func subscriptionSet(categories []string) map[string]bool {
	set := make(map[string]bool, len(categories))
	for _, c := range categories {
		set[c] = true
	}
	return set
}

func hasSubscriptionCategory(o models.Order, subs map[string]bool) bool {
	for _, c := range o.Categories {
		if subs[c] {
			return true
		}
	}
	return false
}

// BuildCustomerProfiles groupe les commandes par client et dérive le profil.
// Le premier mois est déterminé sur l'historique COMPLET du client, pas sur
// la version bornée par l'horizon.
func BuildCustomerProfiles(orders []models.Order, cfg models.Config) map[string]*CustomerProfile {
	subs := subscriptionSet(cfg.SubscriptionCategories)

	byUID := make(map[string][]models.Order)
	for _, o := range orders {
		byUID[o.UID] = append(byUID[o.UID], o)
	}

	profiles := make(map[string]*CustomerProfile, len(byUID))
	for uid, list := range byUID {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Date.Before(list[j].Date)
		})
		first := list[0].MonthKey

		var cats []string
		subscriber := false
		for _, o := range list {
			if o.MonthKey != first {
				continue
			}
			cats = append(cats, o.Categories...)
			if hasSubscriptionCategory(o, subs) {
				subscriber = true
			}
		}

		profiles[uid] = &CustomerProfile{
			UID:           uid,
			FirstMonth:    first,
			FirstCategory: PrioritizeCategory(cats, cfg.CategoryPriority),
			Subscriber:    subscriber,
		}
	}
	return profiles
}

// filterSegment restreint les profils au segment donné.
func filterSegment(profiles map[string]*CustomerProfile, seg models.Segment) map[string]*CustomerProfile {
	out := make(map[string]*CustomerProfile, len(profiles))
	for uid, p := range profiles {
		if p.InSegment(seg) {
			out[uid] = p
		}
	}
	return out
}

// overallCohorts indexe mois de cohorte → clients.
func overallCohorts(profiles map[string]*CustomerProfile) map[string][]string {
	cohorts := make(map[string][]string)
	for uid, p := range profiles {
		cohorts[p.FirstMonth] = append(cohorts[p.FirstMonth], uid)
	}
	return cohorts
}

// categoryCohorts indexe mois de cohorte → catégorie de première commande →
// clients. Les clients sans catégorie sont hors de cette dimension.
func categoryCohorts(profiles map[string]*CustomerProfile) map[string]map[string][]string {
	cohorts := make(map[string]map[string][]string)
	for uid, p := range profiles {
		if p.FirstCategory == "" {
			continue
		}
		byCat := cohorts[p.FirstMonth]
		if byCat == nil {
			byCat = make(map[string][]string)
			cohorts[p.FirstMonth] = byCat
		}
		byCat[p.FirstCategory] = append(byCat[p.FirstCategory], uid)
	}
	return cohorts
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
