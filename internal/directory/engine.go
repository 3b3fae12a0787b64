// Package directory derives display lists from the full business list:
// filtering, searching, stable sorting, and category enumeration.
package directory

import (
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/plazahub/plazadir/internal/hours"
	"github.com/plazahub/plazadir/internal/models"
)

// SortKey selects the sort dimension for a result list.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortByCategory SortKey = "category"
	SortByUpdated  SortKey = "updated"
)

// Criteria is one set of filter/sort inputs. The zero value means
// "no filters active": every business passes and results sort by name
// ascending.
type Criteria struct {
	// Query is matched case-insensitively as a substring against name,
	// category, address, and phone; any hit passes.
	Query string
	// Category must equal the business category exactly (case-sensitive).
	Category string
	// OpenNow keeps only businesses open at the evaluation instant.
	OpenNow bool
	// HasPromo keeps only businesses with at least one promotion.
	HasPromo bool

	Sort       SortKey
	Descending bool
}

// ActiveFilterCount returns the number of filter dimensions that are
// non-default, for UI badge purposes. Sort settings are not filters.
func (c Criteria) ActiveFilterCount() int {
	n := 0
	if c.Query != "" {
		n++
	}
	if c.Category != "" {
		n++
	}
	if c.OpenNow {
		n++
	}
	if c.HasPromo {
		n++
	}
	return n
}

// Engine filters and sorts business lists. It is stateless apart from the
// hours evaluator and the collator; Apply is a pure function of its inputs.
type Engine struct {
	eval     *hours.Evaluator
	collator *collate.Collator
}

// NewEngine creates an engine using eval for the open-now predicate.
func NewEngine(eval *hours.Evaluator) *Engine {
	return &Engine{
		eval:     eval,
		collator: collate.New(language.English, collate.Loose),
	}
}

// Apply returns the businesses passing every active filter in c, stably
// sorted by the selected key. The input slice is not modified.
func (e *Engine) Apply(businesses []models.Business, c Criteria, now time.Time) []models.Business {
	out := make([]models.Business, 0, len(businesses))
	for _, b := range businesses {
		if e.matches(&b, c, now) {
			out = append(out, b)
		}
	}
	e.sortBusinesses(out, c)
	return out
}

func (e *Engine) matches(b *models.Business, c Criteria, now time.Time) bool {
	if c.Query != "" && !matchesQuery(b, c.Query) {
		return false
	}
	if c.Category != "" && b.Category != c.Category {
		return false
	}
	if c.OpenNow && !e.eval.IsOpenNow(b.Hours, now) {
		return false
	}
	if c.HasPromo && !b.HasPromo() {
		return false
	}
	return true
}

func matchesQuery(b *models.Business, query string) bool {
	q := strings.ToLower(query)
	for _, field := range []string{b.Name, b.Category, b.Address, b.Phone} {
		if field != "" && strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// sortBusinesses stably sorts in place. Descending negates the comparator
// rather than reversing the sorted list, so equal keys keep input order.
func (e *Engine) sortBusinesses(list []models.Business, c Criteria) {
	cmp := e.comparator(c.Sort)
	sort.SliceStable(list, func(i, j int) bool {
		r := cmp(&list[i], &list[j])
		if c.Descending {
			r = -r
		}
		return r < 0
	})
}

func (e *Engine) comparator(key SortKey) func(a, b *models.Business) int {
	switch key {
	case SortByCategory:
		return func(a, b *models.Business) int {
			return e.collator.CompareString(a.Category, b.Category)
		}
	case SortByUpdated:
		return func(a, b *models.Business) int {
			at := scrapedAtOrEpoch(a)
			bt := scrapedAtOrEpoch(b)
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
	default:
		return func(a, b *models.Business) int {
			return e.collator.CompareString(a.Name, b.Name)
		}
	}
}

func scrapedAtOrEpoch(b *models.Business) time.Time {
	if b.LastScrapedAt == nil {
		return time.Time{}
	}
	return *b.LastScrapedAt
}

// Categories returns the unique categories present across the full list,
// case-sensitive, sorted ascending.
func Categories(businesses []models.Business) []string {
	seen := make(map[string]struct{}, len(businesses))
	var out []string
	for _, b := range businesses {
		if b.Category == "" {
			continue
		}
		if _, ok := seen[b.Category]; ok {
			continue
		}
		seen[b.Category] = struct{}{}
		out = append(out, b.Category)
	}
	sort.Strings(out)
	return out
}
