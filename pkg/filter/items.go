package filter

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	domain "github.com/donaldgifford/auction-browser/pkg/types"
)

// ItemCriteria narrows an auction's item list on the detail screen.
// Zero values match everything.
type ItemCriteria struct {
	Category   string
	Conditions []domain.Condition
	// Price bounds apply to the item's starting price.
	MinStartingPrice *float64
	MaxStartingPrice *float64
}

// Match reports whether it satisfies every set criterion.
func (c *ItemCriteria) Match(it *domain.AuctionItem) bool {
	if c.Category != "" && !strings.EqualFold(it.Category, c.Category) {
		return false
	}
	if len(c.Conditions) > 0 && !slices.Contains(c.Conditions, it.Condition) {
		return false
	}
	if c.MinStartingPrice != nil && it.StartingPrice < *c.MinStartingPrice {
		return false
	}
	if c.MaxStartingPrice != nil && it.StartingPrice > *c.MaxStartingPrice {
		return false
	}
	return true
}

// Items returns the items matching c.
func Items(items []domain.AuctionItem, c *ItemCriteria) []domain.AuctionItem {
	out := make([]domain.AuctionItem, 0, len(items))
	for i := range items {
		if c == nil || c.Match(&items[i]) {
			out = append(out, items[i])
		}
	}
	return out
}

// ParseItemCriteria parses CLI --where flags. Supported formats:
//
//	category=vehiculos
//	condition=excelente,bueno
//	min_price=1000
//	max_price=25000.50
func ParseItemCriteria(args []string) (ItemCriteria, error) {
	var c ItemCriteria
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return c, fmt.Errorf("invalid criterion %q: expected key=value", arg)
		}
		switch key {
		case "category":
			c.Category = value
		case "condition":
			for _, v := range strings.Split(value, ",") {
				c.Conditions = append(c.Conditions, domain.Condition(strings.TrimSpace(v)))
			}
		case "min_price":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return c, fmt.Errorf("invalid min_price %q: %w", value, err)
			}
			c.MinStartingPrice = &v
		case "max_price":
			v, err := strconv.ParseFloat(value, 64)
			if err != nil {
				return c, fmt.Errorf("invalid max_price %q: %w", value, err)
			}
			c.MaxStartingPrice = &v
		default:
			return c, fmt.Errorf("unknown criterion %q", key)
		}
	}
	if c.MinStartingPrice != nil && c.MaxStartingPrice != nil &&
		*c.MinStartingPrice > *c.MaxStartingPrice {
		return c, fmt.Errorf("min_price %g exceeds max_price %g", *c.MinStartingPrice, *c.MaxStartingPrice)
	}
	return c, nil
}
