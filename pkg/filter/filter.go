// Package filter implements the in-memory predicates the listing screens
// apply to auction and item lists. Every function is pure: inputs are
// never mutated and results never alias them.
package filter

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/donaldgifford/auction-browser/internal/metrics"
	"github.com/donaldgifford/auction-browser/pkg/logger"
	domain "github.com/donaldgifford/auction-browser/pkg/types"
)

// Tag selects one of the listing tabs.
type Tag string

// Tag constants.
const (
	TagAll        Tag = "all"
	TagUpcoming   Tag = "upcoming"
	TagEnded      Tag = "ended"
	TagNegotiated Tag = "negotiated"
)

// Tags lists the tabs in display order.
var Tags = []Tag{TagAll, TagUpcoming, TagEnded, TagNegotiated}

// Label returns the tab caption.
func (t Tag) Label() string {
	switch t {
	case TagUpcoming:
		return "Próximas"
	case TagEnded:
		return "Anteriores"
	case TagNegotiated:
		return "Venta Negociada"
	default:
		return "Todas"
	}
}

// ParseTag accepts the tag names and the Spanish tab keys. Empty input
// selects TagAll.
func ParseTag(s string) (Tag, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "todas":
		return TagAll, nil
	case "upcoming", "proximas", "próximas":
		return TagUpcoming, nil
	case "ended", "anteriores":
		return TagEnded, nil
	case "negotiated", "negociadas":
		return TagNegotiated, nil
	}
	return "", fmt.Errorf("unknown filter %q (want all, upcoming, ended or negotiated)", s)
}

// Substrings accepted by the negotiated-sale fallback. The backend has
// shipped both Spanish and English phrasings of the reason.
var negotiatedFragments = []string{"negocia", "negotiat"}

// Filter applies tab predicates and flags data-quality issues it notices.
type Filter struct {
	log *slog.Logger
}

// New returns a Filter that logs fuzzy reason matches to log.
func New(log *slog.Logger) *Filter {
	return &Filter{log: logger.OrDiscard(log)}
}

var quiet = New(nil)

// Apply filters auctions by tag without logging.
func Apply(auctions []domain.Auction, tag Tag) []domain.Auction {
	return quiet.Apply(auctions, tag)
}

// Apply returns the auctions visible under tag. TagAll and unknown tags
// return a copy of the full list.
func (f *Filter) Apply(auctions []domain.Auction, tag Tag) []domain.Auction {
	switch tag {
	case TagUpcoming:
		return keep(auctions, ByStatus(domain.StatusUpcoming))
	case TagEnded:
		return keep(auctions, ByStatus(domain.StatusEnded))
	case TagNegotiated:
		return keep(auctions, f.isNegotiated)
	default:
		return keep(auctions, func(*domain.Auction) bool { return true })
	}
}

// IsNegotiated reports whether a is a negotiated sale.
func (f *Filter) IsNegotiated(a *domain.Auction) bool {
	return f.isNegotiated(a)
}

// isNegotiated matches the canonical code exactly, then falls back to a
// case-insensitive substring so inconsistent reason strings are not
// silently dropped. Fallback-only matches are logged and counted.
func (f *Filter) isNegotiated(a *domain.Auction) bool {
	if a.Reason == domain.ReasonNegotiatedSale {
		return true
	}
	reason := strings.ToLower(string(a.Reason))
	for _, frag := range negotiatedFragments {
		if strings.Contains(reason, frag) {
			f.log.Warn("negotiated sale matched by substring only",
				"auction_id", a.ID,
				"reason", string(a.Reason),
			)
			metrics.ReasonFuzzyMatchesTotal.Inc()
			return true
		}
	}
	return false
}

// Partition splits auctions into upcoming, ended and everything else,
// preserving order. Every input element lands in exactly one slice.
func Partition(auctions []domain.Auction) (upcoming, ended, rest []domain.Auction) {
	for i := range auctions {
		switch auctions[i].Status {
		case domain.StatusUpcoming:
			upcoming = append(upcoming, auctions[i])
		case domain.StatusEnded:
			ended = append(ended, auctions[i])
		default:
			rest = append(rest, auctions[i])
		}
	}
	return upcoming, ended, rest
}

// Count returns the number of auctions under each tag, for tab badges.
func (f *Filter) Count(auctions []domain.Auction) map[Tag]int {
	counts := make(map[Tag]int, len(Tags))
	counts[TagAll] = len(auctions)
	for i := range auctions {
		a := &auctions[i]
		switch a.Status {
		case domain.StatusUpcoming:
			counts[TagUpcoming]++
		case domain.StatusEnded:
			counts[TagEnded]++
		}
		if f.isNegotiated(a) {
			counts[TagNegotiated]++
		}
	}
	return counts
}

// Predicate reports whether an auction should be kept.
type Predicate func(*domain.Auction) bool

// ByStatus keeps auctions with the given status.
func ByStatus(s domain.AuctionStatus) Predicate {
	return func(a *domain.Auction) bool { return a.Status == s }
}

// ByState keeps auctions held in the given state, ignoring case and
// surrounding space.
func ByState(state string) Predicate {
	want := strings.TrimSpace(state)
	return func(a *domain.Auction) bool {
		return strings.EqualFold(strings.TrimSpace(a.State), want)
	}
}

// All combines predicates with logical AND.
func All(preds ...Predicate) Predicate {
	return func(a *domain.Auction) bool {
		for _, p := range preds {
			if !p(a) {
				return false
			}
		}
		return true
	}
}

// Where returns the auctions matching p.
func Where(auctions []domain.Auction, p Predicate) []domain.Auction {
	return keep(auctions, p)
}

func keep(auctions []domain.Auction, p func(*domain.Auction) bool) []domain.Auction {
	out := make([]domain.Auction, 0, len(auctions))
	for i := range auctions {
		if p(&auctions[i]) {
			out = append(out, auctions[i])
		}
	}
	return out
}
