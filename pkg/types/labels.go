package domain

import (
	"fmt"
	"strings"
)

// StatusLabel returns the badge text for an auction status. Unknown
// statuses are shown upper-cased as received.
func StatusLabel(s AuctionStatus) string {
	switch s {
	case StatusActive:
		return "EN VIVO"
	case StatusUpcoming:
		return "PRÓXIMA"
	case StatusEnded:
		return "FINALIZADA"
	default:
		return strings.ToUpper(string(s))
	}
}

// ReasonLabel returns the display text for a reason code.
func ReasonLabel(r Reason) string {
	switch r {
	case ReasonClosure:
		return "Cierre de Empresa"
	case ReasonFleetRenewal:
		return "Renovación de Flota"
	case ReasonNegotiatedSale:
		return "Venta Negociada"
	case ReasonOther:
		return "Otro"
	default:
		return string(r)
	}
}

// ConditionLabel returns the display text for an item condition.
func ConditionLabel(c Condition) string {
	switch c {
	case ConditionExcellent:
		return "Excelente"
	case ConditionGood:
		return "Bueno"
	case ConditionFair:
		return "Regular"
	case ConditionNeedsRepair:
		return "Para Reparación"
	default:
		return string(c)
	}
}

// ItemCountLabel renders an item count, e.g. "0 artículos", "1 artículo".
func ItemCountLabel(n int) string {
	return countLabel(n, "artículo", "artículos")
}

// ResultCountLabel renders a search result count.
func ResultCountLabel(n int) string {
	return countLabel(n, "resultado", "resultados")
}

func countLabel(n int, singular, plural string) string {
	if n < 0 {
		n = 0
	}
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, plural)
}

// FormatMoney formats a currency amount with two decimals and
// thousands separators, e.g. "$1,250,000.00".
func FormatMoney(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	s := fmt.Sprintf("%.2f", v)
	whole, frac, _ := strings.Cut(s, ".")

	var b strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return sign + "$" + b.String() + "." + frac
}
