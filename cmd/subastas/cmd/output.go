package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/donaldgifford/auction-browser/pkg/filter"
	domain "github.com/donaldgifford/auction-browser/pkg/types"
)

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printTabs(w io.Writer, active filter.Tag, counts map[filter.Tag]int) error {
	parts := make([]string, 0, len(filter.Tags))
	for _, tag := range filter.Tags {
		label := fmt.Sprintf("%s (%d)", tag.Label(), counts[tag])
		if tag == active {
			label = "[" + label + "]"
		}
		parts = append(parts, label)
	}
	_, err := fmt.Fprintln(w, strings.Join(parts, "  "))
	return err
}

func printAuctionsTable(w io.Writer, auctions []domain.Auction) error {
	tw := newTabWriter(w)
	tw.writef("ID\tTITLE\tSTATUS\tREASON\tSTATE\tITEMS\tFEE\n")
	for i := range auctions {
		a := &auctions[i]
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			a.ID,
			truncate(a.Title, 40),
			domain.StatusLabel(a.Status),
			domain.ReasonLabel(a.Reason),
			a.State,
			domain.ItemCountLabel(a.TotalItems),
			domain.FormatMoney(a.RegistrationFee),
		)
	}
	return tw.finish()
}

func printAuctionDetail(w io.Writer, a *domain.Auction) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", a.ID)
	tw.writef("Title:\t%s\n", a.Title)
	tw.writef("Status:\t%s\n", domain.StatusLabel(a.Status))
	tw.writef("Reason:\t%s\n", domain.ReasonLabel(a.Reason))
	tw.writef("Company:\t%s\n", a.CompanyName)
	tw.writef("Location:\t%s, %s\n", a.Location, a.State)
	tw.writef("Starts:\t%s\n", a.StartDate)
	tw.writef("Ends:\t%s\n", a.EndDate)
	tw.writef("Items:\t%s\n", domain.ItemCountLabel(a.TotalItems))
	tw.writef("Registration Fee:\t%s\n", domain.FormatMoney(a.RegistrationFee))
	if a.Description != "" {
		tw.writef("Description:\t%s\n", a.Description)
	}
	return tw.finish()
}

func printItemsTable(w io.Writer, items []domain.AuctionItem) error {
	tw := newTabWriter(w)
	tw.writef("ID\tNAME\tCATEGORY\tCONDITION\tSTARTING\tCURRENT BID\n")
	for i := range items {
		it := &items[i]
		tw.writef("%s\t%s\t%s\t%s\t%s\t%s\n",
			it.ID,
			truncate(it.Name, 40),
			it.Category,
			domain.ConditionLabel(it.Condition),
			domain.FormatMoney(it.StartingPrice),
			domain.FormatMoney(it.CurrentBid),
		)
	}
	return tw.finish()
}

func printItemDetail(w io.Writer, it *domain.AuctionItem) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", it.ID)
	tw.writef("Name:\t%s\n", it.Name)
	tw.writef("Auction:\t%s\n", it.AuctionID)
	tw.writef("Category:\t%s / %s\n", it.Category, it.Subcategory)
	tw.writef("Brand:\t%s %s\n", it.Brand, it.Model)
	if it.Year != nil {
		tw.writef("Year:\t%d\n", *it.Year)
	}
	if it.Mileage != nil {
		tw.writef("Mileage:\t%d km\n", *it.Mileage)
	}
	tw.writef("Condition:\t%s\n", domain.ConditionLabel(it.Condition))
	tw.writef("Starting Price:\t%s\n", domain.FormatMoney(it.StartingPrice))
	tw.writef("Current Bid:\t%s\n", domain.FormatMoney(it.CurrentBid))
	tw.writef("Estimated Value:\t%s - %s\n",
		domain.FormatMoney(it.EstimatedValue.Min),
		domain.FormatMoney(it.EstimatedValue.Max),
	)
	tw.writef("Location:\t%s\n", it.Location)

	keys := make([]string, 0, len(it.Specifications))
	for k := range it.Specifications {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		tw.writef("  %s:\t%v\n", k, it.Specifications[k])
	}
	return tw.finish()
}

func printUser(w io.Writer, u *domain.User) error {
	tw := newTabWriter(w)
	tw.writef("ID:\t%s\n", u.ID)
	tw.writef("Name:\t%s\n", u.FullName)
	tw.writef("Email:\t%s\n", u.Email)
	tw.writef("Phone:\t%s\n", u.Phone)
	if u.Company != "" {
		tw.writef("Company:\t%s\n", u.Company)
	}
	tw.writef("Active:\t%v\n", u.IsActive)
	tw.writef("Registered Auctions:\t%d\n", len(u.RegisteredAuctions))
	return tw.finish()
}

func outputJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
