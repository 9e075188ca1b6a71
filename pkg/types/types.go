// Package domain defines the core business types for the auction browser.
package domain

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// AuctionStatus is the lifecycle state of an auction as reported by the backend.
type AuctionStatus string

// Auction status constants.
const (
	StatusUpcoming AuctionStatus = "proxima"
	StatusActive   AuctionStatus = "activa"
	StatusEnded    AuctionStatus = "finalizada"
)

// Valid reports whether s is one of the known statuses.
func (s AuctionStatus) Valid() bool {
	switch s {
	case StatusUpcoming, StatusActive, StatusEnded:
		return true
	}
	return false
}

// ParseStatus accepts the wire codes as well as the English names.
func ParseStatus(s string) (AuctionStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "proxima", "upcoming":
		return StatusUpcoming, nil
	case "activa", "active":
		return StatusActive, nil
	case "finalizada", "ended":
		return StatusEnded, nil
	}
	return "", fmt.Errorf("unknown auction status %q", s)
}

// Reason explains why an auction is being held.
type Reason string

// Reason constants.
const (
	ReasonClosure        Reason = "cierre_empresa"
	ReasonFleetRenewal   Reason = "renovacion_flotilla"
	ReasonNegotiatedSale Reason = "venta_negociada"
	ReasonOther          Reason = "otro"
)

// Valid reports whether r is one of the known reason codes.
func (r Reason) Valid() bool {
	switch r {
	case ReasonClosure, ReasonFleetRenewal, ReasonNegotiatedSale, ReasonOther:
		return true
	}
	return false
}

// Condition is the normalized physical condition of an item.
type Condition string

// Condition constants.
const (
	ConditionExcellent   Condition = "excelente"
	ConditionGood        Condition = "bueno"
	ConditionFair        Condition = "regular"
	ConditionNeedsRepair Condition = "para_reparacion"
)

// Valid reports whether c is one of the known condition codes.
func (c Condition) Valid() bool {
	switch c {
	case ConditionExcellent, ConditionGood, ConditionFair, ConditionNeedsRepair:
		return true
	}
	return false
}

// Auction is a timed sales event grouping items under one registration fee.
type Auction struct {
	ID          string        `json:"auction_id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Reason      Reason        `json:"reason"`
	CompanyName string        `json:"company_name"`
	StartDate   string        `json:"start_date"`
	EndDate     string        `json:"end_date"`
	Status      AuctionStatus `json:"status"`
	Location    string        `json:"location"`
	State       string        `json:"state"`

	TotalItems      int     `json:"total_items"`
	RegistrationFee float64 `json:"registration_fee"`
}

// StartTime parses StartDate.
func (a *Auction) StartTime() (time.Time, error) {
	return parseTimestamp(a.StartDate)
}

// EndTime parses EndDate.
func (a *Auction) EndTime() (time.Time, error) {
	return parseTimestamp(a.EndDate)
}

// Validate reports values that violate the data model. It is advisory;
// decoding never fails because of it.
func (a *Auction) Validate() error {
	var errs []error
	if a.ID == "" {
		errs = append(errs, errors.New("auction_id is empty"))
	}
	if a.TotalItems < 0 {
		errs = append(errs, fmt.Errorf("total_items is negative (%d)", a.TotalItems))
	}
	if a.RegistrationFee < 0 {
		errs = append(errs, fmt.Errorf("registration_fee is negative (%.2f)", a.RegistrationFee))
	}
	return errors.Join(errs...)
}

// PriceRange is an estimated value interval.
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// AuctionItem is a single lot within an auction.
type AuctionItem struct {
	ID          string `json:"item_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Brand       string `json:"brand"`
	Model       string `json:"model,omitempty"`
	Year        *int   `json:"year,omitempty"`

	// Pricing
	StartingPrice  float64    `json:"starting_price"`
	CurrentBid     float64    `json:"current_bid"`
	EstimatedValue PriceRange `json:"estimated_value"`

	Images         []string       `json:"images"`
	Condition      Condition      `json:"condition"`
	Mileage        *int           `json:"mileage,omitempty"`
	Specifications map[string]any `json:"specifications"`
	Location       string         `json:"location"`
	AuctionID      string         `json:"auction_id"`
}

// Validate reports values that violate the data model.
func (i *AuctionItem) Validate() error {
	var errs []error
	if i.ID == "" {
		errs = append(errs, errors.New("item_id is empty"))
	}
	if i.AuctionID == "" {
		errs = append(errs, errors.New("auction_id is empty"))
	}
	if i.EstimatedValue.Min > i.EstimatedValue.Max {
		errs = append(errs, fmt.Errorf(
			"estimated_value min %.2f exceeds max %.2f",
			i.EstimatedValue.Min, i.EstimatedValue.Max,
		))
	}
	if i.Mileage != nil && *i.Mileage < 0 {
		errs = append(errs, fmt.Errorf("mileage is negative (%d)", *i.Mileage))
	}
	return errors.Join(errs...)
}

// User is the authenticated account profile.
type User struct {
	ID                 string   `json:"user_id"`
	Email              string   `json:"email"`
	FullName           string   `json:"full_name"`
	Phone              string   `json:"phone"`
	Company            string   `json:"company,omitempty"`
	IsActive           bool     `json:"is_active"`
	CreatedAt          string   `json:"created_at"`
	RegisteredAuctions []string `json:"registered_auctions"`
}

// IsRegistered reports whether the user is registered for the given auction.
func (u *User) IsRegistered(auctionID string) bool {
	return slices.Contains(u.RegisteredAuctions, auctionID)
}

// LoginCredentials is the login request body.
type LoginCredentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterData is the registration request body.
type RegisterData struct {
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone"`
	Company  string `json:"company,omitempty"`
	Password string `json:"password"`
}

// AuthResponse is returned by login and register.
type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Layouts the backend emits. Naive datetimes arrive without a zone.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
