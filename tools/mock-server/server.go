package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/crypto/bcrypt"

	mw "github.com/donaldgifford/auction-browser/internal/api/middleware"
	domain "github.com/donaldgifford/auction-browser/pkg/types"
)

const (
	userContextKey  = "user"
	tokenType       = "bearer"
	createdAtLayout = "2006-01-02T15:04:05"
)

// account is a registered user and its password hash.
type account struct {
	user domain.User
	hash []byte
}

// server holds the fixture data and the in-memory user table.
type server struct {
	log *slog.Logger

	// auctions keeps fixture order; byStart is sorted by start date.
	auctions []domain.Auction
	byStart  []domain.Auction
	items    []domain.AuctionItem

	cost int
	now  func() time.Time

	mu       sync.RWMutex
	accounts map[string]*account // by email
	tokens   map[string]string   // token -> email
}

// newServer seeds the server from fx. cost is the bcrypt cost used for
// both seeded and registered passwords.
func newServer(fx *fixtures, log *slog.Logger, cost int) (*server, error) {
	s := &server{
		log:      log,
		auctions: slices.Clone(fx.Auctions),
		items:    slices.Clone(fx.Items),
		cost:     cost,
		now:      time.Now,
		accounts: make(map[string]*account, len(fx.Users)),
		tokens:   make(map[string]string),
	}
	if s.auctions == nil {
		s.auctions = []domain.Auction{}
	}
	if s.items == nil {
		s.items = []domain.AuctionItem{}
	}

	s.byStart = slices.Clone(s.auctions)
	slices.SortStableFunc(s.byStart, func(a, b domain.Auction) int {
		return strings.Compare(a.StartDate, b.StartDate)
	})

	for _, fu := range fx.Users {
		hash, err := bcrypt.GenerateFromPassword([]byte(fu.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("hashing password for %s: %w", fu.User.Email, err)
		}
		u := fu.User
		if u.RegisteredAuctions == nil {
			u.RegisteredAuctions = []string{}
		}
		s.accounts[u.Email] = &account{user: u, hash: hash}
	}

	return s, nil
}

// routes builds the echo instance serving the backend REST surface under /api.
func (s *server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.handleError

	e.Use(mw.RequestLog(s.log), mw.Metrics(), mw.Recovery(s.log))

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api")
	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)
	api.GET("/auctions", s.listAuctions)
	api.GET("/auctions/:id", s.getAuction)
	api.GET("/auctions/:id/items", s.listAuctionItems)
	api.GET("/items/:id", s.getItem)
	api.GET("/search/auctions", s.searchAuctions)

	user := api.Group("/user", s.requireUser)
	user.GET("/profile", s.profile)
	user.GET("/auctions", s.userAuctions)

	return e
}

// handleError renders every error as {"detail": ...}.
func (s *server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := http.StatusInternalServerError
	var detail any = "Internal server error"
	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		detail = he.Message
	} else {
		mw.Logger(c, s.log).Error("unhandled error", "error", err)
	}

	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, map[string]any{"detail": detail})
	}
	if err != nil {
		mw.Logger(c, s.log).Error("writing error response", "error", err)
	}
}

// validationIssue mirrors one entry of a 422 detail list.
type validationIssue struct {
	Loc  []string `json:"loc"`
	Msg  string   `json:"msg"`
	Type string   `json:"type"`
}

func validationError(issues ...validationIssue) error {
	return echo.NewHTTPError(http.StatusUnprocessableEntity, issues)
}

func missingField(loc ...string) validationIssue {
	return validationIssue{Loc: loc, Msg: "field required", Type: "value_error.missing"}
}

func (s *server) issueToken(email string) string {
	token := uuid.NewString()
	s.mu.Lock()
	s.tokens[token] = email
	s.mu.Unlock()
	return token
}

func (s *server) register(c echo.Context) error {
	var req domain.RegisterData
	if err := c.Bind(&req); err != nil {
		return validationError(validationIssue{
			Loc: []string{"body"}, Msg: "invalid JSON body", Type: "value_error.jsondecode",
		})
	}

	var issues []validationIssue
	for field, value := range map[string]string{
		"email":     req.Email,
		"full_name": req.FullName,
		"phone":     req.Phone,
		"password":  req.Password,
	} {
		if value == "" {
			issues = append(issues, missingField("body", field))
		}
	}
	if len(issues) > 0 {
		slices.SortFunc(issues, func(a, b validationIssue) int {
			return strings.Compare(a.Loc[1], b.Loc[1])
		})
		return validationError(issues...)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	s.mu.Lock()
	if _, exists := s.accounts[req.Email]; exists {
		s.mu.Unlock()
		return echo.NewHTTPError(http.StatusBadRequest, "Email already registered")
	}
	u := domain.User{
		ID:                 uuid.NewString(),
		Email:              req.Email,
		FullName:           req.FullName,
		Phone:              req.Phone,
		Company:            req.Company,
		IsActive:           true,
		CreatedAt:          s.now().UTC().Format(createdAtLayout),
		RegisteredAuctions: []string{},
	}
	s.accounts[req.Email] = &account{user: u, hash: hash}
	s.mu.Unlock()

	mw.Logger(c, s.log).Info("user registered", "user_id", u.ID)

	return c.JSON(http.StatusOK, domain.AuthResponse{
		AccessToken: s.issueToken(u.Email),
		TokenType:   tokenType,
	})
}

func (s *server) login(c echo.Context) error {
	var req domain.LoginCredentials
	if err := c.Bind(&req); err != nil {
		return validationError(validationIssue{
			Loc: []string{"body"}, Msg: "invalid JSON body", Type: "value_error.jsondecode",
		})
	}

	s.mu.RLock()
	acct, ok := s.accounts[req.Email]
	s.mu.RUnlock()
	if !ok || bcrypt.CompareHashAndPassword(acct.hash, []byte(req.Password)) != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Incorrect email or password")
	}

	return c.JSON(http.StatusOK, domain.AuthResponse{
		AccessToken: s.issueToken(acct.user.Email),
		TokenType:   tokenType,
	})
}

// requireUser resolves the bearer token to a user. A missing header is
// 403 and an unknown token 401.
func (s *server) requireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
			return echo.NewHTTPError(http.StatusForbidden, "Not authenticated")
		}

		s.mu.RLock()
		email, ok := s.tokens[token]
		var acct *account
		if ok {
			acct = s.accounts[email]
		}
		s.mu.RUnlock()

		if !ok {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authentication credentials")
		}
		if acct == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "User not found")
		}

		c.Set(userContextKey, acct.user)
		return next(c)
	}
}

func (*server) profile(c echo.Context) error {
	u, _ := c.Get(userContextKey).(domain.User)
	return c.JSON(http.StatusOK, u)
}

func (s *server) userAuctions(c echo.Context) error {
	u, _ := c.Get(userContextKey).(domain.User)
	out := []domain.Auction{}
	for _, a := range s.auctions {
		if u.IsRegistered(a.ID) {
			out = append(out, a)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *server) listAuctions(c echo.Context) error {
	return c.JSON(http.StatusOK, s.byStart)
}

func (s *server) getAuction(c echo.Context) error {
	id := c.Param("id")
	for _, a := range s.auctions {
		if a.ID == id {
			return c.JSON(http.StatusOK, a)
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "Auction not found")
}

// listAuctionItems answers [] for an unknown auction rather than 404.
func (s *server) listAuctionItems(c echo.Context) error {
	id := c.Param("id")
	out := []domain.AuctionItem{}
	for _, it := range s.items {
		if it.AuctionID == id {
			out = append(out, it)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (s *server) getItem(c echo.Context) error {
	id := c.Param("id")
	for _, it := range s.items {
		if it.ID == id {
			return c.JSON(http.StatusOK, it)
		}
	}
	return echo.NewHTTPError(http.StatusNotFound, "Item not found")
}

// searchAuctions filters by exact state and status. The price bounds apply
// to item starting prices and only together with a category; a zero bound
// is treated as unset.
func (s *server) searchAuctions(c echo.Context) error {
	category := c.QueryParam("category")
	state := c.QueryParam("state")
	status := c.QueryParam("status")

	minPrice, err := queryFloat(c, "min_price")
	if err != nil {
		return err
	}
	maxPrice, err := queryFloat(c, "max_price")
	if err != nil {
		return err
	}

	var matched map[string]struct{}
	if category != "" {
		matched = make(map[string]struct{})
		for _, it := range s.items {
			if it.Category != category {
				continue
			}
			if minPrice != 0 && it.StartingPrice < minPrice {
				continue
			}
			if maxPrice != 0 && it.StartingPrice > maxPrice {
				continue
			}
			matched[it.AuctionID] = struct{}{}
		}
	}

	out := []domain.Auction{}
	for _, a := range s.auctions {
		if matched != nil {
			if _, ok := matched[a.ID]; !ok {
				continue
			}
		}
		if state != "" && a.State != state {
			continue
		}
		if status != "" && string(a.Status) != status {
			continue
		}
		out = append(out, a)
	}

	mw.Logger(c, s.log).Debug("search",
		"category", category,
		"state", state,
		"status", status,
		"matched", len(out),
	)

	return c.JSON(http.StatusOK, out)
}

func queryFloat(c echo.Context, name string) (float64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, validationError(validationIssue{
			Loc:  []string{"query", name},
			Msg:  "value is not a valid float",
			Type: "type_error.float",
		})
	}
	return v, nil
}
