// Package stub is a local stand-in for the property-management API: the same
// token contract (simplejwt-style /token/ and /token/refresh/ exchanges, no
// refresh rotation) and the same resource endpoints over in-memory data. The
// SDK's integration tests and the console's offline mode both run against it.
package stub

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/propdesk/propdesk/api"
)

const defaultSecret = "propdesk-stub-secret"

// Server holds the stub's state and routes.
type Server struct {
	issuer *TokenIssuer
	users  []User

	properties  *collection[api.Property]
	units       *collection[api.Unit]
	tenants     *collection[api.Tenant]
	leases      *collection[api.Lease]
	cheques     *collection[api.Cheque]
	maintenance *collection[api.MaintenanceTicket]
}

// Option configures a stub Server.
type Option func(*serverConfig)

type serverConfig struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	seedData   bool
}

// WithSecret overrides the HS256 signing secret.
func WithSecret(secret string) Option {
	return func(c *serverConfig) { c.secret = []byte(secret) }
}

// WithAccessTTL sets the access-token lifetime. Short TTLs make the refresh
// path reachable end to end.
func WithAccessTTL(ttl time.Duration) Option {
	return func(c *serverConfig) { c.accessTTL = ttl }
}

// WithoutSeedData starts the stub with empty resource tables.
func WithoutSeedData() Option {
	return func(c *serverConfig) { c.seedData = false }
}

// New builds a stub server with the default seed accounts and data.
func New(opts ...Option) *Server {
	cfg := serverConfig{
		secret:     []byte(defaultSecret),
		accessTTL:  5 * time.Minute,
		refreshTTL: 24 * time.Hour,
		seedData:   true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Server{
		issuer: NewTokenIssuer(cfg.secret, cfg.accessTTL, cfg.refreshTTL),
		users:  seedUsers(),
		properties: newCollection(
			func(p api.Property) int { return p.ID },
			func(p *api.Property, id int) { p.ID = id },
		),
		units: newCollection(
			func(u api.Unit) int { return u.ID },
			func(u *api.Unit, id int) { u.ID = id },
		),
		tenants: newCollection(
			func(t api.Tenant) int { return t.ID },
			func(t *api.Tenant, id int) { t.ID = id },
		),
		leases: newCollection(
			func(l api.Lease) int { return l.ID },
			func(l *api.Lease, id int) { l.ID = id },
		),
		cheques: newCollection(
			func(c api.Cheque) int { return c.ID },
			func(c *api.Cheque, id int) { c.ID = id },
		),
		maintenance: newCollection(
			func(m api.MaintenanceTicket) int { return m.ID },
			func(m *api.MaintenanceTicket, id int) { m.ID = id },
		),
	}

	if cfg.seedData {
		s.seed()
	}
	return s
}

func (s *Server) seed() {
	s.properties.add(api.Property{Name: "Marina Heights", Address: "Dubai Marina", City: "Dubai", PropertyType: api.PropertyTypeResidential, CreatedAt: NowTimeFunc()})
	s.properties.add(api.Property{Name: "Deira Plaza", Address: "Al Rigga Rd", City: "Dubai", PropertyType: api.PropertyTypeCommercial, CreatedAt: NowTimeFunc()})

	s.units.add(api.Unit{Property: 1, UnitNumber: "101", UnitType: "1BHK", YearlyRent: "65000.00", Bedrooms: 1, Bathrooms: 1, SquareFeet: 750, Status: api.UnitStatusOccupied})
	s.units.add(api.Unit{Property: 1, UnitNumber: "102", UnitType: "STUDIO", YearlyRent: "48000.00", Bathrooms: 1, SquareFeet: 500, Status: api.UnitStatusVacant})
	s.units.add(api.Unit{Property: 2, UnitNumber: "Office 404", UnitType: "OFFICE", YearlyRent: "120000.00", SquareFeet: 1400, Status: api.UnitStatusVacant})

	s.tenants.add(api.Tenant{Name: "Fatima Hassan", Phone: "+971500000001", Email: "tenant@propdesk.local", Nationality: "UAE", CreatedAt: NowTimeFunc()})

	s.leases.add(api.Lease{Tenant: 1, Unit: 1, StartDate: "2026-01-01", EndDate: "2026-12-31", RentAmount: "65000.00", PaymentFrequency: api.PaymentFrequencyFourCheques, IsActive: true})

	s.cheques.add(api.Cheque{Tenant: 1, Lease: 1, BankName: "Emirates NBD", Amount: "16250.00", ChequeNumber: "000111", ChequeDate: "2026-01-01", Status: api.ChequeStatusCleared})
	s.cheques.add(api.Cheque{Tenant: 1, Lease: 1, BankName: "Emirates NBD", Amount: "16250.00", ChequeNumber: "000112", ChequeDate: "2026-04-01", Status: api.ChequeStatusPending})

	s.maintenance.add(api.MaintenanceTicket{Unit: 1, Tenant: 1, Title: "AC not cooling", Description: "Living room AC blows warm air", Priority: api.PriorityHigh, Status: api.TicketStatusOpen, Source: "TENANT", CreatedAt: NowTimeFunc()})
}

// Issuer exposes the stub's token issuer so tests can mint tokens directly.
func (s *Server) Issuer() *TokenIssuer {
	return s.issuer
}

// FindUser returns the seed user with the given username.
func (s *Server) FindUser(username string) (*User, bool) {
	for i := range s.users {
		if s.users[i].Username == username {
			return &s.users[i], true
		}
	}
	return nil, false
}

// Handler builds the chi router for the stub.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(chimw.StripSlashes)

	r.Post("/token", s.handleLogin)
	r.Post("/token/refresh", s.handleRefresh)
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)

		resourceRoutes(r, "/properties", s.properties)
		resourceRoutes(r, "/units", s.units)
		resourceRoutes(r, "/tenants", s.tenants)
		resourceRoutes(r, "/leases", s.leases)
		resourceRoutes(r, "/cheques", s.cheques)
		resourceRoutes(r, "/maintenance", s.maintenance)

		r.Get("/dashboard/stats", s.handleDashboardStats)
		r.Get("/me", s.handleMyProfile)
		r.Post("/chat", s.handleChat)
	})

	return r
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "malformed request body"})
		return
	}

	user, ok := s.FindUser(creds.Username)
	if !ok || !user.CheckPassword(creds.Password) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "No active account found with the given credentials"})
		return
	}

	access, refresh, err := s.issuer.IssuePair(user)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "token generation failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"access": access, "refresh": refresh})
}

// handleRefresh exchanges a refresh token for a new access token only; the
// refresh token is not rotated, matching the real API's contract.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Refresh string `json:"refresh"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Refresh == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "refresh token required"})
		return
	}

	userID, err := s.issuer.VerifyRefresh(body.Refresh)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token is invalid or expired", "code": "token_not_valid"})
		return
	}

	var user *User
	for i := range s.users {
		if s.users[i].ID == userID {
			user = &s.users[i]
			break
		}
	}
	if user == nil {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Token is invalid or expired", "code": "token_not_valid"})
		return
	}

	access, err := s.issuer.IssueAccess(user, s.issuer.accessTTL)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"detail": "token generation failed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"access": access})
}

func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if raw == "" || raw == r.Header.Get("Authorization") {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Authentication credentials were not provided."})
			return
		}
		claims, err := s.issuer.VerifyAccess(raw)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Given token not valid for any token type", "code": "token_not_valid"})
			return
		}
		username, _ := claims["username"].(string)
		next.ServeHTTP(w, r.WithContext(withUsername(r.Context(), username)))
	})
}

func (s *Server) handleDashboardStats(w http.ResponseWriter, r *http.Request) {
	units := s.units.list()
	occupied, vacant := 0, 0
	for _, u := range units {
		switch u.Status {
		case api.UnitStatusOccupied:
			occupied++
		case api.UnitStatusVacant:
			vacant++
		}
	}
	rate := 0.0
	if len(units) > 0 {
		rate = float64(occupied) / float64(len(units)) * 100
	}

	stats := api.DashboardStats{
		TotalProperties: len(s.properties.list()),
		TotalUnits:      len(units),
		OccupiedUnits:   occupied,
		VacantUnits:     vacant,
		OccupancyRate:   rate,
		ActiveTenants:   len(s.tenants.list()),
	}
	for _, ch := range s.cheques.list() {
		amount, _ := strconv.ParseFloat(ch.Amount, 64)
		switch ch.Status {
		case api.ChequeStatusPending:
			stats.PendingCheques++
			stats.TotalPendingAmount += amount
		case api.ChequeStatusCleared:
			stats.TotalRevenue += amount
		case api.ChequeStatusBounced:
			stats.BouncedCheques++
			stats.BouncedAmount += amount
		}
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleMyProfile(w http.ResponseWriter, r *http.Request) {
	username, _ := usernameFromContext(r.Context())
	user, ok := s.FindUser(username)
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	for _, t := range s.tenants.list() {
		if t.Email == user.Email {
			writeJSON(w, http.StatusOK, t)
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "No tenant profile linked to this account."})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "query required"})
		return
	}
	reply := fmt.Sprintf("PropDesk assistant (offline stub). You asked: %q. Connect the real API for live answers.", body.Query)
	writeJSON(w, http.StatusOK, map[string]string{"response": reply})
}

// resourceRoutes mounts DRF-style CRUD endpoints for one collection.
func resourceRoutes[T any](r chi.Router, prefix string, col *collection[T]) {
	r.Route(prefix, func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, col.list())
		})
		r.Post("/", func(w http.ResponseWriter, req *http.Request) {
			var item T
			if err := json.NewDecoder(req.Body).Decode(&item); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "malformed request body"})
				return
			}
			writeJSON(w, http.StatusCreated, col.add(item))
		})
		r.Get("/{id}", func(w http.ResponseWriter, req *http.Request) {
			item, ok := col.get(pathID(req))
			if !ok {
				writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
				return
			}
			writeJSON(w, http.StatusOK, item)
		})
		r.Put("/{id}", func(w http.ResponseWriter, req *http.Request) {
			var item T
			if err := json.NewDecoder(req.Body).Decode(&item); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "malformed request body"})
				return
			}
			updated, ok := col.replace(pathID(req), item)
			if !ok {
				writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
				return
			}
			writeJSON(w, http.StatusOK, updated)
		})
		r.Patch("/{id}", func(w http.ResponseWriter, req *http.Request) {
			patch, err := io.ReadAll(req.Body)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "unreadable request body"})
				return
			}
			updated, found, err := col.merge(pathID(req), patch)
			if !found {
				writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
				return
			}
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "malformed request body"})
				return
			}
			writeJSON(w, http.StatusOK, updated)
		})
		r.Delete("/{id}", func(w http.ResponseWriter, req *http.Request) {
			if !col.remove(pathID(req)) {
				writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
				return
			}
			w.WriteHeader(http.StatusNoContent)
		})
	})
}

func pathID(r *http.Request) int {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		return 0
	}
	return id
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Err(err).Msg("Failed to encode stub response")
	}
}
