// Package api serves the registry over HTTP.
//
// Requests are serialized: the registry is not safe for concurrent use, so
// every handler runs under a single lock.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/etnz/rentroll"
	"github.com/etnz/rentroll/date"
	"github.com/etnz/rentroll/renderer"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Saver persists the registry after a change.
type Saver interface {
	Save(ctx context.Context, reg *rentroll.Registry) error
}

// Server is the registry HTTP handler.
type Server struct {
	mu       sync.Mutex
	reg      *rentroll.Registry
	saver    Saver
	window   int
	log      logrus.FieldLogger
	router   *mux.Router
	validate *validator.Validate

	// Today returns the default day of reports and statements.
	Today func() date.Date
}

// New creates a server over 'reg'. Changes are persisted with 'saver' when
// not nil; reports cover 'window' months unless a request says otherwise.
func New(reg *rentroll.Registry, saver Saver, window int, log logrus.FieldLogger) *Server {
	s := &Server{
		reg:      reg,
		saver:    saver,
		window:   window,
		log:      log,
		router:   mux.NewRouter(),
		validate: validator.New(),
		Today:    date.Today,
	}
	s.router.Use(s.logRequests)
	s.router.HandleFunc("/buildings", s.listBuildings).Methods(http.MethodGet)
	s.router.HandleFunc("/buildings/{name}/report", s.buildingReport).Methods(http.MethodGet)
	s.router.HandleFunc("/report", s.portfolioReport).Methods(http.MethodGet)
	s.router.HandleFunc("/residents/{username}/statement", s.statement).Methods(http.MethodGet)
	s.router.HandleFunc("/charges/{id}/payments", s.pay).Methods(http.MethodPost)
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.router.ServeHTTP(w, r)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"duration": time.Since(start),
		}).Debug("request served")
	})
}

// BuildingSummary is a line of the building list.
type BuildingSummary struct {
	Name           string `json:"name"`
	TotalUnits     int    `json:"totalUnits"`
	Occupied       int    `json:"occupied"`
	RentableArea   int    `json:"rentableArea"`
	OpenComplaints int    `json:"openComplaints"`
}

func (s *Server) listBuildings(w http.ResponseWriter, r *http.Request) {
	list := []BuildingSummary{}
	for _, b := range s.reg.Buildings() {
		list = append(list, BuildingSummary{
			Name:           b.Name(),
			TotalUnits:     b.TotalUnits(),
			Occupied:       b.Occupied(),
			RentableArea:   b.RentableArea(),
			OpenComplaints: b.OpenComplaints(),
		})
	}
	respondJSON(w, s.log, http.StatusOK, list)
}

// reportQuery holds the report query parameters, bounded like the configured window.
type reportQuery struct {
	Window int `validate:"gte=1,lte=120"`
}

// reportParams reads the optional 'end' and 'window' query parameters.
func (s *Server) reportParams(r *http.Request) (date.Date, int, bool) {
	end, ok := s.dayParam(r, "end")
	if !ok {
		return end, 0, false
	}
	q := reportQuery{Window: s.window}
	if v := r.URL.Query().Get("window"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return end, 0, false
		}
		q.Window = n
	}
	if err := s.validate.Struct(q); err != nil {
		return end, 0, false
	}
	return end, q.Window, true
}

// dayParam reads a date query parameter, defaulting to today.
func (s *Server) dayParam(r *http.Request, name string) (date.Date, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return s.Today(), true
	}
	d, err := date.Parse(v)
	return d, err == nil
}

func (s *Server) buildingReport(w http.ResponseWriter, r *http.Request) {
	end, window, ok := s.reportParams(r)
	if !ok {
		respondError(w, s.log, ErrInvalidRequest)
		return
	}
	report, err := s.reg.BuildingReport(mux.Vars(r)["name"], end, window)
	if err != nil {
		respondDomainError(w, s.log, err)
		return
	}
	respondJSON(w, s.log, http.StatusOK, report)
}

func (s *Server) portfolioReport(w http.ResponseWriter, r *http.Request) {
	end, window, ok := s.reportParams(r)
	if !ok {
		respondError(w, s.log, ErrInvalidRequest)
		return
	}
	respondJSON(w, s.log, http.StatusOK, s.reg.PortfolioReport(end, window))
}

func (s *Server) statement(w http.ResponseWriter, r *http.Request) {
	on, ok := s.dayParam(r, "on")
	if !ok {
		respondError(w, s.log, ErrInvalidRequest)
		return
	}
	res, err := s.reg.Resident(mux.Vars(r)["username"])
	if err != nil {
		respondDomainError(w, s.log, err)
		return
	}
	respondJSON(w, s.log, http.StatusOK, renderer.NewStatement(res, on))
}

// PaymentRequest is the body of a payment.
type PaymentRequest struct {
	Amount  decimal.Decimal `json:"amount"`
	Account string          `json:"account" validate:"required"`
	Date    string          `json:"date"`
	Note    string          `json:"note" validate:"max=200"`
}

func (s *Server) pay(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, s.log, ErrInvalidRequest)
		return
	}
	var req PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, s.log, ErrInvalidRequest)
		return
	}
	if err := s.validate.Struct(req); err != nil {
		respondError(w, s.log, ErrInvalidRequest)
		return
	}
	on := s.Today()
	if req.Date != "" {
		if on, err = date.Parse(req.Date); err != nil {
			respondError(w, s.log, ErrInvalidRequest)
			return
		}
	}

	c, ok := s.reg.Charge(id)
	if !ok {
		respondError(w, s.log, ErrNotFound)
		return
	}
	p, err := s.reg.Pay(c, rentroll.M(req.Amount, s.reg.Currency()), req.Account, on, req.Note)
	if err != nil {
		respondDomainError(w, s.log, err)
		return
	}
	if s.saver != nil {
		if err := s.saver.Save(r.Context(), s.reg); err != nil {
			s.log.WithError(err).Error("failed to save registry")
			if err := s.reg.Void(c, p); err != nil {
				s.log.WithError(err).Error("failed to void unsaved payment")
			}
			respondError(w, s.log, ErrInternal)
			return
		}
	}
	s.log.WithFields(logrus.Fields{
		"charge":       c.Name(),
		"confirmation": p.Confirmation(),
	}).Info("payment accepted")
	respondJSON(w, s.log, http.StatusCreated, p)
}
