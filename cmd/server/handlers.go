package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/Simplici0/foamquote/internal/crm"
	"github.com/Simplici0/foamquote/internal/document"
	"github.com/Simplici0/foamquote/internal/estimate"
	"github.com/Simplici0/foamquote/internal/pricing"
	"github.com/Simplici0/foamquote/internal/store"
)

type server struct {
	store *store.Store
	log   *zap.Logger
}

type calculateResponse struct {
	Report    pricing.Report `json:"report"`
	LineItems []crm.LineItem `json:"lineItems"`
}

type estimateResponse struct {
	Document document.Document `json:"document"`
	Report   pricing.Report    `json:"report"`
}

type chargedLaborRateRequest struct {
	GlobalInputs     estimate.GlobalInputs `json:"globalInputs"`
	ChargedLaborRate float64               `json:"chargedLaborRate"`
}

type chargedLaborRateResponse struct {
	GlobalInputs     estimate.GlobalInputs `json:"globalInputs"`
	ChargedLaborRate float64               `json:"chargedLaborRate"`
}

type pricePerSqFtRequest struct {
	Area          estimate.Area `json:"area"`
	ApplicationID string        `json:"applicationId"`
	PricePerSqFt  float64       `json:"pricePerSqFt"`
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Post("/calculate", s.handleCalculate)
		r.Post("/edits/charged-labor-rate", s.handleChargedLaborRate)
		r.Post("/edits/price-per-sqft", s.handlePricePerSqFt)
		r.Post("/documents/migrate", s.handleMigrate)

		r.Get("/estimates", s.handleEstimatesList)
		r.Post("/estimates", s.handleEstimateSave)
		r.Get("/estimates/{id}", s.handleEstimateGet)
		r.Delete("/estimates/{id}", s.handleEstimateDelete)
		r.Get("/estimates/{id}/line-items", s.handleEstimateLineItems)

		r.Get("/settings", s.handleSettingsGet)
		r.Put("/settings", s.handleSettingsPut)
	})
	return r
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// stateFor prices a document with its own settings, or the stored ones when it has none.
func (s *server) stateFor(r *http.Request, doc document.Document) (estimate.State, error) {
	if doc.BusinessSettings != nil {
		return doc.State(*doc.BusinessSettings), nil
	}
	settings, err := s.store.GetBusinessSettings(r.Context())
	if err != nil {
		return estimate.State{}, err
	}
	return doc.State(settings), nil
}

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	doc, err := decodeDocument(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	state, err := s.stateFor(r, doc)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	report := pricing.Calculate(state)
	writeJSON(w, http.StatusOK, calculateResponse{Report: report, LineItems: crm.LineItems(report)})
}

func (s *server) handleChargedLaborRate(w http.ResponseWriter, r *http.Request) {
	var req chargedLaborRateRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	state := estimate.SetGlobalInputs(estimate.NewState(), req.GlobalInputs)
	next, err := estimate.CommitChargedLaborRate(state, req.ChargedLaborRate)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, chargedLaborRateResponse{
		GlobalInputs:     next.Global,
		ChargedLaborRate: estimate.ChargedLaborRate(next.Global),
	})
}

func (s *server) handlePricePerSqFt(w http.ResponseWriter, r *http.Request) {
	var req pricePerSqFtRequest
	if err := decodeJSON(w, r, &req); err != nil {
		s.fail(w, r, err)
		return
	}

	area := estimate.NormalizeArea(req.Area)
	state := estimate.NewState()
	state.Areas = []estimate.Area{area}

	next, err := estimate.CommitPricePerSqFt(state, area.ID, req.ApplicationID, req.PricePerSqFt)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, next.Areas[0])
}

func (s *server) handleMigrate(w http.ResponseWriter, r *http.Request) {
	doc, err := decodeDocument(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *server) handleEstimatesList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	items, err := s.store.ListRecent(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *server) handleEstimateSave(w http.ResponseWriter, r *http.Request) {
	doc, err := decodeDocument(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	state, err := s.stateFor(r, doc)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	summary, err := s.store.SaveEstimate(r.Context(), doc, pricing.Calculate(state))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.log.Info("estimate saved", zap.String("id", summary.ID), zap.Float64("customer_cost", summary.CustomerCost))
	writeJSON(w, http.StatusCreated, summary)
}

// loadEstimate reads the {id} estimate and prices it.
func (s *server) loadEstimate(r *http.Request) (document.Document, pricing.Report, error) {
	doc, err := s.store.GetEstimate(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		return document.Document{}, pricing.Report{}, err
	}
	state, err := s.stateFor(r, doc)
	if err != nil {
		return document.Document{}, pricing.Report{}, err
	}
	return doc, pricing.Calculate(state), nil
}

func (s *server) handleEstimateGet(w http.ResponseWriter, r *http.Request) {
	doc, report, err := s.loadEstimate(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, estimateResponse{Document: doc, Report: report})
}

func (s *server) handleEstimateLineItems(w http.ResponseWriter, r *http.Request) {
	_, report, err := s.loadEstimate(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, crm.LineItems(report))
}

func (s *server) handleEstimateDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteEstimate(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *server) handleSettingsGet(w http.ResponseWriter, r *http.Request) {
	settings, err := s.store.GetBusinessSettings(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, settings)
}

func (s *server) handleSettingsPut(w http.ResponseWriter, r *http.Request) {
	var settings estimate.BusinessSettings
	if err := decodeJSON(w, r, &settings); err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.store.UpdateBusinessSettings(r.Context(), settings); err != nil {
		s.fail(w, r, err)
		return
	}
	s.handleSettingsGet(w, r)
}
