package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"freight/internal/carrier"
	"freight/internal/eligibility"
	"freight/internal/offers"
	"freight/internal/shipment"
)

// ApiV1Router manages routes for API version 1.
type ApiV1Router struct {
	offers   OfferService
	scoring  ScoringConfigurator
	carriers carrier.Provider
	logger   *slog.Logger
	// maxBodyBytes limits request bodies; zero disables the limit.
	maxBodyBytes int64
}

type eligibilityRequest struct {
	CarrierID string            `json:"carrierId" validate:"required"`
	Shipment  shipment.Shipment `json:"shipment"`
}

// CarrierDetails is a carrier together with its rules split the way the engine applies them.
type CarrierDetails struct {
	carrier.Carrier
	HardConstraints []carrier.EligibilityRule `json:"hardConstraints"`
	BusinessRules   []carrier.EligibilityRule `json:"businessRules"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Mux returns the API handler with request id, logging and body limit middleware applied.
// Registers the following routes:
// - POST /api/v1/offers: ranked offers for a shipment
// - POST /api/v1/eligibility: eligibility of one carrier for a shipment
// - GET /api/v1/carriers: carrier catalog
// - GET /api/v1/carriers/{id}: one carrier with its rule classification
// - GET /api/v1/configuration: scoring configuration in effect
// - PUT /api/v1/configuration: partial update of the scoring configuration
// - GET /healthz: liveness probe
func (ar *ApiV1Router) Mux() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/v1/offers", ar.offersHandler)
	mux.HandleFunc("POST /api/v1/eligibility", ar.eligibilityHandler)
	mux.HandleFunc("GET /api/v1/carriers", ar.carriersHandler)
	mux.HandleFunc("GET /api/v1/carriers/{id}", ar.carrierHandler)
	mux.HandleFunc("GET /api/v1/configuration", ar.getConfigurationHandler)
	mux.HandleFunc("PUT /api/v1/configuration", ar.putConfigurationHandler)
	mux.HandleFunc("GET /healthz", ar.healthHandler)

	var handler http.Handler = mux
	if ar.maxBodyBytes > 0 {
		handler = withBodyLimit(ar.maxBodyBytes, handler)
	}

	return withRequestID(withLogging(ar.logger, handler))
}

func (ar *ApiV1Router) offersHandler(w http.ResponseWriter, r *http.Request) {
	var req offers.Request
	if !ar.decode(w, r, &req) {
		return
	}

	response, err := ar.offers.GetOffers(r.Context(), req)
	if err != nil {
		ar.logger.Error("Unable to compute offers", "error", err, "request_id", RequestID(r.Context()))
		writeError(w, http.StatusInternalServerError, "internal_error", "unable to compute offers")
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (ar *ApiV1Router) eligibilityHandler(w http.ResponseWriter, r *http.Request) {
	var req eligibilityRequest
	if !ar.decode(w, r, &req) {
		return
	}

	result, err := ar.offers.Evaluate(r.Context(), req.CarrierID, req.Shipment)
	if err != nil {
		ar.providerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (ar *ApiV1Router) carriersHandler(w http.ResponseWriter, r *http.Request) {
	carriers, err := ar.carriers.Carriers(r.Context())
	if err != nil {
		ar.providerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, carriers)
}

func (ar *ApiV1Router) carrierHandler(w http.ResponseWriter, r *http.Request) {
	c, err := ar.carriers.Carrier(r.Context(), r.PathValue("id"))
	if err != nil {
		ar.providerError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, CarrierDetails{
		Carrier:         c,
		HardConstraints: carrier.HardConstraintRules(c),
		BusinessRules:   carrier.BusinessRules(c),
	})
}

func (ar *ApiV1Router) getConfigurationHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ar.scoring.Configuration())
}

func (ar *ApiV1Router) putConfigurationHandler(w http.ResponseWriter, r *http.Request) {
	var overrides eligibility.Overrides
	if !ar.decode(w, r, &overrides) {
		return
	}

	if err := ar.scoring.UpdateConfiguration(overrides); err != nil {
		var configErr *eligibility.ConfigurationError
		if errors.As(err, &configErr) {
			writeError(w, http.StatusUnprocessableEntity, "invalid_configuration", err.Error())
			return
		}
		ar.logger.Error("Unable to update configuration", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unable to update configuration")
		return
	}

	writeJSON(w, http.StatusOK, ar.scoring.Configuration())
}

func (ar *ApiV1Router) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// decode reads a JSON body into v and validates it. On failure the error response is
// already written and false is returned.
func (ar *ApiV1Router) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "request_too_large", err.Error())
			return false
		}
		ar.logger.Warn("Unable to decode request body", "error", err, "request_id", RequestID(r.Context()))
		writeError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return false
	}

	if err := ValidateStruct(v); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
		return false
	}

	return true
}

func (ar *ApiV1Router) providerError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *carrier.NotFoundError
	if errors.As(err, &notFound) {
		writeError(w, http.StatusNotFound, "not_found", err.Error())
		return
	}

	ar.logger.Error("Carrier provider failed", "error", err, "request_id", RequestID(r.Context()))
	writeError(w, http.StatusInternalServerError, "internal_error", "carrier catalog unavailable")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Warn("Unable to marshal response", "error", err)
		writeError(w, http.StatusInternalServerError, "internal_error", "unable to encode response")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	body, _ := json.Marshal(errorResponse{Error: code, Message: message})
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}

// NewApiV1Router creates a new API v1 router.
func NewApiV1Router(
	offerService OfferService,
	scoring ScoringConfigurator,
	carriers carrier.Provider,
	maxBodyBytes int64,
) *ApiV1Router {
	return &ApiV1Router{
		offers:       offerService,
		scoring:      scoring,
		carriers:     carriers,
		logger:       slog.Default().With("component", "http"),
		maxBodyBytes: maxBodyBytes,
	}
}
