package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter wires every operation endpoint plus health and metrics.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.HandleFunc("/health", h.HealthCheckHandler).Methods("GET")

	apiV1 := r.PathPrefix("/api/v1").Subrouter()
	apiV1.HandleFunc("/accounts", h.CreateAccountHandler).Methods("POST")
	apiV1.HandleFunc("/accounts/{id}/balance", h.BalanceHandler).Methods("GET")
	apiV1.HandleFunc("/deposits", h.DepositHandler).Methods("POST")
	apiV1.HandleFunc("/payments", h.PayHandler).Methods("POST")
	apiV1.HandleFunc("/payments/{id}/status", h.PaymentStatusHandler).Methods("GET")
	apiV1.HandleFunc("/rankings/activity", h.TopActivityHandler).Methods("GET")
	apiV1.HandleFunc("/rankings/spenders", h.TopSpendersHandler).Methods("GET")
	apiV1.HandleFunc("/transfers", h.TransferHandler).Methods("POST")
	apiV1.HandleFunc("/transfers/accept", h.AcceptTransferHandler).Methods("POST")
	apiV1.HandleFunc("/scheduled-payments", h.SchedulePaymentHandler).Methods("POST")
	apiV1.HandleFunc("/scheduled-payments/cancel", h.CancelPaymentHandler).Methods("POST")
	apiV1.HandleFunc("/merges", h.MergeAccountsHandler).Methods("POST")
	return r
}
