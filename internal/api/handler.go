package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/punchamoorthee/bankops/internal/bank"
	"github.com/punchamoorthee/bankops/internal/models"
)

var (
	opsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bank_operations_total",
		Help: "Total ledger operations processed, labeled by outcome",
	}, []string{"op", "outcome"})

	opDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bank_operation_duration_seconds",
		Help:    "Latency distribution of ledger operations",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"op"})
)

// Handler exposes the ledger engine over HTTP. Result bodies carry the same
// values the textual protocol defines; not-found and invalid outcomes map to
// 404/409/422 instead of the empty-string sentinel.
type Handler struct {
	engine *bank.Bank
}

func NewHandler(engine *bank.Bank) *Handler {
	return &Handler{engine: engine}
}

func (h *Handler) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) CreateAccountHandler(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(opDuration.WithLabelValues("create_account"))
	defer timer.ObserveDuration()

	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}

	if err := h.engine.CreateAccount(req.Timestamp, req.AccountID); err != nil {
		opsTotal.WithLabelValues("create_account", "rejected").Inc()
		respondWithJSON(w, http.StatusConflict, models.BoolResult{Result: false})
		return
	}
	opsTotal.WithLabelValues("create_account", "ok").Inc()
	respondWithJSON(w, http.StatusCreated, models.BoolResult{Result: true})
}

func (h *Handler) DepositHandler(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(opDuration.WithLabelValues("deposit"))
	defer timer.ObserveDuration()

	var req models.DepositRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}

	balance, err := h.engine.Deposit(req.Timestamp, req.AccountID, req.Amount)
	if err != nil {
		h.respondEngineError(w, "deposit", err)
		return
	}
	opsTotal.WithLabelValues("deposit", "ok").Inc()
	respondWithJSON(w, http.StatusOK, models.TextResult{Result: strconv.FormatInt(balance, 10)})
}

func (h *Handler) PayHandler(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(opDuration.WithLabelValues("pay"))
	defer timer.ObserveDuration()

	var req models.PayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}

	paymentID, err := h.engine.Pay(req.Timestamp, req.AccountID, req.Amount)
	if err != nil {
		h.respondEngineError(w, "pay", err)
		return
	}
	opsTotal.WithLabelValues("pay", "ok").Inc()
	respondWithJSON(w, http.StatusCreated, models.TextResult{Result: paymentID})
}

func (h *Handler) TopActivityHandler(w http.ResponseWriter, r *http.Request) {
	h.rankingHandler(w, r, "top_activity", h.engine.TopActivity)
}

func (h *Handler) TopSpendersHandler(w http.ResponseWriter, r *http.Request) {
	h.rankingHandler(w, r, "top_spenders", h.engine.TopSpenders)
}

func (h *Handler) rankingHandler(w http.ResponseWriter, r *http.Request, op string, rank func(int64, int) string) {
	timer := prometheus.NewTimer(opDuration.WithLabelValues(op))
	defer timer.ObserveDuration()

	ts, err := queryInt(r, "timestamp")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Bad or missing timestamp")
		return
	}
	n, err := queryInt(r, "n")
	if err != nil || n < 0 {
		respondWithError(w, http.StatusBadRequest, "Bad or missing n")
		return
	}

	opsTotal.WithLabelValues(op, "ok").Inc()
	respondWithJSON(w, http.StatusOK, models.TextResult{Result: rank(ts, int(n))})
}

func (h *Handler) TransferHandler(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(opDuration.WithLabelValues("transfer"))
	defer timer.ObserveDuration()

	var req models.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}

	transferID, err := h.engine.Transfer(req.Timestamp, req.SourceAccountID, req.TargetAccountID, req.Amount)
	if err != nil {
		h.respondEngineError(w, "transfer", err)
		return
	}
	opsTotal.WithLabelValues("transfer", "ok").Inc()
	respondWithJSON(w, http.StatusCreated, models.TextResult{Result: transferID})
}

func (h *Handler) AcceptTransferHandler(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(opDuration.WithLabelValues("accept_transfer"))
	defer timer.ObserveDuration()

	var req models.AcceptTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}

	if err := h.engine.AcceptTransfer(req.Timestamp, req.AccountID, req.TransferID); err != nil {
		opsTotal.WithLabelValues("accept_transfer", "rejected").Inc()
		respondWithJSON(w, http.StatusOK, models.BoolResult{Result: false})
		return
	}
	opsTotal.WithLabelValues("accept_transfer", "ok").Inc()
	respondWithJSON(w, http.StatusOK, models.BoolResult{Result: true})
}

func (h *Handler) PaymentStatusHandler(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(opDuration.WithLabelValues("payment_status"))
	defer timer.ObserveDuration()

	ts, err := queryInt(r, "timestamp")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Bad or missing timestamp")
		return
	}
	accountID := r.URL.Query().Get("account_id")
	paymentID := mux.Vars(r)["id"]

	status, err := h.engine.GetPaymentStatus(ts, accountID, paymentID)
	if err != nil {
		h.respondEngineError(w, "payment_status", err)
		return
	}
	opsTotal.WithLabelValues("payment_status", "ok").Inc()
	respondWithJSON(w, http.StatusOK, models.TextResult{Result: status})
}

func (h *Handler) SchedulePaymentHandler(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(opDuration.WithLabelValues("schedule_payment"))
	defer timer.ObserveDuration()

	var req models.SchedulePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}

	paymentID, err := h.engine.SchedulePayment(req.Timestamp, req.AccountID, req.Amount, req.Delay)
	if err != nil {
		h.respondEngineError(w, "schedule_payment", err)
		return
	}
	opsTotal.WithLabelValues("schedule_payment", "ok").Inc()
	respondWithJSON(w, http.StatusCreated, models.TextResult{Result: paymentID})
}

func (h *Handler) CancelPaymentHandler(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(opDuration.WithLabelValues("cancel_payment"))
	defer timer.ObserveDuration()

	var req models.CancelPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}

	if err := h.engine.CancelPayment(req.Timestamp, req.AccountID, req.PaymentID); err != nil {
		opsTotal.WithLabelValues("cancel_payment", "rejected").Inc()
		respondWithJSON(w, http.StatusOK, models.BoolResult{Result: false})
		return
	}
	opsTotal.WithLabelValues("cancel_payment", "ok").Inc()
	respondWithJSON(w, http.StatusOK, models.BoolResult{Result: true})
}

func (h *Handler) MergeAccountsHandler(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(opDuration.WithLabelValues("merge_accounts"))
	defer timer.ObserveDuration()

	var req models.MergeAccountsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Malformed JSON body")
		return
	}

	if err := h.engine.MergeAccounts(req.Timestamp, req.AccountID1, req.AccountID2); err != nil {
		opsTotal.WithLabelValues("merge_accounts", "rejected").Inc()
		respondWithJSON(w, http.StatusOK, models.BoolResult{Result: false})
		return
	}
	opsTotal.WithLabelValues("merge_accounts", "ok").Inc()
	respondWithJSON(w, http.StatusOK, models.BoolResult{Result: true})
}

func (h *Handler) BalanceHandler(w http.ResponseWriter, r *http.Request) {
	timer := prometheus.NewTimer(opDuration.WithLabelValues("get_balance"))
	defer timer.ObserveDuration()

	ts, err := queryInt(r, "timestamp")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Bad or missing timestamp")
		return
	}
	timeAt, err := queryInt(r, "time_at")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Bad or missing time_at")
		return
	}
	accountID := mux.Vars(r)["id"]

	balance, err := h.engine.GetBalance(ts, accountID, timeAt)
	if err != nil {
		h.respondEngineError(w, "get_balance", err)
		return
	}
	opsTotal.WithLabelValues("get_balance", "ok").Inc()
	respondWithJSON(w, http.StatusOK, models.BalanceResult{Result: balance})
}

// respondEngineError maps engine sentinels onto HTTP statuses.
func (h *Handler) respondEngineError(w http.ResponseWriter, op string, err error) {
	opsTotal.WithLabelValues(op, "rejected").Inc()
	switch {
	case errors.Is(err, bank.ErrAccountNotFound),
		errors.Is(err, bank.ErrPaymentNotFound),
		errors.Is(err, bank.ErrTransferNotFound):
		respondWithError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, bank.ErrAccountExists):
		respondWithError(w, http.StatusConflict, err.Error())
	case errors.Is(err, bank.ErrInsufficientFunds),
		errors.Is(err, bank.ErrInvalidArgument),
		errors.Is(err, bank.ErrOwnershipMismatch):
		respondWithError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		respondWithError(w, http.StatusInternalServerError, "Internal Server Error")
	}
}

func queryInt(r *http.Request, key string) (int64, error) {
	return strconv.ParseInt(r.URL.Query().Get(key), 10, 64)
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, map[string]string{"error": message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}
