package models

// Request payloads for the HTTP front end. Timestamps are the externally
// supplied stream timestamps, not wall-clock time.

type CreateAccountRequest struct {
	Timestamp int64  `json:"timestamp"`
	AccountID string `json:"account_id"`
}

type DepositRequest struct {
	Timestamp int64  `json:"timestamp"`
	AccountID string `json:"account_id"`
	Amount    int64  `json:"amount"`
}

type PayRequest struct {
	Timestamp int64  `json:"timestamp"`
	AccountID string `json:"account_id"`
	Amount    int64  `json:"amount"`
}

type TransferRequest struct {
	Timestamp       int64  `json:"timestamp"`
	SourceAccountID string `json:"source_account_id"`
	TargetAccountID string `json:"target_account_id"`
	Amount          int64  `json:"amount"`
}

type AcceptTransferRequest struct {
	Timestamp  int64  `json:"timestamp"`
	AccountID  string `json:"account_id"`
	TransferID string `json:"transfer_id"`
}

type SchedulePaymentRequest struct {
	Timestamp int64  `json:"timestamp"`
	AccountID string `json:"account_id"`
	Amount    int64  `json:"amount"`
	Delay     int64  `json:"delay"`
}

type CancelPaymentRequest struct {
	Timestamp int64  `json:"timestamp"`
	AccountID string `json:"account_id"`
	PaymentID string `json:"payment_id"`
}

type MergeAccountsRequest struct {
	Timestamp  int64  `json:"timestamp"`
	AccountID1 string `json:"account_id_1"`
	AccountID2 string `json:"account_id_2"`
}

// BoolResult carries the outcome of the boolean operations
// (create / accept / cancel / merge).
type BoolResult struct {
	Result bool `json:"result"`
}

// TextResult carries a textual protocol result: a balance, an allocated
// identifier, a payment status or a ranking line.
type TextResult struct {
	Result string `json:"result"`
}

// BalanceResult carries a point-in-time balance.
type BalanceResult struct {
	Result int64 `json:"result"`
}
