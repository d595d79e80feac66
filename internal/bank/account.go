package bank

// TransactionKind classifies one ledger entry.
type TransactionKind string

const (
	KindDeposit          TransactionKind = "DEPOSIT"
	KindWithdraw         TransactionKind = "WITHDRAW"
	KindTransferIn       TransactionKind = "TRANSFER_IN"
	KindTransferOut      TransactionKind = "TRANSFER_OUT"
	KindCashback         TransactionKind = "CASHBACK"
	KindScheduledPayment TransactionKind = "PAYMENT"
)

// Transaction is one immutable ledger entry. Amount is signed: positive
// credits the account, negative debits it.
type Transaction struct {
	TS     int64           `json:"ts"`
	Kind   TransactionKind `json:"kind"`
	Amount int64           `json:"amount"`
}

// Account holds a single account's balance, escrowed funds, transaction log
// and the two running aggregates the ranking views read. The log stays
// ordered by timestamp; entries at equal timestamps keep insertion order.
type Account struct {
	ID             string
	CreatedAt      int64
	Balance        int64
	Held           int64
	Transactions   []Transaction
	TotalValue     int64
	TotalWithdrawn int64
}

// hasAvailable reports whether amount can leave the account once the escrowed
// portion is set aside. Invariant: Held <= Balance.
func (a *Account) hasAvailable(amount int64) bool {
	return a.Balance-a.Held-amount >= 0
}

// append assumes callers supply non-decreasing timestamps, which the strictly
// increasing input stream guarantees.
func (a *Account) appendTransaction(tx Transaction) {
	a.Transactions = append(a.Transactions, tx)
}
