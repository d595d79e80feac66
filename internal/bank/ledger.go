package bank

import "sort"

// AccountLedger owns the active account set. It exposes the deposit/withdraw
// primitives and the point-in-time balance query; every other component sits
// on top of it.
type AccountLedger struct {
	accounts map[string]*Account
}

func NewAccountLedger() *AccountLedger {
	return &AccountLedger{accounts: make(map[string]*Account)}
}

// Create registers a zero-balance account stamped with ts.
func (l *AccountLedger) Create(id string, ts int64) error {
	if _, ok := l.accounts[id]; ok {
		return ErrAccountExists
	}
	l.accounts[id] = &Account{ID: id, CreatedAt: ts}
	return nil
}

func (l *AccountLedger) account(id string) (*Account, bool) {
	a, ok := l.accounts[id]
	return a, ok
}

// Deposit credits amount and returns the new balance. Non-positive amounts
// are rejected with no state change.
func (l *AccountLedger) Deposit(id string, ts, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidArgument
	}
	a, ok := l.accounts[id]
	if !ok {
		return 0, ErrAccountNotFound
	}
	a.Balance += amount
	a.TotalValue += amount
	a.appendTransaction(Transaction{TS: ts, Kind: KindDeposit, Amount: amount})
	return a.Balance, nil
}

// Withdraw debits amount, honoring the escrow held by pending transfers.
func (l *AccountLedger) Withdraw(id string, ts, amount int64) (int64, error) {
	a, ok := l.accounts[id]
	if !ok {
		return 0, ErrAccountNotFound
	}
	if !a.hasAvailable(amount) {
		return 0, ErrInsufficientFunds
	}
	a.Balance -= amount
	a.TotalValue += amount
	a.TotalWithdrawn += amount
	a.appendTransaction(Transaction{TS: ts, Kind: KindWithdraw, Amount: -amount})
	return a.Balance, nil
}

// BalanceAsOf replays the transaction log up to and including timeAt. Returns
// ErrAccountNotFound when the account was created after timeAt.
func (l *AccountLedger) BalanceAsOf(id string, timeAt int64) (int64, error) {
	a, ok := l.accounts[id]
	if !ok {
		return 0, ErrAccountNotFound
	}
	if a.CreatedAt > timeAt {
		return 0, ErrAccountNotFound
	}
	end := sort.Search(len(a.Transactions), func(i int) bool {
		return a.Transactions[i].TS > timeAt
	})
	var balance int64
	for _, tx := range a.Transactions[:end] {
		balance += tx.Amount
	}
	return balance, nil
}

// fold adds src's balances, escrow, aggregates and history into dst and drops
// src from the active set. The log union keeps chronological order so later
// BalanceAsOf queries replay correctly.
func (l *AccountLedger) fold(dst, src *Account) {
	dst.Balance += src.Balance
	dst.Held += src.Held
	dst.TotalValue += src.TotalValue
	dst.TotalWithdrawn += src.TotalWithdrawn
	dst.Transactions = mergeLogs(dst.Transactions, src.Transactions)
	delete(l.accounts, src.ID)
}

func mergeLogs(a, b []Transaction) []Transaction {
	out := make([]Transaction, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		if b[j].TS < a[i].TS {
			out = append(out, b[j])
			j++
		} else {
			out = append(out, a[i])
			i++
		}
	}
	out = append(out, a[i:]...)
	return append(out, b[j:]...)
}
