// Package bank implements an in-memory ledger engine driven by a strictly
// timestamp-ordered stream of account operations: create, deposit,
// withdraw-with-deferred-cashback, scheduled payments, escrowed transfers
// with acceptance and expiration, activity rankings, irreversible account
// merges and point-in-time balance queries.
//
// Deferred effects scheduled for the future are always applied before any
// operation bearing a later timestamp; multiple effects due at once apply in
// creation order. All invalid inputs surface as sentinel errors, never
// panics, so one bad query cannot abort stream processing.
package bank

import (
	"strconv"
	"strings"
	"sync"
)

const millisPerDay = int64(24 * 60 * 60 * 1000)

// Transfers expire and cashback refunds mature one day after creation.
const (
	transferExpiryWindow  = millisPerDay
	cashbackWaitingPeriod = millisPerDay
)

// Bank is the aggregate root: it owns every component and a single mutex so
// front ends may call from multiple goroutines. Timestamp ordering across
// calls remains the caller's contract.
type Bank struct {
	mu        sync.Mutex
	ledger    *AccountLedger
	scheduler *PaymentScheduler
	transfers *TransferCoordinator
	ranking   *RankingIndex
	merges    *MergeResolver
}

func New() *Bank {
	ledger := NewAccountLedger()
	return &Bank{
		ledger:    ledger,
		scheduler: NewPaymentScheduler(ledger),
		transfers: NewTransferCoordinator(ledger),
		ranking:   &RankingIndex{ledger: ledger},
		merges:    NewMergeResolver(),
	}
}

// advance settles every deferred effect that falls at or before ts: stale
// transfers release their escrow first, then due payments apply. Every
// operation runs this before touching any other state.
func (b *Bank) advance(ts int64) {
	b.transfers.Expire(ts)
	b.scheduler.ApplyDue(ts)
}

// CreateAccount registers a new zero-balance account.
func (b *Bank) CreateAccount(ts int64, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance(ts)
	return b.ledger.Create(id, ts)
}

// Deposit credits amount and returns the new balance.
func (b *Bank) Deposit(ts int64, id string, amount int64) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance(ts)
	return b.ledger.Deposit(id, ts, amount)
}

// Pay withdraws amount and books a 2% cashback refund, rounded down, due one
// day later. Returns the refund's payment identifier.
func (b *Bank) Pay(ts int64, id string, amount int64) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance(ts)
	if _, err := b.ledger.Withdraw(id, ts, amount); err != nil {
		return "", err
	}
	return b.scheduler.ScheduleCashback(id, ts+cashbackWaitingPeriod, amount*2/100), nil
}

// TopActivity ranks active accounts by total transaction value.
func (b *Bank) TopActivity(ts int64, n int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance(ts)
	return b.ranking.TopByActivity(n)
}

// TopSpenders ranks active accounts by total withdrawn value.
func (b *Bank) TopSpenders(ts int64, n int) string {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance(ts)
	return b.ranking.TopSpenders(n)
}

// Transfer initiates an escrowed transfer and returns its identifier.
func (b *Bank) Transfer(ts int64, src, dst string, amount int64) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance(ts)
	return b.transfers.Initiate(ts, src, dst, amount)
}

// AcceptTransfer accepts a pending transfer on behalf of its target account.
func (b *Bank) AcceptTransfer(ts int64, id, transferID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance(ts)
	ordinal, ok := parseOrdinal(transferID, "transfer")
	if !ok {
		return ErrTransferNotFound
	}
	return b.transfers.Accept(ts, id, ordinal)
}

// GetPaymentStatus reports a payment's lifecycle, resolving merged ids first.
func (b *Bank) GetPaymentStatus(ts int64, id, paymentID string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance(ts)
	resolved := b.merges.Resolve(id)
	if _, ok := b.ledger.account(resolved); !ok {
		return "", ErrAccountNotFound
	}
	ordinal, ok := parseOrdinal(paymentID, "payment")
	if !ok {
		return "", ErrPaymentNotFound
	}
	return b.scheduler.Status(resolved, ordinal)
}

// SchedulePayment files a payment due at ts+delay and returns its identifier.
func (b *Bank) SchedulePayment(ts int64, id string, amount, delay int64) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance(ts)
	return b.scheduler.Schedule(id, ts, amount, delay)
}

// CancelPayment cancels a still-pending scheduled payment owned by id.
// Payments due at ts have already been applied by the time this runs.
func (b *Bank) CancelPayment(ts int64, id, paymentID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance(ts)
	ordinal, ok := parseOrdinal(paymentID, "payment")
	if !ok {
		return ErrPaymentNotFound
	}
	return b.scheduler.Cancel(id, ordinal)
}

// MergeAccounts folds id2 into id1: balances, escrow, aggregates and history
// move to id1, id2's payments and pending transfers are retargeted, and id2
// retires into the merge map.
func (b *Bank) MergeAccounts(ts int64, id1, id2 string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance(ts)
	if id1 == id2 {
		return ErrInvalidArgument
	}
	dst, ok := b.ledger.account(id1)
	if !ok {
		return ErrAccountNotFound
	}
	src, ok := b.ledger.account(id2)
	if !ok {
		return ErrAccountNotFound
	}
	b.scheduler.retarget(id2, id1)
	b.transfers.retarget(id2, id1)
	b.ledger.fold(dst, src)
	b.merges.retire(id2, id1)
	return nil
}

// GetBalance returns the balance as of timeAt, resolving merged ids.
func (b *Bank) GetBalance(ts int64, id string, timeAt int64) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.advance(ts)
	return b.ledger.BalanceAsOf(b.merges.Resolve(id), timeAt)
}

// parseOrdinal extracts n from identifiers of the form "<prefix><n>".
func parseOrdinal(id, prefix string) (int64, bool) {
	if !strings.HasPrefix(id, prefix) {
		return 0, false
	}
	n, err := strconv.ParseInt(id[len(prefix):], 10, 64)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
