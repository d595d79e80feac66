package bank

import (
	"fmt"
	"sort"
)

// PaymentKind distinguishes user-scheduled payments from the deferred
// cashback refunds minted by withdrawals. Both draw from one ordinal space.
type PaymentKind string

const (
	PaymentScheduled PaymentKind = "SCHEDULED"
	PaymentCashback  PaymentKind = "CASHBACK"
)

// Payment status strings as seen on the wire.
const (
	StatusInProgress       = "IN_PROGRESS"
	StatusCashbackReceived = "CASHBACK_RECEIVED"
)

type Payment struct {
	Ordinal int64
	Owner   string
	DueTS   int64
	Amount  int64
	Kind    PaymentKind
}

// PaymentScheduler owns the not-yet-applied deferred effects and the log of
// completed ones. Application order is deterministic: (due timestamp,
// creation ordinal) ascending.
type PaymentScheduler struct {
	ledger      *AccountLedger
	nextOrdinal int64
	pending     map[int64]*Payment
	completed   map[int64]*Payment
}

func NewPaymentScheduler(ledger *AccountLedger) *PaymentScheduler {
	return &PaymentScheduler{
		ledger:    ledger,
		pending:   make(map[int64]*Payment),
		completed: make(map[int64]*Payment),
	}
}

// Schedule files a payment due at ts+delay.
func (s *PaymentScheduler) Schedule(id string, ts, amount, delay int64) (string, error) {
	if _, ok := s.ledger.account(id); !ok {
		return "", ErrAccountNotFound
	}
	return s.file(id, ts+delay, amount, PaymentScheduled), nil
}

// ScheduleCashback files the deferred refund minted by a withdrawal. Callers
// have already validated the owner.
func (s *PaymentScheduler) ScheduleCashback(id string, dueTS, amount int64) string {
	return s.file(id, dueTS, amount, PaymentCashback)
}

func (s *PaymentScheduler) file(id string, dueTS, amount int64, kind PaymentKind) string {
	s.nextOrdinal++
	s.pending[s.nextOrdinal] = &Payment{
		Ordinal: s.nextOrdinal,
		Owner:   id,
		DueTS:   dueTS,
		Amount:  amount,
		Kind:    kind,
	}
	return fmt.Sprintf("payment%d", s.nextOrdinal)
}

// ApplyDue applies every pending effect due at or before ts. Cashbacks credit
// the owner unconditionally; scheduled payments withdraw, or are silently
// skipped when funds are short. Every swept entry moves to the completed set
// with the owner it carried at that moment.
func (s *PaymentScheduler) ApplyDue(ts int64) {
	due := make([]*Payment, 0, len(s.pending))
	for _, p := range s.pending {
		if p.DueTS <= ts {
			due = append(due, p)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].DueTS != due[j].DueTS {
			return due[i].DueTS < due[j].DueTS
		}
		return due[i].Ordinal < due[j].Ordinal
	})
	for _, p := range due {
		a, ok := s.ledger.account(p.Owner)
		if !ok {
			continue
		}
		switch p.Kind {
		case PaymentCashback:
			a.Balance += p.Amount
			a.TotalValue += p.Amount
			a.appendTransaction(Transaction{TS: ts, Kind: KindCashback, Amount: p.Amount})
		case PaymentScheduled:
			if a.hasAvailable(p.Amount) {
				a.Balance -= p.Amount
				a.TotalValue += p.Amount
				a.TotalWithdrawn += p.Amount
				a.appendTransaction(Transaction{TS: ts, Kind: KindScheduledPayment, Amount: -p.Amount})
			}
		}
		delete(s.pending, p.Ordinal)
		s.completed[p.Ordinal] = p
	}
}

// Cancel removes a still-pending scheduled payment owned by id. Cashback
// entries are not cancelable and report as not found.
func (s *PaymentScheduler) Cancel(id string, ordinal int64) error {
	p, ok := s.pending[ordinal]
	if !ok || p.Kind == PaymentCashback {
		return ErrPaymentNotFound
	}
	if p.Owner != id {
		return ErrOwnershipMismatch
	}
	delete(s.pending, ordinal)
	return nil
}

// Status reports the lifecycle of a payment as seen by the (merge-resolved)
// owner id. A completed non-cashback payment has no reportable status.
func (s *PaymentScheduler) Status(ownerID string, ordinal int64) (string, error) {
	if p, ok := s.completed[ordinal]; ok {
		if p.Owner != ownerID {
			return "", ErrOwnershipMismatch
		}
		if p.Kind == PaymentCashback {
			return StatusCashbackReceived, nil
		}
		return "", ErrPaymentNotFound
	}
	if p, ok := s.pending[ordinal]; ok {
		if p.Owner != ownerID {
			return "", ErrOwnershipMismatch
		}
		return StatusInProgress, nil
	}
	return "", ErrPaymentNotFound
}

// retarget moves every payment owned by from, pending or completed, to to.
func (s *PaymentScheduler) retarget(from, to string) {
	for _, p := range s.pending {
		if p.Owner == from {
			p.Owner = to
		}
	}
	for _, p := range s.completed {
		if p.Owner == from {
			p.Owner = to
		}
	}
}
