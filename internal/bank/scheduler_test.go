package bank

import (
	"errors"
	"testing"
)

func TestSchedulePaymentUnknownAccount(t *testing.T) {
	b := New()
	if _, err := b.SchedulePayment(1, "ghost", 10, 5); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("want ErrAccountNotFound, got %v", err)
	}
}

// TestSimultaneousDuePaymentsCreationOrder pins the deterministic sweep: two
// payments due at the same instant apply in creation order, and when funds
// run out the later one is skipped silently.
func TestSimultaneousDuePaymentsCreationOrder(t *testing.T) {
	b := New()
	mustCreate(t, b, 1, "a")
	mustDeposit(t, b, 2, "a", 100)

	// Both due at ts 13; payment1 was created first.
	if _, err := b.SchedulePayment(3, "a", 80, 10); err != nil {
		t.Fatalf("SchedulePayment: %v", err)
	}
	if _, err := b.SchedulePayment(4, "a", 80, 9); err != nil {
		t.Fatalf("SchedulePayment: %v", err)
	}

	mustDeposit(t, b, 14, "a", 1) // triggers the sweep

	// payment1 applied (100-80=20), payment2 skipped for lack of funds.
	if got, _ := b.GetBalance(15, "a", 14); got != 21 {
		t.Fatalf("balance = %d, want 21", got)
	}
	// Both left the pending set; completed scheduled payments have no
	// reportable status.
	for _, id := range []string{"payment1", "payment2"} {
		if _, err := b.GetPaymentStatus(16, "a", id); !errors.Is(err, ErrPaymentNotFound) {
			t.Fatalf("%s: want ErrPaymentNotFound, got %v", id, err)
		}
	}
	checkInvariants(t, b)
}

func TestDuePaymentsOrderedByDueTimestamp(t *testing.T) {
	b := New()
	mustCreate(t, b, 1, "a")
	mustDeposit(t, b, 2, "a", 100)

	// payment1 due at 20, payment2 due at 10: the later-created payment is
	// due earlier and must win the funds.
	if _, err := b.SchedulePayment(3, "a", 70, 17); err != nil {
		t.Fatalf("SchedulePayment: %v", err)
	}
	if _, err := b.SchedulePayment(4, "a", 70, 6); err != nil {
		t.Fatalf("SchedulePayment: %v", err)
	}

	if got, _ := b.GetBalance(25, "a", 25); got != 30 {
		t.Fatalf("balance = %d, want 30 (only the earlier-due payment applies)", got)
	}
}

func TestCancelPayment(t *testing.T) {
	b := New()
	mustCreate(t, b, 1, "a")
	mustCreate(t, b, 2, "b")
	mustDeposit(t, b, 3, "a", 100)

	if _, err := b.SchedulePayment(4, "a", 50, 1000); err != nil {
		t.Fatalf("SchedulePayment: %v", err)
	}

	if err := b.CancelPayment(5, "b", "payment1"); !errors.Is(err, ErrOwnershipMismatch) {
		t.Fatalf("cancel by non-owner: want ErrOwnershipMismatch, got %v", err)
	}
	if err := b.CancelPayment(6, "a", "payment9"); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("cancel unknown: want ErrPaymentNotFound, got %v", err)
	}
	if err := b.CancelPayment(7, "a", "payment1"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := b.CancelPayment(8, "a", "payment1"); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("double cancel: want ErrPaymentNotFound, got %v", err)
	}

	// The canceled payment never fires.
	if got, _ := b.GetBalance(2000, "a", 2000); got != 100 {
		t.Fatalf("balance = %d, want 100", got)
	}
}

func TestCancelAppliesDuePaymentsFirst(t *testing.T) {
	b := New()
	mustCreate(t, b, 1, "a")
	mustDeposit(t, b, 2, "a", 100)

	if _, err := b.SchedulePayment(3, "a", 40, 7); err != nil { // due at 10
		t.Fatalf("SchedulePayment: %v", err)
	}

	// At ts 10 the payment is already applied, so the cancel is too late.
	if err := b.CancelPayment(10, "a", "payment1"); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("cancel at due ts: want ErrPaymentNotFound, got %v", err)
	}
	if got, _ := b.GetBalance(11, "a", 10); got != 60 {
		t.Fatalf("balance = %d, want 60", got)
	}
}

func TestCancelCashbackRejected(t *testing.T) {
	b := New()
	mustCreate(t, b, 1, "a")
	mustDeposit(t, b, 2, "a", 100)
	if _, err := b.Pay(3, "a", 50); err != nil {
		t.Fatalf("Pay: %v", err)
	}

	// payment1 is the pending cashback refund; it is not cancelable.
	if err := b.CancelPayment(4, "a", "payment1"); !errors.Is(err, ErrPaymentNotFound) {
		t.Fatalf("cancel cashback: want ErrPaymentNotFound, got %v", err)
	}
	// The refund still matures.
	if got, _ := b.GetBalance(86400010, "a", 86400010); got != 51 {
		t.Fatalf("balance = %d, want 51", got)
	}
}
