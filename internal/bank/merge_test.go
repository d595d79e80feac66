package bank

import (
	"errors"
	"testing"
)

func TestMergeValidation(t *testing.T) {
	b := New()
	mustCreate(t, b, 1, "a")

	if err := b.MergeAccounts(2, "a", "a"); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("self merge: want ErrInvalidArgument, got %v", err)
	}
	if err := b.MergeAccounts(3, "a", "ghost"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("unknown retired side: want ErrAccountNotFound, got %v", err)
	}
	if err := b.MergeAccounts(4, "ghost", "a"); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("unknown surviving side: want ErrAccountNotFound, got %v", err)
	}
}

// TestMergeConservation checks that merging neither creates nor destroys
// money or aggregate totals.
func TestMergeConservation(t *testing.T) {
	b := New()
	mustCreate(t, b, 1, "a")
	mustCreate(t, b, 2, "b")
	mustDeposit(t, b, 3, "a", 100)
	mustDeposit(t, b, 4, "b", 50)
	if _, err := b.Pay(5, "b", 50); err != nil { // b: balance 0, value 100, withdrawn 50
		t.Fatalf("Pay: %v", err)
	}

	if err := b.MergeAccounts(6, "a", "b"); err != nil {
		t.Fatalf("MergeAccounts: %v", err)
	}

	if got, _ := b.GetBalance(7, "a", 7); got != 100 {
		t.Fatalf("merged balance = %d, want 100", got)
	}
	if got := b.TopActivity(8, 1); got != "a(200)" {
		t.Fatalf("TopActivity = %q, want a(200)", got)
	}
	if got := b.TopSpenders(9, 1); got != "a(50)" {
		t.Fatalf("TopSpenders = %q, want a(50)", got)
	}

	// The retired account is gone from the active set...
	if got := b.TopActivity(10, 5); got != "a(200)" {
		t.Fatalf("retired account still ranked: %q", got)
	}
	if err := b.CreateAccount(11, "b"); err != nil {
		t.Fatalf("retired id should be reusable for a fresh account: %v", err)
	}
	checkInvariants(t, b)
}

func TestMergeInheritsHistory(t *testing.T) {
	b := New()
	mustCreate(t, b, 1, "a")
	mustCreate(t, b, 2, "b")
	mustDeposit(t, b, 3, "a", 100)
	mustDeposit(t, b, 4, "b", 50)

	if err := b.MergeAccounts(5, "a", "b"); err != nil {
		t.Fatalf("MergeAccounts: %v", err)
	}

	// The retired id resolves to the survivor, whose history now interleaves
	// both logs chronologically.
	got, err := b.GetBalance(6, "b", 4)
	if err != nil {
		t.Fatalf("GetBalance via retired id: %v", err)
	}
	if got != 150 {
		t.Fatalf("balance as of 4 = %d, want 150", got)
	}
	if got, _ := b.GetBalance(7, "b", 3); got != 100 {
		t.Fatalf("balance as of 3 = %d, want 100", got)
	}
}

// TestMergeRedirectsCashback: pending refunds of the retired account are paid
// to the survivor, and status queries under the retired id keep working.
func TestMergeRedirectsCashback(t *testing.T) {
	b := New()
	mustCreate(t, b, 1, "a")
	mustCreate(t, b, 2, "b")
	mustDeposit(t, b, 3, "b", 100)
	if _, err := b.Pay(4, "b", 50); err != nil { // cashback 1 due at 86400004
		t.Fatalf("Pay: %v", err)
	}

	if err := b.MergeAccounts(5, "a", "b"); err != nil {
		t.Fatalf("MergeAccounts: %v", err)
	}

	status, err := b.GetPaymentStatus(6, "b", "payment1")
	if err != nil || status != StatusInProgress {
		t.Fatalf("status via retired id = (%q, %v), want (%q, nil)", status, err, StatusInProgress)
	}

	// The refund lands on the survivor.
	if got, _ := b.GetBalance(86400010, "a", 86400010); got != 51 {
		t.Fatalf("survivor balance = %d, want 51", got)
	}
	status, err = b.GetPaymentStatus(86400011, "b", "payment1")
	if err != nil || status != StatusCashbackReceived {
		t.Fatalf("status = (%q, %v), want (%q, nil)", status, err, StatusCashbackReceived)
	}
}

func TestMergeChainResolution(t *testing.T) {
	b := New()
	mustCreate(t, b, 1, "a")
	mustCreate(t, b, 2, "b")
	mustCreate(t, b, 3, "c")
	mustDeposit(t, b, 4, "b", 100)
	if _, err := b.Pay(5, "b", 50); err != nil {
		t.Fatalf("Pay: %v", err)
	}

	// b retires into a, then a retires into c: b must resolve through the
	// chain to c.
	if err := b.MergeAccounts(6, "a", "b"); err != nil {
		t.Fatalf("merge a<-b: %v", err)
	}
	if err := b.MergeAccounts(7, "c", "a"); err != nil {
		t.Fatalf("merge c<-a: %v", err)
	}

	status, err := b.GetPaymentStatus(8, "b", "payment1")
	if err != nil || status != StatusInProgress {
		t.Fatalf("status through merge chain = (%q, %v), want (%q, nil)", status, err, StatusInProgress)
	}
	if got, _ := b.GetBalance(9, "b", 9); got != 50 {
		t.Fatalf("balance through merge chain = %d, want 50", got)
	}
}

// TestMergeKeepsPendingTransferEscrow: a pending transfer whose source was
// merged away must still release its escrow at the survivor when it expires.
func TestMergeKeepsPendingTransferEscrow(t *testing.T) {
	b := New()
	mustCreate(t, b, 1, "a")
	mustCreate(t, b, 2, "b")
	mustCreate(t, b, 3, "c")
	mustDeposit(t, b, 4, "b", 100)
	if _, err := b.Transfer(5, "b", "c", 60); err != nil {
		t.Fatalf("Transfer: %v", err)
	}

	if err := b.MergeAccounts(6, "a", "b"); err != nil {
		t.Fatalf("MergeAccounts: %v", err)
	}

	// The survivor carries the escrow: only 40 is available.
	if _, err := b.Pay(7, "a", 50); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("want ErrInsufficientFunds while escrow is held, got %v", err)
	}

	// After expiry the survivor can spend the full 100 again.
	if _, err := b.Pay(86400006, "a", 100); err != nil {
		t.Fatalf("Pay after expiry: %v", err)
	}
	checkInvariants(t, b)
}
