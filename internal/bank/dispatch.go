package bank

import (
	"fmt"
	"strconv"
)

// Op enumerates every operation the engine accepts. Keeping the set closed
// lets the dispatcher switch exhaustively instead of dispatching on strings.
type Op int

const (
	OpCreateAccount Op = iota
	OpDeposit
	OpPay
	OpTopActivity
	OpTopSpenders
	OpTransfer
	OpAcceptTransfer
	OpGetPaymentStatus
	OpSchedulePayment
	OpCancelPayment
	OpMergeAccounts
	OpGetBalance
)

var opNames = map[string]Op{
	"CREATE_ACCOUNT":     OpCreateAccount,
	"DEPOSIT":            OpDeposit,
	"PAY":                OpPay,
	"TOP_ACTIVITY":       OpTopActivity,
	"TOP_SPENDERS":       OpTopSpenders,
	"TRANSFER":           OpTransfer,
	"ACCEPT_TRANSFER":    OpAcceptTransfer,
	"GET_PAYMENT_STATUS": OpGetPaymentStatus,
	"SCHEDULE_PAYMENT":   OpSchedulePayment,
	"CANCEL_PAYMENT":     OpCancelPayment,
	"MERGE_ACCOUNTS":     OpMergeAccounts,
	"GET_BALANCE":        OpGetBalance,
}

// ParseOp maps a textual operation name to its Op.
func ParseOp(name string) (Op, bool) {
	op, ok := opNames[name]
	return op, ok
}

// Request is one operation from the input stream. Which fields are read
// depends on Op.
type Request struct {
	Op        Op
	TS        int64
	AccountID string
	TargetID  string // TRANSFER destination / MERGE_ACCOUNTS second id
	Amount    int64
	Delay     int64
	RefID     string // payment or transfer identifier
	N         int    // ranking size
	TimeAt    int64  // GET_BALANCE as-of timestamp
}

// ParseRequest parses one whitespace-split query, e.g.
// ["DEPOSIT", "3", "acc1", "100"].
func ParseRequest(fields []string) (Request, error) {
	if len(fields) < 2 {
		return Request{}, fmt.Errorf("query needs an operation and a timestamp: %v", fields)
	}
	op, ok := ParseOp(fields[0])
	if !ok {
		return Request{}, fmt.Errorf("unknown operation %q", fields[0])
	}
	ts, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return Request{}, fmt.Errorf("bad timestamp %q: %w", fields[1], err)
	}
	req := Request{Op: op, TS: ts}
	args := fields[2:]

	need := func(n int) error {
		if len(args) != n {
			return fmt.Errorf("%s takes %d arguments, got %d", fields[0], n, len(args))
		}
		return nil
	}
	parseInt := func(s string) (int64, error) {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%s: bad number %q: %w", fields[0], s, err)
		}
		return n, nil
	}

	switch op {
	case OpCreateAccount:
		if err := need(1); err != nil {
			return Request{}, err
		}
		req.AccountID = args[0]
	case OpDeposit, OpPay:
		if err := need(2); err != nil {
			return Request{}, err
		}
		req.AccountID = args[0]
		if req.Amount, err = parseInt(args[1]); err != nil {
			return Request{}, err
		}
	case OpTopActivity, OpTopSpenders:
		if err := need(1); err != nil {
			return Request{}, err
		}
		n, err := parseInt(args[0])
		if err != nil {
			return Request{}, err
		}
		req.N = int(n)
	case OpTransfer:
		if err := need(3); err != nil {
			return Request{}, err
		}
		req.AccountID, req.TargetID = args[0], args[1]
		if req.Amount, err = parseInt(args[2]); err != nil {
			return Request{}, err
		}
	case OpAcceptTransfer, OpGetPaymentStatus, OpCancelPayment:
		if err := need(2); err != nil {
			return Request{}, err
		}
		req.AccountID, req.RefID = args[0], args[1]
	case OpSchedulePayment:
		if err := need(3); err != nil {
			return Request{}, err
		}
		req.AccountID = args[0]
		if req.Amount, err = parseInt(args[1]); err != nil {
			return Request{}, err
		}
		if req.Delay, err = parseInt(args[2]); err != nil {
			return Request{}, err
		}
	case OpMergeAccounts:
		if err := need(2); err != nil {
			return Request{}, err
		}
		req.AccountID, req.TargetID = args[0], args[1]
	case OpGetBalance:
		if err := need(2); err != nil {
			return Request{}, err
		}
		req.AccountID = args[0]
		if req.TimeAt, err = parseInt(args[1]); err != nil {
			return Request{}, err
		}
	}
	return req, nil
}

// Dispatch routes one request to the engine and encodes the result in the
// textual protocol: booleans as "true"/"false", every not-found or invalid
// outcome as the empty string.
func Dispatch(b *Bank, req Request) string {
	switch req.Op {
	case OpCreateAccount:
		return formatBool(b.CreateAccount(req.TS, req.AccountID) == nil)
	case OpDeposit:
		balance, err := b.Deposit(req.TS, req.AccountID, req.Amount)
		if err != nil {
			return ""
		}
		return strconv.FormatInt(balance, 10)
	case OpPay:
		id, err := b.Pay(req.TS, req.AccountID, req.Amount)
		if err != nil {
			return ""
		}
		return id
	case OpTopActivity:
		return b.TopActivity(req.TS, req.N)
	case OpTopSpenders:
		return b.TopSpenders(req.TS, req.N)
	case OpTransfer:
		id, err := b.Transfer(req.TS, req.AccountID, req.TargetID, req.Amount)
		if err != nil {
			return ""
		}
		return id
	case OpAcceptTransfer:
		return formatBool(b.AcceptTransfer(req.TS, req.AccountID, req.RefID) == nil)
	case OpGetPaymentStatus:
		status, err := b.GetPaymentStatus(req.TS, req.AccountID, req.RefID)
		if err != nil {
			return ""
		}
		return status
	case OpSchedulePayment:
		id, err := b.SchedulePayment(req.TS, req.AccountID, req.Amount, req.Delay)
		if err != nil {
			return ""
		}
		return id
	case OpCancelPayment:
		return formatBool(b.CancelPayment(req.TS, req.AccountID, req.RefID) == nil)
	case OpMergeAccounts:
		return formatBool(b.MergeAccounts(req.TS, req.AccountID, req.TargetID) == nil)
	case OpGetBalance:
		balance, err := b.GetBalance(req.TS, req.AccountID, req.TimeAt)
		if err != nil {
			return ""
		}
		return strconv.FormatInt(balance, 10)
	}
	return ""
}

func formatBool(ok bool) string {
	return strconv.FormatBool(ok)
}
