package bank

import "fmt"

type Transfer struct {
	Ordinal int64
	TS      int64
	Source  string
	Target  string
	Amount  int64
}

// TransferCoordinator owns the pending-transfer escrow state machine. A
// pending transfer holds funds at its source without logging a transaction;
// acceptance and expiration are mutually exclusive terminal transitions.
type TransferCoordinator struct {
	ledger      *AccountLedger
	nextOrdinal int64
	pending     map[int64]*Transfer
}

func NewTransferCoordinator(ledger *AccountLedger) *TransferCoordinator {
	return &TransferCoordinator{
		ledger:  ledger,
		pending: make(map[int64]*Transfer),
	}
}

// Initiate escrows amount at the source and records a pending transfer.
func (c *TransferCoordinator) Initiate(ts int64, src, dst string, amount int64) (string, error) {
	if src == dst {
		return "", ErrInvalidArgument
	}
	source, ok := c.ledger.account(src)
	if !ok {
		return "", ErrAccountNotFound
	}
	if _, ok := c.ledger.account(dst); !ok {
		return "", ErrAccountNotFound
	}
	if !source.hasAvailable(amount) {
		return "", ErrInsufficientFunds
	}
	c.nextOrdinal++
	c.pending[c.nextOrdinal] = &Transfer{
		Ordinal: c.nextOrdinal,
		TS:      ts,
		Source:  src,
		Target:  dst,
		Amount:  amount,
	}
	source.Held += amount
	return fmt.Sprintf("transfer%d", c.nextOrdinal), nil
}

// Accept resolves a pending transfer in favor of its target: the escrow is
// released, funds move, and both parties get a transaction logged at ts.
func (c *TransferCoordinator) Accept(ts int64, accountID string, ordinal int64) error {
	tr, ok := c.pending[ordinal]
	if !ok {
		return ErrTransferNotFound
	}
	if tr.Target != accountID {
		return ErrOwnershipMismatch
	}
	source, ok := c.ledger.account(tr.Source)
	if !ok {
		return ErrAccountNotFound
	}
	target, ok := c.ledger.account(tr.Target)
	if !ok {
		return ErrAccountNotFound
	}
	source.Held -= tr.Amount
	source.Balance -= tr.Amount
	source.TotalValue += tr.Amount
	source.TotalWithdrawn += tr.Amount
	source.appendTransaction(Transaction{TS: ts, Kind: KindTransferOut, Amount: -tr.Amount})
	target.Balance += tr.Amount
	target.TotalValue += tr.Amount
	target.appendTransaction(Transaction{TS: ts, Kind: KindTransferIn, Amount: tr.Amount})
	delete(c.pending, ordinal)
	return nil
}

// Expire releases the escrow of every pending transfer older than the 24h
// window. The balance is untouched; the funds were never debited.
func (c *TransferCoordinator) Expire(ts int64) {
	for ordinal, tr := range c.pending {
		if ts-tr.TS > transferExpiryWindow {
			if source, ok := c.ledger.account(tr.Source); ok {
				source.Held -= tr.Amount
			}
			delete(c.pending, ordinal)
		}
	}
}

// retarget repoints pending transfers at a surviving account id after a merge
// so expiry releases escrow where the held funds now live.
func (c *TransferCoordinator) retarget(from, to string) {
	for _, tr := range c.pending {
		if tr.Source == from {
			tr.Source = to
		}
		if tr.Target == from {
			tr.Target = to
		}
	}
}
