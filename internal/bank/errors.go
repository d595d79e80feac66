package bank

import "errors"

var (
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountExists     = errors.New("account already exists")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrTransferNotFound  = errors.New("transfer not found")
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrOwnershipMismatch = errors.New("ownership mismatch")
)
