package balance

import "errors"

var (
	// ErrInvalidAmount is returned for non-positive transfer amounts
	ErrInvalidAmount = errors.New("transfer amount must be positive")

	// ErrInsufficientFunds is returned when a transfer exceeds the source
	// account's derived balance. This is the one place validation blocks an
	// operation instead of coercing.
	ErrInsufficientFunds = errors.New("insufficient funds in source account")

	// ErrAccountNotFound is returned when releasing an account with no entry
	ErrAccountNotFound = errors.New("account not found")

	// ErrBalanceDrift is returned by Reconcile when the materialized snapshot
	// diverges from the derived balances.
	ErrBalanceDrift = errors.New("materialized balances diverge from derived balances")
)
