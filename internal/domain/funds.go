package domain

import "math/bits"

// EscrowedFunds represents value withdrawn from a ledger account and held
// in custody. It behaves like a move-only resource: funds come into
// existence through Ledger.Withdraw, leave through Ledger.Deposit, and the
// only arithmetic is Split, so no amount can be duplicated or dropped
// between withdrawal and deposit.
type EscrowedFunds struct {
	amount uint64
}

// NewEscrowedFunds wraps an amount as escrowed funds. Only ledger
// implementations should mint escrow; everything else receives it.
func NewEscrowedFunds(amount uint64) EscrowedFunds {
	return EscrowedFunds{amount: amount}
}

// Amount returns the value currently held.
func (e EscrowedFunds) Amount() uint64 {
	return e.amount
}

// Split removes n from the escrow and returns it as a separate escrow.
// It returns false if the escrow holds less than n; the receiver is
// unchanged in that case.
func (e *EscrowedFunds) Split(n uint64) (EscrowedFunds, bool) {
	if e.amount < n {
		return EscrowedFunds{}, false
	}
	e.amount -= n
	return EscrowedFunds{amount: n}, true
}

// MulDiv computes floor(amount × numerator / denominator) using a 128-bit
// intermediate so the multiplication cannot overflow. The denominator must
// be non-zero and the quotient must fit in 64 bits; callers guarantee both
// by validating fee and royalty fractions (numerator <= denominator) before
// any settlement math runs.
func MulDiv(amount, numerator, denominator uint64) uint64 {
	hi, lo := bits.Mul64(amount, numerator)
	quo, _ := bits.Div64(hi, lo, denominator)
	return quo
}
