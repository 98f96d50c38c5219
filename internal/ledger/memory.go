// Package ledger provides an in-memory implementation of the ledger the
// engine settles against. In production this would be an adapter over the
// real account system; the in-memory form keeps the module runnable and
// testable end to end.
package ledger

import (
	"sync"

	"github.com/efreitasn/auctionhouse/internal/domain"
)

// Memory is a thread-safe in-memory ledger keyed by account ID.
type Memory struct {
	mu       sync.RWMutex
	balances map[string]uint64
}

// NewMemory creates an empty in-memory ledger.
func NewMemory() *Memory {
	return &Memory{
		balances: make(map[string]uint64),
	}
}

// CreateAccount registers an account with an initial balance. It returns
// domain.ErrAccountAlreadyExists if the account is already known.
func (l *Memory) CreateAccount(account string, initialBalance uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, exists := l.balances[account]; exists {
		return domain.ErrAccountAlreadyExists
	}
	l.balances[account] = initialBalance
	return nil
}

// Exists returns true if the account has been created or credited.
func (l *Memory) Exists(account string) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, ok := l.balances[account]
	return ok
}

// Transfer moves amount between accounts atomically.
func (l *Memory) Transfer(from, to string, amount uint64) error {
	if amount == 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	balance, ok := l.balances[from]
	if !ok {
		return domain.ErrAccountNotFound
	}
	if balance < amount {
		return domain.ErrInsufficientFunds
	}
	l.balances[from] = balance - amount
	l.balances[to] += amount
	return nil
}

// Withdraw removes amount from the account and returns it as escrow.
func (l *Memory) Withdraw(from string, amount uint64) (domain.EscrowedFunds, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	balance, ok := l.balances[from]
	if !ok {
		return domain.EscrowedFunds{}, domain.ErrAccountNotFound
	}
	if balance < amount {
		return domain.EscrowedFunds{}, domain.ErrInsufficientFunds
	}
	l.balances[from] = balance - amount
	return domain.NewEscrowedFunds(amount), nil
}

// Deposit credits escrowed funds to the account, creating it if needed.
func (l *Memory) Deposit(to string, funds domain.EscrowedFunds) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.balances[to] += funds.Amount()
}

// BalanceOf returns the account's balance, 0 for unknown accounts.
func (l *Memory) BalanceOf(account string) uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.balances[account]
}

// TotalSupply returns the sum of all balances. Useful for conservation
// checks in tests.
func (l *Memory) TotalSupply() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var total uint64
	for _, b := range l.balances {
		total += b
	}
	return total
}
