package domain

// Ledger is the external account system that holds balances and executes
// transfers. Every call is atomic: a failed call moves nothing. The engine
// never touches balances directly; value it holds in custody exists only
// as EscrowedFunds between Withdraw and Deposit.
type Ledger interface {
	// Transfer moves amount from one account to another. Returns
	// ErrInsufficientFunds if the source balance is too low, or
	// ErrAccountNotFound if either account is unknown.
	Transfer(from, to string, amount uint64) error

	// Withdraw removes amount from the account and returns it as escrow.
	// Returns ErrInsufficientFunds or ErrAccountNotFound.
	Withdraw(from string, amount uint64) (EscrowedFunds, error)

	// Deposit credits escrowed funds to the account. Unknown accounts are
	// created implicitly so refunds and payouts can never be lost.
	Deposit(to string, funds EscrowedFunds)

	// BalanceOf returns the account's balance, 0 for unknown accounts.
	BalanceOf(account string) uint64
}
