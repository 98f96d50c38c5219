package service

import (
	"github.com/efreitasn/auctionhouse/internal/domain"
	"github.com/efreitasn/auctionhouse/internal/ledger"
	"github.com/efreitasn/auctionhouse/internal/registry"
)

// CreateAccountRequest represents the input for account creation.
type CreateAccountRequest struct {
	AccountID      string
	InitialBalance uint64
}

// RegisterAssetRequest represents the input for asset registration.
type RegisterAssetRequest struct {
	AssetID string
	Owner   string
	Royalty *domain.RoyaltyInfo
}

// BalanceView is the response for the account balance query.
type BalanceView struct {
	AccountID string
	Balance   uint64
}

// AccountService seeds and queries the in-memory ledger and registry
// adapters. In a deployment against the real external systems this service
// disappears; accounts and assets originate there.
type AccountService struct {
	ledger   *ledger.Memory
	registry *registry.Memory
}

// NewAccountService creates a new AccountService.
func NewAccountService(l *ledger.Memory, r *registry.Memory) *AccountService {
	return &AccountService{ledger: l, registry: r}
}

// CreateAccount validates the request and creates a ledger account.
func (s *AccountService) CreateAccount(req CreateAccountRequest) error {
	if !accountIDRegex.MatchString(req.AccountID) {
		return &domain.ValidationError{
			Message: "account_id must match ^[a-zA-Z0-9_:-]{1,64}$",
		}
	}
	return s.ledger.CreateAccount(req.AccountID, req.InitialBalance)
}

// GetBalance returns the account's current balance.
func (s *AccountService) GetBalance(accountID string) (*BalanceView, error) {
	if !s.ledger.Exists(accountID) {
		return nil, domain.ErrAccountNotFound
	}
	return &BalanceView{
		AccountID: accountID,
		Balance:   s.ledger.BalanceOf(accountID),
	}, nil
}

// RegisterAsset validates the request and registers an asset with its
// initial owner and optional royalty metadata.
func (s *AccountService) RegisterAsset(req RegisterAssetRequest) error {
	if req.AssetID == "" {
		return &domain.ValidationError{Message: "asset_id is required"}
	}
	if !accountIDRegex.MatchString(req.Owner) {
		return &domain.ValidationError{
			Message: "owner must match ^[a-zA-Z0-9_:-]{1,64}$",
		}
	}
	if req.Royalty != nil {
		if !accountIDRegex.MatchString(req.Royalty.Payee) {
			return &domain.ValidationError{
				Message: "royalty.payee must match ^[a-zA-Z0-9_:-]{1,64}$",
			}
		}
		if req.Royalty.Denominator == 0 || req.Royalty.Numerator > req.Royalty.Denominator {
			return &domain.ValidationError{
				Message: "royalty must be a fraction between 0 and 1 with a non-zero denominator",
			}
		}
	}
	return s.registry.Register(req.AssetID, req.Owner, req.Royalty)
}

// GetAssetOwner returns the asset's current owner.
func (s *AccountService) GetAssetOwner(assetID string) (string, error) {
	return s.registry.OwnerOf(assetID)
}
