package services

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/matagroup/mata_gestion_app/internal/core/domain"
	portsrepo "github.com/matagroup/mata_gestion_app/internal/core/ports/repositories"
	portssvc "github.com/matagroup/mata_gestion_app/internal/core/ports/services"
)

// CashService computes the "cash disponible" dashboard aggregate.
type CashService struct {
	BaseService
	accountRepo portsrepo.AccountRepository
	balanceSvc  portssvc.BalanceSvcFacade
}

func NewCashService(accountRepo portsrepo.AccountRepository, balanceSvc portssvc.BalanceSvcFacade) *CashService {
	return &CashService{accountRepo: accountRepo, balanceSvc: balanceSvc}
}

var _ portssvc.CashSvcFacade = (*CashService)(nil)

// cashTypes are the account types that count as available cash. Partenaire,
// depot, creance and fournisseur balances are commitments, not cash on hand.
var cashTypes = map[domain.AccountType]bool{
	domain.TypeClassique:  true,
	domain.TypeStatut:     true,
	domain.TypeAjustement: true,
}

// isLegacyExcludedName filters accounts created before account types existed,
// when the type was encoded in the account name. Rows migrated since then
// carry a proper type, but old data sets may still hold mislabeled accounts,
// so the name filter is kept alongside the type filter.
func isLegacyExcludedName(accountName string) bool {
	name := strings.ToLower(accountName)
	for _, marker := range []string{"partenaire", "fournisseur", "depot", "creance"} {
		if strings.Contains(name, marker) {
			return true
		}
	}
	return false
}

// ComputeTotalCash sums the balances of active cash accounts, at "now" for a
// nil asOf or at the end of the given day otherwise.
func (s *CashService) ComputeTotalCash(ctx context.Context, asOf *time.Time) (int64, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, true)
	if err != nil {
		return 0, err
	}

	var cutoff *time.Time
	if asOf != nil {
		end := time.Date(asOf.Year(), asOf.Month(), asOf.Day(), 23, 59, 59, 999999999, asOf.Location())
		cutoff = &end
	}

	var total int64
	for _, account := range accounts {
		if !cashTypes[account.AccountType] {
			continue
		}
		if isLegacyExcludedName(account.AccountName) {
			s.GetLogger(ctx).Debug("Excluding legacy-named account from total cash",
				slog.String("account_name", account.AccountName))
			continue
		}
		balance, err := s.balanceSvc.ComputeNetBalanceInTx(ctx, nil, &account, cutoff)
		if err != nil {
			return 0, err
		}
		total += balance
	}
	return total, nil
}
