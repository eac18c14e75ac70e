package services

import (
	portsrepo "github.com/matagroup/mata_gestion_app/internal/core/ports/repositories"
	portssvc "github.com/matagroup/mata_gestion_app/internal/core/ports/services"
	"github.com/matagroup/mata_gestion_app/pkg/config"
)

// NewServiceContainer wires the services with their dependencies. The balance
// calculator comes first; the synchronizer and every mutation service build
// on it.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	balanceSvc := NewBalanceService(repos.AccountRepo, repos.LedgerRepo)
	syncSvc := NewSyncService(repos.TxManager, repos.AccountRepo, repos.LedgerRepo, balanceSvc)

	container.Balance = balanceSvc
	container.Sync = syncSvc
	container.Audit = NewAuditService(repos.AccountRepo, repos.LedgerRepo, balanceSvc)
	container.Cash = NewCashService(repos.AccountRepo, balanceSvc)
	container.PL = NewPLService(repos.ReportingRepo, repos.CashBictorysRepo, repos.StockVivantRepo, repos.SettingsRepo)

	container.Account = NewAccountService(repos.AccountRepo)
	container.Credit = NewCreditService(repos.TxManager, repos.AccountRepo, repos.CreditRepo, syncSvc)
	container.Expense = NewExpenseService(repos.TxManager, repos.AccountRepo, repos.ExpenseRepo, repos.SettingsRepo, repos.UserRepo, balanceSvc, syncSvc)
	container.Transfer = NewTransferService(repos.TxManager, repos.AccountRepo, repos.TransferRepo, syncSvc)
	container.Partner = NewPartnerService(repos.TxManager, repos.AccountRepo, repos.PartnerRepo, syncSvc)
	container.Creance = NewCreanceService(repos.TxManager, repos.AccountRepo, repos.CreanceRepo, syncSvc)
	container.StockVivant = NewStockVivantService(repos.StockVivantRepo)
	container.StockSoir = NewStockSoirService(repos.StockSoirRepo)
	container.CashBictorys = NewCashBictorysService(repos.CashBictorysRepo)
	container.Settings = NewSettingsService(repos.SettingsRepo)

	container.User = NewUserService(repos.UserRepo)
	container.Auth = NewAuthService(cfg, container.User)

	return container
}
