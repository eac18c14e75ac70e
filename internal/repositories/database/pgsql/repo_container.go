package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/matagroup/mata_gestion_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		TxManager:        newPgxTxManager(dbPool),
		AccountRepo:      newPgxAccountRepository(dbPool),
		LedgerRepo:       newPgxLedgerRepository(dbPool),
		CreditRepo:       newPgxCreditRepository(dbPool),
		ExpenseRepo:      newPgxExpenseRepository(dbPool),
		TransferRepo:     newPgxTransferRepository(dbPool),
		PartnerRepo:      newPgxPartnerRepository(dbPool),
		CreanceRepo:      newPgxCreanceRepository(dbPool),
		StockVivantRepo:  newPgxStockVivantRepository(dbPool),
		StockSoirRepo:    newPgxStockSoirRepository(dbPool),
		CashBictorysRepo: newPgxCashBictorysRepository(dbPool),
		ReportingRepo:    newPgxReportingRepository(dbPool),
		SettingsRepo:     newPgxSettingsRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
	}
}
