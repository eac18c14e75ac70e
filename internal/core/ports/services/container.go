package services

// ServiceContainer bundles every service facade for injection into the HTTP
// layer.
type ServiceContainer struct {
	Account      AccountSvcFacade
	Balance      BalanceSvcFacade
	Sync         SyncSvcFacade
	Audit        AuditSvcFacade
	Cash         CashSvcFacade
	PL           PLSvcFacade
	Credit       CreditSvcFacade
	Expense      ExpenseSvcFacade
	Transfer     TransferSvcFacade
	Partner      PartnerSvcFacade
	Creance      CreanceSvcFacade
	StockVivant  StockVivantSvcFacade
	StockSoir    StockSoirSvcFacade
	CashBictorys CashBictorysSvcFacade
	Settings     SettingsSvcFacade
	User         UserSvcFacade
	Auth         AuthSvcFacade
}
