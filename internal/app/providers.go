package app

import (
	"database/sql"

	"github.com/google/wire"
	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"github.com/tair/supply-manager/config"
	"github.com/tair/supply-manager/internal/health"
	invhttp "github.com/tair/supply-manager/internal/inventory/delivery/http"
	invdomain "github.com/tair/supply-manager/internal/inventory/domain"
	"github.com/tair/supply-manager/internal/inventory/listener"
	invrepo "github.com/tair/supply-manager/internal/inventory/repository"
	invcommand "github.com/tair/supply-manager/internal/inventory/usecase/command"
	invquery "github.com/tair/supply-manager/internal/inventory/usecase/query"
	rechttp "github.com/tair/supply-manager/internal/reconciliation/delivery/http"
	recdomain "github.com/tair/supply-manager/internal/reconciliation/domain"
	recrepo "github.com/tair/supply-manager/internal/reconciliation/repository"
	reccommand "github.com/tair/supply-manager/internal/reconciliation/usecase/command"
	recquery "github.com/tair/supply-manager/internal/reconciliation/usecase/query"
	rephttp "github.com/tair/supply-manager/internal/report/delivery/http"
	repdomain "github.com/tair/supply-manager/internal/report/domain"
	reprepo "github.com/tair/supply-manager/internal/report/repository"
	repcommand "github.com/tair/supply-manager/internal/report/usecase/command"
	repquery "github.com/tair/supply-manager/internal/report/usecase/query"
	reqhttp "github.com/tair/supply-manager/internal/request/delivery/http"
	reqdomain "github.com/tair/supply-manager/internal/request/domain"
	reqrepo "github.com/tair/supply-manager/internal/request/repository"
	reqcommand "github.com/tair/supply-manager/internal/request/usecase/command"
	reqquery "github.com/tair/supply-manager/internal/request/usecase/query"
	userhttp "github.com/tair/supply-manager/internal/user/delivery/http"
	userdomain "github.com/tair/supply-manager/internal/user/domain"
	userrepo "github.com/tair/supply-manager/internal/user/repository"
	usercommand "github.com/tair/supply-manager/internal/user/usecase/command"
	userquery "github.com/tair/supply-manager/internal/user/usecase/query"
	"github.com/tair/supply-manager/pkg/cache"
	"github.com/tair/supply-manager/pkg/ratelimit"
)

// ProvideSupplyRepository provides the traced supply repository
func ProvideSupplyRepository(db *gorm.DB) invdomain.SupplyRepository {
	return invrepo.NewTracingSupplyRepository(invrepo.NewGormSupplyRepository(db))
}

// ProvideSummaryReader provides the sqlx dashboard reader
func ProvideSummaryReader(db *sqlx.DB) invdomain.SummaryReader {
	return invrepo.NewSqlxSummaryReader(db)
}

// ProvideSummaryHandler provides the cached summary query
func ProvideSummaryHandler(reader invdomain.SummaryReader, c *cache.Client, cfg *config.Config) *invquery.GetSummaryHandler {
	return invquery.NewGetSummaryHandler(reader, c, cfg.Redis.SummaryTTL)
}

// ProvideReportRepository provides the report repository
func ProvideReportRepository(db *gorm.DB) repdomain.ReportRepository {
	return reprepo.NewGormReportRepository(db)
}

// ProvideReconciliationRepository provides the reconciliation repository
func ProvideReconciliationRepository(db *gorm.DB) recdomain.ReconciliationRepository {
	return recrepo.NewGormReconciliationRepository(db)
}

// ProvideWorksheetReader provides the sqlx worksheet reader
func ProvideWorksheetReader(db *sqlx.DB) recdomain.WorksheetReader {
	return recrepo.NewSqlxWorksheetReader(db)
}

// ProvideRequestRepository provides the traced request repository
func ProvideRequestRepository(db *gorm.DB) reqdomain.RequestRepository {
	return reqrepo.NewTracingRequestRepository(reqrepo.NewGormRequestRepository(db))
}

// ProvideUserRepository provides the traced user repository
func ProvideUserRepository(db *gorm.DB) userdomain.UserRepository {
	return userrepo.NewTracingUserRepository(userrepo.NewGormUserRepository(db))
}

// ProvideLoginLimiter provides the login rate limiter; it is a no-op
// without Redis
func ProvideLoginLimiter(c *cache.Client, cfg *config.Config) (*ratelimit.RateLimiter, error) {
	proxies, err := ratelimit.ParseTrustedProxies(cfg.Server.TrustedProxies)
	if err != nil {
		return nil, err
	}
	limiter := ratelimit.NewRateLimiter(c.Redis(), "login", cfg.Redis.LoginMaxRequests, cfg.Redis.LoginWindow)
	return limiter.WithTrustedProxies(proxies), nil
}

// ProvideHealthChecker provides the database health checker
func ProvideHealthChecker(db *sql.DB) *health.Checker {
	return health.NewChecker(db)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideSupplyRepository,
	ProvideSummaryReader,
	ProvideReportRepository,
	ProvideReconciliationRepository,
	ProvideWorksheetReader,
	ProvideRequestRepository,
	ProvideUserRepository,
)

var InventorySet = wire.NewSet(
	invcommand.NewStockNotifier,
	invcommand.NewAddSupplyHandler,
	invcommand.NewUpdateSupplyHandler,
	invcommand.NewDeleteSupplyHandler,
	invcommand.NewRestockHandler,
	invcommand.NewRecordTransactionHandler,
	invquery.NewGetSupplyHandler,
	invquery.NewGetSupplyByNameHandler,
	invquery.NewListSuppliesHandler,
	invquery.NewShoppingListHandler,
	invquery.NewListTransactionsHandler,
	ProvideSummaryHandler,
	listener.NewDeliveryListener,
	invhttp.NewSupplyHandler,
)

var ReportSet = wire.NewSet(
	wire.Bind(new(repcommand.SummaryInvalidator), new(*invcommand.StockNotifier)),
	repcommand.NewGenerateReportHandler,
	repquery.NewGetReportHandler,
	rephttp.NewReportHandler,
)

var ReconciliationSet = wire.NewSet(
	wire.Bind(new(reccommand.SummaryInvalidator), new(*invcommand.StockNotifier)),
	reccommand.NewReconcileHandler,
	recquery.NewWorksheetHandler,
	recquery.NewListRecordsHandler,
	rechttp.NewReconciliationHandler,
)

var RequestSet = wire.NewSet(
	reqcommand.NewStatusNotifier,
	reqcommand.NewSubmitRequestHandler,
	reqcommand.NewApproveRequestHandler,
	reqcommand.NewRejectRequestHandler,
	reqcommand.NewReceiveRequestHandler,
	reqquery.NewListRequestsHandler,
	reqquery.NewGetRequestHandler,
	reqhttp.NewRequestHandler,
)

var UserSet = wire.NewSet(
	usercommand.NewLoginUserHandler,
	usercommand.NewCreateUserHandler,
	usercommand.NewDeleteUserHandler,
	usercommand.NewChangeRoleHandler,
	usercommand.NewToggleActiveHandler,
	usercommand.NewResetPasswordHandler,
	usercommand.NewChangePasswordHandler,
	usercommand.NewSeedAdminHandler,
	userquery.NewGetUserHandler,
	userquery.NewListUsersHandler,
	userquery.NewGetStatsHandler,
	userquery.NewVerifySessionHandler,
	ProvideLoginLimiter,
	userhttp.NewUserHandler,
)
