package app

import (
	"fmt"
	"net/http"

	"lunch-ledger-go/internal/config"
	"lunch-ledger-go/internal/db"
	debtdomain "lunch-ledger-go/internal/domain/debt"
	entriesdomain "lunch-ledger-go/internal/domain/entries"
	membersdomain "lunch-ledger-go/internal/domain/members"
	paymentsdomain "lunch-ledger-go/internal/domain/payments"
	entriesrepo "lunch-ledger-go/internal/repository/postgres/entries"
	membersrepo "lunch-ledger-go/internal/repository/postgres/members"
	paymentsrepo "lunch-ledger-go/internal/repository/postgres/payments"
	"lunch-ledger-go/internal/transport/httpserver"
	"lunch-ledger-go/internal/transport/httpserver/handler"
	"lunch-ledger-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	policy, err := debtdomain.ParsePolicy(cfg.PaidPolicy)
	if err != nil {
		return nil, fmt.Errorf("paid policy %q: %w", cfg.PaidPolicy, err)
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB)
	if err != nil {
		return nil, err
	}

	log.Info("app: applying migrations")
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	membersRepo := membersrepo.NewPostgres(dbConn)
	entriesRepo := entriesrepo.NewPostgres(dbConn)
	paymentsRepo := paymentsrepo.NewPostgres(dbConn)

	membersService := membersdomain.NewService(membersRepo)
	entriesService := entriesdomain.NewService(entriesRepo)
	paymentsService := paymentsdomain.NewService(paymentsRepo)
	debtService := debtdomain.NewServiceWithConfig(entriesRepo, paymentsRepo, debtdomain.Config{
		Policy:           policy,
		DefaultMealPrice: cfg.DefaultMealPrice,
		Locale:           cfg.ReportLocale,
	})

	log.Info("app: reconciliation policy", "policy", string(policy))

	handlers := handler.New(membersService, entriesService, paymentsService, debtService, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(handlers)

	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
