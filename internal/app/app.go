package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/fsdevblog/lucky-ten/internal/config"
	"github.com/fsdevblog/lucky-ten/internal/repository/memrepo"
	"github.com/fsdevblog/lucky-ten/internal/repository/pgrepo"
	"github.com/fsdevblog/lucky-ten/internal/repository/rediscache"
	"github.com/fsdevblog/lucky-ten/internal/repository/repoargs"
	"github.com/fsdevblog/lucky-ten/internal/service"
	"github.com/fsdevblog/lucky-ten/internal/transport/api"
	"github.com/fsdevblog/lucky-ten/internal/transport/autodraw"
	"github.com/fsdevblog/lucky-ten/internal/transport/events"
	"github.com/fsdevblog/lucky-ten/pkg/uow"
	"github.com/sirupsen/logrus"

	// driver for migration applying postgres.
	_ "github.com/golang-migrate/migrate/v4/database/postgres" //nolint:revive
	// driver to get migrations from files (*.sql in our case).
	_ "github.com/golang-migrate/migrate/v4/source/file" //nolint:revive
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	shutdownTimeout  = 10 * time.Second
	bootstrapTimeout = 10 * time.Second
)

type App struct {
	Config *config.Config
	Logger *logrus.Logger
}

func New(conf *config.Config, l *logrus.Logger) *App {
	return &App{
		Config: conf,
		Logger: l,
	}
}

// Run запускает приложение и блокируется до сигнала остановки или ошибки http сервера.
func (a *App) Run() error {
	notifyCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a.Logger.WithFields(logrus.Fields{
		"runAddress":    a.Config.RunAddress,
		"memoryStore":   a.Config.UsesMemoryStore(),
		"roundDuration": a.Config.RoundDuration,
		"payout":        a.Config.PayoutMultiplier.String(),
		"autoDraw":      a.Config.AutoDraw,
		"redis":         a.Config.RedisAddr != "",
		"nats":          a.Config.NATSURL != "",
	}).Info("Starting app")

	unitOfWork, closeStore, storeErr := a.initStore(notifyCtx)
	if storeErr != nil {
		return fmt.Errorf("app run: %s", storeErr.Error())
	}
	defer closeStore()

	factoryArgs := service.FactoryArgs{
		JWTSecret:        []byte(a.Config.JWTSecret),
		RoundDuration:    a.Config.RoundDuration,
		PayoutMultiplier: a.Config.PayoutMultiplier,
		StartingBalance:  a.Config.StartingBalance,
		Logger:           a.Logger,
	}

	if a.Config.RedisAddr != "" {
		client, redisErr := rediscache.NewClient(notifyCtx, a.Config.RedisAddr, a.Config.RedisPassword, a.Config.RedisDB)
		if redisErr != nil {
			return fmt.Errorf("app run: %s", redisErr.Error())
		}
		defer client.Close()
		factoryArgs.Cache = rediscache.New(client)
	}

	factoryArgs.Publisher = events.NopPublisher{}
	if a.Config.NATSURL != "" {
		publisher, closeNATS, natsErr := events.Connect(notifyCtx, a.Config.NATSURL, a.Logger)
		if natsErr != nil {
			return fmt.Errorf("app run: %s", natsErr.Error())
		}
		defer closeNATS()
		factoryArgs.Publisher = publisher
	}

	services, sErr := service.Factory(unitOfWork, factoryArgs)
	if sErr != nil {
		return fmt.Errorf("app run: %s", sErr.Error())
	}

	if err := a.bootstrap(notifyCtx, services); err != nil {
		return fmt.Errorf("app run: %s", err.Error())
	}

	router, routerErr := api.New(api.RouterArgs{
		Logger:             a.Logger,
		UserService:        services.UserService,
		RoundService:       services.RoundService,
		BetService:         services.BetService,
		WalletService:      services.WalletService,
		SettlementService:  services.SettlementService,
		LeaderboardService: services.LeaderboardService,
		JWTSecretKey:       []byte(a.Config.JWTSecret),
	})
	if routerErr != nil {
		return fmt.Errorf("app run: %s", routerErr.Error())
	}

	server := &http.Server{
		Addr:              a.Config.RunAddress,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second, //nolint:mnd
	}

	errChan := make(chan error, 1)

	go func() {
		if runErr := server.ListenAndServe(); runErr != nil && !errors.Is(runErr, http.ErrServerClosed) {
			errChan <- runErr
		}
	}()

	processor := autodraw.New(services.RoundService, services.SettlementService, a.Logger).
		SetInterval(a.Config.AutoDrawInterval).
		SetAutoSettle(a.Config.AutoDraw)

	processorDone := make(chan struct{})
	go func() {
		processor.Run(notifyCtx)
		close(processorDone)
	}()

	var runErr error
	select {
	case <-notifyCtx.Done():
		runErr = notifyCtx.Err()
	case runErr = <-errChan:
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		a.Logger.WithError(err).Error("http server shutdown")
	}
	<-processorDone

	return runErr
}

// bootstrap создает администратора из конфигурации и первый раунд.
func (a *App) bootstrap(ctx context.Context, services *service.AppServices) error {
	ctx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
	defer cancel()

	if a.Config.AdminUsername != "" {
		admin, err := services.UserService.EnsureAdmin(ctx, a.Config.AdminUsername, a.Config.AdminPassword)
		if err != nil {
			return fmt.Errorf("bootstrap: %w", err)
		}
		a.Logger.WithFields(logrus.Fields{"userID": admin.ID, "role": admin.Role}).Info("admin ready")
	}

	round, err := services.RoundService.GetOrCreateActiveRound(ctx, time.Now())
	if err != nil {
		return fmt.Errorf("bootstrap: %w", err)
	}
	a.Logger.WithFields(logrus.Fields{"roundID": round.ID, "endTime": round.EndTime}).Info("active round ready")
	return nil
}

// initStore выбирает хранилище: postgres при заданном DSN, иначе память процесса.
func (a *App) initStore(ctx context.Context) (uow.UOW, func(), error) {
	if a.Config.UsesMemoryStore() {
		a.Logger.Warn("DATABASE_URI is not set, using in-memory store")
		return memrepo.New(), func() {}, nil
	}

	conn, connErr := pgrepo.Connect(ctx, a.Config.MigrationsDir, a.Config.DatabaseDSN, a.Logger)
	if connErr != nil {
		return nil, nil, fmt.Errorf("init store: %w", connErr)
	}

	unitOfWork, uowErr := initUOW(conn)
	if uowErr != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("init store: %w", uowErr)
	}
	return unitOfWork, conn.Close, nil
}

func initUOW(conn *pgxpool.Pool) (*uow.UnitOfWork, error) {
	unitOfWork := uow.NewUnitOfWork(conn)

	factories := map[repoargs.RepositoryName]uow.RepositoryFactory{
		repoargs.UserRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewUserRepository(dbtx)
		},
		repoargs.WalletRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewWalletRepository(dbtx)
		},
		repoargs.RoundRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewRoundRepository(dbtx)
		},
		repoargs.BetRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewBetRepository(dbtx)
		},
		repoargs.ResultRepoName: func(dbtx uow.DBTX) uow.Repository {
			return pgrepo.NewResultRepository(dbtx)
		},
	}
	for name, factory := range factories {
		if regErr := unitOfWork.Register(uow.RepositoryName(name), factory); regErr != nil {
			return nil, fmt.Errorf("init UOW: %s", regErr.Error())
		}
	}

	return unitOfWork, nil
}
