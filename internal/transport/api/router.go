package api

import (
	"fmt"
	"time"

	"github.com/fsdevblog/lucky-ten/internal/metrics"
	"github.com/fsdevblog/lucky-ten/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServiceTimeout    = 3 * time.Second
	DefaultSettlementTimeout = 30 * time.Second
)

const (
	RouteGroup            = "/api"
	RegisterRoute         = "/user/register"
	LoginRoute            = "/user/login"
	RoundTimerRoute       = "/round/timer"
	LatestResultsRoute    = "/results/latest"
	BetsRoute             = "/bets"
	WalletRoute           = "/wallet"
	AdminBetsRoute        = "/admin/bets"
	AdminResultRoute      = "/admin/result"
	AdminAutoResultRoute  = "/admin/result/auto"
	AdminSettleRoundRoute = "/admin/rounds/:id/settle"
	AdminResumeRoundRoute = "/admin/rounds/:id/resume"
	AdminLeaderboardRoute = "/admin/leaderboard"
	AdminWalletRoute      = "/admin/wallet"
	MetricsRoute          = "/metrics"
)

type RouterArgs struct {
	Logger             *logrus.Logger
	UserService        UserServicer
	RoundService       RoundServicer
	BetService         BetServicer
	WalletService      WalletServicer
	SettlementService  SettlementServicer
	LeaderboardService LeaderboardServicer
	JWTSecretKey       []byte
}

func New(args RouterArgs) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, fmt.Errorf("creating router: %w", err)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(metrics.HTTPMetrics())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	r.GET(MetricsRoute, gin.WrapH(promhttp.Handler()))

	authHandler := NewAuthHandler(args.UserService)
	roundHandler := NewRoundHandler(args.RoundService)
	betHandler := NewBetHandler(args.BetService)
	walletHandler := NewWalletHandler(args.WalletService)
	adminHandler := NewAdminHandler(AdminHandlerArgs{
		BetService:         args.BetService,
		WalletService:      args.WalletService,
		SettlementService:  args.SettlementService,
		LeaderboardService: args.LeaderboardService,
	})

	api := r.Group(RouteGroup)

	api.POST(RegisterRoute, middlewares.NonAuthRequired(args.JWTSecretKey), authHandler.Register)
	api.POST(LoginRoute, middlewares.NonAuthRequired(args.JWTSecretKey), authHandler.Login)

	api.Use(middlewares.AuthRequired(args.JWTSecretKey))
	// ниже все роуты группы требуют авторизованного пользователя.
	api.GET(RoundTimerRoute, roundHandler.Timer)
	api.GET(LatestResultsRoute, roundHandler.LatestResults)
	api.POST(BetsRoute, betHandler.Create)
	api.GET(BetsRoute, betHandler.Index)
	api.GET(WalletRoute, walletHandler.Index)

	admin := api.Group("", middlewares.RequireAdmin())
	admin.GET(AdminBetsRoute, adminHandler.PendingBets)
	admin.POST(AdminResultRoute, adminHandler.SettleActive)
	admin.POST(AdminAutoResultRoute, adminHandler.AutoSettle)
	admin.POST(AdminSettleRoundRoute, adminHandler.SettleRound)
	admin.POST(AdminResumeRoundRoute, adminHandler.ResumeRound)
	admin.GET(AdminLeaderboardRoute, adminHandler.Leaderboard)
	admin.POST(AdminWalletRoute, adminHandler.AdjustWallet)
	return r, nil
}
