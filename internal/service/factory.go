package service

import (
	"fmt"
	"time"

	"github.com/fsdevblog/lucky-ten/internal/service/psswd"
	"github.com/fsdevblog/lucky-ten/pkg/uow"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type FactoryArgs struct {
	JWTSecret        []byte
	RoundDuration    time.Duration
	PayoutMultiplier decimal.Decimal
	StartingBalance  decimal.Decimal
	Cache            RoundCacher
	Publisher        EventPublisher
	Logger           *logrus.Logger
}

type AppServices struct {
	UserService        *UserService
	WalletService      *WalletService
	RoundService       *RoundService
	BetService         *BetService
	SettlementService  *SettlementService
	LeaderboardService *LeaderboardService
}

func Factory(unitOfWork uow.UOW, args FactoryArgs) (*AppServices, error) {
	walletService, walletServiceErr := NewWalletService(unitOfWork, args.StartingBalance)
	if walletServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", walletServiceErr.Error())
	}

	userService, userServiceErr := NewUserService(unitOfWork, walletService, psswd.PasswordHash(0), args.JWTSecret)
	if userServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", userServiceErr.Error())
	}

	roundService, roundServiceErr := NewRoundService(unitOfWork, args.RoundDuration, args.Logger)
	if roundServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", roundServiceErr.Error())
	}
	roundService.SetCache(args.Cache)

	betService, betServiceErr := NewBetService(unitOfWork, args.Publisher, args.Logger)
	if betServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", betServiceErr.Error())
	}

	settlementService, settlementServiceErr := NewSettlementService(
		unitOfWork,
		roundService,
		args.PayoutMultiplier,
		args.Publisher,
		args.Logger,
	)
	if settlementServiceErr != nil {
		return nil, fmt.Errorf("service factory: %s", settlementServiceErr.Error())
	}

	return &AppServices{
		UserService:        userService,
		WalletService:      walletService,
		RoundService:       roundService,
		BetService:         betService,
		SettlementService:  settlementService,
		LeaderboardService: NewLeaderboardService(unitOfWork, args.PayoutMultiplier),
	}, nil
}
