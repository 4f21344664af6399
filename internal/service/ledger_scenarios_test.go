package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/fsdevblog/lucky-ten/internal/repository/memrepo"
	"github.com/fsdevblog/lucky-ten/internal/repository/repoargs"
	"github.com/fsdevblog/lucky-ten/pkg/uow"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// flakyUOW оборачивает хранилище и роняет начисление выигрыша выбранным пользователям.
type flakyUOW struct {
	uow.UOW
	mu         sync.Mutex
	failCredit map[int64]bool
}

func (f *flakyUOW) Do(ctx context.Context, fn func(context.Context, uow.TX) error, opts ...uow.TxOption) error {
	return f.UOW.Do(ctx, func(c context.Context, tx uow.TX) error {
		return fn(c, &flakyTX{TX: tx, owner: f})
	}, opts...)
}

func (f *flakyUOW) shouldFail(userID int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failCredit[userID]
}

func (f *flakyUOW) heal() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failCredit = map[int64]bool{}
}

type flakyTX struct {
	uow.TX
	owner *flakyUOW
}

func (t *flakyTX) Get(name uow.RepositoryName) (uow.Repository, error) {
	repo, err := t.TX.Get(name)
	if err != nil || name != uow.RepositoryName(repoargs.WalletRepoName) {
		return repo, err
	}
	return &flakyWalletRepo{WalletRepository: repo.(WalletRepository), owner: t.owner}, nil //nolint:errcheck
}

type flakyWalletRepo struct {
	WalletRepository
	owner *flakyUOW
}

func (w *flakyWalletRepo) AdjustBalance(
	ctx context.Context,
	userID int64,
	delta decimal.Decimal,
) (*domain.Wallet, error) {
	if delta.IsPositive() && w.owner.shouldFail(userID) {
		return nil, fmt.Errorf("credit user %d: %w", userID, domain.ErrStoreUnavailable)
	}
	return w.WalletRepository.AdjustBalance(ctx, userID, delta)
}

type LedgerScenariosTestSuite struct {
	suite.Suite
	store *memrepo.Store
	flaky *flakyUOW
	svs   *AppServices
	now   time.Time
}

func TestLedgerScenariosSuite(t *testing.T) {
	suite.Run(t, new(LedgerScenariosTestSuite))
}

func (s *LedgerScenariosTestSuite) SetupTest() {
	s.store = memrepo.New()
	s.flaky = &flakyUOW{UOW: s.store, failCredit: map[int64]bool{}}
	s.now = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	var err error
	s.svs, err = Factory(s.flaky, FactoryArgs{
		JWTSecret:        []byte("secret"),
		RoundDuration:    5 * time.Minute,
		PayoutMultiplier: decimal.NewFromInt(DefaultPayoutMultiplier),
		StartingBalance:  decimal.RequireFromString(DefaultStartingBalance),
		Logger:           discardLogger(),
	})
	s.Require().NoError(err)
}

// newUser создает юзера с кошельком напрямую через репозитории, минуя bcrypt.
func (s *LedgerScenariosTestSuite) newUser(balance string) int64 {
	ctx := s.T().Context()
	var userID int64
	err := s.store.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, err := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if err != nil {
			return err
		}
		user, err := userRepo.CreateUser(c, repoargs.CreateUser{
			Username: fmt.Sprintf("%s_%d", gofakeit.Username(), gofakeit.Number(1, 1_000_000_000)),
			Password: "hash",
			Role:     domain.RoleUser,
		})
		if err != nil {
			return err
		}
		walletRepo, err := uow.GetAs[WalletRepository](tx, uow.RepositoryName(repoargs.WalletRepoName))
		if err != nil {
			return err
		}
		_, err = walletRepo.Create(c, repoargs.CreateWallet{
			UserID:         user.ID,
			InitialBalance: decimal.RequireFromString(balance),
		})
		userID = user.ID
		return err
	})
	s.Require().NoError(err)
	return userID
}

func (s *LedgerScenariosTestSuite) balance(userID int64) decimal.Decimal {
	wallet, err := s.svs.WalletService.GetBalance(s.T().Context(), userID)
	s.Require().NoError(err)
	return wallet.Balance
}

func (s *LedgerScenariosTestSuite) activeRound() *domain.Round {
	round, err := s.svs.RoundService.GetOrCreateActiveRound(s.T().Context(), s.now)
	s.Require().NoError(err)
	return round
}

func (s *LedgerScenariosTestSuite) place(userID, roundID int64, number int, amount string) (*domain.Bet, error) {
	return s.svs.BetService.PlaceBet(s.T().Context(), PlaceBetArgs{
		UserID:  userID,
		RoundID: roundID,
		Number:  number,
		Amount:  decimal.RequireFromString(amount),
	}, s.now)
}

func (s *LedgerScenariosTestSuite) TestWinningBetScenario() {
	userID := s.newUser("100.00")
	round := s.activeRound()

	bet, err := s.place(userID, round.ID, 5, "40")
	s.Require().NoError(err)
	s.Equal(domain.BetStatusPending, bet.Status)
	s.True(decimal.NewFromInt(60).Equal(s.balance(userID)))

	report, err := s.svs.SettlementService.SettleRound(s.T().Context(), round.ID, 5, s.now.Add(5*time.Minute))
	s.Require().NoError(err)
	s.True(report.Completed)
	s.Equal(1, report.Won)

	// 60 + 40 * 9
	s.True(decimal.NewFromInt(420).Equal(s.balance(userID)))

	bets, err := s.svs.BetService.ListUserBets(s.T().Context(), userID, 0)
	s.Require().NoError(err)
	s.Require().Len(bets, 1)
	s.Equal(domain.BetStatusWon, bets[0].Status)

	roundRepo, err := uow.GetRepositoryAs[RoundRepository](s.store, uow.RepositoryName(repoargs.RoundRepoName))
	s.Require().NoError(err)
	closed, err := roundRepo.FindByID(s.T().Context(), round.ID)
	s.Require().NoError(err)
	s.Equal(domain.RoundStatusCompleted, closed.Status)
	s.NotNil(closed.CompletedAt)

	results, err := s.svs.RoundService.LatestResults(s.T().Context(), 0)
	s.Require().NoError(err)
	s.Require().Len(results, 1)
	s.Equal(5, results[0].WinningNumber)
	s.Equal(round.ID, results[0].RoundID)

	// раунд завершен, следующий get-or-create создает новый
	next := s.activeRound()
	s.NotEqual(round.ID, next.ID)
}

func (s *LedgerScenariosTestSuite) TestInsufficientFundsScenario() {
	userID := s.newUser("30.00")
	round := s.activeRound()

	_, err := s.place(userID, round.ID, 5, "40")
	s.Require().ErrorIs(err, domain.ErrInsufficientFunds)
	s.True(decimal.NewFromInt(30).Equal(s.balance(userID)))

	bets, err := s.svs.BetService.ListUserBets(s.T().Context(), userID, 0)
	s.Require().NoError(err)
	s.Empty(bets)
}

func (s *LedgerScenariosTestSuite) TestDuplicateBetScenario() {
	userID := s.newUser("100.00")
	round := s.activeRound()

	_, err := s.place(userID, round.ID, 5, "10")
	s.Require().NoError(err)
	_, err = s.place(userID, round.ID, 7, "10")
	s.Require().ErrorIs(err, domain.ErrDuplicateBet)
	// повторная ставка больше остатка все равно дубль, а не нехватка средств
	_, err = s.place(userID, round.ID, 7, "500")
	s.Require().ErrorIs(err, domain.ErrDuplicateBet)

	s.True(decimal.NewFromInt(90).Equal(s.balance(userID)))
}

func (s *LedgerScenariosTestSuite) TestBetAfterEndTimeRejected() {
	userID := s.newUser("100.00")
	round := s.activeRound()

	_, err := s.svs.BetService.PlaceBet(s.T().Context(), PlaceBetArgs{
		UserID: userID, RoundID: round.ID, Number: 1, Amount: decimal.NewFromInt(1),
	}, round.EndTime)
	s.Require().ErrorIs(err, domain.ErrRoundClosed)
	s.True(decimal.NewFromInt(100).Equal(s.balance(userID)))
}

func (s *LedgerScenariosTestSuite) TestConcurrentBetsSameUser() {
	userID := s.newUser("50.00")
	round := s.activeRound()

	const attempts = 2
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.place(userID, round.ID, i+1, "50")
		}()
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		s.True(errors.Is(err, domain.ErrDuplicateBet) || errors.Is(err, domain.ErrInsufficientFunds), err.Error())
	}
	s.Equal(1, ok)
	s.True(decimal.Zero.Equal(s.balance(userID)))
}

func (s *LedgerScenariosTestSuite) TestConcurrentGetOrCreateActiveRound() {
	const callers = 20
	ids := make([]int64, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			round, err := s.svs.RoundService.GetOrCreateActiveRound(context.Background(), s.now)
			if err == nil {
				ids[i] = round.ID
			}
		}()
	}
	wg.Wait()

	for _, id := range ids {
		s.Equal(ids[0], id)
	}
	s.NotZero(ids[0])
}

func (s *LedgerScenariosTestSuite) TestConcurrentSettlement() {
	userID := s.newUser("100.00")
	round := s.activeRound()
	_, err := s.place(userID, round.ID, 3, "10")
	s.Require().NoError(err)

	const settlers = 8
	errs := make([]error, settlers)
	var wg sync.WaitGroup
	for i := range settlers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.svs.SettlementService.SettleRound(context.Background(), round.ID, 3, s.now)
		}()
	}
	wg.Wait()

	var ok int
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		s.ErrorIs(err, domain.ErrAlreadySettled)
	}
	s.Equal(1, ok)
	// 90 + 10 * 9, начислено ровно один раз
	s.True(decimal.NewFromInt(180).Equal(s.balance(userID)))

	_, err = s.svs.SettlementService.SettleRound(s.T().Context(), round.ID, 3, s.now)
	s.Require().ErrorIs(err, domain.ErrAlreadySettled)
	s.True(decimal.NewFromInt(180).Equal(s.balance(userID)))
}

func (s *LedgerScenariosTestSuite) TestPartialSettlementRepair() {
	winner := s.newUser("100.00")
	loser := s.newUser("100.00")
	round := s.activeRound()

	_, err := s.place(winner, round.ID, 7, "10")
	s.Require().NoError(err)
	_, err = s.place(loser, round.ID, 2, "10")
	s.Require().NoError(err)

	s.flaky.failCredit[winner] = true

	report, err := s.svs.SettlementService.SettleRound(s.T().Context(), round.ID, 7, s.now)
	s.Require().ErrorIs(err, domain.ErrPartialSettlement)
	s.Require().Len(report.Failed, 1)
	s.Equal(winner, report.Failed[0].UserID)
	s.Equal(1, report.Lost)
	s.False(report.Completed)
	s.True(decimal.NewFromInt(90).Equal(s.balance(winner)))

	// результат зафиксирован, новые ставки в раунд не принимаются
	late := s.newUser("100.00")
	_, err = s.place(late, round.ID, 7, "10")
	s.Require().ErrorIs(err, domain.ErrRoundClosed)

	unfinished, err := s.svs.SettlementService.UnfinishedRounds(s.T().Context(), 10)
	s.Require().NoError(err)
	s.Require().Len(unfinished, 1)
	s.Equal(round.ID, unfinished[0].ID)

	s.flaky.heal()

	report, err = s.svs.SettlementService.ResumeSettlement(s.T().Context(), round.ID, s.now)
	s.Require().NoError(err)
	s.True(report.Completed)
	s.Equal(1, report.Won)
	// проигравшая ставка уже рассчитана и при дорасчете не выбирается
	s.Equal(0, report.Lost)

	s.True(decimal.NewFromInt(180).Equal(s.balance(winner)))
	s.True(decimal.NewFromInt(90).Equal(s.balance(loser)))

	// повторный дорасчет ничего не меняет
	_, err = s.svs.SettlementService.ResumeSettlement(s.T().Context(), round.ID, s.now)
	s.Require().ErrorIs(err, domain.ErrAlreadySettled)
	s.True(decimal.NewFromInt(180).Equal(s.balance(winner)))

	unfinished, err = s.svs.SettlementService.UnfinishedRounds(s.T().Context(), 10)
	s.Require().NoError(err)
	s.Empty(unfinished)
}

// TestConservationUnderConcurrency много пользователей одновременно ставят случайные суммы, после расчета
// сумма балансов сходится с суммой ставок и выигрышей, балансы не уходят в минус.
func (s *LedgerScenariosTestSuite) TestConservationUnderConcurrency() {
	const users = 40
	round := s.activeRound()

	ids := make([]int64, users)
	initial := decimal.Zero
	for i := range users {
		start := fmt.Sprintf("%d.00", gofakeit.Number(0, 200))
		ids[i] = s.newUser(start)
		initial = initial.Add(decimal.RequireFromString(start))
	}

	type placed struct {
		number int
		amount decimal.Decimal
		err    error
	}
	results := make([]placed, users)
	var wg sync.WaitGroup
	for i := range users {
		number := gofakeit.Number(domain.MinNumber, domain.MaxNumber)
		amount := decimal.New(int64(gofakeit.Number(1, 15000)), -2)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.svs.BetService.PlaceBet(context.Background(), PlaceBetArgs{
				UserID: ids[i], RoundID: round.ID, Number: number, Amount: amount,
			}, s.now)
			results[i] = placed{number: number, amount: amount, err: err}
		}()
	}
	wg.Wait()

	winning := gofakeit.Number(domain.MinNumber, domain.MaxNumber)
	debited := decimal.Zero
	wonAmount := decimal.Zero
	for _, r := range results {
		if r.err != nil {
			s.Require().ErrorIs(r.err, domain.ErrInsufficientFunds)
			continue
		}
		debited = debited.Add(r.amount)
		if r.number == winning {
			wonAmount = wonAmount.Add(r.amount)
		}
	}

	report, err := s.svs.SettlementService.SettleRound(context.Background(), round.ID, winning, s.now)
	s.Require().NoError(err)
	s.True(report.Completed)
	multiplier := decimal.NewFromInt(DefaultPayoutMultiplier)
	s.True(wonAmount.Mul(multiplier).Equal(report.TotalPayout))

	final := decimal.Zero
	for _, id := range ids {
		b := s.balance(id)
		s.False(b.IsNegative())
		final = final.Add(b)
	}
	s.True(initial.Sub(debited).Add(wonAmount.Mul(multiplier)).Equal(final),
		"initial %s debited %s won %s final %s", initial, debited, wonAmount, final)

	pending, err := s.svs.BetService.ListPendingBets(context.Background(), 1000)
	s.Require().NoError(err)
	s.Empty(pending)
}

func (s *LedgerScenariosTestSuite) TestLeaderboard() {
	a := s.newUser("100.00")
	b := s.newUser("100.00")
	c := s.newUser("100.00")

	round := s.activeRound()
	for _, u := range []int64{a, b} {
		_, err := s.place(u, round.ID, 4, "10")
		s.Require().NoError(err)
	}
	_, err := s.place(c, round.ID, 5, "10")
	s.Require().NoError(err)
	_, err = s.svs.SettlementService.SettleRound(s.T().Context(), round.ID, 4, s.now)
	s.Require().NoError(err)

	round2 := s.activeRound()
	_, err = s.place(b, round2.ID, 9, "1.50")
	s.Require().NoError(err)
	_, err = s.svs.SettlementService.SettleRound(s.T().Context(), round2.ID, 9, s.now)
	s.Require().NoError(err)

	board, err := s.svs.LeaderboardService.ComputeLeaderboard(s.T().Context())
	s.Require().NoError(err)
	s.Require().Len(board, 2)
	// b: (10 + 1.50) * 9, a: 10 * 9; проигравший c в таблицу не попадает
	s.Equal(b, board[0].UserID)
	s.True(decimal.RequireFromString("103.5").Equal(board[0].TotalWinnings))
	s.Equal(a, board[1].UserID)
	s.True(decimal.NewFromInt(90).Equal(board[1].TotalWinnings))
}

func (s *LedgerScenariosTestSuite) TestWalletAdjust() {
	userID := s.newUser("10.00")

	wallet, err := s.svs.WalletService.Adjust(s.T().Context(), AdjustWalletArgs{
		UserID: userID, Amount: decimal.NewFromInt(5), Direction: domain.DirectionCredit,
	})
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(15).Equal(wallet.Balance))

	_, err = s.svs.WalletService.Adjust(s.T().Context(), AdjustWalletArgs{
		UserID: userID, Amount: decimal.NewFromInt(20), Direction: domain.DirectionDebit,
	})
	s.Require().ErrorIs(err, domain.ErrInsufficientFunds)
	s.True(decimal.NewFromInt(15).Equal(s.balance(userID)))

	_, err = s.svs.WalletService.Adjust(s.T().Context(), AdjustWalletArgs{
		UserID: userID, Amount: decimal.NewFromInt(1), Direction: "sideways",
	})
	s.Require().ErrorIs(err, domain.ErrValidation)

	_, err = s.svs.WalletService.Adjust(s.T().Context(), AdjustWalletArgs{
		UserID: 999, Amount: decimal.NewFromInt(1), Direction: domain.DirectionCredit,
	})
	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *LedgerScenariosTestSuite) TestRegisterAndEnsureAdmin() {
	ctx := s.T().Context()

	user, token, err := s.svs.UserService.Register(ctx, RegisterUserArgs{Username: "player", Password: "secret1"})
	s.Require().NoError(err)
	s.NotEmpty(token)
	s.Equal(domain.RoleUser, user.Role)
	s.True(decimal.RequireFromString(DefaultStartingBalance).Equal(s.balance(user.ID)))

	_, _, err = s.svs.UserService.Register(ctx, RegisterUserArgs{Username: "player", Password: "other12"})
	s.Require().ErrorIs(err, domain.ErrDuplicateKey)

	admin, err := s.svs.UserService.EnsureAdmin(ctx, "root", "rootpass")
	s.Require().NoError(err)
	s.Equal(domain.RoleAdmin, admin.Role)

	again, err := s.svs.UserService.EnsureAdmin(ctx, "root", "changed")
	s.Require().NoError(err)
	s.Equal(admin.ID, again.ID)

	// существующий обычный юзер не повышается до администратора
	existing, err := s.svs.UserService.EnsureAdmin(ctx, "player", "secret1")
	s.Require().NoError(err)
	s.Equal(domain.RoleUser, existing.Role)

	logged, _, err := s.svs.UserService.Login(ctx, LoginUserArgs{Username: "root", Password: "rootpass"})
	s.Require().NoError(err)
	s.Equal(admin.ID, logged.ID)
}
