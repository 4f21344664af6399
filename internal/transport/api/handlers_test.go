package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/fsdevblog/lucky-ten/internal/logger"
	"github.com/fsdevblog/lucky-ten/internal/service"
	"github.com/fsdevblog/lucky-ten/internal/service/tokens"
	"github.com/fsdevblog/lucky-ten/internal/transport/api/mocks"
	"github.com/fsdevblog/lucky-ten/internal/transport/api/testutils"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type HandlersTestSuite struct {
	suite.Suite
	router *gin.Engine

	mockUserService        *mocks.MockUserServicer
	mockRoundService       *mocks.MockRoundServicer
	mockBetService         *mocks.MockBetServicer
	mockWalletService      *mocks.MockWalletServicer
	mockSettlementService  *mocks.MockSettlementServicer
	mockLeaderboardService *mocks.MockLeaderboardServicer

	jwtSecret  []byte
	userID     int64
	userToken  string
	adminToken string
}

type errorBody struct {
	Error string           `json:"error"`
	Kind  domain.ErrorKind `json:"kind"`
}

func TestHandlersSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}

func (s *HandlersTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(s.T())

	s.mockUserService = mocks.NewMockUserServicer(ctrl)
	s.mockRoundService = mocks.NewMockRoundServicer(ctrl)
	s.mockBetService = mocks.NewMockBetServicer(ctrl)
	s.mockWalletService = mocks.NewMockWalletServicer(ctrl)
	s.mockSettlementService = mocks.NewMockSettlementServicer(ctrl)
	s.mockLeaderboardService = mocks.NewMockLeaderboardServicer(ctrl)
	s.jwtSecret = []byte("super secret key")

	router, err := New(RouterArgs{
		Logger:             logger.New(io.Discard),
		UserService:        s.mockUserService,
		RoundService:       s.mockRoundService,
		BetService:         s.mockBetService,
		WalletService:      s.mockWalletService,
		SettlementService:  s.mockSettlementService,
		LeaderboardService: s.mockLeaderboardService,
		JWTSecretKey:       s.jwtSecret,
	})
	s.Require().NoError(err)
	s.router = router

	s.userID = 7
	s.userToken, err = tokens.GenerateUserJWT(s.userID, domain.RoleUser, time.Hour, s.jwtSecret)
	s.Require().NoError(err)
	s.adminToken, err = tokens.GenerateUserJWT(1, domain.RoleAdmin, time.Hour, s.jwtSecret)
	s.Require().NoError(err)
}

func (s *HandlersTestSuite) request(
	method, url string,
	body any,
	opts ...func(*testutils.RequestOptions),
) *http.Response {
	var reqBody io.Reader
	if body != nil {
		reqBody = testutils.JSONBody(body)
	}
	resp, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: method,
		URL:    url,
		Body:   reqBody,
	}, opts...)
	s.Require().NoError(err)
	return resp
}

func (s *HandlersTestSuite) assertError(resp *http.Response, status int, kind domain.ErrorKind) {
	s.Equal(status, resp.StatusCode)
	var body errorBody
	s.Require().NoError(testutils.DecodeJSON(resp, &body))
	s.Equal(kind, body.Kind)
	s.NotEmpty(body.Error)
}

func (s *HandlersTestSuite) TestRegister() {
	url := RouteGroup + RegisterRoute
	user := &domain.User{ID: 3, Username: "alice", Role: domain.RoleUser}

	s.mockUserService.EXPECT().
		Register(gomock.Any(), service.RegisterUserArgs{Username: "alice", Password: "secret1"}).
		Return(user, "jwt-token", nil)
	s.mockUserService.EXPECT().
		Register(gomock.Any(), service.RegisterUserArgs{Username: "bob", Password: "secret1"}).
		Return(nil, "", fmt.Errorf("registering user: %w", domain.ErrDuplicateKey))

	s.Run("success", func() {
		resp := s.request(http.MethodPost, url, gin.H{"login": "alice", "password": "secret1"})
		s.Equal(http.StatusOK, resp.StatusCode)
		s.Equal("Bearer jwt-token", resp.Header.Get("Authorization"))

		var body struct {
			User UserResponse `json:"user"`
		}
		s.Require().NoError(testutils.DecodeJSON(resp, &body))
		s.Equal(int64(3), body.User.ID)
		s.Equal(domain.RoleUser, body.User.Role)
	})
	s.Run("duplicate", func() {
		resp := s.request(http.MethodPost, url, gin.H{"login": "bob", "password": "secret1"})
		s.assertError(resp, http.StatusConflict, domain.KindConflict)
	})
	s.Run("short password", func() {
		resp := s.request(http.MethodPost, url, gin.H{"login": "carol", "password": "123"})
		s.assertError(resp, http.StatusUnprocessableEntity, domain.KindValidation)
	})
	s.Run("login over max bytes", func() {
		resp := s.request(http.MethodPost, url, gin.H{
			"login":    testutils.GenerateOverBytesUnderRunes(15),
			"password": "secret1",
		})
		s.assertError(resp, http.StatusUnprocessableEntity, domain.KindValidation)
	})
	s.Run("malformed json", func() {
		resp, err := testutils.MakeRequest(testutils.RequestArgs{
			Router: s.router,
			Method: http.MethodPost,
			URL:    url,
			Body:   testutils.JSONBody("not an object"),
		})
		s.Require().NoError(err)
		s.assertError(resp, http.StatusBadRequest, domain.KindValidation)
	})
	s.Run("already authorized", func() {
		resp := s.request(http.MethodPost, url, gin.H{"login": "dave", "password": "secret1"},
			testutils.WithBearer(s.userToken))
		s.assertError(resp, http.StatusUnauthorized, domain.KindUnauthorized)
	})
}

func (s *HandlersTestSuite) TestLogin() {
	url := RouteGroup + LoginRoute

	s.mockUserService.EXPECT().
		Login(gomock.Any(), service.LoginUserArgs{Username: "alice", Password: "wrongpass"}).
		Return(nil, "", fmt.Errorf("login: %w", domain.ErrPasswordMissMatch))
	s.mockUserService.EXPECT().
		Login(gomock.Any(), service.LoginUserArgs{Username: "alice", Password: "secret1"}).
		Return(&domain.User{ID: 3, Username: "alice", Role: domain.RoleUser}, "jwt-token", nil)

	resp := s.request(http.MethodPost, url, gin.H{"login": "alice", "password": "wrongpass"})
	s.assertError(resp, http.StatusUnauthorized, domain.KindUnauthorized)

	resp = s.request(http.MethodPost, url, gin.H{"login": "alice", "password": "secret1"})
	s.Equal(http.StatusOK, resp.StatusCode)
	s.Equal("Bearer jwt-token", resp.Header.Get("Authorization"))
	s.NoError(resp.Body.Close())
}

func (s *HandlersTestSuite) TestAuthRequired() {
	for _, url := range []string{RoundTimerRoute, BetsRoute, WalletRoute, LatestResultsRoute} {
		resp := s.request(http.MethodGet, RouteGroup+url, nil)
		s.assertError(resp, http.StatusUnauthorized, domain.KindUnauthorized)
	}

	expired, err := tokens.GenerateUserJWT(s.userID, domain.RoleUser, -time.Minute, s.jwtSecret)
	s.Require().NoError(err)
	resp := s.request(http.MethodGet, RouteGroup+WalletRoute, nil, testutils.WithBearer(expired))
	s.assertError(resp, http.StatusUnauthorized, domain.KindUnauthorized)
}

func (s *HandlersTestSuite) TestTimer() {
	endTime := time.Now().Add(time.Minute).UTC().Truncate(time.Second)
	s.mockRoundService.EXPECT().
		Timer(gomock.Any(), gomock.Any()).
		Return(&service.RoundTimer{RoundID: 4, EndTime: endTime, SecondsRemaining: 60, AcceptsBets: true}, nil)

	resp := s.request(http.MethodGet, RouteGroup+RoundTimerRoute, nil, testutils.WithBearer(s.userToken))
	s.Equal(http.StatusOK, resp.StatusCode)

	var body TimerResponse
	s.Require().NoError(testutils.DecodeJSON(resp, &body))
	s.Equal(int64(4), body.RoundID)
	s.Equal(int64(60), body.SecondsRemaining)
	s.True(body.AcceptsBets)
	s.True(endTime.Equal(body.EndTime))
}

func (s *HandlersTestSuite) TestLatestResults() {
	s.mockRoundService.EXPECT().
		LatestResults(gomock.Any(), uint(2)).
		Return([]domain.Result{{RoundID: 9, WinningNumber: 3}, {RoundID: 8, WinningNumber: 10}}, nil)

	resp := s.request(http.MethodGet, RouteGroup+LatestResultsRoute+"?limit=2", nil, testutils.WithBearer(s.userToken))
	s.Equal(http.StatusOK, resp.StatusCode)
	var body []ResultResponse
	s.Require().NoError(testutils.DecodeJSON(resp, &body))
	s.Require().Len(body, 2)
	s.Equal(int64(9), body[0].RoundID)

	resp = s.request(http.MethodGet, RouteGroup+LatestResultsRoute+"?limit=abc", nil, testutils.WithBearer(s.userToken))
	s.assertError(resp, http.StatusUnprocessableEntity, domain.KindValidation)
}

func (s *HandlersTestSuite) TestPlaceBet() {
	url := RouteGroup + BetsRoute
	amount := decimal.RequireFromString("40")

	s.Run("success", func() {
		s.mockBetService.EXPECT().
			PlaceBetInActiveRound(gomock.Any(), s.userID, 5, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_, _, _ any, got decimal.Decimal, _ any) (*domain.Bet, error) {
				s.True(amount.Equal(got))
				return &domain.Bet{
					ID: 11, UserID: s.userID, RoundID: 2, Number: 5, Amount: got, Status: domain.BetStatusPending,
				}, nil
			})

		resp := s.request(http.MethodPost, url, gin.H{"number": 5, "amount": "40"}, testutils.WithBearer(s.userToken))
		s.Equal(http.StatusCreated, resp.StatusCode)
		var body BetResponse
		s.Require().NoError(testutils.DecodeJSON(resp, &body))
		s.Equal(int64(11), body.ID)
		s.Equal(domain.BetStatusPending, body.Status)
	})
	s.Run("number out of range", func() {
		resp := s.request(http.MethodPost, url, gin.H{"number": 11, "amount": "1"}, testutils.WithBearer(s.userToken))
		s.assertError(resp, http.StatusUnprocessableEntity, domain.KindValidation)
	})

	rejections := []struct {
		name   string
		number int
		err    error
		status int
		kind   domain.ErrorKind
	}{
		{"insufficient funds", 1, domain.ErrInsufficientFunds, http.StatusPaymentRequired, domain.KindInsufficientFunds},
		{"duplicate bet", 2, domain.ErrDuplicateBet, http.StatusConflict, domain.KindDuplicateBet},
		{"round closed", 3, domain.ErrRoundClosed, http.StatusConflict, domain.KindRoundClosed},
		{"store unavailable", 4, domain.ErrStoreUnavailable, http.StatusServiceUnavailable, domain.KindStoreUnavailable},
		{"store conflict", 5, domain.ErrStoreConflict, http.StatusServiceUnavailable, domain.KindStoreConflict},
		{"unknown", 6, errors.New("boom"), http.StatusInternalServerError, domain.KindInternal},
	}
	for _, tc := range rejections {
		s.Run(tc.name, func() {
			s.mockBetService.EXPECT().
				PlaceBetInActiveRound(gomock.Any(), s.userID, tc.number, gomock.Any(), gomock.Any()).
				Return(nil, fmt.Errorf("placing bet: %w", tc.err))

			resp := s.request(http.MethodPost, url, gin.H{"number": tc.number, "amount": "1"},
				testutils.WithBearer(s.userToken))
			s.assertError(resp, tc.status, tc.kind)
		})
	}
}

func (s *HandlersTestSuite) TestListBets() {
	s.mockBetService.EXPECT().
		ListUserBets(gomock.Any(), s.userID, uint(0)).
		Return([]domain.Bet{{ID: 2, UserID: s.userID}, {ID: 1, UserID: s.userID}}, nil)

	resp := s.request(http.MethodGet, RouteGroup+BetsRoute, nil, testutils.WithBearer(s.userToken))
	s.Equal(http.StatusOK, resp.StatusCode)
	var body []BetResponse
	s.Require().NoError(testutils.DecodeJSON(resp, &body))
	s.Len(body, 2)
}

func (s *HandlersTestSuite) TestWallet() {
	s.mockWalletService.EXPECT().
		GetBalance(gomock.Any(), s.userID).
		Return(&domain.Wallet{UserID: s.userID, Balance: decimal.RequireFromString("60.00")}, nil)

	resp := s.request(http.MethodGet, RouteGroup+WalletRoute, nil, testutils.WithBearer(s.userToken))
	s.Equal(http.StatusOK, resp.StatusCode)
	var body WalletResponse
	s.Require().NoError(testutils.DecodeJSON(resp, &body))
	s.True(decimal.NewFromInt(60).Equal(body.Balance))
}

func (s *HandlersTestSuite) TestAdminForbiddenForUser() {
	routes := []struct{ method, url string }{
		{http.MethodGet, AdminBetsRoute},
		{http.MethodPost, AdminResultRoute},
		{http.MethodPost, AdminAutoResultRoute},
		{http.MethodGet, AdminLeaderboardRoute},
		{http.MethodPost, AdminWalletRoute},
	}
	for _, r := range routes {
		resp := s.request(r.method, RouteGroup+r.url, nil, testutils.WithBearer(s.userToken))
		s.assertError(resp, http.StatusForbidden, domain.KindForbidden)
	}
}

func (s *HandlersTestSuite) TestAdminSettle() {
	url := RouteGroup + AdminResultRoute
	report := &service.SettlementReport{
		RoundID: 5, WinningNumber: 5, Won: 1, Lost: 2, TotalPayout: decimal.NewFromInt(360), Completed: true,
	}

	s.Run("success", func() {
		s.mockSettlementService.EXPECT().SettleActiveRound(gomock.Any(), 5, gomock.Any()).Return(report, nil)

		resp := s.request(http.MethodPost, url, gin.H{"winningNumber": 5}, testutils.WithBearer(s.adminToken))
		s.Equal(http.StatusOK, resp.StatusCode)
		var body SettlementResponse
		s.Require().NoError(testutils.DecodeJSON(resp, &body))
		s.Equal(1, body.Won)
		s.True(body.Completed)
		s.True(decimal.NewFromInt(360).Equal(body.TotalPayout))
	})
	s.Run("already settled", func() {
		s.mockSettlementService.EXPECT().
			SettleActiveRound(gomock.Any(), 6, gomock.Any()).
			Return(nil, fmt.Errorf("settling: %w", domain.ErrAlreadySettled))

		resp := s.request(http.MethodPost, url, gin.H{"winningNumber": 6}, testutils.WithBearer(s.adminToken))
		s.assertError(resp, http.StatusConflict, domain.KindAlreadySettled)
	})
	s.Run("partial", func() {
		partial := &service.SettlementReport{
			RoundID: 5, WinningNumber: 7, Lost: 1,
			Failed: []service.BetFailure{{BetID: 3, UserID: 2, Err: domain.ErrStoreUnavailable}},
		}
		s.mockSettlementService.EXPECT().
			SettleActiveRound(gomock.Any(), 7, gomock.Any()).
			Return(partial, domain.ErrPartialSettlement)

		resp := s.request(http.MethodPost, url, gin.H{"winningNumber": 7}, testutils.WithBearer(s.adminToken))
		s.Equal(http.StatusAccepted, resp.StatusCode)
		var body struct {
			Report SettlementResponse `json:"report"`
			Kind   domain.ErrorKind   `json:"kind"`
		}
		s.Require().NoError(testutils.DecodeJSON(resp, &body))
		s.Equal(domain.KindPartialSettlement, body.Kind)
		s.Require().Len(body.Report.Failed, 1)
		s.False(body.Report.Completed)
	})
	s.Run("invalid number", func() {
		resp := s.request(http.MethodPost, url, gin.H{"winningNumber": 0}, testutils.WithBearer(s.adminToken))
		s.assertError(resp, http.StatusUnprocessableEntity, domain.KindValidation)
	})
}

func (s *HandlersTestSuite) TestAdminRoundByID() {
	s.mockSettlementService.EXPECT().
		SettleRound(gomock.Any(), int64(12), 4, gomock.Any()).
		Return(&service.SettlementReport{RoundID: 12, WinningNumber: 4, Completed: true}, nil)
	s.mockSettlementService.EXPECT().
		ResumeSettlement(gomock.Any(), int64(13), gomock.Any()).
		Return(nil, fmt.Errorf("resuming: %w", domain.ErrRecordNotFound))

	resp := s.request(http.MethodPost, RouteGroup+"/admin/rounds/12/settle", gin.H{"winningNumber": 4},
		testutils.WithBearer(s.adminToken))
	s.Equal(http.StatusOK, resp.StatusCode)
	s.NoError(resp.Body.Close())

	resp = s.request(http.MethodPost, RouteGroup+"/admin/rounds/13/resume", nil, testutils.WithBearer(s.adminToken))
	s.assertError(resp, http.StatusNotFound, domain.KindNotFound)

	resp = s.request(http.MethodPost, RouteGroup+"/admin/rounds/abc/resume", nil, testutils.WithBearer(s.adminToken))
	s.assertError(resp, http.StatusUnprocessableEntity, domain.KindValidation)
}

func (s *HandlersTestSuite) TestAdminAutoSettleAndPending() {
	s.mockSettlementService.EXPECT().
		AutoSettleActiveRound(gomock.Any(), gomock.Any()).
		Return(nil, fmt.Errorf("settling active round: %w", domain.ErrRecordNotFound))
	s.mockBetService.EXPECT().
		ListPendingBets(gomock.Any(), uint(10)).
		Return([]domain.Bet{{ID: 1, Status: domain.BetStatusPending}}, nil)

	resp := s.request(http.MethodPost, RouteGroup+AdminAutoResultRoute, nil, testutils.WithBearer(s.adminToken))
	s.assertError(resp, http.StatusNotFound, domain.KindNotFound)

	resp = s.request(http.MethodGet, RouteGroup+AdminBetsRoute+"?limit=10", nil, testutils.WithBearer(s.adminToken))
	s.Equal(http.StatusOK, resp.StatusCode)
	var body []BetResponse
	s.Require().NoError(testutils.DecodeJSON(resp, &body))
	s.Len(body, 1)
}

func (s *HandlersTestSuite) TestAdminLeaderboard() {
	s.mockLeaderboardService.EXPECT().
		ComputeLeaderboard(gomock.Any()).
		Return([]domain.LeaderboardEntry{
			{UserID: 2, TotalWinnings: decimal.NewFromInt(360)},
			{UserID: 1, TotalWinnings: decimal.Zero},
		}, nil)

	resp := s.request(http.MethodGet, RouteGroup+AdminLeaderboardRoute, nil, testutils.WithBearer(s.adminToken))
	s.Equal(http.StatusOK, resp.StatusCode)
	var body []LeaderboardEntryResponse
	s.Require().NoError(testutils.DecodeJSON(resp, &body))
	s.Require().Len(body, 2)
	s.Equal(int64(2), body[0].UserID)
}

func (s *HandlersTestSuite) TestAdminAdjustWallet() {
	url := RouteGroup + AdminWalletRoute

	s.mockWalletService.EXPECT().
		Adjust(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ any, args service.AdjustWalletArgs) (*domain.Wallet, error) {
			s.Equal(int64(5), args.UserID)
			s.Equal(domain.DirectionCredit, args.Direction)
			return &domain.Wallet{UserID: 5, Balance: decimal.NewFromInt(150)}, nil
		})

	resp := s.request(http.MethodPost, url, gin.H{"userId": 5, "amount": "50", "direction": "credit"},
		testutils.WithBearer(s.adminToken))
	s.Equal(http.StatusOK, resp.StatusCode)
	s.NoError(resp.Body.Close())

	resp = s.request(http.MethodPost, url, gin.H{"userId": 5, "amount": "50", "direction": "steal"},
		testutils.WithBearer(s.adminToken))
	s.assertError(resp, http.StatusUnprocessableEntity, domain.KindValidation)
}

func (s *HandlersTestSuite) TestRequestIDAndMetrics() {
	resp := s.request(http.MethodGet, MetricsRoute, nil)
	s.Equal(http.StatusOK, resp.StatusCode)
	s.NotEmpty(resp.Header.Get("X-Request-ID"))
	s.NoError(resp.Body.Close())
}
