package service

import (
	"errors"
	"testing"
	"time"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/fsdevblog/lucky-ten/internal/repository/repoargs"
	"github.com/fsdevblog/lucky-ten/internal/service/mocks"
	"github.com/fsdevblog/lucky-ten/pkg/uow"
	uowmocks "github.com/fsdevblog/lucky-ten/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type RoundServiceTestSuite struct {
	suite.Suite
	mockCtrl       *gomock.Controller
	mockUOW        *uowmocks.MockUOW
	mockRoundRepo  *mocks.MockRoundRepository
	mockResultRepo *mocks.MockResultRepository
	mockCache      *mocks.MockRoundCacher
	service        *RoundService
	now            time.Time
}

func TestRoundServiceSuite(t *testing.T) {
	suite.Run(t, new(RoundServiceTestSuite))
}

func (s *RoundServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(s.mockCtrl)
	s.mockRoundRepo = mocks.NewMockRoundRepository(s.mockCtrl)
	s.mockResultRepo = mocks.NewMockResultRepository(s.mockCtrl)
	s.mockCache = mocks.NewMockRoundCacher(s.mockCtrl)
	s.now = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.RoundRepoName)).
		Return(s.mockRoundRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.ResultRepoName)).
		Return(s.mockResultRepo, nil).AnyTimes()

	var err error
	s.service, err = NewRoundService(s.mockUOW, 5*time.Minute, discardLogger())
	s.Require().NoError(err)
}

func (s *RoundServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *RoundServiceTestSuite) TestGetOrCreateActiveRound_Existing() {
	active := &domain.Round{ID: 4, Status: domain.RoundStatusActive, EndTime: s.now.Add(time.Minute)}
	s.mockRoundRepo.EXPECT().FindActive(gomock.Any()).Return(active, nil)
	s.mockRoundRepo.EXPECT().CreateActive(gomock.Any(), gomock.Any()).Times(0)

	round, err := s.service.GetOrCreateActiveRound(s.T().Context(), s.now)
	s.Require().NoError(err)
	s.Equal(active, round)
}

func (s *RoundServiceTestSuite) TestGetOrCreateActiveRound_Creates() {
	created := &domain.Round{ID: 1, Status: domain.RoundStatusActive, EndTime: s.now.Add(5 * time.Minute)}
	s.mockRoundRepo.EXPECT().FindActive(gomock.Any()).Return(nil, domain.ErrRecordNotFound)
	s.mockRoundRepo.EXPECT().
		CreateActive(gomock.Any(), repoargs.CreateRound{CreatedAt: s.now, EndTime: s.now.Add(5 * time.Minute)}).
		Return(created, nil)

	round, err := s.service.GetOrCreateActiveRound(s.T().Context(), s.now)
	s.Require().NoError(err)
	s.Equal(created, round)
}

func (s *RoundServiceTestSuite) TestGetOrCreateActiveRound_LostRace() {
	winner := &domain.Round{ID: 2, Status: domain.RoundStatusActive, EndTime: s.now.Add(5 * time.Minute)}
	gomock.InOrder(
		s.mockRoundRepo.EXPECT().FindActive(gomock.Any()).Return(nil, domain.ErrRecordNotFound),
		s.mockRoundRepo.EXPECT().CreateActive(gomock.Any(), gomock.Any()).Return(nil, domain.ErrDuplicateKey),
		// раунд создал параллельный запрос, перечитываем его
		s.mockRoundRepo.EXPECT().FindActive(gomock.Any()).Return(winner, nil),
	)

	round, err := s.service.GetOrCreateActiveRound(s.T().Context(), s.now)
	s.Require().NoError(err)
	s.Equal(winner, round)
}

func (s *RoundServiceTestSuite) TestGetOrCreateActiveRound_StoreError() {
	s.mockRoundRepo.EXPECT().FindActive(gomock.Any()).Return(nil, domain.ErrStoreUnavailable)
	s.mockRoundRepo.EXPECT().CreateActive(gomock.Any(), gomock.Any()).Times(0)

	_, err := s.service.GetOrCreateActiveRound(s.T().Context(), s.now)
	s.Require().ErrorIs(err, domain.ErrStoreUnavailable)
}

func (s *RoundServiceTestSuite) TestClose() {
	s.mockRoundRepo.EXPECT().Complete(gomock.Any(), int64(1), s.now).
		Return(&domain.Round{ID: 1, Status: domain.RoundStatusCompleted}, nil)
	s.mockRoundRepo.EXPECT().Complete(gomock.Any(), int64(2), s.now).
		Return(nil, domain.ErrInvalidTransition)
	s.mockRoundRepo.EXPECT().Complete(gomock.Any(), int64(3), s.now).
		Return(nil, domain.ErrRecordNotFound)

	cases := []struct {
		name    string
		roundID int64
		wantErr error
	}{
		{name: "active round", roundID: 1},
		{name: "already completed", roundID: 2, wantErr: domain.ErrInvalidTransition},
		{name: "missing round", roundID: 3, wantErr: domain.ErrRecordNotFound},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			err := s.service.Close(s.T().Context(), t.roundID, s.now)
			if t.wantErr == nil {
				s.Require().NoError(err)
				return
			}
			s.Require().ErrorIs(err, t.wantErr)
		})
	}
}

func (s *RoundServiceTestSuite) TestTimeRemaining() {
	round := &domain.Round{EndTime: s.now.Add(90 * time.Second)}
	s.Equal(90*time.Second, s.service.TimeRemaining(round, s.now))
	// после окончания раунда остаток не бывает отрицательным
	s.Equal(time.Duration(0), s.service.TimeRemaining(round, s.now.Add(time.Hour)))
}

func (s *RoundServiceTestSuite) TestTimer_UsesCache() {
	s.service.SetCache(s.mockCache)
	cached := &domain.Round{ID: 9, Status: domain.RoundStatusActive, EndTime: s.now.Add(30 * time.Second)}
	s.mockCache.EXPECT().GetActive(gomock.Any()).Return(cached, nil)
	s.mockRoundRepo.EXPECT().FindActive(gomock.Any()).Times(0)

	timer, err := s.service.Timer(s.T().Context(), s.now)
	s.Require().NoError(err)
	s.Equal(int64(9), timer.RoundID)
	s.Equal(int64(30), timer.SecondsRemaining)
	s.True(timer.AcceptsBets)
}

func (s *RoundServiceTestSuite) TestTimer_ExpiredCacheFallsBackToStore() {
	s.service.SetCache(s.mockCache)
	expired := &domain.Round{ID: 9, Status: domain.RoundStatusActive, EndTime: s.now.Add(-time.Second)}
	fresh := &domain.Round{ID: 10, Status: domain.RoundStatusActive, EndTime: s.now.Add(5 * time.Minute)}

	s.mockCache.EXPECT().GetActive(gomock.Any()).Return(expired, nil)
	s.mockRoundRepo.EXPECT().FindActive(gomock.Any()).Return(nil, domain.ErrRecordNotFound)
	s.mockRoundRepo.EXPECT().CreateActive(gomock.Any(), gomock.Any()).Return(fresh, nil)
	s.mockCache.EXPECT().Invalidate(gomock.Any()).Return(nil)
	s.mockCache.EXPECT().SetActive(gomock.Any(), fresh).Return(nil)

	timer, err := s.service.Timer(s.T().Context(), s.now)
	s.Require().NoError(err)
	s.Equal(int64(10), timer.RoundID)
	s.Equal(int64(300), timer.SecondsRemaining)
}

func (s *RoundServiceTestSuite) TestTimer_CacheErrorIgnored() {
	s.service.SetCache(s.mockCache)
	active := &domain.Round{ID: 3, Status: domain.RoundStatusActive, EndTime: s.now.Add(time.Minute)}

	s.mockCache.EXPECT().GetActive(gomock.Any()).Return(nil, errors.New("redis down"))
	s.mockRoundRepo.EXPECT().FindActive(gomock.Any()).Return(active, nil)
	s.mockCache.EXPECT().SetActive(gomock.Any(), active).Return(errors.New("redis down"))

	timer, err := s.service.Timer(s.T().Context(), s.now)
	s.Require().NoError(err)
	s.Equal(int64(60), timer.SecondsRemaining)
}

func (s *RoundServiceTestSuite) TestLatestResults() {
	results := []domain.Result{{ID: 2, RoundID: 2, WinningNumber: 7}, {ID: 1, RoundID: 1, WinningNumber: 3}}

	s.Run("default limit without cache", func() {
		s.mockResultRepo.EXPECT().ListLatest(gomock.Any(), DefaultLatestResultsLimit).Return(results, nil)

		got, err := s.service.LatestResults(s.T().Context(), 0)
		s.Require().NoError(err)
		s.Equal(results, got)
	})

	s.Run("cache hit", func() {
		s.service.SetCache(s.mockCache)
		defer s.service.SetCache(nil)

		s.mockCache.EXPECT().GetLatestResults(gomock.Any()).Return(results, nil)
		s.mockResultRepo.EXPECT().ListLatest(gomock.Any(), gomock.Any()).Times(0)

		got, err := s.service.LatestResults(s.T().Context(), DefaultLatestResultsLimit)
		s.Require().NoError(err)
		s.Equal(results, got)
	})

	s.Run("custom limit bypasses cache", func() {
		s.service.SetCache(s.mockCache)
		defer s.service.SetCache(nil)

		s.mockResultRepo.EXPECT().ListLatest(gomock.Any(), uint(1)).Return(results[:1], nil)

		got, err := s.service.LatestResults(s.T().Context(), 1)
		s.Require().NoError(err)
		s.Len(got, 1)
	})
}
