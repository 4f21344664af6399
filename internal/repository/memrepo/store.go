// Package memrepo хранилище в памяти процесса. Реализует uow.UOW и все репозитории с теми же ограничениями,
// что и схема postgres: уникальные ключи, условные апдейты и проверка нижней границы баланса.
package memrepo

import (
	"context"
	"errors"
	"sync"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/fsdevblog/lucky-ten/internal/repository/repoargs"
	"github.com/fsdevblog/lucky-ten/pkg/uow"
)

var errReadOnly = errors.New("[memrepo] write in read-only transaction")

type betKey struct {
	userID  int64
	roundID int64
}

// data состояние хранилища. Транзакция работает с копией и подменяет оригинал при коммите.
type data struct {
	users     map[int64]domain.User
	usernames map[string]int64
	wallets   map[int64]domain.Wallet
	rounds    map[int64]domain.Round
	bets      map[int64]domain.Bet
	betKeys   map[betKey]int64
	results   map[int64]domain.Result // по round_id

	lastUserID   int64
	lastRoundID  int64
	lastBetID    int64
	lastResultID int64
}

func newData() *data {
	return &data{
		users:     make(map[int64]domain.User),
		usernames: make(map[string]int64),
		wallets:   make(map[int64]domain.Wallet),
		rounds:    make(map[int64]domain.Round),
		bets:      make(map[int64]domain.Bet),
		betKeys:   make(map[betKey]int64),
		results:   make(map[int64]domain.Result),
	}
}

func (d *data) clone() *data {
	c := &data{
		users:        make(map[int64]domain.User, len(d.users)),
		usernames:    make(map[string]int64, len(d.usernames)),
		wallets:      make(map[int64]domain.Wallet, len(d.wallets)),
		rounds:       make(map[int64]domain.Round, len(d.rounds)),
		bets:         make(map[int64]domain.Bet, len(d.bets)),
		betKeys:      make(map[betKey]int64, len(d.betKeys)),
		results:      make(map[int64]domain.Result, len(d.results)),
		lastUserID:   d.lastUserID,
		lastRoundID:  d.lastRoundID,
		lastBetID:    d.lastBetID,
		lastResultID: d.lastResultID,
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.usernames {
		c.usernames[k] = v
	}
	for k, v := range d.wallets {
		c.wallets[k] = v
	}
	for k, v := range d.rounds {
		c.rounds[k] = v
	}
	for k, v := range d.bets {
		c.bets[k] = v
	}
	for k, v := range d.betKeys {
		c.betKeys[k] = v
	}
	for k, v := range d.results {
		c.results[k] = v
	}
	return c
}

// Store хранилище в памяти. Все транзакции сериализуются общей блокировкой, поэтому хранилище
// пригодно только для одного процесса.
type Store struct {
	mu   sync.RWMutex
	data *data
}

func New() *Store {
	return &Store{data: newData()}
}

// Do выполняет fn в транзакции. Пишущая транзакция работает с копией состояния под эксклюзивной
// блокировкой, копия становится состоянием хранилища только если fn не вернула ошибку.
// Транзакция uow.ReadOnly читает состояние напрямую под разделяемой блокировкой.
func (s *Store) Do(ctx context.Context, fn func(context.Context, uow.TX) error, opts ...uow.TxOption) error {
	if uow.InTransaction(ctx) {
		return uow.ErrNestedTransaction
	}
	if err := ctx.Err(); err != nil {
		return err //nolint:wrapcheck
	}
	options := uow.BuildTxOptions(opts...)

	if options.ReadOnly {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return fn(uow.MarkTransaction(ctx), &transaction{v: view{bound: s.data, readOnly: true}})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.data.clone()
	if err := fn(uow.MarkTransaction(ctx), &transaction{v: view{bound: snapshot}}); err != nil {
		return err
	}
	s.data = snapshot
	return nil
}

// GetRepository возвращает репозиторий, каждая операция которого выполняется атомарно сама по себе.
func (s *Store) GetRepository(name uow.RepositoryName) (uow.Repository, error) {
	return newRepository(name, view{store: s})
}

type transaction struct {
	v view
}

func (t *transaction) Get(name uow.RepositoryName) (uow.Repository, error) {
	return newRepository(name, t.v)
}

func newRepository(name uow.RepositoryName, v view) (uow.Repository, error) {
	switch repoargs.RepositoryName(name) {
	case repoargs.UserRepoName:
		return &UserRepository{v: v}, nil
	case repoargs.WalletRepoName:
		return &WalletRepository{v: v}, nil
	case repoargs.RoundRepoName:
		return &RoundRepository{v: v}, nil
	case repoargs.BetRepoName:
		return &BetRepository{v: v}, nil
	case repoargs.ResultRepoName:
		return &ResultRepository{v: v}, nil
	default:
		return nil, uow.ErrRepositoryNotRegistered
	}
}

// view доступ репозитория к состоянию. Внутри транзакции bound указывает на ее копию, вне транзакции
// каждая операция берет блокировку хранилища.
type view struct {
	store    *Store
	bound    *data
	readOnly bool
}

func (v view) read(fn func(d *data) error) error {
	if v.bound != nil {
		return fn(v.bound)
	}
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	return fn(v.store.data)
}

// write выполняет fn над состоянием. fn обязана сначала проверить все условия и только потом изменять данные.
func (v view) write(fn func(d *data) error) error {
	if v.readOnly {
		return errReadOnly
	}
	if v.bound != nil {
		return fn(v.bound)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.data)
}
