package uow

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RepositoryName string
type Repository any
type RepositoryFactory func(DBTX) Repository

type txMarker struct{}

type UnitOfWork struct {
	conn         *pgxpool.Pool
	repositories map[RepositoryName]RepositoryFactory
}

func NewUnitOfWork(conn *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{
		conn:         conn,
		repositories: make(map[RepositoryName]RepositoryFactory),
	}
}

// Register регистрирует фабрику репозитория. Если репозиторий уже зарегистрирован, возвращает
// ошибку ErrRepositoryAlreadyRegistered.
func (u *UnitOfWork) Register(name RepositoryName, factory RepositoryFactory) error {
	if _, ok := u.repositories[name]; ok {
		return ErrRepositoryAlreadyRegistered
	}
	u.repositories[name] = factory
	return nil
}

// Do выполняет функцию fn внутри транзакции. Транзакция откатывается, если fn вернула ошибку.
// Вложенный вызов Do с контекстом уже открытой транзакции возвращает ErrNestedTransaction.
func (u *UnitOfWork) Do(ctx context.Context, fn func(context.Context, TX) error, opts ...TxOption) (err error) {
	if InTransaction(ctx) {
		return ErrNestedTransaction
	}
	options := BuildTxOptions(opts...)

	tx, txErr := u.conn.BeginTx(ctx, toPgxTxOptions(options))
	if txErr != nil {
		return txErr //nolint:wrapcheck
	}
	defer func() {
		if rollbackErr := tx.Rollback(ctx); rollbackErr != nil && !errors.Is(rollbackErr, pgx.ErrTxClosed) {
			err = errors.Join(err, rollbackErr)
		}
	}()

	if transErr := fn(MarkTransaction(ctx), NewTransaction(tx, u.repositories)); transErr != nil {
		return transErr
	}
	return tx.Commit(ctx) //nolint:wrapcheck
}

// GetRepository возвращает репозиторий, работающий вне транзакции, или ошибку ErrRepositoryNotRegistered.
func (u *UnitOfWork) GetRepository(name RepositoryName) (Repository, error) {
	if repoFactory, ok := u.repositories[name]; ok {
		return repoFactory(u.conn), nil
	}
	return nil, ErrRepositoryNotRegistered
}

// GetRepositoryAs возвращает репозиторий по имени name и приводит его к типу T. Возвращает ошибки
// ErrRepositoryNotRegistered и ErrInvalidRepositoryType.
func GetRepositoryAs[T any](u UOW, name RepositoryName) (T, error) {
	repo, err := u.GetRepository(name)
	return cast[T](repo, err)
}

// InTransaction сообщает, выполняется ли код внутри Do.
func InTransaction(ctx context.Context) bool {
	v, _ := ctx.Value(txMarker{}).(bool)
	return v
}

// MarkTransaction помечает контекст как принадлежащий открытой транзакции.
func MarkTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, txMarker{}, true)
}

func toPgxTxOptions(o TxOptions) pgx.TxOptions {
	opts := pgx.TxOptions{}
	switch o.Isolation {
	case RepeatableRead:
		opts.IsoLevel = pgx.RepeatableRead
	case Serializable:
		opts.IsoLevel = pgx.Serializable
	default:
		opts.IsoLevel = pgx.ReadCommitted
	}
	if o.ReadOnly {
		opts.AccessMode = pgx.ReadOnly
	}
	return opts
}
