package uow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter interface {
	Count() int
}

type counterRepo struct{ n int }

func (c *counterRepo) Count() int { return c.n }

type fakeTX map[RepositoryName]Repository

func (f fakeTX) Get(name RepositoryName) (Repository, error) {
	repo, ok := f[name]
	if !ok {
		return nil, ErrRepositoryNotRegistered
	}
	return repo, nil
}

func TestGetAs(t *testing.T) {
	tx := fakeTX{"counter": &counterRepo{n: 3}, "plain": "not a repo"}

	repo, err := GetAs[counter](tx, "counter")
	require.NoError(t, err)
	assert.Equal(t, 3, repo.Count())

	_, err = GetAs[counter](tx, "plain")
	require.ErrorIs(t, err, ErrInvalidRepositoryType)

	_, err = GetAs[counter](tx, "missing")
	require.ErrorIs(t, err, ErrRepositoryNotRegistered)
}

func TestTransactionGet_CachesInstances(t *testing.T) {
	created := 0
	tr := NewTransaction(nil, map[RepositoryName]RepositoryFactory{
		"counter": func(DBTX) Repository {
			created++
			return &counterRepo{n: created}
		},
	})

	first, err := tr.Get("counter")
	require.NoError(t, err)
	second, err := tr.Get("counter")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Equal(t, 1, created)

	_, err = tr.Get("missing")
	assert.ErrorIs(t, err, ErrRepositoryNotRegistered)
}

func TestRegister_Duplicate(t *testing.T) {
	u := NewUnitOfWork(nil)
	factory := func(DBTX) Repository { return &counterRepo{} }

	require.NoError(t, u.Register("counter", factory))
	assert.ErrorIs(t, u.Register("counter", factory), ErrRepositoryAlreadyRegistered)

	repo, err := GetRepositoryAs[counter](u, "counter")
	require.NoError(t, err)
	assert.Equal(t, 0, repo.Count())
}

func TestDo_RejectsNested(t *testing.T) {
	u := NewUnitOfWork(nil)
	ctx := MarkTransaction(context.Background())

	assert.True(t, InTransaction(ctx))
	err := u.Do(ctx, func(context.Context, TX) error { return nil })
	assert.ErrorIs(t, err, ErrNestedTransaction)
}

func TestBuildTxOptions(t *testing.T) {
	assert.Equal(t, TxOptions{Isolation: ReadCommitted}, BuildTxOptions())

	opts := BuildTxOptions(ReadOnly(), WithIsolation(Serializable))
	assert.True(t, opts.ReadOnly)
	assert.Equal(t, Serializable, opts.Isolation)

	pgxOpts := toPgxTxOptions(opts)
	assert.EqualValues(t, "serializable", pgxOpts.IsoLevel)
	assert.EqualValues(t, "read only", pgxOpts.AccessMode)
}
