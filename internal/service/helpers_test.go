package service

import (
	"context"
	"io"

	"github.com/fsdevblog/lucky-ten/pkg/uow"
	"github.com/sirupsen/logrus"
)

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// runInTX возвращает функцию для DoAndReturn, выполняющую fn с моком транзакции.
func runInTX(tx uow.TX) func(context.Context, func(context.Context, uow.TX) error, ...uow.TxOption) error {
	return func(ctx context.Context, fn func(context.Context, uow.TX) error, _ ...uow.TxOption) error {
		return fn(uow.MarkTransaction(ctx), tx)
	}
}
