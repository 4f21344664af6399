package service

import (
	"context"
	"math/rand/v2"

	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// randomNumber возвращает равномерно распределенное число из [domain.MinNumber, domain.MaxNumber].
func randomNumber() int {
	return domain.MinNumber + rand.IntN(domain.MaxNumber-domain.MinNumber+1) // nolint:gosec
}

// payoutMultiplier возвращает множитель выплаты. Допустим только целый множитель больше 1: тогда выплата
// по ставке с двумя знаками после запятой тоже имеет не больше двух знаков, а сумма выплат пользователя
// равна сумме его выигравших ставок, умноженной на множитель. Иначе используется DefaultPayoutMultiplier.
func payoutMultiplier(multiplier decimal.Decimal) decimal.Decimal {
	if !multiplier.IsInteger() || multiplier.LessThanOrEqual(decimal.NewFromInt(1)) {
		return decimal.NewFromInt(DefaultPayoutMultiplier)
	}
	return multiplier
}

// publish отправляет событие после коммита. Ошибка публикации только логируется.
func publish(ctx context.Context, publisher EventPublisher, l *logrus.Entry, eventType string, payload any) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, eventType, payload); err != nil {
		l.WithError(err).WithField("event", eventType).Warn("publish event")
	}
}
