package repoargs

import (
	"github.com/fsdevblog/lucky-ten/internal/domain"
	"github.com/shopspring/decimal"
)

type CreateUser struct {
	Username string
	Password string
	Role     domain.RoleType
}

type CreateWallet struct {
	UserID         int64
	InitialBalance decimal.Decimal
}
