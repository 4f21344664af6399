package domain

type RoundStatusType string

const (
	RoundStatusActive    RoundStatusType = "ACTIVE"
	RoundStatusCompleted RoundStatusType = "COMPLETED"
)

type BetStatusType string

const (
	BetStatusPending BetStatusType = "PENDING"
	BetStatusWon     BetStatusType = "WON"
	BetStatusLost    BetStatusType = "LOST"
)

type RoleType string

const (
	RoleUser  RoleType = "user"
	RoleAdmin RoleType = "admin"
)

type DirectionType string

const (
	DirectionDebit  DirectionType = "debit"
	DirectionCredit DirectionType = "credit"
)

// Границы чисел, на которые принимаются ставки и которые может выиграть раунд.
const (
	MinNumber = 1
	MaxNumber = 10
)

// IsValidNumber проверяет, что число входит в диапазон [MinNumber, MaxNumber].
func IsValidNumber(n int) bool {
	return n >= MinNumber && n <= MaxNumber
}

// NextRoundStatus возвращает следующий статус раунда. Единственный допустимый переход ACTIVE -> COMPLETED,
// во всех остальных случаях возвращается ErrInvalidTransition.
func NextRoundStatus(current RoundStatusType) (RoundStatusType, error) {
	if current == RoundStatusActive {
		return RoundStatusCompleted, nil
	}
	return current, ErrInvalidTransition
}
