package uow

type IsolationLevel string

const (
	ReadCommitted  IsolationLevel = "read committed"
	RepeatableRead IsolationLevel = "repeatable read"
	Serializable   IsolationLevel = "serializable"
)

// TxOptions параметры транзакции, не зависящие от конкретного хранилища.
type TxOptions struct {
	Isolation IsolationLevel
	ReadOnly  bool
}

type TxOption func(*TxOptions)

// ReadOnly помечает транзакцию как только для чтения.
func ReadOnly() TxOption {
	return func(o *TxOptions) {
		o.ReadOnly = true
	}
}

func WithIsolation(level IsolationLevel) TxOption {
	return func(o *TxOptions) {
		o.Isolation = level
	}
}

// BuildTxOptions применяет опции к значениям по умолчанию (read committed, read write).
func BuildTxOptions(opts ...TxOption) TxOptions {
	options := TxOptions{Isolation: ReadCommitted}
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
