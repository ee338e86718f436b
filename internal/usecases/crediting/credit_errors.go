package crediting

import (
	"errors"
	"fmt"
)

var (
	// ErrInsufficientCredits indica saldo menor que o débito pedido.
	ErrInsufficientCredits = errors.New("saldo de créditos insuficiente")

	// ErrLedgerInconsistency indica que o débito autoritativo falhou
	// depois do cheque consultivo ter passado. O chamador decide o que
	// fazer com o efeito já produzido.
	ErrLedgerInconsistency = errors.New("inconsistência no livro-razão de créditos")

	// ErrInvalidAmount indica quantidade não positiva.
	ErrInvalidAmount = errors.New("quantidade de créditos inválida")

	// ErrPaymentFailed indica que o coletor de pagamento recusou a cobrança.
	ErrPaymentFailed = errors.New("falha na cobrança do pagamento")
)

// CreditError é um erro com contexto adicional do livro-razão.
type CreditError struct {
	Err     error
	UserID  int
	Details string
}

func (e *CreditError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *CreditError) Unwrap() error {
	return e.Err
}

func NewCreditError(baseErr error, userID int, details string) *CreditError {
	return &CreditError{
		Err:     baseErr,
		UserID:  userID,
		Details: details,
	}
}
