package connecting

import (
	"errors"
	"fmt"
)

var (
	// ErrAuthorizationDenied indica que o usuário recusou a autorização
	// na tela do provedor.
	ErrAuthorizationDenied = errors.New("autorização negada pelo usuário")

	// ErrMissingAuthCode indica callback sem código de autorização.
	ErrMissingAuthCode = errors.New("código de autorização ausente")

	// ErrInvalidState indica token de estado ausente, inválido ou expirado.
	ErrInvalidState = errors.New("token de estado inválido ou expirado")

	// ErrNoAdAccounts indica que o usuário autorizou mas não tem nenhuma
	// conta de anúncios no provedor.
	ErrNoAdAccounts = errors.New("nenhuma conta de anúncios encontrada")

	// ErrAccountAlreadyLinked indica que a conta de anúncios já está
	// vinculada a outro usuário.
	ErrAccountAlreadyLinked = errors.New("conta de anúncios já vinculada a outro usuário")

	// ErrAccountNotFound indica vínculo inexistente ou de outro usuário.
	ErrAccountNotFound = errors.New("conta vinculada não encontrada")
)

// ConnectError é um erro do fluxo OAuth com contexto do usuário.
type ConnectError struct {
	Err     error
	UserID  int
	Details string
}

func (e *ConnectError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ConnectError) Unwrap() error {
	return e.Err
}

func NewConnectError(baseErr error, userID int, details string) *ConnectError {
	return &ConnectError{
		Err:     baseErr,
		UserID:  userID,
		Details: details,
	}
}
