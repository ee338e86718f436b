package launching

import (
	"errors"
	"fmt"
)

var (
	// ErrCampaignNotFound cobre campanha inexistente e campanha de outro
	// usuário.
	ErrCampaignNotFound = errors.New("campanha não encontrada")

	// ErrCampaignNotLaunchable indica campanha fora dos status que
	// aceitam lançamento (draft ou error).
	ErrCampaignNotLaunchable = errors.New("campanha não pode ser lançada neste status")

	// ErrNoLinkedAccount indica que o usuário não tem conta de anúncios
	// vinculada para publicar a campanha.
	ErrNoLinkedAccount = errors.New("nenhuma conta de anúncios vinculada")

	// ErrInsufficientCredits indica saldo insuficiente no cheque
	// consultivo que antecede a publicação.
	ErrInsufficientCredits = errors.New("saldo de créditos insuficiente para lançar")

	// ErrLaunchFailed indica que a publicação remota falhou. A campanha
	// fica com status de erro e nenhum crédito é consumido.
	ErrLaunchFailed = errors.New("falha ao lançar campanha no provedor")

	// ErrLedgerInconsistency indica que a campanha foi publicada mas o
	// débito do crédito falhou. A campanha permanece ativa; o saldo
	// precisa de correção manual.
	ErrLedgerInconsistency = errors.New("campanha lançada mas débito de crédito falhou")
)

// LaunchError é um erro de lançamento com contexto da campanha.
type LaunchError struct {
	Err        error
	UserID     int
	CampaignID string
	Details    string
}

func (e *LaunchError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

func NewLaunchError(baseErr error, userID int, campaignID, details string) *LaunchError {
	return &LaunchError{
		Err:        baseErr,
		UserID:     userID,
		CampaignID: campaignID,
		Details:    details,
	}
}
