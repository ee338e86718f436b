package campaigning

import (
	"errors"
	"fmt"
)

var (
	// ErrCampaignNotFound cobre campanha inexistente e campanha de outro
	// usuário. A API não distingue os dois casos.
	ErrCampaignNotFound = errors.New("campanha não encontrada")

	// ErrCreativeNotFound cobre criativo inexistente ou de outra campanha.
	ErrCreativeNotFound = errors.New("criativo não encontrado")

	// ErrCampaignLocked indica tentativa de alterar campanha que já saiu
	// do estado editável (draft ou error).
	ErrCampaignLocked = errors.New("campanha não pode ser alterada neste status")

	// ErrAccountNotFound indica conta vinculada inexistente ou de outro
	// usuário.
	ErrAccountNotFound = errors.New("conta vinculada não encontrada")

	// ErrInvalidCampaignData indica dados de campanha que falharam na
	// validação.
	ErrInvalidCampaignData = errors.New("dados de campanha inválidos")

	// ErrUnsupportedFileType indica upload de mídia fora dos formatos
	// aceitos.
	ErrUnsupportedFileType = errors.New("tipo de arquivo não suportado")
)

// CampaignError é um erro de gestão de campanha com contexto adicional.
type CampaignError struct {
	Err        error
	UserID     int
	CampaignID string
	Details    string
}

func (e *CampaignError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *CampaignError) Unwrap() error {
	return e.Err
}

func NewCampaignError(baseErr error, userID int, campaignID, details string) *CampaignError {
	return &CampaignError{
		Err:        baseErr,
		UserID:     userID,
		CampaignID: campaignID,
		Details:    details,
	}
}
