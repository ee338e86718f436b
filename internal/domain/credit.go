package domain

import "time"

type TransactionType string

const (
	TransactionTypePurchase TransactionType = "purchase"
	TransactionTypeUsage    TransactionType = "usage"
	TransactionTypeRefund   TransactionType = "refund"
	TransactionTypeBonus    TransactionType = "bonus"
)

// CreditBalance é o saldo pré-pago de um usuário. Um crédito autoriza o
// lançamento de uma campanha.
type CreditBalance struct {
	ID        string    `json:"id"`
	UserID    int       `json:"user_id"`
	Balance   int       `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreditTransaction é um registro imutável do livro-razão. O sinal do
// amount acompanha o tipo: negativo para usage, positivo para os demais.
type CreditTransaction struct {
	ID                string          `json:"id"`
	UserID            int             `json:"user_id"`
	Amount            int             `json:"amount"`
	Type              TransactionType `json:"type"`
	Description       string          `json:"description"`
	ExternalPaymentID *string         `json:"external_payment_id"`
	CampaignID        *string         `json:"campaign_id"`
	CreatedAt         time.Time       `json:"created_at"`
}
