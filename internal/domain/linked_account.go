package domain

import "time"

// LinkedAdAccount representa uma conta de anúncios do Facebook autorizada
// via OAuth. O access_token é armazenado para agir em nome do usuário e
// nunca é serializado nas respostas da API.
type LinkedAdAccount struct {
	ID                string    `json:"id"`
	UserID            int       `json:"user_id"`
	ExternalAccountID string    `json:"account_id"`
	Name              string    `json:"name"`
	AccessToken       string    `json:"-"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

type LinkedAdAccountResponse struct {
	ID                string    `json:"id"`
	ExternalAccountID string    `json:"account_id"`
	Name              string    `json:"name"`
	IsActive          bool      `json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
}
