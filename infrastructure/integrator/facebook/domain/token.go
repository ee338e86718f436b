package domain

// TokenResponse representa a resposta da Graph API ao trocar um código
// de autorização por um token de acesso.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}
