package domain

import "fmt"

// APIError é o erro uniforme para qualquer resposta de falha da Graph
// API. Carrega o status HTTP e o código/mensagem reportados pelo
// provedor; a camada de caso de uso decide como traduzi-lo.
type APIError struct {
	StatusCode int    `json:"status_code"`
	Code       int    `json:"code"`
	Type       string `json:"type"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("facebook api error (status %d, code %d): %s", e.StatusCode, e.Code, e.Message)
}

// ErrorEnvelope é o formato de erro retornado pela Graph API:
// {"error": {"message": ..., "type": ..., "code": ...}}
type ErrorEnvelope struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}
