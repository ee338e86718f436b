package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro da API
const (
	// Erros de autenticação (AUTH)
	ErrInvalidCredentials = "AUTH_001" // Credenciais inválidas
	ErrUserNotFound       = "AUTH_002" // Usuário não encontrado
	ErrInvalidToken       = "AUTH_003" // Token inválido
	ErrUserAlreadyExists  = "AUTH_004" // Usuário já existe

	// Erros de validação (VAL)
	ErrInvalidRequest      = "VAL_001" // Requisição inválida
	ErrMissingRequiredData = "VAL_002" // Dados obrigatórios ausentes
	ErrInvalidFormat       = "VAL_003" // Formato de dados inválido

	// Erros do fluxo OAuth (OAUTH)
	ErrAuthorizationDenied = "OAUTH_001" // Provedor recusou a autorização
	ErrMissingAuthCode     = "OAUTH_002" // Código de autorização ausente
	ErrInvalidState        = "OAUTH_003" // Token de estado inválido ou expirado
	ErrNoAdAccounts        = "OAUTH_004" // Nenhuma conta de anúncios encontrada

	// Erros de recursos (RES)
	ErrNotFound = "RES_001" // Recurso não encontrado ou sem permissão
	ErrConflict = "RES_002" // Conflito com recurso existente

	// Erros de créditos (CRD)
	ErrInsufficientCredits = "CRD_001" // Saldo insuficiente
	ErrLedgerInconsistency = "CRD_002" // Inconsistência no livro-razão

	// Erros do servidor (SRV)
	ErrInternalServer    = "SRV_001" // Erro interno do servidor
	ErrDatabaseOperation = "SRV_002" // Erro de operação de banco de dados
	ErrExternalService   = "SRV_003" // Erro em serviço externo
	ErrLaunchFailed      = "SRV_004" // Falha no lançamento remoto da campanha
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrInvalidCredentials:  http.StatusUnauthorized,
	ErrUserNotFound:        http.StatusNotFound,
	ErrInvalidToken:        http.StatusUnauthorized,
	ErrUserAlreadyExists:   http.StatusBadRequest,
	ErrInvalidRequest:      http.StatusBadRequest,
	ErrMissingRequiredData: http.StatusBadRequest,
	ErrInvalidFormat:       http.StatusBadRequest,
	ErrAuthorizationDenied: http.StatusBadRequest,
	ErrMissingAuthCode:     http.StatusBadRequest,
	ErrInvalidState:        http.StatusBadRequest,
	ErrNoAdAccounts:        http.StatusNotFound,
	ErrNotFound:            http.StatusNotFound,
	ErrConflict:            http.StatusConflict,
	ErrInsufficientCredits: http.StatusPaymentRequired,
	ErrLedgerInconsistency: http.StatusInternalServerError,
	ErrInternalServer:      http.StatusInternalServerError,
	ErrDatabaseOperation:   http.StatusInternalServerError,
	ErrExternalService:     http.StatusBadGateway,
	ErrLaunchFailed:        http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado. O campo detail carrega
// a mensagem legível para o cliente.
type APIError struct {
	Code    string `json:"code"`
	Detail  string `json:"detail"`
	Details any    `json:"details,omitempty"`
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, detail string, details any) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Detail:  detail,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}
