package domain

// Parâmetros das operações de criação da Marketing API. Valores
// monetários já chegam em unidades menores (centavos); datas em ISO
// 8601. AccessToken e AccountID vazios fazem o cliente usar as
// credenciais de sistema configuradas.

type CreateCampaignParams struct {
	AccessToken string
	AccountID   string
	Name        string
	Objective   string
	Status      string
	DailyBudget int64
	StartTime   string
	EndTime     string
}

type CreateAdSetParams struct {
	AccessToken      string
	AccountID        string
	CampaignID       string
	Name             string
	OptimizationGoal string
	BidAmount        int64
	Targeting        map[string]interface{}
	Status           string
	StartTime        string
	EndTime          string
}

type CreateAdCreativeParams struct {
	AccessToken string
	AccountID   string
	Name        string
	PageID      string
	ImageURL    string
	Message     string
	Headline    string
	Description string
	LinkURL     string
}

type CreateAdParams struct {
	AccessToken string
	AccountID   string
	Name        string
	AdSetID     string
	CreativeID  string
	Status      string
}

// CampaignSnapshot é o estado remoto de uma campanha já criada.
type CampaignSnapshot struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Objective       string `json:"objective"`
	Status          string `json:"status"`
	EffectiveStatus string `json:"effective_status"`
}

// CreateResponse é o corpo retornado pelas operações de criação.
type CreateResponse struct {
	ID string `json:"id"`
}
