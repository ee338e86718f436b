package domain

import "time"

type CampaignObjective string

const (
	CampaignObjectiveWebsite CampaignObjective = "website"
	CampaignObjectiveLead    CampaignObjective = "lead"
	CampaignObjectiveTraffic CampaignObjective = "traffic"
)

func (o CampaignObjective) Valid() bool {
	switch o {
	case CampaignObjectiveWebsite, CampaignObjectiveLead, CampaignObjectiveTraffic:
		return true
	}
	return false
}

type CampaignStatus string

const (
	CampaignStatusDraft     CampaignStatus = "draft"
	CampaignStatusPending   CampaignStatus = "pending"
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusPaused    CampaignStatus = "paused"
	CampaignStatusCompleted CampaignStatus = "completed"
	CampaignStatusError     CampaignStatus = "error"
)

type Campaign struct {
	ID                 string            `json:"id"`
	UserID             int               `json:"user_id"`
	LinkedAccountID    *string           `json:"linked_account_id"`
	Name               string            `json:"name"`
	Objective          CampaignObjective `json:"objective"`
	Status             CampaignStatus    `json:"status"`
	Budget             float64           `json:"budget"`
	StartDate          time.Time         `json:"start_date"`
	EndDate            *time.Time        `json:"end_date"`
	TargetAudience     *string           `json:"target_audience"`
	ExternalCampaignID *string           `json:"external_campaign_id"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

type CreateCampaignRequest struct {
	Name            string  `json:"name"`
	Objective       string  `json:"objective"`
	Budget          float64 `json:"budget"`
	StartDate       string  `json:"start_date"`
	EndDate         *string `json:"end_date"`
	TargetAudience  *string `json:"target_audience"`
	LinkedAccountID *string `json:"linked_account_id"`
}

type UpdateCampaignRequest struct {
	ID              string   `json:"id"`
	Name            *string  `json:"name"`
	Objective       *string  `json:"objective"`
	Budget          *float64 `json:"budget"`
	StartDate       *string  `json:"start_date"`
	EndDate         *string  `json:"end_date"`
	TargetAudience  *string  `json:"target_audience"`
	LinkedAccountID *string  `json:"linked_account_id"`
}
