package domain

import "time"

// Creative é um arquivo de mídia anexado a uma campanha. O arquivo em si
// fica no armazenamento local; aqui guardamos apenas os metadados e o
// caminho do arquivo salvo.
type Creative struct {
	ID         string    `json:"id"`
	CampaignID string    `json:"campaign_id"`
	FilePath   string    `json:"-"`
	FileType   string    `json:"file_type"`
	FileName   string    `json:"file_name"`
	FileSize   int64     `json:"file_size"`
	CreatedAt  time.Time `json:"created_at"`
}
