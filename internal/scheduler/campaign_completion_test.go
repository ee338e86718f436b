package scheduler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/quickcampaigns/campaigns-api/infrastructure/repository/mocks"
	"github.com/quickcampaigns/campaigns-api/internal/config"
)

func TestRunNow(t *testing.T) {
	ctrl := gomock.NewController(t)

	campaignRepo := mocks.NewMockCampaignRepository(ctrl)
	service := NewCampaignCompletionService(campaignRepo, &config.Config{})

	campaignRepo.EXPECT().
		CompleteExpired(gomock.Any(), gomock.Any()).
		Return(int64(3), nil)

	completed, err := service.RunNow(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(3), completed)
}

func TestStartDisabledByConfig(t *testing.T) {
	ctrl := gomock.NewController(t)

	campaignRepo := mocks.NewMockCampaignRepository(ctrl)
	service := NewCampaignCompletionService(campaignRepo, &config.Config{
		Completion: config.Completion{Enabled: false},
	})

	err := service.Start(context.Background())
	assert.NoError(t, err)
}
