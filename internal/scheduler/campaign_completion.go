package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/quickcampaigns/campaigns-api/infrastructure/repository"
	"github.com/quickcampaigns/campaigns-api/internal/config"
)

// CampaignCompletionService agenda a rotina que encerra campanhas
// ativas cuja data de término já passou.
type CampaignCompletionService struct {
	scheduler    *gocron.Scheduler
	cfg          *config.Config
	campaignRepo repository.CampaignRepository
	running      bool
	mutex        sync.Mutex
	lastRunAt    time.Time
}

func NewCampaignCompletionService(campaignRepo repository.CampaignRepository, cfg *config.Config) *CampaignCompletionService {
	return &CampaignCompletionService{
		scheduler:    gocron.NewScheduler(time.Local),
		cfg:          cfg,
		campaignRepo: campaignRepo,
	}
}

// Start inicia o agendador e registra a rotina de encerramento. O
// agendador para quando o contexto é cancelado.
func (s *CampaignCompletionService) Start(ctx context.Context) error {
	if !s.cfg.Completion.Enabled {
		logrus.Info("Encerramento automático de campanhas desabilitado por configuração")
		return nil
	}

	logrus.WithField("cron", s.cfg.Completion.CronSchedule).Info("Iniciando agendador de encerramento de campanhas")

	_, err := s.scheduler.Cron(s.cfg.Completion.CronSchedule).Do(func() {
		s.completeExpiredCampaigns(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar encerramento de campanhas: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de encerramento de campanhas")
		s.scheduler.Stop()
	}()

	return nil
}

// RunNow dispara o encerramento fora do agendamento. Usado pela rota
// administrativa de cron.
func (s *CampaignCompletionService) RunNow(ctx context.Context) (int64, error) {
	return s.campaignRepo.CompleteExpired(ctx, time.Now())
}

func (s *CampaignCompletionService) completeExpiredCampaigns(ctx context.Context) {
	s.mutex.Lock()
	if s.running {
		s.mutex.Unlock()
		logrus.Info("Encerramento de campanhas já em andamento, ignorando")
		return
	}
	s.running = true
	s.lastRunAt = time.Now()
	s.mutex.Unlock()

	defer func() {
		s.mutex.Lock()
		s.running = false
		s.mutex.Unlock()
	}()

	completed, err := s.campaignRepo.CompleteExpired(ctx, time.Now())
	if err != nil {
		logrus.WithError(err).Error("Erro ao encerrar campanhas expiradas")
		return
	}

	if completed > 0 {
		logrus.WithField("completed", completed).Info("Campanhas expiradas encerradas")
	}
}
