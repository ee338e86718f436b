package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/quickcampaigns/campaigns-api/infrastructure/database/postgres"
	"github.com/quickcampaigns/campaigns-api/infrastructure/integrator/facebook"
	"github.com/quickcampaigns/campaigns-api/infrastructure/integrator/facebook/fbclient"
	"github.com/quickcampaigns/campaigns-api/infrastructure/integrator/payments"
	"github.com/quickcampaigns/campaigns-api/infrastructure/migration"
	"github.com/quickcampaigns/campaigns-api/infrastructure/repository"
	"github.com/quickcampaigns/campaigns-api/internal/api"
	"github.com/quickcampaigns/campaigns-api/internal/config"
	"github.com/quickcampaigns/campaigns-api/internal/scheduler"
	"github.com/quickcampaigns/campaigns-api/internal/usecases/authenticating"
	"github.com/quickcampaigns/campaigns-api/internal/usecases/campaigning"
	"github.com/quickcampaigns/campaigns-api/internal/usecases/connecting"
	"github.com/quickcampaigns/campaigns-api/internal/usecases/crediting"
	"github.com/quickcampaigns/campaigns-api/internal/usecases/launching"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if cfg.Database.MigrateOnStart {
		if err := migration.Migrate(cfg.Database.DSN); err != nil {
			logrus.WithError(err).Fatal("Erro ao aplicar migrações do banco de dados")
		}
	}

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	accountRepo := repository.NewLinkedAccountRepository(pgConn)
	campaignRepo := repository.NewCampaignRepository(pgConn)
	creativeRepo := repository.NewCreativeRepository(pgConn)
	creditRepo := repository.NewCreditRepository(pgConn)

	facebookClient := fbclient.NewClient(cfg)
	facebookIntegrator := facebook.NewFacebookService(cfg, facebookClient)
	paymentCollector := payments.NewConfirmedCollector()

	crediter := crediting.NewService(creditRepo, paymentCollector, cfg)
	authenticator := authenticating.NewService(userRepo, crediter, cfg)
	connector := connecting.NewService(accountRepo, facebookIntegrator, cfg)
	campaignManager := campaigning.NewService(campaignRepo, creativeRepo, accountRepo, cfg)
	launcher := launching.NewService(campaignRepo, accountRepo, facebookIntegrator, crediter)

	completionService := scheduler.NewCampaignCompletionService(campaignRepo, cfg)
	if err := completionService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de encerramento de campanhas")
	} else {
		logrus.Info("Agendador de encerramento de campanhas iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		connector,
		campaignManager,
		launcher,
		crediter,
		completionService,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
