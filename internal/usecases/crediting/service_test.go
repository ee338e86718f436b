package crediting

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	paymentmocks "github.com/quickcampaigns/campaigns-api/infrastructure/integrator/payments/mocks"
	"github.com/quickcampaigns/campaigns-api/infrastructure/repository/mocks"
	"github.com/quickcampaigns/campaigns-api/internal/config"
	"github.com/quickcampaigns/campaigns-api/internal/domain"
)

func newCreditingService(t *testing.T) (*Service, *mocks.MockCreditRepository, *paymentmocks.MockCollector) {
	ctrl := gomock.NewController(t)

	creditRepo := mocks.NewMockCreditRepository(ctrl)
	collector := paymentmocks.NewMockCollector(ctrl)

	cfg := &config.Config{
		Credits: config.Credits{
			WelcomeBonus:        1,
			PricePerCreditCents: 500,
		},
	}

	service := NewService(creditRepo, collector, cfg).(*Service)
	return service, creditRepo, collector
}

// expectTransaction faz o mock de RunInTransaction executar o callback
// com uma transação nula, já que os métodos Tx também são mockados.
func expectTransaction(creditRepo *mocks.MockCreditRepository) {
	creditRepo.EXPECT().
		RunInTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(*sql.Tx) error) error {
			return fn(nil)
		})
}

func TestDebit(t *testing.T) {
	ctx := context.Background()

	t.Run("Debita e registra a transação de uso com amount negativo", func(t *testing.T) {
		service, creditRepo, _ := newCreditingService(t)

		expectTransaction(creditRepo)

		creditRepo.EXPECT().
			GetBalanceForUpdate(gomock.Any(), gomock.Any(), 42).
			Return(&domain.CreditBalance{ID: "bal1", UserID: 42, Balance: 3}, nil)

		creditRepo.EXPECT().
			UpdateBalanceTx(gomock.Any(), gomock.Any(), "bal1", 2).
			Return(nil)

		creditRepo.EXPECT().
			InsertTransactionTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sql.Tx, transaction *domain.CreditTransaction) error {
				assert.Equal(t, 42, transaction.UserID)
				assert.Equal(t, -1, transaction.Amount)
				assert.Equal(t, domain.TransactionTypeUsage, transaction.Type)
				assert.NotEmpty(t, transaction.ID)
				return nil
			})

		campaignID := "cmp1"
		err := service.Debit(ctx, 42, 1, &campaignID, "Lançamento da campanha X")
		assert.NoError(t, err)
	})

	t.Run("Saldo insuficiente não altera o saldo", func(t *testing.T) {
		service, creditRepo, _ := newCreditingService(t)

		expectTransaction(creditRepo)

		creditRepo.EXPECT().
			GetBalanceForUpdate(gomock.Any(), gomock.Any(), 42).
			Return(&domain.CreditBalance{ID: "bal1", UserID: 42, Balance: 0}, nil)

		err := service.Debit(ctx, 42, 1, nil, "Lançamento")
		assert.ErrorIs(t, err, ErrInsufficientCredits)
	})

	t.Run("Usuário sem registro de saldo é tratado como saldo zero", func(t *testing.T) {
		service, creditRepo, _ := newCreditingService(t)

		expectTransaction(creditRepo)

		creditRepo.EXPECT().
			GetBalanceForUpdate(gomock.Any(), gomock.Any(), 42).
			Return(nil, nil)

		err := service.Debit(ctx, 42, 1, nil, "Lançamento")
		assert.ErrorIs(t, err, ErrInsufficientCredits)
	})

	t.Run("Quantidade não positiva é rejeitada sem tocar o banco", func(t *testing.T) {
		service, _, _ := newCreditingService(t)

		err := service.Debit(ctx, 42, 0, nil, "Lançamento")
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestPurchase(t *testing.T) {
	ctx := context.Background()

	t.Run("Cobra o coletor e credita o saldo", func(t *testing.T) {
		service, creditRepo, collector := newCreditingService(t)

		collector.EXPECT().
			Collect(gomock.Any(), 42, 1000).
			Return("pay_abc", nil)

		expectTransaction(creditRepo)

		creditRepo.EXPECT().
			GetBalanceForUpdate(gomock.Any(), gomock.Any(), 42).
			Return(&domain.CreditBalance{ID: "bal1", UserID: 42, Balance: 1}, nil)

		creditRepo.EXPECT().
			UpdateBalanceTx(gomock.Any(), gomock.Any(), "bal1", 3).
			Return(nil)

		creditRepo.EXPECT().
			InsertTransactionTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		transaction, err := service.Purchase(ctx, 42, 2)
		assert.NoError(t, err)
		assert.Equal(t, 2, transaction.Amount)
		assert.Equal(t, domain.TransactionTypePurchase, transaction.Type)
		assert.NotNil(t, transaction.ExternalPaymentID)
		assert.Equal(t, "pay_abc", *transaction.ExternalPaymentID)
	})

	t.Run("Primeira compra cria o registro de saldo", func(t *testing.T) {
		service, creditRepo, collector := newCreditingService(t)

		collector.EXPECT().
			Collect(gomock.Any(), 42, 500).
			Return("pay_abc", nil)

		expectTransaction(creditRepo)

		creditRepo.EXPECT().
			GetBalanceForUpdate(gomock.Any(), gomock.Any(), 42).
			Return(nil, nil)

		creditRepo.EXPECT().
			CreateBalanceTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		creditRepo.EXPECT().
			UpdateBalanceTx(gomock.Any(), gomock.Any(), gomock.Any(), 1).
			Return(nil)

		creditRepo.EXPECT().
			InsertTransactionTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil)

		_, err := service.Purchase(ctx, 42, 1)
		assert.NoError(t, err)
	})

	t.Run("Compras repetidas geram cobranças e transações distintas", func(t *testing.T) {
		service, creditRepo, collector := newCreditingService(t)

		collector.EXPECT().
			Collect(gomock.Any(), 42, 500).
			Return("pay_1", nil)
		collector.EXPECT().
			Collect(gomock.Any(), 42, 500).
			Return("pay_2", nil)

		creditRepo.EXPECT().
			RunInTransaction(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, fn func(*sql.Tx) error) error {
				return fn(nil)
			}).
			Times(2)

		creditRepo.EXPECT().
			GetBalanceForUpdate(gomock.Any(), gomock.Any(), 42).
			Return(&domain.CreditBalance{ID: "bal1", UserID: 42, Balance: 0}, nil).
			Times(2)

		creditRepo.EXPECT().
			UpdateBalanceTx(gomock.Any(), gomock.Any(), "bal1", 1).
			Return(nil).
			Times(2)

		creditRepo.EXPECT().
			InsertTransactionTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil).
			Times(2)

		first, err := service.Purchase(ctx, 42, 1)
		assert.NoError(t, err)

		second, err := service.Purchase(ctx, 42, 1)
		assert.NoError(t, err)

		assert.NotEqual(t, *first.ExternalPaymentID, *second.ExternalPaymentID)
	})

	t.Run("Falha na cobrança não toca o livro-razão", func(t *testing.T) {
		service, _, collector := newCreditingService(t)

		collector.EXPECT().
			Collect(gomock.Any(), 42, 500).
			Return("", errors.New("gateway indisponível"))

		_, err := service.Purchase(ctx, 42, 1)
		assert.ErrorIs(t, err, ErrPaymentFailed)
	})

	t.Run("Quantidade não positiva é rejeitada", func(t *testing.T) {
		service, _, _ := newCreditingService(t)

		_, err := service.Purchase(ctx, 42, -1)
		assert.ErrorIs(t, err, ErrInvalidAmount)
	})
}

func TestGetOrCreateBalance(t *testing.T) {
	ctx := context.Background()

	t.Run("Saldo existente é retornado sem criar nada", func(t *testing.T) {
		service, creditRepo, _ := newCreditingService(t)

		creditRepo.EXPECT().
			GetBalance(gomock.Any(), 42).
			Return(&domain.CreditBalance{ID: "bal1", UserID: 42, Balance: 5}, nil)

		balance, err := service.GetOrCreateBalance(ctx, 42)
		assert.NoError(t, err)
		assert.Equal(t, 5, balance.Balance)
	})

	t.Run("Primeiro acesso cria o registro zerado", func(t *testing.T) {
		service, creditRepo, _ := newCreditingService(t)

		creditRepo.EXPECT().
			GetBalance(gomock.Any(), 42).
			Return(nil, nil)

		creditRepo.EXPECT().
			CreateBalance(gomock.Any(), gomock.Any()).
			Return(nil)

		creditRepo.EXPECT().
			GetBalance(gomock.Any(), 42).
			Return(&domain.CreditBalance{ID: "bal1", UserID: 42, Balance: 0}, nil)

		balance, err := service.GetOrCreateBalance(ctx, 42)
		assert.NoError(t, err)
		assert.Equal(t, 0, balance.Balance)
	})
}

func TestGrantBonus(t *testing.T) {
	ctx := context.Background()

	t.Run("Bônus credita e registra transação do tipo bonus", func(t *testing.T) {
		service, creditRepo, _ := newCreditingService(t)

		expectTransaction(creditRepo)

		creditRepo.EXPECT().
			GetBalanceForUpdate(gomock.Any(), gomock.Any(), 42).
			Return(&domain.CreditBalance{ID: "bal1", UserID: 42, Balance: 0}, nil)

		creditRepo.EXPECT().
			UpdateBalanceTx(gomock.Any(), gomock.Any(), "bal1", 1).
			Return(nil)

		creditRepo.EXPECT().
			InsertTransactionTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sql.Tx, transaction *domain.CreditTransaction) error {
				assert.Equal(t, domain.TransactionTypeBonus, transaction.Type)
				assert.Equal(t, 1, transaction.Amount)
				return nil
			})

		err := service.GrantBonus(ctx, 42, 1, "Bônus de boas-vindas")
		assert.NoError(t, err)
	})
}
