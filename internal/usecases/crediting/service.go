package crediting

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/quickcampaigns/campaigns-api/infrastructure/integrator/payments"
	"github.com/quickcampaigns/campaigns-api/infrastructure/repository"
	"github.com/quickcampaigns/campaigns-api/internal/config"
	"github.com/quickcampaigns/campaigns-api/internal/domain"
	"github.com/quickcampaigns/campaigns-api/pkg/utils"
)

// Crediter administra o saldo pré-pago e o livro-razão de créditos.
// Cada mutação de saldo registra uma transação na mesma unidade
// transacional, então saldo e razão nunca divergem.
type Crediter interface {
	GetOrCreateBalance(ctx context.Context, userID int) (*domain.CreditBalance, error)
	Purchase(ctx context.Context, userID, quantity int) (*domain.CreditTransaction, error)
	GrantBonus(ctx context.Context, userID, amount int, description string) error
	Debit(ctx context.Context, userID, amount int, campaignID *string, description string) error
	Refund(ctx context.Context, userID, amount int, campaignID *string, description string) error
	ListTransactions(ctx context.Context, userID int) ([]*domain.CreditTransaction, error)
}

type Service struct {
	creditRepo repository.CreditRepository
	collector  payments.Collector
	cfg        *config.Config
}

func NewService(creditRepo repository.CreditRepository, collector payments.Collector, cfg *config.Config) Crediter {
	return &Service{
		creditRepo: creditRepo,
		collector:  collector,
		cfg:        cfg,
	}
}

// GetOrCreateBalance retorna o saldo do usuário, criando o registro
// zerado no primeiro acesso. A criação usa ON CONFLICT DO NOTHING, então
// chamadas concorrentes convergem para o mesmo registro.
func (s *Service) GetOrCreateBalance(ctx context.Context, userID int) (*domain.CreditBalance, error) {
	balance, err := s.creditRepo.GetBalance(ctx, userID)
	if err != nil {
		return nil, err
	}

	if balance != nil {
		return balance, nil
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	if err := s.creditRepo.CreateBalance(ctx, &domain.CreditBalance{ID: id, UserID: userID}); err != nil {
		return nil, err
	}

	return s.creditRepo.GetBalance(ctx, userID)
}

// Purchase cobra a compra pelo coletor de pagamento e credita os
// créditos. Não é idempotente: repetir a chamada gera nova cobrança e
// nova transação no razão.
func (s *Service) Purchase(ctx context.Context, userID, quantity int) (*domain.CreditTransaction, error) {
	if quantity <= 0 {
		return nil, NewCreditError(ErrInvalidAmount, userID, fmt.Sprintf("quantidade %d", quantity))
	}

	amountCents := quantity * s.cfg.Credits.PricePerCreditCents

	paymentID, err := s.collector.Collect(ctx, userID, amountCents)
	if err != nil {
		return nil, NewCreditError(ErrPaymentFailed, userID, err.Error())
	}

	transaction := &domain.CreditTransaction{
		UserID:            userID,
		Amount:            quantity,
		Type:              domain.TransactionTypePurchase,
		Description:       fmt.Sprintf("Compra de %d crédito(s)", quantity),
		ExternalPaymentID: &paymentID,
	}

	if err := s.applyCredit(ctx, transaction); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"quantity":   quantity,
		"payment_id": paymentID,
	}).Info("Créditos comprados")

	return transaction, nil
}

// GrantBonus credita créditos promocionais sem cobrança.
func (s *Service) GrantBonus(ctx context.Context, userID, amount int, description string) error {
	if amount <= 0 {
		return NewCreditError(ErrInvalidAmount, userID, fmt.Sprintf("quantidade %d", amount))
	}

	return s.applyCredit(ctx, &domain.CreditTransaction{
		UserID:      userID,
		Amount:      amount,
		Type:        domain.TransactionTypeBonus,
		Description: description,
	})
}

// Refund devolve créditos debitados, referenciando a campanha de origem.
func (s *Service) Refund(ctx context.Context, userID, amount int, campaignID *string, description string) error {
	if amount <= 0 {
		return NewCreditError(ErrInvalidAmount, userID, fmt.Sprintf("quantidade %d", amount))
	}

	return s.applyCredit(ctx, &domain.CreditTransaction{
		UserID:      userID,
		Amount:      amount,
		Type:        domain.TransactionTypeRefund,
		Description: description,
		CampaignID:  campaignID,
	})
}

// Debit consome créditos do saldo. O saldo é lido com lock de linha
// dentro da transação, então débitos concorrentes serializam e o saldo
// nunca fica negativo.
func (s *Service) Debit(ctx context.Context, userID, amount int, campaignID *string, description string) error {
	if amount <= 0 {
		return NewCreditError(ErrInvalidAmount, userID, fmt.Sprintf("quantidade %d", amount))
	}

	return s.creditRepo.RunInTransaction(ctx, func(tx *sql.Tx) error {
		balance, err := s.creditRepo.GetBalanceForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}

		if balance == nil || balance.Balance < amount {
			return NewCreditError(ErrInsufficientCredits, userID, description)
		}

		if err := s.creditRepo.UpdateBalanceTx(ctx, tx, balance.ID, balance.Balance-amount); err != nil {
			return err
		}

		transactionID, err := utils.GenerateID()
		if err != nil {
			return err
		}

		return s.creditRepo.InsertTransactionTx(ctx, tx, &domain.CreditTransaction{
			ID:          transactionID,
			UserID:      userID,
			Amount:      -amount,
			Type:        domain.TransactionTypeUsage,
			Description: description,
			CampaignID:  campaignID,
		})
	})
}

func (s *Service) ListTransactions(ctx context.Context, userID int) ([]*domain.CreditTransaction, error) {
	return s.creditRepo.ListTransactions(ctx, userID)
}

// applyCredit soma o amount ao saldo e grava a transação na mesma
// unidade transacional, criando o saldo no caminho do primeiro crédito.
func (s *Service) applyCredit(ctx context.Context, transaction *domain.CreditTransaction) error {
	return s.creditRepo.RunInTransaction(ctx, func(tx *sql.Tx) error {
		balance, err := s.creditRepo.GetBalanceForUpdate(ctx, tx, transaction.UserID)
		if err != nil {
			return err
		}

		if balance == nil {
			balanceID, err := utils.GenerateID()
			if err != nil {
				return err
			}

			balance = &domain.CreditBalance{ID: balanceID, UserID: transaction.UserID}
			if err := s.creditRepo.CreateBalanceTx(ctx, tx, balance); err != nil {
				return err
			}
		}

		if err := s.creditRepo.UpdateBalanceTx(ctx, tx, balance.ID, balance.Balance+transaction.Amount); err != nil {
			return err
		}

		transactionID, err := utils.GenerateID()
		if err != nil {
			return err
		}

		transaction.ID = transactionID
		return s.creditRepo.InsertTransactionTx(ctx, tx, transaction)
	})
}
