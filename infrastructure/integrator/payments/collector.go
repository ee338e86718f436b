package payments

import (
	"context"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Collector confirma a cobrança de uma compra de créditos e retorna o
// identificador do pagamento no provedor.
type Collector interface {
	Collect(ctx context.Context, userID int, amountCents int) (string, error)
}

// confirmedCollector aprova toda cobrança imediatamente. É o coletor
// usado enquanto não há gateway de pagamento integrado; o ID retornado
// segue para o livro-razão como referência externa.
type confirmedCollector struct{}

func NewConfirmedCollector() Collector {
	return &confirmedCollector{}
}

func (c *confirmedCollector) Collect(ctx context.Context, userID int, amountCents int) (string, error) {
	paymentID := "pay_" + uuid.NewString()

	logrus.WithFields(logrus.Fields{
		"user_id":      userID,
		"amount_cents": amountCents,
		"payment_id":   paymentID,
	}).Info("Pagamento confirmado pelo coletor interno")

	return paymentID, nil
}
