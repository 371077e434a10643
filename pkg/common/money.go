package common

import (
	"go.uber.org/zap"

	"github.com/DevStar234/nautilus-trader/pkg/utility/fixed"
)

// Money is an amount in a currency, e.g. account equity.
type Money struct {
	Amount   fixed.Point `json:"amount"`
	Currency string      `json:"currency"`
}

func NewMoney(amount fixed.Point, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

func (m Money) String() string {
	return m.Amount.String() + " " + m.Currency
}

func (m Money) Fields() []zap.Field {
	return []zap.Field{
		zap.String("amount", m.Amount.String()),
		zap.String("currency", m.Currency),
	}
}
