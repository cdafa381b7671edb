package payment

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDigitalWallet(t *testing.T) {
	m := NewDigitalWallet("Apple Pay")

	assert.True(t, m.ProcessPayment(decimal.RequireFromString("10.00")))
	assert.Equal(t, "Digital Wallet (Apple Pay)", m.Name())
}

func TestBankDebit_RedactsAccountNumber(t *testing.T) {
	m := NewBankDebit("1234567890")

	assert.Equal(t, "Bank Debit (****7890)", m.Name())
	assert.NotContains(t, m.Name(), "1234567890", "the full account number must never surface")
	assert.True(t, m.ProcessPayment(decimal.RequireFromString("10.00")))
}

func TestBankDebit_ShortAccountNumber(t *testing.T) {
	m := NewBankDebit("42")

	assert.Equal(t, "Bank Debit (****42)", m.Name())
}

func TestPayPal(t *testing.T) {
	m := NewPayPal("a@b.com")

	assert.Equal(t, "PayPal (a@b.com)", m.Name())
	assert.True(t, m.ProcessPayment(decimal.RequireFromString("19.97")))
}
