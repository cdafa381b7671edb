package payment

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Method is the payment strategy contract. Variants are immutable value
// objects carrying only the data needed to describe themselves; anything
// sensitive is redacted at construction and never retained in full.
//
// Every variant currently reports unconditional success. Real gateways
// decline, time out and bounce; this core deliberately does not model that.
type Method interface {
	ProcessPayment(amount decimal.Decimal) bool
	Name() string
}

// DigitalWallet pays through a hosted wallet provider.
type DigitalWallet struct {
	provider string
}

func NewDigitalWallet(provider string) DigitalWallet {
	return DigitalWallet{provider: provider}
}

func (DigitalWallet) ProcessPayment(decimal.Decimal) bool { return true }

func (w DigitalWallet) Name() string {
	return fmt.Sprintf("Digital Wallet (%s)", w.provider)
}

// BankDebit pays by direct debit. Only the last four digits of the account
// number survive construction.
type BankDebit struct {
	last4 string
}

func NewBankDebit(accountNumber string) BankDebit {
	last4 := accountNumber
	if len(accountNumber) > 4 {
		last4 = accountNumber[len(accountNumber)-4:]
	}
	return BankDebit{last4: last4}
}

func (BankDebit) ProcessPayment(decimal.Decimal) bool { return true }

func (b BankDebit) Name() string {
	return fmt.Sprintf("Bank Debit (****%s)", b.last4)
}

// PayPal pays through a PayPal account identified by email.
type PayPal struct {
	email string
}

func NewPayPal(email string) PayPal {
	return PayPal{email: email}
}

func (PayPal) ProcessPayment(decimal.Decimal) bool { return true }

func (p PayPal) Name() string {
	return fmt.Sprintf("PayPal (%s)", p.email)
}
