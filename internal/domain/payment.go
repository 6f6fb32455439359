package domain

import (
	"fmt"
	"time"
)

// PaymentMethod - способ оплаты, в реестре хранится числом
type PaymentMethod int

const (
	PaymentCash     PaymentMethod = 1
	PaymentCard     PaymentMethod = 2
	PaymentTransfer PaymentMethod = 3
)

// CashReference - референс для оплаты наличными
const CashReference = "EFECTIVO"

func (m PaymentMethod) String() string {
	switch m {
	case PaymentCash:
		return "EFECTIVO"
	case PaymentCard:
		return "TARJETA"
	case PaymentTransfer:
		return "TRANSFERENCIA"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(m))
	}
}

// Validate проверяет код способа оплаты
func (m PaymentMethod) Validate() error {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return nil
	}
	return ErrInvalidPaymentMethod
}

// PaymentRecord - оплата comprobante. Создается один раз на comprobante
type PaymentRecord struct {
	VoucherNumber string        `json:"voucher_number"`
	Plate         string        `json:"plate"`
	PaidAt        time.Time     `json:"paid_at"`
	Amount        float64       `json:"amount"`
	Method        PaymentMethod `json:"method"`
	Reference     string        `json:"reference"`
	PayerID       string        `json:"payer_id"`
	PayerName     string        `json:"payer_name"`
}
