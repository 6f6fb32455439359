package domain

import (
	"fmt"
	"time"
)

// VoucherStatus - статус comprobante, в реестре хранится числом
type VoucherStatus int

const (
	VoucherPending VoucherStatus = 0
	VoucherPaid    VoucherStatus = 1
	VoucherExpired VoucherStatus = 2
)

func (s VoucherStatus) String() string {
	switch s {
	case VoucherPending:
		return "PENDING"
	case VoucherPaid:
		return "PAID"
	case VoucherExpired:
		return "EXPIRED"
	default:
		return fmt.Sprintf("UNKNOWN(%d)", int(s))
	}
}

// ParseVoucherStatus проверяет код статуса из реестра
func ParseVoucherStatus(code int) (VoucherStatus, error) {
	s := VoucherStatus(code)
	switch s {
	case VoucherPending, VoucherPaid, VoucherExpired:
		return s, nil
	}
	return 0, fmt.Errorf("unknown voucher status %d", code)
}

func (s VoucherStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Voucher - comprobante de pago
type Voucher struct {
	Number         string         `json:"number"`
	Plate          string         `json:"plate"`
	OwnerName      string         `json:"owner_name"`
	Classification Classification `json:"classification"`
	IssuedAt       time.Time      `json:"issued_at"`
	ExpiresOn      time.Time      `json:"expires_on"`
	Total          float64        `json:"total"`
	Status         VoucherStatus  `json:"status"`
}

// IsExpired - срок истек, если текущий день строго позже дня окончания.
// В сам день окончания comprobante еще действителен
func (v *Voucher) IsExpired(now time.Time) bool {
	return DayBefore(v.ExpiresOn, now)
}

// EffectiveStatus возвращает EXPIRED для неоплаченного просроченного comprobante
func (v *Voucher) EffectiveStatus(now time.Time) VoucherStatus {
	if v.Status == VoucherPending && v.IsExpired(now) {
		return VoucherExpired
	}
	return v.Status
}

// IsActive - PENDING и не просрочен
func (v *Voucher) IsActive(now time.Time) bool {
	return v.EffectiveStatus(now) == VoucherPending
}

// VoucherReport - сводка по реестру comprobantes на момент GeneratedAt
type VoucherReport struct {
	GeneratedAt time.Time `json:"generated_at"`
	Total       int       `json:"total"`
	Paid        int       `json:"paid"`
	Pending     int       `json:"pending"`
	Expired     int       `json:"expired"`
	Collected   float64   `json:"collected"`
	PaidPercent float64   `json:"paid_percent"`
}

// NewVoucherReport считает comprobantes по действующему статусу.
// Собранная сумма - итог только оплаченных
func NewVoucherReport(vouchers []*Voucher, now time.Time) *VoucherReport {
	r := &VoucherReport{GeneratedAt: now, Total: len(vouchers)}

	for _, v := range vouchers {
		switch v.EffectiveStatus(now) {
		case VoucherPaid:
			r.Paid++
			r.Collected += v.Total
		case VoucherPending:
			r.Pending++
		case VoucherExpired:
			r.Expired++
		}
	}

	if r.Total > 0 {
		r.PaidPercent = float64(r.Paid) / float64(r.Total) * 100
	}
	return r
}
