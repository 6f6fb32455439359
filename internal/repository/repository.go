package repository

import (
	"context"
	"time"

	"github.com/frontandrew/matricula/internal/domain"
)

// VehicleRepository - реестр зарегистрированных автомобилей
type VehicleRepository interface {
	// Create добавляет запись, ErrVehicleAlreadyExists если номер уже есть
	Create(ctx context.Context, vehicle *domain.VehicleRecord) error

	// Exists проверяет наличие номера в реестре
	Exists(ctx context.Context, plate string) (bool, error)

	// GetByPlate возвращает запись по номеру, ErrVehicleNotFound если ее нет
	GetByPlate(ctx context.Context, plate string) (*domain.VehicleRecord, error)

	// List возвращает все записи в порядке регистрации
	List(ctx context.Context) ([]*domain.VehicleRecord, error)
}

// VoucherRepository - реестр comprobantes
type VoucherRepository interface {
	// Create добавляет comprobante
	Create(ctx context.Context, voucher *domain.Voucher) error

	// GetByNumber возвращает comprobante по номеру
	GetByNumber(ctx context.Context, number string) (*domain.Voucher, error)

	// FindLatestPending возвращает последний comprobante со статусом PENDING.
	// Срок действия не проверяется
	FindLatestPending(ctx context.Context, plate string) (*domain.Voucher, error)

	// ListByPlate возвращает comprobantes автомобиля в порядке выдачи
	ListByPlate(ctx context.Context, plate string) ([]*domain.Voucher, error)

	// List возвращает весь реестр в порядке выдачи
	List(ctx context.Context) ([]*domain.Voucher, error)

	// MarkPaid меняет только статус на PAID, ErrVoucherNotFound если номера нет
	MarkPaid(ctx context.Context, number string) error

	// ExpireOverdue сохраняет EXPIRED для всех PENDING, чей срок истек до now
	ExpireOverdue(ctx context.Context, now time.Time) (int, error)
}

// PaymentRepository - реестр платежей
type PaymentRepository interface {
	// Create добавляет платеж
	Create(ctx context.Context, payment *domain.PaymentRecord) error

	// GetByVoucher возвращает платеж по номеру comprobante
	GetByVoucher(ctx context.Context, voucherNumber string) (*domain.PaymentRecord, error)

	// ExistsForPlate проверяет, есть ли хоть один платеж по номеру
	ExistsForPlate(ctx context.Context, plate string) (bool, error)

	// ListByPlate возвращает платежи автомобиля
	ListByPlate(ctx context.Context, plate string) ([]*domain.PaymentRecord, error)
}

// InspectionRepository - реестр технических проверок
type InspectionRepository interface {
	// Create добавляет запись без проверки на повтор
	Create(ctx context.Context, inspection *domain.InspectionRecord) error

	// HasApproved - есть ли хоть одна одобренная проверка (не обязательно последняя)
	HasApproved(ctx context.Context, plate string) (bool, error)

	// ListByPlate возвращает проверки в порядке записи
	ListByPlate(ctx context.Context, plate string) ([]*domain.InspectionRecord, error)
}

// CertificateRepository - реестр выданных сертификатов
type CertificateRepository interface {
	// Create добавляет сертификат
	Create(ctx context.Context, certificate *domain.CertificateRecord) error

	// ListByPlate возвращает сертификаты автомобиля в порядке выдачи
	ListByPlate(ctx context.Context, plate string) ([]*domain.CertificateRecord, error)

	// List возвращает все выданные сертификаты в порядке выдачи
	List(ctx context.Context) ([]*domain.CertificateRecord, error)
}
