package domain

import (
	"errors"
	"fmt"
)

// Категории ошибок. Каждая конкретная ошибка оборачивает свою категорию,
// поэтому errors.Is работает и по конкретной ошибке, и по категории.
var (
	ErrValidation = errors.New("validation error")
	ErrDuplicate  = errors.New("duplicate")
	ErrNotFound   = errors.New("not found")
	ErrStorage    = errors.New("storage error")
	ErrState      = errors.New("state error")
)

// Vehicle errors
var (
	ErrVehicleNotFound      = fmt.Errorf("%w: vehicle not found", ErrNotFound)
	ErrVehicleAlreadyExists = fmt.Errorf("%w: vehicle already registered", ErrDuplicate)
	ErrInvalidLicensePlate  = fmt.Errorf("%w: invalid license plate", ErrValidation)
	ErrInvalidOwnerName     = fmt.Errorf("%w: invalid owner name", ErrValidation)
	ErrInvalidClass         = fmt.Errorf("%w: invalid vehicle classification", ErrValidation)
	ErrInvalidModelYear     = fmt.Errorf("%w: model year out of range", ErrValidation)
	ErrInvalidAssessedValue = fmt.Errorf("%w: assessed value out of range", ErrValidation)
	ErrInvalidDisplacement  = fmt.Errorf("%w: engine displacement out of range", ErrValidation)
)

// National ID (cédula) errors
var (
	ErrNationalIDWrongLength = fmt.Errorf("%w: national id must have exactly 10 digits", ErrValidation)
	ErrNationalIDNonDigit    = fmt.Errorf("%w: national id must contain only digits", ErrValidation)
	ErrNationalIDProvince    = fmt.Errorf("%w: national id province code must be 01-24", ErrValidation)
	ErrNationalIDThirdDigit  = fmt.Errorf("%w: national id third digit must be lower than 6", ErrValidation)
	ErrNationalIDChecksum    = fmt.Errorf("%w: national id check digit mismatch", ErrValidation)
)

// Fee errors
var (
	ErrInvalidFines   = fmt.Errorf("%w: fines total must be greater than zero", ErrValidation)
	ErrInvalidArrears = fmt.Errorf("%w: arrears months cannot be negative", ErrValidation)
)

// Voucher errors
var (
	ErrVoucherNotFound  = fmt.Errorf("%w: voucher not found", ErrNotFound)
	ErrNoPendingVoucher = fmt.Errorf("%w: no pending voucher for plate", ErrNotFound)
	ErrVoucherExpired   = fmt.Errorf("%w: voucher expired", ErrState)
)

// Payment errors
var (
	ErrPaymentNotFound      = fmt.Errorf("%w: payment not found", ErrNotFound)
	ErrVoucherAlreadyPaid   = fmt.Errorf("%w: voucher already has a payment", ErrDuplicate)
	ErrInvalidPaymentMethod = fmt.Errorf("%w: invalid payment method", ErrValidation)
	ErrInvalidPayerName     = fmt.Errorf("%w: invalid payer name", ErrValidation)
	ErrInvalidReference     = fmt.Errorf("%w: payment reference contains reserved characters", ErrValidation)
)

// Inspection errors
var (
	ErrInspectionNotFound    = fmt.Errorf("%w: inspection not found", ErrNotFound)
	ErrInspectionNotApproved = fmt.Errorf("%w: no approved technical inspection", ErrState)
	ErrInvalidInspectionDate = fmt.Errorf("%w: invalid inspection date", ErrValidation)
)

// Certificate errors
var (
	ErrAlreadyMatriculated = fmt.Errorf("%w: vehicle already matriculated", ErrState)
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
	ErrInvalidRole  = fmt.Errorf("%w: invalid operator role", ErrValidation)
)

// StorageError оборачивает ошибку хранилища категорией ErrStorage
func StorageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}
