package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClassification(t *testing.T) {
	c, err := NewClassification("particular", " liviano ")
	require.NoError(t, err)
	assert.Equal(t, VehicleTypeParticular, c.Type())
	assert.Equal(t, SubtypeLiviano, c.Subtype())
	assert.False(t, c.IsMotorcycle())
	assert.False(t, c.IsCommercial())

	_, err = NewClassification("OFICIAL", SubtypeLiviano)
	assert.ErrorIs(t, err, ErrInvalidClass)

	_, err = NewClassification(VehicleTypeComercial, "BUS")
	assert.ErrorIs(t, err, ErrInvalidClass)
}

func TestClassification_JSON(t *testing.T) {
	var c Classification
	err := json.Unmarshal([]byte(`{"type":"COMERCIAL","subtype":"PESADO"}`), &c)
	require.NoError(t, err)
	assert.True(t, c.IsCommercial())
	assert.True(t, c.IsHeavy())

	err = json.Unmarshal([]byte(`{"type":"COMERCIAL","subtype":"BICICLETA"}`), &c)
	assert.ErrorIs(t, err, ErrInvalidClass)
}

func TestVoucher_IsExpired(t *testing.T) {
	issued := time.Date(2025, time.March, 1, 10, 30, 0, 0, time.Local)
	v := &Voucher{
		IssuedAt:  issued,
		ExpiresOn: TruncateToDay(issued).AddDate(0, 0, 30),
		Status:    VoucherPending,
	}

	tests := []struct {
		name    string
		now     time.Time
		expired bool
	}{
		{"день выдачи", issued, false},
		{"день окончания утром", v.ExpiresOn.Add(1 * time.Minute), false},
		{"день окончания вечером", v.ExpiresOn.Add(23*time.Hour + 59*time.Minute), false},
		{"следующий день", v.ExpiresOn.AddDate(0, 0, 1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expired, v.IsExpired(tt.now))
		})
	}
}

func TestVoucher_EffectiveStatus(t *testing.T) {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.Local)

	pending := &Voucher{ExpiresOn: TruncateToDay(now).AddDate(0, 0, -1), Status: VoucherPending}
	assert.Equal(t, VoucherExpired, pending.EffectiveStatus(now))
	assert.False(t, pending.IsActive(now))

	paid := &Voucher{ExpiresOn: TruncateToDay(now).AddDate(0, 0, -1), Status: VoucherPaid}
	assert.Equal(t, VoucherPaid, paid.EffectiveStatus(now))

	active := &Voucher{ExpiresOn: TruncateToDay(now), Status: VoucherPending}
	assert.True(t, active.IsActive(now))
}

func TestParseVoucherStatus(t *testing.T) {
	s, err := ParseVoucherStatus(1)
	require.NoError(t, err)
	assert.Equal(t, VoucherPaid, s)
	assert.Equal(t, "PAID", s.String())

	_, err = ParseVoucherStatus(7)
	assert.Error(t, err)
}

func TestNewCertificate(t *testing.T) {
	v := &VehicleRecord{
		Plate:          "ABC-1234",
		NationalID:     "1710034065",
		OwnerName:      "Juan Perez",
		Classification: MustClassification(VehicleTypeParticular, SubtypeLiviano),
		ModelYear:      2020,
		AssessedValue:  20000,
		DisplacementCC: 1600,
	}
	issued := time.Date(2024, time.February, 29, 15, 0, 0, 0, time.Local)

	cert := NewCertificate("CERT-ABC-1234-20240229-001", v, issued)

	assert.Equal(t, CertificateStatus, cert.Status)
	assert.Equal(t, v.Plate, cert.Plate)
	assert.Equal(t, 0, cert.IssuedOn.Hour())
	assert.Equal(t, 2025, cert.ValidUntil().Year())
}

func TestFeeInputs_Validate(t *testing.T) {
	assert.NoError(t, FeeInputs{}.Validate())
	assert.NoError(t, FeeInputs{HasFines: true, FinesTotal: 50}.Validate())
	assert.ErrorIs(t, FeeInputs{HasFines: true}.Validate(), ErrInvalidFines)
	assert.ErrorIs(t, FeeInputs{ArrearsMonths: -1}.Validate(), ErrInvalidArrears)
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "122.00", FormatAmount(122))
	assert.Equal(t, "0.10", Money(0.1).String())
	assert.Equal(t, "20.50", FormatAmount(20.5))
}

func TestNewVoucherReport(t *testing.T) {
	now := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.Local)
	today := TruncateToDay(now)

	vouchers := []*Voucher{
		{Total: 122, Status: VoucherPaid, ExpiresOn: today.AddDate(0, 0, -40)},
		{Total: 80.5, Status: VoucherPaid, ExpiresOn: today.AddDate(0, 0, 10)},
		{Total: 300, Status: VoucherPending, ExpiresOn: today},
		{Total: 150, Status: VoucherPending, ExpiresOn: today.AddDate(0, 0, -1)},
		{Total: 99, Status: VoucherExpired, ExpiresOn: today.AddDate(0, 0, -5)},
	}

	r := NewVoucherReport(vouchers, now)

	assert.Equal(t, 5, r.Total)
	assert.Equal(t, 2, r.Paid)
	assert.Equal(t, 1, r.Pending)
	assert.Equal(t, 2, r.Expired)
	assert.InDelta(t, 202.5, r.Collected, 0.001)
	assert.InDelta(t, 40.0, r.PaidPercent, 0.001)
	assert.True(t, r.GeneratedAt.Equal(now))

	empty := NewVoucherReport(nil, now)
	assert.Equal(t, 0, empty.Total)
	assert.Zero(t, empty.PaidPercent)
}
