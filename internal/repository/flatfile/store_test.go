package flatfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type StoreSuite struct {
	suite.Suite
	dir   string
	store *Store
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.dir = s.T().TempDir()
	store, err := Open(s.dir, nil)
	s.Require().NoError(err)
	s.store = store
	s.ctx = context.Background()
}

func testVehicle(plate string) *domain.VehicleRecord {
	return &domain.VehicleRecord{
		Plate:          plate,
		NationalID:     "1710034065",
		OwnerName:      "Juan Perez",
		Classification: domain.MustClassification(domain.VehicleTypeParticular, domain.SubtypeLiviano),
		ModelYear:      2020,
		AssessedValue:  20000,
		DisplacementCC: 1600,
	}
}

func testVoucher(plate, number string, issued time.Time) *domain.Voucher {
	return &domain.Voucher{
		Number:         number,
		Plate:          plate,
		OwnerName:      "Juan Perez",
		Classification: domain.MustClassification(domain.VehicleTypeParticular, domain.SubtypeLiviano),
		IssuedAt:       issued,
		ExpiresOn:      domain.TruncateToDay(issued).AddDate(0, 0, 30),
		Total:          122,
		Status:         domain.VoucherPending,
	}
}

func (s *StoreSuite) TestVehicleRoundTrip() {
	v := testVehicle("ABC-1234")
	v.AssessedValue = 31234.5

	s.Require().NoError(s.store.Vehicles.Create(s.ctx, v))

	got, err := s.store.Vehicles.GetByPlate(s.ctx, "ABC-1234")
	s.Require().NoError(err)
	s.Equal(v, got)

	exists, err := s.store.Vehicles.Exists(s.ctx, "ABC-1234")
	s.Require().NoError(err)
	s.True(exists)

	raw, err := os.ReadFile(filepath.Join(s.dir, VehiclesFile))
	s.Require().NoError(err)
	s.Equal("ABC-1234,1710034065,Juan Perez,PARTICULAR,LIVIANO,2020,31234.50,1600\n", string(raw))
}

func (s *StoreSuite) TestVehicleDuplicate() {
	s.Require().NoError(s.store.Vehicles.Create(s.ctx, testVehicle("ABC-1234")))

	err := s.store.Vehicles.Create(s.ctx, testVehicle("ABC-1234"))
	s.ErrorIs(err, domain.ErrVehicleAlreadyExists)
	s.ErrorIs(err, domain.ErrDuplicate)

	all, err := s.store.Vehicles.List(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 1)
}

func (s *StoreSuite) TestVehicleNotFound() {
	_, err := s.store.Vehicles.GetByPlate(s.ctx, "ZZZ-9999")
	s.ErrorIs(err, domain.ErrVehicleNotFound)

	exists, err := s.store.Vehicles.Exists(s.ctx, "ZZZ-9999")
	s.Require().NoError(err)
	s.False(exists)
}

func (s *StoreSuite) TestVoucherLifecycle() {
	issued := time.Date(2025, time.March, 1, 10, 30, 0, 0, time.Local)
	first := testVoucher("ABC-1234", "MAT-ABC-1234-20250301-001", issued)
	second := testVoucher("ABC-1234", "MAT-ABC-1234-20250301-002", issued)
	other := testVoucher("XYZ-0001", "MAT-XYZ-0001-20250301-003", issued)

	for _, v := range []*domain.Voucher{first, second, other} {
		s.Require().NoError(s.store.Vouchers.Create(s.ctx, v))
	}

	active, err := s.store.Vouchers.FindLatestPending(s.ctx, "ABC-1234")
	s.Require().NoError(err)
	s.Equal(second.Number, active.Number)
	s.True(issued.Equal(active.IssuedAt))
	s.True(first.ExpiresOn.Equal(active.ExpiresOn))

	s.Require().NoError(s.store.Vouchers.MarkPaid(s.ctx, second.Number))

	active, err = s.store.Vouchers.FindLatestPending(s.ctx, "ABC-1234")
	s.Require().NoError(err)
	s.Equal(first.Number, active.Number)

	paid, err := s.store.Vouchers.GetByNumber(s.ctx, second.Number)
	s.Require().NoError(err)
	s.Equal(domain.VoucherPaid, paid.Status)
	s.Equal(second.Total, paid.Total)

	list, err := s.store.Vouchers.ListByPlate(s.ctx, "ABC-1234")
	s.Require().NoError(err)
	s.Len(list, 2)

	all, err := s.store.Vouchers.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 3)
	s.Equal(other.Number, all[2].Number)

	raw, err := os.ReadFile(filepath.Join(s.dir, VouchersFile))
	s.Require().NoError(err)
	s.Contains(string(raw), "ABC-1234|MAT-ABC-1234-20250301-002|Juan Perez|PARTICULAR|LIVIANO|01/03/2025 10:30|31/03/2025|122.00|1\n")
}

func (s *StoreSuite) TestVoucherMarkPaidSameNumber() {
	issued := time.Date(2025, time.March, 1, 10, 30, 0, 0, time.Local)
	number := "MAT-ABC-1234-20250301-001"
	s.Require().NoError(s.store.Vouchers.Create(s.ctx, testVoucher("ABC-1234", number, issued)))
	s.Require().NoError(s.store.Vouchers.Create(s.ctx, testVoucher("ABC-1234", number, issued.Add(time.Hour))))

	// Совпавший номер меняет статус у всех строк
	s.Require().NoError(s.store.Vouchers.MarkPaid(s.ctx, number))

	list, err := s.store.Vouchers.ListByPlate(s.ctx, "ABC-1234")
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	for _, v := range list {
		s.Equal(domain.VoucherPaid, v.Status)
	}
}

func (s *StoreSuite) TestVoucherMarkPaidNotFound() {
	err := s.store.Vouchers.MarkPaid(s.ctx, "MAT-NOPE-20250101-000")
	s.ErrorIs(err, domain.ErrVoucherNotFound)
}

func (s *StoreSuite) TestVoucherNoPending() {
	_, err := s.store.Vouchers.FindLatestPending(s.ctx, "ABC-1234")
	s.ErrorIs(err, domain.ErrNoPendingVoucher)
	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *StoreSuite) TestExpireOverdue() {
	issued := time.Date(2025, time.March, 1, 10, 30, 0, 0, time.Local)
	old := testVoucher("ABC-1234", "MAT-ABC-1234-20250301-001", issued)
	fresh := testVoucher("XYZ-0001", "MAT-XYZ-0001-20250320-002", issued.AddDate(0, 0, 19))
	s.Require().NoError(s.store.Vouchers.Create(s.ctx, old))
	s.Require().NoError(s.store.Vouchers.Create(s.ctx, fresh))

	// 01/04 - на следующий день после окончания первого comprobante
	n, err := s.store.Vouchers.ExpireOverdue(s.ctx, time.Date(2025, time.April, 1, 9, 0, 0, 0, time.Local))
	s.Require().NoError(err)
	s.Equal(1, n)

	got, err := s.store.Vouchers.GetByNumber(s.ctx, old.Number)
	s.Require().NoError(err)
	s.Equal(domain.VoucherExpired, got.Status)

	got, err = s.store.Vouchers.GetByNumber(s.ctx, fresh.Number)
	s.Require().NoError(err)
	s.Equal(domain.VoucherPending, got.Status)
}

func (s *StoreSuite) TestPayments() {
	paidAt := time.Date(2025, time.March, 2, 11, 15, 0, 0, time.Local)
	p := &domain.PaymentRecord{
		VoucherNumber: "MAT-ABC-1234-20250301-001",
		Plate:         "ABC-1234",
		PaidAt:        paidAt,
		Amount:        122,
		Method:        domain.PaymentCash,
		Reference:     domain.CashReference,
		PayerID:       "1710034065",
		PayerName:     "Juan Perez",
	}

	exists, err := s.store.Payments.ExistsForPlate(s.ctx, "ABC-1234")
	s.Require().NoError(err)
	s.False(exists)

	s.Require().NoError(s.store.Payments.Create(s.ctx, p))

	exists, err = s.store.Payments.ExistsForPlate(s.ctx, "ABC-1234")
	s.Require().NoError(err)
	s.True(exists)

	got, err := s.store.Payments.GetByVoucher(s.ctx, p.VoucherNumber)
	s.Require().NoError(err)
	s.Equal(p, got)

	_, err = s.store.Payments.GetByVoucher(s.ctx, "MAT-OTHER")
	s.ErrorIs(err, domain.ErrPaymentNotFound)

	second := *p
	second.Reference = "TRX-2"
	s.ErrorIs(s.store.Payments.Create(s.ctx, &second), domain.ErrVoucherAlreadyPaid)

	list, err := s.store.Payments.ListByPlate(s.ctx, "ABC-1234")
	s.Require().NoError(err)
	s.Len(list, 1)
}

func (s *StoreSuite) TestInspectionsAnyApproved() {
	day := time.Date(2025, time.March, 3, 0, 0, 0, 0, time.Local)

	s.Require().NoError(s.store.Inspections.Create(s.ctx, &domain.InspectionRecord{
		Plate: "ABC-1234", InspectedOn: day, Approved: true, Observations: "Frenos, luces y llantas OK",
	}))
	s.Require().NoError(s.store.Inspections.Create(s.ctx, &domain.InspectionRecord{
		Plate: "ABC-1234", InspectedOn: day.AddDate(0, 0, 1), Approved: false, Observations: "linea 1\nlinea 2",
	}))

	approved, err := s.store.Inspections.HasApproved(s.ctx, "ABC-1234")
	s.Require().NoError(err)
	s.True(approved)

	list, err := s.store.Inspections.ListByPlate(s.ctx, "ABC-1234")
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal("Frenos, luces y llantas OK", list[0].Observations)
	s.Equal("linea 1 linea 2", list[1].Observations)
	s.False(list[1].Approved)

	approved, err = s.store.Inspections.HasApproved(s.ctx, "XYZ-0001")
	s.Require().NoError(err)
	s.False(approved)
}

func (s *StoreSuite) TestCertificates() {
	cert := domain.NewCertificate("CERT-ABC-1234-20250305-042", testVehicle("ABC-1234"),
		time.Date(2025, time.March, 5, 16, 0, 0, 0, time.Local))

	s.Require().NoError(s.store.Certificates.Create(s.ctx, cert))

	other := domain.NewCertificate("CERT-XYZ-0001-20250306-007", testVehicle("XYZ-0001"),
		time.Date(2025, time.March, 6, 9, 0, 0, 0, time.Local))
	s.Require().NoError(s.store.Certificates.Create(s.ctx, other))

	list, err := s.store.Certificates.ListByPlate(s.ctx, "ABC-1234")
	s.Require().NoError(err)
	s.Require().Len(list, 1)
	s.Equal(cert, list[0])

	all, err := s.store.Certificates.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(all, 2)
	s.Equal(cert.Number, all[0].Number)
	s.Equal(other.Number, all[1].Number)

	raw, err := os.ReadFile(filepath.Join(s.dir, CertificatesFile))
	s.Require().NoError(err)
	s.Equal("CERT-ABC-1234-20250305-042|ABC-1234|1710034065|Juan Perez|PARTICULAR|2020|20000.00|1600|LIVIANO|05/03/2025|MATRICULADO\n"+
		"CERT-XYZ-0001-20250306-007|XYZ-0001|1710034065|Juan Perez|PARTICULAR|2020|20000.00|1600|LIVIANO|06/03/2025|MATRICULADO\n", string(raw))
}

func TestCorruptLinesAreSkipped(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir, nil)
	require.NoError(t, err)

	path := filepath.Join(dir, VehiclesFile)
	content := "garbage\nABC-1234,1710034065,Juan Perez,PARTICULAR,LIVIANO,2020,20000.00,1600\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	list, err := store.Vehicles.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "ABC-1234", list[0].Plate)
}
