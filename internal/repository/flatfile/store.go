package flatfile

import (
	"path/filepath"

	"github.com/frontandrew/matricula/internal/pkg/metrics"
)

// Имена файлов реестров внутри каталога данных
const (
	VehiclesFile     = "vehiculos.txt"
	VouchersFile     = "comprobantes/comprobantes.txt"
	PaymentsFile     = "pagos/pagos.txt"
	InspectionsFile  = "revisiones.txt"
	CertificatesFile = "vehiculos_matriculados.txt"
)

// Store - набор реестров в одном каталоге.
// Каталог не должен использоваться несколькими процессами одновременно
type Store struct {
	Vehicles     *VehicleRepository
	Vouchers     *VoucherRepository
	Payments     *PaymentRepository
	Inspections  *InspectionRepository
	Certificates *CertificateRepository
}

// Open открывает все реестры в dataDir
func Open(dataDir string, m *metrics.Metrics) (*Store, error) {
	open := func(name, file string) (*Ledger, error) {
		return OpenLedger(name, filepath.Join(dataDir, file), m)
	}

	vehicles, err := open("vehicles", VehiclesFile)
	if err != nil {
		return nil, err
	}
	vouchers, err := open("vouchers", VouchersFile)
	if err != nil {
		return nil, err
	}
	payments, err := open("payments", PaymentsFile)
	if err != nil {
		return nil, err
	}
	inspections, err := open("inspections", InspectionsFile)
	if err != nil {
		return nil, err
	}
	certificates, err := open("certificates", CertificatesFile)
	if err != nil {
		return nil, err
	}

	return &Store{
		Vehicles:     NewVehicleRepository(vehicles),
		Vouchers:     NewVoucherRepository(vouchers),
		Payments:     NewPaymentRepository(payments),
		Inspections:  NewInspectionRepository(inspections),
		Certificates: NewCertificateRepository(certificates),
	}, nil
}
