package flatfile

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/frontandrew/matricula/internal/domain"
)

// Разделители полей в реестрах
const (
	commaSep = ","
	pipeSep  = "|"
)

// Количество полей в строке каждого реестра
const (
	vehicleFields     = 8
	voucherFields     = 9
	paymentFields     = 8
	inspectionFields  = 4
	certificateFields = 11
)

// Индексы полей, которые нужны без полного разбора строки
const (
	voucherNumberIdx = 1
	voucherStatusIdx = 8
)

func encodeVehicle(v *domain.VehicleRecord) string {
	return strings.Join([]string{
		v.Plate,
		v.NationalID,
		v.OwnerName,
		string(v.Classification.Type()),
		string(v.Classification.Subtype()),
		strconv.Itoa(v.ModelYear),
		domain.FormatAmount(v.AssessedValue),
		strconv.Itoa(v.DisplacementCC),
	}, commaSep)
}

func decodeVehicle(line string) (*domain.VehicleRecord, error) {
	f := strings.Split(line, commaSep)
	if len(f) != vehicleFields {
		return nil, fmt.Errorf("vehicle record: expected %d fields, got %d", vehicleFields, len(f))
	}

	class, err := domain.NewClassification(domain.VehicleType(f[3]), domain.VehicleSubtype(f[4]))
	if err != nil {
		return nil, err
	}
	year, err := strconv.Atoi(f[5])
	if err != nil {
		return nil, fmt.Errorf("vehicle record: model year: %w", err)
	}
	value, err := domain.ParseAmount(f[6])
	if err != nil {
		return nil, fmt.Errorf("vehicle record: assessed value: %w", err)
	}
	cc, err := strconv.Atoi(f[7])
	if err != nil {
		return nil, fmt.Errorf("vehicle record: displacement: %w", err)
	}

	return &domain.VehicleRecord{
		Plate:          f[0],
		NationalID:     f[1],
		OwnerName:      f[2],
		Classification: class,
		ModelYear:      year,
		AssessedValue:  value,
		DisplacementCC: cc,
	}, nil
}

// vehiclePlate читает только первое поле
func vehiclePlate(line string) string {
	plate, _, _ := strings.Cut(line, commaSep)
	return plate
}

func encodeVoucher(v *domain.Voucher) string {
	return strings.Join([]string{
		v.Plate,
		v.Number,
		v.OwnerName,
		string(v.Classification.Type()),
		string(v.Classification.Subtype()),
		v.IssuedAt.Format(domain.DateTimeLayout),
		v.ExpiresOn.Format(domain.DateLayout),
		domain.FormatAmount(v.Total),
		strconv.Itoa(int(v.Status)),
	}, pipeSep)
}

func decodeVoucher(line string) (*domain.Voucher, error) {
	f := strings.Split(line, pipeSep)
	if len(f) != voucherFields {
		return nil, fmt.Errorf("voucher record: expected %d fields, got %d", voucherFields, len(f))
	}

	class, err := domain.NewClassification(domain.VehicleType(f[3]), domain.VehicleSubtype(f[4]))
	if err != nil {
		return nil, err
	}
	issued, err := domain.ParseDate(f[5], time.Local)
	if err != nil {
		return nil, fmt.Errorf("voucher record: issue date: %w", err)
	}
	expires, err := domain.ParseDate(f[6], time.Local)
	if err != nil {
		return nil, fmt.Errorf("voucher record: expiry date: %w", err)
	}
	total, err := domain.ParseAmount(f[7])
	if err != nil {
		return nil, fmt.Errorf("voucher record: total: %w", err)
	}
	code, err := strconv.Atoi(f[8])
	if err != nil {
		return nil, fmt.Errorf("voucher record: status: %w", err)
	}
	status, err := domain.ParseVoucherStatus(code)
	if err != nil {
		return nil, err
	}

	return &domain.Voucher{
		Number:         f[1],
		Plate:          f[0],
		OwnerName:      f[2],
		Classification: class,
		IssuedAt:       issued,
		ExpiresOn:      expires,
		Total:          total,
		Status:         status,
	}, nil
}

// withVoucherStatus меняет только поле статуса, остальные поля остаются как были
func withVoucherStatus(line string, status domain.VoucherStatus) string {
	f := strings.Split(line, pipeSep)
	f[voucherStatusIdx] = strconv.Itoa(int(status))
	return strings.Join(f, pipeSep)
}

func encodePayment(p *domain.PaymentRecord) string {
	return strings.Join([]string{
		p.VoucherNumber,
		p.Plate,
		p.PaidAt.Format(domain.DateTimeLayout),
		domain.FormatAmount(p.Amount),
		strconv.Itoa(int(p.Method)),
		p.Reference,
		p.PayerID,
		p.PayerName,
	}, pipeSep)
}

func decodePayment(line string) (*domain.PaymentRecord, error) {
	f := strings.Split(line, pipeSep)
	if len(f) != paymentFields {
		return nil, fmt.Errorf("payment record: expected %d fields, got %d", paymentFields, len(f))
	}

	paid, err := domain.ParseDate(f[2], time.Local)
	if err != nil {
		return nil, fmt.Errorf("payment record: date: %w", err)
	}
	amount, err := domain.ParseAmount(f[3])
	if err != nil {
		return nil, fmt.Errorf("payment record: amount: %w", err)
	}
	method, err := strconv.Atoi(f[4])
	if err != nil {
		return nil, fmt.Errorf("payment record: method: %w", err)
	}

	return &domain.PaymentRecord{
		VoucherNumber: f[0],
		Plate:         f[1],
		PaidAt:        paid,
		Amount:        amount,
		Method:        domain.PaymentMethod(method),
		Reference:     f[5],
		PayerID:       f[6],
		PayerName:     f[7],
	}, nil
}

func encodeInspection(i *domain.InspectionRecord) string {
	approved := "0"
	if i.Approved {
		approved = "1"
	}
	return strings.Join([]string{
		i.Plate,
		i.InspectedOn.Format(domain.DateLayout),
		approved,
		singleLine(i.Observations),
	}, commaSep)
}

// Наблюдения - последнее поле и могут содержать запятые
func decodeInspection(line string) (*domain.InspectionRecord, error) {
	f := strings.SplitN(line, commaSep, inspectionFields)
	if len(f) != inspectionFields {
		return nil, fmt.Errorf("inspection record: expected %d fields, got %d", inspectionFields, len(f))
	}

	date, err := domain.ParseDate(f[1], time.Local)
	if err != nil {
		return nil, fmt.Errorf("inspection record: date: %w", err)
	}

	var approved bool
	switch f[2] {
	case "1":
		approved = true
	case "0":
	default:
		return nil, fmt.Errorf("inspection record: approved flag %q", f[2])
	}

	return &domain.InspectionRecord{
		Plate:        f[0],
		InspectedOn:  date,
		Approved:     approved,
		Observations: f[3],
	}, nil
}

func encodeCertificate(c *domain.CertificateRecord) string {
	return strings.Join([]string{
		c.Number,
		c.Plate,
		c.NationalID,
		c.OwnerName,
		string(c.Classification.Type()),
		strconv.Itoa(c.ModelYear),
		domain.FormatAmount(c.AssessedValue),
		strconv.Itoa(c.DisplacementCC),
		string(c.Classification.Subtype()),
		c.IssuedOn.Format(domain.DateLayout),
		c.Status,
	}, pipeSep)
}

func decodeCertificate(line string) (*domain.CertificateRecord, error) {
	f := strings.Split(line, pipeSep)
	if len(f) != certificateFields {
		return nil, fmt.Errorf("certificate record: expected %d fields, got %d", certificateFields, len(f))
	}

	class, err := domain.NewClassification(domain.VehicleType(f[4]), domain.VehicleSubtype(f[8]))
	if err != nil {
		return nil, err
	}
	year, err := strconv.Atoi(f[5])
	if err != nil {
		return nil, fmt.Errorf("certificate record: model year: %w", err)
	}
	value, err := domain.ParseAmount(f[6])
	if err != nil {
		return nil, fmt.Errorf("certificate record: assessed value: %w", err)
	}
	cc, err := strconv.Atoi(f[7])
	if err != nil {
		return nil, fmt.Errorf("certificate record: displacement: %w", err)
	}
	issued, err := domain.ParseDate(f[9], time.Local)
	if err != nil {
		return nil, fmt.Errorf("certificate record: issue date: %w", err)
	}

	return &domain.CertificateRecord{
		Number:         f[0],
		Plate:          f[1],
		NationalID:     f[2],
		OwnerName:      f[3],
		Classification: class,
		ModelYear:      year,
		AssessedValue:  value,
		DisplacementCC: cc,
		IssuedOn:       issued,
		Status:         f[10],
	}, nil
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
