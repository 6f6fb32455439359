package domain

import "time"

// CertificateStatus - единственный статус сертификата
const CertificateStatus = "MATRICULADO"

// CertificateRecord - итоговая запись о матрикуляции
type CertificateRecord struct {
	Number         string         `json:"number"`
	Plate          string         `json:"plate"`
	NationalID     string         `json:"national_id"`
	OwnerName      string         `json:"owner_name"`
	Classification Classification `json:"classification"`
	ModelYear      int            `json:"model_year"`
	AssessedValue  float64        `json:"assessed_value"`
	DisplacementCC int            `json:"displacement_cc"`
	IssuedOn       time.Time      `json:"issued_on"`
	Status         string         `json:"status"`
}

// ValidUntil - сертификат действует год с даты выдачи
func (c *CertificateRecord) ValidUntil() time.Time {
	return c.IssuedOn.AddDate(1, 0, 0)
}

// NewCertificate собирает сертификат из записи автомобиля
func NewCertificate(number string, v *VehicleRecord, issuedOn time.Time) *CertificateRecord {
	return &CertificateRecord{
		Number:         number,
		Plate:          v.Plate,
		NationalID:     v.NationalID,
		OwnerName:      v.OwnerName,
		Classification: v.Classification,
		ModelYear:      v.ModelYear,
		AssessedValue:  v.AssessedValue,
		DisplacementCC: v.DisplacementCC,
		IssuedOn:       TruncateToDay(issuedOn),
		Status:         CertificateStatus,
	}
}

// MatriculationState - позиция автомобиля в процессе матрикуляции
type MatriculationState string

const (
	StateUnregistered  MatriculationState = "UNREGISTERED"
	StateRegistered    MatriculationState = "REGISTERED"
	StateVoucherIssued MatriculationState = "VOUCHER_ISSUED"
	StatePaid          MatriculationState = "PAID"
	StateMatriculado   MatriculationState = "MATRICULADO"
)

// MatriculationStatus - сводка по автомобилю, собирается повторными запросами к реестрам
type MatriculationStatus struct {
	Plate              string             `json:"plate"`
	State              MatriculationState `json:"state"`
	ActiveVoucher      *Voucher           `json:"active_voucher,omitempty"`
	InspectionApproved bool               `json:"inspection_approved"`
	LatestInspection   *InspectionRecord  `json:"latest_inspection,omitempty"`
	Certificate        *CertificateRecord `json:"certificate,omitempty"`
	CanFinalize        bool               `json:"can_finalize"`
}
