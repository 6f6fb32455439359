package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// VehicleType - тип использования транспортного средства
type VehicleType string

const (
	VehicleTypeParticular VehicleType = "PARTICULAR"
	VehicleTypeComercial  VehicleType = "COMERCIAL"
)

// VehicleSubtype - подтип транспортного средства
type VehicleSubtype string

const (
	SubtypeLiviano     VehicleSubtype = "LIVIANO"
	SubtypePesado      VehicleSubtype = "PESADO"
	SubtypeMotocicleta VehicleSubtype = "MOTOCICLETA"
)

// Classification - пара {PARTICULAR, COMERCIAL} x {LIVIANO, PESADO, MOTOCICLETA}
// Создается только через NewClassification, поэтому всегда валидна
type Classification struct {
	typ     VehicleType
	subtype VehicleSubtype
}

// NewClassification проверяет тип и подтип и создает классификацию
func NewClassification(typ VehicleType, subtype VehicleSubtype) (Classification, error) {
	typ = VehicleType(strings.ToUpper(strings.TrimSpace(string(typ))))
	subtype = VehicleSubtype(strings.ToUpper(strings.TrimSpace(string(subtype))))

	switch typ {
	case VehicleTypeParticular, VehicleTypeComercial:
	default:
		return Classification{}, fmt.Errorf("%w: type %q", ErrInvalidClass, typ)
	}

	switch subtype {
	case SubtypeLiviano, SubtypePesado, SubtypeMotocicleta:
	default:
		return Classification{}, fmt.Errorf("%w: subtype %q", ErrInvalidClass, subtype)
	}

	return Classification{typ: typ, subtype: subtype}, nil
}

// MustClassification - вариант для констант и тестов
func MustClassification(typ VehicleType, subtype VehicleSubtype) Classification {
	c, err := NewClassification(typ, subtype)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Classification) Type() VehicleType       { return c.typ }
func (c Classification) Subtype() VehicleSubtype { return c.subtype }

func (c Classification) IsMotorcycle() bool { return c.subtype == SubtypeMotocicleta }
func (c Classification) IsHeavy() bool      { return c.subtype == SubtypePesado }
func (c Classification) IsCommercial() bool { return c.typ == VehicleTypeComercial }

// IsZero - классификация не задана
func (c Classification) IsZero() bool {
	return c.typ == "" && c.subtype == ""
}

func (c Classification) String() string {
	return string(c.typ) + "/" + string(c.subtype)
}

type classificationJSON struct {
	Type    VehicleType    `json:"type"`
	Subtype VehicleSubtype `json:"subtype"`
}

func (c Classification) MarshalJSON() ([]byte, error) {
	return json.Marshal(classificationJSON{Type: c.typ, Subtype: c.subtype})
}

func (c *Classification) UnmarshalJSON(data []byte) error {
	var raw classificationJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := NewClassification(raw.Type, raw.Subtype)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// VehicleRecord - зарегистрированный автомобиль и его владелец
// Placa уникальна на все время жизни системы, запись неизменяема после создания
type VehicleRecord struct {
	Plate          string         `json:"plate"`
	NationalID     string         `json:"national_id"`
	OwnerName      string         `json:"owner_name"`
	Classification Classification `json:"classification"`
	ModelYear      int            `json:"model_year"`
	AssessedValue  float64        `json:"assessed_value"`
	DisplacementCC int            `json:"displacement_cc"`
}

// VehicleLimits - настраиваемые границы для проверки записи
type VehicleLimits struct {
	FiscalYear int
	Assessed   AssessedValueRange
}

// Validate проверяет все поля записи в порядке ввода
func (v *VehicleRecord) Validate(limits VehicleLimits) error {
	if !ValidatePlate(v.Plate) {
		return ErrInvalidLicensePlate
	}
	if err := ValidateNationalID(v.NationalID); err != nil {
		return err
	}
	if err := ValidateOwnerName(v.OwnerName); err != nil {
		return err
	}
	if v.Classification.IsZero() {
		return ErrInvalidClass
	}
	if err := ValidateModelYear(v.ModelYear, limits.FiscalYear); err != nil {
		return err
	}
	if !limits.Assessed.Contains(v.AssessedValue) {
		return ErrInvalidAssessedValue
	}
	if !ValidateDisplacement(v.DisplacementCC) {
		return ErrInvalidDisplacement
	}
	return nil
}
