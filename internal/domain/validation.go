package domain

import (
	"strings"
	"unicode"
)

const (
	MinDisplacementCC = 50
	MaxDisplacementCC = 8000
	MinModelYear      = 1990

	// Эталонные границы avalúo
	DefaultMinAssessedValue = 500.00
	DefaultMaxAssessedValue = 250000.00

	minOwnerNameLen = 3
)

// Весовые коэффициенты модуля 10 для первых девяти цифр cédula
var nationalIDWeights = [9]int{2, 1, 2, 1, 2, 1, 2, 1, 2}

// NormalizePlate убирает пробелы по краям и приводит номер к верхнему регистру
// ValidatePlate сам ничего не нормализует
func NormalizePlate(plate string) string {
	return strings.ToUpper(strings.TrimSpace(plate))
}

// ValidatePlate проверяет формат LLL-DDDD (3 заглавные латинские буквы, дефис, 4 цифры)
func ValidatePlate(plate string) bool {
	if len(plate) != 8 {
		return false
	}
	for i := 0; i < 3; i++ {
		if plate[i] < 'A' || plate[i] > 'Z' {
			return false
		}
	}
	if plate[3] != '-' {
		return false
	}
	for i := 4; i < 8; i++ {
		if plate[i] < '0' || plate[i] > '9' {
			return false
		}
	}
	return true
}

// ValidateNationalID проверяет эквадорскую cédula и возвращает первую нарушенную причину
func ValidateNationalID(id string) error {
	if len(id) != 10 {
		return ErrNationalIDWrongLength
	}

	var digits [10]int
	for i := 0; i < 10; i++ {
		if id[i] < '0' || id[i] > '9' {
			return ErrNationalIDNonDigit
		}
		digits[i] = int(id[i] - '0')
	}

	province := digits[0]*10 + digits[1]
	if province < 1 || province > 24 {
		return ErrNationalIDProvince
	}

	if digits[2] >= 6 {
		return ErrNationalIDThirdDigit
	}

	sum := 0
	for i, weight := range nationalIDWeights {
		product := digits[i] * weight
		if product > 9 {
			product -= 9
		}
		sum += product
	}

	if (10-sum%10)%10 != digits[9] {
		return ErrNationalIDChecksum
	}

	return nil
}

// ValidateDisplacement - cilindraje в диапазоне [50, 8000] включительно
func ValidateDisplacement(cc int) bool {
	return cc >= MinDisplacementCC && cc <= MaxDisplacementCC
}

// ValidateModelYear - год выпуска в диапазоне [1990, fiscalYear]
func ValidateModelYear(year, fiscalYear int) error {
	if year < MinModelYear || year > fiscalYear {
		return ErrInvalidModelYear
	}
	return nil
}

// ValidateOwnerName - не короче 3 символов, только буквы и пробелы
func ValidateOwnerName(name string) error {
	if len([]rune(name)) < minOwnerNameLen || strings.TrimSpace(name) == "" {
		return ErrInvalidOwnerName
	}
	for _, r := range name {
		if !unicode.IsLetter(r) && r != ' ' {
			return ErrInvalidOwnerName
		}
	}
	return nil
}

// AssessedValueRange - допустимый диапазон avalúo
type AssessedValueRange struct {
	Min float64
	Max float64
}

// DefaultAssessedValueRange возвращает эталонный диапазон
func DefaultAssessedValueRange() AssessedValueRange {
	return AssessedValueRange{Min: DefaultMinAssessedValue, Max: DefaultMaxAssessedValue}
}

// Contains проверяет значение включительно по обеим границам
func (r AssessedValueRange) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// CollapseSpaces убирает пробелы по краям и схлопывает повторяющиеся пробелы
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
