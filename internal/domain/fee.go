package domain

import "strconv"

// Money - денежная сумма. Хранится без округления, округляется только при выводе
type Money float64

// String форматирует сумму с двумя знаками после точки
func (m Money) String() string {
	return FormatAmount(float64(m))
}

// FormatAmount - формат сумм для реестров и ответов API
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// ParseAmount разбирает сумму с точкой в качестве разделителя
func ParseAmount(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// FeeInputs - данные, которые передает вызывающая сторона
type FeeInputs struct {
	HasFines      bool    `json:"has_fines"`
	FinesTotal    float64 `json:"fines_total"`
	ArrearsMonths int     `json:"arrears_months"`
}

// Validate проверяет штрафы и месяцы просрочки
func (in FeeInputs) Validate() error {
	if in.HasFines && in.FinesTotal <= 0 {
		return ErrInvalidFines
	}
	if in.ArrearsMonths < 0 {
		return ErrInvalidArrears
	}
	return nil
}

// FeeBreakdown - расчет матрикулы. Не хранится, вычисляется заново при каждом запросе
type FeeBreakdown struct {
	PropertyTax   float64 `json:"property_tax"`
	RoadUseTax    float64 `json:"road_use_tax"`
	SPPAT         float64 `json:"sppat"`
	ANTFee        float64 `json:"ant_fee"`
	PrefectureFee float64 `json:"prefecture_fee"`
	RTVFee        float64 `json:"rtv_fee"`
	StickerFee    float64 `json:"sticker_fee"`
	Fines         float64 `json:"fines"`
	Surcharge     float64 `json:"surcharge"`
	Total         float64 `json:"total"`
}

// Sum складывает все девять компонентов
func (b FeeBreakdown) Sum() float64 {
	return b.PropertyTax + b.RoadUseTax + b.SPPAT + b.ANTFee + b.PrefectureFee +
		b.RTVFee + b.StickerFee + b.Fines + b.Surcharge
}
