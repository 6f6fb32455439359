package fee

// Schedule - тарифы матрикулы за фискальный год. Ставки налогов и надбавки заданы в процентах
type Schedule struct {
	FiscalYear int `json:"fiscal_year"`

	PropertyTaxThreshold float64 `json:"property_tax_threshold"`
	PropertyTaxRate      float64 `json:"property_tax_rate"`
	RoadUseTaxThreshold  float64 `json:"road_use_tax_threshold"`
	RoadUseTaxRate       float64 `json:"road_use_tax_rate"`

	SPPAT      SPPATRates      `json:"sppat"`
	ANT        ClassRates      `json:"ant"`
	Prefecture ClassRates      `json:"prefecture"`
	RTV        InspectionRates `json:"rtv"`

	StickerFee          float64 `json:"sticker_fee"`
	AnnualSurchargeRate float64 `json:"annual_surcharge_rate"`
}

// SPPATRates - тарифы SPPAT по классу и объему двигателя
type SPPATRates struct {
	MotorcycleMaxSmallCC int     `json:"motorcycle_max_small_cc"`
	MotorcycleSmall      float64 `json:"motorcycle_small"`
	MotorcycleLarge      float64 `json:"motorcycle_large"`

	LightSmallMaxCC  int     `json:"light_small_max_cc"`
	LightMediumMaxCC int     `json:"light_medium_max_cc"`
	LightSmall       float64 `json:"light_small"`
	LightMedium      float64 `json:"light_medium"`
	LightLarge       float64 `json:"light_large"`

	Heavy      float64 `json:"heavy"`
	Commercial float64 `json:"commercial"`
}

// ClassRates - сбор с выбором по мотоциклу, коммерческому или остальным
type ClassRates struct {
	Particular float64 `json:"particular"`
	Commercial float64 `json:"commercial"`
	Motorcycle float64 `json:"motorcycle"`
}

// InspectionRates - стоимость RTV по подтипу
type InspectionRates struct {
	Light      float64 `json:"light"`
	Heavy      float64 `json:"heavy"`
	Motorcycle float64 `json:"motorcycle"`
}

// DefaultSchedule - эталонные тарифы 2025 года
func DefaultSchedule() Schedule {
	return Schedule{
		FiscalYear: 2025,

		PropertyTaxThreshold: 30000.00,
		PropertyTaxRate:      1.0,
		RoadUseTaxThreshold:  50000.00,
		RoadUseTaxRate:       1.0,

		SPPAT: SPPATRates{
			MotorcycleMaxSmallCC: 200,
			MotorcycleSmall:      16.00,
			MotorcycleLarge:      20.00,

			LightSmallMaxCC:  1500,
			LightMediumMaxCC: 2500,
			LightSmall:       22.00,
			LightMedium:      32.00,
			LightLarge:       45.00,

			Heavy:      65.00,
			Commercial: 65.00,
		},
		ANT: ClassRates{
			Particular: 36.00,
			Commercial: 41.00,
			Motorcycle: 31.00,
		},
		Prefecture: ClassRates{
			Particular: 18.00,
			Commercial: 20.50,
			Motorcycle: 9.30,
		},
		RTV: InspectionRates{
			Light:      31.00,
			Heavy:      37.00,
			Motorcycle: 22.00,
		},

		StickerFee:          5.00,
		AnnualSurchargeRate: 3.0,
	}
}
