package fee

import (
	"context"
	"fmt"

	"github.com/frontandrew/matricula/internal/domain"
	"github.com/frontandrew/matricula/internal/pkg/logger"
	"github.com/frontandrew/matricula/internal/pkg/metrics"
	"github.com/frontandrew/matricula/internal/repository"
)

// Calculator считает матрикулу по тарифам Schedule
type Calculator struct {
	schedule    Schedule
	vehicleRepo repository.VehicleRepository
	metrics     *metrics.Metrics
	logger      logger.Logger
}

// NewCalculator создает калькулятор. vehicleRepo нужен только для Quote
func NewCalculator(
	schedule Schedule,
	vehicleRepo repository.VehicleRepository,
	m *metrics.Metrics,
	logger logger.Logger,
) *Calculator {
	return &Calculator{
		schedule:    schedule,
		vehicleRepo: vehicleRepo,
		metrics:     m,
		logger:      logger,
	}
}

// Schedule возвращает действующие тарифы
func (c *Calculator) Schedule() Schedule {
	return c.schedule
}

// Compute - чистая функция: одинаковые входные данные дают одинаковый результат.
// Суммы не округляются, округление только при выводе
func (c *Calculator) Compute(v *domain.VehicleRecord, in domain.FeeInputs) domain.FeeBreakdown {
	return Compute(c.schedule, v, in)
}

// Quote загружает автомобиль по номеру и считает матрикулу
func (c *Calculator) Quote(ctx context.Context, plate string, in domain.FeeInputs) (*domain.FeeBreakdown, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	vehicle, err := c.vehicleRepo.GetByPlate(ctx, plate)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	breakdown := c.Compute(vehicle, in)
	c.metrics.ObserveFeeTotal(breakdown.Total)

	c.logger.Debug("Fee calculated", map[string]interface{}{
		"plate": plate,
		"total": domain.FormatAmount(breakdown.Total),
	})

	return &breakdown, nil
}

// Compute считает все компоненты и итог
func Compute(s Schedule, v *domain.VehicleRecord, in domain.FeeInputs) domain.FeeBreakdown {
	class := v.Classification

	b := domain.FeeBreakdown{
		PropertyTax:   thresholdTax(v.AssessedValue, s.PropertyTaxThreshold, s.PropertyTaxRate),
		RoadUseTax:    thresholdTax(v.AssessedValue, s.RoadUseTaxThreshold, s.RoadUseTaxRate),
		SPPAT:         sppat(s.SPPAT, class, v.DisplacementCC),
		ANTFee:        byClass(s.ANT, class),
		PrefectureFee: byClass(s.Prefecture, class),
		RTVFee:        inspection(s.RTV, class),
		StickerFee:    s.StickerFee,
	}

	if in.HasFines {
		b.Fines = in.FinesTotal
	}
	b.Surcharge = surcharge(b.PropertyTax+b.RoadUseTax, s.AnnualSurchargeRate, in.ArrearsMonths)
	b.Total = b.Sum()

	return b
}

// thresholdTax = max(0, value - threshold) * rate%
func thresholdTax(value, threshold, ratePercent float64) float64 {
	if value <= threshold {
		return 0
	}
	return (value - threshold) * ratePercent / 100
}

// Мотоцикл, затем коммерческий, затем тяжелый, затем легковой по объему
func sppat(r SPPATRates, class domain.Classification, cc int) float64 {
	switch {
	case class.IsMotorcycle():
		if cc <= r.MotorcycleMaxSmallCC {
			return r.MotorcycleSmall
		}
		return r.MotorcycleLarge
	case class.IsCommercial():
		return r.Commercial
	case class.IsHeavy():
		return r.Heavy
	case cc <= r.LightSmallMaxCC:
		return r.LightSmall
	case cc <= r.LightMediumMaxCC:
		return r.LightMedium
	default:
		return r.LightLarge
	}
}

// Проверка на мотоцикл идет раньше проверки на коммерческий
func byClass(r ClassRates, class domain.Classification) float64 {
	switch {
	case class.IsMotorcycle():
		return r.Motorcycle
	case class.IsCommercial():
		return r.Commercial
	default:
		return r.Particular
	}
}

func inspection(r InspectionRates, class domain.Classification) float64 {
	switch {
	case class.IsMotorcycle():
		return r.Motorcycle
	case class.IsHeavy():
		return r.Heavy
	default:
		return r.Light
	}
}

func surcharge(taxes, annualRatePercent float64, months int) float64 {
	if months <= 0 {
		return 0
	}
	return (taxes * annualRatePercent / 100) / 12 * float64(months)
}
