package domain

import "time"

// DefaultObservations подставляется, если наблюдения не указаны
const DefaultObservations = "Sin observaciones"

// InspectionRecord - результат технической проверки (RTV).
// Записи только добавляются, повторная проверка дает новую запись
type InspectionRecord struct {
	Plate        string    `json:"plate"`
	InspectedOn  time.Time `json:"inspected_on"`
	Approved     bool      `json:"approved"`
	Observations string    `json:"observations"`
}
