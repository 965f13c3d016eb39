package livestock

import "time"

// HealthStatus del animal.
// @Enum healthy, unhealthy, sick, critical
type HealthStatus string

const (
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
	HealthSick      HealthStatus = "sick"
	HealthCritical  HealthStatus = "critical"
)

func (h HealthStatus) Valid() bool {
	switch h {
	case HealthHealthy, HealthUnhealthy, HealthSick, HealthCritical:
		return true
	}
	return false
}

const (
	DefaultSpecies         = "Chicken"
	DefaultTemperature     = 40.0
	DefaultSaleDescription = "Sale"
	DefaultSaleQuantity    = 1.0
)

// Animal del inventario. TagID es único.
type Animal struct {
	ID    string
	TagID string

	Species      string
	Breed        string
	AgeMonths    int
	WeightKg     float64
	HealthStatus HealthStatus

	// nil = sin lectura (no cuenta para el promedio)
	Temperature *float64

	Notes string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Sale es una venta registrada. Date es día calendario (sin hora).
type Sale struct {
	ID          string
	Description string
	Amount      float64
	Quantity    float64
	Date        time.Time
	CreatedAt   time.Time
}
