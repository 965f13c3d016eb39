package livestock

import "farm-records/internal/ports/farmdata"

const dateLayout = "2006-01-02"

// ToSnapshot es la forma de wire de un animal (la misma que consume la agregación).
func ToSnapshot(a Animal) farmdata.Animal {
	var temp *float64
	if a.Temperature != nil {
		t := *a.Temperature
		temp = &t
	}
	return farmdata.Animal{
		ID:           a.ID,
		TagID:        a.TagID,
		Species:      a.Species,
		Breed:        a.Breed,
		AgeMonths:    a.AgeMonths,
		WeightKg:     a.WeightKg,
		HealthStatus: string(a.HealthStatus),
		Temperature:  temp,
		Notes:        a.Notes,
		CreatedAt:    a.CreatedAt,
	}
}

func SaleSnapshot(s Sale) farmdata.Sale {
	return farmdata.Sale{
		ID:          s.ID,
		Description: s.Description,
		Amount:      s.Amount,
		Quantity:    s.Quantity,
		Date:        s.Date.Format(dateLayout),
		CreatedAt:   s.CreatedAt,
	}
}

func AnimalSnapshots(items []Animal) []farmdata.Animal {
	out := make([]farmdata.Animal, 0, len(items))
	for _, a := range items {
		out = append(out, ToSnapshot(a))
	}
	return out
}

func SaleSnapshots(items []Sale) []farmdata.Sale {
	out := make([]farmdata.Sale, 0, len(items))
	for _, s := range items {
		out = append(out, SaleSnapshot(s))
	}
	return out
}
