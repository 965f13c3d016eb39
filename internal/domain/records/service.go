package records

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"farm-records/internal/platform/logger"
)

var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnknownFeature = errors.New("unknown feature")
)

const dateLayout = "2006-01-02"

// ValidationError indica qué campo rechazó el submit. Envuelve ErrInvalidInput.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

type Service struct {
	store *Store
	log   logger.Logger
	now   func() time.Time
}

func NewService(store *Store, log logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store: store,
		log:   log.With(map[string]any{"module": "records"}),
		now:   time.Now,
	}
}

func (s *Service) List(ctx context.Context, feature string) ([]Entry, error) {
	f, ok := FeatureByName(feature)
	if !ok {
		return nil, ErrUnknownFeature
	}
	return s.store.Load(ctx, f.Key), nil
}

// Submit valida y normaliza el input del form y lo agrega al frente de la colección.
// Un input inválido no persiste nada.
func (s *Service) Submit(ctx context.Context, feature string, in map[string]any) ([]Entry, error) {
	f, ok := FeatureByName(feature)
	if !ok {
		return nil, ErrUnknownFeature
	}

	entry, err := normalize(f, in, s.today())
	if err != nil {
		return nil, err
	}

	out, err := s.store.Append(ctx, f.Key, entry)
	if err != nil {
		s.log.Error("append failed", map[string]any{"feature": feature, "err": err})
		return nil, err
	}
	return out, nil
}

// SuggestMedicine guarda una sugerencia por síntoma para el medicamento elegido.
// Todas las entradas se agregan en una sola escritura, en el orden dado.
func (s *Service) SuggestMedicine(ctx context.Context, symptoms []string, medicineIndex int) ([]Entry, error) {
	med, ok := MedicineAt(medicineIndex)
	if !ok {
		return nil, &ValidationError{Field: "medicine_index", Reason: "unknown medicine"}
	}

	chosen := make([]string, 0, len(symptoms))
	for _, sym := range symptoms {
		if sym = strings.TrimSpace(sym); sym != "" {
			chosen = append(chosen, sym)
		}
	}
	if len(chosen) == 0 {
		return nil, &ValidationError{Field: "symptoms", Reason: "required"}
	}

	today := s.today()
	entries := make([]Entry, 0, len(chosen))
	for _, sym := range chosen {
		entries = append(entries, Entry{
			"symptom":   sym,
			"medicine":  med.Medicine,
			"dosage":    med.Dosage,
			"notes":     med.Notes,
			"dateAdded": today,
		})
	}

	return s.store.Prepend(ctx, KeyMedicineSuggestion, entries...)
}

func (s *Service) today() string {
	return s.now().Format(dateLayout)
}

// normalize arma la Entry solo con los campos conocidos del feature.
func normalize(f Feature, in map[string]any, today string) (Entry, error) {
	e := Entry{}
	for _, field := range f.Fields {
		raw, present := in[field.Name]
		if raw == nil {
			present = false
		}

		switch field.Kind {
		case KindDate:
			v := ""
			if present {
				str, ok := raw.(string)
				if !ok {
					return nil, &ValidationError{Field: field.Name, Reason: "must be YYYY-MM-DD"}
				}
				v = strings.TrimSpace(str)
			}
			if v == "" {
				v = today
			} else if _, err := time.Parse(dateLayout, v); err != nil {
				return nil, &ValidationError{Field: field.Name, Reason: "must be YYYY-MM-DD"}
			}
			e[field.Name] = v

		case KindNumber:
			if !present {
				if field.Required {
					return nil, &ValidationError{Field: field.Name, Reason: "required"}
				}
				continue
			}
			n, empty, err := toNumber(raw)
			if err != nil {
				return nil, &ValidationError{Field: field.Name, Reason: "must be a number"}
			}
			if empty {
				if field.Required {
					return nil, &ValidationError{Field: field.Name, Reason: "required"}
				}
				continue
			}
			e[field.Name] = n

		default:
			v := ""
			if present {
				switch t := raw.(type) {
				case string:
					v = strings.TrimSpace(t)
				case float64, bool:
					v = fmt.Sprint(t)
				default:
					return nil, &ValidationError{Field: field.Name, Reason: "must be text"}
				}
			}
			if v == "" {
				if field.Required {
					return nil, &ValidationError{Field: field.Name, Reason: "required"}
				}
				continue
			}
			e[field.Name] = v
		}
	}
	return e, nil
}

// toNumber acepta number JSON o string numérico. "" => empty.
func toNumber(v any) (float64, bool, error) {
	switch t := v.(type) {
	case float64:
		return t, false, nil
	case int:
		return float64(t), false, nil
	case string:
		t = strings.TrimSpace(t)
		if t == "" {
			return 0, true, nil
		}
		n, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false, err
		}
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false, fmt.Errorf("not a finite number: %q", t)
		}
		return n, false, nil
	default:
		return 0, false, fmt.Errorf("not a number: %T", v)
	}
}
