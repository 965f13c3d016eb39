package subscriptions

// Plan de suscripción.
// @Enum free, premium
type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

func (p Plan) Valid() bool { return p == PlanFree || p == PlanPremium }

// Method de pago tal como se guarda.
// @Enum gpay, phonepay, none
type Method string

const (
	MethodGPay     Method = "gpay"
	MethodPhonePay Method = "phonepay"
	MethodNone     Method = "none"
)

func (m Method) Valid() bool {
	switch m {
	case MethodGPay, MethodPhonePay, MethodNone:
		return true
	}
	return false
}

// PremiumAmount en Rs.
const PremiumAmount = 2000.0

// PendingPayment es el slot singleton entre "elegí premium" y "pagué".
type PendingPayment struct {
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Plan          Plan    `json:"plan"`
	PaymentMethod Method  `json:"payment_method"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date"`
}

// Receipt es inmutable una vez emitido.
type Receipt struct {
	TxID      string  `json:"txId"`
	Timestamp string  `json:"timestamp"`
	Name      string  `json:"name"`
	Email     string  `json:"email"`
	Plan      Plan    `json:"plan"`
	Method    Method  `json:"method"`
	Amount    float64 `json:"amount"`
}

// Subscription es una fila de la colección `subscriptions`.
// Paid => Receipt != nil.
type Subscription struct {
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Plan          Plan     `json:"plan"`
	PaymentMethod Method   `json:"payment_method,omitempty"`
	Amount        float64  `json:"amount,omitempty"`
	Date          string   `json:"date"`
	Paid          bool     `json:"paid,omitempty"`
	Receipt       *Receipt `json:"receipt,omitempty"`
}

// Payable: premium sin pagar.
func (s Subscription) Payable() bool {
	return s.Plan == PlanPremium && !s.Paid
}
