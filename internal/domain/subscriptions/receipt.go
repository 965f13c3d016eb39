package subscriptions

import (
	"fmt"
	"io"
	"time"
)

const (
	txPrefix   = "TX"
	txLength   = 8
	txAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

	// mayor múltiplo de 36 que entra en un byte; evita sesgo del módulo
	txRejectAbove = 252
)

// NewTransactionID devuelve "TX" + 8 chars base36 en mayúscula.
// No se verifica colisión contra recibos existentes.
func NewTransactionID(rand io.Reader) (string, error) {
	out := make([]byte, 0, len(txPrefix)+txLength)
	out = append(out, txPrefix...)

	buf := make([]byte, txLength*2)
	for len(out) < len(txPrefix)+txLength {
		if _, err := io.ReadFull(rand, buf); err != nil {
			return "", fmt.Errorf("transaction id: %w", err)
		}
		for _, b := range buf {
			if b >= txRejectAbove {
				continue
			}
			out = append(out, txAlphabet[int(b)%len(txAlphabet)])
			if len(out) == len(txPrefix)+txLength {
				break
			}
		}
	}
	return string(out), nil
}

// ConfirmPayment arma el recibo del pago pendiente. No toca almacenamiento.
func ConfirmPayment(p PendingPayment, now time.Time, newID func() (string, error)) (Receipt, error) {
	id, err := newID()
	if err != nil {
		return Receipt{}, err
	}
	return Receipt{
		TxID:      id,
		Timestamp: now.UTC().Format(time.RFC3339),
		Name:      p.Name,
		Email:     p.Email,
		Plan:      p.Plan,
		Method:    p.PaymentMethod,
		Amount:    p.Amount,
	}, nil
}

// FindReceipt recorre en orden guardado (más reciente primero); gana el primero.
func FindReceipt(subs []Subscription, txID string) (Receipt, bool) {
	for _, s := range subs {
		if s.Receipt != nil && s.Receipt.TxID == txID {
			return *s.Receipt, true
		}
	}
	return Receipt{}, false
}
