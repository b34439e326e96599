package servicerequest

import (
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/BruksfildServices01/eventos-marketplace/internal/httperr"
	"github.com/BruksfildServices01/eventos-marketplace/internal/models"
)

const PinLength = 4

var pinSpace = big.NewInt(10000)

// NormalizePin remove espaços de uma colagem ("4 8 2 1", " 4821\n").
func NormalizePin(raw string) string {
	return strings.Join(strings.Fields(raw), "")
}

func ValidPinFormat(pin string) bool {
	if len(pin) != PinLength {
		return false
	}
	for i := 0; i < len(pin); i++ {
		if pin[i] < '0' || pin[i] > '9' {
			return false
		}
	}
	return true
}

func GeneratePin() (string, error) {
	n, err := rand.Int(rand.Reader, pinSpace)
	if err != nil {
		return "", fmt.Errorf("generate pin: %w", err)
	}
	return fmt.Sprintf("%04d", n.Int64()), nil
}

// CheckPin compara o PIN informado com o persistido.
func CheckPin(stored *string, submitted string) error {
	if stored == nil || *stored == "" {
		return httperr.ErrBusiness("pin_not_set")
	}
	if subtle.ConstantTimeCompare([]byte(*stored), []byte(submitted)) != 1 {
		return httperr.ErrBusiness("incorrect_pin")
	}
	return nil
}

// PinGate aplica as guardas anteriores à comparação do PIN: estado e dia do
// evento. Antes do dia a validação é recusada independentemente do PIN.
func PinGate(rules *Rules, req *models.ServiceRequest, now time.Time) error {
	if err := CanValidatePin(Status(req.Status)); err != nil {
		return err
	}
	if !rules.IsServiceDay(req.ServiceDatetime, now) {
		return httperr.ErrBusiness("not_service_day")
	}
	return nil
}
