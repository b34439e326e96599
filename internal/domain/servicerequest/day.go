package servicerequest

import (
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/eventos-marketplace/internal/timezone"
)

// Rules concentra os predicados de data que dependem do fuso configurado.
// O dia do evento é sempre comparado no fuso local da operação, nunca em UTC.
type Rules struct {
	loc    *time.Location
	logger *zap.Logger
}

func NewRules(loc *time.Location, logger *zap.Logger) *Rules {
	if loc == nil {
		loc = timezone.Location(timezone.DefaultTimezone)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Rules{loc: loc, logger: logger}
}

func (r *Rules) Location() *time.Location {
	return r.loc
}

func (r *Rules) DayKey(t time.Time) string {
	return timezone.DayKey(t, r.loc)
}

// DayEquals diz se "now" cai no mesmo dia civil da data de serviço informada
// como texto ISO-8601. Entrada vazia ou inválida devolve false e a inválida
// é registrada como problema de dado.
//
// É a porta de texto da mesma regra de IsServiceDay: quem já tem o horário
// como time.Time (modelo vindo do banco) chama IsServiceDay direto; quem tem
// só o texto bruto chama DayEquals. As duas devem concordar sempre.
func (r *Rules) DayEquals(serviceAt string, now time.Time) bool {
	if strings.TrimSpace(serviceAt) == "" {
		return false
	}

	t, err := timezone.ParseISO(serviceAt, r.loc)
	if err != nil {
		r.logger.Warn("malformed service date",
			zap.String("service_datetime", serviceAt),
			zap.Error(err),
		)
		return false
	}

	return r.IsServiceDay(t, now)
}

// IsServiceDay compara só a chave YYYY-MM-DD de ambos os lados.
func (r *Rules) IsServiceDay(serviceAt time.Time, now time.Time) bool {
	if serviceAt.IsZero() || now.IsZero() {
		return false
	}
	return r.DayKey(serviceAt) == r.DayKey(now)
}
