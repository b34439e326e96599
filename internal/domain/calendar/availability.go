package calendar

import (
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/eventos-marketplace/internal/domain/servicerequest"
	"github.com/BruksfildServices01/eventos-marketplace/internal/httperr"
	"github.com/BruksfildServices01/eventos-marketplace/internal/models"
	"github.com/BruksfildServices01/eventos-marketplace/internal/timezone"
)

type DayState string

const (
	DayAvailable DayState = "available"
	DayBlocked   DayState = "blocked"
	DayOccupied  DayState = "occupied"
)

// DayAvailability é o estado de um dia do calendário do fornecedor.
// Bloqueio manual e ocupação por solicitação são independentes; os dois
// aparecem como indisponível.
type DayAvailability struct {
	Date           string     `json:"date"`
	State          DayState   `json:"state"`
	Available      bool       `json:"available"`
	ManualBlock    bool       `json:"manual_block"`
	BlockID        *uuid.UUID `json:"block_id,omitempty"`
	Reason         string     `json:"reason,omitempty"`
	ActiveRequests int        `json:"active_requests"`
}

// PublicDay é o que um cliente vê do calendário alheio: só se o dia está
// livre. Motivo, bloqueio e ocupação ficam com o fornecedor.
type PublicDay struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
}

func (d DayAvailability) Public() PublicDay {
	return PublicDay{Date: d.Date, Available: d.Available}
}

func PublicMonth(days []DayAvailability) []PublicDay {
	out := make([]PublicDay, 0, len(days))
	for _, d := range days {
		out = append(out, d.Public())
	}
	return out
}

type ToggleAction string

const (
	ToggleCreateBlock ToggleAction = "create_block"
	ToggleDeleteBlock ToggleAction = "delete_block"
)

// EvaluateDay aplica a regra de indisponibilidade a um único dia, varrendo os
// bloqueios e solicitações já carregados.
func EvaluateDay(
	dateKey string,
	blocks []models.CalendarBlock,
	requests []models.ServiceRequest,
	loc *time.Location,
) DayAvailability {

	day := DayAvailability{Date: dateKey}

	for i := range blocks {
		if blocks[i].BlockedDate == dateKey {
			id := blocks[i].ID
			day.ManualBlock = true
			day.BlockID = &id
			day.Reason = blocks[i].Reason
			break
		}
	}

	for _, r := range requests {
		if !servicerequest.Status(r.Status).IsActive() {
			continue
		}
		if timezone.DayKey(r.ServiceDatetime, loc) == dateKey {
			day.ActiveRequests++
		}
	}

	switch {
	case day.ActiveRequests > 0:
		day.State = DayOccupied
	case day.ManualBlock:
		day.State = DayBlocked
	default:
		day.State = DayAvailable
	}
	day.Available = day.State == DayAvailable

	return day
}

// EvaluateMonth devolve um DayAvailability por dia do mês, em ordem.
func EvaluateMonth(
	year int,
	month time.Month,
	blocks []models.CalendarBlock,
	requests []models.ServiceRequest,
	loc *time.Location,
) []DayAvailability {

	start, end := timezone.MonthBounds(year, month, loc)

	days := make([]DayAvailability, 0, 31)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		days = append(days, EvaluateDay(d.Format(timezone.DateLayout), blocks, requests, loc))
	}
	return days
}

// DecideToggle: disponível cria bloqueio, bloqueio manual é removido, e dia
// ocupado por solicitação ativa não pode ser alternado.
func DecideToggle(day DayAvailability) (ToggleAction, error) {
	switch day.State {
	case DayOccupied:
		return "", httperr.ErrBusiness("date_occupied")
	case DayBlocked:
		return ToggleDeleteBlock, nil
	default:
		return ToggleCreateBlock, nil
	}
}
