package servicerequest

import "time"

const (
	// abaixo disso a solicitação é urgente
	UrgentThreshold = 24 * time.Hour

	UrgentResponseWindow   = 3 * time.Hour
	StandardResponseWindow = 24 * time.Hour

	ReminderLead = 3 * time.Hour
)

type ResponseWindow struct {
	Window time.Duration
	Urgent bool
}

func (w ResponseWindow) Hours() int {
	return int(w.Window / time.Hour)
}

func (w ResponseWindow) Deadline(createdAt time.Time) time.Time {
	return createdAt.Add(w.Window)
}

// ClassifyResponseWindow define o prazo máximo de resposta do fornecedor.
// Exatamente 24h de antecedência ainda é não urgente.
func ClassifyResponseWindow(createdAt, serviceAt time.Time) ResponseWindow {
	if serviceAt.Sub(createdAt) < UrgentThreshold {
		return ResponseWindow{Window: UrgentResponseWindow, Urgent: true}
	}
	return ResponseWindow{Window: StandardResponseWindow, Urgent: false}
}

// ReminderDue vale para 0 < serviceAt-now <= 3h. Sem estado: quem chama
// precisa deduplicar.
func ReminderDue(now, serviceAt time.Time) bool {
	remaining := serviceAt.Sub(now)
	return remaining > 0 && remaining <= ReminderLead
}

func ResponseOverdue(respondBy, now time.Time) bool {
	return !respondBy.IsZero() && now.After(respondBy)
}
