package tickets

import (
	"strings"

	"github.com/ticketly/ticketly/internal/models"
)

// Filter keeps the tickets with the given status; an empty status keeps all.
func Filter(list []models.Ticket, status models.Status) []models.Ticket {
	if status == "" {
		return list
	}
	out := make([]models.Ticket, 0, len(list))
	for _, t := range list {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out
}

// Search matches query case-insensitively against title and description.
func Search(list []models.Ticket, query string) []models.Ticket {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return list
	}
	out := make([]models.Ticket, 0, len(list))
	for _, t := range list {
		if strings.Contains(strings.ToLower(t.Title), q) ||
			strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, t)
		}
	}
	return out
}
