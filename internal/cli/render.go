package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ticketly/ticketly/internal/models"
)

var (
	badgeStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)

	statusColors = map[models.Status]lipgloss.Color{
		models.StatusOpen:       lipgloss.Color("#16a34a"),
		models.StatusInProgress: lipgloss.Color("#d97706"),
		models.StatusClosed:     lipgloss.Color("#6b7280"),
	}

	priorityColors = map[models.Priority]lipgloss.Color{
		models.PriorityLow:    lipgloss.Color("#6b7280"),
		models.PriorityMedium: lipgloss.Color("#2563eb"),
		models.PriorityHigh:   lipgloss.Color("#dc2626"),
	}

	idStyle    = lipgloss.NewStyle().Faint(true)
	titleStyle = lipgloss.NewStyle().Bold(true)
)

// StatusBadge renders the status label in its colour: green for open,
// amber for in progress, gray for closed.
func StatusBadge(s models.Status) string {
	return badgeStyle.Foreground(statusColors[s]).Render(s.Label())
}

func priorityTag(p models.Priority) string {
	if p == "" {
		return ""
	}
	return lipgloss.NewStyle().Foreground(priorityColors[p]).Render(string(p))
}

func renderTicketLine(t models.Ticket) string {
	line := fmt.Sprintf("%s %s %s", idStyle.Render(t.ID), StatusBadge(t.Status), t.Title)
	if tag := priorityTag(t.Priority); tag != "" {
		line += " [" + tag + "]"
	}
	return line
}

func renderTicketDetail(t models.Ticket) string {
	var b strings.Builder
	fmt.Fprintln(&b, titleStyle.Render(t.Title))
	fmt.Fprintf(&b, "ID:       %s\n", t.ID)
	fmt.Fprintf(&b, "Status:   %s\n", StatusBadge(t.Status))
	if t.Priority != "" {
		fmt.Fprintf(&b, "Priority: %s\n", priorityTag(t.Priority))
	}
	fmt.Fprintf(&b, "Created:  %s\n", t.CreatedAt)
	fmt.Fprintf(&b, "Updated:  %s\n", t.UpdatedAt)
	if t.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", t.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderStats(s models.Stats) string {
	return strings.Join([]string{
		fmt.Sprintf("Total:       %d", s.Total),
		fmt.Sprintf("%s %d", StatusBadge(models.StatusOpen), s.Open),
		fmt.Sprintf("%s %d", StatusBadge(models.StatusInProgress), s.InProgress),
		fmt.Sprintf("%s %d", StatusBadge(models.StatusClosed), s.Closed),
	}, "\n")
}
