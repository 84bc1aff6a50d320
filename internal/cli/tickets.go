package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/ticketly/ticketly/internal/common"
	"github.com/ticketly/ticketly/internal/models"
	"github.com/ticketly/ticketly/internal/tickets"
)

var getMultiline = GetMultiline

// Dashboard prints the status counts and the most recently updated ticket.
func (a *App) Dashboard(ctx context.Context) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	list, err := a.tickets.List(opCtx)
	if err != nil {
		return err
	}
	stats, err := a.tickets.Stats(opCtx)
	if err != nil {
		return err
	}

	a.println(renderStats(stats))
	if len(list) == 0 {
		a.println("No tickets yet. Type 'new' to create one.")
		return nil
	}

	latest := list[0]
	for _, t := range list[1:] {
		if t.UpdatedAt.After(latest.UpdatedAt.Time) {
			latest = t
		}
	}
	a.println()
	a.println("Last activity:", renderTicketLine(latest))
	return nil
}

// List prints tickets in stored order, optionally only those with status.
func (a *App) List(ctx context.Context, status string) error {
	var want models.Status
	if status != "" {
		st, err := models.ParseStatus(status)
		if err != nil {
			return err
		}
		want = st
	}

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	list, err := a.tickets.List(opCtx)
	if err != nil {
		return err
	}
	a.printTickets(tickets.Filter(list, want))
	return nil
}

// Search prints tickets whose title or description contains query.
func (a *App) Search(ctx context.Context, query string) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	list, err := a.tickets.List(opCtx)
	if err != nil {
		return err
	}
	a.printTickets(tickets.Search(list, query))
	return nil
}

func (a *App) printTickets(list []models.Ticket) {
	if len(list) == 0 {
		a.println("No tickets found.")
		return
	}
	for _, t := range list {
		a.println(renderTicketLine(t))
	}
}

// New prompts for a ticket and stores it.
func (a *App) New(ctx context.Context) error {
	title, err := getSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	desc, err := getMultiline(a.reader, "Description (optional)", a.out)
	if err != nil {
		return err
	}
	if err := models.ValidateForm(title, desc); err != nil {
		return err
	}

	rawStatus, err := getSimpleText(a.reader, "Status [open]", a.out)
	if err != nil {
		return err
	}
	status := models.StatusOpen
	if rawStatus != "" {
		if status, err = models.ParseStatus(rawStatus); err != nil {
			return err
		}
	}

	rawPriority, err := getSimpleText(a.reader, "Priority (low, medium, high; empty for none)", a.out)
	if err != nil {
		return err
	}
	priority, err := models.ParsePriority(rawPriority)
	if err != nil {
		return err
	}

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	t, err := a.tickets.Add(opCtx, models.TicketDraft{
		Title:       title,
		Description: desc,
		Status:      status,
		Priority:    priority,
	})
	if err != nil {
		return err
	}
	a.println("Created", renderTicketLine(t))
	return nil
}

// Show prints one ticket.
func (a *App) Show(ctx context.Context, id string) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	t, err := a.tickets.Get(opCtx, id)
	if err != nil {
		return notFound(id, err)
	}
	a.println(renderTicketDetail(t))
	return nil
}

// Edit walks through every field; an empty answer keeps the current value
// and "-" clears the description or priority.
func (a *App) Edit(ctx context.Context, id string) error {
	opCtx, cancel := a.opContext(ctx)
	t, err := a.tickets.Get(opCtx, id)
	cancel()
	if err != nil {
		return notFound(id, err)
	}

	var patch models.TicketPatch

	title, err := getSimpleText(a.reader, fmt.Sprintf("Title [%s]", t.Title), a.out)
	if err != nil {
		return err
	}
	if title != "" {
		patch.Title = &title
	} else {
		title = t.Title
	}

	desc, err := getSimpleText(a.reader, "Description (empty keeps, - clears)", a.out)
	if err != nil {
		return err
	}
	switch desc {
	case "":
		desc = t.Description
	case "-":
		desc = ""
		patch.Description = &desc
	default:
		patch.Description = &desc
	}

	if err := models.ValidateForm(title, desc); err != nil {
		return err
	}

	rawStatus, err := getSimpleText(a.reader, fmt.Sprintf("Status [%s]", t.Status), a.out)
	if err != nil {
		return err
	}
	if rawStatus != "" {
		st, err := models.ParseStatus(rawStatus)
		if err != nil {
			return err
		}
		patch.Status = &st
	}

	rawPriority, err := getSimpleText(a.reader, fmt.Sprintf("Priority [%s] (- clears)", t.Priority), a.out)
	if err != nil {
		return err
	}
	switch rawPriority {
	case "":
	case "-":
		none := models.Priority("")
		patch.Priority = &none
	default:
		p, err := models.ParsePriority(rawPriority)
		if err != nil {
			return err
		}
		patch.Priority = &p
	}

	return a.update(ctx, id, patch, "Updated")
}

// SetStatus changes only the status of a ticket.
func (a *App) SetStatus(ctx context.Context, id, status string) error {
	st, err := models.ParseStatus(status)
	if err != nil {
		return err
	}
	return a.update(ctx, id, models.TicketPatch{Status: &st}, "Status set to "+st.Label()+" for")
}

func (a *App) update(ctx context.Context, id string, patch models.TicketPatch, verb string) error {
	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	found, err := a.tickets.Update(opCtx, id, patch)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("ticket %s not found", id)
	}
	a.println(verb, id)
	return nil
}

// Delete removes a ticket after confirmation.
func (a *App) Delete(ctx context.Context, id string) error {
	answer, err := getSimpleText(a.reader, fmt.Sprintf("Delete ticket %s? (y/N)", id), a.out)
	if err != nil {
		return err
	}
	if answer != "y" && answer != "Y" && answer != "yes" {
		a.println("Cancelled.")
		return nil
	}

	opCtx, cancel := a.opContext(ctx)
	defer cancel()

	found, err := a.tickets.Delete(opCtx, id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("ticket %s not found", id)
	}
	a.println("Deleted", id)
	return nil
}

func notFound(id string, err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("ticket %s not found", id)
	}
	return err
}
