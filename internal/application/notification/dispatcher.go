// Package notification sends the ticket lifecycle emails and logs each
// delivery. Dispatch is always called after the triggering change has been
// saved and logged, so a failed send never hides the change itself.
package notification

import (
	"context"
	"fmt"

	appaudit "ticketsys/internal/application/audit"
	"ticketsys/internal/domain/ticket"
	"ticketsys/internal/domain/user"
	"ticketsys/internal/shared/authorization"
	"ticketsys/internal/shared/errors"
	"ticketsys/internal/shared/logger"
)

// EventKind selects which lifecycle email goes out.
type EventKind string

const (
	EventTicketCreated  EventKind = "ticket_created"
	EventTicketAssigned EventKind = "ticket_assigned"
	EventTicketClosed   EventKind = "ticket_closed"
)

// Event describes one lifecycle occurrence. ActorName is the username shown
// in the body: the creator for created events, the closing operator for
// closed events.
type Event struct {
	Kind      EventKind
	Ticket    *ticket.Ticket
	ActorName string
}

// EmailSender delivers one message to all listed recipients.
type EmailSender interface {
	Send(subject, textBody, htmlBody string, to []string) error
}

type Dispatcher struct {
	userRepo user.Repository
	sender   EmailSender
	recorder *appaudit.Recorder
	baseURL  string
	logger   logger.Interface
}

func NewDispatcher(
	userRepo user.Repository,
	sender EmailSender,
	recorder *appaudit.Recorder,
	baseURL string,
	logger logger.Interface,
) *Dispatcher {
	return &Dispatcher{
		userRepo: userRepo,
		sender:   sender,
		recorder: recorder,
		baseURL:  baseURL,
		logger:   logger,
	}
}

// Dispatch resolves recipients, sends one email covering all of them, and on
// success appends one EMAIL SENT entry per recipient. No recipients with a
// usable address means no send and no entries.
func (d *Dispatcher) Dispatch(ctx context.Context, meta appaudit.Meta, event Event) error {
	recipients, err := d.resolveRecipients(ctx, event)
	if err != nil {
		return err
	}
	if len(recipients) == 0 {
		d.logger.Debugw("no recipients for notification", "kind", event.Kind, "ticket_id", event.Ticket.ID())
		return nil
	}

	subject, text, html, err := d.buildMessage(event)
	if err != nil {
		return err
	}

	if err := d.sender.Send(subject, text, html, recipients); err != nil {
		d.logger.Errorw("failed to send notification email",
			"kind", event.Kind,
			"ticket_id", event.Ticket.ID(),
			"error", err,
		)
		return fmt.Errorf("failed to send notification: %w", err)
	}

	ticketID := event.Ticket.ID()
	for _, recipient := range recipients {
		target := d.lookupTarget(ctx, recipient)
		if err := d.recorder.RecordEmailSent(ctx, meta, &ticketID, target, recipient, subject); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dispatcher) resolveRecipients(ctx context.Context, event Event) ([]string, error) {
	switch event.Kind {
	case EventTicketCreated:
		users, err := d.userRepo.FindNotifiableByRoles(ctx, authorization.RoleOperator, authorization.RoleAdmin)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve staff recipients: %w", err)
		}
		emails := make([]string, 0, len(users))
		for _, u := range users {
			emails = append(emails, u.Email())
		}
		return emails, nil

	case EventTicketAssigned:
		assigneeID := event.Ticket.AssigneeID()
		if assigneeID == nil {
			return nil, nil
		}
		return d.emailOf(ctx, *assigneeID)

	case EventTicketClosed:
		return d.emailOf(ctx, event.Ticket.CreatorID())

	default:
		return nil, errors.NewValidationError("unknown notification kind: " + string(event.Kind))
	}
}

func (d *Dispatcher) emailOf(ctx context.Context, userID uint) ([]string, error) {
	u, err := d.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.IsNotFoundError(err) {
			return nil, nil
		}
		return nil, err
	}
	if u.Email() == "" {
		return nil, nil
	}
	return []string{u.Email()}, nil
}

// lookupTarget maps a recipient address back to an account for the audit
// entry. Unknown addresses log as untargeted deliveries.
func (d *Dispatcher) lookupTarget(ctx context.Context, email string) *uint {
	u, err := d.userRepo.FindByEmail(ctx, email)
	if err != nil || u == nil {
		return nil
	}
	id := u.ID()
	return &id
}

func (d *Dispatcher) buildMessage(event Event) (subject, text, html string, err error) {
	t := event.Ticket
	url := ticketURL(d.baseURL, t.ID())

	switch event.Kind {
	case EventTicketCreated:
		subject = fmt.Sprintf("[NUOVO TICKET] #%d - %s", t.ID(), t.Title())
		text = fmt.Sprintf(
			"È stato creato un nuovo ticket.\n\nTitolo: %s\nCreato da: %s\n\nApri il ticket: %s",
			t.Title(), event.ActorName, url,
		)
		body := fmt.Sprintf(
			"È stato creato un nuovo ticket.\n\n**Titolo:** %s\\\n**Creato da:** %s",
			t.Title(), event.ActorName,
		)
		html, err = buildEmailHTML("Nuovo Ticket Creato", body, url, "Apri Ticket")

	case EventTicketAssigned:
		subject = fmt.Sprintf("[TICKET ASSEGNATO] #%d", t.ID())
		text = fmt.Sprintf(
			"Ti è stato assegnato un ticket.\n\nTitolo: %s\n\nApri il ticket: %s",
			t.Title(), url,
		)
		body := fmt.Sprintf(
			"Ti è stato assegnato un nuovo ticket.\n\n**Titolo:** %s",
			t.Title(),
		)
		html, err = buildEmailHTML("Nuovo Ticket Assegnato", body, url, "Gestisci Ticket")

	case EventTicketClosed:
		subject = fmt.Sprintf("[TICKET CHIUSO] #%d", t.ID())
		text = fmt.Sprintf(
			"Il tuo ticket è stato chiuso.\n\nTitolo: %s\n\nVisualizza il ticket: %s",
			t.Title(), url,
		)
		body := fmt.Sprintf(
			"Il tuo ticket è stato chiuso.\n\n**Titolo:** %s\\\n**Operatore:** %s",
			t.Title(), event.ActorName,
		)
		html, err = buildEmailHTML("Ticket Chiuso", body, url, "Visualizza Ticket")

	default:
		err = errors.NewValidationError("unknown notification kind: " + string(event.Kind))
	}
	return subject, text, html, err
}
