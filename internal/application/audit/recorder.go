// Package audit provides the recorder behind every logged action. Use cases
// capture a snapshot before mutating, diff it after saving, and hand the
// resulting field changes here.
package audit

import (
	"context"
	"time"

	"ticketsys/internal/domain/audit"
	"ticketsys/internal/domain/ticket"
	"ticketsys/internal/domain/user"
	"ticketsys/internal/shared/logger"
)

// Meta carries the request-scoped facts an entry records about its origin.
// ActorID is nil for anonymous events such as failed logins.
type Meta struct {
	ActorID   *uint
	IPAddress string
	UserAgent string
}

// ticketFieldActions maps a diffed ticket field to its action tag.
var ticketFieldActions = map[string]audit.Action{
	ticket.FieldStatus:      audit.ActionTicketStatusChange,
	ticket.FieldPriority:    audit.ActionTicketPriorityChange,
	ticket.FieldAssignee:    audit.ActionTicketAssignedChange,
	ticket.FieldTitle:       audit.ActionTicketTitleChange,
	ticket.FieldDescription: audit.ActionTicketDescriptionChange,
}

var userFieldActions = map[string]audit.Action{
	user.FieldUsername: audit.ActionUserUsernameChange,
	user.FieldEmail:    audit.ActionUserEmailChange,
	user.FieldRole:     audit.ActionUserRoleChange,
}

type Recorder struct {
	auditRepo audit.Repository
	logger    logger.Interface
}

func NewRecorder(auditRepo audit.Repository, logger logger.Interface) *Recorder {
	return &Recorder{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

// Record appends a single entry. When no target user is given the actor is
// assumed, so the target column stays populated for every attributed event.
func (r *Recorder) Record(ctx context.Context, meta Meta, entry *audit.Entry) error {
	entry.ActorID = meta.ActorID
	if entry.TargetUserID == nil {
		entry.TargetUserID = meta.ActorID
	}
	entry.IPAddress = meta.IPAddress
	entry.UserAgent = meta.UserAgent
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	if err := r.auditRepo.Append(ctx, entry); err != nil {
		r.logger.Errorw("failed to append audit entry", "action", entry.Action, "error", err)
		return err
	}
	return nil
}

// RecordTicketChanges writes one entry per changed field, in the order the
// diff produced them.
func (r *Recorder) RecordTicketChanges(ctx context.Context, meta Meta, ticketID uint, changes []ticket.FieldChange) error {
	for _, change := range changes {
		action, ok := ticketFieldActions[change.Field]
		if !ok {
			continue
		}
		entry := &audit.Entry{
			TicketID: &ticketID,
			Action:   action,
			Details:  audit.BuildDetails(change.Field, change.Old, change.New, ""),
		}
		if err := r.Record(ctx, meta, entry); err != nil {
			return err
		}
	}
	return nil
}

// RecordUserChanges writes one entry per changed account field, targeting the
// edited user rather than the acting admin.
func (r *Recorder) RecordUserChanges(ctx context.Context, meta Meta, targetUserID uint, changes []user.FieldChange) error {
	for _, change := range changes {
		action, ok := userFieldActions[change.Field]
		if !ok {
			continue
		}
		entry := &audit.Entry{
			TargetUserID: &targetUserID,
			Action:       action,
			Details:      audit.BuildDetails(change.Field, change.Old, change.New, ""),
		}
		if err := r.Record(ctx, meta, entry); err != nil {
			return err
		}
	}
	return nil
}

// RecordEmailSent logs one delivery per recipient. Unlike Record, a nil
// target stays nil: an address that matches no account is still a delivery
// worth logging, just an unattributed one.
func (r *Recorder) RecordEmailSent(ctx context.Context, meta Meta, ticketID *uint, targetUserID *uint, recipient, subject string) error {
	entry := &audit.Entry{
		ActorID:      meta.ActorID,
		TargetUserID: targetUserID,
		TicketID:     ticketID,
		Action:       audit.ActionEmailSent,
		Details:      "Oggetto: " + subject + "\nDestinatario: " + recipient,
		IPAddress:    meta.IPAddress,
		UserAgent:    meta.UserAgent,
		Timestamp:    time.Now(),
	}
	if err := r.auditRepo.Append(ctx, entry); err != nil {
		r.logger.Errorw("failed to append email audit entry", "recipient", recipient, "error", err)
		return err
	}
	return nil
}

func (r *Recorder) RecordLogin(ctx context.Context, meta Meta) error {
	return r.Record(ctx, meta, &audit.Entry{Action: audit.ActionLogin})
}

func (r *Recorder) RecordLogout(ctx context.Context, meta Meta) error {
	return r.Record(ctx, meta, &audit.Entry{Action: audit.ActionLogout})
}

// RecordLoginFailed logs a rejected authentication attempt. There is no
// actor and no target; only the claimed username survives in the details.
func (r *Recorder) RecordLoginFailed(ctx context.Context, meta Meta, username string) error {
	entry := &audit.Entry{
		Action:    audit.ActionLoginFailed,
		Details:   "username: " + username,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Timestamp: time.Now(),
	}
	if err := r.auditRepo.Append(ctx, entry); err != nil {
		r.logger.Errorw("failed to append login-failed entry", "username", username, "error", err)
		return err
	}
	return nil
}
