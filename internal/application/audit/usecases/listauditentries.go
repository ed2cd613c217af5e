// Package usecases holds the read-side operations over the audit log.
package usecases

import (
	"context"
	"time"

	"ticketsys/internal/domain/audit"
	"ticketsys/internal/shared/logger"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// ListAuditEntriesCommand narrows the log by actor, target and action
// substrings plus an optional time window.
type ListAuditEntriesCommand struct {
	Actor    string
	Target   string
	Action   string
	From     *time.Time
	To       *time.Time
	Page     int
	PageSize int
}

type ListAuditEntriesResult struct {
	Entries  []*audit.Entry
	Total    int64
	Page     int
	PageSize int
}

type ListAuditEntriesUseCase struct {
	auditRepo audit.Repository
	logger    logger.Interface
}

func NewListAuditEntriesUseCase(auditRepo audit.Repository, logger logger.Interface) *ListAuditEntriesUseCase {
	return &ListAuditEntriesUseCase{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

func (uc *ListAuditEntriesUseCase) Execute(ctx context.Context, cmd ListAuditEntriesCommand) (*ListAuditEntriesResult, error) {
	if cmd.Page < 1 {
		cmd.Page = 1
	}
	if cmd.PageSize < 1 {
		cmd.PageSize = defaultPageSize
	}
	if cmd.PageSize > maxPageSize {
		cmd.PageSize = maxPageSize
	}

	filter := audit.Filter{
		Actor:    cmd.Actor,
		Target:   cmd.Target,
		Action:   cmd.Action,
		From:     cmd.From,
		To:       cmd.To,
		Page:     cmd.Page,
		PageSize: cmd.PageSize,
	}

	entries, total, err := uc.auditRepo.List(ctx, filter)
	if err != nil {
		uc.logger.Errorw("failed to list audit entries", "error", err)
		return nil, err
	}

	return &ListAuditEntriesResult{
		Entries:  entries,
		Total:    total,
		Page:     cmd.Page,
		PageSize: cmd.PageSize,
	}, nil
}
