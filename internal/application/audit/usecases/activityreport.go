package usecases

import (
	"context"
	"time"

	"ticketsys/internal/domain/audit"
	"ticketsys/internal/shared/logger"
)

// operatorActions are the log actions counted as ticket handling in the
// activity report.
var operatorActions = []audit.Action{
	audit.ActionTicketStatusChange,
	audit.ActionTicketPriorityChange,
	audit.ActionTicketAssignedChange,
	audit.ActionTicketTitleChange,
	audit.ActionTicketDescriptionChange,
	audit.ActionTicketReassigned,
}

type ActivityReportCommand struct {
	From *time.Time
	To   *time.Time
}

type ActivityReportResult struct {
	ByAction   []audit.ActionCount
	ByOperator []audit.ActorCount
}

// ActivityReportUseCase aggregates the audit log into two views: how many
// entries each action produced, and how many handling actions each operator
// performed.
type ActivityReportUseCase struct {
	auditRepo audit.Repository
	logger    logger.Interface
}

func NewActivityReportUseCase(auditRepo audit.Repository, logger logger.Interface) *ActivityReportUseCase {
	return &ActivityReportUseCase{
		auditRepo: auditRepo,
		logger:    logger,
	}
}

func (uc *ActivityReportUseCase) Execute(ctx context.Context, cmd ActivityReportCommand) (*ActivityReportResult, error) {
	byAction, err := uc.auditRepo.CountByAction(ctx, cmd.From, cmd.To)
	if err != nil {
		uc.logger.Errorw("failed to count audit entries by action", "error", err)
		return nil, err
	}

	byOperator, err := uc.auditRepo.CountByActor(ctx, operatorActions, cmd.From, cmd.To)
	if err != nil {
		uc.logger.Errorw("failed to count audit entries by operator", "error", err)
		return nil, err
	}

	return &ActivityReportResult{
		ByAction:   byAction,
		ByOperator: byOperator,
	}, nil
}
