package repository

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"ticketsys/internal/domain/ticket"
	"ticketsys/internal/infrastructure/persistence/mappers"
	"ticketsys/internal/infrastructure/persistence/models"
	"ticketsys/internal/shared/db"
	apperrors "ticketsys/internal/shared/errors"
	"ticketsys/internal/shared/logger"
)

// allowedTicketSortByFields defines the whitelist of allowed ORDER BY fields
// to prevent SQL injection attacks.
var allowedTicketSortByFields = map[string]bool{
	"id":         true,
	"title":      true,
	"priority":   true,
	"status":     true,
	"created_at": true,
	"updated_at": true,
}

type TicketRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
	logger logger.Interface
}

func NewTicketRepository(db *gorm.DB, logger logger.Interface) ticket.TicketRepository {
	return &TicketRepositoryImpl{
		db:     db,
		mapper: mappers.NewTicketMapper(),
		logger: logger,
	}
}

func (r *TicketRepositoryImpl) Save(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to create ticket", "title", t.Title(), "error", err)
		return fmt.Errorf("failed to create ticket: %w", err)
	}

	if err := t.SetID(model.ID); err != nil {
		return fmt.Errorf("failed to set ticket ID: %w", err)
	}

	r.logger.Infow("ticket created", "id", model.ID, "creator_id", model.CreatorID)
	return nil
}

func (r *TicketRepositoryImpl) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)

	// Select forces the zero-valued columns through, so clearing the
	// assignee actually writes NULL.
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Select("title", "description", "priority", "status", "assignee_id", "updated_at").
		Updates(model)
	if result.Error != nil {
		r.logger.Errorw("failed to update ticket", "id", model.ID, "error", result.Error)
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("ticket not found")
	}
	return nil
}

func (r *TicketRepositoryImpl) FindByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NewNotFoundError("ticket not found")
		}
		r.logger.Errorw("failed to find ticket", "id", id, "error", err)
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *TicketRepositoryImpl) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.TicketModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		r.logger.Errorw("failed to check ticket existence", "id", id, "error", err)
		return false, fmt.Errorf("failed to check ticket existence: %w", err)
	}
	return count > 0, nil
}

func (r *TicketRepositoryImpl) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	result := tx.Delete(&models.TicketModel{}, id)
	if result.Error != nil {
		r.logger.Errorw("failed to delete ticket", "id", id, "error", result.Error)
		return fmt.Errorf("failed to delete ticket: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewNotFoundError("ticket not found")
	}
	return nil
}

func (r *TicketRepositoryImpl) UnassignByAssignee(ctx context.Context, assigneeID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.TicketModel{}).
		Where("assignee_id = ?", assigneeID).
		Update("assignee_id", nil).Error; err != nil {
		r.logger.Errorw("failed to unassign tickets", "assignee_id", assigneeID, "error", err)
		return fmt.Errorf("failed to unassign tickets: %w", err)
	}
	return nil
}

func (r *TicketRepositoryImpl) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.TicketModel{})

	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, s.String())
		}
		query = query.Where("status IN ?", statuses)
	}
	if len(filter.Priorities) > 0 {
		priorities := make([]string, 0, len(filter.Priorities))
		for _, p := range filter.Priorities {
			priorities = append(priorities, p.String())
		}
		query = query.Where("priority IN ?", priorities)
	}
	if filter.CreatorID != nil {
		query = query.Where("creator_id = ?", *filter.CreatorID)
	}
	if filter.Unassigned {
		query = query.Where("assignee_id IS NULL")
	} else if filter.AssigneeID != nil {
		query = query.Where("assignee_id = ?", *filter.AssigneeID)
	}
	if filter.Title != "" {
		query = query.Where("title LIKE ?", "%"+filter.Title+"%")
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", filter.DateFrom.UnixMilli())
	}
	if filter.DateTo != nil {
		query = query.Where("created_at <= ?", filter.DateTo.UnixMilli())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count tickets", "error", err)
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	sortBy := filter.SortBy
	if !allowedTicketSortByFields[sortBy] {
		sortBy = "created_at"
	}
	sortOrder := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortOrder = "ASC"
	}
	query = query.Order(sortBy + " " + sortOrder)

	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}

	var rows []*models.TicketModel
	if err := query.Find(&rows).Error; err != nil {
		r.logger.Errorw("failed to list tickets", "error", err)
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]*ticket.Ticket, 0, len(rows))
	for _, row := range rows {
		t, err := r.mapper.ToDomain(row)
		if err != nil {
			r.logger.Errorw("failed to map ticket", "id", row.ID, "error", err)
			return nil, 0, fmt.Errorf("failed to map ticket: %w", err)
		}
		tickets = append(tickets, t)
	}

	return tickets, total, nil
}

func (r *TicketRepositoryImpl) CountByStatus(ctx context.Context) (ticket.StatusCounts, error) {
	var rows []struct {
		Status string
		Total  int64
	}

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Model(&models.TicketModel{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error; err != nil {
		r.logger.Errorw("failed to count tickets by status", "error", err)
		return ticket.StatusCounts{}, fmt.Errorf("failed to count tickets by status: %w", err)
	}

	var counts ticket.StatusCounts
	for _, row := range rows {
		switch row.Status {
		case "open":
			counts.Open = row.Total
		case "in_progress":
			counts.InProgress = row.Total
		case "closed":
			counts.Closed = row.Total
		}
	}
	return counts, nil
}
