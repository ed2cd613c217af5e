package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"ticketsys/internal/domain/audit"
	"ticketsys/internal/infrastructure/persistence/mappers"
	"ticketsys/internal/infrastructure/persistence/models"
	"ticketsys/internal/shared/db"
	"ticketsys/internal/shared/logger"
)

// auditLogRow carries the model plus the usernames resolved from the joined
// user rows. The usernames come back empty when the weak reference was
// detached.
type auditLogRow struct {
	models.AuditLogModel
	ActorUsername  string
	TargetUsername string
}

type AuditLogRepositoryImpl struct {
	db     *gorm.DB
	mapper mappers.AuditLogMapper
	logger logger.Interface
}

func NewAuditLogRepository(db *gorm.DB, logger logger.Interface) audit.Repository {
	return &AuditLogRepositoryImpl{
		db:     db,
		mapper: mappers.NewAuditLogMapper(),
		logger: logger,
	}
}

func (r *AuditLogRepositoryImpl) Append(ctx context.Context, entry *audit.Entry) error {
	model := r.mapper.ToModel(entry)

	tx := db.GetTxFromContext(ctx, r.db)
	if err := tx.Create(model).Error; err != nil {
		r.logger.Errorw("failed to append audit entry", "action", entry.Action, "error", err)
		return fmt.Errorf("failed to append audit entry: %w", err)
	}

	entry.ID = model.ID
	return nil
}

// List joins the users table twice so callers can filter on the actor and
// target usernames and render them without extra lookups.
func (r *AuditLogRepositoryImpl) List(ctx context.Context, filter audit.Filter) ([]*audit.Entry, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.Table("audit_logs").
		Select("audit_logs.*, COALESCE(actor_user.username, '') AS actor_username, COALESCE(target_user.username, '') AS target_username").
		Joins("LEFT JOIN users AS actor_user ON actor_user.id = audit_logs.actor_id").
		Joins("LEFT JOIN users AS target_user ON target_user.id = audit_logs.target_user_id")

	if filter.Actor != "" {
		query = query.Where("actor_user.username LIKE ?", "%"+filter.Actor+"%")
	}
	if filter.Target != "" {
		query = query.Where("target_user.username LIKE ?", "%"+filter.Target+"%")
	}
	if filter.Action != "" {
		query = query.Where("audit_logs.action LIKE ?", "%"+filter.Action+"%")
	}
	if filter.From != nil {
		query = query.Where("audit_logs.timestamp >= ?", filter.From.UnixMilli())
	}
	if filter.To != nil {
		query = query.Where("audit_logs.timestamp <= ?", filter.To.UnixMilli())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		r.logger.Errorw("failed to count audit entries", "error", err)
		return nil, 0, fmt.Errorf("failed to count audit entries: %w", err)
	}

	query = query.Order("audit_logs.timestamp DESC").Order("audit_logs.id DESC")
	if filter.PageSize > 0 {
		page := filter.Page
		if page < 1 {
			page = 1
		}
		query = query.Limit(filter.PageSize).Offset((page - 1) * filter.PageSize)
	}

	var rows []*auditLogRow
	if err := query.Scan(&rows).Error; err != nil {
		r.logger.Errorw("failed to list audit entries", "error", err)
		return nil, 0, fmt.Errorf("failed to list audit entries: %w", err)
	}

	entries := make([]*audit.Entry, 0, len(rows))
	for _, row := range rows {
		entry := r.mapper.ToDomain(&row.AuditLogModel)
		entry.ActorUsername = row.ActorUsername
		entry.TargetUsername = row.TargetUsername
		entries = append(entries, entry)
	}

	return entries, total, nil
}

func (r *AuditLogRepositoryImpl) CountByAction(ctx context.Context, from, to *time.Time) ([]audit.ActionCount, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.Table("audit_logs").
		Select("action, COUNT(*) AS total").
		Group("action").
		Order("total DESC")
	query = applyTimestampRange(query, from, to)

	var rows []struct {
		Action string
		Total  int64
	}
	if err := query.Scan(&rows).Error; err != nil {
		r.logger.Errorw("failed to count audit entries by action", "error", err)
		return nil, fmt.Errorf("failed to count audit entries by action: %w", err)
	}

	counts := make([]audit.ActionCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, audit.ActionCount{Action: audit.Action(row.Action), Total: row.Total})
	}
	return counts, nil
}

func (r *AuditLogRepositoryImpl) CountByActor(ctx context.Context, actions []audit.Action, from, to *time.Time) ([]audit.ActorCount, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	query := tx.Table("audit_logs").
		Select("audit_logs.actor_id, COALESCE(actor_user.username, '') AS username, COUNT(*) AS total").
		Joins("LEFT JOIN users AS actor_user ON actor_user.id = audit_logs.actor_id").
		Where("audit_logs.actor_id IS NOT NULL").
		Group("audit_logs.actor_id").
		Group("actor_user.username").
		Order("total DESC")
	if len(actions) > 0 {
		tags := make([]string, 0, len(actions))
		for _, action := range actions {
			tags = append(tags, string(action))
		}
		query = query.Where("audit_logs.action IN ?", tags)
	}
	query = applyTimestampRange(query, from, to)

	var rows []struct {
		ActorID  uint
		Username string
		Total    int64
	}
	if err := query.Scan(&rows).Error; err != nil {
		r.logger.Errorw("failed to count audit entries by actor", "error", err)
		return nil, fmt.Errorf("failed to count audit entries by actor: %w", err)
	}

	counts := make([]audit.ActorCount, 0, len(rows))
	for _, row := range rows {
		counts = append(counts, audit.ActorCount{ActorID: row.ActorID, Username: row.Username, Total: row.Total})
	}
	return counts, nil
}

// DetachTicket nulls the ticket reference on every entry that points at the
// removed ticket. The entries themselves stay.
func (r *AuditLogRepositoryImpl) DetachTicket(ctx context.Context, ticketID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.AuditLogModel{}).
		Where("ticket_id = ?", ticketID).
		Update("ticket_id", nil).Error; err != nil {
		r.logger.Errorw("failed to detach ticket from audit entries", "ticket_id", ticketID, "error", err)
		return fmt.Errorf("failed to detach ticket from audit entries: %w", err)
	}
	return nil
}

// DetachUser nulls both the actor and target references on every entry that
// points at the removed user.
func (r *AuditLogRepositoryImpl) DetachUser(ctx context.Context, userID uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Model(&models.AuditLogModel{}).
		Where("actor_id = ?", userID).
		Update("actor_id", nil).Error; err != nil {
		r.logger.Errorw("failed to detach actor from audit entries", "user_id", userID, "error", err)
		return fmt.Errorf("failed to detach actor from audit entries: %w", err)
	}
	if err := tx.Model(&models.AuditLogModel{}).
		Where("target_user_id = ?", userID).
		Update("target_user_id", nil).Error; err != nil {
		r.logger.Errorw("failed to detach target from audit entries", "user_id", userID, "error", err)
		return fmt.Errorf("failed to detach target from audit entries: %w", err)
	}
	return nil
}

func applyTimestampRange(query *gorm.DB, from, to *time.Time) *gorm.DB {
	if from != nil {
		query = query.Where("audit_logs.timestamp >= ?", from.UnixMilli())
	}
	if to != nil {
		query = query.Where("audit_logs.timestamp <= ?", to.UnixMilli())
	}
	return query
}
