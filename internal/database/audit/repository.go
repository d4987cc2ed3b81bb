// Package audit stores the event log: who changed the formula, when scores
// were recomputed, the outcome of scheduled integrity audits.
package audit

import (
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/bookstack/internal/entities"
)

const defaultPageSize = 50

// Filter narrows an event query. Zero fields match everything.
type Filter struct {
	UserID    uint
	EventType entities.AuditEventType
	Status    entities.AuditStatus
	Since     time.Time
	Limit     int
	Offset    int
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent saves an audit event to the database.
func (r *Repository) LogEvent(event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}
	return r.db.Create(event).Error
}

// Query returns a page of events matching f, most recent first, and the
// total number of matches.
func (r *Repository) Query(f Filter) ([]entities.AuditEvent, int64, error) {
	var events []entities.AuditEvent
	var total int64

	query := r.db.Model(&entities.AuditEvent{})
	if f.UserID > 0 {
		query = query.Where("user_id = ?", f.UserID)
	}
	if f.EventType != "" {
		query = query.Where("event_type = ?", f.EventType)
	}
	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if !f.Since.IsZero() {
		query = query.Where("created_at > ?", f.Since)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	err := query.Order("created_at DESC, id DESC").Limit(limit).Offset(offset).Find(&events).Error
	return events, total, err
}

// GetEvents retrieves paginated audit events for a user (0 = every user).
func (r *Repository) GetEvents(userID uint, limit, offset int) ([]entities.AuditEvent, int64, error) {
	return r.Query(Filter{UserID: userID, Limit: limit, Offset: offset})
}

// LatestOfType returns the most recent event of a type, or nil.
func (r *Repository) LatestOfType(userID uint, eventType entities.AuditEventType) (*entities.AuditEvent, error) {
	events, _, err := r.Query(Filter{UserID: userID, EventType: eventType, Limit: 1})
	if err != nil || len(events) == 0 {
		return nil, err
	}
	return &events[0], nil
}

// DeleteOldEvents removes audit events older than the specified time.
// Returns the number of deleted events.
func (r *Repository) DeleteOldEvents(olderThan time.Time) (int64, error) {
	result := r.db.Where("created_at < ?", olderThan).Delete(&entities.AuditEvent{})
	return result.RowsAffected, result.Error
}

// GetEventByID retrieves a single audit event by ID.
func (r *Repository) GetEventByID(id uint) (*entities.AuditEvent, error) {
	var event entities.AuditEvent
	err := r.db.First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}
