package analytics

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
	"github.com/partsdesk/partsdesk-backend/pkg/enums"
)

// IssueTypeCount is one row of the failure mode ranking.
type IssueTypeCount struct {
	IssueType enums.IssueType `json:"issueType"`
	Count     int64           `json:"count"`
}

// DailyCount is one day of the trend series.
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// Repository runs the aggregate queries backing the analytics endpoints.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs an analytics repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CountAll returns the total number of complaints.
func (r *Repository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Complaint{}).Count(&count).Error
	return count, err
}

// CountByStatus returns how many complaints sit in one status.
func (r *Repository) CountByStatus(ctx context.Context, status enums.ComplaintStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Complaint{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// TopIssueTypes ranks issue types by complaint count, most frequent first.
func (r *Repository) TopIssueTypes(ctx context.Context, limit int) ([]IssueTypeCount, error) {
	var rows []IssueTypeCount
	err := r.db.WithContext(ctx).
		Model(&models.Complaint{}).
		Select("issue_type, COUNT(id) AS count").
		Group("issue_type").
		Order("count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// DailyCounts returns per-day complaint counts since the given time.
func (r *Repository) DailyCounts(ctx context.Context, since time.Time) ([]DailyCount, error) {
	var rows []DailyCount
	err := r.db.WithContext(ctx).
		Model(&models.Complaint{}).
		Select("DATE(created_at) AS date, COUNT(id) AS count").
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("date ASC").
		Scan(&rows).Error
	return rows, err
}

// ResolvedDuration is the open-to-resolved span of one complaint.
type ResolvedDuration struct {
	IssueType enums.IssueType
	Hours     float64
}

// ResolvedDurations loads the resolution span of every resolved
// complaint.
func (r *Repository) ResolvedDurations(ctx context.Context) ([]ResolvedDuration, error) {
	var rows []models.Complaint
	err := r.db.WithContext(ctx).
		Model(&models.Complaint{}).
		Where("resolved_at IS NOT NULL").
		Select("issue_type", "created_at", "resolved_at").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]ResolvedDuration, 0, len(rows))
	for i := range rows {
		out = append(out, ResolvedDuration{
			IssueType: rows[i].IssueType,
			Hours:     rows[i].ResolvedAt.Sub(rows[i].CreatedAt).Hours(),
		})
	}
	return out, nil
}
