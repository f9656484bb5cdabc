package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/partsdesk/partsdesk-backend/pkg/enums"
	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
)

// trendWindow is how far back the sparkline series reaches.
const trendWindow = 30 * 24 * time.Hour

type analyticsRepository interface {
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status enums.ComplaintStatus) (int64, error)
	TopIssueTypes(ctx context.Context, limit int) ([]IssueTypeCount, error)
	DailyCounts(ctx context.Context, since time.Time) ([]DailyCount, error)
	ResolvedDurations(ctx context.Context) ([]ResolvedDuration, error)
}

// RARMetricsDTO reports return, authorization and rejection rates as
// percentages of all complaints.
type RARMetricsDTO struct {
	ReturnRate        float64 `json:"returnRate"`
	AuthorizationRate float64 `json:"authorizationRate"`
	RejectionRate     float64 `json:"rejectionRate"`
	TotalComplaints   int64   `json:"totalComplaints"`
	Period            string  `json:"period"`
}

// TrendsDTO carries parallel label and count series for sparklines.
type TrendsDTO struct {
	Labels []string `json:"labels"`
	Data   []int64  `json:"data"`
}

// ResolutionDTO reports the mean time to resolution, overall and per
// issue type.
type ResolutionDTO struct {
	MeanHours     float64            `json:"mean_hours"`
	ResolvedCount int                `json:"resolved_count"`
	ByIssueType   map[string]float64 `json:"by_issue_type"`
}

// Service exposes the analytics read models.
type Service interface {
	RARMetrics(ctx context.Context) (*RARMetricsDTO, error)
	FailureModes(ctx context.Context) ([]IssueTypeCount, error)
	Trends(ctx context.Context) (*TrendsDTO, error)
	MeanTimeToResolution(ctx context.Context) (*ResolutionDTO, error)
}

type service struct {
	repo analyticsRepository
}

// NewService builds an analytics service.
func NewService(repo analyticsRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("analytics repository required")
	}
	return &service{repo: repo}, nil
}

// RARMetrics computes the all-time return, authorization and rejection
// rates.
func (s *service) RARMetrics(ctx context.Context) (*RARMetricsDTO, error) {
	total, err := s.repo.CountAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count complaints")
	}

	out := &RARMetricsDTO{TotalComplaints: total, Period: "all_time"}
	if total == 0 {
		return out, nil
	}

	for _, entry := range []struct {
		status enums.ComplaintStatus
		rate   *float64
	}{
		{enums.ComplaintStatusReturned, &out.ReturnRate},
		{enums.ComplaintStatusAuthorized, &out.AuthorizationRate},
		{enums.ComplaintStatusRejected, &out.RejectionRate},
	} {
		count, err := s.repo.CountByStatus(ctx, entry.status)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count complaints by status")
		}
		*entry.rate = float64(count) / float64(total) * 100
	}
	return out, nil
}

// FailureModes ranks the top 3 issue types by frequency.
func (s *service) FailureModes(ctx context.Context) ([]IssueTypeCount, error) {
	rows, err := s.repo.TopIssueTypes(ctx, 3)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "rank issue types")
	}
	if rows == nil {
		rows = []IssueTypeCount{}
	}
	return rows, nil
}

// Trends returns daily complaint counts for the last 30 days.
func (s *service) Trends(ctx context.Context) (*TrendsDTO, error) {
	since := time.Now().UTC().Add(-trendWindow)
	rows, err := s.repo.DailyCounts(ctx, since)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "daily complaint counts")
	}
	out := &TrendsDTO{Labels: make([]string, 0, len(rows)), Data: make([]int64, 0, len(rows))}
	for _, row := range rows {
		out.Labels = append(out.Labels, row.Date)
		out.Data = append(out.Data, row.Count)
	}
	return out, nil
}

// MeanTimeToResolution reports the average open-to-resolved span,
// overall and broken down by issue type.
func (s *service) MeanTimeToResolution(ctx context.Context) (*ResolutionDTO, error) {
	rows, err := s.repo.ResolvedDurations(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load resolution spans")
	}

	out := &ResolutionDTO{ResolvedCount: len(rows), ByIssueType: map[string]float64{}}
	if len(rows) == 0 {
		return out, nil
	}

	var total float64
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, row := range rows {
		total += row.Hours
		key := string(row.IssueType)
		sums[key] += row.Hours
		counts[key]++
	}
	out.MeanHours = total / float64(len(rows))
	for key, sum := range sums {
		out.ByIssueType[key] = sum / float64(counts[key])
	}
	return out, nil
}
