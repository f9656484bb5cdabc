package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/partsdesk/partsdesk-backend/pkg/enums"
)

type stubAnalyticsRepo struct {
	total    int64
	byStatus map[enums.ComplaintStatus]int64
	top      []IssueTypeCount
	daily    []DailyCount
	resolved []ResolvedDuration
}

func (s *stubAnalyticsRepo) CountAll(context.Context) (int64, error) {
	return s.total, nil
}

func (s *stubAnalyticsRepo) CountByStatus(_ context.Context, status enums.ComplaintStatus) (int64, error) {
	return s.byStatus[status], nil
}

func (s *stubAnalyticsRepo) TopIssueTypes(context.Context, int) ([]IssueTypeCount, error) {
	return s.top, nil
}

func (s *stubAnalyticsRepo) DailyCounts(context.Context, time.Time) ([]DailyCount, error) {
	return s.daily, nil
}

func (s *stubAnalyticsRepo) ResolvedDurations(context.Context) ([]ResolvedDuration, error) {
	return s.resolved, nil
}

func TestRARMetricsComputesRates(t *testing.T) {
	repo := &stubAnalyticsRepo{
		total: 200,
		byStatus: map[enums.ComplaintStatus]int64{
			enums.ComplaintStatusReturned:   20,
			enums.ComplaintStatusAuthorized: 50,
			enums.ComplaintStatusRejected:   10,
		},
	}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	out, err := svc.RARMetrics(context.Background())
	if err != nil {
		t.Fatalf("rar metrics: %v", err)
	}
	if out.ReturnRate != 10 || out.AuthorizationRate != 25 || out.RejectionRate != 5 {
		t.Fatalf("unexpected rates: %+v", out)
	}
	if out.Period != "all_time" {
		t.Fatalf("unexpected period %q", out.Period)
	}
}

func TestRARMetricsWithNoComplaints(t *testing.T) {
	svc, _ := NewService(&stubAnalyticsRepo{})

	out, err := svc.RARMetrics(context.Background())
	if err != nil {
		t.Fatalf("rar metrics: %v", err)
	}
	if out.ReturnRate != 0 || out.TotalComplaints != 0 {
		t.Fatalf("empty dataset should produce zero rates, got %+v", out)
	}
}

func TestFailureModesNeverReturnsNil(t *testing.T) {
	svc, _ := NewService(&stubAnalyticsRepo{})

	rows, err := svc.FailureModes(context.Background())
	if err != nil {
		t.Fatalf("failure modes: %v", err)
	}
	if rows == nil {
		t.Fatal("expected empty slice, not nil")
	}
}

func TestTrendsSplitsLabelsAndData(t *testing.T) {
	repo := &stubAnalyticsRepo{daily: []DailyCount{
		{Date: "2026-08-01", Count: 4},
		{Date: "2026-08-02", Count: 7},
	}}
	svc, _ := NewService(repo)

	out, err := svc.Trends(context.Background())
	if err != nil {
		t.Fatalf("trends: %v", err)
	}
	if len(out.Labels) != 2 || out.Labels[1] != "2026-08-02" {
		t.Fatalf("unexpected labels: %v", out.Labels)
	}
	if len(out.Data) != 2 || out.Data[0] != 4 {
		t.Fatalf("unexpected data: %v", out.Data)
	}
}

func TestMeanTimeToResolution(t *testing.T) {
	svc, _ := NewService(&stubAnalyticsRepo{resolved: []ResolvedDuration{
		{IssueType: enums.IssueTypeDamaged, Hours: 24},
		{IssueType: enums.IssueTypeDamaged, Hours: 48},
		{IssueType: enums.IssueTypeWrongPart, Hours: 12},
	}})

	out, err := svc.MeanTimeToResolution(context.Background())
	if err != nil {
		t.Fatalf("mttr: %v", err)
	}
	if out.MeanHours != 28 || out.ResolvedCount != 3 {
		t.Fatalf("unexpected mttr: %+v", out)
	}
	if out.ByIssueType[string(enums.IssueTypeDamaged)] != 36 {
		t.Fatalf("unexpected per-type mean: %+v", out.ByIssueType)
	}
	if out.ByIssueType[string(enums.IssueTypeWrongPart)] != 12 {
		t.Fatalf("unexpected per-type mean: %+v", out.ByIssueType)
	}
}

func TestMeanTimeToResolutionEmpty(t *testing.T) {
	svc, _ := NewService(&stubAnalyticsRepo{})

	out, err := svc.MeanTimeToResolution(context.Background())
	if err != nil {
		t.Fatalf("mttr: %v", err)
	}
	if out.MeanHours != 0 || out.ResolvedCount != 0 {
		t.Fatalf("empty dataset should produce zeros, got %+v", out)
	}
}
