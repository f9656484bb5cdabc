package actions

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
	"github.com/partsdesk/partsdesk-backend/pkg/enums"
	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
	"github.com/partsdesk/partsdesk-backend/pkg/logger"
)

type stubActionRepo struct {
	actions  map[uint]*models.FollowUpAction
	history  []models.ActionHistory
	deps     []models.ActionDependency
	count    int64
	nextNum  int
	saved    []*models.FollowUpAction
	savedAll []*models.FollowUpAction
}

func newStubActionRepo() *stubActionRepo {
	return &stubActionRepo{actions: map[uint]*models.FollowUpAction{}, nextNum: 1}
}

func (s *stubActionRepo) Create(_ context.Context, action *models.FollowUpAction) (*models.FollowUpAction, error) {
	action.ID = uint(len(s.actions) + 1)
	s.actions[action.ID] = action
	return action, nil
}

func (s *stubActionRepo) FindByID(_ context.Context, complaintID, actionID uint) (*models.FollowUpAction, error) {
	action, ok := s.actions[actionID]
	if !ok || action.ComplaintID != complaintID {
		return nil, nil
	}
	return action, nil
}

func (s *stubActionRepo) ListByComplaint(_ context.Context, complaintID uint, _ ActionFilter) ([]models.FollowUpAction, error) {
	var rows []models.FollowUpAction
	for _, action := range s.actions {
		if action.ComplaintID == complaintID {
			rows = append(rows, *action)
		}
	}
	return rows, nil
}

func (s *stubActionRepo) CountByComplaint(context.Context, uint) (int64, error) {
	return s.count, nil
}

func (s *stubActionRepo) NextActionNumber(context.Context, uint) (int, error) {
	return s.nextNum, nil
}

func (s *stubActionRepo) Save(_ context.Context, action *models.FollowUpAction) error {
	s.saved = append(s.saved, action)
	s.actions[action.ID] = action
	return nil
}

func (s *stubActionRepo) SaveAll(_ context.Context, actions []*models.FollowUpAction) error {
	s.savedAll = actions
	for _, action := range actions {
		s.actions[action.ID] = action
	}
	return nil
}

func (s *stubActionRepo) RecordHistory(_ context.Context, row *models.ActionHistory) error {
	s.history = append(s.history, *row)
	return nil
}

func (s *stubActionRepo) ListHistory(context.Context, uint) ([]models.ActionHistory, error) {
	return s.history, nil
}

func (s *stubActionRepo) CreateDependency(_ context.Context, row *models.ActionDependency) (*models.ActionDependency, error) {
	row.ID = uint(len(s.deps) + 1)
	s.deps = append(s.deps, *row)
	return row, nil
}

func (s *stubActionRepo) ListDependencies(_ context.Context, actionID uint) ([]models.ActionDependency, error) {
	var rows []models.ActionDependency
	for _, dep := range s.deps {
		if dep.ActionID == actionID {
			rows = append(rows, dep)
		}
	}
	return rows, nil
}

func (s *stubActionRepo) HasDependency(_ context.Context, actionID, dependsOnActionID uint) (bool, error) {
	for _, dep := range s.deps {
		if dep.ActionID == actionID && dep.DependsOnActionID == dependsOnActionID {
			return true, nil
		}
	}
	return false, nil
}

type stubComplaintLookup struct {
	complaint *models.Complaint
}

func (s *stubComplaintLookup) FindByID(context.Context, uint) (*models.Complaint, error) {
	return s.complaint, nil
}

type stubPersonLookup struct {
	person *models.ResponsiblePerson
}

func (s *stubPersonLookup) FindActiveByName(context.Context, string) (*models.ResponsiblePerson, error) {
	return s.person, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func newTestService(t *testing.T, repo *stubActionRepo) Service {
	t.Helper()
	svc, err := NewService(repo,
		&stubComplaintLookup{complaint: &models.Complaint{ID: 1}},
		&stubPersonLookup{person: &models.ResponsiblePerson{ID: 1, Name: "Jordan Fields", IsActive: true}},
		testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func TestCreateAssignsNextNumberAndRecordsHistory(t *testing.T) {
	repo := newStubActionRepo()
	repo.nextNum = 3
	svc := newTestService(t, repo)

	dto, err := svc.Create(context.Background(), 1, CreateActionInput{
		ActionText:        "Inspect incoming stock",
		ResponsiblePerson: "Jordan Fields",
	}, "qa@partsdesk.io")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.ActionNumber != 3 {
		t.Fatalf("expected action number 3, got %d", dto.ActionNumber)
	}
	if dto.Status != enums.ActionStatusOpen {
		t.Fatalf("new actions start open, got %s", dto.Status)
	}
	if dto.Priority != enums.ActionPriorityMedium {
		t.Fatalf("priority should default to medium, got %s", dto.Priority)
	}
	if len(repo.history) != 1 || repo.history[0].FieldChanged != "created" {
		t.Fatalf("expected creation audit row, got %+v", repo.history)
	}
}

func TestCreateEnforcesActionCap(t *testing.T) {
	repo := newStubActionRepo()
	repo.count = 10
	svc := newTestService(t, repo)

	_, err := svc.Create(context.Background(), 1, CreateActionInput{
		ActionText:        "One too many",
		ResponsiblePerson: "Jordan Fields",
	}, "")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestCreateRejectsInactivePerson(t *testing.T) {
	repo := newStubActionRepo()
	svc, err := NewService(repo,
		&stubComplaintLookup{complaint: &models.Complaint{ID: 1}},
		&stubPersonLookup{}, // lookup finds nobody
		testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, err = svc.Create(context.Background(), 1, CreateActionInput{
		ActionText:        "Check supplier paperwork",
		ResponsiblePerson: "Ghost",
	}, "")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusStampsTimestampsAndAuditsChange(t *testing.T) {
	repo := newStubActionRepo()
	repo.actions[5] = &models.FollowUpAction{
		ID: 5, ComplaintID: 1, ActionNumber: 1,
		ActionText: "Contact supplier", ResponsiblePerson: "Jordan Fields",
		Status: enums.ActionStatusInProgress,
	}
	svc := newTestService(t, repo)

	status := enums.ActionStatusClosed
	dto, err := svc.Update(context.Background(), 1, 5, UpdateActionInput{Status: &status}, "qa@partsdesk.io")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.CompletedAt == nil {
		t.Fatal("closing should stamp completed_at")
	}
	if dto.CompletionPercentage != 100 {
		t.Fatalf("closing should force completion to 100, got %d", dto.CompletionPercentage)
	}
	if len(repo.history) != 1 || repo.history[0].FieldChanged != "status" {
		t.Fatalf("expected one status audit row, got %+v", repo.history)
	}
}

func TestUpdateWithoutChangesWritesNoHistory(t *testing.T) {
	repo := newStubActionRepo()
	repo.actions[5] = &models.FollowUpAction{
		ID: 5, ComplaintID: 1, ActionText: "Contact supplier",
		ResponsiblePerson: "Jordan Fields", Status: enums.ActionStatusOpen,
	}
	svc := newTestService(t, repo)

	same := "Contact supplier"
	_, err := svc.Update(context.Background(), 1, 5, UpdateActionInput{ActionText: &same}, "")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if len(repo.history) != 0 {
		t.Fatalf("no-op update should not write history, got %+v", repo.history)
	}
	if len(repo.saved) != 0 {
		t.Fatal("no-op update should not save")
	}
}

func TestCancelSoftDeletes(t *testing.T) {
	repo := newStubActionRepo()
	repo.actions[5] = &models.FollowUpAction{
		ID: 5, ComplaintID: 1, Status: enums.ActionStatusOpen,
	}
	svc := newTestService(t, repo)

	dto, err := svc.Cancel(context.Background(), 1, 5, "qa@partsdesk.io")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if dto.Status != enums.ActionStatusCancelled {
		t.Fatalf("expected cancelled, got %s", dto.Status)
	}
	if len(repo.history) != 1 || repo.history[0].ChangeReason == nil {
		t.Fatalf("expected audited cancellation, got %+v", repo.history)
	}
}

func TestStartBlockedBySequentialPrerequisite(t *testing.T) {
	repo := newStubActionRepo()
	repo.actions[5] = &models.FollowUpAction{ID: 5, ComplaintID: 1, ActionNumber: 2, Status: enums.ActionStatusOpen}
	repo.actions[4] = &models.FollowUpAction{ID: 4, ComplaintID: 1, ActionNumber: 1, Status: enums.ActionStatusInProgress}
	repo.deps = []models.ActionDependency{{ID: 1, ActionID: 5, DependsOnActionID: 4, DependencyType: enums.DependencyTypeSequential}}
	svc := newTestService(t, repo)

	_, err := svc.Start(context.Background(), 1, 5, "")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestStartIgnoresParallelDependencies(t *testing.T) {
	repo := newStubActionRepo()
	repo.actions[5] = &models.FollowUpAction{ID: 5, ComplaintID: 1, ActionNumber: 2, Status: enums.ActionStatusOpen}
	repo.actions[4] = &models.FollowUpAction{ID: 4, ComplaintID: 1, ActionNumber: 1, Status: enums.ActionStatusOpen}
	repo.deps = []models.ActionDependency{{ID: 1, ActionID: 5, DependsOnActionID: 4, DependencyType: enums.DependencyTypeParallel}}
	svc := newTestService(t, repo)

	dto, err := svc.Start(context.Background(), 1, 5, "")
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if dto.Status != enums.ActionStatusInProgress {
		t.Fatalf("expected in_progress, got %s", dto.Status)
	}
	if dto.StartedAt == nil {
		t.Fatal("starting should stamp started_at")
	}
}

func TestStartRequiresOpenStatus(t *testing.T) {
	repo := newStubActionRepo()
	repo.actions[5] = &models.FollowUpAction{ID: 5, ComplaintID: 1, Status: enums.ActionStatusClosed}
	svc := newTestService(t, repo)

	_, err := svc.Start(context.Background(), 1, 5, "")
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestReorderShiftsNumbers(t *testing.T) {
	repo := newStubActionRepo()
	repo.actions[1] = &models.FollowUpAction{ID: 1, ComplaintID: 1, ActionNumber: 1}
	repo.actions[2] = &models.FollowUpAction{ID: 2, ComplaintID: 1, ActionNumber: 2}
	repo.actions[3] = &models.FollowUpAction{ID: 3, ComplaintID: 1, ActionNumber: 3}
	svc := newTestService(t, repo)

	dto, err := svc.Reorder(context.Background(), 1, 1, 3, "qa@partsdesk.io")
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if dto.ActionNumber != 3 {
		t.Fatalf("moved action should land at 3, got %d", dto.ActionNumber)
	}
	if repo.actions[2].ActionNumber != 1 || repo.actions[3].ActionNumber != 2 {
		t.Fatalf("intermediate actions should shift up: %d, %d",
			repo.actions[2].ActionNumber, repo.actions[3].ActionNumber)
	}
}

func TestAddDependencyRejectsCircular(t *testing.T) {
	repo := newStubActionRepo()
	repo.actions[1] = &models.FollowUpAction{ID: 1, ComplaintID: 1, ActionNumber: 1}
	repo.actions[2] = &models.FollowUpAction{ID: 2, ComplaintID: 1, ActionNumber: 2}
	repo.deps = []models.ActionDependency{{ID: 1, ActionID: 2, DependsOnActionID: 1}}
	svc := newTestService(t, repo)

	_, err := svc.AddDependency(context.Background(), 1, 1, CreateDependencyInput{DependsOnActionID: 2})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeStateConflict {
		t.Fatalf("expected state conflict, got %v", err)
	}
}

func TestAddDependencyRejectsSelf(t *testing.T) {
	svc := newTestService(t, newStubActionRepo())

	_, err := svc.AddDependency(context.Background(), 1, 7, CreateDependencyInput{DependsOnActionID: 7})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestMetricsSummarizesActions(t *testing.T) {
	yesterday := time.Now().UTC().Add(-24 * time.Hour)
	repo := newStubActionRepo()
	repo.actions[1] = &models.FollowUpAction{ID: 1, ComplaintID: 1, Status: enums.ActionStatusClosed, Priority: enums.ActionPriorityHigh}
	repo.actions[2] = &models.FollowUpAction{ID: 2, ComplaintID: 1, Status: enums.ActionStatusOpen, Priority: enums.ActionPriorityMedium, DueDate: &yesterday}
	repo.actions[3] = &models.FollowUpAction{ID: 3, ComplaintID: 1, Status: enums.ActionStatusInProgress, Priority: enums.ActionPriorityMedium}
	repo.actions[4] = &models.FollowUpAction{ID: 4, ComplaintID: 1, Status: enums.ActionStatusCancelled, Priority: enums.ActionPriorityLow}
	svc := newTestService(t, repo)

	metrics, err := svc.Metrics(context.Background(), 1)
	if err != nil {
		t.Fatalf("metrics: %v", err)
	}
	if metrics.TotalActions != 4 {
		t.Fatalf("expected 4 total, got %d", metrics.TotalActions)
	}
	if metrics.OpenActions != 2 {
		t.Fatalf("cancelled actions do not count as open, got %d", metrics.OpenActions)
	}
	if metrics.OverdueActions != 1 {
		t.Fatalf("expected 1 overdue, got %d", metrics.OverdueActions)
	}
	if metrics.CompletionRate != 25 {
		t.Fatalf("expected 25 percent completion, got %v", metrics.CompletionRate)
	}
	if metrics.ActionsByPriority["medium"] != 2 {
		t.Fatalf("unexpected priority grouping: %+v", metrics.ActionsByPriority)
	}
}
