package actions

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
	"github.com/partsdesk/partsdesk-backend/pkg/enums"
	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
	"github.com/partsdesk/partsdesk-backend/pkg/logger"
)

// maxActionsPerComplaint caps how many follow-up actions one complaint
// may carry.
const maxActionsPerComplaint = 10

type actionRepository interface {
	Create(ctx context.Context, action *models.FollowUpAction) (*models.FollowUpAction, error)
	FindByID(ctx context.Context, complaintID, actionID uint) (*models.FollowUpAction, error)
	ListByComplaint(ctx context.Context, complaintID uint, filter ActionFilter) ([]models.FollowUpAction, error)
	CountByComplaint(ctx context.Context, complaintID uint) (int64, error)
	NextActionNumber(ctx context.Context, complaintID uint) (int, error)
	Save(ctx context.Context, action *models.FollowUpAction) error
	SaveAll(ctx context.Context, actions []*models.FollowUpAction) error
	RecordHistory(ctx context.Context, row *models.ActionHistory) error
	ListHistory(ctx context.Context, actionID uint) ([]models.ActionHistory, error)
	CreateDependency(ctx context.Context, row *models.ActionDependency) (*models.ActionDependency, error)
	ListDependencies(ctx context.Context, actionID uint) ([]models.ActionDependency, error)
	HasDependency(ctx context.Context, actionID, dependsOnActionID uint) (bool, error)
}

type complaintLookup interface {
	FindByID(ctx context.Context, id uint) (*models.Complaint, error)
}

type personLookup interface {
	FindActiveByName(ctx context.Context, name string) (*models.ResponsiblePerson, error)
}

// Service exposes follow-up action operations, scoped to one complaint
// per call.
type Service interface {
	Create(ctx context.Context, complaintID uint, input CreateActionInput, changedBy string) (*ActionDTO, error)
	List(ctx context.Context, complaintID uint, filter ActionFilter) ([]ActionDTO, error)
	Get(ctx context.Context, complaintID, actionID uint) (*ActionDTO, error)
	Update(ctx context.Context, complaintID, actionID uint, input UpdateActionInput, changedBy string) (*ActionDTO, error)
	Cancel(ctx context.Context, complaintID, actionID uint, changedBy string) (*ActionDTO, error)
	Start(ctx context.Context, complaintID, actionID uint, changedBy string) (*ActionDTO, error)
	Reorder(ctx context.Context, complaintID, actionID uint, newPosition int, changedBy string) (*ActionDTO, error)
	BulkUpdate(ctx context.Context, complaintID uint, input BulkUpdateInput, changedBy string) (*BulkUpdateResultDTO, error)
	History(ctx context.Context, complaintID, actionID uint) ([]HistoryDTO, error)
	AddDependency(ctx context.Context, complaintID, actionID uint, input CreateDependencyInput) (*DependencyDTO, error)
	ListDependencies(ctx context.Context, complaintID, actionID uint) ([]DependencyDTO, error)
	Metrics(ctx context.Context, complaintID uint) (*MetricsDTO, error)
}

type service struct {
	repo       actionRepository
	complaints complaintLookup
	persons    personLookup
	logg       *logger.Logger
}

// NewService builds an action service with its dependencies.
func NewService(repo actionRepository, complaints complaintLookup, persons personLookup, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("action repository required")
	}
	if complaints == nil {
		return nil, fmt.Errorf("complaint lookup required")
	}
	if persons == nil {
		return nil, fmt.Errorf("person lookup required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, complaints: complaints, persons: persons, logg: logg}, nil
}

// CreateActionInput captures a new follow-up action.
type CreateActionInput struct {
	ActionText        string               `json:"action_text" validate:"required,min=1"`
	ResponsiblePerson string               `json:"responsible_person" validate:"required,max=255"`
	DueDate           *time.Time           `json:"due_date"`
	Priority          enums.ActionPriority `json:"priority" validate:"omitempty"`
	Notes             *string              `json:"notes"`
}

// UpdateActionInput applies a partial edit. Nil fields are left untouched.
type UpdateActionInput struct {
	ActionText           *string               `json:"action_text" validate:"omitempty,min=1"`
	ResponsiblePerson    *string               `json:"responsible_person" validate:"omitempty,max=255"`
	DueDate              *time.Time            `json:"due_date"`
	Status               *enums.ActionStatus   `json:"status" validate:"omitempty"`
	Priority             *enums.ActionPriority `json:"priority" validate:"omitempty"`
	Notes                *string               `json:"notes"`
	CompletionPercentage *int                  `json:"completion_percentage" validate:"omitempty,min=0,max=100"`
}

// BulkUpdateInput applies the same partial edit to several actions.
type BulkUpdateInput struct {
	ActionIDs []uint            `json:"action_ids" validate:"required,min=1"`
	Updates   UpdateActionInput `json:"updates"`
}

// CreateDependencyInput links the action to a prerequisite.
type CreateDependencyInput struct {
	DependsOnActionID uint                 `json:"depends_on_action_id" validate:"required"`
	DependencyType    enums.DependencyType `json:"dependency_type" validate:"omitempty"`
}

func (s *service) requireComplaint(ctx context.Context, complaintID uint) error {
	complaint, err := s.complaints.FindByID(ctx, complaintID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load complaint")
	}
	if complaint == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "complaint not found")
	}
	return nil
}

func (s *service) requireAction(ctx context.Context, complaintID, actionID uint) (*models.FollowUpAction, error) {
	action, err := s.repo.FindByID(ctx, complaintID, actionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load action")
	}
	if action == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "action not found")
	}
	return action, nil
}

func (s *service) requireActivePerson(ctx context.Context, name string) error {
	person, err := s.persons.FindActiveByName(ctx, name)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup responsible person")
	}
	if person == nil {
		return pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("responsible person %q not found or inactive", name))
	}
	return nil
}

func (s *service) recordChange(ctx context.Context, actionID uint, field string, oldVal, newVal *string, changedBy string, reason *string) {
	if strings.TrimSpace(changedBy) == "" {
		changedBy = "System"
	}
	row := &models.ActionHistory{
		ActionID:     actionID,
		FieldChanged: field,
		OldValue:     oldVal,
		NewValue:     newVal,
		ChangedBy:    changedBy,
		ChangeReason: reason,
	}
	if err := s.repo.RecordHistory(ctx, row); err != nil {
		s.logg.Error(s.logg.WithField(ctx, "action_id", actionID), "recording action history", err)
	}
}

func strPtr(v string) *string { return &v }

// applyStatusTransition stamps lifecycle timestamps when the status
// moves. Entering in_progress sets started_at, entering a done status
// sets completed_at and forces completion to 100 percent.
func applyStatusTransition(action *models.FollowUpAction, next enums.ActionStatus) {
	if next == enums.ActionStatusInProgress && action.StartedAt == nil {
		now := time.Now().UTC()
		action.StartedAt = &now
	}
	if next.IsDone() && action.CompletedAt == nil {
		now := time.Now().UTC()
		action.CompletedAt = &now
		action.CompletionPercentage = 100
	}
	action.Status = next
}

// Create appends a follow-up action to the complaint, assigning the next
// action number and writing a creation audit row.
func (s *service) Create(ctx context.Context, complaintID uint, input CreateActionInput, changedBy string) (*ActionDTO, error) {
	text := strings.TrimSpace(input.ActionText)
	if text == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "action text is required")
	}
	priority := input.Priority
	if priority == "" {
		priority = enums.ActionPriorityMedium
	}
	if !priority.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid priority")
	}

	if err := s.requireComplaint(ctx, complaintID); err != nil {
		return nil, err
	}

	count, err := s.repo.CountByComplaint(ctx, complaintID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count actions")
	}
	if count >= maxActionsPerComplaint {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("a complaint can carry at most %d actions", maxActionsPerComplaint))
	}

	if err := s.requireActivePerson(ctx, input.ResponsiblePerson); err != nil {
		return nil, err
	}

	number, err := s.repo.NextActionNumber(ctx, complaintID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "next action number")
	}

	row := &models.FollowUpAction{
		ComplaintID:       complaintID,
		ActionNumber:      number,
		ActionText:        text,
		ResponsiblePerson: input.ResponsiblePerson,
		DueDate:           input.DueDate,
		Status:            enums.ActionStatusOpen,
		Priority:          priority,
		Notes:             input.Notes,
	}
	created, err := s.repo.Create(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create action")
	}

	s.recordChange(ctx, created.ID, "created", nil,
		strPtr(fmt.Sprintf("Action #%d created", number)), changedBy, nil)

	s.logg.Info(s.logg.WithComplaintID(ctx, complaintID), "action created")
	return FromModel(created), nil
}

// List returns the complaint's actions in display order.
func (s *service) List(ctx context.Context, complaintID uint, filter ActionFilter) ([]ActionDTO, error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}
	if err := s.requireComplaint(ctx, complaintID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByComplaint(ctx, complaintID, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list actions")
	}
	return FromModels(rows), nil
}

// Get loads one action scoped to its complaint.
func (s *service) Get(ctx context.Context, complaintID, actionID uint) (*ActionDTO, error) {
	action, err := s.requireAction(ctx, complaintID, actionID)
	if err != nil {
		return nil, err
	}
	return FromModel(action), nil
}

// Update applies a partial edit, writing one audit row per changed field.
func (s *service) Update(ctx context.Context, complaintID, actionID uint, input UpdateActionInput, changedBy string) (*ActionDTO, error) {
	action, err := s.requireAction(ctx, complaintID, actionID)
	if err != nil {
		return nil, err
	}

	changes, err := s.applyUpdate(ctx, action, input)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return FromModel(action), nil
	}

	if err := s.repo.Save(ctx, action); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update action")
	}
	for _, c := range changes {
		s.recordChange(ctx, action.ID, c.field, c.oldValue, c.newValue, changedBy, nil)
	}

	s.logg.Info(s.logg.WithComplaintID(ctx, complaintID), "action updated")
	return FromModel(action), nil
}

type fieldChange struct {
	field    string
	oldValue *string
	newValue *string
}

func (s *service) applyUpdate(ctx context.Context, action *models.FollowUpAction, input UpdateActionInput) ([]fieldChange, error) {
	var changes []fieldChange

	if input.ActionText != nil {
		text := strings.TrimSpace(*input.ActionText)
		if text == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "action text cannot be empty")
		}
		if text != action.ActionText {
			changes = append(changes, fieldChange{"action_text", strPtr(action.ActionText), strPtr(text)})
			action.ActionText = text
		}
	}
	if input.ResponsiblePerson != nil && *input.ResponsiblePerson != action.ResponsiblePerson {
		if err := s.requireActivePerson(ctx, *input.ResponsiblePerson); err != nil {
			return nil, err
		}
		changes = append(changes, fieldChange{"responsible_person", strPtr(action.ResponsiblePerson), input.ResponsiblePerson})
		action.ResponsiblePerson = *input.ResponsiblePerson
	}
	if input.DueDate != nil {
		if action.DueDate == nil || !action.DueDate.Equal(*input.DueDate) {
			var old *string
			if action.DueDate != nil {
				old = strPtr(action.DueDate.Format(time.DateOnly))
			}
			changes = append(changes, fieldChange{"due_date", old, strPtr(input.DueDate.Format(time.DateOnly))})
			action.DueDate = input.DueDate
		}
	}
	if input.Priority != nil && *input.Priority != action.Priority {
		if !input.Priority.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid priority")
		}
		changes = append(changes, fieldChange{"priority", strPtr(action.Priority.String()), strPtr(input.Priority.String())})
		action.Priority = *input.Priority
	}
	if input.Notes != nil {
		old := action.Notes
		if old == nil || *old != *input.Notes {
			changes = append(changes, fieldChange{"notes", old, input.Notes})
			action.Notes = input.Notes
		}
	}
	if input.CompletionPercentage != nil && *input.CompletionPercentage != action.CompletionPercentage {
		pct := *input.CompletionPercentage
		if pct < 0 || pct > 100 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "completion percentage must be between 0 and 100")
		}
		changes = append(changes, fieldChange{"completion_percentage",
			strPtr(strconv.Itoa(action.CompletionPercentage)), strPtr(strconv.Itoa(pct))})
		action.CompletionPercentage = pct
	}
	if input.Status != nil && *input.Status != action.Status {
		next := *input.Status
		if !next.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
		}
		changes = append(changes, fieldChange{"status", strPtr(action.Status.String()), strPtr(next.String())})
		applyStatusTransition(action, next)
	}
	return changes, nil
}

// Cancel soft-deletes the action by moving it to cancelled, keeping its
// number and history.
func (s *service) Cancel(ctx context.Context, complaintID, actionID uint, changedBy string) (*ActionDTO, error) {
	action, err := s.requireAction(ctx, complaintID, actionID)
	if err != nil {
		return nil, err
	}
	if action.Status == enums.ActionStatusCancelled {
		return FromModel(action), nil
	}

	old := action.Status
	action.Status = enums.ActionStatusCancelled
	if err := s.repo.Save(ctx, action); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancel action")
	}
	s.recordChange(ctx, action.ID, "status", strPtr(old.String()),
		strPtr(enums.ActionStatusCancelled.String()), changedBy, strPtr("Action deleted"))

	s.logg.Info(s.logg.WithComplaintID(ctx, complaintID), "action cancelled")
	return FromModel(action), nil
}

// Start moves an open action to in_progress once every sequential
// prerequisite is done.
func (s *service) Start(ctx context.Context, complaintID, actionID uint, changedBy string) (*ActionDTO, error) {
	action, err := s.requireAction(ctx, complaintID, actionID)
	if err != nil {
		return nil, err
	}
	if action.Status != enums.ActionStatusOpen {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "action can only be started from open status")
	}

	deps, err := s.repo.ListDependencies(ctx, actionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list dependencies")
	}
	for _, dep := range deps {
		if dep.DependencyType == enums.DependencyTypeParallel {
			continue
		}
		prereq, err := s.repo.FindByID(ctx, complaintID, dep.DependsOnActionID)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load prerequisite")
		}
		if prereq != nil && !prereq.Status.IsDone() {
			return nil, pkgerrors.New(pkgerrors.CodeStateConflict,
				fmt.Sprintf("cannot start: prerequisite action #%d is not done", prereq.ActionNumber))
		}
	}

	old := action.Status
	applyStatusTransition(action, enums.ActionStatusInProgress)
	if err := s.repo.Save(ctx, action); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "start action")
	}
	s.recordChange(ctx, action.ID, "status", strPtr(old.String()),
		strPtr(enums.ActionStatusInProgress.String()), changedBy, strPtr("Action started"))

	s.logg.Info(s.logg.WithComplaintID(ctx, complaintID), "action started")
	return FromModel(action), nil
}

// Reorder moves the action to a new position, shifting the numbers of
// the actions in between.
func (s *service) Reorder(ctx context.Context, complaintID, actionID uint, newPosition int, changedBy string) (*ActionDTO, error) {
	if newPosition < 1 || newPosition > maxActionsPerComplaint {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("position must be between 1 and %d", maxActionsPerComplaint))
	}

	action, err := s.requireAction(ctx, complaintID, actionID)
	if err != nil {
		return nil, err
	}

	all, err := s.repo.ListByComplaint(ctx, complaintID, ActionFilter{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list actions")
	}
	if newPosition > len(all) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "position exceeds action count")
	}

	oldPosition := action.ActionNumber
	if oldPosition == newPosition {
		return FromModel(action), nil
	}

	var dirty []*models.FollowUpAction
	for i := range all {
		row := &all[i]
		if row.ID == action.ID {
			continue
		}
		switch {
		case oldPosition < newPosition && row.ActionNumber > oldPosition && row.ActionNumber <= newPosition:
			row.ActionNumber--
			dirty = append(dirty, row)
		case oldPosition > newPosition && row.ActionNumber >= newPosition && row.ActionNumber < oldPosition:
			row.ActionNumber++
			dirty = append(dirty, row)
		}
	}
	action.ActionNumber = newPosition
	dirty = append(dirty, action)

	if err := s.repo.SaveAll(ctx, dirty); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reorder actions")
	}
	s.recordChange(ctx, action.ID, "action_number",
		strPtr(strconv.Itoa(oldPosition)), strPtr(strconv.Itoa(newPosition)), changedBy, strPtr("Action reordered"))

	s.logg.Info(s.logg.WithComplaintID(ctx, complaintID), "action reordered")
	return FromModel(action), nil
}

// BulkUpdate applies the same partial edit to several actions,
// collecting per-action failures instead of aborting the batch.
func (s *service) BulkUpdate(ctx context.Context, complaintID uint, input BulkUpdateInput, changedBy string) (*BulkUpdateResultDTO, error) {
	if len(input.ActionIDs) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "action_ids is required")
	}

	result := &BulkUpdateResultDTO{FailedUpdates: []BulkUpdateFailed{}}
	for _, actionID := range input.ActionIDs {
		action, err := s.repo.FindByID(ctx, complaintID, actionID)
		if err != nil {
			result.FailedUpdates = append(result.FailedUpdates, BulkUpdateFailed{ActionID: actionID, Error: err.Error()})
			continue
		}
		if action == nil {
			result.FailedUpdates = append(result.FailedUpdates, BulkUpdateFailed{ActionID: actionID, Error: "action not found"})
			continue
		}

		changes, err := s.applyUpdate(ctx, action, input.Updates)
		if err != nil {
			result.FailedUpdates = append(result.FailedUpdates, BulkUpdateFailed{ActionID: actionID, Error: err.Error()})
			continue
		}
		if len(changes) > 0 {
			if err := s.repo.Save(ctx, action); err != nil {
				result.FailedUpdates = append(result.FailedUpdates, BulkUpdateFailed{ActionID: actionID, Error: err.Error()})
				continue
			}
			for _, c := range changes {
				s.recordChange(ctx, action.ID, c.field, c.oldValue, c.newValue, changedBy, strPtr("Bulk update"))
			}
		}
		result.UpdatedCount++
	}

	s.logg.Info(s.logg.WithComplaintID(ctx, complaintID), "actions bulk updated")
	return result, nil
}

// History returns the audit trail of one action, newest first.
func (s *service) History(ctx context.Context, complaintID, actionID uint) ([]HistoryDTO, error) {
	if _, err := s.requireAction(ctx, complaintID, actionID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListHistory(ctx, actionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list history")
	}
	return historyFromModels(rows), nil
}

// AddDependency links the action to a prerequisite on the same
// complaint, rejecting self and circular links.
func (s *service) AddDependency(ctx context.Context, complaintID, actionID uint, input CreateDependencyInput) (*DependencyDTO, error) {
	if input.DependsOnActionID == actionID {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "an action cannot depend on itself")
	}
	depType := input.DependencyType
	if depType == "" {
		depType = enums.DependencyTypeSequential
	}
	if !depType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid dependency type")
	}

	if _, err := s.requireAction(ctx, complaintID, actionID); err != nil {
		return nil, err
	}
	prereq, err := s.repo.FindByID(ctx, complaintID, input.DependsOnActionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load prerequisite")
	}
	if prereq == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "prerequisite action not found")
	}

	reverse, err := s.repo.HasDependency(ctx, input.DependsOnActionID, actionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check reverse dependency")
	}
	if reverse {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "circular dependency detected")
	}

	created, err := s.repo.CreateDependency(ctx, &models.ActionDependency{
		ActionID:          actionID,
		DependsOnActionID: input.DependsOnActionID,
		DependencyType:    depType,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create dependency")
	}
	return dependencyFromModel(created), nil
}

// ListDependencies returns the prerequisites of one action.
func (s *service) ListDependencies(ctx context.Context, complaintID, actionID uint) ([]DependencyDTO, error) {
	if _, err := s.requireAction(ctx, complaintID, actionID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListDependencies(ctx, actionID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list dependencies")
	}
	return dependencyFromModels(rows), nil
}

// Metrics summarizes the complaint's actions for the dashboard.
func (s *service) Metrics(ctx context.Context, complaintID uint) (*MetricsDTO, error) {
	if err := s.requireComplaint(ctx, complaintID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByComplaint(ctx, complaintID, ActionFilter{})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list actions")
	}

	metrics := &MetricsDTO{
		ActionsByStatus:   map[string]int{},
		ActionsByPriority: map[string]int{},
	}
	today := time.Now().UTC()
	done := 0
	for i := range rows {
		row := &rows[i]
		metrics.TotalActions++
		metrics.ActionsByStatus[row.Status.String()]++
		metrics.ActionsByPriority[row.Priority.String()]++
		if row.Status.IsDone() {
			done++
		} else if row.Status != enums.ActionStatusCancelled {
			metrics.OpenActions++
			if row.DueDate != nil && row.DueDate.Before(today) {
				metrics.OverdueActions++
			}
		}
	}
	if metrics.TotalActions > 0 {
		rate := float64(done) / float64(metrics.TotalActions) * 100
		metrics.CompletionRate = float64(int(rate*100+0.5)) / 100
	}
	return metrics, nil
}
