package complaints

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/partsdesk/partsdesk-backend/pkg/db/models"
	"github.com/partsdesk/partsdesk-backend/pkg/enums"
	pkgerrors "github.com/partsdesk/partsdesk-backend/pkg/errors"
	"github.com/partsdesk/partsdesk-backend/pkg/logger"
	"github.com/partsdesk/partsdesk-backend/pkg/pagination"
)

type complaintRepository interface {
	Create(ctx context.Context, complaint *models.Complaint) (*models.Complaint, error)
	FindByID(ctx context.Context, id uint) (*models.Complaint, error)
	List(ctx context.Context, filter ListFilter, offset, limit int) ([]models.Complaint, int64, error)
	Save(ctx context.Context, complaint *models.Complaint) error
}

type companyLookup interface {
	FindByID(ctx context.Context, id uint) (*models.Company, error)
}

type partLookup interface {
	FindByID(ctx context.Context, id uint) (*models.Part, error)
}

// Service exposes complaint operations.
type Service interface {
	Create(ctx context.Context, input CreateComplaintInput) (*ComplaintDTO, error)
	List(ctx context.Context, filter ListFilter, params pagination.Params) (*pagination.Page[ComplaintDTO], error)
	Get(ctx context.Context, id uint) (*ComplaintDTO, error)
	Update(ctx context.Context, id uint, input UpdateComplaintInput) (*ComplaintDTO, error)
}

type service struct {
	repo      complaintRepository
	companies companyLookup
	parts     partLookup
	logg      *logger.Logger
}

// NewService builds a complaint service with its dependencies.
func NewService(repo complaintRepository, companies companyLookup, parts partLookup, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("complaint repository required")
	}
	if companies == nil {
		return nil, fmt.Errorf("company lookup required")
	}
	if parts == nil {
		return nil, fmt.Errorf("part lookup required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, companies: companies, parts: parts, logg: logg}, nil
}

// CreateComplaintInput captures a new complaint submission.
type CreateComplaintInput struct {
	CompanyID        uint                `json:"company_id" validate:"required"`
	PartID           uint                `json:"part_id" validate:"required"`
	IssueType        enums.IssueType     `json:"issue_type" validate:"required"`
	Details          string              `json:"details" validate:"required,min=10"`
	QuantityOrdered  *int                `json:"quantity_ordered" validate:"omitempty,min=0"`
	QuantityReceived *int                `json:"quantity_received" validate:"omitempty,min=0"`
	WorkOrderNumber  string              `json:"work_order_number" validate:"required,max=100"`
	Occurrence       *string             `json:"occurrence" validate:"omitempty,max=100"`
	PartReceived     *string             `json:"part_received" validate:"omitempty,max=100"`
	HumanFactor      bool                `json:"human_factor"`
	ComplaintKind    enums.ComplaintKind `json:"complaint_kind" validate:"omitempty"`
	DateReceived     *time.Time          `json:"date_received"`
}

// UpdateComplaintInput applies a partial edit. Nil fields are left untouched.
type UpdateComplaintInput struct {
	Status           *enums.ComplaintStatus `json:"status" validate:"omitempty"`
	Details          *string                `json:"details" validate:"omitempty,min=10"`
	QuantityOrdered  *int                   `json:"quantity_ordered" validate:"omitempty,min=0"`
	QuantityReceived *int                   `json:"quantity_received" validate:"omitempty,min=0"`
	Occurrence       *string                `json:"occurrence" validate:"omitempty,max=100"`
	PartReceived     *string                `json:"part_received" validate:"omitempty,max=100"`
	HumanFactor      *bool                  `json:"human_factor"`
	ComplaintKind    *enums.ComplaintKind   `json:"complaint_kind" validate:"omitempty"`
	NCRNumber        *string                `json:"ncr_number" validate:"omitempty,max=100"`
	FollowUp         *string                `json:"follow_up"`
	LastEditBy       *string                `json:"last_edit_by" validate:"omitempty,max=255"`
}

func validateIssueFields(issueType enums.IssueType, qtyOrdered, qtyReceived *int, partReceived *string) error {
	if !issueType.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid issue type")
	}
	if issueType.RequiresQuantities() && (qtyOrdered == nil || qtyReceived == nil) {
		return pkgerrors.New(pkgerrors.CodeValidation,
			"quantity_ordered and quantity_received are required for wrong_quantity issues")
	}
	if issueType.RequiresPartReceived() && (partReceived == nil || strings.TrimSpace(*partReceived) == "") {
		return pkgerrors.New(pkgerrors.CodeValidation,
			"part_received is required for wrong_part issues")
	}
	return nil
}

// Create validates the submission against its issue type, verifies the
// referenced company and part exist, and inserts the complaint as open.
func (s *service) Create(ctx context.Context, input CreateComplaintInput) (*ComplaintDTO, error) {
	if err := validateIssueFields(input.IssueType, input.QuantityOrdered, input.QuantityReceived, input.PartReceived); err != nil {
		return nil, err
	}

	kind := input.ComplaintKind
	if kind == "" {
		kind = enums.ComplaintKindNotification
	}
	if !kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid complaint kind")
	}

	company, err := s.companies.FindByID(ctx, input.CompanyID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup company")
	}
	if company == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "company not found")
	}

	part, err := s.parts.FindByID(ctx, input.PartID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "lookup part")
	}
	if part == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "part not found")
	}

	dateReceived := time.Now().UTC().Truncate(24 * time.Hour)
	if input.DateReceived != nil {
		dateReceived = input.DateReceived.UTC().Truncate(24 * time.Hour)
	}

	row := &models.Complaint{
		CompanyID:        company.ID,
		PartID:           part.ID,
		IssueType:        input.IssueType,
		Details:          strings.TrimSpace(input.Details),
		QuantityOrdered:  input.QuantityOrdered,
		QuantityReceived: input.QuantityReceived,
		WorkOrderNumber:  strings.TrimSpace(input.WorkOrderNumber),
		Occurrence:       input.Occurrence,
		PartReceived:     input.PartReceived,
		HumanFactor:      input.HumanFactor,
		Status:           enums.ComplaintStatusOpen,
		ComplaintKind:    kind,
		DateReceived:     dateReceived,
	}
	created, err := s.repo.Create(ctx, row)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create complaint")
	}
	created.Company = *company
	created.Part = *part

	s.logg.Info(s.logg.WithComplaintID(ctx, created.ID), "complaint created")
	return FromModel(created), nil
}

// List returns a page of complaints filtered by status, issue type or company.
func (s *service) List(ctx context.Context, filter ListFilter, params pagination.Params) (*pagination.Page[ComplaintDTO], error) {
	if filter.Status != nil && !filter.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status filter")
	}
	if filter.IssueType != nil && !filter.IssueType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid issue type filter")
	}

	params = params.Normalize()
	rows, total, err := s.repo.List(ctx, filter, params.Offset(), params.Limit())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list complaints")
	}
	page := pagination.NewPage(FromModels(rows), total, params)
	return &page, nil
}

// Get loads one complaint with its company, part and attachments.
func (s *service) Get(ctx context.Context, id uint) (*ComplaintDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load complaint")
	}
	if row == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "complaint not found")
	}
	return FromModel(row), nil
}

// Update applies a partial edit. Moving into a terminal status stamps
// resolved_at; reopening clears it.
func (s *service) Update(ctx context.Context, id uint, input UpdateComplaintInput) (*ComplaintDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load complaint")
	}
	if row == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "complaint not found")
	}

	if input.Details != nil {
		details := strings.TrimSpace(*input.Details)
		if len(details) < 10 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "details must be at least 10 characters")
		}
		row.Details = details
	}
	if input.QuantityOrdered != nil {
		row.QuantityOrdered = input.QuantityOrdered
	}
	if input.QuantityReceived != nil {
		row.QuantityReceived = input.QuantityReceived
	}
	if input.Occurrence != nil {
		row.Occurrence = input.Occurrence
	}
	if input.PartReceived != nil {
		row.PartReceived = input.PartReceived
	}
	if input.HumanFactor != nil {
		row.HumanFactor = *input.HumanFactor
	}
	if input.ComplaintKind != nil {
		if !input.ComplaintKind.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid complaint kind")
		}
		row.ComplaintKind = *input.ComplaintKind
	}
	if input.NCRNumber != nil {
		row.NCRNumber = input.NCRNumber
	}
	if input.FollowUp != nil {
		row.FollowUp = input.FollowUp
	}
	if input.LastEditBy != nil {
		row.LastEditBy = input.LastEditBy
	}

	if input.Status != nil && *input.Status != row.Status {
		next := *input.Status
		if !next.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status")
		}
		row.Status = next
		if next.IsTerminal() {
			if row.ResolvedAt == nil {
				now := time.Now().UTC()
				row.ResolvedAt = &now
			}
		} else {
			row.ResolvedAt = nil
		}
	}

	// re-check conditional fields so an edit cannot strip required data
	if err := validateIssueFields(row.IssueType, row.QuantityOrdered, row.QuantityReceived, row.PartReceived); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update complaint")
	}

	s.logg.Info(s.logg.WithComplaintID(ctx, row.ID), "complaint updated")
	return FromModel(row), nil
}
