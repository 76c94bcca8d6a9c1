package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"gorm.io/gorm"

	"complaint-service/internal/model"
	"complaint-service/internal/repository"
)

type ComplaintService struct {
	complaintRepo *repository.ComplaintRepository
}

func NewComplaintService(complaintRepo *repository.ComplaintRepository) *ComplaintService {
	return &ComplaintService{complaintRepo: complaintRepo}
}

type CreateComplaintInput struct {
	VehicleNumber      string
	VehicleType        string
	VehicleModel       string
	VehicleColor       string
	TheftDate          string
	TheftLocation      string
	Description        string
	ComplainantName    string
	ComplainantPhone   string
	ComplainantEmail   string
	ComplainantAddress string
	Documents          []string
}

// ValidateComplaint checks the creation contract: every required field
// present, complainant email shaped like an address.
func ValidateComplaint(input CreateComplaintInput) ValidationErrors {
	var errs ValidationErrors
	required := []struct {
		field   string
		value   string
		message string
	}{
		{"vehicleNumber", input.VehicleNumber, "Vehicle number is required"},
		{"vehicleType", input.VehicleType, "Vehicle type is required"},
		{"vehicleModel", input.VehicleModel, "Vehicle model is required"},
		{"theftDate", input.TheftDate, "Theft date is required"},
		{"theftLocation", input.TheftLocation, "Theft location is required"},
		{"complainantName", input.ComplainantName, "Complainant name is required"},
		{"complainantPhone", input.ComplainantPhone, "Complainant phone is required"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			errs = append(errs, FieldError{Field: r.field, Message: r.message})
		}
	}
	if strings.TrimSpace(input.ComplainantEmail) == "" {
		errs = append(errs, FieldError{Field: "complainantEmail", Message: "Complainant email is required"})
	} else if !emailPattern.MatchString(strings.TrimSpace(input.ComplainantEmail)) {
		errs = append(errs, FieldError{Field: "complainantEmail", Message: "Valid email is required"})
	}
	return errs
}

func generateCaseNumber() string {
	return fmt.Sprintf("VTC-%d-%d", time.Now().UnixMilli(), rand.Intn(1000))
}

type CreateComplaintResult struct {
	ComplaintID int64
	CaseNumber  string
}

func (s *ComplaintService) Create(ctx context.Context, principal model.Principal, input CreateComplaintInput) (*CreateComplaintResult, error) {
	if errs := ValidateComplaint(input); len(errs) > 0 {
		return nil, errs
	}

	// The case number embeds a millisecond timestamp, so a collision is
	// only realistic under concurrent creates; one regeneration suffices.
	var lastErr error
	for attempt := 0; attempt < 2; attempt++ {
		caseNumber := generateCaseNumber()
		complaint := &model.Complaint{
			UserID:             principal.UserID,
			VehicleNumber:      input.VehicleNumber,
			VehicleType:        input.VehicleType,
			VehicleModel:       input.VehicleModel,
			VehicleColor:       input.VehicleColor,
			TheftDate:          input.TheftDate,
			TheftLocation:      input.TheftLocation,
			Description:        input.Description,
			ComplainantName:    input.ComplainantName,
			ComplainantPhone:   input.ComplainantPhone,
			ComplainantEmail:   input.ComplainantEmail,
			ComplainantAddress: input.ComplainantAddress,
			Status:             model.ComplaintStatusPending,
			CaseNumber:         caseNumber,
			Documents:          strings.Join(input.Documents, ","),
		}
		initial := &model.CaseUpdate{
			Message:   "Complaint filed successfully. Case number: " + caseNumber,
			UpdatedBy: input.ComplainantName,
		}

		err := s.complaintRepo.Create(ctx, complaint, initial)
		if err == nil {
			return &CreateComplaintResult{
				ComplaintID: complaint.ID,
				CaseNumber:  caseNumber,
			}, nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("case number collision: %w", lastErr)
}

type ListComplaintsOptions struct {
	Status string
	Search string
	Limit  int
	Offset int
}

func buildFilter(opts ListComplaintsOptions) (repository.ComplaintFilter, error) {
	filter := repository.ComplaintFilter{
		Search: strings.TrimSpace(opts.Search),
		Limit:  opts.Limit,
		Offset: opts.Offset,
	}
	status := strings.TrimSpace(opts.Status)
	if status != "" && status != "all" {
		st := model.ComplaintStatus(status)
		if !st.Valid() {
			return filter, ErrInvalidInput
		}
		filter.Status = &st
	}
	return filter, nil
}

// List returns the caller's own complaints, newest first.
func (s *ComplaintService) List(ctx context.Context, principal model.Principal, opts ListComplaintsOptions) ([]model.Complaint, error) {
	filter, err := buildFilter(opts)
	if err != nil {
		return nil, err
	}
	filter.UserID = &principal.UserID
	return s.complaintRepo.List(ctx, filter)
}

// ListAll is the admin view over every complaint.
func (s *ComplaintService) ListAll(ctx context.Context, principal model.Principal, opts ListComplaintsOptions) ([]model.Complaint, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	filter, err := buildFilter(opts)
	if err != nil {
		return nil, err
	}
	return s.complaintRepo.List(ctx, filter)
}

func (s *ComplaintService) Get(ctx context.Context, principal model.Principal, id int64) (*model.ComplaintDetails, error) {
	return s.getDetails(ctx, id, &principal.UserID)
}

func (s *ComplaintService) GetAny(ctx context.Context, principal model.Principal, id int64) (*model.ComplaintDetails, error) {
	if !principal.IsAdmin() {
		return nil, ErrPermissionDenied
	}
	return s.getDetails(ctx, id, nil)
}

func (s *ComplaintService) getDetails(ctx context.Context, id int64, userID *int64) (*model.ComplaintDetails, error) {
	complaint, err := s.complaintRepo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates, err := s.complaintRepo.ListUpdates(ctx, complaint.ID)
	if err != nil {
		return nil, err
	}

	return &model.ComplaintDetails{Complaint: *complaint, Updates: updates}, nil
}

type UpdateComplaintInput struct {
	Status          model.ComplaintStatus
	AssignedOfficer *string
	Message         string
}

// Update is the admin triage operation: set status/officer and optionally
// append one note authored by the admin's email.
func (s *ComplaintService) Update(ctx context.Context, principal model.Principal, id int64, input UpdateComplaintInput) error {
	if !principal.IsAdmin() {
		return ErrPermissionDenied
	}
	if !input.Status.Valid() {
		return ErrInvalidInput
	}

	if _, err := s.complaintRepo.GetByID(ctx, id, nil); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	var note *model.CaseUpdate
	if strings.TrimSpace(input.Message) != "" {
		note = &model.CaseUpdate{
			Message:   input.Message,
			UpdatedBy: principal.Email,
		}
	}

	return s.complaintRepo.Update(ctx, id, input.Status, input.AssignedOfficer, note)
}
