package repository

import (
	"context"

	"gorm.io/gorm"

	"complaint-service/internal/model"
)

type ComplaintRepository struct {
	db *gorm.DB
}

func NewComplaintRepository(db *gorm.DB) *ComplaintRepository {
	return &ComplaintRepository{db: db}
}

type ComplaintFilter struct {
	UserID *int64
	Status *model.ComplaintStatus
	Search string
	Limit  int
	Offset int
}

// applyFilter translates the filter into query conditions. A zero limit
// means unbounded: callers that want a page size must ask for one.
func applyFilter(query *gorm.DB, filter ComplaintFilter) *gorm.DB {
	if filter.UserID != nil {
		query = query.Where("user_id = ?", *filter.UserID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Search != "" {
		search := "%" + filter.Search + "%"
		query = query.Where("(vehicle_number ILIKE ? OR case_number ILIKE ?)", search, search)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	return query
}

func (r *ComplaintRepository) List(ctx context.Context, filter ComplaintFilter) ([]model.Complaint, error) {
	query := applyFilter(r.db.WithContext(ctx).Model(&model.Complaint{}), filter)

	var complaints []model.Complaint
	if err := query.Order("created_at DESC").Find(&complaints).Error; err != nil {
		return nil, err
	}
	return complaints, nil
}

// GetByID fetches one complaint; when userID is non-nil the row must also
// belong to that user.
func (r *ComplaintRepository) GetByID(ctx context.Context, id int64, userID *int64) (*model.Complaint, error) {
	query := r.db.WithContext(ctx).Where("id = ?", id)
	if userID != nil {
		query = query.Where("user_id = ?", *userID)
	}

	var complaint model.Complaint
	if err := query.First(&complaint).Error; err != nil {
		return nil, err
	}
	return &complaint, nil
}

// Create inserts the complaint together with its initial case update in one
// transaction.
func (r *ComplaintRepository) Create(ctx context.Context, complaint *model.Complaint, initial *model.CaseUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(complaint).Error; err != nil {
			return err
		}
		initial.ComplaintID = complaint.ID
		return tx.Create(initial).Error
	})
}

func (r *ComplaintRepository) ListUpdates(ctx context.Context, complaintID int64) ([]model.CaseUpdate, error) {
	var updates []model.CaseUpdate
	err := r.db.WithContext(ctx).
		Where("complaint_id = ?", complaintID).
		Order("created_at DESC").
		Find(&updates).Error
	if err != nil {
		return nil, err
	}
	return updates, nil
}

// Update applies the admin triage change and, when note is non-nil, appends
// it atomically.
func (r *ComplaintRepository) Update(ctx context.Context, complaintID int64, status model.ComplaintStatus, assignedOfficer *string, note *model.CaseUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.Complaint{}).
			Where("id = ?", complaintID).
			Updates(map[string]interface{}{
				"status":           status,
				"assigned_officer": assignedOfficer,
			}).Error
		if err != nil {
			return err
		}
		if note != nil {
			note.ComplaintID = complaintID
			return tx.Create(note).Error
		}
		return nil
	})
}
