package model

import (
	"strings"
	"time"
)

type ComplaintStatus string

const (
	ComplaintStatusPending            ComplaintStatus = "pending"
	ComplaintStatusUnderInvestigation ComplaintStatus = "under_investigation"
	ComplaintStatusResolved           ComplaintStatus = "resolved"
	ComplaintStatusClosed             ComplaintStatus = "closed"
)

func (s ComplaintStatus) Valid() bool {
	switch s {
	case ComplaintStatusPending, ComplaintStatusUnderInvestigation,
		ComplaintStatusResolved, ComplaintStatusClosed:
		return true
	}
	return false
}

type Complaint struct {
	ID                 int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID             int64           `gorm:"not null;index" json:"userId"`
	VehicleNumber      string          `gorm:"type:varchar(64);not null" json:"vehicleNumber"`
	VehicleType        string          `gorm:"type:varchar(32);not null" json:"vehicleType"`
	VehicleModel       string          `gorm:"type:varchar(128);not null" json:"vehicleModel"`
	VehicleColor       string          `gorm:"type:varchar(64)" json:"vehicleColor"`
	TheftDate          string          `gorm:"type:varchar(64);not null" json:"theftDate"`
	TheftLocation      string          `gorm:"type:text;not null" json:"theftLocation"`
	Description        string          `gorm:"type:text" json:"description"`
	ComplainantName    string          `gorm:"type:varchar(255);not null" json:"complainantName"`
	ComplainantPhone   string          `gorm:"type:varchar(32);not null" json:"complainantPhone"`
	ComplainantEmail   string          `gorm:"type:varchar(255);not null" json:"complainantEmail"`
	ComplainantAddress string          `gorm:"type:text" json:"complainantAddress"`
	Status             ComplaintStatus `gorm:"type:complaint_status;not null;default:'pending'" json:"status"`
	AssignedOfficer    *string         `gorm:"type:varchar(255)" json:"assignedOfficer"`
	CaseNumber         string          `gorm:"type:varchar(64);uniqueIndex;not null" json:"caseNumber"`
	Documents          string          `gorm:"type:text" json:"documents"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Complaint) TableName() string {
	return "complaints"
}

// DocumentList splits the stored comma-joined filename list.
func (c Complaint) DocumentList() []string {
	if c.Documents == "" {
		return nil
	}
	parts := strings.Split(c.Documents, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
