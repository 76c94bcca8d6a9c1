package model

import "time"

// CaseUpdate is an append-only note on a complaint. The first one is written
// automatically when the complaint is filed; later ones come from admin
// status changes that carry a message.
type CaseUpdate struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ComplaintID int64     `gorm:"not null;index" json:"complaintId"`
	Message     string    `gorm:"type:text;not null" json:"message"`
	UpdatedBy   string    `gorm:"type:varchar(255);not null" json:"updatedBy"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (CaseUpdate) TableName() string {
	return "case_updates"
}
