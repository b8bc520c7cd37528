package models

import "time"

type ParticipantStatus string

const (
	ParticipantStatusPending   ParticipantStatus = "pending"
	ParticipantStatusConfirmed ParticipantStatus = "confirmed"
	ParticipantStatusCancelled ParticipantStatus = "cancelled"
)

// Participant is a course signup record owned by the user who registered it.
type Participant struct {
	ID        uint64            `gorm:"primarykey" json:"id"`
	Name      string            `gorm:"type:varchar(255);not null" json:"name"`
	Email     string            `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone     string            `gorm:"type:varchar(50);not null" json:"phone"`
	Interests []string          `gorm:"serializer:json" json:"interests"`
	Status    ParticipantStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	OwnerID   uint64            `gorm:"not null;index" json:"owner_id"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`

	// Relations
	Owner User `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
}

// ValidParticipantStatus reports whether s is one of the accepted status values.
func ValidParticipantStatus(s ParticipantStatus) bool {
	switch s {
	case ParticipantStatusPending, ParticipantStatusConfirmed, ParticipantStatusCancelled:
		return true
	}
	return false
}
