package dto

import (
	"time"

	"github.com/taskboard/taskboard-api/internal/models"
)

// ParticipantDTO represents a participant in API responses
type ParticipantDTO struct {
	ID        uint64                   `json:"id"`
	Name      string                   `json:"name"`
	Email     string                   `json:"email"`
	Phone     string                   `json:"phone"`
	Interests []string                 `json:"interests"`
	Status    models.ParticipantStatus `json:"status"`
	OwnerID   uint64                   `json:"owner_id"`
	CreatedAt time.Time                `json:"created_at"`
	UpdatedAt time.Time                `json:"updated_at"`
}

// ParticipantListResponse represents a paginated list of participants
type ParticipantListResponse struct {
	Participants []ParticipantDTO `json:"participants"`
	Page         int              `json:"page"`
	Limit        int              `json:"limit"`
	TotalCount   int64            `json:"total_count"`
	TotalPages   int              `json:"total_pages"`
}

// ToParticipantDTO converts a Participant model to ParticipantDTO
func ToParticipantDTO(participant models.Participant) ParticipantDTO {
	interests := participant.Interests
	if interests == nil {
		interests = []string{}
	}

	return ParticipantDTO{
		ID:        participant.ID,
		Name:      participant.Name,
		Email:     participant.Email,
		Phone:     participant.Phone,
		Interests: interests,
		Status:    participant.Status,
		OwnerID:   participant.OwnerID,
		CreatedAt: participant.CreatedAt,
		UpdatedAt: participant.UpdatedAt,
	}
}

// ToParticipantListResponse converts a slice of participants to ParticipantListResponse
func ToParticipantListResponse(participants []models.Participant, page, limit int, totalCount int64) ParticipantListResponse {
	items := make([]ParticipantDTO, len(participants))
	for i, participant := range participants {
		items[i] = ToParticipantDTO(participant)
	}

	totalPages := int(totalCount) / limit
	if int(totalCount)%limit > 0 {
		totalPages++
	}

	return ParticipantListResponse{
		Participants: items,
		Page:         page,
		Limit:        limit,
		TotalCount:   totalCount,
		TotalPages:   totalPages,
	}
}
