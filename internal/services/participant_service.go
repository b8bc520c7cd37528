package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrParticipantNotFound     = errors.New("participant not found")
	ErrParticipantAccessDenied = errors.New("no permission to access this participant")
	ErrParticipantEmailTaken   = errors.New("participant email already registered")
	ErrParticipantInvalidState = errors.New("invalid participant status value")
	ErrNameRequired            = errors.New("name is required")
	ErrPhoneRequired           = errors.New("phone is required")
)

// ParticipantService handles signup-record business logic with the same
// owner-or-admin policy as tasks.
type ParticipantService struct {
	participantRepo repository.ParticipantRepository
}

// NewParticipantService creates a new ParticipantService
func NewParticipantService(participantRepo repository.ParticipantRepository) *ParticipantService {
	return &ParticipantService{
		participantRepo: participantRepo,
	}
}

// CreateParticipantInput represents input for registering a participant
type CreateParticipantInput struct {
	Name      string
	Email     string
	Phone     string
	Interests []string
	Status    models.ParticipantStatus
}

// UpdateParticipantInput represents a partial update; nil fields are left
// unchanged. Status changes are admin-only and silently ignored otherwise,
// matching the established API behavior.
type UpdateParticipantInput struct {
	Name      *string
	Phone     *string
	Interests []string
	Status    *models.ParticipantStatus
}

// ListParticipantsInput represents filters for listing participants
type ListParticipantsInput struct {
	Status   *models.ParticipantStatus
	Interest string
	Search   string
	OwnerID  *uint64
	Page     int
	PageSize int
}

// CreateParticipant registers a new participant owned by the actor.
func (s *ParticipantService) CreateParticipant(actor Identity, input CreateParticipantInput) (*models.Participant, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	phone := strings.TrimSpace(input.Phone)
	if phone == "" {
		return nil, ErrPhoneRequired
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if input.Status == "" {
		input.Status = models.ParticipantStatusPending
	} else if !models.ValidParticipantStatus(input.Status) {
		return nil, ErrParticipantInvalidState
	}

	// Fast-path duplicate check; the unique index remains authoritative.
	if _, err := s.participantRepo.FindByEmail(email); err == nil {
		return nil, ErrParticipantEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	interests := input.Interests
	if interests == nil {
		interests = []string{}
	}

	participant := &models.Participant{
		Name:      name,
		Email:     email,
		Phone:     phone,
		Interests: interests,
		Status:    input.Status,
		OwnerID:   actor.UserID,
	}

	if err := s.participantRepo.Create(participant); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrParticipantEmailTaken
		}
		return nil, fmt.Errorf("failed to create participant: %w", err)
	}

	return participant, nil
}

// ListParticipants returns participants visible to the actor, scoped in the
// query for non-privileged callers.
func (s *ParticipantService) ListParticipants(actor Identity, input ListParticipantsInput) ([]models.Participant, int64, error) {
	filter := repository.ParticipantFilter{
		Status:   input.Status,
		Interest: input.Interest,
		Search:   input.Search,
		Page:     input.Page,
		PageSize: input.PageSize,
	}

	if actor.IsAdmin() {
		filter.OwnerID = input.OwnerID
	} else {
		ownerID := actor.UserID
		filter.OwnerID = &ownerID
	}

	participants, total, err := s.participantRepo.List(filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list participants: %w", err)
	}

	return participants, total, nil
}

// GetParticipant returns a participant if the actor owns it or is an admin.
func (s *ParticipantService) GetParticipant(actor Identity, id uint64) (*models.Participant, error) {
	participant, err := s.participantRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to find participant: %w", err)
	}

	if !canAccess(actor, participant.OwnerID) {
		return nil, ErrParticipantAccessDenied
	}

	return participant, nil
}

// UpdateParticipant merges the patch into an existing record. Email and owner
// are immutable after creation.
func (s *ParticipantService) UpdateParticipant(actor Identity, id uint64, input UpdateParticipantInput) (*models.Participant, error) {
	participant, err := s.participantRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrParticipantNotFound
		}
		return nil, fmt.Errorf("failed to find participant: %w", err)
	}

	if !canAccess(actor, participant.OwnerID) {
		return nil, ErrParticipantAccessDenied
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrNameRequired
		}
		participant.Name = name
	}
	if input.Phone != nil {
		phone := strings.TrimSpace(*input.Phone)
		if phone == "" {
			return nil, ErrPhoneRequired
		}
		participant.Phone = phone
	}
	if input.Interests != nil {
		participant.Interests = input.Interests
	}
	if input.Status != nil && actor.IsAdmin() {
		if !models.ValidParticipantStatus(*input.Status) {
			return nil, ErrParticipantInvalidState
		}
		participant.Status = *input.Status
	}

	if err := s.participantRepo.Update(participant); err != nil {
		return nil, fmt.Errorf("failed to update participant: %w", err)
	}

	return participant, nil
}

// DeleteParticipant removes a record if the actor owns it or is an admin.
func (s *ParticipantService) DeleteParticipant(actor Identity, id uint64) error {
	participant, err := s.participantRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrParticipantNotFound
		}
		return fmt.Errorf("failed to find participant: %w", err)
	}

	if !canAccess(actor, participant.OwnerID) {
		return ErrParticipantAccessDenied
	}

	if err := s.participantRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete participant: %w", err)
	}

	return nil
}
