package repository

import (
	"errors"

	"github.com/taskboard/taskboard-api/internal/database"
	"github.com/taskboard/taskboard-api/internal/models"
	"gorm.io/gorm"
)

// GormParticipantRepository is a GORM implementation of ParticipantRepository
type GormParticipantRepository struct {
	db *gorm.DB
}

// NewParticipantRepository creates a new ParticipantRepository
func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &GormParticipantRepository{db: db}
}

// Create creates a new participant record
func (r *GormParticipantRepository) Create(participant *models.Participant) error {
	if err := r.db.Create(participant).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// FindByID finds a participant by ID
func (r *GormParticipantRepository) FindByID(id uint64) (*models.Participant, error) {
	var participant models.Participant
	if err := r.db.First(&participant, id).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

// FindByEmail finds a participant by email
func (r *GormParticipantRepository) FindByEmail(email string) (*models.Participant, error) {
	var participant models.Participant
	if err := r.db.Where("email = ?", email).First(&participant).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

// List retrieves participants with filtering and pagination
func (r *GormParticipantRepository) List(filter ParticipantFilter) ([]models.Participant, int64, error) {
	var participants []models.Participant

	query := r.db.Model(&models.Participant{})

	if filter.OwnerID != nil {
		query = query.Where("owner_id = ?", *filter.OwnerID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if filter.Interest != "" {
		// Interests are stored as a JSON array; match on the serialized form.
		query = query.Where(`interests LIKE ? ESCAPE '\'`, `%"`+likeEscaper.Replace(filter.Interest)+`"%`)
	}
	if filter.Search != "" {
		pattern := likePattern(filter.Search)
		query = query.Where(
			`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(email) LIKE ? ESCAPE '\'`,
			pattern, pattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Order("created_at DESC").
		Scopes(database.Paginate(filter.Page, filter.PageSize)).
		Find(&participants).Error
	if err != nil {
		return nil, 0, err
	}

	return participants, total, nil
}

// Update updates a participant record
func (r *GormParticipantRepository) Update(participant *models.Participant) error {
	return r.db.Save(participant).Error
}

// Delete removes a participant record
func (r *GormParticipantRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Participant{}, id).Error
}
