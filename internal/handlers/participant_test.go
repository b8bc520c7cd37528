package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/taskboard/taskboard-api/internal/dto"
	"github.com/taskboard/taskboard-api/internal/middleware"
	"github.com/taskboard/taskboard-api/internal/models"
	"github.com/taskboard/taskboard-api/internal/repository"
	"github.com/taskboard/taskboard-api/internal/services"
	"github.com/taskboard/taskboard-api/internal/token"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ParticipantHandlerTestSuite defines the test suite for ParticipantHandler
type ParticipantHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
	tokens *token.Service

	student *models.User
	other   *models.User
	admin   *models.User
}

// SetupTest runs before each test
func (suite *ParticipantHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Participant{},
	)
	suite.Require().NoError(err)

	suite.tokens = token.NewService("test-secret", time.Hour)

	participantService := services.NewParticipantService(repository.NewParticipantRepository(suite.db))
	handler := NewParticipantHandler(participantService)

	gin.SetMode(gin.TestMode)

	suite.router = gin.New()
	participants := suite.router.Group("/api/participants")
	participants.Use(middleware.RequireAuth(suite.tokens))
	{
		participants.GET("", handler.ListParticipants)
		participants.POST("", handler.CreateParticipant)
		participants.GET("/:id", handler.GetParticipant)
		participants.PUT("/:id", handler.UpdateParticipant)
		participants.DELETE("/:id", handler.DeleteParticipant)
	}

	suite.student = suite.createTestUser("student@example.com", models.RoleStudent)
	suite.other = suite.createTestUser("other@example.com", models.RoleStudent)
	suite.admin = suite.createTestUser("admin@example.com", models.RoleAdmin)
}

// TearDownTest runs after each test
func (suite *ParticipantHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *ParticipantHandlerTestSuite) createTestUser(email string, role models.Role) *models.User {
	user := &models.User{
		Email:        email,
		PasswordHash: "hashedpassword",
		Name:         email,
		Role:         role,
	}
	suite.db.Create(user)
	return user
}

func (suite *ParticipantHandlerTestSuite) createTestParticipant(email string, owner *models.User) *models.Participant {
	participant := &models.Participant{
		Name:      "Test Participant",
		Email:     email,
		Phone:     "0912345678",
		Interests: []string{"frontend"},
		Status:    models.ParticipantStatusPending,
		OwnerID:   owner.ID,
	}
	suite.db.Create(participant)
	return participant
}

func (suite *ParticipantHandlerTestSuite) doRequest(method, url string, payload any, user *models.User) *httptest.ResponseRecorder {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		suite.Require().NoError(err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		signed, err := suite.tokens.Issue(user)
		suite.Require().NoError(err)
		req.Header.Set("Authorization", "Bearer "+signed)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ParticipantHandlerTestSuite) TestCreateParticipant() {
	w := suite.doRequest("POST", "/api/participants", map[string]any{
		"name":      "Chen Wei",
		"email":     "chen@example.com",
		"phone":     "0987654321",
		"interests": []string{"backend", "devops"},
	}, suite.student)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response dto.ParticipantDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Chen Wei", response.Name)
	assert.Equal(suite.T(), models.ParticipantStatusPending, response.Status)
	assert.Equal(suite.T(), []string{"backend", "devops"}, response.Interests)
	assert.Equal(suite.T(), suite.student.ID, response.OwnerID)
}

func (suite *ParticipantHandlerTestSuite) TestCreateParticipant_DuplicateEmail() {
	suite.createTestParticipant("chen@example.com", suite.student)

	w := suite.doRequest("POST", "/api/participants", map[string]any{
		"name":  "Chen Wei",
		"email": "chen@example.com",
		"phone": "0987654321",
	}, suite.other)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

func (suite *ParticipantHandlerTestSuite) TestCreateParticipant_MissingFields() {
	w := suite.doRequest("POST", "/api/participants", map[string]any{
		"name": "Chen Wei",
	}, suite.student)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var response struct {
		Details struct {
			Required []string `json:"required"`
		} `json:"details"`
	}
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(suite.T(), response.Details.Required, "email")
	assert.Contains(suite.T(), response.Details.Required, "phone")
}

func (suite *ParticipantHandlerTestSuite) TestListParticipants_ScopedToOwner() {
	suite.createTestParticipant("one@example.com", suite.student)
	suite.createTestParticipant("two@example.com", suite.other)

	w := suite.doRequest("GET", "/api/participants", nil, suite.student)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.ParticipantListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), int64(1), response.TotalCount)
	assert.Equal(suite.T(), suite.student.ID, response.Participants[0].OwnerID)
}

func (suite *ParticipantHandlerTestSuite) TestListParticipants_AdminSeesAll() {
	suite.createTestParticipant("one@example.com", suite.student)
	suite.createTestParticipant("two@example.com", suite.other)

	w := suite.doRequest("GET", "/api/participants", nil, suite.admin)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.ParticipantListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), int64(2), response.TotalCount)
}

func (suite *ParticipantHandlerTestSuite) TestGetParticipant_ForeignOwner() {
	participant := suite.createTestParticipant("one@example.com", suite.student)

	w := suite.doRequest("GET", fmt.Sprintf("/api/participants/%d", participant.ID), nil, suite.other)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *ParticipantHandlerTestSuite) TestUpdateParticipant_StatusIgnoredForStudent() {
	participant := suite.createTestParticipant("one@example.com", suite.student)

	w := suite.doRequest("PUT", fmt.Sprintf("/api/participants/%d", participant.ID), map[string]any{
		"name":   "Updated Name",
		"status": "confirmed",
	}, suite.student)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.ParticipantDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "Updated Name", response.Name)
	// Status changes are admin-only; the field is ignored for students
	assert.Equal(suite.T(), models.ParticipantStatusPending, response.Status)
}

func (suite *ParticipantHandlerTestSuite) TestUpdateParticipant_StatusAppliedForAdmin() {
	participant := suite.createTestParticipant("one@example.com", suite.student)

	w := suite.doRequest("PUT", fmt.Sprintf("/api/participants/%d", participant.ID), map[string]any{
		"status": "confirmed",
	}, suite.admin)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.ParticipantDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), models.ParticipantStatusConfirmed, response.Status)
}

func (suite *ParticipantHandlerTestSuite) TestDeleteParticipant_ForeignOwner() {
	participant := suite.createTestParticipant("one@example.com", suite.student)

	w := suite.doRequest("DELETE", fmt.Sprintf("/api/participants/%d", participant.ID), nil, suite.other)
	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

func (suite *ParticipantHandlerTestSuite) TestDeleteParticipant_AdminBypass() {
	participant := suite.createTestParticipant("one@example.com", suite.student)

	w := suite.doRequest("DELETE", fmt.Sprintf("/api/participants/%d", participant.ID), nil, suite.admin)
	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var count int64
	suite.db.Model(&models.Participant{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

func TestParticipantHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ParticipantHandlerTestSuite))
}
