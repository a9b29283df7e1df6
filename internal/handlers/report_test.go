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
	"github.com/umuganda/community-activity-api/internal/database"
	"github.com/umuganda/community-activity-api/internal/models"
	"github.com/umuganda/community-activity-api/internal/repository"
	"github.com/umuganda/community-activity-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ReportHandlerTestSuite defines the test suite for ReportHandler
type ReportHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *ReportHandler
}

// SetupTest runs before each test
func (suite *ReportHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Location{},
		&models.Team{},
		&models.TeamMember{},
		&models.Activity{},
		&models.Task{},
		&models.Report{},
		&models.ReportAttendee{},
	)
	suite.Require().NoError(err)

	database.SetDB(suite.db)

	userRepo := repository.NewUserRepository(suite.db)
	teamRepo := repository.NewTeamRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)
	reportRepo := repository.NewReportRepository(suite.db)
	reportService := services.NewReportService(reportRepo, taskRepo, teamRepo, userRepo)

	suite.handler = NewReportHandler(reportService)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *ReportHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data
func (suite *ReportHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *ReportHandlerTestSuite) createTestTeam(name string, memberIDs ...uint64) *models.Team {
	team := &models.Team{
		Name:       name,
		InviteCode: name + "_CODE",
	}
	suite.db.Create(team)

	for _, userID := range memberIDs {
		suite.db.Create(&models.TeamMember{
			TeamID:   team.ID,
			UserID:   userID,
			Role:     models.RoleMember,
			JoinedAt: time.Now(),
		})
	}
	return team
}

func (suite *ReportHandlerTestSuite) createTestActivity(title string, creatorID uint64) *models.Activity {
	village := &models.Location{
		Name:  title + " Village",
		Level: models.LevelVillage,
	}
	suite.db.Create(village)

	activity := &models.Activity{
		Title:     title,
		Date:      time.Now(),
		Status:    models.ActivityStatusOngoing,
		VillageID: village.ID,
		CreatorID: creatorID,
	}
	suite.db.Create(activity)
	return activity
}

func (suite *ReportHandlerTestSuite) createTestTask(title string, activityID, teamID, creatorID uint64) *models.Task {
	task := &models.Task{
		Title:                title,
		Status:               models.TaskStatusPending,
		ActivityID:           activityID,
		TeamID:               teamID,
		CreatorID:            creatorID,
		EstimatedCost:        1000,
		ExpectedParticipants: 20,
	}
	suite.db.Create(task)
	return task
}

// Helper function to create an authenticated context
func (suite *ReportHandlerTestSuite) createAuthContext(method, url string, body []byte, userID uint64) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Set("user_id", userID)

	return c, w
}

// TestSubmitReport_Success tests filing a completion report
func (suite *ReportHandlerTestSuite) TestSubmitReport_Success() {
	creator := suite.createTestUser("creator")
	attendee := suite.createTestUser("attendee")
	team := suite.createTestTeam("Isibo A", creator.ID, attendee.ID)
	activity := suite.createTestActivity("Road Repair", creator.ID)
	task := suite.createTestTask("Clear drainage", activity.ID, team.ID, creator.ID)

	requestBody := map[string]interface{}{
		"comment":             "Drainage cleared along the main road",
		"challenges":          "Heavy rain in the morning",
		"materials":           []string{"shovels", "wheelbarrow"},
		"evidence_urls":       []string{"https://example.org/photo.jpg"},
		"attendee_ids":        []uint64{attendee.ID},
		"actual_cost":         1200,
		"actual_participants": 18,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/report", body, creator.ID)
	c.Set("task", *task)

	suite.handler.SubmitReport(c)

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response models.Report
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), task.ID, response.TaskID)
	assert.Equal(suite.T(), creator.ID, response.AuthorID)
	assert.Len(suite.T(), response.Attendees, 1)

	// Actuals are written back onto the task and the task is closed
	var updated models.Task
	suite.Require().NoError(suite.db.First(&updated, task.ID).Error)
	assert.Equal(suite.T(), models.TaskStatusCompleted, updated.Status)
	assert.Equal(suite.T(), int64(1200), updated.ActualCost)
	assert.Equal(suite.T(), 18, updated.ActualParticipants)
}

// TestSubmitReport_Duplicate tests that a task accepts exactly one report
func (suite *ReportHandlerTestSuite) TestSubmitReport_Duplicate() {
	creator := suite.createTestUser("creator")
	team := suite.createTestTeam("Isibo A", creator.ID)
	activity := suite.createTestActivity("Road Repair", creator.ID)
	task := suite.createTestTask("Clear drainage", activity.ID, team.ID, creator.ID)

	suite.db.Create(&models.Report{
		TaskID:   task.ID,
		AuthorID: creator.ID,
		Comment:  "Already filed",
	})

	requestBody := map[string]interface{}{
		"comment": "Second attempt",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/report", body, creator.ID)
	c.Set("task", *task)

	suite.handler.SubmitReport(c)

	assert.Equal(suite.T(), http.StatusConflict, w.Code)
}

// TestSubmitReport_TooManyEvidenceURLs tests the evidence attachment cap
func (suite *ReportHandlerTestSuite) TestSubmitReport_TooManyEvidenceURLs() {
	creator := suite.createTestUser("creator")
	team := suite.createTestTeam("Isibo A", creator.ID)
	activity := suite.createTestActivity("Road Repair", creator.ID)
	task := suite.createTestTask("Clear drainage", activity.ID, team.ID, creator.ID)

	urls := make([]string, 11)
	for i := range urls {
		urls[i] = fmt.Sprintf("https://example.org/photo-%d.jpg", i)
	}

	requestBody := map[string]interface{}{
		"comment":       "Too much evidence",
		"evidence_urls": urls,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/report", body, creator.ID)
	c.Set("task", *task)

	suite.handler.SubmitReport(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestSubmitReport_NegativeActuals tests that negative actual figures are rejected
func (suite *ReportHandlerTestSuite) TestSubmitReport_NegativeActuals() {
	creator := suite.createTestUser("creator")
	team := suite.createTestTeam("Isibo A", creator.ID)
	activity := suite.createTestActivity("Road Repair", creator.ID)
	task := suite.createTestTask("Clear drainage", activity.ID, team.ID, creator.ID)

	requestBody := map[string]interface{}{
		"comment":             "Work finished",
		"actual_cost":         -100,
		"actual_participants": 5,
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/report", body, creator.ID)
	c.Set("task", *task)

	suite.handler.SubmitReport(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	var count int64
	suite.db.Model(&models.Report{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestSubmitReport_InvalidAttendee tests that attendees must be team members
func (suite *ReportHandlerTestSuite) TestSubmitReport_InvalidAttendee() {
	creator := suite.createTestUser("creator")
	outsider := suite.createTestUser("outsider")
	team := suite.createTestTeam("Isibo A", creator.ID)
	activity := suite.createTestActivity("Road Repair", creator.ID)
	task := suite.createTestTask("Clear drainage", activity.ID, team.ID, creator.ID)

	requestBody := map[string]interface{}{
		"comment":      "Attendance padding",
		"attendee_ids": []uint64{outsider.ID},
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/report", body, creator.ID)
	c.Set("task", *task)

	suite.handler.SubmitReport(c)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestSubmitReport_NotTeamMember tests that outsiders cannot report
func (suite *ReportHandlerTestSuite) TestSubmitReport_NotTeamMember() {
	creator := suite.createTestUser("creator")
	outsider := suite.createTestUser("outsider")
	team := suite.createTestTeam("Isibo A", creator.ID)
	activity := suite.createTestActivity("Road Repair", creator.ID)
	task := suite.createTestTask("Clear drainage", activity.ID, team.ID, creator.ID)

	requestBody := map[string]interface{}{
		"comment": "Not my task",
	}
	body, _ := json.Marshal(requestBody)

	c, w := suite.createAuthContext("POST", "/api/tasks/1/report", body, outsider.ID)
	c.Set("task", *task)

	suite.handler.SubmitReport(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)
}

// TestGetReportForTask_NotFound tests fetching the report of a pending task
func (suite *ReportHandlerTestSuite) TestGetReportForTask_NotFound() {
	creator := suite.createTestUser("creator")
	team := suite.createTestTeam("Isibo A", creator.ID)
	activity := suite.createTestActivity("Road Repair", creator.ID)
	task := suite.createTestTask("Clear drainage", activity.ID, team.ID, creator.ID)

	c, w := suite.createAuthContext("GET", "/api/tasks/1/report", nil, creator.ID)
	c.Set("task", *task)

	suite.handler.GetReportForTask(c)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestGetReport_Success tests fetching a report by ID
func (suite *ReportHandlerTestSuite) TestGetReport_Success() {
	creator := suite.createTestUser("creator")
	team := suite.createTestTeam("Isibo A", creator.ID)
	activity := suite.createTestActivity("Road Repair", creator.ID)
	task := suite.createTestTask("Clear drainage", activity.ID, team.ID, creator.ID)

	report := &models.Report{
		TaskID:   task.ID,
		AuthorID: creator.ID,
		Comment:  "Work finished",
	}
	suite.db.Create(report)

	c, w := suite.createAuthContext("GET", "/api/reports/1", nil, creator.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(report.ID)}}

	suite.handler.GetReport(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response models.Report
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), report.ID, response.ID)
	assert.Equal(suite.T(), report.Comment, response.Comment)
}

// TestDeleteReport_Forbidden tests that only the author or activity creator
// can delete a report
func (suite *ReportHandlerTestSuite) TestDeleteReport_Forbidden() {
	creator := suite.createTestUser("creator")
	outsider := suite.createTestUser("outsider")
	team := suite.createTestTeam("Isibo A", creator.ID)
	activity := suite.createTestActivity("Road Repair", creator.ID)
	task := suite.createTestTask("Clear drainage", activity.ID, team.ID, creator.ID)

	report := &models.Report{
		TaskID:   task.ID,
		AuthorID: creator.ID,
		Comment:  "Work finished",
	}
	suite.db.Create(report)

	c, w := suite.createAuthContext("DELETE", "/api/reports/1", nil, outsider.ID)
	c.Params = gin.Params{{Key: "id", Value: fmt.Sprint(report.ID)}}

	suite.handler.DeleteReport(c)

	assert.Equal(suite.T(), http.StatusForbidden, w.Code)

	var count int64
	suite.db.Model(&models.Report{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

func TestReportHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ReportHandlerTestSuite))
}
