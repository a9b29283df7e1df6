package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/umuganda/community-activity-api/internal/analytics"
	"github.com/umuganda/community-activity-api/internal/database"
	"github.com/umuganda/community-activity-api/internal/models"
	"github.com/umuganda/community-activity-api/internal/repository"
	"github.com/umuganda/community-activity-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// AnalyticsHandlerTestSuite defines the test suite for AnalyticsHandler
type AnalyticsHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *AnalyticsHandler
}

// SetupTest runs before each test
func (suite *AnalyticsHandlerTestSuite) SetupTest() {
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

	activityRepo := repository.NewActivityRepository(suite.db)
	taskRepo := repository.NewTaskRepository(suite.db)
	reportRepo := repository.NewReportRepository(suite.db)
	analyticsService := services.NewAnalyticsService(activityRepo, taskRepo, reportRepo)

	// No narrative service in tests
	suite.handler = NewAnalyticsHandler(analyticsService, nil)

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *AnalyticsHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper functions to create test data
func (suite *AnalyticsHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		FullName:     username,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *AnalyticsHandlerTestSuite) createTestVillage(name string) *models.Location {
	village := &models.Location{
		Name:  name,
		Level: models.LevelVillage,
	}
	suite.db.Create(village)
	return village
}

func (suite *AnalyticsHandlerTestSuite) createTestTeam(name string) *models.Team {
	team := &models.Team{
		Name:       name,
		InviteCode: name + "_CODE",
	}
	suite.db.Create(team)
	return team
}

func (suite *AnalyticsHandlerTestSuite) createTestActivity(title string, villageID, creatorID uint64, date time.Time) *models.Activity {
	activity := &models.Activity{
		Title:     title,
		Date:      date,
		Status:    models.ActivityStatusOngoing,
		VillageID: villageID,
		CreatorID: creatorID,
	}
	suite.db.Create(activity)
	return activity
}

func (suite *AnalyticsHandlerTestSuite) createTestTask(title string, activityID, teamID, creatorID uint64, estimatedCost int64, expectedParticipants int) *models.Task {
	task := &models.Task{
		Title:                title,
		Status:               models.TaskStatusPending,
		ActivityID:           activityID,
		TeamID:               teamID,
		CreatorID:            creatorID,
		EstimatedCost:        estimatedCost,
		ExpectedParticipants: expectedParticipants,
	}
	suite.db.Create(task)
	return task
}

func (suite *AnalyticsHandlerTestSuite) fileTestReport(task *models.Task, authorID uint64, actualCost int64, actualParticipants int, evidenceURLs []string) *models.Report {
	report := &models.Report{
		TaskID:       task.ID,
		AuthorID:     authorID,
		Comment:      "Work finished as planned",
		Challenges:   "Morning rain delayed the start",
		EvidenceURLs: evidenceURLs,
	}
	suite.db.Create(report)

	task.ActualCost = actualCost
	task.ActualParticipants = actualParticipants
	task.Status = models.TaskStatusCompleted
	suite.db.Save(task)

	return report
}

// Helper function to create a request-bound context
func (suite *AnalyticsHandlerTestSuite) createContext(method, url string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, nil)

	c, _ := gin.CreateTestContext(w)
	c.Request = req

	return c, w
}

// TestActivityAnalytics_Success tests the single-activity analytics view
func (suite *AnalyticsHandlerTestSuite) TestActivityAnalytics_Success() {
	user := suite.createTestUser("organizer")
	village := suite.createTestVillage("Kabeza")
	team := suite.createTestTeam("Isibo A")
	activity := suite.createTestActivity("Road Repair", village.ID, user.ID, time.Now())

	reported := suite.createTestTask("Clear drainage", activity.ID, team.ID, user.ID, 1000, 20)
	suite.fileTestReport(reported, user.ID, 1200, 18, []string{"https://example.org/photo.jpg"})
	suite.createTestTask("Fill potholes", activity.ID, team.ID, user.ID, 100, 5)

	c, w := suite.createContext("GET", "/api/activities/1/analytics")
	c.Set("activity", *activity)

	suite.handler.ActivityAnalytics(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response analytics.ActivityReport
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)

	assert.Equal(suite.T(), 2, response.Summary.TotalTasks)
	assert.Equal(suite.T(), 1, response.Summary.CompletedTasks)
	assert.Equal(suite.T(), 50, response.Summary.CompletionRate)
	assert.Equal(suite.T(), int64(1200), response.Summary.TotalCost)
	assert.Equal(suite.T(), 18, response.Summary.TotalParticipants)

	assert.Equal(suite.T(), int64(1100), response.Financial.TotalEstimatedCost)
	assert.Equal(suite.T(), int64(1200), response.Financial.TotalActualCost)
	assert.Equal(suite.T(), int64(100), response.Financial.CostVariance)

	assert.Equal(suite.T(), 25, response.Participation.TotalExpectedParticipants)
	assert.Equal(suite.T(), 18, response.Participation.TotalActualParticipants)
	assert.Equal(suite.T(), 72, response.Participation.ParticipationRate)

	suite.Require().Len(response.TaskOverview, 2)
	assert.True(suite.T(), response.TaskOverview[0].Reported)
	assert.Equal(suite.T(), 100, response.TaskOverview[0].Performance.CompletionQuality)
	assert.False(suite.T(), response.TaskOverview[1].Reported)

	assert.NotEmpty(suite.T(), response.Insights.OverallStatus)
}

// TestActivityAnalytics_MissingContext tests when the activity is not loaded
func (suite *AnalyticsHandlerTestSuite) TestActivityAnalytics_MissingContext() {
	c, w := suite.createContext("GET", "/api/activities/1/analytics")

	suite.handler.ActivityAnalytics(c)

	assert.Equal(suite.T(), http.StatusInternalServerError, w.Code)
}

// TestActivityAnalyticsBatch tests the multi-activity analytics view with
// village scoping
func (suite *AnalyticsHandlerTestSuite) TestActivityAnalyticsBatch() {
	user := suite.createTestUser("organizer")
	villageA := suite.createTestVillage("Kabeza")
	villageB := suite.createTestVillage("Rugando")
	team := suite.createTestTeam("Isibo A")

	activityA := suite.createTestActivity("Road Repair", villageA.ID, user.ID, time.Now())
	activityB := suite.createTestActivity("Tree Planting", villageB.ID, user.ID, time.Now())

	taskA := suite.createTestTask("Clear drainage", activityA.ID, team.ID, user.ID, 500, 10)
	suite.fileTestReport(taskA, user.ID, 450, 12, nil)
	suite.createTestTask("Dig holes", activityB.ID, team.ID, user.ID, 200, 8)

	c, w := suite.createContext("GET", "/api/analytics/activities")

	suite.handler.ActivityAnalyticsBatch(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Activities []analytics.ActivityReport `json:"activities"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), response.Activities, 2)

	// Scoped to one village
	c, w = suite.createContext("GET", "/api/analytics/activities")
	c.Request.URL.RawQuery = "village_id=1"

	suite.handler.ActivityAnalyticsBatch(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	suite.Require().Len(response.Activities, 1)
	assert.Equal(suite.T(), activityA.ID, response.Activities[0].Activity.ID)
}

// TestGroupedReports tests the grouped report view with filters
func (suite *AnalyticsHandlerTestSuite) TestGroupedReports() {
	user := suite.createTestUser("organizer")
	village := suite.createTestVillage("Kabeza")
	team := suite.createTestTeam("Isibo A")

	activityA := suite.createTestActivity("Road Repair", village.ID, user.ID, time.Now())
	activityB := suite.createTestActivity("Tree Planting", village.ID, user.ID, time.Now().AddDate(0, 0, -7))

	taskA := suite.createTestTask("Clear drainage", activityA.ID, team.ID, user.ID, 500, 10)
	taskA.ExpectedFinancialImpact = 2000
	taskA.ActualFinancialImpact = 2600
	suite.fileTestReport(taskA, user.ID, 450, 12, []string{"https://example.org/photo.jpg"})
	taskB := suite.createTestTask("Dig holes", activityB.ID, team.ID, user.ID, 200, 8)
	suite.fileTestReport(taskB, user.ID, 210, 8, nil)

	c, w := suite.createContext("GET", "/api/analytics/reports")

	suite.handler.GroupedReports(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Groups []map[string]interface{} `json:"groups"`
		Count  int                      `json:"count"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 2, response.Count)

	// Most recent activity first, with its accumulated impact variance.
	assert.Equal(suite.T(), float64(activityA.ID), response.Groups[0]["activity_id"])
	assert.Equal(suite.T(), float64(600), response.Groups[0]["impact_variance"])

	// Only groups with evidence
	c, w = suite.createContext("GET", "/api/analytics/reports")
	c.Request.URL.RawQuery = "has_evidence=true"

	suite.handler.GroupedReports(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	err = json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	suite.Require().Equal(1, response.Count)
	assert.Equal(suite.T(), float64(activityA.ID), response.Groups[0]["activity_id"])
	assert.Equal(suite.T(), true, response.Groups[0]["has_evidence"])
}

// TestGroupedReports_InvalidFilterIgnored tests that unparseable filter
// values widen rather than reject the query
func (suite *AnalyticsHandlerTestSuite) TestGroupedReports_InvalidFilterIgnored() {
	user := suite.createTestUser("organizer")
	village := suite.createTestVillage("Kabeza")
	team := suite.createTestTeam("Isibo A")

	activity := suite.createTestActivity("Road Repair", village.ID, user.ID, time.Now())
	task := suite.createTestTask("Clear drainage", activity.ID, team.ID, user.ID, 500, 10)
	suite.fileTestReport(task, user.ID, 450, 12, nil)

	c, w := suite.createContext("GET", "/api/analytics/reports")
	c.Request.URL.RawQuery = "cost_min=abc&date_from=not-a-date"

	suite.handler.GroupedReports(c)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response struct {
		Count int `json:"count"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), 1, response.Count)
}

// TestNarrative_NotConfigured tests the narrative endpoint without an API key
func (suite *AnalyticsHandlerTestSuite) TestNarrative_NotConfigured() {
	user := suite.createTestUser("organizer")
	village := suite.createTestVillage("Kabeza")
	activity := suite.createTestActivity("Road Repair", village.ID, user.ID, time.Now())

	c, w := suite.createContext("POST", "/api/activities/1/analytics/narrative")
	c.Set("activity", *activity)

	suite.handler.Narrative(c)

	assert.Equal(suite.T(), http.StatusServiceUnavailable, w.Code)
}

func TestAnalyticsHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AnalyticsHandlerTestSuite))
}
