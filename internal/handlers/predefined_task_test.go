package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yamaneko/cat-care-api/internal/models"
	"github.com/yamaneko/cat-care-api/internal/repository"
	"github.com/yamaneko/cat-care-api/internal/services"
)

// PredefinedTaskHandlerTestSuite defines the test suite for PredefinedTaskHandler
type PredefinedTaskHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *PredefinedTaskHandlerTestSuite) SetupTest() {
	var err error

	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	err = suite.db.AutoMigrate(
		&models.PredefinedTask{},
		&models.Schedule{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	templateRepo := repository.NewPredefinedTaskRepository(suite.db)
	templateService := services.NewPredefinedTaskService(templateRepo)
	handler := NewPredefinedTaskHandler(templateService, log)

	gin.SetMode(gin.TestMode)

	suite.router = gin.New()
	templates := suite.router.Group("/api/predefined-tasks")
	{
		templates.GET("", handler.ListPredefinedTasks)
		templates.POST("", handler.CreatePredefinedTask)
		templates.GET("/:id", handler.GetPredefinedTask)
		templates.PUT("/:id", handler.UpdatePredefinedTask)
		templates.DELETE("/:id", handler.DeletePredefinedTask)
	}
}

// TearDownTest runs after each test
func (suite *PredefinedTaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

func (suite *PredefinedTaskHandlerTestSuite) perform(method, url string, payload interface{}) *httptest.ResponseRecorder {
	var req *http.Request
	if payload != nil {
		body, err := json.Marshal(payload)
		suite.Require().NoError(err)
		req = httptest.NewRequest(method, url, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, url, nil)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *PredefinedTaskHandlerTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	suite.Require().NoError(err)
	return response
}

// TestCreatePredefinedTask_RoundTrip tests that recurrence rules sent on
// creation come back unchanged on retrieval
func (suite *PredefinedTaskHandlerTestSuite) TestCreatePredefinedTask_RoundTrip() {
	w := suite.perform("POST", "/api/predefined-tasks", map[string]interface{}{
		"name":        "Feeding",
		"description": "Twice a day",
		"recurring": []map[string]interface{}{
			{"type": "DAILY", "time": "09:00"},
			{"type": "WEEKLY", "time": "14:30", "weekday": 6},
		},
	})

	suite.Require().Equal(http.StatusCreated, w.Code)

	created := suite.decode(w)["predefinedTask"].(map[string]interface{})
	id := created["id"].(float64)

	w = suite.perform("GET", "/api/predefined-tasks/1", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	fetched := suite.decode(w)["predefinedTask"].(map[string]interface{})
	assert.Equal(suite.T(), id, fetched["id"])
	assert.Equal(suite.T(), "Feeding", fetched["name"])

	schedules := fetched["schedules"].([]interface{})
	suite.Require().Len(schedules, 2)

	daily := schedules[0].(map[string]interface{})
	assert.Equal(suite.T(), "DAILY", daily["type"])
	assert.Equal(suite.T(), "09:00", daily["time"])

	weekly := schedules[1].(map[string]interface{})
	assert.Equal(suite.T(), "WEEKLY", weekly["type"])
	assert.Equal(suite.T(), "14:30", weekly["time"])
	assert.Equal(suite.T(), float64(6), weekly["weekday"])
}

// TestCreatePredefinedTask_InvalidTime tests rejection of malformed HH:MM values
func (suite *PredefinedTaskHandlerTestSuite) TestCreatePredefinedTask_InvalidTime() {
	for _, timeOfDay := range []string{"24:00", "9:00", "12:60", "noon"} {
		w := suite.perform("POST", "/api/predefined-tasks", map[string]interface{}{
			"name": "Feeding",
			"recurring": []map[string]interface{}{
				{"type": "DAILY", "time": timeOfDay},
			},
		})

		assert.Equal(suite.T(), http.StatusBadRequest, w.Code, "time %q must be rejected", timeOfDay)
	}

	var count int64
	suite.db.Model(&models.PredefinedTask{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestCreatePredefinedTask_MissingName tests rejection when the name is absent
func (suite *PredefinedTaskHandlerTestSuite) TestCreatePredefinedTask_MissingName() {
	w := suite.perform("POST", "/api/predefined-tasks", map[string]interface{}{
		"description": "No name",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestUpdatePredefinedTask_AppendsSchedules tests that recurrence rules in an
// update are added to the existing set
func (suite *PredefinedTaskHandlerTestSuite) TestUpdatePredefinedTask_AppendsSchedules() {
	suite.perform("POST", "/api/predefined-tasks", map[string]interface{}{
		"name": "Feeding",
		"recurring": []map[string]interface{}{
			{"type": "DAILY", "time": "09:00"},
		},
	})

	w := suite.perform("PUT", "/api/predefined-tasks/1", map[string]interface{}{
		"name": "Feeding and Water",
		"recurring": []map[string]interface{}{
			{"type": "DAILY", "time": "18:00"},
		},
	})

	suite.Require().Equal(http.StatusOK, w.Code)

	updated := suite.decode(w)["predefinedTask"].(map[string]interface{})
	assert.Equal(suite.T(), "Feeding and Water", updated["name"])

	schedules := updated["schedules"].([]interface{})
	assert.Len(suite.T(), schedules, 2)
}

// TestDeletePredefinedTask_DetachesTasks tests that deleting a template keeps
// already materialized tasks but severs their template link
func (suite *PredefinedTaskHandlerTestSuite) TestDeletePredefinedTask_DetachesTasks() {
	suite.perform("POST", "/api/predefined-tasks", map[string]interface{}{
		"name": "Feeding",
		"recurring": []map[string]interface{}{
			{"type": "DAILY", "time": "09:00"},
		},
	})

	var sched models.Schedule
	suite.Require().NoError(suite.db.First(&sched).Error)

	task := models.Task{
		PredefinedTaskID: &sched.PredefinedTaskID,
		ScheduleID:       &sched.ID,
		ScheduledOn:      sched.At(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
		Status:           models.TaskStatusPending,
	}
	suite.Require().NoError(suite.db.Create(&task).Error)

	w := suite.perform("DELETE", "/api/predefined-tasks/1", nil)
	suite.Require().Equal(http.StatusOK, w.Code)

	var schedCount int64
	suite.db.Model(&models.Schedule{}).Count(&schedCount)
	assert.Equal(suite.T(), int64(0), schedCount)

	var remaining models.Task
	suite.Require().NoError(suite.db.First(&remaining, task.ID).Error)
	assert.Nil(suite.T(), remaining.PredefinedTaskID)
	assert.Nil(suite.T(), remaining.ScheduleID)
}

// TestDeletePredefinedTask_NotFound tests deletion of a missing template
func (suite *PredefinedTaskHandlerTestSuite) TestDeletePredefinedTask_NotFound() {
	w := suite.perform("DELETE", "/api/predefined-tasks/9999", nil)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	response := suite.decode(w)
	assert.Equal(suite.T(), "Predefined task not found", response["error"])
}

// TestSuite runs the test suite
func TestPredefinedTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(PredefinedTaskHandlerTestSuite))
}
