package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

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

// TaskHandlerTestSuite defines the test suite for TaskHandler
type TaskHandlerTestSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
}

// SetupTest runs before each test
func (suite *TaskHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.PredefinedTask{},
		&models.Schedule{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	taskRepo := repository.NewTaskRepository(suite.db)
	templateRepo := repository.NewPredefinedTaskRepository(suite.db)
	userRepo := repository.NewUserRepository(suite.db)

	taskService := services.NewTaskService(taskRepo, templateRepo, userRepo)
	materializer := services.NewMaterializer(taskRepo, templateRepo, log)
	handler := NewTaskHandler(taskService, materializer, log)

	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	// Create router with the same route layout as the server
	suite.router = gin.New()
	tasks := suite.router.Group("/api/tasks")
	{
		tasks.GET("/date/:date", handler.ListTasksForDate)
		tasks.GET("", handler.ListTasks)
		tasks.POST("", handler.CreateTask)
		tasks.GET("/:id", handler.GetTask)
		tasks.PUT("/:id", handler.UpdateTask)
		tasks.DELETE("/:id", handler.DeleteTask)
	}
}

// TearDownTest runs after each test
func (suite *TaskHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// Helper function to create test data
func (suite *TaskHandlerTestSuite) createTestUser(email string) *models.User {
	user := &models.User{
		Name:         "Test User",
		Email:        email,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *TaskHandlerTestSuite) createTestTemplate(name string, schedules ...models.Schedule) *models.PredefinedTask {
	template := &models.PredefinedTask{
		Name:        name,
		Description: "Test Description",
		Schedules:   schedules,
	}
	suite.db.Create(template)
	return template
}

func (suite *TaskHandlerTestSuite) perform(method, url string, payload interface{}) *httptest.ResponseRecorder {
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

func (suite *TaskHandlerTestSuite) decode(w *httptest.ResponseRecorder) map[string]interface{} {
	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	suite.Require().NoError(err)
	return response
}

// TestListTasksForDate_MaterializesDueSchedules tests that fetching a day
// creates instances for the schedules due on it
func (suite *TaskHandlerTestSuite) TestListTasksForDate_MaterializesDueSchedules() {
	suite.createTestTemplate("Morning Feeding",
		models.Schedule{ScheduleType: models.ScheduleDaily, ScheduleOn: "09:00"},
	)

	w := suite.perform("GET", "/api/tasks/date/2024-06-01", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	response := suite.decode(w)
	tasks := response["tasks"].([]interface{})
	suite.Require().Len(tasks, 1)

	first := tasks[0].(map[string]interface{})
	assert.Equal(suite.T(), "PENDING", first["status"])
	assert.Contains(suite.T(), first["scheduledOn"], "2024-06-01T09:00:00")
}

// TestListTasksForDate_Idempotent tests that repeated fetches of the same
// day return the same instances instead of creating duplicates
func (suite *TaskHandlerTestSuite) TestListTasksForDate_Idempotent() {
	suite.createTestTemplate("Morning Feeding",
		models.Schedule{ScheduleType: models.ScheduleDaily, ScheduleOn: "09:00"},
	)

	first := suite.decode(suite.perform("GET", "/api/tasks/date/2024-06-01", nil))
	second := suite.decode(suite.perform("GET", "/api/tasks/date/2024-06-01", nil))

	firstTasks := first["tasks"].([]interface{})
	secondTasks := second["tasks"].([]interface{})
	suite.Require().Len(firstTasks, 1)
	suite.Require().Len(secondTasks, 1)

	firstID := firstTasks[0].(map[string]interface{})["id"]
	secondID := secondTasks[0].(map[string]interface{})["id"]
	assert.Equal(suite.T(), firstID, secondID)

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	assert.Equal(suite.T(), int64(1), count)
}

// TestListTasksForDate_InvalidDate tests rejection of malformed dates
func (suite *TaskHandlerTestSuite) TestListTasksForDate_InvalidDate() {
	w := suite.perform("GET", "/api/tasks/date/not-a-date", nil)

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)

	response := suite.decode(w)
	assert.Equal(suite.T(), "Invalid date format", response["error"])

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestCreateTask_Success tests successful task creation
func (suite *TaskHandlerTestSuite) TestCreateTask_Success() {
	template := suite.createTestTemplate("Litter Cleaning")
	user := suite.createTestUser("staff@example.com")

	w := suite.perform("POST", "/api/tasks", map[string]interface{}{
		"predefinedTaskId": template.ID,
		"scheduledOn":      "2024-06-01T10:00:00Z",
		"assignedTo":       user.ID,
		"duration":         30,
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	response := suite.decode(w)
	task := response["task"].(map[string]interface{})
	assert.Equal(suite.T(), "PENDING", task["status"])
	assert.Equal(suite.T(), float64(user.ID), task["assignedTo"])
}

// TestCreateTask_TemplateNotFound tests that referencing a missing template
// fails without leaving a row behind
func (suite *TaskHandlerTestSuite) TestCreateTask_TemplateNotFound() {
	w := suite.perform("POST", "/api/tasks", map[string]interface{}{
		"predefinedTaskId": 9999,
		"scheduledOn":      "2024-06-01T10:00:00Z",
	})

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	response := suite.decode(w)
	assert.Equal(suite.T(), "Predefined task not found", response["error"])

	var count int64
	suite.db.Model(&models.Task{}).Count(&count)
	assert.Equal(suite.T(), int64(0), count)
}

// TestCreateTask_AssigneeNotFound tests that assigning a missing user fails
func (suite *TaskHandlerTestSuite) TestCreateTask_AssigneeNotFound() {
	template := suite.createTestTemplate("Litter Cleaning")

	w := suite.perform("POST", "/api/tasks", map[string]interface{}{
		"predefinedTaskId": template.ID,
		"scheduledOn":      "2024-06-01T10:00:00Z",
		"assignedTo":       9999,
	})

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	response := suite.decode(w)
	assert.Equal(suite.T(), "User not found", response["error"])
}

// TestCreateTask_InvalidStatus tests rejection of unknown status values
func (suite *TaskHandlerTestSuite) TestCreateTask_InvalidStatus() {
	template := suite.createTestTemplate("Litter Cleaning")

	w := suite.perform("POST", "/api/tasks", map[string]interface{}{
		"predefinedTaskId": template.ID,
		"scheduledOn":      "2024-06-01T10:00:00Z",
		"status":           "DONE",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

// TestListTasks_StatusFilter tests listing with a status filter
func (suite *TaskHandlerTestSuite) TestListTasks_StatusFilter() {
	template := suite.createTestTemplate("Litter Cleaning")
	suite.perform("POST", "/api/tasks", map[string]interface{}{
		"predefinedTaskId": template.ID,
		"scheduledOn":      "2024-06-01T10:00:00Z",
	})
	suite.perform("POST", "/api/tasks", map[string]interface{}{
		"predefinedTaskId": template.ID,
		"scheduledOn":      "2024-06-02T10:00:00Z",
		"status":           "COMPLETED",
	})

	w := suite.perform("GET", "/api/tasks?status=COMPLETED", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	response := suite.decode(w)
	tasks := response["tasks"].([]interface{})
	suite.Require().Len(tasks, 1)
	assert.Equal(suite.T(), "COMPLETED", tasks[0].(map[string]interface{})["status"])
	assert.Contains(suite.T(), response, "pagination")
}

// TestGetTask_NotFound tests retrieval of a missing task
func (suite *TaskHandlerTestSuite) TestGetTask_NotFound() {
	w := suite.perform("GET", "/api/tasks/9999", nil)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	response := suite.decode(w)
	assert.Equal(suite.T(), "Task not found", response["error"])
}

// TestUpdateTask_Status tests a partial status update
func (suite *TaskHandlerTestSuite) TestUpdateTask_Status() {
	template := suite.createTestTemplate("Litter Cleaning")
	created := suite.decode(suite.perform("POST", "/api/tasks", map[string]interface{}{
		"predefinedTaskId": template.ID,
		"scheduledOn":      "2024-06-01T10:00:00Z",
	}))
	id := created["task"].(map[string]interface{})["id"].(float64)

	w := suite.perform("PUT", "/api/tasks/1", map[string]interface{}{
		"status": "ONGOING",
	})

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	response := suite.decode(w)
	task := response["task"].(map[string]interface{})
	assert.Equal(suite.T(), id, task["id"])
	assert.Equal(suite.T(), "ONGOING", task["status"])
	assert.Contains(suite.T(), task["scheduledOn"], "2024-06-01T10:00:00")
}

// TestDeleteTask_Success tests successful task deletion
func (suite *TaskHandlerTestSuite) TestDeleteTask_Success() {
	template := suite.createTestTemplate("Litter Cleaning")
	suite.perform("POST", "/api/tasks", map[string]interface{}{
		"predefinedTaskId": template.ID,
		"scheduledOn":      "2024-06-01T10:00:00Z",
	})

	w := suite.perform("DELETE", "/api/tasks/1", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	response := suite.decode(w)
	assert.Equal(suite.T(), "Task deleted successfully", response["message"])

	// Verify task is deleted
	var deletedTask models.Task
	err := suite.db.First(&deletedTask, 1).Error
	assert.Error(suite.T(), err)
}

// TestDeleteTask_NotFound tests deletion of a missing task
func (suite *TaskHandlerTestSuite) TestDeleteTask_NotFound() {
	w := suite.perform("DELETE", "/api/tasks/9999", nil)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)
}

// TestSuite runs the test suite
func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
