package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/turdaliyevhasanali60-lang/CalendarSnow/domain"
	"github.com/turdaliyevhasanali60-lang/CalendarSnow/internal/http/middleware"
	"github.com/turdaliyevhasanali60-lang/CalendarSnow/internal/services"
)

// TaskHandlers handles task HTTP requests. Routes are mounted behind the
// JWT and verified-user middleware.
type TaskHandlers struct {
	taskSvc domain.TaskService
	log     *zap.SugaredLogger
}

// NewTaskHandlers creates new task handlers
func NewTaskHandlers(taskSvc domain.TaskService, log *zap.SugaredLogger) *TaskHandlers {
	return &TaskHandlers{taskSvc: taskSvc, log: log}
}

// CreateTaskRequest represents task creation
type CreateTaskRequest struct {
	Title string `json:"title" binding:"required"`
	Date  string `json:"date" binding:"required"`
}

// UpdateTaskRequest represents a partial task update. IsCompleted is a
// token string ("1"/"true"/"yes"/"on" and their negatives), not a JSON
// boolean.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	IsCompleted *string `json:"is_completed"`
}

func taskJSON(t *domain.Task) gin.H {
	return gin.H{
		"id":           t.ID,
		"title":        t.Title,
		"date":         t.Date.Format(domain.DateLayout),
		"is_completed": t.IsCompleted,
	}
}

// TasksForDay returns the caller's tasks for the requested day.
func (h *TaskHandlers) TasksForDay(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	date := c.Query("date")
	tasks, err := h.taskSvc.ListForDay(c.Request.Context(), userID, date)
	if err != nil {
		if domain.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing date (expected YYYY-MM-DD)."})
			return
		}
		h.log.Errorw("failed to list tasks", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list tasks"})
		return
	}

	out := make([]gin.H, 0, len(tasks))
	for i := range tasks {
		out = append(out, taskJSON(&tasks[i]))
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "tasks": out})
}

// CreateTask creates a task for the caller.
func (h *TaskHandlers) CreateTask(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := h.taskSvc.Create(c.Request.Context(), userID, req.Title, req.Date)
	if err != nil {
		if domain.IsValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.log.Errorw("failed to create task", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"task": taskJSON(task)})
}

// UpdateTask partially updates a task owned by the caller. A task id owned
// by someone else is indistinguishable from a missing one.
func (h *TaskHandlers) UpdateTask(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User ID not found in context"})
		return
	}

	taskID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task id"})
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patch := domain.TaskPatch{Title: req.Title}
	if req.IsCompleted != nil {
		completed, err := services.ParseCompletionFlag(*req.IsCompleted)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		patch.IsCompleted = &completed
	}

	task, err := h.taskSvc.Update(c.Request.Context(), userID, uint(taskID), patch)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found."})
		case domain.IsValidation(err):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.log.Errorw("failed to update task", "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"task": taskJSON(task)})
}
