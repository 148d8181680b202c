package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"planner/internal/middleware"
	"planner/internal/model"
	"planner/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TaskHandler struct {
	tasks *service.TaskService
}

func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type taskCreateRequest struct {
	Content     string  `json:"content" binding:"required"`
	Description string  `json:"description"`
	Start       string  `json:"start" binding:"required"`
	End         *string `json:"end"`
	Complete    *int    `json:"complete"`
}

// taskEditRequest is a partial update; nil means "leave unchanged".
type taskEditRequest struct {
	Content     *string `json:"content"`
	Description *string `json:"description"`
	Start       *string `json:"start"`
	End         *string `json:"end"`
	Complete    *int    `json:"complete"`
}

type taskMoveRequest struct {
	Start string  `json:"start" binding:"required"`
	End   *string `json:"end"`
}

type taskResizeRequest struct {
	Start *string `json:"start"`
	End   *string `json:"end"`
}

// taskResponse is returned by mutating operations.
type taskResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Content     string  `json:"content"`
	Description string  `json:"description"`
	Start       string  `json:"start"`
	End         *string `json:"end"`
	Complete    int     `json:"complete"`
}

// eventResponse is the calendar feed shape: title mirrors content and the
// description rides in extendedProps.
type eventResponse struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	Start         string     `json:"start"`
	End           *string    `json:"end"`
	Complete      int        `json:"complete"`
	ExtendedProps eventProps `json:"extendedProps"`
}

type eventProps struct {
	Description string `json:"description"`
}

// List returns all of the current user's tasks as calendar events
// @Summary List tasks
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} handler.eventResponse
// @Router /api/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tasks, err := h.tasks.List(c.Request.Context(), userID)
	if err != nil {
		log.Printf("listing tasks failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve tasks"})
		return
	}

	events := make([]eventResponse, 0, len(tasks))
	for _, t := range tasks {
		events = append(events, eventResponse{
			ID:            t.ID.String(),
			Title:         t.Content,
			Start:         formatTimestamp(t.Start),
			End:           formatTimestampPtr(t.End),
			Complete:      t.Complete,
			ExtendedProps: eventProps{Description: t.Description},
		})
	}
	c.JSON(http.StatusOK, events)
}

// Create stores a new task from the calendar
// @Summary Create a task
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 201 {object} handler.taskResponse
// @Router /api/tasks/create [post]
func (h *TaskHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req taskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing content or start"})
		return
	}

	task, err := h.tasks.Create(c.Request.Context(), userID, service.CreateTaskInput{
		Content:     req.Content,
		Description: req.Description,
		Start:       req.Start,
		End:         req.End,
		Complete:    req.Complete,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTaskResponse(task))
}

// Edit applies a partial update to a task
// @Summary Edit a task
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handler.taskResponse
// @Router /api/tasks/{id}/edit [post]
func (h *TaskHandler) Edit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req taskEditRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	task, err := h.tasks.Edit(c.Request.Context(), userID, taskID, service.EditTaskInput{
		Content:     req.Content,
		Description: req.Description,
		Start:       req.Start,
		End:         req.End,
		Complete:    req.Complete,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, toTaskResponse(task))
}

// Move updates a task's start after a calendar drag; end moves only when the
// client sends one
// @Summary Move a task
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /api/tasks/{id}/move [post]
func (h *TaskHandler) Move(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req taskMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing start"})
		return
	}

	if _, err := h.tasks.Move(c.Request.Context(), userID, taskID, req.Start, req.End); err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Resize updates either bound of a task independently
// @Summary Resize a task
// @Tags Tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /api/tasks/{id}/resize [post]
func (h *TaskHandler) Resize(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	var req taskResizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	if _, err := h.tasks.Resize(c.Request.Context(), userID, taskID, req.Start, req.End); err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Duplicate copies a task into a new row with a fresh id
// @Summary Duplicate a task
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Success 201 {object} handler.taskResponse
// @Router /api/tasks/{id}/duplicate [post]
func (h *TaskHandler) Duplicate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	task, err := h.tasks.Duplicate(c.Request.Context(), userID, taskID)
	if err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toTaskResponse(task))
}

// Delete removes a task permanently
// @Summary Delete a task
// @Tags Tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Router /api/tasks/{id}/delete [post]
func (h *TaskHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := taskIDParam(c)
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), userID, taskID); err != nil {
		respondTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(middleware.UserIDKey)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		c.Abort()
		return uuid.Nil, false
	}

	userID, ok := value.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid user ID format"})
		c.Abort()
		return uuid.Nil, false
	}
	return userID, true
}

func taskIDParam(c *gin.Context) (uuid.UUID, bool) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task ID format"})
		return uuid.Nil, false
	}
	return taskID, true
}

// respondTaskError maps service errors onto the API status table. Storage
// errors are logged server-side and never echoed to the client.
func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	default:
		log.Printf("task operation failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

func toTaskResponse(t *model.Task) taskResponse {
	return taskResponse{
		ID:          t.ID.String(),
		Title:       t.Content,
		Content:     t.Content,
		Description: t.Description,
		Start:       formatTimestamp(t.Start),
		End:         formatTimestampPtr(t.End),
		Complete:    t.Complete,
	}
}

func formatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339)
}

func formatTimestampPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
