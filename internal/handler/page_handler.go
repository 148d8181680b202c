package handler

import (
	"errors"
	"log"
	"net/http"

	"planner/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PageHandler serves the rendered browser views. These are thin wrappers
// around the same services the JSON API uses; form submissions answer with a
// redirect back to the dashboard.
type PageHandler struct {
	tasks *service.TaskService
	auth  *service.AuthService
}

func NewPageHandler(tasks *service.TaskService, authService *service.AuthService) *PageHandler {
	return &PageHandler{tasks: tasks, auth: authService}
}

func (h *PageHandler) Calendar(c *gin.Context) {
	c.HTML(http.StatusOK, "calendar.html", gin.H{"flash": popFlash(c)})
}

func (h *PageHandler) Dashboard(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.auth.CurrentUser(c.Request.Context(), userID)
	if err != nil {
		c.Redirect(http.StatusFound, "/")
		c.Abort()
		return
	}

	tasks, err := h.tasks.List(c.Request.Context(), userID)
	if err != nil {
		log.Printf("listing tasks failed: %v", err)
		c.String(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"tasks": tasks,
		"user":  user,
		"flash": popFlash(c),
	})
}

// DashboardCreate handles the quick-add form: content and description only,
// the span defaults to the next hour.
func (h *PageHandler) DashboardCreate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	content := c.PostForm("content")
	description := c.PostForm("description")

	if _, err := h.tasks.CreateQuick(c.Request.Context(), userID, content, description); err != nil {
		if errors.Is(err, service.ErrValidation) {
			setFlash(c, "error", "Task content is required")
		} else {
			log.Printf("creating task failed: %v", err)
			setFlash(c, "error", "Could not create the task")
		}
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *PageHandler) EditPage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := pageTaskID(c)
	if !ok {
		return
	}

	task, err := h.tasks.Get(c.Request.Context(), userID, taskID)
	if err != nil {
		h.redirectPageError(c, err)
		return
	}

	c.HTML(http.StatusOK, "edit.html", gin.H{"task": task})
}

func (h *PageHandler) EditSubmit(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := pageTaskID(c)
	if !ok {
		return
	}

	content := c.PostForm("content")
	description := c.PostForm("description")

	_, err := h.tasks.Edit(c.Request.Context(), userID, taskID, service.EditTaskInput{
		Content:     &content,
		Description: &description,
	})
	if err != nil {
		h.redirectPageError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *PageHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	taskID, ok := pageTaskID(c)
	if !ok {
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), userID, taskID); err != nil {
		h.redirectPageError(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/dashboard")
}

func (h *PageHandler) Admin(c *gin.Context) {
	c.HTML(http.StatusOK, "admin.html", gin.H{"flash": popFlash(c)})
}

func pageTaskID(c *gin.Context) (uuid.UUID, bool) {
	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusFound, "/dashboard")
		c.Abort()
		return uuid.Nil, false
	}
	return taskID, true
}

// redirectPageError sends browser flows back to the dashboard with a flash
// message instead of a JSON error body.
func (h *PageHandler) redirectPageError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		setFlash(c, "error", "You don't have permission for that task")
	case errors.Is(err, service.ErrNotFound):
		setFlash(c, "error", "Task not found")
	case errors.Is(err, service.ErrValidation):
		setFlash(c, "error", "Invalid task data")
	default:
		log.Printf("task operation failed: %v", err)
		setFlash(c, "error", "Something went wrong")
	}
	c.Redirect(http.StatusFound, "/dashboard")
}
