package controllers

import (
	"net/http"
	"strings"
	"time"

	"dawah-report-api/config"
	"dawah-report-api/middleware"
	"dawah-report-api/models"

	"github.com/gin-gonic/gin"
)

// GetTodos lists weekly to-do sheets. Admins may pass ?email= for any user
// in scope; ?q= narrows by free text over notes and week (the client
// debounces keystrokes, the server just filters).
func GetTodos(c *gin.Context) {
	viewer, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication context missing"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if email == "" {
		email = strings.ToLower(viewer.Email)
	}
	if !strings.EqualFold(email, viewer.Email) {
		if !models.IsAdminRole(viewer.Role) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to view other users' plans"})
			return
		}
		visible, _, err := visibleEmailsFor(viewer)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
			return
		}
		if _, in := visible[email]; !in {
			c.JSON(http.StatusForbidden, gin.H{"error": "Email outside your scope"})
			return
		}
	}

	query := config.DB.Where("email = ?", email)
	if q := strings.TrimSpace(c.Query("q")); q != "" {
		like := "%" + q + "%"
		query = query.Where("notes LIKE ? OR week_start LIKE ?", like, like)
	}

	var todos []models.WeeklyTodo
	if err := query.Order("week_start DESC").Find(&todos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load plans"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"todos": todos})
}

type TodoRequest struct {
	WeekStart string                 `json:"week_start" binding:"required"`
	Entries   map[string]interface{} `json:"entries"`
	Notes     string                 `json:"notes"`
}

// CreateTodo files a weekly plan for the caller.
func CreateTodo(c *gin.Context) {
	viewer, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication context missing"})
		return
	}

	var req TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := time.Parse("2006-01-02", req.WeekStart); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid week_start, want YYYY-MM-DD"})
		return
	}

	now := time.Now()
	todo := models.WeeklyTodo{
		Email:     strings.ToLower(viewer.Email),
		WeekStart: req.WeekStart,
		Entries:   req.Entries,
		Notes:     strings.TrimSpace(req.Notes),
		CreateAt:  &now,
		UpdateAt:  &now,
	}

	if err := config.DB.Create(&todo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save plan"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Plan saved", "todo": todo})
}

// UpdateTodo edits a plan; only its owner may.
func UpdateTodo(c *gin.Context) {
	viewer, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication context missing"})
		return
	}

	var todo models.WeeklyTodo
	if err := config.DB.Where("todo_id = ?", c.Param("id")).First(&todo).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}
	if !strings.EqualFold(todo.Email, viewer.Email) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your plan"})
		return
	}

	var req TodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	todo.WeekStart = req.WeekStart
	todo.Entries = req.Entries
	todo.Notes = strings.TrimSpace(req.Notes)
	todo.UpdateAt = &now

	if err := config.DB.Save(&todo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan updated", "todo": todo})
}

// DeleteTodo removes a plan; only its owner may.
func DeleteTodo(c *gin.Context) {
	viewer, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication context missing"})
		return
	}

	var todo models.WeeklyTodo
	if err := config.DB.Where("todo_id = ?", c.Param("id")).First(&todo).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Plan not found"})
		return
	}
	if !strings.EqualFold(todo.Email, viewer.Email) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not your plan"})
		return
	}

	if err := config.DB.Delete(&todo).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan deleted"})
}
