package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dawah-report-api/config"
	"dawah-report-api/middleware"
	"dawah-report-api/models"
	"dawah-report-api/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetUsers lists the accounts the caller may see: the whole organization for
// the central admin, the descendant subtree for every other admin, and just
// the caller itself for a daye.
func GetUsers(c *gin.Context) {
	viewer, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication context missing"})
		return
	}

	all, err := loadActiveUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	if viewer.Role == models.RoleCentralAdmin {
		c.JSON(http.StatusOK, gin.H{"users": all})
		return
	}

	visible, _, err := visibleEmailsFor(viewer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	scoped := make([]models.User, 0, len(visible))
	for _, u := range all {
		if _, in := visible[strings.ToLower(u.Email)]; in || strings.EqualFold(u.Email, viewer.Email) {
			scoped = append(scoped, u)
		}
	}
	c.JSON(http.StatusOK, gin.H{"users": scoped})
}

// updatableFields are the profile attributes a central admin may edit.
// Role and scope changes go through here so every one of them lands in the
// change log with its note.
var updatableFields = map[string]bool{
	"name":     true,
	"role":     true,
	"division": true,
	"district": true,
	"upazila":  true,
	"union":    true,
	"markaz":   true,
	"phone":    true,
}

type UpdateUserRequest struct {
	UserID  int                    `json:"userId" binding:"required"`
	Updates map[string]interface{} `json:"updates" binding:"required"`
	Note    string                 `json:"note"`
}

// UpdateUser edits a user's profile, role and scope fields. Central admin
// only; a non-empty change note is mandatory and recorded for audit.
func UpdateUser(c *gin.Context) {
	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Note) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A change note is required"})
		return
	}

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", req.UserID).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	applied := make(models.MetricMap)
	for field, value := range req.Updates {
		if !updatableFields[field] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Field cannot be updated: " + field})
			return
		}
		switch field {
		case "name":
			user.Name = utils.SanitizeInput(asString(value))
		case "role":
			role := asString(value)
			if !models.IsKnownRole(role) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown role: " + role})
				return
			}
			user.Role = role
		case "division":
			user.Division = utils.SanitizeInput(asString(value))
		case "district":
			user.District = utils.SanitizeInput(asString(value))
		case "upazila":
			user.Upazila = utils.SanitizeInput(asString(value))
		case "union":
			user.UnionName = utils.SanitizeInput(asString(value))
		case "markaz":
			ref, err := markazFromJSON(value)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid markaz value"})
				return
			}
			user.Markaz = ref
		case "phone":
			phone := utils.SanitizeInput(asString(value))
			user.Phone = &phone
		}
		applied[field] = value
	}

	adminEmail, _ := c.Get("email")
	now := time.Now()
	user.UpdateAt = &now

	tx := config.DB.Begin()
	if err := tx.Save(&user).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	entry := models.ProfileChangeLog{
		LogID:     uuid.NewString(),
		UserID:    user.UserID,
		ChangedBy: adminEmail.(string),
		Note:      strings.TrimSpace(req.Note),
		Changes:   applied,
		CreateAt:  &now,
	}
	if err := tx.Create(&entry).Error; err != nil {
		tx.Rollback()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record change note"})
		return
	}
	if err := tx.Commit().Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User updated successfully",
		"user":    user,
	})
}

type BanRequest struct {
	UserID int  `json:"userId" binding:"required"`
	Banned bool `json:"banned"`
}

// SetBanned toggles an account's banned flag. Central admin only.
func SetBanned(c *gin.Context) {
	var req BanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", req.UserID).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	now := time.Now()
	user.Banned = req.Banned
	user.UpdateAt = &now
	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update ban status"})
		return
	}

	action := "unbanned"
	if req.Banned {
		action = "banned"
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User " + action + " successfully",
		"user":    user,
	})
}

type DeleteUserRequest struct {
	UserID int `json:"userId" binding:"required"`
}

// DeleteUser soft-deletes an account. The UI double-confirms before calling.
func DeleteUser(c *gin.Context) {
	var req DeleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := config.DB.Where("user_id = ? AND delete_at IS NULL", req.UserID).
		First(&user).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	now := time.Now()
	user.DeleteAt = &now
	user.UpdateAt = &now
	if err := config.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

// markazFromJSON accepts both markaz shapes the clients send: a bare name
// string or a {id, name} relation object.
func markazFromJSON(v interface{}) (models.MarkazRef, error) {
	switch t := v.(type) {
	case nil:
		return models.MarkazRef{}, nil
	case string:
		return models.MarkazRef{Name: strings.TrimSpace(t)}, nil
	case map[string]interface{}:
		ref := models.MarkazRef{}
		if id, ok := t["id"].(string); ok {
			ref.ID = id
		} else if id, ok := t["id"].(float64); ok {
			ref.ID = strconv.FormatFloat(id, 'f', -1, 64)
		}
		if name, ok := t["name"].(string); ok {
			ref.Name = strings.TrimSpace(name)
		}
		return ref, nil
	}
	return models.MarkazRef{}, errors.New("unsupported markaz shape")
}
