package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"dawah-report-api/config"
	"dawah-report-api/middleware"
	"dawah-report-api/models"
	"dawah-report-api/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetCategories lists the static report category definitions the forms and
// dashboards are built from.
func GetCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.Categories})
}

// GetReports returns the raw records of one category for the requested
// emails, plus whether the caller already submitted today. Non-admin callers
// can only query themselves; admins only emails inside their descendant set.
func GetReports(c *gin.Context) {
	cat, ok := models.CategoryByKey(c.Param("category"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown report category"})
		return
	}

	viewer, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication context missing"})
		return
	}

	emails := requestedEmails(c.Query("email"), c.Query("emails"), viewer.Email)

	if !models.IsAdminRole(viewer.Role) {
		for _, e := range emails {
			if !strings.EqualFold(e, viewer.Email) {
				c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed to view other users' reports"})
				return
			}
		}
	} else {
		visible, _, err := visibleEmailsFor(viewer)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
			return
		}
		for _, e := range emails {
			if _, in := visible[e]; !in {
				c.JSON(http.StatusForbidden, gin.H{"error": "Email outside your scope: " + e})
				return
			}
		}
	}

	var records []models.ReportRecord
	if err := config.DB.WithContext(c.Request.Context()).
		Where("category = ? AND email IN ?", cat.Key, emails).
		Order("report_date DESC").
		Find(&records).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load records"})
		return
	}

	submittedToday := false
	today := services.TodayKey()
	for _, r := range records {
		if strings.EqualFold(r.Email, viewer.Email) && r.ReportDate == today {
			submittedToday = true
			break
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"records":          records,
		"isSubmittedToday": submittedToday,
	})
}

// CreateReport stores today's submission for one category. A user gets one
// record per category per Dhaka day; a second attempt returns 409 so the
// form can lock itself.
func CreateReport(c *gin.Context) {
	cat, ok := models.CategoryByKey(c.Param("category"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unknown report category"})
		return
	}

	viewer, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication context missing"})
		return
	}

	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fields := make(models.MetricMap)
	for metric := range cat.LabelMap {
		if v, present := body[metric]; present {
			fields[metric] = v
		}
	}
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No recognized metrics in submission"})
		return
	}

	editorContent, _ := body["editorContent"].(string)
	today := services.TodayKey()

	// Pre-check for today's record; the unique index is the real guarantee.
	var existing models.ReportRecord
	err := config.DB.Where("category = ? AND email = ? AND report_date = ?",
		cat.Key, viewer.Email, today).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Report already submitted today"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing report"})
		return
	}

	now := time.Now()
	record := models.ReportRecord{
		Category:      cat.Key,
		Email:         strings.ToLower(viewer.Email),
		ReportDate:    today,
		Fields:        fields,
		EditorContent: editorContent,
		CreateAt:      &now,
		UpdateAt:      &now,
	}

	if err := config.DB.Create(&record).Error; err != nil {
		// A concurrent submission can slip past the pre-check and hit the
		// unique index instead.
		if strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			c.JSON(http.StatusConflict, gin.H{"error": "Report already submitted today"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save report"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Report submitted successfully",
		"record":  record,
	})
}
