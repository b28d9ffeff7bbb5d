package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"dawah-report-api/config"
	"dawah-report-api/middleware"
	"dawah-report-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetLeaves lists leave records: a daye sees its own, an admin sees every
// descendant's plus its own.
func GetLeaves(c *gin.Context) {
	viewer, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication context missing"})
		return
	}

	emails := []string{strings.ToLower(viewer.Email)}
	if models.IsAdminRole(viewer.Role) {
		visible, _, err := visibleEmailsFor(viewer)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
			return
		}
		emails = emails[:0]
		for e := range visible {
			emails = append(emails, e)
		}
	}

	query := config.DB.Where("email IN ?", emails)
	if status := c.Query("status"); status != "" {
		if !models.IsValidLeaveStatus(status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown leave status"})
			return
		}
		query = query.Where("status = ?", status)
	}

	var leaves []models.LeaveRecord
	if err := query.Order("create_at DESC").Find(&leaves).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load leave records"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"leaves": leaves})
}

type CreateLeaveRequest struct {
	LeaveType string `json:"leaveType" binding:"required"`
	FromDate  string `json:"fromDate" binding:"required"`
	ToDate    string `json:"toDate" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

// CreateLeave files a new pending leave request for the caller. The day
// count is derived from the date range, inclusive on both ends.
func CreateLeave(c *gin.Context) {
	viewer, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication context missing"})
		return
	}

	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	from, err := time.Parse("2006-01-02", req.FromDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fromDate, want YYYY-MM-DD"})
		return
	}
	to, err := time.Parse("2006-01-02", req.ToDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid toDate, want YYYY-MM-DD"})
		return
	}
	if to.Before(from) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "toDate is before fromDate"})
		return
	}

	now := time.Now()
	leave := models.LeaveRecord{
		LeaveID:   uuid.NewString(),
		UserID:    viewer.UserID,
		Email:     strings.ToLower(viewer.Email),
		LeaveType: req.LeaveType,
		FromDate:  req.FromDate,
		ToDate:    req.ToDate,
		Days:      int(to.Sub(from).Hours()/24) + 1,
		Reason:    strings.TrimSpace(req.Reason),
		Status:    models.LeaveStatusPending,
		CreateAt:  &now,
		UpdateAt:  &now,
	}

	if err := config.DB.Create(&leave).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create leave request"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Leave request submitted",
		"leave":   leave,
	})
}

type DecideLeaveRequest struct {
	ID              string `json:"id" binding:"required"`
	Status          string `json:"status" binding:"required"`
	RejectionReason string `json:"rejectionReason"`
}

// DecideLeave transitions a pending leave to approved or rejected. Rejection
// requires a reason. Only admins with the requester in scope may decide, and
// a processed record cannot be decided again.
func DecideLeave(c *gin.Context) {
	viewer, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication context missing"})
		return
	}

	var req DecideLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Status != models.LeaveStatusApproved && req.Status != models.LeaveStatusRejected {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status must be approved or rejected"})
		return
	}
	if req.Status == models.LeaveStatusRejected && strings.TrimSpace(req.RejectionReason) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "A rejection reason is required"})
		return
	}

	var leave models.LeaveRecord
	if err := config.DB.Where("leave_id = ?", req.ID).First(&leave).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Leave request not found"})
		return
	}
	if leave.Status != models.LeaveStatusPending {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Leave request already processed"})
		return
	}

	visible, _, err := visibleEmailsFor(viewer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}
	if _, in := visible[strings.ToLower(leave.Email)]; !in {
		c.JSON(http.StatusForbidden, gin.H{"error": "Leave request outside your scope"})
		return
	}

	now := time.Now()
	leave.Status = req.Status
	leave.ApprovedBy = viewer.Name
	leave.RejectionReason = strings.TrimSpace(req.RejectionReason)
	leave.DecidedAt = &now
	leave.UpdateAt = &now

	if err := config.DB.Save(&leave).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update leave request"})
		return
	}

	// Best effort; the decision stands even when the mail bounces.
	go notifyLeaveDecision(leave)

	c.JSON(http.StatusOK, gin.H{
		"message": "Leave request " + req.Status,
		"leave":   leave,
	})
}

func notifyLeaveDecision(leave models.LeaveRecord) {
	subject := fmt.Sprintf("Leave request %s", leave.Status)
	body := fmt.Sprintf(
		"<p>Your %s leave from %s to %s (%d days) has been <b>%s</b> by %s.</p>",
		leave.LeaveType, leave.FromDate, leave.ToDate, leave.Days, leave.Status, leave.ApprovedBy,
	)
	if leave.Status == models.LeaveStatusRejected {
		body += fmt.Sprintf("<p>Reason: %s</p>", leave.RejectionReason)
	}
	if err := config.SendMail([]string{leave.Email}, subject, body); err != nil {
		log.Printf("leave decision mail to %s: %v", leave.Email, err)
	}
}
