package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"dawah-report-api/config"
	"dawah-report-api/middleware"
	"dawah-report-api/models"
	"dawah-report-api/services"

	"github.com/gin-gonic/gin"
)

// scopeEmails resolves the email set a dashboard request aggregates over.
// With no ?email= it is the caller's own subtree. An admin may pass ?email=
// to drill into any user in scope, in which case the set is rooted there.
func scopeEmails(c *gin.Context, viewer models.User) ([]string, map[string]struct{}, bool) {
	visible, all, err := visibleEmailsFor(viewer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return nil, nil, false
	}

	root := strings.ToLower(strings.TrimSpace(c.Query("email")))
	if root != "" && !strings.EqualFold(root, viewer.Email) {
		if _, in := visible[root]; !in {
			c.JSON(http.StatusForbidden, gin.H{"error": "Email outside your scope"})
			return nil, nil, false
		}
		visible = services.DescendantEmails(root, all, viewer)
	}

	emails := make([]string, 0, len(visible))
	for e := range visible {
		emails = append(emails, e)
	}
	return emails, visible, true
}

// GetDashboardStats returns the headline numbers for the landing dashboard:
// how many users sit under the viewer by role, today's submission coverage
// per category, and pending leave count.
func GetDashboardStats(c *gin.Context) {
	viewer, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication context missing"})
		return
	}

	visible, all, err := visibleEmailsFor(viewer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}

	roleCounts := make(map[string]int64)
	for _, u := range all {
		if _, in := visible[strings.ToLower(u.Email)]; in {
			roleCounts[u.Role]++
		}
	}

	emails := make([]string, 0, len(visible))
	for e := range visible {
		emails = append(emails, e)
	}
	today := services.TodayKey()

	submittedToday := make(map[string]int64, len(models.Categories))
	for _, cat := range models.Categories {
		var n int64
		if err := config.DB.Model(&models.ReportRecord{}).
			Where("category = ? AND report_date = ? AND email IN ?", cat.Key, today, emails).
			Count(&n).Error; err != nil {
			// One broken count should not blank the dashboard.
			continue
		}
		submittedToday[cat.Key] = n
	}

	var pendingLeaves int64
	config.DB.Model(&models.LeaveRecord{}).
		Where("status = ? AND email IN ?", models.LeaveStatusPending, emails).
		Count(&pendingLeaves)

	c.JSON(http.StatusOK, gin.H{
		"stats": gin.H{
			"current_date":    today,
			"users_by_role":   roleCounts,
			"total_users":     len(visible),
			"submitted_today": submittedToday,
			"pending_leaves":  pendingLeaves,
		},
	})
}

// GetMonthlyOverview assembles the month view-model that drives the tally
// cards, charts and tables: every category fetched once, filtered to the
// requested Dhaka month, with per-metric totals and display rows.
func GetMonthlyOverview(c *gin.Context) {
	viewer, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication context missing"})
		return
	}

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 3000 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year"})
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month"})
		return
	}

	emails, _, ok := scopeEmails(c, viewer)
	if !ok {
		return
	}

	source := services.StoreSource{DB: config.DB}
	fetched := services.FetchAll(c.Request.Context(), source, models.Categories, emails)

	overview := make(map[string]gin.H, len(fetched))
	for key, data := range fetched {
		monthData := services.FilterToMonth(data, year, month)
		overview[key] = gin.H{
			"labels": monthData.Labels,
			"totals": services.MonthlyTotals(monthData, services.ComparisonScoring),
			"rows":   services.TableRows(monthData),
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"year":       year,
		"month":      month,
		"categories": overview,
	})
}

// CompareReports runs the comparison engine for one category over two
// periods (or one for singleMonth). Periods are the raw tokens the UI
// builds: "2025-01-15" for day, "2025-01" for month, "2025" for year.
func CompareReports(c *gin.Context) {
	viewer, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication context missing"})
		return
	}

	cat, ok := models.CategoryByKey(c.Query("category"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown report category"})
		return
	}

	kind := services.ComparisonKind(c.Query("type"))
	if !services.IsValidComparisonKind(kind) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type must be day, month, year or singleMonth"})
		return
	}

	from := strings.TrimSpace(c.Query("from"))
	to := strings.TrimSpace(c.Query("to"))
	if from == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "from period is required"})
		return
	}
	if kind != services.CompareSingleMonth && to == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "to period is required"})
		return
	}

	emails, visible, ok := scopeEmails(c, viewer)
	if !ok {
		return
	}

	source := services.StoreSource{DB: config.DB}
	fetched := services.FetchAll(c.Request.Context(), source, []models.CategoryDef{cat}, emails)

	results := services.Compare(fetched[cat.Key], visible, kind, from, to, services.ComparisonScoring)

	c.JSON(http.StatusOK, gin.H{
		"category": cat.Key,
		"type":     kind,
		"from":     from,
		"to":       to,
		"results":  results,
	})
}
