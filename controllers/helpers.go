package controllers

import (
	"strings"

	"dawah-report-api/config"
	"dawah-report-api/models"
	"dawah-report-api/services"
)

// loadActiveUsers fetches every non-deleted account. The hierarchy resolver
// needs the full flat list to walk parent relationships.
func loadActiveUsers() ([]models.User, error) {
	var users []models.User
	err := config.DB.Where("delete_at IS NULL").Find(&users).Error
	return users, err
}

// visibleEmailsFor computes the set of emails viewer may read: itself plus
// every descendant in the organizational tree.
func visibleEmailsFor(viewer models.User) (map[string]struct{}, []models.User, error) {
	all, err := loadActiveUsers()
	if err != nil {
		return nil, nil, err
	}
	return services.VisibleEmails(viewer, all), all, nil
}

// requestedEmails parses the ?email= / ?emails=csv query pair into a
// normalized slice. Empty input means "just the caller".
func requestedEmails(email, emails, fallback string) []string {
	var out []string
	appendEmail := func(e string) {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" {
			return
		}
		for _, existing := range out {
			if existing == e {
				return
			}
		}
		out = append(out, e)
	}

	appendEmail(email)
	for _, e := range strings.Split(emails, ",") {
		appendEmail(e)
	}
	if len(out) == 0 {
		appendEmail(fallback)
	}
	return out
}
