package services

import (
	"strings"

	"dawah-report-api/models"
)

// ParentEmail resolves the email of the admin directly above u in the
// organizational tree. Each role falls back to the next broader scope and
// finally to the central admin; the central admin itself has no parent.
// Unknown roles resolve to nothing, which leaves such an account visible
// only to itself.
//
// viewer is the logged-in user driving the resolution. When the viewer is the
// acting central admin it is reused directly instead of being searched for.
func ParentEmail(u models.User, all []models.User, viewer models.User) (string, bool) {
	switch u.Role {
	case models.RoleCentralAdmin:
		return "", false

	case models.RoleDivisionAdmin:
		if viewer.Role == models.RoleCentralAdmin {
			return viewer.Email, true
		}
		return findByRole(all, models.RoleCentralAdmin, nil)

	case models.RoleDistrictAdmin:
		if email, ok := findByRole(all, models.RoleDivisionAdmin, func(a models.User) bool {
			return sameScope(a.Division, u.Division)
		}); ok {
			return email, true
		}
		return findByRole(all, models.RoleCentralAdmin, nil)

	case models.RoleUpozilaAdmin:
		if email, ok := findByRole(all, models.RoleDistrictAdmin, func(a models.User) bool {
			return sameScope(a.District, u.District)
		}); ok {
			return email, true
		}
		if email, ok := findByRole(all, models.RoleDivisionAdmin, func(a models.User) bool {
			return sameScope(a.Division, u.Division)
		}); ok {
			return email, true
		}
		return findByRole(all, models.RoleCentralAdmin, nil)

	case models.RoleUnionAdmin:
		if email, ok := findByRole(all, models.RoleUpozilaAdmin, func(a models.User) bool {
			return sameScope(a.Upazila, u.Upazila)
		}); ok {
			return email, true
		}
		if email, ok := findByRole(all, models.RoleDistrictAdmin, func(a models.User) bool {
			return sameScope(a.District, u.District)
		}); ok {
			return email, true
		}
		return findByRole(all, models.RoleCentralAdmin, nil)

	case models.RoleMarkazAdmin:
		if email, ok := findByRole(all, models.RoleDivisionAdmin, func(a models.User) bool {
			return sameScope(a.Division, u.Division)
		}); ok {
			return email, true
		}
		return findByRole(all, models.RoleCentralAdmin, nil)

	case models.RoleDaye:
		if email, ok := findByRole(all, models.RoleMarkazAdmin, func(a models.User) bool {
			return models.SameMarkaz(a.Markaz, u.Markaz)
		}); ok {
			return email, true
		}
		return findByRole(all, models.RoleCentralAdmin, nil)
	}

	return "", false
}

// DescendantEmails computes the transitive closure of users whose resolved
// parent chain leads to root. The hierarchy is a forest, but imported data
// has contained self-parented rows before, so membership checks bound the
// walk instead of trusting the data.
func DescendantEmails(rootEmail string, all []models.User, viewer models.User) map[string]struct{} {
	normalize := strings.ToLower
	visible := map[string]struct{}{normalize(rootEmail): {}}
	for {
		grew := false
		for _, u := range all {
			email := normalize(u.Email)
			if _, seen := visible[email]; seen {
				continue
			}
			parent, ok := ParentEmail(u, all, viewer)
			if !ok || normalize(parent) == email {
				continue
			}
			if _, in := visible[normalize(parent)]; in {
				visible[email] = struct{}{}
				grew = true
			}
		}
		if !grew {
			return visible
		}
	}
}

// VisibleEmails is the set of emails whose reports the viewer may read:
// the viewer itself plus every descendant.
func VisibleEmails(viewer models.User, all []models.User) map[string]struct{} {
	return DescendantEmails(viewer.Email, all, viewer)
}

// CanView reports whether viewer may read email's data.
func CanView(viewer models.User, email string, all []models.User) bool {
	if strings.EqualFold(viewer.Email, email) {
		return true
	}
	_, ok := VisibleEmails(viewer, all)[email]
	return ok
}

func findByRole(all []models.User, role string, match func(models.User) bool) (string, bool) {
	for _, u := range all {
		if u.Role != role {
			continue
		}
		if match == nil || match(u) {
			return u.Email, true
		}
	}
	return "", false
}

func sameScope(a, b string) bool {
	a, b = strings.TrimSpace(a), strings.TrimSpace(b)
	return a != "" && strings.EqualFold(a, b)
}
