package models

import "strings"

// Roles derived from a user's email and stored profile.
const (
	RoleAdmin       = "admin"
	RoleCooperative = "cooperative"
	RolePersonal    = "personal"
)

// Profile values stored on the users table.
const (
	ProfilePersonal    = "personal"
	ProfileCooperative = "cooperative"
	ProfileProducer    = "producer"
)

// adminDomains lists the organizational email domains whose accounts are
// platform administrators regardless of their stored profile.
var adminDomains = []string{
	"@octus-agency.com",
	"@digicoops.com",
}

// ClassifyRole maps a principal snapshot (email + stored profile) to a role.
// The admin domain match always wins over the stored profile. The function
// is pure: the same inputs always yield the same role.
func ClassifyRole(email, profile string) string {
	lowered := strings.ToLower(email)
	for _, domain := range adminDomains {
		if strings.HasSuffix(lowered, domain) {
			return RoleAdmin
		}
	}
	if profile == ProfileCooperative {
		return RoleCooperative
	}
	return RolePersonal
}
