package constants

import "fmt"

const (
	RoleAdmin  = "admin"
	RoleParent = "parent"
)

var AllRoles = []string{RoleAdmin, RoleParent}

const ErrOnlyAdminsCanAccess = "only admins can access %s"

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

func ValidRole(role string) bool {
	for _, r := range AllRoles {
		if r == role {
			return true
		}
	}
	return false
}
