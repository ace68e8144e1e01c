package role

import "strings"

const (
	AdminRoleName    = "Boss"
	EmployeeRoleName = "Employee"
	GroupBossPrefix  = "Boss-"
)

// Tier is the access level implied by a role name.
type Tier string

const (
	TierRegular   Tier = "regular"
	TierGroupBoss Tier = "group_boss"
	TierAdmin     Tier = "admin"
)

// TierOf classifies a role name. "Boss" is admin, "Boss-<dept>" with a
// non-empty dept is a group boss, everything else (including no role) is regular.
func TierOf(roleName string) Tier {
	switch {
	case roleName == AdminRoleName:
		return TierAdmin
	case strings.HasPrefix(roleName, GroupBossPrefix) && len(roleName) > len(GroupBossPrefix):
		return TierGroupBoss
	default:
		return TierRegular
	}
}

// IsBossRole reports whether the name belongs to any boss role, admin included.
func IsBossRole(roleName string) bool {
	return strings.HasPrefix(roleName, AdminRoleName)
}

// Department returns the suffix of a group boss role ("Boss-IT" -> "IT").
func Department(roleName string) string {
	if TierOf(roleName) != TierGroupBoss {
		return ""
	}
	return strings.TrimPrefix(roleName, GroupBossPrefix)
}
