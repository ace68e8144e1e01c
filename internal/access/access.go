// Package access decides which employee records an actor may see or change.
//
// The hierarchy is one level deep: a group boss manages the employees whose
// boss_id points at the boss, nothing below them.
package access

import (
	"strings"

	"github.com/Sedmeq/WorkTrack/internal/role"

	"github.com/google/uuid"
)

// Subject is the minimal view of an employee needed for access decisions.
type Subject struct {
	ID       uuid.UUID
	RoleName string
	BossID   *uuid.UUID
}

func (s Subject) Tier() role.Tier {
	return role.TierOf(s.RoleName)
}

// Scope selects which rows a listing query may return.
type Scope int

const (
	ScopeSelf Scope = iota
	ScopeSubordinates
	ScopeAll
)

func (s Scope) String() string {
	switch s {
	case ScopeAll:
		return "all"
	case ScopeSubordinates:
		return "subordinates"
	default:
		return "self"
	}
}

func IsAdmin(actor Subject) bool {
	return actor.Tier() == role.TierAdmin
}

// CanManage reports whether the actor may create employees or review leave.
func CanManage(actor Subject) bool {
	t := actor.Tier()
	return t == role.TierAdmin || t == role.TierGroupBoss
}

func reportsTo(target Subject, bossID uuid.UUID) bool {
	return target.BossID != nil && *target.BossID == bossID
}

func CanRead(actor, target Subject) bool {
	if actor.ID == target.ID {
		return true
	}
	switch actor.Tier() {
	case role.TierAdmin:
		return true
	case role.TierGroupBoss:
		return reportsTo(target, actor.ID)
	default:
		return false
	}
}

// CanWrite is CanRead minus a group boss editing another boss.
func CanWrite(actor, target Subject) bool {
	if actor.ID == target.ID {
		return true
	}
	switch actor.Tier() {
	case role.TierAdmin:
		return true
	case role.TierGroupBoss:
		return reportsTo(target, actor.ID) && !strings.HasPrefix(target.RoleName, role.AdminRoleName)
	default:
		return false
	}
}

func ListScope(actor Subject) Scope {
	switch actor.Tier() {
	case role.TierAdmin:
		return ScopeAll
	case role.TierGroupBoss:
		return ScopeSubordinates
	default:
		return ScopeSelf
	}
}

// AssignBoss returns the boss id to persist for a record the actor creates or
// edits. A group boss can only attach employees to itself.
func AssignBoss(actor Subject, requested *uuid.UUID) *uuid.UUID {
	if actor.Tier() == role.TierGroupBoss {
		id := actor.ID
		return &id
	}
	return requested
}
