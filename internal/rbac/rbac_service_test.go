package rbac_test

import (
	"testing"

	"github.com/Sedmeq/WorkTrack/internal/domain"
	"github.com/Sedmeq/WorkTrack/internal/rbac"
	"github.com/Sedmeq/WorkTrack/internal/role"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) rbac.Service {
	t.Helper()
	e, err := rbac.NewEnforcer(rbac.DefaultRules)
	require.NoError(t, err)
	return rbac.NewService(e)
}

func TestService_Enforce_TierMatrix(t *testing.T) {
	svc := newService(t)

	cases := []struct {
		tier     role.Tier
		resource string
		action   string
		allowed  bool
	}{
		{role.TierRegular, "leave", "submit", true},
		{role.TierRegular, "leave", "decide", false},
		{role.TierRegular, "employee", "create", false},
		{role.TierGroupBoss, "leave", "submit", true},
		{role.TierGroupBoss, "leave", "decide", true},
		{role.TierGroupBoss, "leave", "grant", true},
		{role.TierGroupBoss, "timelog", "read_team", true},
		{role.TierGroupBoss, "timelog", "read_all", false},
		{role.TierGroupBoss, "employee", "delete", false},
		{role.TierAdmin, "employee", "delete", true},
		{role.TierAdmin, "leave", "grant", true},
		{role.TierAdmin, "timelog", "read_all", true},
		{role.TierAdmin, "rbac", "read", true},
		{role.TierAdmin, "payroll", "read", false},
	}

	for _, tc := range cases {
		t.Run(string(tc.tier)+"/"+tc.resource+"/"+tc.action, func(t *testing.T) {
			allowed, err := svc.Enforce(domain.EnforceRequest{
				Tier:     string(tc.tier),
				Resource: tc.resource,
				Action:   tc.action,
			})
			require.NoError(t, err)
			assert.Equal(t, tc.allowed, allowed)
		})
	}
}

func TestService_Enforce_UnknownTierDenied(t *testing.T) {
	svc := newService(t)
	allowed, err := svc.Enforce(domain.EnforceRequest{Tier: "superuser", Resource: "employee", Action: "read"})
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestService_Policies(t *testing.T) {
	svc := newService(t)

	all, err := svc.Policies("")
	require.NoError(t, err)
	assert.Len(t, all, len(rbac.DefaultRules))

	boss, err := svc.Policies(string(role.TierGroupBoss))
	require.NoError(t, err)
	assert.Contains(t, boss, domain.PolicyResponse{Tier: string(role.TierRegular), Resource: "leave", Action: "submit"})
	assert.Contains(t, boss, domain.PolicyResponse{Tier: string(role.TierGroupBoss), Resource: "leave", Action: "decide"})
	assert.NotContains(t, boss, domain.PolicyResponse{Tier: string(role.TierAdmin), Resource: "employee", Action: "delete"})

	for i := 1; i < len(boss); i++ {
		assert.LessOrEqual(t, boss[i-1].Resource, boss[i].Resource)
	}
}
