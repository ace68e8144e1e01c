package rbac

import "github.com/Sedmeq/WorkTrack/internal/role"

// modelText grants a tier every permission of the tiers it inherits from.
const modelText = `[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// Rule is a single tier permission.
type Rule struct {
	Tier     role.Tier
	Resource string
	Action   string
}

// Inheritance pairs: the first tier inherits the second's rules.
var inheritance = [][2]role.Tier{
	{role.TierGroupBoss, role.TierRegular},
	{role.TierAdmin, role.TierGroupBoss},
}

// DefaultRules is the route policy for the three tiers.
var DefaultRules = []Rule{
	{role.TierRegular, "employee", "read"},
	{role.TierRegular, "timelog", "write"},
	{role.TierRegular, "leave", "submit"},

	{role.TierGroupBoss, "employee", "create"},
	{role.TierGroupBoss, "timelog", "read_team"},
	{role.TierGroupBoss, "leave", "decide"},
	{role.TierGroupBoss, "leave", "grant"},

	{role.TierAdmin, "employee", "delete"},
	{role.TierAdmin, "timelog", "read_all"},
	{role.TierAdmin, "rbac", "read"},
}
