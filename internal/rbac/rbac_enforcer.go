package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

// NewEnforcer builds an in-memory enforcer loaded with rules and the tier hierarchy.
func NewEnforcer(rules []Rule) (*casbin.Enforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}
	e, err := casbin.NewEnforcer(m)
	if err != nil {
		return nil, err
	}

	for _, pair := range inheritance {
		if _, err := e.AddGroupingPolicy(string(pair[0]), string(pair[1])); err != nil {
			return nil, err
		}
	}
	for _, r := range rules {
		if _, err := e.AddPolicy(string(r.Tier), r.Resource, r.Action); err != nil {
			return nil, err
		}
	}
	return e, nil
}
