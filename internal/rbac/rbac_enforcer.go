package rbac

import (
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
)

const modelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && keyMatch(r.obj, p.obj) && r.act == p.act
`

// NewEnforcer builds a casbin enforcer holding the rules and inheritance given.
func NewEnforcer(rules []Rule, inheritance [][2]string) (*casbin.SyncedEnforcer, error) {
	m, err := model.NewModelFromString(modelText)
	if err != nil {
		return nil, err
	}

	e, err := casbin.NewSyncedEnforcer(m)
	if err != nil {
		return nil, err
	}

	policies := make([][]string, 0, len(rules))
	for _, r := range rules {
		policies = append(policies, []string{r.Role, r.Object, r.Action})
	}
	if _, err := e.AddPolicies(policies); err != nil {
		return nil, err
	}

	for _, g := range inheritance {
		if _, err := e.AddGroupingPolicy(g[0], g[1]); err != nil {
			return nil, err
		}
	}

	return e, nil
}
