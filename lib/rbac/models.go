package rbac

import (
	"regexp"

	"ptw-backend/models"
)

type HTTPMethod string

const (
	GET    HTTPMethod = "GET"
	POST   HTTPMethod = "POST"
	PUT    HTTPMethod = "PUT"
	DELETE HTTPMethod = "DELETE"
	PATCH  HTTPMethod = "PATCH"
)

// Rule guards one route of the api.
type Rule struct {
	Module     models.Module
	Permission models.Permission
	Method     HTTPMethod
	Path       string
	Allow      models.RbacFunc
	pattern    *regexp.Regexp
}

// routeTable holds the rules of one http method, exact paths are checked first.
type routeTable struct {
	exact    map[string]*Rule
	patterns []*Rule
}

func (t *routeTable) find(path string) (*Rule, bool) {
	if rule, ok := t.exact[path]; ok {
		return rule, true
	}
	for _, rule := range t.patterns {
		if rule.pattern.MatchString(path) {
			return rule, true
		}
	}
	return nil, false
}
