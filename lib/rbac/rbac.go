package rbac

import (
	"regexp"
	"slices"
	"strings"

	"ptw-backend/models"

	"github.com/pkg/errors"
)

type Provider interface {
	// Match returns the rule guarding path, false when the route is not restricted.
	Match(method, path string) (*Rule, bool)
	RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, route string, allow models.RbacFunc) error
	GetPermissions(role models.UserRole) map[models.Module][]models.Permission
}

var Instance Provider

func NewHandler() {
	i := &impl{
		routes:      map[HTTPMethod]*routeTable{},
		permissions: map[models.UserRole]map[models.Module][]models.Permission{},
	}
	i.initRules()
	Instance = i
}

type impl struct {
	routes      map[HTTPMethod]*routeTable
	permissions map[models.UserRole]map[models.Module][]models.Permission
}

var paramRegex = regexp.MustCompile(`\\\{[^}]+?\\\}`)

func (i *impl) Match(method, path string) (*Rule, bool) {
	table, ok := i.routes[HTTPMethod(strings.ToUpper(method))]
	if !ok {
		return nil, false
	}
	return table.find(normalizePath(path))
}

// RegisterRule adds a rule for route, written the way swagger @router lines are:
// "/api/v1/ptw/{id}/approve [put]". A nil allow grants the route to roles.
func (i *impl) RegisterRule(module models.Module, permission models.Permission, roles []models.UserRole, route string, allow models.RbacFunc) error {
	path, method, err := parseRoute(route)
	if err != nil {
		return err
	}
	table, ok := i.routes[method]
	if !ok {
		table = &routeTable{exact: map[string]*Rule{}}
		i.routes[method] = table
	}
	if allow == nil {
		allow = AllowByRoleFunc(roles)
	}
	rule := &Rule{
		Module:     module,
		Permission: permission,
		Method:     method,
		Path:       path,
		Allow:      allow,
	}
	if !strings.Contains(path, "{") {
		if _, dup := table.exact[path]; dup {
			return errors.Errorf("duplicate rule for %s %s", method, path)
		}
		table.exact[path] = rule
	} else {
		for _, existed := range table.patterns {
			if existed.Path == path {
				return errors.Errorf("duplicate rule for %s %s", method, path)
			}
		}
		rule.pattern = pathToRegex(path)
		table.patterns = append(table.patterns, rule)
	}

	for _, role := range roles {
		modules, ok := i.permissions[role]
		if !ok {
			modules = map[models.Module][]models.Permission{}
			i.permissions[role] = modules
		}
		if !slices.Contains(modules[module], permission) {
			modules[module] = append(modules[module], permission)
		}
	}
	return nil
}

// rule registers a built-in rule, a broken one is a programming error.
func (i *impl) rule(module models.Module, permission models.Permission, roles []models.UserRole, route string) {
	if err := i.RegisterRule(module, permission, roles, route, nil); err != nil {
		panic(err.Error())
	}
}

func (i *impl) GetPermissions(role models.UserRole) map[models.Module][]models.Permission {
	return i.permissions[role]
}

// pathToRegex turns {param} placeholders into single segment matches.
func pathToRegex(path string) *regexp.Regexp {
	pattern := paramRegex.ReplaceAllString(regexp.QuoteMeta(path), `[^/]+`)
	return regexp.MustCompile("^" + pattern + "$")
}

func AllowByRoleFunc(accessRoles []models.UserRole) models.RbacFunc {
	allowMap := map[models.UserRole]bool{}
	for _, role := range accessRoles {
		allowMap[role] = true
	}
	return func(userID string, role models.UserRole, path string) bool {
		return allowMap[role]
	}
}

func parseRoute(route string) (path string, method HTTPMethod, err error) {
	route = strings.TrimSpace(route)
	start := strings.LastIndex(route, "[")
	end := strings.LastIndex(route, "]")
	if start == -1 || end < start {
		return "", "", errors.Errorf("method not provided for route (%v)", route)
	}
	method = HTTPMethod(strings.ToUpper(strings.TrimSpace(route[start+1 : end])))
	if method == "" {
		return "", "", errors.Errorf("method not provided for route (%v)", route)
	}
	return normalizePath(route[:start]), method, nil
}

func normalizePath(path string) string {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
