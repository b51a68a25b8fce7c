package middleware

import (
	"ptw-backend/lib/rbac"
	apimodels "ptw-backend/models/api"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

func RbacMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userID := GetUserID(ctx)
		userRole := GetUserRole(ctx)
		if userID == "" || userRole == "" {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewErrorWithCode("RBAC_FORBIDDEN", "operation is not available"))
		}

		rule, found := rbac.Instance.Match(ctx.Method(), ctx.Path())
		if !found {
			return ctx.Next()
		}

		if !rule.Allow(userID, userRole, ctx.Path()) {
			log.WithFields(log.Fields{
				"user_id":    userID,
				"role":       userRole,
				"path":       ctx.Path(),
				"module":     rule.Module,
				"permission": rule.Permission,
			}).Info("rbac: access denied")
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewErrorWithCode("RBAC_FORBIDDEN", "operation is not available for your role"))
		}

		return ctx.Next()
	}
}
