package middleware

import (
	permitflow "ptw-backend/lib/permit-flow"
	authutils "ptw-backend/lib/utils/auth-utils"
	"ptw-backend/models"
	apimodels "ptw-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

func AdminRoleRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if !GetUserRole(ctx).IsAdmin() {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewErrorWithCode("FORBIDDEN", "operation is not available"))
		}
		return ctx.Next()
	}
}

func GetUserID(ctx *fiber.Ctx) string {
	return claimString(ctx, "sub")
}

func GetUserName(ctx *fiber.Ctx) string {
	return claimString(ctx, "name")
}

// GetUserDepartment returns the department code the token was issued with.
func GetUserDepartment(ctx *fiber.Ctx) string {
	return claimString(ctx, "department")
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	return models.UserRole(claimString(ctx, "role"))
}

// Actor is the signed-in user as the permit lifecycle sees them.
func Actor(ctx *fiber.Ctx) permitflow.Actor {
	return permitflow.Actor{
		UserID:     GetUserID(ctx),
		Name:       GetUserName(ctx),
		Role:       GetUserRole(ctx),
		Department: GetUserDepartment(ctx),
	}
}

func claimString(ctx *fiber.Ctx, key string) string {
	claims := authutils.GetClaims(ctx)
	if value, exist := claims[key]; exist {
		if s, ok := value.(string); ok {
			return s
		}
	}
	return ""
}
