package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jbejarano/portal-casas-api/internal/application/dto"
	"github.com/jbejarano/portal-casas-api/internal/domain/authz"
	"github.com/jbejarano/portal-casas-api/internal/domain/repository"
	"github.com/jbejarano/portal-casas-api/pkg/jwt"
)

// Locals keys para la identidad de sesión en Fiber.
const (
	LocalUserID   = "user_id"
	LocalHouseID  = "house_id"
	LocalRole     = "role"
	LocalEmail    = "email"
	LocalFullName = "full_name"
)

// AuthMiddleware valida el Bearer Token JWT y verifica que el usuario siga
// existiendo y activo: desactivar una cuenta invalida sus sesiones vivas.
// Rol y casa se toman de la DB, no del token, para que un cambio de rol o
// de casa aplique de inmediato.
func AuthMiddleware(jwtSecret string, userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}

		user, err := userRepo.GetByID(claims.UserID, "")
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error validando sesión"})
		}
		if user == nil || !user.IsActive {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_SESSION", Message: "sesión inválida"})
		}

		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalHouseID, user.HouseID)
		c.Locals(LocalRole, user.Role)
		c.Locals(LocalEmail, user.Email)
		c.Locals(LocalFullName, user.FullName)
		return c.Next()
	}
}

// RequireCapability gatea la ruta a los roles con la capacidad dada.
func RequireCapability(cap authz.Capability) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !authz.Allowed(GetRole(c), cap) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetHouseID devuelve la casa del caller; vacío para super_admin.
func GetHouseID(c *fiber.Ctx) string { return localString(c, LocalHouseID) }

// GetRole devuelve el rol del caller.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
