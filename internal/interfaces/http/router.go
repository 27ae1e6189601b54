package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jbejarano/portal-casas-api/internal/application/auth"
	"github.com/jbejarano/portal-casas-api/internal/application/payroll"
	"github.com/jbejarano/portal-casas-api/internal/application/usecase"
	"github.com/jbejarano/portal-casas-api/internal/domain/authz"
	"github.com/jbejarano/portal-casas-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	HouseUC    *usecase.HouseUseCase
	UserUC     *usecase.UserUseCase
	EmployeeUC *usecase.EmployeeUseCase
	CategoryUC *usecase.CategoryUseCase
	ExpenseUC  *usecase.MarketExpenseUseCase
	PaymentUC  *payroll.PaymentUseCase
	UserRepo   repository.UserRepository
	JWTSecret  string
}

// Router registra las rutas de la API. La autorización por rol se decide
// aquí con RequireCapability; el alcance por casa lo aplican los use cases.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token de un usuario activo)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.UserRepo))

	// Houses (solo super_admin)
	houses := protected.Group("/houses", RequireCapability(authz.CapManageHouses))
	houseHandler := NewHouseHandler(deps.HouseUC)
	houses.Post("/", houseHandler.Create)
	houses.Get("/", houseHandler.List)
	houses.Get("/:id", houseHandler.GetByID)
	houses.Get("/:id/stats", houseHandler.Stats)
	houses.Patch("/:id", houseHandler.Update)
	houses.Delete("/:id", houseHandler.Delete)

	// Users: lecturas para cualquier rol (escopadas), mutaciones solo
	// super_admin/admin_house; cambio de contraseña propia para todos.
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users")
	users.Patch("/me/password", authHandler.ChangePassword)
	users.Get("/", RequireCapability(authz.CapReadTenantData), userHandler.List)
	users.Get("/:id", RequireCapability(authz.CapReadTenantData), userHandler.GetByID)
	users.Post("/", RequireCapability(authz.CapManageUsers), userHandler.Create)
	users.Patch("/:id", RequireCapability(authz.CapManageUsers), userHandler.Update)
	users.Delete("/:id", RequireCapability(authz.CapManageUsers), userHandler.Delete)

	// Employees (todos los roles, escopado por casa)
	employees := protected.Group("/employees", RequireCapability(authz.CapManageEmployees))
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Post("/", employeeHandler.Create)
	employees.Get("/", employeeHandler.List)
	employees.Get("/:id", employeeHandler.GetByID)
	employees.Patch("/:id", employeeHandler.Update)
	employees.Delete("/:id", employeeHandler.Delete)

	// Payments: crear/firmar/consultar para todos los roles; editar y
	// eliminar solo super_admin/admin_house.
	payments := protected.Group("/payments", RequireCapability(authz.CapManagePayments))
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments.Post("/", paymentHandler.Create)
	payments.Get("/", paymentHandler.List)
	payments.Get("/:id", paymentHandler.GetByID)
	payments.Patch("/:id", RequireCapability(authz.CapMutatePayments), paymentHandler.Update)
	payments.Delete("/:id", RequireCapability(authz.CapMutatePayments), paymentHandler.Delete)
	payments.Post("/:id/sign", paymentHandler.Sign)
	payments.Post("/:id/upload-signed", paymentHandler.UploadSigned)
	payments.Get("/:id/pdf", paymentHandler.ReceiptPDF)

	// Market expenses (todos los roles, escopado por casa)
	expenses := protected.Group("/market-expenses", RequireCapability(authz.CapManageExpenses))
	expenseHandler := NewMarketExpenseHandler(deps.ExpenseUC)
	expenses.Post("/", expenseHandler.Create)
	expenses.Get("/", expenseHandler.List)
	expenses.Get("/stats/month", expenseHandler.StatsByMonth)
	expenses.Get("/stats/general", expenseHandler.GeneralStats)
	expenses.Get("/:id", expenseHandler.GetByID)
	expenses.Patch("/:id", expenseHandler.Update)
	expenses.Delete("/:id", expenseHandler.Delete)

	// Categories: lecturas para todos los roles, mutaciones solo super_admin
	categories := protected.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories.Get("/", RequireCapability(authz.CapReadTenantData), categoryHandler.List)
	categories.Get("/active", RequireCapability(authz.CapReadTenantData), categoryHandler.ListActive)
	categories.Get("/:id", RequireCapability(authz.CapReadTenantData), categoryHandler.GetByID)
	categories.Post("/", RequireCapability(authz.CapManageCategories), categoryHandler.Create)
	categories.Patch("/:id", RequireCapability(authz.CapManageCategories), categoryHandler.Update)
	categories.Patch("/:id/toggle", RequireCapability(authz.CapManageCategories), categoryHandler.Toggle)
	categories.Delete("/:id", RequireCapability(authz.CapManageCategories), categoryHandler.Delete)
}
