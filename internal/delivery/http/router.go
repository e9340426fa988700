package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tom-gerken/ecommerce-backend/internal/config"
	authhandler "github.com/tom-gerken/ecommerce-backend/internal/delivery/http/handler/auth"
	customerhandler "github.com/tom-gerken/ecommerce-backend/internal/delivery/http/handler/customer"
	orderhandler "github.com/tom-gerken/ecommerce-backend/internal/delivery/http/handler/order"
	paymenthandler "github.com/tom-gerken/ecommerce-backend/internal/delivery/http/handler/payment"
	producthandler "github.com/tom-gerken/ecommerce-backend/internal/delivery/http/handler/product"
	"github.com/tom-gerken/ecommerce-backend/internal/delivery/middleware"
	customerpg "github.com/tom-gerken/ecommerce-backend/internal/repository/postgres/customer"
	orderpg "github.com/tom-gerken/ecommerce-backend/internal/repository/postgres/order"
	paymentpg "github.com/tom-gerken/ecommerce-backend/internal/repository/postgres/payment"
	productpg "github.com/tom-gerken/ecommerce-backend/internal/repository/postgres/product"
	userpg "github.com/tom-gerken/ecommerce-backend/internal/repository/postgres/user"
	authuc "github.com/tom-gerken/ecommerce-backend/internal/usecase/auth"
	customeruc "github.com/tom-gerken/ecommerce-backend/internal/usecase/customer"
	orderuc "github.com/tom-gerken/ecommerce-backend/internal/usecase/order"
	paymentuc "github.com/tom-gerken/ecommerce-backend/internal/usecase/payment"
	productuc "github.com/tom-gerken/ecommerce-backend/internal/usecase/product"
)

func RegisterRoutes(app *fiber.App, cfg config.Config, db *pgxpool.Pool) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	api := app.Group("/api")

	// Auth wiring
	userRepo := userpg.NewUserRepo(db)
	userFinder := &staffFinderAdapter{repo: userRepo}
	loginUC := authuc.NewStaffLoginUsecase(userFinder, cfg.JWTSecret, cfg.JWTExpiresMinutes)
	loginHandler := authhandler.NewStaffLoginHandler(loginUC)

	// Public route
	api.Post("/staff/login", loginHandler.Handle)

	// Protected staff group
	staff := api.Group("/staff", middleware.RequireStaffJWT(middleware.JWTConfig{
		Secret: cfg.JWTSecret,
	}))

	staff.Get("/me", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"ok":     true,
			"claims": c.Locals("claims"),
		})
	})

	// Orders wiring
	orderRepo := orderpg.NewOrderRepo(db)
	orderStore := orderpg.NewOrderStoreAdapter(orderRepo, db)
	orderUC := orderuc.New(orderStore)
	orderH := orderhandler.New(orderUC)

	// Payments wiring (read side)
	paymentRepo := paymentpg.NewPaymentRepo(db)
	paymentStore := paymentpg.NewPaymentStoreAdapter(paymentRepo)
	paymentUC := paymentuc.New(paymentStore)
	paymentH := paymenthandler.New(paymentUC)

	// Products + inventory wiring
	productRepo := productpg.NewProductRepo(db)
	productStore := productpg.NewProductStoreAdapter(productRepo)
	productUC := productuc.New(productStore)
	productH := producthandler.New(productUC)

	// Customers wiring
	customerRepo := customerpg.NewCustomerRepo(db)
	customerUC := customeruc.New(customerRepo)
	customerH := customerhandler.New(customerUC)

	// Order routes
	staff.Post("/orders", orderH.Create)
	staff.Get("/orders", orderH.List)
	staff.Get("/orders/:id", orderH.GetByID)
	staff.Patch("/orders/:id/status", orderH.UpdateStatus)
	staff.Patch("/orders/:id/info", orderH.UpdateInfo)
	staff.Get("/orders/:id/payments", paymentH.ListForOrder)

	// Product + inventory routes
	staff.Post("/products", productH.Create)
	staff.Get("/products", productH.List)
	staff.Patch("/products/:id", productH.Update)
	staff.Put("/products/:id/inventory/:locationId", productH.SetInventory)
	staff.Get("/inventory", productH.ListInventory)

	// Customer routes
	staff.Post("/customers", customerH.Create)
	staff.Get("/customers", customerH.List)
}

type staffFinderAdapter struct {
	repo *userpg.UserRepo
}

func (a *staffFinderAdapter) FindByEmail(ctx context.Context, email string) (*authuc.User, error) {
	r, err := a.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &authuc.User{
		ID:           r.ID,
		Email:        r.Email,
		GivenName:    r.GivenName,
		PasswordHash: r.PasswordHash,
		IsActive:     r.IsActive,
	}, nil
}
