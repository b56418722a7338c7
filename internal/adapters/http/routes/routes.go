package routes

import (
	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/http/handlers"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/http/middleware"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/adapters/persistence/repositories"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/config"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/policy"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/core/services"
	"github.com/SDNATH-Git/blood-donation-serverset/internal/pkg/cache"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handlers bundles every HTTP handler plus the services the guards
// need. Register wires it onto an app; tests build one over in-memory
// stores.
type Handlers struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	User      *handlers.UserHandler
	Request   *handlers.RequestHandler
	Donation  *handlers.DonationHandler
	Fund      *handlers.FundHandler
	Blog      *handlers.BlogHandler
	Dashboard *handlers.DashboardHandler
	Location  *handlers.LocationHandler
	Authz     *services.AuthzService
	Cleanup   *services.CleanupService
}

// Build wires repositories, services and handlers over a database
func Build(db *gorm.DB, cfg *config.Config, c *cache.Cache, log *zap.Logger) *Handlers {
	// Repositories
	userRepo := repositories.NewUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	requestRepo := repositories.NewRequestRepository(db)
	fundRepo := repositories.NewFundRepository(db)
	blogRepo := repositories.NewBlogRepository(db)
	locationRepo := repositories.NewLocationRepository(db)

	// Services
	authzService := services.NewAuthzService(userRepo)
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg, log)
	userService := services.NewUserService(userRepo, log)
	requestService := services.NewRequestService(requestRepo, authzService, c, log)
	fundService := services.NewFundService(fundRepo, log)
	blogService := services.NewBlogService(blogRepo, log)
	dashboardService := services.NewDashboardService(userRepo, requestRepo, fundRepo)
	locationService := services.NewLocationService(locationRepo)
	cleanupService := services.NewCleanupService(refreshTokenRepo, log)

	return &Handlers{
		Health:    handlers.NewHealthHandler(),
		Auth:      handlers.NewAuthHandler(authService, cfg),
		User:      handlers.NewUserHandler(userService),
		Request:   handlers.NewRequestHandler(requestService),
		Donation:  handlers.NewDonationHandler(requestService, userService),
		Fund:      handlers.NewFundHandler(fundService),
		Blog:      handlers.NewBlogHandler(blogService),
		Dashboard: handlers.NewDashboardHandler(dashboardService),
		Location:  handlers.NewLocationHandler(locationService),
		Authz:     authzService,
		Cleanup:   cleanupService,
	}
}

// Setup builds the dependency graph and registers all routes
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config, c *cache.Cache, log *zap.Logger) *Handlers {
	h := Build(db, cfg, c, log)
	Register(app, h, cfg)
	return h
}

// Register wires the handlers onto the app
func Register(app *fiber.App, h *Handlers, cfg *config.Config) {
	// Health check & root routes
	app.Get("/", h.Health.Root)
	app.Get("/health", h.Health.HealthCheck)
	app.Get("/metrics", middleware.MetricsHandler())

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	auth := middleware.AuthMiddleware(cfg)
	guard := func(op policy.Operation) fiber.Handler {
		return middleware.Authorize(h.Authz, op)
	}

	apiV1 := app.Group("/api/v1")

	// Auth routes
	authRoutes := apiV1.Group("/auth")
	authRoutes.Post("/login", middleware.AuthRateLimiter(), h.Auth.Login)
	authRoutes.Post("/refresh", h.Auth.RefreshToken)
	authRoutes.Post("/logout", h.Auth.Logout)
	authRoutes.Get("/me", auth, h.Auth.Me)

	// User directory
	apiV1.Post("/users", middleware.AuthRateLimiter(), h.Auth.Register)
	apiV1.Get("/users", h.User.Search)
	apiV1.Get("/users/role/:email", h.User.GetRole)
	apiV1.Get("/users/:email", h.User.GetByEmail)
	apiV1.Patch("/users/:email", auth, guard(policy.OpUpdateOwnProfile), h.User.UpdateProfile)
	apiV1.Patch("/users/block/:id", auth, guard(policy.OpSetUserStatus), h.User.Block)
	apiV1.Patch("/users/unblock/:id", auth, guard(policy.OpSetUserStatus), h.User.Unblock)
	apiV1.Patch("/users/make-volunteer/:id", auth, guard(policy.OpSetUserRole), h.User.MakeVolunteer)
	apiV1.Patch("/users/make-admin/:id", auth, guard(policy.OpSetUserRole), h.User.MakeAdmin)
	apiV1.Get("/admin/users", auth, guard(policy.OpListUsers), h.User.List)

	// Donation requests
	apiV1.Post("/requests", auth, guard(policy.OpCreateRequest), h.Request.Create)
	apiV1.Get("/requests", auth, guard(policy.OpViewOwnRequests), h.Request.ListMine)
	apiV1.Get("/requests/status/:status", h.Request.ListByStatus)
	apiV1.Get("/requests/:id", auth, h.Request.Get)
	apiV1.Patch("/requests/:id", auth, guard(policy.OpModifyRequest), h.Request.Patch)
	apiV1.Delete("/requests/:id", auth, guard(policy.OpModifyRequest), h.Request.Delete)
	apiV1.Get("/all-requests", auth, guard(policy.OpListAllRequests), h.Request.ListAll)
	apiV1.Get("/pending-requests", h.Request.PendingBoard)
	apiV1.Get("/volunteer-requests", auth, guard(policy.OpVolunteerRequests), h.Request.VolunteerQueue)

	// Donor-side transitions
	apiV1.Patch("/donations/start/:id", auth, guard(policy.OpAcceptRequest), h.Donation.Start)
	apiV1.Patch("/donations/update-status/:id", auth, guard(policy.OpSetRequestStatus), h.Donation.UpdateStatus)

	// Fund ledger
	apiV1.Post("/funds", auth, guard(policy.OpRecordFund), h.Fund.Record)
	apiV1.Get("/funds", auth, guard(policy.OpListFunds), h.Fund.List)

	// Blogs
	apiV1.Get("/blogs", h.Blog.Published)
	apiV1.Get("/admin/blogs", auth, guard(policy.OpListBlogs), h.Blog.List)
	apiV1.Post("/blogs", auth, guard(policy.OpCreateBlog), h.Blog.Create)
	apiV1.Patch("/blogs/:id/publish", auth, guard(policy.OpPublishBlog), h.Blog.Publish)
	apiV1.Patch("/blogs/:id/unpublish", auth, guard(policy.OpPublishBlog), h.Blog.Unpublish)
	apiV1.Patch("/blogs/:id", auth, guard(policy.OpModifyBlog), h.Blog.Update)
	apiV1.Delete("/blogs/:id", auth, guard(policy.OpDeleteBlog), h.Blog.Delete)

	// Admin dashboard
	apiV1.Get("/dashboard/admin-stats", auth, guard(policy.OpViewDashboard), h.Dashboard.AdminStats)

	// Master data
	apiV1.Get("/districts", h.Location.Districts)
	apiV1.Get("/districts/:id/upazilas", h.Location.Upazilas)
	apiV1.Get("/blood-groups", h.Location.BloodGroups)
}
