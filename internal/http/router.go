package http

import (
	"time"

	"github.com/geocoder89/staffhub/internal/auth"
	"github.com/geocoder89/staffhub/internal/cache"
	"github.com/geocoder89/staffhub/internal/domain/user"
	"github.com/geocoder89/staffhub/internal/http/handlers"
	"github.com/geocoder89/staffhub/internal/http/middlewares"
	"github.com/geocoder89/staffhub/internal/observability"
	"github.com/geocoder89/staffhub/internal/repo"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const serviceName = "staffhub-api"

// Deps is everything the router needs. Prom, Gatherer and RoleCache are optional.
type Deps struct {
	Env            string
	Store          *repo.Store
	Tokens         *auth.Manager
	RoleCache      cache.RoleCache
	Prom           *observability.Prom
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
	StoreTimeout   time.Duration

	// per-IP budget for /jwt and POST /messages
	RateLimit       int
	RateLimitWindow time.Duration
}

func NewRouter(deps Deps) *gin.Engine {
	if deps.Env != "dev" && deps.Env != "test" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(otelgin.Middleware(serviceName))
	if deps.Prom != nil {
		r.Use(deps.Prom.GinHandleMiddleware())
	}
	r.Use(middlewares.RequestLogger())
	r.Use(middlewares.CORSMiddleware(deps.AllowedOrigins))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.MaxBodyBytes(middlewares.DefaultMaxBodyBytes))
	r.Use(middlewares.RequireJSON())

	store := deps.Store

	roles := cache.NewRoles(store.Users, deps.RoleCache, deps.Prom)
	authMw := middlewares.NewAuthMiddleware(deps.Tokens, roles)

	limit, window := deps.RateLimit, deps.RateLimitWindow
	if limit <= 0 {
		limit = 20
	}
	if window <= 0 {
		window = time.Minute
	}
	tokenLimiter := middlewares.NewRateLimiter(limit, window)
	messageLimiter := middlewares.NewRateLimiter(limit, window)

	health := handlers.NewHealthHandler(store.Ping)
	tokens := handlers.NewTokensHandler(deps.Tokens)
	users := handlers.NewUsersHandler(store.Users, roles, deps.StoreTimeout)
	tasks := handlers.NewTasksHandler(store.Tasks, deps.StoreTimeout)
	payments := handlers.NewPaymentsHandler(store.Payments, deps.StoreTimeout)
	payrolls := handlers.NewPayrollHandler(store.Payroll, deps.StoreTimeout)
	messages := handlers.NewMessagesHandler(store.Messages, deps.StoreTimeout)

	r.GET("/", health.Root)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	r.GET("/docs", handlers.DocsUI)
	r.GET("/docs/openapi.yaml", handlers.OpenAPISpec)

	// public
	r.POST("/jwt", tokenLimiter.RateLimiterMiddleware(middlewares.KeyByIP), tokens.Issue)

	r.GET("/users", users.List)
	r.POST("/users", users.SignUp)

	r.GET("/tasks", tasks.List)
	r.POST("/tasks", tasks.Create)
	r.PUT("/tasks/:id", tasks.Update)
	r.DELETE("/tasks/:id", tasks.Delete)
	r.GET("/user-tasks", tasks.ListByEmail)

	r.GET("/payments", payments.Page)

	r.POST("/messages", messageLimiter.RateLimiterMiddleware(middlewares.KeyByIP), messages.Create)

	// any verified caller
	r.GET("/employees/:email", authMw.RequireAuth(), users.GetByEmail)

	hr := r.Group("/", authMw.RequireAuth(), authMw.RequireRole(user.RoleHR))
	{
		hr.GET("/payments/:email", payments.ListByEmail)
		hr.GET("/employees", users.ListEmployees)
		hr.PUT("/employees/:id/verify", users.Verify)
		hr.POST("/payroll", payrolls.Create)
		hr.GET("/progress", tasks.Progress)
	}

	admin := r.Group("/", authMw.RequireAuth(), authMw.RequireRole(user.RoleAdmin))
	{
		admin.GET("/payroll", payrolls.List)
		admin.PATCH("/payroll/:id/pay", payrolls.Pay)
		admin.GET("/verified-employees", users.ListVerified)
		admin.PATCH("/employees/:id/make-hr", users.MakeHR)
		admin.PATCH("/employees/:id/fire", users.Fire)
		admin.PATCH("/employees/:id/salary", users.UpdateSalary)
		admin.GET("/messages", messages.List)
	}

	return r
}
