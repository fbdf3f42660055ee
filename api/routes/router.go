// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"gradely/internal/audit"
	"gradely/internal/auth"
	"gradely/internal/classes"
	"gradely/internal/grades"
	"gradely/internal/shared/config"
	"gradely/internal/shared/database"
	"gradely/internal/shared/middleware"
	"gradely/internal/students"
	"gradely/internal/users"
	"gradely/pkg/cache"
	"gradely/pkg/logger"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	recorder audit.Recorder
}

// NewRouter creates a new router instance. The recorder may be nil when
// auditing is disabled.
func NewRouter(cfg *config.Config, db *database.DB, recorder audit.Recorder) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		recorder: recorder,
	}
}

// SetupRoutes configures all application routes. The authenticator runs
// on every request and the guard rule table decides which routes demand
// what; both must be registered before any route group.
func (r *Router) SetupRoutes(engine *gin.Engine) {
	authService := r.buildAuthService()

	engine.Use(middleware.Authenticate(authService, logger.GetDefault()))

	// Health check and basic info endpoints (outside the API base path,
	// so the guard never sees them)
	r.setupHealthRoutes(engine)

	basePath := r.config.GetAPIBasePath()
	api := engine.Group(basePath)
	api.Use(middleware.Guard(r.accessRules(basePath)))
	{
		r.setupAuthRoutes(api, authService)
		r.setupUserRoutes(api)
		r.setupStudentRoutes(api)
		r.setupClassRoutes(api)
		r.setupGradeRoutes(api)
	}
}

// accessRules is the ordered prefix table. First match wins, so the
// narrower /admin prefix sits above the catch-all record prefixes, and
// anything unmatched requires an authenticated principal.
func (r *Router) accessRules(basePath string) []middleware.AccessRule {
	return []middleware.AccessRule{
		{Prefix: basePath + "/auth", Policy: middleware.PolicyPublic},
		{Prefix: basePath + "/token", Policy: middleware.PolicyPublic},
		{
			Prefix:      basePath + "/admin",
			Policy:      middleware.PolicyRoleSet,
			Authorities: []string{users.AuthorityAdmin.String()},
		},
		{Prefix: basePath + "/students", Policy: middleware.PolicyAnyAuthenticated},
		{Prefix: basePath + "/classes", Policy: middleware.PolicyAnyAuthenticated},
		{Prefix: basePath + "/grades", Policy: middleware.PolicyAnyAuthenticated},
	}
}

// buildAuthService assembles the token codec, deny-list and repository
// behind the auth service.
func (r *Router) buildAuthService() auth.Service {
	codec := auth.NewTokenCodec([]byte(r.config.JWT.Secret), r.config.JWT.Issuer)

	var denyList auth.DenyList
	if r.db.Redis != nil {
		denyList = auth.NewDenyList(cache.NewService(r.db.GetRedis()))
	}

	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	return auth.NewService(authRepo, codec, denyList, r.recorder, r.config)
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "gradely-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "gradely-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup, authService auth.Service) {
	authController := auth.NewController(authService)
	auth.SetupAuthRoutes(rg, authController)
}

// setupUserRoutes configures admin user management routes
func (r *Router) setupUserRoutes(rg *gin.RouterGroup) {
	userRepo := users.NewRepository(r.db.GetPostgreSQL())
	userService := users.NewService(userRepo)
	userController := users.NewController(userService)

	users.SetupUserRoutes(rg, userController)
}

// setupStudentRoutes configures student record routes
func (r *Router) setupStudentRoutes(rg *gin.RouterGroup) {
	studentRepo := students.NewRepository(r.db.GetPostgreSQL())
	studentService := students.NewService(studentRepo)
	studentController := students.NewController(studentService)

	students.SetupStudentRoutes(rg, studentController)
}

// setupClassRoutes configures class routes
func (r *Router) setupClassRoutes(rg *gin.RouterGroup) {
	classRepo := classes.NewRepository(r.db.GetPostgreSQL())
	classService := classes.NewService(classRepo)
	classController := classes.NewController(classService)

	classes.SetupClassRoutes(rg, classController)
}

// setupGradeRoutes configures grade routes
func (r *Router) setupGradeRoutes(rg *gin.RouterGroup) {
	gradeRepo := grades.NewRepository(r.db.GetPostgreSQL())
	gradeService := grades.NewService(gradeRepo)
	gradeController := grades.NewController(gradeService)

	grades.SetupGradeRoutes(rg, gradeController)
}
