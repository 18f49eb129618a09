package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sinapsiscode/cursos-exam-backend/internal/config"
	"github.com/sinapsiscode/cursos-exam-backend/internal/handler"
	"github.com/sinapsiscode/cursos-exam-backend/internal/middleware"
	"github.com/sinapsiscode/cursos-exam-backend/internal/response"
	"github.com/sinapsiscode/cursos-exam-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Catalog  *handler.CatalogHandler
	Result   *handler.ResultHandler
	Discount *handler.DiscountHandler
	Stats    *handler.StatsHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for redemption (20 requests per minute per IP); codes are
	// short enough to guess by brute force without one.
	redeemLimiter := middleware.NewRateLimiter(20, time.Minute)

	// ─── 1. Public Group (No Auth) ─────────────────────────────────────
	publicAPI := router.Group("/api/v1")
	{
		catalog := publicAPI.Group("/")
		catalog.Use(middleware.CacheControl(60))
		{
			catalog.GET("/exams", handlers.Catalog.ListExams)
			catalog.GET("/exams/:exam_id", handlers.Catalog.GetExamByID)
			catalog.GET("/courses/:course_id/exam", handlers.Catalog.GetExamByCourse)
			catalog.GET("/exam/questions", handlers.Catalog.GetPlacementQuestions)
		}

		publicAPI.POST("/exam/pending-results", handlers.Result.SavePendingResult)
	}

	// ─── 2. User Group (JWT) ───────────────────────────────────────────
	userAPI := router.Group("/api/v1")
	userAPI.Use(middleware.RequireUserJWT(authService))
	{
		userAPI.POST("/exam/results", handlers.Result.SaveExamResult)
		userAPI.GET("/exam/results/me", handlers.Result.GetMyResult)
		userAPI.POST("/courses/:course_id/exam/results", handlers.Result.SaveCourseExamResult)
		userAPI.GET("/courses/:course_id/exam/results/best", handlers.Result.GetBestCourseResult)
		userAPI.POST("/exam/pending-results/claim", handlers.Result.ClaimPendingResult)
		userAPI.GET("/exam/prompt", handlers.Result.GetExamPromptStatus)
		userAPI.POST("/exam/prompt/dismiss", handlers.Result.DismissExamPrompt)

		userAPI.POST("/discounts/validate", handlers.Discount.ValidateCode)
		userAPI.POST("/discounts/redeem", redeemLimiter.Middleware(), handlers.Discount.RedeemCode)
		userAPI.GET("/discounts/me", handlers.Discount.GetMyDiscounts)
	}

	// ─── 3. Admin Group (JWT + RBAC) ───────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		adminAPI.GET("/exam-stats",
			middleware.RequirePermission(middleware.PermissionStatsRead),
			handlers.Stats.GetExamStats,
		)
		adminAPI.PUT("/exams",
			middleware.RequirePermission(middleware.PermissionExamsWrite),
			handlers.Catalog.ReplaceExams,
		)
	}

	return router
}
