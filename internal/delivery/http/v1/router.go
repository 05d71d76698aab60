package v1

import (
	"net/http"

	"contact-form-backend/config"
	"contact-form-backend/internal/delivery/http/middleware"
	"contact-form-backend/internal/delivery/http/response"
	"contact-form-backend/internal/domain"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC domain.ContactUsecase
	// Queue receives deferred confirmation emails; nil when emails are
	// disabled or sent synchronously
	Queue  domain.TaskQueue
	Config *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.CORSAllowedOrigins)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	if deps.Queue != nil {
		r.Use(middleware.DeferredTasks(deps.Queue))
	}

	// Health Check
	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Public routes
	NewContactHandler(r, deps.ContactUC, ContactHandlerOptions{
		SyncDelivery: deps.Config.SyncDelivery(),
		ListEnabled:  deps.Config.StoreSubmissions,
	})

	return r
}
