package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/trottiparts/trottiparts-api/docs"
	v1 "github.com/trottiparts/trottiparts-api/internal/api/handler/v1"
	"github.com/trottiparts/trottiparts-api/internal/api/middleware"
	"github.com/trottiparts/trottiparts-api/internal/config"
	"github.com/trottiparts/trottiparts-api/internal/repository"
	"github.com/trottiparts/trottiparts-api/internal/repository/dao"
	"github.com/trottiparts/trottiparts-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB, queryCache service.Cache, images v1.ImageStore, orderMailer service.OrderMailer) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	userRepo := repository.NewUserRepository(dao.NewUserDAO(db))
	catalogRepo := repository.NewCatalogRepository(dao.NewCatalogDAO(db))
	cartRepo := repository.NewCartRepository(dao.NewCartDAO(db))
	orderRepo := repository.NewOrderRepository(dao.NewOrderDAO(db))
	garageRepo := repository.NewGarageRepository(dao.NewGarageDAO(db))
	searchRepo := repository.NewSearchRepository(dao.NewSearchDAO(db))

	userSvc := service.NewUserService(userRepo)

	authHandler := v1.NewAuthHandler(conf.API, service.NewAuthService(userRepo))
	userHandler := v1.NewUserHandler(userSvc)
	catalogHandler := v1.NewCatalogHandler(service.NewCatalogService(catalogRepo, queryCache))
	cartHandler := v1.NewCartHandler(service.NewCartService(cartRepo, catalogRepo))
	orderHandler := v1.NewOrderHandler(service.NewOrderService(orderRepo, cartRepo, orderMailer, queryCache))
	garageHandler := v1.NewGarageHandler(service.NewGarageService(garageRepo, catalogRepo, userRepo))
	searchHandler := v1.NewSearchHandler(service.NewSearchService(searchRepo, catalogRepo))
	adminHandler := v1.NewAdminHandler(service.NewImportService(catalogRepo, queryCache), images)

	s.MountHandlers(userSvc, authHandler, userHandler, catalogHandler, cartHandler,
		orderHandler, garageHandler, searchHandler, adminHandler)

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	userSvc *service.UserService,
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	catalogHandler *v1.CatalogHandler,
	cartHandler *v1.CartHandler,
	orderHandler *v1.OrderHandler,
	garageHandler *v1.GarageHandler,
	searchHandler *v1.SearchHandler,
	adminHandler *v1.AdminHandler,
) {
	const basePath = "/api/v1"

	public := s.Router.Group(basePath)
	{
		public.POST("/auth/signup", authHandler.HandleSignup)
		public.POST("/auth/login", authHandler.HandleLogin)

		public.GET("/brands", catalogHandler.HandleGetBrands)
		public.GET("/brands/:slug", catalogHandler.HandleGetBrand)
		public.GET("/categories", catalogHandler.HandleGetCategories)
		public.GET("/scooters", catalogHandler.HandleGetScooters)
		public.GET("/scooters/:slug", catalogHandler.HandleGetScooter)
		public.GET("/parts", catalogHandler.HandleGetParts)
		public.GET("/parts/:slug", catalogHandler.HandleGetPart)
		public.GET("/tutorials", catalogHandler.HandleGetTutorials)
		public.GET("/tutorials/:slug", catalogHandler.HandleGetTutorial)
		public.GET("/compatibility", catalogHandler.HandleCheckCompatibility)

		// Anonymous visitors can search; they just have no history.
		public.GET("/search", searchHandler.HandleSearch)
	}

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	users := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		users.GET("/users/me", userHandler.HandleGetMe)
		users.GET("/users/me/profile", userHandler.HandleGetProfile)
		users.PUT("/users/me/profile", userHandler.HandleUpdateProfile)

		users.GET("/cart", cartHandler.HandleGetCart)
		users.DELETE("/cart", cartHandler.HandleClearCart)
		users.POST("/cart/items", cartHandler.HandleAddCartItem)
		users.PUT("/cart/items/:partID", cartHandler.HandleUpdateCartItem)
		users.DELETE("/cart/items/:partID", cartHandler.HandleRemoveCartItem)

		users.POST("/orders", orderHandler.HandleCheckout)
		users.GET("/orders", orderHandler.HandleGetOrders)
		users.GET("/orders/:orderID", orderHandler.HandleGetOrder)

		users.GET("/garage", garageHandler.HandleGetGarage)
		users.POST("/garage", garageHandler.HandleAddGarageItem)
		users.POST("/garage/:itemID/promote", garageHandler.HandlePromoteGarageItem)
		users.POST("/garage/:itemID/demote", garageHandler.HandleDemoteGarageItem)
		users.PUT("/garage/:itemID", garageHandler.HandleUpdateGarageItem)
		users.DELETE("/garage/:itemID", garageHandler.HandleRemoveGarageItem)
		users.GET("/garage/membership/:scooterID", garageHandler.HandleGarageMembership)

		users.POST("/search/history", searchHandler.HandleRecordSelection)
	}

	admin := s.Router.Group(basePath+"/admin", authenticator.VerifyJWT(), middleware.RequireAdmin(userSvc))
	{
		admin.POST("/brands", catalogHandler.HandleCreateBrand)
		admin.PUT("/brands/:brandID", catalogHandler.HandleUpdateBrand)
		admin.DELETE("/brands/:brandID", catalogHandler.HandleDeleteBrand)

		admin.POST("/scooters", catalogHandler.HandleCreateScooter)
		admin.PUT("/scooters/:scooterID", catalogHandler.HandleUpdateScooter)
		admin.DELETE("/scooters/:scooterID", catalogHandler.HandleDeleteScooter)

		admin.POST("/parts", catalogHandler.HandleCreatePart)
		admin.PUT("/parts/:partID", catalogHandler.HandleUpdatePart)
		admin.DELETE("/parts/:partID", catalogHandler.HandleDeletePart)
		admin.POST("/parts/import", adminHandler.HandleImportParts)

		admin.POST("/compatibility", catalogHandler.HandleLinkCompatibility)
		admin.DELETE("/compatibility", catalogHandler.HandleUnlinkCompatibility)

		admin.GET("/orders", orderHandler.HandleListAllOrders)
		admin.PUT("/orders/:orderID/status", orderHandler.HandleUpdateOrderStatus)

		admin.POST("/images", adminHandler.HandleUploadImage)
		admin.DELETE("/images", adminHandler.HandleDeleteImage)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "TrottiParts API"
	docs.SwaggerInfo.Description = "Spare parts storefront for electric scooters."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
