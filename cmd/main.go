package main

import (
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"propertyhub-api/internal/handler"
	mid "propertyhub-api/internal/middleware"
	"propertyhub-api/internal/repository"
	"propertyhub-api/internal/storage"
	"propertyhub-api/pkg/config"
	"propertyhub-api/pkg/database"
	"propertyhub-api/pkg/jwtutil"
	"propertyhub-api/pkg/logger"
	"propertyhub-api/prometheus"
)

// CustomValidator adapts go-playground/validator to echo's Validate hook.
type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func main() {
	appConfig, err := config.Load()
	if err != nil {
		// Can't use the structured logger yet since it's not initialized
		panic("Failed to load configuration: " + err.Error())
	}

	logger.InitLogger(appConfig)
	log := logger.GetLogger()
	defer log.Sync()

	log.Info("Starting propertyhub-api", appConfig.LogFields()...)

	jwtutil.Initialize(&appConfig.JWT)
	log.Info("JWT utility initialized")

	prometheus.InitMetrics(appConfig)
	log.Info("Prometheus metrics initialized",
		zap.String("metrics_prefix", appConfig.Metrics.Prefix))

	ctx := context.Background()

	// Pick the store driver. Memory is for local development and demos;
	// production runs against MongoDB.
	var (
		propertyRepo repository.PropertyRepository
		agentRepo    repository.AgentRepository
		addressRepo  repository.AddressRepository
		featureRepo  repository.FeatureRepository
		userRepo     repository.UserRepository
	)
	switch appConfig.StoreDriver {
	case "memory":
		props := repository.NewMemoryPropertyRepository()
		propertyRepo = props
		agentRepo = repository.NewMemoryAgentRepository()
		addressRepo = repository.NewMemoryAddressRepository(props)
		featureRepo = repository.NewMemoryFeatureRepository(props)
		userRepo = repository.NewMemoryUserRepository()
		log.Info("Using in-memory store")
	default:
		if err := database.InitDB(ctx, appConfig); err != nil {
			log.Fatal("Failed to initialize document store", zap.Error(err))
		}
		defer database.Disconnect(ctx)
		log.Info("Document store connection established")

		propertyColl := database.GetCollection(appConfig.Mongo.PropertyCollection)
		propertyRepo = repository.NewMongoPropertyRepository(propertyColl)
		agentRepo = repository.NewMongoAgentRepository(database.GetCollection(appConfig.Mongo.AgentCollection))
		addressRepo = repository.NewMongoAddressRepository(propertyColl)
		featureRepo = repository.NewMongoFeatureRepository(propertyColl)
		userRepo = repository.NewMongoUserRepository(database.GetCollection(appConfig.Mongo.UserCollection))
	}

	fileStorage, err := storage.NewS3Storage(ctx, appConfig)
	if err != nil {
		log.Fatal("Failed to initialize image storage", zap.Error(err))
	}
	log.Info("Image storage initialized", zap.String("bucket", appConfig.S3.Bucket))

	propertyHandler := handler.NewPropertyHandler(propertyRepo, fileStorage)
	agentHandler := handler.NewAgentHandler(agentRepo, propertyRepo)
	addressHandler := handler.NewAddressHandler(addressRepo, propertyRepo)
	featureHandler := handler.NewFeatureHandler(featureRepo, propertyRepo)
	userHandler := handler.NewUserHandler(userRepo)

	e := echo.New()
	e.HideBanner = true
	e.Validator = &CustomValidator{validator: validator.New()}

	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(mid.RequestIDMiddleware)
	e.Use(mid.MetricsMiddleware)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/health", handler.Health(appConfig.ServiceName))

	// Account routes
	userAPI := e.Group("/api/user")
	userAPI.POST("/register", userHandler.Register)
	userAPI.POST("/login", userHandler.Login)

	// Property routes. Reads are open; writes require a valid token.
	propertyAPI := e.Group("/api/property")
	propertyAPI.GET("", propertyHandler.List)
	propertyAPI.GET("/:mls", propertyHandler.GetByMLS)
	propertyAPI.GET("/type/:type", propertyHandler.GetByType)
	propertyAPI.GET("/price/:price", propertyHandler.GetByPrice)
	propertyAPI.GET("/bedrooms/:bedrooms", propertyHandler.GetByBedrooms)
	propertyAPI.GET("/bathrooms/:bathrooms", propertyHandler.GetByBathrooms)
	propertyAPI.GET("/parkings/:parkings", propertyHandler.GetByParkings)
	propertyAPI.GET("/size/:size", propertyHandler.GetBySize)
	propertyAPI.GET("/yearBuilt/:yearBuilt", propertyHandler.GetByYearBuilt)
	propertyAPI.GET("/tax/:tax", propertyHandler.GetByTax)
	propertyAPI.GET("/status/:status", propertyHandler.GetByStatus)
	propertyAPI.POST("", propertyHandler.Create, mid.AuthMiddleware)
	propertyAPI.PUT("/:mls", propertyHandler.Update, mid.AuthMiddleware)
	propertyAPI.PATCH("/:mls", propertyHandler.Patch, mid.AuthMiddleware)
	propertyAPI.DELETE("/:mls", propertyHandler.Delete, mid.AuthMiddleware)
	propertyAPI.POST("/:mls/images", propertyHandler.AddImages, mid.AuthMiddleware)
	propertyAPI.PUT("/:mls/images", propertyHandler.ReplaceImage, mid.AuthMiddleware)
	propertyAPI.DELETE("/:mls/images", propertyHandler.DeleteImages, mid.AuthMiddleware)

	// Agent routes
	agentAPI := e.Group("/api/agent")
	agentAPI.GET("", agentHandler.List)
	agentAPI.GET("/:registrationNumber", agentHandler.Get)
	agentAPI.GET("/:registrationNumber/properties", agentHandler.GetProperties)
	agentAPI.POST("", agentHandler.Create, mid.AuthMiddleware)
	agentAPI.PUT("/:registrationNumber", agentHandler.Update, mid.AuthMiddleware)
	agentAPI.PATCH("/:registrationNumber", agentHandler.Patch, mid.AuthMiddleware)
	agentAPI.DELETE("/:registrationNumber", agentHandler.Delete, mid.AuthMiddleware)

	// Address routes (embedded sub-object of a property)
	addressAPI := e.Group("/api/address")
	addressAPI.GET("", addressHandler.GetAll)
	addressAPI.GET("/cityAddress/:city", addressHandler.GetAddressesByCity)
	addressAPI.GET("/cityProperty/:city", addressHandler.GetPropertiesByCity)
	addressAPI.GET("/streetProperty/:streetNumber/:streetName", addressHandler.GetPropertiesByStreet)
	addressAPI.GET("/postalCodeProperty/:postalCode", addressHandler.GetPropertiesByPostalCode)
	addressAPI.POST("/:mls/address", addressHandler.Add, mid.AuthMiddleware)
	addressAPI.PUT("/:mls/updateAddress", addressHandler.Update, mid.AuthMiddleware)
	addressAPI.PATCH("/:mls/updateAddress", addressHandler.Patch, mid.AuthMiddleware)
	addressAPI.DELETE("/:mls/deleteAddress", addressHandler.Delete, mid.AuthMiddleware)

	// Feature routes (embedded sub-object of a property)
	featureAPI := e.Group("/api/feature")
	featureAPI.GET("", featureHandler.GetAll)
	featureAPI.GET("/walkScore/:score", featureHandler.GetByWalkScore)
	featureAPI.GET("/transitScore/:score", featureHandler.GetByTransitScore)
	featureAPI.GET("/bikeScore/:score", featureHandler.GetByBikeScore)
	featureAPI.GET("/educationScore/:score", featureHandler.GetByEducationScore)
	featureAPI.POST("/:mls/feature", featureHandler.Add, mid.AuthMiddleware)
	featureAPI.PUT("/:mls/updateFeature", featureHandler.Update, mid.AuthMiddleware)
	featureAPI.PATCH("/:mls/updateFeature", featureHandler.Patch, mid.AuthMiddleware)
	featureAPI.DELETE("/:mls/deleteFeature", featureHandler.Delete, mid.AuthMiddleware)

	port := appConfig.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Server error", zap.Error(err))
	}
}
