package routes

import (
	"time"

	"uninest/constants"
	"uninest/controllers"
	"uninest/middleware"
	"uninest/services"
	"uninest/services/logger"
	"uninest/utils"

	"github.com/gin-gonic/gin"
	"github.com/olahol/melody"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes mounts every endpoint under /api/v1.
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisCli *redis.Client, m *melody.Melody) *services.BookingService {
	log := utils.NewAppLogger(logger.InfoLevel)

	authService := services.NewAuthService(services.AuthServiceOptions{DB: db, Logger: log})
	userService := services.NewUserService(services.UserServiceOptions{DB: db, Logger: log})
	hostelService := services.NewHostelService(services.HostelServiceOptions{DB: db, Redis: redisCli, Logger: log})
	reviewService := services.NewReviewService(services.ReviewServiceOptions{Store: services.NewReviewStore(db), Logger: log})
	universityService := services.NewUniversityService(services.UniversityServiceOptions{DB: db, Redis: redisCli, Logger: log})
	bookingService := services.NewBookingService(services.BookingServiceOptions{
		Store:    services.NewBookingStore(db),
		Cache:    services.NewRedisBookingCache(redisCli, log),
		Notifier: services.NewWSNotifier(m, log),
		Logger:   log,
	})

	authController := controllers.NewAuthController(authService)
	userController := controllers.NewUserController(userService)
	hostelController := controllers.NewHostelController(hostelService)
	roomController := controllers.NewRoomController(hostelService)
	bookingController := controllers.NewBookingController(bookingService)
	reviewController := controllers.NewReviewController(reviewService)
	universityController := controllers.NewUniversityController(universityService)
	adminController := controllers.NewAdminController(userService, hostelService, bookingService)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	v1.Use(middleware.SessionMiddleware())
	v1.Use(middleware.RateLimitMiddleware(redisCli, 300, time.Minute))

	v1.POST("/auth/register", authController.Register)
	v1.POST("/auth/login", authController.Login)
	v1.POST("/auth/google", authController.LoginGoogle)

	v1.GET("/profile", middleware.AuthMiddleware(), userController.GetProfile)
	v1.PUT("/profile", middleware.AuthMiddleware(), userController.UpdateProfile)

	v1.GET("/universities", universityController.List)

	v1.GET("/hostels", hostelController.Search)
	v1.GET("/hostels/mine", middleware.AuthMiddleware(constants.RoleHostelOwner, constants.RoleAdmin), hostelController.ListMine)
	v1.GET("/hostels/:id", hostelController.GetDetail)
	v1.POST("/hostels", middleware.AuthMiddleware(constants.RoleHostelOwner), hostelController.Create)
	v1.PUT("/hostels/:id", middleware.AuthMiddleware(constants.RoleHostelOwner, constants.RoleAdmin), hostelController.Update)
	v1.DELETE("/hostels/:id", middleware.AuthMiddleware(constants.RoleHostelOwner, constants.RoleAdmin), hostelController.Delete)

	v1.GET("/hostels/:id/roomTypes", roomController.List)
	v1.POST("/hostels/:id/roomTypes", middleware.AuthMiddleware(constants.RoleHostelOwner, constants.RoleAdmin), roomController.Create)
	v1.PUT("/roomTypes/:id", middleware.AuthMiddleware(constants.RoleHostelOwner, constants.RoleAdmin), roomController.Update)

	v1.POST("/bookings", middleware.AuthMiddleware(constants.RoleStudent), bookingController.Create)
	v1.GET("/bookings", middleware.AuthMiddleware(), bookingController.List)
	v1.GET("/bookings/:id", middleware.AuthMiddleware(), bookingController.Get)
	v1.PUT("/bookings/:id", middleware.AuthMiddleware(), bookingController.UpdateStatus)

	v1.GET("/reviews", reviewController.List)
	v1.POST("/reviews", middleware.AuthMiddleware(constants.RoleStudent), reviewController.Create)

	admin := v1.Group("/admin", middleware.AuthMiddleware(constants.RoleAdmin))
	admin.GET("/users", adminController.ListUsers)
	admin.PUT("/users/:id/verify", adminController.VerifyUser)
	admin.GET("/hostels", adminController.ListHostels)
	admin.PUT("/hostels/:id", adminController.UpdateHostel)
	admin.GET("/bookings", adminController.ListBookings)
	admin.GET("/stats", adminController.Stats)

	v1.POST("/img/upload", middleware.AuthMiddleware(), controllers.UploadImage)
	v1.POST("/img/multi-upload", middleware.AuthMiddleware(constants.RoleHostelOwner, constants.RoleAdmin), controllers.UploadImages)

	return bookingService
}
