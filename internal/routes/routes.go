package routes

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/qwiken-app/booking-api/internal/audit"
	"github.com/qwiken-app/booking-api/internal/cache"
	"github.com/qwiken-app/booking-api/internal/config"
	"github.com/qwiken-app/booking-api/internal/domain/schedule"
	"github.com/qwiken-app/booking-api/internal/handlers"
	infraRepo "github.com/qwiken-app/booking-api/internal/infra/repository"
	"github.com/qwiken-app/booking-api/internal/middleware"
	"github.com/qwiken-app/booking-api/internal/models"
	"github.com/qwiken-app/booking-api/internal/notify"
	"github.com/qwiken-app/booking-api/internal/storage"
	"github.com/qwiken-app/booking-api/internal/timezone"
)

// RegisterRoutes wires infra, use cases and handlers onto the engine.
// The returned refresher must be started by the caller (it owns the
// lifecycle context).
func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
) *cache.Refresher {

	// ======================================================
	// MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware())

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	smtpSender := notify.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.EmailFrom)
	notifyDispatcher := notify.NewDispatcher(smtpSender)

	availCache := cache.NewAvailabilityCache(rdb, cfg.CacheTTL)

	computeSlots := func(ctx context.Context, staffIDStr, dateStr string, durationMin int) ([]schedule.Slot, error) {
		staffID, err := uuid.Parse(staffIDStr)
		if err != nil {
			return nil, err
		}

		var member models.StaffMember
		if err := db.WithContext(ctx).First(&member, "id = ?", staffID).Error; err != nil {
			return nil, err
		}

		var shop models.Shop
		if err := db.WithContext(ctx).First(&shop, "id = ?", member.ShopID).Error; err != nil {
			return nil, err
		}

		date, err := time.ParseInLocation(
			schedule.DateLayout,
			dateStr,
			timezone.Location(shop.Timezone),
		)
		if err != nil {
			return nil, err
		}

		booked, err := bookingRepo.FetchBookedIntervals(ctx, staffID, dateStr)
		if err != nil {
			return nil, err
		}

		return schedule.GenerateSlots(
			date,
			member.ScheduleInfo(),
			durationMin,
			booked,
			cfg.SlotStrideMinutes,
		), nil
	}

	refresher := cache.NewRefresher(availCache, computeSlots, cfg.RefreshInterval)

	uploader := storage.NewUploader(cfg)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, cfg)
	meHandler := handlers.NewMeHandler(db)
	shopHandler := handlers.NewShopHandler(db, auditDispatcher)

	staffHandler := handlers.NewStaffHandler(db, auditDispatcher)
	serviceHandler := handlers.NewServiceHandler(db, auditDispatcher)
	avatarHandler := handlers.NewAvatarHandler(db, uploader, auditDispatcher)

	bookingHandler := handlers.NewBookingHandler(db, bookingRepo, auditDispatcher, availCache)
	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	publicHandler := handlers.NewPublicHandler(
		db,
		bookingRepo,
		auditDispatcher,
		notifyDispatcher,
		availCache,
		refresher,
		cfg.SlotStrideMinutes,
		cfg.OccupancyThreshold,
	)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC API
		// ------------------------------
		publicAPI := api.Group("/public")
		{
			publicAPI.GET("/:slug", publicHandler.GetShop)
			publicAPI.GET("/:slug/services", publicHandler.ListServices)
			publicAPI.GET("/:slug/staff", publicHandler.ListStaff)
			publicAPI.GET("/:slug/availability", publicHandler.Availability)
			publicAPI.GET("/:slug/calendar", publicHandler.MonthCalendar)
			publicAPI.POST("/:slug/bookings", publicHandler.CreateBooking)
		}

		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)

		// ------------------------------
		// PRIVATE API
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg))
		{
			secured.GET("/me", meHandler.GetMe)

			secured.GET("/me/shop", shopHandler.Get)
			secured.PATCH("/me/shop", shopHandler.Update)
			secured.POST("/me/shop/image", avatarHandler.UploadShopImage)

			secured.GET("/me/staff", staffHandler.List)
			secured.POST("/me/staff", staffHandler.Create)
			secured.GET("/me/staff/:id", staffHandler.Get)
			secured.PATCH("/me/staff/:id", staffHandler.Update)
			secured.DELETE("/me/staff/:id", staffHandler.Delete)
			secured.PUT("/me/staff/:id/work-schedule", staffHandler.UpdateWorkSchedule)
			secured.PUT("/me/staff/:id/leave-dates", staffHandler.UpdateLeaveDates)
			secured.POST("/me/staff/:id/avatar", avatarHandler.UploadStaffAvatar)

			secured.GET("/me/services", serviceHandler.List)
			secured.POST("/me/services", serviceHandler.Create)
			secured.PATCH("/me/services/:id", serviceHandler.Update)
			secured.DELETE("/me/services/:id", serviceHandler.Delete)

			// ------------------------------
			// BOOKING QUEUE
			// ------------------------------
			secured.GET("/me/bookings", bookingHandler.ListForDate)
			secured.PATCH("/me/bookings/:id/status", bookingHandler.UpdateStatus)

			secured.GET("/me/audit-logs", auditLogsHandler.List)
		}
	}

	return refresher
}
