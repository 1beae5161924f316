package api

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/selyo-ustp/request_service/config"
	"github.com/selyo-ustp/request_service/infra/queue"
	"github.com/selyo-ustp/request_service/internal/api/rest/handlers"
	"github.com/selyo-ustp/request_service/internal/api/rest/middleware"
	"github.com/selyo-ustp/request_service/internal/domain"
	"github.com/selyo-ustp/request_service/internal/helper"
	"github.com/selyo-ustp/request_service/internal/repository"
	"github.com/selyo-ustp/request_service/internal/services"
	"github.com/selyo-ustp/request_service/pkg/cloudinary"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func StartServer(cfg config.Config) {
	app := fiber.New(fiber.Config{
		BodyLimit: 30 * 1024 * 1024, // multipart uploads, 5 docs x 5MB + headroom
	})

	// ---------- CORS ----------
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.BaseURL,
		AllowHeaders: "Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
		// wildcard origins and credentials cannot be combined
		AllowCredentials: cfg.BaseURL != "*",
	}))

	// ---------- DB ----------
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DatabaseDSN,
		PreferSimpleProtocol: true,
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("database connection error: %v", err)
	}
	log.Println("database connected")

	// ---------- MIGRATION + SEED (guarded by advisory lock) ----------
	// ใช้เลขคงที่ตัวเดียวกันทั้งระบบเพื่อ lock งาน migrate
	const migrateLockID int64 = 20260901

	if err := db.Exec("SELECT pg_advisory_lock(?)", migrateLockID).Error; err != nil {
		log.Fatalf("migration lock error: %v", err)
	}
	defer func() {
		_ = db.Exec("SELECT pg_advisory_unlock(?)", migrateLockID).Error
	}()

	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Request{},
		&domain.RequestDocument{},
		&domain.Appointment{},
		&domain.Announcement{},
		&domain.AuditLog{},
	); err != nil {
		log.Fatalf("migration error: %v", err)
	}

	// One live appointment per (date, slot). Cancelled and soft-deleted
	// rows release the slot, hence the partial index instead of a gorm
	// uniqueIndex tag.
	if err := db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS uidx_appointments_date_slot_active
		 ON appointments (date, time_slot)
		 WHERE status <> 'Cancelled' AND deleted_at IS NULL`,
	).Error; err != nil {
		log.Fatalf("slot index error: %v", err)
	}
	log.Println("migration successful")

	seedAdmin(db)

	// ---------- Infra ----------
	kafkaProducer := queue.NewProducer(
		cfg.KafkaBroker,
		cfg.KafkaTopic,
		cfg.KafkaUsername,
		cfg.KafkaPassword,
	)
	cld, err := cloudinary.New()
	if err != nil {
		log.Fatalf("cloudinary init error: %v", err)
	}
	up := cloudinary.NewCloudinaryUploader(cld)

	authHelper := helper.SetupAuth(cfg.AccessSecret)

	// ---------- Repositories ----------
	userRepo := repository.NewUserRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	appointmentRepo := repository.NewAppointmentRepository(db)
	announcementRepo := repository.NewAnnouncementRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	// ---------- Services ----------
	userSvc := services.NewUserService(userRepo, authHelper)
	requestSvc := services.NewRequestService(requestRepo, auditRepo, up, kafkaProducer)
	appointmentSvc := services.NewAppointmentService(appointmentRepo, requestRepo, kafkaProducer)
	announcementSvc := services.NewAnnouncementService(announcementRepo)

	// ---------- Handlers ----------
	authHandler := handlers.NewAuthHandler(userSvc, authHelper)
	requestHandler := handlers.NewRequestHandler(requestSvc, announcementSvc)
	adminHandler := handlers.NewAdminHandler(requestSvc, appointmentSvc, announcementSvc)

	setupRoutes(app, authHelper, authHandler, requestHandler, adminHandler)

	// ---------- Health ----------
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// ---------- Listen ----------
	addr := cfg.ServerPort
	log.Println("listening on", addr)
	log.Fatal(app.Listen(addr))
}

func setupRoutes(
	app *fiber.App,
	auth helper.Auth,
	authHandler *handlers.AuthHandler,
	requestHandler *handlers.RequestHandler,
	adminHandler *handlers.AdminHandler,
) {
	// ---------- Public ----------
	authGroup := app.Group("/api/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/me", middleware.AuthMiddleware(auth), authHandler.Me)

	// ---------- Student ----------
	student := app.Group("/api/requests", middleware.AuthMiddleware(auth), middleware.StudentOnly())
	student.Get("/types", requestHandler.Types)
	student.Get("/announcements", requestHandler.Announcements)
	student.Post("/", requestHandler.Create)
	student.Get("/", requestHandler.List)
	student.Get("/:id", requestHandler.Get)

	// ---------- Admin ----------
	admin := app.Group("/api/admin", middleware.AuthMiddleware(auth), middleware.AdminOnly())
	admin.Get("/request-types", adminHandler.RequestTypes)
	admin.Get("/requests", adminHandler.ListRequests)
	admin.Get("/requests/:id", adminHandler.GetRequest)
	admin.Put("/requests/:id", adminHandler.UpdateRequestStatus)
	admin.Delete("/requests/:id", adminHandler.DeleteRequest)
	admin.Get("/verify/:code", adminHandler.VerifyPickup)
	admin.Put("/release/:id", adminHandler.Release)
	admin.Get("/slots", adminHandler.Slots)
	admin.Get("/appointments", adminHandler.ListAppointments)
	admin.Post("/appointments", adminHandler.BookAppointment)
	admin.Put("/appointments/:id", adminHandler.UpdateAppointment)
	admin.Get("/announcements", adminHandler.ListAnnouncements)
	admin.Post("/announcements", adminHandler.CreateAnnouncement)
	admin.Put("/announcements/:id", adminHandler.UpdateAnnouncement)
	admin.Delete("/announcements/:id", adminHandler.DeleteAnnouncement)
}

// seedAdmin makes sure the registrar account exists on a fresh database.
func seedAdmin(db *gorm.DB) {
	email := "admin@ustp.edu.ph"

	var u domain.User
	err := db.Where("email = ?", email).First(&u).Error
	if err == gorm.ErrRecordNotFound {
		hashed, hashErr := helper.Auth{}.HashPassword("admin123")
		if hashErr != nil {
			log.Println("seed admin hash error:", hashErr)
			return
		}
		_ = db.Create(&domain.User{
			Name:         "Registrar Admin",
			Email:        email,
			StudentID:    "ADMIN001",
			PasswordHash: hashed,
			Role:         domain.RoleAdmin,
		}).Error
	}
}
