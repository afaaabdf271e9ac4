package routes

import (
	"clinicare-portal/internal/adapters/http/handlers"
	"clinicare-portal/internal/adapters/http/middleware"
	"clinicare-portal/internal/adapters/persistence/repositories"
	"clinicare-portal/internal/config"
	"clinicare-portal/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	userRepo := repositories.NewPortalUserRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	employeeRepo := repositories.NewEmployeeRepository(db)
	doctorRepo := repositories.NewDoctorRepository(db)
	staffRepo := repositories.NewStaffRepository(db)
	patientRepo := repositories.NewPatientRepository(db)
	appointmentRepo := repositories.NewAppointmentRepository(db)
	attendanceRepo := repositories.NewAttendanceRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	kycRepo := repositories.NewKYCRepository(db)
	chatRepo := repositories.NewChatRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, refreshTokenRepo, cfg)
	employeeService := services.NewEmployeeService(employeeRepo)
	doctorService := services.NewDoctorService(doctorRepo)
	staffService := services.NewStaffService(staffRepo)
	patientService := services.NewPatientService(patientRepo)
	appointmentService := services.NewAppointmentService(appointmentRepo, patientRepo, doctorRepo)
	attendanceService := services.NewAttendanceService(attendanceRepo, employeeRepo)
	taskService := services.NewTaskService(taskRepo, staffRepo)
	kycService := services.NewKYCService(kycRepo, patientRepo)
	chatService := services.NewChatService(chatRepo, patientRepo)
	statsService := services.NewStatsService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	doctorHandler := handlers.NewDoctorHandler(doctorService)
	staffHandler := handlers.NewStaffHandler(staffService)
	patientHandler := handlers.NewPatientHandler(patientService)
	appointmentHandler := handlers.NewAppointmentHandler(appointmentService)
	attendanceHandler := handlers.NewAttendanceHandler(attendanceService)
	taskHandler := handlers.NewTaskHandler(taskService)
	kycHandler := handlers.NewKYCHandler(kycService)
	chatHandler := handlers.NewChatHandler(chatService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	auth := middleware.AuthMiddleware(cfg.JWT.Secret)

	// Auth routes
	authRoutes := apiV1.Group("/auth", middleware.NoCacheHeaders())
	authRoutes.Post("/register", middleware.AuthRateLimiter(), authHandler.Register)
	authRoutes.Post("/login", middleware.AuthRateLimiter(), authHandler.Login)
	authRoutes.Post("/refresh", authHandler.RefreshToken)
	authRoutes.Post("/logout", authHandler.Logout)
	authRoutes.Get("/me", auth, authHandler.Me)
	authRoutes.Post("/logout-all", auth, authHandler.LogoutAll)

	// Employee routes (Admin manages, staff can read)
	employeeRoutes := apiV1.Group("/employees", auth)
	employeeRoutes.Get("/", middleware.StaffOrAdmin(), employeeHandler.ListEmployees)
	employeeRoutes.Get("/:id", middleware.StaffOrAdmin(), employeeHandler.GetEmployee)
	employeeRoutes.Post("/", middleware.AdminOnly(), employeeHandler.CreateEmployee)
	employeeRoutes.Put("/:id", middleware.AdminOnly(), employeeHandler.UpdateEmployee)
	employeeRoutes.Delete("/:id", middleware.AdminOnly(), employeeHandler.DeleteEmployee)
	employeeRoutes.Post("/:id/restore", middleware.AdminOnly(), employeeHandler.RestoreEmployee)

	// Doctor routes
	doctorRoutes := apiV1.Group("/doctors", auth)
	doctorRoutes.Get("/", middleware.ShortCacheHeaders(60), doctorHandler.ListDoctors)
	doctorRoutes.Get("/:id", doctorHandler.GetDoctor)
	doctorRoutes.Post("/", middleware.AdminOnly(), doctorHandler.CreateDoctor)
	doctorRoutes.Put("/:id", middleware.AdminOnly(), doctorHandler.UpdateDoctor)
	doctorRoutes.Patch("/:id/availability", middleware.ClinicalStaff(), doctorHandler.SetAvailability)

	// Staff routes (Admin only)
	staffRoutes := apiV1.Group("/staff", auth)
	staffRoutes.Get("/", middleware.StaffOrAdmin(), staffHandler.ListStaff)
	staffRoutes.Get("/:id", middleware.StaffOrAdmin(), staffHandler.GetStaff)
	staffRoutes.Post("/", middleware.AdminOnly(), staffHandler.CreateStaff)
	staffRoutes.Put("/:id", middleware.AdminOnly(), staffHandler.UpdateStaff)

	// Patient routes
	patientRoutes := apiV1.Group("/patients", auth)
	patientRoutes.Get("/", middleware.ClinicalStaff(), patientHandler.ListPatients)
	patientRoutes.Get("/:id", patientHandler.GetPatient)
	patientRoutes.Post("/", middleware.StaffOrAdmin(), patientHandler.CreatePatient)
	patientRoutes.Put("/:id", middleware.StaffOrAdmin(), patientHandler.UpdatePatient)

	// Appointment routes
	appointmentRoutes := apiV1.Group("/appointments", auth)
	appointmentRoutes.Get("/", appointmentHandler.ListAppointments)
	appointmentRoutes.Get("/doctor/:id/today", middleware.ClinicalStaff(), appointmentHandler.TodayForDoctor)
	appointmentRoutes.Get("/:id", appointmentHandler.GetAppointment)
	appointmentRoutes.Post("/", appointmentHandler.CreateAppointment)
	appointmentRoutes.Post("/:id/accept", middleware.ClinicalStaff(), appointmentHandler.AcceptAppointment)
	appointmentRoutes.Post("/:id/cancel", appointmentHandler.CancelAppointment)
	appointmentRoutes.Post("/:id/reschedule", appointmentHandler.RescheduleAppointment)

	// Attendance routes
	attendanceRoutes := apiV1.Group("/attendance", auth, middleware.NoCacheHeaders())
	attendanceRoutes.Get("/", middleware.AdminOnly(), attendanceHandler.ListAll)
	attendanceRoutes.Post("/check-in", middleware.ClinicalStaff(), attendanceHandler.CheckIn)
	attendanceRoutes.Post("/check-out", middleware.ClinicalStaff(), attendanceHandler.CheckOut)
	attendanceRoutes.Get("/:id/today", middleware.ClinicalStaff(), attendanceHandler.TodayStatus)
	attendanceRoutes.Get("/:id/history", middleware.ClinicalStaff(), attendanceHandler.History)

	// Task routes
	taskRoutes := apiV1.Group("/tasks", auth, middleware.StaffOrAdmin())
	taskRoutes.Get("/", taskHandler.ListTasks)
	taskRoutes.Get("/overdue", taskHandler.OverdueTasks)
	taskRoutes.Get("/staff/:id/pending", taskHandler.PendingTasks)
	taskRoutes.Get("/:id", taskHandler.GetTask)
	taskRoutes.Post("/", taskHandler.CreateTask)
	taskRoutes.Post("/:id/start", taskHandler.StartTask)
	taskRoutes.Post("/:id/complete", taskHandler.CompleteTask)
	taskRoutes.Post("/:id/cancel", taskHandler.CancelTask)

	// KYC routes
	kycRoutes := apiV1.Group("/kyc", auth)
	kycRoutes.Get("/", middleware.StaffOrAdmin(), kycHandler.ListKYC)
	kycRoutes.Get("/:id", kycHandler.GetKYC)
	kycRoutes.Post("/:id/submit", kycHandler.SubmitKYC)
	kycRoutes.Post("/:id/review", middleware.StaffOrAdmin(), kycHandler.ReviewKYC)
	kycRoutes.Post("/:id/approve", middleware.StaffOrAdmin(), kycHandler.ApproveKYC)
	kycRoutes.Post("/:id/reject", middleware.StaffOrAdmin(), kycHandler.RejectKYC)

	// Chat routes
	chatRoutes := apiV1.Group("/chat", auth, middleware.NoCacheHeaders())
	chatRoutes.Get("/:id/messages", chatHandler.ListMessages)
	chatRoutes.Post("/:id/messages", chatHandler.SendMessage)
	chatRoutes.Post("/:id/read", chatHandler.MarkRead)
	chatRoutes.Get("/:id/unread", chatHandler.UnreadCount)

	// Stats routes (Admin dashboard)
	statsRoutes := apiV1.Group("/stats", auth, middleware.StaffOrAdmin())
	statsRoutes.Get("/overview", middleware.ShortCacheHeaders(30), statsHandler.Overview)
}
