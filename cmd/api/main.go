package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/officehub/officehub-backend-go/internal/config"
	appHTTP "github.com/officehub/officehub-backend-go/internal/handler/http"
	"github.com/officehub/officehub-backend-go/internal/pkg/cron"
	"github.com/officehub/officehub-backend-go/internal/pkg/database"
	"github.com/officehub/officehub-backend-go/internal/pkg/email"
	"github.com/officehub/officehub-backend-go/internal/pkg/jwt"
	"github.com/officehub/officehub-backend-go/internal/pkg/oauth"
	"github.com/officehub/officehub-backend-go/internal/repository/postgresql"
	attendanceService "github.com/officehub/officehub-backend-go/internal/service/attendance"
	authService "github.com/officehub/officehub-backend-go/internal/service/auth"
	cabinService "github.com/officehub/officehub-backend-go/internal/service/cabin"
	employeeService "github.com/officehub/officehub-backend-go/internal/service/employee"
	eventService "github.com/officehub/officehub-backend-go/internal/service/event"
	leaveService "github.com/officehub/officehub-backend-go/internal/service/leave"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	location, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Invalid APP_TIMEZONE:", err)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	sessionRepo := postgresql.NewSessionRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	cabinRepo := postgresql.NewCabinRepository(db)
	cabinBookingRepo := postgresql.NewCabinBookingRepository(db)
	eventRepo := postgresql.NewEventRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)
	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	authSvc := authService.NewAuthService(db, userRepo, sessionRepo, jwtService, googleService)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, location)
	leaveSvc := leaveService.NewLeaveService(leaveRequestRepo, emailService)
	cabinSvc := cabinService.NewCabinService(cabinRepo)
	bookingSvc := cabinService.NewBookingService(cabinRepo, cabinBookingRepo)
	eventSvc := eventService.NewEventService(eventRepo)
	employeeSvc := employeeService.NewEmployeeService(userRepo)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo, leaveRequestRepo, location).RegisterJobs(scheduler)
	cron.NewSessionJobs(sessionRepo).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(jwtService, authSvc, googleService, cfg.App.FrontendURL),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Cabin:      appHTTP.NewCabinHandler(cabinSvc),
		Booking:    appHTTP.NewCabinBookingHandler(bookingSvc),
		Event:      appHTTP.NewEventHandler(eventSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
	}

	router := appHTTP.NewRouter(jwtService, handlers, cfg.App.FrontendURL, cfg.App.Env)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
