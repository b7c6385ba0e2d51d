package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/officetrack/attendance-backend-go/internal/config"
	"github.com/officetrack/attendance-backend-go/internal/domain/user"
	appHTTP "github.com/officetrack/attendance-backend-go/internal/handler/http"
	"github.com/officetrack/attendance-backend-go/internal/pkg/cron"
	"github.com/officetrack/attendance-backend-go/internal/pkg/database"
	"github.com/officetrack/attendance-backend-go/internal/pkg/email"
	"github.com/officetrack/attendance-backend-go/internal/pkg/jwt"
	"github.com/officetrack/attendance-backend-go/internal/repository/postgresql"
	attendanceService "github.com/officetrack/attendance-backend-go/internal/service/attendance"
	authService "github.com/officetrack/attendance-backend-go/internal/service/auth"
	leaveService "github.com/officetrack/attendance-backend-go/internal/service/leave"
	notificationService "github.com/officetrack/attendance-backend-go/internal/service/notification"
	reportService "github.com/officetrack/attendance-backend-go/internal/service/report"
	userService "github.com/officetrack/attendance-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	trackerRepo := postgresql.NewTrackerRepository(db)

	accessPolicy := user.NewAccessPolicy(cfg.Access.AdminEmails)
	jwtSvc := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	emailSvc, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}
	notifSvc := notificationService.NewNotificationService(emailSvc, notificationService.Config{})

	authSvc := authService.NewAuthService(userRepo, accessPolicy, jwtSvc)
	userSvc := userService.NewUserService(userRepo, accessPolicy)
	attendanceSvc := attendanceService.NewAttendanceService(db, attendanceRepo)
	leaveSvc := leaveService.NewLeaveService(db, leaveRepo, trackerRepo, attendanceRepo, userRepo)
	reportSvc := reportService.NewReportService(attendanceRepo, userRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtSvc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc, notifSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)

	router := appHTTP.NewRouter(
		cfg,
		jwtSvc,
		authHandler,
		attendanceHandler,
		leaveHandler,
		reportHandler,
		userHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewLeaveJobs(leaveSvc, notifSvc).RegisterJobs(scheduler)
	cron.NewAttendanceJobs(attendanceSvc, userRepo).RegisterJobs(scheduler)
	scheduler.Start()

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Server shutdown error:", err)
	}

	scheduler.Stop()
	notifSvc.Stop()
}
