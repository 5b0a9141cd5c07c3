package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/lazyhr/lazyhr-backend-go/internal/config"
	"github.com/lazyhr/lazyhr-backend-go/internal/fixtures"
	appHTTP "github.com/lazyhr/lazyhr-backend-go/internal/handler/http"
	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/clock"
	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/cron"
	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/database"
	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/jwt"
	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/sse"
	"github.com/lazyhr/lazyhr-backend-go/internal/repository/postgresql"
	attendanceService "github.com/lazyhr/lazyhr-backend-go/internal/service/attendance"
	authService "github.com/lazyhr/lazyhr-backend-go/internal/service/auth"
	leaveService "github.com/lazyhr/lazyhr-backend-go/internal/service/leave"
	userService "github.com/lazyhr/lazyhr-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Error loading config: ", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL())
	if err != nil {
		log.Fatal("Error connecting to database: ", err)
	}
	defer db.Close()

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Fatal("Error loading timezone: ", err)
	}
	clk := clock.New(loc)

	userRepo := postgresql.NewUserRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	hub := sse.NewHub()

	userSvc := userService.NewService(userRepo, clk)
	authSvc := authService.NewService(userRepo, jwtService)
	leaveSvc := leaveService.NewService(leaveRequestRepo, userRepo, clk, cfg.App.OpTimeout).
		WithNotifier(appHTTP.NewLeaveNotifier(hub))
	balanceCalc := leaveService.NewBalanceCalculator(leaveRequestRepo, userRepo, clk)
	attendanceSvc := attendanceService.NewService(attendanceRepo, userRepo, clk, cfg.App.OpTimeout)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("refresh-metrics", time.Minute, cron.MetricsRefreshJob(leaveSvc, attendanceSvc))
	scheduler.Start()
	defer scheduler.Stop()

	if cfg.App.SeedSampleData {
		if err := fixtures.SeedSampleUsers(ctx, userSvc); err != nil {
			log.Fatal("Error seeding sample data: ", err)
		}
	}

	authHandler := appHTTP.NewAuthHandler(jwtService, authSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc, balanceCalc)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	eventsHandler := appHTTP.NewEventsHandler(hub)

	router := appHTTP.NewRouter(
		jwtService,
		cfg.App.Env,
		authHandler,
		userHandler,
		leaveHandler,
		attendanceHandler,
		eventsHandler,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
