package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lazyhr/lazyhr-backend-go/internal/handler/http/middleware"
	"github.com/lazyhr/lazyhr-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	env string,
	authHandler AuthHandler,
	userHandler UserHandler,
	leaveHandler LeaveHandler,
	attendanceHandler AttendanceHandler,
	eventsHandler EventsHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "lazyhr-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Get("/events", eventsHandler.Stream)

			r.Route("/users", func(r chi.Router) {
				r.Get("/me", userHandler.Me)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", userHandler.List)
					r.Post("/", userHandler.Create)
					r.Post("/{id}/deactivate", userHandler.Deactivate)
					r.Post("/{id}/activate", userHandler.Activate)
				})

				r.Get("/{id}", userHandler.Get)
				r.Get("/{id}/leave-requests", leaveHandler.UserRequests)
				r.Get("/{id}/leave-balance", leaveHandler.UserBalance)
			})

			r.Route("/leave-requests", func(r chi.Router) {
				r.Post("/", leaveHandler.Apply)
				r.Get("/my", leaveHandler.MyRequests)
				r.Get("/my/balance", leaveHandler.MyBalance)
				r.Get("/at", leaveHandler.ForTimestamp)
				r.Get("/{id}", leaveHandler.Get)
				r.Delete("/{id}", leaveHandler.Cancel)

				// Approvers only
				r.Group(func(r chi.Router) {
					r.Use(middleware.ApproverOnly)
					r.Get("/pending", leaveHandler.Pending)
					r.Get("/pending/count", leaveHandler.PendingCount)
					r.Get("/status/{status}", leaveHandler.ByStatus)
					r.Post("/{id}/approve", leaveHandler.Approve)
					r.Post("/{id}/reject", leaveHandler.Reject)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/clock-in", attendanceHandler.ClockIn)
				r.Post("/clock-out", attendanceHandler.ClockOut)
				r.Get("/today", attendanceHandler.Today)
				r.Get("/today/sessions", attendanceHandler.TodaySessions)
				r.Get("/active", attendanceHandler.Active)
				r.Get("/status", attendanceHandler.Status)
				r.Get("/history", attendanceHandler.History)
				r.Get("/range", attendanceHandler.Range)
				r.Get("/overtime", attendanceHandler.Overtime)

				// Approvers only
				r.Group(func(r chi.Router) {
					r.Use(middleware.ApproverOnly)
					r.Get("/today/all", attendanceHandler.TodayAll)
					r.Get("/today/count", attendanceHandler.ClockedInCount)
					r.Put("/{id}/break", attendanceHandler.UpdateBreak)
					r.Put("/{id}/notes", attendanceHandler.UpdateNotes)
					r.Post("/{id}/mark-late", attendanceHandler.MarkLate)
					r.Post("/{id}/mark-half-day", attendanceHandler.MarkHalfDay)
				})
			})
		})
	})
	return r
}
