package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

// RouterOptions carries the settings the router needs from config.
type RouterOptions struct {
	FrontendURL string
	LogLevel    slog.Level
}

func NewRouter(
	logger *slog.Logger,
	opts RouterOptions,
	attendanceHandler AttendanceHandler,
	departmentHandler DepartmentHandler,
	employeeHandler EmployeeHandler,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{opts.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  opts.LogLevel,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/attendance", func(r chi.Router) {
			r.Post("/clock-in", attendanceHandler.ClockIn)
			r.Put("/clock-out", attendanceHandler.ClockOut)
			r.Post("/manual-entry", attendanceHandler.ManualEntry)
		})

		r.Route("/attendance-log", func(r chi.Router) {
			r.Get("/", attendanceHandler.Log)
			r.Get("/export", attendanceHandler.ExportLog)
		})

		r.Route("/departments", func(r chi.Router) {
			r.Get("/", departmentHandler.List)
			r.Post("/", departmentHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", departmentHandler.Get)
				r.Put("/", departmentHandler.Update)
				r.Delete("/", departmentHandler.Delete)
			})
		})

		r.Route("/employees", func(r chi.Router) {
			r.Get("/", employeeHandler.ListEmployees)
			r.Post("/", employeeHandler.CreateEmployee)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", employeeHandler.GetEmployee)
				r.Put("/", employeeHandler.UpdateEmployee)
				r.Delete("/", employeeHandler.DeleteEmployee)
				r.Get("/latest-attendance", attendanceHandler.GetLatest)
				r.Get("/attendance-status", attendanceHandler.GetStatus)
			})
		})
	})
	return r
}

// NewLogger builds the ECS-formatted JSON logger shared by the request
// logger and slog.Default.
func NewLogger(env string, level slog.Level) *slog.Logger {
	logFormat := httplog.SchemaECS.Concise(env != "production")
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "presence-backend"),
		slog.String("env", env),
	)
}
