package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/meetdesk/dashboard/internal/api/handler"
	"github.com/meetdesk/dashboard/internal/api/middleware"
	"github.com/meetdesk/dashboard/internal/core/domain"
	"github.com/meetdesk/dashboard/internal/core/ports"
)

// Dependencies are the services the HTTP surface is built on.
type Dependencies struct {
	Auth          ports.AuthService
	Clients       middleware.ClientOpener
	Meetings      ports.MeetingService
	Users         ports.UserService
	Files         ports.FileService
	Reports       ports.ReportService
	Notifications ports.NotificationPublisher
	Logger        zerolog.Logger
	SecureCookies bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddleware("meetdesk"))

	clientMW := middleware.Client(deps.Clients, deps.SecureCookies)
	guardMW := middleware.Guard()
	authMW := middleware.Auth(deps.Auth)
	perm := func(p ...domain.Permission) []echo.MiddlewareFunc {
		return []echo.MiddlewareFunc{authMW, middleware.RequirePermissions(p...)}
	}

	authHandler := handler.NewAuthHandler(deps.Auth)
	settingsHandler := handler.NewSettingsHandler()
	notificationHandler := handler.NewNotificationHandler(deps.Notifications)
	pageHandler := handler.NewPageHandler(deps.Meetings, deps.Users, deps.Files, deps.Reports)
	meetingHandler := handler.NewMeetingHandler(deps.Meetings)
	userHandler := handler.NewUserHandler(deps.Users)
	fileHandler := handler.NewFileHandler(deps.Files)
	reportHandler := handler.NewReportHandler(deps.Reports)

	// --- Client session, settings and notifications ---
	e.POST("/auth/login", authHandler.Login, clientMW)
	e.POST("/auth/logout", authHandler.Logout, clientMW)
	e.GET("/auth/session", authHandler.Session, clientMW)
	e.GET("/navigate", authHandler.Navigate, clientMW)

	e.GET("/settings", settingsHandler.Get, clientMW)
	e.PUT("/settings", settingsHandler.Update, clientMW)

	e.GET("/notifications", notificationHandler.List, clientMW)
	e.POST("/notifications/read-all", notificationHandler.MarkAllRead, clientMW)
	e.POST("/notifications/:id/read", notificationHandler.MarkRead, clientMW)
	e.DELETE("/notifications/:id", notificationHandler.Remove, clientMW)

	// --- Pages (route guard) ---
	e.GET("/login", pageHandler.Login, clientMW, guardMW)
	e.GET("/", pageHandler.Dashboard, clientMW, guardMW)
	e.GET("/calendar", pageHandler.Calendar, clientMW, guardMW)
	e.GET("/meetings", pageHandler.Meetings, clientMW, guardMW)
	e.GET("/meetings/:id", pageHandler.MeetingDetail, clientMW, guardMW)
	e.GET("/users", pageHandler.Users, clientMW, guardMW)
	e.GET("/users/:id", pageHandler.UserDetail, clientMW, guardMW)
	e.GET("/reports", pageHandler.Reports, clientMW, guardMW)
	e.GET("/files", pageHandler.Files, clientMW, guardMW)
	e.GET("/files/:id", pageHandler.FileDetail, clientMW, guardMW)
	e.GET("/profile", pageHandler.Profile, clientMW, guardMW)
	e.GET("/404", pageHandler.NotFound, clientMW, guardMW)
	e.GET("/*", pageHandler.NotFound, clientMW, guardMW)

	// --- Data API (bearer token) ---
	v1 := e.Group("/api/v1")
	v1.POST("/auth/token", authHandler.Token)

	v1.GET("/meetings", meetingHandler.List, perm(domain.PermManageMeetings)...)
	v1.POST("/meetings", meetingHandler.Create, perm(domain.PermManageMeetings)...)
	v1.GET("/meetings/:id", meetingHandler.Get, perm(domain.PermManageMeetings)...)
	v1.PATCH("/meetings/:id/status", meetingHandler.UpdateStatus, perm(domain.PermManageMeetings)...)
	v1.POST("/meetings/:id/resolutions", meetingHandler.AddResolution, perm(domain.PermManageMeetings)...)
	v1.PATCH("/meetings/:id/resolutions/:rid", meetingHandler.SetResolutionStatus, perm(domain.PermManageMeetings)...)
	v1.PUT("/meetings/:id/participants/:uid", meetingHandler.SetAttendance, perm(domain.PermManageMeetings)...)

	v1.GET("/users", userHandler.List, perm(domain.PermManageUsers)...)
	v1.GET("/users/:id", userHandler.Get, perm(domain.PermManageUsers)...)

	v1.GET("/files", fileHandler.List, perm(domain.PermManageFiles)...)
	v1.GET("/files/:id", fileHandler.Get, perm(domain.PermManageFiles)...)

	v1.GET("/reports", reportHandler.Get, perm(domain.PermViewReports)...)

	v1.POST("/notifications", notificationHandler.Send, perm(domain.PermManageUsers)...)

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
