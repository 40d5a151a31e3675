package main

import (
	"os"

	"shiftboard/cmd/internal/auth"
	"shiftboard/cmd/internal/domain/sqlite"
	"shiftboard/cmd/internal/domain/sqlite/repository"
	cognitoclient "shiftboard/cmd/internal/integration/aws/cognito"
	"shiftboard/cmd/internal/integration/mail"
	"shiftboard/cmd/internal/routes"
	"shiftboard/cmd/internal/service"
	"shiftboard/cmd/internal/utils/validators"
	"shiftboard/cmd/internal/view"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
)

func main() {
	validate := validator.New()
	registerValidators(validate)

	err := godotenv.Load()
	if err != nil {
		log.Fatal("failed to load .env file", err)
	}

	// Init SQLite
	db, err := sqlite.Init(envOr("DB_PATH", "./shiftboard.db"))
	if err != nil {
		log.Fatal("failed to initialize database", err)
	}

	// Cognito client
	cogClient, err := cognitoclient.InitCognitoClient()
	if err != nil {
		log.Fatal("failed to initialize cognito client", err)
	}

	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		log.Fatal("SESSION_SECRET is not set")
	}

	mailer := mail.NewResendSender(os.Getenv("RESEND_API_KEY"), os.Getenv("MAIL_FROM"))
	sessions := auth.NewSessions(secret)

	// Getting repositories
	profileRepo := repository.NewProfileRepository(db)
	schedRepo := repository.NewScheduleRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Getting services
	schedService := service.NewScheduleService(schedRepo, reportRepo, validate)
	reportService := service.NewReportService(reportRepo)
	memberService := service.NewMemberService(profileRepo, service.AllowAllDirectory{}, cogClient, mailer, validate, envOr("BASE_URL", "http://localhost:6060"))
	authService := service.NewAuthService(profileRepo, cogClient, sessions)

	// Getting routes
	schedRoutes := routes.NewScheduleDefault(schedService)
	reportRoutes := routes.NewReportDefault(reportService)
	memberRoutes := routes.NewMemberDefault(memberService)
	authRoutes := routes.NewAuthDefault(authService, sessions)

	renderer, err := view.NewRenderer()
	if err != nil {
		log.Fatal("failed to parse templates", err)
	}

	guard := auth.NewGuard(sessions, profileRepo)

	e := echo.New()
	e.Renderer = renderer
	e.Use(middleware.CSRFWithConfig(middleware.CSRFConfig{
		TokenLookup: "form:csrf",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/auth/callback"
		},
	}))

	// Auth
	e.GET("/login", authRoutes.GetLoginPage)
	e.GET("/auth/callback", authRoutes.GetCallback)
	e.POST("/logout", authRoutes.PostLogout)

	// Schedule
	e.GET("/", schedRoutes.GetSchedulePage, guard.WithProfile)
	e.POST("/", schedRoutes.PostSchedulePage, guard.WithProfile)

	// Reports (admin)
	e.GET("/reports", reportRoutes.GetReportsPage, guard.WithProfile, guard.RequireAdmin)

	// Members (admin)
	e.GET("/members", memberRoutes.GetMembersPage, guard.WithProfile, guard.RequireAdmin)
	e.POST("/members", memberRoutes.PostMembersPage, guard.WithProfile, guard.RequireAdmin)

	err = e.Start(envOr("ADDR", ":6060"))
	if err != nil {
		e.Logger.Fatal(err)
	}
}

func registerValidators(validate *validator.Validate) {
	_ = validate.RegisterValidation("iso8601", validators.IsIso8601)
}

func envOr(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}
