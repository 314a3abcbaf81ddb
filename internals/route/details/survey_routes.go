package details

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"surveyhub_backend/internals/configs"
	dashboardRoute "surveyhub_backend/internals/features/surveys/dashboards/route"
	responseRoute "surveyhub_backend/internals/features/surveys/responses/route"
	surveyRoute "surveyhub_backend/internals/features/surveys/survey/route"
	surveyService "surveyhub_backend/internals/features/surveys/survey/service"
	templateRoute "surveyhub_backend/internals/features/surveys/templates/route"
	"surveyhub_backend/internals/helpers/mailer"
)

func SurveyRoutes(private fiber.Router, db *gorm.DB, cfg *configs.Config) {
	notify := surveyService.Notifier{
		DB:          db,
		Mail:        mailer.New(cfg.SendgridAPIKey, cfg.AppName, cfg.MailFrom, cfg.MailFromName),
		FrontendURL: cfg.FrontendURL,
		Timeout:     30 * time.Second,
	}

	surveyRoute.SurveyRoutes(private, db, notify)
	responseRoute.ResponseRoutes(private, db)
	templateRoute.TemplateRoutes(private, db)
	dashboardRoute.DashboardRoutes(private, db)
}
