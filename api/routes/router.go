package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/partsdesk/partsdesk-backend/api/controllers"
	"github.com/partsdesk/partsdesk-backend/api/middleware"
	"github.com/partsdesk/partsdesk-backend/internal/actions"
	"github.com/partsdesk/partsdesk-backend/internal/analytics"
	"github.com/partsdesk/partsdesk-backend/internal/attachments"
	"github.com/partsdesk/partsdesk-backend/internal/auth"
	"github.com/partsdesk/partsdesk-backend/internal/companies"
	"github.com/partsdesk/partsdesk-backend/internal/complaints"
	"github.com/partsdesk/partsdesk-backend/internal/parts"
	"github.com/partsdesk/partsdesk-backend/internal/responsibles"
	"github.com/partsdesk/partsdesk-backend/internal/settings"
	"github.com/partsdesk/partsdesk-backend/pkg/auth/session"
	"github.com/partsdesk/partsdesk-backend/pkg/config"
	"github.com/partsdesk/partsdesk-backend/pkg/db"
	"github.com/partsdesk/partsdesk-backend/pkg/logger"
	"github.com/partsdesk/partsdesk-backend/pkg/metrics"
	"github.com/partsdesk/partsdesk-backend/pkg/redis"
)

// Services bundles every domain service the router exposes.
type Services struct {
	Auth         auth.Service
	Companies    companies.Service
	Parts        parts.Service
	Complaints   complaints.Service
	Attachments  attachments.Service
	Actions      actions.Service
	Responsibles responsibles.Service
	Settings     settings.Service
	Analytics    analytics.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	sessionChecker session.AccessSessionChecker,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, redisClient))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.With(
			middleware.AuthRateLimit(registerPolicy, redisClient, logg),
			middleware.Idempotency(redisClient, logg),
		).Post("/register", controllers.AuthRegister(svcs.Auth, logg))
		r.Post("/refresh", controllers.AuthRefresh(svcs.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(svcs.Auth, logg))
		r.With(middleware.Auth(cfg.JWT, sessionChecker, logg)).Get("/me", controllers.AuthMe(svcs.Auth, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, sessionChecker, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Route("/companies", func(r chi.Router) {
			r.Post("/", controllers.CompanyCreate(svcs.Companies, logg))
			r.Get("/", controllers.CompanySearch(svcs.Companies, logg))
			r.Get("/all", controllers.CompanyListAll(svcs.Companies, logg))
		})

		r.Route("/parts", func(r chi.Router) {
			r.Post("/", controllers.PartCreate(svcs.Parts, logg))
			r.Get("/", controllers.PartSearch(svcs.Parts, logg))
			r.Get("/all", controllers.PartListAll(svcs.Parts, logg))
		})

		r.Route("/complaints", func(r chi.Router) {
			r.Post("/", controllers.ComplaintCreate(svcs.Complaints, logg))
			r.Get("/", controllers.ComplaintList(svcs.Complaints, logg))

			r.Route("/{complaintId}", func(r chi.Router) {
				r.Get("/", controllers.ComplaintDetail(svcs.Complaints, logg))
				r.Put("/", controllers.ComplaintUpdate(svcs.Complaints, logg))

				r.Route("/attachments", func(r chi.Router) {
					r.Post("/", controllers.AttachmentUpload(svcs.Attachments, cfg.Uploads.MaxUploadBytes(), logg))
					r.Get("/", controllers.AttachmentList(svcs.Attachments, logg))
				})

				r.Route("/actions", func(r chi.Router) {
					r.Post("/", controllers.ActionCreate(svcs.Actions, logg))
					r.Get("/", controllers.ActionList(svcs.Actions, logg))
					r.Get("/metrics", controllers.ActionMetrics(svcs.Actions, logg))
					r.Patch("/bulk-update", controllers.ActionBulkUpdate(svcs.Actions, logg))

					r.Route("/{actionId}", func(r chi.Router) {
						r.Get("/", controllers.ActionDetail(svcs.Actions, logg))
						r.Put("/", controllers.ActionUpdate(svcs.Actions, logg))
						r.Delete("/", controllers.ActionCancel(svcs.Actions, logg))
						r.Post("/start", controllers.ActionStart(svcs.Actions, logg))
						r.Post("/reorder", controllers.ActionReorder(svcs.Actions, logg))
						r.Get("/history", controllers.ActionHistoryList(svcs.Actions, logg))
						r.Post("/dependencies", controllers.ActionDependencyCreate(svcs.Actions, logg))
						r.Get("/dependencies", controllers.ActionDependencyList(svcs.Actions, logg))
					})
				})
			})

			r.Route("/attachments/{attachmentId}", func(r chi.Router) {
				r.Get("/", controllers.AttachmentDownload(svcs.Attachments, logg))
				r.Delete("/", controllers.AttachmentDelete(svcs.Attachments, logg))
			})
		})

		r.Route("/responsible-persons", func(r chi.Router) {
			admin := middleware.RequireRole("admin", logg)
			r.Get("/", controllers.ResponsiblePersonList(svcs.Responsibles, logg))
			r.With(admin).Post("/", controllers.ResponsiblePersonCreate(svcs.Responsibles, logg))
			r.With(admin).Put("/{personId}", controllers.ResponsiblePersonUpdate(svcs.Responsibles, logg))
			r.With(admin).Delete("/{personId}", controllers.ResponsiblePersonDeactivate(svcs.Responsibles, logg))
		})

		r.Route("/settings/app", func(r chi.Router) {
			r.Get("/", controllers.SettingsGet(svcs.Settings, logg))
			r.With(middleware.RequireRole("admin", logg)).Put("/", controllers.SettingsPut(svcs.Settings, logg))
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/rar-metrics", controllers.AnalyticsRARMetrics(svcs.Analytics, logg))
			r.Get("/failure-modes", controllers.AnalyticsFailureModes(svcs.Analytics, logg))
			r.Get("/trends", controllers.AnalyticsTrends(svcs.Analytics, logg))
			r.Get("/resolution-time", controllers.AnalyticsResolutionTime(svcs.Analytics, logg))
		})
	})

	return r
}
