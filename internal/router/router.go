package router

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/clinicware/admin-api/internal/handler/appointment"
	"github.com/clinicware/admin-api/internal/handler/auth"
	"github.com/clinicware/admin-api/internal/handler/clinical"
	"github.com/clinicware/admin-api/internal/handler/health"
	"github.com/clinicware/admin-api/internal/handler/patient"
	"github.com/clinicware/admin-api/internal/handler/payment"
	"github.com/clinicware/admin-api/internal/handler/pharmacy"
	"github.com/clinicware/admin-api/internal/handler/report"
	"github.com/clinicware/admin-api/internal/handler/user"
	"github.com/clinicware/admin-api/internal/middleware"
)

// Handlers collects every HTTP handler the router mounts.
type Handlers struct {
	Auth        *auth.Handler
	Appointment *appointment.Handler
	Payment     *payment.Handler
	Patient     *patient.Handler
	Clinical    *clinical.Handler
	Pharmacy    *pharmacy.Handler
	Report      *report.Handler
	User        *user.Handler
	Health      *health.Handler
}

type Config struct {
	RateLimitRPS   float64
	RateLimitBurst int
	RequestTimeout time.Duration
	CORS           middleware.CORSConfig
	ReportCacheTTL time.Duration
}

func DefaultConfig() Config {
	return Config{
		RateLimitRPS:   50,
		RateLimitBurst: 100,
		RequestTimeout: 30 * time.Second,
		CORS:           middleware.DefaultCORSConfig(),
		ReportCacheTTL: time.Minute,
	}
}

type Router struct {
	engine  *gin.Engine
	metrics *routerMetrics
}

type routerMetrics struct {
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
}

func newRouterMetrics() *routerMetrics {
	return &routerMetrics{
		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests served",
		}, []string{"method", "path", "status"}),
	}
}

func (m *routerMetrics) instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.requestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		m.requestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

func New(authMW *middleware.AuthMiddleware, h Handlers, config Config) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	metrics := newRouterMetrics()
	limiter := middleware.NewRateLimiter(config.RateLimitRPS, config.RateLimitBurst)
	reportCache := middleware.NewResponseCache(config.ReportCacheTTL, 5*time.Minute)

	engine.Use(
		middleware.RequestID(),
		middleware.APIVersion("1.0"),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.CORS(config.CORS),
		middleware.Timeout(config.RequestTimeout),
		limiter.RateLimit(),
		metrics.instrument(),
	)

	engine.GET("/health/live", h.Health.Live)
	engine.GET("/health/ready", h.Health.Ready)
	engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := engine.Group("/api/v1")

	api.POST("/auth/login", h.Auth.Login)

	authed := api.Group("")
	authed.Use(authMW.Authenticate())
	{
		authed.GET("/auth/me", h.Auth.Me)

		authed.POST("/appointments", h.Appointment.Create)
		authed.GET("/appointments", h.Appointment.List)
		authed.GET("/appointments/types", h.Appointment.AllowedTypes)
		authed.GET("/appointments/:id", h.Appointment.Get)
		authed.PUT("/appointments/:id", h.Appointment.Update)
		authed.POST("/appointments/:id/transition", h.Appointment.Transition)
		authed.GET("/appointments/:id/payments", h.Payment.ListByAppointment)
		authed.GET("/appointments/:id/payments/summary", h.Payment.Summary)
		authed.GET("/appointments/:id/treatments", h.Clinical.ListTreatmentsByAppointment)
		authed.GET("/appointments/:id/prescriptions", h.Clinical.ListPrescriptionsByAppointment)

		authed.POST("/payments", h.Payment.Record)

		authed.POST("/patients", h.Patient.Create)
		authed.GET("/patients", h.Patient.List)
		authed.GET("/patients/:id", h.Patient.Get)
		authed.PUT("/patients/:id", h.Patient.Update)
		authed.DELETE("/patients/:id", authMW.RequireRole("admin"), h.Patient.Delete)
		authed.GET("/patients/:id/payments", h.Payment.ListByPatient)
		authed.GET("/patients/:id/treatments", h.Clinical.ListTreatmentsByPatient)
		authed.GET("/patients/:id/prescriptions", h.Clinical.ListPrescriptionsByPatient)

		authed.POST("/treatments", h.Clinical.CreateTreatment)
		authed.POST("/prescriptions", h.Clinical.CreatePrescription)
		authed.GET("/prescriptions/:id", h.Clinical.GetPrescription)

		authed.POST("/medicines", h.Pharmacy.CreateMedicine)
		authed.GET("/medicines", h.Pharmacy.ListMedicines)
		authed.GET("/medicines/:id", h.Pharmacy.GetMedicine)
		authed.PUT("/medicines/:id", h.Pharmacy.UpdateMedicine)
		authed.DELETE("/medicines/:id", authMW.RequireRole("admin"), h.Pharmacy.DeleteMedicine)

		authed.GET("/medicine-types", h.Pharmacy.ListMedicineTypes)
		authed.POST("/medicine-types", h.Pharmacy.CreateMedicineType)
		authed.PUT("/medicine-types/:id", h.Pharmacy.UpdateMedicineType)
		authed.DELETE("/medicine-types/:id", authMW.RequireRole("admin"), h.Pharmacy.DeleteMedicineType)

		authed.GET("/manufacturers", h.Pharmacy.ListManufacturers)
		authed.POST("/manufacturers", h.Pharmacy.CreateManufacturer)
		authed.PUT("/manufacturers/:id", h.Pharmacy.UpdateManufacturer)
		authed.DELETE("/manufacturers/:id", authMW.RequireRole("admin"), h.Pharmacy.DeleteManufacturer)

		authed.POST("/pharmacy/customers", h.Pharmacy.CreateCustomer)
		authed.GET("/pharmacy/customers", h.Pharmacy.ListCustomers)
		authed.GET("/pharmacy/customers/lookup", h.Pharmacy.GetCustomerByPhone)
		authed.POST("/pharmacy/sales", h.Pharmacy.CreateSale)
		authed.GET("/pharmacy/sales", h.Pharmacy.ListSales)
		authed.GET("/pharmacy/sales/:id", h.Pharmacy.GetSale)

		reports := authed.Group("/reports")
		reports.Use(reportCache.Cache())
		{
			reports.GET("/patients", h.Report.PatientStatistics)
			reports.GET("/appointments", h.Report.AppointmentStatistics)
			reports.GET("/financial", h.Report.FinancialStatistics)
			reports.GET("/pharmacy", h.Report.PharmacyStatistics)
		}
		authed.GET("/dashboard", h.Report.Dashboard)

		admin := authed.Group("", authMW.RequireRole("admin"))
		{
			admin.POST("/users", h.User.Create)
			admin.GET("/users", h.User.List)
			admin.GET("/users/:id", h.User.Get)
			admin.PUT("/users/:id", h.User.Update)
			admin.DELETE("/users/:id", h.User.Delete)

			admin.POST("/roles", h.User.CreateRole)
			admin.GET("/roles", h.User.ListRoles)
			admin.GET("/roles/:id", h.User.GetRole)
			admin.PUT("/roles/:id", h.User.UpdateRole)
			admin.DELETE("/roles/:id", h.User.DeleteRole)
		}
	}

	return &Router{engine: engine, metrics: metrics}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) Run(port int) error {
	return r.engine.Run(fmt.Sprintf(":%d", port))
}
