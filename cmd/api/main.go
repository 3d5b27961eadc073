package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/clinicware/admin-api/internal/config"
	apptHandler "github.com/clinicware/admin-api/internal/handler/appointment"
	authHandler "github.com/clinicware/admin-api/internal/handler/auth"
	clinicalHandler "github.com/clinicware/admin-api/internal/handler/clinical"
	healthHandler "github.com/clinicware/admin-api/internal/handler/health"
	patientHandler "github.com/clinicware/admin-api/internal/handler/patient"
	paymentHandler "github.com/clinicware/admin-api/internal/handler/payment"
	pharmacyHandler "github.com/clinicware/admin-api/internal/handler/pharmacy"
	reportHandler "github.com/clinicware/admin-api/internal/handler/report"
	userHandler "github.com/clinicware/admin-api/internal/handler/user"
	"github.com/clinicware/admin-api/internal/middleware"
	"github.com/clinicware/admin-api/internal/repository/postgres"
	"github.com/clinicware/admin-api/internal/router"
	apptService "github.com/clinicware/admin-api/internal/service/appointment"
	authService "github.com/clinicware/admin-api/internal/service/auth"
	clinicalService "github.com/clinicware/admin-api/internal/service/clinical"
	"github.com/clinicware/admin-api/internal/service/event"
	patientService "github.com/clinicware/admin-api/internal/service/patient"
	paymentService "github.com/clinicware/admin-api/internal/service/payment"
	pharmacyService "github.com/clinicware/admin-api/internal/service/pharmacy"
	reportService "github.com/clinicware/admin-api/internal/service/report"
	userService "github.com/clinicware/admin-api/internal/service/user"
	"github.com/clinicware/admin-api/pkg/auth"
	"github.com/clinicware/admin-api/pkg/security"
	"github.com/clinicware/admin-api/pkg/validator"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	if cfg.Logging.Pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	}

	db, err := postgres.NewDB(cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer db.Close()

	apptRepo := postgres.NewAppointmentRepository(db)
	paymentRepo := postgres.NewPaymentRepository(db)
	patientRepo := postgres.NewPatientRepository(db)
	userRepo := postgres.NewUserRepository(db)
	roleRepo := postgres.NewRoleRepository(db)
	treatmentRepo := postgres.NewTreatmentRepository(db)
	prescriptionRepo := postgres.NewPrescriptionRepository(db)
	medicineRepo := postgres.NewMedicineRepository(db)
	medicineTypeRepo := postgres.NewMedicineTypeRepository(db)
	manufacturerRepo := postgres.NewManufacturerRepository(db)
	customerRepo := postgres.NewPharmacyCustomerRepository(db)
	saleRepo := postgres.NewPharmacySaleRepository(db)
	outboxRepo := postgres.NewOutboxRepository(db)

	jwtSvc := auth.NewJWTService(cfg.JWT.Secret, time.Duration(cfg.JWT.ExpiryHours)*time.Hour)
	hasher := security.NewBcryptHasher(0)
	emitter := event.NewService(outboxRepo)

	apptSvc := apptService.NewService(apptRepo, patientRepo, userRepo, emitter)
	paymentSvc := paymentService.NewService(paymentRepo, apptRepo, emitter)
	patientSvc := patientService.NewService(patientRepo)
	clinicalSvc := clinicalService.NewService(treatmentRepo, prescriptionRepo, apptRepo, medicineRepo, emitter)
	userSvc := userService.NewService(userRepo, roleRepo, hasher)
	authSvc := authService.NewService(userRepo, jwtSvc, hasher)
	pharmacySvc := pharmacyService.NewService(medicineRepo, medicineTypeRepo, manufacturerRepo, customerRepo, saleRepo, emitter)
	reportSvc := reportService.NewService(patientRepo, apptRepo, paymentRepo, saleRepo, medicineRepo)

	v := validator.New()
	handlers := router.Handlers{
		Auth:        authHandler.NewHandler(authSvc, v),
		Appointment: apptHandler.NewHandler(apptSvc, v),
		Payment:     paymentHandler.NewHandler(paymentSvc, v),
		Patient:     patientHandler.NewHandler(patientSvc, v),
		Clinical:    clinicalHandler.NewHandler(clinicalSvc, v),
		Pharmacy:    pharmacyHandler.NewHandler(pharmacySvc, v),
		Report:      reportHandler.NewHandler(reportSvc, v),
		User:        userHandler.NewHandler(userSvc, v),
		Health:      healthHandler.NewHandler(db),
	}

	routerCfg := router.DefaultConfig()
	routerCfg.RequestTimeout = cfg.Server.RequestTimeout
	if len(cfg.Server.AllowedOrigins) > 0 {
		routerCfg.CORS.AllowOrigins = cfg.Server.AllowedOrigins
	}

	r := router.New(middleware.NewAuthMiddleware(jwtSvc), handlers, routerCfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r.Engine(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
