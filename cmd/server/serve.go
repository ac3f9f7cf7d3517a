package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"property-backend/internal/auth"
	"property-backend/internal/cache"
	"property-backend/internal/database"
	"property-backend/internal/handlers"
	"property-backend/internal/health"
	apphttp "property-backend/internal/http"
	"property-backend/internal/jobs"
	"property-backend/internal/middleware"
	"property-backend/internal/repositories"
	"property-backend/internal/services"
	"property-backend/migrations"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the scheduled alert sweep",
		RunE:  runServe,
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.shutdown()
	log := a.log

	applied, err := database.NewMigrator(a.pool, migrations.FS, log.Named("migrate")).RunMigrations(ctx)
	if err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	log.Info("migrations checked", zap.Int("applied", applied))

	// Repositories
	userRepo := repositories.NewUserRepository(a.pool)
	propertyRepo := repositories.NewPropertyRepository(a.pool)
	tenantRepo := repositories.NewTenantRepository(a.pool)
	rentalRepo := repositories.NewRentalRepository(a.pool)
	paymentRepo := repositories.NewPaymentRepository(a.pool)
	obligationRepo := repositories.NewObligationRepository(a.pool)
	repairRepo := repositories.NewRepairRepository(a.pool)
	dashboardRepo := repositories.NewDashboardRepository(a.pool)
	detailsRepo := repositories.NewPropertyDetailsRepository(a.pool)
	lawRepo := repositories.NewPropertyLawRepository(a.pool)
	enserRepo := repositories.NewEnserRepository(a.pool)
	termsRepo := repositories.NewRentalTermsRepository(a.pool)
	typeRepo := repositories.NewObligationTypeRepository(a.pool)
	revokedRepo := repositories.NewRevokedTokenRepository(a.pool)

	// Services
	jwtManager := auth.NewJWTManager(a.cfg.JWT.Secret, a.cfg.JWT.Issuer, a.cfg.JWT.ExpirationHours)
	jwtManager.SetRefreshTTL(time.Duration(a.cfg.JWT.RefreshExpirationHours) * time.Hour)
	userService := services.NewUserService(userRepo, tenantRepo, revokedRepo, jwtManager)
	propertyService := services.NewPropertyService(propertyRepo, detailsRepo)
	lawService := services.NewPropertyLawService(lawRepo, propertyRepo)
	enserService := services.NewEnserService(enserRepo, propertyRepo)
	termsService := services.NewRentalTermsService(termsRepo, rentalRepo)
	typeService := services.NewObligationTypeService(typeRepo)
	tenantService := services.NewTenantService(tenantRepo)
	rentalService := services.NewRentalService(a.pool, rentalRepo, propertyRepo, a.guard(), log.Named("rentals"))
	paymentService := services.NewPaymentService(paymentRepo)
	obligationService := services.NewObligationService(obligationRepo, typeRepo)
	repairService := services.NewRepairService(repairRepo)
	dashboardService := services.NewDashboardService(dashboardRepo)
	alertService := a.alertService()

	// Handlers
	var redisPing func(context.Context) error
	if cache.Available() {
		redisPing = cache.Ping
	}
	router := apphttp.NewRouter(apphttp.Handlers{
		Auth:           handlers.NewAuthHandler(userService, log.Named("auth")),
		User:           handlers.NewUserHandler(userService, log),
		Property:       handlers.NewPropertyHandler(propertyService, log),
		Tenant:         handlers.NewTenantHandler(tenantService, log),
		Rental:         handlers.NewRentalHandler(rentalService, paymentService, log),
		Obligation:     handlers.NewObligationHandler(obligationService, paymentService, log),
		PaymentMethod:  handlers.NewPaymentMethodHandler(paymentService, log),
		Repair:         handlers.NewRepairHandler(repairService, log),
		PropertyLaw:    handlers.NewPropertyLawHandler(lawService, log),
		Enser:          handlers.NewEnserHandler(enserService, log),
		RentalTerms:    handlers.NewRentalTermsHandler(termsService, log),
		ObligationType: handlers.NewObligationTypeHandler(typeService, log),
		Dashboard:      handlers.NewDashboardHandler(dashboardService, log),
		Alert:          handlers.NewAlertHandler(alertService, log.Named("alerts")),
		Portal:         handlers.NewPortalHandler(rentalService, paymentService, log),
		Health:         handlers.NewHealthHandler(health.NewHealthChecker(a.pool, redisPing)),
	}, middleware.NewAuthMiddleware(jwtManager, userRepo), log.Named("http"))

	runner := jobs.New(ctx, log.Named("jobs"))
	runner.Every(time.Hour, "revoked_token_purge", userService.PurgeRevokedTokens)
	if a.cfg.Alerts.ScheduleEnabled {
		hour, minute, _ := a.cfg.AlertRunAt()
		runner.DailyAt(hour, minute, "alert_sweep", alertService.ScheduledRun)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:           middleware.NewCORS(a.cfg)(router),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", zap.String("addr", srv.Addr), zap.String("env", a.cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", zap.Error(err))
	}
	stop()
	runner.Wait()
	return nil
}
