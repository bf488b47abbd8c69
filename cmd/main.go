package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	adminLoginHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/admin_login"
	broadcastNotificationHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/broadcast_notification"
	cancelBookingHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/cancel_booking"
	confirmPaymentHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/confirm_payment"
	createAdminHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/create_admin"
	createBankAccountHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/create_bank_account"
	createCheckoutHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/create_checkout"
	createClaimHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/create_claim"
	deactivateAdminHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/deactivate_admin"
	failPaymentHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/fail_payment"
	getBookingHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/get_booking"
	getDefaultBankAccountHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/get_default_bank_account"
	getInsuranceProductHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/get_insurance_product"
	getPaymentHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/get_payment"
	getUserBookingsHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/get_user_bookings"
	getUserClaimsHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/get_user_claims"
	getUserCouponsHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/get_user_coupons"
	getUserPoliciesHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/get_user_policies"
	issueCouponHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/issue_coupon"
	listBankAccountsHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/list_bank_accounts"
	listBookingsHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/list_bookings"
	listClaimsHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/list_claims"
	listKnifeTypesHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/list_knife_types"
	listPaymentsHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/list_payments"
	quoteCheckoutHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/quote_checkout"
	reportDepositHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/report_deposit"
	requestCodeHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/request_code"
	reviewClaimHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/review_claim"
	setDefaultBankAccountHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/set_default_bank_account"
	updateBookingStatusHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/update_booking_status"
	verifyCodeHandler "github.com/m04kA/KS-SharpeningService/internal/api/handlers/verify_code"
	"github.com/m04kA/KS-SharpeningService/internal/api/middleware"
	"github.com/m04kA/KS-SharpeningService/internal/config"
	"github.com/m04kA/KS-SharpeningService/internal/infra/cache"
	"github.com/m04kA/KS-SharpeningService/internal/infra/messaging"
	adminRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/admin"
	bankAccountRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/bankaccount"
	bookingRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/catalog"
	couponRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/coupon"
	insuranceRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/insurance"
	paymentRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/payment"
	userRepo "github.com/m04kA/KS-SharpeningService/internal/infra/storage/user"
	smsClient "github.com/m04kA/KS-SharpeningService/internal/integrations/smsgateway"
	"github.com/m04kA/KS-SharpeningService/internal/jobs"
	adminsService "github.com/m04kA/KS-SharpeningService/internal/service/admins"
	bankAccountsService "github.com/m04kA/KS-SharpeningService/internal/service/bankaccounts"
	bookingsService "github.com/m04kA/KS-SharpeningService/internal/service/bookings"
	catalogService "github.com/m04kA/KS-SharpeningService/internal/service/catalog"
	couponsService "github.com/m04kA/KS-SharpeningService/internal/service/coupons"
	insuranceService "github.com/m04kA/KS-SharpeningService/internal/service/insurance"
	notificationsService "github.com/m04kA/KS-SharpeningService/internal/service/notifications"
	paymentsService "github.com/m04kA/KS-SharpeningService/internal/service/payments"
	usersService "github.com/m04kA/KS-SharpeningService/internal/service/users"
	checkoutUC "github.com/m04kA/KS-SharpeningService/internal/usecase/checkout"
	confirmPaymentUC "github.com/m04kA/KS-SharpeningService/internal/usecase/confirm_payment"
	quoteUC "github.com/m04kA/KS-SharpeningService/internal/usecase/quote"
	"github.com/m04kA/KS-SharpeningService/pkg/dbmetrics"
	"github.com/m04kA/KS-SharpeningService/pkg/logger"
	"github.com/m04kA/KS-SharpeningService/pkg/metrics"
	"github.com/m04kA/KS-SharpeningService/pkg/simpletxmanager"
	"github.com/m04kA/KS-SharpeningService/pkg/txmanager"
)

// systemClock реализует TimeProvider сервисов поверх системного времени
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting KS-SharpeningService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Redis: хранилище кодов подтверждения телефона
	verificationStore, err := cache.NewVerificationStore(cfg.Redis, cfg.Verification)
	if err != nil {
		log.Fatal("Failed to connect to Redis: %v", err)
	}
	defer verificationStore.Close()
	log.Info("Connected to Redis at %s", cfg.Redis.Addr)

	// NATS Streaming: канал событий для сервиса уведомлений
	publisher, err := messaging.NewPublisher(cfg.NATS)
	if err != nil {
		log.Fatal("Failed to connect to NATS: %v", err)
	}
	defer publisher.Close()
	log.Info("Connected to NATS cluster %s, subject=%s", cfg.NATS.ClusterID, cfg.NATS.NotificationsSubject)

	// Клиент SMS-провайдера
	sms := smsClient.NewClient(
		cfg.SMSGateway.URL,
		time.Duration(cfg.SMSGateway.Timeout)*time.Second,
		log,
	)
	log.Info("SMS gateway client initialized (url=%s, timeout=%ds)", cfg.SMSGateway.URL, cfg.SMSGateway.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		bookingRepository     *bookingRepo.Repository
		paymentRepository     *paymentRepo.Repository
		catalogRepository     *catalogRepo.Repository
		couponRepository      *couponRepo.Repository
		insuranceRepository   *insuranceRepo.Repository
		bankAccountRepository *bankAccountRepo.Repository
		adminRepository       *adminRepo.Repository
		userRepository        *userRepo.Repository
	)

	// Интерфейс транзакционного менеджера, общий для сервисов и usecases
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
		DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		paymentRepository = paymentRepo.NewRepository(wrappedDB)
		catalogRepository = catalogRepo.NewRepository(wrappedDB)
		couponRepository = couponRepo.NewRepository(wrappedDB)
		insuranceRepository = insuranceRepo.NewRepository(wrappedDB)
		bankAccountRepository = bankAccountRepo.NewRepository(wrappedDB)
		adminRepository = adminRepo.NewRepository(wrappedDB)
		userRepository = userRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		paymentRepository = paymentRepo.NewRepository(db)
		catalogRepository = catalogRepo.NewRepository(db)
		couponRepository = couponRepo.NewRepository(db)
		insuranceRepository = insuranceRepo.NewRepository(db)
		bankAccountRepository = bankAccountRepo.NewRepository(db)
		adminRepository = adminRepo.NewRepository(db)
		userRepository = userRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	clock := systemClock{}

	// Инициализируем сервисы
	notifier := notificationsService.NewService(publisher, clock, log)

	bookingSvc := bookingsService.NewService(
		bookingRepository,
		paymentRepository,
		txMgr,
		notifier,
		clock,
		log,
	)
	paymentSvc := paymentsService.NewService(
		paymentRepository,
		bookingRepository,
		bankAccountRepository,
		notifier,
		clock,
		log,
	)
	couponSvc := couponsService.NewService(
		couponRepository,
		bookingRepository,
		clock,
		log,
	)
	insuranceSvc := insuranceService.NewService(
		insuranceRepository,
		txMgr,
		clock,
		log,
	)
	bankAccountSvc := bankAccountsService.NewService(
		bankAccountRepository,
		txMgr,
		log,
	)
	adminSvc := adminsService.NewService(
		adminRepository,
		cfg.Auth.JWTSecret,
		time.Duration(cfg.Auth.TokenTTLHours)*time.Hour,
		clock,
		log,
	)
	userSvc := usersService.NewService(
		userRepository,
		verificationStore,
		sms,
		cfg.Verification.CodeTTLSeconds,
		log,
	)
	catalogSvc := catalogService.NewService(catalogRepository, log)

	// Инициализируем use cases
	checkoutUseCase := checkoutUC.NewUseCase(
		bookingRepository,
		paymentRepository,
		catalogRepository,
		couponRepository,
		insuranceRepository,
		txMgr,
		notifier,
		cfg.Payments.DepositDeadlineHours,
		log,
	)
	quoteUseCase := quoteUC.NewUseCase(
		catalogRepository,
		couponRepository,
		insuranceRepository,
		log,
	)
	confirmPaymentUseCase := confirmPaymentUC.NewUseCase(
		paymentRepository,
		bookingRepository,
		txMgr,
		notifier,
		cfg.Payments.AutoConfirmBooking,
		log,
	)

	// Фоновая просрочка неоплаченных платежей
	expirationJob := jobs.NewPaymentExpirationJob(
		paymentRepository,
		notifier,
		time.Duration(cfg.Payments.ExpirationSweepSeconds)*time.Second,
		log,
	)
	expirationJob.Start(context.Background())
	defer expirationJob.Stop()

	// Инициализируем handlers
	quoteCheckout := quoteCheckoutHandler.NewHandler(quoteUseCase, log)
	createCheckout := createCheckoutHandler.NewHandler(checkoutUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	getPayment := getPaymentHandler.NewHandler(paymentSvc, log)
	reportDeposit := reportDepositHandler.NewHandler(paymentSvc, log)
	getUserCoupons := getUserCouponsHandler.NewHandler(couponSvc, log)
	getDefaultBankAccount := getDefaultBankAccountHandler.NewHandler(bankAccountSvc, log)
	getInsuranceProduct := getInsuranceProductHandler.NewHandler(insuranceSvc, log)
	getUserPolicies := getUserPoliciesHandler.NewHandler(insuranceSvc, log)
	getUserClaims := getUserClaimsHandler.NewHandler(insuranceSvc, log)
	createClaim := createClaimHandler.NewHandler(insuranceSvc, log)
	listKnifeTypes := listKnifeTypesHandler.NewHandler(catalogSvc, log)
	requestCode := requestCodeHandler.NewHandler(userSvc, log)
	verifyCode := verifyCodeHandler.NewHandler(userSvc, log)

	adminLogin := adminLoginHandler.NewHandler(adminSvc, log)
	createAdmin := createAdminHandler.NewHandler(adminSvc, log)
	deactivateAdmin := deactivateAdminHandler.NewHandler(adminSvc, log)
	listBookings := listBookingsHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	confirmPayment := confirmPaymentHandler.NewHandler(confirmPaymentUseCase, log)
	failPayment := failPaymentHandler.NewHandler(paymentSvc, log)
	listPayments := listPaymentsHandler.NewHandler(paymentSvc, log)
	issueCoupon := issueCouponHandler.NewHandler(couponSvc, log)
	listBankAccounts := listBankAccountsHandler.NewHandler(bankAccountSvc, log)
	createBankAccount := createBankAccountHandler.NewHandler(bankAccountSvc, log)
	setDefaultBankAccount := setDefaultBankAccountHandler.NewHandler(bankAccountSvc, log)
	listClaims := listClaimsHandler.NewHandler(insuranceSvc, log)
	reviewClaim := reviewClaimHandler.NewHandler(insuranceSvc, log)
	broadcastNotification := broadcastNotificationHandler.NewHandler(notifier, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Каталог видов ножей
	api.HandleFunc("/knife-types", listKnifeTypes.Handle).Methods(http.MethodGet)

	// Страховой продукт
	api.HandleFunc("/insurance/product", getInsuranceProduct.Handle).Methods(http.MethodGet)

	// Регистрация и вход по номеру телефона
	api.HandleFunc("/auth/verification-code", requestCode.Handle).Methods(http.MethodPost)
	api.HandleFunc("/auth/verify", verifyCode.Handle).Methods(http.MethodPost)

	// Вход администратора
	api.HandleFunc("/admin/auth/login", adminLogin.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Оформление заказа ---
	protected.HandleFunc("/checkout/quote", quoteCheckout.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/checkout", createCheckout.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/payment", getPayment.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/me/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Платежи ---
	protected.HandleFunc("/payments/{paymentId}/deposit-report", reportDeposit.Handle).Methods(http.MethodPatch)

	// --- Реквизиты для перевода ---
	protected.HandleFunc("/bank-account", getDefaultBankAccount.Handle).Methods(http.MethodGet)

	// --- Купоны ---
	protected.HandleFunc("/users/me/coupons", getUserCoupons.Handle).Methods(http.MethodGet)

	// --- Страхование ---
	protected.HandleFunc("/users/me/insurances", getUserPolicies.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/users/me/claims", getUserClaims.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/insurance/claims", createClaim.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют JWT администратора)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.AdminAuth(adminSvc))

	// --- Бронирования ---
	admin.HandleFunc("/bookings", listBookings.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// --- Платежи ---
	admin.HandleFunc("/payments", listPayments.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/payments/{paymentId}/confirm", confirmPayment.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/payments/{paymentId}/fail", failPayment.Handle).Methods(http.MethodPatch)

	// --- Купоны ---
	admin.HandleFunc("/coupons/issue", issueCoupon.Handle).Methods(http.MethodPost)

	// --- Счета платформы ---
	admin.HandleFunc("/bank-accounts", listBankAccounts.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/bank-accounts", createBankAccount.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/bank-accounts/{accountId}/default", setDefaultBankAccount.Handle).Methods(http.MethodPatch)

	// --- Администраторы ---
	admin.HandleFunc("/admins", createAdmin.Handle).Methods(http.MethodPost)
	admin.HandleFunc("/admins/{adminId}/deactivate", deactivateAdmin.Handle).Methods(http.MethodPatch)

	// --- Страховые требования ---
	admin.HandleFunc("/insurance/claims", listClaims.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/insurance/claims/{claimId}/review", reviewClaim.Handle).Methods(http.MethodPatch)

	// --- Уведомления ---
	admin.HandleFunc("/notifications/broadcast", broadcastNotification.Handle).Methods(http.MethodPost)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
