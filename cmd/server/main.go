package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"hospedaria/internal/api"
	"hospedaria/internal/auth"
	"hospedaria/internal/repository"
	"hospedaria/internal/service"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

func main() {
	godotenv.Load()
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL not set")
	}
	db, err := sql.Open("postgres", dbURL)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}

	reservationRepo := repository.NewReservationRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	jobRepo := repository.NewJobRepository(db)
	adminAuthRepo := repository.NewAdminAuthRepository(db)

	senderSvc := service.NewSenderService()
	reservationSvc := service.NewReservationService(reservationRepo, senderSvc)
	propertySvc := service.NewPropertyService(propertyRepo)
	jobSvc := service.NewJobService(jobRepo)
	adminAuthSvc := service.NewAdminAuthService(adminAuthRepo)

	pixCeiling, _ := strconv.ParseFloat(os.Getenv("PIX_MAX_TOTAL"), 64)
	checkoutSvc := service.NewCheckoutService(
		reservationRepo,
		service.NewPixService(),
		service.NewPricingPolicy(pixCeiling),
		service.NewIdentifierGenerator(),
	)

	checkoutHandler := api.NewCheckoutHandler(checkoutSvc, reservationSvc)
	propertyHandler := api.NewPropertyHandler(propertySvc)
	adminHandler := api.NewAdminHandler(reservationSvc)
	adminAuthHandler := api.NewAdminAuthHandler(adminAuthSvc)
	webhookHandler := api.NewPixWebhookHandler(os.Getenv("HURAPAY_WEBHOOK_SECRET"), reservationSvc)

	r := mux.NewRouter()

	// Public endpoints
	r.HandleFunc("/api/properties", propertyHandler.ListProperties).Methods("GET")
	r.HandleFunc("/api/properties/cities", propertyHandler.ListCities).Methods("GET")
	r.HandleFunc("/api/properties/{id}", propertyHandler.GetProperty).Methods("GET")
	r.HandleFunc("/api/checkout", checkoutHandler.Submit).Methods("POST")
	r.HandleFunc("/api/reservations/{id}", checkoutHandler.GetReservation).Methods("GET")
	r.HandleFunc("/api/reservations/{id}/payment", checkoutHandler.RetryPayment).Methods("POST")
	r.HandleFunc("/api/webhooks/hurapay", webhookHandler.HandleWebhook).Methods("POST")
	r.HandleFunc("/admin/login", adminAuthHandler.Login).Methods("POST")

	// Admin endpoints (protected)
	admin := r.PathPrefix("/admin").Subrouter()
	admin.Use(auth.AdminAuthMiddleware)
	admin.HandleFunc("/register", adminAuthHandler.CreateUserAdmin).Methods("POST")
	admin.HandleFunc("/reservations", adminHandler.ListReservations).Methods("GET")
	admin.HandleFunc("/reservations/{id}", adminHandler.AdminUpdateReservation).Methods("PUT")
	admin.HandleFunc("/reservations/{id}", adminHandler.AdminDeleteReservation).Methods("DELETE")

	// Jobs: expirar reservas pendentes antigas e fechar estadias concluídas.
	pendingTTL := 24 * time.Hour
	if v := os.Getenv("PENDING_BOOKING_TTL_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			pendingTTL = time.Duration(hours) * time.Hour
		}
	}
	c := cron.New()
	c.AddFunc("@hourly", func() {
		if err := jobSvc.ExpireStalePendingBookings(pendingTTL); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	})
	c.AddFunc("@daily", func() {
		if err := jobSvc.MarkCompletedStays(); err != nil {
			log.Printf("Cron Job error: %v", err)
		}
	})
	c.Start()
	defer c.Stop()

	cors := handlers.CORS(
		handlers.AllowedOrigins([]string{"*"}),
		handlers.AllowedMethods([]string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type", "Authorization"}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on port %s", port)
	log.Fatal(http.ListenAndServe(":"+port, handlers.LoggingHandler(os.Stdout, cors(r))))
}
