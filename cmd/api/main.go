package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rabbitmq/amqp091-go"

	"github.com/xavierca1/ligue-leads/internal/infra/database"
	"github.com/xavierca1/ligue-leads/internal/infra/events"
	"github.com/xavierca1/ligue-leads/internal/infra/http/handlers"
	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/n8n"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/openrouter"
	"github.com/xavierca1/ligue-leads/internal/infra/mail"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

func main() {
	godotenv.Load()

	db, err := database.NewDBConnection(os.Getenv("DATABASE_URL"))
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	// RabbitMQ alimenta o change feed do dashboard e o worker de alertas.
	// Se estiver fora, o serviço sobe do mesmo jeito: o feed é enriquecimento.
	var publisher *events.Publisher
	rabbitMQ, err := events.NewRabbitMQ(
		os.Getenv("RABBITMQ_USER"), os.Getenv("RABBITMQ_PASS"),
		os.Getenv("RABBITMQ_HOST"), os.Getenv("RABBITMQ_PORT"),
	)
	if err != nil {
		log.Printf("⚠️ RabbitMQ indisponível, seguindo sem change feed: %v", err)
	} else {
		defer rabbitMQ.Conn.Close()
		defer rabbitMQ.Ch.Close()
		publisher = events.NewPublisher(rabbitMQ.Conn, rabbitMQ.Ch)
	}

	// 1. Repositórios
	leadRepo := database.NewLeadRepository(db)

	// 2. Gateways e Adapters
	classifier := openrouter.NewClient(
		os.Getenv("OPENROUTER_API_KEY"),
		os.Getenv("OPENROUTER_URL"),
		os.Getenv("OPENROUTER_MODEL"),
	)
	relay := n8n.NewClient(os.Getenv("N8N_WEBHOOK_URL"))
	mailSender := mail.NewEmailSender(
		os.Getenv("MAIL_HOST"), 587, os.Getenv("MAIL_USER"), os.Getenv("MAIL_PASS"),
	)

	// 3. Worker (Consome lead.analyzed e avisa vendas sobre leads Hot)
	alertTo := os.Getenv("SALES_ALERT_EMAIL")
	if rabbitMQ != nil && alertTo != "" {
		worker := events.NewWorker(rabbitMQ.Ch, mailSender, alertTo)
		go worker.Start(events.AlertQueueName)
	}

	// 4. UseCases
	var eventPublisher usecase.EventPublisher
	if publisher != nil {
		eventPublisher = publisher
	}

	createLeadUC := usecase.NewCreateLeadUseCase(leadRepo, eventPublisher)
	analyzeLeadUC := usecase.NewAnalyzeLeadUseCase(leadRepo, classifier, eventPublisher)
	contactLeadUC := usecase.NewContactLeadUseCase(relay)

	// 5. Handlers
	leadHandler := handlers.NewLeadHandler(createLeadUC, leadRepo)
	analyzeHandler := handlers.NewAnalyzeHandler(analyzeLeadUC)
	contactHandler := handlers.NewContactHandler(contactLeadUC)
	authHandler := handlers.NewAuthHandler(os.Getenv("DASHBOARD_PASSWORD"))

	var rabbitConn *amqp091.Connection
	if rabbitMQ != nil {
		rabbitConn = rabbitMQ.Conn
	}
	healthHandler := handlers.NewHealthHandler(db, rabbitConn)

	// 6. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		// Rotas públicas: captura do formulário e login
		r.Post("/leads", leadHandler.HandleCreate)
		r.Post("/login", authHandler.HandleLogin)
		r.Post("/logout", authHandler.HandleLogout)

		// Rotas de staff: exigem o cookie de sessão do dashboard
		r.Group(func(r chi.Router) {
			r.Use(middleware.DashboardAuth)
			r.Get("/leads", leadHandler.HandleList)
			r.Post("/analyze", analyzeHandler.Handle)
			r.Post("/contact", contactHandler.Handle)
		})
	})

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🔥 Server LigueLeads rodando na porta :%s", port)
	http.ListenAndServe(":"+port, r)
}
