package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	// Nossos pacotes de infraestrutura e utilitários
	"gocatalog/config"
	"gocatalog/internal/pkg/database"
	"gocatalog/internal/pkg/logger"
	"gocatalog/internal/pkg/metrics"
	"gocatalog/internal/pkg/middleware"
	"gocatalog/internal/pkg/openai"
	"gocatalog/internal/pkg/password"
	"gocatalog/internal/pkg/token"

	// Camadas da aplicação para Injeção de Dependências
	"gocatalog/internal/api/product"
	"gocatalog/internal/api/router"
	"gocatalog/internal/api/user"
	"gocatalog/internal/repository/productrepo"
	"gocatalog/internal/repository/userrepo"
	"gocatalog/internal/service/productservice"
	"gocatalog/internal/service/userservice"
)

func main() {
	// 0. CARREGAR VARIÁVEIS DE AMBIENTE (.env)
	// Se o arquivo .env não for encontrado, seguimos em frente: as variáveis
	// essenciais podem estar no ambiente do sistema (ex: Docker).
	if err := godotenv.Load(); err != nil {
		stdlog.Println("Aviso: Arquivo .env não encontrado. Carregando configs apenas do ambiente do sistema.")
	}

	// 1. Configuração e Logger
	cfg := config.LoadConfig()
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Configurações carregadas.", nil)

	// 2. Conexão com Recursos de Infraestrutura

	// A. Banco de Dados (MongoDB) — inclui ping e criação de índices
	client, db, err := database.NewMongoDB(cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		log.Fatal("Falha ao conectar ao banco de dados.", err)
	}
	defer database.Close(client)
	log.Info("Conexão MongoDB estabelecida.", map[string]interface{}{"database": cfg.MongoDatabase})

	// B. Métricas (Prometheus)
	collector := metrics.NewCollector()

	// 3. INJEÇÃO DE DEPENDÊNCIAS (Montagem da Clean Architecture)
	// Ordem: Repository -> Service -> Handler

	// A. Serviços de apoio (token, hash de senha, colaborador de IA)
	tokenSvc := token.NewService(cfg.JWTSecretKey, cfg.TokenExpiry)
	hasher := password.NewHasher(cfg.BcryptCost)
	enricher := openai.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel, log)

	// B. Repositórios (Camada de Acesso a Dados)
	userRepo := userrepo.NewUserRepository(db, cfg.DBTimeout, log)
	productRepo := productrepo.NewProductRepository(db, cfg.DBTimeout, log)

	// C. Serviços (Camada de Lógica de Negócio)
	userSvc := userservice.NewService(userRepo, hasher, tokenSvc, cfg.RequireOldPassword)
	productSvc := productservice.NewService(productRepo, enricher, collector, log)

	// D. Handlers (Camada de Apresentação)
	userHandler := user.NewHandler(userSvc, log)
	productHandler := product.NewHandler(productSvc, log)

	// 4. Configuração e Início do Roteador/Servidor
	r := router.NewRouter(router.Deps{
		ProductHandler:    productHandler,
		UserHandler:       userHandler,
		AuthMiddleware:    middleware.NewAuthMiddleware(tokenSvc, userSvc),
		CORSMiddleware:    middleware.NewCORSMiddleware(cfg.CORSOrigin),
		LoggingMiddleware: middleware.NewLoggingMiddleware(log, collector),
		MetricsHandler:    collector.Handler(),
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second, // a criação de produto espera o colaborador de IA
		IdleTimeout:  60 * time.Second,
	}

	// 5. Execução e Graceful Shutdown
	go func() {
		log.Info("Servidor GoCatalog ouvindo na porta", map[string]interface{}{"port": cfg.Port})
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Servidor falhou.", err)
		}
	}()

	// Captura de sinal para desligamento controlado
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	log.Info("Sinal de encerramento recebido. Desligando servidor...", nil)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Desligamento do servidor forçado.", err)
	}

	log.Info("Servidor encerrado com sucesso.", nil)
}
