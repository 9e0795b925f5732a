package server

import (
	"context"
	"log"
	"math/big"
	"net/http"
	"os"
	"strings"

	awsclient "github.com/custodia/custodia-api/internal/client/aws"
	"github.com/custodia/custodia-api/internal/handlers"
	"github.com/custodia/custodia-api/internal/helpers"
	"github.com/custodia/custodia-api/internal/logger"
	"github.com/custodia/custodia-api/internal/middleware"
	"github.com/custodia/custodia-api/internal/services"
	"github.com/custodia/custodia-api/internal/store"
	"github.com/custodia/custodia-api/internal/store/memorystore"
	"github.com/custodia/custodia-api/internal/store/postgres"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handler Definitions
var (
	vaultHandler         *handlers.VaultHandler
	authorizationHandler *handlers.AuthorizationHandler

	commonServices *handlers.CommonServices
)

// InitializeHandlers loads configuration, connects the store, and builds the
// service and handler graph.
func InitializeHandlers() {
	// Load environment variables from .env file for local development
	err := godotenv.Load()
	if err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err) // Use basic log before logger init
	}

	// --- Determine and Validate Stage ---
	stage := os.Getenv("STAGE")
	if stage == "" {
		stage = helpers.StageLocal
		log.Printf("Warning: STAGE environment variable not set, defaulting to '%s'", stage)
	}
	if !helpers.IsValidStage(stage) {
		log.Fatalf("Invalid STAGE environment variable: '%s'. Must be one of: %s, %s, %s",
			stage, helpers.StageProd, helpers.StageDev, helpers.StageLocal)
	}

	// --- Initialize Logger (AFTER stage validation) ---
	logger.InitLogger(stage)
	logger.Info("Initializing handlers for stage", zap.String("stage", stage))

	ctx := context.Background()

	// --- Identity configuration ---
	vaultAddress := requireAddress("VAULT_ADDRESS")
	signerAddress := requireAddress("SIGNER_ADDRESS")
	controllerAddress := requireAddress("CONTROLLER_ADDRESS")

	// --- Store selection ---
	vaultStore := buildStore(ctx, stage)

	// --- Chain id source ---
	chainSource := buildChainIDSource()

	// --- Event publishers ---
	events := buildEventPublisher(ctx)

	// --- Services ---
	authorizationService, err := services.NewAuthorizationService(
		vaultStore, chainSource, events, signerAddress, controllerAddress)
	if err != nil {
		logger.Fatal("Failed to initialize authorization service", zap.Error(err))
	}

	vaultService, err := services.NewVaultService(
		vaultStore, authorizationService, services.NewLedgerTransferer(vaultStore), events, vaultAddress)
	if err != nil {
		logger.Fatal("Failed to initialize vault service", zap.Error(err))
	}

	commonServices = handlers.NewCommonServices(handlers.CommonServicesConfig{
		VaultService:         vaultService,
		AuthorizationService: authorizationService,
	})

	vaultHandler = handlers.NewVaultHandler(commonServices)
	authorizationHandler = handlers.NewAuthorizationHandler(commonServices)

	logger.Info("Handlers initialized",
		zap.String("vault_address", vaultAddress.Hex()),
		zap.String("signer_address", signerAddress.Hex()))
}

// InitializeRoutes registers middleware and the API surface on the router.
func InitializeRoutes(router *gin.Engine) {
	router.Use(configureCORS())
	router.Use(middleware.CorrelationIDMiddleware())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")
	{
		vault := v1.Group("/vault")
		{
			vault.POST("/deposits", vaultHandler.Deposit)
			vault.POST("/withdrawals", vaultHandler.Withdraw)
			vault.GET("/balance", vaultHandler.GetBalance)
			vault.GET("/depositors/:address", vaultHandler.GetContribution)
		}

		authorizations := v1.Group("/authorizations")
		{
			authorizations.PUT("/signer", authorizationHandler.UpdateSigner)
			authorizations.GET("/:auth_id", authorizationHandler.GetAuthorization)
		}
	}
}

// requireAddress reads a mandatory address from the environment.
func requireAddress(envVar string) common.Address {
	value := os.Getenv(envVar)
	if !common.IsHexAddress(value) {
		logger.Fatal("Missing or invalid required address environment variable",
			zap.String("env_var", envVar))
	}
	address := common.HexToAddress(value)
	if address == (common.Address{}) {
		logger.Fatal("Address environment variable must be non-zero",
			zap.String("env_var", envVar))
	}
	return address
}

// buildStore connects the Postgres store when a database is configured and
// falls back to the in-memory store for local development.
func buildStore(ctx context.Context, stage string) store.Store {
	dsn := os.Getenv("DATABASE_URL")

	if stage == helpers.StageProd || stage == helpers.StageDev {
		// Deployed stages fetch the connection string from Secrets Manager
		secretsClient, err := awsclient.NewSecretsManagerClient(ctx)
		if err != nil {
			logger.Fatal("Failed to initialize AWS Secrets Manager client", zap.Error(err))
		}
		dsn, err = secretsClient.GetSecretString(ctx, "DATABASE_SECRET_ARN", "DATABASE_URL")
		if err != nil {
			logger.Fatal("Failed to resolve database connection string", zap.Error(err))
		}
	}

	if dsn == "" {
		logger.Warn("DATABASE_URL not set, using in-memory store; state is lost on restart")
		return memorystore.New()
	}

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Fatal("Failed to create database connection pool", zap.Error(err))
	}
	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	pgStore := postgres.New(pool)
	if err := pgStore.InitSchema(ctx); err != nil {
		logger.Fatal("Failed to initialize database schema", zap.Error(err))
	}

	logger.Info("Connected to Postgres store")
	return pgStore
}

// buildChainIDSource prefers a live RPC node and falls back to a static
// CHAIN_ID. One of the two must be configured.
func buildChainIDSource() services.ChainIDSource {
	if rpcURL := os.Getenv("CHAIN_RPC_URL"); rpcURL != "" {
		source, err := services.NewRPCChainIDSource(rpcURL)
		if err != nil {
			logger.Fatal("Failed to connect to chain RPC", zap.Error(err))
		}
		return source
	}

	chainIDEnv := os.Getenv("CHAIN_ID")
	if chainIDEnv == "" {
		logger.Fatal("Either CHAIN_RPC_URL or CHAIN_ID must be set")
	}
	chainID, ok := new(big.Int).SetString(chainIDEnv, 10)
	if !ok || chainID.Sign() <= 0 {
		logger.Fatal("CHAIN_ID must be a positive integer", zap.String("chain_id", chainIDEnv))
	}

	return services.NewStaticChainIDSource(chainID)
}

// buildEventPublisher always logs events and additionally forwards them to
// SQS when a queue is configured.
func buildEventPublisher(ctx context.Context) services.EventPublisher {
	logPublisher := services.NewLogPublisher()

	queueURL := os.Getenv("EVENTS_QUEUE_URL")
	if queueURL == "" {
		return logPublisher
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		logger.Fatal("Failed to load AWS config for SQS event publisher", zap.Error(err))
	}

	logger.Info("Forwarding events to SQS", zap.String("queue_url", queueURL))
	return services.NewMultiPublisher(
		logPublisher,
		services.NewSQSPublisher(sqs.NewFromConfig(cfg), queueURL),
	)
}

func configureCORS() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	// Get allowed origins from environment variable
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv == "" {
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	} else {
		origins := strings.Split(originsEnv, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		corsConfig.AllowOrigins = origins
	}

	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Controller-Address", "X-Correlation-ID"}
	corsConfig.ExposeHeaders = []string{"X-Correlation-ID"}
	corsConfig.AllowCredentials = os.Getenv("CORS_ALLOW_CREDENTIALS") == "true"

	return cors.New(corsConfig)
}
