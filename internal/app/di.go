// Package app provides the dependency injection container for assembling
// application components.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"sync"

	authHTTP "github.com/allisson/accounts/internal/auth/http"
	authService "github.com/allisson/accounts/internal/auth/service"
	authUsecase "github.com/allisson/accounts/internal/auth/usecase"
	"github.com/allisson/accounts/internal/config"
	"github.com/allisson/accounts/internal/database"
	fileHTTP "github.com/allisson/accounts/internal/file/http"
	fileStorage "github.com/allisson/accounts/internal/file/storage"
	fileUsecase "github.com/allisson/accounts/internal/file/usecase"
	"github.com/allisson/accounts/internal/http"
	"github.com/allisson/accounts/internal/metrics"
	postHTTP "github.com/allisson/accounts/internal/post/http"
	postRepository "github.com/allisson/accounts/internal/post/repository"
	postUsecase "github.com/allisson/accounts/internal/post/usecase"
	userHTTP "github.com/allisson/accounts/internal/user/http"
	userRepository "github.com/allisson/accounts/internal/user/repository"
	userUsecase "github.com/allisson/accounts/internal/user/usecase"
)

// Container holds all application dependencies and provides methods to access them.
// It follows the lazy initialization pattern - components are created on first access.
type Container struct {
	// Configuration
	config *config.Config

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Managers
	txManager database.TxManager

	// Repositories and storage
	userRepo    userUsecase.UserRepository
	postRepo    postUsecase.PostRepository
	fileStorage fileStorage.FileStorage

	// Services
	passwordService authService.PasswordService
	tokenService    authService.TokenService

	// Use Cases
	authUseCase authUsecase.AuthUseCase
	userUseCase userUsecase.UseCase
	postUseCase postUsecase.UseCase
	fileUseCase fileUsecase.UseCase

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	// Initialization flags and mutex for thread-safety
	mu                  sync.Mutex
	loggerInit          sync.Once
	dbInit              sync.Once
	metricsProviderInit sync.Once
	businessMetricsInit sync.Once
	txManagerInit       sync.Once
	userRepoInit        sync.Once
	postRepoInit        sync.Once
	fileStorageInit     sync.Once
	passwordServiceInit sync.Once
	tokenServiceInit    sync.Once
	authUseCaseInit     sync.Once
	userUseCaseInit     sync.Once
	postUseCaseInit     sync.Once
	fileUseCaseInit     sync.Once
	httpServerInit      sync.Once
	metricsServerInit   sync.Once
	initErrors          map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	return &Container{
		config:     cfg,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the configured logger instance.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection.
func (c *Container) DB() (*sql.DB, error) {
	c.dbInit.Do(func() {
		db, err := c.initDB()
		if err != nil {
			c.initErrors["db"] = err
			return
		}
		c.db = db
	})
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// MetricsProvider returns the metrics provider. Returns nil when metrics are
// disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	c.metricsProviderInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := metrics.NewProvider(c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["metricsProvider"] = err
			return
		}
		c.metricsProvider = provider
	})
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder. Returns a no-op
// recorder when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	c.businessMetricsInit.Do(func() {
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		if provider == nil {
			c.businessMetrics = metrics.NewNoOpBusinessMetrics()
			return
		}
		bm, err := metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
		if err != nil {
			c.initErrors["businessMetrics"] = err
			return
		}
		c.businessMetrics = bm
	})
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// TxManager returns the transaction manager.
func (c *Container) TxManager() (database.TxManager, error) {
	c.txManagerInit.Do(func() {
		db, err := c.DB()
		if err != nil {
			c.initErrors["txManager"] = fmt.Errorf("failed to get database for tx manager: %w", err)
			return
		}
		c.txManager = database.NewTxManager(db)
	})
	if storedErr, exists := c.initErrors["txManager"]; exists {
		return nil, storedErr
	}
	return c.txManager, nil
}

// UserRepository returns the user repository instance.
func (c *Container) UserRepository() (userUsecase.UserRepository, error) {
	c.userRepoInit.Do(func() {
		repo, err := c.initUserRepository()
		if err != nil {
			c.initErrors["userRepo"] = err
			return
		}
		c.userRepo = repo
	})
	if storedErr, exists := c.initErrors["userRepo"]; exists {
		return nil, storedErr
	}
	return c.userRepo, nil
}

// PostRepository returns the post repository instance.
func (c *Container) PostRepository() (postUsecase.PostRepository, error) {
	c.postRepoInit.Do(func() {
		repo, err := c.initPostRepository()
		if err != nil {
			c.initErrors["postRepo"] = err
			return
		}
		c.postRepo = repo
	})
	if storedErr, exists := c.initErrors["postRepo"]; exists {
		return nil, storedErr
	}
	return c.postRepo, nil
}

// FileStorage returns the blob storage backing file uploads.
func (c *Container) FileStorage() (fileStorage.FileStorage, error) {
	c.fileStorageInit.Do(func() {
		storage, err := fileStorage.NewBlobFileStorage(c.config.FileStorageDir)
		if err != nil {
			c.initErrors["fileStorage"] = err
			return
		}
		c.fileStorage = storage
	})
	if storedErr, exists := c.initErrors["fileStorage"]; exists {
		return nil, storedErr
	}
	return c.fileStorage, nil
}

// PasswordService returns the password hashing service.
func (c *Container) PasswordService() (authService.PasswordService, error) {
	c.passwordServiceInit.Do(func() {
		service, err := authService.NewPasswordService()
		if err != nil {
			c.initErrors["passwordService"] = err
			return
		}
		c.passwordService = service
	})
	if storedErr, exists := c.initErrors["passwordService"]; exists {
		return nil, storedErr
	}
	return c.passwordService, nil
}

// TokenService returns the access token service.
func (c *Container) TokenService() (authService.TokenService, error) {
	c.tokenServiceInit.Do(func() {
		service, err := authService.NewJWTTokenService(
			c.config.JWTSecretKey,
			c.config.JWTAlgorithm,
			c.config.JWTExpiration,
			nil,
		)
		if err != nil {
			c.initErrors["tokenService"] = err
			return
		}
		c.tokenService = service
	})
	if storedErr, exists := c.initErrors["tokenService"]; exists {
		return nil, storedErr
	}
	return c.tokenService, nil
}

// AuthUseCase returns the authentication use case instance.
func (c *Container) AuthUseCase() (authUsecase.AuthUseCase, error) {
	c.authUseCaseInit.Do(func() {
		useCase, err := c.initAuthUseCase()
		if err != nil {
			c.initErrors["authUseCase"] = err
			return
		}
		c.authUseCase = useCase
	})
	if storedErr, exists := c.initErrors["authUseCase"]; exists {
		return nil, storedErr
	}
	return c.authUseCase, nil
}

// UserUseCase returns the user use case instance.
func (c *Container) UserUseCase() (userUsecase.UseCase, error) {
	c.userUseCaseInit.Do(func() {
		useCase, err := c.initUserUseCase()
		if err != nil {
			c.initErrors["userUseCase"] = err
			return
		}
		c.userUseCase = useCase
	})
	if storedErr, exists := c.initErrors["userUseCase"]; exists {
		return nil, storedErr
	}
	return c.userUseCase, nil
}

// PostUseCase returns the post use case instance.
func (c *Container) PostUseCase() (postUsecase.UseCase, error) {
	c.postUseCaseInit.Do(func() {
		useCase, err := c.initPostUseCase()
		if err != nil {
			c.initErrors["postUseCase"] = err
			return
		}
		c.postUseCase = useCase
	})
	if storedErr, exists := c.initErrors["postUseCase"]; exists {
		return nil, storedErr
	}
	return c.postUseCase, nil
}

// FileUseCase returns the file use case instance.
func (c *Container) FileUseCase() (fileUsecase.UseCase, error) {
	c.fileUseCaseInit.Do(func() {
		useCase, err := c.initFileUseCase()
		if err != nil {
			c.initErrors["fileUseCase"] = err
			return
		}
		c.fileUseCase = useCase
	})
	if storedErr, exists := c.initErrors["fileUseCase"]; exists {
		return nil, storedErr
	}
	return c.fileUseCase, nil
}

// HTTPServer returns the API server instance with routes already configured.
func (c *Container) HTTPServer() (*http.Server, error) {
	c.httpServerInit.Do(func() {
		server, err := c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
			return
		}
		c.httpServer = server
	})
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server instance. Returns nil when metrics
// are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	c.metricsServerInit.Do(func() {
		if !c.config.MetricsEnabled {
			return
		}
		provider, err := c.MetricsProvider()
		if err != nil {
			c.initErrors["metricsServer"] = err
			return
		}
		c.metricsServer = http.NewMetricsServer(
			c.config.ServerHost,
			c.config.MetricsPort,
			c.Logger(),
			provider,
		)
	})
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown performs cleanup of all initialized resources.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.fileStorage != nil {
		if err := c.fileStorage.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("file storage close: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if len(shutdownErrors) > 0 {
		return fmt.Errorf("shutdown errors: %v", shutdownErrors)
	}

	return nil
}

// initLogger creates and configures a structured logger based on the log level.
func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

// initDB creates and configures the database connection.
func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

// initUserRepository creates the user repository instance.
func (c *Container) initUserRepository() (userUsecase.UserRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for user repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return userRepository.NewMySQLUserRepository(db), nil
	case "postgres":
		return userRepository.NewPostgreSQLUserRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initPostRepository creates the post repository instance.
func (c *Container) initPostRepository() (postUsecase.PostRepository, error) {
	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for post repository: %w", err)
	}

	switch c.config.DBDriver {
	case "mysql":
		return postRepository.NewMySQLPostRepository(db), nil
	case "postgres":
		return postRepository.NewPostgreSQLPostRepository(db), nil
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", c.config.DBDriver)
	}
}

// initAuthUseCase creates the authentication use case with all its dependencies.
func (c *Container) initAuthUseCase() (authUsecase.AuthUseCase, error) {
	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for auth use case: %w", err)
	}

	passwordService, err := c.PasswordService()
	if err != nil {
		return nil, fmt.Errorf("failed to get password service for auth use case: %w", err)
	}

	tokenService, err := c.TokenService()
	if err != nil {
		return nil, fmt.Errorf("failed to get token service for auth use case: %w", err)
	}

	useCase := authUsecase.NewAuthUseCase(c.config, userRepo, passwordService, tokenService)

	if c.config.MetricsEnabled {
		bm, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for auth use case: %w", err)
		}
		useCase = authUsecase.NewAuthUseCaseWithMetrics(useCase, bm)
	}

	return useCase, nil
}

// initUserUseCase creates the user use case with all its dependencies.
func (c *Container) initUserUseCase() (userUsecase.UseCase, error) {
	txManager, err := c.TxManager()
	if err != nil {
		return nil, fmt.Errorf("failed to get tx manager for user use case: %w", err)
	}

	userRepo, err := c.UserRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get user repository for user use case: %w", err)
	}

	passwordService, err := c.PasswordService()
	if err != nil {
		return nil, fmt.Errorf("failed to get password service for user use case: %w", err)
	}

	useCase := userUsecase.NewUserUseCase(txManager, userRepo, passwordService)

	if c.config.MetricsEnabled {
		bm, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for user use case: %w", err)
		}
		useCase = userUsecase.NewUserUseCaseWithMetrics(useCase, bm)
	}

	return useCase, nil
}

// initPostUseCase creates the post use case with all its dependencies.
func (c *Container) initPostUseCase() (postUsecase.UseCase, error) {
	postRepo, err := c.PostRepository()
	if err != nil {
		return nil, fmt.Errorf("failed to get post repository for post use case: %w", err)
	}

	useCase := postUsecase.NewPostUseCase(postRepo)

	if c.config.MetricsEnabled {
		bm, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for post use case: %w", err)
		}
		useCase = postUsecase.NewPostUseCaseWithMetrics(useCase, bm)
	}

	return useCase, nil
}

// initFileUseCase creates the file use case with all its dependencies.
func (c *Container) initFileUseCase() (fileUsecase.UseCase, error) {
	storage, err := c.FileStorage()
	if err != nil {
		return nil, fmt.Errorf("failed to get file storage for file use case: %w", err)
	}

	var useCase fileUsecase.UseCase = fileUsecase.NewFileUseCase(
		storage,
		c.config.FileMaxUploadSize,
		c.config.FileAllowedContentTypes,
	)

	if c.config.MetricsEnabled {
		bm, err := c.BusinessMetrics()
		if err != nil {
			return nil, fmt.Errorf("failed to get business metrics for file use case: %w", err)
		}
		useCase = fileUsecase.NewFileUseCaseWithMetrics(useCase, bm)
	}

	return useCase, nil
}

// initHTTPServer creates the API server with routes configured.
func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	authUseCase, err := c.AuthUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get auth use case for http server: %w", err)
	}

	userUseCase, err := c.UserUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get user use case for http server: %w", err)
	}

	postUseCase, err := c.PostUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get post use case for http server: %w", err)
	}

	fileUseCase, err := c.FileUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get file use case for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(http.RouterConfig{
		Config:          c.config,
		AuthHandler:     authHTTP.NewAuthHandler(authUseCase, logger),
		UserHandler:     userHTTP.NewUserHandler(userUseCase, logger),
		PostHandler:     postHTTP.NewPostHandler(postUseCase, logger),
		FileHandler:     fileHTTP.NewFileHandler(fileUseCase, logger),
		AuthnMiddleware: authHTTP.AuthenticationMiddleware(authUseCase, logger),
		MetricsProvider: metricsProvider,
	})

	return server, nil
}
