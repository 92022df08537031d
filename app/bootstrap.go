package app

import (
	"fmt"
	"log"
	"time"

	"autoglm-helper/app/clients"
	"autoglm-helper/app/executor"
	"autoglm-helper/app/handlers"
	"autoglm-helper/app/services"
	"autoglm-helper/app/utils"
	"autoglm-helper/storage/prefs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// App represents the application
type App struct {
	Config         *Config
	Storage        clients.StorageAdapter
	Prefs          *prefs.Store
	AuthService    *services.AuthService
	CommandService *services.CommandService
	Router         *gin.Engine
}

// Services bundles what the HTTP layer needs
type Services struct {
	Storage    clients.StorageAdapter
	Auth       *services.AuthService
	Commands   *services.CommandService
	Pending    *services.PendingService
	Config     *services.ConfigService
	Automation *services.AutomationService
}

// NewServices wires the services over the given storage, preferences and device
func NewServices(storage clients.StorageAdapter, preferences clients.PreferenceStore, automation clients.Automation, timeout time.Duration) *Services {
	commands := services.NewCommandService(storage)
	return &Services{
		Storage:    storage,
		Auth:       services.NewAuthService(preferences),
		Commands:   commands,
		Pending:    services.NewPendingService(commands, services.NewMailbox()),
		Config:     services.NewConfigService(preferences),
		Automation: services.NewAutomationService(automation, timeout),
	}
}

// Bootstrap initializes the application
func Bootstrap() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	// sqlite may be briefly locked by another process; postgres may still be starting
	var store clients.StorageAdapter
	factory := services.NewStorageFactory()
	err = utils.DefaultRetryPolicy().Execute(func() error {
		var openErr error
		store, openErr = factory.CreateStore(cfg.DBDriver, cfg.StoreDSN())
		if openErr != nil {
			log.Printf("[store] open failed: %v", openErr)
		}
		return openErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	preferences, err := prefs.NewStore(cfg.PrefsPath)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to initialize preferences: %w", err)
	}

	mode, _ := executor.ParseMode(cfg.AutomationMode)
	device := executor.NewDeviceExecutor(mode, cfg.ADBPath, cfg.ADBSerial)

	svcs := NewServices(store, preferences, device, cfg.AutomationTimeout)
	router := NewRouter(svcs, cfg.CORSOrigins)

	log.Printf("[store] using %s storage, preferences at %s, automation mode %s", cfg.DBDriver, preferences.Path(), mode)

	return &App{
		Config:         cfg,
		Storage:        store,
		Prefs:          preferences,
		AuthService:    svcs.Auth,
		CommandService: svcs.Commands,
		Router:         router,
	}, nil
}

// Close releases the storage
func (a *App) Close() error {
	return a.Storage.Close()
}

// NewRouter builds the gin engine with middleware and routes
func NewRouter(svcs *Services, corsOrigins []string) *gin.Engine {
	router := gin.New()
	// unknown paths, including trailing-slash variants, get the JSON 404
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false
	router.Use(handlers.RequestLogger(), handlers.Recovery())

	if len(corsOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     corsOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", handlers.TokenHeader},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	router.NoRoute(handlers.NotFound)
	setupRoutes(router, svcs)
	return router
}

// setupRoutes configures HTTP routes
func setupRoutes(router *gin.Engine, svcs *Services) {
	healthHandler := handlers.NewHealthHandler(svcs.Storage)
	deviceHandler := handlers.NewDeviceHandler(svcs.Automation)
	configHandler := handlers.NewConfigHandler(svcs.Config)
	commandHandler := handlers.NewCommandHandler(svcs.Commands, svcs.Pending)
	authHandler := handlers.NewAuthHandler(svcs.Auth)

	router.GET("/health", healthHandler.Health)
	router.GET("/ready", healthHandler.Ready)

	// Device endpoints are open to local callers
	router.GET("/status", deviceHandler.Status)
	router.GET("/screenshot", deviceHandler.Screenshot)
	router.POST("/tap", deviceHandler.Tap)
	router.POST("/swipe", deviceHandler.Swipe)
	router.POST("/input", deviceHandler.Input)

	protected := router.Group("/", handlers.RequireToken(svcs.Auth))
	{
		protected.GET("/config", configHandler.GetConfig)
		protected.POST("/config", configHandler.UpdateConfig)
		protected.GET("/config/presets", configHandler.ListPresets)
		protected.POST("/config/presets", configHandler.SavePreset)
		protected.POST("/config/presets/activate", configHandler.ActivatePreset)

		protected.POST("/command", commandHandler.PushCommand)
		protected.GET("/command", commandHandler.PullCommand)
		protected.POST("/pending_command", commandHandler.PushCommand) // legacy alias
		protected.GET("/pending_command", commandHandler.PullCommand)  // legacy alias

		protected.GET("/commands", commandHandler.ListCommands)
		protected.POST("/commands", commandHandler.SaveCommand)
		protected.PUT("/commands/:id", commandHandler.UpdateCommand)
		protected.DELETE("/commands/:id", commandHandler.DeleteCommand)

		protected.GET("/command_history", commandHandler.GetHistory)
		protected.POST("/command_history", commandHandler.RecordHistory)

		protected.POST("/token/rotate", authHandler.RotateToken)
	}
}
