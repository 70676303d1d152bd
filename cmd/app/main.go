package main

import (
	"log/slog"
	"os"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sushihentaime/globalaffair/internal/blogservice"
	"github.com/sushihentaime/globalaffair/internal/common"
	"github.com/sushihentaime/globalaffair/internal/mailservice"
	"github.com/sushihentaime/globalaffair/internal/uploadservice"
	"github.com/sushihentaime/globalaffair/internal/userservice"
	"github.com/sushihentaime/globalaffair/internal/views"
)

const uploadURLPrefix = "/uploads/"

type application struct {
	config      *Config
	logger      *slog.Logger
	db          *mongo.Database
	tokens      *userservice.TokenManager
	userService *userservice.UserService
	blogService *blogservice.BlogService
	mailService *mailservice.MailService
	uploads     *uploadservice.Store
	views       *views.Renderer

	// quit is closed once by stopBackground; goroutines started by the middleware watch it
	quit       chan struct{}
	stopOnce   sync.Once
	background sync.WaitGroup
}

func main() {
	// Load the configuration
	cfg, err := loadConfig(".env")
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	level := slog.LevelInfo
	if cfg.Environment == "development" {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))

	// Apply the index migrations before taking traffic
	err = common.Migrate(cfg.MigrationsPath, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("failed to migrate the database", slog.String("error", err.Error()))
		os.Exit(1)
	}

	client, err := common.NewDB(cfg.MongoURI, 10, 5, 15*time.Minute)
	if err != nil {
		logger.Error("failed to connect to the database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer common.CloseDB(client)

	app, err := newApplication(cfg, logger, client.Database(cfg.MongoDB))
	if err != nil {
		logger.Error("failed to initialize the application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = app.serve(cfg.Port)
	if err != nil {
		logger.Error("failed to start the server", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func newApplication(cfg *Config, logger *slog.Logger, db *mongo.Database) (*application, error) {
	uploads, err := uploadservice.NewStore(cfg.UploadDir, uploadURLPrefix, cfg.MaxUploadBytes)
	if err != nil {
		return nil, err
	}

	renderer, err := views.New()
	if err != nil {
		return nil, err
	}

	cache := common.NewCache(5*time.Minute, 10*time.Minute)
	tokens := userservice.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)
	userService := userservice.NewUserService(db, cache, tokens)

	// welcome emails are only sent when an SMTP server is configured
	var mailService *mailservice.MailService
	if cfg.MailHost != "" {
		mailer := mailservice.NewMailer(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPassword, cfg.MailSender, mailservice.NewTemplate())
		mailService = mailservice.NewMailService(mailer, logger, cfg.SiteURL)
	}

	return &application{
		config:      cfg,
		logger:      logger,
		db:          db,
		tokens:      tokens,
		userService: userService,
		blogService: blogservice.NewBlogService(db, userService),
		mailService: mailService,
		uploads:     uploads,
		views:       renderer,
		quit:        make(chan struct{}),
	}, nil
}

// stopBackground ends the goroutines started by the middleware and waits for them to return.
func (app *application) stopBackground() {
	app.stopOnce.Do(func() { close(app.quit) })
	app.background.Wait()
}
