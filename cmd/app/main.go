package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sushihentaime/blogdocs/internal/blogservice"
	"github.com/sushihentaime/blogdocs/internal/common"
	"github.com/sushihentaime/blogdocs/internal/logger"
	"github.com/sushihentaime/blogdocs/internal/mailservice"
)

type application struct {
	config      *Config
	logger      logger.Logger
	blogService *blogservice.BlogService
	// db is nil when the memory store is in use.
	db pinger
}

func main() {
	configPath := flag.String("config", ".env", "path to a dotenv configuration file")
	flag.Parse()

	// Load the configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize the logger
	log, err := logger.New(cfg.LogLevel, cfg.PrettyLog)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Error("application stopped", logger.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

// run wires the store, the optional broker and mail consumers, then serves until shutdown.
func run(cfg *Config, log logger.Logger) error {
	app := &application{
		config: cfg,
		logger: log,
	}

	// Initialize the store
	var store blogservice.Store
	switch cfg.StoreDriver {
	case "memory":
		log.Warn("using the in-memory store, data is lost on restart")
		store = blogservice.NewMemoryStore()
	default:
		db, err := common.NewDB(cfg.MongoURI, cfg.MongoDB, cfg.MongoMaxPoolSize, cfg.MongoConnectTimeout)
		if err != nil {
			return fmt.Errorf("failed to connect to the database: %w", err)
		}
		defer common.CloseDB(db)

		mongoStore := blogservice.NewMongoStore(db.Collection(cfg.MongoCollection), cfg.MongoQueryTimeout)
		if err := mongoStore.EnsureIndexes(context.Background()); err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}

		log.Info("connected to mongodb", logger.String("db", cfg.MongoDB), logger.String("collection", cfg.MongoCollection))
		store = mongoStore
		app.db = db
	}

	// Initialize the message broker
	var producer common.MessageProducer
	if cfg.MQHost != "" {
		broker, err := common.NewMessageBroker(cfg.amqpURI())
		if err != nil {
			return fmt.Errorf("failed to connect to the message broker: %w", err)
		}
		defer broker.Close()

		// Queues are declared by the consumers below
		if err := common.SetupBlogExchange(broker); err != nil {
			return fmt.Errorf("failed to setup the blog exchange: %w", err)
		}
		producer = broker

		if cfg.MailHost != "" && len(cfg.MailRecipients) > 0 {
			mailService := mailservice.NewMailService(broker, cfg.MailHost, cfg.MailUser, cfg.MailPassword, cfg.MailSender, cfg.MailPort, cfg.MailRecipients, log)
			defer mailService.Close()
			if err := mailService.NotifyBlogPublished(); err != nil {
				return fmt.Errorf("failed to start the mail consumer: %w", err)
			}
			if err := mailService.NotifyBlogDeleted(); err != nil {
				return fmt.Errorf("failed to start the mail consumer: %w", err)
			}
		} else {
			log.Info("mail not configured, blog events are published without a consumer")
		}
	} else {
		log.Info("RABBITMQ_HOST not set, blog events are disabled")
	}

	app.blogService = blogservice.NewBlogService(store, producer, log)

	// Start the HTTP server
	return app.serve()
}
