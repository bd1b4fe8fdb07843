package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"croupier/bot"
	"croupier/config"
	"croupier/database"
	"croupier/domain/services"
	"croupier/gamesession"
	"croupier/repository"
)

// Run initializes and starts the application.
func Run(ctx context.Context) error {
	log.Println("Starting croupier bot...")

	cfg := config.Get()

	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.GetDatabaseURL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established")

	uowFactory := repository.NewUnitOfWorkFactory(db)

	feePolicy, err := services.NewFeePolicy(services.CombineMode(cfg.FeeCombineMode))
	if err != nil {
		return fmt.Errorf("invalid fee configuration: %w", err)
	}

	// The registry is the single owner of channel -> session mappings; it
	// lives here so everything session-related shares one instance.
	registry := gamesession.NewRegistry()

	log.Println("Initializing Discord bot...")
	discordBot, err := bot.New(bot.Config{
		Token:   cfg.DiscordToken,
		GuildID: cfg.GuildID,
	}, uowFactory, feePolicy, registry)
	if err != nil {
		return fmt.Errorf("failed to initialize Discord bot: %w", err)
	}
	log.Printf("Bot is running in %s mode...", cfg.Environment)

	<-ctx.Done()

	log.Println("Shutting down bot...")
	if err := discordBot.Close(); err != nil {
		log.Printf("Error closing Discord bot: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("Closing database connection...")
	db.Close()

	select {
	case <-shutdownCtx.Done():
		log.Println("Shutdown timeout exceeded")
	case <-time.After(1 * time.Second):
		log.Println("Shutdown completed")
	}

	return nil
}
