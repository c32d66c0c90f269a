package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	pkg "github.com/picshare/picshare/pkg/internal"
	"github.com/picshare/picshare/pkg/internal/cache"
	"github.com/picshare/picshare/pkg/internal/database"
	"github.com/picshare/picshare/pkg/internal/feed"
	"github.com/picshare/picshare/pkg/internal/http"
	"github.com/picshare/picshare/pkg/internal/http/api"
	"github.com/picshare/picshare/pkg/internal/services"
	"github.com/picshare/picshare/pkg/internal/storage"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Booting screen
	fmt.Println(color.YellowString(" ____  _          _\n|  _ \\(_) ___ ___| |__   __ _ _ __ ___\n| |_) | |/ __/ __| '_ \\ / _` | '__/ _ \\\n|  __/| | (__\\__ \\ | | | (_| | | |  __/\n|_|   |_|\\___|___/_| |_|\\__,_|_|  \\___|"))
	fmt.Printf("%s v%s\n", color.New(color.FgHiYellow).Add(color.Bold).Sprintf("Picshare"), pkg.AppVersion)
	fmt.Printf("The push-based social feed service\n")
	color.HiBlack("=====================================================\n")

	// Configure settings
	viper.AddConfigPath(".")
	viper.AddConfigPath("..")
	viper.SetConfigName("settings")
	viper.SetConfigType("toml")

	// Load settings
	if err := viper.ReadInConfig(); err != nil {
		log.Panic().Err(err).Msg("An error occurred when loading settings.")
	}

	// Connect to database
	db, err := database.NewGorm()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to database.")
	} else if err := database.RunMigration(db); err != nil {
		log.Fatal().Err(err).Msg("An error occurred when running database auto migration.")
	}

	// Connect to the feed cache
	rdb, err := feed.NewRedis()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when connect to redis.")
	}

	// In-process cache
	cacheStore, err := cache.NewStore()
	if err != nil {
		log.Fatal().Err(err).Msg("An error occurred when initializing cache.")
	}

	// Wire up components
	directory := services.NewDirectory(db, cacheStore)
	graph := services.NewGraphStore(db)
	posts := services.NewPosts(db)
	notifications := services.NewNotificationStore(db)
	feedCache := feed.NewCache(rdb)
	fanout := services.NewFanout(
		directory,
		graph,
		posts,
		feedCache,
		notifications,
		viper.GetInt("fanout.workers"),
	)
	auth := services.NewAuth(
		db,
		directory,
		viper.GetString("security.jwt_secret"),
		viper.GetDuration("security.session_lifetime"),
	)
	uploader := storage.NewLocalUploader(
		viper.GetString("storage.path"),
		viper.GetString("storage.base_url"),
	)

	// Configure timed tasks
	quartz := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(&log.Logger)))
	quartz.AddFunc("@every 60m", auth.DoAutoDatabaseCleanup)
	quartz.Start()

	// Server
	go http.NewServer(&api.Deps{
		Auth:          auth,
		Directory:     directory,
		Graph:         graph,
		Fanout:        fanout,
		Feed:          feedCache,
		Notifications: notifications,
		Uploader:      uploader,
	}).Listen()

	// Messages
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	quartz.Stop()
}
