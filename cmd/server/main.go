package main

import (
	"flag"
	"net/http"
	"os"
	"seotda-server/internal/config"
	"seotda-server/internal/jwt"
	"seotda-server/internal/mux"
	"seotda-server/pkg/db"
	"seotda-server/pkg/model"
	"seotda-server/pkg/room"
	"strings"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()
	jwt.LoadSecret()
	if !jwt.Enabled() {
		logrus.Warn("no jwt secret configured, player ids are not authenticated")
	}

	directory, recorder := setupStores(cfg)
	if cfg.Rooms.CacheTTL > 0 {
		cached, err := model.NewCachedDirectory(directory, cfg.Rooms.CacheTTL)
		if err != nil {
			logrus.WithError(err).Fatal("could not create room cache")
		}
		defer cached.Close()

		directory = cached
	}

	opts := room.DefaultOptions()
	opts.Game.Capacity = cfg.Game.Capacity
	opts.Game.MinPlayers = cfg.Game.MinPlayers
	opts.Game.StartingChips = cfg.Game.StartingChips
	opts.Game.BaseBet = cfg.Game.BaseBet
	opts.Game.StartDelay = cfg.StartGameDelay

	pitBoss := room.NewPitBoss(directory, recorder, opts)

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, pitBoss))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	logrus.WithField("addr", srv.Addr).Info("listening")
	logrus.Fatal(srv.ListenAndServe())
}

// setupStores uses postgres when a dsn is configured, otherwise rooms live in memory
func setupStores(cfg config.Config) (room.RoomDirectory, room.ResultRecorder) {
	if cfg.PGDSN == "" {
		logrus.WithField("open", cfg.Rooms.Open).Info("no database configured, using the in-memory room store")
		store := model.NewMemoryStore(cfg.Rooms.Open, cfg.Game.Capacity)
		return store, store
	}

	conn := db.Instance()
	if err := db.Migrate(conn, cfg.MigrationsPath); err != nil {
		logrus.WithError(err).Fatal("could not run migrations")
	}

	store := model.NewRoomStore(conn)
	return store, store
}

func loggingHandler(next http.Handler) http.Handler {
	if config.Instance().Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	if lvl := config.Instance().Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
