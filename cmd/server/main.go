package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"shed-server/internal/config"
	"shed-server/internal/jwt"
	"shed-server/internal/mux"
	"shed-server/pkg/db"
	"shed-server/pkg/notify"
	"shed-server/pkg/playable/shed"
	"shed-server/pkg/room"
	"shed-server/pkg/store"

	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10
const shutdownTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")

func main() {
	flag.Parse()
	setupLogger()

	// fail fast
	if err := jwt.LoadKeys(); err != nil {
		logrus.WithError(err).Fatal("could not load jwt keys")
	}

	rules, err := gameRules(config.Instance().Game)
	if err != nil {
		logrus.WithError(err).Fatal("invalid game configuration")
	}

	st := gameStore()
	notifier, closeNotifier := gameNotifier()
	defer closeNotifier()

	pitBoss := room.NewPitBoss(st, notifier, room.Options{
		Rules:       rules,
		BotDelay:    config.Instance().Game.BotDelayDuration(),
		IdleTimeout: config.Instance().Game.IdleTimeoutDuration(),
	})
	pitBoss.StartShift()

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		ExposedHeaders: []string{"Shed-UserID"},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(c.Handler(mux.NewMux(Version, pitBoss))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server stopped")
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	logrus.Info("shutting down")

	// websockets are hijacked, so the pit boss closes them before the server drains
	pitBoss.EndShift()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("could not shut down cleanly")
	}
}

// gameRules builds the rule switches from the configuration and checks the seat limits
func gameRules(cfg config.Game) (shed.Options, error) {
	rules := shed.DefaultOptions()
	if cfg.MinPlayers > 0 {
		rules.MinPlayers = cfg.MinPlayers
	}

	if cfg.MaxPlayers > 0 {
		rules.MaxPlayers = cfg.MaxPlayers
	}

	twoRank, err := shed.ParseTwoRank(cfg.TwoRank)
	if err != nil {
		return rules, err
	}
	rules.TwoRank = twoRank

	illegalPlay, err := shed.ParseIllegalPlayPolicy(cfg.IllegalPlay)
	if err != nil {
		return rules, err
	}
	rules.IllegalPlay = illegalPlay

	return rules, rules.Validate()
}

func gameStore() store.Store {
	switch backend := config.Instance().Storage; backend {
	case config.StorageMemory:
		logrus.Warn("using the memory store, games are lost on restart")
		return store.NewMemory()
	case config.StoragePostgres:
		// run the db migrations
		if err := db.Migrate(); err != nil {
			logrus.WithError(err).Fatal("could not run migrations")
		}

		return store.NewPostgres(db.Instance())
	default:
		logrus.WithField("storage", backend).Fatal("unknown storage backend")
	}

	return nil
}

// gameNotifier logs every event and publishes it to redis when an address is configured
func gameNotifier() (notify.Notifier, func()) {
	logNotifier := notify.Log{Logger: logrus.StandardLogger()}

	cfg := config.Instance().Redis
	if cfg.Addr == "" {
		return logNotifier, func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	r, err := notify.NewRedis(ctx, cfg.Addr, cfg.DB, cfg.ChannelPrefix)
	if err != nil {
		logrus.WithError(err).Fatal("could not connect to redis")
	}

	return notify.Multi{logNotifier, r}, func() {
		if err := r.Close(); err != nil {
			logrus.WithError(err).Error("could not close redis")
		}
	}
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
