// The dashboard binary runs the client against a real backend and prints
// the rendered page whenever the view model changes. It is the console
// equivalent of the web shell: same controllers, same data flow, a terminal
// instead of a DOM.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Gide-1400/fast-shipment-world/internal/i18n"
	"github.com/Gide-1400/fast-shipment-world/internal/models"
	"github.com/Gide-1400/fast-shipment-world/internal/page"
	"github.com/Gide-1400/fast-shipment-world/internal/remote"
	"github.com/Gide-1400/fast-shipment-world/internal/session"
	"github.com/Gide-1400/fast-shipment-world/shared/config"
	"github.com/Gide-1400/fast-shipment-world/shared/kafka"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, err := newClient(ctx, cfg, log)
	if err != nil {
		log.Fatal("backend unavailable", zap.String("backend", cfg.Backend), zap.Error(err))
	}

	translator := i18n.New(cfg.Language)

	sessionStore := session.NewFileStore(cfg.SessionFile)
	if st, err := sessionStore.Load(); err == nil && st.Language != "" {
		translator.SetLanguage(st.Language)
	}
	auth := session.NewAuth(client, sessionStore)

	var publisher kafka.Publisher
	if cfg.KafkaBroker != "" {
		producer := kafka.NewProducer(cfg.KafkaBroker, cfg.KafkaTopic, log)
		defer producer.Close()
		publisher = producer
	}

	deps := page.Deps{
		Client:     client,
		Events:     publisher,
		Alerts:     page.NewLogAlerter(translator, log),
		Log:        log,
		Translator: translator,
	}

	user, err := auth.Restore(ctx)
	if err != nil {
		log.Warn("session restore failed", zap.Error(err))
	}
	if user == nil && cfg.Backend == "memory" {
		// The in-memory backend starts empty, so the demo seeds itself.
		user = seedDemo(ctx, client, auth, log)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	if user == nil {
		runLanding(ctx, deps, stop, log)
		return
	}

	dash := page.NewDashboard(deps)
	if err := dash.Start(ctx, user); err != nil {
		log.Fatal("dashboard refused to start", zap.Error(err))
	}

	log.Info("✅ dashboard running", zap.String("backend", cfg.Backend), zap.String("user", user.ID))
	watch(ctx, stop, dash.Store().Version, func() {
		fmt.Println(dash.Render().String())
	})

	dash.Stop()
	log.Info("shutdown complete")
}

// newClient builds the configured document store backend.
func newClient(ctx context.Context, cfg *config.Config, log *zap.Logger) (remote.Client, error) {
	switch cfg.Backend {
	case "mongo":
		return remote.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB, log)
	case "postgres":
		pg, err := remote.NewPostgresClient(cfg.DBURL(), log)
		if err != nil {
			return nil, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		return pg, nil
	default:
		return remote.NewMemoryClient(), nil
	}
}

func runLanding(ctx context.Context, deps page.Deps, stop <-chan os.Signal, log *zap.Logger) {
	landing := page.NewLanding(deps)
	landing.Start(ctx)
	log.Info("✅ landing running (no session)")
	watch(ctx, stop, landing.Store().Version, func() {
		fmt.Println(landing.Render().String())
	})
	landing.Stop()
	log.Info("shutdown complete")
}

// watch re-renders whenever the view model version moves, until a signal
// arrives or ctx ends.
func watch(ctx context.Context, stop <-chan os.Signal, version func() uint64, render func()) {
	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	var seen uint64
	render()
	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			if v := version(); v != seen {
				seen = v
				render()
			}
		}
	}
}

// seedDemo signs in a demo sender with a couple of shipments so the page
// has something to show.
func seedDemo(ctx context.Context, client remote.Client, auth *session.Auth, log *zap.Logger) *models.User {
	user := models.User{
		ID:     "demo-sender",
		Name:   "أحمد",
		Email:  "demo@example.com",
		City:   "الرياض",
		Role:   models.RoleSender,
		Rating: 5.0,
	}
	if _, err := client.Insert(ctx, models.CollectionUsers, user.Doc()); err != nil {
		log.Warn("demo seed failed", zap.Error(err))
		return nil
	}
	if err := auth.SignIn(user, "demo-token"); err != nil {
		log.Warn("demo sign-in failed", zap.Error(err))
	}
	log.Info("demo user seeded", zap.String("user", user.ID))
	return &user
}
