package main

import (
	"context"
	"errors"
	"os"
	"os/signal"

	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/api"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/app"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/cart"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/config"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/localstore"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/logger"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/notify"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/services"
	"github.com/AkashZaheer045/BakedBliss-Frontend-sub000/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("configuration error: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.InitLogger(cfg.LogLevel)
	log.Info().Str("api_url", cfg.APIBaseURL).Msg("Starting BakedBliss")

	storage, err := localstore.Open(cfg.StateFile, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open local store")
	}

	// The session store needs the API client and the client needs the
	// session's expiry hook; the indirection breaks the cycle.
	var sess *session.Store
	client, err := api.New(api.Config{
		BaseURL:     cfg.APIBaseURL,
		Timeout:     cfg.RequestTimeout,
		Credentials: storage,
		OnUnauthorized: func() {
			if sess != nil {
				sess.Expire()
			}
		},
		Logger: log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build API client")
	}

	authSvc := services.NewAuthService(client, log)
	productSvc := services.NewProductService(client, log)
	cartSvc := services.NewCartService(client, log)
	orderSvc := services.NewOrderService(client, log)
	adminSvc := services.NewAdminService(client, log)
	contactSvc := services.NewContactService(client, log)
	favoritesSvc := services.NewFavoritesService(client, log)

	sess = session.New(authSvc, storage, log)
	notifier := &notify.Console{Out: os.Stdout}
	cartStore := cart.New(cartSvc, sess, notifier, log)
	machine := app.NewMachine(sess, log)
	checkout := app.NewCheckout(cartStore, orderSvc, sess, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// A rehydrated session skips auth entirely, so fetch its cart now.
	if sess.IsAuthenticated() {
		if err := cartStore.Refresh(ctx); err != nil {
			log.Warn().Err(err).Msg("Initial cart refresh failed")
		}
	}

	ui := app.NewUI(app.UIConfig{
		In:             os.Stdin,
		Out:            os.Stdout,
		Machine:        machine,
		Session:        sess,
		Cart:           cartStore,
		Checkout:       checkout,
		Products:       productSvc,
		Orders:         orderSvc,
		Favorites:      favoritesSvc,
		Contact:        contactSvc,
		Admin:          adminSvc,
		Auth:           authSvc,
		Notifier:       notifier,
		SplashDuration: cfg.SplashDuration,
		Logger:         log,
	})

	if err := ui.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("Storefront exited with error")
		os.Exit(1)
	}

	log.Info().Msg("Goodbye")
}
