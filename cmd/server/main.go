package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MikailBag/birthdaybot/internal/bot"
	"github.com/MikailBag/birthdaybot/internal/config"
	api "github.com/MikailBag/birthdaybot/internal/http"
	"github.com/MikailBag/birthdaybot/internal/log"
	"github.com/MikailBag/birthdaybot/internal/metrics"
	"github.com/MikailBag/birthdaybot/internal/queue"
	"github.com/MikailBag/birthdaybot/internal/repo"
	"github.com/MikailBag/birthdaybot/internal/sweep"
	"github.com/MikailBag/birthdaybot/internal/telegram"
)

func main() {
	cfg := config.Load()

	logger, err := log.Init(cfg.Prod)
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	if cfg.TelegramToken == "" {
		log.Errorf("telegram token missing: set TELEGRAM_TOKEN or provide ./tg-token")
		os.Exit(1)
	}
	if cfg.WebhookSecret == "" {
		log.Errorf("WEBHOOK_SECRET missing")
		os.Exit(1)
	}

	metrics.MustRegister()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	store, err := repo.NewStore(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Errorf("mongo connect: %v", err)
		os.Exit(1)
	}
	defer store.Close(context.Background())

	if err := store.EnsureIndexes(ctx); err != nil {
		log.Errorf("ensure indexes: %v", err)
		os.Exit(1)
	}

	var rds *repo.Redis
	if cfg.RedisAddr != "" {
		rds = repo.NewRedis(cfg.RedisAddr)
		if err := rds.Ping(ctx); err != nil {
			log.Warnf("redis unavailable, register rate limit disabled: %v", err)
			rds = nil
		} else {
			defer rds.Close()
		}
	}

	pub := queue.NewNoop()
	if cfg.RabbitURL != "" {
		p, err := queue.NewRabbit(cfg.RabbitURL, queue.Exchange)
		if err != nil {
			log.Errorf("rabbit connect: %v", err)
			os.Exit(1)
		}
		pub = p
	}
	defer pub.Close()

	tg := telegram.NewClient(cfg.TelegramAPI, cfg.TelegramToken)
	me, err := tg.GetMe(ctx)
	if err != nil {
		log.Errorf("telegram getMe: %v", err)
		os.Exit(1)
	}
	log.Infof("authorized as @%s", me.Username)

	reg := bot.NewRegistrar(store, pub)
	sw := sweep.New(store, tg, pub)

	h := api.NewHandler(tg, reg, sw, store, rds, me.Username, cfg.WebhookSecret, cfg.PublicURL, cfg.RegisterRatePerMin)
	r := api.NewRouter(h)

	srvErr := make(chan error, 1)
	go func() { srvErr <- r.Run(":" + cfg.Port) }()
	log.Infof("birthdaybot listening on :%s", cfg.Port)

	// встроенный планировщик на случай, когда /greet некому дергать
	stopTicker := make(chan struct{})
	if cfg.SweepInterval > 0 {
		go runSweepLoop(sw, cfg.SweepInterval, stopTicker)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Infof("signal: %s, shutting down", s)
	case err := <-srvErr:
		log.Errorf("server error: %v", err)
	}
	close(stopTicker)
}

func runSweepLoop(sw *sweep.Sweeper, interval time.Duration, stop <-chan struct{}) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			res, err := sw.Run(ctx, time.Now().UTC())
			cancel()
			if err != nil {
				log.Errorf("scheduled sweep: %v", err)
				continue
			}
			log.Infof("scheduled sweep: sent=%d failed=%d", res.Sent, len(res.Failed))
		case <-stop:
			return
		}
	}
}
