package main

import (
	"context"
	"fmt"

	"github.com/Consa-Interactive/navandex-sub001/internal/adapter/auth"
	"github.com/Consa-Interactive/navandex-sub001/internal/adapter/cache"
	"github.com/Consa-Interactive/navandex-sub001/internal/adapter/client/whatsapp"
	"github.com/Consa-Interactive/navandex-sub001/internal/adapter/config"
	"github.com/Consa-Interactive/navandex-sub001/internal/adapter/handler/http"
	"github.com/Consa-Interactive/navandex-sub001/internal/adapter/logger"
	"github.com/Consa-Interactive/navandex-sub001/internal/adapter/storage"
	"github.com/Consa-Interactive/navandex-sub001/internal/adapter/storage/repository"
	"github.com/Consa-Interactive/navandex-sub001/internal/adapter/uploads"
	"github.com/Consa-Interactive/navandex-sub001/internal/core/port"
	"github.com/Consa-Interactive/navandex-sub001/internal/core/service"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.NewConfig()
	if err != nil {
		fmt.Printf("config error:%s", err)
		return
	}

	log := logger.NewLogger(conf.App)
	if log == nil {
		fmt.Printf("error creating log")
		return
	}
	defer func() {
		err := log.Sync()
		if err != nil {
			fmt.Printf("log error: %s", err)
		}
	}()

	ctx := context.Background()

	db, err := storage.NewDBStorage(ctx, conf.Database)
	if err != nil {
		log.Error("database error", zap.Error(err))
		return
	}
	err = db.RunMigrations()
	if err != nil {
		log.Error("database migration error", zap.Error(err))
		return
	}

	repo, err := repository.NewRepository(db)
	if err != nil {
		log.Error("repository creating error", zap.Error(err))
		return
	}
	tokenService, err := auth.New()
	if err != nil {
		log.Error("token service creating error", zap.Error(err))
		return
	}

	notifier, err := whatsapp.NewNotifier(conf.WhatsApp, log.Named("WhatsApp"))
	if err != nil {
		log.Error("whatsapp notifier creating error", zap.Error(err))
		return
	}
	notifier.Start(ctx, repo)
	defer notifier.Stop()

	// Optional collaborators; nil means the feature degrades gracefully.
	var rateCache port.RateCache
	if rc := cache.NewRateCache(ctx, conf.Redis, log.Named("Cache")); rc != nil {
		rateCache = rc
		defer func() { _ = rc.Close() }()
	}
	var imageStore port.ImageStore
	is, err := uploads.NewImageStore(conf.Uploads)
	if err != nil {
		log.Error("image store creating error", zap.Error(err))
		return
	}
	if is != nil {
		imageStore = is
	}

	svc, err := service.NewService(repo, tokenService, notifier, rateCache, imageStore, log.Named("Service"))
	if err != nil {
		log.Error("service creating error", zap.Error(err))
		return
	}

	userHandler, err := http.NewUserHandler(svc, log.Named("User handler"))
	if err != nil {
		log.Error("user handler creating error", zap.Error(err))
		return
	}
	orderHandler, err := http.NewOrderHandler(svc, log.Named("Order handler"))
	if err != nil {
		log.Error("order handler creating error", zap.Error(err))
		return
	}
	bannerHandler, err := http.NewBannerHandler(svc, log.Named("Banner handler"))
	if err != nil {
		log.Error("banner handler creating error", zap.Error(err))
		return
	}
	rateHandler, err := http.NewRateHandler(svc, log.Named("Rate handler"))
	if err != nil {
		log.Error("rate handler creating error", zap.Error(err))
		return
	}
	invoiceHandler, err := http.NewInvoiceHandler(svc, log.Named("Invoice handler"))
	if err != nil {
		log.Error("invoice handler creating error", zap.Error(err))
		return
	}

	r, err := http.NewRouter(tokenService, userHandler, orderHandler, bannerHandler, rateHandler, invoiceHandler)
	if err != nil {
		log.Error("router creating error", zap.Error(err))
		return
	}

	err = r.Serve(conf.HTTP.HostString)
	if err != nil {
		log.Error("router serve error", zap.Error(err))
		return
	}
}
