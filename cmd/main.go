package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/samandr77/microservices/advances/internal/api"
	"github.com/samandr77/microservices/advances/internal/clients/airtable"
	"github.com/samandr77/microservices/advances/internal/service"
	"github.com/samandr77/microservices/advances/pkg/config"
	"github.com/samandr77/microservices/advances/pkg/logger"
)

// WriteTimeout covers a listing that follows every page of the remote table.
const (
	ReadTimeout  = 5 * time.Second
	WriteTimeout = 60 * time.Second
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.New(".env")
	panicOnErr("load config", err)

	_, err = logger.New(cfg.Logger.Level)
	panicOnErr("create logger", err)

	remote := airtable.NewClient(cfg.Airtable)

	s := service.New(
		airtable.NewRecordsGateway(remote, cfg.Airtable.RecordsTableID),
		airtable.NewUsersDirectory(remote, cfg.Airtable.UsersTableID),
	)

	handler := api.NewHandler(s)
	mw := api.NewMiddleware(cfg.HTTP)

	router := api.NewRouter(handler, mw)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:      router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: WriteTimeout,
	}

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Panicf("listen and serve: %s", err)
		}
	}()

	slog.InfoContext(ctx, "service started", "port", cfg.HTTP.Port)

	wg.Add(1)

	go func() {
		defer wg.Done()

		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
		sig := <-ch

		slog.InfoContext(ctx, "got OS signal", "signal", sig.String())

		err := server.Shutdown(ctx)
		if err != nil {
			slog.ErrorContext(ctx, "server shutdown", "error", err)
		}
	}()

	wg.Wait()
}

func panicOnErr(msg string, err error) {
	if err != nil {
		log.Panicf("%s: %s", msg, err)
	}
}
