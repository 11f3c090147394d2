package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sushihentaime/blogdocs/internal/logger"
)

func (app *application) serve() error {
	srv := &http.Server{
		Addr:         app.config.Port,
		Handler:      app.routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     app.logger.StdLogger(),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		s := <-quit

		app.logger.Info("shutting down server", logger.String("signal", s.String()))

		ctx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", logger.String("addr", srv.Addr), logger.String("env", app.config.Environment))

	var err error
	if app.config.Environment == "production" {
		err = srv.ListenAndServeTLS(app.config.TLSCertFile, app.config.TLSKeyFile)
	} else {
		err = srv.ListenAndServe()
	}
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", logger.String("addr", srv.Addr))

	return nil
}
