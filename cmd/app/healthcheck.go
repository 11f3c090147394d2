package main

import (
	"context"
	"net/http"
	"time"
)

// pinger is implemented by stores that can report on their backend.
type pinger interface {
	Ping(ctx context.Context) error
}

func (app *application) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	storeStatus := "available"
	if app.db != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := app.db.Ping(ctx); err != nil {
			app.logError(r, err)
			storeStatus = "unavailable"
		}
	}

	data := map[string]any{
		"status": "available",
		"system_info": map[string]string{
			"environment":  app.config.Environment,
			"version":      app.config.Version,
			"store":        app.config.StoreDriver,
			"store_status": storeStatus,
		},
	}

	app.successResponse(w, r, http.StatusOK, "available", data)
}
