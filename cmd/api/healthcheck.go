package main

import (
	"context"
	"net/http"
	"time"
)

// healthcheckHandler handles GET /healthcheck.
// It reports the running version and environment together with a database
// ping; an unreachable database turns the response into a 503.
func (app *applicationDependencies) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := http.StatusOK
	body := envelope{
		"status": "available",
		"system_info": map[string]string{
			"environment": app.config.Env,
			"version":     appVersion,
		},
		"checks": map[string]string{"database": "ok"},
	}

	if err := app.models.DB.PingContext(ctx); err != nil {
		app.requestLogger(r).Warn().Err(err).Msg("database ping failed")
		status = http.StatusServiceUnavailable
		body["status"] = msgServiceUnavailable
		body["checks"] = map[string]string{"database": "unreachable"}
	}

	err := app.writeJSON(w, status, body, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
