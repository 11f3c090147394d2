package main

import (
	"net/http"
	"sort"
	"strings"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/sushihentaime/blogdocs/internal/logger"
)

func (app *application) logError(r *http.Request, err error) {
	app.logger.Error(err.Error(),
		logger.String("method", r.Method),
		logger.String("url", r.URL.RequestURI()),
		logger.String("request_id", middleware.GetReqID(r.Context())),
	)
}

func (app *application) writeResponse(w http.ResponseWriter, r *http.Request, env envelope) {
	err := app.writeJSON(w, env, nil)
	if err != nil {
		app.logError(r, err)
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (app *application) successResponse(w http.ResponseWriter, r *http.Request, status int, message string, data any) {
	app.writeResponse(w, r, newEnvelope(false, message, status, data))
}

func (app *application) writeErrorResponse(w http.ResponseWriter, r *http.Request, status int, message string) {
	app.writeResponse(w, r, newEnvelope(true, message, status, nil))
}

func (app *application) serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.logError(r, err)
	message := "the server encountered a problem and could not process your request"
	app.writeErrorResponse(w, r, http.StatusInternalServerError, message)
}

func (app *application) badRequestErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.writeErrorResponse(w, r, http.StatusBadRequest, err.Error())
}

func (app *application) notFoundErrorResponse(w http.ResponseWriter, r *http.Request, message string) {
	app.logger.Info(message, logger.String("url", r.URL.RequestURI()))
	app.writeErrorResponse(w, r, http.StatusNotFound, message)
}

func (app *application) routeNotFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusNotFound, "the requested resource could not be found")
}

func (app *application) methodNotAllowedErrorResponse(w http.ResponseWriter, r *http.Request) {
	app.writeErrorResponse(w, r, http.StatusMethodNotAllowed, "the "+r.Method+" method is not supported for this resource")
}

// failedValidationErrorResponse answers 403, e.g. "blogId is missing".
func (app *application) failedValidationErrorResponse(w http.ResponseWriter, r *http.Request, errors map[string]string) {
	app.writeErrorResponse(w, r, http.StatusForbidden, validationMessage(errors))
}

func validationMessage(errors map[string]string) string {
	fields := make([]string, 0, len(errors))
	for field := range errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		messages = append(messages, field+" "+errors[field])
	}

	return strings.Join(messages, ", ")
}
