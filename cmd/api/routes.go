package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"arrivals.chinatownlogistic.com/internal/app"
	"arrivals.chinatownlogistic.com/internal/restapi"
	"arrivals.chinatownlogistic.com/internal/webui"
)

func routes(application *app.Application, api *restapi.RestAPI) http.Handler {
	router := httprouter.New()

	webui.New(application).SetWebUIRoutes(router)
	api.SetRoutes(router)

	var handler http.Handler = router
	handler = restapi.SecurityHeaders(handler)
	handler = restapi.CompressionMiddleware(handler)
	handler = restapi.NewRequestLoggingMiddleware(application.Logger)(handler)
	return handler
}
