package httpapi

import (
	"expvar"
	"net/http"
)

// NewRouter registers HTTP routes and returns the handler with middleware.
func NewRouter(app *App) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/coin/return", app.returnCoinsHandler)
	mux.HandleFunc("/coin/status", app.coinStatusHandler)
	mux.HandleFunc("/coin/", app.insertCoinHandler)
	mux.HandleFunc("/item/buy/", app.buyItemHandler)
	mux.HandleFunc("/item/status", app.itemStatusHandler)
	mux.HandleFunc("/service/item/", app.serviceItemHandler)
	mux.HandleFunc("/service/coin/", app.serviceCoinHandler)
	mux.HandleFunc("/service/status", app.serviceStatusHandler)
	mux.HandleFunc("/healthz", app.healthHandler)
	mux.HandleFunc("/debug/metrics", app.metricsHandler)
	mux.Handle("/debug/vars", expvar.Handler())
	mux.HandleFunc("/openapi.yaml", app.openapiHandler)
	mux.HandleFunc("/docs", app.docsHandler)
	return WithRequestID(WithLogging(mux))
}
