package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fairyhunter13/vending-machine-service/internal/config"
	httpopenapi "github.com/fairyhunter13/vending-machine-service/internal/http/openapi"
	"github.com/fairyhunter13/vending-machine-service/internal/model"
	"github.com/fairyhunter13/vending-machine-service/internal/obs"
	"github.com/fairyhunter13/vending-machine-service/internal/vending"
)

type App struct {
	Cfg     config.Config
	Svc     *vending.Service
	closing atomic.Bool
	started time.Time
}

func NewApp(cfg config.Config, svc *vending.Service) *App {
	return &App{Cfg: cfg, Svc: svc, started: time.Now()}
}

// StartShutdown makes mutating endpoints reject new work while the server
// drains.
func (a *App) StartShutdown() {
	a.closing.Store(true)
}

func (a *App) rejectIfClosing(w http.ResponseWriter) bool {
	if a.closing.Load() {
		WriteJSONError(w, http.StatusServiceUnavailable, "shutting_down", "")
		return true
	}
	return false
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// insertCoinHandler handles POST /coin/{value}.
func (a *App) insertCoinHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	if a.rejectIfClosing(w) {
		return
	}
	raw := strings.TrimPrefix(r.URL.Path, "/coin/")
	coin, err := model.ParseDenomination(raw)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	if err := a.Svc.InsertCoin(r.Context(), coin); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"status": "created", "coin": coin})
	obs.Logger.Info("coin_insert_accepted",
		"request_id", RequestIDFromContext(r.Context()),
		"coin", coin.String(),
	)
}

// returnCoinsHandler handles GET /coin/return.
func (a *App) returnCoinsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	if a.rejectIfClosing(w) {
		return
	}
	coins, err := a.Svc.ReturnCoins(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, coins)
}

// coinStatusHandler handles GET /coin/status.
func (a *App) coinStatusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	status, err := a.Svc.CoinStatus(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// buyItemHandler handles GET /item/buy/{name}.
func (a *App) buyItemHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	if a.rejectIfClosing(w) {
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/item/buy/")
	if name == "" {
		WriteJSONError(w, http.StatusNotFound, "not_found", "item name is required")
		return
	}
	purchase, err := a.Svc.BuyItem(r.Context(), name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, purchase)
	obs.Logger.Info("purchase_completed",
		"request_id", RequestIDFromContext(r.Context()),
		"item", purchase.Item,
		"change_coins", len(purchase.Change),
	)
}

// itemStatusHandler handles GET /item/status.
func (a *App) itemStatusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	items, err := a.Svc.ItemStatus(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// itemUpdateBody is the PUT /service/item/{name} payload. Price travels as a
// JSON number and is parsed exactly, never through a float.
type itemUpdateBody struct {
	Price  *json.Number `json:"price,omitempty"`
	Amount *int         `json:"amount,omitempty"`
}

// serviceItemHandler handles PUT /service/item/{name}.
func (a *App) serviceItemHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	if a.rejectIfClosing(w) {
		return
	}
	name := strings.TrimPrefix(r.URL.Path, "/service/item/")
	if name == "" {
		WriteJSONError(w, http.StatusNotFound, "not_found", "item name is required")
		return
	}
	body, ok := decodeBody[itemUpdateBody](w, r)
	if !ok {
		return
	}
	var price *model.Cents
	if body.Price != nil {
		p, err := model.ParsePrice(body.Price.String())
		if err != nil {
			writeDomainError(w, err)
			return
		}
		price = &p
	}
	item, err := a.Svc.ServiceItemUpdate(r.Context(), name, price, body.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// coinUpdateBody is the PUT /service/coin/{value} payload.
type coinUpdateBody struct {
	Amount *int `json:"amount"`
}

// serviceCoinHandler handles PUT /service/coin/{value}.
func (a *App) serviceCoinHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPut {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	if a.rejectIfClosing(w) {
		return
	}
	raw := strings.TrimPrefix(r.URL.Path, "/service/coin/")
	coin, err := model.ParseDenomination(raw)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	body, ok := decodeBody[coinUpdateBody](w, r)
	if !ok {
		return
	}
	if body.Amount == nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid_request", "amount is required")
		return
	}
	count, err := a.Svc.ServiceCoinUpdate(r.Context(), coin, *body.Amount)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, count)
}

// serviceStatusHandler handles GET /service/status.
func (a *App) serviceStatusHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, http.StatusMethodNotAllowed, "method_not_allowed", "")
		return
	}
	status, err := a.Svc.ServiceStatus(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// decodeBody decodes a JSON request body, enforcing the content type and
// rejecting unknown fields.
func decodeBody[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var body T
	ct := r.Header.Get("Content-Type")
	if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		WriteJSONError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", "expected application/json")
		return body, false
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	dec.UseNumber()
	if err := dec.Decode(&body); err != nil {
		WriteJSONError(w, http.StatusBadRequest, "invalid_json", err.Error())
		return body, false
	}
	return body, true
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) metricsHandler(w http.ResponseWriter, r *http.Request) {
	dispatched, failed, queried := a.Svc.Metrics()
	m := map[string]any{
		"commands_dispatched": dispatched,
		"commands_failed":     failed,
		"queries_served":      queried,
		"uptime_sec":          time.Since(a.started).Seconds(),
	}
	writeJSON(w, http.StatusOK, m)
}

func (a *App) openapiHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(httpopenapi.YAML)
}

func (a *App) docsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	html := `<!doctype html>
<html>
  <head>
    <meta charset="utf-8" />
    <title>API Docs</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      window.ui = SwaggerUIBundle({
        url: '/openapi.yaml',
        dom_id: '#swagger-ui'
      });
    </script>
  </body>
</html>`
	_, _ = w.Write([]byte(html))
}
