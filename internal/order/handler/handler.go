package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"order-intake/internal/catalog"
	"order-intake/internal/match"
	"order-intake/internal/order/model"
	"order-intake/internal/order/service"
)

// App is what the handlers share: the published catalog and the order pipeline.
type App struct {
	Catalog          *catalog.Store
	Intake           *service.Intake
	MatchThreshold   int
	BatchWorkers     int
	CatalogPath      string
	CatalogHeaderRow int
	Now              func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// currentCatalog пишет 503, если каталог ещё не загружен.
func (a *App) currentCatalog(w http.ResponseWriter) (*catalog.Index, bool) {
	idx := a.Catalog.Current()
	if idx == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog not loaded")
		return nil, false
	}
	return idx, true
}

func Health(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"status":          "ok",
			"catalog_entries": app.Catalog.Current().Len(),
		})
	}
}

// ValidateOrder: POST /orders/validate, body is the extracted order, reply is the sales-order document.
func ValidateOrder(app *App, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := reqLogger(logger, r)

		body, ok := readBody(w, r)
		if !ok {
			return
		}
		idx, ok := app.currentCatalog(w)
		if !ok {
			return
		}
		o, err := model.DecodeOrder(body)
		if err != nil {
			writeOrderError(w, err)
			return
		}
		res, err := app.Intake.Process(o, idx)
		if err != nil {
			writeOrderError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, service.BuildDocument(res, app.now()))
		log.Info().
			Str("order_id", res.ID.String()).
			Str("customer", res.CustomerName).
			Int("lines", len(res.Outcomes)).
			Int("skipped", res.Skipped).
			Dict("statuses", statusCounts(res.Counts())).
			Int("consolidation", len(res.Consolidation)).
			Dur("elapsed", time.Since(start)).
			Msg("order validated")
	}
}

type batchItem struct {
	Index    int             `json:"index"`
	Document *model.Document `json:"document,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// ValidateBatch: POST /orders/validate/batch, body is a JSON array of orders.
// Orders are validated concurrently against one catalog snapshot.
func ValidateBatch(app *App, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := reqLogger(logger, r)

		body, ok := readBody(w, r)
		if !ok {
			return
		}
		idx, ok := app.currentCatalog(w)
		if !ok {
			return
		}
		var raws []json.RawMessage
		if err := json.Unmarshal(body, &raws); err != nil {
			writeError(w, http.StatusBadRequest, "expected a JSON array of orders: "+err.Error())
			return
		}

		out := make([]batchItem, len(raws))
		orders := make([]model.Order, 0, len(raws))
		pos := make([]int, 0, len(raws))
		for i, raw := range raws {
			out[i].Index = i
			o, err := model.DecodeOrder(raw)
			if err != nil {
				out[i].Error = err.Error()
				continue
			}
			orders = append(orders, o)
			pos = append(pos, i)
		}

		items, err := app.Intake.ProcessBatch(r.Context(), orders, idx, app.BatchWorkers)
		if err != nil {
			writeError(w, http.StatusServiceUnavailable, err.Error())
			return
		}
		now := app.now()
		failed := 0
		for j, it := range items {
			i := pos[j]
			if it.Err != nil {
				out[i].Error = it.Err.Error()
				continue
			}
			doc := service.BuildDocument(it.Result, now)
			out[i].Document = &doc
		}
		for _, it := range out {
			if it.Error != "" {
				failed++
			}
		}

		writeJSON(w, http.StatusOK, out)
		log.Info().
			Int("orders", len(out)).
			Int("failed", failed).
			Dur("elapsed", time.Since(start)).
			Msg("batch validated")
	}
}

// RecommendOrder: POST /orders/recommend, the restocking view of an order.
func RecommendOrder(app *App, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := reqLogger(logger, r)

		body, ok := readBody(w, r)
		if !ok {
			return
		}
		idx, ok := app.currentCatalog(w)
		if !ok {
			return
		}
		o, err := model.DecodeOrder(body)
		if err != nil {
			writeOrderError(w, err)
			return
		}
		recs := service.Recommend(o.Products, idx, app.Intake.Pending)

		counts := make(map[model.RecommendationStatus]int)
		for _, rec := range recs {
			counts[rec.Status]++
		}
		writeJSON(w, http.StatusOK, map[string]any{"recommendations": recs})
		log.Info().Int("lines", len(recs)).Dict("statuses", statusCounts(counts)).Msg("recommendations built")
	}
}

type matchRequest struct {
	Reference string `json:"reference"`
	Threshold *int   `json:"threshold"`
}

type matchCandidate struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Confidence int    `json:"confidence"`
}

// MatchReference: POST /orders/match, shows how a free-text reference resolves.
func MatchReference(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, ok := readBody(w, r)
		if !ok {
			return
		}
		idx, ok := app.currentCatalog(w)
		if !ok {
			return
		}
		var req matchRequest
		if err := json.Unmarshal(body, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad json: "+err.Error())
			return
		}
		if strings.TrimSpace(req.Reference) == "" {
			writeError(w, http.StatusBadRequest, "reference is required")
			return
		}
		threshold := app.MatchThreshold
		if req.Threshold != nil {
			if *req.Threshold < 0 || *req.Threshold > 100 {
				writeError(w, http.StatusBadRequest, "threshold must be within 0..100")
				return
			}
			threshold = *req.Threshold
		}

		ms := match.FindMatches(req.Reference, idx, threshold)
		cands := make([]matchCandidate, len(ms))
		for i, m := range ms {
			cands[i] = matchCandidate{Code: m.Entry.Code, Name: m.Entry.Name, Confidence: m.Confidence}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"reference":  req.Reference,
			"normalized": match.Normalize(req.Reference),
			"threshold":  threshold,
			"matches":    cands,
		})
	}
}

// GetCatalogEntry: GET /catalog/{code}. A miss lists near codes so a typo can be fixed.
func GetCatalogEntry(app *App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		idx, ok := app.currentCatalog(w)
		if !ok {
			return
		}
		code := chi.URLParam(r, "code")
		e, found := idx.Lookup(code)
		if !found {
			writeJSON(w, http.StatusNotFound, map[string]any{
				"error":       "unknown code",
				"suggestions": idx.SimilarCodes(code, match.DefaultLimit),
			})
			return
		}
		writeJSON(w, http.StatusOK, e)
	}
}

// ReloadCatalog: POST /catalog/reload. On failure the old catalog keeps serving.
func ReloadCatalog(app *App, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := reqLogger(logger, r)
		start := time.Now()

		idx, err := app.Catalog.Reload(app.CatalogPath, app.CatalogHeaderRow)
		if err != nil {
			log.Error().Err(err).Str("path", app.CatalogPath).Msg("catalog reload failed")
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		log.Info().
			Str("path", app.CatalogPath).
			Int("entries", idx.Len()).
			Int("skipped", idx.Skipped()).
			Dur("elapsed", time.Since(start)).
			Msg("catalog reloaded")
		writeJSON(w, http.StatusOK, map[string]any{"entries": idx.Len(), "skipped": idx.Skipped()})
	}
}

func writeOrderError(w http.ResponseWriter, err error) {
	if errors.Is(err, model.ErrEmptyOrder) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	writeError(w, http.StatusBadRequest, err.Error())
}
