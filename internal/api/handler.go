package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gyaneshwarpardhi/automation/internal/automation"
	"github.com/gyaneshwarpardhi/automation/internal/catalog"
	"github.com/gyaneshwarpardhi/automation/internal/engine"
	"github.com/gyaneshwarpardhi/automation/internal/event"
	"github.com/gyaneshwarpardhi/automation/internal/metrics"
	"github.com/gyaneshwarpardhi/automation/internal/notify"
)

const maxBatchSize = 100

// Deps are the collaborators of the HTTP layer.
type Deps struct {
	Loader   *catalog.Loader
	Build    func(*catalog.Catalog) *automation.Editor
	Batcher  *engine.Batcher
	Notifier notify.Notifier
}

// Handler holds all HTTP handler dependencies.
type Handler struct {
	deps    Deps
	editor  atomic.Pointer[automation.Editor]
	mux     *http.ServeMux
	handler http.Handler
}

// New creates an HTTP handler serving ed and registers all routes. When
// deps carries a Loader and Build, the editor is rebuilt on every successful
// catalog reload, whether triggered over HTTP or by the file watcher.
func New(deps Deps, ed *automation.Editor) *Handler {
	h := &Handler{deps: deps, mux: http.NewServeMux()}
	h.editor.Store(ed)
	if deps.Loader != nil && deps.Build != nil {
		deps.Loader.OnChange(func(c *catalog.Catalog) {
			h.SwapEditor(deps.Build(c))
		})
	}

	h.mux.HandleFunc("GET /v1/catalog", h.getCatalog)
	h.mux.HandleFunc("POST /v1/catalog/reload", h.reloadCatalog)
	h.mux.HandleFunc("GET /v1/events/{event}/attributes", h.listAttributes)
	h.mux.HandleFunc("GET /v1/events/{event}/conditions/{key}/operators", h.listOperators)
	h.mux.HandleFunc("GET /v1/conditions/{key}/options", h.conditionOptions)
	h.mux.HandleFunc("GET /v1/actions/{name}/options", h.actionOptions)
	h.mux.HandleFunc("GET /v1/actions/{name}/input", h.actionInput)

	h.mux.HandleFunc("POST /v1/automations", h.newRule)
	h.mux.HandleFunc("POST /v1/automations/event", h.changeEvent)
	h.mux.HandleFunc("POST /v1/automations/conditions", h.appendCondition)
	h.mux.HandleFunc("POST /v1/automations/actions", h.appendAction)
	h.mux.HandleFunc("POST /v1/automations/conditions/{index}/remove", h.removeCondition)
	h.mux.HandleFunc("POST /v1/automations/actions/{index}/remove", h.removeAction)
	h.mux.HandleFunc("POST /v1/automations/conditions/{index}/reset", h.resetCondition)
	h.mux.HandleFunc("POST /v1/automations/actions/{index}/reset", h.resetAction)
	h.mux.HandleFunc("POST /v1/automations/format", h.format)
	h.mux.HandleFunc("POST /v1/automations/format/batch", h.formatBatch)
	h.mux.HandleFunc("POST /v1/automations/stored", h.toStored)
	h.mux.HandleFunc("POST /v1/automations/preview", h.preview)

	h.mux.HandleFunc("GET /healthz", h.healthz)
	h.mux.HandleFunc("GET /readyz", h.readyz)
	h.mux.Handle("GET /metrics", promhttp.Handler())

	h.handler = loggingMiddleware(h.mux)
	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}

// SwapEditor atomically replaces the editing context (used on catalog reload).
func (h *Handler) SwapEditor(ed *automation.Editor) {
	h.editor.Store(ed)
}

func (h *Handler) currentEditor() *automation.Editor {
	return h.editor.Load()
}

// requestEditor returns the current editor with a notifier that records the
// notices raised while serving this request.
func (h *Handler) requestEditor() (*automation.Editor, *notify.Recorder) {
	rec := notify.NewRecorder(h.deps.Notifier)
	return h.currentEditor().WithNotifier(rec), rec
}

func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("invalid JSON: %s", err)
	}
	return nil
}

func pathIndex(r *http.Request) (int, error) {
	i, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		return 0, fmt.Errorf("invalid index %q", r.PathValue("index"))
	}
	return i, nil
}

// GET /v1/catalog: the catalog merged with custom attributes.
func (h *Handler) getCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.currentEditor().Catalog())
}

// POST /v1/catalog/reload: re-read the catalog file and rebuild the editor.
func (h *Handler) reloadCatalog(w http.ResponseWriter, r *http.Request) {
	if h.deps.Loader == nil || h.deps.Build == nil {
		writeError(w, http.StatusServiceUnavailable, "catalog reload is not configured")
		return
	}
	c, err := h.deps.Loader.Reload()
	if errors.Is(err, catalog.ErrInvalidCatalog) {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"reloaded":      true,
		"events_count":  len(c.Events),
		"actions_count": len(c.Actions),
	})
}

// GET /v1/events/{event}/attributes
func (h *Handler) listAttributes(w http.ResponseWriter, r *http.Request) {
	attrs, err := h.currentEditor().Attributes(event.Name(r.PathValue("event")))
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, attrs)
}

// GET /v1/events/{event}/conditions/{key}/operators?mode=edit
func (h *Handler) listOperators(w http.ResponseWriter, r *http.Request) {
	ed := h.currentEditor()
	rule := &automation.Rule{EventName: event.Name(r.PathValue("event"))}
	key := r.PathValue("key")
	mode := automation.Mode(r.URL.Query().Get("mode"))
	ops, err := ed.Operators(rule, mode, key)
	if err != nil {
		writeEditorError(w, err)
		return
	}
	it, err := ed.InputType(rule, key)
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"input_type":       it,
		"filter_operators": ops,
	})
}

// GET /v1/conditions/{key}/options
func (h *Handler) conditionOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.currentEditor().ConditionOptions(r.PathValue("key")))
}

// GET /v1/actions/{name}/options
func (h *Handler) actionOptions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.currentEditor().ActionOptions(r.PathValue("name")))
}

// GET /v1/actions/{name}/input
func (h *Handler) actionInput(w http.ResponseWriter, r *http.Request) {
	show, err := h.currentEditor().ShowActionInput(r.PathValue("name"))
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"show_input": show})
}

// POST /v1/automations: start a new rule for an event.
func (h *Handler) newRule(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name        string     `json:"name"`
		Description string     `json:"description"`
		EventName   event.Name `json:"event_name"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.EventName == "" {
		writeError(w, http.StatusBadRequest, "event_name is required")
		return
	}
	ed, rec := h.requestEditor()
	rule := &automation.Rule{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Active:      true,
		EventName:   req.EventName,
	}
	if err := ed.OnEventChange(rule); err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ruleResponse{Rule: rule, Notices: rec.Notices()})
}

// mutate decodes a rule, applies fn to it and writes the result.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, fn func(*automation.Editor, *automation.Rule) error) {
	var rule automation.Rule
	if err := decode(r, &rule); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	ed, rec := h.requestEditor()
	if err := fn(ed, &rule); err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ruleResponse{Rule: &rule, Notices: rec.Notices()})
}

// mutateAt is mutate for operations addressing one condition or action.
func (h *Handler) mutateAt(w http.ResponseWriter, r *http.Request, fn func(*automation.Editor, *automation.Rule, int) error) {
	i, err := pathIndex(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.mutate(w, r, func(ed *automation.Editor, rule *automation.Rule) error {
		return fn(ed, rule, i)
	})
}

// POST /v1/automations/event: reset conditions and actions for the rule's event.
func (h *Handler) changeEvent(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, (*automation.Editor).OnEventChange)
}

func (h *Handler) appendCondition(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, (*automation.Editor).AppendCondition)
}

func (h *Handler) appendAction(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, func(ed *automation.Editor, rule *automation.Rule) error {
		ed.AppendAction(rule)
		return nil
	})
}

func (h *Handler) removeCondition(w http.ResponseWriter, r *http.Request) {
	h.mutateAt(w, r, (*automation.Editor).RemoveCondition)
}

func (h *Handler) removeAction(w http.ResponseWriter, r *http.Request) {
	h.mutateAt(w, r, (*automation.Editor).RemoveAction)
}

func (h *Handler) resetCondition(w http.ResponseWriter, r *http.Request) {
	h.mutateAt(w, r, (*automation.Editor).ResetConditionOperator)
}

func (h *Handler) resetAction(w http.ResponseWriter, r *http.Request) {
	h.mutateAt(w, r, (*automation.Editor).ResetActionParams)
}

// POST /v1/automations/format: stored rule to display shape.
func (h *Handler) format(w http.ResponseWriter, r *http.Request) {
	var rule automation.Rule
	if err := decode(r, &rule); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	view, err := h.currentEditor().Format(&rule)
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// POST /v1/automations/format/batch: up to 100 rules, formatted concurrently.
func (h *Handler) formatBatch(w http.ResponseWriter, r *http.Request) {
	var rules []*automation.Rule
	if err := decode(r, &rules); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if len(rules) == 0 {
		writeError(w, http.StatusBadRequest, "batch must contain at least one rule")
		return
	}
	if len(rules) > maxBatchSize {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("batch size %d exceeds max %d", len(rules), maxBatchSize))
		return
	}
	for i, rule := range rules {
		if rule == nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("rules[%d] is null", i))
			return
		}
	}
	if h.deps.Batcher == nil {
		writeError(w, http.StatusServiceUnavailable, "batch formatting is not configured")
		return
	}
	results, err := h.deps.Batcher.FormatAll(r.Context(), h.currentEditor(), rules)
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	failed := 0
	for _, res := range results {
		if res.Error != "" {
			failed++
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":   len(rules),
		"failed":  failed,
		"results": results,
	})
}

// POST /v1/automations/stored: display shape back to stored shape.
func (h *Handler) toStored(w http.ResponseWriter, r *http.Request) {
	var view automation.RuleView
	if err := decode(r, &view); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	rule, err := h.currentEditor().ToStored(&view)
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rule)
}

// POST /v1/automations/preview: dry-run a rule's conditions.
func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Rule  automation.Rule `json:"rule"`
		Event event.Event     `json:"event"`
	}
	if err := decode(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Event.ID == "" {
		req.Event.ID = uuid.New().String()
	}
	res, err := h.currentEditor().Preview(&req.Rule, &req.Event, time.Now())
	if err != nil {
		writeEditorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"event_id": req.Event.ID,
		"result":   res,
	})
}

// GET /healthz: always 200 (liveness).
func (h *Handler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /readyz: 503 if the batch queue is >80% full.
func (h *Handler) readyz(w http.ResponseWriter, r *http.Request) {
	var util float64
	if h.deps.Batcher != nil {
		util = h.deps.Batcher.QueueUtilization()
	}
	metrics.BatchQueueUtilization.Set(util)
	if util > 0.8 {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":            "overloaded",
			"queue_utilization": util,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "ready",
		"queue_utilization": util,
	})
}
