package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gyaneshwarpardhi/automation/internal/automation"
	"github.com/gyaneshwarpardhi/automation/internal/catalog"
	"github.com/gyaneshwarpardhi/automation/internal/condition"
)

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// errorResponse is the standard error envelope.
type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeEditorError maps editor errors: lookups that miss, bad indexes and
// unusable preview operands are the caller's fault (422), anything else is ours.
func writeEditorError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, catalog.ErrUnknownEvent),
		errors.Is(err, catalog.ErrUnknownCondition),
		errors.Is(err, catalog.ErrUnknownAction),
		errors.Is(err, automation.ErrIndexOutOfRange),
		errors.Is(err, condition.ErrUnknownOperator),
		errors.Is(err, condition.ErrInvalidOperand):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

// ruleResponse is returned by every rule mutation.
type ruleResponse struct {
	Rule    *automation.Rule `json:"rule"`
	Notices []string         `json:"notices"`
}
