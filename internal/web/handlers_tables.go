package web

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/JonMunkholm/PharmaDB/internal/core"
	"github.com/JonMunkholm/PharmaDB/internal/logging"
)

// rowRequest is the body of insert, update and validate calls.
// For updates columns[0] and values[0] identify the row. A null value
// stands for SQL NULL.
type rowRequest struct {
	Columns []string  `json:"columns"`
	Values  []*string `json:"values"`
}

// values returns Values with null mapped to core.Null.
func (req rowRequest) values() []string {
	out := make([]string, len(req.Values))
	for i, v := range req.Values {
		if v == nil {
			out[i] = core.Null
			continue
		}
		out[i] = *v
	}
	return out
}

// mutationResponse carries the affected row count and the table as reloaded
// after the change. When the reload fails the change has still been
// committed: Snapshot is nil and ReloadError says why.
type mutationResponse struct {
	RowsAffected int64               `json:"rowsAffected"`
	Snapshot     *core.TableSnapshot `json:"snapshot"`
	ReloadError  *ErrorResponse      `json:"reloadError,omitempty"`
}

type kindInfo struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

// handleHealth reports whether the database answers.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.service.Ping(r.Context()); err != nil {
		s.respondError(w, r, err, http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleListTables returns the base tables of the configured schema.
func (s *Server) handleListTables(w http.ResponseWriter, r *http.Request) {
	tables, err := s.service.ListTables(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if tables == nil {
		tables = []string{}
	}
	writeJSON(w, http.StatusOK, tables)
}

// handleListKinds returns the entity kinds that have validation rules.
func (s *Server) handleListKinds(w http.ResponseWriter, r *http.Request) {
	kinds := core.Kinds()
	out := make([]kindInfo, 0, len(kinds))
	for _, k := range kinds {
		fields := make([]string, len(k.Rules))
		for i, rule := range k.Rules {
			fields[i] = rule.Field
		}
		out = append(out, kindInfo{Name: k.Name, Fields: fields})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleLoadTable(w http.ResponseWriter, r *http.Request) {
	snap, err := s.service.LoadTable(r.Context(), chi.URLParam(r, "table"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// handleExportTable downloads a table as CSV. Cells use the same text form
// Insert accepts, except that NULL exports as an empty cell.
func (s *Server) handleExportTable(w http.ResponseWriter, r *http.Request) {
	snap, err := s.service.LoadTable(r.Context(), chi.URLParam(r, "table"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	filename := fmt.Sprintf("%s_%s.csv", snap.Table, time.Now().Format("20060102_150405"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))

	records := make([][]string, 0, len(snap.Rows)+1)
	records = append(records, snap.Columns)
	for _, row := range snap.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = core.FormatValue(v)
		}
		records = append(records, cells)
	}

	if err := csv.NewWriter(w).WriteAll(records); err != nil {
		// Headers are already sent.
		logging.FromContext(r.Context()).Error("csv export failed", "table", snap.Table, "error", err)
	}
}

func (s *Server) handleInsertRow(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")

	req, err := decodeRow(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	n, err := s.service.Insert(r.Context(), table, req.Columns, req.values())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondReloaded(w, r, table, n, http.StatusCreated)
}

func (s *Server) handleUpdateRow(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")

	req, err := decodeRow(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	n, err := s.service.Update(r.Context(), table, req.Columns, req.values())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondReloaded(w, r, table, n, http.StatusOK)
}

// handleDeleteRow removes rows where ?column= equals ?value=.
// A value that matches nothing still succeeds with rowsAffected 0.
func (s *Server) handleDeleteRow(w http.ResponseWriter, r *http.Request) {
	table := chi.URLParam(r, "table")
	q := r.URL.Query()

	n, err := s.service.Delete(r.Context(), table, q.Get("column"), q.Get("value"))
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respondReloaded(w, r, table, n, http.StatusOK)
}

// handleValidateRow returns the verdict for a row without writing it.
func (s *Server) handleValidateRow(w http.ResponseWriter, r *http.Request) {
	req, err := decodeRow(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, core.Validate(chi.URLParam(r, "table"), req.Columns, req.values()))
}

// respondReloaded reloads table after a mutation and writes both. The
// mutation has committed by now, so a failed reload keeps the success status
// and reports rowsAffected alongside the reload error.
func (s *Server) respondReloaded(w http.ResponseWriter, r *http.Request, table string, n int64, status int) {
	snap, err := s.service.LoadTable(r.Context(), table)
	if err != nil {
		logging.FromContext(r.Context()).Warn("reload after mutation failed",
			"table", table, "rows", n, "error", err)
		body := errorBody(core.MapError(err))
		writeJSON(w, status, mutationResponse{RowsAffected: n, ReloadError: &body})
		return
	}
	writeJSON(w, status, mutationResponse{RowsAffected: n, Snapshot: snap})
}

func decodeRow(r *http.Request) (rowRequest, error) {
	var req rowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return req, &core.FormatError{Field: "request body", Reason: "must be a JSON object with columns and values"}
	}
	return req, nil
}
