package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/JonMunkholm/lotto/internal/core"
	"github.com/JonMunkholm/lotto/internal/logging"
	"github.com/JonMunkholm/lotto/internal/web/templates"
	"github.com/a-h/templ"
)

// defaultCount prefills the count input.
const defaultCount = "5"

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 64 << 10

// handleHealth reports liveness and whether a table is loaded.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	st := s.service.Status()
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"table":  st.State,
	})
}

// handleIndex renders the generator page. The slot selects start at the
// default preset's policies and the preset picker starts on manual choice.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	d := s.pageData()
	d.Count = defaultCount
	if sp, err := s.service.Preset(s.service.DefaultPreset()); err == nil {
		d.Slots = sp.Strings(core.ComboSize)
	}
	s.render(w, r, http.StatusOK, templates.Page(d))
}

// handleGenerateForm handles the page form. Validation problems are shown
// next to the form; service failures use the coded error alert.
func (s *Server) handleGenerateForm(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.respondError(w, r, core.ValidationError{Field: "form", Message: "malformed form"}, http.StatusBadRequest)
		return
	}

	d := s.pageData()
	d.Count = r.PostFormValue("count")
	d.Preset = strings.TrimSpace(r.PostFormValue("preset"))
	d.Slots = formSlots(r)

	if d.Preset != "" {
		sp, err := s.service.Preset(d.Preset)
		if err != nil {
			s.respondError(w, r, err, http.StatusBadRequest)
			return
		}
		d.Slots = sp.Strings(core.ComboSize)
	}

	if v := core.ValidateRequest(d.Count, d.Slots); !v.Valid {
		d.Errors = v.Errors
		if isHTMX(r) {
			s.render(w, r, http.StatusUnprocessableEntity, templates.ValidationErrors(v.Errors))
			return
		}
		s.render(w, r, http.StatusUnprocessableEntity, templates.Page(d))
		return
	}

	count, _ := core.ParseCount(d.Count)
	policies, _ := core.ParsePolicies(d.Slots)

	ctx := WithRequestMetadata(r.Context(), r)
	result, err := s.service.Generate(ctx, core.GenerateRequest{Count: count, Policies: policies})
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	if isHTMX(r) {
		s.render(w, r, http.StatusOK, templates.Results(result))
		return
	}
	d.Result = result
	s.render(w, r, http.StatusOK, templates.Page(d))
}

// formSlots reads slot1..slotN from a parsed form.
func formSlots(r *http.Request) []string {
	slots := make([]string, core.ComboSize)
	for i := range slots {
		slots[i] = r.PostFormValue(fmt.Sprintf("slot%d", i+1))
	}
	return slots
}

// pageData fills the parts of the page every render needs.
func (s *Server) pageData() templates.PageData {
	st := s.service.Status()
	d := templates.PageData{
		Status:    st,
		Mode:      s.service.Mode(),
		Presets:   s.service.Presets(),
		MaxCount:  core.MaxCombinations,
		SlotCount: core.ComboSize,
	}
	for _, p := range core.Policies {
		d.SlotPolicies = append(d.SlotPolicies, string(p))
	}
	if st.State == core.StateFailed {
		d.LoadError = core.LoadFailureMessage(errors.New(st.Error))
	}
	return d
}

// render writes an HTML component with the given status.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, c templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := c.Render(r.Context(), w); err != nil {
		logging.FromContext(r.Context()).Error("render failed", "path", r.URL.Path, "error", err)
	}
}

// generateRequest is the JSON body of POST /api/generate. Slots take
// precedence over Preset; with neither, the default preset is used.
type generateRequest struct {
	Count  json.Number `json:"count"`
	Slots  []string    `json:"slots,omitempty"`
	Preset string      `json:"preset,omitempty"`
}

// handleAPIGenerate generates a batch from a JSON request.
func (s *Server) handleAPIGenerate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		s.respondError(w, r, core.ValidationError{Field: "body", Message: "invalid JSON body"}, http.StatusBadRequest)
		return
	}

	count, err := core.ParseCount(req.Count.String())
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	var policies core.SlotPolicies
	switch {
	case len(req.Slots) > 0:
		policies, err = core.ParsePolicies(req.Slots)
	case req.Preset != "":
		policies, err = s.service.Preset(req.Preset)
	default:
		policies, err = s.service.Preset(s.service.DefaultPreset())
	}
	if err != nil {
		s.respondError(w, r, err, http.StatusBadRequest)
		return
	}

	ctx := WithRequestMetadata(r.Context(), r)
	result, err := s.service.Generate(ctx, core.GenerateRequest{Count: count, Policies: policies})
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// tableStatusResponse is the body of GET /api/table.
type tableStatusResponse struct {
	core.StoreStatus
	Mode    string   `json:"mode"`
	Presets []string `json:"presets"`
	Message string   `json:"message,omitempty"`
}

// handleTableStatus reports the table store state.
func (s *Server) handleTableStatus(w http.ResponseWriter, r *http.Request) {
	st := s.service.Status()
	resp := tableStatusResponse{
		StoreStatus: st,
		Mode:        s.service.Mode(),
		Presets:     s.service.Presets(),
	}
	if st.State == core.StateFailed {
		resp.Message = core.LoadFailureMessage(errors.New(st.Error))
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleTableRows returns the parsed rows. With ?column=, it returns that
// probability column sorted by value instead (order=asc|desc, nonzero=true).
func (s *Server) handleTableRows(w http.ResponseWriter, r *http.Request) {
	t, err := s.service.Table()
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}

	q := r.URL.Query()
	column := q.Get("column")
	if column == "" {
		writeJSON(w, http.StatusOK, map[string]any{
			"columns": t.Columns(),
			"layout":  t.Layout(),
			"rows":    t.Rows(),
		})
		return
	}

	if !t.HasColumn(column) {
		s.respondError(w, r, core.ValidationError{Field: "column", Value: column, Message: "unknown probability column"}, http.StatusBadRequest)
		return
	}
	ascending := strings.EqualFold(q.Get("order"), "asc")
	var values []core.NumberProb
	if nz, _ := strconv.ParseBool(q.Get("nonzero")); nz {
		values = core.SortByProbability(t.NonZero(column), ascending)
	} else {
		values = t.SortedBy(column, ascending)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"column": column,
		"values": values,
	})
}

// handleEligible returns the numbers a slot may draw under a policy.
func (s *Server) handleEligible(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	slot, err := strconv.Atoi(q.Get("slot"))
	if err != nil || slot < 1 || slot > core.ComboSize {
		s.respondError(w, r, core.ValidationError{Field: "slot", Value: q.Get("slot"), Message: "slot must be 1-6"}, http.StatusBadRequest)
		return
	}
	p, ok := core.ParsePolicy(q.Get("policy"))
	if !ok {
		s.respondError(w, r, core.ValidationError{Field: "policy", Value: q.Get("policy"), Message: "unknown selection policy"}, http.StatusBadRequest)
		return
	}

	nums, err := s.service.Eligible(slot, p)
	if err != nil {
		s.respondError(w, r, err, statusFor(err))
		return
	}
	if nums == nil {
		nums = []int{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"slot":    slot,
		"policy":  p,
		"numbers": nums,
	})
}

// handlePresets lists the named slot layouts.
func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	presets := make(map[string][]string)
	for _, name := range s.service.Presets() {
		sp, _ := s.service.Preset(name)
		presets[name] = sp.Strings(core.ComboSize)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"default": s.service.DefaultPreset(),
		"presets": presets,
	})
}

// handleReload re-reads the table source. A failed reload leaves the store
// in the failed state, so generation stays disabled until a later success.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	logger := logging.FromContext(r.Context())
	logger.Info("manual reload requested", "ip", clientIP(r))

	if err := s.service.Reload(r.Context()); err != nil {
		s.respondError(w, r, err, http.StatusBadGateway)
		return
	}
	writeJSON(w, http.StatusOK, s.service.Status())
}
