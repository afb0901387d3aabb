package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/eventlayout/pkg/errors"
	"github.com/matzehuels/eventlayout/pkg/field"
	"github.com/matzehuels/eventlayout/pkg/fixedwidth"
	pkgio "github.com/matzehuels/eventlayout/pkg/io"
	"github.com/matzehuels/eventlayout/pkg/layout"
	"github.com/matzehuels/eventlayout/pkg/pipeline"
	"github.com/matzehuels/eventlayout/pkg/session"
)

// =============================================================================
// Request / response bodies
// =============================================================================

type sessionResponse struct {
	ID        string          `json:"id"`
	Source    string          `json:"source"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	ExpiresAt time.Time       `json:"expires_at"`
	Status    string          `json:"status"`
	Fields    []*field.Record `json:"fields"`
}

func newSessionResponse(sess *session.Session) sessionResponse {
	return sessionResponse{
		ID:        sess.ID,
		Source:    sess.Source,
		CreatedAt: sess.CreatedAt,
		UpdatedAt: sess.UpdatedAt,
		ExpiresAt: sess.ExpiresAt,
		Status:    layout.Validate(sess.Records).Status(),
		Fields:    sess.Records,
	}
}

// fieldUpdate is the PATCH body. Absent members are left unchanged.
type fieldUpdate struct {
	Value     *string `json:"value"`
	Size      *int    `json:"size"`
	Start     *int    `json:"start"`
	End       *int    `json:"end"`
	Alignment *string `json:"alignment"`
	Required  *string `json:"required"`
	Input     *string `json:"input"`
}

func (u fieldUpdate) apply(r *field.Record, maxWidth int) error {
	if u.Alignment != nil && strings.TrimSpace(*u.Alignment) != "" {
		if _, ok := field.ParseAlignment(*u.Alignment); !ok {
			return errors.New(errors.ErrCodeInvalidInput, "unknown alignment %q", *u.Alignment)
		}
	}
	for _, n := range []struct {
		name string
		v    *int
	}{{"size", u.Size}, {"start", u.Start}, {"end", u.End}} {
		if n.v != nil && *n.v > maxWidth {
			return errors.New(errors.ErrCodeInvalidInput, "%s %d exceeds the limit of %d bytes", n.name, *n.v, maxWidth)
		}
	}
	if u.Value != nil {
		r.Value = *u.Value
	}
	if u.Size != nil {
		r.Size = field.IntPtr(*u.Size)
	}
	if u.Start != nil {
		r.Start = field.IntPtr(*u.Start)
	}
	if u.End != nil {
		r.End = field.IntPtr(*u.End)
	}
	if u.Alignment != nil {
		r.Alignment = strings.TrimSpace(*u.Alignment)
	}
	if u.Required != nil {
		r.Required = strings.TrimSpace(*u.Required)
	}
	if u.Input != nil {
		r.Input = strings.TrimSpace(*u.Input)
	}
	return nil
}

// checkExtent rejects records positioned past maxWidth. Encoding and the
// flat line allocate up to the furthest field end.
func checkExtent(records []*field.Record, maxWidth int) error {
	for _, r := range records {
		if r == nil {
			continue
		}
		end := 0
		for _, p := range []*int{r.Size, r.Start, r.End} {
			if p != nil {
				end = max(end, *p)
			}
		}
		if r.Start != nil && r.Size != nil && *r.Start > 0 && *r.Size > 0 {
			end = max(end, *r.Start+*r.Size-1)
		}
		if end > maxWidth {
			return errors.New(errors.ErrCodeInvalidInput, "field %s at line %d ends past the limit of %d bytes", r.Name, r.Line, maxWidth)
		}
	}
	return nil
}

type encodeRequest struct {
	Value     string `json:"value"`
	Width     int    `json:"width"`
	Alignment string `json:"alignment"`
	Type      string `json:"type"`
}

type encodeResponse struct {
	Encoded   string `json:"encoded"`
	Alignment string `json:"alignment"`
}

type recalculateResponse struct {
	TotalSize int             `json:"total_size"`
	Fields    []*field.Record `json:"fields"`
}

type validationResponse struct {
	Valid  bool   `json:"valid"`
	Status string `json:"status"`
	*layout.Report
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleEncode(w http.ResponseWriter, r *http.Request) {
	var req encodeRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	if req.Width < 0 || req.Width > s.opts.MaxWidth {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "width must be between 0 and %d", s.opts.MaxWidth), nil)
		return
	}
	writeJSON(w, http.StatusOK, encodeResponse{
		Encoded:   fixedwidth.Encode(req.Value, req.Width, req.Alignment, req.Type),
		Alignment: fixedwidth.ResolveAlignment(req.Alignment, req.Type).String(),
	})
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUpload)
	if err := r.ParseMultipartForm(s.opts.MaxUpload); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid upload"), nil)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "missing form file \"file\""), nil)
		return
	}
	defer file.Close()

	if err := errors.ValidateUploadFilename(header.Filename); err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	format, err := pkgio.FormatOf(header.Filename)
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	opts := pkgio.Options{Sheet: s.opts.Sheet, DataStartRow: s.opts.DataStartRow}
	if v := r.FormValue("sheet"); v != "" {
		opts.Sheet = v
	}
	if v := r.FormValue("data_start_row"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid data_start_row %q", v), nil)
			return
		}
		opts.DataStartRow = n
	}

	records, err := pkgio.Read(file, format, opts)
	if err == nil {
		err = checkExtent(records, s.opts.MaxWidth)
	}
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	sess := session.New(header.Filename, records, s.opts.SessionTTL)
	if err := s.store.Set(r.Context(), sess); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "store session"), nil)
		return
	}
	s.logger.Info("session created", "id", sess.ID, "source", sess.Source, "records", len(records))
	writeJSON(w, http.StatusCreated, newSessionResponse(sess))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newSessionResponse(sess))
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "delete session"), nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleUpdateField(w http.ResponseWriter, r *http.Request) {
	line, err := strconv.Atoi(chi.URLParam(r, "line"))
	if err != nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "invalid line %q", chi.URLParam(r, "line")), nil)
		return
	}
	var upd fieldUpdate
	if err := decodeBody(w, r, &upd); err != nil {
		s.writeError(w, r, err, nil)
		return
	}

	var updated *field.Record
	_, err = s.store.Update(r.Context(), chi.URLParam(r, "id"), func(sess *session.Session) error {
		rec := sess.Record(line)
		if rec == nil {
			return errors.New(errors.ErrCodeNotFound, "no field at line %d", line)
		}
		if err := upd.apply(rec, s.opts.MaxWidth); err != nil {
			return err
		}
		if err := checkExtent([]*field.Record{rec}, s.opts.MaxWidth); err != nil {
			return err
		}
		updated = rec.Clone()
		return nil
	})
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleRecalculate(w http.ResponseWriter, r *http.Request) {
	var total int
	sess, err := s.store.Update(r.Context(), chi.URLParam(r, "id"), func(sess *session.Session) error {
		total = layout.Recalculate(sess.Records)
		return checkExtent(sess.Records, s.opts.MaxWidth)
	})
	if err != nil {
		s.writeError(w, r, err, nil)
		return
	}
	writeJSON(w, http.StatusOK, recalculateResponse{TotalSize: total, Fields: sess.Records})
}

func (s *Server) handleValidation(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}
	rep := layout.Validate(sess.Records)
	writeJSON(w, http.StatusOK, validationResponse{Valid: rep.Valid(), Status: rep.Status(), Report: rep})
}

var contentTypes = map[string]string{
	pipeline.FormatXML:  "application/xml; charset=utf-8",
	pipeline.FormatJSON: "application/json; charset=utf-8",
	pipeline.FormatLine: "text/plain; charset=utf-8",
	pipeline.FormatDOT:  "text/vnd.graphviz; charset=utf-8",
	pipeline.FormatSVG:  "image/svg+xml",
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.loadSession(w, r)
	if !ok {
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = pipeline.FormatXML
	}
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))

	opts := pipeline.Options{
		Formats:       []string{format},
		Indent:        s.opts.Indent,
		Detailed:      r.URL.Query().Get("detailed") != "",
		Force:         force,
		AllowWarnings: true,
	}
	res, err := s.runner.Process(r.Context(), sess.Records, opts)
	if err != nil {
		var details any
		if res != nil {
			details = validationResponse{Valid: res.Report.Valid(), Status: res.Report.Status(), Report: res.Report}
		}
		s.writeError(w, r, err, details)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("Content-Disposition",
		`attachment; filename="`+exportName(sess.Source)+pipeline.Extension(format)+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) loadSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "id")
	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInternal, err, "load session"), nil)
		return nil, false
	}
	if sess == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeSessionNotFound, "session %s not found or expired", id), nil)
		return nil, false
	}
	return sess, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid request body")
	}
	return nil
}

// exportName derives the download name from the uploaded file name.
func exportName(source string) string {
	name := source
	if i := strings.LastIndexByte(name, '.'); i > 0 {
		name = name[:i]
	}
	name = strings.Map(func(r rune) rune {
		if r == '"' || r == '\\' || r < 0x20 {
			return '_'
		}
		return r
	}, name)
	if name == "" {
		return "layout"
	}
	return name
}
