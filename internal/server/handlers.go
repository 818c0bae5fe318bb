package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/buildinfo"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/errors"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/frame"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/givxml"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/scene"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/pipeline"
)

// Response headers describing a render.
const (
	CacheHeader       = "X-Giv-Cache"
	DiagnosticsHeader = "X-Giv-Diagnostics"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatJSON: "application/json",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatTree: "image/svg+xml",
}

type errorBody struct {
	Error       string           `json:"error"`
	Message     string           `json:"message"`
	RequestID   string           `json:"request_id,omitempty"`
	Diagnostics []diagnosticBody `json:"diagnostics,omitempty"`
}

type diagnosticBody struct {
	Code    string `json:"code"`
	Path    string `json:"path"`
	Attr    string `json:"attr,omitempty"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
	Dropped bool   `json:"dropped,omitempty"`
}

type validateBody struct {
	Valid       bool             `json:"valid"`
	Partial     bool             `json:"partial"`
	Extent      int              `json:"extent"`
	Stats       statsBody        `json:"stats"`
	Diagnostics []diagnosticBody `json:"diagnostics"`
}

type statsBody struct {
	Panels int     `json:"panels"`
	Tracks int     `json:"tracks"`
	Glyphs int     `json:"glyphs"`
	Groups int     `json:"groups"`
	Rows   int     `json:"rows"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type hitBody struct {
	Found bool        `json:"found"`
	Node  *scene.Node `json:"node,omitempty"`
	Ref   *scene.Ref  `json:"ref,omitempty"`
}

func (s *Server) serveHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
	})
}

func (s *Server) serveRender(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readDocument(w, r)
	if err != nil {
		writeRequestError(w, r, err, nil)
		return
	}
	opts, err := s.options(r.URL.Query())
	if err != nil {
		writeRequestError(w, r, err, nil)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	opts.Formats = []string{format}

	res, err := s.runner.Execute(r.Context(), doc, opts)
	if err != nil {
		var parsed *givxml.Result
		if res != nil {
			parsed = res.Parse
		}
		writeRequestError(w, r, err, parsed)
		return
	}

	cacheState := "miss"
	if res.CacheHit {
		cacheState = "hit"
	}
	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set(CacheHeader, cacheState)
	w.Header().Set(DiagnosticsHeader, strconv.Itoa(len(res.Parse.Diagnostics)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) serveValidate(w http.ResponseWriter, r *http.Request) {
	doc, err := s.readDocument(w, r)
	if err != nil {
		writeRequestError(w, r, err, nil)
		return
	}
	opts, err := s.options(r.URL.Query())
	if err != nil {
		writeRequestError(w, r, err, nil)
		return
	}

	res, err := pipeline.Parse(r.Context(), doc, opts)
	if err != nil {
		writeRequestError(w, r, err, res)
		return
	}
	pipeline.ApplyOverrides(res.Frame, opts)

	width, height := res.Frame.Size()
	writeJSON(w, http.StatusOK, validateBody{
		Valid:       len(res.Diagnostics) == 0,
		Partial:     res.Partial(),
		Extent:      res.Extent,
		Stats:       newStatsBody(res.Frame.Stats(), width, height),
		Diagnostics: diagnostics(res),
	})
}

func (s *Server) serveHit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	x, errX := strconv.ParseFloat(q.Get("x"), 64)
	y, errY := strconv.ParseFloat(q.Get("y"), 64)
	if errX != nil || errY != nil {
		writeRequestError(w, r, errors.New(errors.ErrCodeInvalidInput, "x and y must be numbers"), nil)
		return
	}
	doc, err := s.readDocument(w, r)
	if err != nil {
		writeRequestError(w, r, err, nil)
		return
	}
	opts, err := s.options(q)
	if err != nil {
		writeRequestError(w, r, err, nil)
		return
	}

	res, err := pipeline.Parse(r.Context(), doc, opts)
	if err != nil {
		writeRequestError(w, r, err, res)
		return
	}
	pipeline.ApplyOverrides(res.Frame, opts)
	sc := pipeline.Layout(res.Frame)

	body := hitBody{}
	if n, ref, ok := sc.HitTest(x, y); ok {
		body = hitBody{Found: true, Node: &n, Ref: &ref}
	}
	writeJSON(w, http.StatusOK, body)
}

func (s *Server) readDocument(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	doc, err := io.ReadAll(body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, errors.New(errors.ErrCodeInvalidInput, "document exceeds %d bytes", s.maxBody)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read document")
	}
	if len(doc) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty request body")
	}
	return doc, nil
}

// options reads query overrides over the server defaults.
func (s *Server) options(q url.Values) (pipeline.Options, error) {
	opts := s.defaults
	opts.Formats = nil
	opts.Logger = s.logger

	var err error
	setFloat := func(name string, dst *float64) {
		if v := q.Get(name); v != "" && err == nil {
			f, perr := strconv.ParseFloat(v, 64)
			if perr != nil {
				err = errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a number", name, v)
				return
			}
			*dst = f
		}
	}
	setGap := func(name string, dst **float64) {
		if q.Get(name) == "" {
			return
		}
		var f float64
		setFloat(name, &f)
		*dst = pipeline.Float(f)
	}
	setBool := func(name string, dst *bool) {
		if v := q.Get(name); v != "" && err == nil {
			b, perr := strconv.ParseBool(v)
			if perr != nil {
				err = errors.New(errors.ErrCodeInvalidInput, "%s: %q is not a boolean", name, v)
				return
			}
			*dst = b
		}
	}

	setFloat("scale", &opts.Scale)
	setGap("hgap", &opts.HGap)
	setGap("vgap", &opts.VGap)
	setGap("track_gap", &opts.TrackGap)
	setGap("panel_gap", &opts.PanelGap)
	setFloat("margin", &opts.Margin)
	setFloat("png_scale", &opts.PNGScale)
	setBool("strict", &opts.Strict)
	setBool("bands", &opts.Bands)
	setBool("detailed", &opts.Detailed)
	setBool("refresh", &opts.Refresh)
	if v := q.Get("style"); v != "" {
		opts.Style = v
	}
	if v := q.Get("background"); v != "" {
		opts.Background = v
	}
	if v := q.Get("title"); v != "" {
		opts.Title = v
	}
	if err != nil {
		return pipeline.Options{}, err
	}
	if err := opts.ValidateForParse(); err != nil {
		return pipeline.Options{}, err
	}
	if err := opts.ValidateForLayout(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

func newStatsBody(st frame.Stats, width, height float64) statsBody {
	return statsBody{
		Panels: st.Panels,
		Tracks: st.Tracks,
		Glyphs: st.Glyphs,
		Groups: st.Groups,
		Rows:   st.Rows,
		Width:  width,
		Height: height,
	}
}

func diagnostics(res *givxml.Result) []diagnosticBody {
	out := []diagnosticBody{}
	if res == nil {
		return out
	}
	for _, d := range res.Diagnostics {
		out = append(out, diagnosticBody{
			Code:    string(d.Code),
			Path:    d.Path,
			Attr:    d.Attr,
			Value:   d.Value,
			Message: d.Message,
			Dropped: d.Dropped,
		})
	}
	return out
}

// statusFor maps error codes to HTTP statuses. Document problems are 422.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeSchemaViolation, errors.ErrCodeMissingExtent, errors.ErrCodeInvalidAttribute,
		errors.ErrCodeColorLookupMiss, errors.ErrCodeExtentMismatch:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat, errors.ErrCodeInvalidStyle,
		errors.ErrCodeInvalidPath, errors.ErrCodeInvalidConfig:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeTimeout:
		return http.StatusGatewayTimeout
	case errors.ErrCodeNetwork:
		return http.StatusBadGateway
	case errors.ErrCodeUnsupported:
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func writeRequestError(w http.ResponseWriter, r *http.Request, err error, parsed *givxml.Result) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	observabilityError(r, err)
	body := errorBody{
		Error:     string(code),
		Message:   errors.UserMessage(err),
		RequestID: RequestID(r.Context()),
	}
	if parsed != nil {
		body.Diagnostics = diagnostics(parsed)
	}
	writeJSON(w, statusFor(code), body)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	writeJSON(w, statusFor(code), errorBody{Error: string(code), Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
