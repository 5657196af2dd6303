package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/wordchain/pkg/buildinfo"
	"github.com/matzehuels/wordchain/pkg/errors"
	"github.com/matzehuels/wordchain/pkg/pipeline"
)

type solveRequest struct {
	Items   []string `json:"items"`
	Mode    string   `json:"mode,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`
}

type solveResponse struct {
	ID        string  `json:"id"`
	Result    string  `json:"result"`
	Path      []int   `json:"path"`
	Length    int     `json:"length"`
	Mode      string  `json:"mode"`
	Cached    bool    `json:"cached"`
	ElapsedMS float64 `json:"elapsed_ms"`
}

type errorBody struct {
	ID    string      `json:"id,omitempty"`
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)

	var req solveRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		var tooBig *http.MaxBytesError
		if stderrors.As(err, &tooBig) {
			s.writeError(w, r, errors.New(errors.ErrCodeTooLarge, "request body exceeds %d bytes", tooBig.Limit))
			return
		}
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON body"))
		return
	}
	if req.Items == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeInvalidInput, "items is required"))
		return
	}
	if err := errors.ValidateItems(req.Items, s.cfg.MaxItems); err != nil {
		s.writeError(w, r, err)
		return
	}

	res, err := s.runner.Solve(r.Context(), req.Items, pipeline.Options{Mode: req.Mode, Refresh: req.Refresh})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	path := []int(res.Path)
	if path == nil {
		path = []int{}
	}
	writeJSON(w, http.StatusOK, solveResponse{
		ID:        requestIDFrom(r.Context()),
		Result:    res.Text,
		Path:      path,
		Length:    len(path),
		Mode:      string(res.Mode),
		Cached:    res.Cached,
		ElapsedMS: float64(res.Elapsed.Microseconds()) / 1000,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no route for %s %s", r.Method, r.URL.Path))
}

func (s *Server) handleMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusMethodNotAllowed, errorBody{
		ID:    requestIDFrom(r.Context()),
		Error: errorDetail{Code: errors.ErrCodeInvalidInput, Message: "method " + r.Method + " not allowed"},
	})
}

// writeError maps err to a status and writes the error body. Internal errors
// are logged and their details withheld.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := errors.HTTPStatus(err)
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "id", requestIDFrom(r.Context()), "err", err)
		if code == errors.ErrCodeInternal {
			msg = "internal error"
		}
	}
	writeJSON(w, status, errorBody{
		ID:    requestIDFrom(r.Context()),
		Error: errorDetail{Code: code, Message: msg},
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
