package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/bstviz/pkg/bst"
	"github.com/matzehuels/bstviz/pkg/buildinfo"
	"github.com/matzehuels/bstviz/pkg/errors"
	"github.com/matzehuels/bstviz/pkg/pipeline"
	"github.com/matzehuels/bstviz/pkg/session"
	"github.com/matzehuels/bstviz/pkg/view"
)

// =============================================================================
// Request and response types
// =============================================================================

type createRequest struct {
	Values []int `json:"values"`
}

type valueRequest struct {
	Value *int `json:"value"`
}

type commandRequest struct {
	Command string `json:"command"`
}

type viewRequest struct {
	Action string  `json:"action"` // pan, zoom or reset
	DX     float64 `json:"dx"`
	DY     float64 `json:"dy"`
	Delta  float64 `json:"delta"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type treeResponse struct {
	ID        string          `json:"id"`
	Values    []int           `json:"values"`
	Size      int             `json:"size"`
	Height    int             `json:"height"`
	Min       *int            `json:"min,omitempty"`
	Max       *int            `json:"max,omitempty"`
	View      view.View       `json:"view"`
	Search    *int            `json:"search,omitempty"`
	Traversal []int           `json:"traversal,omitempty"`
	Log       []session.Entry `json:"log"`
}

type entryResponse struct {
	Entry session.Entry `json:"entry"`
	Tree  treeResponse  `json:"tree"`
}

type deleteResponse struct {
	Removed bool          `json:"removed"`
	Entry   session.Entry `json:"entry"`
}

type nodeResponse struct {
	Value int           `json:"value"`
	Left  *int          `json:"left,omitempty"`
	Right *int          `json:"right,omitempty"`
	Entry session.Entry `json:"entry"`
}

type traversalResponse struct {
	Kind   bst.Traversal `json:"kind"`
	Label  string        `json:"label"`
	Values []int         `json:"values"`
	Entry  session.Entry `json:"entry"`
}

type healthResponse struct {
	Status string         `json:"status"`
	Build  buildinfo.Info `json:"build"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Build: buildinfo.Get()})
}

func (s *Server) handleCreateTree(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := decodeJSON(w, r, &req, true); err != nil {
		s.writeError(w, err)
		return
	}

	ctx := r.Context()
	sess, err := s.store.Create(ctx)
	if err != nil {
		s.writeError(w, err)
		return
	}
	// Duplicates are logged on the session as warnings, not rejected.
	for _, v := range req.Values {
		_, _ = sess.Insert(ctx, v)
	}
	s.logger.Debug("created tree", "id", sess.ID, "values", len(req.Values))
	s.writeJSON(w, http.StatusCreated, snapshot(sess))
}

func (s *Server) handleGetTree(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, snapshot(sess))
}

func (s *Server) handleDeleteTree(w http.ResponseWriter, r *http.Request) {
	if _, err := s.session(r); err != nil {
		s.writeError(w, err)
		return
	}
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req valueRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Value == nil {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "value is required"))
		return
	}

	entry, err := sess.Insert(r.Context(), *req.Value)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, entryResponse{Entry: entry, Tree: snapshot(sess)})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	sess, v, err := s.sessionValue(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	entry, found := sess.Search(r.Context(), v)
	if !found {
		s.writeError(w, errors.New(errors.ErrCodeNotFound, "value %d not found", v))
		return
	}

	resp := nodeResponse{Value: v, Entry: entry}
	sess.With(func(st session.State) {
		n := st.Tree.Search(v)
		if n == nil {
			return
		}
		if l := n.Left(); l != nil {
			lv := l.Value()
			resp.Left = &lv
		}
		if rt := n.Right(); rt != nil {
			rv := rt.Value()
			resp.Right = &rv
		}
	})
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	sess, v, err := s.sessionValue(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	entry, removed := sess.Delete(r.Context(), v)
	s.writeJSON(w, http.StatusOK, deleteResponse{Removed: removed, Entry: entry})
}

func (s *Server) handleTraverse(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	name := chi.URLParam(r, "kind")
	kind, err := bst.ParseTraversal(name)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidTraversal, err, "unknown traversal %q", name))
		return
	}
	entry, values := sess.Traverse(r.Context(), kind)
	s.writeJSON(w, http.StatusOK, traversalResponse{Kind: kind, Label: kind.Label(), Values: values, Entry: entry})
}

func (s *Server) handleCommand(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req commandRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		s.writeError(w, err)
		return
	}
	cmd, err := session.ParseCommand(req.Command)
	if err != nil {
		s.writeError(w, err)
		return
	}
	entry, err := sess.Apply(r.Context(), cmd)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entryResponse{Entry: entry, Tree: snapshot(sess)})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	var req viewRequest
	if err := decodeJSON(w, r, &req, false); err != nil {
		s.writeError(w, err)
		return
	}

	switch strings.ToLower(req.Action) {
	case "pan":
		sess.Pan(req.DX, req.DY)
	case "zoom":
		sess.ZoomAt(req.X, req.Y, req.Delta)
	case "reset":
		sess.Reset()
	default:
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "unknown view action %q (must be pan, zoom or reset)", req.Action))
		return
	}
	s.writeJSON(w, http.StatusOK, sess.View())
}

func (s *Server) handleRender(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, format)
	}
}

func (s *Server) handleRenderFormat(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, strings.ToLower(chi.URLParam(r, "format")))
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, format string) {
	sess, err := s.session(r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, err)
		return
	}

	data, err := s.renderSession(r.Context(), sess, format)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", pipeline.ContentType(format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// renderSession renders the session's tree onto the configured canvas with
// its current view and highlight, holding the session lock throughout.
func (s *Server) renderSession(ctx context.Context, sess *session.Session, format string) ([]byte, error) {
	opts := s.cfg.Render
	opts.Formats = []string{format}
	opts.Canvas = true

	var (
		res *pipeline.Result
		err error
	)
	sess.With(func(st session.State) {
		h := st.Highlight
		opts.Highlight = &h
		opts.View = st.View
		res, err = s.runner.Execute(ctx, st.Tree, opts)
	})
	if err != nil {
		if errors.GetCode(err) == "" {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
		}
		return nil, err
	}
	return res.Artifacts[format], nil
}

// =============================================================================
// Helpers
// =============================================================================

func (s *Server) session(r *http.Request) (*session.Session, error) {
	return s.store.Get(r.Context(), chi.URLParam(r, "id"))
}

func (s *Server) sessionValue(r *http.Request) (*session.Session, int, error) {
	sess, err := s.session(r)
	if err != nil {
		return nil, 0, err
	}
	v, err := errors.ParseValue(chi.URLParam(r, "value"))
	if err != nil {
		return nil, 0, err
	}
	return sess, v, nil
}

func snapshot(sess *session.Session) treeResponse {
	resp := treeResponse{ID: sess.ID, Log: sess.Log()}
	sess.With(func(st session.State) {
		resp.Values = st.Tree.Values()
		resp.Size = st.Tree.Len()
		resp.Height = st.Tree.Height()
		if v, ok := st.Tree.Min(); ok {
			resp.Min = &v
		}
		if v, ok := st.Tree.Max(); ok {
			resp.Max = &v
		}
		resp.View = st.View
		if v, ok := st.Highlight.Search(); ok {
			resp.Search = &v
		}
		resp.Traversal = st.Highlight.Order()
	})
	if resp.Log == nil {
		resp.Log = []session.Entry{}
	}
	return resp
}
