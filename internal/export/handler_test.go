package export_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"

	"github.com/drawshapes/drawshapes/internal/engine"
	"github.com/drawshapes/drawshapes/internal/export"
	"github.com/drawshapes/drawshapes/internal/render"
)

type scenes map[string][]render.DrawCommand

func (s scenes) Commands(canvasID string) ([]render.DrawCommand, bool) {
	cmds, ok := s[canvasID]
	return cmds, ok
}

func newRouter() http.Handler {
	eng := engine.NewEngine()
	eng.LoadSample()
	st := render.DefaultStyle()
	h := export.NewHandler(scenes{"canvas_1": render.Compile(eng.Scene(), st)}, nil)

	r := mux.NewRouter()
	r.HandleFunc("/canvases/{canvasId}/export.png", h.ExportPNG).Methods("GET")
	r.HandleFunc("/canvases/{canvasId}/export.pdf", h.ExportPDF).Methods("GET")
	return r
}

func get(r http.Handler, url string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, url, nil))
	return rec
}

func TestExportPNG(t *testing.T) {
	r := newRouter()

	rec := get(r, "/canvases/canvas_1/export.png")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	require.Contains(t, rec.Header().Get("Content-Disposition"), `filename="canvas_1-`)
	require.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	require.Equal(t, http.StatusOK, get(r, "/canvases/canvas_1/export.png?scale=0.5").Code)
	require.Equal(t, http.StatusBadRequest, get(r, "/canvases/canvas_1/export.png?scale=9").Code)
	require.Equal(t, http.StatusBadRequest, get(r, "/canvases/canvas_1/export.png?scale=x").Code)
	require.Equal(t, http.StatusNotFound, get(r, "/canvases/canvas_2/export.png").Code)
}

func TestExportPDF(t *testing.T) {
	r := newRouter()

	rec := get(r, "/canvases/canvas_1/export.pdf")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	require.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	require.Equal(t, http.StatusNotFound, get(r, "/canvases/canvas_2/export.pdf").Code)
}
