package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/drawshapes/drawshapes/internal/render"
)

const maxScale = 4

// Scenes compiles the current display list of a live canvas.
type Scenes interface {
	Commands(canvasID string) ([]render.DrawCommand, bool)
}

// Handler renders canvases to downloadable PNG and PDF files.
type Handler struct {
	scenes Scenes
	images render.ImageSource
}

// NewHandler creates an export handler. images resolves background assets
// and may be nil.
func NewHandler(scenes Scenes, images render.ImageSource) *Handler {
	return &Handler{scenes: scenes, images: images}
}

// ExportPNG handles GET /canvases/{canvasId}/export.png. The optional
// ?scale= query parameter sets output pixels per canvas unit (1 to 4).
func (h *Handler) ExportPNG(w http.ResponseWriter, r *http.Request) {
	cmds, ok := h.commands(w, r)
	if !ok {
		return
	}

	scale := 1.0
	if s := r.URL.Query().Get("scale"); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil || v <= 0 || v > maxScale {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid scale: must be in (0, 4]"})
			return
		}
		scale = v
	}

	var buf bytes.Buffer
	if err := (render.Raster{Images: h.images, Scale: scale}).WritePNG(&buf, cmds); err != nil {
		slog.Error("render png", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "render failed"})
		return
	}
	h.send(w, r, "image/png", "png", buf.Bytes())
}

// ExportPDF handles GET /canvases/{canvasId}/export.pdf.
func (h *Handler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	cmds, ok := h.commands(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := (render.PDF{Images: h.images}).Write(&buf, cmds); err != nil {
		slog.Error("render pdf", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "render failed"})
		return
	}
	h.send(w, r, "application/pdf", "pdf", buf.Bytes())
}

func (h *Handler) commands(w http.ResponseWriter, r *http.Request) ([]render.DrawCommand, bool) {
	cmds, ok := h.scenes.Commands(mux.Vars(r)["canvasId"])
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "canvas not found"})
	}
	return cmds, ok
}

func (h *Handler) send(w http.ResponseWriter, r *http.Request, contentType, ext string, data []byte) {
	canvasID := mux.Vars(r)["canvasId"]
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s-%s.%s"`, canvasID, time.Now().UTC().Format("20060102-150405"), ext))
	w.WriteHeader(http.StatusOK)
	w.Write(data)

	slog.Info("export complete", "canvas", canvasID, "format", ext, "size", len(data))
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
