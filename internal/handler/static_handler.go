package handler

import (
	"net/http"
	"path"

	"github.com/gin-gonic/gin"
)

// StaticHandler serves the front-end assets for every path no route matched.
// Directories are never listed; a directory without index.html is a 404.
type StaticHandler struct {
	fs    http.FileSystem
	files http.Handler
}

// NewStaticHandler creates a StaticHandler rooted at dir.
func NewStaticHandler(dir string) *StaticHandler {
	fs := gin.Dir(dir, false)
	return &StaticHandler{fs: fs, files: http.FileServer(fs)}
}

// Serve is meant for gin's NoRoute. Only GET and HEAD reach the file server.
func (h *StaticHandler) Serve(c *gin.Context) {
	if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	if !h.exists(c.Request.URL.Path) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
		return
	}
	h.files.ServeHTTP(c.Writer, c.Request)
}

// exists reports whether name is a file, or a directory holding index.html.
func (h *StaticHandler) exists(name string) bool {
	name = path.Clean("/" + name)
	f, err := h.fs.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return false
	}
	if !info.IsDir() {
		return true
	}

	index, err := h.fs.Open(path.Join(name, "index.html"))
	if err != nil {
		return false
	}
	index.Close()
	return true
}
