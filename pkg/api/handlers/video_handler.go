package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

// maxUploadSize bounds the multipart body (2 GiB, merged videos are large)
const maxUploadSize = 2 << 30

var errBadUpload = errors.New("invalid upload")

// VideoUploader pushes a local file to object storage and returns its URL
type VideoUploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// VideoHandler receives merged video files and hands them to the uploader
type VideoHandler struct {
	uploader VideoUploader
}

// NewVideoHandler creates a video handler backed by the given uploader
func NewVideoHandler(uploader VideoUploader) *VideoHandler {
	return &VideoHandler{uploader: uploader}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload accepts a multipart mp4 in field "file", spools it to a temp
// file and streams it to the bucket. Responds with the retrievable URL.
func (h *VideoHandler) Upload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, fmt.Errorf("%w: missing multipart field 'file'", errBadUpload))
		return
	}

	if ext := strings.ToLower(filepath.Ext(fh.Filename)); ext != ".mp4" {
		writeError(c, fmt.Errorf("%w: only .mp4 is allowed", errBadUpload))
		return
	}
	if fh.Size <= 0 || fh.Size > maxUploadSize {
		writeError(c, fmt.Errorf("%w: file empty or too large", errBadUpload))
		return
	}

	src, err := fh.Open()
	if err != nil {
		writeError(c, fmt.Errorf("%w: failed to open upload", errBadUpload))
		return
	}
	defer src.Close()

	tmp, err := os.CreateTemp("", "merge-videos-*.mp4")
	if err != nil {
		writeError(c, err)
		return
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		writeError(c, err)
		return
	}
	if err := tmp.Close(); err != nil {
		writeError(c, err)
		return
	}

	url, err := h.uploader.Upload(c.Request.Context(), tmp.Name())
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, uploadResponse{URL: url})
}
