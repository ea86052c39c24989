package analysis

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"analyzer-backend/internal/intake"
	"analyzer-backend/internal/shared/server/respond"
	"analyzer-backend/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the analysis service.
type Handler struct {
	Svc     *Service
	TempDir string
}

// NewHandler constructs a Handler. Uploads are staged under tempDir for the
// duration of a request and removed afterwards.
func NewHandler(svc *Service, tempDir string) *Handler {
	if tempDir == "" {
		tempDir = filepath.Join(os.TempDir(), "analyzer-uploads")
	}
	return &Handler{Svc: svc, TempDir: tempDir}
}

// RegisterRoutes attaches analysis routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analyze/", h.analyzeUpload)
	rg.POST("/analyze/path/", h.analyzePath)
	rg.GET("/models", h.listModels)
}

func (h *Handler) analyzeUpload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Detail(c, http.StatusBadRequest, "file is required")
		return
	}
	model := strings.TrimSpace(c.DefaultPostForm("model", h.Svc.DefaultModel))
	c.Set("model", model)
	c.Set("fileName", fileHeader.Filename)

	if err := intake.ValidateExtension(fileHeader.Filename); err != nil {
		respond.Detail(c, http.StatusBadRequest, err.Error())
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		respond.Detail(c, http.StatusInternalServerError, "failed to read upload")
		return
	}
	defer src.Close()

	tempPath, err := h.stageUpload(fileHeader.Filename, src)
	if err != nil {
		respond.Detail(c, http.StatusInternalServerError, "failed to store upload")
		return
	}
	defer func() {
		if rmErr := os.Remove(tempPath); rmErr != nil {
			telemetry.Warn("analysis.temp.cleanup_failed", map[string]any{
				"path": tempPath,
				"err":  rmErr.Error(),
			})
		}
	}()

	file, err := intake.FromPath(tempPath)
	if err != nil {
		respond.Detail(c, http.StatusInternalServerError, "failed to read upload")
		return
	}
	// The staged file carries a generated name; report the claimed one.
	file.Name = filepath.Base(fileHeader.Filename)

	result, err := h.Svc.Analyze(c.Request.Context(), file, model)
	if err != nil {
		respond.Detail(c, http.StatusInternalServerError, "Analysis failed: "+err.Error())
		return
	}
	respond.OK(c, result)
}

func (h *Handler) analyzePath(c *gin.Context) {
	filePath := strings.TrimSpace(c.PostForm("file_path"))
	if filePath == "" {
		respond.Detail(c, http.StatusBadRequest, "file_path is required")
		return
	}
	model := strings.TrimSpace(c.DefaultPostForm("model", h.Svc.DefaultModel))
	c.Set("model", model)
	c.Set("fileName", filepath.Base(filePath))

	file, err := intake.FromPath(filePath)
	if err != nil {
		var unsupported *intake.UnsupportedTypeError
		switch {
		case errors.Is(err, intake.ErrNotFound):
			respond.Detail(c, http.StatusNotFound, "File not found: "+filePath)
		case errors.As(err, &unsupported):
			respond.Detail(c, http.StatusBadRequest, unsupported.Error())
		default:
			respond.Detail(c, http.StatusInternalServerError, "failed to read file")
		}
		return
	}

	result, err := h.Svc.Analyze(c.Request.Context(), file, model)
	if err != nil {
		respond.Detail(c, http.StatusInternalServerError, "Analysis failed: "+err.Error())
		return
	}
	respond.OK(c, result)
}

func (h *Handler) listModels(c *gin.Context) {
	respond.OK(c, gin.H{"models": AvailableModels})
}

// stageUpload writes the payload to a uniquely named file under TempDir,
// preserving the original extension for language detection.
func (h *Handler) stageUpload(filename string, src io.Reader) (string, error) {
	if err := os.MkdirAll(h.TempDir, 0o755); err != nil {
		return "", err
	}
	ext := strings.ToLower(filepath.Ext(filename))
	tempPath := filepath.Join(h.TempDir, uuid.NewString()+ext)
	dst, err := os.Create(tempPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(tempPath)
		return "", err
	}
	return tempPath, nil
}
