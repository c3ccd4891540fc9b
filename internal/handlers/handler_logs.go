package handlers

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pharmago/pharmago_backend/internal/apperrors"
	"github.com/pharmago/pharmago_backend/internal/middleware"
	"github.com/pharmago/pharmago_backend/pkg/response"
)

// defaultLogLines caps how much of a log file is returned per request.
const defaultLogLines = 500

// logsHandler serves the on-disk application log files to staff users.
type logsHandler struct {
	logDir string
}

func newLogsHandler(logDir string) *logsHandler {
	return &logsHandler{logDir: logDir}
}

func registerLogRoutes(rg *gin.RouterGroup, logDir string) {
	h := newLogsHandler(logDir)

	logs := rg.Group("/logs", middleware.RequireManage())
	{
		logs.GET("", h.listLogFiles)
		logs.GET("/:name", h.tailLogFile)
	}
}

// listLogFiles godoc
// @Summary List log files
// @Tags logs
// @Produce json
// @Success 200 {object} response.Envelope{data=[]string}
// @Security BearerAuth
// @Router /logs [get]
func (h *logsHandler) listLogFiles(c *gin.Context) {
	entries, err := os.ReadDir(h.logDir)
	if err != nil {
		if os.IsNotExist(err) {
			response.OK(c, []string{})
			return
		}
		response.Error(c, err)
		return
	}

	names := []string{}
	for _, entry := range entries {
		if !entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	response.OK(c, names)
}

// tailLogFile godoc
// @Summary Read the tail of a log file
// @Description Returns the last lines of the named log file, capped by limit.
// @Tags logs
// @Produce json
// @Param name path string true "Log file name"
// @Param limit query int false "Maximum lines" default(500)
// @Success 200 {object} response.Envelope{data=[]string}
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /logs/{name} [get]
func (h *logsHandler) tailLogFile(c *gin.Context) {
	name := c.Param("name")
	// The file must live directly in the log directory; reject any path
	// component.
	if name == "" || name != filepath.Base(name) || strings.Contains(name, "..") {
		response.Error(c, apperrors.NewAppError(apperrors.ErrValidation, "invalid log file name", nil))
		return
	}

	limit := defaultLogLines
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil && parsed > 0 && parsed <= defaultLogLines {
			limit = parsed
		}
	}

	data, err := os.ReadFile(filepath.Join(h.logDir, name))
	if err != nil {
		if os.IsNotExist(err) {
			response.Error(c, apperrors.ErrNotFound)
			return
		}
		response.Error(c, err)
		return
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) > limit {
		lines = lines[len(lines)-limit:]
	}
	response.OK(c, lines)
}
