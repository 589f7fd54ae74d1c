package api

import (
	"bytes"
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/Houeta/pair-compare/internal/repository"
	"github.com/Houeta/pair-compare/internal/repository/csvlog"
	"github.com/Houeta/pair-compare/internal/services/workflow"
	"github.com/gin-gonic/gin"
)

const (
	indexTemplate  = "index.html"
	noFilesMessage = "No CSV files available"
	saveFailedText = "Failed to save the comparison. Please try again."
	xlsxMIME       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	defaultHistoryLimit = 20
	maxHistoryLimit     = 500
)

func (h *Handler) index(c *gin.Context) {
	c.HTML(http.StatusOK, indexTemplate, indexView{})
}

// submit parses the form into one action and renders its result.
func (h *Handler) submit(c *gin.Context) {
	const opn = "api.submit"

	if err := c.Request.ParseForm(); err != nil {
		c.HTML(http.StatusBadRequest, indexTemplate, indexView{Error: "Invalid form submission."})
		return
	}

	res, err := h.flow.Handle(c.Request.Context(), workflow.ParseForm(c.Request.PostForm))
	if err != nil {
		h.log.ErrorContext(c.Request.Context(), "Failed to handle action",
			"op", opn, "error", err, requestIDKey, c.GetString(requestIDKey))
		c.HTML(http.StatusInternalServerError, indexTemplate, indexView{Error: saveFailedText})
		return
	}

	view := indexView{
		Records:            make([]recordView, 0, len(res.Records)),
		Diff:               res.Diff,
		EditableSecondSlot: res.EditableSecondSlot,
		Success:            res.Success,
	}
	for _, rec := range res.Records {
		view.Records = append(view.Records, newRecordView(rec))
	}

	c.HTML(http.StatusOK, indexTemplate, view)
}

// downloadCSV sends the newest log as an attachment.
func (h *Handler) downloadCSV(c *gin.Context) {
	path, ok := h.latestLog(c)
	if !ok {
		return
	}

	c.FileAttachment(path, filepath.Base(path))
}

// downloadXLSX sends the newest log converted to a workbook.
func (h *Handler) downloadXLSX(c *gin.Context) {
	const opn = "api.downloadXLSX"

	path, ok := h.latestLog(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := csvlog.WriteXLSX(path, &buf); err != nil {
		h.log.ErrorContext(c.Request.Context(), "Failed to export workbook", "op", opn, "error", err)
		c.String(http.StatusInternalServerError, "Failed to export workbook")
		return
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)) + ".xlsx"
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, xlsxMIME, buf.Bytes())
}

// latestLog writes the no-files message or a server error and reports false when there is nothing to send.
func (h *Handler) latestLog(c *gin.Context) (string, bool) {
	path, err := h.logs.Latest()
	if errors.Is(err, repository.ErrNoLogAvailable) {
		c.String(http.StatusOK, noFilesMessage)
		return "", false
	}
	if err != nil {
		h.log.ErrorContext(c.Request.Context(), "Failed to locate log", "op", "api.latestLog", "error", err)
		c.String(http.StatusInternalServerError, "Failed to locate log")
		return "", false
	}
	return path, true
}

// history lists archived rows, newest first.
func (h *Handler) history(c *gin.Context) {
	const opn = "api.history"

	if h.archive == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "history is disabled"})
		return
	}

	limit := defaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	records, err := h.archive.RecentRecords(c.Request.Context(), limit)
	if err != nil {
		h.log.ErrorContext(c.Request.Context(), "Failed to read archive", "op", opn, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read history"})
		return
	}

	items := make([]historyItem, 0, len(records))
	for _, rec := range records {
		items = append(items, newHistoryItem(rec))
	}

	c.JSON(http.StatusOK, gin.H{"records": items, "total": len(items)})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"uptime":   time.Since(h.startedAt).Round(time.Second).String(),
		"log_path": h.logs.Path(),
		"archive":  h.archive != nil,
	})
}
