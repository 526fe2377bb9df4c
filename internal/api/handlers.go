package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"transcribeui/internal/present"
	"transcribeui/internal/session"
	"transcribeui/internal/stt"
	"transcribeui/internal/uploader"
	"transcribeui/internal/utils"
	"transcribeui/internal/web"
)

// SessionCookie carries the session id of the browser's uploader.
const SessionCookie = "uploader_session"

// Handler serves the uploader page and its actions.
type Handler struct {
	sessions *session.Manager
	metrics  http.Handler
	logger   *zap.Logger
	inflight sync.WaitGroup
}

// NewHandler creates a Handler. metrics may be nil.
func NewHandler(sessions *session.Manager, metrics http.Handler, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		sessions: sessions,
		metrics:  metrics,
		logger:   logger,
	}
}

func RegisterRoutes(r *gin.Engine, h *Handler) error {
	tmpl, err := web.Templates()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	static, err := web.Static()
	if err != nil {
		return fmt.Errorf("failed to load static files: %w", err)
	}
	r.StaticFS("/static", http.FS(static))

	// Health check
	r.GET("/health", h.healthCheck)
	if h.metrics != nil {
		r.GET("/metrics", gin.WrapH(h.metrics))
	}

	r.GET("/", h.page)
	r.GET("/state", h.state)
	r.POST("/file", h.selectFile)
	r.POST("/transcribe", h.transcribe)
	r.POST("/reset", h.reset)
	r.POST("/copy", h.copyTranscript)
	return nil
}

// Wait blocks until every background transcription has resolved.
func (h *Handler) Wait() {
	h.inflight.Wait()
}

// healthCheck returns server health status
func (h *Handler) healthCheck(c *gin.Context) {
	utils.Success(c, gin.H{
		"status":  "ok",
		"service": "transcribeui",
	})
}

// page renders the uploader for the caller's session
func (h *Handler) page(c *gin.Context) {
	u := h.sessionUploader(c)
	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, web.PageTemplate, present.Build(u.Snapshot()))
}

// state returns the uploader state as JSON
func (h *Handler) state(c *gin.Context) {
	utils.Success(c, snapshotData(h.currentSnapshot(c)))
}

// selectFile handles a dropped or picked file
func (h *Handler) selectFile(c *gin.Context) {
	u := h.sessionUploader(c)

	candidate, err := readCandidate(c)
	if err != nil {
		h.logger.Warn("failed to read uploaded file", zap.Error(err))
		utils.Error(c, http.StatusBadRequest, "failed to read uploaded file: "+err.Error())
		return
	}
	source := c.DefaultPostForm("source", "picker")

	if err := u.Select(candidate); err != nil {
		var verr *uploader.ValidationError
		if !errors.As(err, &verr) {
			utils.Error(c, http.StatusInternalServerError, err.Error())
			return
		}
		h.logger.Info("file refused",
			zap.String("source", source),
			zap.String("name", candidate.Name),
			zap.String("declared_type", verr.MIMEType),
		)
		if wantsJSON(c) {
			utils.Error(c, http.StatusUnsupportedMediaType, err.Error(), snapshotData(u.Snapshot()))
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	h.logger.Info("file accepted",
		zap.String("source", source),
		zap.String("name", candidate.Name),
		zap.String("size", humanize.IBytes(uint64(candidate.Size))),
	)
	h.respond(c, u)
}

// transcribe starts the upload to the transcription provider and returns
// without waiting for it
func (h *Handler) transcribe(c *gin.Context) {
	u, ok := h.existingUploader(c)
	var attempt *uploader.Attempt
	if ok {
		attempt, ok = u.Begin()
	}
	if !ok {
		if wantsJSON(c) {
			utils.Error(c, http.StatusConflict, "no file selected or transcription already running", snapshotData(h.currentSnapshot(c)))
			return
		}
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	// The attempt outlives this request; it is neither canceled nor
	// timed out by it.
	ctx := context.WithoutCancel(c.Request.Context())
	h.inflight.Add(1)
	go func() {
		defer h.inflight.Done()
		attempt.Run(ctx)
	}()

	h.respond(c, u)
}

// reset clears the caller's uploader
func (h *Handler) reset(c *gin.Context) {
	u, ok := h.existingUploader(c)
	if !ok {
		h.respondSnapshot(c, idleSnapshot())
		return
	}

	if !u.Reset() && wantsJSON(c) {
		utils.Error(c, http.StatusConflict, "transcription is running", snapshotData(u.Snapshot()))
		return
	}
	h.respond(c, u)
}

// copyTranscript writes the exact transcript as plain text for the
// browser to put on the clipboard
func (h *Handler) copyTranscript(c *gin.Context) {
	u, ok := h.existingUploader(c)
	if !ok {
		utils.Error(c, http.StatusConflict, uploader.ErrNothingToCopy.Error())
		return
	}

	if err := u.CopyTranscript(responseClipboard{c: c}); err != nil {
		if errors.Is(err, uploader.ErrNothingToCopy) {
			utils.Error(c, http.StatusConflict, err.Error())
			return
		}
		utils.Error(c, http.StatusInternalServerError, err.Error())
	}
}

// sessionUploader returns the caller's uploader, issuing a session cookie when
// the caller has none or an expired one.
func (h *Handler) sessionUploader(c *gin.Context) *uploader.Uploader {
	current, _ := c.Cookie(SessionCookie)
	id, u := h.sessions.Acquire(current)
	if id != current {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(SessionCookie, id, 0, "/", "", false, true)
	}
	return u
}

// existingUploader returns the caller's uploader without creating a
// session. Only the page and file intake start sessions.
func (h *Handler) existingUploader(c *gin.Context) (*uploader.Uploader, bool) {
	id, err := c.Cookie(SessionCookie)
	if err != nil {
		return nil, false
	}
	return h.sessions.Lookup(id)
}

// currentSnapshot is the caller's state, or a fresh idle one when the
// caller has no session.
func (h *Handler) currentSnapshot(c *gin.Context) uploader.Snapshot {
	if u, ok := h.existingUploader(c); ok {
		return u.Snapshot()
	}
	return idleSnapshot()
}

func idleSnapshot() uploader.Snapshot {
	return uploader.Snapshot{State: uploader.Idle{}}
}

func (h *Handler) respond(c *gin.Context, u *uploader.Uploader) {
	h.respondSnapshot(c, u.Snapshot())
}

func (h *Handler) respondSnapshot(c *gin.Context, s uploader.Snapshot) {
	if wantsJSON(c) {
		utils.Success(c, snapshotData(s))
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// responseClipboard writes copied text as the response body.
type responseClipboard struct {
	c *gin.Context
}

func (r responseClipboard) WriteText(text string) error {
	r.c.Header("Cache-Control", "no-store")
	r.c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
	return nil
}

// readCandidate reads the file part. A request without one yields an
// empty File, which File Intake refuses like any other non-MP3.
func readCandidate(c *gin.Context) (uploader.File, error) {
	fh, err := c.FormFile(stt.FormField)
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		return uploader.File{}, nil
	}
	if err != nil {
		return uploader.File{}, err
	}

	src, err := fh.Open()
	if err != nil {
		return uploader.File{}, fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return uploader.File{}, fmt.Errorf("read file: %w", err)
	}

	return uploader.File{
		Name:     fh.Filename,
		Size:     fh.Size,
		MIMEType: fh.Header.Get("Content-Type"),
		Data:     data,
	}, nil
}

func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

func snapshotData(s uploader.Snapshot) gin.H {
	data := gin.H{
		"state":      s.State.Phase(),
		"loading":    s.Loading(),
		"succeeded":  s.Succeeded(),
		"transcript": s.Transcript(),
		"error":      s.ErrorMessage(),
		"can_submit": s.CanSubmit(),
		"can_reset":  s.CanReset(),
		"file":       nil,
	}
	if s.File != nil {
		data["file"] = gin.H{
			"name":       s.File.Name,
			"size":       s.File.Size,
			"size_label": present.FormatSize(s.File.Size),
			"mime_type":  s.File.MIMEType,
		}
	}
	return data
}
