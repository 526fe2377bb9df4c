package stt

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// FormField is the multipart field the audio file is sent under.
const FormField = "file"

// previewLimit caps how much of a response body is written to the log.
const previewLimit = 500

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// EndpointProvider posts the audio file as a multipart form to a fixed
// transcription URL and treats the response body as the transcript.
type EndpointProvider struct {
	url    string
	client *http.Client
	logger *zap.Logger
}

// NewEndpointProvider creates a provider for the given URL. A zero timeout
// leaves requests unbounded.
func NewEndpointProvider(url string, timeout time.Duration, logger *zap.Logger) *EndpointProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EndpointProvider{
		url:    url,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Name returns the provider name
func (p *EndpointProvider) Name() string {
	return "endpoint"
}

// Transcribe sends audio to the transcription endpoint and returns the transcript
func (p *EndpointProvider) Transcribe(ctx context.Context, audio Audio) (*Result, error) {
	startTime := time.Now()

	body, contentType, err := buildForm(audio)
	if err != nil {
		return nil, fmt.Errorf("failed to build multipart form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	p.logger.Info("sending audio",
		zap.String("url", p.url),
		zap.String("file", audio.Name),
		zap.String("size", humanize.IBytes(uint64(len(audio.Data)))),
	)

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn("request failed", zap.Error(err))
		return nil, &TransferError{Provider: p.Name(), Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		p.logger.Warn("failed to read response body", zap.Int("status", resp.StatusCode), zap.Error(err))
		return nil, &TransferError{Provider: p.Name(), Err: fmt.Errorf("read response body: %w", err)}
	}

	p.logger.Debug("response received",
		zap.Int("status", resp.StatusCode),
		zap.String("preview", preview(raw)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.logger.Warn("endpoint returned error status",
			zap.Int("status", resp.StatusCode),
			zap.String("body", preview(raw)),
		)
		return nil, &TransferError{Provider: p.Name(), StatusCode: resp.StatusCode}
	}

	text, err := decodePayload(resp.Header.Get("Content-Type"), raw)
	if err != nil {
		return nil, err
	}

	p.logger.Info("transcription received",
		zap.Int("status", resp.StatusCode),
		zap.Int("length", len(text)),
		zap.Duration("duration", time.Since(startTime)),
	)

	return &Result{
		Transcript:  text,
		Provider:    p.Name(),
		StatusCode:  resp.StatusCode,
		RawResponse: string(raw),
	}, nil
}

// buildForm writes the single file part. The part keeps the file's
// declared content type instead of the application/octet-stream that
// multipart.Writer.CreateFormFile would use.
func buildForm(audio Audio) (*bytes.Buffer, string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, FormField, quoteEscaper.Replace(audio.Name)))
	contentType := audio.MIMEType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", fmt.Errorf("create form part: %w", err)
	}
	if _, err := part.Write(audio.Data); err != nil {
		return nil, "", fmt.Errorf("write file content: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("close multipart writer: %w", err)
	}

	return body, writer.FormDataContentType(), nil
}

func preview(body []byte) string {
	if len(body) > previewLimit {
		return string(body[:previewLimit]) + "..."
	}
	return string(body)
}
