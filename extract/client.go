package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"contract-extractor/models"
	"contract-extractor/selection"
)

// FormField is the multipart field carrying the document.
const FormField = "file"

// ProgressFunc is called as the request body is sent.
type ProgressFunc func(sent, total int64)

// Response is a settled extraction request. Non-success statuses are not
// errors: the payload decides how the response is rendered.
type Response struct {
	StatusCode int
	StatusText string
	Payload    models.Payload
	// DecodeErr is set when the body was not a JSON object envelope.
	DecodeErr error
}

func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Client talks to the extraction service.
type Client struct {
	extractURL  string
	downloadURL string
	httpClient  *http.Client
	onProgress  ProgressFunc
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

func WithProgress(fn ProgressFunc) Option {
	return func(c *Client) {
		c.onProgress = fn
	}
}

// NewClient builds a client for cfg. The HTTP client has no timeout; a
// request runs until the transport settles it.
func NewClient(cfg *models.Config, opts ...Option) *Client {
	c := &Client{
		extractURL:  cfg.ExtractURL(),
		downloadURL: cfg.DownloadURL(),
		httpClient:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Extract uploads file as a single multipart field and decodes the reply.
func (c *Client) Extract(ctx context.Context, file selection.File) (*Response, error) {
	body, contentType, err := buildMultipart(file)
	if err != nil {
		return nil, err
	}

	total := int64(body.Len())
	var reader io.Reader = body
	if c.onProgress != nil {
		reader = &progressReader{r: body, total: total, fn: c.onProgress}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.extractURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.ContentLength = total
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		StatusText: statusText(resp),
	}
	result.Payload, result.DecodeErr = DecodePayload(raw)

	return result, nil
}

// Download fetches the service's last extraction output into w.
func (c *Client) Download(ctx context.Context, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.downloadURL, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to download output: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return 0, fmt.Errorf("download failed: %s", statusText(resp))
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("failed to write output: %w", err)
	}
	return n, nil
}

func buildMultipart(file selection.File) (*bytes.Buffer, string, error) {
	src, err := file.Open()
	if err != nil {
		return nil, "", fmt.Errorf("failed to open %s: %w", file.Name(), err)
	}
	defer src.Close()

	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	part, err := mw.CreateFormFile(FormField, file.Name())
	if err != nil {
		return nil, "", fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, src); err != nil {
		return nil, "", fmt.Errorf("failed to read %s: %w", file.Name(), err)
	}
	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}

	return body, mw.FormDataContentType(), nil
}

// statusText mirrors a browser's statusText: the reason phrase without the code.
func statusText(resp *http.Response) string {
	if text := http.StatusText(resp.StatusCode); text != "" {
		return text
	}
	prefix := fmt.Sprintf("%d ", resp.StatusCode)
	if text := strings.TrimPrefix(resp.Status, prefix); text != "" {
		return text
	}
	return fmt.Sprintf("HTTP %d", resp.StatusCode)
}

type progressReader struct {
	r     io.Reader
	sent  int64
	total int64
	fn    ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		p.fn(p.sent, p.total)
	}
	return n, err
}
