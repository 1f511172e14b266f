package ocr

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// UpstreamError 携带CLOVA OCR返回的原始状态码和响应体。
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("ocr service failed with status %d: %s", e.Status, e.Body)
}

// Config 是CLOVA OCR客户端的连接参数。
type Config struct {
	Endpoint string
	Secret   string
	Timeout  time.Duration
}

// Client 是CLOVA General OCR的HTTP客户端。
// 识别结果不做解析，原样透传给前端。
type Client struct {
	endpoint   string
	secret     string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient 创建OCR客户端。
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Endpoint) == "" {
		return nil, errors.New("ocr endpoint is required")
	}
	if strings.TrimSpace(cfg.Secret) == "" {
		return nil, errors.New("ocr secret is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		endpoint:   cfg.Endpoint,
		secret:     cfg.Secret,
		timeout:    cfg.Timeout,
		httpClient: &http.Client{},
	}, nil
}

// Recognize 把base64图片提交给CLOVA General OCR并返回其原始JSON响应。
func (c *Client) Recognize(ctx context.Context, base64Image string) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload := map[string]any{
		"images": []map[string]any{
			{
				"format": "jpg",
				"name":   "ocr_image",
				"data":   base64Image,
			},
		},
		"requestId": uuid.NewString(),
		"version":   "V2",
		"timestamp": time.Now().UnixMilli(),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-OCR-SECRET", c.secret)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &UpstreamError{Status: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}
	return json.RawMessage(respBody), nil
}
