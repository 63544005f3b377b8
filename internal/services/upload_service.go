package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/soaringjerry/evoa/internal/logging"
)

const (
	DefaultCloudflareBase = "https://api.cloudflare.com"
	DefaultMaxDuration    = 120
	DefaultUploadURLTTL   = 30 * time.Minute
)

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type UploadConfig struct {
	AccountID      string
	APIToken       string
	BaseURL        string
	MaxDuration    int // seconds
	URLTTL         time.Duration
	AllowedOrigins []string
}

// UploadTicket is the one-time direct upload target handed to clients.
type UploadTicket struct {
	UploadURL string `json:"uploadUrl"`
	VideoID   string `json:"videoId"`
}

type UploadRequest struct {
	Duration float64 `json:"duration"`
}

type UploadService struct {
	cfg    UploadConfig
	client HTTPClient
	now    func() time.Time
}

func NewUploadService(cfg UploadConfig, client HTTPClient) *UploadService {
	if client == nil {
		client = http.DefaultClient
	}
	if strings.TrimSpace(cfg.BaseURL) == "" {
		cfg.BaseURL = DefaultCloudflareBase
	}
	if cfg.MaxDuration <= 0 {
		cfg.MaxDuration = DefaultMaxDuration
	}
	if cfg.URLTTL <= 0 {
		cfg.URLTTL = DefaultUploadURLTTL
	}
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	return &UploadService{cfg: cfg, client: client, now: time.Now}
}

func (s *UploadService) Configured() bool {
	return strings.TrimSpace(s.cfg.AccountID) != "" && strings.TrimSpace(s.cfg.APIToken) != ""
}

func (s *UploadService) endpoint() string {
	return strings.TrimRight(s.cfg.BaseURL, "/") + "/client/v4/accounts/" + url.PathEscape(s.cfg.AccountID) + "/stream/direct_upload"
}

// CreateUploadURL asks Cloudflare Stream for a direct creator upload. A
// requested duration above the configured cap is rejected; the cap itself
// is what Cloudflare is told.
func (s *UploadService) CreateUploadURL(ctx context.Context, req UploadRequest) (*UploadTicket, error) {
	if req.Duration < 0 || req.Duration > float64(s.cfg.MaxDuration) {
		return nil, NewInvalidError(fmt.Sprintf("duration must be between 0 and %d seconds", s.cfg.MaxDuration))
	}
	if !s.Configured() {
		return nil, NewUnavailableError("Missing Cloudflare credentials")
	}
	payload := map[string]any{
		"maxDurationSeconds": s.cfg.MaxDuration,
		"expiry":             s.now().Add(s.cfg.URLTTL).UTC().Format(time.RFC3339),
		"requireSignedURLs":  false,
		"allowedOrigins":     s.cfg.AllowedOrigins,
	}
	pb, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint(), bytes.NewReader(pb))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.cfg.APIToken)
	resp, err := s.client.Do(httpReq)
	if err != nil {
		logging.Warn("cloudflare direct upload request failed", "error", err)
		return nil, NewBadGatewayError("Failed to initialize upload")
	}
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, NewBadGatewayError("Failed to initialize upload")
	}
	var cf struct {
		Success bool `json:"success"`
		Errors  []struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"errors"`
		Result struct {
			UploadURL string `json:"uploadURL"`
			UID       string `json:"uid"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &cf); err != nil {
		logging.Warn("cloudflare response is not JSON", "status", resp.StatusCode, "error", err)
		return nil, NewBadGatewayError("Failed to initialize upload")
	}
	if resp.StatusCode >= 300 || !cf.Success || cf.Result.UploadURL == "" || cf.Result.UID == "" {
		msg := "Failed to initialize upload"
		if len(cf.Errors) > 0 && cf.Errors[0].Message != "" {
			msg = cf.Errors[0].Message
		}
		logging.Warn("cloudflare rejected direct upload", "status", resp.StatusCode, "message", msg)
		return nil, NewBadGatewayError(msg)
	}
	logging.Info("direct upload created", "video_id", cf.Result.UID)
	return &UploadTicket{UploadURL: cf.Result.UploadURL, VideoID: cf.Result.UID}, nil
}
