// Package client talks to the evoa proxy on behalf of a local profile.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/soaringjerry/evoa/internal/models"
)

const DefaultTimeout = 60 * time.Second

type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type Client struct {
	base  string
	token string
	http  HTTPClient
}

// New returns a client for baseURL. An empty token sends no Authorization
// header.
func New(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		token: token,
		http:  &http.Client{Timeout: timeout},
	}
}

// WithHTTPClient swaps the transport, mainly for tests.
func (c *Client) WithHTTPClient(h HTTPClient) *Client {
	c.http = h
	return c
}

// Error is a non-2xx reply from the proxy or the upload host.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.Status)
}

func (c *Client) Analyze(ctx context.Context, pitch *models.Pitch, userID string) (*models.Analysis, error) {
	var out models.Analysis
	if err := c.postJSON(ctx, "/analysis", map[string]any{"pitch": pitch, "userId": userID}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Ask(ctx context.Context, pitch *models.Pitch, userID, question string) (*models.Answer, error) {
	var out models.Answer
	body := map[string]any{"pitch": pitch, "userId": userID, "customQuestion": question}
	if err := c.postJSON(ctx, "/analysis", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type UploadTicket struct {
	UploadURL string `json:"uploadUrl"`
	VideoID   string `json:"videoId"`
}

func (c *Client) UploadURL(ctx context.Context, duration float64) (*UploadTicket, error) {
	var out UploadTicket
	if err := c.postJSON(ctx, "/upload-url", map[string]any{"duration": duration}, &out); err != nil {
		return nil, err
	}
	if out.UploadURL == "" || out.VideoID == "" {
		return nil, fmt.Errorf("upload url response missing fields")
	}
	return &out, nil
}

// UploadVideo posts the bytes to a one-time upload URL as the multipart
// "file" field.
func (c *Client) UploadVideo(ctx context.Context, uploadURL, filename string, r io.Reader) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)
	go func() {
		part, err := mw.CreateFormFile("file", filename)
		if err == nil {
			_, err = io.Copy(part, r)
		}
		if err == nil {
			err = mw.Close()
		}
		_ = pw.CloseWithError(err)
	}()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, pr)
	if err != nil {
		_ = pr.Close()
		return err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upload video: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &Error{Status: resp.StatusCode, Message: strings.TrimSpace(string(b))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.base+path, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode >= 300 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&e)
		return &Error{Status: resp.StatusCode, Message: e.Error}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}
