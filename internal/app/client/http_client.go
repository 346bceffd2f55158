package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"time"

	"golang.org/x/exp/slog"

	"idcards/internal/app/client/config"
	"idcards/internal/domain/card"
	"idcards/internal/export"
)

var (
	ErrUnauthorized = errors.New("not signed in or session expired")
	ErrNotFound     = errors.New("card not found")
)

// APIError - ответ сервера в формате huma (application/problem+json).
type APIError struct {
	Status int    `json:"status"`
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("server: %d %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("server: %d %s", e.Status, e.Title)
}

// Unwrap сводит коды ответа к ошибкам клиента.
func (e *APIError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

type httpClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	token     string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) (*httpClient, error) {
	transport := &http.Transport{
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		MaxIdleConnsPerHost: 10,
	}

	scheme := "http://"
	if cfg.EnableTLS {
		scheme = "https://"
		if cfg.CACertPath != "" {
			pem, err := os.ReadFile(cfg.CACertPath)
			if err != nil {
				return nil, fmt.Errorf("read CA cert: %w", err)
			}
			pool := x509.NewCertPool()
			if !pool.AppendCertsFromPEM(pem) {
				return nil, fmt.Errorf("no certificates in %s", cfg.CACertPath)
			}
			transport.TLSClientConfig = &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12}
		}
	}

	return &httpClient{
		// Таймаут экспорта задает вызывающий через контекст.
		client:    &http.Client{Transport: transport},
		log:       log.With(slog.String("component", "http_client")),
		baseURL:   scheme + cfg.ServerAddress,
		userAgent: "idcards-client/1.0",
	}, nil
}

func (h *httpClient) SetToken(token string) {
	h.token = token
}

func (h *httpClient) HealthCheck(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/v1/health", nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

type credentials struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

func (h *httpClient) Register(ctx context.Context, login, password string) (int, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, "/user/register", credentials{Login: login, Password: password})
	if err != nil {
		return 0, err
	}

	var out struct {
		ID int `json:"user_id"`
	}
	if err := h.parseResponse(resp, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func (h *httpClient) Login(ctx context.Context, login, password string) (string, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, "/user/login", credentials{Login: login, Password: password})
	if err != nil {
		return "", err
	}

	var out struct {
		Token string `json:"token"`
	}
	if err := h.parseResponse(resp, &out); err != nil {
		return "", err
	}
	return out.Token, nil
}

func (h *httpClient) Logout(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodPost, "/user/logout", nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

// Me - пользователь, которому принадлежит текущий токен.
type Me struct {
	ID    int    `json:"user_id"`
	Login string `json:"login"`
}

func (h *httpClient) Me(ctx context.Context) (Me, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/user/me", nil)
	if err != nil {
		return Me{}, err
	}

	var me Me
	err = h.parseResponse(resp, &me)
	return me, err
}

func (h *httpClient) ListCards(ctx context.Context, q string) ([]card.Card, error) {
	path := "/api/cards"
	if q != "" {
		path += "?" + url.Values{"q": {q}}.Encode()
	}

	resp, err := h.doRequest(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var out struct {
		Cards []card.Card `json:"cards"`
	}
	if err := h.parseResponse(resp, &out); err != nil {
		return nil, err
	}
	return out.Cards, nil
}

func (h *httpClient) CreateCard(ctx context.Context, f card.Fields) (string, error) {
	resp, err := h.doRequest(ctx, http.MethodPost, "/api/cards", f)
	if err != nil {
		return "", err
	}

	var out struct {
		ID string `json:"id"`
	}
	if err := h.parseResponse(resp, &out); err != nil {
		return "", err
	}
	return out.ID, nil
}

func (h *httpClient) GetCard(ctx context.Context, id string) (*card.Card, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/cards/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, err
	}

	var c card.Card
	if err := h.parseResponse(resp, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (h *httpClient) UpdateCard(ctx context.Context, id string, f card.Fields) (*card.Card, error) {
	resp, err := h.doRequest(ctx, http.MethodPut, "/api/cards/"+url.PathEscape(id), f)
	if err != nil {
		return nil, err
	}

	var c card.Card
	if err := h.parseResponse(resp, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (h *httpClient) DeleteCard(ctx context.Context, id string) error {
	resp, err := h.doRequest(ctx, http.MethodDelete, "/api/cards/"+url.PathEscape(id), nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

func (h *httpClient) Preview(ctx context.Context, id string) ([]byte, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/cards/"+url.PathEscape(id)+"/preview", nil)
	if err != nil {
		return nil, err
	}
	return h.readRaw(resp)
}

// Export скачивает PNG карточки. Имя файла берется из Content-Disposition.
func (h *httpClient) Export(ctx context.Context, id string) (export.Artifact, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/cards/"+url.PathEscape(id)+"/export", nil)
	if err != nil {
		return export.Artifact{}, err
	}

	disposition := resp.Header.Get("Content-Disposition")
	data, err := h.readRaw(resp)
	if err != nil {
		return export.Artifact{}, err
	}

	_, params, err := mime.ParseMediaType(disposition)
	if err != nil || params["filename"] == "" {
		return export.Artifact{}, fmt.Errorf("export response without filename: %q", disposition)
	}
	return export.Artifact{Filename: params["filename"], Data: data}, nil
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if h.token != "" {
		req.Header.Set("Authorization", "Bearer "+h.token)
	}

	h.log.Debug("request", slog.String("method", method), slog.String("url", req.URL.String()))

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("server unavailable: %w", err)
	}
	return resp, nil
}

func (h *httpClient) readRaw(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, apiError(resp.StatusCode, body)
	}
	return body, nil
}

func (h *httpClient) parseResponse(resp *http.Response, result any) error {
	body, err := h.readRaw(resp)
	if err != nil {
		return err
	}

	h.log.Debug("response", slog.Int("status", resp.StatusCode), slog.Int("bytes", len(body)))

	if result == nil || len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func apiError(status int, body []byte) error {
	e := &APIError{}
	if err := json.Unmarshal(body, e); err != nil || e.Status == 0 {
		e.Status = status
		e.Title = http.StatusText(status)
	}
	return e
}
