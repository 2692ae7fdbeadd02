package guestservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client клиент для работы с GuestService (профили гостей)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента GuestService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetGuest получает профиль гостя по ID
func (c *Client) GetGuest(ctx context.Context, userID int64) (*Guest, error) {
	url := fmt.Sprintf("%s/internal/guests/%d", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid guest ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrGuestNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var guest Guest
	if err := json.NewDecoder(resp.Body).Decode(&guest); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &guest, nil
}

// GetGuestWithGracefulDegradation получает профиль гостя с graceful degradation.
// Профиль — денормализация для истории бронирований, не критичная для
// создания брони: при недоступности GuestService возвращается
// ErrServiceDegraded, и бронирование создаётся без имени и email гостя.
func (c *Client) GetGuestWithGracefulDegradation(ctx context.Context, userID int64) (*Guest, error) {
	c.log.Info("Fetching guest profile for user_id=%d", userID)

	guest, err := c.GetGuest(ctx, userID)
	if err != nil {
		if err == ErrGuestNotFound {
			c.log.Info("No guest profile found for user_id=%d", userID)
			return nil, err
		}

		// Недоступность сервиса, таймауты и ошибки парсинга не должны
		// блокировать бронирование. Уровень ERROR, чтобы заметить проблему.
		c.log.Error("GuestService unavailable, applying graceful degradation for user_id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: user_id=%d, error=%v", ErrServiceDegraded, userID, err)
	}

	c.log.Info("Successfully fetched guest profile for user_id=%d", userID)
	return guest, nil
}
