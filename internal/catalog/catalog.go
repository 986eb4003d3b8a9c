package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GlebRadaev/duelhub/internal/domain"
	"github.com/GlebRadaev/duelhub/pkg/clients"
)

const (
	maxRetries    = 3
	retryInterval = time.Second * 1
	memoTTL       = time.Minute * 5
)

var (
	ErrGiftNotFound     = errors.New("gift not found in catalog")
	ErrUnexpectedStatus = errors.New("unexpected catalog status code")
)

type Response struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	CreditValue int64  `json:"credit_value"`
	Icon        string `json:"icon"`
}

type memoEntry struct {
	gift    *domain.Gift
	expires time.Time
}

// Client resolves gifts from the external catalog service and memoises
// successful lookups for a few minutes.
type Client struct {
	url           string
	client        clients.HTTPClientI
	retryInterval time.Duration
	memo          sync.Map
	now           func() time.Time
}

func New(url string, client clients.HTTPClientI) *Client {
	return &Client{
		url:           url,
		client:        client,
		retryInterval: retryInterval,
		now:           time.Now,
	}
}

func (c *Client) IsValidGift(ctx context.Context, giftID int) (bool, error) {
	_, err := c.GetGift(ctx, giftID)
	if errors.Is(err, ErrGiftNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) GetGift(ctx context.Context, giftID int) (*domain.Gift, error) {
	if v, ok := c.memo.Load(giftID); ok {
		entry := v.(memoEntry)
		if c.now().Before(entry.expires) {
			gift := *entry.gift
			return &gift, nil
		}
		c.memo.Delete(giftID)
	}

	gift, err := c.fetch(ctx, giftID)
	if err != nil {
		return nil, err
	}
	c.memo.Store(giftID, memoEntry{gift: gift, expires: c.now().Add(memoTTL)})
	copied := *gift
	return &copied, nil
}

func (c *Client) fetch(ctx context.Context, giftID int) (*domain.Gift, error) {
	url := c.url + "/api/gifts/" + strconv.Itoa(giftID)
	var err error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		var (
			statusCode  int
			respBody    []byte
			respHeaders http.Header
		)
		statusCode, respBody, respHeaders, err = c.client.Get(ctx, url, nil)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			zap.L().Warn("Gift catalog request failed, retrying", zap.Int("giftID", giftID), zap.Int("attempt", attempt), zap.Error(err))
			if attempt < maxRetries {
				if err := c.wait(ctx, c.retryInterval*time.Duration(attempt)); err != nil {
					return nil, err
				}
				continue
			}
			return nil, fmt.Errorf("failed to fetch gift %d after %d retries: %w", giftID, maxRetries, err)
		}

		switch statusCode {
		case http.StatusOK:
			return decodeGift(giftID, respBody)
		case http.StatusNotFound:
			return nil, ErrGiftNotFound
		case http.StatusTooManyRequests:
			err = ErrUnexpectedStatus
			if attempt < maxRetries {
				if err := c.wait(ctx, c.retryAfter(respHeaders, attempt)); err != nil {
					return nil, err
				}
				continue
			}
			return nil, fmt.Errorf("gift catalog rate limited after %d retries", maxRetries)
		default:
			zap.L().Error("Unexpected catalog status code", zap.Int("status", statusCode), zap.Int("giftID", giftID))
			return nil, fmt.Errorf("%w: %d", ErrUnexpectedStatus, statusCode)
		}
	}
	return nil, err
}

func (c *Client) retryAfter(headers http.Header, attempt int) time.Duration {
	retryAfter := c.retryInterval * time.Duration(attempt)
	if v := headers.Get("Retry-After"); v != "" {
		if seconds, err := strconv.Atoi(v); err == nil {
			retryAfter = time.Duration(seconds) * time.Second
		}
	}
	zap.L().Warn("Gift catalog rate limit detected, retrying", zap.Int("attempt", attempt), zap.Duration("retryAfter", retryAfter))
	return retryAfter
}

func (c *Client) wait(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func decodeGift(giftID int, body []byte) (*domain.Gift, error) {
	var resp Response
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse catalog response: %w", err)
	}
	if resp.ID != giftID {
		return nil, fmt.Errorf("gift id mismatch: expected %d, got %d", giftID, resp.ID)
	}
	return &domain.Gift{
		ID:          resp.ID,
		Name:        resp.Name,
		CreditValue: resp.CreditValue,
		Icon:        resp.Icon,
	}, nil
}
