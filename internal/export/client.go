package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Client posts result batches to the persistence endpoint. Callers treat a
// failed save as non-fatal: log and move on, no retry.
type Client struct {
	url  string
	http *http.Client
}

type Config struct {
	URL     string
	Timeout time.Duration
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		url:  cfg.URL,
		http: &http.Client{Timeout: timeout},
	}
}

// SaveResults sends the whole batch as one request.
func (c *Client) SaveResults(ctx context.Context, results []TestResult) error {
	if len(results) == 0 {
		return errors.New("empty result batch")
	}
	body, err := json.Marshal(results)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	res, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode/100 != 2 {
		return fmt.Errorf("save results: %s", res.Status)
	}
	return nil
}
