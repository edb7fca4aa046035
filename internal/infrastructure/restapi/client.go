// Package restapi is the HTTP client of the external discount/user API.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// APIError is a failure response from the API. Message is the body's
// "message" field when present.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// TransportError is a failure to reach the API or to decode its answer.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

// Client performs JSON requests against BaseURL.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Logger  logrus.FieldLogger
}

// NewClient builds a client for baseURL. A zero timeout leaves calls bounded
// only by the caller's context.
func NewClient(baseURL string, timeout time.Duration, logger logrus.FieldLogger) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: timeout},
		Logger:  logger,
	}
}

type errorBody struct {
	Message string `json:"message"`
}

// Do sends body (if any) as JSON and decodes the response into out (if any).
// token is attached as a bearer credential when non-empty.
func (c *Client) Do(ctx context.Context, method, path, token string, body, out any) error {
	op := method + " " + path

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return &TransportError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, rd)
	if err != nil {
		return &TransportError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	res, err := c.HTTP.Do(req)
	if err != nil {
		c.log(op, 0, start, err)
		return &TransportError{Op: op, Err: err}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		c.log(op, res.StatusCode, start, err)
		return &TransportError{Op: op, Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := &APIError{Status: res.StatusCode}
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil && eb.Message != "" {
			apiErr.Message = eb.Message
		} else {
			apiErr.Message = fmt.Sprintf("Request failed with status code %d", res.StatusCode)
		}
		c.log(op, res.StatusCode, start, apiErr)
		return apiErr
	}
	c.log(op, res.StatusCode, start, nil)

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}

func (c *Client) log(op string, status int, start time.Time, err error) {
	if c.Logger == nil {
		return
	}
	entry := c.Logger.WithFields(logrus.Fields{
		"op":      op,
		"status":  status,
		"latency": time.Since(start).String(),
	})
	if err != nil {
		entry.WithError(err).Warn("api request failed")
		return
	}
	entry.Debug("api request")
}
