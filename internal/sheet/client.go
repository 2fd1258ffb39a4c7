// Package sheet talks to a Sheets-style values API: range-based reads of
// string cells and user-entered cell writes, with classified failures.
package sheet

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/oauth2"
)

const defaultBaseURL = "https://sheets.googleapis.com/v4/spreadsheets"

// Client reads and writes spreadsheet values over the REST values API.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient builds a client whose requests carry tokens from the given
// source.
func NewClient(ts oauth2.TokenSource) *Client {
	httpClient := oauth2.NewClient(context.Background(), ts)
	httpClient.Timeout = 30 * time.Second
	return &Client{httpClient: httpClient, baseURL: defaultBaseURL}
}

// NewClientWithHTTP builds a client against an arbitrary endpoint. Used by
// tests and self-hosted backends.
func NewClientWithHTTP(httpClient *http.Client, baseURL string) *Client {
	return &Client{httpClient: httpClient, baseURL: baseURL}
}

type valuesResponse struct {
	Range          string     `json:"range"`
	MajorDimension string     `json:"majorDimension"`
	Values         [][]string `json:"values"`
}

type apiError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Status  string `json:"status"`
	} `json:"error"`
}

// FetchRows reads the full cell range as rows of strings. The first row is
// the header row; trailing empty cells may be absent.
func (c *Client) FetchRows(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	endpoint := fmt.Sprintf("%s/%s/values/%s", c.baseURL, url.PathEscape(spreadsheetID), url.PathEscape(readRange))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build fetch request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newError(ClassUnknown, "fetch rows", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newError(ClassUnknown, "read fetch response", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, responseError(resp.StatusCode, body)
	}

	var payload valuesResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, newError(ClassUnknown, "decode fetch response", err)
	}
	return payload.Values, nil
}

// UpdateCell writes a single cell with user-entered semantics, so the backend
// parses the value the way manual entry would.
func (c *Client) UpdateCell(ctx context.Context, spreadsheetID, cellRange, value string) error {
	endpoint := fmt.Sprintf("%s/%s/values/%s?valueInputOption=USER_ENTERED",
		c.baseURL, url.PathEscape(spreadsheetID), url.PathEscape(cellRange))

	payload, err := json.Marshal(map[string]any{
		"range":          cellRange,
		"majorDimension": "ROWS",
		"values":         [][]string{{value}},
	})
	if err != nil {
		return fmt.Errorf("marshal update payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build update request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return newError(ClassUnknown, "update cell", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return responseError(resp.StatusCode, body)
	}
	return nil
}

func responseError(status int, body []byte) error {
	message := fmt.Sprintf("backend returned %d", status)
	var decoded apiError
	if err := json.Unmarshal(body, &decoded); err == nil && decoded.Error.Message != "" {
		message = decoded.Error.Message
	}
	return newError(classifyStatus(status), message, nil)
}
