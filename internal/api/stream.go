package api

import (
	"bufio"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// maxStreamLine bounds a single stream payload line.
const maxStreamLine = 1 << 20

// Stream connects to a line-delimited JSON streaming endpoint and prints up
// to limit documents. Keep-alive blank lines and undecodable lines are
// skipped. The connection closes when the limit is reached, the stream ends,
// or ctx is canceled.
func (c *Client) Stream(ctx context.Context, path string, params url.Values, limit int) error {
	u := c.base + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return &RequestError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), maxStreamLine)

	count := 0
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		var doc any
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			continue
		}

		if err := c.PrintJSON(doc); err != nil {
			return err
		}
		count++
		if count >= limit {
			break
		}
	}

	// A scanner error after enough documents is irrelevant: the connection
	// is torn down mid-stream by design.
	if count < limit {
		if err := scanner.Err(); err != nil && ctx.Err() == nil {
			return err
		}
	}
	return nil
}
