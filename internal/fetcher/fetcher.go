package fetcher

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/config"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/errorwrapper"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/models"
	"github.com/rs/zerolog"
)

// ErrNotModified is returned when the server answers a conditional GET
// with 304. The pipeline treats it as the unchanged case without invoking
// extraction.
var ErrNotModified = errorwrapper.NewError("content not modified")

// Fetcher performs conditional HTTP GETs for monitored sources. It holds
// no per-source state, so a single instance is safe under concurrency.
type Fetcher struct {
	httpClient *http.Client
	logger     zerolog.Logger
	cfg        config.FetcherConfig
}

// NewFetcher creates a new Fetcher.
func NewFetcher(client *http.Client, logger zerolog.Logger, cfg config.FetcherConfig) *Fetcher {
	return &Fetcher{
		httpClient: client,
		logger:     logger.With().Str("component", "Fetcher").Logger(),
		cfg:        cfg,
	}
}

// FetchInput holds parameters for Fetch.
type FetchInput struct {
	URL                  string
	PreviousETag         string
	PreviousLastModified string
}

// Fetch performs an HTTP GET for the source URL. Previous transport hints,
// when present, are sent as conditional request headers; a 304 response
// returns ErrNotModified. Any non-2xx/non-304 status or transport failure
// returns a FetchError. Retries are the caller's responsibility.
func (f *Fetcher) Fetch(ctx context.Context, input FetchInput) (*models.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, input.URL, nil)
	if err != nil {
		return nil, errorwrapper.NewFetchError(input.URL, "creating request", err)
	}

	req.Header.Set("User-Agent", f.cfg.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/pdf;q=0.9,*/*;q=0.7")
	if input.PreviousETag != "" {
		req.Header.Set("If-None-Match", input.PreviousETag)
	}
	if input.PreviousLastModified != "" {
		req.Header.Set("If-Modified-Since", input.PreviousLastModified)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		f.logger.Warn().Err(err).Str("url", input.URL).Msg("HTTP request failed")
		return nil, errorwrapper.NewFetchError(input.URL, "HTTP request failed", err)
	}
	defer resp.Body.Close()

	result := &models.FetchResult{
		ContentType:   resp.Header.Get("Content-Type"),
		StatusCode:    resp.StatusCode,
		ETag:          resp.Header.Get("ETag"),
		LastModified:  resp.Header.Get("Last-Modified"),
		ContentLength: parseContentLength(resp),
		FetchedAt:     time.Now().UTC(),
	}

	if resp.StatusCode == http.StatusNotModified {
		f.logger.Debug().Str("url", input.URL).Msg("Content not modified (304)")
		return result, ErrNotModified
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Warn().Str("url", input.URL).Int("status_code", resp.StatusCode).Msg("Received non-OK HTTP status")
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, errorwrapper.NewHTTPFetchError(input.URL, resp.StatusCode, string(body))
	}

	if result.ContentLength > 0 && result.ContentLength > int64(f.cfg.MaxContentSize) {
		return nil, errorwrapper.NewHTTPFetchError(input.URL, resp.StatusCode,
			"content too large: "+strconv.FormatInt(result.ContentLength, 10)+" bytes")
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, int64(f.cfg.MaxContentSize)+1))
	if err != nil {
		return nil, errorwrapper.NewFetchError(input.URL, "reading response body", err)
	}
	if len(body) > f.cfg.MaxContentSize {
		return nil, errorwrapper.NewHTTPFetchError(input.URL, resp.StatusCode,
			"content too large: body exceeds "+strconv.Itoa(f.cfg.MaxContentSize)+" bytes")
	}

	// ContentLength stays as the server-declared value (0 when absent) so
	// the signature engine can check it against the observed payload.
	result.Body = body

	f.logger.Debug().
		Str("url", input.URL).
		Str("content_type", result.ContentType).
		Int("size", len(result.Body)).
		Msg("Content fetched")

	return result, nil
}

// parseContentLength prefers the response's declared length so hint
// consistency can be checked against the observed payload.
func parseContentLength(resp *http.Response) int64 {
	if resp.ContentLength > 0 {
		return resp.ContentLength
	}
	if cl := resp.Header.Get("Content-Length"); cl != "" {
		if n, err := strconv.ParseInt(cl, 10, 64); err == nil {
			return n
		}
	}
	return 0
}
