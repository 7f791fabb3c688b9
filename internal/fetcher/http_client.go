package fetcher

import (
	"crypto/tls"
	"net"
	"net/http"
	"time"

	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/config"
	"github.com/rs/zerolog"
)

// NewHTTPClient creates an HTTP client configured for scraping
// rate-sensitive servers: hard request timeout, bounded redirects,
// conservative connection pooling.
func NewHTTPClient(cfg config.FetcherConfig, logger zerolog.Logger) *http.Client {
	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   cfg.Timeout(),
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			InsecureSkipVerify: cfg.InsecureSkipVerify,
		},
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 4,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	client := &http.Client{
		Transport: transport,
		Timeout:   cfg.Timeout(),
	}

	if !cfg.FollowRedirects {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		}
	} else if cfg.MaxRedirects > 0 {
		client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
			if len(via) >= cfg.MaxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		}
	}

	logger.Debug().
		Dur("timeout", cfg.Timeout()).
		Bool("follow_redirects", cfg.FollowRedirects).
		Int("max_redirects", cfg.MaxRedirects).
		Msg("HTTP client created")

	return client
}
