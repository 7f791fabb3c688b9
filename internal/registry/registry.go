package registry

import (
	"strings"
	"sync"

	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/errorwrapper"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/models"
	"github.com/aoteroDeployFarm/regulatory-data-bridge/internal/urlhandler"
	"github.com/rs/zerolog"
)

// ErrNoMatch is returned by ResolveURL when no registered source matches.
var ErrNoMatch = errorwrapper.NewError("no registered source matches URL")

// Registry is the explicit mapping from source identifier to typed pipeline
// configuration. It is built once at startup from the source-list provider
// and passed by reference into the orchestrator; after Freeze it is
// read-only and safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	byID    map[string]int
	sources []models.Source
	logger  zerolog.Logger
}

// NewRegistry creates an empty source registry.
func NewRegistry(logger zerolog.Logger) *Registry {
	return &Registry{
		byID:   make(map[string]int),
		logger: logger.With().Str("component", "Registry").Logger(),
	}
}

// Add registers a source, generating its ID from the URL when unset.
// Duplicate URLs are rejected; ID collisions between distinct URLs are
// uniqued with a short URL-hash suffix.
func (r *Registry) Add(src models.Source) (models.Source, error) {
	normalized, err := urlhandler.NormalizeURL(src.URL)
	if err != nil {
		return models.Source{}, errorwrapper.WrapError(err, "invalid source URL")
	}
	if err := urlhandler.ValidateURLFormat(normalized); err != nil {
		return models.Source{}, errorwrapper.WrapError(err, "unsupported source URL")
	}
	src.URL = normalized

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.sources {
		if existing.URL == src.URL {
			return models.Source{}, errorwrapper.NewError("source URL already registered: %s", src.URL)
		}
	}

	if src.ID == "" {
		src.ID = SourceID(src.URL)
	}
	if _, taken := r.byID[src.ID]; taken {
		src.ID = src.ID + "-" + urlHash(src.URL)
	}
	if src.Kind == "" {
		src.Kind = models.GuessKind(src.URL)
	}

	r.byID[src.ID] = len(r.sources)
	r.sources = append(r.sources, src)

	r.logger.Debug().
		Str("source_id", src.ID).
		Str("url", src.URL).
		Str("kind", string(src.Kind)).
		Msg("Source registered")

	return src, nil
}

// Get returns the source with the given identifier.
func (r *Registry) Get(id string) (models.Source, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return models.Source{}, false
	}
	return r.sources[idx], true
}

// Sources returns all registered sources in registration order.
func (r *Registry) Sources() []models.Source {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// Len returns the number of registered sources.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sources)
}

// ResolveURL maps an arbitrary input URL to a registered source using
// longest-prefix match over the registered URLs. Ties are broken by
// first-registered order. Returns ErrNoMatch when nothing matches.
func (r *Registry) ResolveURL(input string) (models.Source, error) {
	normalized, err := urlhandler.NormalizeURL(input)
	if err != nil {
		return models.Source{}, errorwrapper.WrapError(err, "invalid lookup URL")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	best := -1
	bestLen := -1
	for i, src := range r.sources {
		if !strings.HasPrefix(normalized, src.URL) {
			continue
		}
		if len(src.URL) > bestLen {
			best = i
			bestLen = len(src.URL)
		}
	}
	if best < 0 {
		return models.Source{}, ErrNoMatch
	}
	return r.sources[best], nil
}
