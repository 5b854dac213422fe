package service

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/octobees/lead-discovery/internal/discovery"
	"github.com/octobees/lead-discovery/internal/entity"
	"github.com/octobees/lead-discovery/internal/metrics"
)

const defaultSearchLocation = "Portugal"

// SearchResult is one completed search, stamped with its sequence number.
type SearchResult struct {
	Sequence uint64
	Category string
	Location string
	Leads    []entity.Lead
}

// LeadsService runs the discovery pipeline: prompt, grounded call, sanitize,
// normalize and filter. It never returns an error; every failure is logged and
// collapses to an empty lead list.
type LeadsService struct {
	client          discovery.Client
	logger          *zap.Logger
	sequencer       *Sequencer
	normalizer      Normalizer
	defaultLocation string
	socialCheck     bool
}

// LeadsOption configures optional LeadsService behaviour.
type LeadsOption func(*LeadsService)

// WithLeadsLogger overrides the logger used for pipeline diagnostics.
func WithLeadsLogger(logger *zap.Logger) LeadsOption {
	return func(s *LeadsService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDefaultLocation sets the location searched when the caller leaves it blank.
func WithDefaultLocation(location string) LeadsOption {
	return func(s *LeadsService) {
		if loc := strings.TrimSpace(location); loc != "" {
			s.defaultLocation = loc
		}
	}
}

// WithPhoneRegion sets the region used to interpret local phone numbers.
func WithPhoneRegion(region string) LeadsOption {
	return func(s *LeadsService) {
		s.normalizer.PhoneRegion = region
	}
}

// WithSocialWebsiteCheck clears social-media websites before filtering.
func WithSocialWebsiteCheck(enabled bool) LeadsOption {
	return func(s *LeadsService) {
		s.socialCheck = enabled
	}
}

// WithClock overrides the time source used when minting lead IDs.
func WithClock(now func() time.Time) LeadsOption {
	return func(s *LeadsService) {
		s.normalizer.Now = now
	}
}

// NewLeadsService wires the pipeline around a discovery client.
func NewLeadsService(client discovery.Client, opts ...LeadsOption) *LeadsService {
	s := &LeadsService{
		client:          client,
		logger:          zap.L(),
		sequencer:       &Sequencer{},
		defaultLocation: defaultSearchLocation,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// DefaultLocation returns the location substituted for blank input.
func (s *LeadsService) DefaultLocation() string {
	return s.defaultLocation
}

// Search runs FindLeads under a freshly issued sequence number.
func (s *LeadsService) Search(ctx context.Context, category, location string) SearchResult {
	seq := s.sequencer.Next()
	location = s.resolveLocation(location)
	category = strings.TrimSpace(category)
	return SearchResult{
		Sequence: seq,
		Category: category,
		Location: location,
		Leads:    s.findLeads(ctx, seq, category, location),
	}
}

// IsLatest reports whether seq belongs to the most recent Search call.
func (s *LeadsService) IsLatest(seq uint64) bool {
	return s.sequencer.IsLatest(seq)
}

// FindLeads returns the actionable leads for category in location. The result
// is never nil.
func (s *LeadsService) FindLeads(ctx context.Context, category, location string) []entity.Lead {
	return s.findLeads(ctx, 0, strings.TrimSpace(category), s.resolveLocation(location))
}

func (s *LeadsService) findLeads(ctx context.Context, seq uint64, category, location string) []entity.Lead {
	log := s.logger.With(
		zap.Uint64("sequence", seq),
		zap.String("category", category),
		zap.String("location", location),
	)

	if s.client == nil || !s.client.Configured() {
		log.Error("discovery credential is missing; skipping search")
		metrics.SearchesTotal.WithLabelValues(category, metrics.OutcomeMissingCredential).Inc()
		return []entity.Lead{}
	}

	log.Info("searching for leads")
	outcome := s.client.Discover(ctx, BuildDiscoveryPrompt(category, location))
	if !outcome.OK() {
		log.Error("discovery call failed",
			zap.Stringer("failure", outcome.Failure),
			zap.Error(outcome.Err),
		)
		metrics.SearchesTotal.WithLabelValues(category, outcome.Failure.String()).Inc()
		return []entity.Lead{}
	}

	payload := SanitizeResponse(outcome.Text)
	candidates, err := s.normalizer.Normalize(payload, category, location)
	if err != nil {
		log.Error("failed to parse business data",
			zap.Error(err),
			zap.String("raw_output", outcome.Text),
		)
		metrics.SearchesTotal.WithLabelValues(category, metrics.OutcomeParseError).Inc()
		return []entity.Lead{}
	}

	if s.socialCheck {
		candidates = ClearSocialWebsites(candidates)
	}
	leads := FilterActionable(candidates)
	recordSearch(category, len(candidates), len(leads))

	log.Info("lead search completed",
		zap.Int("candidates", len(candidates)),
		zap.Int("leads", len(leads)),
	)
	return leads
}

func (s *LeadsService) resolveLocation(location string) string {
	if loc := strings.TrimSpace(location); loc != "" {
		return loc
	}
	return s.defaultLocation
}

func recordSearch(category string, candidates, leads int) {
	outcome := metrics.OutcomeLeads
	if leads == 0 {
		outcome = metrics.OutcomeEmpty
	}
	metrics.SearchesTotal.WithLabelValues(category, outcome).Inc()
	metrics.LeadsReturned.Observe(float64(leads))
	metrics.CandidatesDropped.Add(float64(candidates - leads))
}
