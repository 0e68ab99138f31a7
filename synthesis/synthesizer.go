// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package synthesis

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/poiesic/insight/ai"
	"github.com/poiesic/insight/core"
)

const (
	defaultMaxAttempts = 3
	defaultCallTimeout = 120 * time.Second
)

// Synthesizer turns a cluster's raw chunk texts into a ThemeCandidate via a
// generation backend. Quote fragments in the result are candidates only;
// nothing the backend returns is trusted as verbatim evidence.
//
// Per call the synthesizer walks a fixed state machine:
// Pending -> CallingPrimary -> Success, or on primary failure
// CallingFallback -> Success or terminal Failure. Malformed JSON triggers
// bounded re-generation within each backend before moving on.
type Synthesizer struct {
	primary     ai.Generator
	fallback    ai.Generator
	maxAttempts int
	callTimeout time.Duration
	logger      *slog.Logger
}

// Option is a functional option for configuring a Synthesizer.
type Option func(*Synthesizer)

// WithMaxAttempts sets how many times malformed output is retried per
// backend. Default is 3.
func WithMaxAttempts(n int) Option {
	return func(s *Synthesizer) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithCallTimeout bounds each individual generation call. Default is 120s.
func WithCallTimeout(d time.Duration) Option {
	return func(s *Synthesizer) {
		if d > 0 {
			s.callTimeout = d
		}
	}
}

// New creates a synthesizer. The fallback generator may be nil, in which
// case primary failure is terminal.
func New(primary, fallback ai.Generator, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		primary:     primary,
		fallback:    fallback,
		maxAttempts: defaultMaxAttempts,
		callTimeout: defaultCallTimeout,
		logger:      slog.Default().With("component", "synthesizer"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Request carries everything needed to synthesize one cluster.
type Request struct {
	Cluster core.Cluster

	// Chunks are the cluster's member chunks, raw text included.
	Chunks []core.Chunk

	// Lens steers the analysis angle.
	Lens Lens

	// Questions is the subset of research questions this cluster may
	// address, most relevant first. May be empty.
	Questions []core.ResearchQuestion
}

// Synthesize produces a ThemeCandidate for the request. On terminal failure
// it returns ErrSynthesisFailure wrapped with the recorded reason; the trace
// is returned in both cases for diagnostics.
func (s *Synthesizer) Synthesize(ctx context.Context, req Request) (*core.ThemeCandidate, *Trace, error) {
	trace := &Trace{}
	trace.transition(StatePending)

	if len(req.Chunks) == 0 {
		trace.FailureReason = ErrNoChunks.Error()
		trace.transition(StateFailed)
		return nil, trace, fmt.Errorf("%w: cluster %d: %v",
			core.ErrSynthesisFailure, req.Cluster.Id, ErrNoChunks)
	}

	prompt := buildPrompt(req.Chunks, req.Lens, req.Questions)

	trace.transition(StateCallingPrimary)
	payload, primaryErr := s.callBackend(ctx, s.primary, prompt)
	if primaryErr == nil {
		trace.transition(StateSucceeded)
		return s.buildCandidate(req, payload), trace, nil
	}
	s.logger.Warn("primary backend failed",
		"cluster", req.Cluster.Id,
		"backend", s.primary.Name(),
		"err", primaryErr)

	if s.fallback != nil {
		trace.transition(StateCallingFallback)
		payload, fallbackErr := s.callBackend(ctx, s.fallback, prompt)
		if fallbackErr == nil {
			trace.transition(StateSucceeded)
			return s.buildCandidate(req, payload), trace, nil
		}
		s.logger.Error("fallback backend failed",
			"cluster", req.Cluster.Id,
			"backend", s.fallback.Name(),
			"err", fallbackErr)
		trace.FailureReason = fmt.Sprintf("primary (%s): %v; fallback (%s): %v",
			s.primary.Name(), primaryErr, s.fallback.Name(), fallbackErr)
	} else {
		trace.FailureReason = fmt.Sprintf("primary (%s): %v; no fallback configured",
			s.primary.Name(), primaryErr)
	}

	trace.transition(StateFailed)
	return nil, trace, fmt.Errorf("%w: cluster %d: %s",
		core.ErrSynthesisFailure, req.Cluster.Id, trace.FailureReason)
}

// callBackend runs one backend with bounded retries for malformed output.
// Transport errors are not retried here; the retry budget exists for JSON
// defects, which a fresh generation may fix.
func (s *Synthesizer) callBackend(ctx context.Context, gen ai.Generator, prompt string) (*themePayload, error) {
	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
		raw, err := gen.GenerateJSON(callCtx, systemPrompt, prompt)
		cancel()
		if err != nil {
			return nil, err
		}

		payload, err := parseResponse(raw)
		if err == nil {
			return payload, nil
		}
		lastErr = err
		s.logger.Warn("malformed synthesis response",
			"backend", gen.Name(),
			"attempt", attempt,
			"err", err)

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

// buildCandidate converts a parsed payload into a ThemeCandidate. Question
// numbers from the prompt (1-based, capped at maxPromptQuestions) map back
// to question IDs; out-of-range numbers are dropped.
func (s *Synthesizer) buildCandidate(req Request, payload *themePayload) *core.ThemeCandidate {
	limit := len(req.Questions)
	if limit > maxPromptQuestions {
		limit = maxPromptQuestions
	}

	var addressed []core.ID
	seen := make(map[core.ID]bool)
	for _, n := range payload.AddressedQuestions {
		if n < 1 || n > limit {
			continue
		}
		id := req.Questions[n-1].Id
		if !seen[id] {
			seen[id] = true
			addressed = append(addressed, id)
		}
	}

	fragments := make([]core.CandidateFragment, 0, len(payload.SupportingQuotes))
	for _, q := range payload.SupportingQuotes {
		if q.Text == "" {
			continue
		}
		fragments = append(fragments, core.CandidateFragment{
			Text:           q.Text,
			ClaimedSpeaker: q.Speaker,
		})
	}

	return &core.ThemeCandidate{
		ClusterId:            req.Cluster.Id,
		Label:                payload.ThemeName,
		Summary:              payload.Summary,
		AddressedQuestionIds: addressed,
		Confidence:           core.NormalizeConfidenceTag(core.ConfidenceTag(payload.Confidence)),
		CandidateFragments:   fragments,
	}
}
