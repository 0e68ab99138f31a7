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


package coverage

import (
	"log/slog"
	"strings"

	"github.com/poiesic/insight/core"
)

// Score component weights. Theme count and quote evidence dominate;
// speaker and source diversity refine.
const (
	themeCountWeight = 35.0
	quoteWeight      = 35.0
	speakerWeight    = 15.0
	fileWeight       = 15.0

	themeCountCap = 3
	speakerCap    = 3
	fileCap       = 2
)

// Validator scores how well verified themes answer each research question.
type Validator struct {
	config Config
	logger *slog.Logger
}

// NewValidator validates the configuration and returns a validator.
func NewValidator(config Config) (*Validator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Validator{
		config: config,
		logger: slog.Default().With("component", "coverage-validator"),
	}, nil
}

// Report computes per-question coverage. themeEmbeddings, when non-nil,
// must align with themes by index and enables the semantic fallback: a
// theme with no explicit addressed questions still counts as low-confidence
// support for questions its text is similar enough to. A nil slice simply
// disables the fallback.
func (v *Validator) Report(questions []core.ResearchQuestion, themes []core.Theme, themeEmbeddings [][]float32) *core.CoverageReport {
	report := &core.CoverageReport{
		PerQuestion: make([]core.QuestionCoverage, 0, len(questions)),
	}
	if len(questions) == 0 {
		return report
	}

	var total float64
	for i := range questions {
		qc := v.questionCoverage(&questions[i], themes, themeEmbeddings)
		total += qc.CoveragePct
		report.PerQuestion = append(report.PerQuestion, qc)
	}
	report.OverallPct = total / float64(len(questions))

	v.logger.Debug("coverage computed",
		"questions", len(questions),
		"themes", len(themes),
		"overall_pct", report.OverallPct)
	return report
}

// supporter is one theme counted toward a question, with its effective
// confidence tag (low for semantic-fallback matches).
type supporter struct {
	theme *core.Theme
	tag   core.ConfidenceTag
}

func (v *Validator) questionCoverage(q *core.ResearchQuestion, themes []core.Theme, themeEmbeddings [][]float32) core.QuestionCoverage {
	qc := core.QuestionCoverage{
		QuestionId:          q.Id,
		ConfidenceHistogram: make(map[core.ConfidenceTag]int),
	}

	var supporters []supporter
	for i := range themes {
		if addressesQuestion(&themes[i], q.Id) {
			supporters = append(supporters, supporter{theme: &themes[i], tag: themes[i].Confidence})
			continue
		}
		if themeEmbeddings != nil && i < len(themeEmbeddings) && len(q.Embedding) > 0 {
			sim := core.Cosine(themeEmbeddings[i], q.Embedding)
			if sim > v.config.SemanticFallbackThreshold {
				supporters = append(supporters, supporter{theme: &themes[i], tag: core.ConfidenceLow})
			}
		}
	}

	for _, s := range supporters {
		qc.SupportingThemes = append(qc.SupportingThemes, s.theme.ClusterId)
		qc.ConfidenceHistogram[s.tag]++
	}

	qc.CoveragePct = v.score(supporters)
	qc.GapSeverity, qc.Recommendation = v.classifyGap(q.Text, qc.CoveragePct)
	return qc
}

func addressesQuestion(theme *core.Theme, id core.ID) bool {
	for _, qid := range theme.AddressedQuestionIds {
		if qid == id {
			return true
		}
	}
	return false
}

// score combines supporting-theme count, confidence-weighted verified
// quote evidence against the baseline, and speaker/source diversity,
// capped at 100.
func (v *Validator) score(supporters []supporter) float64 {
	if len(supporters) == 0 {
		return 0
	}

	themeCount := float64(len(supporters))
	if themeCount > themeCountCap {
		themeCount = themeCountCap
	}
	score := themeCount / themeCountCap * themeCountWeight

	var weightedQuotes float64
	speakers := make(map[string]bool)
	files := make(map[string]bool)
	for _, s := range supporters {
		w := v.config.ConfidenceWeights[s.tag]
		for _, quote := range s.theme.Quotes {
			weightedQuotes += w
			if quote.Speaker != "" {
				speakers[quote.Speaker] = true
			}
			if quote.SourceFile != "" {
				files[quote.SourceFile] = true
			}
		}
	}

	quoteRatio := weightedQuotes / v.config.QuoteBaseline
	if quoteRatio > 1 {
		quoteRatio = 1
	}
	score += quoteRatio * quoteWeight

	speakerRatio := float64(len(speakers)) / speakerCap
	if speakerRatio > 1 {
		speakerRatio = 1
	}
	score += speakerRatio * speakerWeight

	fileRatio := float64(len(files)) / fileCap
	if fileRatio > 1 {
		fileRatio = 1
	}
	score += fileRatio * fileWeight

	if score > 100 {
		score = 100
	}
	return score
}

// classifyGap derives severity and a recommendation from the coverage
// percentage and the question's grammatical type.
func (v *Validator) classifyGap(questionText string, pct float64) (core.GapSeverity, string) {
	if pct >= v.config.GapThreshold {
		return core.GapNone, "Question is well covered by the synthesized themes."
	}

	severity := core.GapModerate
	if pct < v.config.CriticalThreshold {
		severity = core.GapCritical
	}

	return severity, gapRecommendation(questionText)
}

// gapRecommendation keys the advice off the question's leading word.
func gapRecommendation(questionText string) string {
	leading := ""
	if fields := strings.Fields(strings.ToLower(questionText)); len(fields) > 0 {
		leading = strings.Trim(fields[0], ".,!?;:'\"")
	}

	switch leading {
	case "why":
		return "Gather evidence that explains root causes; current themes do not answer the underlying 'why'."
	case "how":
		return "Gather evidence describing processes and methods; current themes do not explain 'how'."
	case "what":
		return "Gather evidence naming specific factors; current themes do not pin down 'what'."
	default:
		return "Gather more evidence for this question; coverage is below the configured threshold."
	}
}
