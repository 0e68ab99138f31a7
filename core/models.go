package core

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing so that identical
// content always maps to the same identity within a run.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ChunkMetadata carries per-chunk attribution fields that travel with the
// chunk through every pipeline stage. It is set at ingestion and never
// mutated afterwards.
type ChunkMetadata struct {
	IsInterviewer bool
	ContentType   string
}

// Chunk is an immutable unit of source text with attribution metadata.
// The embedding is computed once per run and cached on the record;
// nothing else about the chunk changes after ingestion.
type Chunk struct {
	Id         ID
	Text       string
	Speaker    string
	SourceFile string
	Embedding  []float32
	Metadata   ChunkMetadata

	// ResearchRelevance is populated by the relevance scorer before
	// clustering. Zero when no research questions were supplied.
	ResearchRelevance float64
}

// ResearchQuestion is a caller-supplied question that weights clustering
// and drives coverage validation. The set may be empty.
type ResearchQuestion struct {
	Id        ID
	Text      string
	Embedding []float32
}

// Cluster groups semantically similar chunks. Clusters are created fresh on
// every clustering pass and are never persisted across runs. A chunk belongs
// to at most one cluster; chunks in no cluster are noise.
type Cluster struct {
	Id                  int
	MemberIds           []ID // ordered by input position
	Centroid            []float32
	Size                int
	AggregateRelevance  float64
	SpeakerDistribution map[string]int
}

// ConfidenceTag is a coarse confidence classification attached to themes.
type ConfidenceTag string

const (
	ConfidenceHigh   ConfidenceTag = "high"
	ConfidenceMedium ConfidenceTag = "medium"
	ConfidenceLow    ConfidenceTag = "low"
)

// CandidateFragment is a quote fragment proposed by the synthesis backend.
// It is untrusted until the verifier finds it verbatim in source text.
type CandidateFragment struct {
	Text           string
	ClaimedSpeaker string
}

// ThemeCandidate is the raw synthesis output for one cluster. Candidate
// fragments are converted into verified Quotes (or dropped) by the verifier;
// the candidate is not mutated outside that step.
type ThemeCandidate struct {
	ClusterId            int
	Label                string
	Summary              string
	AddressedQuestionIds []ID
	Confidence           ConfidenceTag
	CandidateFragments   []CandidateFragment
}

// Quote is a verified, sentence-bounded verbatim excerpt. It exists only if
// verification located its fragment in source text; speaker and source file
// come from the owning chunk, never from the synthesis backend.
type Quote struct {
	Text       string
	Speaker    string
	SourceFile string
	Confidence float64
}

// Theme is the final synthesized and verified result for one cluster.
type Theme struct {
	ClusterId            int
	Label                string
	Summary              string
	Confidence           ConfidenceTag
	Quotes               []Quote
	AddressedQuestionIds []ID

	// DiscardedFragments counts candidate fragments that failed
	// verification, recorded for diagnostic visibility.
	DiscardedFragments int
}

// GapSeverity classifies how badly a research question is under-covered.
type GapSeverity string

const (
	GapNone     GapSeverity = "none"
	GapModerate GapSeverity = "moderate"
	GapCritical GapSeverity = "critical"
)

// QuestionCoverage reports how well a single research question is supported
// by verified evidence across all themes.
type QuestionCoverage struct {
	QuestionId          ID
	CoveragePct         float64 // [0,100]
	SupportingThemes    []int   // cluster IDs
	ConfidenceHistogram map[ConfidenceTag]int
	GapSeverity         GapSeverity
	Recommendation      string
}

// CoverageReport aggregates per-question coverage for a run.
type CoverageReport struct {
	PerQuestion []QuestionCoverage
	OverallPct  float64
}

// UnsynthesizedCluster records a cluster that produced no theme, together
// with the terminal failure reason. These appear in run results alongside
// successful themes; a failed cluster never aborts a run.
type UnsynthesizedCluster struct {
	ClusterId int
	Reason    string
}

// AnalysisRun is the persisted record of one full pipeline run. Clusters
// themselves are transient and are not stored; the run keeps the verified
// themes, the coverage snapshot, and enough diagnostics to explain gaps.
type AnalysisRun struct {
	Id            string
	CreatedAt     time.Time
	Lens          string
	ChunkCount    int
	Questions     []ResearchQuestion
	Themes        []Theme
	Unsynthesized []UnsynthesizedCluster
	NoiseIds      []ID
	Coverage      CoverageReport
}
