// Code generated by musgen-go. DO NOT EDIT.

package core

import (
	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

var (
	mapL4IOnL52JXVptΔUΣezvRJQΞΞ   = ord.NewMapSer[ConfidenceTag, int](ConfidenceTagMUS, varint.Int)
	slice7SqyHS1iSΔpkΔiz0oVgBMQΞΞ = ord.NewSliceSer[ResearchQuestion](ResearchQuestionMUS)
	sliceNAGqVPEfaBEUlfSgJ3ΣscQΞΞ = ord.NewSliceSer[Theme](ThemeMUS)
	sliceSUWKR0C8RPNgbbteciplkgΞΞ = ord.NewSliceSer[float32](varint.Float32)
	sliceaXΔOVefZjy9c3mXCCjHWnwΞΞ = ord.NewSliceSer[int](varint.Int)
	slicegoNkBF0BvdzLAPQorJnx5AΞΞ = ord.NewSliceSer[QuestionCoverage](QuestionCoverageMUS)
	slicem1m05PtrΔnLΣZPx1EkB2jAΞΞ = ord.NewSliceSer[Quote](QuoteMUS)
	slicepRSwa5HmjODpzPKΔzIwL3wΞΞ = ord.NewSliceSer[UnsynthesizedCluster](UnsynthesizedClusterMUS)
	sliceuCL3Xf8aRo67iED2xgYzIgΞΞ = ord.NewSliceSer[ID](IDMUS)
)

var IDMUS = iDMUS{}

type iDMUS struct{}

func (s iDMUS) Marshal(v ID, bs []byte) (n int) {
	return varint.Uint64.Marshal(uint64(v), bs)
}

func (s iDMUS) Unmarshal(bs []byte) (v ID, n int, err error) {
	tmp, n, err := varint.Uint64.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ID(tmp)
	return
}

func (s iDMUS) Size(v ID) (size int) {
	return varint.Uint64.Size(uint64(v))
}

func (s iDMUS) Skip(bs []byte) (n int, err error) {
	return varint.Uint64.Skip(bs)
}

var ConfidenceTagMUS = confidenceTagMUS{}

type confidenceTagMUS struct{}

func (s confidenceTagMUS) Marshal(v ConfidenceTag, bs []byte) (n int) {
	return ord.String.Marshal(string(v), bs)
}

func (s confidenceTagMUS) Unmarshal(bs []byte) (v ConfidenceTag, n int, err error) {
	tmp, n, err := ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v = ConfidenceTag(tmp)
	return
}

func (s confidenceTagMUS) Size(v ConfidenceTag) (size int) {
	return ord.String.Size(string(v))
}

func (s confidenceTagMUS) Skip(bs []byte) (n int, err error) {
	return ord.String.Skip(bs)
}

var GapSeverityMUS = gapSeverityMUS{}

type gapSeverityMUS struct{}

func (s gapSeverityMUS) Marshal(v GapSeverity, bs []byte) (n int) {
	return ord.String.Marshal(string(v), bs)
}

func (s gapSeverityMUS) Unmarshal(bs []byte) (v GapSeverity, n int, err error) {
	tmp, n, err := ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	v = GapSeverity(tmp)
	return
}

func (s gapSeverityMUS) Size(v GapSeverity) (size int) {
	return ord.String.Size(string(v))
}

func (s gapSeverityMUS) Skip(bs []byte) (n int, err error) {
	return ord.String.Skip(bs)
}

var ChunkMetadataMUS = chunkMetadataMUS{}

type chunkMetadataMUS struct{}

func (s chunkMetadataMUS) Marshal(v ChunkMetadata, bs []byte) (n int) {
	n = ord.Bool.Marshal(v.IsInterviewer, bs)
	return n + ord.String.Marshal(v.ContentType, bs[n:])
}

func (s chunkMetadataMUS) Unmarshal(bs []byte) (v ChunkMetadata, n int, err error) {
	v.IsInterviewer, n, err = ord.Bool.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.ContentType, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s chunkMetadataMUS) Size(v ChunkMetadata) (size int) {
	size = ord.Bool.Size(v.IsInterviewer)
	return size + ord.String.Size(v.ContentType)
}

func (s chunkMetadataMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.Bool.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}

var ChunkMUS = chunkMUS{}

type chunkMUS struct{}

func (s chunkMUS) Marshal(v Chunk, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Text, bs[n:])
	n += ord.String.Marshal(v.Speaker, bs[n:])
	n += ord.String.Marshal(v.SourceFile, bs[n:])
	n += sliceSUWKR0C8RPNgbbteciplkgΞΞ.Marshal(v.Embedding, bs[n:])
	n += ChunkMetadataMUS.Marshal(v.Metadata, bs[n:])
	return n + varint.Float64.Marshal(v.ResearchRelevance, bs[n:])
}

func (s chunkMUS) Unmarshal(bs []byte) (v Chunk, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Speaker, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SourceFile, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Embedding, n1, err = sliceSUWKR0C8RPNgbbteciplkgΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Metadata, n1, err = ChunkMetadataMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ResearchRelevance, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	return
}

func (s chunkMUS) Size(v Chunk) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Text)
	size += ord.String.Size(v.Speaker)
	size += ord.String.Size(v.SourceFile)
	size += sliceSUWKR0C8RPNgbbteciplkgΞΞ.Size(v.Embedding)
	size += ChunkMetadataMUS.Size(v.Metadata)
	return size + varint.Float64.Size(v.ResearchRelevance)
}

func (s chunkMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceSUWKR0C8RPNgbbteciplkgΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ChunkMetadataMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Float64.Skip(bs[n:])
	n += n1
	return
}

var ResearchQuestionMUS = researchQuestionMUS{}

type researchQuestionMUS struct{}

func (s researchQuestionMUS) Marshal(v ResearchQuestion, bs []byte) (n int) {
	n = IDMUS.Marshal(v.Id, bs)
	n += ord.String.Marshal(v.Text, bs[n:])
	return n + sliceSUWKR0C8RPNgbbteciplkgΞΞ.Marshal(v.Embedding, bs[n:])
}

func (s researchQuestionMUS) Unmarshal(bs []byte) (v ResearchQuestion, n int, err error) {
	v.Id, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Embedding, n1, err = sliceSUWKR0C8RPNgbbteciplkgΞΞ.Unmarshal(bs[n:])
	n += n1
	return
}

func (s researchQuestionMUS) Size(v ResearchQuestion) (size int) {
	size = IDMUS.Size(v.Id)
	size += ord.String.Size(v.Text)
	return size + sliceSUWKR0C8RPNgbbteciplkgΞΞ.Size(v.Embedding)
}

func (s researchQuestionMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceSUWKR0C8RPNgbbteciplkgΞΞ.Skip(bs[n:])
	n += n1
	return
}

var QuoteMUS = quoteMUS{}

type quoteMUS struct{}

func (s quoteMUS) Marshal(v Quote, bs []byte) (n int) {
	n = ord.String.Marshal(v.Text, bs)
	n += ord.String.Marshal(v.Speaker, bs[n:])
	n += ord.String.Marshal(v.SourceFile, bs[n:])
	return n + varint.Float64.Marshal(v.Confidence, bs[n:])
}

func (s quoteMUS) Unmarshal(bs []byte) (v Quote, n int, err error) {
	v.Text, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Speaker, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SourceFile, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Confidence, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	return
}

func (s quoteMUS) Size(v Quote) (size int) {
	size = ord.String.Size(v.Text)
	size += ord.String.Size(v.Speaker)
	size += ord.String.Size(v.SourceFile)
	return size + varint.Float64.Size(v.Confidence)
}

func (s quoteMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Float64.Skip(bs[n:])
	n += n1
	return
}

var ThemeMUS = themeMUS{}

type themeMUS struct{}

func (s themeMUS) Marshal(v Theme, bs []byte) (n int) {
	n = varint.Int.Marshal(v.ClusterId, bs)
	n += ord.String.Marshal(v.Label, bs[n:])
	n += ord.String.Marshal(v.Summary, bs[n:])
	n += ConfidenceTagMUS.Marshal(v.Confidence, bs[n:])
	n += slicem1m05PtrΔnLΣZPx1EkB2jAΞΞ.Marshal(v.Quotes, bs[n:])
	n += sliceuCL3Xf8aRo67iED2xgYzIgΞΞ.Marshal(v.AddressedQuestionIds, bs[n:])
	return n + varint.Int.Marshal(v.DiscardedFragments, bs[n:])
}

func (s themeMUS) Unmarshal(bs []byte) (v Theme, n int, err error) {
	v.ClusterId, n, err = varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Label, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Summary, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Confidence, n1, err = ConfidenceTagMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Quotes, n1, err = slicem1m05PtrΔnLΣZPx1EkB2jAΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.AddressedQuestionIds, n1, err = sliceuCL3Xf8aRo67iED2xgYzIgΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.DiscardedFragments, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return
}

func (s themeMUS) Size(v Theme) (size int) {
	size = varint.Int.Size(v.ClusterId)
	size += ord.String.Size(v.Label)
	size += ord.String.Size(v.Summary)
	size += ConfidenceTagMUS.Size(v.Confidence)
	size += slicem1m05PtrΔnLΣZPx1EkB2jAΞΞ.Size(v.Quotes)
	size += sliceuCL3Xf8aRo67iED2xgYzIgΞΞ.Size(v.AddressedQuestionIds)
	return size + varint.Int.Size(v.DiscardedFragments)
}

func (s themeMUS) Skip(bs []byte) (n int, err error) {
	n, err = varint.Int.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ConfidenceTagMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicem1m05PtrΔnLΣZPx1EkB2jAΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceuCL3Xf8aRo67iED2xgYzIgΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	return
}

var UnsynthesizedClusterMUS = unsynthesizedClusterMUS{}

type unsynthesizedClusterMUS struct{}

func (s unsynthesizedClusterMUS) Marshal(v UnsynthesizedCluster, bs []byte) (n int) {
	n = varint.Int.Marshal(v.ClusterId, bs)
	return n + ord.String.Marshal(v.Reason, bs[n:])
}

func (s unsynthesizedClusterMUS) Unmarshal(bs []byte) (v UnsynthesizedCluster, n int, err error) {
	v.ClusterId, n, err = varint.Int.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.Reason, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s unsynthesizedClusterMUS) Size(v UnsynthesizedCluster) (size int) {
	size = varint.Int.Size(v.ClusterId)
	return size + ord.String.Size(v.Reason)
}

func (s unsynthesizedClusterMUS) Skip(bs []byte) (n int, err error) {
	n, err = varint.Int.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}

var QuestionCoverageMUS = questionCoverageMUS{}

type questionCoverageMUS struct{}

func (s questionCoverageMUS) Marshal(v QuestionCoverage, bs []byte) (n int) {
	n = IDMUS.Marshal(v.QuestionId, bs)
	n += varint.Float64.Marshal(v.CoveragePct, bs[n:])
	n += sliceaXΔOVefZjy9c3mXCCjHWnwΞΞ.Marshal(v.SupportingThemes, bs[n:])
	n += mapL4IOnL52JXVptΔUΣezvRJQΞΞ.Marshal(v.ConfidenceHistogram, bs[n:])
	n += GapSeverityMUS.Marshal(v.GapSeverity, bs[n:])
	return n + ord.String.Marshal(v.Recommendation, bs[n:])
}

func (s questionCoverageMUS) Unmarshal(bs []byte) (v QuestionCoverage, n int, err error) {
	v.QuestionId, n, err = IDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.CoveragePct, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.SupportingThemes, n1, err = sliceaXΔOVefZjy9c3mXCCjHWnwΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ConfidenceHistogram, n1, err = mapL4IOnL52JXVptΔUΣezvRJQΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.GapSeverity, n1, err = GapSeverityMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Recommendation, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s questionCoverageMUS) Size(v QuestionCoverage) (size int) {
	size = IDMUS.Size(v.QuestionId)
	size += varint.Float64.Size(v.CoveragePct)
	size += sliceaXΔOVefZjy9c3mXCCjHWnwΞΞ.Size(v.SupportingThemes)
	size += mapL4IOnL52JXVptΔUΣezvRJQΞΞ.Size(v.ConfidenceHistogram)
	size += GapSeverityMUS.Size(v.GapSeverity)
	return size + ord.String.Size(v.Recommendation)
}

func (s questionCoverageMUS) Skip(bs []byte) (n int, err error) {
	n, err = IDMUS.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = varint.Float64.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceaXΔOVefZjy9c3mXCCjHWnwΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = mapL4IOnL52JXVptΔUΣezvRJQΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = GapSeverityMUS.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	return
}

var CoverageReportMUS = coverageReportMUS{}

type coverageReportMUS struct{}

func (s coverageReportMUS) Marshal(v CoverageReport, bs []byte) (n int) {
	n = slicegoNkBF0BvdzLAPQorJnx5AΞΞ.Marshal(v.PerQuestion, bs)
	return n + varint.Float64.Marshal(v.OverallPct, bs[n:])
}

func (s coverageReportMUS) Unmarshal(bs []byte) (v CoverageReport, n int, err error) {
	v.PerQuestion, n, err = slicegoNkBF0BvdzLAPQorJnx5AΞΞ.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.OverallPct, n1, err = varint.Float64.Unmarshal(bs[n:])
	n += n1
	return
}

func (s coverageReportMUS) Size(v CoverageReport) (size int) {
	size = slicegoNkBF0BvdzLAPQorJnx5AΞΞ.Size(v.PerQuestion)
	return size + varint.Float64.Size(v.OverallPct)
}

func (s coverageReportMUS) Skip(bs []byte) (n int, err error) {
	n, err = slicegoNkBF0BvdzLAPQorJnx5AΞΞ.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = varint.Float64.Skip(bs[n:])
	n += n1
	return
}

var AnalysisRunMUS = analysisRunMUS{}

type analysisRunMUS struct{}

func (s analysisRunMUS) Marshal(v AnalysisRun, bs []byte) (n int) {
	n = ord.String.Marshal(v.Id, bs)
	n += raw.TimeUnixMicro.Marshal(v.CreatedAt, bs[n:])
	n += ord.String.Marshal(v.Lens, bs[n:])
	n += varint.Int.Marshal(v.ChunkCount, bs[n:])
	n += slice7SqyHS1iSΔpkΔiz0oVgBMQΞΞ.Marshal(v.Questions, bs[n:])
	n += sliceNAGqVPEfaBEUlfSgJ3ΣscQΞΞ.Marshal(v.Themes, bs[n:])
	n += slicepRSwa5HmjODpzPKΔzIwL3wΞΞ.Marshal(v.Unsynthesized, bs[n:])
	n += sliceuCL3Xf8aRo67iED2xgYzIgΞΞ.Marshal(v.NoiseIds, bs[n:])
	return n + CoverageReportMUS.Marshal(v.Coverage, bs[n:])
}

func (s analysisRunMUS) Unmarshal(bs []byte) (v AnalysisRun, n int, err error) {
	v.Id, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	var n1 int
	v.CreatedAt, n1, err = raw.TimeUnixMicro.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Lens, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.ChunkCount, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Questions, n1, err = slice7SqyHS1iSΔpkΔiz0oVgBMQΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Themes, n1, err = sliceNAGqVPEfaBEUlfSgJ3ΣscQΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Unsynthesized, n1, err = slicepRSwa5HmjODpzPKΔzIwL3wΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.NoiseIds, n1, err = sliceuCL3Xf8aRo67iED2xgYzIgΞΞ.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Coverage, n1, err = CoverageReportMUS.Unmarshal(bs[n:])
	n += n1
	return
}

func (s analysisRunMUS) Size(v AnalysisRun) (size int) {
	size = ord.String.Size(v.Id)
	size += raw.TimeUnixMicro.Size(v.CreatedAt)
	size += ord.String.Size(v.Lens)
	size += varint.Int.Size(v.ChunkCount)
	size += slice7SqyHS1iSΔpkΔiz0oVgBMQΞΞ.Size(v.Questions)
	size += sliceNAGqVPEfaBEUlfSgJ3ΣscQΞΞ.Size(v.Themes)
	size += slicepRSwa5HmjODpzPKΔzIwL3wΞΞ.Size(v.Unsynthesized)
	size += sliceuCL3Xf8aRo67iED2xgYzIgΞΞ.Size(v.NoiseIds)
	return size + CoverageReportMUS.Size(v.Coverage)
}

func (s analysisRunMUS) Skip(bs []byte) (n int, err error) {
	n, err = ord.String.Skip(bs)
	if err != nil {
		return
	}
	var n1 int
	n1, err = raw.TimeUnixMicro.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = ord.String.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = varint.Int.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slice7SqyHS1iSΔpkΔiz0oVgBMQΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceNAGqVPEfaBEUlfSgJ3ΣscQΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = slicepRSwa5HmjODpzPKΔzIwL3wΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = sliceuCL3Xf8aRo67iED2xgYzIgΞΞ.Skip(bs[n:])
	n += n1
	if err != nil {
		return
	}
	n1, err = CoverageReportMUS.Skip(bs[n:])
	n += n1
	return
}
