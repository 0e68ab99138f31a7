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


package core

import "fmt"

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//   - SourceFile must not be empty
//
// NOT validated (populated by processors):
//   - Embedding (empty until the embedding stage runs)
//   - ResearchRelevance (zero until the relevance scorer runs)
//   - ID (0 is replaced by a content-based ID at ingestion)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyText)
	}

	if chunk.SourceFile == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptySourceFile)
	}

	return nil
}

// ValidateQuestion validates a ResearchQuestion according to domain rules.
//
// Validation rules:
//   - Text must not be empty
//
// NOT validated:
//   - Embedding (empty until the embedding stage runs)
//   - ID (0 is replaced by a content-based ID at ingestion)
func ValidateQuestion(question *ResearchQuestion) error {
	if question == nil {
		return fmt.Errorf("%w: question is nil", ErrInvalidQuestion)
	}

	if question.Text == "" {
		return fmt.Errorf("%w: %w", ErrInvalidQuestion, ErrEmptyText)
	}

	return nil
}

// ValidateConfidenceTag checks a ConfidenceTag has a known value.
// Unknown tags are not an error in synthesized output; callers normalize
// with NormalizeConfidenceTag instead.
func ValidateConfidenceTag(tag ConfidenceTag) bool {
	switch tag {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

// NormalizeConfidenceTag maps arbitrary synthesized confidence values onto
// the known tags, defaulting to medium.
func NormalizeConfidenceTag(tag ConfidenceTag) ConfidenceTag {
	if ValidateConfidenceTag(tag) {
		return tag
	}
	return ConfidenceMedium
}
