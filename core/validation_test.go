package core

import (
	"errors"
	"testing"
)

func TestValidateChunk(t *testing.T) {
	tests := []struct {
		name    string
		chunk   *Chunk
		wantErr error
	}{
		{
			name: "valid chunk",
			chunk: &Chunk{
				Id:         1,
				Text:       "I really struggled with the export flow",
				Speaker:    "P1",
				SourceFile: "interview_01.txt",
			},
			wantErr: nil,
		},
		{
			name: "valid chunk with empty embedding",
			chunk: &Chunk{
				Id:         1,
				Text:       "Some content",
				SourceFile: "interview_01.txt",
				Embedding:  nil,
			},
			wantErr: nil,
		},
		{
			name: "valid chunk with ID 0",
			chunk: &Chunk{
				Id:         0,
				Text:       "Some content",
				SourceFile: "interview_01.txt",
			},
			wantErr: nil,
		},
		{
			name: "valid chunk without speaker",
			chunk: &Chunk{
				Id:         1,
				Text:       "Unattributed content",
				SourceFile: "notes.txt",
			},
			wantErr: nil,
		},
		{
			name:    "nil chunk",
			chunk:   nil,
			wantErr: ErrInvalidChunk,
		},
		{
			name: "empty text",
			chunk: &Chunk{
				Id:         1,
				SourceFile: "interview_01.txt",
			},
			wantErr: ErrEmptyText,
		},
		{
			name: "empty source file",
			chunk: &Chunk{
				Id:   1,
				Text: "Some content",
			},
			wantErr: ErrEmptySourceFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChunk(tt.chunk)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateChunk() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateChunk() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidateQuestion(t *testing.T) {
	tests := []struct {
		name     string
		question *ResearchQuestion
		wantErr  error
	}{
		{
			name: "valid question",
			question: &ResearchQuestion{
				Id:   1,
				Text: "Why do users abandon onboarding?",
			},
			wantErr: nil,
		},
		{
			name:     "nil question",
			question: nil,
			wantErr:  ErrInvalidQuestion,
		},
		{
			name:     "empty text",
			question: &ResearchQuestion{Id: 1},
			wantErr:  ErrEmptyText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateQuestion(tt.question)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateQuestion() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateQuestion() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
