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


package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/poiesic/insight/core"
)

// chunkInput is the on-disk shape of a pre-segmented chunk. Segmentation
// happens upstream; this tool only consumes the result.
type chunkInput struct {
	Text          string `json:"text"`
	Speaker       string `json:"speaker"`
	SourceFile    string `json:"source_file"`
	IsInterviewer bool   `json:"is_interviewer"`
	ContentType   string `json:"content_type"`
}

func loadChunks(path string) ([]core.Chunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading chunks file: %w", err)
	}

	var inputs []chunkInput
	if err := json.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("parsing chunks file %s: %w", path, err)
	}

	chunks := make([]core.Chunk, 0, len(inputs))
	for i, in := range inputs {
		if strings.TrimSpace(in.Text) == "" {
			return nil, fmt.Errorf("chunks file %s: entry %d has empty text", path, i)
		}
		chunks = append(chunks, core.Chunk{
			Id:         core.IDFromContent(in.Text),
			Text:       in.Text,
			Speaker:    in.Speaker,
			SourceFile: in.SourceFile,
			Metadata: core.ChunkMetadata{
				IsInterviewer: in.IsInterviewer,
				ContentType:   in.ContentType,
			},
		})
	}
	return chunks, nil
}

// loadQuestions reads one research question per line. Blank lines and lines
// starting with '#' are skipped.
func loadQuestions(path string) ([]core.ResearchQuestion, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading questions file: %w", err)
	}
	defer f.Close()

	var questions []core.ResearchQuestion
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		questions = append(questions, core.ResearchQuestion{Text: line})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading questions file %s: %w", path, err)
	}
	return questions, nil
}
