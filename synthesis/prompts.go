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
	"fmt"
	"sort"
	"strings"

	"github.com/poiesic/insight/core"
)

const systemPrompt = "You are a UX researcher analyzing interview data. " +
	"Respond with valid JSON only."

// maxPromptQuestions bounds the research-question context in the prompt.
const maxPromptQuestions = 3

// buildPrompt assembles the user prompt for one cluster: lens focus,
// speaker distribution, the most relevant research questions, every member
// chunk's raw text with speaker attribution, and the response schema.
func buildPrompt(chunks []core.Chunk, lens Lens, questions []core.ResearchQuestion) string {
	var b strings.Builder

	b.WriteString(lens.Focus)
	b.WriteString(" in these interview excerpts.\n\n")

	writeSpeakerContext(&b, chunks)
	writeQuestionContext(&b, questions)

	b.WriteString("EXCERPTS:\n")
	for _, c := range chunks {
		speaker := c.Speaker
		if speaker == "" {
			speaker = "Unknown"
		}
		if c.Metadata.IsInterviewer {
			speaker += " (Interviewer)"
		}
		fmt.Fprintf(&b, "- [%s]: %s\n", speaker, c.Text)
	}

	b.WriteString("\nReturn valid JSON with this exact structure:\n{\n")
	b.WriteString("    \"theme_name\": \"Clear, concise theme name\",\n")
	b.WriteString("    \"summary\": \"Brief summary of the key insight\",\n")
	b.WriteString("    \"confidence\": \"high, medium, or low\",\n")
	fmt.Fprintf(&b, "    %q: %q,\n", lens.ExtraField, lens.ExtraFieldPrompt)
	if len(questions) > 0 {
		b.WriteString("    \"addressed_questions\": [numbers of the research questions this theme answers],\n")
	}
	b.WriteString("    \"supporting_quotes\": [{\"text\": \"verbatim excerpt copied exactly from above\", \"speaker\": \"name\"}]\n")
	b.WriteString("}\n\n")
	b.WriteString("Quotes must be copied verbatim from the excerpts, never paraphrased. ")
	b.WriteString("Be specific and evidence-based.")

	return b.String()
}

func writeSpeakerContext(b *strings.Builder, chunks []core.Chunk) {
	distribution := make(map[string]int)
	for _, c := range chunks {
		if c.Speaker == "" {
			continue
		}
		key := c.Speaker
		if c.Metadata.IsInterviewer {
			key += " (Interviewer)"
		} else {
			key += " (Participant)"
		}
		distribution[key]++
	}
	if len(distribution) == 0 {
		return
	}

	names := make([]string, 0, len(distribution))
	for name := range distribution {
		names = append(names, name)
	}
	sort.Strings(names)

	b.WriteString("SPEAKER DISTRIBUTION IN THIS CLUSTER:\n")
	for _, name := range names {
		fmt.Fprintf(b, "- %s: %d contributions\n", name, distribution[name])
	}
	b.WriteString("\n")
}

func writeQuestionContext(b *strings.Builder, questions []core.ResearchQuestion) {
	if len(questions) == 0 {
		return
	}
	limit := len(questions)
	if limit > maxPromptQuestions {
		limit = maxPromptQuestions
	}

	b.WriteString("RESEARCH QUESTIONS THIS CLUSTER MAY ADDRESS:\n")
	for i := 0; i < limit; i++ {
		fmt.Fprintf(b, "%d. %s\n", i+1, questions[i].Text)
	}
	b.WriteString("\n")
}
