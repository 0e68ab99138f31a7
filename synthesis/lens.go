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

import "fmt"

// Lens steers synthesis toward one analytical angle. Each lens contributes
// a focus instruction and one extra response field to the prompt.
type Lens struct {
	Name             string
	Description      string
	Focus            string
	ExtraField       string
	ExtraFieldPrompt string
}

// DefaultLensName is used when the caller does not pick a lens.
const DefaultLensName = "pain_points"

var lenses = []Lens{
	{
		Name:             "pain_points",
		Description:      "Identify user frustrations and challenges",
		Focus:            "Focus on identifying frustrations, obstacles, and negative experiences",
		ExtraField:       "severity",
		ExtraFieldPrompt: `Rate the severity as "low", "medium", or "high"`,
	},
	{
		Name:             "opportunities",
		Description:      "Find potential improvements and enhancements",
		Focus:            "Focus on improvements, enhancements, and positive potential",
		ExtraField:       "potential_impact",
		ExtraFieldPrompt: `Assess potential impact as "low", "medium", or "high"`,
	},
	{
		Name:             "jobs_to_be_done",
		Description:      "Understand core user motivations and goals",
		Focus:            "Focus on core user motivations and goals",
		ExtraField:       "user_context",
		ExtraFieldPrompt: "Describe when users typically need this job done",
	},
	{
		Name:             "mental_models",
		Description:      "Uncover user assumptions and beliefs",
		Focus:            "Focus on user assumptions and beliefs about the system",
		ExtraField:       "accuracy",
		ExtraFieldPrompt: `Assess if this model is "accurate", "partially accurate", or "inaccurate"`,
	},
	{
		Name:             "decision_factors",
		Description:      "Identify key adoption/abandonment factors",
		Focus:            "Focus on factors influencing adoption or abandonment decisions",
		ExtraField:       "influence_level",
		ExtraFieldPrompt: `Rate influence as "low", "medium", or "high"`,
	},
	{
		Name:             "feature_focus",
		Description:      "Analyze feedback about specific features",
		Focus:            "Focus on specific feature feedback and usability",
		ExtraField:       "user_sentiment",
		ExtraFieldPrompt: `Assess sentiment as "positive", "neutral", or "negative"`,
	},
}

// Lenses returns all available lenses in display order.
func Lenses() []Lens {
	out := make([]Lens, len(lenses))
	copy(out, lenses)
	return out
}

// LensByName looks up a lens by its name.
func LensByName(name string) (Lens, error) {
	for _, l := range lenses {
		if l.Name == name {
			return l, nil
		}
	}
	return Lens{}, fmt.Errorf("%w: %q", ErrUnknownLens, name)
}
