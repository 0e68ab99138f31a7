// Package coverage reports how well verified themes answer each research
// question.
//
// A question's percentage blends four capped factors: how many themes
// address it, the confidence-weighted sum of their verified quotes against
// an expected baseline, and the diversity of speakers and source files
// behind those quotes. Questions under the gap threshold get a severity
// classification and a recommendation keyed off the question's grammatical
// type.
package coverage
