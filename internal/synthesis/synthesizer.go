// Package synthesis turns retrieved context into a structured answer via the
// configured language model.
package synthesis

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/truthtriage/truthtriage/internal/generation"
	"github.com/truthtriage/truthtriage/internal/models"
)

// promptTemplate enforces the structured answer shape. The model must report a
// risk level, condition analysis, specialist, medicines, precautions, and a
// final recommendation, drawing only on the retrieved context.
const promptTemplate = `Below is a pharmaceutical safety query submitted to TruthTriage.
TruthTriage is a verified medical AI assistant that retrieves answers ONLY from
trusted sources such as WHO, CDSCO, ICMR, MoHFW, and OpenFDA.

Before responding, analyze the query carefully:
- Identify the risk level (Low / Moderate / High)
- Check if critical information is missing (age, weight, condition, medications)
- Only answer using retrieved verified sources
- If no source is found, refuse to answer
- If High Risk + Low Confidence, escalate immediately

### Instructions:
You are TruthTriage — a pharmaceutical safety AI assistant.
You do NOT guess. You do NOT answer from memory.
You ONLY respond based on retrieved verified medical sources.
If you are uncertain, you say so and recommend a doctor.

You MUST ALWAYS structure your response with these sections:

**Risk Level**: [Low / Moderate / High]

**Condition Analysis**: [Detailed explanation of the condition]

**Recommended Specialist**: [Type of doctor to consult]

**Suggested Medicines**:
- **Medicine Name** — usage/indication (source)
- **Medicine Name** — usage/indication (source)
You MUST list ALL medicine names found in the retrieved context. If a medicine name appears anywhere in the context, you MUST include it.

**Precautions**: [Warnings and side effects from sources]

**Recommendation**: [Final advice]

### Retrieved Context:
%s

### Query:
%s

### Response:`

// Synthesizer generates structured answers from retrieved chunks.
type Synthesizer struct {
	generator generation.Generator
	logger    *zap.Logger // optional
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithLogger sets a logger for error reporting.
func WithLogger(l *zap.Logger) Option {
	return func(s *Synthesizer) { s.logger = l }
}

// NewSynthesizer creates a synthesizer backed by the given generator.
func NewSynthesizer(g generation.Generator, opts ...Option) *Synthesizer {
	s := &Synthesizer{generator: g}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BuildPrompt assembles the full prompt from retrieved chunks and the query.
// Chunk contents are joined unabridged so the model sees everything retrieval found.
func BuildPrompt(chunks []*models.DocumentChunk, query string) string {
	parts := make([]string, len(chunks))
	for i, ch := range chunks {
		parts[i] = ch.Content
	}
	return fmt.Sprintf(promptTemplate, strings.Join(parts, "\n\n"), query)
}

// Answer generates the structured answer for query given retrieved chunks.
// Generation failures degrade to an error-flagged answer text rather than an
// error return: the caller still gets sources and downstream extraction runs.
func (s *Synthesizer) Answer(ctx context.Context, query string, chunks []*models.DocumentChunk) string {
	answer, err := s.generator.Generate(ctx, BuildPrompt(chunks, query))
	if err != nil {
		if s.logger != nil {
			s.logger.Error("answer generation failed", zap.Error(err))
		}
		return fmt.Sprintf("Error processing query: %v", err)
	}
	return answer
}
