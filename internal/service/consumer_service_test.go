package service

import (
	"testing"

	"ai-boardroom-be/internal/constant"
	"ai-boardroom-be/pkg/twin"

	"github.com/stretchr/testify/assert"
)

func TestClassifyChunk(t *testing.T) {
	twinID := "4B2A"

	tests := []struct {
		name       string
		sourceType string
		chunk      string
		want       string
	}{
		{
			name:       "decision always goes to decision history",
			sourceType: constant.SourceTypeDecision,
			chunk:      "We decided to sunset the legacy plan.",
			want:       twin.DecisionCollection(twinID),
		},
		{
			name:       "exchange always goes to decision history",
			sourceType: constant.SourceTypeExchange,
			chunk:      "Question: pricing?\nAnswer: hold steady.",
			want:       twin.DecisionCollection(twinID),
		},
		{
			name:       "email sign-off routes to style",
			sourceType: constant.SourceTypeEmail,
			chunk:      "Let's sync Monday. Best regards, Alex",
			want:       twin.StyleCollection(twinID),
		},
		{
			name:       "style keyword match is case-insensitive",
			sourceType: constant.SourceTypeDocument,
			chunk:      "THANKS for the update on the roadmap.",
			want:       twin.StyleCollection(twinID),
		},
		{
			name:       "plain document routes to business context",
			sourceType: constant.SourceTypeDocument,
			chunk:      "Q3 revenue grew 14% driven by enterprise renewals.",
			want:       twin.ContextCollection(twinID),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifyChunk(twinID, tt.sourceType, tt.chunk))
		})
	}
}
