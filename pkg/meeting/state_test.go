package meeting

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeRecommendationsRightBiased(t *testing.T) {
	base := map[string]string{
		"Sam_Altman":   "turn one",
		"Jensen_Huang": "turn one",
	}
	updates := map[string]string{
		"Sam_Altman": "turn two",
		"Andrew_Ng":  "turn two",
	}

	merged := MergeRecommendations(base, updates)

	assert.Equal(t, "turn two", merged["Sam_Altman"])
	assert.Equal(t, "turn one", merged["Jensen_Huang"])
	assert.Equal(t, "turn two", merged["Andrew_Ng"])
	assert.Len(t, merged, 3)
}

func TestMergeRecommendationsIdempotent(t *testing.T) {
	base := map[string]string{"Sam_Altman": "old"}
	updates := map[string]string{"Sam_Altman": "new", "Andrew_Ng": "fresh"}

	once := MergeRecommendations(base, updates)
	twice := MergeRecommendations(once, updates)

	assert.Equal(t, once, twice)
}

func TestMergeRecommendationsDoesNotMutateInputs(t *testing.T) {
	base := map[string]string{"Sam_Altman": "old"}
	updates := map[string]string{"Sam_Altman": "new"}

	merged := MergeRecommendations(base, updates)
	merged["Sam_Altman"] = "mutated"

	assert.Equal(t, "old", base["Sam_Altman"])
	assert.Equal(t, "new", updates["Sam_Altman"])
}

func TestMergeRecommendationsNilInputs(t *testing.T) {
	assert.Empty(t, MergeRecommendations(nil, nil))
	assert.Equal(t, map[string]string{"a": "x"}, MergeRecommendations(nil, map[string]string{"a": "x"}))
	assert.Equal(t, map[string]string{"a": "x"}, MergeRecommendations(map[string]string{"a": "x"}, nil))
}
