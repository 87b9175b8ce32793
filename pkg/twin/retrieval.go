package twin

import (
	"context"
	"fmt"
	"log"
	"math"
	"strings"

	"ai-boardroom-be/pkg/embedding"
	"ai-boardroom-be/pkg/vectorstore"
)

// Per-partition top-k.
const (
	styleTopK    = 3
	contextTopK  = 5
	decisionTopK = 3
)

// Heuristic confidence when a partition has documents but the backend
// returned no distance scores. Deliberately lower than scored data so that
// unscored retrieval never looks more trustworthy than scored retrieval.
// Tunable constants, not load-bearing business logic.
const (
	unscoredStyleConfidence    = 50
	unscoredContextConfidence  = 40
	unscoredDecisionConfidence = 30
)

// lowConfidenceThreshold routes to escalation when overall falls below it.
const lowConfidenceThreshold = 30

// Collection naming, one partition set per twin/persona.
func StyleCollection(twinID string) string {
	return strings.ToLower(fmt.Sprintf("twin_style_%s", twinID))
}

func ContextCollection(twinID string) string {
	return strings.ToLower(fmt.Sprintf("business_context_%s", twinID))
}

func DecisionCollection(twinID string) string {
	return strings.ToLower(fmt.Sprintf("decision_history_%s", twinID))
}

// Retriever queries the three vector partitions and derives confidence
// scores from nearest-neighbor distances.
type Retriever struct {
	store    vectorstore.Store
	embedder embedding.Provider
	logger   *log.Logger
}

func NewRetriever(store vectorstore.Store, embedder embedding.Provider, logger *log.Logger) *Retriever {
	return &Retriever{
		store:    store,
		embedder: embedder,
		logger:   logger,
	}
}

// Retrieve fills st.Retrieved and st.Confidence. It never fails: any
// embedding or store error degrades the affected partition to "" with
// confidence 0, and the caller always receives a complete result.
func (r *Retriever) Retrieve(ctx context.Context, st *State) {
	queryVector, err := r.embedder.Embed(ctx, st.Query, embedding.TaskRetrievalQuery)
	if err != nil {
		// No query vector means no retrieval is possible at all.
		r.logger.Printf("[RETRIEVE] Query embedding failed, degrading to zero confidence: %v", err)
		r.degradeAll(st)
		return
	}

	st.Retrieved.Style, st.Confidence.Style = r.queryPartition(
		ctx, StyleCollection(st.TwinID), queryVector, styleTopK, unscoredStyleConfidence)

	st.Retrieved.Context, st.Confidence.Context = r.queryPartition(
		ctx, ContextCollection(st.TwinID), queryVector, contextTopK, unscoredContextConfidence)

	// Decision history is queried with a strategy-biased variant of the
	// question; fall back to the plain query vector if the variant embed fails.
	decisionVector, err := r.embedder.Embed(ctx, st.Query+" decision strategy", embedding.TaskRetrievalQuery)
	if err != nil {
		decisionVector = queryVector
	}
	st.Retrieved.Decisions, st.Confidence.Decision = r.queryPartition(
		ctx, DecisionCollection(st.TwinID), decisionVector, decisionTopK, unscoredDecisionConfidence)

	finalizeConfidence(st)

	r.logger.Printf("[RETRIEVE] Confidence style=%d context=%d decision=%d overall=%d lowConfidence=%v",
		st.Confidence.Style, st.Confidence.Context, st.Confidence.Decision,
		st.Confidence.Overall, st.LowConfidence)
}

func (r *Retriever) queryPartition(ctx context.Context, collection string, vector []float32, k int, unscoredDefault int) (string, int) {
	result, err := r.store.Query(ctx, collection, vector, k)
	if err != nil {
		r.logger.Printf("[RETRIEVE] Partition %s query failed: %v", collection, err)
		return "", 0
	}
	if result == nil || len(result.Documents) == 0 {
		return "", 0
	}

	text := strings.Join(result.Documents, "\n")
	if len(result.Distances) == 0 {
		// Have data but can't score it.
		return text, unscoredDefault
	}
	return text, confidenceFromDistances(result.Distances)
}

func (r *Retriever) degradeAll(st *State) {
	st.Retrieved = Retrieved{}
	st.Confidence = Confidence{}
	finalizeConfidence(st)
}

// confidenceFromDistances maps an average nearest-neighbor distance to a
// [0,100] confidence: round((1 - min(avg, 1.0)) * 100). The average is also
// clamped at zero so inner-product metrics reporting negative distances
// cannot push confidence past 100.
func confidenceFromDistances(distances []float64) int {
	var sum float64
	for _, d := range distances {
		sum += d
	}
	avg := math.Min(math.Max(sum/float64(len(distances)), 0), 1.0)
	return int(math.Round((1 - avg) * 100))
}

// finalizeConfidence computes the overall score and the routing flag.
// Overall is the unweighted rounded mean of the three partitions.
func finalizeConfidence(st *State) {
	mean := float64(st.Confidence.Style+st.Confidence.Context+st.Confidence.Decision) / 3.0
	st.Confidence.Overall = int(math.Round(mean))
	st.LowConfidence = st.Confidence.Overall < lowConfidenceThreshold
}
