package constant

// Ingest source types accepted by the ingestion pipeline.
const (
	SourceTypeEmail    = "email"
	SourceTypeDocument = "document"
	SourceTypeDecision = "decision"
	SourceTypeExchange = "exchange"
)

// Chunking parameters for ingested documents.
const (
	IngestChunkSize    = 1500
	IngestChunkOverlap = 200
)

// StyleKeywords route a chunk to the communication-style partition. Chunks
// with none of these land in the business-context partition.
var StyleKeywords = []string{
	"wrote", "said", "regards", "sincerely", "thanks", "cheers",
	"hi ", "hello", "dear ", "best,", "talk soon",
}
