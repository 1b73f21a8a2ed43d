package lessonindex

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/pinecone-io/go-pinecone/v3/pinecone"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	pineconeNamespace = "lesson-transcripts"

	// text-embedding-3-small
	embeddingDimension = 1536

	indexReadyPollInterval = 10 * time.Second
)

// PineconeRetriever embeds transcript chunks with OpenAI embeddings and
// stores them in a Pinecone index, one vector per chunk.
type PineconeRetriever struct {
	client     *pinecone.Client
	embedder   embeddings.Embedder
	indexName  string
	chunkWords int
}

func NewPineconeRetriever(apiKey, openaiAPIKey, indexName string) (*PineconeRetriever, error) {
	log.Printf("[INFO] Initializing Pinecone lesson index")

	pc, err := pinecone.NewClient(pinecone.NewClientParams{
		ApiKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Pinecone client: %w", err)
	}

	llm, err := openai.New(
		openai.WithToken(openaiAPIKey),
		openai.WithEmbeddingModel("text-embedding-3-small"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	embedder, err := embeddings.NewEmbedder(llm)
	if err != nil {
		return nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	return &PineconeRetriever{
		client:     pc,
		embedder:   embedder,
		indexName:  indexName,
		chunkWords: defaultChunkWords,
	}, nil
}

// EnsureIndex creates the serverless index if it does not exist yet and waits
// until it is ready.
func (r *PineconeRetriever) EnsureIndex(ctx context.Context) error {
	indexes, err := r.client.ListIndexes(ctx)
	if err != nil {
		return fmt.Errorf("failed to list indexes: %w", err)
	}

	for _, idx := range indexes {
		if idx.Name == r.indexName {
			log.Printf("[INFO] Index %s already exists", r.indexName)
			return nil
		}
	}

	log.Printf("[INFO] Creating Pinecone index: %s", r.indexName)
	dimension := int32(embeddingDimension)
	deletionProtection := pinecone.DeletionProtectionDisabled
	metric := pinecone.Cosine

	_, err = r.client.CreateServerlessIndex(ctx, &pinecone.CreateServerlessIndexRequest{
		Name:               r.indexName,
		Dimension:          &dimension,
		Metric:             &metric,
		Cloud:              pinecone.Aws,
		Region:             "us-east-1",
		DeletionProtection: &deletionProtection,
		Tags:               &pinecone.IndexTags{"project": "lesson-tutor"},
	})
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	for {
		idx, err := r.client.DescribeIndex(ctx, r.indexName)
		if err != nil {
			return fmt.Errorf("failed to describe index: %w", err)
		}
		if idx.Status.Ready {
			log.Printf("[INFO] Index %s is ready", r.indexName)
			return nil
		}

		log.Printf("[INFO] Waiting for index %s to be ready...", r.indexName)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(indexReadyPollInterval):
		}
	}
}

func (r *PineconeRetriever) indexConnection(ctx context.Context) (*pinecone.IndexConnection, error) {
	idxDesc, err := r.client.DescribeIndex(ctx, r.indexName)
	if err != nil {
		return nil, fmt.Errorf("failed to describe index: %w", err)
	}

	idxConn, err := r.client.Index(pinecone.NewIndexConnParams{
		Host:      idxDesc.Host,
		Namespace: pineconeNamespace,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create index connection: %w", err)
	}
	return idxConn, nil
}

func (r *PineconeRetriever) Index(ctx context.Context, lessonID, transcript string) error {
	chunks := Chunk(transcript, r.chunkWords)
	if len(chunks) == 0 {
		return nil
	}

	log.Printf("[INFO] Embedding %d chunks for lesson %s", len(chunks), lessonID)
	vectorsValues, err := r.embedder.EmbedDocuments(ctx, chunks)
	if err != nil {
		return fmt.Errorf("failed to generate embeddings: %w", err)
	}

	vectors := make([]*pinecone.Vector, 0, len(chunks))
	for i, chunk := range chunks {
		metadata, err := structpb.NewStruct(map[string]any{
			"lesson_id":   lessonID,
			"chunk_index": i,
			"content":     chunk,
			"created_at":  time.Now().Format(time.RFC3339),
		})
		if err != nil {
			return fmt.Errorf("failed to create metadata struct for chunk %d: %w", i, err)
		}

		values := vectorsValues[i]
		vectors = append(vectors, &pinecone.Vector{
			Id:       fmt.Sprintf("%s-%d", lessonID, i),
			Values:   &values,
			Metadata: metadata,
		})
	}

	idxConn, err := r.indexConnection(ctx)
	if err != nil {
		return err
	}

	count, err := idxConn.UpsertVectors(ctx, vectors)
	if err != nil {
		return fmt.Errorf("failed to upsert vectors: %w", err)
	}

	log.Printf("[INFO] Upserted %d vectors for lesson %s", count, lessonID)
	return nil
}

func (r *PineconeRetriever) Query(ctx context.Context, lessonID string, topics []string, limit int) ([]string, error) {
	if len(topics) == 0 {
		return []string{}, nil
	}

	idxConn, err := r.indexConnection(ctx)
	if err != nil {
		return nil, err
	}

	filter, err := structpb.NewStruct(map[string]any{
		"lesson_id": map[string]any{"$eq": lessonID},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build metadata filter: %w", err)
	}

	topK := uint32(5)
	if limit > 0 {
		topK = uint32(limit)
	}

	seen := map[string]bool{}
	var excerpts []string

	for _, topic := range topics {
		queryEmbeddings, err := r.embedder.EmbedDocuments(ctx, []string{topic})
		if err != nil {
			log.Printf("[ERROR] Failed to generate embedding for topic '%s': %v", topic, err)
			continue
		}

		result, err := idxConn.QueryByVectorValues(ctx, &pinecone.QueryByVectorValuesRequest{
			Vector:          queryEmbeddings[0],
			TopK:            topK,
			MetadataFilter:  filter,
			IncludeValues:   false,
			IncludeMetadata: true,
		})
		if err != nil {
			log.Printf("[ERROR] Failed to query vectors for topic '%s': %v", topic, err)
			continue
		}

		for _, match := range result.Matches {
			if match.Vector == nil || match.Vector.Metadata == nil {
				continue
			}
			content, ok := match.Vector.Metadata.AsMap()["content"].(string)
			if !ok || content == "" || seen[match.Vector.Id] {
				continue
			}
			seen[match.Vector.Id] = true
			excerpts = append(excerpts, content)
		}
	}

	if limit > 0 && len(excerpts) > limit {
		excerpts = excerpts[:limit]
	}

	log.Printf("[INFO] Retrieved %d excerpts for lesson %s", len(excerpts), lessonID)
	return excerpts, nil
}
