package embedding

import (
	"errors"
	"testing"
)

type countingProvider struct {
	calls int
	err   error
}

func (p *countingProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return &EmbeddingResponse{
		Embedding: EmbeddingResponseEmbedding{Values: []float32{float32(p.calls)}},
	}, nil
}

func TestCachedProviderMemoizesQueryEmbeddings(t *testing.T) {
	delegate := &countingProvider{}
	provider := NewCachedProvider(delegate)

	first, err := provider.Generate("đề cương môn toán", TaskRetrievalQuery)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := provider.Generate("đề cương môn toán", TaskRetrievalQuery)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if delegate.calls != 1 {
		t.Errorf("expected one delegate call for a repeated query, got %d", delegate.calls)
	}
	if first.Embedding.Values[0] != second.Embedding.Values[0] {
		t.Errorf("repeated query returned a different vector")
	}
}

func TestCachedProviderBypassesCacheForDocuments(t *testing.T) {
	delegate := &countingProvider{}
	provider := NewCachedProvider(delegate)

	for i := 0; i < 3; i++ {
		if _, err := provider.Generate("chunk content", TaskRetrievalDocument); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if delegate.calls != 3 {
		t.Errorf("expected every document embedding to reach the delegate, got %d calls", delegate.calls)
	}
}

func TestCachedProviderDoesNotCacheFailures(t *testing.T) {
	delegate := &countingProvider{err: errors.New("model unavailable")}
	provider := NewCachedProvider(delegate)

	if _, err := provider.Generate("câu hỏi", TaskRetrievalQuery); err == nil {
		t.Fatal("expected an error from the delegate")
	}

	delegate.err = nil
	res, err := provider.Generate("câu hỏi", TaskRetrievalQuery)
	if err != nil {
		t.Fatalf("unexpected error after recovery: %v", err)
	}
	if res == nil || len(res.Embedding.Values) == 0 {
		t.Fatal("expected a vector once the delegate recovers")
	}
	if delegate.calls != 2 {
		t.Errorf("expected the failed call to be retried against the delegate, got %d calls", delegate.calls)
	}
}
