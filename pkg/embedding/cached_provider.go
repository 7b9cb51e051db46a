package embedding

import (
	"crypto/md5"
	"fmt"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachedProvider memoizes query embeddings so repeated questions hit the same
// vector without another round-trip to the embedding model. Document embeddings
// are computed once per ingestion and bypass the cache.
type CachedProvider struct {
	delegate EmbeddingProvider
	cache    *gocache.Cache
}

func NewCachedProvider(delegate EmbeddingProvider) EmbeddingProvider {
	return &CachedProvider{
		delegate: delegate,
		cache:    gocache.New(15*time.Minute, 5*time.Minute),
	}
}

func (p *CachedProvider) Generate(text string, taskType string) (*EmbeddingResponse, error) {
	if taskType != TaskRetrievalQuery {
		return p.delegate.Generate(text, taskType)
	}

	key := cacheKey(text, taskType)
	if cached, found := p.cache.Get(key); found {
		return cached.(*EmbeddingResponse), nil
	}

	res, err := p.delegate.Generate(text, taskType)
	if err != nil {
		return nil, err
	}

	p.cache.Set(key, res, gocache.DefaultExpiration)
	return res, nil
}

func cacheKey(text, taskType string) string {
	return fmt.Sprintf("%s:%x", taskType, md5.Sum([]byte(text)))
}
