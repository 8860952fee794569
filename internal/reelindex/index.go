// Package reelindex keeps a VecLite index of generated reels so past scripts
// can be found by meaning as well as by keyword.
package reelindex

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abdul-hamid-achik/veclite"
)

const reelsCollection = "reels"

// Config holds configuration for the Index.
type Config struct {
	// Path to the VecLite database file (e.g., "data/reels.veclite").
	Path string

	// ConfigPath is the path to veclite.yaml (optional).
	// If empty, searches ./veclite.yaml, ~/.veclite/config.yaml.
	ConfigPath string
}

// Entry is what gets indexed for one reel.
type Entry struct {
	ReelID      string
	Title       string
	Script      string
	ProductName string
	Platforms   string
}

// Hit is a search result.
type Hit struct {
	VecLiteID  uint64  `json:"-"`
	ReelID     string  `json:"reel_id"`
	Title      string  `json:"title"`
	Script     string  `json:"script,omitempty"`
	Platforms  string  `json:"platforms,omitempty"`
	Similarity float32 `json:"similarity"`
}

// Index wraps a VecLite collection of reels.
type Index struct {
	vecdb    *veclite.DB
	coll     *veclite.Collection
	embedder veclite.Embedder
}

// Open loads the embedder from veclite.yaml and opens (or creates) the index.
func Open(cfg Config) (*Index, error) {
	slog.Debug("opening reel index", "path", cfg.Path, "config_path", cfg.ConfigPath)

	vecliteCfg, err := veclite.LoadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load veclite config: %w", err)
	}

	embedder, err := veclite.NewEmbedderFromConfig(vecliteCfg.Embedder)
	if err != nil {
		return nil, fmt.Errorf("create embedder: %w", err)
	}

	vecdb, err := veclite.Open(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("open veclite db: %w", err)
	}

	coll, err := vecdb.CreateCollection(reelsCollection,
		veclite.WithDimension(embedder.Dimension()),
		veclite.WithDistanceType(veclite.DistanceCosine),
		veclite.WithHNSW(16, 200),
		veclite.WithTextIndex("title", "script", "product", "platforms"),
		veclite.WithEmbedder(embedder),
	)
	if err != nil {
		coll, err = vecdb.GetCollection(reelsCollection)
		if err != nil {
			vecdb.Close()
			return nil, fmt.Errorf("get collection: %w", err)
		}
	}

	slog.Info("reel index ready", "provider", vecliteCfg.Embedder.Provider, "reels", coll.Count())

	return &Index{vecdb: vecdb, coll: coll, embedder: embedder}, nil
}

// Close closes the VecLite database.
func (i *Index) Close() error {
	if i.vecdb != nil {
		return i.vecdb.Close()
	}
	return nil
}

// Add embeds and stores a reel, returning its VecLite id.
func (i *Index) Add(ctx context.Context, e Entry) (uint64, error) {
	id, err := i.coll.InsertText(Document(e), Payload(e))
	if err != nil {
		return 0, fmt.Errorf("index reel %s: %w", e.ReelID, err)
	}
	if err := i.vecdb.Sync(); err != nil {
		return id, fmt.Errorf("sync reel index: %w", err)
	}
	return id, nil
}

// Search finds reels similar to query. Hybrid search is used when the
// query embeds; plain BM25 is the fallback.
func (i *Index) Search(ctx context.Context, query string, k int) ([]Hit, error) {
	vec, err := i.embedder.Embed(query)
	if err != nil {
		slog.Warn("embed query failed, using text search", "error", err)
		results, err := i.coll.TextSearch(query, veclite.TopK(k))
		if err != nil {
			return nil, fmt.Errorf("text search: %w", err)
		}
		return convert(results), nil
	}

	results, err := i.coll.HybridSearch(vec, query,
		veclite.TopK(k),
		veclite.WithVectorWeight(0.7),
		veclite.WithTextWeight(0.3),
	)
	if err != nil {
		return nil, fmt.Errorf("hybrid search: %w", err)
	}
	return convert(results), nil
}

// Count returns the number of indexed reels.
func (i *Index) Count() int {
	return i.coll.Count()
}

// Stats returns statistics about the collection.
func (i *Index) Stats() veclite.CollectionStats {
	return i.coll.Stats()
}

// Document is the text that gets embedded for a reel.
func Document(e Entry) string {
	if e.Script == "" {
		return e.Title
	}
	return e.Title + "\n\n" + e.Script
}

// Payload is the metadata stored next to the embedding.
func Payload(e Entry) map[string]any {
	return map[string]any{
		"reel_id":   e.ReelID,
		"title":     e.Title,
		"script":    e.Script,
		"product":   e.ProductName,
		"platforms": e.Platforms,
	}
}

func convert(results []veclite.Result) []Hit {
	out := make([]Hit, 0, len(results))
	for _, r := range results {
		out = append(out, hitFromPayload(r.Record.ID, r.Record.Content, r.Record.Payload, r.Score))
	}
	return out
}

func hitFromPayload(id uint64, content string, payload map[string]any, score float32) Hit {
	h := Hit{VecLiteID: id, Similarity: score}
	if v, ok := payload["reel_id"].(string); ok {
		h.ReelID = v
	}
	if v, ok := payload["title"].(string); ok {
		h.Title = v
	}
	if v, ok := payload["script"].(string); ok {
		h.Script = v
	}
	if v, ok := payload["platforms"].(string); ok {
		h.Platforms = v
	}
	if h.Script == "" && h.Title == "" {
		h.Title = content
	}
	return h
}
