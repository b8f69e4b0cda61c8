package miner

import (
	"fmt"
	"log/slog"

	"github.com/amishk599/careerpath/internal/model"
)

// Ensure Cache implements model.RuleSource.
var _ model.RuleSource = (*Cache)(nil)

type cacheKey struct {
	dataset       string
	minSupport    float64
	minConfidence float64
}

// Cache memoizes GenerateRules by (dataset ID, min support, min confidence).
// It belongs to whichever component holds the dataset and is not safe for
// concurrent use; call Invalidate when the dataset is replaced.
type Cache struct {
	entries map[cacheKey][]model.Rule
	logger  *slog.Logger
}

// NewCache returns an empty rule cache.
func NewCache(logger *slog.Logger) *Cache {
	return &Cache{
		entries: make(map[cacheKey][]model.Rule),
		logger:  logger,
	}
}

// Rules returns the ranked rules for ds at th, mining them on first use.
// The returned slice is shared with the cache and must not be modified.
// A failure while mining is logged and yields an empty, uncached result.
func (c *Cache) Rules(ds *model.Dataset, th model.Thresholds) []model.Rule {
	key := cacheKey{dataset: ds.ID, minSupport: th.MinSupport, minConfidence: th.MinConfidence}
	if rules, ok := c.entries[key]; ok {
		c.logger.Debug("rule cache hit", "dataset", ds.ID, "min_support", th.MinSupport, "min_confidence", th.MinConfidence)
		return rules
	}

	rules, err := generate(ds, th)
	if err != nil {
		c.logger.Error("rule generation failed", "dataset", ds.Source, "error", err)
		return nil
	}
	c.entries[key] = rules
	c.logger.Debug("mined rules",
		"dataset", ds.Source,
		"paths", len(ds.Paths),
		"min_support", th.MinSupport,
		"min_confidence", th.MinConfidence,
		"rules", len(rules),
	)
	return rules
}

// Invalidate drops every cached rule set.
func (c *Cache) Invalidate() {
	clear(c.entries)
}

// Len returns the number of cached rule sets.
func (c *Cache) Len() int {
	return len(c.entries)
}

func generate(ds *model.Dataset, th model.Thresholds) (rules []model.Rule, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mining rules: %v", r)
		}
	}()
	return GenerateRules(ds.Paths, ds.Positions, th), nil
}
