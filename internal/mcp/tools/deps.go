package tools

import (
	"context"
	"strconv"

	"golang.org/x/sync/singleflight"

	"github.com/usestring/json2types/internal/cache"
	"github.com/usestring/json2types/internal/config"
	"github.com/usestring/json2types/internal/pipeline"
	"github.com/usestring/json2types/pkg/types"
)

// ResultURIPrefix prefixes the resource URI of a cached result.
const ResultURIPrefix = "json2types://result/"

// Deps contains all dependencies needed by tool handlers.
type Deps struct {
	Config *config.Config
	Cache  *cache.ResultCache[types.InferOutput]

	// inflight collapses concurrent identical requests into one run.
	inflight singleflight.Group
}

// NewDeps builds tool dependencies from cfg.
func NewDeps(cfg *config.Config) (*Deps, error) {
	c, err := cache.New[types.InferOutput](cfg.ResultCacheMaxItems)
	if err != nil {
		return nil, err
	}
	return &Deps{Config: cfg, Cache: c}, nil
}

// Infer runs req, serving repeated requests from the result cache. text is
// the raw input the request was built from and takes part in the cache key.
func (d *Deps) Infer(ctx context.Context, req pipeline.Request, text string) (types.InferOutput, error) {
	key := requestKey(req, text)
	if out, ok := d.Cache.Get(key); ok {
		out.Cached = true
		return out, nil
	}
	if err := ctx.Err(); err != nil {
		return types.InferOutput{}, err
	}

	v, err, _ := d.inflight.Do(key, func() (any, error) {
		res, err := pipeline.Run(req)
		if err != nil {
			return nil, err
		}
		out, err := toOutput(res)
		if err != nil {
			return nil, err
		}
		out.ResultURI = ResultURIPrefix + key
		d.Cache.Put(key, out)
		return out, nil
	})
	if err != nil {
		return types.InferOutput{}, err
	}
	return v.(types.InferOutput), nil
}

// Result returns the cached result stored under key.
func (d *Deps) Result(key string) (types.InferOutput, bool) {
	return d.Cache.Get(key)
}

func requestKey(req pipeline.Request, text string) string {
	return cache.Key(
		string(req.Mode),
		string(req.Format),
		req.Select,
		req.RootName,
		strconv.FormatBool(req.Optimize.MergeSimilar),
		strconv.FormatBool(req.Optimize.MergeByName),
		strconv.FormatBool(req.Optimize.MergeUnions),
		strconv.Itoa(req.MaxDepth),
		strconv.FormatBool(req.Verify),
		text,
	)
}
