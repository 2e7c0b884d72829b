package mcpsrv

import (
	"github.com/usestring/json2types/internal/cache"
	"github.com/usestring/json2types/internal/config"
	"github.com/usestring/json2types/pkg/types"
)

// Deps contains all dependencies available to custom tools.
// This gives custom tools access to the same infrastructure as builtin tools.
type Deps struct {
	Config *config.Config
	// Cache holds the results of the builtin infer tools, keyed by the key
	// at the end of their result_uri.
	Cache *cache.ResultCache[types.InferOutput]
}
