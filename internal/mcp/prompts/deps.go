// Package prompts contains the MCP prompts for json2types.
package prompts

import "github.com/usestring/json2types/pkg/optimize"

// Config holds configuration needed by prompts.
type Config struct {
	// Optimize is the server's default pass selection, quoted in guidance.
	Optimize optimize.Config
}
