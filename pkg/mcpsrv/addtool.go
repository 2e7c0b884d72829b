package mcpsrv

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/json2types/internal/mcp/tools"
)

// AddTool is [sdkmcp.AddTool] with an output type check. It panics when
// values of Out would be rejected by the schema the SDK derives for Out, such
// as a nil slice marshaled as null or a json.RawMessage field.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	tools.AddTool(srv, t, h)
}
