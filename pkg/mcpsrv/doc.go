// Package mcpsrv provides an extensible MCP server for json2types.
//
// This package exposes a high-level API for creating and running an MCP server
// with the builtin infer tools, prompts, and the result resource. Users can
// extend the server with custom tools, prompts, and resources using
// functional options.
//
// # Basic Usage
//
// Create a server with default configuration:
//
//	server, err := mcpsrv.NewServer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Add custom tools using MCP SDK types directly:
//
//	import mcp "github.com/modelcontextprotocol/go-sdk/mcp"
//
//	type MyInput struct {
//	    Key string `json:"key"`
//	}
//
//	type MyOutput struct {
//	    Records int `json:"records"`
//	}
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithDepsTool(&mcp.Tool{Name: "result_records", Description: "Count records of a cached result"},
//	        func(d *mcpsrv.Deps) func(ctx context.Context, req *mcp.CallToolRequest, in MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	            return func(ctx context.Context, req *mcp.CallToolRequest, in MyInput) (*mcp.CallToolResult, MyOutput, error) {
//	                out, _ := d.Cache.Get(in.Key)
//	                return nil, MyOutput{Records: out.Stats.Records}, nil
//	            }
//	        }),
//	)
//
// # Configuration
//
// Configuration is loaded from the environment (see internal/config) and can
// be overridden with options:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/json2types.log"),
//	    mcpsrv.WithOptimizeDefaults(optimize.Config{MergeSimilar: true, MergeByName: true}),
//	)
package mcpsrv
