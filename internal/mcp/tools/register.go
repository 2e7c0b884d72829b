package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	// Tool 1: infer_from_samples
	AddTool(srv, &sdkmcp.Tool{
		Name:        "infer_from_samples",
		Description: "Infer named types from sample JSON or YAML documents. Returns {json_schema, text, stats, result_uri, cached, verify}. json_schema is a draft 2020-12 schema with one $defs entry per record; text is a compact listing of the root type and every record. Samples that disagree become unions. Set verify=true to check every sample against the result; merge_by_name may merge records with different fields, which verify reports.",
	}, ToolInferFromSamples(d))

	// Tool 2: infer_from_schema
	AddTool(srv, &sdkmcp.Tool{
		Name:        "infer_from_schema",
		Description: "Infer named types from one JSON Schema document. Follows local $ref pointers (#, #/$defs/..., #anchor) and keeps recursive types recursive. Keywords beyond type, properties, items, prefixItems, anyOf, oneOf, allOf, const and enum are ignored. Returns the same shape as infer_from_samples.",
	}, ToolInferFromSchema(d))

	// Tool 3: infer_from_schema_set
	AddTool(srv, &sdkmcp.Tool{
		Name:        "infer_from_schema_set",
		Description: "Infer named types from a set of named JSON Schemas, such as an OpenAPI components.schemas object. The root record has one field per schema. Schemas without a body or with an unresolved $ref are skipped; an unparsable schema fails the call. Returns the same shape as infer_from_samples.",
	}, ToolInferFromSchemaSet(d))
}
