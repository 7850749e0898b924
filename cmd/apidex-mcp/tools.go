package main

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// createGetAPIDescTool returns the get_api_desc tool definition
func createGetAPIDescTool() mcp.Tool {
	return mcp.NewTool("get_api_desc",
		mcp.WithDescription("Retrieve the full definition of one API interface (request params, response schema, docs)"),
		mcp.WithString("projectId",
			mcp.Required(),
			mcp.Description("Project id the interface belongs to"),
		),
		mcp.WithString("apiId",
			mcp.Required(),
			mcp.Description("Interface id"),
		),
	)
}

// createSaveAPITool returns the save_api tool definition
func createSaveAPITool() mcp.Tool {
	return mcp.NewTool("save_api",
		mcp.WithDescription("Create or update an API interface. Omit id to create; supply id to update. Structured fields (req_params, req_query, req_headers, req_body_form, tag) are JSON-encoded strings."),
		mcp.WithString("projectId", mcp.Required(), mcp.Description("Project id")),
		mcp.WithString("catid", mcp.Required(), mcp.Description("Category id the interface belongs to")),
		mcp.WithString("id", mcp.Description("Interface id; omit to create a new interface")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Interface title")),
		mcp.WithString("path", mcp.Required(), mcp.Description("Interface path, e.g. /api/user/login")),
		mcp.WithString("method", mcp.Required(), mcp.Description("HTTP method, e.g. GET, POST")),
		mcp.WithString("status", mcp.Description("Lifecycle status: done or undone")),
		mcp.WithString("tag", mcp.Description("JSON-encoded string array of tags")),
		mcp.WithString("req_params", mcp.Description("JSON-encoded path parameter list")),
		mcp.WithString("req_query", mcp.Description("JSON-encoded query parameter list")),
		mcp.WithString("req_headers", mcp.Description("JSON-encoded header list")),
		mcp.WithString("req_body_type", mcp.Description("Request body type: form, json, file or raw")),
		mcp.WithString("req_body_form", mcp.Description("JSON-encoded form body field list")),
		mcp.WithString("req_body_other", mcp.Description("Raw request body (json/raw body types)")),
		mcp.WithBoolean("req_body_is_json_schema", mcp.Description("Whether req_body_other is a JSON schema")),
		mcp.WithString("res_body_type", mcp.Description("Response body type: json or raw")),
		mcp.WithString("res_body", mcp.Description("Response body definition")),
		mcp.WithBoolean("res_body_is_json_schema", mcp.Description("Whether res_body is a JSON schema")),
		mcp.WithBoolean("switch_notice", mcp.Description("Notify project members about the change")),
		mcp.WithBoolean("api_opened", mcp.Description("Whether the interface is part of the open API surface")),
		mcp.WithString("desc", mcp.Description("Interface description")),
		mcp.WithString("markdown", mcp.Description("Markdown documentation")),
	)
}

// createSearchByNameTool returns the search_by_name tool definition
func createSearchByNameTool() mcp.Tool {
	return mcp.NewTool("search_by_name",
		mcp.WithDescription("Search interfaces across all cached projects by title keyword"),
		mcp.WithString("nameKeyword",
			mcp.Required(),
			mcp.Description("Keyword matched case-insensitively against interface titles"),
		),
		mcp.WithString("projectKeyword",
			mcp.Description("Narrow candidate projects by name, description or id"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results to return (default: 20)"),
		),
	)
}

// createSearchByPathTool returns the search_by_path tool definition
func createSearchByPathTool() mcp.Tool {
	return mcp.NewTool("search_by_path",
		mcp.WithDescription("Search interfaces across all cached projects by path keyword"),
		mcp.WithString("pathKeyword",
			mcp.Required(),
			mcp.Description("Keyword matched case-insensitively against interface paths"),
		),
		mcp.WithString("projectKeyword",
			mcp.Description("Narrow candidate projects by name, description or id"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum results to return (default: 20)"),
		),
	)
}

// createListProjectsTool returns the list_projects tool definition
func createListProjectsTool() mcp.Tool {
	return mcp.NewTool("list_projects",
		mcp.WithDescription("List every cached project with id, name, description, base path and group id"),
	)
}

// createGetCategoriesTool returns the get_categories tool definition
func createGetCategoriesTool() mcp.Tool {
	return mcp.NewTool("get_categories",
		mcp.WithDescription("List every category of a project together with the interfaces each contains"),
		mcp.WithString("projectId",
			mcp.Required(),
			mcp.Description("Project id"),
		),
	)
}
