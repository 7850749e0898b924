package main

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/apidex/internal/interfaces"
	"github.com/ternarybob/apidex/internal/models"
)

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(text),
		},
	}
}

// handleGetAPIDesc implements the get_api_desc tool
func handleGetAPIDesc(apiService interfaces.InterfaceService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projectID, err := request.RequireString("projectId")
		if err != nil || projectID == "" {
			return textResult("Error: projectId parameter is required"), nil
		}
		apiID, err := request.RequireString("apiId")
		if err != nil || apiID == "" {
			return textResult("Error: apiId parameter is required"), nil
		}

		detail, err := apiService.Get(ctx, projectID, apiID)
		if err != nil {
			logger.Error().Err(err).Str("project_id", projectID).Str("api_id", apiID).Msg("Get interface failed")
			return textResult(fmt.Sprintf("Failed to fetch interface %s: %v", apiID, err)), nil
		}

		return textResult(formatInterfaceDetail(detail)), nil
	}
}

// handleSaveAPI implements the save_api tool
func handleSaveAPI(apiService interfaces.InterfaceService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		req := &models.SaveRequest{
			ProjectID:        request.GetString("projectId", ""),
			CatID:            request.GetString("catid", ""),
			ID:               request.GetString("id", ""),
			Title:            request.GetString("title", ""),
			Path:             request.GetString("path", ""),
			Method:           request.GetString("method", ""),
			Status:           request.GetString("status", ""),
			Tag:              request.GetString("tag", ""),
			ReqParams:        request.GetString("req_params", ""),
			ReqQuery:         request.GetString("req_query", ""),
			ReqHeaders:       request.GetString("req_headers", ""),
			ReqBodyType:      request.GetString("req_body_type", ""),
			ReqBodyForm:      request.GetString("req_body_form", ""),
			ReqBodyOther:     request.GetString("req_body_other", ""),
			ReqBodyIsJSONSch: request.GetBool("req_body_is_json_schema", false),
			ResBodyType:      request.GetString("res_body_type", ""),
			ResBody:          request.GetString("res_body", ""),
			ResBodyIsJSONSch: request.GetBool("res_body_is_json_schema", false),
			SwitchNotice:     request.GetBool("switch_notice", false),
			APIOpened:        request.GetBool("api_opened", false),
			Desc:             request.GetString("desc", ""),
			Markdown:         request.GetString("markdown", ""),
		}

		id, err := apiService.Save(ctx, req)
		if err != nil {
			logger.Error().Err(err).Str("project_id", req.ProjectID).Str("path", req.Path).Msg("Save interface failed")
			return textResult(fmt.Sprintf("Failed to save interface: %v", err)), nil
		}

		return textResult(formatSaved(id, req)), nil
	}
}

// handleSearchByName implements the search_by_name tool
func handleSearchByName(searchService interfaces.SearchService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		keyword, err := request.RequireString("nameKeyword")
		if err != nil || keyword == "" {
			return textResult("Error: nameKeyword parameter is required"), nil
		}

		result, err := searchService.Search(ctx, interfaces.SearchCriteria{
			NameKeywords:   []string{keyword},
			ProjectKeyword: request.GetString("projectKeyword", ""),
			Limit:          request.GetInt("limit", 0),
		})
		if err != nil {
			logger.Error().Err(err).Str("keyword", keyword).Msg("Search by name failed")
			return textResult(fmt.Sprintf("Search error: %v", err)), nil
		}

		return textResult(formatSearchResults("name", keyword, result)), nil
	}
}

// handleSearchByPath implements the search_by_path tool
func handleSearchByPath(searchService interfaces.SearchService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		keyword, err := request.RequireString("pathKeyword")
		if err != nil || keyword == "" {
			return textResult("Error: pathKeyword parameter is required"), nil
		}

		result, err := searchService.Search(ctx, interfaces.SearchCriteria{
			PathKeywords:   []string{keyword},
			ProjectKeyword: request.GetString("projectKeyword", ""),
			Limit:          request.GetInt("limit", 0),
		})
		if err != nil {
			logger.Error().Err(err).Str("keyword", keyword).Msg("Search by path failed")
			return textResult(fmt.Sprintf("Search error: %v", err)), nil
		}

		return textResult(formatSearchResults("path", keyword, result)), nil
	}
}

// handleListProjects implements the list_projects tool
func handleListProjects(cacheService interfaces.CacheService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cacheService.EnsureLoaded(ctx)
		projects := cacheService.Projects()
		return textResult(formatProjects(projects)), nil
	}
}

// handleGetCategories implements the get_categories tool. The menu tree
// carries each category's interface list; the cached category records
// answer the call only when the menu fetch fails.
func handleGetCategories(cacheService interfaces.CacheService, apiService interfaces.InterfaceService, logger arbor.ILogger) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		projectID, err := request.RequireString("projectId")
		if err != nil || projectID == "" {
			return textResult("Error: projectId parameter is required"), nil
		}

		menu, err := apiService.Menu(ctx, projectID)
		if err != nil {
			logger.Warn().Err(err).Str("project_id", projectID).Msg("Menu fetch failed, falling back to cached categories")
			if cats := cacheService.Categories(projectID); len(cats) > 0 {
				return textResult(formatCategoryList(projectID, cats)), nil
			}
			return textResult(fmt.Sprintf("Failed to fetch categories for project %s: %v", projectID, err)), nil
		}

		return textResult(formatCategories(projectID, menu)), nil
	}
}
