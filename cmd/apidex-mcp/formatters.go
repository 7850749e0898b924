package main

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/ternarybob/apidex/internal/models"
)

// formatInterfaceDetail formats one interface as markdown, grouped into
// basic-info, request-params, response and docs sections.
func formatInterfaceDetail(detail *models.InterfaceDetail) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", detail.Title))

	sb.WriteString("## Basic Info\n\n")
	sb.WriteString(fmt.Sprintf("**ID:** %d\n", detail.ID))
	sb.WriteString(fmt.Sprintf("**Path:** `%s %s`\n", detail.Method, detail.Path))
	sb.WriteString(fmt.Sprintf("**Project:** %d  **Category:** %d\n", detail.ProjectID, detail.CatID))
	if detail.Status != "" {
		sb.WriteString(fmt.Sprintf("**Status:** %s\n", detail.Status))
	}
	if len(detail.Tag) > 0 {
		sb.WriteString(fmt.Sprintf("**Tags:** %s\n", strings.Join(detail.Tag, ", ")))
	}
	if detail.Username != "" {
		sb.WriteString(fmt.Sprintf("**Maintainer:** %s\n", detail.Username))
	}
	if detail.UpTime > 0 {
		sb.WriteString(fmt.Sprintf("**Updated:** %s\n", time.Unix(detail.UpTime, 0).Format(time.RFC3339)))
	}
	sb.WriteString("\n")

	sb.WriteString("## Request Params\n\n")
	writePairSection(&sb, "Path Params", detail.ReqParams)
	writePairSection(&sb, "Query Params", detail.ReqQuery)
	writePairSection(&sb, "Headers", detail.ReqHeaders)
	if detail.ReqBodyType != "" {
		sb.WriteString(fmt.Sprintf("**Body Type:** %s\n\n", detail.ReqBodyType))
	}
	writePairSection(&sb, "Form Body", detail.ReqBodyForm)
	if detail.ReqBodyOther != "" {
		sb.WriteString("### Body\n\n```json\n")
		sb.WriteString(detail.ReqBodyOther)
		sb.WriteString("\n```\n\n")
	}

	sb.WriteString("## Response\n\n")
	if detail.ResBodyType != "" {
		sb.WriteString(fmt.Sprintf("**Body Type:** %s\n\n", detail.ResBodyType))
	}
	if detail.ResBody != "" {
		sb.WriteString("```json\n")
		sb.WriteString(detail.ResBody)
		sb.WriteString("\n```\n\n")
	}

	if detail.Desc != "" || detail.Markdown != "" {
		sb.WriteString("## Docs\n\n")
		if detail.Desc != "" {
			sb.WriteString(detail.Desc)
			sb.WriteString("\n\n")
		}
		if detail.Markdown != "" {
			sb.WriteString(detail.Markdown)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func writePairSection(sb *strings.Builder, title string, pairs []models.NameValuePair) {
	if len(pairs) == 0 {
		return
	}
	sb.WriteString(fmt.Sprintf("### %s\n\n", title))
	for _, p := range pairs {
		line := fmt.Sprintf("- `%s`", p.Name)
		if p.Required == "1" {
			line += " (required)"
		}
		if p.Type != "" {
			line += fmt.Sprintf(" [%s]", p.Type)
		}
		if p.Desc != "" {
			line += ": " + p.Desc
		}
		sb.WriteString(line + "\n")
	}
	sb.WriteString("\n")
}

// formatSearchResults formats aggregated search hits as markdown, grouped
// by owning project.
func formatSearchResults(kind, keyword string, result *models.SearchResult) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Interfaces matching %s \"%s\" (%d total, showing %d)\n\n",
		kind, keyword, result.Total, len(result.List)))

	if len(result.List) == 0 {
		sb.WriteString("No results found.\n")
		return sb.String()
	}

	// Group by project, preserving the id-descending order within groups.
	groups := make(map[string][]models.SearchResultItem)
	var order []string
	for _, item := range result.List {
		key := item.ProjectName
		if key == "" {
			key = fmt.Sprintf("project %d", item.ProjectID)
		}
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], item)
	}

	for _, project := range order {
		sb.WriteString(fmt.Sprintf("### %s\n\n", project))
		for _, item := range groups[project] {
			sb.WriteString(fmt.Sprintf("- **%s** `%s %s` (id: %d", item.Title, item.Method, item.Path, item.ID))
			if item.CatName != "" {
				sb.WriteString(fmt.Sprintf(", category: %s", item.CatName))
			}
			sb.WriteString(")\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatProjects formats the cached project map as markdown.
func formatProjects(projects map[string]*models.ProjectInfo) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Projects (%d)\n\n", len(projects)))

	if len(projects) == 0 {
		sb.WriteString("No projects cached yet. Check the configured tokens and remote service.\n")
		return sb.String()
	}

	ids := make([]string, 0, len(projects))
	for id := range projects {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		p := projects[id]
		sb.WriteString(fmt.Sprintf("### %s (id: %s)\n", p.Name, id))
		if p.Desc != "" {
			sb.WriteString(p.Desc + "\n")
		}
		sb.WriteString(fmt.Sprintf("**Base Path:** %s  **Group:** %d\n\n", p.BasePath, p.GroupID))
	}

	return sb.String()
}

// formatCategoryList formats the cached category records as markdown.
func formatCategoryList(projectID string, cats []models.CategoryInfo) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Categories for project %s (%d)\n\n", projectID, len(cats)))

	for _, cat := range cats {
		sb.WriteString(fmt.Sprintf("### %s (id: %d)\n", cat.Name, cat.ID))
		if cat.Desc != "" {
			sb.WriteString(cat.Desc + "\n")
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatCategories formats a project's category tree as markdown.
func formatCategories(projectID string, menu []models.MenuCategory) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Categories for project %s (%d)\n\n", projectID, len(menu)))

	if len(menu) == 0 {
		sb.WriteString("No categories found.\n")
		return sb.String()
	}

	for _, cat := range menu {
		sb.WriteString(fmt.Sprintf("### %s (id: %d)\n", cat.Name, cat.ID))
		if cat.Desc != "" {
			sb.WriteString(cat.Desc + "\n")
		}
		if len(cat.List) == 0 {
			sb.WriteString("_No interfaces._\n\n")
			continue
		}
		for _, api := range cat.List {
			sb.WriteString(fmt.Sprintf("- **%s** `%s %s` (id: %d)\n", api.Title, api.Method, api.Path, api.ID))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// formatSaved echoes the outcome of a save_api call.
func formatSaved(id int, req *models.SaveRequest) string {
	action := "created"
	if req.ID != "" {
		action = "updated"
	}
	return fmt.Sprintf("Interface %s: **%s** `%s %s` (id: %d, project: %s, category: %s)\n",
		action, req.Title, req.Method, req.Path, id, req.ProjectID, req.CatID)
}
