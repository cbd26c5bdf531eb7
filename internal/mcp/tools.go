package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listPagesTool defines the list_pages MCP tool.
var listPagesTool = mcp.NewTool("list_pages",
	mcp.WithDescription("List every documentation page with its path, title and description."),
	mcp.WithString("prefix",
		mcp.Description("Only list pages whose path starts with this prefix, e.g. /guide"),
	),
)

// getPageTool defines the get_page MCP tool.
var getPageTool = mcp.NewTool("get_page",
	mcp.WithDescription("Get the text of one documentation page along with its outline."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Page path as returned by list_pages, e.g. /guide/install"),
	),
)

// pageNeighborsTool defines the page_neighbors MCP tool.
var pageNeighborsTool = mcp.NewTool("page_neighbors",
	mcp.WithDescription("Get the previous and next pages of a page in reading order."),
	mcp.WithString("path",
		mcp.Required(),
		mcp.Description("Page path, e.g. /guide/install"),
	),
)

// searchDocsTool defines the search_docs MCP tool.
var searchDocsTool = mcp.NewTool("search_docs",
	mcp.WithDescription("Search documentation pages by keyword. Matches titles, descriptions and page text."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Words to look for; every word must match"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 10)"),
	),
)

// getNavTool defines the get_nav MCP tool.
var getNavTool = mcp.NewTool("get_nav",
	mcp.WithDescription("Get the site navigation as an indented outline."),
)
