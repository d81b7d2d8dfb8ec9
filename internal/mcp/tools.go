package mcp

import "github.com/mark3labs/mcp-go/mcp"

var createToolDef = mcp.NewTool("string_create",
	mcp.WithDescription("Analyze a string and store it. Fails with CONFLICT if the same content is already stored."),
	mcp.WithString("value",
		mcp.Required(),
		mcp.Description("The string to analyze and store"),
	),
)

var getToolDef = mcp.NewTool("string_get",
	mcp.WithDescription("Fetch the stored record for a literal string value"),
	mcp.WithString("value",
		mcp.Required(),
		mcp.Description("The exact string to look up"),
	),
)

var deleteToolDef = mcp.NewTool("string_delete",
	mcp.WithDescription("Delete the stored record for a literal string value"),
	mcp.WithString("value",
		mcp.Required(),
		mcp.Description("The exact string to delete"),
	),
)

var listToolDef = mcp.NewTool("string_list",
	mcp.WithDescription("List stored strings. All given filters must match; no filters returns everything."),
	mcp.WithBoolean("is_palindrome",
		mcp.Description("Match palindromes (true) or non-palindromes (false). Case-insensitive check."),
	),
	mcp.WithNumber("min_length",
		mcp.Description("Minimum length in characters, inclusive"),
	),
	mcp.WithNumber("max_length",
		mcp.Description("Maximum length in characters, inclusive"),
	),
	mcp.WithNumber("word_count",
		mcp.Description("Exact number of whitespace separated words"),
	),
	mcp.WithString("contains_character",
		mcp.Description("A single character that must occur in the string (case-sensitive)"),
	),
)

var filterNaturalToolDef = mcp.NewTool("string_filter_natural",
	mcp.WithDescription(`Filter stored strings with a plain English query such as "all single word palindromic strings" or "strings longer than 10 characters containing the letter z".`),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("The natural language query"),
	),
)

var analyzeToolDef = mcp.NewTool("string_analyze",
	mcp.WithDescription("Compute the properties of a string without storing it"),
	mcp.WithString("value",
		mcp.Required(),
		mcp.Description("The string to analyze"),
	),
)
