// Package mcp provides a Model Context Protocol server for chartbot.
//
// It exposes the chart dataset as MCP tools (ask, top, song, artist, stats)
// and dataset statistics as an MCP resource, over stdio transport.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hurttlocker/chartbot/internal/agg"
	"github.com/hurttlocker/chartbot/internal/answer"
	"github.com/hurttlocker/chartbot/internal/match"
	"github.com/hurttlocker/chartbot/internal/store"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// maxToolResults caps list sizes returned from tools.
const maxToolResults = 50

// ServerConfig holds configuration for the MCP server.
type ServerConfig struct {
	Store   *store.Store
	Agg     *agg.Engine
	Answer  *answer.Engine
	Version string // version string for MCP server info
}

// NewServer creates a configured MCP server with all chartbot tools and
// resources. The store is immutable, so handlers run concurrently without
// coordination.
func NewServer(cfg ServerConfig) *server.MCPServer {
	ver := cfg.Version
	if ver == "" {
		ver = "dev"
	}

	s := server.NewMCPServer(
		"Chartbot",
		ver,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(true, false),
	)

	matchEngine := match.NewEngine(cfg.Agg.Catalog())

	registerAskTool(s, cfg.Answer)
	registerTopTool(s, cfg.Store, cfg.Agg)
	registerSongTool(s, matchEngine)
	registerArtistTool(s, cfg.Agg)
	registerStatsTool(s, cfg.Store)

	registerStatsResource(s, cfg.Store)

	return s
}

// --- Tools ---

func registerAskTool(s *server.MCPServer, engine *answer.Engine) {
	tool := mcp.NewTool("chartbot_ask",
		mcp.WithDescription("Ask a natural-language question about the Billboard Hot 100 dataset, e.g. 'Top 10 songs of 1985' or 'How long was Shape of You on the chart?'. Returns a formatted markdown answer."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("The question, in plain English"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := req.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError("query is required"), nil
		}
		return mcp.NewToolResultText(engine.Respond(ctx, query)), nil
	})
}

func registerTopTool(s *server.MCPServer, st *store.Store, engine *agg.Engine) {
	tool := mcp.NewTool("chartbot_top",
		mcp.WithDescription("List the top songs of a year or a decade, ranked by best chart position. Provide either year or decade_start."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithNumber("year",
			mcp.Description("Four-digit year, e.g. 2020"),
		),
		mcp.WithNumber("decade_start",
			mcp.Description("Decade start year, e.g. 1980 for the 80s"),
		),
		mcp.WithNumber("n",
			mcp.Description(fmt.Sprintf("Maximum number of songs (default: 10 for a year, 20 for a decade, max: %d)", maxToolResults)),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		n := 0
		if v, err := req.RequireFloat("n"); err == nil && v > 0 {
			n = int(v)
			if n > maxToolResults {
				n = maxToolResults
			}
		}

		var songs []agg.SongAggregate
		switch {
		case hasFloat(req, "year"):
			year := intArg(req, "year")
			if !st.ValidYear(year) {
				return mcp.NewToolResultError(fmt.Sprintf("year %d is outside the dataset range %d-%d", year, st.MinYear(), st.MaxYear())), nil
			}
			if n == 0 {
				n = 10
			}
			songs = engine.TopByYear(year, n)
		case hasFloat(req, "decade_start"):
			if n == 0 {
				n = 20
			}
			songs = engine.TopByDecade(intArg(req, "decade_start"), n)
		default:
			return mcp.NewToolResultError("either year or decade_start is required"), nil
		}

		data, _ := json.MarshalIndent(songs, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerSongTool(s *server.MCPServer, engine *match.Engine) {
	tool := mcp.NewTool("chartbot_song",
		mcp.WithDescription("Look up a song's chart run (weeks on chart, best and peak rank) by title. Handles partial titles and typos; optionally scope by artist."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("title",
			mcp.Required(),
			mcp.Description("Song title, full or partial"),
		),
		mcp.WithString("artist",
			mcp.Description("Restrict matches to artists containing this text"),
		),
		mcp.WithNumber("max_results",
			mcp.Description("Maximum number of matches (default: 5)"),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		title, err := req.RequireString("title")
		if err != nil {
			return mcp.NewToolResultError("title is required"), nil
		}

		opts := match.Options{}
		if artist, err := req.RequireString("artist"); err == nil {
			opts.Artist = artist
		}
		if v, err := req.RequireFloat("max_results"); err == nil && v > 0 {
			opts.MaxResults = int(v)
			if opts.MaxResults > maxToolResults {
				opts.MaxResults = maxToolResults
			}
		}

		matches := engine.Find(title, opts)
		data, _ := json.MarshalIndent(matches, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerArtistTool(s *server.MCPServer, engine *agg.Engine) {
	tool := mcp.NewTool("chartbot_artist",
		mcp.WithDescription("List an artist's charting songs, ranked by best chart position. Artist matching is case-insensitive substring."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
		mcp.WithString("artist",
			mcp.Required(),
			mcp.Description("Artist name, full or partial"),
		),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum number of songs (default: %d)", maxToolResults)),
		),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		artist, err := req.RequireString("artist")
		if err != nil {
			return mcp.NewToolResultError("artist is required"), nil
		}

		limit := maxToolResults
		if v, err := req.RequireFloat("limit"); err == nil && v > 0 && int(v) < maxToolResults {
			limit = int(v)
		}

		songs := engine.ByArtist(artist, limit)
		data, _ := json.MarshalIndent(songs, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

func registerStatsTool(s *server.MCPServer, st *store.Store) {
	tool := mcp.NewTool("chartbot_stats",
		mcp.WithDescription("Get dataset statistics: total entries, unique songs and artists, and the covered year range."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		data, _ := json.MarshalIndent(st.Stats(), "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	})
}

// --- Resources ---

func registerStatsResource(s *server.MCPServer, st *store.Store) {
	resource := mcp.NewResource(
		"chartbot://stats",
		"Dataset Statistics",
		mcp.WithResourceDescription("Chart dataset statistics: entry counts and year coverage."),
		mcp.WithMIMEType("application/json"),
	)

	s.AddResource(resource, func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		data, err := json.MarshalIndent(st.Stats(), "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling stats resource: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{URI: req.Params.URI, MIMEType: "application/json", Text: string(data)},
		}, nil
	})
}

func hasFloat(req mcp.CallToolRequest, key string) bool {
	_, err := req.RequireFloat(key)
	return err == nil
}

func intArg(req mcp.CallToolRequest, key string) int {
	v, _ := req.RequireFloat(key)
	return int(v)
}
