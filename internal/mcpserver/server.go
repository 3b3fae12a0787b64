// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes plaza directory tools for LLM integration via stdio
// transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/plazahub/plazadir/internal/directory"
	"github.com/plazahub/plazadir/internal/hours"
	"github.com/plazahub/plazadir/internal/plaza"
)

// Server wraps the MCP server with plaza directory tools.
type Server struct {
	mcp    *server.MCPServer
	plaza  *plaza.Service
	engine *directory.Engine
	eval   *hours.Evaluator
	now    func() time.Time
}

// New creates a new MCP server with all directory tools registered.
func New(plazaSvc *plaza.Service, engine *directory.Engine, eval *hours.Evaluator) *Server {
	s := &Server{plaza: plazaSvc, engine: engine, eval: eval, now: time.Now}

	s.mcp = server.NewMCPServer(
		"Plazadir",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("search_businesses",
		mcp.WithDescription("Search plaza businesses by free text, matched against name, category, address and phone."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchBusinesses)

	s.mcp.AddTool(mcp.NewTool("get_business",
		mcp.WithDescription("Read the full record of a single business, including weekly hours, promos and events. "+
			"The record follows the format described by the plazadir://business-format resource."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Business identifier (e.g. charlie-coffee)")),
	), s.getBusiness)

	s.mcp.AddTool(mcp.NewTool("list_categories",
		mcp.WithDescription("List the distinct business categories present in the plaza."),
	), s.listCategories)

	s.mcp.AddTool(mcp.NewTool("check_open_now",
		mcp.WithDescription("Report whether a business is open right now, with today's schedule."),
		mcp.WithString("id", mcp.Required(), mcp.Description("Business identifier")),
	), s.checkOpenNow)

	s.mcp.AddTool(mcp.NewTool("plaza_summary",
		mcp.WithDescription("Summarize the plaza: name, last update and business count."),
	), s.plazaSummary)

	// Resource: business record format.
	s.mcp.AddResource(
		mcp.NewResource("plazadir://business-format", "Business Record Format",
			mcp.WithResourceDescription("Canonical JSON format of a plaza business record."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readBusinessFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) searchBusinesses(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	all, err := s.plaza.Businesses()
	if err != nil {
		return mcp.NewToolResultError("plaza data not loaded"), nil
	}
	matches := s.engine.Apply(all, directory.Criteria{Query: query}, s.now())
	out, _ := json.MarshalIndent(matches, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) getBusiness(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := s.plaza.BusinessByID(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}
	out, _ := json.MarshalIndent(b, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listCategories(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	all, err := s.plaza.Businesses()
	if err != nil {
		return mcp.NewToolResultError("plaza data not loaded"), nil
	}
	cats := directory.Categories(all)
	if len(cats) == 0 {
		return mcp.NewToolResultText("no categories"), nil
	}
	return mcp.NewToolResultText(strings.Join(cats, "\n")), nil
}

func (s *Server) checkOpenNow(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	b, err := s.plaza.BusinessByID(id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("not found: %s", id)), nil
	}

	now := s.now()
	schedule, ok := s.eval.TodaysSchedule(b.Hours, now)
	if !ok {
		return mcp.NewToolResultText(fmt.Sprintf("%s: hours unknown for today", b.Name)), nil
	}
	state := "closed"
	if s.eval.IsOpenNow(b.Hours, now) {
		state = "open"
	}
	return mcp.NewToolResultText(fmt.Sprintf("%s is %s now (today: %s)", b.Name, state, schedule)), nil
}

func (s *Server) plazaSummary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	p, err := s.plaza.Plaza()
	if err != nil {
		return mcp.NewToolResultError("plaza data not loaded"), nil
	}
	summary := fmt.Sprintf("%s: %d businesses", p.PlazaName, len(p.Businesses))
	if p.LastUpdated != "" {
		summary += fmt.Sprintf(" (last updated %s)", p.LastUpdated)
	}
	return mcp.NewToolResultText(summary), nil
}

func (s *Server) readBusinessFormatResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "plazadir://business-format",
			MIMEType: "text/markdown",
			Text:     BusinessFormatContract,
		},
	}, nil
}
