// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Noteful folders, tags and notes over stdio.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/starford/noteful/internal/apperr"
	"github.com/starford/noteful/internal/folderservice"
	"github.com/starford/noteful/internal/noteservice"
	"github.com/starford/noteful/internal/tagservice"
)

const referenceURI = "noteful://reference"

// Server wraps the MCP server with Noteful tools.
type Server struct {
	mcp     *server.MCPServer
	folders *folderservice.Service
	tags    *tagservice.Service
	notes   *noteservice.Service
}

// New creates a new MCP server with all tools registered.
func New(folders *folderservice.Service, tags *tagservice.Service, notes *noteservice.Service, version string) *Server {
	s := &Server{folders: folders, tags: tags, notes: notes}

	s.mcp = server.NewMCPServer(
		"Noteful",
		version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("list_folders",
		mcp.WithDescription("List all folders sorted by name."),
	), s.listFolders)

	s.mcp.AddTool(mcp.NewTool("get_folder",
		mcp.WithDescription("Get a folder by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("24-character hex folder id")),
	), s.getFolder)

	s.mcp.AddTool(mcp.NewTool("create_folder",
		mcp.WithDescription("Create a folder. Folder names are unique."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Folder name")),
	), s.createFolder)

	s.mcp.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("List all tags sorted by name."),
	), s.listTags)

	s.mcp.AddTool(mcp.NewTool("get_tag",
		mcp.WithDescription("Get a tag by id."),
		mcp.WithString("id", mcp.Required(), mcp.Description("24-character hex tag id")),
	), s.getTag)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List notes, optionally only those filed in one folder."),
		mcp.WithString("folder_id", mcp.Description("Optional folder id")),
	), s.listNotes)

	s.mcp.AddResource(
		mcp.NewResource(referenceURI, "Noteful Reference",
			mcp.WithResourceDescription("Document shapes, ordering and error messages."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readReference,
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

// publicErrors are shown to the caller verbatim; anything else is hidden.
var publicErrors = []error{
	apperr.ErrInvalidID,
	apperr.ErrNotFound,
	apperr.ErrDuplicateName,
	apperr.ErrFolderInUse,
}

// result renders v as indented JSON, or err as a tool error.
func result(v any, err error) (*mcp.CallToolResult, error) {
	if err != nil {
		if apperr.IsValidation(err) {
			return mcp.NewToolResultError(err.Error()), nil
		}
		for _, known := range publicErrors {
			if errors.Is(err, known) {
				return mcp.NewToolResultError(known.Error()), nil
			}
		}
		return mcp.NewToolResultError("internal error"), nil
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) listFolders(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return result(s.folders.List(ctx))
}

func (s *Server) getFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return result(s.folders.Get(ctx, id))
}

func (s *Server) createFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return result(s.folders.Create(ctx, req.GetString("name", "")))
}

func (s *Server) listTags(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return result(s.tags.List(ctx))
}

func (s *Server) getTag(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return result(s.tags.Get(ctx, id))
}

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return result(s.notes.List(ctx, req.GetString("folder_id", "")))
}

func (s *Server) readReference(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      referenceURI,
			MIMEType: "text/markdown",
			Text:     Reference,
		},
	}, nil
}
