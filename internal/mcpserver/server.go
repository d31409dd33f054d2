// Package mcpserver provides an MCP (Model Context Protocol) server that
// exposes the note operations for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/quillnotes/quill/internal/noteservice"
)

// Server wraps the MCP server with Quill tools.
type Server struct {
	mcp *server.MCPServer
	svc *noteservice.Service
}

// New creates a new MCP server with all Quill tools registered.
func New(svc *noteservice.Service) *Server {
	s := &Server{svc: svc}

	s.mcp = server.NewMCPServer(
		"Quill",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	s.mcp.AddTool(mcp.NewTool("list_notes",
		mcp.WithDescription("List all notes with their tags and folder membership."),
	), s.listNotes)

	s.mcp.AddTool(mcp.NewTool("get_note",
		mcp.WithDescription("Read a single note by id."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Note id")),
	), s.getNote)

	s.mcp.AddTool(mcp.NewTool("create_note",
		mcp.WithDescription("Create a note with an optional folder and tag set. "+
			"Duplicate tag names collapse; tags are created lazily on first use."),
		mcp.WithString("title", mcp.Required(), mcp.Description("Note title")),
		mcp.WithString("content", mcp.Description("Note body")),
		mcp.WithBoolean("markdown", mcp.Description("Whether the body is Markdown")),
		mcp.WithNumber("folder_id", mcp.Description("Folder id; omit for unfiled")),
		mcp.WithArray("tags", mcp.Description("Tag names"), mcp.Items(map[string]any{"type": "string"})),
	), s.createNote)

	s.mcp.AddTool(mcp.NewTool("update_note",
		mcp.WithDescription("Rewrite a note's fields and replace its tag set."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Note id")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Note title")),
		mcp.WithString("content", mcp.Description("Note body")),
		mcp.WithBoolean("markdown", mcp.Description("Whether the body is Markdown")),
		mcp.WithNumber("folder_id", mcp.Description("Folder id; omit for unfiled")),
		mcp.WithArray("tags", mcp.Description("Tag names"), mcp.Items(map[string]any{"type": "string"})),
	), s.updateNote)

	s.mcp.AddTool(mcp.NewTool("delete_note",
		mcp.WithDescription("Delete a note. Deleting a missing id succeeds."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Note id")),
	), s.deleteNote)

	s.mcp.AddTool(mcp.NewTool("search_notes",
		mcp.WithDescription("Find notes having at least one tag whose name contains the fragment as a substring."),
		mcp.WithString("tag", mcp.Required(), mcp.Description("Tag name fragment")),
	), s.searchNotes)

	s.mcp.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("List the full tag vocabulary, sorted alphabetically."),
	), s.listTags)

	s.mcp.AddTool(mcp.NewTool("list_folders",
		mcp.WithDescription("List all folders flat with parent pointers."),
	), s.listFolders)

	s.mcp.AddTool(mcp.NewTool("create_folder",
		mcp.WithDescription("Create a folder, optionally under a parent."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Folder name")),
		mcp.WithNumber("parent_id", mcp.Description("Parent folder id; omit for root level")),
	), s.createFolder)

	s.mcp.AddTool(mcp.NewTool("rename_folder",
		mcp.WithDescription("Rename a folder in place."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Folder id")),
		mcp.WithString("name", mcp.Required(), mcp.Description("New name")),
	), s.renameFolder)

	s.mcp.AddTool(mcp.NewTool("delete_folder",
		mcp.WithDescription("Delete a folder, all descendant folders, and every note they own."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Folder id")),
	), s.deleteFolder)

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

// argInt64 reads a numeric argument. JSON numbers arrive as float64.
func argInt64(req mcp.CallToolRequest, key string) (int64, bool) {
	v, ok := req.GetArguments()[key]
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int64(n), true
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

func argBool(req mcp.CallToolRequest, key string) bool {
	b, _ := req.GetArguments()[key].(bool)
	return b
}

func argString(req mcp.CallToolRequest, key string) string {
	s, _ := req.GetArguments()[key].(string)
	return s
}

func argTags(req mcp.CallToolRequest) []string {
	raw, ok := req.GetArguments()["tags"].([]any)
	if !ok {
		return nil
	}
	tags := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			tags = append(tags, s)
		}
	}
	return tags
}

func argFolderID(req mcp.CallToolRequest) *int64 {
	if id, ok := argInt64(req, "folder_id"); ok {
		return &id
	}
	return nil
}

func jsonResult(v any) *mcp.CallToolResult {
	out, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(out))
}

func (s *Server) listNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	notes, err := s.svc.ListNotes(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(notes), nil
}

func (s *Server) getNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := argInt64(req, "id")
	if !ok {
		return mcp.NewToolResultError("id is required"), nil
	}
	note, err := s.svc.GetNote(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(note), nil
}

func (s *Server) createNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note, err := s.svc.CreateNote(ctx, title, argString(req, "content"), argBool(req, "markdown"), argFolderID(req), argTags(req))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(note), nil
}

func (s *Server) updateNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := argInt64(req, "id")
	if !ok {
		return mcp.NewToolResultError("id is required"), nil
	}
	title, err := req.RequireString("title")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	note, err := s.svc.UpdateNote(ctx, id, title, argString(req, "content"), argBool(req, "markdown"), argFolderID(req), argTags(req))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(note), nil
}

func (s *Server) deleteNote(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := argInt64(req, "id")
	if !ok {
		return mcp.NewToolResultError("id is required"), nil
	}
	if err := s.svc.DeleteNote(ctx, id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted note %d", id)), nil
}

func (s *Server) searchNotes(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fragment, err := req.RequireString("tag")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	notes, err := s.svc.SearchNotes(ctx, fragment)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(notes), nil
}

func (s *Server) listTags(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags, err := s.svc.ListTags(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(tags), nil
}

func (s *Server) listFolders(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folders, err := s.svc.ListFolders(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(folders), nil
}

func (s *Server) createFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	var parentID *int64
	if id, ok := argInt64(req, "parent_id"); ok {
		parentID = &id
	}
	folder, err := s.svc.CreateFolder(ctx, name, parentID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(folder), nil
}

func (s *Server) renameFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := argInt64(req, "id")
	if !ok {
		return mcp.NewToolResultError("id is required"), nil
	}
	name, err := req.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.svc.RenameFolder(ctx, id, name); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("renamed folder %d", id)), nil
}

func (s *Server) deleteFolder(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := argInt64(req, "id")
	if !ok {
		return mcp.NewToolResultError("id is required"), nil
	}
	if err := s.svc.DeleteFolder(ctx, id); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("deleted folder %d", id)), nil
}
