package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/morph"
	"github.com/aretw0/morph/pkg/domain"
	"github.com/aretw0/morph/pkg/progress"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"
)

const (
	kindsURI     = "morph://kinds"
	documentsURI = "morph://documents/"
)

// Engine defines the interface required by the MCP server to interact with morph.
type Engine interface {
	Sample(ctx context.Context, data []byte, req morph.SampleRequest) (*morph.Sample, error)
	Validate(data []byte) (*morph.Report, error)
	Inspect(data []byte) (*morph.Tree, error)
	Kinds() []morph.KindInfo
	Save(ctx context.Context, name string, data []byte) error
	Load(ctx context.Context, name string) ([]byte, error)
	List(ctx context.Context) ([]string, error)
}

// DocumentArgs selects a document either inline or by its stored name.
type DocumentArgs struct {
	Name     string `json:"name,omitempty" jsonschema_description:"Name of a stored document"`
	Document string `json:"document,omitempty" jsonschema_description:"Inline YAML or JSON document"`
}

// SampleArgs are the arguments of sample_document.
type SampleArgs struct {
	DocumentArgs
	Direction string `json:"direction,omitempty" jsonschema_description:"insertion or removal"`
	Frames    int    `json:"frames,omitempty" jsonschema_description:"Number of frames, at most 10000"`
}

// SaveArgs are the arguments of save_document.
type SaveArgs struct {
	Name     string `json:"name"`
	Document string `json:"document"`
}

// Server wraps the morph Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("morph-mcp", strings.TrimSpace(morph.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("CORS Middleware", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With, Baggage, Sentry-Trace")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: sample_document
	sampleTool := mcp.NewTool("sample_document",
		mcp.WithDescription("Sweep a transition document from start to end and return the scene at every frame."),
		mcp.WithString("name", mcp.Description("Name of a stored document (ignored if document is given)")),
		mcp.WithString("document", mcp.Description("Inline YAML or JSON document")),
		mcp.WithString("direction", mcp.Description("Override the sampled direction"), mcp.Enum("insertion", "removal")),
		mcp.WithNumber("frames", mcp.Description("Override the number of frames (at most 10000)")),
		mcp.WithOutputSchema[morph.Sample](),
	)
	s.mcpServer.AddTool(sampleTool, mcp.NewStructuredToolHandler(s.handleSample))

	// TOOL: validate_document
	validateTool := mcp.NewTool("validate_document",
		mcp.WithDescription("Check a document and report every problem and warning it has."),
		mcp.WithString("name", mcp.Description("Name of a stored document (ignored if document is given)")),
		mcp.WithString("document", mcp.Description("Inline YAML or JSON document")),
		mcp.WithOutputSchema[morph.Report](),
	)
	s.mcpServer.AddTool(validateTool, mcp.NewStructuredToolHandler(s.handleValidate))

	// TOOL: inspect_document
	s.mcpServer.AddTool(mcp.NewTool("inspect_document",
		mcp.WithDescription("Return the compiled transition tree of a document with the keys each entry animates."),
		mcp.WithString("name", mcp.Description("Name of a stored document (ignored if document is given)")),
		mcp.WithString("document", mcp.Description("Inline YAML or JSON document")),
	), mcp.NewStructuredToolHandler(s.handleInspect))

	// TOOL: save_document
	s.mcpServer.AddTool(mcp.NewTool("save_document",
		mcp.WithDescription("Validate a document and store it under a name."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Document name")),
		mcp.WithString("document", mcp.Required(), mcp.Description("YAML or JSON document")),
	), s.handleSave)

	// TOOL: list_documents
	s.mcpServer.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List the names of stored documents."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		names, err := s.engine.List(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("list failed: %v", err)), nil
		}
		jsonBytes, _ := json.Marshal(names)
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	// TOOL: describe_kinds
	s.mcpServer.AddTool(mcp.NewTool("describe_kinds",
		mcp.WithDescription("Describe every transition kind a document may use, with its fields."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, _ := json.Marshal(s.engine.Kinds())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

// document resolves the document bytes named by args.
func (s *Server) document(ctx context.Context, args DocumentArgs) ([]byte, error) {
	if args.Document != "" {
		return []byte(args.Document), nil
	}
	if args.Name == "" {
		return nil, errors.New("either name or document is required")
	}
	return s.engine.Load(ctx, args.Name)
}

// Handler methods for structured tools

func (s *Server) handleSample(ctx context.Context, request mcp.CallToolRequest, args SampleArgs) (*morph.Sample, error) {
	data, err := s.document(ctx, args.DocumentArgs)
	if err != nil {
		return nil, err
	}

	if args.Frames < 0 || args.Frames > morph.MaxFrames {
		return nil, fmt.Errorf("%w: frames must be between 1 and %d", domain.ErrFrameLimit, morph.MaxFrames)
	}
	req := morph.SampleRequest{Frames: args.Frames}
	if args.Direction != "" {
		d, err := progress.ParseDirection(args.Direction)
		if err != nil {
			return nil, err
		}
		req.Direction = d
	}

	sample, err := s.engine.Sample(ctx, data, req)
	if err != nil {
		return nil, fmt.Errorf("sample failed: %w", err)
	}
	return sample, nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args DocumentArgs) (*morph.Report, error) {
	data, err := s.document(ctx, args)
	if err != nil {
		return nil, err
	}
	return s.engine.Validate(data)
}

func (s *Server) handleInspect(ctx context.Context, request mcp.CallToolRequest, args DocumentArgs) (*morph.Tree, error) {
	data, err := s.document(ctx, args)
	if err != nil {
		return nil, err
	}
	tree, err := s.engine.Inspect(data)
	if err != nil {
		return nil, fmt.Errorf("inspect failed: %w", err)
	}
	return tree, nil
}

func (s *Server) handleSave(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	doc, err := request.RequireString("document")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if err := s.engine.Save(ctx, name, []byte(doc)); err != nil {
		slog.Warn("MCP Save: document rejected", "name", name, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("save failed: %v", err)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("saved %s", name)), nil
}

func (s *Server) registerResources() {
	// EXPOSE: morph://kinds
	s.mcpServer.AddResource(mcp.NewResource(kindsURI, "Transition Kinds",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, _ := json.Marshal(s.engine.Kinds())
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      kindsURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})

	// EXPOSE: morph://documents/{name}
	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(documentsURI+"{name}", "Stored Document",
		mcp.WithTemplateMIMEType("application/yaml"),
	), s.readDocument)
}

func (s *Server) readDocument(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	name := strings.TrimPrefix(uri, documentsURI)
	data, err := s.engine.Load(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/yaml",
			Text:     string(data),
		},
	}, nil
}
