package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/adrianliechti/narrator/server/gateway"

	"github.com/go-chi/chi/v5"
	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const ToolName = "text_to_speech"

type Speaker interface {
	Speak(ctx context.Context, req gateway.SpeakRequest) (*gateway.SpeakResult, error)
}

type Handler struct {
	speaker Speaker

	server  *mcp.Server
	handler http.Handler
}

func New(speaker Speaker) (*Handler, error) {
	server := mcp.NewServer(&mcp.Implementation{
		Name: "narrator",
	}, &mcp.ServerOptions{
		KeepAlive: time.Second * 30,
	})

	h := &Handler{
		speaker: speaker,
		server:  server,
	}

	tool := &mcp.Tool{
		Name:        ToolName,
		Description: "Converts text to speech and returns a public URL of the generated audio file.",

		InputSchema: &jsonschema.Schema{
			Type: "object",

			Properties: map[string]*jsonschema.Schema{
				"text": {
					Type:        "string",
					Description: "text to speak",
				},

				"model": {
					Type:        "string",
					Description: "synthesizer model, defaults to the gateway default",
				},

				"speaker": {
					Type:        "string",
					Description: "voice of the speaker",
				},

				"lang": {
					Type:        "string",
					Description: "language code of the text",
				},

				"speed": {
					Type:        "number",
					Description: "playback rate, 1 is normal speed",
				},
			},

			Required: []string{"text"},
		},
	}

	server.AddTool(tool, h.handleTool)

	h.handler = mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, &mcp.StreamableHTTPOptions{
		Stateless: true,
	})

	return h, nil
}

func (h *Handler) Attach(r chi.Router) {
	r.Handle("/mcp", h)
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.handler.ServeHTTP(w, r)
}

type toolArguments struct {
	Text string `json:"text"`

	Model    string `json:"model"`
	Speaker  string `json:"speaker"`
	Language string `json:"lang"`

	Speed *float32 `json:"speed"`
}

func (h *Handler) handleTool(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args toolArguments

	data, err := json.Marshal(req.Params.Arguments)

	if err != nil {
		return toolError("invalid arguments"), nil
	}

	if err := json.Unmarshal(data, &args); err != nil {
		return toolError("invalid arguments"), nil
	}

	if args.Text == "" {
		return toolError("Text is required"), nil
	}

	if args.Speed != nil && *args.Speed <= 0 {
		return toolError("invalid speed"), nil
	}

	result, err := h.speaker.Speak(ctx, gateway.SpeakRequest{
		Text: args.Text,

		Model:    args.Model,
		Speaker:  args.Speaker,
		Language: args.Language,

		Speed: args.Speed,
	})

	switch {
	case err == nil:
		return &mcp.CallToolResult{
			Content: []mcp.Content{
				&mcp.TextContent{
					Text: result.AudioURL,
				},
			},
		}, nil

	case errors.Is(err, gateway.ErrEmptyText):
		return toolError("Text is required"), nil

	case errors.Is(err, gateway.ErrModelNotFound):
		return toolError("model not found"), nil

	default:
		return toolError("Failed to generate audio"), nil
	}
}

func toolError(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,

		Content: []mcp.Content{
			&mcp.TextContent{
				Text: message,
			},
		},
	}
}
