package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/adrianliechti/narrator/server/gateway"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"
)

type fakeSpeaker struct {
	requests []gateway.SpeakRequest
	err      error
}

func (s *fakeSpeaker) Speak(ctx context.Context, req gateway.SpeakRequest) (*gateway.SpeakResult, error) {
	s.requests = append(s.requests, req)

	if s.err != nil {
		return nil, s.err
	}

	return &gateway.SpeakResult{
		Key:      "generated-audio/a.mp3",
		AudioURL: "https://cdn.example/generated-audio/a.mp3",
	}, nil
}

func connect(t *testing.T, speaker Speaker) *mcp.ClientSession {
	t.Helper()

	ctx := context.Background()

	h, err := New(speaker)
	require.NoError(t, err)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	serverSession, err := h.server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() { serverSession.Close() })

	client := mcp.NewClient(&mcp.Implementation{Name: "test"}, nil)

	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() { session.Close() })

	return session
}

func callText(t *testing.T, session *mcp.ClientSession, args map[string]any) (string, bool) {
	t.Helper()

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      ToolName,
		Arguments: args,
	})

	require.NoError(t, err)
	require.Len(t, result.Content, 1)

	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)

	return text.Text, result.IsError
}

func TestListTools(t *testing.T) {
	session := connect(t, &fakeSpeaker{})

	result, err := session.ListTools(context.Background(), nil)
	require.NoError(t, err)
	require.Len(t, result.Tools, 1)
	require.Equal(t, ToolName, result.Tools[0].Name)
}

func TestCallTool(t *testing.T) {
	speaker := &fakeSpeaker{}
	session := connect(t, speaker)

	text, isError := callText(t, session, map[string]any{
		"text":    "Hello world",
		"speaker": "angus",
		"lang":    "en",
	})

	require.False(t, isError)
	require.Equal(t, "https://cdn.example/generated-audio/a.mp3", text)

	require.Equal(t, []gateway.SpeakRequest{{
		Text:     "Hello world",
		Speaker:  "angus",
		Language: "en",
	}}, speaker.requests)
}

func TestCallToolFailure(t *testing.T) {
	session := connect(t, &fakeSpeaker{err: gateway.ErrGenerate})

	text, isError := callText(t, session, map[string]any{"text": "hi"})
	require.True(t, isError)
	require.Equal(t, "Failed to generate audio", text)
}

func TestCallToolUnknownModel(t *testing.T) {
	session := connect(t, &fakeSpeaker{err: gateway.ErrModelNotFound})

	text, isError := callText(t, session, map[string]any{"text": "hi", "model": "x"})
	require.True(t, isError)
	require.Equal(t, "model not found", text)
}

func TestCallToolSpeed(t *testing.T) {
	speaker := &fakeSpeaker{}
	session := connect(t, speaker)

	_, isError := callText(t, session, map[string]any{"text": "hi", "speed": 1.5})
	require.False(t, isError)

	require.Len(t, speaker.requests, 1)
	require.NotNil(t, speaker.requests[0].Speed)
	require.InDelta(t, 1.5, *speaker.requests[0].Speed, 0.001)
}

func TestCallToolEmptyAfterNormalize(t *testing.T) {
	session := connect(t, &fakeSpeaker{err: gateway.ErrEmptyText})

	text, isError := callText(t, session, map[string]any{"text": "   "})
	require.True(t, isError)
	require.Equal(t, "Text is required", text)
}

func TestHandleToolInvalidArguments(t *testing.T) {
	speaker := &fakeSpeaker{}

	h, err := New(speaker)
	require.NoError(t, err)

	tests := []struct {
		name string
		args string
		want string
	}{
		{"text not a string", `{"text":42}`, "invalid arguments"},
		{"speed not a number", `{"text":"hi","speed":"fast"}`, "invalid arguments"},
		{"speed not positive", `{"text":"hi","speed":0}`, "invalid speed"},
		{"missing text", `{}`, "Text is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := h.handleTool(context.Background(), &mcp.CallToolRequest{
				Params: &mcp.CallToolParamsRaw{
					Name:      ToolName,
					Arguments: json.RawMessage(tt.args),
				},
			})

			require.NoError(t, err)
			require.True(t, result.IsError)
			require.Equal(t, tt.want, result.Content[0].(*mcp.TextContent).Text)
		})
	}

	require.Empty(t, speaker.requests)
}

func TestHandlerBuiltOnce(t *testing.T) {
	h, err := New(&fakeSpeaker{})
	require.NoError(t, err)

	require.NotNil(t, h.handler)
}
