package s3_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/adrianliechti/narrator/pkg/storage/s3"

	"github.com/stretchr/testify/require"
)

func TestPut(t *testing.T) {
	var method, path, contentType string
	var body []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		path = r.URL.Path
		contentType = r.Header.Get("Content-Type")
		body, _ = io.ReadAll(r.Body)

		w.Header().Set("ETag", `"abc"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	b, err := s3.New("audio",
		s3.WithURL(server.URL),
		s3.WithRegion("auto"),
		s3.WithCredentials("access", "secret"),
	)
	require.NoError(t, err)

	err = b.Put(context.Background(), "generated-audio/abc.mp3", []byte("mp3-bytes"), "audio/mpeg")
	require.NoError(t, err)

	require.Equal(t, http.MethodPut, method)
	require.Equal(t, "/audio/generated-audio/abc.mp3", path)
	require.Equal(t, "audio/mpeg", contentType)
	require.Equal(t, []byte("mp3-bytes"), body)
}

func TestNewRequiresBucket(t *testing.T) {
	_, err := s3.New("")
	require.Error(t, err)
}
