package minio_test

import (
	"context"
	"io"
	"testing"

	"github.com/adrianliechti/narrator/pkg/storage/minio"

	miniogo "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestPut(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()

	server, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		Started: true,

		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "minio/minio:latest",
			Cmd:          []string{"server", "/data"},
			ExposedPorts: []string{"9000/tcp"},

			Env: map[string]string{
				"MINIO_ROOT_USER":     "minioadmin",
				"MINIO_ROOT_PASSWORD": "minioadmin",
			},

			WaitingFor: wait.ForHTTP("/minio/health/live").WithPort("9000/tcp"),
		},
	})

	require.NoError(t, err)
	testcontainers.CleanupContainer(t, server)

	endpoint, err := server.Endpoint(ctx, "")
	require.NoError(t, err)

	b, err := minio.New(endpoint, "audio", minio.WithCredentials("minioadmin", "minioadmin"), minio.WithInsecure())
	require.NoError(t, err)

	require.NoError(t, b.EnsureBucket(ctx))
	require.NoError(t, b.Put(ctx, "generated-audio/test.mp3", []byte("mp3-bytes"), "audio/mpeg"))

	client, err := miniogo.New(endpoint, &miniogo.Options{
		Creds: credentials.NewStaticV4("minioadmin", "minioadmin", ""),
	})
	require.NoError(t, err)

	obj, err := client.GetObject(ctx, "audio", "generated-audio/test.mp3", miniogo.GetObjectOptions{})
	require.NoError(t, err)
	defer obj.Close()

	info, err := obj.Stat()
	require.NoError(t, err)
	require.Equal(t, "audio/mpeg", info.ContentType)

	data, err := io.ReadAll(obj)
	require.NoError(t, err)
	require.Equal(t, []byte("mp3-bytes"), data)
}

func TestNewValidation(t *testing.T) {
	_, err := minio.New("", "audio")
	require.Error(t, err)

	_, err = minio.New("localhost:9000", "")
	require.Error(t, err)
}
