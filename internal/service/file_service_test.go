package service_test

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/centinela-seguridad/cpq-api/internal/repository"
	"github.com/centinela-seguridad/cpq-api/internal/service"
	"github.com/centinela-seguridad/cpq-api/internal/storage"
)

func newFileService(t *testing.T, env *testEnv) *service.FileService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	return service.NewFileService(repository.NewFileRepository(env.db), env.quoteRepo, store, 1, zap.NewNop())
}

func TestFileService_UploadAndDownload(t *testing.T) {
	env := newTestEnv(t)
	files := newFileService(t, env)
	quote := env.createQuote(t, "Guardias faena norte")

	content := []byte("plano de instalaciones")
	uploaded, err := files.Upload(context.Background(), quote.ID, "plano.pdf", "application/pdf", bytes.NewReader(content))
	require.NoError(t, err)
	assert.Equal(t, "plano.pdf", uploaded.Filename)
	assert.Equal(t, int64(len(content)), uploaded.Size)
	require.NotNil(t, uploaded.QuoteID)
	assert.Equal(t, quote.ID, *uploaded.QuoteID)

	meta, reader, err := files.Download(context.Background(), uploaded.ID)
	require.NoError(t, err)
	defer reader.Close()

	data, err := io.ReadAll(reader)
	require.NoError(t, err)
	assert.Equal(t, content, data)
	assert.Equal(t, "application/pdf", meta.ContentType)
}

func TestFileService_Upload_TooLarge(t *testing.T) {
	env := newTestEnv(t)
	files := newFileService(t, env)
	quote := env.createQuote(t, "Guardias faena norte")

	// limit is 1 MB in the test service
	big := strings.NewReader(strings.Repeat("x", 1024*1024+1))
	_, err := files.Upload(context.Background(), quote.ID, "grande.bin", "application/octet-stream", big)
	assert.ErrorIs(t, err, service.ErrFileTooLarge)

	listed, err := files.ListByQuote(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestFileService_Upload_QuoteNotFound(t *testing.T) {
	env := newTestEnv(t)
	files := newFileService(t, env)

	_, err := files.Upload(context.Background(), uuid.New(), "plano.pdf", "application/pdf", strings.NewReader("x"))
	assert.ErrorIs(t, err, service.ErrQuoteNotFound)
}

func TestFileService_Delete(t *testing.T) {
	env := newTestEnv(t)
	files := newFileService(t, env)
	quote := env.createQuote(t, "Guardias faena norte")

	uploaded, err := files.Upload(context.Background(), quote.ID, "plano.pdf", "application/pdf", strings.NewReader("x"))
	require.NoError(t, err)

	require.NoError(t, files.Delete(context.Background(), uploaded.ID))

	_, _, err = files.Download(context.Background(), uploaded.ID)
	assert.ErrorIs(t, err, service.ErrFileNotFound)

	listed, err := files.ListByQuote(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}
