package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
	"github.com/centinela-seguridad/cpq-api/internal/service"
)

func TestClientService_Create(t *testing.T) {
	env := newTestEnv(t)

	client, err := env.clients.Create(context.Background(), &domain.CreateClientRequest{
		Name:       "Minera Andina",
		RUT:        "76.123.456-7",
		Email:      "contacto@mineraandina.cl",
		City:       "Antofagasta",
		Industries: []string{"minería"},
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, client.ID)
	assert.Equal(t, "Minera Andina", client.Name)
	assert.Equal(t, domain.ClientStatusActive, client.Status)
	assert.Equal(t, []string{"minería"}, client.Industries)
}

func TestClientService_Create_DuplicateRUT(t *testing.T) {
	env := newTestEnv(t)
	env.createClient(t, "Minera Andina", "76.123.456-7")

	_, err := env.clients.Create(context.Background(), &domain.CreateClientRequest{
		Name: "Otra Empresa",
		RUT:  "76.123.456-7",
	})
	assert.ErrorIs(t, err, service.ErrDuplicateRUT)
}

func TestClientService_GetByID_NotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.clients.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrClientNotFound)
}

func TestClientService_Update(t *testing.T) {
	env := newTestEnv(t)
	client := env.createClient(t, "Minera Andina", "76.123.456-7")

	updated, err := env.clients.Update(context.Background(), client.ID, &domain.UpdateClientRequest{
		Name:   "Minera Andina SpA",
		RUT:    "76.123.456-7",
		Status: domain.ClientStatusProspect,
		Notes:  "contrato en negociación",
	})
	require.NoError(t, err)
	assert.Equal(t, "Minera Andina SpA", updated.Name)
	assert.Equal(t, domain.ClientStatusProspect, updated.Status)
	assert.Equal(t, "contrato en negociación", updated.Notes)
}

func TestClientService_Update_RUTConflict(t *testing.T) {
	env := newTestEnv(t)
	env.createClient(t, "Minera Andina", "76.123.456-7")
	other := env.createClient(t, "Puerto Central", "96.555.111-2")

	_, err := env.clients.Update(context.Background(), other.ID, &domain.UpdateClientRequest{
		Name: "Puerto Central",
		RUT:  "76.123.456-7",
	})
	assert.ErrorIs(t, err, service.ErrDuplicateRUT)
}

func TestClientService_Delete(t *testing.T) {
	env := newTestEnv(t)
	client := env.createClient(t, "Minera Andina", "76.123.456-7")

	require.NoError(t, env.clients.Delete(context.Background(), client.ID))

	_, err := env.clients.GetByID(context.Background(), client.ID)
	assert.ErrorIs(t, err, service.ErrClientNotFound)
}

func TestClientService_List(t *testing.T) {
	env := newTestEnv(t)
	env.createClient(t, "Minera Andina", "76.123.456-7")
	env.createClient(t, "Puerto Central", "96.555.111-2")
	env.createClient(t, "Agro Sur", "77.888.999-0")

	t.Run("all", func(t *testing.T) {
		page, err := env.clients.List(context.Background(), 1, 50, "", "")
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
		assert.Equal(t, 1, page.TotalPages)
	})

	t.Run("search", func(t *testing.T) {
		page, err := env.clients.List(context.Background(), 1, 50, "puerto", "")
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
	})

	t.Run("pagination", func(t *testing.T) {
		page, err := env.clients.List(context.Background(), 1, 2, "", "")
		require.NoError(t, err)
		assert.Equal(t, int64(3), page.Total)
		assert.Equal(t, 2, page.TotalPages)
		assert.Len(t, page.Data.([]domain.ClientDTO), 2)
	})
}

func TestClientService_ActiveQuotesCount(t *testing.T) {
	env := newTestEnv(t)
	client := env.createClient(t, "Minera Andina", "76.123.456-7")

	_, err := env.quotes.Create(context.Background(), &domain.CreateQuoteRequest{
		Title:    "Guardias faena norte",
		ClientID: client.ID,
	})
	require.NoError(t, err)

	fetched, err := env.clients.GetByID(context.Background(), client.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, fetched.ActiveQuotes)
}
