package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/centinela-seguridad/cpq-api/internal/domain"
)

func TestSettingsService_Get_CreatesDefaults(t *testing.T) {
	env := newTestEnv(t)

	settings, err := env.settings.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 180.0, settings.MonthlyHoursStandard)
	assert.Equal(t, 12.0, settings.AvgStayMonths)
	assert.Equal(t, 2.0, settings.UniformChangesPerYear)
	assert.Equal(t, 10.0, settings.MarginPct)
}

func TestSettingsService_Update(t *testing.T) {
	env := newTestEnv(t)

	updated, err := env.settings.Update(context.Background(), &domain.UpdateGlobalSettingsRequest{
		MonthlyHoursStandard:  168,
		AvgStayMonths:         9,
		UniformChangesPerYear: 3,
		MarginPct:             15,
		FinancialRatePct:      2,
		PolicyRatePct:         1,
	})
	require.NoError(t, err)
	assert.Equal(t, 168.0, updated.MonthlyHoursStandard)
	assert.Equal(t, 15.0, updated.MarginPct)

	// there is only one settings row
	again, err := env.settings.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 168.0, again.MonthlyHoursStandard)
}

func TestSettingsService_NewQuotesPickUpChanges(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.settings.Update(context.Background(), &domain.UpdateGlobalSettingsRequest{
		MonthlyHoursStandard:  168,
		AvgStayMonths:         9,
		UniformChangesPerYear: 3,
		MarginPct:             25,
	})
	require.NoError(t, err)

	quote := env.createQuote(t, "Guardias faena norte")
	params, err := env.costs.GetParameters(context.Background(), quote.ID)
	require.NoError(t, err)
	assert.Equal(t, 168.0, params.MonthlyHoursStandard)
	assert.Equal(t, 25.0, params.MarginPct)
}
