package queries_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetEscalatedOrdersQuery_Valid(t *testing.T) {
	query := queries.NewGetEscalatedOrdersQuery()
	require.NoError(t, query.Validate())
}

func TestGetEscalatedOrdersQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetEscalatedOrdersQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetEscalatedOrdersQueryIsNotConstructed)
}
