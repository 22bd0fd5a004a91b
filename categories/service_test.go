package categories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/researchhub/researchhub/errors"
	"github.com/researchhub/researchhub/inmem"
	"github.com/researchhub/researchhub/log"
)

func TestService_Seed(t *testing.T) {
	repo := inmem.NewCategoryRepository()
	service := NewService(repo, log.Nop())

	require.NoError(t, service.Seed())

	categories, err := service.List()
	require.NoError(t, err)
	assert.Len(t, categories, len(predefined))

	// Seeding twice must not duplicate anything.
	require.NoError(t, service.Seed())
	categories, err = service.List()
	require.NoError(t, err)
	assert.Len(t, categories, len(predefined))
}

func TestService_ListOrderedByName(t *testing.T) {
	repo := inmem.NewCategoryRepository()
	service := NewService(repo, log.Nop())
	require.NoError(t, service.Seed())

	categories, err := service.List()
	require.NoError(t, err)
	for i := 1; i < len(categories); i++ {
		assert.True(t, categories[i-1].Name < categories[i].Name, "list should be ordered by name")
	}
}

func TestService_Get(t *testing.T) {
	repo := inmem.NewCategoryRepository()
	service := NewService(repo, log.Nop())
	require.NoError(t, service.Seed())

	category, err := repo.GetByName("Machine Learning")
	require.NoError(t, err)

	got, err := service.Get(category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Machine Learning", got.Name)
	assert.Equal(t, "Research papers in Machine Learning", got.Description)

	_, err = service.Get(1234)
	assert.True(t, errors.IsNotFound(err))
}
