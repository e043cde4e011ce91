package attributes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldrlegend/backend-pro/internal/platform/httpx"
)

func resolverFixture(t *testing.T, resolution string) (*Service, *mockRepository) {
	t.Helper()
	repo := newMockRepository()
	repo.seedAttribute("network_type", "Loại mạng", "Network Type")
	repo.seedOption("network_type", "4G", "4G")
	repo.seedOption("network_type", "5G", "5G")
	return NewService(repo, resolution), repo
}

func TestResolveOptionByNumericID(t *testing.T) {
	svc, _ := resolverFixture(t, ResolutionFirstMatch)

	opt, err := svc.ResolveOption(context.Background(), "network_type", "2")
	require.NoError(t, err)
	assert.Equal(t, int64(2), opt.ID)
	assert.Equal(t, "5G", opt.AttributeOptionEN)
}

func TestResolveOptionNumericIDScopedToAttribute(t *testing.T) {
	svc, repo := resolverFixture(t, ResolutionFirstMatch)
	repo.seedAttribute("data_plan", "Gói dữ liệu", "Data Plan")
	other := repo.seedOption("data_plan", "Không giới hạn", "Unlimited")

	// The id belongs to another attribute, so it cannot resolve here.
	_, err := svc.ResolveOption(context.Background(), "network_type", "3")
	assert.ErrorIs(t, err, httpx.ErrValidation)

	opt, err := svc.ResolveOption(context.Background(), "data_plan", "3")
	require.NoError(t, err)
	assert.Equal(t, other.ID, opt.ID)
}

func TestResolveOptionByEnglishLabel(t *testing.T) {
	svc, repo := resolverFixture(t, ResolutionFirstMatch)
	repo.seedAttribute("data_plan", "Gói dữ liệu", "Data Plan")
	repo.seedOption("data_plan", "Không giới hạn", "Unlimited")

	opt, err := svc.ResolveOption(context.Background(), "data_plan", "Unlimited")
	require.NoError(t, err)
	assert.Equal(t, "Unlimited", opt.AttributeOptionEN)
}

func TestResolveOptionByVietnameseLabel(t *testing.T) {
	svc, repo := resolverFixture(t, ResolutionFirstMatch)
	repo.seedAttribute("data_plan", "Gói dữ liệu", "Data Plan")
	repo.seedOption("data_plan", "Không giới hạn", "Unlimited")

	opt, err := svc.ResolveOption(context.Background(), "data_plan", "Không giới hạn")
	require.NoError(t, err)
	assert.Equal(t, "Unlimited", opt.AttributeOptionEN)
}

func TestResolveOptionNormalizesUnicode(t *testing.T) {
	svc, repo := resolverFixture(t, ResolutionFirstMatch)
	repo.seedAttribute("data_plan", "Gói dữ liệu", "Data Plan")
	repo.seedOption("data_plan", "Không", "Limited") // composed ô

	// Decomposed form of the same label still matches.
	opt, err := svc.ResolveOption(context.Background(), "data_plan", "Không")
	require.NoError(t, err)
	assert.Equal(t, "Limited", opt.AttributeOptionEN)
}

func TestResolveOptionNoMatch(t *testing.T) {
	svc, _ := resolverFixture(t, ResolutionFirstMatch)

	_, err := svc.ResolveOption(context.Background(), "network_type", "9G")
	assert.ErrorIs(t, err, httpx.ErrValidation)
	var unresolved *UnresolvedValueError
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "network_type", unresolved.AttributeCode)
	assert.Equal(t, "9G", unresolved.Raw)
}

func TestResolveOptionAmbiguousFirstMatch(t *testing.T) {
	svc, repo := resolverFixture(t, ResolutionFirstMatch)
	repo.seedOption("network_type", "5G", "5G") // duplicate label

	opt, err := svc.ResolveOption(context.Background(), "network_type", "5G")
	require.NoError(t, err)
	assert.Equal(t, int64(2), opt.ID, "first seeded option wins")
}

func TestResolveOptionAmbiguousStrict(t *testing.T) {
	svc, repo := resolverFixture(t, ResolutionStrict)
	repo.seedOption("network_type", "5G", "5G")

	_, err := svc.ResolveOption(context.Background(), "network_type", "5G")
	var ambiguous *AmbiguousValueError
	require.ErrorAs(t, err, &ambiguous)
	assert.Equal(t, 2, ambiguous.Matches)
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestResolveOptionTrimsWhitespace(t *testing.T) {
	svc, _ := resolverFixture(t, ResolutionFirstMatch)

	opt, err := svc.ResolveOption(context.Background(), "network_type", "  4G  ")
	require.NoError(t, err)
	assert.Equal(t, "4G", opt.AttributeOptionEN)
}
