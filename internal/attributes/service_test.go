package attributes

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ldrlegend/backend-pro/internal/masterdata/shared"
	"github.com/ldrlegend/backend-pro/internal/platform/httpx"
)

type mockRepository struct {
	attributes  map[int64]Attribute
	byCode      map[string]int64
	groups      map[int64]AttributeGroup
	groupByName map[string]int64
	links       map[int64][]int64 // groupID -> attributeIDs
	options     map[int64]AttributeOption
	nextAttrID  int64
	nextGroupID int64
	nextOptID   int64

	listOptionsError error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		attributes:  make(map[int64]Attribute),
		byCode:      make(map[string]int64),
		groups:      make(map[int64]AttributeGroup),
		groupByName: make(map[string]int64),
		links:       make(map[int64][]int64),
		options:     make(map[int64]AttributeOption),
		nextAttrID:  1,
		nextGroupID: 1,
		nextOptID:   1,
	}
}

func (m *mockRepository) seedGroup(name string) AttributeGroup {
	g := AttributeGroup{ID: m.nextGroupID, GroupName: name, CreatedAt: time.Now()}
	m.groups[g.ID] = g
	m.groupByName[name] = g.ID
	m.nextGroupID++
	return g
}

func (m *mockRepository) seedAttribute(code, nameVN, nameEN string, groups ...string) Attribute {
	a := Attribute{
		ID:              m.nextAttrID,
		AttributeCode:   code,
		AttributeNameVN: nameVN,
		AttributeNameEN: nameEN,
		TypeAttribute:   TypeSelect,
		Status:          StatusActive,
	}
	m.attributes[a.ID] = a
	m.byCode[code] = a.ID
	m.nextAttrID++
	for _, name := range groups {
		gid, ok := m.groupByName[name]
		if !ok {
			gid = m.seedGroup(name).ID
		}
		m.links[gid] = append(m.links[gid], a.ID)
	}
	return a
}

func (m *mockRepository) seedOption(attributeCode, vn, en string) AttributeOption {
	o := AttributeOption{
		ID:                m.nextOptID,
		AttributeCode:     attributeCode,
		AttributeOptionVN: vn,
		AttributeOptionEN: en,
	}
	m.options[o.ID] = o
	m.nextOptID++
	return o
}

func (m *mockRepository) List(_ context.Context, window shared.ListWindow) ([]Attribute, error) {
	var out []Attribute
	for id := int64(1); id < m.nextAttrID; id++ {
		if a, ok := m.attributes[id]; ok {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockRepository) Get(_ context.Context, id int64) (Attribute, error) {
	a, ok := m.attributes[id]
	if !ok {
		return Attribute{}, httpx.ErrNotFound
	}
	return a, nil
}

func (m *mockRepository) GetByCode(_ context.Context, code string) (Attribute, error) {
	id, ok := m.byCode[code]
	if !ok {
		return Attribute{}, httpx.ErrNotFound
	}
	return m.attributes[id], nil
}

func (m *mockRepository) Create(_ context.Context, attribute Attribute) (Attribute, error) {
	if _, exists := m.byCode[attribute.AttributeCode]; exists {
		return Attribute{}, httpx.ErrDuplicate
	}
	attribute.ID = m.nextAttrID
	m.nextAttrID++
	m.attributes[attribute.ID] = attribute
	m.byCode[attribute.AttributeCode] = attribute.ID
	return attribute, nil
}

func (m *mockRepository) Update(_ context.Context, id int64, attribute Attribute) error {
	old, ok := m.attributes[id]
	if !ok {
		return httpx.ErrNotFound
	}
	delete(m.byCode, old.AttributeCode)
	attribute.ID = id
	m.attributes[id] = attribute
	m.byCode[attribute.AttributeCode] = id
	return nil
}

func (m *mockRepository) ListByGroup(_ context.Context, groupName string) ([]Attribute, error) {
	gid, ok := m.groupByName[groupName]
	if !ok {
		return nil, nil
	}
	var out []Attribute
	for _, aid := range m.links[gid] {
		a := m.attributes[aid]
		if a.Status == StatusActive {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *mockRepository) ListGroups(_ context.Context) ([]AttributeGroup, error) {
	var out []AttributeGroup
	for id := int64(1); id < m.nextGroupID; id++ {
		if g, ok := m.groups[id]; ok {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *mockRepository) GetGroup(_ context.Context, id int64) (AttributeGroup, error) {
	g, ok := m.groups[id]
	if !ok {
		return AttributeGroup{}, httpx.ErrNotFound
	}
	return g, nil
}

func (m *mockRepository) GetGroupByName(_ context.Context, name string) (AttributeGroup, error) {
	id, ok := m.groupByName[name]
	if !ok {
		return AttributeGroup{}, httpx.ErrNotFound
	}
	return m.groups[id], nil
}

func (m *mockRepository) CreateGroup(_ context.Context, group AttributeGroup) (AttributeGroup, error) {
	if _, exists := m.groupByName[group.GroupName]; exists {
		return AttributeGroup{}, httpx.ErrDuplicate
	}
	group.ID = m.nextGroupID
	m.nextGroupID++
	m.groups[group.ID] = group
	m.groupByName[group.GroupName] = group.ID
	return group, nil
}

func (m *mockRepository) LinkAttribute(_ context.Context, attributeID, groupID int64) error {
	for _, aid := range m.links[groupID] {
		if aid == attributeID {
			return nil
		}
	}
	m.links[groupID] = append(m.links[groupID], attributeID)
	return nil
}

func (m *mockRepository) ListOptions(_ context.Context, window shared.ListWindow) ([]AttributeOption, error) {
	var out []AttributeOption
	for id := int64(1); id < m.nextOptID; id++ {
		if o, ok := m.options[id]; ok {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockRepository) GetOption(_ context.Context, id int64) (AttributeOption, error) {
	o, ok := m.options[id]
	if !ok {
		return AttributeOption{}, httpx.ErrNotFound
	}
	return o, nil
}

func (m *mockRepository) GetOptionForAttribute(_ context.Context, attributeCode string, optionID int64) (AttributeOption, error) {
	o, ok := m.options[optionID]
	if !ok || o.AttributeCode != attributeCode {
		return AttributeOption{}, httpx.ErrNotFound
	}
	return o, nil
}

func (m *mockRepository) ListOptionsForAttribute(_ context.Context, attributeCode string) ([]AttributeOption, error) {
	if m.listOptionsError != nil {
		return nil, m.listOptionsError
	}
	var out []AttributeOption
	for id := int64(1); id < m.nextOptID; id++ {
		if o, ok := m.options[id]; ok && o.AttributeCode == attributeCode {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *mockRepository) ListOptionsForAttributes(ctx context.Context, attributeCodes []string) (map[string][]AttributeOption, error) {
	out := make(map[string][]AttributeOption, len(attributeCodes))
	for _, code := range attributeCodes {
		opts, err := m.ListOptionsForAttribute(ctx, code)
		if err != nil {
			return nil, err
		}
		out[code] = opts
	}
	return out, nil
}

func (m *mockRepository) CreateOption(_ context.Context, option AttributeOption) (AttributeOption, error) {
	found := false
	for _, id := range m.byCode {
		if m.attributes[id].AttributeCode == option.AttributeCode {
			found = true
			break
		}
	}
	if !found {
		return AttributeOption{}, httpx.ErrValidation
	}
	option.ID = m.nextOptID
	m.nextOptID++
	m.options[option.ID] = option
	return option, nil
}

func (m *mockRepository) UpdateOption(_ context.Context, id int64, option AttributeOption) error {
	if _, ok := m.options[id]; !ok {
		return httpx.ErrNotFound
	}
	option.ID = id
	m.options[id] = option
	return nil
}

// ============================================================================
// TESTS
// ============================================================================

func TestCreateAttributeLinksGroups(t *testing.T) {
	repo := newMockRepository()
	repo.seedGroup(GroupProduct)
	svc := NewService(repo, ResolutionFirstMatch)

	attr, err := svc.Create(context.Background(), CreateAttributeRequest{
		AttributeCode:   "network_type",
		AttributeNameVN: "Loại mạng",
		AttributeNameEN: "Network Type",
		TypeAttribute:   TypeSelect,
		Groups:          []string{GroupProduct},
	})
	require.NoError(t, err)
	assert.Equal(t, StatusActive, attr.Status)

	linked, err := svc.CatalogForGroup(context.Background(), GroupProduct)
	require.NoError(t, err)
	require.Len(t, linked, 1)
	assert.Equal(t, "network_type", linked[0].AttributeCode)
}

func TestCreateAttributeDuplicateCode(t *testing.T) {
	repo := newMockRepository()
	repo.seedAttribute("network_type", "Loại mạng", "Network Type")
	svc := NewService(repo, ResolutionFirstMatch)

	_, err := svc.Create(context.Background(), CreateAttributeRequest{
		AttributeCode:   "network_type",
		AttributeNameVN: "Loại mạng",
		AttributeNameEN: "Network Type",
	})
	assert.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestCreateAttributeUnknownGroup(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, ResolutionFirstMatch)

	_, err := svc.Create(context.Background(), CreateAttributeRequest{
		AttributeCode:   "network_type",
		AttributeNameVN: "Loại mạng",
		AttributeNameEN: "Network Type",
		Groups:          []string{"nope"},
	})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCatalogForGroupUnknownGroup(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, ResolutionFirstMatch)

	_, err := svc.CatalogForGroup(context.Background(), "nope")
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCatalogForGroupSkipsDeleted(t *testing.T) {
	repo := newMockRepository()
	repo.seedGroup(GroupProduct)
	active := repo.seedAttribute("network_type", "Loại mạng", "Network Type", GroupProduct)
	removed := repo.seedAttribute("old_attr", "Cũ", "Old", GroupProduct)
	deleted := repo.attributes[removed.ID]
	deleted.Status = StatusDeleted
	repo.attributes[removed.ID] = deleted
	svc := NewService(repo, ResolutionFirstMatch)

	catalog, err := svc.CatalogForGroup(context.Background(), GroupProduct)
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	assert.Equal(t, active.AttributeCode, catalog[0].AttributeCode)
}

func TestCatalogForGroupIncludesOptions(t *testing.T) {
	repo := newMockRepository()
	repo.seedGroup(GroupProduct)
	repo.seedAttribute("network_type", "Loại mạng", "Network Type", GroupProduct)
	repo.seedOption("network_type", "4G", "4G")
	repo.seedOption("network_type", "5G", "5G")
	svc := NewService(repo, ResolutionFirstMatch)

	catalog, err := svc.CatalogForGroup(context.Background(), GroupProduct)
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	assert.Len(t, catalog[0].Options, 2)
}

func TestUpdateAttributeSoftDelete(t *testing.T) {
	repo := newMockRepository()
	seeded := repo.seedAttribute("network_type", "Loại mạng", "Network Type")
	svc := NewService(repo, ResolutionFirstMatch)

	deleted := StatusDeleted
	updated, err := svc.Update(context.Background(), seeded.ID, UpdateAttributeRequest{Status: &deleted})
	require.NoError(t, err)
	assert.Equal(t, StatusDeleted, updated.Status)

	// The row survives; only group listings hide it.
	_, err = svc.Get(context.Background(), seeded.ID)
	assert.NoError(t, err)
}

func TestCreateOptionRequiresAttribute(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, ResolutionFirstMatch)

	_, err := svc.CreateOption(context.Background(), CreateOptionRequest{
		AttributeCode:     "ghost",
		AttributeOptionVN: "4G",
		AttributeOptionEN: "4G",
	})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCatalogRepositoryFailure(t *testing.T) {
	repo := newMockRepository()
	repo.seedGroup(GroupProduct)
	repo.seedAttribute("network_type", "Loại mạng", "Network Type", GroupProduct)
	repo.listOptionsError = errors.New("boom")
	svc := NewService(repo, ResolutionFirstMatch)

	_, err := svc.CatalogForGroup(context.Background(), GroupProduct)
	assert.Error(t, err)
}

// gatedRepository parks the first catalog build until released and records
// the context the build ran on.
type gatedRepository struct {
	*mockRepository
	started chan struct{}
	release chan struct{}

	mu       sync.Mutex
	buildCtx context.Context
}

func (g *gatedRepository) GetGroupByName(ctx context.Context, name string) (AttributeGroup, error) {
	g.mu.Lock()
	if g.buildCtx == nil {
		g.buildCtx = ctx
		close(g.started)
	}
	g.mu.Unlock()
	<-g.release
	return g.mockRepository.GetGroupByName(ctx, name)
}

func TestCatalogBuildSurvivesCallerCancel(t *testing.T) {
	inner := newMockRepository()
	inner.seedGroup(GroupProduct)
	inner.seedAttribute("network_type", "Loại mạng", "Network Type", GroupProduct)
	repo := &gatedRepository{
		mockRepository: inner,
		started:        make(chan struct{}),
		release:        make(chan struct{}),
	}
	svc := NewService(repo, ResolutionFirstMatch)

	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() {
		_, err := svc.CatalogForGroup(ctx, GroupProduct)
		errs <- err
	}()

	<-repo.started
	cancel()
	assert.ErrorIs(t, <-errs, context.Canceled)

	repo.mu.Lock()
	buildCtx := repo.buildCtx
	repo.mu.Unlock()
	assert.NoError(t, buildCtx.Err(), "shared build keeps running after the caller gives up")

	close(repo.release)
	catalog, err := svc.CatalogForGroup(context.Background(), GroupProduct)
	require.NoError(t, err)
	assert.Len(t, catalog, 1)
}
