package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Spheriverse04/ServeMee-sub000/internal/domain"
	catalogRepo "github.com/Spheriverse04/ServeMee-sub000/internal/infra/storage/catalog"
	"github.com/Spheriverse04/ServeMee-sub000/internal/service/catalog/models"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/logger"
	"github.com/Spheriverse04/ServeMee-sub000/pkg/ptr"
)

type fakeRepo struct {
	Repository
	services  map[int64]*domain.Service
	filter    catalogRepo.ServiceFilter
	deleted   []int64
	createErr error
}

func (f *fakeRepo) CreateService(_ context.Context, s *domain.Service) (*domain.Service, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	s.ID = int64(len(f.services) + 1)
	cp := *s
	f.services[s.ID] = &cp
	return s, nil
}

func (f *fakeRepo) GetService(_ context.Context, id int64) (*domain.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeRepo) ListServices(_ context.Context, filter catalogRepo.ServiceFilter) ([]*domain.Service, error) {
	f.filter = filter
	return []*domain.Service{}, nil
}

func (f *fakeRepo) UpdateService(_ context.Context, s *domain.Service) error {
	cp := *s
	f.services[s.ID] = &cp
	return nil
}

func (f *fakeRepo) DeleteService(_ context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	delete(f.services, id)
	return nil
}

func (f *fakeRepo) CreateCategory(_ context.Context, c *domain.ServiceCategory) (*domain.ServiceCategory, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	c.ID = 1
	return c, nil
}

var (
	owner    = &domain.Identity{UserID: 30, Role: domain.RoleServiceProvider, ProviderID: ptr.Ptr(int64(3))}
	rival    = &domain.Identity{UserID: 40, Role: domain.RoleServiceProvider, ProviderID: ptr.Ptr(int64(4))}
	noProf   = &domain.Identity{UserID: 50, Role: domain.RoleServiceProvider}
	admin    = &domain.Identity{UserID: 1, Role: domain.RoleAdmin}
	pipeWork = &models.CreateServiceRequest{ServiceTypeID: 2, Name: "Pipe fitting", Price: 499}
)

func newService() (*Service, *fakeRepo) {
	repo := &fakeRepo{services: map[int64]*domain.Service{}}
	return NewService(repo, logger.NewNop()), repo
}

func TestCreateService_OwnerFromIdentity(t *testing.T) {
	svc, _ := newService()

	created, err := svc.CreateService(context.Background(), owner, pipeWork)
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ServiceProviderID)
	assert.True(t, created.IsActive)

	_, err = svc.CreateService(context.Background(), noProf, pipeWork)
	assert.ErrorIs(t, err, ErrProviderProfileRequired)

	_, err = svc.CreateService(context.Background(), admin, pipeWork)
	assert.ErrorIs(t, err, ErrInvalidInput)

	byAdmin, err := svc.CreateService(context.Background(), admin, &models.CreateServiceRequest{
		ServiceProviderID: ptr.Ptr(int64(4)), ServiceTypeID: 2, Name: "Drain cleaning", Price: 300,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), byAdmin.ServiceProviderID)
}

func TestCreateService_Validation(t *testing.T) {
	svc, _ := newService()
	ctx := context.Background()

	_, err := svc.CreateService(ctx, owner, &models.CreateServiceRequest{ServiceTypeID: 2, Name: "x", Price: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateService(ctx, owner, &models.CreateServiceRequest{ServiceTypeID: 2, Name: "x", DurationMinutes: ptr.Ptr(0)})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateService(ctx, owner, &models.CreateServiceRequest{Name: "x"})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateService_Ownership(t *testing.T) {
	tests := []struct {
		name     string
		identity *domain.Identity
		wantErr  error
	}{
		{name: "owner", identity: owner},
		{name: "admin", identity: admin},
		{name: "other provider", identity: rival, wantErr: ErrAccessDenied},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService()
			created, err := svc.CreateService(context.Background(), owner, pipeWork)
			require.NoError(t, err)

			updated, err := svc.UpdateService(context.Background(), created.ID, tt.identity, &models.UpdateServiceRequest{
				Price:    ptr.Ptr(650.0),
				IsActive: ptr.Ptr(false),
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, 499.0, repo.services[created.ID].Price)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 650.0, updated.Price)
			assert.False(t, updated.IsActive)
			assert.Equal(t, "Pipe fitting", updated.Name)
		})
	}
}

func TestDeleteService(t *testing.T) {
	svc, repo := newService()
	created, err := svc.CreateService(context.Background(), owner, pipeWork)
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteService(context.Background(), created.ID, rival), ErrAccessDenied)
	assert.Empty(t, repo.deleted)

	require.NoError(t, svc.DeleteService(context.Background(), created.ID, owner))
	assert.Equal(t, []int64{created.ID}, repo.deleted)

	assert.ErrorIs(t, svc.DeleteService(context.Background(), created.ID, owner), ErrNotFound)
}

func TestListServices_PassesFilter(t *testing.T) {
	svc, repo := newService()

	_, err := svc.ListServices(context.Background(), &models.ListServicesRequest{
		ServiceTypeID: ptr.Ptr(int64(2)),
		OnlyActive:    true,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), *repo.filter.ServiceTypeID)
	assert.Nil(t, repo.filter.ServiceProviderID)
	assert.True(t, repo.filter.OnlyActive)
}

func TestCreateCategory_Conflict(t *testing.T) {
	svc, repo := newService()
	repo.createErr = catalogRepo.ErrAlreadyExists

	_, err := svc.CreateCategory(context.Background(), &models.CategoryRequest{Name: "Plumbing"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	_, err = svc.CreateCategory(context.Background(), &models.CategoryRequest{Name: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
