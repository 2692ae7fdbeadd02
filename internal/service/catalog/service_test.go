package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/HMS-ReservationService/internal/domain"
	catalogRepo "github.com/m04kA/HMS-ReservationService/internal/infra/storage/catalog"
	"github.com/m04kA/HMS-ReservationService/internal/service/catalog/models"
	"github.com/m04kA/HMS-ReservationService/pkg/ptr"
)

type fakeRepo struct {
	resources map[uuid.UUID]*domain.Resource
	upserted  *domain.Resource
	deletedID *uuid.UUID
}

func (f *fakeRepo) List(_ context.Context, resourceType domain.ResourceType) ([]*domain.Resource, error) {
	var out []*domain.Resource
	for _, r := range f.resources {
		if r.Type == resourceType {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Resource, error) {
	r, ok := f.resources[id]
	if !ok {
		return nil, catalogRepo.ErrResourceNotFound
	}
	return r, nil
}

func (f *fakeRepo) Upsert(_ context.Context, resource *domain.Resource) (*domain.Resource, error) {
	if resource.ID == uuid.Nil {
		resource.ID = uuid.New()
	} else if _, ok := f.resources[resource.ID]; !ok {
		return nil, catalogRepo.ErrResourceNotFound
	}
	f.upserted = resource
	return resource, nil
}

func (f *fakeRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := f.resources[id]; !ok {
		return catalogRepo.ErrResourceNotFound
	}
	f.deletedID = &id
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var admin = domain.AdminContext{UserID: 1}

func TestList(t *testing.T) {
	roomID := uuid.New()
	repo := &fakeRepo{resources: map[uuid.UUID]*domain.Resource{
		roomID: {ID: roomID, Type: domain.ResourceRoom, Name: "Suite", TotalInventory: 2, Capacity: 4, Price: 250},
	}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.List(context.Background(), "room")
	require.NoError(t, err)
	require.Len(t, resp.Resources, 1)
	assert.Equal(t, "Suite", resp.Resources[0].Name)

	resp, err = svc.List(context.Background(), "meal")
	require.NoError(t, err)
	assert.Empty(t, resp.Resources)

	_, err = svc.List(context.Background(), "penthouse")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpsert_Create(t *testing.T) {
	repo := &fakeRepo{resources: map[uuid.UUID]*domain.Resource{}}
	svc := NewService(repo, nopLogger{})

	resp, err := svc.Upsert(context.Background(), admin, &models.UpsertResourceRequest{
		Type:           "activity",
		Name:           "Yoga class",
		Price:          15,
		Capacity:       1,
		TotalInventory: 12,
		StartTime:      ptr.Ptr("09:00"),
		EndTime:        ptr.Ptr("10:30"),
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.ID)
	require.NotNil(t, resp.StartTime)
	assert.Equal(t, "09:00", *resp.StartTime)
	require.NotNil(t, repo.upserted)
	assert.Equal(t, domain.ResourceActivity, repo.upserted.Type)
}

func TestUpsert_ValidationErrors(t *testing.T) {
	svc := NewService(&fakeRepo{resources: map[uuid.UUID]*domain.Resource{}}, nopLogger{})

	cases := []struct {
		name string
		req  *models.UpsertResourceRequest
	}{
		{"unknown type", &models.UpsertResourceRequest{Type: "penthouse", Name: "X", Capacity: 1, TotalInventory: 1}},
		{"empty name", &models.UpsertResourceRequest{Type: "room", Capacity: 1, TotalInventory: 1}},
		{"negative inventory", &models.UpsertResourceRequest{Type: "room", Name: "X", Capacity: 1, TotalInventory: -1}},
		{"negative price", &models.UpsertResourceRequest{Type: "room", Name: "X", Capacity: 1, TotalInventory: 1, Price: -5}},
		{"bad time format", &models.UpsertResourceRequest{Type: "activity", Name: "X", Capacity: 1, TotalInventory: 1,
			StartTime: ptr.Ptr("morning")}},
		{"end before start", &models.UpsertResourceRequest{Type: "activity", Name: "X", Capacity: 1, TotalInventory: 1,
			StartTime: ptr.Ptr("12:00"), EndTime: ptr.Ptr("11:00")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Upsert(context.Background(), admin, tc.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestUpsert_UpdateMissing(t *testing.T) {
	svc := NewService(&fakeRepo{resources: map[uuid.UUID]*domain.Resource{}}, nopLogger{})

	_, err := svc.Upsert(context.Background(), admin, &models.UpsertResourceRequest{
		ID:             ptr.Ptr(uuid.New()),
		Type:           "room",
		Name:           "Suite",
		Capacity:       2,
		TotalInventory: 1,
	})
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestDelete(t *testing.T) {
	id := uuid.New()
	repo := &fakeRepo{resources: map[uuid.UUID]*domain.Resource{
		id: {ID: id, Type: domain.ResourceRoom, Name: "Suite", TotalInventory: 2, Capacity: 4, Price: 250},
	}}
	svc := NewService(repo, nopLogger{})

	require.NoError(t, svc.Delete(context.Background(), admin, id))
	require.NotNil(t, repo.deletedID)
	assert.Equal(t, id, *repo.deletedID)

	assert.ErrorIs(t, svc.Delete(context.Background(), admin, uuid.New()), ErrResourceNotFound)
}
