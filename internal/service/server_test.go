package service

import (
	"testing"

	"concord/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memberKey struct {
	serverID uint
	userID   uint
}

type fakeServerRepo struct {
	servers map[uint]*model.Server
	members map[memberKey]bool
}

func newFakeServerRepo() *fakeServerRepo {
	return &fakeServerRepo{
		servers: make(map[uint]*model.Server),
		members: make(map[memberKey]bool),
	}
}

func (f *fakeServerRepo) Create(server *model.Server) error {
	server.ID = uint(len(f.servers) + 1)
	f.servers[server.ID] = server
	return nil
}

func (f *fakeServerRepo) FindByID(id uint) (*model.Server, error) {
	server, ok := f.servers[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return server, nil
}

func (f *fakeServerRepo) ListForUser(userID uint) ([]model.Server, error) {
	var out []model.Server
	for _, s := range f.servers {
		if f.members[memberKey{s.ID, userID}] {
			out = append(out, *s)
		}
	}
	return out, nil
}

func (f *fakeServerRepo) AddMember(serverID, userID uint) error {
	f.members[memberKey{serverID, userID}] = true
	return nil
}

func (f *fakeServerRepo) IsMember(serverID, userID uint) (bool, error) {
	return f.members[memberKey{serverID, userID}], nil
}

func TestCreateServerMakesOwnerAMember(t *testing.T) {
	repo := newFakeServerRepo()
	svc := NewServerService(repo)

	server := &model.Server{Name: "Test Server", OwnerID: 7}
	require.NoError(t, svc.CreateServer(server))

	member, err := svc.IsMember(server.ID, 7)
	require.NoError(t, err)
	assert.True(t, member)
}

func TestCreateServerValidation(t *testing.T) {
	svc := NewServerService(newFakeServerRepo())

	assert.Error(t, svc.CreateServer(nil))
	assert.Error(t, svc.CreateServer(&model.Server{Name: "  ", OwnerID: 1}))
	assert.Error(t, svc.CreateServer(&model.Server{Name: "no owner"}))
}

func TestListServersFiltersByMembership(t *testing.T) {
	repo := newFakeServerRepo()
	svc := NewServerService(repo)

	mine := &model.Server{Name: "mine", OwnerID: 1}
	require.NoError(t, svc.CreateServer(mine))

	other := &model.Server{Name: "other", OwnerID: 2}
	require.NoError(t, svc.CreateServer(other))

	servers, err := svc.ListServersForUser(1)
	require.NoError(t, err)

	require.Len(t, servers, 1)
	assert.Equal(t, "mine", servers[0].Name)
}

func TestIsMemberRejectsNonMember(t *testing.T) {
	repo := newFakeServerRepo()
	svc := NewServerService(repo)

	server := &model.Server{Name: "closed", OwnerID: 1}
	require.NoError(t, svc.CreateServer(server))

	member, err := svc.IsMember(server.ID, 99)
	require.NoError(t, err)
	assert.False(t, member)

	require.NoError(t, svc.AddMember(server.ID, 99))

	member, err = svc.IsMember(server.ID, 99)
	require.NoError(t, err)
	assert.True(t, member)
}
