package users

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"log/slog"

	"github.com/stretchr/testify/require"

	"skyvane/internal/auth"
)

type fakeStore struct {
	users  map[string]*auth.User
	nextID int
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: map[string]*auth.User{}}
}

func (f *fakeStore) List(ctx context.Context) ([]auth.User, error) {
	out := []auth.User{}
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (*auth.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	copy := *u
	return &copy, nil
}

func (f *fakeStore) Create(ctx context.Context, username, password string, isAdmin bool) (*auth.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return nil, auth.ErrDuplicateUser
		}
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, err
	}
	f.nextID++
	u := &auth.User{
		ID:           "id-" + strconv.Itoa(f.nextID),
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      isAdmin,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}
	f.users[u.ID] = u
	copy := *u
	return &copy, nil
}

func (f *fakeStore) Update(ctx context.Context, id string, upd auth.UserUpdate) (*auth.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	if upd.Username != nil {
		for otherID, other := range f.users {
			if otherID != id && other.Username == *upd.Username {
				return nil, auth.ErrDuplicateUser
			}
		}
		u.Username = *upd.Username
	}
	if upd.Password != nil {
		hash, err := auth.HashPassword(*upd.Password)
		if err != nil {
			return nil, err
		}
		u.PasswordHash = hash
	}
	if upd.IsAdmin != nil {
		u.IsAdmin = *upd.IsAdmin
	}
	u.UpdatedAt = time.Now().UTC()
	copy := *u
	return &copy, nil
}

func (f *fakeStore) Delete(ctx context.Context, id string) (*auth.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	delete(f.users, id)
	return u, nil
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestList_NeverExposesPasswordHash(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	_, err := store.Create(context.Background(), "alice", "secret", false)
	require.NoError(t, err)
	_, err = store.Create(context.Background(), "bob", "hunter2", true)
	require.NoError(t, err)

	h := &CollectionHandler{Store: store, Logger: testLogger()}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	require.NotContains(t, body, "password")
	require.NotContains(t, body, "$2a$")

	var listed []auth.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listed))
	require.Len(t, listed, 2)
}

func TestCreate_DuplicateLeavesStoreUntouched(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	_, err := store.Create(context.Background(), "alice", "secret", false)
	require.NoError(t, err)

	h := &CollectionHandler{Store: store, Logger: testLogger()}
	req := httptest.NewRequest(http.MethodPost, "/api/users",
		strings.NewReader(`{"username":"alice","password":"other","isAdmin":true}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)
	require.JSONEq(t, `{"error":"user already exists"}`, rec.Body.String())
	require.Len(t, store.users, 1)
}

func TestCreate_MissingFields(t *testing.T) {
	t.Parallel()

	h := &CollectionHandler{Store: newFakeStore(), Logger: testLogger()}
	req := httptest.NewRequest(http.MethodPost, "/api/users",
		strings.NewReader(`{"username":"alice"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDetail_GetUnknown(t *testing.T) {
	t.Parallel()

	h := &DetailHandler{Store: newFakeStore(), Logger: testLogger()}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/nope", nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.JSONEq(t, `{"error":"user not found"}`, rec.Body.String())
}

func TestDetail_PartialUpdateKeepsOtherFields(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	u, err := store.Create(context.Background(), "alice", "secret", false)
	require.NoError(t, err)

	h := &DetailHandler{Store: store, Logger: testLogger()}
	req := httptest.NewRequest(http.MethodPut, "/api/users/"+u.ID,
		strings.NewReader(`{"isAdmin":true}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	got, err := store.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", got.Username)
	require.True(t, got.IsAdmin)
	require.True(t, auth.CheckPassword("secret", got.PasswordHash), "password must survive an unrelated update")
}

func TestDetail_UpdateRehashesSuppliedPassword(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	u, err := store.Create(context.Background(), "alice", "secret", false)
	require.NoError(t, err)

	h := &DetailHandler{Store: store, Logger: testLogger()}
	req := httptest.NewRequest(http.MethodPut, "/api/users/"+u.ID,
		strings.NewReader(`{"password":"rotated"}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	got, err := store.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.True(t, auth.CheckPassword("rotated", got.PasswordHash))
	require.False(t, auth.CheckPassword("secret", got.PasswordHash))
}

func TestDetail_DeleteReturnsIdentityOnly(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	u, err := store.Create(context.Background(), "alice", "secret", true)
	require.NoError(t, err)

	h := &DetailHandler{Store: store, Logger: testLogger()}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/users/"+u.ID, nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Msg  string                 `json:"msg"`
		User map[string]interface{} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	require.Equal(t, "user deleted", payload.Msg)
	require.Equal(t, u.ID, payload.User["id"])
	require.Equal(t, "alice", payload.User["username"])
	require.Equal(t, true, payload.User["isAdmin"])
	require.NotContains(t, payload.User, "createdAt")

	_, err = store.GetByID(context.Background(), u.ID)
	require.ErrorIs(t, err, auth.ErrUserNotFound)
}
