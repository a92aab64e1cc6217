package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/contact-api/internal/models"
	"github.com/baharkarakas/contact-api/internal/repository"
)

func ptr(s string) *string { return &s }

func TestUsers(t *testing.T) {
	ctx := context.Background()
	r := NewRepositories(NewStore())

	_, err := r.Users.Create(ctx, models.User{Username: "alice", Name: "Alice", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = r.Users.Create(ctx, models.User{Username: "alice"})
	assert.ErrorIs(t, err, repository.ErrConflict)

	_, err = r.Users.SetToken(ctx, "alice", ptr("tok"))
	require.NoError(t, err)
	u, err := r.Users.GetByToken(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	u, err = r.Users.Update(ctx, "alice", nil, ptr("h2"))
	require.NoError(t, err)
	assert.Equal(t, "Alice", u.Name)
	assert.Equal(t, "h2", u.PasswordHash)

	_, err = r.Users.SetToken(ctx, "alice", nil)
	require.NoError(t, err)
	_, err = r.Users.GetByToken(ctx, "tok")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestContacts_OwnerScopingAndSearch(t *testing.T) {
	ctx := context.Background()
	r := NewRepositories(NewStore())

	bob, err := r.Contacts.Create(ctx, models.Contact{FirstName: "Bob", Username: "alice"})
	require.NoError(t, err)
	_, err = r.Contacts.Create(ctx, models.Contact{FirstName: "Carol", LastName: ptr("Bobson"), Username: "alice"})
	require.NoError(t, err)
	_, err = r.Contacts.Create(ctx, models.Contact{FirstName: "Bobby", Username: "mallory"})
	require.NoError(t, err)

	_, err = r.Contacts.Get(ctx, "mallory", bob.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	f := models.ContactFilter{Name: ptr("bob"), Limit: 1}
	n, err := r.Contacts.Count(ctx, "alice", f)
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	page, err := r.Contacts.Search(ctx, "alice", f)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, bob.ID, page[0].ID)

	f.Offset = 5
	page, err = r.Contacts.Search(ctx, "alice", f)
	require.NoError(t, err)
	assert.Empty(t, page)
}

func TestAddresses_ScopedByContact(t *testing.T) {
	ctx := context.Background()
	r := NewRepositories(NewStore())

	c1, _ := r.Contacts.Create(ctx, models.Contact{FirstName: "A", Username: "alice"})
	c2, _ := r.Contacts.Create(ctx, models.Contact{FirstName: "B", Username: "alice"})

	a, err := r.Addresses.Create(ctx, models.Address{ContactID: c1.ID, Country: "ID", PostalCode: "1"})
	require.NoError(t, err)

	_, err = r.Addresses.Get(ctx, c2.ID, a.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = r.Contacts.Delete(ctx, "alice", c1.ID)
	require.NoError(t, err)
	list, err := r.Addresses.ListByContact(ctx, c1.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStoredRowsDoNotAliasInput(t *testing.T) {
	ctx := context.Background()
	r := NewRepositories(NewStore())

	email := "bob@example.com"
	c, err := r.Contacts.Create(ctx, models.Contact{FirstName: "Bob", Email: &email, Username: "alice"})
	require.NoError(t, err)
	email = "changed@example.com"

	got, err := r.Contacts.Get(ctx, "alice", c.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Email)
	assert.Equal(t, "bob@example.com", *got.Email)

	city := "Bandung"
	a, err := r.Addresses.Create(ctx, models.Address{ContactID: c.ID, City: &city, Country: "Indonesia", PostalCode: "40111"})
	require.NoError(t, err)
	city = "Jakarta"

	gotAddr, err := r.Addresses.Get(ctx, c.ID, a.ID)
	require.NoError(t, err)
	require.NotNil(t, gotAddr.City)
	assert.Equal(t, "Bandung", *gotAddr.City)
}

func TestContacts_Search_NegativeOffset(t *testing.T) {
	ctx := context.Background()
	r := NewRepositories(NewStore())
	_, err := r.Contacts.Create(ctx, models.Contact{FirstName: "Bob", Username: "alice"})
	require.NoError(t, err)

	rows, err := r.Contacts.Search(ctx, "alice", models.ContactFilter{Limit: 10, Offset: -100})
	require.NoError(t, err)
	assert.Empty(t, rows)
}
