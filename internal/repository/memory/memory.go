// Package memory implements the repository interfaces on top of in-process maps.
// It backs STORAGE=memory runs and the service and router tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/baharkarakas/contact-api/internal/models"
	repo "github.com/baharkarakas/contact-api/internal/repository"
)

type Store struct {
	mu        sync.RWMutex
	users     map[string]models.User
	contacts  map[int64]models.Contact
	addresses map[int64]models.Address
	audit     []models.AuditLog
	nextID    int64
}

func NewStore() *Store {
	return &Store{
		users:     map[string]models.User{},
		contacts:  map[int64]models.Contact{},
		addresses: map[int64]models.Address{},
	}
}

func NewRepositories(s *Store) repo.Repositories {
	return repo.Repositories{
		Users:     (*users)(s),
		Contacts:  (*contacts)(s),
		Addresses: (*addresses)(s),
		AuditLogs: (*auditLogs)(s),
	}
}

// AuditLogs returns a copy of everything written so far.
func (s *Store) AuditLogs() []models.AuditLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.AuditLog(nil), s.audit...)
}

func (s *Store) id() int64 {
	s.nextID++
	return s.nextID
}

func clone(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func notFound(op string) error { return fmt.Errorf("%s: %w", op, repo.ErrNotFound) }

// ---------- users ----------

type users Store

func (u *users) Create(_ context.Context, in models.User) (models.User, error) {
	s := (*Store)(u)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[in.Username]; ok {
		return models.User{}, fmt.Errorf("create user: %w", repo.ErrConflict)
	}
	in.Token = nil
	s.users[in.Username] = in
	return in, nil
}

func (u *users) CountByUsername(_ context.Context, username string) (int64, error) {
	s := (*Store)(u)
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.users[username]; ok {
		return 1, nil
	}
	return 0, nil
}

func (u *users) GetByUsername(_ context.Context, username string) (models.User, error) {
	s := (*Store)(u)
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.users[username]
	if !ok {
		return models.User{}, notFound("get user")
	}
	return v, nil
}

func (u *users) GetByToken(_ context.Context, token string) (models.User, error) {
	s := (*Store)(u)
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, v := range s.users {
		if v.Token != nil && *v.Token == token {
			return v, nil
		}
	}
	return models.User{}, notFound("get user by token")
}

func (u *users) Update(_ context.Context, username string, name, passwordHash *string) (models.User, error) {
	s := (*Store)(u)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.users[username]
	if !ok {
		return models.User{}, notFound("update user")
	}
	if name != nil {
		v.Name = *name
	}
	if passwordHash != nil {
		v.PasswordHash = *passwordHash
	}
	s.users[username] = v
	return v, nil
}

func (u *users) SetToken(_ context.Context, username string, token *string) (models.User, error) {
	s := (*Store)(u)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.users[username]
	if !ok {
		return models.User{}, notFound("set token")
	}
	v.Token = clone(token)
	s.users[username] = v
	return v, nil
}

// ---------- contacts ----------

type contacts Store

func (c *contacts) Create(_ context.Context, in models.Contact) (models.Contact, error) {
	s := (*Store)(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	in.ID = s.id()
	in.LastName, in.Email, in.Phone = clone(in.LastName), clone(in.Email), clone(in.Phone)
	s.contacts[in.ID] = in
	return in, nil
}

func (c *contacts) Get(_ context.Context, username string, id int64) (models.Contact, error) {
	s := (*Store)(c)
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.contacts[id]
	if !ok || v.Username != username {
		return models.Contact{}, notFound("get contact")
	}
	return v, nil
}

func (c *contacts) Update(_ context.Context, in models.Contact) (models.Contact, error) {
	s := (*Store)(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.contacts[in.ID]
	if !ok || v.Username != in.Username {
		return models.Contact{}, notFound("update contact")
	}
	in.LastName, in.Email, in.Phone = clone(in.LastName), clone(in.Email), clone(in.Phone)
	s.contacts[in.ID] = in
	return in, nil
}

func (c *contacts) Delete(_ context.Context, username string, id int64) (models.Contact, error) {
	s := (*Store)(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.contacts[id]
	if !ok || v.Username != username {
		return models.Contact{}, notFound("delete contact")
	}
	delete(s.contacts, id)
	for aid, a := range s.addresses {
		if a.ContactID == id {
			delete(s.addresses, aid)
		}
	}
	return v, nil
}

func (c *contacts) matching(username string, f models.ContactFilter) []models.Contact {
	s := (*Store)(c)
	var out []models.Contact
	for _, v := range s.contacts {
		if v.Username != username {
			continue
		}
		if f.Name != nil && !contains(&v.FirstName, *f.Name) && !contains(v.LastName, *f.Name) {
			continue
		}
		if f.Email != nil && !contains(v.Email, *f.Email) {
			continue
		}
		if f.Phone != nil && !contains(v.Phone, *f.Phone) {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func contains(field *string, sub string) bool {
	if field == nil {
		return false
	}
	return strings.Contains(strings.ToLower(*field), strings.ToLower(sub))
}

func (c *contacts) Search(_ context.Context, username string, f models.ContactFilter) ([]models.Contact, error) {
	s := (*Store)(c)
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := c.matching(username, f)
	out := []models.Contact{}
	if f.Offset < 0 || f.Offset >= len(all) {
		return out, nil
	}
	end := f.Offset + f.Limit
	if end > len(all) {
		end = len(all)
	}
	return append(out, all[f.Offset:end]...), nil
}

func (c *contacts) Count(_ context.Context, username string, f models.ContactFilter) (int64, error) {
	s := (*Store)(c)
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(c.matching(username, f))), nil
}

// ---------- addresses ----------

type addresses Store

func (a *addresses) Create(_ context.Context, in models.Address) (models.Address, error) {
	s := (*Store)(a)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.contacts[in.ContactID]; !ok {
		return models.Address{}, fmt.Errorf("create address: missing contact %d", in.ContactID)
	}
	in.ID = s.id()
	in.Street, in.City, in.Province = clone(in.Street), clone(in.City), clone(in.Province)
	s.addresses[in.ID] = in
	return in, nil
}

func (a *addresses) Get(_ context.Context, contactID, id int64) (models.Address, error) {
	s := (*Store)(a)
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.addresses[id]
	if !ok || v.ContactID != contactID {
		return models.Address{}, notFound("get address")
	}
	return v, nil
}

func (a *addresses) Update(_ context.Context, in models.Address) (models.Address, error) {
	s := (*Store)(a)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.addresses[in.ID]
	if !ok || v.ContactID != in.ContactID {
		return models.Address{}, notFound("update address")
	}
	in.Street, in.City, in.Province = clone(in.Street), clone(in.City), clone(in.Province)
	s.addresses[in.ID] = in
	return in, nil
}

func (a *addresses) Delete(_ context.Context, contactID, id int64) (models.Address, error) {
	s := (*Store)(a)
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.addresses[id]
	if !ok || v.ContactID != contactID {
		return models.Address{}, notFound("delete address")
	}
	delete(s.addresses, id)
	return v, nil
}

func (a *addresses) ListByContact(_ context.Context, contactID int64) ([]models.Address, error) {
	s := (*Store)(a)
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Address{}
	for _, v := range s.addresses {
		if v.ContactID == contactID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// ---------- audit ----------

type auditLogs Store

func (l *auditLogs) Create(_ context.Context, in models.AuditLog) error {
	s := (*Store)(l)
	s.mu.Lock()
	defer s.mu.Unlock()
	in.ID = s.id()
	s.audit = append(s.audit, in)
	return nil
}
