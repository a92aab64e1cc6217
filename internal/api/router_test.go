package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/baharkarakas/contact-api/internal/auth"
	"github.com/baharkarakas/contact-api/internal/config"
	"github.com/baharkarakas/contact-api/internal/metrics"
	"github.com/baharkarakas/contact-api/internal/repository/memory"
	"github.com/baharkarakas/contact-api/internal/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	repos := memory.NewRepositories(memory.NewStore())
	cs := services.NewContactService(repos.Contacts, nil)
	h := NewRouter(RouterDeps{
		Cfg:        config.Config{CORSOrigins: []string{"*"}},
		UserSvc:    services.NewUserService(repos.Users, auth.NewHasher(bcrypt.MinCost), nil),
		ContactSvc: cs,
		AddressSvc: services.NewAddressService(repos.Addresses, cs, nil),
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}

type response struct {
	Status int
	Data   json.RawMessage
	Paging map[string]int
	Errors *struct {
		Message string `json:"message"`
		Code    string `json:"code"`
	}
}

func do(t *testing.T, srv *httptest.Server, method, path, token, body string) response {
	t.Helper()
	req, err := http.NewRequest(method, srv.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("X-API-TOKEN", token)
	}
	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	out := response{Status: res.StatusCode}
	if strings.HasPrefix(res.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.NewDecoder(res.Body).Decode(&out))
	}
	return out
}

func field(t *testing.T, raw json.RawMessage, name string) any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	return m[name]
}

func login(t *testing.T, srv *httptest.Server, username string) string {
	t.Helper()
	res := do(t, srv, http.MethodPost, "/api/users", "", fmt.Sprintf(`{"username":%q,"password":"password1","name":"N"}`, username))
	require.Equal(t, http.StatusCreated, res.Status)
	res = do(t, srv, http.MethodPost, "/api/users/login", "", fmt.Sprintf(`{"username":%q,"password":"password1"}`, username))
	require.Equal(t, http.StatusCreated, res.Status)
	token, _ := field(t, res.Data, "token").(string)
	require.NotEmpty(t, token)
	return token
}

func TestUserLifecycle(t *testing.T) {
	srv := newTestServer(t)

	res := do(t, srv, http.MethodPost, "/api/users", "", `{"username":"alice","password":"password1","name":"Alice"}`)
	require.Equal(t, http.StatusCreated, res.Status)
	assert.JSONEq(t, `{"username":"alice","name":"Alice"}`, string(res.Data))

	res = do(t, srv, http.MethodPost, "/api/users", "", `{"username":"alice","password":"password1","name":"Alice"}`)
	assert.Equal(t, http.StatusConflict, res.Status)
	require.NotNil(t, res.Errors)
	assert.Equal(t, "Username already exists", res.Errors.Message)

	res = do(t, srv, http.MethodPost, "/api/users/login", "", `{"username":"alice","password":"password1"}`)
	require.Equal(t, http.StatusCreated, res.Status)
	token := field(t, res.Data, "token").(string)

	res = do(t, srv, http.MethodGet, "/api/users/current", token, "")
	require.Equal(t, http.StatusOK, res.Status)
	assert.JSONEq(t, `{"username":"alice","name":"Alice"}`, string(res.Data))

	res = do(t, srv, http.MethodPatch, "/api/users/current", token, `{"name":"Alicia"}`)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Alicia", field(t, res.Data, "name"))

	res = do(t, srv, http.MethodGet, "/api/users/current", "wrong", "")
	assert.Equal(t, http.StatusUnauthorized, res.Status)

	res = do(t, srv, http.MethodDelete, "/api/users/current", token, "")
	require.Equal(t, http.StatusOK, res.Status)
	assert.JSONEq(t, `"OK"`, string(res.Data))

	res = do(t, srv, http.MethodGet, "/api/users/current", token, "")
	assert.Equal(t, http.StatusUnauthorized, res.Status)
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	srv := newTestServer(t)
	login(t, srv, "alice")

	wrong := do(t, srv, http.MethodPost, "/api/users/login", "", `{"username":"alice","password":"password2"}`)
	unknown := do(t, srv, http.MethodPost, "/api/users/login", "", `{"username":"nobody","password":"password1"}`)

	assert.Equal(t, http.StatusUnauthorized, wrong.Status)
	assert.Equal(t, wrong.Status, unknown.Status)
	assert.Equal(t, wrong.Errors, unknown.Errors)
}

func TestBadRequests(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "alice")

	res := do(t, srv, http.MethodPost, "/api/users", "", `{"username":`)
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = do(t, srv, http.MethodPost, "/api/users", "", `{"username":"","password":"","name":""}`)
	assert.Equal(t, http.StatusBadRequest, res.Status)
	require.NotNil(t, res.Errors)
	assert.Equal(t, "validation_error", res.Errors.Code)

	res = do(t, srv, http.MethodGet, "/api/contacts/abc", token, "")
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = do(t, srv, http.MethodGet, "/api/contacts/0", token, "")
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = do(t, srv, http.MethodGet, "/api/contacts?page=x", token, "")
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = do(t, srv, http.MethodGet, "/api/contacts?size=1000", token, "")
	assert.Equal(t, http.StatusBadRequest, res.Status)

	res = do(t, srv, http.MethodPost, "/api/users/login", "", `{"username":"alice","password":"password1"}{}`)
	assert.Equal(t, http.StatusBadRequest, res.Status)
}

func TestSearch_HugePageIsEmpty(t *testing.T) {
	srv := newTestServer(t)
	token := login(t, srv, "alice")
	res := do(t, srv, http.MethodPost, "/api/contacts", token, `{"firstName":"Bob"}`)
	require.Equal(t, http.StatusCreated, res.Status)

	res = do(t, srv, http.MethodGet, "/api/contacts?page=100000000000000000&size=100", token, "")
	require.Equal(t, http.StatusOK, res.Status)
	assert.JSONEq(t, `[]`, string(res.Data))
	assert.Equal(t, 1, res.Paging["totalPages"])
	assert.Equal(t, 100, res.Paging["size"])
}

func TestPanicIsCountedInMetrics(t *testing.T) {
	repos := memory.NewRepositories(memory.NewStore())
	cs := services.NewContactService(repos.Contacts, nil)
	h := NewRouter(RouterDeps{
		UserSvc:    services.NewUserService(repos.Users, auth.NewHasher(bcrypt.MinCost), nil),
		ContactSvc: cs,
		AddressSvc: services.NewAddressService(repos.Addresses, cs, nil),
	})
	h.(chi.Router).Get("/boom", func(http.ResponseWriter, *http.Request) { panic("boom") })

	counter := metrics.RequestsTotal.WithLabelValues("/boom", http.MethodGet, "500")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestContactsAndAddresses(t *testing.T) {
	srv := newTestServer(t)
	alice := login(t, srv, "alice")
	mallory := login(t, srv, "mallory")

	res := do(t, srv, http.MethodPost, "/api/contacts", alice, `{"firstName":"Bob","email":"bob@example.com"}`)
	require.Equal(t, http.StatusCreated, res.Status)
	contactID := int64(field(t, res.Data, "id").(float64))
	assert.Nil(t, field(t, res.Data, "lastName"))

	path := fmt.Sprintf("/api/contacts/%d", contactID)

	res = do(t, srv, http.MethodGet, path, mallory, "")
	assert.Equal(t, http.StatusNotFound, res.Status)
	require.NotNil(t, res.Errors)
	assert.Equal(t, "Contact is not found", res.Errors.Message)

	res = do(t, srv, http.MethodGet, "/api/contacts?name=Bo", alice, "")
	require.Equal(t, http.StatusOK, res.Status)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(res.Data, &list))
	assert.Len(t, list, 1)
	assert.Equal(t, map[string]int{"currentPage": 1, "size": 10, "totalPages": 1}, res.Paging)

	res = do(t, srv, http.MethodGet, "/api/contacts?name=Bo", mallory, "")
	require.Equal(t, http.StatusOK, res.Status)
	assert.JSONEq(t, `[]`, string(res.Data))
	assert.Equal(t, 0, res.Paging["totalPages"])

	res = do(t, srv, http.MethodPut, path, alice, `{"firstName":"Robert","phone":"0812"}`)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Robert", field(t, res.Data, "firstName"))
	assert.Nil(t, field(t, res.Data, "email"))

	res = do(t, srv, http.MethodPost, path+"/addresses", alice, `{"city":"Bandung","country":"Indonesia","postalCode":"40111"}`)
	require.Equal(t, http.StatusCreated, res.Status)
	addressID := int64(field(t, res.Data, "id").(float64))
	addrPath := fmt.Sprintf("%s/addresses/%d", path, addressID)

	res = do(t, srv, http.MethodGet, path+"/addresses", alice, "")
	require.Equal(t, http.StatusOK, res.Status)
	require.NoError(t, json.Unmarshal(res.Data, &list))
	assert.Len(t, list, 1)

	res = do(t, srv, http.MethodGet, addrPath, mallory, "")
	assert.Equal(t, http.StatusNotFound, res.Status)

	res = do(t, srv, http.MethodPost, "/api/contacts", alice, `{"firstName":"Other"}`)
	require.Equal(t, http.StatusCreated, res.Status)
	otherID := int64(field(t, res.Data, "id").(float64))

	res = do(t, srv, http.MethodGet, fmt.Sprintf("/api/contacts/%d/addresses/%d", otherID, addressID), alice, "")
	assert.Equal(t, http.StatusNotFound, res.Status)
	require.NotNil(t, res.Errors)
	assert.Equal(t, "Address is not found", res.Errors.Message)

	res = do(t, srv, http.MethodPut, addrPath, alice, `{"street":"Jl. Merdeka","country":"Indonesia","postalCode":"40112"}`)
	require.Equal(t, http.StatusOK, res.Status)
	assert.Equal(t, "Jl. Merdeka", field(t, res.Data, "street"))
	assert.Nil(t, field(t, res.Data, "city"))

	res = do(t, srv, http.MethodDelete, addrPath, alice, "")
	require.Equal(t, http.StatusOK, res.Status)
	assert.JSONEq(t, `"OK"`, string(res.Data))

	res = do(t, srv, http.MethodGet, addrPath, alice, "")
	assert.Equal(t, http.StatusNotFound, res.Status)

	res = do(t, srv, http.MethodDelete, path, alice, "")
	require.Equal(t, http.StatusOK, res.Status)

	res = do(t, srv, http.MethodGet, path, alice, "")
	assert.Equal(t, http.StatusNotFound, res.Status)
}

func TestRequiresToken(t *testing.T) {
	srv := newTestServer(t)
	for _, p := range []string{"/api/users/current", "/api/contacts", "/api/contacts/1", "/api/contacts/1/addresses"} {
		res := do(t, srv, http.MethodGet, p, "", "")
		assert.Equal(t, http.StatusUnauthorized, res.Status, p)
	}
}

func TestHealthAndMetrics(t *testing.T) {
	srv := newTestServer(t)

	res, err := srv.Client().Get(srv.URL + "/health")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get("X-Request-Id"))

	res, err = srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
