package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buildforge/buildforge/internal/assistant"
	"github.com/buildforge/buildforge/internal/auth"
	"github.com/buildforge/buildforge/internal/codegen"
	"github.com/buildforge/buildforge/internal/component"
	"github.com/buildforge/buildforge/internal/config"
	"github.com/buildforge/buildforge/internal/deploy"
	"github.com/buildforge/buildforge/internal/logging"
	"github.com/buildforge/buildforge/internal/project"
	"github.com/buildforge/buildforge/internal/ratelimit"
	"github.com/buildforge/buildforge/internal/user"
)

// memStore is an in-memory stand-in for the Postgres repositories. It keeps
// the same ownership scoping and component-list bookkeeping the real store
// guarantees.
type memStore struct {
	mu         sync.Mutex
	users      map[string]*user.User
	projects   map[uuid.UUID]*project.Project
	components map[uuid.UUID]*component.Component
}

func newMemStore() *memStore {
	return &memStore{
		users:      make(map[string]*user.User),
		projects:   make(map[uuid.UUID]*project.Project),
		components: make(map[uuid.UUID]*component.Component),
	}
}

func (s *memStore) Create(ctx context.Context, email, passwordHash, name string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.users[email]; exists {
		return nil, user.ErrDuplicateEmail
	}
	u := &user.User{ID: uuid.New(), Email: email, PasswordHash: passwordHash, Name: name}
	s.users[email] = u
	return u, nil
}

func (s *memStore) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	return u, nil
}

// projectStore adapts memStore to project.Store.
type projectStore struct{ *memStore }

func (s projectStore) List(ctx context.Context, userID uuid.UUID) ([]project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []project.Project{}
	for _, p := range s.projects {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s projectStore) Create(ctx context.Context, userID uuid.UUID, name, description string) (*project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	p := &project.Project{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Description: description,
		Components:  []string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.projects[p.ID] = p
	cp := *p
	return &cp, nil
}

func (s projectStore) Get(ctx context.Context, userID, projectID uuid.UUID) (*project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOwned(userID, projectID)
}

// getOwned must be called with the lock held.
func (s projectStore) getOwned(userID, projectID uuid.UUID) (*project.Project, error) {
	p, ok := s.projects[projectID]
	if !ok || p.UserID != userID {
		return nil, project.ErrNotFound
	}
	cp := *p
	cp.Components = append([]string{}, p.Components...)
	return &cp, nil
}

func (s projectStore) Update(ctx context.Context, userID, projectID uuid.UUID, fields project.UpdateFields) (*project.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[projectID]
	if !ok || p.UserID != userID {
		return nil, project.ErrNotFound
	}
	if fields.Name != nil {
		p.Name = *fields.Name
	}
	if fields.Description != nil {
		p.Description = *fields.Description
	}
	p.UpdatedAt = time.Now()
	cp := *p
	return &cp, nil
}

func (s projectStore) Delete(ctx context.Context, userID, projectID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[projectID]
	if !ok || p.UserID != userID {
		return project.ErrNotFound
	}
	for id, c := range s.components {
		if c.ProjectID == projectID {
			delete(s.components, id)
		}
	}
	delete(s.projects, projectID)
	return nil
}

// componentStore adapts memStore to component.Store.
type componentStore struct{ *memStore }

func (s componentStore) Add(ctx context.Context, userID, projectID uuid.UUID, params component.AddParams) (*component.Component, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[projectID]
	if !ok || p.UserID != userID {
		return nil, project.ErrNotFound
	}
	props := params.Properties
	if props == nil {
		props = map[string]any{}
	}
	pos := component.Position{}
	if params.Position != nil {
		pos = *params.Position
	}
	now := time.Now()
	c := &component.Component{
		ID:         uuid.New(),
		ProjectID:  projectID,
		Type:       params.Type,
		Properties: props,
		Content:    params.Content,
		Position:   pos,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	s.components[c.ID] = c
	p.Components = append(p.Components, c.ID.String())
	p.UpdatedAt = now
	cp := *c
	return &cp, nil
}

func (s componentStore) Update(ctx context.Context, userID, projectID, componentID uuid.UUID, fields component.UpdateFields) (*component.Component, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[projectID]
	if !ok || p.UserID != userID {
		return nil, project.ErrNotFound
	}
	c, ok := s.components[componentID]
	if !ok || c.ProjectID != projectID {
		return nil, component.ErrNotFound
	}
	if fields.Properties != nil {
		c.Properties = fields.Properties
	}
	if fields.Content != nil {
		c.Content = *fields.Content
	}
	if fields.Position != nil {
		c.Position = *fields.Position
	}
	c.UpdatedAt = time.Now()
	// The real store bumps the parent timestamp in the same transaction,
	// which is what rolls the codegen cache key.
	p.UpdatedAt = c.UpdatedAt
	cp := *c
	return &cp, nil
}

func (s componentStore) Delete(ctx context.Context, userID, projectID, componentID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[projectID]
	if !ok || p.UserID != userID {
		return project.ErrNotFound
	}
	c, ok := s.components[componentID]
	if !ok || c.ProjectID != projectID {
		return component.ErrNotFound
	}
	delete(s.components, componentID)
	kept := p.Components[:0]
	for _, id := range p.Components {
		if id != componentID.String() {
			kept = append(kept, id)
		}
	}
	p.Components = kept
	p.UpdatedAt = time.Now()
	return nil
}

func (s componentStore) ListByProject(ctx context.Context, userID, projectID uuid.UUID) ([]component.Component, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[projectID]
	if !ok || p.UserID != userID {
		return nil, project.ErrNotFound
	}
	out := []component.Component{}
	for _, c := range s.components {
		if c.ProjectID == projectID {
			out = append(out, *c)
		}
	}
	return out, nil
}

type testServer struct {
	router http.Handler
	store  *memStore
}

func newTestServer(t *testing.T, authLimit int) *testServer {
	t.Helper()

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })

	store := newMemStore()
	logger := logging.NewLogger(false)

	tokenService, err := auth.NewPasetoService([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)

	authService := auth.NewService(store, tokenService, time.Hour)
	rateLimiter := ratelimit.NewLimiterWithConfig(redisClient, authLimit, time.Minute)

	generator, err := codegen.NewGenerator()
	require.NoError(t, err)

	projects := projectStore{store}
	components := componentStore{store}

	handlers := Handlers{
		Auth:      auth.NewHandler(authService, rateLimiter, logger),
		Project:   project.NewHandler(projects, logger),
		Component: component.NewHandler(components, logger),
		Codegen:   codegen.NewHandler(projects, components, generator, codegen.NewCache(redisClient), logger),
		Deploy:    deploy.NewHandler(projects, logger),
		Assistant: assistant.NewHandler(logger),
	}

	cfg := &config.Config{Server: config.ServerConfig{Env: "test"}}
	router := NewRouter(cfg, handlers, auth.NewMiddleware(tokenService), logger)

	return &testServer{router: router, store: store}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dst any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), dst))
}

func (ts *testServer) signup(t *testing.T, email string) string {
	t.Helper()

	rec := ts.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email":    email,
		"password": "password123",
		"name":     "Test User",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp struct {
		AccessToken string `json:"access_token"`
	}
	decodeBody(t, rec, &resp)
	require.NotEmpty(t, resp.AccessToken)
	return resp.AccessToken
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, 100)

	rec := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"api is running"}`, rec.Body.String())
}

func TestAuthFlow(t *testing.T) {
	t.Run("signup returns token and user", func(t *testing.T) {
		ts := newTestServer(t, 100)

		rec := ts.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
			"email":    "alice@example.com",
			"password": "password123",
			"name":     "Alice",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var resp struct {
			Message     string `json:"message"`
			AccessToken string `json:"access_token"`
			User        struct {
				Email string `json:"email"`
				Name  string `json:"name"`
			} `json:"user"`
		}
		decodeBody(t, rec, &resp)
		assert.Equal(t, "User created successfully", resp.Message)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "alice@example.com", resp.User.Email)
		assert.Equal(t, "Alice", resp.User.Name)
	})

	t.Run("duplicate signup conflicts and creates no second user", func(t *testing.T) {
		ts := newTestServer(t, 100)
		ts.signup(t, "bob@example.com")

		rec := ts.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
			"email":    "bob@example.com",
			"password": "otherpassword",
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.JSONEq(t, `{"error":"User already exists"}`, rec.Body.String())
		assert.Len(t, ts.store.users, 1)
	})

	t.Run("signup validates email and password", func(t *testing.T) {
		ts := newTestServer(t, 100)

		rec := ts.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
			"email":    "not-an-email",
			"password": "password123",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = ts.do(t, http.MethodPost, "/api/auth/signup", "", map[string]string{
			"email":    "carol@example.com",
			"password": "short",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("login succeeds with valid credentials", func(t *testing.T) {
		ts := newTestServer(t, 100)
		ts.signup(t, "dave@example.com")

		rec := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "dave@example.com",
			"password": "password123",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Message     string `json:"message"`
			AccessToken string `json:"access_token"`
		}
		decodeBody(t, rec, &resp)
		assert.Equal(t, "Login successful", resp.Message)
		assert.NotEmpty(t, resp.AccessToken)
	})

	t.Run("login rejects wrong password", func(t *testing.T) {
		ts := newTestServer(t, 100)
		ts.signup(t, "erin@example.com")

		rec := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "erin@example.com",
			"password": "wrong-password",
		})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"Invalid credentials"}`, rec.Body.String())
	})

	t.Run("rate limit returns 429", func(t *testing.T) {
		ts := newTestServer(t, 2)

		for i := 0; i < 2; i++ {
			rec := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
				"email":    "nobody@example.com",
				"password": "password123",
			})
			require.Equal(t, http.StatusUnauthorized, rec.Code)
		}

		rec := ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
			"email":    "nobody@example.com",
			"password": "password123",
		})
		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	})
}

func TestAuthMiddleware(t *testing.T) {
	ts := newTestServer(t, 100)

	t.Run("rejects missing token", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/projects", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()
		ts.router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("rejects invalid token", func(t *testing.T) {
		rec := ts.do(t, http.MethodGet, "/api/projects", "v4.local.garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestProjectEndpoints(t *testing.T) {
	t.Run("create applies defaults for empty body", func(t *testing.T) {
		ts := newTestServer(t, 100)
		token := ts.signup(t, "alice@example.com")

		rec := ts.do(t, http.MethodPost, "/api/projects", token, nil)
		require.Equal(t, http.StatusCreated, rec.Code)

		var p project.Project
		decodeBody(t, rec, &p)
		assert.Equal(t, "Untitled Project", p.Name)
		assert.Equal(t, "", p.Description)
		assert.Empty(t, p.Components)
		assert.NotEqual(t, uuid.Nil, p.ID)
	})

	t.Run("create keeps explicit empty name", func(t *testing.T) {
		ts := newTestServer(t, 100)
		token := ts.signup(t, "alice@example.com")

		rec := ts.do(t, http.MethodPost, "/api/projects", token, map[string]string{"name": ""})
		require.Equal(t, http.StatusCreated, rec.Code)

		var p project.Project
		decodeBody(t, rec, &p)
		assert.Equal(t, "", p.Name)
	})

	t.Run("list returns only the caller's projects", func(t *testing.T) {
		ts := newTestServer(t, 100)
		tokenA := ts.signup(t, "alice@example.com")
		tokenB := ts.signup(t, "bob@example.com")

		rec := ts.do(t, http.MethodPost, "/api/projects", tokenA, map[string]string{"name": "A's site"})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = ts.do(t, http.MethodGet, "/api/projects", tokenB, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var projects []project.Project
		decodeBody(t, rec, &projects)
		assert.Empty(t, projects)
	})

	t.Run("get update delete round-trip", func(t *testing.T) {
		ts := newTestServer(t, 100)
		token := ts.signup(t, "alice@example.com")

		rec := ts.do(t, http.MethodPost, "/api/projects", token, map[string]string{"name": "Site", "description": "v1"})
		require.Equal(t, http.StatusCreated, rec.Code)
		var created project.Project
		decodeBody(t, rec, &created)

		rec = ts.do(t, http.MethodGet, "/api/projects/"+created.ID.String(), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		rec = ts.do(t, http.MethodPut, "/api/projects/"+created.ID.String(), token, map[string]string{"name": "Renamed"})
		require.Equal(t, http.StatusOK, rec.Code)
		var updated project.Project
		decodeBody(t, rec, &updated)
		assert.Equal(t, "Renamed", updated.Name)
		assert.Equal(t, "v1", updated.Description, "unset fields keep their value")

		rec = ts.do(t, http.MethodDelete, "/api/projects/"+created.ID.String(), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Project deleted successfully"}`, rec.Body.String())

		rec = ts.do(t, http.MethodGet, "/api/projects/"+created.ID.String(), token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("another user's project is not found", func(t *testing.T) {
		ts := newTestServer(t, 100)
		tokenA := ts.signup(t, "alice@example.com")
		tokenB := ts.signup(t, "bob@example.com")

		rec := ts.do(t, http.MethodPost, "/api/projects", tokenA, nil)
		require.Equal(t, http.StatusCreated, rec.Code)
		var created project.Project
		decodeBody(t, rec, &created)

		rec = ts.do(t, http.MethodGet, "/api/projects/"+created.ID.String(), tokenB, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Project not found"}`, rec.Body.String())
	})

	t.Run("malformed id reads as not found", func(t *testing.T) {
		ts := newTestServer(t, 100)
		token := ts.signup(t, "alice@example.com")

		rec := ts.do(t, http.MethodGet, "/api/projects/not-a-uuid", token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("delete cascades to components", func(t *testing.T) {
		ts := newTestServer(t, 100)
		token := ts.signup(t, "alice@example.com")

		rec := ts.do(t, http.MethodPost, "/api/projects", token, nil)
		require.Equal(t, http.StatusCreated, rec.Code)
		var created project.Project
		decodeBody(t, rec, &created)

		rec = ts.do(t, http.MethodPost, "/api/projects/"+created.ID.String()+"/components", token, map[string]any{
			"type": "header", "content": "Hi",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = ts.do(t, http.MethodDelete, "/api/projects/"+created.ID.String(), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		assert.Empty(t, ts.store.components)
	})
}

func TestComponentEndpoints(t *testing.T) {
	setup := func(t *testing.T) (*testServer, string, project.Project) {
		ts := newTestServer(t, 100)
		token := ts.signup(t, "alice@example.com")

		rec := ts.do(t, http.MethodPost, "/api/projects", token, nil)
		require.Equal(t, http.StatusCreated, rec.Code)
		var p project.Project
		decodeBody(t, rec, &p)
		return ts, token, p
	}

	t.Run("add registers the component on the parent", func(t *testing.T) {
		ts, token, p := setup(t)

		rec := ts.do(t, http.MethodPost, "/api/projects/"+p.ID.String()+"/components", token, map[string]any{
			"type":       "hero",
			"properties": map[string]any{"title": "Big"},
			"position":   map[string]float64{"x": 10, "y": 20},
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		var c component.Component
		decodeBody(t, rec, &c)
		assert.Equal(t, "hero", c.Type)
		assert.Equal(t, p.ID, c.ProjectID)
		assert.Equal(t, 10.0, c.Position.X)

		rec = ts.do(t, http.MethodGet, "/api/projects/"+p.ID.String(), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var parent project.Project
		decodeBody(t, rec, &parent)
		require.Len(t, parent.Components, 1)
		assert.Equal(t, c.ID.String(), parent.Components[0])
	})

	t.Run("add to a missing project is 404", func(t *testing.T) {
		ts, token, _ := setup(t)

		rec := ts.do(t, http.MethodPost, "/api/projects/"+uuid.NewString()+"/components", token, map[string]any{
			"type": "text",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Project not found"}`, rec.Body.String())
	})

	t.Run("update changes only the sent fields", func(t *testing.T) {
		ts, token, p := setup(t)

		rec := ts.do(t, http.MethodPost, "/api/projects/"+p.ID.String()+"/components", token, map[string]any{
			"type": "text", "content": "before",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		var c component.Component
		decodeBody(t, rec, &c)

		rec = ts.do(t, http.MethodPut, "/api/projects/"+p.ID.String()+"/components/"+c.ID.String(), token, map[string]any{
			"content": "after",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var updated component.Component
		decodeBody(t, rec, &updated)
		assert.Equal(t, "after", updated.Content)
		assert.Equal(t, "text", updated.Type)
	})

	t.Run("update of a missing component is 404", func(t *testing.T) {
		ts, token, p := setup(t)

		rec := ts.do(t, http.MethodPut, "/api/projects/"+p.ID.String()+"/components/"+uuid.NewString(), token, map[string]any{
			"content": "x",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.JSONEq(t, `{"error":"Component not found"}`, rec.Body.String())
	})

	t.Run("delete removes the component from the parent list", func(t *testing.T) {
		ts, token, p := setup(t)

		rec := ts.do(t, http.MethodPost, "/api/projects/"+p.ID.String()+"/components", token, map[string]any{
			"type": "form",
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		var c component.Component
		decodeBody(t, rec, &c)

		rec = ts.do(t, http.MethodDelete, "/api/projects/"+p.ID.String()+"/components/"+c.ID.String(), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"message":"Component deleted successfully"}`, rec.Body.String())

		rec = ts.do(t, http.MethodGet, "/api/projects/"+p.ID.String(), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var parent project.Project
		decodeBody(t, rec, &parent)
		assert.Empty(t, parent.Components)
	})
}

func TestGenerateCodeEndpoint(t *testing.T) {
	ts := newTestServer(t, 100)
	token := ts.signup(t, "alice@example.com")

	rec := ts.do(t, http.MethodPost, "/api/projects", token, map[string]string{"name": "Portfolio"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var p project.Project
	decodeBody(t, rec, &p)

	rec = ts.do(t, http.MethodPost, "/api/projects/"+p.ID.String()+"/components", token, map[string]any{
		"type": "header", "content": "My Portfolio",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var header component.Component
	decodeBody(t, rec, &header)

	t.Run("returns full artifact set", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/generate-code", token, map[string]string{"project_id": p.ID.String()})
		require.Equal(t, http.StatusOK, rec.Code)

		var result codegen.Result
		decodeBody(t, rec, &result)
		assert.Contains(t, result.Frontend.HTML, "<h1>My Portfolio</h1>")
		assert.NotEmpty(t, result.Frontend.CSS)
		assert.NotEmpty(t, result.Frontend.JS)
		assert.Contains(t, result.Backend.Go, "Portfolio")
		assert.Contains(t, result.Database.Schema, "CREATE TABLE users")
	})

	t.Run("repeated generation serves the cached result", func(t *testing.T) {
		first := ts.do(t, http.MethodPost, "/api/generate-code", token, map[string]string{"project_id": p.ID.String()})
		require.Equal(t, http.StatusOK, first.Code)

		second := ts.do(t, http.MethodPost, "/api/generate-code", token, map[string]string{"project_id": p.ID.String()})
		require.Equal(t, http.StatusOK, second.Code)
		assert.JSONEq(t, first.Body.String(), second.Body.String())
	})

	t.Run("component update is reflected in the next generation", func(t *testing.T) {
		first := ts.do(t, http.MethodPost, "/api/generate-code", token, map[string]string{"project_id": p.ID.String()})
		require.Equal(t, http.StatusOK, first.Code)

		rec := ts.do(t, http.MethodPut, "/api/projects/"+p.ID.String()+"/components/"+header.ID.String(), token, map[string]any{
			"content": "My Renamed Portfolio",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		second := ts.do(t, http.MethodPost, "/api/generate-code", token, map[string]string{"project_id": p.ID.String()})
		require.Equal(t, http.StatusOK, second.Code)

		var result codegen.Result
		decodeBody(t, second, &result)
		assert.Contains(t, result.Frontend.HTML, "<h1>My Renamed Portfolio</h1>")
		assert.NotContains(t, result.Frontend.HTML, "<h1>My Portfolio</h1>")
	})

	t.Run("unknown project is 404", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/generate-code", token, map[string]string{"project_id": uuid.NewString()})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestDeployEndpoint(t *testing.T) {
	ts := newTestServer(t, 100)
	token := ts.signup(t, "alice@example.com")

	rec := ts.do(t, http.MethodPost, "/api/projects", token, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	var p project.Project
	decodeBody(t, rec, &p)

	t.Run("platform defaults to vercel", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/deploy", token, map[string]string{"project_id": p.ID.String()})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			Status  string `json:"status"`
			Message string `json:"message"`
			URL     string `json:"url"`
		}
		decodeBody(t, rec, &resp)
		assert.Equal(t, "success", resp.Status)
		assert.Equal(t, "Project deployed to vercel successfully", resp.Message)
		assert.Equal(t, fmt.Sprintf("https://%s.vercel.app", p.ID), resp.URL)
	})

	t.Run("explicit platform is echoed", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/deploy", token, map[string]string{
			"project_id": p.ID.String(),
			"platform":   "netlify",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var resp struct {
			URL string `json:"url"`
		}
		decodeBody(t, rec, &resp)
		assert.Equal(t, fmt.Sprintf("https://%s.netlify.app", p.ID), resp.URL)
	})

	t.Run("unknown project is 404", func(t *testing.T) {
		rec := ts.do(t, http.MethodPost, "/api/deploy", token, map[string]string{"project_id": uuid.NewString()})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAssistantEndpoint(t *testing.T) {
	ts := newTestServer(t, 100)
	token := ts.signup(t, "alice@example.com")

	rec := ts.do(t, http.MethodPost, "/api/ai-assistant", token, map[string]string{"prompt": "add a hero section"})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Response string `json:"response"`
	}
	decodeBody(t, rec, &resp)
	assert.Contains(t, resp.Response, "hero section")
}
