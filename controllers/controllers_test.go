package controllers

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"

	"github.com/levy-pm/co-moge-zjesc/chat"
	"github.com/levy-pm/co-moge-zjesc/llm"
	"github.com/levy-pm/co-moge-zjesc/models"
	"github.com/levy-pm/co-moge-zjesc/session"
)

// --- fakes ---

type fakeRecipeStore struct {
	mu      sync.Mutex
	recipes []models.Recipe
	nextID  uint
}

func newFakeRecipeStore(recipes ...models.Recipe) *fakeRecipeStore {
	store := &fakeRecipeStore{nextID: 1}
	for _, r := range recipes {
		if r.ID >= store.nextID {
			store.nextID = r.ID + 1
		}
		store.recipes = append(store.recipes, r)
	}
	return store
}

func (f *fakeRecipeStore) List(_ context.Context) ([]models.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Recipe(nil), f.recipes...), nil
}

func (f *fakeRecipeStore) Get(_ context.Context, id uint) (*models.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.recipes {
		if f.recipes[i].ID == id {
			r := f.recipes[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeRecipeStore) Create(_ context.Context, recipe *models.Recipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	recipe.ID = f.nextID
	f.nextID++
	f.recipes = append(f.recipes, *recipe)
	return nil
}

func (f *fakeRecipeStore) Update(_ context.Context, recipe *models.Recipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.recipes {
		if f.recipes[i].ID == recipe.ID {
			f.recipes[i] = *recipe
			return nil
		}
	}
	return nil
}

func (f *fakeRecipeStore) Delete(_ context.Context, id uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.recipes {
		if f.recipes[i].ID == id {
			f.recipes = append(f.recipes[:i], f.recipes[i+1:]...)
			return nil
		}
	}
	return nil
}

type fakeSink struct {
	rows []models.Feedback
}

func (f *fakeSink) Enqueue(fb models.Feedback) { f.rows = append(f.rows, fb) }

type fakeCompleter struct {
	configured bool
	reply      string
	err        error
	calls      int
}

func (f *fakeCompleter) IsConfigured() bool { return f.configured }

func (f *fakeCompleter) Chat(_ context.Context, _ []llm.Message) (string, error) {
	f.calls++
	return f.reply, f.err
}

type nopSearch struct{}

func (nopSearch) Fragments(_ context.Context, _ string) string { return "" }

type mapSessionStore struct {
	values map[string]any
}

func newMapSessionStore() *mapSessionStore {
	return &mapSessionStore{values: make(map[string]any)}
}

func (m *mapSessionStore) Get(key string) (any, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *mapSessionStore) Set(key string, value any) { m.values[key] = value }

func (m *mapSessionStore) Pop(key string) (any, bool) {
	v, ok := m.values[key]
	delete(m.values, key)
	return v, ok
}

// --- helpers ---

const testAdminPassword = "sekret"

func newTestController(store RecipeStore, completer chat.Completer) (*HomeController, *fakeSink) {
	sink := &fakeSink{}
	machine := chat.NewMachine(chat.NewOrchestrator(store, completer, nopSearch{}))
	// Flashes render into the body so tests can assert on what the
	// visitor actually sees.
	tmpl := template.Must(template.New("home.html").Parse(`{{range .Flashes}}[{{.Level}}:{{.Text}}]{{end}}`))
	checker := PlaintextChecker{Password: testAdminPassword}
	return NewHomeController(store, machine, sink, checker, tmpl), sink
}

func postForm(c *HomeController, sess session.Store, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = req.WithContext(session.NewContext(req.Context(), sess))
	rec := httptest.NewRecorder()
	c.Handle(rec, req)
	return rec
}

func sessionState(sess session.Store) *chat.State {
	v, _ := sess.Get(stateKey)
	state, _ := v.(*chat.State)
	return state
}

func loginAdmin(c *HomeController, sess session.Store) {
	// The login flash is consumed by this request's own render.
	postForm(c, sess, url.Values{"action": {"admin_login"}, "haslo": {testAdminPassword}})
}
