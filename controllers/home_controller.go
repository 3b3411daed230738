package controllers

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/levy-pm/co-moge-zjesc/chat"
	"github.com/levy-pm/co-moge-zjesc/llm"
	"github.com/levy-pm/co-moge-zjesc/logger"
	"github.com/levy-pm/co-moge-zjesc/models"
	"github.com/levy-pm/co-moge-zjesc/session"
)

const stateKey = "chat_state"

// Visitor-facing error texts.
const (
	flashNoAPIKey    = "Brak skonfigurowanego klucza API — zapytaj administratora o LLM_API_KEY."
	flashKitchenOops = "Ups! Kucharzowi upadł talerz. Spróbuj jeszcze raz."
)

// RecipeStore is everything the page needs from the recipe table.
type RecipeStore interface {
	List(ctx context.Context) ([]models.Recipe, error)
	Get(ctx context.Context, id uint) (*models.Recipe, error)
	Create(ctx context.Context, recipe *models.Recipe) error
	Update(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, id uint) error
}

// FeedbackSink receives telemetry rows; persistence happens off the
// request path.
type FeedbackSink interface {
	Enqueue(fb models.Feedback)
}

// HomeController serves GET/POST /: the chat flow and the admin panel,
// selected by the form's action field.
type HomeController struct {
	store    RecipeStore
	machine  *chat.Machine
	feedback FeedbackSink
	checker  CredentialChecker
	tmpl     *template.Template
}

func NewHomeController(store RecipeStore, machine *chat.Machine, feedback FeedbackSink, checker CredentialChecker, tmpl *template.Template) *HomeController {
	return &HomeController{
		store:    store,
		machine:  machine,
		feedback: feedback,
		checker:  checker,
		tmpl:     tmpl,
	}
}

type pageData struct {
	Recipes         []models.Recipe
	Messages        []chat.Message
	PendingOptions  []chat.Option
	Selected        *chat.SelectionDetail
	Flashes         []session.Flash
	AdminMode       bool
	AdminLoggedIn   bool
	ConfirmDeleteID uint
}

// Handle processes one visitor action and renders the page.
func (c *HomeController) Handle(w http.ResponseWriter, r *http.Request) {
	sess := session.FromContext(r.Context())
	if sess == nil {
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}
	state := loadState(sess)

	if r.Method == http.MethodPost {
		if err := r.ParseForm(); err == nil {
			c.dispatch(r, sess, state)
		}
		saveState(sess, state)
	}

	c.render(w, r, sess, state)
}

func (c *HomeController) dispatch(r *http.Request, sess session.Store, state *chat.State) {
	action := r.FormValue("action")
	switch action {
	case "chat_prompt":
		c.handleChatPrompt(r, sess, state)
	case "choose_option":
		c.handleChooseOption(r, state)
	case "reject_options":
		c.handleRejectOptions(state)
	case "back_to_search":
		c.machine.BackToSearch(state)
	case "admin_login", "admin_logout", "admin_add", "admin_save",
		"admin_delete_request", "admin_delete_confirm", "admin_delete_cancel":
		c.dispatchAdmin(r, sess, state, action)
	default:
		logger.Debug("Unknown form action", zap.String("action", action))
	}
}

func (c *HomeController) handleChatPrompt(r *http.Request, sess session.Store, state *chat.State) {
	text := strings.TrimSpace(r.FormValue("pytanie"))
	if text == "" {
		return
	}

	err := c.machine.ChatPrompt(r.Context(), state, text)
	switch {
	case err == nil:
	case errors.Is(err, llm.ErrNoAPIKey):
		session.AddFlash(sess, session.FlashError, flashNoAPIKey)
	default:
		logger.Error("Suggestion round failed", zap.Error(err))
		session.AddFlash(sess, session.FlashError, flashKitchenOops)
	}
}

func (c *HomeController) handleChooseOption(r *http.Request, state *chat.State) {
	idx, err := strconv.Atoi(r.FormValue("option_index"))
	if err != nil {
		return
	}
	if idx < 0 || idx >= len(state.PendingOptions) {
		// Invalid index is a silent no-op.
		return
	}

	fb := feedbackSnapshot(state, models.FeedbackAccepted)
	fb.ChosenIndex = &idx

	c.machine.ChooseOption(state, idx)
	c.feedback.Enqueue(fb)
}

func (c *HomeController) handleRejectOptions(state *chat.State) {
	if len(state.PendingOptions) > 0 {
		c.feedback.Enqueue(feedbackSnapshot(state, models.FeedbackRejected))
	}
	c.machine.RejectOptions(state)
}

func (c *HomeController) render(w http.ResponseWriter, r *http.Request, sess session.Store, state *chat.State) {
	recipes, err := c.store.List(r.Context())
	if err != nil {
		logger.Error("Failed to list recipes for page render", zap.Error(err))
	}

	var confirmID uint
	if state.ConfirmDeleteID != nil {
		confirmID = *state.ConfirmDeleteID
	}

	data := pageData{
		Recipes:         recipes,
		Messages:        state.Messages,
		PendingOptions:  state.PendingOptions,
		Selected:        chat.ResolveSelection(r.Context(), c.store, state),
		Flashes:         session.PopFlashes(sess),
		AdminMode:       r.URL.Query().Get("admin") == "1",
		AdminLoggedIn:   state.AdminLoggedIn,
		ConfirmDeleteID: confirmID,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := c.tmpl.ExecuteTemplate(w, "home.html", data); err != nil {
		logger.Error("Template render failed", zap.Error(err))
	}
}

// feedbackSnapshot captures up to two offered options plus the last user
// utterance before a transition mutates the state.
func feedbackSnapshot(state *chat.State, action string) models.Feedback {
	fb := models.Feedback{Action: action}
	for i := len(state.Messages) - 1; i >= 0; i-- {
		if state.Messages[i].Role == chat.RoleUser {
			fb.UserText = state.Messages[i].Content
			break
		}
	}
	if len(state.PendingOptions) > 0 {
		fb.Option1Title = state.PendingOptions[0].Title
		fb.Option1RecipeID = state.PendingOptions[0].RecipeID
	}
	if len(state.PendingOptions) > 1 {
		fb.Option2Title = state.PendingOptions[1].Title
		fb.Option2RecipeID = state.PendingOptions[1].RecipeID
	}
	return fb
}

func loadState(sess session.Store) *chat.State {
	if v, ok := sess.Get(stateKey); ok {
		if state, ok := v.(*chat.State); ok {
			return state
		}
	}
	state := chat.NewState()
	sess.Set(stateKey, state)
	return state
}

// saveState writes the state back explicitly. The in-memory store shares
// the pointer so this is a formality, but it keeps the read-modify-write
// contract visible for serializing backends.
func saveState(sess session.Store, state *chat.State) {
	sess.Set(stateKey, state)
}
