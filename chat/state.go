// Package chat holds the per-visitor conversation state and the logic that
// turns visitor utterances into dish suggestions.
package chat

import "sort"

// Message roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// HistoryWindowSize caps how many recent messages are sent to the model.
const HistoryWindowSize = 6

// MaxPendingOptions caps how many options a suggestion round can leave
// awaiting a decision.
const MaxPendingOptions = 2

// Placeholder texts used when the model omits an option field.
const (
	PlaceholderTitle        = "Propozycja dania"
	PlaceholderWhy          = "Kucharz nie podał uzasadnienia"
	PlaceholderIngredients  = "Brak listy składników"
	PlaceholderInstructions = "Brak instrukcji"
	PlaceholderTime         = "Czas nieznany"
)

// DefaultAssistantText is used when the model omits assistant_text.
const DefaultAssistantText = "Oto, co udało mi się wymyślić!"

// Message is a single conversation entry.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Option is an ephemeral candidate dish suggestion. It is never persisted;
// RecipeID is a soft reference that may dangle after an admin delete, in
// which case the cached fields below stand in for the record.
type Option struct {
	RecipeID     *uint  `json:"recipe_id"`
	Title        string `json:"title"`
	Why          string `json:"why"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	Time         string `json:"time"`
}

// State is the whole per-visitor session: conversation history, the
// options awaiting a decision, the current selection, the rejected recipe
// ids and the admin substate. It is read-modify-written once per request;
// concurrent requests for the same session are last-write-wins.
type State struct {
	Messages          []Message `json:"messages"`
	PendingOptions    []Option  `json:"pending_options"`
	SelectedOption    *Option   `json:"selected_option"`
	SelectedRecipeID  *uint     `json:"selected_recipe_id"`
	ExcludedRecipeIDs []uint    `json:"excluded_recipe_ids"`
	OptionsRound      int       `json:"options_round"`

	// Admin substate, independent lifecycle from the chat flow.
	AdminLoggedIn   bool  `json:"admin_logged_in"`
	ConfirmDeleteID *uint `json:"confirm_delete_id"`
}

func NewState() *State {
	return &State{}
}

// AppendMessage adds an entry to the conversation history. History is
// append-only; the window cap applies only when talking to the model.
func (s *State) AppendMessage(role, content string) {
	s.Messages = append(s.Messages, Message{Role: role, Content: content})
}

// HistoryWindow returns the last HistoryWindowSize messages.
func (s *State) HistoryWindow() []Message {
	if len(s.Messages) <= HistoryWindowSize {
		return s.Messages
	}
	return s.Messages[len(s.Messages)-HistoryWindowSize:]
}

// AddExcluded merges recipe ids into the exclusion set. The set only ever
// grows within a session.
func (s *State) AddExcluded(ids ...uint) {
	seen := make(map[uint]bool, len(s.ExcludedRecipeIDs)+len(ids))
	for _, id := range s.ExcludedRecipeIDs {
		seen[id] = true
	}
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			s.ExcludedRecipeIDs = append(s.ExcludedRecipeIDs, id)
		}
	}
	sort.Slice(s.ExcludedRecipeIDs, func(i, j int) bool {
		return s.ExcludedRecipeIDs[i] < s.ExcludedRecipeIDs[j]
	})
}

// ClearPending drops any options awaiting a decision.
func (s *State) ClearPending() {
	s.PendingOptions = nil
}

// ClearSelection drops the current choice.
func (s *State) ClearSelection() {
	s.SelectedOption = nil
	s.SelectedRecipeID = nil
}
