package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/levy-pm/co-moge-zjesc/llm"
	"github.com/levy-pm/co-moge-zjesc/logger"
	"github.com/levy-pm/co-moge-zjesc/models"
	"github.com/levy-pm/co-moge-zjesc/retriever"
)

// Completer is the slice of the LLM client the orchestrator uses.
type Completer interface {
	IsConfigured() bool
	Chat(ctx context.Context, messages []llm.Message) (string, error)
}

// RecipeStore is the read-only slice of the repository the suggestion flow
// needs.
type RecipeStore interface {
	List(ctx context.Context) ([]models.Recipe, error)
	Get(ctx context.Context, id uint) (*models.Recipe, error)
}

// ContextSearcher provides fallback context when the catalog has no match.
type ContextSearcher interface {
	Fragments(ctx context.Context, query string) string
}

// Orchestrator turns a visitor utterance into at most two structured dish
// options while keeping the conversation state consistent.
type Orchestrator struct {
	store     RecipeStore
	completer Completer
	search    ContextSearcher
}

func NewOrchestrator(store RecipeStore, completer Completer, search ContextSearcher) *Orchestrator {
	return &Orchestrator{store: store, completer: completer, search: search}
}

// Suggest runs one suggestion round for the already-appended user message.
// On success with at least one option it appends the assistant text,
// increments the round counter and stores the pending options. On zero
// options or any error it clears the pending options; errors are returned
// for the boundary to turn into a flash, never shown raw to the visitor.
func (o *Orchestrator) Suggest(ctx context.Context, state *State, userText string) error {
	if !o.completer.IsConfigured() {
		state.ClearPending()
		return llm.ErrNoAPIKey
	}

	messages := o.buildMessages(ctx, state, userText)

	raw, err := o.completer.Chat(ctx, messages)
	if err != nil {
		state.ClearPending()
		return fmt.Errorf("suggestion call failed: %w", err)
	}

	assistantText, options, err := parseSuggestion(raw)
	if err != nil {
		logger.Warn("Model returned unparseable suggestion payload", zap.Error(err))
		state.ClearPending()
		return fmt.Errorf("malformed model output: %w", err)
	}

	options = o.overrideFromStore(ctx, options)

	if len(options) == 0 {
		state.ClearPending()
		return nil
	}

	if len(options) > MaxPendingOptions {
		options = options[:MaxPendingOptions]
	}

	state.AppendMessage(RoleAssistant, assistantText)
	state.OptionsRound++
	state.PendingOptions = options
	return nil
}

func (o *Orchestrator) buildMessages(ctx context.Context, state *State, userText string) []llm.Message {
	messages := []llm.Message{
		{Role: "system", Content: o.systemPrompt(ctx, state, userText)},
	}
	for _, m := range state.HistoryWindow() {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}
	return messages
}

func (o *Orchestrator) systemPrompt(ctx context.Context, state *State, userText string) string {
	var b strings.Builder
	b.WriteString("Jesteś kucharzem pomagającym wybrać danie. ")
	b.WriteString("Odpowiadaj WYŁĄCZNIE poprawnym JSON-em o kształcie: ")
	b.WriteString(`{"assistant_text": "krótka wiadomość po polsku", "options": [opcja, opcja]}. `)
	b.WriteString("Tablica options ma dokładnie dwa obiekty o polach: ")
	b.WriteString(`recipe_id (liczba całkowita albo null), title, why, ingredients, instructions, time. `)
	b.WriteString("Najpierw proponuj dania z bazy przepisów (podaj istniejące recipe_id); ")
	b.WriteString("dopiero gdy baza nie pasuje, wymyśl danie samodzielnie z recipe_id: null.\n\n")

	b.WriteString("Baza przepisów:\n")
	b.WriteString(o.contextBlock(ctx))
	b.WriteString("\n\n")

	b.WriteString("Odrzucone recipe_id (nie proponuj ich ponownie): ")
	b.WriteString(excludedList(state.ExcludedRecipeIDs))
	b.WriteString("\n")

	if extra := o.retrievedContext(ctx, userText); extra != "" {
		b.WriteString("\nDodatkowy kontekst: ")
		b.WriteString(extra)
		b.WriteString("\n")
	}

	return b.String()
}

// contextBlock serializes the whole catalog for grounding. An unreachable
// store degrades to an empty block, never an error.
func (o *Orchestrator) contextBlock(ctx context.Context) string {
	recipes, err := o.store.List(ctx)
	if err != nil {
		logger.Warn("Recipe store unreachable while building context block", zap.Error(err))
		return ""
	}

	lines := make([]string, 0, len(recipes))
	for _, r := range recipes {
		lines = append(lines, fmt.Sprintf("ID: %d | Nazwa: %s | Składniki: %s | Tagi: %s",
			r.ID, r.Name, r.Ingredients, r.Tags))
	}
	return strings.Join(lines, "\n")
}

// retrievedContext prefers a catalog match for the utterance; when nothing
// matches it falls back to public search fragments, which may be empty.
func (o *Orchestrator) retrievedContext(ctx context.Context, userText string) string {
	recipes, err := o.store.List(ctx)
	if err == nil {
		if match := retriever.Match(recipes, userText); match != nil {
			return fmt.Sprintf("najlepsze dopasowanie z bazy to %q (ID: %d)", match.Name, match.ID)
		}
	}
	if o.search == nil {
		return ""
	}
	return o.search.Fragments(ctx, userText)
}

func excludedList(ids []uint) string {
	if len(ids) == 0 {
		return "(brak)"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%d", id)
	}
	return strings.Join(parts, ", ")
}

// overrideFromStore replaces title/ingredients/time of db-backed options
// with the stored record's authoritative values. why and instructions stay
// as the model wrote them. A dangling or unreadable id leaves the option's
// cached fields untouched.
func (o *Orchestrator) overrideFromStore(ctx context.Context, options []Option) []Option {
	for i := range options {
		if options[i].RecipeID == nil {
			continue
		}
		recipe, err := o.store.Get(ctx, *options[i].RecipeID)
		if err != nil || recipe == nil {
			continue
		}
		options[i].Title = recipe.Name
		options[i].Ingredients = recipe.Ingredients
		if recipe.PrepTime != "" {
			options[i].Time = recipe.PrepTime
		}
	}
	return options
}

// parseSuggestion decodes the model's JSON defensively: missing
// assistant_text gets a generic acknowledgement, a missing or non-list
// options key becomes empty, non-object entries are skipped and every
// option field is defaulted individually.
func parseSuggestion(raw string) (string, []Option, error) {
	cleaned := stripCodeFences(raw)

	var payload map[string]any
	if err := json.Unmarshal([]byte(cleaned), &payload); err != nil {
		return "", nil, fmt.Errorf("decoding suggestion JSON: %w", err)
	}

	assistantText := DefaultAssistantText
	if text, ok := payload["assistant_text"].(string); ok && strings.TrimSpace(text) != "" {
		assistantText = text
	}

	rawOptions, _ := payload["options"].([]any)
	options := make([]Option, 0, len(rawOptions))
	for _, entry := range rawOptions {
		obj, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		options = append(options, normalizeOption(obj))
	}

	return assistantText, options, nil
}

func normalizeOption(obj map[string]any) Option {
	opt := Option{
		Title:        stringField(obj, "title", PlaceholderTitle),
		Why:          stringField(obj, "why", PlaceholderWhy),
		Ingredients:  stringField(obj, "ingredients", PlaceholderIngredients),
		Instructions: stringField(obj, "instructions", PlaceholderInstructions),
		Time:         stringField(obj, "time", PlaceholderTime),
	}
	if num, ok := obj["recipe_id"].(float64); ok && num > 0 {
		id := uint(num)
		opt.RecipeID = &id
	}
	return opt
}

func stringField(obj map[string]any, key, fallback string) string {
	if v, ok := obj[key].(string); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

// stripCodeFences unwraps ```json fenced blocks some models insist on.
func stripCodeFences(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
