package chat

import "context"

// Assistant messages appended by visitor-driven transitions.
const (
	rejectionFollowUp = "Rozumiem, te propozycje odpadają. Powiedz mi coś więcej — na co masz ochotę?"
	backToSearchText  = "Jasne, szukamy dalej. Napisz, na co masz ochotę."
)

// Machine drives the conversation state through visitor-submitted actions.
// There is no terminal state; the state lives as long as the session.
type Machine struct {
	orch *Orchestrator
}

func NewMachine(orch *Orchestrator) *Machine {
	return &Machine{orch: orch}
}

// ChatPrompt handles a new utterance. It is accepted in every state, even
// over an unresolved selection. Empty text is a no-op.
func (m *Machine) ChatPrompt(ctx context.Context, state *State, text string) error {
	if text == "" {
		return nil
	}
	state.AppendMessage(RoleUser, text)
	return m.orch.Suggest(ctx, state, text)
}

// ChooseOption copies the option at idx into the selection. An
// out-of-range index is a silent no-op, state unchanged.
func (m *Machine) ChooseOption(state *State, idx int) {
	if idx < 0 || idx >= len(state.PendingOptions) {
		return
	}
	chosen := state.PendingOptions[idx]
	state.SelectedOption = &chosen
	state.SelectedRecipeID = chosen.RecipeID
}

// RejectOptions merges every pending option's non-nil recipe id into the
// exclusion set, clears the pending options and asks the visitor to
// clarify.
func (m *Machine) RejectOptions(state *State) {
	for _, opt := range state.PendingOptions {
		if opt.RecipeID != nil {
			state.AddExcluded(*opt.RecipeID)
		}
	}
	state.ClearPending()
	state.AppendMessage(RoleAssistant, rejectionFollowUp)
}

// BackToSearch clears the selection and pending options and prompts the
// visitor to continue.
func (m *Machine) BackToSearch(state *State) {
	state.ClearSelection()
	state.ClearPending()
	state.AppendMessage(RoleAssistant, backToSearchText)
}
