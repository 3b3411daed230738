package chat

import "context"

// SelectionDetail is what the template renders for the chosen dish.
type SelectionDetail struct {
	Title        string
	Why          string
	Ingredients  string
	Instructions string
	Time         string
	Description  string
	FromStore    bool
}

// ResolveSelection builds the detail view for the current choice. A recipe
// id takes precedence; when it no longer resolves (admin deleted the
// record) the option's own cached fields are used instead. Returns nil
// when nothing is selected.
func ResolveSelection(ctx context.Context, store RecipeStore, state *State) *SelectionDetail {
	if state.SelectedOption == nil && state.SelectedRecipeID == nil {
		return nil
	}

	detail := &SelectionDetail{}
	if state.SelectedOption != nil {
		detail.Title = state.SelectedOption.Title
		detail.Why = state.SelectedOption.Why
		detail.Ingredients = state.SelectedOption.Ingredients
		detail.Instructions = state.SelectedOption.Instructions
		detail.Time = state.SelectedOption.Time
	}

	if state.SelectedRecipeID != nil {
		recipe, err := store.Get(ctx, *state.SelectedRecipeID)
		if err == nil && recipe != nil {
			detail.Title = recipe.Name
			detail.Ingredients = recipe.Ingredients
			detail.Description = recipe.Description
			if recipe.PrepTime != "" {
				detail.Time = recipe.PrepTime
			}
			detail.FromStore = true
		}
	}

	return detail
}
