package actions

import (
	"context"

	"recipectl/internal/api"
	"recipectl/internal/dispatch"
	"recipectl/internal/events"
	"recipectl/internal/logging"
)

// FetchAllRecipes lists recipes, optionally narrowed by filters.
func (s *Service) FetchAllRecipes(ctx context.Context, filters dispatch.RecipeFilters) ([]api.Recipe, error) {
	body, err := s.dispatcher.Execute(ctx, dispatch.OpFetchAllRecipes, dispatch.Params{Filters: filters})
	if err != nil {
		return nil, err
	}
	var recipes []api.Recipe
	if err := dispatch.DecodeJSON(body, &recipes); err != nil {
		return nil, err
	}
	s.bus.Publish(events.RecipesReceived{Recipes: recipes})
	return recipes, nil
}

// FetchSignedRecipes lists recipes that carry a signature.
func (s *Service) FetchSignedRecipes(ctx context.Context) ([]api.Recipe, error) {
	body, err := s.dispatcher.Execute(ctx, dispatch.OpFetchSignedRecipes, dispatch.Params{})
	if err != nil {
		return nil, err
	}
	var recipes []api.Recipe
	if err := dispatch.DecodeJSON(body, &recipes); err != nil {
		return nil, err
	}
	s.bus.Publish(events.SignedRecipesReceived{Recipes: recipes})
	return recipes, nil
}

// FetchSingleRecipe fetches one recipe and selects it in the session.
func (s *Service) FetchSingleRecipe(ctx context.Context, recipeID int64) (api.Recipe, error) {
	var recipe api.Recipe
	body, err := s.dispatcher.Execute(ctx, dispatch.OpFetchSingleRecipe, dispatch.Params{RecipeID: recipeID})
	if err != nil {
		return recipe, err
	}
	if err := dispatch.DecodeJSON(body, &recipe); err != nil {
		return recipe, err
	}
	s.session.Select(recipe.ID)
	s.bus.Publish(events.RecipeReceived{Recipe: recipe})
	return recipe, nil
}

// FetchRecipeHistory returns the revision history for one recipe, newest
// first.
func (s *Service) FetchRecipeHistory(ctx context.Context, recipeID int64) ([]api.RecipeRevision, error) {
	body, err := s.dispatcher.Execute(ctx, dispatch.OpFetchRecipeHistory, dispatch.Params{RecipeID: recipeID})
	if err != nil {
		return nil, err
	}
	var revisions []api.RecipeRevision
	if err := dispatch.DecodeJSON(body, &revisions); err != nil {
		return nil, err
	}
	s.bus.Publish(events.RecipeHistoryReceived{RecipeID: recipeID, Revisions: revisions})
	return revisions, nil
}

// AddRecipe creates a recipe from payload and selects the result.
func (s *Service) AddRecipe(ctx context.Context, payload any) (api.Recipe, error) {
	var recipe api.Recipe
	body, err := s.dispatcher.Execute(ctx, dispatch.OpAddRecipe, dispatch.Params{Payload: payload})
	if err != nil {
		return recipe, err
	}
	if err := dispatch.DecodeJSON(body, &recipe); err != nil {
		return recipe, err
	}
	s.session.Select(recipe.ID)
	s.bus.Publish(events.RecipeAdded{Recipe: recipe})
	s.logger.Info("recipe added", logging.Int64(logging.FieldRecipeID, recipe.ID))
	return recipe, nil
}

// UpdateRecipe patches a recipe and selects the result.
func (s *Service) UpdateRecipe(ctx context.Context, recipeID int64, payload any) (api.Recipe, error) {
	var recipe api.Recipe
	body, err := s.dispatcher.Execute(ctx, dispatch.OpUpdateRecipe, dispatch.Params{RecipeID: recipeID, Payload: payload})
	if err != nil {
		return recipe, err
	}
	if err := dispatch.DecodeJSON(body, &recipe); err != nil {
		return recipe, err
	}
	s.session.Select(recipe.ID)
	s.bus.Publish(events.RecipeUpdated{Recipe: recipe})
	s.logger.Info("recipe updated", logging.Int64(logging.FieldRecipeID, recipe.ID))
	return recipe, nil
}

// DeleteRecipe removes a recipe. A selection pointing at the deleted recipe
// is cleared.
func (s *Service) DeleteRecipe(ctx context.Context, recipeID int64) error {
	if _, err := s.dispatcher.Execute(ctx, dispatch.OpDeleteRecipe, dispatch.Params{RecipeID: recipeID}); err != nil {
		return err
	}
	s.session.ClearIf(recipeID)
	s.bus.Publish(events.RecipeDeleted{RecipeID: recipeID})
	s.logger.Info("recipe deleted", logging.Int64(logging.FieldRecipeID, recipeID))
	return nil
}

// EnableRecipe switches a recipe on.
func (s *Service) EnableRecipe(ctx context.Context, recipeID int64) (api.Recipe, error) {
	var recipe api.Recipe
	body, err := s.dispatcher.Execute(ctx, dispatch.OpEnableRecipe, dispatch.Params{RecipeID: recipeID})
	if err != nil {
		return recipe, err
	}
	if err := dispatch.DecodeJSON(body, &recipe); err != nil {
		return recipe, err
	}
	s.bus.Publish(events.RecipeEnabled{Recipe: recipe})
	return recipe, nil
}

// DisableRecipe switches a recipe off.
func (s *Service) DisableRecipe(ctx context.Context, recipeID int64) (api.Recipe, error) {
	var recipe api.Recipe
	body, err := s.dispatcher.Execute(ctx, dispatch.OpDisableRecipe, dispatch.Params{RecipeID: recipeID})
	if err != nil {
		return recipe, err
	}
	if err := dispatch.DecodeJSON(body, &recipe); err != nil {
		return recipe, err
	}
	s.bus.Publish(events.RecipeDisabled{Recipe: recipe})
	return recipe, nil
}
