package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/levy-pm/co-moge-zjesc/models"
)

// RecipeRepository holds the database connection for recipe access.
type RecipeRepository struct {
	DB *gorm.DB
}

// NewRecipeRepository creates and returns a new RecipeRepository.
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{DB: db}
}

// List returns every recipe ordered by id.
func (r *RecipeRepository) List(ctx context.Context) ([]models.Recipe, error) {
	var recipes []models.Recipe
	if err := r.DB.WithContext(ctx).Order("id").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Get fetches a recipe by id. Returns (nil, nil) when the id is unknown so
// callers can treat a dangling reference as a normal condition.
func (r *RecipeRepository) Get(ctx context.Context, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.DB.WithContext(ctx).First(&recipe, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &recipe, nil
}

// Create inserts a new recipe.
func (r *RecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	return r.DB.WithContext(ctx).Create(recipe).Error
}

// Update saves the full recipe record. Last write wins.
func (r *RecipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	return r.DB.WithContext(ctx).Save(recipe).Error
}

// Delete removes a recipe by id. Options referencing it keep their cached
// fields.
func (r *RecipeRepository) Delete(ctx context.Context, id uint) error {
	return r.DB.WithContext(ctx).Delete(&models.Recipe{}, id).Error
}
