// Seeds a fresh database with a handful of recipes so the suggestion flow
// has something to ground on. Skips seeding when the table already has
// rows.
package main

import (
	"context"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/levy-pm/co-moge-zjesc/config"
	"github.com/levy-pm/co-moge-zjesc/database"
	"github.com/levy-pm/co-moge-zjesc/logger"
	"github.com/levy-pm/co-moge-zjesc/models"
	"github.com/levy-pm/co-moge-zjesc/repository"
)

var seedRecipes = []models.Recipe{
	{
		Name:        "Zupa pomidorowa",
		Ingredients: "pomidory, cebula, czosnek, śmietana, makaron",
		Description: "Klasyczna zupa pomidorowa na wywarze warzywnym.",
		PrepTime:    "40 minut",
		Tags:        "zupa, obiad, klasyka",
	},
	{
		Name:        "Pierogi ruskie",
		Ingredients: "mąka, ziemniaki, twaróg, cebula, masło",
		Description: "Pierogi z farszem ziemniaczano-serowym, podawane z cebulką.",
		PrepTime:    "90 minut",
		Tags:        "pierogi, obiad, tradycyjne",
	},
	{
		Name:        "Szakszuka",
		Ingredients: "jajka, pomidory, papryka, cebula, kumin",
		Description: "Jajka w pikantnym sosie pomidorowym.",
		PrepTime:    "25 minut",
		Tags:        "śniadanie, jajka, szybkie",
	},
	{
		Name:        "Sałatka z kurczakiem",
		Ingredients: "kurczak, sałata, pomidory, ogórek, sos vinegret",
		Description: "Lekka sałatka z grillowanym kurczakiem.",
		PrepTime:    "20 minut",
		Tags:        "sałatka, fit, szybkie",
	},
	{
		Name:        "Placki ziemniaczane",
		Ingredients: "ziemniaki, cebula, jajko, mąka, olej",
		Description: "Chrupiące placki smażone na złoto.",
		PrepTime:    "35 minut",
		Tags:        "ziemniaki, obiad, smażone",
	},
}

func main() {
	logger.Init()
	defer logger.Close()

	if err := godotenv.Load(); err != nil {
		logger.Warn("No .env file found, using system env vars")
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	db, err := database.InitDB(cfg.Postgres)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	repo := repository.NewRecipeRepository(db)
	ctx := context.Background()

	existing, err := repo.List(ctx)
	if err != nil {
		logger.Fatal("Failed to check recipe table", zap.Error(err))
	}
	if len(existing) > 0 {
		logger.Info("Recipe table not empty, skipping seed", zap.Int("count", len(existing)))
		return
	}

	for i := range seedRecipes {
		if err := repo.Create(ctx, &seedRecipes[i]); err != nil {
			logger.Fatal("Failed to seed recipe", zap.String("name", seedRecipes[i].Name), zap.Error(err))
		}
	}
	logger.Info("Seeded recipes", zap.Int("count", len(seedRecipes)))
}
