package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/levy-pm/co-moge-zjesc/llm"
	"github.com/levy-pm/co-moge-zjesc/logger"
)

// RecipeGenerator is the single-shot LLM path behind /api/generate.
type RecipeGenerator interface {
	GenerateRecipe(ctx context.Context, ingredients string) (string, error)
}

// GenerateController serves POST /api/generate: a raw ingredient list in,
// free-form recipe text out. The field names are kept for compatibility
// with the existing front end.
type GenerateController struct {
	generator RecipeGenerator
}

func NewGenerateController(generator RecipeGenerator) *GenerateController {
	return &GenerateController{generator: generator}
}

type generateRequest struct {
	Skladniki string `json:"skladniki"`
}

type generateResponse struct {
	Przepis string `json:"przepis"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (c *GenerateController) Handle(w http.ResponseWriter, r *http.Request) {
	logger.Info("Received generate request")

	ingredients := ""
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		var req generateRequest
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&req)
		}
		ingredients = req.Skladniki
	} else {
		_ = r.ParseForm()
		ingredients = r.FormValue("skladniki")
	}
	ingredients = strings.TrimSpace(ingredients)

	w.Header().Set("Content-Type", "application/json")

	if ingredients == "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(errorResponse{Error: "Podaj składniki"})
		return
	}

	text, err := c.generator.GenerateRecipe(r.Context(), ingredients)
	if err != nil {
		if errors.Is(err, llm.ErrNoAPIKey) {
			logger.Warn("Generate request without configured API key")
		} else {
			logger.Error("Recipe generation failed", zap.Error(err))
		}
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(errorResponse{Error: "Nie udało się wygenerować przepisu"})
		return
	}

	logger.Info("Recipe generated", zap.Int("input_length", len(ingredients)))
	_ = json.NewEncoder(w).Encode(generateResponse{Przepis: text})
}
