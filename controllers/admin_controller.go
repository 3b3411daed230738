package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/levy-pm/co-moge-zjesc/chat"
	"github.com/levy-pm/co-moge-zjesc/logger"
	"github.com/levy-pm/co-moge-zjesc/models"
	"github.com/levy-pm/co-moge-zjesc/session"
)

// Admin flash texts.
const (
	flashLoginOK        = "Zalogowano do panelu."
	flashLoginBad       = "Nieprawidłowe hasło."
	flashNotLoggedIn    = "Zaloguj się, żeby zarządzać przepisami."
	flashFieldsRequired = "Nazwa i składniki są wymagane."
	flashRecipeAdded    = "Przepis dodany."
	flashRecipeSaved    = "Przepis zapisany."
	flashRecipeDeleted  = "Przepis usunięty."
	flashRecipeMissing  = "Nie znaleziono przepisu."
	flashNoConfirmation = "Brak oczekującego potwierdzenia usunięcia."
)

// dispatchAdmin handles the admin-mode actions. Everything but login is
// gated on the session flag.
func (c *HomeController) dispatchAdmin(r *http.Request, sess session.Store, state *chat.State, action string) {
	if action == "admin_login" {
		c.handleAdminLogin(r, sess, state)
		return
	}
	if !state.AdminLoggedIn {
		session.AddFlash(sess, session.FlashWarning, flashNotLoggedIn)
		return
	}

	switch action {
	case "admin_logout":
		state.AdminLoggedIn = false
		state.ConfirmDeleteID = nil
	case "admin_add":
		c.handleAdminAdd(r, sess)
	case "admin_save":
		c.handleAdminSave(r, sess)
	case "admin_delete_request":
		if id, ok := formID(r); ok {
			state.ConfirmDeleteID = &id
		}
	case "admin_delete_confirm":
		c.handleAdminDeleteConfirm(r, sess, state)
	case "admin_delete_cancel":
		state.ConfirmDeleteID = nil
	}
}

func (c *HomeController) handleAdminLogin(r *http.Request, sess session.Store, state *chat.State) {
	if c.checker.Check(r.FormValue("haslo")) {
		state.AdminLoggedIn = true
		session.AddFlash(sess, session.FlashSuccess, flashLoginOK)
		return
	}
	session.AddFlash(sess, session.FlashError, flashLoginBad)
}

func (c *HomeController) handleAdminAdd(r *http.Request, sess session.Store) {
	name := strings.TrimSpace(r.FormValue("nazwa"))
	ingredients := strings.TrimSpace(r.FormValue("skladniki"))
	if name == "" || ingredients == "" {
		session.AddFlash(sess, session.FlashWarning, flashFieldsRequired)
		return
	}

	recipe := models.Recipe{
		Name:        name,
		Ingredients: ingredients,
		Description: strings.TrimSpace(r.FormValue("opis")),
		PrepTime:    strings.TrimSpace(r.FormValue("czas")),
		Tags:        strings.TrimSpace(r.FormValue("tagi")),
	}
	if err := c.store.Create(r.Context(), &recipe); err != nil {
		logger.Error("Failed to create recipe", zap.Error(err))
		session.AddFlash(sess, session.FlashError, flashKitchenOops)
		return
	}
	session.AddFlash(sess, session.FlashSuccess, flashRecipeAdded)
}

// handleAdminSave always overwrites tags, description and prep time;
// name and ingredients are replaced only when both are still non-empty.
func (c *HomeController) handleAdminSave(r *http.Request, sess session.Store) {
	id, ok := formID(r)
	if !ok {
		session.AddFlash(sess, session.FlashWarning, flashRecipeMissing)
		return
	}
	recipe, err := c.store.Get(r.Context(), id)
	if err != nil || recipe == nil {
		session.AddFlash(sess, session.FlashWarning, flashRecipeMissing)
		return
	}

	name := strings.TrimSpace(r.FormValue("nazwa"))
	ingredients := strings.TrimSpace(r.FormValue("skladniki"))
	if name != "" && ingredients != "" {
		recipe.Name = name
		recipe.Ingredients = ingredients
	} else {
		session.AddFlash(sess, session.FlashWarning, flashFieldsRequired)
	}
	recipe.Description = strings.TrimSpace(r.FormValue("opis"))
	recipe.PrepTime = strings.TrimSpace(r.FormValue("czas"))
	recipe.Tags = strings.TrimSpace(r.FormValue("tagi"))

	if err := c.store.Update(r.Context(), recipe); err != nil {
		logger.Error("Failed to update recipe", zap.Error(err))
		session.AddFlash(sess, session.FlashError, flashKitchenOops)
		return
	}
	session.AddFlash(sess, session.FlashSuccess, flashRecipeSaved)
}

// handleAdminDeleteConfirm is step two of the delete flow: it only removes
// the record whose id matches the pending confirmation marker.
func (c *HomeController) handleAdminDeleteConfirm(r *http.Request, sess session.Store, state *chat.State) {
	id, ok := formID(r)
	if !ok || state.ConfirmDeleteID == nil || *state.ConfirmDeleteID != id {
		session.AddFlash(sess, session.FlashWarning, flashNoConfirmation)
		return
	}

	if err := c.store.Delete(r.Context(), id); err != nil {
		logger.Error("Failed to delete recipe", zap.Error(err))
		session.AddFlash(sess, session.FlashError, flashKitchenOops)
		return
	}
	state.ConfirmDeleteID = nil
	session.AddFlash(sess, session.FlashSuccess, flashRecipeDeleted)
}

func formID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(r.FormValue("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
