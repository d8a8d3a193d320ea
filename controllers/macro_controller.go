package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/liyunrui/meal-prep/models"
	"github.com/liyunrui/meal-prep/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type MacroController struct {
	macros  *services.MacroService
	targets *services.TargetService
	auth    *services.AuthService
	hub     *services.TotalsHub
	logger  *logrus.Logger
}

func NewMacroController(
	macros *services.MacroService,
	targets *services.TargetService,
	auth *services.AuthService,
	hub *services.TotalsHub,
	logger *logrus.Logger,
) *MacroController {
	return &MacroController{macros: macros, targets: targets, auth: auth, hub: hub, logger: logger}
}

func (mc *MacroController) Home(c *gin.Context) {
	data := gin.H{}
	if uid := c.GetUint("userID"); uid != 0 {
		user, err := mc.auth.GetUser(uid)
		if err != nil {
			mc.logger.WithError(err).Warn("load current user")
		} else {
			data["username"] = user.Username
		}
	}
	c.HTML(http.StatusOK, "home.html", data)
}

// TodayMacros handles both the aggregate view and the entry form that
// posts back to it. A failed submission renders the view with the
// error instead of dropping it silently.
func (mc *MacroController) TodayMacros(c *gin.Context) {
	uid := c.GetUint("userID")
	data := gin.H{}
	status := http.StatusOK

	if c.Request.Method == http.MethodPost {
		var form FoodEntryForm
		if err := c.ShouldBind(&form); err != nil {
			data["errors"] = fieldErrors(err)
			status = http.StatusBadRequest
		} else {
			entry := &models.FoodEntry{
				Name:     form.FoodName,
				Weight:   models.Grams(form.Gram),
				Calories: models.Grams(form.Calorie),
				Protein:  models.Grams(form.Protein),
				Carbs:    models.Grams(form.Carb),
				Fat:      models.Grams(form.Fat),
			}
			if err := mc.macros.AddEntry(uid, entry); err != nil {
				mc.logger.WithError(err).Error("add food entry")
				data["errors"] = map[string]string{"form": "Could not save the food entry. Please try again."}
				status = http.StatusInternalServerError
			} else {
				mc.broadcastTotals(uid)
			}
		}
	}

	mc.renderToday(c, uid, status, data)
}

func (mc *MacroController) renderToday(c *gin.Context, uid uint, status int, data gin.H) {
	entries, err := mc.macros.ListEntriesForDay(uid, time.Now())
	if err != nil {
		mc.logger.WithError(err).Error("list food entries")
		c.HTML(http.StatusInternalServerError, "today_macros.html", gin.H{
			"errors": map[string]string{"form": "Could not load your entries. Please try again."},
		})
		return
	}

	target, err := mc.targets.CurrentTarget(uid)
	if err != nil {
		mc.logger.WithError(err).Error("load current target")
		c.HTML(http.StatusInternalServerError, "today_macros.html", gin.H{
			"errors": map[string]string{"form": "Could not load your target. Please try again."},
		})
		return
	}

	data["foods"] = entries
	data["totals"] = services.ComputeDailyTotals(entries)
	data["target"] = target
	c.HTML(status, "today_macros.html", data)
}

// DeleteEntry removes the user's oldest entry matching the submitted
// name. Deleting a name that no longer exists is a no-op.
func (mc *MacroController) DeleteEntry(c *gin.Context) {
	uid := c.GetUint("userID")

	var form DeleteEntryForm
	if err := c.ShouldBind(&form); err == nil {
		err := mc.macros.DeleteEntryByName(uid, form.FoodName)
		switch {
		case errors.Is(err, services.ErrEntryNotFound):
			// already gone
		case err != nil:
			mc.logger.WithError(err).Error("delete food entry")
		default:
			mc.broadcastTotals(uid)
		}
	}

	c.Redirect(http.StatusFound, "/today_macros")
}

// RenameEntry renames the user's oldest entry matching old_name.
func (mc *MacroController) RenameEntry(c *gin.Context) {
	uid := c.GetUint("userID")

	var form RenameEntryForm
	if err := c.ShouldBind(&form); err == nil {
		err := mc.macros.RenameEntry(uid, form.OldName, form.NewName)
		if err != nil && !errors.Is(err, services.ErrEntryNotFound) {
			mc.logger.WithError(err).Error("rename food entry")
		}
	}

	c.Redirect(http.StatusFound, "/today_macros")
}

// History lists the user's full entry log, oldest first.
func (mc *MacroController) History(c *gin.Context) {
	uid := c.GetUint("userID")

	entries, err := mc.macros.ListEntries(uid)
	if err != nil {
		mc.logger.WithError(err).Error("list entry history")
		c.HTML(http.StatusInternalServerError, "history.html", gin.H{
			"errors": map[string]string{"form": "Could not load your history. Please try again."},
		})
		return
	}
	c.HTML(http.StatusOK, "history.html", gin.H{"foods": entries})
}

func (mc *MacroController) broadcastTotals(uid uint) {
	entries, err := mc.macros.ListEntriesForDay(uid, time.Now())
	if err != nil {
		mc.logger.WithError(err).Warn("recompute totals for broadcast")
		return
	}
	target, err := mc.targets.CurrentTarget(uid)
	if err != nil {
		mc.logger.WithError(err).Warn("load target for broadcast")
	}
	mc.hub.Broadcast(uid, gin.H{
		"kind":   "totals.updated",
		"totals": services.ComputeDailyTotals(entries),
		"target": target,
	})
}
