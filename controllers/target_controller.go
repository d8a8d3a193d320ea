package controllers

import (
	"net/http"
	"time"

	"github.com/liyunrui/meal-prep/models"
	"github.com/liyunrui/meal-prep/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type TargetController struct {
	targets *services.TargetService
	macros  *services.MacroService
	hub     *services.TotalsHub
	logger  *logrus.Logger
}

func NewTargetController(
	targets *services.TargetService,
	macros *services.MacroService,
	hub *services.TotalsHub,
	logger *logrus.Logger,
) *TargetController {
	return &TargetController{targets: targets, macros: macros, hub: hub, logger: logger}
}

func (tc *TargetController) ShowForm(c *gin.Context) {
	c.HTML(http.StatusOK, "add_tdee_target.html", gin.H{})
}

// Submit stores a new target snapshot and sends the user back to the
// aggregate view. Failures re-render the form rather than being
// swallowed.
func (tc *TargetController) Submit(c *gin.Context) {
	uid := c.GetUint("userID")

	var form TargetForm
	if err := c.ShouldBind(&form); err != nil {
		c.HTML(http.StatusBadRequest, "add_tdee_target.html", gin.H{
			"errors": fieldErrors(err),
			"form":   form,
		})
		return
	}

	target := &models.TdeeTarget{
		Calories: models.Grams(form.TDEE),
		Protein:  models.Grams(form.Protein),
		Carbs:    models.Grams(form.Carb),
		Fat:      models.Grams(form.Fat),
	}
	if err := tc.targets.AddTarget(uid, target); err != nil {
		tc.logger.WithError(err).Error("add tdee target")
		c.HTML(http.StatusInternalServerError, "add_tdee_target.html", gin.H{
			"errors": map[string]string{"form": "Could not save the target. Please try again."},
			"form":   form,
		})
		return
	}

	entries, err := tc.macros.ListEntriesForDay(uid, time.Now())
	if err != nil {
		tc.logger.WithError(err).Warn("recompute totals for broadcast")
	} else {
		tc.hub.Broadcast(uid, gin.H{
			"kind":   "totals.updated",
			"totals": services.ComputeDailyTotals(entries),
			"target": target,
		})
	}

	c.Redirect(http.StatusFound, "/today_macros")
}
