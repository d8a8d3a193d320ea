package routes

import (
	"github.com/liyunrui/meal-prep/config"
	"github.com/liyunrui/meal-prep/controllers"
	"github.com/liyunrui/meal-prep/middlewares"
	"github.com/liyunrui/meal-prep/services"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

func SetupRouter(
	cfg *config.Config,
	db *gorm.DB,
	sessions services.SessionStore,
	hub *services.TotalsHub,
	logger *logrus.Logger,
) *gin.Engine {
	if cfg.Server.ProductionMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middlewares.RequestLogger(logger))
	r.Use(gin.Recovery())
	r.LoadHTMLGlob(cfg.Server.TemplatesGlob)

	authSvc := services.NewAuthService(db)
	macroSvc := services.NewMacroService(db)
	targetSvc := services.NewTargetService(db)

	authCtl := controllers.NewAuthController(authSvc, sessions, cfg, logger)
	macroCtl := controllers.NewMacroController(macroSvc, targetSvc, authSvc, hub, logger)
	targetCtl := controllers.NewTargetController(targetSvc, macroSvc, hub, logger)
	profileCtl := controllers.NewProfileController(authSvc, cfg, logger)
	realtimeCtl := controllers.NewRealtimeController(hub)

	// Home renders for guests and logged-in users alike.
	r.GET("/", middlewares.CurrentUser(sessions, cfg), macroCtl.Home)
	r.POST("/", middlewares.CurrentUser(sessions, cfg), macroCtl.Home)

	// Register and login pages redirect already-authenticated users home.
	guest := r.Group("/", middlewares.RedirectIfAuthenticated(sessions, cfg))
	{
		guest.GET("/register", authCtl.ShowRegister)
		guest.POST("/register", authCtl.Register)
		guest.GET("/login", authCtl.ShowLogin)
		guest.POST("/login", authCtl.Login)
	}

	r.GET("/logout", authCtl.Logout)

	authed := r.Group("/", middlewares.RequireAuth(sessions, cfg))
	{
		authed.GET("/today_macros", macroCtl.TodayMacros)
		authed.POST("/today_macros", macroCtl.TodayMacros)
		authed.GET("/history", macroCtl.History)
		authed.GET("/tdee", targetCtl.ShowForm)
		authed.POST("/tdee", targetCtl.Submit)
		authed.POST("/update", macroCtl.RenameEntry)
		authed.POST("/delete", macroCtl.DeleteEntry)
		authed.POST("/profile/image", profileCtl.UploadImage)
		authed.GET("/ws/totals", realtimeCtl.TotalsWS)
	}

	return r
}
