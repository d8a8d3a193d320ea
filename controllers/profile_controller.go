package controllers

import (
	"errors"
	"net/http"

	"github.com/liyunrui/meal-prep/config"
	"github.com/liyunrui/meal-prep/services"
	"github.com/liyunrui/meal-prep/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ProfileController struct {
	auth   *services.AuthService
	cfg    *config.Config
	logger *logrus.Logger
}

func NewProfileController(auth *services.AuthService, cfg *config.Config, logger *logrus.Logger) *ProfileController {
	return &ProfileController{auth: auth, cfg: cfg, logger: logger}
}

type ProfileImageRequest struct {
	ImageBase64 string `json:"image_base64" binding:"required"`
}

// UploadImage stores a new profile picture in S3 and records its URL
// on the user.
func (pc *ProfileController) UploadImage(c *gin.Context) {
	uid := c.GetUint("userID")

	var req ProfileImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, err := pc.auth.GetUser(uid)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return
	}

	url, err := utils.UploadBase64ImageToS3(pc.cfg.AWS.Bucket, pc.cfg.AWS.BaseURL, req.ImageBase64, user.Username)
	if err != nil {
		if errors.Is(err, utils.ErrS3NotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image uploads are not available"})
			return
		}
		pc.logger.WithError(err).Error("upload profile image")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	if err := pc.auth.SetProfileImage(uid, url); err != nil {
		pc.logger.WithError(err).Error("save profile image url")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Upload failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
