package handlers

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joshua-takyi/gatherly/internal/models"
	"github.com/joshua-takyi/gatherly/internal/services"
	"github.com/supabase-community/gotrue-go/types"
)

func CreateUser(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := c.ShouldBindJSON(&user); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		createdUser, err := u.CreateUser(&user)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusCreated, createdUser)
	}
}

func AuthenticateUser(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Email    string `json:"email" binding:"required,email"`
			Password string `json:"password" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "message": "invalid request payload"})
			return
		}

		authResponse, err := u.AuthenticateUser(req.Email, req.Password)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error(), "message": "invalid email or password"})
			return
		}

		isProduction := os.Getenv("GIN_MODE") == "production"

		if tokenRes, ok := authResponse.(*types.TokenResponse); ok && tokenRes.AccessToken != "" {
			setAuthCookies(c, tokenRes, isProduction)

			// Return user info but not tokens
			c.JSON(http.StatusOK, gin.H{
				"user": tokenRes.User,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid token response"})
	}
}

func RefreshSession(u *services.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		refreshToken, err := c.Cookie("refresh_token")
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "refresh token not found"})
			return
		}

		response, err := u.RefreshToken(refreshToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		isProduction := os.Getenv("GIN_MODE") == "production"

		if tokenRes, ok := response.(*types.TokenResponse); ok && tokenRes.AccessToken != "" {
			setAuthCookies(c, tokenRes, isProduction)
			c.JSON(http.StatusOK, gin.H{"message": "session refreshed"})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{"error": "invalid token response"})
	}
}

func setAuthCookies(c *gin.Context, tokenRes *types.TokenResponse, isProduction bool) {
	// Access token - expires with the session
	c.SetCookie(
		"access_token",
		tokenRes.AccessToken,
		tokenRes.ExpiresIn,
		"/",
		"", // let Gin pick current domain
		isProduction,
		true,
	)

	// Refresh token - expires in 30 days
	c.SetCookie(
		"refresh_token",
		tokenRes.RefreshToken,
		3600*24*30,
		"/",
		"",
		isProduction,
		true,
	)
}
