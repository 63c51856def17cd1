package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-gateway/models"
)

// RegisterProfileRoutes sets up the profile, category and review routes
func RegisterProfileRoutes(router *gin.RouterGroup) {
	router.GET("/profile", getProfile)
	router.PATCH("/profile", updateProfile)
	router.GET("/categories", getCategories)
	router.GET("/professionals/:id/reviews", getReviews)
	router.POST("/reviews", createReview)
}

func getProfile(c *gin.Context) {
	token := c.GetString("token")

	profile, err := deps.Backend.GetProfessionalProfile(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func updateProfile(c *gin.Context) {
	token := c.GetString("token")

	var payload models.ProfessionalProfileUpdate
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
		return
	}

	profile, err := deps.Backend.UpdateProfessionalProfile(c.Request.Context(), token, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func getCategories(c *gin.Context) {
	token := c.GetString("token")

	categories, err := deps.Backend.ListCategories(c.Request.Context(), token)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": categories, "count": len(categories)})
}

func getReviews(c *gin.Context) {
	token := c.GetString("token")

	professionalID, ok := parseID(c, "id")
	if !ok {
		return
	}

	reviews, err := deps.Backend.ListReviews(c.Request.Context(), token, professionalID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": reviews, "count": len(reviews)})
}

func createReview(c *gin.Context) {
	token := c.GetString("token")

	var payload models.ReviewCreate
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation_error", "message": err.Error()})
		return
	}

	review, err := deps.Backend.CreateReview(c.Request.Context(), token, payload)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}
