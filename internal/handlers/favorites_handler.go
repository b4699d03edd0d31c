package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"coinwatch/internal/models"
	"coinwatch/internal/services"
)

// FavoritesHandler handles bookmarked coins.
type FavoritesHandler struct {
	favoritesService services.FavoritesServicer
}

// NewFavoritesHandler creates a new FavoritesHandler.
func NewFavoritesHandler(favoritesService services.FavoritesServicer) *FavoritesHandler {
	return &FavoritesHandler{favoritesService: favoritesService}
}

// AddFavoriteRequest represents the request payload for bookmarking a coin.
type AddFavoriteRequest struct {
	ID       string `json:"id" binding:"required,coin_id"`
	Name     string `json:"name" binding:"max=200"`
	Ticker   string `json:"ticker" binding:"max=50"`
	ImageURL string `json:"imageUrl" binding:"omitempty,url"`
}

// ListFavorites handles listing favorites.
// @Summary     List favorites
// @Tags        favorites
// @Produce     json
// @Success     200 {object} map[string][]models.Favorite "Favorites"
// @Router      /favorites [get]
func (h *FavoritesHandler) ListFavorites(c *gin.Context) {
	favorites, err := h.favoritesService.List(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}

// AddFavorite handles bookmarking a coin.
// @Summary     Add favorite
// @Tags        favorites
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body AddFavoriteRequest true "Coin"
// @Success     201 {object} map[string]models.Favorite "Favorite"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Router      /favorites [post]
func (h *FavoritesHandler) AddFavorite(c *gin.Context) {
	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, invalidInput(err))
		return
	}

	favorite, err := h.favoritesService.Add(c.Request.Context(), models.Favorite{
		ID:       req.ID,
		Name:     req.Name,
		Ticker:   req.Ticker,
		ImageURL: req.ImageURL,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"favorite": favorite})
}

// GetFavorite reports whether a coin is bookmarked.
// @Summary     Is favorite
// @Tags        favorites
// @Produce     json
// @Param       id path string true "Coin ID"
// @Success     200 {object} map[string]interface{} "Favorite status"
// @Router      /favorites/{id} [get]
func (h *FavoritesHandler) GetFavorite(c *gin.Context) {
	id, err := coinIDParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	ok, err := h.favoritesService.IsFavorite(c.Request.Context(), id)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "favorite": ok})
}

// RemoveFavorite handles removing a bookmark.
// @Summary     Remove favorite
// @Tags        favorites
// @Produce     json
// @Security    ApiKeyAuth
// @Param       id path string true "Coin ID"
// @Success     200 {object} map[string]string "Favorite removed"
// @Failure     401 {object} ErrorResponse "Invalid API key"
// @Failure     404 {object} ErrorResponse "Not a favorite"
// @Router      /favorites/{id} [delete]
func (h *FavoritesHandler) RemoveFavorite(c *gin.Context) {
	id, err := coinIDParam(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.favoritesService.Remove(c.Request.Context(), id); err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Favorite removed successfully"})
}
