package services

import (
	"context"
	"encoding/json"
	"sync"

	apperrors "coinwatch/internal/errors"
	"coinwatch/internal/kvstore"
	"coinwatch/internal/logger"
	"coinwatch/internal/models"
)

// KeyFavorites is the storage key of the favorites list.
const KeyFavorites = "@crypto_favorites"

// favoritesService keeps the bookmarked coins in the key-value store.
type favoritesService struct {
	store kvstore.Store
	mu    sync.Mutex
}

// NewFavoritesService creates a new FavoritesServicer.
func NewFavoritesService(store kvstore.Store) FavoritesServicer {
	return &favoritesService{store: store}
}

// List returns the favorites in the order they were added.
func (s *favoritesService) List(ctx context.Context) ([]models.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx), nil
}

// Add bookmarks a coin. Adding a coin twice keeps the original entry.
func (s *favoritesService) Add(ctx context.Context, favorite models.Favorite) (models.Favorite, error) {
	favorite.ID = models.NormalizeCoinID(favorite.ID)
	if favorite.ID == "" {
		return models.Favorite{}, apperrors.WithMessage(apperrors.ErrInvalidInput, "Coin id is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	favorites := s.load(ctx)
	for _, f := range favorites {
		if f.ID == favorite.ID {
			return f, nil
		}
	}

	if err := s.save(ctx, append(favorites, favorite)); err != nil {
		return models.Favorite{}, err
	}
	return favorite, nil
}

// Remove deletes a bookmark.
func (s *favoritesService) Remove(ctx context.Context, coinID string) error {
	coinID = models.NormalizeCoinID(coinID)
	s.mu.Lock()
	defer s.mu.Unlock()

	favorites := s.load(ctx)
	for i, f := range favorites {
		if f.ID == coinID {
			return s.save(ctx, append(favorites[:i], favorites[i+1:]...))
		}
	}
	return apperrors.ErrFavoriteNotFound
}

// IsFavorite reports whether coinID is bookmarked.
func (s *favoritesService) IsFavorite(ctx context.Context, coinID string) (bool, error) {
	coinID = models.NormalizeCoinID(coinID)
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, f := range s.load(ctx) {
		if f.ID == coinID {
			return true, nil
		}
	}
	return false, nil
}

// load treats unreadable or malformed data as an empty list.
func (s *favoritesService) load(ctx context.Context) []models.Favorite {
	favorites := []models.Favorite{}

	raw, ok, err := s.store.Get(ctx, KeyFavorites)
	if err != nil {
		logger.Get().Warnw("Failed to read favorites", "error", err)
		return favorites
	}
	if !ok {
		return favorites
	}
	if err := json.Unmarshal([]byte(raw), &favorites); err != nil || favorites == nil {
		logger.Get().Warnw("Discarding malformed favorites", "error", err)
		return []models.Favorite{}
	}
	return favorites
}

// save drops the key once the list is empty.
func (s *favoritesService) save(ctx context.Context, favorites []models.Favorite) error {
	if len(favorites) == 0 {
		if err := s.store.Delete(ctx, KeyFavorites); err != nil {
			return apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
		}
		return nil
	}

	b, err := json.Marshal(favorites)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	if err := s.store.Set(ctx, KeyFavorites, string(b)); err != nil {
		return apperrors.Wrap(apperrors.ErrPersistenceFailure, err)
	}
	return nil
}
