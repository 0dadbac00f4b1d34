package service

import (
	"errors"
	"log/slog"

	"github.com/GioRdrz/food-delivery/internal/apperr"
	"github.com/GioRdrz/food-delivery/internal/models"
	"github.com/GioRdrz/food-delivery/internal/repository"
)

type RestaurantService struct {
	restaurants repository.RestaurantRepository
	log         *slog.Logger
}

func NewRestaurantService(restaurants repository.RestaurantRepository, log *slog.Logger) *RestaurantService {
	return &RestaurantService{restaurants: restaurants, log: log}
}

func (s *RestaurantService) GetByID(id string) (*models.Restaurant, error) {
	restaurant, err := s.restaurants.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFoundf("restaurant not found")
		}
		return nil, apperr.Internalf(err, "failed to load restaurant")
	}
	return restaurant, nil
}

func (s *RestaurantService) List(offset, limit int) ([]models.Restaurant, error) {
	restaurants, err := s.restaurants.List(offset, limit)
	if err != nil {
		return nil, apperr.Internalf(err, "failed to list restaurants")
	}
	return restaurants, nil
}

func (s *RestaurantService) ListByOwner(ownerID string) ([]models.Restaurant, error) {
	restaurants, err := s.restaurants.ListByOwner(ownerID)
	if err != nil {
		return nil, apperr.Internalf(err, "failed to list restaurants")
	}
	return restaurants, nil
}

// Create registers a restaurant owned by the actor. Restaurant owners and
// admins only.
func (s *RestaurantService) Create(actor *models.User, name, description string) (*models.Restaurant, error) {
	if actor.Role != models.RoleRestaurantOwner && actor.Role != models.RoleAdmin {
		return nil, apperr.Forbiddenf("only restaurant owners can create restaurants")
	}

	restaurant := &models.Restaurant{
		Name:        name,
		Description: description,
		OwnerID:     actor.ID,
	}
	if err := s.restaurants.Create(restaurant); err != nil {
		return nil, apperr.Internalf(err, "failed to create restaurant")
	}

	s.log.Info("restaurant created", "restaurant_id", restaurant.ID, "owner_id", actor.ID)
	return restaurant, nil
}

type RestaurantUpdate struct {
	Name        *string
	Description *string
	IsBlocked   *bool
}

func (s *RestaurantService) Update(actor *models.User, id string, update RestaurantUpdate) (*models.Restaurant, error) {
	restaurant, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleAdmin && restaurant.OwnerID != actor.ID {
		return nil, apperr.Forbiddenf("not your restaurant")
	}

	if update.Name != nil {
		restaurant.Name = *update.Name
	}
	if update.Description != nil {
		restaurant.Description = *update.Description
	}
	// The blocked flag is an admin instrument; owners cannot unblock
	// themselves.
	if update.IsBlocked != nil {
		if actor.Role != models.RoleAdmin {
			return nil, apperr.Forbiddenf("only admins can block or unblock restaurants")
		}
		restaurant.IsBlocked = *update.IsBlocked
	}

	if err := s.restaurants.Update(restaurant); err != nil {
		return nil, apperr.Internalf(err, "failed to update restaurant")
	}
	return restaurant, nil
}

func (s *RestaurantService) Delete(actor *models.User, id string) error {
	restaurant, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if actor.Role != models.RoleAdmin && restaurant.OwnerID != actor.ID {
		return apperr.Forbiddenf("not your restaurant")
	}

	if err := s.restaurants.Delete(id); err != nil {
		return apperr.Internalf(err, "failed to delete restaurant")
	}
	return nil
}
