package service

import (
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/GioRdrz/food-delivery/internal/apperr"
	"github.com/GioRdrz/food-delivery/internal/models"
	"github.com/GioRdrz/food-delivery/internal/repository"
)

type MealService struct {
	meals       repository.MealRepository
	restaurants repository.RestaurantRepository
	log         *slog.Logger
}

func NewMealService(meals repository.MealRepository, restaurants repository.RestaurantRepository, log *slog.Logger) *MealService {
	return &MealService{meals: meals, restaurants: restaurants, log: log}
}

func (s *MealService) GetByID(id string) (*models.Meal, error) {
	meal, err := s.meals.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFoundf("meal not found")
		}
		return nil, apperr.Internalf(err, "failed to load meal")
	}
	return meal, nil
}

func (s *MealService) ListByRestaurant(restaurantID string) ([]models.Meal, error) {
	meals, err := s.meals.ListByRestaurant(restaurantID)
	if err != nil {
		return nil, apperr.Internalf(err, "failed to list meals")
	}
	return meals, nil
}

func (s *MealService) Create(actor *models.User, restaurantID, name, description string, price decimal.Decimal) (*models.Meal, error) {
	restaurant, err := s.restaurants.GetByID(restaurantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFoundf("restaurant not found")
		}
		return nil, apperr.Internalf(err, "failed to load restaurant")
	}
	if actor.Role != models.RoleAdmin && restaurant.OwnerID != actor.ID {
		return nil, apperr.Forbiddenf("not your restaurant")
	}
	if !price.IsPositive() {
		return nil, apperr.InvalidStatef("price must be positive")
	}

	meal := &models.Meal{
		Name:         name,
		Description:  description,
		Price:        price,
		RestaurantID: restaurantID,
	}
	if err := s.meals.Create(meal); err != nil {
		return nil, apperr.Internalf(err, "failed to create meal")
	}

	s.log.Info("meal created", "meal_id", meal.ID, "restaurant_id", restaurantID)
	return meal, nil
}

type MealUpdate struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	IsBlocked   *bool
}

func (s *MealService) Update(actor *models.User, id string, update MealUpdate) (*models.Meal, error) {
	meal, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if err := s.requireOwnership(actor, meal.RestaurantID); err != nil {
		return nil, err
	}

	if update.Name != nil {
		meal.Name = *update.Name
	}
	if update.Description != nil {
		meal.Description = *update.Description
	}
	if update.Price != nil {
		if !update.Price.IsPositive() {
			return nil, apperr.InvalidStatef("price must be positive")
		}
		meal.Price = *update.Price
	}
	if update.IsBlocked != nil {
		meal.IsBlocked = *update.IsBlocked
	}

	if err := s.meals.Update(meal); err != nil {
		return nil, apperr.Internalf(err, "failed to update meal")
	}
	return meal, nil
}

func (s *MealService) Delete(actor *models.User, id string) error {
	meal, err := s.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.requireOwnership(actor, meal.RestaurantID); err != nil {
		return err
	}

	if err := s.meals.Delete(id); err != nil {
		return apperr.Internalf(err, "failed to delete meal")
	}
	return nil
}

func (s *MealService) requireOwnership(actor *models.User, restaurantID string) error {
	if actor.Role == models.RoleAdmin {
		return nil
	}
	restaurant, err := s.restaurants.GetByID(restaurantID)
	if err != nil {
		return apperr.Internalf(err, "failed to load restaurant")
	}
	if restaurant.OwnerID != actor.ID {
		return apperr.Forbiddenf("not your restaurant")
	}
	return nil
}
