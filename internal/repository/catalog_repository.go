package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/GioRdrz/food-delivery/internal/models"
)

type RestaurantRepository interface {
	GetByID(id string) (*models.Restaurant, error)
	List(offset, limit int) ([]models.Restaurant, error)
	ListByOwner(ownerID string) ([]models.Restaurant, error)
	Create(restaurant *models.Restaurant) error
	Update(restaurant *models.Restaurant) error
	Delete(id string) error
}

type MealRepository interface {
	GetByID(id string) (*models.Meal, error)
	ListByRestaurant(restaurantID string) ([]models.Meal, error)
	Create(meal *models.Meal) error
	Update(meal *models.Meal) error
	Delete(id string) error
}

type restaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) RestaurantRepository {
	return &restaurantRepository{db: db}
}

func (r *restaurantRepository) GetByID(id string) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.First(&restaurant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}

func (r *restaurantRepository) List(offset, limit int) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	if err := r.db.Offset(offset).Limit(limit).Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *restaurantRepository) ListByOwner(ownerID string) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	if err := r.db.Where("owner_id = ?", ownerID).Find(&restaurants).Error; err != nil {
		return nil, err
	}
	return restaurants, nil
}

func (r *restaurantRepository) Create(restaurant *models.Restaurant) error {
	return r.db.Create(restaurant).Error
}

func (r *restaurantRepository) Update(restaurant *models.Restaurant) error {
	return r.db.Save(restaurant).Error
}

func (r *restaurantRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Meal{}, "restaurant_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Restaurant{}, "id = ?", id).Error
	})
}

type mealRepository struct {
	db *gorm.DB
}

func NewMealRepository(db *gorm.DB) MealRepository {
	return &mealRepository{db: db}
}

func (r *mealRepository) GetByID(id string) (*models.Meal, error) {
	var meal models.Meal
	if err := r.db.First(&meal, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &meal, nil
}

func (r *mealRepository) ListByRestaurant(restaurantID string) ([]models.Meal, error) {
	var meals []models.Meal
	if err := r.db.Where("restaurant_id = ?", restaurantID).Find(&meals).Error; err != nil {
		return nil, err
	}
	return meals, nil
}

func (r *mealRepository) Create(meal *models.Meal) error {
	return r.db.Create(meal).Error
}

func (r *mealRepository) Update(meal *models.Meal) error {
	return r.db.Save(meal).Error
}

func (r *mealRepository) Delete(id string) error {
	return r.db.Delete(&models.Meal{}, "id = ?", id).Error
}
