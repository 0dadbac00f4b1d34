package service

import (
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/GioRdrz/food-delivery/internal/apperr"
	"github.com/GioRdrz/food-delivery/internal/models"
	"github.com/GioRdrz/food-delivery/internal/repository"
)

var oneHundred = decimal.NewFromInt(100)

type CouponService struct {
	coupons repository.CouponRepository
	log     *slog.Logger
}

func NewCouponService(coupons repository.CouponRepository, log *slog.Logger) *CouponService {
	return &CouponService{coupons: coupons, log: log}
}

func (s *CouponService) GetByID(id string) (*models.Coupon, error) {
	coupon, err := s.coupons.GetByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.NotFoundf("coupon not found")
		}
		return nil, apperr.Internalf(err, "failed to load coupon")
	}
	return coupon, nil
}

func (s *CouponService) List(offset, limit int) ([]models.Coupon, error) {
	coupons, err := s.coupons.List(offset, limit)
	if err != nil {
		return nil, apperr.Internalf(err, "failed to list coupons")
	}
	return coupons, nil
}

func (s *CouponService) Create(actor *models.User, code string, discountPercentage decimal.Decimal) (*models.Coupon, error) {
	if actor.Role != models.RoleAdmin {
		return nil, apperr.Forbiddenf("only admins can manage coupons")
	}
	if !discountPercentage.IsPositive() || discountPercentage.GreaterThan(oneHundred) {
		return nil, apperr.InvalidStatef("discount percentage must be in (0, 100]")
	}

	if _, err := s.coupons.GetByCode(code); err == nil {
		return nil, apperr.Conflictf("coupon code already exists")
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperr.Internalf(err, "failed to check coupon code")
	}

	coupon := &models.Coupon{
		Code:               code,
		DiscountPercentage: discountPercentage,
		IsActive:           true,
	}
	if err := s.coupons.Create(coupon); err != nil {
		return nil, apperr.Internalf(err, "failed to create coupon")
	}

	s.log.Info("coupon created", "coupon_id", coupon.ID, "code", code)
	return coupon, nil
}

type CouponUpdate struct {
	Code               *string
	DiscountPercentage *decimal.Decimal
	IsActive           *bool
}

func (s *CouponService) Update(actor *models.User, id string, update CouponUpdate) (*models.Coupon, error) {
	if actor.Role != models.RoleAdmin {
		return nil, apperr.Forbiddenf("only admins can manage coupons")
	}

	coupon, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	if update.Code != nil && *update.Code != coupon.Code {
		if _, err := s.coupons.GetByCode(*update.Code); err == nil {
			return nil, apperr.Conflictf("coupon code already exists")
		} else if !errors.Is(err, repository.ErrNotFound) {
			return nil, apperr.Internalf(err, "failed to check coupon code")
		}
		coupon.Code = *update.Code
	}
	if update.DiscountPercentage != nil {
		if !update.DiscountPercentage.IsPositive() || update.DiscountPercentage.GreaterThan(oneHundred) {
			return nil, apperr.InvalidStatef("discount percentage must be in (0, 100]")
		}
		coupon.DiscountPercentage = *update.DiscountPercentage
	}
	if update.IsActive != nil {
		coupon.IsActive = *update.IsActive
	}

	if err := s.coupons.Update(coupon); err != nil {
		return nil, apperr.Internalf(err, "failed to update coupon")
	}
	return coupon, nil
}

func (s *CouponService) Delete(actor *models.User, id string) error {
	if actor.Role != models.RoleAdmin {
		return apperr.Forbiddenf("only admins can manage coupons")
	}
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	if err := s.coupons.Delete(id); err != nil {
		return apperr.Internalf(err, "failed to delete coupon")
	}
	return nil
}
