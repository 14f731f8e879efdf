package postgre

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"horticulture-assistant/internal/market"
	"horticulture-assistant/internal/market/repository"
)

// CreateUser registers a new user. The phone column is unique, so a duplicate
// registration surfaces as market.ErrPhoneTaken.
func (r *implRepository) CreateUser(ctx context.Context, opt repository.CreateUserOptions) (market.User, error) {
	user := market.User{
		UserID:          uuid.NewString(),
		Phone:           opt.Phone,
		Name:            opt.Name,
		UserType:        opt.UserType,
		DefaultLocation: opt.Location,
		CreatedAt:       time.Now().UTC(),
	}

	err := r.db.WithContext(ctx).Create(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return market.User{}, market.ErrPhoneTaken
		}
		r.l.Errorf(ctx, "%s: %v", r.scope("CreateUser"), err)
		return market.User{}, err
	}
	return user, nil
}

// GetUserByPhone looks a user up by phone number.
func (r *implRepository) GetUserByPhone(ctx context.Context, phone string) (market.User, error) {
	var user market.User
	err := r.db.WithContext(ctx).Where("phone = ?", phone).First(&user).Error
	if err != nil {
		return market.User{}, translateErr(err)
	}
	return user, nil
}
