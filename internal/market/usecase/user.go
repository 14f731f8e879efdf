package usecase

import (
	"context"
	"errors"

	"horticulture-assistant/internal/market"
	"horticulture-assistant/internal/market/repository"
)

// RegisterUser registers a new user, or logs an existing one in when the
// phone is already on file. The stored user type is never overwritten by a
// repeat registration.
func (uc *implUseCase) RegisterUser(ctx context.Context, input market.RegisterUserInput) (market.RegisterUserOutput, error) {
	existing, err := uc.repo.GetUserByPhone(ctx, input.Phone)
	if err == nil {
		return market.RegisterUserOutput{User: existing, AlreadyRegistered: true}, nil
	}
	if !errors.Is(err, market.ErrNotFound) {
		uc.l.Errorf(ctx, "%s: %v", uc.scope("RegisterUser"), err)
		return market.RegisterUserOutput{}, err
	}

	user, err := uc.repo.CreateUser(ctx, repository.CreateUserOptions{
		Phone:    input.Phone,
		Name:     input.Name,
		UserType: input.UserType,
		Location: input.Location,
	})
	if err != nil {
		if errors.Is(err, market.ErrPhoneTaken) {
			// Lost a race with a concurrent registration. Treat it as a login.
			if existing, lookupErr := uc.repo.GetUserByPhone(ctx, input.Phone); lookupErr == nil {
				return market.RegisterUserOutput{User: existing, AlreadyRegistered: true}, nil
			}
		}
		uc.l.Errorf(ctx, "%s: %v", uc.scope("RegisterUser"), err)
		return market.RegisterUserOutput{}, err
	}

	uc.l.Infof(ctx, "%s: registered %s as %s", uc.scope("RegisterUser"), user.UserID, user.UserType)
	return market.RegisterUserOutput{User: user}, nil
}

// GetUserByPhone looks a user up by phone number.
func (uc *implUseCase) GetUserByPhone(ctx context.Context, phone string) (market.User, error) {
	return uc.repo.GetUserByPhone(ctx, phone)
}
