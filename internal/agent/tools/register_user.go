package tools

import (
	"context"
	"fmt"
	"strings"

	"horticulture-assistant/internal/agent"
	"horticulture-assistant/internal/market"
	"horticulture-assistant/internal/model"
	"horticulture-assistant/internal/session"
)

// RegisterUserTool registers the current session's user as a customer or
// supplier, or logs an existing user in by phone.
type RegisterUserTool struct {
	uc       market.UseCase
	sessions *session.Manager
}

// NewRegisterUserTool creates a new registration tool.
func NewRegisterUserTool(uc market.UseCase, sessions *session.Manager) *RegisterUserTool {
	return &RegisterUserTool{uc: uc, sessions: sessions}
}

func (t *RegisterUserTool) Name() string {
	return "register_user"
}

func (t *RegisterUserTool) Description() string {
	return "Register the user as a customer or supplier with their phone number, or log them in if the phone is already registered."
}

func (t *RegisterUserTool) Parameters() map[string]interface{} {
	return objectSchema(map[string]interface{}{
		"user_type": map[string]interface{}{
			"type":        "string",
			"enum":        []string{"customer", "supplier"},
			"description": "Which side of the marketplace the user is on",
		},
		"phone": map[string]interface{}{
			"type":        "string",
			"description": "Ethiopian phone number, e.g. 0911234567 or +251911234567",
		},
		"name": map[string]interface{}{
			"type":        "string",
			"description": "The user's name",
		},
		"location": map[string]interface{}{
			"type":        "string",
			"description": "Default delivery or pickup location",
		},
	}, "user_type", "phone")
}

func (t *RegisterUserTool) Execute(ctx context.Context, sc model.Scope, args map[string]interface{}) (agent.Result, error) {
	if sc.SessionID == "" {
		return agent.Fail("session_id is required"), nil
	}

	userType := strings.ToLower(strings.TrimSpace(stringArg(args, "user_type")))
	if userType != string(model.UserTypeCustomer) && userType != string(model.UserTypeSupplier) {
		return agent.Fail("user_type must be 'customer' or 'supplier'"), nil
	}
	phone := strings.TrimSpace(stringArg(args, "phone"))
	if phone == "" {
		return agent.Fail("phone is required"), nil
	}
	name := stringArg(args, "name")
	location := stringArg(args, "location")

	out, err := t.uc.RegisterUser(ctx, market.RegisterUserInput{
		Phone:    phone,
		Name:     name,
		UserType: userType,
		Location: location,
	})
	if err != nil {
		return agent.Result{}, err
	}

	// The stored user type wins over whatever the caller supplied.
	user := out.User
	_, err = t.sessions.Update(ctx, sc.SessionID, func(s *model.Session) error {
		s.UserID = user.UserID
		s.UserType = model.UserType(user.UserType)
		s.Registered = true
		s.Phone = user.Phone
		if user.Name != "" {
			s.Name = user.Name
		}
		if user.DefaultLocation != "" {
			s.DefaultLocation = user.DefaultLocation
		}
		return nil
	})
	if err != nil {
		return agent.Result{}, err
	}

	if out.AlreadyRegistered {
		return agent.OK(map[string]interface{}{"user_id": user.UserID},
			"You're already registered. I've logged you in to this session."), nil
	}
	return agent.OK(map[string]interface{}{"user_id": user.UserID},
		fmt.Sprintf("Registration complete. Welcome %s! You are registered as a %s.", name, userType)), nil
}
