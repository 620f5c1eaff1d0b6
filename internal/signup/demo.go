package signup

import (
	"fmt"
	"time"

	"devhub/internal/models"
)

const demoPassword = "password123"

// DemoAccount returns step 1 values for a throwaway account of the given
// role. The email embeds now so repeated demos don't collide.
func DemoAccount(userType string, now time.Time) (map[string]string, error) {
	var name, prefix string
	switch userType {
	case models.UserTypeDeveloper:
		name, prefix = "Demo Developer", "dev"
	case models.UserTypeClient:
		name, prefix = "Demo Client", "client"
	default:
		return nil, ErrSelectUserTypeFirst
	}
	return map[string]string{
		"fullName":        name,
		"email":           fmt.Sprintf("demo.%s.%d@example.com", prefix, now.UnixMilli()),
		"password":        demoPassword,
		"confirmPassword": demoPassword,
		"userType":        userType,
	}, nil
}
