package commerce

import (
	"context"

	"github.com/jwalitptl/storefront-api/pkg/validator"
)

const passwordComplexityQuery = `
query PasswordComplexitySettings {
  site {
    settings {
      customers {
        passwordComplexitySettings {
          minimumNumbers
          minimumPasswordLength
          minimumSpecialCharacters
          requireLowerCase
          requireNumbers
          requireSpecialCharacters
          requireUpperCase
        }
      }
    }
  }
}`

type passwordComplexityData struct {
	Site struct {
		Settings *struct {
			Customers *struct {
				PasswordComplexitySettings *validator.PasswordComplexitySettings `json:"passwordComplexitySettings"`
			} `json:"customers"`
		} `json:"settings"`
	} `json:"site"`
}

// PasswordComplexitySettings fetches the store's password policy. It
// returns nil when the store has none configured.
func (c *Client) PasswordComplexitySettings(ctx context.Context) (*validator.PasswordComplexitySettings, error) {
	var data passwordComplexityData
	if err := c.Do(ctx, "password_complexity_settings", passwordComplexityQuery, nil, &data); err != nil {
		return nil, err
	}
	if data.Site.Settings == nil || data.Site.Settings.Customers == nil {
		return nil, nil
	}
	return data.Site.Settings.Customers.PasswordComplexitySettings, nil
}
