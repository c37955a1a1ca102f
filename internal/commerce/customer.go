package commerce

import "context"

const loginMutation = `
mutation Login($email: String!, $password: String!) {
  login(email: $email, password: $password) {
    customerAccessToken {
      value
      expiresAt
    }
    customer {
      entityId
      firstName
      lastName
      email
    }
  }
}`

type Customer struct {
	EntityID  int    `json:"entityId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Company   string `json:"company,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type AccessToken struct {
	Value     string `json:"value"`
	ExpiresAt string `json:"expiresAt"`
}

type LoginResult struct {
	CustomerAccessToken AccessToken `json:"customerAccessToken"`
	Customer            Customer    `json:"customer"`
}

// Login exchanges credentials for a customer access token. Wrong
// credentials come back as *Error.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	var data struct {
		Login LoginResult `json:"login"`
	}
	err := c.Do(ctx, "login", loginMutation, map[string]any{
		"email":    email,
		"password": password,
	}, &data)
	if err != nil {
		return nil, err
	}
	return &data.Login, nil
}

const changePasswordMutation = `
mutation CustomerChangePassword($input: CustomerChangePasswordInput!) {
  customer {
    changePassword(input: $input) {
      errors {
        __typename
        ... on Error {
          message
        }
      }
    }
  }
}`

type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword changes the password of the customer in ctx.
func (c *Client) ChangePassword(ctx context.Context, input ChangePasswordInput) error {
	var data struct {
		Customer struct {
			ChangePassword mutationResult `json:"changePassword"`
		} `json:"customer"`
	}
	if err := c.Do(ctx, "change_password", changePasswordMutation, map[string]any{"input": input}, &data); err != nil {
		return err
	}
	return data.Customer.ChangePassword.err()
}

const updateCustomerMutation = `
mutation UpdateCustomer($input: UpdateCustomerInput!) {
  customer {
    updateCustomer(input: $input) {
      customer {
        entityId
        firstName
        lastName
        email
        company
      }
      errors {
        __typename
        ... on Error {
          message
        }
      }
    }
  }
}`

type UpdateCustomerInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Company   string `json:"company,omitempty"`
}

// UpdateCustomer updates the details of the customer in ctx.
func (c *Client) UpdateCustomer(ctx context.Context, input UpdateCustomerInput) (*Customer, error) {
	var data struct {
		Customer struct {
			UpdateCustomer struct {
				mutationResult
				Customer *Customer `json:"customer"`
			} `json:"updateCustomer"`
		} `json:"customer"`
	}
	if err := c.Do(ctx, "update_customer", updateCustomerMutation, map[string]any{"input": input}, &data); err != nil {
		return nil, err
	}
	res := data.Customer.UpdateCustomer
	if err := res.err(); err != nil {
		return nil, err
	}
	return res.Customer, nil
}

const registerCustomerMutation = `
mutation RegisterCustomer($input: RegisterCustomerInput!) {
  customer {
    registerCustomer(input: $input) {
      customer {
        entityId
        firstName
        lastName
        email
      }
      errors {
        __typename
        ... on Error {
          message
        }
      }
    }
  }
}`

type RegisterCustomerInput struct {
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	Company          string `json:"company,omitempty"`
	Phone            string `json:"phone,omitempty"`
	AcceptsMarketing bool   `json:"acceptsMarketingEmails"`
}

func (c *Client) RegisterCustomer(ctx context.Context, input RegisterCustomerInput) (*Customer, error) {
	var data struct {
		Customer struct {
			RegisterCustomer struct {
				mutationResult
				Customer *Customer `json:"customer"`
			} `json:"registerCustomer"`
		} `json:"customer"`
	}
	if err := c.Do(ctx, "register_customer", registerCustomerMutation, map[string]any{"input": input}, &data); err != nil {
		return nil, err
	}
	res := data.Customer.RegisterCustomer
	if err := res.err(); err != nil {
		return nil, err
	}
	return res.Customer, nil
}

const requestResetPasswordMutation = `
mutation RequestResetPassword($input: RequestResetPasswordInput!) {
  customer {
    requestResetPassword(input: $input) {
      errors {
        __typename
        ... on Error {
          message
        }
      }
    }
  }
}`

type RequestResetPasswordInput struct {
	Email string `json:"email"`
	// Path is the storefront page the reset link points to.
	Path string `json:"path"`
}

// RequestResetPassword asks the backend to email a reset link.
func (c *Client) RequestResetPassword(ctx context.Context, input RequestResetPasswordInput) error {
	var data struct {
		Customer struct {
			RequestResetPassword mutationResult `json:"requestResetPassword"`
		} `json:"customer"`
	}
	if err := c.Do(ctx, "request_reset_password", requestResetPasswordMutation, map[string]any{"input": input}, &data); err != nil {
		return err
	}
	return data.Customer.RequestResetPassword.err()
}

const resetPasswordMutation = `
mutation ResetPassword($input: ResetPasswordInput!) {
  customer {
    resetPassword(input: $input) {
      errors {
        __typename
        ... on Error {
          message
        }
      }
    }
  }
}`

type ResetPasswordInput struct {
	CustomerEntityID int    `json:"customerEntityId"`
	Token            string `json:"token"`
	NewPassword      string `json:"newPassword"`
}

// ResetPassword sets a new password using the token from a reset link.
func (c *Client) ResetPassword(ctx context.Context, input ResetPasswordInput) error {
	var data struct {
		Customer struct {
			ResetPassword mutationResult `json:"resetPassword"`
		} `json:"customer"`
	}
	if err := c.Do(ctx, "reset_password", resetPasswordMutation, map[string]any{"input": input}, &data); err != nil {
		return err
	}
	return data.Customer.ResetPassword.err()
}
