package commerce

import "context"

const addressErrorsFragment = `
      errors {
        __typename
        ... on Error {
          message
        }
      }`

const addAddressMutation = `
mutation AddCustomerAddress($input: AddCustomerAddressInput!) {
  customer {
    addCustomerAddress(input: $input) {
      address {
        entityId
      }` + addressErrorsFragment + `
    }
  }
}`

const updateAddressMutation = `
mutation UpdateCustomerAddress($input: UpdateCustomerAddressInput!) {
  customer {
    updateCustomerAddress(input: $input) {
      address {
        entityId
      }` + addressErrorsFragment + `
    }
  }
}`

const deleteAddressMutation = `
mutation DeleteCustomerAddress($input: DeleteCustomerAddressInput!) {
  customer {
    deleteCustomerAddress(input: $input) {` + addressErrorsFragment + `
    }
  }
}`

type TextFormField struct {
	FieldEntityID int    `json:"fieldEntityId"`
	Text          string `json:"text"`
}

type AddressFormFields struct {
	Texts []TextFormField `json:"texts,omitempty"`
}

type AddressInput struct {
	FirstName       string             `json:"firstName"`
	LastName        string             `json:"lastName"`
	Company         string             `json:"company,omitempty"`
	Address1        string             `json:"address1"`
	Address2        string             `json:"address2,omitempty"`
	City            string             `json:"city"`
	StateOrProvince string             `json:"stateOrProvince,omitempty"`
	PostalCode      string             `json:"postalCode,omitempty"`
	Phone           string             `json:"phone,omitempty"`
	CountryCode     string             `json:"countryCode"`
	FormFields      *AddressFormFields `json:"formFields,omitempty"`
}

type addressPayload struct {
	mutationResult
	Address *struct {
		EntityID int `json:"entityId"`
	} `json:"address"`
}

func (p addressPayload) result() (int, error) {
	if err := p.err(); err != nil {
		return 0, err
	}
	if p.Address == nil {
		return 0, nil
	}
	return p.Address.EntityID, nil
}

// AddAddress adds an address to the book of the customer in ctx and
// returns its id.
func (c *Client) AddAddress(ctx context.Context, input AddressInput) (int, error) {
	var data struct {
		Customer struct {
			AddCustomerAddress addressPayload `json:"addCustomerAddress"`
		} `json:"customer"`
	}
	if err := c.Do(ctx, "add_address", addAddressMutation, map[string]any{"input": input}, &data); err != nil {
		return 0, err
	}
	return data.Customer.AddCustomerAddress.result()
}

func (c *Client) UpdateAddress(ctx context.Context, addressID int, input AddressInput) error {
	var data struct {
		Customer struct {
			UpdateCustomerAddress addressPayload `json:"updateCustomerAddress"`
		} `json:"customer"`
	}
	vars := map[string]any{
		"input": map[string]any{
			"addressEntityId": addressID,
			"data":            input,
		},
	}
	if err := c.Do(ctx, "update_address", updateAddressMutation, vars, &data); err != nil {
		return err
	}
	_, err := data.Customer.UpdateCustomerAddress.result()
	return err
}

func (c *Client) DeleteAddress(ctx context.Context, addressID int) error {
	var data struct {
		Customer struct {
			DeleteCustomerAddress mutationResult `json:"deleteCustomerAddress"`
		} `json:"customer"`
	}
	vars := map[string]any{
		"input": map[string]any{"addressEntityId": addressID},
	}
	if err := c.Do(ctx, "delete_address", deleteAddressMutation, vars, &data); err != nil {
		return err
	}
	return data.Customer.DeleteCustomerAddress.err()
}
