package commerce

import "context"

const addProductReviewMutation = `
mutation AddProductReview($input: AddProductReviewInput!) {
  catalog {
    addProductReview(input: $input) {
      errors {
        __typename
        ... on Error {
          message
        }
      }
    }
  }
}`

type ReviewInput struct {
	Title  string `json:"title"`
	Text   string `json:"text"`
	Author string `json:"author"`
	Email  string `json:"email"`
	Rating int    `json:"rating"`
}

func (c *Client) AddProductReview(ctx context.Context, productID int, review ReviewInput) error {
	var data struct {
		Catalog struct {
			AddProductReview mutationResult `json:"addProductReview"`
		} `json:"catalog"`
	}
	vars := map[string]any{
		"input": map[string]any{
			"productEntityId": productID,
			"review":          review,
		},
	}
	if err := c.Do(ctx, "add_product_review", addProductReviewMutation, vars, &data); err != nil {
		return err
	}
	return data.Catalog.AddProductReview.err()
}

const subscribeMutation = `
mutation Subscribe($input: CreateSubscriberInput!) {
  newsletter {
    subscribe(input: $input) {
      errors {
        __typename
        ... on Error {
          message
        }
      }
    }
  }
}`

// AlreadySubscribedError is the mutation error type for an email that is
// already on the list.
const AlreadySubscribedError = "CreateSubscriberAlreadyExistsError"

// Subscribe adds email to the newsletter.
func (c *Client) Subscribe(ctx context.Context, email string) error {
	var data struct {
		Newsletter struct {
			Subscribe mutationResult `json:"subscribe"`
		} `json:"newsletter"`
	}
	vars := map[string]any{
		"input": map[string]any{"email": email},
	}
	if err := c.Do(ctx, "newsletter_subscribe", subscribeMutation, vars, &data); err != nil {
		return err
	}
	return data.Newsletter.Subscribe.err()
}
