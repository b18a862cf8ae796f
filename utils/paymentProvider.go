package utils

import (
	"fmt"
	"strconv"
	"time"

	"lms/config"

	"github.com/go-resty/resty/v2"
)

// PaymentProviderClient talks to the checkout provider's REST API. Calls are
// made inline during request handling, so every call carries a bounded timeout
// instead of hanging on a slow provider.
type PaymentProviderClient struct {
	client *resty.Client
}

type providerObject struct {
	ID    string `json:"id"`
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CheckoutSession is the provider's checkout session as far as we care about it.
type CheckoutSession struct {
	ID            string `json:"id"`
	URL           string `json:"url"`
	PaymentStatus string `json:"payment_status"`
	Error         struct {
		Message string `json:"message"`
	} `json:"error"`
}

// NewPaymentProviderClient builds a client from the loaded configuration.
func NewPaymentProviderClient() *PaymentProviderClient {
	client := resty.New().
		SetBaseURL(config.AppConfig.PaymentAPIURL).
		SetAuthToken(config.AppConfig.PaymentAPIKey).
		SetTimeout(15 * time.Second)

	return &PaymentProviderClient{client: client}
}

// CreateProduct registers a product on the provider and returns its id.
func (p *PaymentProviderClient) CreateProduct(name, description string) (string, error) {
	form := map[string]string{"name": name}
	if description != "" {
		form["description"] = description
	}

	var result providerObject
	resp, err := p.client.R().
		SetFormData(form).
		SetResult(&result).
		SetError(&result).
		Post("/products")
	if err != nil {
		return "", fmt.Errorf("failed to create product: %v", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("provider error creating product: %s", providerMessage(result.Error.Message, resp.Status()))
	}
	if result.ID == "" {
		return "", fmt.Errorf("provider returned no product id")
	}

	return result.ID, nil
}

// CreatePrice registers a price for the product. The stored decimal amount is
// converted to the provider's minor currency unit (multiply by 100, truncate).
func (p *PaymentProviderClient) CreatePrice(productID string, amount float64, currency string) (string, error) {
	minorUnits := int64(amount * 100)

	var result providerObject
	resp, err := p.client.R().
		SetFormData(map[string]string{
			"unit_amount": strconv.FormatInt(minorUnits, 10),
			"currency":    currency,
			"product":     productID,
		}).
		SetResult(&result).
		SetError(&result).
		Post("/prices")
	if err != nil {
		return "", fmt.Errorf("failed to create price: %v", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("provider error creating price: %s", providerMessage(result.Error.Message, resp.Status()))
	}
	if result.ID == "" {
		return "", fmt.Errorf("provider returned no price id")
	}

	return result.ID, nil
}

// CreateCheckoutSession opens a hosted checkout session for the price and
// returns the session id plus the redirect URL the customer should visit.
func (p *PaymentProviderClient) CreateCheckoutSession(priceID, successURL, cancelURL string) (*CheckoutSession, error) {
	var result CheckoutSession
	resp, err := p.client.R().
		SetFormData(map[string]string{
			"mode":                    "payment",
			"line_items[0][price]":    priceID,
			"line_items[0][quantity]": "1",
			"success_url":             successURL,
			"cancel_url":              cancelURL,
		}).
		SetResult(&result).
		SetError(&result).
		Post("/checkout/sessions")
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %v", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("provider error creating checkout session: %s", providerMessage(result.Error.Message, resp.Status()))
	}

	return &result, nil
}

// RetrieveSession fetches the current state of a checkout session.
func (p *PaymentProviderClient) RetrieveSession(sessionID string) (*CheckoutSession, error) {
	var result CheckoutSession
	resp, err := p.client.R().
		SetResult(&result).
		SetError(&result).
		Get("/checkout/sessions/" + sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve checkout session: %v", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("provider error retrieving session: %s", providerMessage(result.Error.Message, resp.Status()))
	}

	return &result, nil
}

func providerMessage(message, status string) string {
	if message != "" {
		return message
	}
	return status
}
