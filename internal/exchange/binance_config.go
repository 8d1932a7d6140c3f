package exchange

import (
	"github.com/go-playground/validator/v10"

	"github.com/rxtech-lab/trendscout/pkg/errors"
)

// BinanceConfig contains the credentials of the futures account.
type BinanceConfig struct {
	APIKey    string `json:"apiKey" jsonschema:"title=API Key,description=Binance API key" validate:"required"`
	SecretKey string `json:"secretKey" jsonschema:"title=Secret Key,description=Binance API secret key" validate:"required"`
	// BaseURL overrides the endpoint, it takes precedence over the testnet switch.
	BaseURL string `json:"baseUrl,omitempty" jsonschema:"title=Base URL" validate:"omitempty,url"`
}

// Validate validates the BinanceConfig struct.
func (c *BinanceConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid binance config", err)
	}

	return nil
}
