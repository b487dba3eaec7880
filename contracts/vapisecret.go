package contracts

import (
	"errors"

	"github.com/labstack/echo"
	"github.com/restoreflow/vapi-sheets-webhook/configmanager"
)

// VapiSecretHeader is the header Vapi signs its webhook requests with
const VapiSecretHeader = "X-Vapi-Secret"

// VapiSecret holds the shared secret presented by an inbound webhook request
type VapiSecret struct {
	Token string
}

func (vs *VapiSecret) ExtractFromHTTP(c echo.Context) error {
	vs.Token = c.Request().Header.Get(VapiSecretHeader)
	return nil
}

// Authenticate compares the presented token against the configured secret.
// When no secret is configured authentication is disabled.
func (vs *VapiSecret) Authenticate() error {
	secret := configmanager.ConfStore.VapiSecretToken
	if secret == "" {
		return nil
	}
	if vs.Token != secret {
		return errors.New("Invalid X-Vapi-Secret Header")
	}
	return nil
}
