package requesthandler

import (
	"github.com/labstack/echo"
)

// RawResponse writes the given body as JSON with the given HTTP code
func RawResponse(c echo.Context, response interface{}, httpCode int) error {
	return c.JSON(httpCode, response)
}
