package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// CurrentUserID returns the subject stored by JWTAuth as a string, or
// "anon" for unauthenticated requests.  JSON numbers in claims decode as
// float64.
func CurrentUserID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatInt(int64(v), 10)
	}
	return "anon"
}
