package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// Principal is the authenticated caller forwarded by the gateway.
// Authentication itself happens upstream; this service only reads the
// identity headers and scopes them to the request.
type Principal struct {
	CustomerID *uint
	EmployeeID *uint
}

const principalKey = "principal"

// Identity extracts X-Customer-ID / X-Employee-ID headers into a Principal
// stored on the request context. Absent or malformed headers leave the
// corresponding field nil.
func Identity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			p := Principal{
				CustomerID: parseIDHeader(c, "X-Customer-ID"),
				EmployeeID: parseIDHeader(c, "X-Employee-ID"),
			}
			c.Set(principalKey, p)
			return next(c)
		}
	}
}

// PrincipalFrom returns the request principal, or a zero Principal when the
// Identity middleware is not installed.
func PrincipalFrom(c echo.Context) Principal {
	if p, ok := c.Get(principalKey).(Principal); ok {
		return p
	}
	return Principal{}
}

func parseIDHeader(c echo.Context, name string) *uint {
	v := c.Request().Header.Get(name)
	if v == "" {
		return nil
	}
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil || id == 0 {
		return nil
	}
	u := uint(id)
	return &u
}
