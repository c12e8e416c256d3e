// Package handler implements the HTTP endpoints. Every response uses the
// same envelope: {"success": true, "data": ...} or
// {"success": false, "error": "..."}.
package handler

import "github.com/labstack/echo/v4"

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func jsonOK(c echo.Context, status int, data any) error {
	return c.JSON(status, envelope{Success: true, Data: data})
}

func jsonErr(c echo.Context, status int, msg string) error {
	return c.JSON(status, envelope{Success: false, Error: msg})
}
