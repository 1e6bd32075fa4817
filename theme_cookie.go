package main

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Zachkp/folio/internal/theme"
)

// themeCookieMaxAge keeps the preference for a year.
const themeCookieMaxAge = 365 * 24 * 3600

// cookieThemeStore persists the theme flag in the visitor's browser.
type cookieThemeStore struct {
	c *gin.Context
}

func (s cookieThemeStore) Load(context.Context) (bool, bool, error) {
	raw, err := s.c.Cookie(theme.StorageKey)
	if err != nil {
		return false, false, nil
	}
	dark, err := strconv.ParseBool(raw)
	if err != nil {
		// Unparseable values are treated as unset.
		return false, false, nil
	}
	return dark, true, nil
}

func (s cookieThemeStore) Save(_ context.Context, dark bool) error {
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(theme.StorageKey, strconv.FormatBool(dark), themeCookieMaxAge, "/", "", false, true)
	return nil
}
