package config

import (
	"errors"
	"net"
	"net/http"
	"strconv"
	"strings"
)

const (
	LocaleEN = "en"
	LocaleZH = "zh"
)

var welcomes = map[string]string{
	LocaleEN: "Welcome to index pages.",
	LocaleZH: "欢迎来到首页",
}

/*
Validation is strict: the first invalid field stops startup.
*/

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Service.Name) == "" {
		return fieldError("service.name", "must not be empty")
	}

	if err := validateListen(c.Server.Listen); err != nil {
		return err
	}

	if c.Server.ReadTimeout <= 0 {
		return fieldError("server.read_timeout", "must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		return fieldError("server.write_timeout", "must be positive")
	}
	if c.Server.IdleTimeout <= 0 {
		return fieldError("server.idle_timeout", "must be positive")
	}

	// An explicit welcome makes the locale irrelevant.
	if _, ok := welcomes[c.Responder.Locale]; !ok && c.Responder.Welcome == "" {
		return fieldError("responder.locale", "unknown locale "+strconv.Quote(c.Responder.Locale))
	}

	switch c.Responder.NotFoundStatus {
	case http.StatusOK, http.StatusNotFound:
	default:
		return fieldError("responder.not_found_status", "must be 200 or 404")
	}

	return nil
}

func validateListen(addr string) error {
	if strings.TrimSpace(addr) == "" {
		return fieldError("server.listen", "is required")
	}

	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		return fieldError("server.listen", "must be host:port")
	}

	n, err := strconv.Atoi(port)
	if err != nil || n < 0 || n > 65535 {
		return fieldError("server.listen", "port must be between 0 and 65535")
	}

	return nil
}

func fieldError(field, msg string) error {
	return errors.New("config " + field + ": " + msg)
}
