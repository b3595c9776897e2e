package config

import "errors"

// validate checks that the merged configuration is usable before any
// component is constructed from it.
func (c *StructuredConfig) validate() error {
	var err error

	if c.App.TokenSignKey == "" {
		err = errors.Join(err, ErrNoTokenSignKey)
	}

	if c.Storage.DB.DSN == "" {
		err = errors.Join(err, ErrNoDatabaseDSN)
	}

	if c.App.MaxUploadSize <= 0 {
		err = errors.Join(err, ErrInvalidMaxUploadSize)
	}

	if len(c.App.AllowedExtensions) == 0 {
		err = errors.Join(err, ErrNoAllowedExtensions)
	}

	return err
}
