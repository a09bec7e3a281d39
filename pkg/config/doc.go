// Package config loads warden configuration.
//
// Values come from three layers, later layers winning:
//
//  1. built-in defaults
//  2. the YAML file $WARDEN_CONFIG_PATH/warden.yml (default /etc/warden/warden.yml)
//  3. environment variables (DATABASE_URL, WARDEN_TOKEN_SECRET, ...)
//
// Every attribute remembers which layer supplied it so that
// `wardenctl configuration show` can report it.
//
// # Example
//
//	cfg, err := config.Load()
//	if err != nil {
//	    return err
//	}
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
