// Package config provides configuration loading for smarthome-core.
//
// Configuration is read from a YAML file, layered over hardcoded defaults,
// and finally overridden by SMARTHOME_* environment variables. The loaded
// configuration is validated before use; an invalid configuration is a
// startup failure, never a silently-corrected value.
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    return err
//	}
//
// Secrets (MQTT password, history token) should be supplied through the
// environment rather than committed to the config file.
package config
