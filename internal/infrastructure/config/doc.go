// Package config loads and validates the gateway configuration.
//
// Precedence, lowest to highest: built-in defaults, the YAML file,
// LARKHUB_* environment variables. The merged result is validated
// before anything else starts, so a bad config fails fast at boot.
//
// Security Considerations:
//   - Broker credentials belong in environment variables, not the file
//   - The config file should have restricted permissions (0600)
//
// Usage:
//
//	cfg, err := config.Load("configs/config.yaml")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Site.Name)
package config
