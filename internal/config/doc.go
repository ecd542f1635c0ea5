// Package config provides configuration management for the textcase service.
//
// Configuration is loaded from environment variables using the env package.
// Every value has a default, so the service starts with no environment set.
//
// Example usage:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("HTTP server will listen on %s\n", cfg.GetHTTPAddr())
package config
