// Package config provides configuration loading for Dot projects.
//
// A project is configured by dot.json, dot.yaml or dot.yml at its root.
// Values are resolved in this order, each layer overriding the previous:
// built-in defaults, the config file, then DOT_-prefixed environment
// variables. Command line flags are applied by the caller last.
//
// # Configuration File Structure
//
//	server:
//	  host: localhost
//	  port: 8080
//	static:
//	  dir: ./example
//	  prefix: /example/
//	storage:
//	  backend: bolt
//	  path: .dot/state.db
//	metrics:
//	  enabled: true
//	log:
//	  level: debug
//	  format: json
//
// # Environment
//
// Every field has a variable named after its section and key, such as
// DOT_SERVER_PORT, DOT_STORAGE_BACKEND or DOT_LOG_LEVEL.
//
// # Usage
//
//	cfg, err := config.LoadFromWorkingDir()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Listening on", cfg.Address())
package config
