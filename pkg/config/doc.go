// Package config provides configuration loading and validation for the
// support agent service.
//
// Configuration is loaded from a YAML file, filled in with defaults, then
// overridden by AGENT_* environment variables, and finally validated.
// A process-wide singleton is available via Initialize/GetConfig for the
// CLI entry points; library code should accept an explicit *Config.
//
// # Loading
//
//	cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Environment overrides
//
// Environment variables follow AGENT_SECTION_FIELD naming:
//
//	AGENT_SERVER_LISTEN_ADDRESS=0.0.0.0:8000
//	AGENT_DATABASE_URL=postgres://agent:secret@db:5432/support_db
//	AGENT_PROVIDER_ANTHROPIC_API_KEY=sk-...
//
// # Hot reload
//
// Watcher observes the configuration file and reloads it on change,
// notifying subscribers (the cost model uses this to pick up pricing
// updates without a restart).
package config
