// Package config manages user-level settings stored at ~/.m3652cs/config.yaml,
// environment variables, and an optional .env file in the working directory.
// It exposes typed views for the Dataverse credentials, solution overrides and
// logging options.
package config
