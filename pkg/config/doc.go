// Package config fills configuration structs from the environment.
//
// Values come from three layers, later layers winning: an optional YAML file,
// a .env file in the working directory, and the process environment. Struct
// fields are bound with caarlos0/env tags. Nested YAML keys are flattened into
// upper-case, underscore-joined names so that
//
//	app:
//	  debug: true
//
// sets the same field as APP_DEBUG=true.
//
// Load has no hidden cache: callers build one value at startup and pass the
// pieces where they are needed.
package config
