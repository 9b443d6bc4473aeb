// Package config defines the static server configuration file.
//
//   - spec.go: LauncherConfig struct definition
//   - default.go: default values
//   - decode.go: decode hooks for the shorthand forms of log, https and folders
//   - verify.go: validation
//   - convert.go: conversion to launcher.Config
//   - load.go: file, environment and flag loading via confloader
package config
