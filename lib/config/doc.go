// Copyright 2026 The Mediocore Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for mdcr.
//
// Configuration comes from one file named by the --config flag (via
// [LoadFile]) or the MEDIOCORE_CONFIG environment variable (via
// [Load]). There is no search path. Unlike a daemon, mdcr must work on
// a fresh machine with no setup, so when neither is given [Load]
// returns [Default] rather than failing.
//
// ${HOME} and ${VAR:-default} patterns are expanded in path fields
// after loading. No other environment variables override file values.
//
// Profiles are named tuning plans that extend the built-in presets of
// package cpufreq:
//
//	profiles:
//	  quiet:
//	    description: cap clocks for a silent fan curve
//	    governor: powersave
//	    min: hwmin
//	    max: 1.6GHz
//
// This package depends only on lib/cpufreq.
package config
