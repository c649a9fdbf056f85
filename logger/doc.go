// Package logger provides structured logging for statewalker-utils using
// zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers. Sequences created by the bridge package log their
// lifecycle through a component logger named "bridge".
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("bridge")
//	log.Debug("sequence closed", logger.Fields(logger.FieldSequenceID, id))
package logger
