// Package logging is a convenience layer over Zap that adds custom severity
// levels, duplicate suppression, message redaction and colorized,
// timestamped console and rotating file output.
//
// # Overview
//
// A Registry builds named loggers from a Config and caches them:
//
//	reg := logging.NewRegistry()
//	defer reg.Close()
//
//	cfg := logging.NewDefaultConfig()
//	cfg.Filename = "/var/log/app.log"
//	cfg.MaskSensitive = true
//	log, err := reg.Get("app", cfg)
//	if err != nil {
//	    return err
//	}
//	log.Info(ctx, "This is my password: pass123")
//	// 2025-11-24T10:15:30.123456 app INFO This is my password *****
//
// A second Get with the same name returns the same *Logger and ignores the
// config passed.
//
// # Levels
//
// Severities are zapcore.Level values with fixed ranks:
//
//	DEBUG 10, INFO 20, WARNING 30, SUCCESS 32, HASH 33, ERROR 40, CRITICAL 50
//
// Success logs at SUCCESS. Hash replaces each given literal with "*****"
// and logs at HASH.
//
// # Filters
//
// Every logger runs a DuplicateFilter and, with MaskSensitive, a
// RedactingFilter before any sink sees a record. The console sink has a
// DuplicateFilter of its own. A DuplicateFilter drops a record equal to the
// previous one by module, level and message; the next different record is
// preceded by "Last log repeated N times." on the registry's notice logger.
//
// # Sinks
//
// The console sink writes to stderr with level colors. The file sink
// writes the same layout without color and rotates through lumberjack once
// FileMaxBytes is reached, keeping FileBackupCount old files. When neither
// is configured, WARNING and above go to stderr as bare messages.
//
// # Testing
//
// Use TestLogger for test assertions:
//
//	tl := logging.NewTestLogger(nil)
//	tl.Success(ctx, "done")
//	tl.AssertLogged(t, logging.SuccessLevel, "done")
//
// # Concurrency Safety
//
// Registry and Logger are safe for concurrent use. Filter state is guarded
// per filter, so interleaved goroutines share one duplicate sequence.
package logging
