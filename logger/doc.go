/*
Package logger provides logging functionality to a signpost app by defining the required behavior in [Logger]
and providing an implementation of it with [ColorLogger].

# Overview

The Logger interface outputs messages at certain levels of importance.
LogLevel is the type to use to represent those levels.
An implementation of Logger may be initialized at a certain [LogLevel]
and only emit messages at or above that level of importance.
For example, [ColorLogger] accepts a [LogLevel],
and if initialized with [LogLevelWarn],
only [*ColorLogger.Warn], [*ColorLogger.Error], and [*ColorLogger.Fatal] produce messages.

# ColorLogger

The [ColorLogger] colorizes each line by level and prefixes it with the file and line
that called it.
A [LogContext] passed alongside a message is printed as JSON after it.

# SentryLogger

When the SENTRY_DSN environment variable is set, [New] wraps the [ColorLogger]
in a [SentryLogger], which additionally ships any error in the [LogContext]
of a Warn, Error, or Fatal message to Sentry.
*/
package logger
